package agent

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// SessionLockHandle describes an acquired session lock.
type SessionLockHandle struct {
	LockKey        string
	Owner          string
	StaleReclaimed bool
}

type lockOwner struct {
	owner      string
	acquiredAt time.Time
}

// SessionWriteLock is a cooperative in-process lock keyed by chat session.
// A holder that never releases is reclaimed after staleAfter, so a crashed
// request cannot wedge the session forever.
type SessionWriteLock struct {
	mu     sync.Mutex
	cond   *sync.Cond
	owners map[string]lockOwner
}

// NewSessionWriteLock returns an empty lock table.
func NewSessionWriteLock() *SessionWriteLock {
	l := &SessionWriteLock{owners: map[string]lockOwner{}}
	l.cond = sync.NewCond(&l.mu)
	return l
}

// Acquire blocks until the session lock is free, reclaims it when the current
// holder is stale, or fails once the timeout elapses. The caller must call
// Release with the returned handle.
func (l *SessionWriteLock) Acquire(lockKey, owner string, timeout, staleAfter time.Duration) (SessionLockHandle, error) {
	if timeout < 100*time.Millisecond {
		timeout = 100 * time.Millisecond
	}
	if staleAfter < time.Second {
		staleAfter = time.Second
	}
	key := strings.TrimSpace(lockKey)
	if key == "" {
		key = "chat-session"
	}
	ownerID := strings.TrimSpace(owner)
	if ownerID == "" {
		ownerID = "owner"
	}
	deadline := time.Now().Add(timeout)

	l.mu.Lock()
	defer l.mu.Unlock()
	for {
		now := time.Now()
		current, held := l.owners[key]
		if !held {
			l.owners[key] = lockOwner{owner: ownerID, acquiredAt: now}
			return SessionLockHandle{LockKey: key, Owner: ownerID}, nil
		}
		if now.Sub(current.acquiredAt) > staleAfter {
			l.owners[key] = lockOwner{owner: ownerID, acquiredAt: now}
			return SessionLockHandle{LockKey: key, Owner: ownerID, StaleReclaimed: true}, nil
		}
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return SessionLockHandle{}, fmt.Errorf(
				"session lock timeout for key '%s' (held by '%s')", key, current.owner)
		}
		wait := remaining
		if wait > 200*time.Millisecond {
			wait = 200 * time.Millisecond
		}
		l.waitWithTimeout(wait)
	}
}

// Release frees the lock when the handle still owns it. Releasing a lock that
// was reclaimed by another owner is a no-op.
func (l *SessionWriteLock) Release(handle SessionLockHandle) {
	l.mu.Lock()
	defer l.mu.Unlock()
	current, held := l.owners[handle.LockKey]
	if held && current.owner == handle.Owner {
		delete(l.owners, handle.LockKey)
		l.cond.Broadcast()
	}
}

// waitWithTimeout waits on the condition for at most d. The mutex is held on
// entry and on return. A timer wakes all waiters so the poll loop can check
// the deadline; spurious wakeups are handled by the caller's loop.
func (l *SessionWriteLock) waitWithTimeout(d time.Duration) {
	timer := time.AfterFunc(d, func() {
		l.mu.Lock()
		l.cond.Broadcast()
		l.mu.Unlock()
	})
	defer timer.Stop()
	l.cond.Wait()
}
