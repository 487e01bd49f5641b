package agent

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionWriteLockAcquireAndRelease(t *testing.T) {
	lock := NewSessionWriteLock()

	handle, err := lock.Acquire("chat-abc", "req-1", time.Second, 30*time.Second)
	require.NoError(t, err)
	assert.Equal(t, "chat-abc", handle.LockKey)
	assert.Equal(t, "req-1", handle.Owner)
	assert.False(t, handle.StaleReclaimed)
	lock.Release(handle)

	again, err := lock.Acquire("chat-abc", "req-2", time.Second, 30*time.Second)
	require.NoError(t, err)
	lock.Release(again)
}

func TestSessionWriteLockTimeout(t *testing.T) {
	lock := NewSessionWriteLock()

	handle, err := lock.Acquire("chat-abc", "req-1", time.Second, 30*time.Second)
	require.NoError(t, err)
	defer lock.Release(handle)

	_, err = lock.Acquire("chat-abc", "req-2", 150*time.Millisecond, 30*time.Second)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "held by 'req-1'")
}

func TestSessionWriteLockStaleReclaim(t *testing.T) {
	lock := NewSessionWriteLock()

	_, err := lock.Acquire("chat-abc", "req-1", time.Second, 30*time.Second)
	require.NoError(t, err)

	// Backdate the holder so the next acquirer sees it as stale.
	lock.mu.Lock()
	lock.owners["chat-abc"] = lockOwner{owner: "req-1", acquiredAt: time.Now().Add(-time.Minute)}
	lock.mu.Unlock()

	handle, err := lock.Acquire("chat-abc", "req-2", time.Second, 30*time.Second)
	require.NoError(t, err)
	assert.True(t, handle.StaleReclaimed)
	lock.Release(handle)
}

func TestSessionWriteLockDefaultsEmptyKeyAndOwner(t *testing.T) {
	lock := NewSessionWriteLock()

	handle, err := lock.Acquire("  ", "", time.Second, 30*time.Second)
	require.NoError(t, err)
	assert.Equal(t, "chat-session", handle.LockKey)
	assert.Equal(t, "owner", handle.Owner)
	lock.Release(handle)
}

func TestSessionWriteLockReleaseAfterReclaimIsNoop(t *testing.T) {
	lock := NewSessionWriteLock()

	stale, err := lock.Acquire("chat-abc", "req-1", time.Second, 30*time.Second)
	require.NoError(t, err)

	lock.mu.Lock()
	lock.owners["chat-abc"] = lockOwner{owner: "req-1", acquiredAt: time.Now().Add(-time.Minute)}
	lock.mu.Unlock()

	current, err := lock.Acquire("chat-abc", "req-2", time.Second, 30*time.Second)
	require.NoError(t, err)

	// The stale handle no longer owns the key; releasing it must not free
	// the lock held by req-2.
	lock.Release(stale)
	lock.mu.Lock()
	owner := lock.owners["chat-abc"].owner
	lock.mu.Unlock()
	assert.Equal(t, "req-2", owner)
	lock.Release(current)
}
