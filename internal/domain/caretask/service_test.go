package caretask

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// -- Mock Repository --

type mockRepo struct {
	store map[uuid.UUID]*CareTask
}

func newMockRepo() *mockRepo {
	return &mockRepo{store: make(map[uuid.UUID]*CareTask)}
}

func (m *mockRepo) Create(_ context.Context, t *CareTask) error {
	t.ID = uuid.New()
	m.store[t.ID] = t
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*CareTask, error) {
	t, ok := m.store[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *t
	return &copied, nil
}

func (m *mockRepo) Update(_ context.Context, t *CareTask) error {
	if _, ok := m.store[t.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *t
	m.store[t.ID] = &copied
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.store[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.store, id)
	return nil
}

func (m *mockRepo) List(_ context.Context, filter ListFilter, limit, offset int) ([]*CareTask, int, error) {
	var r []*CareTask
	for _, t := range m.store {
		if filter.Completed != nil && t.Completed != *filter.Completed {
			continue
		}
		if filter.ClinicalPriority != nil && t.ClinicalPriority != *filter.ClinicalPriority {
			continue
		}
		if filter.Specialty != nil && t.Specialty != *filter.Specialty {
			continue
		}
		r = append(r, t)
	}
	return r, len(r), nil
}

func newTestService() (*Service, *mockRepo) {
	repo := newMockRepo()
	return NewService(repo), repo
}

// -- Service Tests --

func TestCreateCareTask_Defaults(t *testing.T) {
	svc, _ := newTestService()
	task := &CareTask{Title: "Dolor toracico en triaje"}
	if err := svc.Create(context.Background(), task); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.ID == uuid.Nil {
		t.Error("expected ID to be set")
	}
	if task.ClinicalPriority != "medium" {
		t.Errorf("expected default priority 'medium', got %q", task.ClinicalPriority)
	}
	if task.Specialty != "general" {
		t.Errorf("expected default specialty 'general', got %q", task.Specialty)
	}
	if task.SLATargetMinutes != 240 {
		t.Errorf("expected default SLA 240, got %d", task.SLATargetMinutes)
	}
}

func TestCreateCareTask_NormalizesPriority(t *testing.T) {
	svc, _ := newTestService()
	task := &CareTask{Title: "Sepsis box 3", ClinicalPriority: "  CRITICAL "}
	if err := svc.Create(context.Background(), task); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.ClinicalPriority != "critical" {
		t.Errorf("expected priority 'critical', got %q", task.ClinicalPriority)
	}
}

func TestCreateCareTask_InvalidPriority(t *testing.T) {
	svc, _ := newTestService()
	task := &CareTask{Title: "X", ClinicalPriority: "urgent"}
	if err := svc.Create(context.Background(), task); err == nil {
		t.Fatal("expected error for invalid priority")
	}
}

func TestCreateCareTask_TitleRequired(t *testing.T) {
	svc, _ := newTestService()
	if err := svc.Create(context.Background(), &CareTask{Title: "   "}); err == nil {
		t.Fatal("expected error for empty title")
	}
}

func TestCreateCareTask_TitleTooLong(t *testing.T) {
	svc, _ := newTestService()
	task := &CareTask{Title: strings.Repeat("a", 201)}
	if err := svc.Create(context.Background(), task); err == nil {
		t.Fatal("expected error for oversized title")
	}
}

func TestGetCareTask_NotFound(t *testing.T) {
	svc, _ := newTestService()
	if _, err := svc.Get(context.Background(), uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateCareTask_Partial(t *testing.T) {
	svc, _ := newTestService()
	task := &CareTask{Title: "Reevaluacion respiratoria", ClinicalPriority: "high"}
	if err := svc.Create(context.Background(), task); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sla := 60
	updated, err := svc.Update(context.Background(), task.ID, Update{SLATargetMinutes: &sla})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.SLATargetMinutes != 60 {
		t.Errorf("expected SLA 60, got %d", updated.SLATargetMinutes)
	}
	if updated.ClinicalPriority != "high" {
		t.Errorf("expected priority unchanged, got %q", updated.ClinicalPriority)
	}
}

func TestUpdateCareTask_InvalidPriority(t *testing.T) {
	svc, _ := newTestService()
	task := &CareTask{Title: "Caso"}
	if err := svc.Create(context.Background(), task); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bad := "urgent"
	if _, err := svc.Update(context.Background(), task.ID, Update{ClinicalPriority: &bad}); err == nil {
		t.Fatal("expected error for invalid priority")
	}
}

func TestCompleteCareTask(t *testing.T) {
	svc, repo := newTestService()
	task := &CareTask{Title: "Alta pendiente"}
	if err := svc.Create(context.Background(), task); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	done, err := svc.Complete(context.Background(), task.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !done.Completed {
		t.Error("expected task to be completed")
	}
	if !repo.store[task.ID].Completed {
		t.Error("expected completion persisted")
	}
}

func TestDeleteCareTask_NotFound(t *testing.T) {
	svc, _ := newTestService()
	if err := svc.Delete(context.Background(), uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListCareTasks_PriorityFilterNormalized(t *testing.T) {
	svc, _ := newTestService()
	for _, title := range []string{"a", "b"} {
		task := &CareTask{Title: title, ClinicalPriority: "critical"}
		if err := svc.Create(context.Background(), task); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	filterValue := "CRITICAL"
	items, total, err := svc.List(context.Background(), ListFilter{ClinicalPriority: &filterValue}, 50, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 2 || len(items) != 2 {
		t.Errorf("expected 2 tasks, got total=%d len=%d", total, len(items))
	}
}
