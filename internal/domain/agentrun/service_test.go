package agentrun

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/edops/edops/internal/domain/caretask"
)

type mockRepo struct {
	runs    map[uuid.UUID]*AgentRun
	created []*AgentRun
}

func newMockRepo() *mockRepo {
	return &mockRepo{runs: make(map[uuid.UUID]*AgentRun)}
}

func (m *mockRepo) Create(_ context.Context, run *AgentRun) error {
	run.ID = uuid.New()
	run.CreatedAt = time.Now()
	m.runs[run.ID] = run
	m.created = append(m.created, run)
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*AgentRun, error) {
	run, ok := m.runs[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return run, nil
}

func (m *mockRepo) ListRecent(_ context.Context, filter ListFilter, limit int) ([]*AgentRun, error) {
	var out []*AgentRun
	for _, run := range m.created {
		if filter.Status != nil && run.Status != *filter.Status {
			continue
		}
		if filter.WorkflowName != nil && run.WorkflowName != *filter.WorkflowName {
			continue
		}
		out = append(out, run)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *mockRepo) OpsSummary(_ context.Context, workflowName *string) (*OpsSummary, error) {
	summary := &OpsSummary{}
	for _, run := range m.created {
		if workflowName != nil && run.WorkflowName != *workflowName {
			continue
		}
		summary.TotalRuns++
		switch run.Status {
		case StatusCompleted:
			summary.CompletedRuns++
		case StatusFailed:
			summary.FailedRuns++
		}
	}
	return summary, nil
}

func testTask() *caretask.CareTask {
	return &caretask.CareTask{
		ID:               uuid.New(),
		Title:            "Dolor toracico en box 4",
		ClinicalPriority: "high",
		Specialty:        "cardiology",
	}
}

func TestRecordProtocolRun_EnvelopesInputAndOutput(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	task := testTask()

	input := json.RawMessage(`{"heart_rate": 128}`)
	recommendation := map[string]any{"severity": "high", "alerts": []string{"activar via SCASEST"}}

	run, err := svc.RecordProtocolRun(context.Background(), task, "sepsis", input, recommendation, 42*time.Millisecond)
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if run.WorkflowName != "sepsis_protocol_support_v1" {
		t.Fatalf("unexpected workflow %q", run.WorkflowName)
	}
	if run.Status != StatusCompleted {
		t.Fatalf("expected completed, got %q", run.Status)
	}
	if run.TotalLatencyMs != 42 {
		t.Fatalf("expected latency 42ms, got %d", run.TotalLatencyMs)
	}
	if run.CareTaskID == nil || *run.CareTaskID != task.ID {
		t.Fatal("expected run linked to care task")
	}

	var envelope map[string]any
	if err := json.Unmarshal(run.RunInput, &envelope); err != nil {
		t.Fatalf("decode run input: %v", err)
	}
	if envelope["care_task_id"] != task.ID.String() {
		t.Fatalf("run input care_task_id = %v", envelope["care_task_id"])
	}
	if envelope["title"] != task.Title {
		t.Fatalf("run input title = %v", envelope["title"])
	}

	var output map[string]json.RawMessage
	if err := json.Unmarshal(run.RunOutput, &output); err != nil {
		t.Fatalf("decode run output: %v", err)
	}
	if _, ok := output["sepsis_protocol"]; !ok {
		t.Fatal("expected output keyed by sepsis_protocol")
	}
}

func TestRecordProtocolRun_UnknownProtocol(t *testing.T) {
	svc := NewService(newMockRepo())
	_, err := svc.RecordProtocolRun(context.Background(), testTask(), "phrenology", nil, nil, 0)
	if err == nil {
		t.Fatal("expected error for unknown protocol")
	}
}

func TestRecordProtocolRun_UnmarshalableOutputRecordsFailure(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	// Channels cannot be marshaled to JSON.
	run, err := svc.RecordProtocolRun(context.Background(), testTask(), "triage", nil, make(chan int), 0)
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if run.Status != StatusFailed {
		t.Fatalf("expected failed status, got %q", run.Status)
	}
	if run.ErrorMessage == nil {
		t.Fatal("expected error message on failed run")
	}
	if run.RunOutput != nil {
		t.Fatal("expected empty run output on marshal failure")
	}
}

func TestRecordChatTurn_UsesChatWorkflow(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	run, err := svc.RecordChatTurn(context.Background(), testTask(),
		json.RawMessage(`{"query": "pauta de sueroterapia"}`),
		map[string]any{"answer": "ver protocolo"}, 10*time.Millisecond)
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if run.WorkflowName != WorkflowClinicalChat.Name {
		t.Fatalf("unexpected workflow %q", run.WorkflowName)
	}
	var output map[string]json.RawMessage
	if err := json.Unmarshal(run.RunOutput, &output); err != nil {
		t.Fatalf("decode run output: %v", err)
	}
	if _, ok := output["clinical_chat"]; !ok {
		t.Fatal("expected output keyed by clinical_chat")
	}
}

func TestGet_NotFound(t *testing.T) {
	svc := NewService(newMockRepo())
	_, err := svc.Get(context.Background(), uuid.New())
	if err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListRecent_ClampsLimit(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	task := testTask()
	for i := 0; i < 5; i++ {
		if _, err := svc.RecordProtocolRun(context.Background(), task, "triage", nil, map[string]any{"i": i}, 0); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	runs, err := svc.ListRecent(context.Background(), ListFilter{}, -3)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(runs) != 5 {
		t.Fatalf("expected default limit to cover 5 runs, got %d", len(runs))
	}

	runs, err = svc.ListRecent(context.Background(), ListFilter{}, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
}

func TestOpsSummary_CountsByStatus(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	task := testTask()

	if _, err := svc.RecordProtocolRun(context.Background(), task, "triage", nil, map[string]any{}, 0); err != nil {
		t.Fatalf("record: %v", err)
	}
	if _, err := svc.RecordProtocolRun(context.Background(), task, "triage", nil, make(chan int), 0); err != nil {
		t.Fatalf("record: %v", err)
	}

	summary, err := svc.OpsSummary(context.Background(), nil)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.TotalRuns != 2 || summary.CompletedRuns != 1 || summary.FailedRuns != 1 {
		t.Fatalf("unexpected summary %+v", summary)
	}
}
