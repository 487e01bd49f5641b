package agentrun

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/edops/edops/internal/domain/caretask"
	"github.com/edops/edops/internal/platform/telemetry"
)

// ErrNotFound marks a lookup for a run that does not exist.
var ErrNotFound = errors.New("agent run not found")

// ErrUnknownWorkflow marks a protocol identifier with no persistence mapping.
var ErrUnknownWorkflow = errors.New("unknown workflow")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// runInputEnvelope is the stored run_input shape. It snapshots the CareTask
// context at execution time together with the verbatim protocol input.
type runInputEnvelope struct {
	CareTaskID       uuid.UUID       `json:"care_task_id"`
	Title            string          `json:"title"`
	Description      *string         `json:"description"`
	Specialty        string          `json:"specialty"`
	ClinicalPriority string          `json:"clinical_priority"`
	ProtocolInput    json.RawMessage `json:"protocol_input"`
}

// RecordProtocolRun persists one protocol evaluation as an operational trace.
// The recommendation is stored verbatim under the workflow's output key so
// audits can re-read the exact AI-side values later.
func (s *Service) RecordProtocolRun(
	ctx context.Context,
	task *caretask.CareTask,
	protocolID string,
	protocolInput json.RawMessage,
	recommendation any,
	latency time.Duration,
) (*AgentRun, error) {
	wf, ok := WorkflowFor(protocolID)
	if !ok {
		return nil, fmt.Errorf("%w: protocol %q", ErrUnknownWorkflow, protocolID)
	}
	return s.record(ctx, task, wf, protocolInput, recommendation, latency)
}

// RecordChatTurn persists one assistant chat turn under the chat workflow.
func (s *Service) RecordChatTurn(
	ctx context.Context,
	task *caretask.CareTask,
	turnInput json.RawMessage,
	turnOutput any,
	latency time.Duration,
) (*AgentRun, error) {
	return s.record(ctx, task, WorkflowClinicalChat, turnInput, turnOutput, latency)
}

func (s *Service) record(
	ctx context.Context,
	task *caretask.CareTask,
	wf Workflow,
	protocolInput json.RawMessage,
	output any,
	latency time.Duration,
) (*AgentRun, error) {
	runInput, err := json.Marshal(runInputEnvelope{
		CareTaskID:       task.ID,
		Title:            task.Title,
		Description:      task.Description,
		Specialty:        task.Specialty,
		ClinicalPriority: task.ClinicalPriority,
		ProtocolInput:    protocolInput,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal run input: %w", err)
	}

	run := &AgentRun{
		CareTaskID:     &task.ID,
		WorkflowName:   wf.Name,
		RunInput:       runInput,
		TotalLatencyMs: int(latency.Milliseconds()),
	}

	runOutput, err := json.Marshal(map[string]any{wf.OutputKey: output})
	if err != nil {
		// The evaluation happened; keep the trace with the failure instead
		// of losing the run entirely.
		msg := fmt.Sprintf("marshal run output: %v", err)
		run.Status = StatusFailed
		run.ErrorMessage = &msg
	} else {
		run.Status = StatusCompleted
		run.RunOutput = runOutput
	}

	if err := s.repo.Create(ctx, run); err != nil {
		return nil, fmt.Errorf("persist run: %w", err)
	}
	telemetry.ObserveAgentRun(wf.Name, run.Status)
	return run, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*AgentRun, error) {
	run, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return run, err
}

func (s *Service) ListRecent(ctx context.Context, filter ListFilter, limit int) ([]*AgentRun, error) {
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return s.repo.ListRecent(ctx, filter, limit)
}

func (s *Service) OpsSummary(ctx context.Context, workflowName *string) (*OpsSummary, error) {
	return s.repo.OpsSummary(ctx, workflowName)
}
