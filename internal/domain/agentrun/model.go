// Package agentrun records every assistant workflow execution as an
// append-only trace: the exact input the workflow saw and the exact output it
// produced, keyed by workflow name. Runs are the evidence that the audit
// domain later reviews against human validation.
package agentrun

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Run statuses.
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// AgentRun maps to the agent_runs table.
type AgentRun struct {
	ID             uuid.UUID       `db:"id" json:"id"`
	CareTaskID     *uuid.UUID      `db:"care_task_id" json:"care_task_id,omitempty"`
	WorkflowName   string          `db:"workflow_name" json:"workflow_name"`
	Status         string          `db:"status" json:"status"`
	RunInput       json.RawMessage `db:"run_input" json:"run_input"`
	RunOutput      json.RawMessage `db:"run_output" json:"run_output,omitempty"`
	ErrorMessage   *string         `db:"error_message" json:"error_message,omitempty"`
	TotalLatencyMs int             `db:"total_latency_ms" json:"total_latency_ms"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
}

// ListFilter narrows run listings. Nil fields are not applied.
type ListFilter struct {
	Status       *string
	WorkflowName *string
	CareTaskID   *uuid.UUID
	CreatedFrom  *time.Time
	CreatedTo    *time.Time
}

// OpsSummary aggregates run outcomes for quick operational reads.
type OpsSummary struct {
	TotalRuns     int `json:"total_runs"`
	CompletedRuns int `json:"completed_runs"`
	FailedRuns    int `json:"failed_runs"`
}
