// Package assistant exposes the clinical chat turn surface. A turn does not
// generate language model output here; it runs the safety pipeline around a
// turn (query sanitation, tool policy, risk, security findings, tool result
// guarding) and records the decision as an agent run.
package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/edops/edops/internal/agent"
	"github.com/edops/edops/internal/domain/agentrun"
	"github.com/edops/edops/internal/domain/caretask"
	"github.com/edops/edops/internal/platform/telemetry"
	"github.com/edops/edops/internal/protocol"
)

const (
	lockTimeout    = 2 * time.Second
	lockStaleAfter = 30 * time.Second
)

// TurnRecorder persists chat turns. Satisfied by the agentrun service.
type TurnRecorder interface {
	RecordChatTurn(ctx context.Context, task *caretask.CareTask, turnInput json.RawMessage, turnOutput any, latency time.Duration) (*agentrun.AgentRun, error)
}

// TaskSource loads care tasks. Satisfied by the caretask service.
type TaskSource interface {
	Get(ctx context.Context, id uuid.UUID) (*caretask.CareTask, error)
}

type Service struct {
	recorder TurnRecorder
	tasks    TaskSource
	locks    *agent.SessionWriteLock
}

func NewService(recorder TurnRecorder, tasks TaskSource) *Service {
	return &Service{
		recorder: recorder,
		tasks:    tasks,
		locks:    agent.NewSessionWriteLock(),
	}
}

// TurnRequest is one chat turn's context as submitted by the caller.
type TurnRequest struct {
	Query                    string           `json:"query"`
	ToolMode                 string           `json:"tool_mode"`
	ResponseMode             string           `json:"response_mode"`
	SessionKey               string           `json:"session_key"`
	UserIsSuperuser          bool             `json:"user_is_superuser"`
	UseWebSources            bool             `json:"use_web_sources"`
	IncludeProtocolCatalog   bool             `json:"include_protocol_catalog"`
	ToolResults              []map[string]any `json:"tool_results,omitempty"`
	InternalSourcesCount     int              `json:"internal_sources_count"`
	ValidatedSourcesRequired bool             `json:"validated_sources_required"`
}

// TurnResponse is the recorded safety decision for one chat turn. A denied
// tool policy is a normal response, not an error.
type TurnResponse struct {
	CareTaskID       uuid.UUID               `json:"care_task_id"`
	AgentRunID       uuid.UUID               `json:"agent_run_id"`
	SanitizedQuery   string                  `json:"sanitized_query"`
	InjectionSignals []string                `json:"injection_signals,omitempty"`
	Policy           agent.PolicyDecision    `json:"policy"`
	Risk             agent.RiskAssessment    `json:"risk"`
	Findings         []agent.SecurityFinding `json:"findings"`
	ToolResults      []agent.ToolResult      `json:"tool_results,omitempty"`
	StaleLockReclaim bool                    `json:"stale_lock_reclaimed,omitempty"`
	Disclaimer       string                  `json:"disclaimer"`
}

// HandleTurn runs the safety pipeline for one chat turn and records it.
func (s *Service) HandleTurn(ctx context.Context, taskID uuid.UUID, req TurnRequest) (*TurnResponse, error) {
	task, err := s.tasks.Get(ctx, taskID)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	sanitizedQuery, signals := agent.SanitizeUserQuery(req.Query)
	injectionDetected := len(signals) > 0

	policy := agent.EvaluatePolicy(agent.PolicyContext{
		RequestedToolMode:       req.ToolMode,
		ResponseMode:            req.ResponseMode,
		UserIsSuperuser:         req.UserIsSuperuser,
		PromptInjectionDetected: injectionDetected,
		HumanReviewRequired:     task.HumanReviewRequired,
		UseWebSources:           req.UseWebSources,
		IncludeProtocolCatalog:  req.IncludeProtocolCatalog,
	})
	// Risk is assessed on the requested tool so a blocked tool still
	// surfaces in the findings.
	risk := agent.AssessToolRisk(agent.RiskContext{
		ToolMode:                policy.RequestedToolMode,
		ResponseMode:            req.ResponseMode,
		PromptInjectionDetected: injectionDetected,
		UseWebSources:           req.UseWebSources,
	})
	findings := agent.AuditChatSecurity(agent.FindingsInput{
		PromptInjectionSignals:   signals,
		Risk:                     risk,
		ToolPolicyAllowed:        policy.Allowed,
		ToolPolicyReason:         policy.ReasonCode,
		ResponseMode:             req.ResponseMode,
		InternalSourcesCount:     req.InternalSourcesCount,
		ValidatedSourcesRequired: req.ValidatedSourcesRequired,
		UseWebSources:            req.UseWebSources,
	})
	for _, finding := range findings {
		telemetry.ObserveSecurityFinding(finding.Code, finding.Severity)
	}

	response := &TurnResponse{
		CareTaskID:       task.ID,
		SanitizedQuery:   sanitizedQuery,
		InjectionSignals: signals,
		Policy:           policy,
		Risk:             risk,
		Findings:         findings,
		ToolResults:      agent.GuardToolResults(req.ToolResults, 5, 280),
		Disclaimer:       protocol.Disclaimer,
	}

	// One writer per chat session; a crashed holder is reclaimed after the
	// stale window instead of wedging the session.
	handle, err := s.locks.Acquire(req.SessionKey, task.ID.String(), lockTimeout, lockStaleAfter)
	if err != nil {
		return nil, fmt.Errorf("acquire session lock: %w", err)
	}
	defer s.locks.Release(handle)
	response.StaleLockReclaim = handle.StaleReclaimed

	turnInput, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal turn input: %w", err)
	}
	run, err := s.recorder.RecordChatTurn(ctx, task, turnInput, response, time.Since(started))
	if err != nil {
		return nil, err
	}
	response.AgentRunID = run.ID
	return response, nil
}
