package audit

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/edops/edops/internal/domain/agentrun"
)

type mockAuditRepo struct {
	triage        map[uuid.UUID]*TriageAudit
	screening     map[uuid.UUID]*ScreeningAudit
	medicolegal   map[uuid.UUID]*MedicolegalAudit
	scasest       map[uuid.UUID]*ScasestAudit
	cardioRisk    map[uuid.UUID]*CardioRiskAudit
	resuscitation map[uuid.UUID]*ResuscitationAudit
}

func newMockAuditRepo() *mockAuditRepo {
	return &mockAuditRepo{
		triage:        make(map[uuid.UUID]*TriageAudit),
		screening:     make(map[uuid.UUID]*ScreeningAudit),
		medicolegal:   make(map[uuid.UUID]*MedicolegalAudit),
		scasest:       make(map[uuid.UUID]*ScasestAudit),
		cardioRisk:    make(map[uuid.UUID]*CardioRiskAudit),
		resuscitation: make(map[uuid.UUID]*ResuscitationAudit),
	}
}

func matchesTask(careTaskID *uuid.UUID, rowTask uuid.UUID) bool {
	return careTaskID == nil || *careTaskID == rowTask
}

func (m *mockAuditRepo) UpsertTriage(_ context.Context, a *TriageAudit) error {
	if existing, ok := m.triage[a.AgentRunID]; ok {
		a.ID = existing.ID
	}
	m.triage[a.AgentRunID] = a
	return nil
}

func (m *mockAuditRepo) ListTriage(_ context.Context, careTaskID *uuid.UUID, _ int) ([]*TriageAudit, error) {
	var out []*TriageAudit
	for _, a := range m.triage {
		if matchesTask(careTaskID, a.CareTaskID) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockAuditRepo) UpsertScreening(_ context.Context, a *ScreeningAudit) error {
	m.screening[a.AgentRunID] = a
	return nil
}

func (m *mockAuditRepo) ListScreening(_ context.Context, careTaskID *uuid.UUID, _ int) ([]*ScreeningAudit, error) {
	var out []*ScreeningAudit
	for _, a := range m.screening {
		if matchesTask(careTaskID, a.CareTaskID) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockAuditRepo) UpsertMedicolegal(_ context.Context, a *MedicolegalAudit) error {
	m.medicolegal[a.AgentRunID] = a
	return nil
}

func (m *mockAuditRepo) ListMedicolegal(_ context.Context, careTaskID *uuid.UUID, _ int) ([]*MedicolegalAudit, error) {
	var out []*MedicolegalAudit
	for _, a := range m.medicolegal {
		if matchesTask(careTaskID, a.CareTaskID) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockAuditRepo) UpsertScasest(_ context.Context, a *ScasestAudit) error {
	m.scasest[a.AgentRunID] = a
	return nil
}

func (m *mockAuditRepo) ListScasest(_ context.Context, careTaskID *uuid.UUID, _ int) ([]*ScasestAudit, error) {
	var out []*ScasestAudit
	for _, a := range m.scasest {
		if matchesTask(careTaskID, a.CareTaskID) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockAuditRepo) UpsertCardioRisk(_ context.Context, a *CardioRiskAudit) error {
	m.cardioRisk[a.AgentRunID] = a
	return nil
}

func (m *mockAuditRepo) ListCardioRisk(_ context.Context, careTaskID *uuid.UUID, _ int) ([]*CardioRiskAudit, error) {
	var out []*CardioRiskAudit
	for _, a := range m.cardioRisk {
		if matchesTask(careTaskID, a.CareTaskID) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockAuditRepo) UpsertResuscitation(_ context.Context, a *ResuscitationAudit) error {
	m.resuscitation[a.AgentRunID] = a
	return nil
}

func (m *mockAuditRepo) ListResuscitation(_ context.Context, careTaskID *uuid.UUID, _ int) ([]*ResuscitationAudit, error) {
	var out []*ResuscitationAudit
	for _, a := range m.resuscitation {
		if matchesTask(careTaskID, a.CareTaskID) {
			out = append(out, a)
		}
	}
	return out, nil
}

type mockRunSource struct {
	runs map[uuid.UUID]*agentrun.AgentRun
}

func (m *mockRunSource) Get(_ context.Context, id uuid.UUID) (*agentrun.AgentRun, error) {
	run, ok := m.runs[id]
	if !ok {
		return nil, agentrun.ErrNotFound
	}
	return run, nil
}

// storedRun builds an agent run the way the recorder persists it.
func storedRun(t *testing.T, taskID uuid.UUID, workflow, outputKey string, section map[string]any) *agentrun.AgentRun {
	t.Helper()
	runInput, err := json.Marshal(map[string]any{"care_task_id": taskID})
	if err != nil {
		t.Fatalf("marshal input: %v", err)
	}
	runOutput, err := json.Marshal(map[string]any{outputKey: section})
	if err != nil {
		t.Fatalf("marshal output: %v", err)
	}
	return &agentrun.AgentRun{
		ID:           uuid.New(),
		CareTaskID:   &taskID,
		WorkflowName: workflow,
		Status:       agentrun.StatusCompleted,
		RunInput:     runInput,
		RunOutput:    runOutput,
	}
}

func newServiceWithRun(t *testing.T, run *agentrun.AgentRun) (*Service, *mockAuditRepo) {
	t.Helper()
	repo := newMockAuditRepo()
	source := &mockRunSource{runs: map[uuid.UUID]*agentrun.AgentRun{run.ID: run}}
	return NewService(repo, source), repo
}

func TestUpsertTriageAudit_ClassifiesAndStores(t *testing.T) {
	taskID := uuid.New()
	run := storedRun(t, taskID, "care_task_triage_v1", "triage", map[string]any{"triage_level": 4})
	svc, repo := newServiceWithRun(t, run)

	note := "Paciente reevaluado en box"
	audit, err := svc.UpsertTriageAudit(context.Background(), taskID, TriageAuditRequest{
		AgentRunID:          run.ID,
		HumanValidatedLevel: 2,
		Review:              Review{ReviewerNote: &note},
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if audit.AIRecommendedLevel != 4 {
		t.Fatalf("expected AI level 4, got %d", audit.AIRecommendedLevel)
	}
	if audit.Classification != ClassUnderTriage {
		t.Fatalf("expected under_triage, got %q", audit.Classification)
	}
	if len(repo.triage) != 1 {
		t.Fatalf("expected 1 stored audit, got %d", len(repo.triage))
	}
}

func TestUpsertTriageAudit_ReplacesPriorReview(t *testing.T) {
	taskID := uuid.New()
	run := storedRun(t, taskID, "care_task_triage_v1", "triage", map[string]any{"triage_level": 3})
	svc, repo := newServiceWithRun(t, run)

	if _, err := svc.UpsertTriageAudit(context.Background(), taskID, TriageAuditRequest{
		AgentRunID: run.ID, HumanValidatedLevel: 1,
	}); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	audit, err := svc.UpsertTriageAudit(context.Background(), taskID, TriageAuditRequest{
		AgentRunID: run.ID, HumanValidatedLevel: 3,
	})
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if audit.Classification != ClassMatch {
		t.Fatalf("expected match after revision, got %q", audit.Classification)
	}
	if len(repo.triage) != 1 {
		t.Fatalf("expected single row per run, got %d", len(repo.triage))
	}
}

func TestUpsertTriageAudit_Validation(t *testing.T) {
	taskID := uuid.New()
	run := storedRun(t, taskID, "care_task_triage_v1", "triage", map[string]any{})
	svc, _ := newServiceWithRun(t, run)

	if _, err := svc.UpsertTriageAudit(context.Background(), taskID, TriageAuditRequest{
		AgentRunID: run.ID, HumanValidatedLevel: 6,
	}); !errors.Is(err, ErrInvalidReview) {
		t.Fatalf("expected ErrInvalidReview, got %v", err)
	}

	if _, err := svc.UpsertTriageAudit(context.Background(), taskID, TriageAuditRequest{
		AgentRunID: uuid.New(), HumanValidatedLevel: 3,
	}); !errors.Is(err, ErrRunNotFound) {
		t.Fatalf("expected ErrRunNotFound, got %v", err)
	}

	if _, err := svc.UpsertTriageAudit(context.Background(), uuid.New(), TriageAuditRequest{
		AgentRunID: run.ID, HumanValidatedLevel: 3,
	}); !errors.Is(err, ErrRunTaskMismatch) {
		t.Fatalf("expected ErrRunTaskMismatch, got %v", err)
	}
}

func TestUpsertTriageAudit_RejectsForeignWorkflow(t *testing.T) {
	taskID := uuid.New()
	run := storedRun(t, taskID, "sepsis_protocol_support_v1", "sepsis_protocol", map[string]any{})
	svc, _ := newServiceWithRun(t, run)

	if _, err := svc.UpsertTriageAudit(context.Background(), taskID, TriageAuditRequest{
		AgentRunID: run.ID, HumanValidatedLevel: 3,
	}); !errors.Is(err, ErrWorkflowMismatch) {
		t.Fatalf("expected ErrWorkflowMismatch, got %v", err)
	}
}

func TestUpsertScreeningAudit_PerRuleFlags(t *testing.T) {
	taskID := uuid.New()
	run := storedRun(t, taskID, "advanced_screening_support_v1", "advanced_screening", map[string]any{
		"geriatric_risk_level": "low",
		"screening_actions":    []string{"Ofrecer cribado VIH"},
	})
	svc, _ := newServiceWithRun(t, run)

	audit, err := svc.UpsertScreeningAudit(context.Background(), taskID, ScreeningAuditRequest{
		AgentRunID:                 run.ID,
		HumanValidatedRiskLevel:    "HIGH",
		HumanHIVScreeningSuggested: true,
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if audit.Classification != ClassUnderScreening {
		t.Fatalf("expected under_screening, got %q", audit.Classification)
	}
	if audit.HumanValidatedRiskLevel != "high" {
		t.Fatalf("expected lowercased level, got %q", audit.HumanValidatedRiskLevel)
	}
	if !audit.AIHIVScreeningSuggested || !audit.HumanHIVScreeningSuggested {
		t.Fatalf("expected hiv agreement: %+v", audit)
	}
}

func TestUpsertScreeningAudit_InvalidLevel(t *testing.T) {
	taskID := uuid.New()
	run := storedRun(t, taskID, "advanced_screening_support_v1", "advanced_screening", map[string]any{})
	svc, _ := newServiceWithRun(t, run)

	if _, err := svc.UpsertScreeningAudit(context.Background(), taskID, ScreeningAuditRequest{
		AgentRunID: run.ID, HumanValidatedRiskLevel: "extreme",
	}); !errors.Is(err, ErrInvalidReview) {
		t.Fatalf("expected ErrInvalidReview, got %v", err)
	}
}

func TestScreeningSummary_PerRuleMatchRates(t *testing.T) {
	taskID := uuid.New()
	repo := newMockAuditRepo()
	svc := NewService(repo, &mockRunSource{runs: map[uuid.UUID]*agentrun.AgentRun{}})

	repo.screening[uuid.New()] = &ScreeningAudit{
		CareTaskID: taskID, Classification: ClassMatch,
		AIHIVScreeningSuggested: true, HumanHIVScreeningSuggested: true,
		AISepsisRouteSuggested: true, HumanSepsisRouteSuggested: false,
	}
	repo.screening[uuid.New()] = &ScreeningAudit{
		CareTaskID: taskID, Classification: ClassUnderScreening,
		AIHIVScreeningSuggested: false, HumanHIVScreeningSuggested: true,
		AISepsisRouteSuggested: false, HumanSepsisRouteSuggested: false,
	}

	summary, err := svc.ScreeningSummary(context.Background(), &taskID)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.TotalAudits != 2 || summary.Matches != 1 || summary.UnderScreening != 1 {
		t.Fatalf("unexpected counts: %+v", summary)
	}
	if summary.UnderScreeningRatePercent != 50 {
		t.Fatalf("expected under rate 50, got %v", summary.UnderScreeningRatePercent)
	}
	if summary.HIVScreeningMatchRatePercent != 50 {
		t.Fatalf("expected hiv match rate 50, got %v", summary.HIVScreeningMatchRatePercent)
	}
	if summary.SepsisRouteMatchRatePercent != 50 {
		t.Fatalf("expected sepsis match rate 50, got %v", summary.SepsisRouteMatchRatePercent)
	}
	// Covid and long-acting defaults agree on both rows.
	if summary.PersistentCovidMatchRatePercent != 100 {
		t.Fatalf("expected covid match rate 100, got %v", summary.PersistentCovidMatchRatePercent)
	}
}

func TestUpsertScasestAudit_BooleanDeviation(t *testing.T) {
	taskID := uuid.New()
	run := storedRun(t, taskID, "scasest_protocol_support_v1", "scasest_protocol", map[string]any{
		"high_risk_scasest": false,
	})
	svc, _ := newServiceWithRun(t, run)

	audit, err := svc.UpsertScasestAudit(context.Background(), taskID, ScasestAuditRequest{
		AgentRunID:                    run.ID,
		HumanValidatedHighRiskScasest: true,
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if audit.Classification != ClassUnderScasestRisk {
		t.Fatalf("expected under_scasest_risk, got %q", audit.Classification)
	}
}

func TestUpsertResuscitationAudit_ExtractsChecklistFlag(t *testing.T) {
	taskID := uuid.New()
	run := storedRun(t, taskID, "resuscitation_protocol_support_v1", "resuscitation_protocol", map[string]any{
		"severity_level":              "critical",
		"reversible_causes_checklist": []string{"Hipoxia"},
	})
	svc, _ := newServiceWithRun(t, run)

	audit, err := svc.UpsertResuscitationAudit(context.Background(), taskID, ResuscitationAuditRequest{
		AgentRunID:                  run.ID,
		HumanValidatedSeverityLevel: "critical",
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if audit.Classification != ClassMatch {
		t.Fatalf("expected match, got %q", audit.Classification)
	}
	if !audit.AIReversibleCausesRequired {
		t.Fatal("expected reversible causes flag from checklist")
	}
}

func TestQualityScorecard_NoData(t *testing.T) {
	svc := NewService(newMockAuditRepo(), &mockRunSource{runs: map[uuid.UUID]*agentrun.AgentRun{}})
	card, err := svc.QualityScorecard(context.Background())
	if err != nil {
		t.Fatalf("scorecard: %v", err)
	}
	if card.QualityStatus != QualityNoData {
		t.Fatalf("expected sin_datos, got %q", card.QualityStatus)
	}
	if len(card.Domains) != 6 {
		t.Fatalf("expected 6 domains, got %d", len(card.Domains))
	}
}

func TestQualityScorecard_Stable(t *testing.T) {
	repo := newMockAuditRepo()
	svc := NewService(repo, &mockRunSource{runs: map[uuid.UUID]*agentrun.AgentRun{}})
	taskID := uuid.New()
	repo.triage[uuid.New()] = &TriageAudit{CareTaskID: taskID, Classification: ClassMatch}
	repo.scasest[uuid.New()] = &ScasestAudit{CareTaskID: taskID, Classification: ClassMatch}

	card, err := svc.QualityScorecard(context.Background())
	if err != nil {
		t.Fatalf("scorecard: %v", err)
	}
	if card.QualityStatus != QualityStable {
		t.Fatalf("expected estable, got %q", card.QualityStatus)
	}
	if card.MatchRatePercent != 100 {
		t.Fatalf("expected 100%% match, got %v", card.MatchRatePercent)
	}
}

func TestQualityScorecard_AttentionAndDegraded(t *testing.T) {
	repo := newMockAuditRepo()
	svc := NewService(repo, &mockRunSource{runs: map[uuid.UUID]*agentrun.AgentRun{}})
	taskID := uuid.New()

	// 1 under event out of 20 audits keeps under rate at 5 percent.
	repo.triage[uuid.New()] = &TriageAudit{CareTaskID: taskID, Classification: ClassUnderTriage}
	for i := 0; i < 19; i++ {
		repo.triage[uuid.New()] = &TriageAudit{CareTaskID: taskID, Classification: ClassMatch}
	}
	card, err := svc.QualityScorecard(context.Background())
	if err != nil {
		t.Fatalf("scorecard: %v", err)
	}
	if card.QualityStatus != QualityAttention {
		t.Fatalf("expected atencion, got %q", card.QualityStatus)
	}

	// Push the under rate above the 10 percent threshold.
	for i := 0; i < 4; i++ {
		repo.scasest[uuid.New()] = &ScasestAudit{CareTaskID: taskID, Classification: ClassUnderScasestRisk}
	}
	card, err = svc.QualityScorecard(context.Background())
	if err != nil {
		t.Fatalf("scorecard: %v", err)
	}
	if card.QualityStatus != QualityDegraded {
		t.Fatalf("expected degradado, got %q", card.QualityStatus)
	}
}
