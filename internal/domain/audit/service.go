package audit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/edops/edops/internal/domain/agentrun"
	"github.com/edops/edops/internal/platform/telemetry"
)

// Validation and lookup errors the request boundary maps to status codes.
var (
	ErrRunNotFound      = errors.New("agent run not found")
	ErrWorkflowMismatch = errors.New("agent run does not belong to this workflow")
	ErrRunTaskMismatch  = errors.New("agent run does not belong to this care task")
	ErrInvalidReview    = errors.New("invalid review payload")
)

// RunSource loads stored runs for validation and AI-side re-reads. Satisfied
// by the agentrun service.
type RunSource interface {
	Get(ctx context.Context, id uuid.UUID) (*agentrun.AgentRun, error)
}

type Service struct {
	repo Repository
	runs RunSource
}

func NewService(repo Repository, runs RunSource) *Service {
	return &Service{repo: repo, runs: runs}
}

// validatedRun checks that the run exists, was produced by the expected
// workflow, and belongs to the audited care task.
func (s *Service) validatedRun(ctx context.Context, taskID, runID uuid.UUID, workflowName string) (*agentrun.AgentRun, error) {
	run, err := s.runs.Get(ctx, runID)
	if errors.Is(err, agentrun.ErrNotFound) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, err
	}
	if run.WorkflowName != workflowName {
		return nil, fmt.Errorf("%w: expected %s, run has %s", ErrWorkflowMismatch, workflowName, run.WorkflowName)
	}
	var envelope struct {
		CareTaskID *uuid.UUID `json:"care_task_id"`
	}
	if len(run.RunInput) > 0 {
		_ = json.Unmarshal(run.RunInput, &envelope)
	}
	if envelope.CareTaskID == nil || *envelope.CareTaskID != taskID {
		return nil, ErrRunTaskMismatch
	}
	return run, nil
}

func clampListLimit(limit int) int {
	if limit < 1 {
		return 1
	}
	if limit > 200 {
		return 200
	}
	return limit
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return round2(float64(part) / float64(total) * 100)
}

// TriageAuditRequest records a reviewer's validated Manchester level.
type TriageAuditRequest struct {
	AgentRunID          uuid.UUID `json:"agent_run_id"`
	HumanValidatedLevel int       `json:"human_validated_level"`
	Review
}

func (s *Service) UpsertTriageAudit(ctx context.Context, taskID uuid.UUID, req TriageAuditRequest) (*TriageAudit, error) {
	if req.HumanValidatedLevel < 1 || req.HumanValidatedLevel > 5 {
		return nil, fmt.Errorf("%w: human_validated_level must be 1..5", ErrInvalidReview)
	}
	run, err := s.validatedRun(ctx, taskID, req.AgentRunID, "care_task_triage_v1")
	if err != nil {
		return nil, err
	}
	aiLevel := InferAITriageLevel(run)
	audit := &TriageAudit{
		CareTaskID:          taskID,
		AgentRunID:          req.AgentRunID,
		AIRecommendedLevel:  aiLevel,
		HumanValidatedLevel: req.HumanValidatedLevel,
		Classification:      ClassifyTriageDeviation(aiLevel, req.HumanValidatedLevel),
		ReviewerNote:        req.ReviewerNote,
		ReviewedBy:          req.ReviewedBy,
	}
	if err := s.repo.UpsertTriage(ctx, audit); err != nil {
		return nil, err
	}
	telemetry.ObserveAuditClassification("triage", audit.Classification)
	return audit, nil
}

func (s *Service) ListTriageAudits(ctx context.Context, taskID uuid.UUID, limit int) ([]*TriageAudit, error) {
	return s.repo.ListTriage(ctx, &taskID, clampListLimit(limit))
}

func (s *Service) TriageSummary(ctx context.Context, taskID *uuid.UUID) (*TriageSummary, error) {
	rows, err := s.repo.ListTriage(ctx, taskID, 0)
	if err != nil {
		return nil, err
	}
	summary := &TriageSummary{TotalAudits: len(rows)}
	for _, row := range rows {
		switch row.Classification {
		case ClassMatch:
			summary.Matches++
		case ClassUnderTriage:
			summary.UnderTriage++
		case ClassOverTriage:
			summary.OverTriage++
		}
	}
	summary.UnderTriageRatePercent = percent(summary.UnderTriage, summary.TotalAudits)
	summary.OverTriageRatePercent = percent(summary.OverTriage, summary.TotalAudits)
	return summary, nil
}

// ScreeningAuditRequest records a reviewer's validated screening signals.
type ScreeningAuditRequest struct {
	AgentRunID                    uuid.UUID `json:"agent_run_id"`
	HumanValidatedRiskLevel       string    `json:"human_validated_risk_level"`
	HumanHIVScreeningSuggested    bool      `json:"human_hiv_screening_suggested"`
	HumanSepsisRouteSuggested     bool      `json:"human_sepsis_route_suggested"`
	HumanPersistentCovidSuspected bool      `json:"human_persistent_covid_suspected"`
	HumanLongActingCandidate      bool      `json:"human_long_acting_candidate"`
	Review
}

func (s *Service) UpsertScreeningAudit(ctx context.Context, taskID uuid.UUID, req ScreeningAuditRequest) (*ScreeningAudit, error) {
	humanLevel := strings.ToLower(req.HumanValidatedRiskLevel)
	switch humanLevel {
	case "low", "medium", "high":
	default:
		return nil, fmt.Errorf("%w: human_validated_risk_level must be low, medium or high", ErrInvalidReview)
	}
	run, err := s.validatedRun(ctx, taskID, req.AgentRunID, "advanced_screening_support_v1")
	if err != nil {
		return nil, err
	}
	flags := ExtractScreeningFlags(run)
	audit := &ScreeningAudit{
		CareTaskID:                    taskID,
		AgentRunID:                    req.AgentRunID,
		AIGeriatricRiskLevel:          flags.RiskLevel,
		HumanValidatedRiskLevel:       humanLevel,
		Classification:                ClassifyScreeningDeviation(flags.RiskLevel, humanLevel),
		AIHIVScreeningSuggested:       flags.HIVScreeningSuggested,
		HumanHIVScreeningSuggested:    req.HumanHIVScreeningSuggested,
		AISepsisRouteSuggested:        flags.SepsisRouteSuggested,
		HumanSepsisRouteSuggested:     req.HumanSepsisRouteSuggested,
		AIPersistentCovidSuspected:    flags.PersistentCovidSuspected,
		HumanPersistentCovidSuspected: req.HumanPersistentCovidSuspected,
		AILongActingCandidate:         flags.LongActingCandidate,
		HumanLongActingCandidate:      req.HumanLongActingCandidate,
		ReviewerNote:                  req.ReviewerNote,
		ReviewedBy:                    req.ReviewedBy,
	}
	if err := s.repo.UpsertScreening(ctx, audit); err != nil {
		return nil, err
	}
	telemetry.ObserveAuditClassification("screening", audit.Classification)
	return audit, nil
}

func (s *Service) ListScreeningAudits(ctx context.Context, taskID uuid.UUID, limit int) ([]*ScreeningAudit, error) {
	return s.repo.ListScreening(ctx, &taskID, clampListLimit(limit))
}

func (s *Service) ScreeningSummary(ctx context.Context, taskID *uuid.UUID) (*ScreeningSummary, error) {
	rows, err := s.repo.ListScreening(ctx, taskID, 0)
	if err != nil {
		return nil, err
	}
	summary := &ScreeningSummary{TotalAudits: len(rows)}
	var hiv, sepsis, covid, longActing int
	for _, row := range rows {
		switch row.Classification {
		case ClassMatch:
			summary.Matches++
		case ClassUnderScreening:
			summary.UnderScreening++
		case ClassOverScreening:
			summary.OverScreening++
		}
		if row.AIHIVScreeningSuggested == row.HumanHIVScreeningSuggested {
			hiv++
		}
		if row.AISepsisRouteSuggested == row.HumanSepsisRouteSuggested {
			sepsis++
		}
		if row.AIPersistentCovidSuspected == row.HumanPersistentCovidSuspected {
			covid++
		}
		if row.AILongActingCandidate == row.HumanLongActingCandidate {
			longActing++
		}
	}
	summary.UnderScreeningRatePercent = percent(summary.UnderScreening, summary.TotalAudits)
	summary.OverScreeningRatePercent = percent(summary.OverScreening, summary.TotalAudits)
	summary.HIVScreeningMatchRatePercent = percent(hiv, summary.TotalAudits)
	summary.SepsisRouteMatchRatePercent = percent(sepsis, summary.TotalAudits)
	summary.PersistentCovidMatchRatePercent = percent(covid, summary.TotalAudits)
	summary.LongActingMatchRatePercent = percent(longActing, summary.TotalAudits)
	return summary, nil
}

// MedicolegalAuditRequest records a reviewer's validated medicolegal signals.
type MedicolegalAuditRequest struct {
	AgentRunID                        uuid.UUID `json:"agent_run_id"`
	HumanValidatedLegalRiskLevel      string    `json:"human_validated_legal_risk_level"`
	HumanConsentRequired              bool      `json:"human_consent_required"`
	HumanJudicialNotificationRequired bool      `json:"human_judicial_notification_required"`
	HumanChainOfCustodyRequired       bool      `json:"human_chain_of_custody_required"`
	Review
}

func (s *Service) UpsertMedicolegalAudit(ctx context.Context, taskID uuid.UUID, req MedicolegalAuditRequest) (*MedicolegalAudit, error) {
	humanLevel := strings.ToLower(req.HumanValidatedLegalRiskLevel)
	switch humanLevel {
	case "low", "medium", "high":
	default:
		return nil, fmt.Errorf("%w: human_validated_legal_risk_level must be low, medium or high", ErrInvalidReview)
	}
	run, err := s.validatedRun(ctx, taskID, req.AgentRunID, "medicolegal_ops_support_v1")
	if err != nil {
		return nil, err
	}
	flags := ExtractMedicolegalFlags(run)
	audit := &MedicolegalAudit{
		CareTaskID:                        taskID,
		AgentRunID:                        req.AgentRunID,
		AILegalRiskLevel:                  flags.LegalRiskLevel,
		HumanValidatedLegalRiskLevel:      humanLevel,
		Classification:                    ClassifyMedicolegalDeviation(flags.LegalRiskLevel, humanLevel),
		AIConsentRequired:                 flags.ConsentRequired,
		HumanConsentRequired:              req.HumanConsentRequired,
		AIJudicialNotificationRequired:    flags.JudicialNotificationRequired,
		HumanJudicialNotificationRequired: req.HumanJudicialNotificationRequired,
		AIChainOfCustodyRequired:          flags.ChainOfCustodyRequired,
		HumanChainOfCustodyRequired:       req.HumanChainOfCustodyRequired,
		ReviewerNote:                      req.ReviewerNote,
		ReviewedBy:                        req.ReviewedBy,
	}
	if err := s.repo.UpsertMedicolegal(ctx, audit); err != nil {
		return nil, err
	}
	telemetry.ObserveAuditClassification("medicolegal", audit.Classification)
	return audit, nil
}

func (s *Service) ListMedicolegalAudits(ctx context.Context, taskID uuid.UUID, limit int) ([]*MedicolegalAudit, error) {
	return s.repo.ListMedicolegal(ctx, &taskID, clampListLimit(limit))
}

func (s *Service) MedicolegalSummary(ctx context.Context, taskID *uuid.UUID) (*MedicolegalSummary, error) {
	rows, err := s.repo.ListMedicolegal(ctx, taskID, 0)
	if err != nil {
		return nil, err
	}
	summary := &MedicolegalSummary{TotalAudits: len(rows)}
	var consent, judicial, custody int
	for _, row := range rows {
		switch row.Classification {
		case ClassMatch:
			summary.Matches++
		case ClassUnderLegalRisk:
			summary.UnderLegalRisk++
		case ClassOverLegalRisk:
			summary.OverLegalRisk++
		}
		if row.AIConsentRequired == row.HumanConsentRequired {
			consent++
		}
		if row.AIJudicialNotificationRequired == row.HumanJudicialNotificationRequired {
			judicial++
		}
		if row.AIChainOfCustodyRequired == row.HumanChainOfCustodyRequired {
			custody++
		}
	}
	summary.UnderLegalRiskRatePercent = percent(summary.UnderLegalRisk, summary.TotalAudits)
	summary.OverLegalRiskRatePercent = percent(summary.OverLegalRisk, summary.TotalAudits)
	summary.ConsentRequiredMatchRatePercent = percent(consent, summary.TotalAudits)
	summary.JudicialNotificationMatchRatePercent = percent(judicial, summary.TotalAudits)
	summary.ChainOfCustodyMatchRatePercent = percent(custody, summary.TotalAudits)
	return summary, nil
}

// ScasestAuditRequest records a reviewer's validated SCASEST signals.
type ScasestAuditRequest struct {
	AgentRunID                         uuid.UUID `json:"agent_run_id"`
	HumanValidatedHighRiskScasest      bool      `json:"human_validated_high_risk_scasest"`
	HumanEscalationRequired            bool      `json:"human_escalation_required"`
	HumanImmediateAntiischemicStrategy bool      `json:"human_immediate_antiischemic_strategy"`
	Review
}

func (s *Service) UpsertScasestAudit(ctx context.Context, taskID uuid.UUID, req ScasestAuditRequest) (*ScasestAudit, error) {
	run, err := s.validatedRun(ctx, taskID, req.AgentRunID, "scasest_protocol_support_v1")
	if err != nil {
		return nil, err
	}
	flags := ExtractScasestFlags(run)
	audit := &ScasestAudit{
		CareTaskID:                         taskID,
		AgentRunID:                         req.AgentRunID,
		AIHighRiskScasest:                  flags.HighRiskScasest,
		HumanValidatedHighRiskScasest:      req.HumanValidatedHighRiskScasest,
		Classification:                     ClassifyScasestDeviation(flags.HighRiskScasest, req.HumanValidatedHighRiskScasest),
		AIEscalationRequired:               flags.EscalationRequired,
		HumanEscalationRequired:            req.HumanEscalationRequired,
		AIImmediateAntiischemicStrategy:    flags.ImmediateAntiischemicStrategy,
		HumanImmediateAntiischemicStrategy: req.HumanImmediateAntiischemicStrategy,
		ReviewerNote:                       req.ReviewerNote,
		ReviewedBy:                         req.ReviewedBy,
	}
	if err := s.repo.UpsertScasest(ctx, audit); err != nil {
		return nil, err
	}
	telemetry.ObserveAuditClassification("scasest", audit.Classification)
	return audit, nil
}

func (s *Service) ListScasestAudits(ctx context.Context, taskID uuid.UUID, limit int) ([]*ScasestAudit, error) {
	return s.repo.ListScasest(ctx, &taskID, clampListLimit(limit))
}

func (s *Service) ScasestSummary(ctx context.Context, taskID *uuid.UUID) (*ScasestSummary, error) {
	rows, err := s.repo.ListScasest(ctx, taskID, 0)
	if err != nil {
		return nil, err
	}
	summary := &ScasestSummary{TotalAudits: len(rows)}
	var escalation, antiischemic int
	for _, row := range rows {
		switch row.Classification {
		case ClassMatch:
			summary.Matches++
		case ClassUnderScasestRisk:
			summary.UnderScasestRisk++
		case ClassOverScasestRisk:
			summary.OverScasestRisk++
		}
		if row.AIEscalationRequired == row.HumanEscalationRequired {
			escalation++
		}
		if row.AIImmediateAntiischemicStrategy == row.HumanImmediateAntiischemicStrategy {
			antiischemic++
		}
	}
	summary.UnderScasestRiskRatePercent = percent(summary.UnderScasestRisk, summary.TotalAudits)
	summary.OverScasestRiskRatePercent = percent(summary.OverScasestRisk, summary.TotalAudits)
	summary.EscalationRequiredMatchRatePercent = percent(escalation, summary.TotalAudits)
	summary.ImmediateAntiischemicStrategyMatchRatePercent = percent(antiischemic, summary.TotalAudits)
	return summary, nil
}

// CardioRiskAuditRequest records a reviewer's validated cardiovascular
// signals.
type CardioRiskAuditRequest struct {
	AgentRunID                          uuid.UUID `json:"agent_run_id"`
	HumanValidatedRiskLevel             string    `json:"human_validated_risk_level"`
	HumanNonHDLTargetRequired           bool      `json:"human_non_hdl_target_required"`
	HumanPharmacologicStrategySuggested bool      `json:"human_pharmacologic_strategy_suggested"`
	HumanIntensiveLifestyleRequired     bool      `json:"human_intensive_lifestyle_required"`
	Review
}

func (s *Service) UpsertCardioRiskAudit(ctx context.Context, taskID uuid.UUID, req CardioRiskAuditRequest) (*CardioRiskAudit, error) {
	humanLevel := strings.ToLower(req.HumanValidatedRiskLevel)
	switch humanLevel {
	case "low", "moderate", "high", "very_high":
	default:
		return nil, fmt.Errorf("%w: human_validated_risk_level must be low, moderate, high or very_high", ErrInvalidReview)
	}
	run, err := s.validatedRun(ctx, taskID, req.AgentRunID, "cardio_risk_support_v1")
	if err != nil {
		return nil, err
	}
	flags := ExtractCardioRiskFlags(run)
	audit := &CardioRiskAudit{
		CareTaskID:                          taskID,
		AgentRunID:                          req.AgentRunID,
		AIRiskLevel:                         flags.RiskLevel,
		HumanValidatedRiskLevel:             humanLevel,
		Classification:                      ClassifyCardioRiskDeviation(flags.RiskLevel, humanLevel),
		AINonHDLTargetRequired:              flags.NonHDLTargetRequired,
		HumanNonHDLTargetRequired:           req.HumanNonHDLTargetRequired,
		AIPharmacologicStrategySuggested:    flags.PharmacologicStrategySuggested,
		HumanPharmacologicStrategySuggested: req.HumanPharmacologicStrategySuggested,
		AIIntensiveLifestyleRequired:        flags.IntensiveLifestyleRequired,
		HumanIntensiveLifestyleRequired:     req.HumanIntensiveLifestyleRequired,
		ReviewerNote:                        req.ReviewerNote,
		ReviewedBy:                          req.ReviewedBy,
	}
	if err := s.repo.UpsertCardioRisk(ctx, audit); err != nil {
		return nil, err
	}
	telemetry.ObserveAuditClassification("cardio_risk", audit.Classification)
	return audit, nil
}

func (s *Service) ListCardioRiskAudits(ctx context.Context, taskID uuid.UUID, limit int) ([]*CardioRiskAudit, error) {
	return s.repo.ListCardioRisk(ctx, &taskID, clampListLimit(limit))
}

func (s *Service) CardioRiskSummary(ctx context.Context, taskID *uuid.UUID) (*CardioRiskSummary, error) {
	rows, err := s.repo.ListCardioRisk(ctx, taskID, 0)
	if err != nil {
		return nil, err
	}
	summary := &CardioRiskSummary{TotalAudits: len(rows)}
	var nonHDL, pharmacologic, lifestyle int
	for _, row := range rows {
		switch row.Classification {
		case ClassMatch:
			summary.Matches++
		case ClassUnderCardioRisk:
			summary.UnderCardioRisk++
		case ClassOverCardioRisk:
			summary.OverCardioRisk++
		}
		if row.AINonHDLTargetRequired == row.HumanNonHDLTargetRequired {
			nonHDL++
		}
		if row.AIPharmacologicStrategySuggested == row.HumanPharmacologicStrategySuggested {
			pharmacologic++
		}
		if row.AIIntensiveLifestyleRequired == row.HumanIntensiveLifestyleRequired {
			lifestyle++
		}
	}
	summary.UnderCardioRiskRatePercent = percent(summary.UnderCardioRisk, summary.TotalAudits)
	summary.OverCardioRiskRatePercent = percent(summary.OverCardioRisk, summary.TotalAudits)
	summary.NonHDLTargetRequiredMatchRatePercent = percent(nonHDL, summary.TotalAudits)
	summary.PharmacologicStrategyMatchRatePercent = percent(pharmacologic, summary.TotalAudits)
	summary.IntensiveLifestyleMatchRatePercent = percent(lifestyle, summary.TotalAudits)
	return summary, nil
}

// ResuscitationAuditRequest records a reviewer's validated resuscitation
// signals.
type ResuscitationAuditRequest struct {
	AgentRunID                     uuid.UUID `json:"agent_run_id"`
	HumanValidatedSeverityLevel    string    `json:"human_validated_severity_level"`
	HumanShockRecommended          bool      `json:"human_shock_recommended"`
	HumanReversibleCausesCompleted bool      `json:"human_reversible_causes_completed"`
	HumanAirwayPlanAdequate        bool      `json:"human_airway_plan_adequate"`
	Review
}

func (s *Service) UpsertResuscitationAudit(ctx context.Context, taskID uuid.UUID, req ResuscitationAuditRequest) (*ResuscitationAudit, error) {
	humanLevel := strings.ToLower(req.HumanValidatedSeverityLevel)
	switch humanLevel {
	case "medium", "high", "critical":
	default:
		return nil, fmt.Errorf("%w: human_validated_severity_level must be medium, high or critical", ErrInvalidReview)
	}
	run, err := s.validatedRun(ctx, taskID, req.AgentRunID, "resuscitation_protocol_support_v1")
	if err != nil {
		return nil, err
	}
	flags := ExtractResuscitationFlags(run)
	audit := &ResuscitationAudit{
		CareTaskID:                     taskID,
		AgentRunID:                     req.AgentRunID,
		AISeverityLevel:                flags.SeverityLevel,
		HumanValidatedSeverityLevel:    humanLevel,
		Classification:                 ClassifyResuscitationDeviation(flags.SeverityLevel, humanLevel),
		AIShockRecommended:             flags.ShockRecommended,
		HumanShockRecommended:          req.HumanShockRecommended,
		AIReversibleCausesRequired:     flags.ReversibleCausesRequired,
		HumanReversibleCausesCompleted: req.HumanReversibleCausesCompleted,
		AIAirwayPlanAdequate:           flags.AirwayPlanAdequate,
		HumanAirwayPlanAdequate:        req.HumanAirwayPlanAdequate,
		ReviewerNote:                   req.ReviewerNote,
		ReviewedBy:                     req.ReviewedBy,
	}
	if err := s.repo.UpsertResuscitation(ctx, audit); err != nil {
		return nil, err
	}
	telemetry.ObserveAuditClassification("resuscitation", audit.Classification)
	return audit, nil
}

func (s *Service) ListResuscitationAudits(ctx context.Context, taskID uuid.UUID, limit int) ([]*ResuscitationAudit, error) {
	return s.repo.ListResuscitation(ctx, &taskID, clampListLimit(limit))
}

func (s *Service) ResuscitationSummary(ctx context.Context, taskID *uuid.UUID) (*ResuscitationSummary, error) {
	rows, err := s.repo.ListResuscitation(ctx, taskID, 0)
	if err != nil {
		return nil, err
	}
	summary := &ResuscitationSummary{TotalAudits: len(rows)}
	var shock, reversible, airway int
	for _, row := range rows {
		switch row.Classification {
		case ClassMatch:
			summary.Matches++
		case ClassUnderResuscitationRisk:
			summary.UnderResuscitationRisk++
		case ClassOverResuscitationRisk:
			summary.OverResuscitationRisk++
		}
		if row.AIShockRecommended == row.HumanShockRecommended {
			shock++
		}
		if row.AIReversibleCausesRequired == row.HumanReversibleCausesCompleted {
			reversible++
		}
		if row.AIAirwayPlanAdequate == row.HumanAirwayPlanAdequate {
			airway++
		}
	}
	summary.UnderResuscitationRiskRatePercent = percent(summary.UnderResuscitationRisk, summary.TotalAudits)
	summary.OverResuscitationRiskRatePercent = percent(summary.OverResuscitationRisk, summary.TotalAudits)
	summary.ShockRecommendedMatchRatePercent = percent(shock, summary.TotalAudits)
	summary.ReversibleCausesMatchRatePercent = percent(reversible, summary.TotalAudits)
	summary.AirwayPlanMatchRatePercent = percent(airway, summary.TotalAudits)
	return summary, nil
}

func domainSummary(total, matches, under, over int) DomainSummary {
	return DomainSummary{
		TotalAudits:      total,
		Matches:          matches,
		UnderEvents:      under,
		OverEvents:       over,
		UnderRatePercent: percent(under, total),
		OverRatePercent:  percent(over, total),
		MatchRatePercent: percent(matches, total),
	}
}

func classifyQualityStatus(totalAudits int, underRatePercent, overRatePercent float64) string {
	if totalAudits == 0 {
		return QualityNoData
	}
	if underRatePercent > 10 || overRatePercent > 20 {
		return QualityDegraded
	}
	if underRatePercent > 0 || overRatePercent > 0 {
		return QualityAttention
	}
	return QualityStable
}

// QualityScorecard aggregates every audit family into one operational read.
func (s *Service) QualityScorecard(ctx context.Context) (*Scorecard, error) {
	triage, err := s.TriageSummary(ctx, nil)
	if err != nil {
		return nil, err
	}
	screening, err := s.ScreeningSummary(ctx, nil)
	if err != nil {
		return nil, err
	}
	medicolegal, err := s.MedicolegalSummary(ctx, nil)
	if err != nil {
		return nil, err
	}
	scasest, err := s.ScasestSummary(ctx, nil)
	if err != nil {
		return nil, err
	}
	cardio, err := s.CardioRiskSummary(ctx, nil)
	if err != nil {
		return nil, err
	}
	resuscitation, err := s.ResuscitationSummary(ctx, nil)
	if err != nil {
		return nil, err
	}

	domains := map[string]DomainSummary{
		"triage":        domainSummary(triage.TotalAudits, triage.Matches, triage.UnderTriage, triage.OverTriage),
		"screening":     domainSummary(screening.TotalAudits, screening.Matches, screening.UnderScreening, screening.OverScreening),
		"medicolegal":   domainSummary(medicolegal.TotalAudits, medicolegal.Matches, medicolegal.UnderLegalRisk, medicolegal.OverLegalRisk),
		"scasest":       domainSummary(scasest.TotalAudits, scasest.Matches, scasest.UnderScasestRisk, scasest.OverScasestRisk),
		"cardio_risk":   domainSummary(cardio.TotalAudits, cardio.Matches, cardio.UnderCardioRisk, cardio.OverCardioRisk),
		"resuscitation": domainSummary(resuscitation.TotalAudits, resuscitation.Matches, resuscitation.UnderResuscitationRisk, resuscitation.OverResuscitationRisk),
	}

	card := &Scorecard{Domains: domains}
	for _, d := range domains {
		card.TotalAudits += d.TotalAudits
		card.Matches += d.Matches
		card.UnderEvents += d.UnderEvents
		card.OverEvents += d.OverEvents
	}
	card.UnderRatePercent = percent(card.UnderEvents, card.TotalAudits)
	card.OverRatePercent = percent(card.OverEvents, card.TotalAudits)
	card.MatchRatePercent = percent(card.Matches, card.TotalAudits)
	card.QualityStatus = classifyQualityStatus(card.TotalAudits, card.UnderRatePercent, card.OverRatePercent)
	return card, nil
}
