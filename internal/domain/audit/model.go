// Package audit records human review of agent recommendations. Each family
// compares the AI-side values re-read from the stored run output against the
// reviewer's validated values, classifies the deviation, and keeps one audit
// row per agent run. Aggregates feed the quality scorecard.
package audit

import (
	"time"

	"github.com/google/uuid"
)

// Classification values shared by every family. The under/over variants are
// family-specific and listed with each family below.
const ClassMatch = "match"

// Triage deviation classifications.
const (
	ClassUnderTriage = "under_triage"
	ClassOverTriage  = "over_triage"
)

// Screening deviation classifications.
const (
	ClassUnderScreening = "under_screening"
	ClassOverScreening  = "over_screening"
)

// Medicolegal deviation classifications.
const (
	ClassUnderLegalRisk = "under_legal_risk"
	ClassOverLegalRisk  = "over_legal_risk"
)

// SCASEST deviation classifications.
const (
	ClassUnderScasestRisk = "under_scasest_risk"
	ClassOverScasestRisk  = "over_scasest_risk"
)

// Cardiovascular risk deviation classifications.
const (
	ClassUnderCardioRisk = "under_cardio_risk"
	ClassOverCardioRisk  = "over_cardio_risk"
)

// Resuscitation deviation classifications.
const (
	ClassUnderResuscitationRisk = "under_resuscitation_risk"
	ClassOverResuscitationRisk  = "over_resuscitation_risk"
)

// Review carries the reviewer fields shared by every audit request.
type Review struct {
	ReviewerNote *string `json:"reviewer_note,omitempty"`
	ReviewedBy   *string `json:"reviewed_by,omitempty"`
}

// TriageAudit maps to the triage_audits table. AI level is the Manchester
// level (1..5) inferred from the stored triage run output.
type TriageAudit struct {
	ID                  uuid.UUID `db:"id" json:"audit_id"`
	CareTaskID          uuid.UUID `db:"care_task_id" json:"care_task_id"`
	AgentRunID          uuid.UUID `db:"agent_run_id" json:"agent_run_id"`
	AIRecommendedLevel  int       `db:"ai_recommended_level" json:"ai_recommended_level"`
	HumanValidatedLevel int       `db:"human_validated_level" json:"human_validated_level"`
	Classification      string    `db:"classification" json:"classification"`
	ReviewerNote        *string   `db:"reviewer_note" json:"reviewer_note,omitempty"`
	ReviewedBy          *string   `db:"reviewed_by" json:"reviewed_by,omitempty"`
	CreatedAt           time.Time `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time `db:"updated_at" json:"updated_at"`
}

// TriageSummary aggregates triage audit outcomes.
type TriageSummary struct {
	TotalAudits            int     `json:"total_audits"`
	Matches                int     `json:"matches"`
	UnderTriage            int     `json:"under_triage"`
	OverTriage             int     `json:"over_triage"`
	UnderTriageRatePercent float64 `json:"under_triage_rate_percent"`
	OverTriageRatePercent  float64 `json:"over_triage_rate_percent"`
}

// ScreeningAudit maps to the screening_audits table. Beside the global risk
// level it audits four per-rule boolean signals.
type ScreeningAudit struct {
	ID                            uuid.UUID `db:"id" json:"audit_id"`
	CareTaskID                    uuid.UUID `db:"care_task_id" json:"care_task_id"`
	AgentRunID                    uuid.UUID `db:"agent_run_id" json:"agent_run_id"`
	AIGeriatricRiskLevel          string    `db:"ai_geriatric_risk_level" json:"ai_geriatric_risk_level"`
	HumanValidatedRiskLevel       string    `db:"human_validated_risk_level" json:"human_validated_risk_level"`
	Classification                string    `db:"classification" json:"classification"`
	AIHIVScreeningSuggested       bool      `db:"ai_hiv_screening_suggested" json:"ai_hiv_screening_suggested"`
	HumanHIVScreeningSuggested    bool      `db:"human_hiv_screening_suggested" json:"human_hiv_screening_suggested"`
	AISepsisRouteSuggested        bool      `db:"ai_sepsis_route_suggested" json:"ai_sepsis_route_suggested"`
	HumanSepsisRouteSuggested     bool      `db:"human_sepsis_route_suggested" json:"human_sepsis_route_suggested"`
	AIPersistentCovidSuspected    bool      `db:"ai_persistent_covid_suspected" json:"ai_persistent_covid_suspected"`
	HumanPersistentCovidSuspected bool      `db:"human_persistent_covid_suspected" json:"human_persistent_covid_suspected"`
	AILongActingCandidate         bool      `db:"ai_long_acting_candidate" json:"ai_long_acting_candidate"`
	HumanLongActingCandidate      bool      `db:"human_long_acting_candidate" json:"human_long_acting_candidate"`
	ReviewerNote                  *string   `db:"reviewer_note" json:"reviewer_note,omitempty"`
	ReviewedBy                    *string   `db:"reviewed_by" json:"reviewed_by,omitempty"`
	CreatedAt                     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt                     time.Time `db:"updated_at" json:"updated_at"`
}

// ScreeningSummary aggregates screening audit outcomes with per-rule match
// rates.
type ScreeningSummary struct {
	TotalAudits                     int     `json:"total_audits"`
	Matches                         int     `json:"matches"`
	UnderScreening                  int     `json:"under_screening"`
	OverScreening                   int     `json:"over_screening"`
	UnderScreeningRatePercent       float64 `json:"under_screening_rate_percent"`
	OverScreeningRatePercent        float64 `json:"over_screening_rate_percent"`
	HIVScreeningMatchRatePercent    float64 `json:"hiv_screening_match_rate_percent"`
	SepsisRouteMatchRatePercent     float64 `json:"sepsis_route_match_rate_percent"`
	PersistentCovidMatchRatePercent float64 `json:"persistent_covid_match_rate_percent"`
	LongActingMatchRatePercent      float64 `json:"long_acting_match_rate_percent"`
}

// MedicolegalAudit maps to the medicolegal_audits table.
type MedicolegalAudit struct {
	ID                                uuid.UUID `db:"id" json:"audit_id"`
	CareTaskID                        uuid.UUID `db:"care_task_id" json:"care_task_id"`
	AgentRunID                        uuid.UUID `db:"agent_run_id" json:"agent_run_id"`
	AILegalRiskLevel                  string    `db:"ai_legal_risk_level" json:"ai_legal_risk_level"`
	HumanValidatedLegalRiskLevel      string    `db:"human_validated_legal_risk_level" json:"human_validated_legal_risk_level"`
	Classification                    string    `db:"classification" json:"classification"`
	AIConsentRequired                 bool      `db:"ai_consent_required" json:"ai_consent_required"`
	HumanConsentRequired              bool      `db:"human_consent_required" json:"human_consent_required"`
	AIJudicialNotificationRequired    bool      `db:"ai_judicial_notification_required" json:"ai_judicial_notification_required"`
	HumanJudicialNotificationRequired bool      `db:"human_judicial_notification_required" json:"human_judicial_notification_required"`
	AIChainOfCustodyRequired          bool      `db:"ai_chain_of_custody_required" json:"ai_chain_of_custody_required"`
	HumanChainOfCustodyRequired       bool      `db:"human_chain_of_custody_required" json:"human_chain_of_custody_required"`
	ReviewerNote                      *string   `db:"reviewer_note" json:"reviewer_note,omitempty"`
	ReviewedBy                        *string   `db:"reviewed_by" json:"reviewed_by,omitempty"`
	CreatedAt                         time.Time `db:"created_at" json:"created_at"`
	UpdatedAt                         time.Time `db:"updated_at" json:"updated_at"`
}

// MedicolegalSummary aggregates medicolegal audit outcomes.
type MedicolegalSummary struct {
	TotalAudits                          int     `json:"total_audits"`
	Matches                              int     `json:"matches"`
	UnderLegalRisk                       int     `json:"under_legal_risk"`
	OverLegalRisk                        int     `json:"over_legal_risk"`
	UnderLegalRiskRatePercent            float64 `json:"under_legal_risk_rate_percent"`
	OverLegalRiskRatePercent             float64 `json:"over_legal_risk_rate_percent"`
	ConsentRequiredMatchRatePercent      float64 `json:"consent_required_match_rate_percent"`
	JudicialNotificationMatchRatePercent float64 `json:"judicial_notification_match_rate_percent"`
	ChainOfCustodyMatchRatePercent       float64 `json:"chain_of_custody_match_rate_percent"`
}

// ScasestAudit maps to the scasest_audits table. The global signal is a
// boolean high-risk call instead of an ordinal level.
type ScasestAudit struct {
	ID                                 uuid.UUID `db:"id" json:"audit_id"`
	CareTaskID                         uuid.UUID `db:"care_task_id" json:"care_task_id"`
	AgentRunID                         uuid.UUID `db:"agent_run_id" json:"agent_run_id"`
	AIHighRiskScasest                  bool      `db:"ai_high_risk_scasest" json:"ai_high_risk_scasest"`
	HumanValidatedHighRiskScasest      bool      `db:"human_validated_high_risk_scasest" json:"human_validated_high_risk_scasest"`
	Classification                     string    `db:"classification" json:"classification"`
	AIEscalationRequired               bool      `db:"ai_escalation_required" json:"ai_escalation_required"`
	HumanEscalationRequired            bool      `db:"human_escalation_required" json:"human_escalation_required"`
	AIImmediateAntiischemicStrategy    bool      `db:"ai_immediate_antiischemic_strategy" json:"ai_immediate_antiischemic_strategy"`
	HumanImmediateAntiischemicStrategy bool      `db:"human_immediate_antiischemic_strategy" json:"human_immediate_antiischemic_strategy"`
	ReviewerNote                       *string   `db:"reviewer_note" json:"reviewer_note,omitempty"`
	ReviewedBy                         *string   `db:"reviewed_by" json:"reviewed_by,omitempty"`
	CreatedAt                          time.Time `db:"created_at" json:"created_at"`
	UpdatedAt                          time.Time `db:"updated_at" json:"updated_at"`
}

// ScasestSummary aggregates SCASEST audit outcomes.
type ScasestSummary struct {
	TotalAudits                                   int     `json:"total_audits"`
	Matches                                       int     `json:"matches"`
	UnderScasestRisk                              int     `json:"under_scasest_risk"`
	OverScasestRisk                               int     `json:"over_scasest_risk"`
	UnderScasestRiskRatePercent                   float64 `json:"under_scasest_risk_rate_percent"`
	OverScasestRiskRatePercent                    float64 `json:"over_scasest_risk_rate_percent"`
	EscalationRequiredMatchRatePercent            float64 `json:"escalation_required_match_rate_percent"`
	ImmediateAntiischemicStrategyMatchRatePercent float64 `json:"immediate_antiischemic_strategy_match_rate_percent"`
}

// CardioRiskAudit maps to the cardio_risk_audits table.
type CardioRiskAudit struct {
	ID                                  uuid.UUID `db:"id" json:"audit_id"`
	CareTaskID                          uuid.UUID `db:"care_task_id" json:"care_task_id"`
	AgentRunID                          uuid.UUID `db:"agent_run_id" json:"agent_run_id"`
	AIRiskLevel                         string    `db:"ai_risk_level" json:"ai_risk_level"`
	HumanValidatedRiskLevel             string    `db:"human_validated_risk_level" json:"human_validated_risk_level"`
	Classification                      string    `db:"classification" json:"classification"`
	AINonHDLTargetRequired              bool      `db:"ai_non_hdl_target_required" json:"ai_non_hdl_target_required"`
	HumanNonHDLTargetRequired           bool      `db:"human_non_hdl_target_required" json:"human_non_hdl_target_required"`
	AIPharmacologicStrategySuggested    bool      `db:"ai_pharmacologic_strategy_suggested" json:"ai_pharmacologic_strategy_suggested"`
	HumanPharmacologicStrategySuggested bool      `db:"human_pharmacologic_strategy_suggested" json:"human_pharmacologic_strategy_suggested"`
	AIIntensiveLifestyleRequired        bool      `db:"ai_intensive_lifestyle_required" json:"ai_intensive_lifestyle_required"`
	HumanIntensiveLifestyleRequired     bool      `db:"human_intensive_lifestyle_required" json:"human_intensive_lifestyle_required"`
	ReviewerNote                        *string   `db:"reviewer_note" json:"reviewer_note,omitempty"`
	ReviewedBy                          *string   `db:"reviewed_by" json:"reviewed_by,omitempty"`
	CreatedAt                           time.Time `db:"created_at" json:"created_at"`
	UpdatedAt                           time.Time `db:"updated_at" json:"updated_at"`
}

// CardioRiskSummary aggregates cardiovascular risk audit outcomes.
type CardioRiskSummary struct {
	TotalAudits                           int     `json:"total_audits"`
	Matches                               int     `json:"matches"`
	UnderCardioRisk                       int     `json:"under_cardio_risk"`
	OverCardioRisk                        int     `json:"over_cardio_risk"`
	UnderCardioRiskRatePercent            float64 `json:"under_cardio_risk_rate_percent"`
	OverCardioRiskRatePercent             float64 `json:"over_cardio_risk_rate_percent"`
	NonHDLTargetRequiredMatchRatePercent  float64 `json:"non_hdl_target_required_match_rate_percent"`
	PharmacologicStrategyMatchRatePercent float64 `json:"pharmacologic_strategy_match_rate_percent"`
	IntensiveLifestyleMatchRatePercent    float64 `json:"intensive_lifestyle_match_rate_percent"`
}

// ResuscitationAudit maps to the resuscitation_audits table.
type ResuscitationAudit struct {
	ID                             uuid.UUID `db:"id" json:"audit_id"`
	CareTaskID                     uuid.UUID `db:"care_task_id" json:"care_task_id"`
	AgentRunID                     uuid.UUID `db:"agent_run_id" json:"agent_run_id"`
	AISeverityLevel                string    `db:"ai_severity_level" json:"ai_severity_level"`
	HumanValidatedSeverityLevel    string    `db:"human_validated_severity_level" json:"human_validated_severity_level"`
	Classification                 string    `db:"classification" json:"classification"`
	AIShockRecommended             bool      `db:"ai_shock_recommended" json:"ai_shock_recommended"`
	HumanShockRecommended          bool      `db:"human_shock_recommended" json:"human_shock_recommended"`
	AIReversibleCausesRequired     bool      `db:"ai_reversible_causes_required" json:"ai_reversible_causes_required"`
	HumanReversibleCausesCompleted bool      `db:"human_reversible_causes_completed" json:"human_reversible_causes_completed"`
	AIAirwayPlanAdequate           bool      `db:"ai_airway_plan_adequate" json:"ai_airway_plan_adequate"`
	HumanAirwayPlanAdequate        bool      `db:"human_airway_plan_adequate" json:"human_airway_plan_adequate"`
	ReviewerNote                   *string   `db:"reviewer_note" json:"reviewer_note,omitempty"`
	ReviewedBy                     *string   `db:"reviewed_by" json:"reviewed_by,omitempty"`
	CreatedAt                      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt                      time.Time `db:"updated_at" json:"updated_at"`
}

// ResuscitationSummary aggregates resuscitation audit outcomes.
type ResuscitationSummary struct {
	TotalAudits                       int     `json:"total_audits"`
	Matches                           int     `json:"matches"`
	UnderResuscitationRisk            int     `json:"under_resuscitation_risk"`
	OverResuscitationRisk             int     `json:"over_resuscitation_risk"`
	UnderResuscitationRiskRatePercent float64 `json:"under_resuscitation_risk_rate_percent"`
	OverResuscitationRiskRatePercent  float64 `json:"over_resuscitation_risk_rate_percent"`
	ShockRecommendedMatchRatePercent  float64 `json:"shock_recommended_match_rate_percent"`
	ReversibleCausesMatchRatePercent  float64 `json:"reversible_causes_match_rate_percent"`
	AirwayPlanMatchRatePercent        float64 `json:"airway_plan_match_rate_percent"`
}

// Quality status values for the global scorecard read.
const (
	QualityNoData    = "sin_datos"
	QualityDegraded  = "degradado"
	QualityAttention = "atencion"
	QualityStable    = "estable"
)

// DomainSummary is the normalized per-domain block of the scorecard.
type DomainSummary struct {
	TotalAudits      int     `json:"total_audits"`
	Matches          int     `json:"matches"`
	UnderEvents      int     `json:"under_events"`
	OverEvents       int     `json:"over_events"`
	UnderRatePercent float64 `json:"under_rate_percent"`
	OverRatePercent  float64 `json:"over_rate_percent"`
	MatchRatePercent float64 `json:"match_rate_percent"`
}

// Scorecard is the global quality read across every audit family.
type Scorecard struct {
	TotalAudits      int                      `json:"total_audits"`
	Matches          int                      `json:"matches"`
	UnderEvents      int                      `json:"under_events"`
	OverEvents       int                      `json:"over_events"`
	UnderRatePercent float64                  `json:"under_rate_percent"`
	OverRatePercent  float64                  `json:"over_rate_percent"`
	MatchRatePercent float64                  `json:"match_rate_percent"`
	QualityStatus    string                   `json:"quality_status"`
	Domains          map[string]DomainSummary `json:"domains"`
}
