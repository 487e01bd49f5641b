package audit

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edops/edops/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type auditRepoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &auditRepoPG{pool: pool}
}

func (r *auditRepoPG) conn(ctx context.Context) queryable {
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

// listSuffix builds the shared filter and ordering tail of a list query.
func listSuffix(careTaskID *uuid.UUID, limit int, args *[]interface{}) string {
	sql := ""
	if careTaskID != nil {
		*args = append(*args, *careTaskID)
		sql += fmt.Sprintf(" WHERE care_task_id = $%d", len(*args))
	}
	sql += " ORDER BY created_at DESC, id DESC"
	if limit > 0 {
		*args = append(*args, limit)
		sql += fmt.Sprintf(" LIMIT $%d", len(*args))
	}
	return sql
}

const triageCols = `id, care_task_id, agent_run_id, ai_recommended_level,
	human_validated_level, classification, reviewer_note, reviewed_by,
	created_at, updated_at`

func (r *auditRepoPG) UpsertTriage(ctx context.Context, a *TriageAudit) error {
	a.ID = uuid.New()
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO triage_audits (id, care_task_id, agent_run_id,
			ai_recommended_level, human_validated_level, classification,
			reviewer_note, reviewed_by)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		ON CONFLICT (agent_run_id) DO UPDATE SET
			ai_recommended_level = EXCLUDED.ai_recommended_level,
			human_validated_level = EXCLUDED.human_validated_level,
			classification = EXCLUDED.classification,
			reviewer_note = EXCLUDED.reviewer_note,
			reviewed_by = EXCLUDED.reviewed_by,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`,
		a.ID, a.CareTaskID, a.AgentRunID, a.AIRecommendedLevel,
		a.HumanValidatedLevel, a.Classification, a.ReviewerNote, a.ReviewedBy,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
}

func (r *auditRepoPG) ListTriage(ctx context.Context, careTaskID *uuid.UUID, limit int) ([]*TriageAudit, error) {
	args := []interface{}{}
	sql := `SELECT ` + triageCols + ` FROM triage_audits` + listSuffix(careTaskID, limit, &args)
	rows, err := r.conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*TriageAudit
	for rows.Next() {
		var a TriageAudit
		if err := rows.Scan(&a.ID, &a.CareTaskID, &a.AgentRunID, &a.AIRecommendedLevel,
			&a.HumanValidatedLevel, &a.Classification, &a.ReviewerNote, &a.ReviewedBy,
			&a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, &a)
	}
	return items, rows.Err()
}

const screeningCols = `id, care_task_id, agent_run_id, ai_geriatric_risk_level,
	human_validated_risk_level, classification,
	ai_hiv_screening_suggested, human_hiv_screening_suggested,
	ai_sepsis_route_suggested, human_sepsis_route_suggested,
	ai_persistent_covid_suspected, human_persistent_covid_suspected,
	ai_long_acting_candidate, human_long_acting_candidate,
	reviewer_note, reviewed_by, created_at, updated_at`

func (r *auditRepoPG) UpsertScreening(ctx context.Context, a *ScreeningAudit) error {
	a.ID = uuid.New()
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO screening_audits (id, care_task_id, agent_run_id,
			ai_geriatric_risk_level, human_validated_risk_level, classification,
			ai_hiv_screening_suggested, human_hiv_screening_suggested,
			ai_sepsis_route_suggested, human_sepsis_route_suggested,
			ai_persistent_covid_suspected, human_persistent_covid_suspected,
			ai_long_acting_candidate, human_long_acting_candidate,
			reviewer_note, reviewed_by)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
		ON CONFLICT (agent_run_id) DO UPDATE SET
			ai_geriatric_risk_level = EXCLUDED.ai_geriatric_risk_level,
			human_validated_risk_level = EXCLUDED.human_validated_risk_level,
			classification = EXCLUDED.classification,
			ai_hiv_screening_suggested = EXCLUDED.ai_hiv_screening_suggested,
			human_hiv_screening_suggested = EXCLUDED.human_hiv_screening_suggested,
			ai_sepsis_route_suggested = EXCLUDED.ai_sepsis_route_suggested,
			human_sepsis_route_suggested = EXCLUDED.human_sepsis_route_suggested,
			ai_persistent_covid_suspected = EXCLUDED.ai_persistent_covid_suspected,
			human_persistent_covid_suspected = EXCLUDED.human_persistent_covid_suspected,
			ai_long_acting_candidate = EXCLUDED.ai_long_acting_candidate,
			human_long_acting_candidate = EXCLUDED.human_long_acting_candidate,
			reviewer_note = EXCLUDED.reviewer_note,
			reviewed_by = EXCLUDED.reviewed_by,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`,
		a.ID, a.CareTaskID, a.AgentRunID,
		a.AIGeriatricRiskLevel, a.HumanValidatedRiskLevel, a.Classification,
		a.AIHIVScreeningSuggested, a.HumanHIVScreeningSuggested,
		a.AISepsisRouteSuggested, a.HumanSepsisRouteSuggested,
		a.AIPersistentCovidSuspected, a.HumanPersistentCovidSuspected,
		a.AILongActingCandidate, a.HumanLongActingCandidate,
		a.ReviewerNote, a.ReviewedBy,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
}

func (r *auditRepoPG) ListScreening(ctx context.Context, careTaskID *uuid.UUID, limit int) ([]*ScreeningAudit, error) {
	args := []interface{}{}
	sql := `SELECT ` + screeningCols + ` FROM screening_audits` + listSuffix(careTaskID, limit, &args)
	rows, err := r.conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*ScreeningAudit
	for rows.Next() {
		var a ScreeningAudit
		if err := rows.Scan(&a.ID, &a.CareTaskID, &a.AgentRunID, &a.AIGeriatricRiskLevel,
			&a.HumanValidatedRiskLevel, &a.Classification,
			&a.AIHIVScreeningSuggested, &a.HumanHIVScreeningSuggested,
			&a.AISepsisRouteSuggested, &a.HumanSepsisRouteSuggested,
			&a.AIPersistentCovidSuspected, &a.HumanPersistentCovidSuspected,
			&a.AILongActingCandidate, &a.HumanLongActingCandidate,
			&a.ReviewerNote, &a.ReviewedBy, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, &a)
	}
	return items, rows.Err()
}

const medicolegalCols = `id, care_task_id, agent_run_id, ai_legal_risk_level,
	human_validated_legal_risk_level, classification,
	ai_consent_required, human_consent_required,
	ai_judicial_notification_required, human_judicial_notification_required,
	ai_chain_of_custody_required, human_chain_of_custody_required,
	reviewer_note, reviewed_by, created_at, updated_at`

func (r *auditRepoPG) UpsertMedicolegal(ctx context.Context, a *MedicolegalAudit) error {
	a.ID = uuid.New()
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO medicolegal_audits (id, care_task_id, agent_run_id,
			ai_legal_risk_level, human_validated_legal_risk_level, classification,
			ai_consent_required, human_consent_required,
			ai_judicial_notification_required, human_judicial_notification_required,
			ai_chain_of_custody_required, human_chain_of_custody_required,
			reviewer_note, reviewed_by)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
		ON CONFLICT (agent_run_id) DO UPDATE SET
			ai_legal_risk_level = EXCLUDED.ai_legal_risk_level,
			human_validated_legal_risk_level = EXCLUDED.human_validated_legal_risk_level,
			classification = EXCLUDED.classification,
			ai_consent_required = EXCLUDED.ai_consent_required,
			human_consent_required = EXCLUDED.human_consent_required,
			ai_judicial_notification_required = EXCLUDED.ai_judicial_notification_required,
			human_judicial_notification_required = EXCLUDED.human_judicial_notification_required,
			ai_chain_of_custody_required = EXCLUDED.ai_chain_of_custody_required,
			human_chain_of_custody_required = EXCLUDED.human_chain_of_custody_required,
			reviewer_note = EXCLUDED.reviewer_note,
			reviewed_by = EXCLUDED.reviewed_by,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`,
		a.ID, a.CareTaskID, a.AgentRunID,
		a.AILegalRiskLevel, a.HumanValidatedLegalRiskLevel, a.Classification,
		a.AIConsentRequired, a.HumanConsentRequired,
		a.AIJudicialNotificationRequired, a.HumanJudicialNotificationRequired,
		a.AIChainOfCustodyRequired, a.HumanChainOfCustodyRequired,
		a.ReviewerNote, a.ReviewedBy,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
}

func (r *auditRepoPG) ListMedicolegal(ctx context.Context, careTaskID *uuid.UUID, limit int) ([]*MedicolegalAudit, error) {
	args := []interface{}{}
	sql := `SELECT ` + medicolegalCols + ` FROM medicolegal_audits` + listSuffix(careTaskID, limit, &args)
	rows, err := r.conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*MedicolegalAudit
	for rows.Next() {
		var a MedicolegalAudit
		if err := rows.Scan(&a.ID, &a.CareTaskID, &a.AgentRunID, &a.AILegalRiskLevel,
			&a.HumanValidatedLegalRiskLevel, &a.Classification,
			&a.AIConsentRequired, &a.HumanConsentRequired,
			&a.AIJudicialNotificationRequired, &a.HumanJudicialNotificationRequired,
			&a.AIChainOfCustodyRequired, &a.HumanChainOfCustodyRequired,
			&a.ReviewerNote, &a.ReviewedBy, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, &a)
	}
	return items, rows.Err()
}

const scasestCols = `id, care_task_id, agent_run_id, ai_high_risk_scasest,
	human_validated_high_risk_scasest, classification,
	ai_escalation_required, human_escalation_required,
	ai_immediate_antiischemic_strategy, human_immediate_antiischemic_strategy,
	reviewer_note, reviewed_by, created_at, updated_at`

func (r *auditRepoPG) UpsertScasest(ctx context.Context, a *ScasestAudit) error {
	a.ID = uuid.New()
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO scasest_audits (id, care_task_id, agent_run_id,
			ai_high_risk_scasest, human_validated_high_risk_scasest, classification,
			ai_escalation_required, human_escalation_required,
			ai_immediate_antiischemic_strategy, human_immediate_antiischemic_strategy,
			reviewer_note, reviewed_by)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		ON CONFLICT (agent_run_id) DO UPDATE SET
			ai_high_risk_scasest = EXCLUDED.ai_high_risk_scasest,
			human_validated_high_risk_scasest = EXCLUDED.human_validated_high_risk_scasest,
			classification = EXCLUDED.classification,
			ai_escalation_required = EXCLUDED.ai_escalation_required,
			human_escalation_required = EXCLUDED.human_escalation_required,
			ai_immediate_antiischemic_strategy = EXCLUDED.ai_immediate_antiischemic_strategy,
			human_immediate_antiischemic_strategy = EXCLUDED.human_immediate_antiischemic_strategy,
			reviewer_note = EXCLUDED.reviewer_note,
			reviewed_by = EXCLUDED.reviewed_by,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`,
		a.ID, a.CareTaskID, a.AgentRunID,
		a.AIHighRiskScasest, a.HumanValidatedHighRiskScasest, a.Classification,
		a.AIEscalationRequired, a.HumanEscalationRequired,
		a.AIImmediateAntiischemicStrategy, a.HumanImmediateAntiischemicStrategy,
		a.ReviewerNote, a.ReviewedBy,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
}

func (r *auditRepoPG) ListScasest(ctx context.Context, careTaskID *uuid.UUID, limit int) ([]*ScasestAudit, error) {
	args := []interface{}{}
	sql := `SELECT ` + scasestCols + ` FROM scasest_audits` + listSuffix(careTaskID, limit, &args)
	rows, err := r.conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*ScasestAudit
	for rows.Next() {
		var a ScasestAudit
		if err := rows.Scan(&a.ID, &a.CareTaskID, &a.AgentRunID, &a.AIHighRiskScasest,
			&a.HumanValidatedHighRiskScasest, &a.Classification,
			&a.AIEscalationRequired, &a.HumanEscalationRequired,
			&a.AIImmediateAntiischemicStrategy, &a.HumanImmediateAntiischemicStrategy,
			&a.ReviewerNote, &a.ReviewedBy, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, &a)
	}
	return items, rows.Err()
}

const cardioRiskCols = `id, care_task_id, agent_run_id, ai_risk_level,
	human_validated_risk_level, classification,
	ai_non_hdl_target_required, human_non_hdl_target_required,
	ai_pharmacologic_strategy_suggested, human_pharmacologic_strategy_suggested,
	ai_intensive_lifestyle_required, human_intensive_lifestyle_required,
	reviewer_note, reviewed_by, created_at, updated_at`

func (r *auditRepoPG) UpsertCardioRisk(ctx context.Context, a *CardioRiskAudit) error {
	a.ID = uuid.New()
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO cardio_risk_audits (id, care_task_id, agent_run_id,
			ai_risk_level, human_validated_risk_level, classification,
			ai_non_hdl_target_required, human_non_hdl_target_required,
			ai_pharmacologic_strategy_suggested, human_pharmacologic_strategy_suggested,
			ai_intensive_lifestyle_required, human_intensive_lifestyle_required,
			reviewer_note, reviewed_by)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
		ON CONFLICT (agent_run_id) DO UPDATE SET
			ai_risk_level = EXCLUDED.ai_risk_level,
			human_validated_risk_level = EXCLUDED.human_validated_risk_level,
			classification = EXCLUDED.classification,
			ai_non_hdl_target_required = EXCLUDED.ai_non_hdl_target_required,
			human_non_hdl_target_required = EXCLUDED.human_non_hdl_target_required,
			ai_pharmacologic_strategy_suggested = EXCLUDED.ai_pharmacologic_strategy_suggested,
			human_pharmacologic_strategy_suggested = EXCLUDED.human_pharmacologic_strategy_suggested,
			ai_intensive_lifestyle_required = EXCLUDED.ai_intensive_lifestyle_required,
			human_intensive_lifestyle_required = EXCLUDED.human_intensive_lifestyle_required,
			reviewer_note = EXCLUDED.reviewer_note,
			reviewed_by = EXCLUDED.reviewed_by,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`,
		a.ID, a.CareTaskID, a.AgentRunID,
		a.AIRiskLevel, a.HumanValidatedRiskLevel, a.Classification,
		a.AINonHDLTargetRequired, a.HumanNonHDLTargetRequired,
		a.AIPharmacologicStrategySuggested, a.HumanPharmacologicStrategySuggested,
		a.AIIntensiveLifestyleRequired, a.HumanIntensiveLifestyleRequired,
		a.ReviewerNote, a.ReviewedBy,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
}

func (r *auditRepoPG) ListCardioRisk(ctx context.Context, careTaskID *uuid.UUID, limit int) ([]*CardioRiskAudit, error) {
	args := []interface{}{}
	sql := `SELECT ` + cardioRiskCols + ` FROM cardio_risk_audits` + listSuffix(careTaskID, limit, &args)
	rows, err := r.conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*CardioRiskAudit
	for rows.Next() {
		var a CardioRiskAudit
		if err := rows.Scan(&a.ID, &a.CareTaskID, &a.AgentRunID, &a.AIRiskLevel,
			&a.HumanValidatedRiskLevel, &a.Classification,
			&a.AINonHDLTargetRequired, &a.HumanNonHDLTargetRequired,
			&a.AIPharmacologicStrategySuggested, &a.HumanPharmacologicStrategySuggested,
			&a.AIIntensiveLifestyleRequired, &a.HumanIntensiveLifestyleRequired,
			&a.ReviewerNote, &a.ReviewedBy, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, &a)
	}
	return items, rows.Err()
}

const resuscitationCols = `id, care_task_id, agent_run_id, ai_severity_level,
	human_validated_severity_level, classification,
	ai_shock_recommended, human_shock_recommended,
	ai_reversible_causes_required, human_reversible_causes_completed,
	ai_airway_plan_adequate, human_airway_plan_adequate,
	reviewer_note, reviewed_by, created_at, updated_at`

func (r *auditRepoPG) UpsertResuscitation(ctx context.Context, a *ResuscitationAudit) error {
	a.ID = uuid.New()
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO resuscitation_audits (id, care_task_id, agent_run_id,
			ai_severity_level, human_validated_severity_level, classification,
			ai_shock_recommended, human_shock_recommended,
			ai_reversible_causes_required, human_reversible_causes_completed,
			ai_airway_plan_adequate, human_airway_plan_adequate,
			reviewer_note, reviewed_by)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
		ON CONFLICT (agent_run_id) DO UPDATE SET
			ai_severity_level = EXCLUDED.ai_severity_level,
			human_validated_severity_level = EXCLUDED.human_validated_severity_level,
			classification = EXCLUDED.classification,
			ai_shock_recommended = EXCLUDED.ai_shock_recommended,
			human_shock_recommended = EXCLUDED.human_shock_recommended,
			ai_reversible_causes_required = EXCLUDED.ai_reversible_causes_required,
			human_reversible_causes_completed = EXCLUDED.human_reversible_causes_completed,
			ai_airway_plan_adequate = EXCLUDED.ai_airway_plan_adequate,
			human_airway_plan_adequate = EXCLUDED.human_airway_plan_adequate,
			reviewer_note = EXCLUDED.reviewer_note,
			reviewed_by = EXCLUDED.reviewed_by,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`,
		a.ID, a.CareTaskID, a.AgentRunID,
		a.AISeverityLevel, a.HumanValidatedSeverityLevel, a.Classification,
		a.AIShockRecommended, a.HumanShockRecommended,
		a.AIReversibleCausesRequired, a.HumanReversibleCausesCompleted,
		a.AIAirwayPlanAdequate, a.HumanAirwayPlanAdequate,
		a.ReviewerNote, a.ReviewedBy,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
}

func (r *auditRepoPG) ListResuscitation(ctx context.Context, careTaskID *uuid.UUID, limit int) ([]*ResuscitationAudit, error) {
	args := []interface{}{}
	sql := `SELECT ` + resuscitationCols + ` FROM resuscitation_audits` + listSuffix(careTaskID, limit, &args)
	rows, err := r.conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*ResuscitationAudit
	for rows.Next() {
		var a ResuscitationAudit
		if err := rows.Scan(&a.ID, &a.CareTaskID, &a.AgentRunID, &a.AISeverityLevel,
			&a.HumanValidatedSeverityLevel, &a.Classification,
			&a.AIShockRecommended, &a.HumanShockRecommended,
			&a.AIReversibleCausesRequired, &a.HumanReversibleCausesCompleted,
			&a.AIAirwayPlanAdequate, &a.HumanAirwayPlanAdequate,
			&a.ReviewerNote, &a.ReviewedBy, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, &a)
	}
	return items, rows.Err()
}
