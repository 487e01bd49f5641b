package protocol

import "strings"

// Genetic recurrence operational engine for osteogenesis imperfecta:
// germline mosaicism alerting, differential inheritance mechanisms and
// reproductive counseling consistency checks.

// GeneticRecurrenceInput is the clinical-operational input for genetic
// recurrence prioritization.
type GeneticRecurrenceInput struct {
	GestationalAgeWeeks *int `json:"gestational_age_weeks,omitempty"`

	AutosomalDominantConditionSuspected bool `json:"autosomal_dominant_condition_suspected"`
	OITypeIISuspected                   bool `json:"oi_type_ii_suspected"`
	COL1A1OrCOL1A2Involved              bool `json:"col1a1_or_col1a2_involved"`

	PreviousPregnancyWithSameCondition bool `json:"previous_pregnancy_with_same_condition"`
	RecurrentAffectedPregnanciesCount  *int `json:"recurrent_affected_pregnancies_count,omitempty"`

	ParentsPhenotypicallyUnaffected bool `json:"parents_phenotypically_unaffected"`
	MotherPhenotypicallyAffected    bool `json:"mother_phenotypically_affected"`
	FatherPhenotypicallyAffected    bool `json:"father_phenotypically_affected"`

	AutosomalRecessiveHypothesisActive  bool `json:"autosomal_recessive_hypothesis_active"`
	DeNovoHypothesisActive              bool `json:"de_novo_hypothesis_active"`
	IncompletePenetranceHypothesisActive bool `json:"incomplete_penetrance_hypothesis_active"`

	GermlineMosaicismConfirmed      bool `json:"germline_mosaicism_confirmed"`
	SomaticMosaicismOnlyConfirmed   bool `json:"somatic_mosaicism_only_confirmed"`
	MolecularConfirmationAvailable  bool `json:"molecular_confirmation_available"`
	ParentalGermlineTestingAvailable bool `json:"parental_germline_testing_available"`

	EstimatedMutatedGameteFractionPercent *float64 `json:"estimated_mutated_gamete_fraction_percent,omitempty"`

	Notes *string `json:"notes,omitempty"`
}

// GeneticRecurrenceRecommendation is the structured genetic recurrence
// support output.
type GeneticRecurrenceRecommendation struct {
	SeverityLevel                   Severity `json:"severity_level"`
	MosaicismAlertActive            bool     `json:"mosaicism_alert_active"`
	PrioritizedRecurrenceMechanism  string   `json:"prioritized_recurrence_mechanism"`
	EstimatedRecurrenceRiskPercent  *float64 `json:"estimated_recurrence_risk_percent"`
	CriticalAlerts                  []string `json:"critical_alerts"`
	RecurrenceInterpretationActions []string `json:"recurrence_interpretation_actions"`
	GeneticCounselingActions        []string `json:"genetic_counseling_actions"`
	DifferentialMechanisms          []string `json:"differential_mechanisms"`
	SafetyBlocks                    []string `json:"safety_blocks"`
	InterpretabilityTrace           []string `json:"interpretability_trace"`
	HumanValidationRequired         bool     `json:"human_validation_required"`
	NonDiagnosticWarning            string   `json:"non_diagnostic_warning"`
}

func (in *GeneticRecurrenceInput) Validate() error {
	if err := inRangeI("gestational_age_weeks", in.GestationalAgeWeeks, 0, 45); err != nil {
		return err
	}
	if in.RecurrentAffectedPregnanciesCount == nil {
		single := 1
		in.RecurrentAffectedPregnanciesCount = &single
	}
	if err := inRangeI("recurrent_affected_pregnancies_count", in.RecurrentAffectedPregnanciesCount, 0, 20); err != nil {
		return err
	}
	if err := inRangeF("estimated_mutated_gamete_fraction_percent", in.EstimatedMutatedGameteFractionPercent, 0, 100); err != nil {
		return err
	}
	return validateNotes("notes", in.Notes)
}

func geneticRecurrenceDetected(in GeneticRecurrenceInput) bool {
	count := 1
	if in.RecurrentAffectedPregnanciesCount != nil {
		count = *in.RecurrentAffectedPregnanciesCount
	}
	return in.PreviousPregnancyWithSameCondition || count >= 2
}

// geneticCoreRecurrencePathway prioritizes germline mosaicism over isolated
// de novo for recurrent dominant disease in unaffected parents.
func geneticCoreRecurrencePathway(in GeneticRecurrenceInput) (mosaicismAlertActive bool, prioritizedMechanism string, recurrenceRiskPercent *float64, criticalAlerts, recurrenceActions, trace []string) {
	recurrenceDetected := geneticRecurrenceDetected(in)
	dominantParentUnaffectedPattern := in.AutosomalDominantConditionSuspected &&
		recurrenceDetected && in.ParentsPhenotypicallyUnaffected
	oiDominantSignature := in.OITypeIISuspected && in.COL1A1OrCOL1A2Involved

	prioritizedMechanism = "indeterminado"
	recurrenceRiskPercent = in.EstimatedMutatedGameteFractionPercent

	if dominantParentUnaffectedPattern {
		mosaicismAlertActive = true
		prioritizedMechanism = "mosaicismo_germinal_probable"
		criticalAlerts = append(criticalAlerts, "Alerta de mosaicismo: recurrencia de enfermedad dominante en progenitores fenotipicamente sanos.")
		recurrenceActions = append(recurrenceActions, "Priorizar hipotesis de mosaicismo germinal frente a de novo aislado.")
		trace = append(trace, "Regla principal activada: patron dominante + recurrencia + padres sanos.")
	}

	if oiDominantSignature {
		recurrenceActions = append(recurrenceActions, "OI tipo II con COL1A1/COL1A2: reforzar ruta de consejo genetico y estimacion de riesgo de recurrencia.")
		trace = append(trace, "Firma molecular/clinica OI dominante detectada.")
	}

	if in.GermlineMosaicismConfirmed {
		mosaicismAlertActive = true
		prioritizedMechanism = "mosaicismo_germinal_confirmado"
		recurrenceActions = append(recurrenceActions, "Mosaicismo germinal confirmado: usar este mecanismo como base principal de asesoramiento reproductivo.")
		if recurrenceRiskPercent == nil {
			recurrenceActions = append(recurrenceActions, "Estimar fraccion de gametos mutados para cuantificar riesgo de recurrencia en futuras gestaciones.")
		} else {
			trace = append(trace, "Riesgo proporcional a fraccion germinal mutada reportada.")
		}
	}

	if recurrenceRiskPercent != nil && !in.GermlineMosaicismConfirmed {
		trace = append(trace, "Fraccion germinal mutada reportada sin confirmacion formal: validar origen del dato antes de usarlo en consejeria.")
	}

	if !in.AutosomalDominantConditionSuspected && !in.OITypeIISuspected && !in.COL1A1OrCOL1A2Involved {
		recurrenceActions = append(recurrenceActions, "Sin firma dominante especifica: mantener evaluacion etiologica abierta hasta confirmar mecanismo.")
	}

	return mosaicismAlertActive, prioritizedMechanism, recurrenceRiskPercent, criticalAlerts, recurrenceActions, trace
}

// geneticDifferentialPathway weighs alternative inheritance mechanisms.
func geneticDifferentialPathway(in GeneticRecurrenceInput, recurrenceDetected, dominantParentUnaffectedPattern bool) (differentialMechanisms, safetyBlocks, trace []string) {
	if in.AutosomalRecessiveHypothesisActive {
		differentialMechanisms = append(differentialMechanisms, "Herencia autosomica recesiva: confirmar portadores parentales y segregacion antes de priorizar.")
		if dominantParentUnaffectedPattern {
			trace = append(trace, "Hipotesis recesiva marcada como diferencial secundario por patron dominante recurrente.")
		}
	}

	if in.DeNovoHypothesisActive {
		differentialMechanisms = append(differentialMechanisms, "Mutacion de novo aislada: plausible en evento unico, menos probable si existe recurrencia repetida.")
		if recurrenceDetected {
			safetyBlocks = append(safetyBlocks, "Recurrencia detectada: no clasificar como de novo aislado sin descartar mosaicismo germinal.")
		}
	}

	if in.IncompletePenetranceHypothesisActive {
		differentialMechanisms = append(differentialMechanisms, "Penetrancia incompleta: considerar solo tras correlacion genotipo-fenotipo parental y evidencia familiar robusta.")
		if dominantParentUnaffectedPattern {
			safetyBlocks = append(safetyBlocks, "Penetrancia incompleta no debe desplazar la prioridad de mosaicismo en patron dominante recurrente con padres sanos.")
		}
	}

	if in.SomaticMosaicismOnlyConfirmed {
		differentialMechanisms = append(differentialMechanisms, "Mosaicismo somatico: puede explicar fenotipos en tejidos, pero no justifica por si solo transmision vertical.")
		if recurrenceDetected {
			safetyBlocks = append(safetyBlocks, "Mosaicismo somatico aislado no explica recurrencia vertical; investigar componente germinal.")
		}
	}

	return differentialMechanisms, safetyBlocks, trace
}

// geneticCounselingConsistencyPathway handles reproductive counseling and
// cross-field consistency checks.
func geneticCounselingConsistencyPathway(in GeneticRecurrenceInput, recurrenceDetected bool, prioritizedMechanism string) (counselingActions, safetyBlocks, trace []string) {
	if recurrenceDetected {
		counselingActions = append(counselingActions, "Activar consejo genetico reproductivo con explicacion de riesgo de recurrencia no trivial.")
		counselingActions = append(counselingActions, "Planificar ruta de diagnostico prenatal/preimplantacional segun protocolo institucional y preferencias familiares.")
	}

	if !in.MolecularConfirmationAvailable {
		safetyBlocks = append(safetyBlocks, "Sin confirmacion molecular: no cerrar mecanismo de recurrencia hasta validar variante y segregacion.")
	}

	if !in.ParentalGermlineTestingAvailable && strings.HasPrefix(prioritizedMechanism, "mosaicismo_germinal") {
		counselingActions = append(counselingActions, "Considerar estudio genetico parental dirigido para soportar hipotesis de mosaicismo germinal.")
	}

	if in.ParentsPhenotypicallyUnaffected &&
		(in.MotherPhenotypicallyAffected || in.FatherPhenotypicallyAffected) {
		safetyBlocks = append(safetyBlocks, "Inconsistencia fenotipica parental: revisar campos de entrada (padres sanos vs progenitor afectado).")
	}

	if in.GermlineMosaicismConfirmed && in.SomaticMosaicismOnlyConfirmed {
		safetyBlocks = append(safetyBlocks, "Mosaicismo germinal confirmado y somatico exclusivo marcados en paralelo: normalizar clasificacion del mecanismo.")
	}

	if in.GestationalAgeWeeks != nil && *in.GestationalAgeWeeks >= 24 {
		trace = append(trace, "Gestacion avanzada: priorizar decision operativa coordinada con obstetricia/genetica.")
	}

	return counselingActions, safetyBlocks, trace
}

func geneticSeverity(criticalAlerts, safetyBlocks []string, hasActions bool) Severity {
	if len(criticalAlerts) > 0 {
		return SeverityCritical
	}
	if len(safetyBlocks) > 0 {
		return SeverityHigh
	}
	if hasActions {
		return SeverityMedium
	}
	return SeverityLow
}

// EvaluateGeneticRecurrence builds the genetic recurrence support
// recommendation.
func EvaluateGeneticRecurrence(in GeneticRecurrenceInput) GeneticRecurrenceRecommendation {
	recurrenceDetected := geneticRecurrenceDetected(in)
	dominantParentUnaffectedPattern := in.AutosomalDominantConditionSuspected &&
		recurrenceDetected && in.ParentsPhenotypicallyUnaffected

	mosaicismAlertActive, prioritizedMechanism, recurrenceRiskPercent, criticalCore, recurrenceActions, coreTrace := geneticCoreRecurrencePathway(in)
	differentialMechanisms, differentialSafety, differentialTrace := geneticDifferentialPathway(in, recurrenceDetected, dominantParentUnaffectedPattern)
	counselingActions, counselingSafety, counselingTrace := geneticCounselingConsistencyPathway(in, recurrenceDetected, prioritizedMechanism)

	safetyBlocks := append(append([]string{}, differentialSafety...), counselingSafety...)
	hasActions := len(recurrenceActions) > 0 || len(counselingActions) > 0 || len(differentialMechanisms) > 0

	return GeneticRecurrenceRecommendation{
		SeverityLevel:                   geneticSeverity(criticalCore, safetyBlocks, hasActions),
		MosaicismAlertActive:            mosaicismAlertActive,
		PrioritizedRecurrenceMechanism:  prioritizedMechanism,
		EstimatedRecurrenceRiskPercent:  recurrenceRiskPercent,
		CriticalAlerts:                  criticalCore,
		RecurrenceInterpretationActions: recurrenceActions,
		GeneticCounselingActions:        counselingActions,
		DifferentialMechanisms:          differentialMechanisms,
		SafetyBlocks:                    safetyBlocks,
		InterpretabilityTrace:           append(append(append([]string{}, coreTrace...), differentialTrace...), counselingTrace...),
		HumanValidationRequired:         true,
		NonDiagnosticWarning:            "Soporte operativo no diagnostico. Requiere validacion por genetica clinica/obstetricia.",
	}
}

func init() {
	register("genetic_recurrence", typed((*GeneticRecurrenceInput).Validate, EvaluateGeneticRecurrence))
}
