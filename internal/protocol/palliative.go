package protocol

import "strings"

// Palliative care operational engine: ethical-legal routing, opioid renal
// safety, advanced dementia comfort feeding and delirium/neurotoxicity care.

// PalliativeInput is the clinical-operational input for palliative
// prioritization in the emergency department.
type PalliativeInput struct {
	PatientRejectsLifeProlongingTreatment    bool `json:"patient_rejects_life_prolonging_treatment"`
	InformedConsequencesDocumented           bool `json:"informed_consequences_documented"`
	ProfessionalFutilityAssessmentDocumented bool `json:"professional_futility_assessment_documented"`
	EffortAdequationPlanned                  bool `json:"effort_adequation_planned"`

	AidInDyingRequestExpressed            bool `json:"aid_in_dying_request_expressed"`
	AidInDyingRequestReiterated           bool `json:"aid_in_dying_request_reiterated"`
	AidInDyingProcessFormalizedPerLO32021 bool `json:"aid_in_dying_process_formalized_per_lo_3_2021"`

	RenalClearanceMlMin           *float64 `json:"renal_clearance_ml_min,omitempty"`
	RenalFailurePresent           bool     `json:"renal_failure_present"`
	CurrentOpioidName             *string  `json:"current_opioid_name,omitempty"`
	MorphineActive                bool     `json:"morphine_active"`
	ChronicPainBaselinePresent    bool     `json:"chronic_pain_baseline_present"`
	LongActingOpioidActive        bool     `json:"long_acting_opioid_active"`
	BreakthroughPainPresent       bool     `json:"breakthrough_pain_present"`
	RapidOnsetRescueOpioidPlanned bool     `json:"rapid_onset_rescue_opioid_planned"`
	TransmucosalFentanylPlanned   bool     `json:"transmucosal_fentanyl_planned"`

	AdvancedDementiaPresent            bool `json:"advanced_dementia_present"`
	DysphagiaOrOralIntakeRefusal       bool `json:"dysphagia_or_oral_intake_refusal"`
	EnteralTubeSNGOrPEGPlanned         bool `json:"enteral_tube_sng_or_peg_planned"`
	ComfortFeedingPlanned              bool `json:"comfort_feeding_planned"`
	AspirationInfectionTerminalContext bool `json:"aspiration_infection_terminal_context"`
	SharedAdvanceCarePlanAvailable     bool `json:"shared_advance_care_plan_available"`
	HospitalAdmissionPlanned           bool `json:"hospital_admission_planned"`

	RenalFunctionDeteriorationPresent     bool `json:"renal_function_deterioration_present"`
	IntenseSomnolencePresent              bool `json:"intense_somnolence_present"`
	TactileHallucinationsPresent          bool `json:"tactile_hallucinations_present"`
	DeliriumPresent                       bool `json:"delirium_present"`
	ReversibleCauseAddressed              bool `json:"reversible_cause_addressed"`
	NeurolepticPlanned                    bool `json:"neuroleptic_planned"`
	PersistentDeliriumAfterCauseTreatment bool `json:"persistent_delirium_after_cause_treatment"`
	SteroidPsychosisHyperactiveProfile    bool `json:"steroid_psychosis_hyperactive_profile"`

	Notes *string `json:"notes,omitempty"`
}

// PalliativeRecommendation is the structured palliative support output.
type PalliativeRecommendation struct {
	SeverityLevel             Severity `json:"severity_level"`
	CriticalAlerts            []string `json:"critical_alerts"`
	EthicalLegalActions       []string `json:"ethical_legal_actions"`
	OpioidSafetyActions       []string `json:"opioid_safety_actions"`
	DementiaComfortActions    []string `json:"dementia_comfort_actions"`
	DeliriumManagementActions []string `json:"delirium_management_actions"`
	SafetyBlocks              []string `json:"safety_blocks"`
	InterpretabilityTrace     []string `json:"interpretability_trace"`
	HumanValidationRequired   bool     `json:"human_validation_required"`
	NonDiagnosticWarning      string   `json:"non_diagnostic_warning"`
}

func (in *PalliativeInput) Validate() error {
	if err := inRangeF("renal_clearance_ml_min", in.RenalClearanceMlMin, 0, 300); err != nil {
		return err
	}
	if in.CurrentOpioidName != nil && len(*in.CurrentOpioidName) > 60 {
		return invalidf("current_opioid_name", "must be at most 60 characters")
	}
	return validateNotes("notes", in.Notes)
}

// palliativeEthicalLegalPathway separates patient autonomy, clinical effort
// adequation and the aid-in-dying legal circuit.
func palliativeEthicalLegalPathway(in PalliativeInput) (actions, safetyBlocks, trace []string) {
	if in.PatientRejectsLifeProlongingTreatment {
		actions = append(actions, "Rechazo a tratamiento: respetar decision del paciente tras informacion completa y documentada.")
		if !in.InformedConsequencesDocumented {
			safetyBlocks = append(safetyBlocks, "Rechazo informado no documentado: registrar consecuencias y capacidad de decision antes de cerrar la decision.")
		}
		trace = append(trace, "Ruta de rechazo informado del paciente activada.")
	}

	if in.EffortAdequationPlanned {
		actions = append(actions, "Adecuacion del esfuerzo terapeutico: evitar medidas futiles y priorizar proporcion clinica.")
		if !in.ProfessionalFutilityAssessmentDocumented {
			safetyBlocks = append(safetyBlocks, "Adecuacion sin fundamento de futilidad documentado por el equipo.")
		} else {
			trace = append(trace, "Ruta de adecuacion terapeutica por futilidad activada.")
		}
	}

	if in.PatientRejectsLifeProlongingTreatment && in.EffortAdequationPlanned {
		actions = append(actions, "Distinguir rechazo del paciente (autonomia) de adecuacion clinica profesional para seguridad etico-legal.")
	}

	if in.AidInDyingRequestExpressed {
		actions = append(actions, "Solicitud de prestacion de ayuda para morir: activar circuito legal especifico de la LO 3/2021.")
		if !in.AidInDyingRequestReiterated {
			safetyBlocks = append(safetyBlocks, "Solicitud expresada sin reiteracion documentada: no ejecutar procedimientos fuera del circuito legal.")
		}
		if !in.AidInDyingProcessFormalizedPerLO32021 {
			safetyBlocks = append(safetyBlocks, "Solicitud sin formalizacion legal completa: bloquear actuacion hasta completar requisitos normativos.")
		}
		if in.AidInDyingRequestReiterated && in.AidInDyingProcessFormalizedPerLO32021 {
			actions = append(actions, "Con circuito formalizado, diferenciar modalidad: administracion directa (eutanasia) vs autoadministracion (suicidio asistido).")
			trace = append(trace, "Ruta legal de ayuda para morir formalizada activada.")
		}
	}

	return actions, safetyBlocks, trace
}

// palliativeOpioidPathway covers renal opioid safety, baseline control and
// breakthrough rescue dosing.
func palliativeOpioidPathway(in PalliativeInput) (actions, criticalAlerts, trace []string) {
	opioidName := ""
	if in.CurrentOpioidName != nil {
		opioidName = strings.ToLower(strings.TrimSpace(*in.CurrentOpioidName))
	}
	renalRisk := in.RenalFailurePresent ||
		(in.RenalClearanceMlMin != nil && *in.RenalClearanceMlMin < 30)
	morphineInUse := in.MorphineActive || opioidName == "morfina"

	if renalRisk {
		actions = append(actions, "Insuficiencia renal: priorizar opioides con mejor perfil (fentanilo, metadona o buprenorfina) y evitar acumulacion neurotoxica.")
		if morphineInUse {
			criticalAlerts = append(criticalAlerts, "Morfina activa con insuficiencia renal: riesgo elevado de acumulacion de metabolitos neurotoxicos.")
			actions = append(actions, "Realizar rotacion opioide preferente a fentanilo o metadona (alternativa: buprenorfina segun contexto).")
			trace = append(trace, "Regla de seguridad renal con morfina activada.")
		}
	}

	if in.ChronicPainBaselinePresent && !in.LongActingOpioidActive {
		actions = append(actions, "Dolor cronico basal: considerar opioide de vida media larga/liberacion prolongada para control de base.")
	}

	if in.BreakthroughPainPresent {
		if in.RapidOnsetRescueOpioidPlanned {
			actions = append(actions, "Dolor irruptivo: mantener rescate de inicio rapido sobre tratamiento basal.")
			if in.TransmucosalFentanylPlanned {
				actions = append(actions, "Fentanilo oral transmucoso alineado con recomendacion de rescate rapido.")
			}
		} else {
			actions = append(actions, "Dolor irruptivo sin rescate rapido: ajustar pauta para evitar infra-tratamiento en picos agudos.")
		}
	}

	return actions, criticalAlerts, trace
}

// palliativeAdvancedDementiaPathway covers comfort feeding and proportional
// goals in terminal aspiration scenarios.
func palliativeAdvancedDementiaPathway(in PalliativeInput) (actions, criticalAlerts, trace []string) {
	if in.AdvancedDementiaPresent && in.DysphagiaOrOralIntakeRefusal {
		actions = append(actions, "Demencia avanzada con disfagia/rechazo de ingesta: priorizar alimentacion de confort.")
		if in.EnteralTubeSNGOrPEGPlanned {
			criticalAlerts = append(criticalAlerts, "SNG/PEG no indicada de rutina en demencia avanzada por baja utilidad y posible aumento de broncoaspiracion.")
		}
		if !in.ComfortFeedingPlanned {
			actions = append(actions, "Definir explicitamente plan de alimentacion de confort con familia/cuidador.")
		}
		trace = append(trace, "Ruta de demencia avanzada y nutricion de confort activada.")
	}

	if in.AspirationInfectionTerminalContext {
		actions = append(actions, "Broncoaspiracion en fase terminal: valorar medidas de confort y evitar intervenciones desproporcionadas.")
		if in.HospitalAdmissionPlanned && !in.SharedAdvanceCarePlanAvailable {
			criticalAlerts = append(criticalAlerts, "Decision de ingreso sin plan compartido previo en escenario terminal: revaluar proporcionalidad de objetivos.")
		}
		if !in.SharedAdvanceCarePlanAvailable {
			actions = append(actions, "Iniciar planificacion compartida de objetivos terapeuticos con familia/equipo de referencia.")
		}
	}

	return actions, criticalAlerts, trace
}

// palliativeDeliriumNeurotoxicityPathway detects the opioid neurotoxicity
// triad and gates symptomatic neuroleptic use.
func palliativeDeliriumNeurotoxicityPathway(in PalliativeInput) (actions, criticalAlerts, safetyBlocks, trace []string) {
	opioidNeurotoxicityPattern := in.RenalFunctionDeteriorationPresent &&
		in.IntenseSomnolencePresent && in.TactileHallucinationsPresent
	if opioidNeurotoxicityPattern {
		criticalAlerts = append(criticalAlerts, "Patron compatible con neurotoxicidad por opioides (fallo renal + somnolencia intensa + alucinaciones tactiles).")
		actions = append(actions, "Reducir dosis opioide al 50% o realizar rotacion a fentanilo/metadona segun estabilidad clinica.")
		trace = append(trace, "Regla de triada de neurotoxicidad opioide activada.")
	}

	if in.DeliriumPresent {
		actions = append(actions, "Delirium: buscar y corregir causa subyacente de forma prioritaria.")
		if !in.ReversibleCauseAddressed {
			safetyBlocks = append(safetyBlocks, "Delirium sin abordaje etiologico documentado: no limitarse a sedacion sintomatica.")
		}

		if in.NeurolepticPlanned {
			if in.PersistentDeliriumAfterCauseTreatment {
				actions = append(actions, "Uso sintomatico de neuroleptico razonable tras tratar causa reversible.")
			} else {
				safetyBlocks = append(safetyBlocks, "Neuroleptico planificado antes de confirmar persistencia post-correccion etiologica.")
			}
		}

		if in.SteroidPsychosisHyperactiveProfile {
			actions = append(actions, "Diferenciar delirium toxico hipoactivo de posible psicosis por corticoides (perfil hiperactivo/ansioso).")
		}
	}

	return actions, criticalAlerts, safetyBlocks, trace
}

func palliativeSeverity(criticalAlerts, safetyBlocks, actions []string) Severity {
	if len(criticalAlerts) > 0 {
		return SeverityCritical
	}
	if len(safetyBlocks) > 0 {
		return SeverityHigh
	}
	if len(actions) > 0 {
		return SeverityMedium
	}
	return SeverityLow
}

// EvaluatePalliative builds the palliative support recommendation.
func EvaluatePalliative(in PalliativeInput) PalliativeRecommendation {
	ethicalActions, ethicalSafety, traceEthical := palliativeEthicalLegalPathway(in)
	opioidActions, opioidCritical, traceOpioid := palliativeOpioidPathway(in)
	dementiaActions, dementiaCritical, traceDementia := palliativeAdvancedDementiaPathway(in)
	deliriumActions, deliriumCritical, deliriumSafety, traceDelirium := palliativeDeliriumNeurotoxicityPathway(in)

	criticalAlerts := append(append(append([]string{}, opioidCritical...), dementiaCritical...), deliriumCritical...)
	safetyBlocks := append(append([]string{}, ethicalSafety...), deliriumSafety...)
	allActions := append(append(append(append([]string{}, ethicalActions...), opioidActions...), dementiaActions...), deliriumActions...)

	return PalliativeRecommendation{
		SeverityLevel:             palliativeSeverity(criticalAlerts, safetyBlocks, allActions),
		CriticalAlerts:            criticalAlerts,
		EthicalLegalActions:       ethicalActions,
		OpioidSafetyActions:       opioidActions,
		DementiaComfortActions:    dementiaActions,
		DeliriumManagementActions: deliriumActions,
		SafetyBlocks:              safetyBlocks,
		InterpretabilityTrace:     append(append(append(append([]string{}, traceEthical...), traceOpioid...), traceDementia...), traceDelirium...),
		HumanValidationRequired:   true,
		NonDiagnosticWarning:      "Soporte operativo no diagnostico. Requiere validacion por paliativos/equipo de urgencias.",
	}
}

func init() {
	register("palliative", typed((*PalliativeInput).Validate, EvaluatePalliative))
}
