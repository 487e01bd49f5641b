package protocol

import "strings"

// Anesthesiology and resuscitation operational engine: rapid sequence
// induction (full stomach) airway safety and sympathetic pain block routing.

// AnesthesiologyInput is the clinical-operational input for anesthesiologic
// prioritization in the emergency department.
type AnesthesiologyInput struct {
	EmergencyAirwayNeeded        bool `json:"emergency_airway_needed"`
	NoPreopFasting               bool `json:"no_preop_fasting"`
	IntestinalObstructionPresent bool `json:"intestinal_obstruction_present"`
	AcuteHematemesisPresent      bool `json:"acute_hematemesis_present"`
	FullStomachRiskOther         bool `json:"full_stomach_risk_other"`

	PreoxygenationMinutesPlanned      *float64 `json:"preoxygenation_minutes_planned,omitempty"`
	BagMaskManualVentilationPlanned   bool     `json:"bag_mask_manual_ventilation_planned"`
	ExpectedIntubationSecondsAfterIV  *int     `json:"expected_intubation_seconds_after_iv,omitempty"`
	IVRouteConfirmed                  bool     `json:"iv_route_confirmed"`
	InhaledHalogenatedInductionPlanned bool    `json:"inhaled_halogenated_induction_planned"`
	HypnoticAgent                     *string  `json:"hypnotic_agent,omitempty"`
	NeuromuscularBlockerAgent         *string  `json:"neuromuscular_blocker_agent,omitempty"`
	SellickManeuverPlanned            bool     `json:"sellick_maneuver_planned"`
	TubePositionVerified              bool     `json:"tube_position_verified"`
	CuffInflated                      bool     `json:"cuff_inflated"`

	SeverePerinealOrPelvicInternalPain bool `json:"severe_perineal_or_pelvic_internal_pain"`
	PresacralMassPresent               bool `json:"presacral_mass_present"`
	NeuropathicPainComponent           bool `json:"neuropathic_pain_component"`
	VisceralPainComponent              bool `json:"visceral_pain_component"`
	VascularPainComponent              bool `json:"vascular_pain_component"`
	OpioidResponseInsufficient         bool `json:"opioid_response_insufficient"`
	OpioidEscalationNotTolerated       bool `json:"opioid_escalation_not_tolerated"`

	UpperAbdominalVisceralPain bool `json:"upper_abdominal_visceral_pain"`
	PelvicGenitalAutonomicPain bool `json:"pelvic_genital_autonomic_pain"`
	PerinealExternalGenitalPain bool `json:"perineal_external_genital_pain"`
	PerinealPelvicInternalPain  bool `json:"perineal_pelvic_internal_pain"`

	Notes *string `json:"notes,omitempty"`
}

// AnesthesiologyRecommendation is the structured anesthesiologic support output.
type AnesthesiologyRecommendation struct {
	SeverityLevel                    Severity `json:"severity_level"`
	CriticalAlerts                   []string `json:"critical_alerts"`
	RapidSequenceInductionActions    []string `json:"rapid_sequence_induction_actions"`
	AirwaySafetyBlocks               []string `json:"airway_safety_blocks"`
	SympatheticBlockRecommendations  []string `json:"sympathetic_block_recommendations"`
	DifferentialBlockRecommendations []string `json:"differential_block_recommendations"`
	InterpretabilityTrace            []string `json:"interpretability_trace"`
	HumanValidationRequired          bool     `json:"human_validation_required"`
	NonDiagnosticWarning             string   `json:"non_diagnostic_warning"`
}

func (in *AnesthesiologyInput) Validate() error {
	if err := inRangeF("preoxygenation_minutes_planned", in.PreoxygenationMinutesPlanned, 0, 20); err != nil {
		return err
	}
	if err := inRangeI("expected_intubation_seconds_after_iv", in.ExpectedIntubationSecondsAfterIV, 0, 600); err != nil {
		return err
	}
	if in.HypnoticAgent != nil && len(*in.HypnoticAgent) > 60 {
		return invalidf("hypnotic_agent", "must be at most 60 characters")
	}
	if in.NeuromuscularBlockerAgent != nil && len(*in.NeuromuscularBlockerAgent) > 60 {
		return invalidf("neuromuscular_blocker_agent", "must be at most 60 characters")
	}
	return validateNotes("notes", in.Notes)
}

// anesthRSIPathway covers full stomach rapid sequence induction safety.
func anesthRSIPathway(in AnesthesiologyInput) (criticalAlerts, rsiActions, safetyBlocks, trace []string) {
	rsiTrigger := in.NoPreopFasting || in.IntestinalObstructionPresent ||
		in.AcuteHematemesisPresent || in.FullStomachRiskOther

	if in.IntestinalObstructionPresent || in.AcuteHematemesisPresent {
		rsiActions = append(rsiActions, "Priorizar kit de induccion de secuencia rapida (ISR) en modulo de via aerea.")
		trace = append(trace, "Regla de priorizacion automatica ISR por obstruccion/hematemesis activada.")
	}

	if !(in.EmergencyAirwayNeeded && rsiTrigger) {
		return criticalAlerts, rsiActions, safetyBlocks, trace
	}

	rsiActions = append(rsiActions, "Preoxigenar con FiO2 alta durante 3-5 minutos antes de la induccion.")

	if in.PreoxygenationMinutesPlanned != nil {
		if *in.PreoxygenationMinutesPlanned < 3 {
			safetyBlocks = append(safetyBlocks, "Preoxigenacion por debajo del minimo operativo de 3 minutos.")
		}
		if *in.PreoxygenationMinutesPlanned > 5 {
			safetyBlocks = append(safetyBlocks, "Preoxigenacion fuera de ventana ISR (3-5 minutos).")
		}
	}

	if in.BagMaskManualVentilationPlanned {
		criticalAlerts = append(criticalAlerts, "Evitar ventilacion manual con bolsa-mascarilla durante ISR por riesgo de distension gastrica/regurgitacion.")
	}

	if in.ExpectedIntubationSecondsAfterIV != nil &&
		!(*in.ExpectedIntubationSecondsAfterIV >= 45 && *in.ExpectedIntubationSecondsAfterIV <= 60) {
		safetyBlocks = append(safetyBlocks, "Objetivo tecnico de intubacion ISR fuera de ventana 45-60 segundos.")
	}

	if !in.IVRouteConfirmed {
		criticalAlerts = append(criticalAlerts, "ISR requiere administracion IV exclusiva; acceso no confirmado.")
	}

	if in.InhaledHalogenatedInductionPlanned {
		safetyBlocks = append(safetyBlocks, "Bloquear induccion inhalatoria con halogenados en ISR por lentitud.")
	}

	hypnotic := ""
	if in.HypnoticAgent != nil {
		hypnotic = strings.ToLower(strings.TrimSpace(*in.HypnoticAgent))
	}
	blocker := ""
	if in.NeuromuscularBlockerAgent != nil {
		blocker = strings.ToLower(strings.TrimSpace(*in.NeuromuscularBlockerAgent))
	}
	if hypnotic != "" && hypnotic != "propofol" {
		rsiActions = append(rsiActions, "Hipnotico distinto de propofol: confirmar protocolo local y estabilidad.")
	}
	if hypnotic == "" {
		safetyBlocks = append(safetyBlocks, "No se documento hipnotico para ISR.")
	}
	if blocker != "" && blocker != "rocuronio" {
		rsiActions = append(rsiActions, "Bloqueante distinto de rocuronio: validar equivalencia y tiempos de inicio.")
	}
	if blocker == "" {
		safetyBlocks = append(safetyBlocks, "No se documento bloqueante neuromuscular para ISR.")
	}

	if !in.SellickManeuverPlanned {
		safetyBlocks = append(safetyBlocks, "Considerar maniobra de Sellick para reducir riesgo de regurgitacion.")
	} else {
		rsiActions = append(rsiActions, "Mantener Sellick hasta verificar tubo e inflado de neumotaponamiento.")
		if in.TubePositionVerified && in.CuffInflated {
			rsiActions = append(rsiActions, "Tras verificar posicion y cuff inflado, puede finalizarse la maniobra de Sellick.")
		} else {
			safetyBlocks = append(safetyBlocks, "Sellick no debe retirarse hasta confirmar posicion del tubo y cuff inflado.")
		}
	}

	trace = append(trace, "Ruta ISR de estomago lleno y seguridad de via aerea activada.")
	return criticalAlerts, rsiActions, safetyBlocks, trace
}

// anesthPainBlockPathway routes sympathetic and differential nerve blocks.
func anesthPainBlockPathway(in AnesthesiologyInput) (blockRecommendations, differentialRecommendations, trace []string) {
	refractoryOrIntolerantOpioids := in.OpioidResponseInsufficient || in.OpioidEscalationNotTolerated

	if in.PresacralMassPresent && in.SeverePerinealOrPelvicInternalPain && refractoryOrIntolerantOpioids {
		blockRecommendations = append(blockRecommendations, "Masa presacra + dolor perineal/pelvico + opioides insuficientes/no tolerados: sugerir bloqueo del ganglio impar como eleccion.")
		trace = append(trace, "Regla de eleccion de ganglio impar por masa presacra activada.")
	} else if in.SeverePerinealOrPelvicInternalPain {
		blockRecommendations = append(blockRecommendations, "Dolor perineal/pelvico interno: considerar bloqueo del ganglio impar.")
	}

	if in.NeuropathicPainComponent || in.VisceralPainComponent || in.VascularPainComponent {
		blockRecommendations = append(blockRecommendations, "Ganglio impar cubre dolor neuropatico/visceral/vascular de pelvis interna y perine.")
	}

	if in.UpperAbdominalVisceralPain {
		differentialRecommendations = append(differentialRecommendations, "Dolor abdominal alto visceral: priorizar bloqueo de plexo celiaco.")
	}
	if in.PelvicGenitalAutonomicPain {
		differentialRecommendations = append(differentialRecommendations, "Dolor/disfuncion autonomica pelvica-genital: valorar bloqueo de nervios esplacnicos.")
	}
	if in.PerinealExternalGenitalPain {
		differentialRecommendations = append(differentialRecommendations, "Dolor de perine/genitales externos: valorar bloqueo de nervios pudendos.")
	}
	if in.PerinealPelvicInternalPain {
		differentialRecommendations = append(differentialRecommendations, "Dolor perineal/pelvico interno visceral: priorizar bloqueo de ganglio impar.")
	}

	return blockRecommendations, differentialRecommendations, trace
}

func anesthSeverity(criticalAlerts, safetyBlocks, rsiActions, blockRecommendations []string) Severity {
	if len(criticalAlerts) > 0 {
		return SeverityCritical
	}
	if len(safetyBlocks) > 0 {
		return SeverityHigh
	}
	if len(rsiActions) > 0 || len(blockRecommendations) > 0 {
		return SeverityMedium
	}
	return SeverityLow
}

// EvaluateAnesthesiology builds the anesthesiology support recommendation.
func EvaluateAnesthesiology(in AnesthesiologyInput) AnesthesiologyRecommendation {
	criticalAlerts, rsiActions, safetyBlocks, traceRSI := anesthRSIPathway(in)
	blockRecommendations, differentialRecommendations, traceBlocks := anesthPainBlockPathway(in)

	return AnesthesiologyRecommendation{
		SeverityLevel:                    anesthSeverity(criticalAlerts, safetyBlocks, rsiActions, blockRecommendations),
		CriticalAlerts:                   criticalAlerts,
		RapidSequenceInductionActions:    rsiActions,
		AirwaySafetyBlocks:               safetyBlocks,
		SympatheticBlockRecommendations:  blockRecommendations,
		DifferentialBlockRecommendations: differentialRecommendations,
		InterpretabilityTrace:            append(append([]string{}, traceRSI...), traceBlocks...),
		HumanValidationRequired:          true,
		NonDiagnosticWarning:             "Soporte operativo no diagnostico. Requiere validacion por anestesia/reanimacion y urgencias.",
	}
}

func init() {
	register("anesthesiology", typed((*AnesthesiologyInput).Validate, EvaluateAnesthesiology))
}
