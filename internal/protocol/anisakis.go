package protocol

// Anisakis reaction operational engine: exposure latency, allergic severity,
// diagnostic workup and discharge prevention guidance.

// AnisakisInput is the clinical-operational input for anisakis suspicion
// prioritization in the emergency department.
type AnisakisInput struct {
	FishIngestionLastHours       *float64 `json:"fish_ingestion_last_hours,omitempty"`
	RawOrUndercookedFishExposure bool     `json:"raw_or_undercooked_fish_exposure"`
	PreparationRiskPresent       bool     `json:"preparation_risk_present"`
	InsufficientCookingSuspected bool     `json:"insufficient_cooking_suspected"`

	DigestiveSymptomsPresent      bool `json:"digestive_symptoms_present"`
	UrticariaPresent              bool `json:"urticaria_present"`
	AngioedemaPresent             bool `json:"angioedema_present"`
	RespiratoryCompromisePresent  bool `json:"respiratory_compromise_present"`
	HypotensionPresent            bool `json:"hypotension_present"`
	AnaphylaxisPresent            bool `json:"anaphylaxis_present"`

	SpecificIgERequested        bool `json:"specific_ige_requested"`
	AnisakisSpecificIgEPositive bool `json:"anisakis_specific_ige_positive"`
	PrickTestPositive           bool `json:"prick_test_positive"`

	CookingTemperatureC                          *float64 `json:"cooking_temperature_c,omitempty"`
	FreezingTemperatureC                         *float64 `json:"freezing_temperature_c,omitempty"`
	FreezingDurationHours                        *float64 `json:"freezing_duration_hours,omitempty"`
	DeepSeaEvisceratedOrUltrafrozenFishConsumed  bool     `json:"deep_sea_eviscerated_or_ultrafrozen_fish_consumed"`
	TailCutPreferredConsumption                  bool     `json:"tail_cut_preferred_consumption"`

	Notes *string `json:"notes,omitempty"`
}

// AnisakisRecommendation is the structured anisakis support output.
type AnisakisRecommendation struct {
	SeverityLevel              Severity `json:"severity_level"`
	CriticalAlerts             []string `json:"critical_alerts"`
	DiagnosticActions          []string `json:"diagnostic_actions"`
	AcuteManagementActions     []string `json:"acute_management_actions"`
	DischargePreventionActions []string `json:"discharge_prevention_actions"`
	SafetyBlocks               []string `json:"safety_blocks"`
	InterpretabilityTrace      []string `json:"interpretability_trace"`
	HumanValidationRequired    bool     `json:"human_validation_required"`
	NonDiagnosticWarning       string   `json:"non_diagnostic_warning"`
}

func (in *AnisakisInput) Validate() error {
	if err := inRangeF("fish_ingestion_last_hours", in.FishIngestionLastHours, 0, 168); err != nil {
		return err
	}
	if err := inRangeF("cooking_temperature_c", in.CookingTemperatureC, -30, 300); err != nil {
		return err
	}
	if err := inRangeF("freezing_temperature_c", in.FreezingTemperatureC, -80, 40); err != nil {
		return err
	}
	if err := inRangeF("freezing_duration_hours", in.FreezingDurationHours, 0, 720); err != nil {
		return err
	}
	return validateNotes("notes", in.Notes)
}

// anisakisExposurePathway detects immediate reactions after fish ingestion.
func anisakisExposurePathway(in AnisakisInput) (criticalAlerts, diagnosticActions, trace []string) {
	recentIngestion := in.FishIngestionLastHours != nil && *in.FishIngestionLastHours <= 6
	riskExposure := in.RawOrUndercookedFishExposure || in.PreparationRiskPresent ||
		in.InsufficientCookingSuspected

	if recentIngestion && (in.UrticariaPresent || in.AngioedemaPresent || in.AnaphylaxisPresent ||
		in.RespiratoryCompromisePresent || in.HypotensionPresent) {
		criticalAlerts = append(criticalAlerts, "Sospecha de alergia a Anisakis por reaccion inmediata tras ingesta de pescado.")
		trace = append(trace, "Regla de latencia <=6h con fenotipo alergico activada.")
	}

	if riskExposure && (in.DigestiveSymptomsPresent || in.UrticariaPresent ||
		in.AngioedemaPresent || in.AnaphylaxisPresent) {
		diagnosticActions = append(diagnosticActions, "Diferenciar infestacion digestiva de reaccion alergica IgE mediada.")
	}

	return criticalAlerts, diagnosticActions, trace
}

// anisakisAllergySeverityPathway escalates severe anaphylaxis phenotypes.
func anisakisAllergySeverityPathway(in AnisakisInput) (criticalAlerts, acuteActions, safetyBlocks []string) {
	severeAllergy := in.AnaphylaxisPresent || in.RespiratoryCompromisePresent || in.HypotensionPresent
	if severeAllergy {
		criticalAlerts = append(criticalAlerts, "Fenotipo de anafilaxia grave: activar protocolo inmediato de anafilaxia.")
		acuteActions = append(acuteActions, "Priorizar estabilizacion ABC y adrenalina intramuscular segun protocolo local.")
	}

	if in.UrticariaPresent || in.AngioedemaPresent {
		acuteActions = append(acuteActions, "Vigilar progresion de sintomas cutaneo-mucosos y posible compromiso sistemico.")
	}

	suspicionAllergy := in.UrticariaPresent || in.AngioedemaPresent || severeAllergy
	if suspicionAllergy && !in.SpecificIgERequested {
		safetyBlocks = append(safetyBlocks, "Solicitar IgE especifica frente a Anisakis ante sospecha alergica.")
	}

	return criticalAlerts, acuteActions, safetyBlocks
}

// anisakisDiagnosticPathway orders allergologic confirmation.
func anisakisDiagnosticPathway(in AnisakisInput) (diagnosticActions, trace []string) {
	suspicionAllergy := in.UrticariaPresent || in.AngioedemaPresent || in.AnaphylaxisPresent ||
		in.RespiratoryCompromisePresent || in.HypotensionPresent
	if suspicionAllergy {
		diagnosticActions = append(diagnosticActions, "Solicitar IgE especifica frente a Anisakis simplex.")
		diagnosticActions = append(diagnosticActions, "Considerar prueba cutanea (prick test) en evaluacion alergologica diferida.")
	}

	if in.AnisakisSpecificIgEPositive || in.PrickTestPositive {
		trace = append(trace, "Biomarcadores de hipersensibilidad inmediata compatibles con anisakis.")
	}

	if in.DigestiveSymptomsPresent && !suspicionAllergy {
		diagnosticActions = append(diagnosticActions, "Cuadro digestivo sin fenotipo alergico: valorar carga parasitaria e infestacion.")
	}

	return diagnosticActions, trace
}

// anisakisDischargePreventionPathway issues freezing and cooking guidance.
func anisakisDischargePreventionPathway(in AnisakisInput) (preventionActions, safetyBlocks []string) {
	preventionActions = append(preventionActions, "Al alta: congelar pescado a -20 C durante al menos 72 horas.")
	preventionActions = append(preventionActions, "Al alta: cocinar por encima de 60 C, evitar vuelta y vuelta y microondas insuficiente.")
	preventionActions = append(preventionActions, "Priorizar pescado ultracongelado/eviscerado en altamar cuando sea posible.")
	preventionActions = append(preventionActions, "Reducir riesgo de exposicion priorizando piezas de cola frente a zonas proximas a la cabeza.")

	if (in.FreezingTemperatureC != nil && *in.FreezingTemperatureC > -20) ||
		(in.FreezingDurationHours != nil && *in.FreezingDurationHours < 72) {
		safetyBlocks = append(safetyBlocks, "Congelacion previa insuficiente: reforzar estandar -20 C por 72h.")
	}

	if (in.CookingTemperatureC != nil && *in.CookingTemperatureC <= 60) || in.InsufficientCookingSuspected {
		safetyBlocks = append(safetyBlocks, "Coccion insuficiente sospechada: reforzar cocinado completo >60 C.")
	}

	if !in.DeepSeaEvisceratedOrUltrafrozenFishConsumed {
		preventionActions = append(preventionActions, "Informar riesgo de migracion larvaria cuando no hay evisceracion temprana.")
	}

	return preventionActions, safetyBlocks
}

func anisakisSeverity(criticalAlerts, safetyBlocks []string, hasActions bool) Severity {
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

// EvaluateAnisakis builds the anisakis support recommendation.
func EvaluateAnisakis(in AnisakisInput) AnisakisRecommendation {
	criticalExposure, diagnosticExposure, traceExposure := anisakisExposurePathway(in)
	criticalAllergy, acuteActions, safetyAllergy := anisakisAllergySeverityPathway(in)
	diagnosticActions, traceDiagnostic := anisakisDiagnosticPathway(in)
	preventionActions, safetyPrevention := anisakisDischargePreventionPathway(in)

	criticalAlerts := append(append([]string{}, criticalExposure...), criticalAllergy...)
	safetyBlocks := append(append([]string{}, safetyAllergy...), safetyPrevention...)
	diagnosticActionsFull := append(append([]string{}, diagnosticExposure...), diagnosticActions...)
	hasActions := len(diagnosticActionsFull) > 0 || len(acuteActions) > 0 || len(preventionActions) > 0

	return AnisakisRecommendation{
		SeverityLevel:              anisakisSeverity(criticalAlerts, safetyBlocks, hasActions),
		CriticalAlerts:             criticalAlerts,
		DiagnosticActions:          diagnosticActionsFull,
		AcuteManagementActions:     acuteActions,
		DischargePreventionActions: preventionActions,
		SafetyBlocks:               safetyBlocks,
		InterpretabilityTrace:      append(append([]string{}, traceExposure...), traceDiagnostic...),
		HumanValidationRequired:    true,
		NonDiagnosticWarning:       "Soporte operativo no diagnostico. Requiere validacion por urgencias/alergologia.",
	}
}

func init() {
	register("anisakis", typed((*AnisakisInput).Validate, EvaluateAnisakis))
}
