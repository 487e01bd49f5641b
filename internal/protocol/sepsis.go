package protocol

import "fmt"

// Sepsis operational support: accelerates first-hour bundle and escalation
// without replacing clinical judgment.

// SepsisInput captures the clinical-operational facts for a sepsis screen.
type SepsisInput struct {
	SuspectedInfection        bool     `json:"suspected_infection"`
	RespiratoryRateRPM        *int     `json:"respiratory_rate_rpm,omitempty"`
	SystolicBP                *int     `json:"systolic_bp,omitempty"`
	AlteredMentalStatus       bool     `json:"altered_mental_status"`
	LactateMmolL              *float64 `json:"lactate_mmol_l,omitempty"`
	MAPmmHg                   *int     `json:"map_mmhg,omitempty"`
	BloodCulturesCollected    bool     `json:"blood_cultures_collected"`
	AntibioticsStarted        bool     `json:"antibiotics_started"`
	FluidBolusMlPerKg         *int     `json:"fluid_bolus_ml_per_kg,omitempty"`
	VasopressorStarted        bool     `json:"vasopressor_started"`
	TimeSinceDetectionMinutes *int     `json:"time_since_detection_minutes,omitempty"`
	ProbableFocus             *string  `json:"probable_focus,omitempty"`
	Notes                     *string  `json:"notes,omitempty"`
}

// SepsisRecommendation is the structured output of the sepsis evaluator.
type SepsisRecommendation struct {
	QSOFAScore              int      `json:"qsofa_score"`
	HighSepsisRisk          bool     `json:"high_sepsis_risk"`
	SepticShockSuspected    bool     `json:"septic_shock_suspected"`
	OneHourBundleActions    []string `json:"one_hour_bundle_actions"`
	EscalationActions       []string `json:"escalation_actions"`
	Alerts                  []string `json:"alerts"`
	SeverityLevel           Severity `json:"severity_level"`
	InterpretabilityTrace   []string `json:"interpretability_trace"`
	HumanValidationRequired bool     `json:"human_validation_required"`
	NonDiagnosticWarning    string   `json:"non_diagnostic_warning"`
}

func (in *SepsisInput) Validate() error {
	if in.RespiratoryRateRPM != nil && *in.RespiratoryRateRPM < 0 {
		return invalidf("respiratory_rate_rpm", "must be >= 0")
	}
	if in.SystolicBP != nil && *in.SystolicBP < 20 {
		return invalidf("systolic_bp", "must be >= 20")
	}
	if in.LactateMmolL != nil && *in.LactateMmolL < 0 {
		return invalidf("lactate_mmol_l", "must be >= 0")
	}
	if in.MAPmmHg != nil && *in.MAPmmHg < 0 {
		return invalidf("map_mmhg", "must be >= 0")
	}
	if in.FluidBolusMlPerKg != nil && *in.FluidBolusMlPerKg < 0 {
		return invalidf("fluid_bolus_ml_per_kg", "must be >= 0")
	}
	if in.TimeSinceDetectionMinutes != nil && *in.TimeSinceDetectionMinutes < 0 {
		return invalidf("time_since_detection_minutes", "must be >= 0")
	}
	if in.ProbableFocus != nil && len(*in.ProbableFocus) > 120 {
		return invalidf("probable_focus", "must be at most 120 characters")
	}
	return validateNotes("notes", in.Notes)
}

func sepsisQSOFA(in SepsisInput) int {
	score := 0
	if in.RespiratoryRateRPM != nil && *in.RespiratoryRateRPM >= 22 {
		score++
	}
	if in.SystolicBP != nil && *in.SystolicBP <= 100 {
		score++
	}
	if in.AlteredMentalStatus {
		score++
	}
	return score
}

func sepsisShockSuspected(in SepsisInput) bool {
	lactateFlag := in.LactateMmolL != nil && *in.LactateMmolL >= 4
	mapFlag := in.MAPmmHg != nil && *in.MAPmmHg < 65
	return lactateFlag || (mapFlag && in.VasopressorStarted)
}

func sepsisBundleActions(in SepsisInput, highRisk bool) []string {
	var actions []string
	if highRisk {
		if !in.BloodCulturesCollected {
			actions = append(actions, "Extraer hemocultivos antes de antibiotico si no retrasa inicio.")
		}
		if !in.AntibioticsStarted {
			actions = append(actions, "Iniciar antibioterapia de amplio espectro en <1 hora.")
		}
		if in.FluidBolusMlPerKg == nil || *in.FluidBolusMlPerKg < 30 {
			actions = append(actions, "Completar fluidoterapia inicial hasta 30 ml/kg (cristaloides).")
		}
		if in.LactateMmolL == nil {
			actions = append(actions, "Solicitar lactato inicial y planificar control seriado.")
		}
	} else {
		actions = append(actions, "Mantener reevaluacion clinica y vigilancia de disfuncion organica.")
	}
	return actions
}

func sepsisEscalationActions(in SepsisInput, shockSuspected bool) []string {
	var actions []string
	if shockSuspected {
		actions = append(actions,
			"Escalar a circuito de shock septico y avisar equipo senior/UCI.",
			"Objetivo PAM >=65 mmHg con noradrenalina si refractario a fluidos.",
			"Monitorizar lactato y perfusion de forma estrecha.")
	}
	if in.TimeSinceDetectionMinutes != nil && *in.TimeSinceDetectionMinutes > 60 {
		actions = append(actions, "Revisar demora del bundle de sepsis y corregir cuellos de botella.")
	}
	return actions
}

func sepsisAlerts(in SepsisInput, highRisk, shockSuspected bool) []string {
	var alerts []string
	if !in.SuspectedInfection {
		return append(alerts, "Sin infeccion sospechada: validar pertinencia del protocolo.")
	}
	if highRisk {
		alerts = append(alerts, "qSOFA >=2 con infeccion sospechada: alto riesgo de sepsis.")
	}
	if shockSuspected {
		alerts = append(alerts, "Criterios operativos compatibles con shock septico.")
	}
	if in.LactateMmolL != nil && *in.LactateMmolL > 2 {
		alerts = append(alerts, "Lactato elevado: requiere reevaluacion y control de tendencia.")
	}
	if in.TimeSinceDetectionMinutes != nil && *in.TimeSinceDetectionMinutes > 60 {
		alerts = append(alerts, "Ventana >60 min desde deteccion: riesgo de retraso terapeutico.")
	}
	return alerts
}

// EvaluateSepsis builds the operational sepsis recommendation.
func EvaluateSepsis(in SepsisInput) SepsisRecommendation {
	qsofa := sepsisQSOFA(in)
	highRisk := in.SuspectedInfection && qsofa >= 2
	shockSuspected := sepsisShockSuspected(in)

	var critical []string
	if shockSuspected {
		critical = append(critical, "Criterios operativos compatibles con shock septico.")
	}
	bundle := sepsisBundleActions(in, highRisk)
	escalation := sepsisEscalationActions(in, shockSuspected)
	alerts := sepsisAlerts(in, highRisk, shockSuspected)

	var safety []string
	if highRisk {
		safety = append(safety, "qSOFA >=2 con infeccion sospechada: alto riesgo de sepsis.")
	}
	severity := ComputeSeverity(critical, safety, append(append([]string{}, bundle...), escalation...))

	trace := []string{fmt.Sprintf("qsofa_score=%d", qsofa)}
	trace = append(trace, fmt.Sprintf("high_sepsis_risk=%t", highRisk))
	trace = append(trace, fmt.Sprintf("septic_shock_suspected=%t", shockSuspected))
	trace = append(trace, fmt.Sprintf("severity_level=%s", severity))

	return SepsisRecommendation{
		QSOFAScore:              qsofa,
		HighSepsisRisk:          highRisk,
		SepticShockSuspected:    shockSuspected,
		OneHourBundleActions:    bundle,
		EscalationActions:       escalation,
		Alerts:                  alerts,
		SeverityLevel:           severity,
		InterpretabilityTrace:   trace,
		HumanValidationRequired: true,
		NonDiagnosticWarning:    Disclaimer,
	}
}

func init() {
	register("sepsis", typed((*SepsisInput).Validate, EvaluateSepsis))
}
