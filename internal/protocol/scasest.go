package protocol

import "fmt"

// SCASEST operational support: orients initial workup, early treatment and
// escalation for suspected non-ST-elevation acute coronary syndrome.

// ScasestInput captures the facts for a SCASEST operational screen.
type ScasestInput struct {
	ChestPainTypical             bool    `json:"chest_pain_typical"`
	Dyspnea                      bool    `json:"dyspnea"`
	Syncope                      bool    `json:"syncope"`
	ECGSTDepression              bool    `json:"ecg_st_depression"`
	ECGTInversion                bool    `json:"ecg_t_inversion"`
	TroponinPositive             bool    `json:"troponin_positive"`
	HemodynamicInstability       bool    `json:"hemodynamic_instability"`
	VentricularArrhythmias       bool    `json:"ventricular_arrhythmias"`
	RefractoryAngina             bool    `json:"refractory_angina"`
	ContraindicationAntiplatelet bool    `json:"contraindication_antiplatelet"`
	ContraindicationAnticoag     bool    `json:"contraindication_anticoagulation"`
	HeartRateBPM                 *int    `json:"heart_rate_bpm,omitempty"`
	SystolicBP                   *int    `json:"systolic_bp,omitempty"`
	OxygenSaturationPercent      *int    `json:"oxygen_saturation_percent,omitempty"`
	GraceScore                   *int    `json:"grace_score,omitempty"`
	Notes                        *string `json:"notes,omitempty"`
}

// ScasestRecommendation is the structured output of the SCASEST evaluator.
type ScasestRecommendation struct {
	ScasestSuspected        bool     `json:"scasest_suspected"`
	HighRiskScasest         bool     `json:"high_risk_scasest"`
	DiagnosticActions       []string `json:"diagnostic_actions"`
	InitialTreatmentActions []string `json:"initial_treatment_actions"`
	EscalationActions       []string `json:"escalation_actions"`
	Alerts                  []string `json:"alerts"`
	SeverityLevel           Severity `json:"severity_level"`
	InterpretabilityTrace   []string `json:"interpretability_trace"`
	HumanValidationRequired bool     `json:"human_validation_required"`
	NonDiagnosticWarning    string   `json:"non_diagnostic_warning"`
}

func (in *ScasestInput) Validate() error {
	if in.HeartRateBPM != nil && *in.HeartRateBPM < 0 {
		return invalidf("heart_rate_bpm", "must be >= 0")
	}
	if in.SystolicBP != nil && *in.SystolicBP < 20 {
		return invalidf("systolic_bp", "must be >= 20")
	}
	if in.OxygenSaturationPercent != nil && (*in.OxygenSaturationPercent < 40 || *in.OxygenSaturationPercent > 100) {
		return invalidf("oxygen_saturation_percent", "must be between 40 and 100")
	}
	if in.GraceScore != nil && *in.GraceScore < 0 {
		return invalidf("grace_score", "must be >= 0")
	}
	return validateNotes("notes", in.Notes)
}

func scasestSuspected(in ScasestInput) bool {
	symptoms := in.ChestPainTypical || in.Dyspnea || in.Syncope
	objective := in.ECGSTDepression || in.ECGTInversion || in.TroponinPositive
	return symptoms && objective
}

func scasestHighRisk(in ScasestInput, suspected bool) bool {
	if !suspected {
		return false
	}
	if in.HemodynamicInstability || in.VentricularArrhythmias || in.RefractoryAngina {
		return true
	}
	return in.GraceScore != nil && *in.GraceScore > 140
}

func scasestDiagnosticActions(suspected bool) []string {
	if !suspected {
		return []string{"Reevaluar diagnostico diferencial de dolor toracico."}
	}
	return []string{
		"Realizar ECG seriado y monitorizacion continua.",
		"Solicitar troponinas seriadas y analitica basica.",
		"Solicitar radiografia de torax y valorar ecocardiograma temprano.",
	}
}

func scasestInitialTreatment(in ScasestInput, suspected bool) []string {
	if !suspected {
		return []string{"No activar tratamiento SCASEST hasta confirmacion clinica."}
	}
	var actions []string
	if !in.ContraindicationAntiplatelet {
		actions = append(actions, "Valorar AAS carga inicial y segundo antiagregante segun protocolo.")
	}
	if !in.ContraindicationAnticoag {
		actions = append(actions, "Valorar anticoagulacion inicial (ej. fondaparinux) segun protocolo.")
	}
	actions = append(actions, "Valorar nitratos y control de sintomas isquemicos.")
	if in.HeartRateBPM != nil && *in.HeartRateBPM > 60 {
		actions = append(actions, "Valorar betabloqueo si no hay contraindicaciones hemodinamicas.")
	}
	return actions
}

func scasestEscalationActions(in ScasestInput, highRisk bool) []string {
	var actions []string
	if highRisk {
		actions = append(actions,
			"Escalar a circuito coronario urgente y avisar cardiologia.",
			"Priorizar cama monitorizada/UCI coronaria segun estabilidad.")
	} else if in.GraceScore != nil {
		actions = append(actions, "Estratificar destino segun GRACE y evolucion clinica.")
	}
	return actions
}

func scasestAlerts(in ScasestInput, suspected, highRisk bool) []string {
	var alerts []string
	if !suspected {
		return append(alerts, "SCASEST no claramente soportado por datos actuales.")
	}
	if highRisk {
		alerts = append(alerts, "SCASEST de alto riesgo: no demorar escalado invasivo.")
	}
	if in.HemodynamicInstability {
		alerts = append(alerts, "Inestabilidad hemodinamica detectada.")
	}
	if in.VentricularArrhythmias {
		alerts = append(alerts, "Arritmias ventriculares: riesgo de deterioro inmediato.")
	}
	if in.OxygenSaturationPercent != nil && *in.OxygenSaturationPercent < 90 {
		alerts = append(alerts, "Hipoxemia significativa: corregir oxigenacion de inmediato.")
	}
	return alerts
}

// EvaluateScasest builds the operational SCASEST recommendation.
func EvaluateScasest(in ScasestInput) ScasestRecommendation {
	suspected := scasestSuspected(in)
	highRisk := scasestHighRisk(in, suspected)

	var critical []string
	if highRisk && (in.HemodynamicInstability || in.VentricularArrhythmias) {
		critical = append(critical, "SCASEST de alto riesgo con inestabilidad: deterioro inmediato posible.")
	}
	var safety []string
	if highRisk {
		safety = append(safety, "SCASEST de alto riesgo: no demorar escalado invasivo.")
	}

	diagnostic := scasestDiagnosticActions(suspected)
	treatment := scasestInitialTreatment(in, suspected)
	escalation := scasestEscalationActions(in, highRisk)
	alerts := scasestAlerts(in, suspected, highRisk)

	var actionable []string
	if suspected {
		actionable = append(append(append([]string{}, diagnostic...), treatment...), escalation...)
	}
	severity := ComputeSeverity(critical, safety, actionable)

	trace := []string{
		fmt.Sprintf("scasest_suspected=%t", suspected),
		fmt.Sprintf("high_risk_scasest=%t", highRisk),
	}
	if in.GraceScore != nil {
		trace = append(trace, fmt.Sprintf("grace_score=%d", *in.GraceScore))
	}
	trace = append(trace, fmt.Sprintf("severity_level=%s", severity))

	return ScasestRecommendation{
		ScasestSuspected:        suspected,
		HighRiskScasest:         highRisk,
		DiagnosticActions:       diagnostic,
		InitialTreatmentActions: treatment,
		EscalationActions:       escalation,
		Alerts:                  alerts,
		SeverityLevel:           severity,
		InterpretabilityTrace:   trace,
		HumanValidationRequired: true,
		NonDiagnosticWarning:    Disclaimer,
	}
}

func init() {
	register("scasest", typed((*ScasestInput).Validate, EvaluateScasest))
}
