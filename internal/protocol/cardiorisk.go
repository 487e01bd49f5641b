package protocol

import "fmt"

// Cardiovascular risk stratification support. Point score over classic and
// lipid-particle factors, mapped to targets for human validation.

// CardioRiskInput captures the facts for cardiovascular risk stratification.
type CardioRiskInput struct {
	AgeYears                      int      `json:"age_years"`
	Sex                           string   `json:"sex"`
	Smoker                        bool     `json:"smoker"`
	SystolicBP                    int      `json:"systolic_bp"`
	NonHDLmgDl                    float64  `json:"non_hdl_mg_dl"`
	ApoBmgDl                      *float64 `json:"apob_mg_dl,omitempty"`
	HDLmgDl                       *float64 `json:"hdl_mg_dl,omitempty"`
	TriglyceridesMgDl             *float64 `json:"triglycerides_mg_dl,omitempty"`
	Diabetes                      bool     `json:"diabetes"`
	ChronicKidneyDisease          bool     `json:"chronic_kidney_disease"`
	EstablishedAtheroscleroticCVD bool     `json:"established_atherosclerotic_cvd"`
	FamilyHistoryPrematureCVD     bool     `json:"family_history_premature_cvd"`
	ChronicInflammatoryState      bool     `json:"chronic_inflammatory_state"`
	OnLipidLoweringTherapy        bool     `json:"on_lipid_lowering_therapy"`
	StatinIntolerance             bool     `json:"statin_intolerance"`
	Notes                         *string  `json:"notes,omitempty"`
}

// CardioRiskRecommendation is the structured cardiovascular support output.
type CardioRiskRecommendation struct {
	RiskLevel                      string   `json:"risk_level"`
	Estimated10yRiskPercent        float64  `json:"estimated_10y_risk_percent"`
	LDLTargetMgDl                  int      `json:"ldl_target_mg_dl"`
	NonHDLTargetMgDl               int      `json:"non_hdl_target_mg_dl"`
	NonHDLTargetRequired           bool     `json:"non_hdl_target_required"`
	IntensiveLifestyleRequired     bool     `json:"intensive_lifestyle_required"`
	PharmacologicStrategySuggested bool     `json:"pharmacologic_strategy_suggested"`
	PriorityActions                []string `json:"priority_actions"`
	AdditionalMarkersRecommended   []string `json:"additional_markers_recommended"`
	Alerts                         []string `json:"alerts"`
	SeverityLevel                  Severity `json:"severity_level"`
	InterpretabilityTrace          []string `json:"interpretability_trace"`
	HumanValidationRequired        bool     `json:"human_validation_required"`
	NonDiagnosticWarning           string   `json:"non_diagnostic_warning"`
}

func (in *CardioRiskInput) Validate() error {
	if in.AgeYears < 18 || in.AgeYears > 120 {
		return invalidf("age_years", "must be between 18 and 120")
	}
	if in.Sex != "male" && in.Sex != "female" {
		return invalidf("sex", "must be male or female")
	}
	if in.SystolicBP < 70 || in.SystolicBP > 260 {
		return invalidf("systolic_bp", "must be between 70 and 260")
	}
	if in.NonHDLmgDl < 30 || in.NonHDLmgDl > 500 {
		return invalidf("non_hdl_mg_dl", "must be between 30 and 500")
	}
	if err := inRangeF("apob_mg_dl", in.ApoBmgDl, 20, 300); err != nil {
		return err
	}
	if err := inRangeF("hdl_mg_dl", in.HDLmgDl, 10, 120); err != nil {
		return err
	}
	if err := inRangeF("triglycerides_mg_dl", in.TriglyceridesMgDl, 20, 2000); err != nil {
		return err
	}
	return validateNotes("notes", in.Notes)
}

func cardioRiskScore(in CardioRiskInput) int {
	score := 0
	switch {
	case in.AgeYears >= 75:
		score += 4
	case in.AgeYears >= 65:
		score += 3
	case in.AgeYears >= 55:
		score += 2
	case in.AgeYears >= 45:
		score++
	}
	if in.Smoker {
		score += 2
	}
	switch {
	case in.SystolicBP >= 160:
		score += 2
	case in.SystolicBP >= 140:
		score++
	}
	switch {
	case in.NonHDLmgDl >= 220:
		score += 3
	case in.NonHDLmgDl >= 190:
		score += 2
	case in.NonHDLmgDl >= 160:
		score++
	}
	if in.ApoBmgDl != nil {
		switch {
		case *in.ApoBmgDl >= 130:
			score += 2
		case *in.ApoBmgDl >= 100:
			score++
		}
	}
	if in.Diabetes {
		score += 2
	}
	if in.ChronicKidneyDisease {
		score += 2
	}
	if in.FamilyHistoryPrematureCVD {
		score++
	}
	if in.ChronicInflammatoryState {
		score++
	}
	return score
}

func cardioRiskLevel(in CardioRiskInput, score int) string {
	switch {
	case in.EstablishedAtheroscleroticCVD:
		return "very_high"
	case score >= 10:
		return "very_high"
	case score >= 7:
		return "high"
	case score >= 4:
		return "moderate"
	}
	return "low"
}

var cardioEstimated10y = map[string]float64{
	"low": 4.0, "moderate": 9.0, "high": 18.0, "very_high": 30.0,
}

var cardioLDLTargets = map[string]int{
	"very_high": 55, "high": 70, "moderate": 100, "low": 116,
}

func cardioPriorityActions(in CardioRiskInput, riskLevel string, nonHDLTargetRequired, pharma, lifestyle bool) []string {
	var actions []string
	if nonHDLTargetRequired {
		actions = append(actions, "Priorizar reduccion de colesterol no-HDL y confirmar ApoB segun disponibilidad.")
	} else {
		actions = append(actions, "Mantener control de riesgo cardiovascular y seguimiento de no-HDL en reevaluacion.")
	}
	if lifestyle {
		actions = append(actions, "Activar intervencion intensiva en estilo de vida: nutricion, actividad fisica y cese tabaquico.")
	}
	if pharma {
		if in.StatinIntolerance {
			actions = append(actions, "Valorar estrategia hipolipemiante alternativa por intolerancia a estatinas.")
		} else {
			actions = append(actions, "Valorar inicio o intensificacion de terapia hipolipemiante segun estrato de riesgo.")
		}
	} else if in.OnLipidLoweringTherapy {
		actions = append(actions, "Revisar adherencia y respuesta a terapia hipolipemiante actual.")
	}
	if riskLevel == "very_high" {
		actions = append(actions, "Escalar priorizacion clinica por riesgo cardiovascular muy alto.")
	}
	return actions
}

func cardioAdditionalMarkers(in CardioRiskInput, nonHDLTargetRequired bool) []string {
	var markers []string
	if in.ApoBmgDl == nil {
		markers = append(markers, "Solicitar ApoB para conteo de particulas aterogenicas.")
	}
	if in.TriglyceridesMgDl != nil && *in.TriglyceridesMgDl >= 150 {
		markers = append(markers, "Revisar colesterol remanente y contexto de resistencia a insulina.")
	}
	if nonHDLTargetRequired {
		markers = append(markers, "Programar control analitico de no-HDL en ventana corta.")
	}
	return markers
}

func cardioAlerts(in CardioRiskInput, riskLevel string, nonHDLTargetRequired bool) []string {
	var alerts []string
	switch riskLevel {
	case "very_high":
		alerts = append(alerts, "Riesgo cardiovascular muy alto: requiere validacion clinica inmediata.")
	case "high":
		alerts = append(alerts, "Riesgo cardiovascular alto: evitar demoras en plan de control.")
	}
	if nonHDLTargetRequired && in.NonHDLmgDl >= 220 {
		alerts = append(alerts, "No-HDL marcadamente elevado.")
	}
	if in.ApoBmgDl != nil && *in.ApoBmgDl >= 130 {
		alerts = append(alerts, "ApoB alto: carga aterogenica elevada.")
	}
	if in.Smoker {
		alerts = append(alerts, "Tabaquismo activo incrementa riesgo residual.")
	}
	return alerts
}

// EvaluateCardioRisk builds the operational cardiovascular recommendation.
func EvaluateCardioRisk(in CardioRiskInput) CardioRiskRecommendation {
	score := cardioRiskScore(in)
	riskLevel := cardioRiskLevel(in, score)
	ldlTarget := cardioLDLTargets[riskLevel]
	nonHDLTarget := ldlTarget + 30
	nonHDLTargetRequired := in.NonHDLmgDl > float64(nonHDLTarget)
	lifestyle := riskLevel == "high" || riskLevel == "very_high" ||
		in.Smoker || in.Diabetes || nonHDLTargetRequired
	pharma := riskLevel == "high" || riskLevel == "very_high" ||
		in.EstablishedAtheroscleroticCVD ||
		(in.Diabetes && nonHDLTargetRequired) ||
		in.NonHDLmgDl >= 190

	actions := cardioPriorityActions(in, riskLevel, nonHDLTargetRequired, pharma, lifestyle)
	markers := cardioAdditionalMarkers(in, nonHDLTargetRequired)
	alerts := cardioAlerts(in, riskLevel, nonHDLTargetRequired)

	var safety []string
	if riskLevel == "very_high" || riskLevel == "high" {
		safety = alerts[:1]
	}
	severity := ComputeSeverity(nil, safety, append(append([]string{}, actions...), markers...))

	trace := []string{
		fmt.Sprintf("risk_score=%d", score),
		fmt.Sprintf("risk_level=%s", riskLevel),
		fmt.Sprintf("ldl_target_mg_dl=%d", ldlTarget),
		fmt.Sprintf("non_hdl_target_required=%t", nonHDLTargetRequired),
		fmt.Sprintf("severity_level=%s", severity),
	}

	return CardioRiskRecommendation{
		RiskLevel:                      riskLevel,
		Estimated10yRiskPercent:        cardioEstimated10y[riskLevel],
		LDLTargetMgDl:                  ldlTarget,
		NonHDLTargetMgDl:               nonHDLTarget,
		NonHDLTargetRequired:           nonHDLTargetRequired,
		IntensiveLifestyleRequired:     lifestyle,
		PharmacologicStrategySuggested: pharma,
		PriorityActions:                actions,
		AdditionalMarkersRecommended:   markers,
		Alerts:                         alerts,
		SeverityLevel:                  severity,
		InterpretabilityTrace:          trace,
		HumanValidationRequired:        true,
		NonDiagnosticWarning:           Disclaimer,
	}
}

func init() {
	register("cardio_risk", typed((*CardioRiskInput).Validate, EvaluateCardioRisk))
}
