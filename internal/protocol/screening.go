package protocol

import (
	"fmt"
	"sort"
	"strings"
)

// Advanced operational screening: geriatric hidden-risk scoring, opportunistic
// screening prompts, persistent COVID criteria and alert fatigue control.

var hivIndicatorKeywords = []string{
	"its",
	"neumonia",
	"sindrome mononucleosico",
	"perdida de peso",
	"plaquetopenia",
	"fiebre sin foco",
}

var screeningInfectionContexts = map[string]bool{
	"endocarditis":                   true,
	"osteomielitis":                  true,
	"infeccion_piel_tejidos_blandos": true,
	"otra":                          true,
	"no_aplica":                     true,
}

var screeningSexValues = map[string]bool{"f": true, "m": true, "otro": true}

// ScreeningInput is the operational input for early risk and screening rules.
type ScreeningInput struct {
	AgeYears                                 int      `json:"age_years"`
	Sex                                      *string  `json:"sex,omitempty"`
	SystolicBP                               *int     `json:"systolic_bp,omitempty"`
	CanWalkIndependently                     *bool    `json:"can_walk_independently,omitempty"`
	SodiumMmolL                              *float64 `json:"sodium_mmol_l,omitempty"`
	GlucoseMgDl                              *float64 `json:"glucose_mg_dl,omitempty"`
	HeartRateBPM                             *int     `json:"heart_rate_bpm,omitempty"`
	OxygenSaturationPercent                  *int     `json:"oxygen_saturation_percent,omitempty"`
	ChiefComplaints                          []string `json:"chief_complaints"`
	KnownConditions                          []string `json:"known_conditions"`
	Immunosuppressed                         bool     `json:"immunosuppressed"`
	PersistentPositiveDays                   *int     `json:"persistent_positive_days,omitempty"`
	PersistentSymptoms                       bool     `json:"persistent_symptoms"`
	ImagingCompatibleWithPersistentInfection bool     `json:"imaging_compatible_with_persistent_infection"`
	StableAfterAcutePhase                    bool     `json:"stable_after_acute_phase"`
	InfectionContext                         string   `json:"infection_context"`
}

// ScreeningRecommendation is the structured screening and risk output.
type ScreeningRecommendation struct {
	GeriatricRiskLevel       string   `json:"geriatric_risk_level"`
	ScreeningActions         []string `json:"screening_actions"`
	Alerts                   []string `json:"alerts"`
	AlertsGeneratedTotal     int      `json:"alerts_generated_total"`
	AlertsSuppressedTotal    int      `json:"alerts_suppressed_total"`
	LongActingCandidate      bool     `json:"long_acting_candidate"`
	LongActingRationale      *string  `json:"long_acting_rationale"`
	PersistentCovidSuspected bool     `json:"persistent_covid_suspected"`
	PersistentCovidActions   []string `json:"persistent_covid_actions"`
	SeverityLevel            Severity `json:"severity_level"`
	InterpretabilityTrace    []string `json:"interpretability_trace"`
	HumanValidationRequired  bool     `json:"human_validation_required"`
	NonDiagnosticWarning     string   `json:"non_diagnostic_warning"`
}

func (in *ScreeningInput) Validate() error {
	if in.AgeYears < 0 {
		return invalidf("age_years", "must be >= 0")
	}
	if in.Sex != nil && !screeningSexValues[*in.Sex] {
		return invalidf("sex", "unknown value %q", *in.Sex)
	}
	if err := inRangeI("systolic_bp", in.SystolicBP, 40, 400); err != nil {
		return err
	}
	if err := inRangeI("heart_rate_bpm", in.HeartRateBPM, 20, 400); err != nil {
		return err
	}
	if err := inRangeI("oxygen_saturation_percent", in.OxygenSaturationPercent, 40, 100); err != nil {
		return err
	}
	if in.PersistentPositiveDays != nil && *in.PersistentPositiveDays < 0 {
		return invalidf("persistent_positive_days", "must be >= 0")
	}
	if in.InfectionContext == "" {
		in.InfectionContext = "no_aplica"
	}
	if !screeningInfectionContexts[in.InfectionContext] {
		return invalidf("infection_context", "unknown value %q", in.InfectionContext)
	}
	return nil
}

func containsScreeningKeyword(values []string, keywords []string) bool {
	normalized := strings.ToLower(strings.Join(values, " "))
	for _, kw := range keywords {
		if strings.Contains(normalized, kw) {
			return true
		}
	}
	return false
}

// Geriatric hidden risk: cumulative score over fragility markers, only
// relevant from 65 years on.
func screeningGeriatricRisk(in ScreeningInput) string {
	if in.AgeYears < 65 {
		return "low"
	}
	score := 0
	if in.SystolicBP != nil && *in.SystolicBP < 115 {
		score += 2
	}
	if in.CanWalkIndependently != nil && !*in.CanWalkIndependently {
		score++
	}
	if in.OxygenSaturationPercent != nil && *in.OxygenSaturationPercent < 92 {
		score++
	}
	if in.HeartRateBPM != nil && *in.HeartRateBPM > 110 {
		score++
	}
	if in.SodiumMmolL != nil && (*in.SodiumMmolL < 130 || *in.SodiumMmolL > 150) {
		score++
	}
	if in.GlucoseMgDl != nil && (*in.GlucoseMgDl < 70 || *in.GlucoseMgDl > 250) {
		score++
	}
	switch {
	case score >= 4:
		return "high"
	case score >= 2:
		return "medium"
	default:
		return "low"
	}
}

func screeningActions(in ScreeningInput) []string {
	var actions []string
	combined := append(append([]string{}, in.ChiefComplaints...), in.KnownConditions...)
	if containsScreeningKeyword(combined, hivIndicatorKeywords) {
		actions = append(actions,
			"Sugerir cribado VIH por indicadores clinicos en urgencias.",
			"Registrar consentimiento informado para serologia de cribado.")
	}
	if strings.Contains(strings.ToLower(strings.Join(combined, " ")), "sepsis") ||
		(in.HeartRateBPM != nil && *in.HeartRateBPM > 120) {
		actions = append(actions, "Activar ruta de sepsis temprana y monitorizacion estrecha.")
	}
	if len(actions) == 0 {
		actions = append(actions, "Mantener vigilancia estandar y reevaluacion clinica programada.")
	}
	return actions
}

func screeningLongActing(in ScreeningInput) (bool, *string) {
	eligibleContext := in.InfectionContext == "endocarditis" ||
		in.InfectionContext == "osteomielitis" ||
		in.InfectionContext == "infeccion_piel_tejidos_blandos"
	if in.StableAfterAcutePhase && eligibleContext {
		rationale := "Paciente estable tras fase aguda en contexto elegible: " +
			"valorar estrategia long-acting para liberar cama."
		return true, &rationale
	}
	return false, nil
}

func screeningPersistentCovid(in ScreeningInput) (bool, []string) {
	suspected := in.Immunosuppressed &&
		in.PersistentPositiveDays != nil && *in.PersistentPositiveDays >= 14 &&
		in.PersistentSymptoms &&
		in.ImagingCompatibleWithPersistentInfection
	if !suspected {
		return false, nil
	}
	return true, []string{
		"Escalar caso a infecciosas por posible COVID persistente en inmunodeprimido.",
		"Valorar estrategia antiviral combinada segun protocolo institucional y validacion especialista.",
	}
}

type screeningAlert struct {
	key, severity, message string
}

func screeningAlertPool(in ScreeningInput, geriatricRisk string, persistentCovid bool) []screeningAlert {
	var pool []screeningAlert
	if in.AgeYears >= 65 && in.SystolicBP != nil && *in.SystolicBP < 115 {
		pool = append(pool, screeningAlert{"geri_pas_low", "high", "PAS <115 en mayor de 65: riesgo oculto elevado."})
	}
	if geriatricRisk == "high" {
		pool = append(pool, screeningAlert{"geri_high_risk", "high", "Riesgo geriatrico alto: priorizar reevaluacion temprana."})
	}
	if in.CanWalkIndependently != nil && !*in.CanWalkIndependently {
		pool = append(pool, screeningAlert{"mobility_risk", "medium", "No deambula independientemente: elevar vigilancia funcional."})
	}
	if in.OxygenSaturationPercent != nil && *in.OxygenSaturationPercent < 92 {
		pool = append(pool, screeningAlert{"spo2_low", "high", "Saturacion baja: priorizar valoracion respiratoria inmediata."})
	}
	combined := append(append([]string{}, in.ChiefComplaints...), in.KnownConditions...)
	if containsScreeningKeyword(combined, hivIndicatorKeywords) {
		pool = append(pool, screeningAlert{"hiv_indicator", "medium", "Indicadores de cribado VIH presentes en triaje."})
	}
	if persistentCovid {
		pool = append(pool, screeningAlert{"persistent_covid", "high", "Criterios operativos de COVID persistente detectados."})
	}
	return pool
}

const screeningMaxVisibleAlerts = 5

// Alert fatigue control: dedupe by key (high wins over medium), order by
// severity and cap the visible panel.
func screeningFatigueControl(pool []screeningAlert) (visible []string, generated, suppressed int) {
	unique := make(map[string]screeningAlert)
	order := make([]string, 0, len(pool))
	for _, a := range pool {
		current, ok := unique[a.key]
		if !ok {
			unique[a.key] = a
			order = append(order, a.key)
			continue
		}
		if current.severity == "medium" && a.severity == "high" {
			unique[a.key] = a
		}
	}
	deduped := make([]screeningAlert, 0, len(unique))
	for _, key := range order {
		deduped = append(deduped, unique[key])
	}
	sort.SliceStable(deduped, func(i, j int) bool {
		rank := func(s string) int {
			if s == "high" {
				return 0
			}
			return 1
		}
		return rank(deduped[i].severity) < rank(deduped[j].severity)
	})
	if len(deduped) > screeningMaxVisibleAlerts {
		deduped = deduped[:screeningMaxVisibleAlerts]
	}
	for _, a := range deduped {
		visible = append(visible, a.message)
	}
	generated = len(pool)
	suppressed = generated - len(visible)
	if suppressed < 0 {
		suppressed = 0
	}
	return visible, generated, suppressed
}

// EvaluateScreening builds the advanced screening recommendation.
func EvaluateScreening(in ScreeningInput) ScreeningRecommendation {
	geriatricRisk := screeningGeriatricRisk(in)
	actions := screeningActions(in)
	longActing, rationale := screeningLongActing(in)
	persistentCovid, covidActions := screeningPersistentCovid(in)
	pool := screeningAlertPool(in, geriatricRisk, persistentCovid)
	alerts, generated, suppressed := screeningFatigueControl(pool)

	var safety []string
	for _, a := range pool {
		if a.severity == "high" {
			safety = append(safety, a.message)
		}
	}
	severity := ComputeSeverity(nil, safety, actions)

	trace := []string{
		fmt.Sprintf("geriatric_risk_level=%s", geriatricRisk),
		fmt.Sprintf("alerts_generated_total=%d", generated),
		fmt.Sprintf("alerts_suppressed_total=%d", suppressed),
		fmt.Sprintf("persistent_covid_suspected=%t", persistentCovid),
		fmt.Sprintf("severity_level=%s", severity),
	}

	return ScreeningRecommendation{
		GeriatricRiskLevel:       geriatricRisk,
		ScreeningActions:         actions,
		Alerts:                   alerts,
		AlertsGeneratedTotal:     generated,
		AlertsSuppressedTotal:    suppressed,
		LongActingCandidate:      longActing,
		LongActingRationale:      rationale,
		PersistentCovidSuspected: persistentCovid,
		PersistentCovidActions:   covidActions,
		SeverityLevel:            severity,
		InterpretabilityTrace:    trace,
		HumanValidationRequired:  true,
		NonDiagnosticWarning:     Disclaimer,
	}
}

func init() {
	register("advanced_screening", typed((*ScreeningInput).Validate, EvaluateScreening))
}
