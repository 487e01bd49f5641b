package protocol

import (
	"fmt"
	"sort"
)

// Pityriasis differential support: additive scoring per entity plus red flags
// for higher risk mimics (leprosy, deep skin infection).

var pityriasisDistributions = map[string]bool{
	"tronco": true, "torax": true, "espalda": true, "cara": true, "cuello": true,
	"extremidades_superiores": true, "generalizada": true, "areas_seborreicas": true,
}

var pityriasisPigmentations = map[string]bool{
	"hipocromica": true, "hipercromica": true, "eritematosa": true, "mixta": true,
}

var pityriasisWoodResults = map[string]bool{
	"amarillo_naranja": true, "sin_fluorescencia": true, "no_realizada": true,
}

var pityriasisKOHResults = map[string]bool{
	"positivo_spaghetti_albondigas": true, "negativo": true, "no_realizado": true,
}

// PityriasisInput collects the structured dermatologic findings.
type PityriasisInput struct {
	AgeYears                    int      `json:"age_years"`
	LesionDistribution          []string `json:"lesion_distribution"`
	LesionPigmentation          string   `json:"lesion_pigmentation"`
	FineScalingPresent          bool     `json:"fine_scaling_present"`
	SignoUnyadaPositive         bool     `json:"signo_unyada_positive"`
	HeraldPatchPresent          bool     `json:"herald_patch_present"`
	ChristmasTreePatternPresent bool     `json:"christmas_tree_pattern_present"`
	PruritusIntensity           int      `json:"pruritus_intensity"`
	ViralProdromePresent        bool     `json:"viral_prodrome_present"`
	WoodLampResult              string   `json:"wood_lamp_result"`
	KOHResult                   string   `json:"koh_result"`
	RecurrentCourse             bool     `json:"recurrent_course"`
	AtopicBackground            bool     `json:"atopic_background"`
	SensoryLossInLesion         bool     `json:"sensory_loss_in_lesion"`
	DeepErythemaWarmthPain      bool     `json:"deep_erythema_warmth_pain"`
	SystemicSigns               bool     `json:"systemic_signs"`
	Immunosuppressed            bool     `json:"immunosuppressed"`
	ClinicalContext             *string  `json:"clinical_context,omitempty"`
}

// PityriasisRecommendation is the interpretable differential output.
type PityriasisRecommendation struct {
	MostLikelyCondition     string   `json:"most_likely_condition"`
	DifferentialDiagnoses   []string `json:"differential_diagnoses"`
	SupportingFindings      []string `json:"supporting_findings"`
	RecommendedTests        []string `json:"recommended_tests"`
	InitialManagement       []string `json:"initial_management"`
	UrgentRedFlags          []string `json:"urgent_red_flags"`
	FollowUpRecommendations []string `json:"follow_up_recommendations"`
	SeverityLevel           Severity `json:"severity_level"`
	InterpretabilityTrace   []string `json:"interpretability_trace"`
	HumanValidationRequired bool     `json:"human_validation_required"`
	NonDiagnosticWarning    string   `json:"non_diagnostic_warning"`
}

func (in *PityriasisInput) Validate() error {
	if in.AgeYears < 0 || in.AgeYears > 120 {
		return invalidf("age_years", "must be between 0 and 120")
	}
	for _, zone := range in.LesionDistribution {
		if !pityriasisDistributions[zone] {
			return invalidf("lesion_distribution", "unknown value %q", zone)
		}
	}
	if in.LesionPigmentation == "" {
		in.LesionPigmentation = "hipocromica"
	}
	if !pityriasisPigmentations[in.LesionPigmentation] {
		return invalidf("lesion_pigmentation", "unknown value %q", in.LesionPigmentation)
	}
	if in.PruritusIntensity < 0 || in.PruritusIntensity > 10 {
		return invalidf("pruritus_intensity", "must be between 0 and 10")
	}
	if in.WoodLampResult == "" {
		in.WoodLampResult = "no_realizada"
	}
	if !pityriasisWoodResults[in.WoodLampResult] {
		return invalidf("wood_lamp_result", "unknown value %q", in.WoodLampResult)
	}
	if in.KOHResult == "" {
		in.KOHResult = "no_realizado"
	}
	if !pityriasisKOHResults[in.KOHResult] {
		return invalidf("koh_result", "unknown value %q", in.KOHResult)
	}
	return validateNotes("clinical_context", in.ClinicalContext)
}

func (in PityriasisInput) distributionIntersects(zones ...string) bool {
	set := make(map[string]bool, len(in.LesionDistribution))
	for _, zone := range in.LesionDistribution {
		set[zone] = true
	}
	for _, zone := range zones {
		if set[zone] {
			return true
		}
	}
	return false
}

func pityriasisScoreVersicolor(in PityriasisInput) (int, []string) {
	score := 0
	var findings []string
	if in.AgeYears >= 15 && in.AgeYears <= 45 {
		score++
		findings = append(findings, "Edad compatible con mayor prevalencia de pitiriasis versicolor.")
	}
	if in.distributionIntersects("torax", "espalda", "areas_seborreicas", "tronco") {
		score += 2
		findings = append(findings, "Distribucion en tronco/areas seborreicas compatible con Malassezia.")
	}
	if in.FineScalingPresent {
		score++
		findings = append(findings, "Descamacion fina furfuracea presente.")
	}
	if in.SignoUnyadaPositive {
		score += 3
		findings = append(findings, "Signo de la unyada positivo.")
	}
	if in.WoodLampResult == "amarillo_naranja" {
		score += 2
		findings = append(findings, "Fluorescencia amarillo-naranja en luz de Wood.")
	}
	if in.KOHResult == "positivo_spaghetti_albondigas" {
		score += 4
		findings = append(findings, "KOH con patron de hifas cortas y esporas (spaghetti/albondigas).")
	}
	if in.RecurrentCourse {
		score++
		findings = append(findings, "Curso recidivante compatible con pitiriasis versicolor.")
	}
	if in.LesionPigmentation == "hipocromica" || in.LesionPigmentation == "hipercromica" || in.LesionPigmentation == "mixta" {
		score++
		findings = append(findings, "Cambio pigmentario compatible con versicolor.")
	}
	return score, findings
}

func pityriasisScoreRosada(in PityriasisInput) (int, []string) {
	score := 0
	var findings []string
	if in.HeraldPatchPresent {
		score += 3
		findings = append(findings, "Placa heraldica inicial reportada.")
	}
	if in.ChristmasTreePatternPresent {
		score += 3
		findings = append(findings, "Patron en ramas de pino caidas presente.")
	}
	if in.ViralProdromePresent {
		score++
		findings = append(findings, "Prodromos virales previos al exantema.")
	}
	if in.distributionIntersects("tronco", "torax", "espalda") {
		score++
		findings = append(findings, "Distribucion troncular compatible con pitiriasis rosada.")
	}
	if in.PruritusIntensity >= 4 {
		score++
		findings = append(findings, "Prurito moderado/intenso.")
	}
	if in.AgeYears >= 10 && in.AgeYears <= 35 {
		score++
		findings = append(findings, "Rango etario frecuente para pitiriasis rosada.")
	}
	if in.KOHResult == "positivo_spaghetti_albondigas" {
		score -= 2
	}
	return score, findings
}

func pityriasisScoreAlba(in PityriasisInput) (int, []string) {
	score := 0
	var findings []string
	if in.AgeYears < 16 {
		score += 3
		findings = append(findings, "Edad pediatrica compatible con pitiriasis alba.")
	}
	if in.distributionIntersects("cara", "extremidades_superiores") {
		score += 2
		findings = append(findings, "Localizacion en cara/extremidades superiores.")
	}
	if in.LesionPigmentation == "hipocromica" {
		score += 2
		findings = append(findings, "Maculas hipocromicas predominantes.")
	}
	if in.FineScalingPresent {
		score++
		findings = append(findings, "Escama fina adherente compatible con fase intermedia.")
	}
	if in.AtopicBackground {
		score++
		findings = append(findings, "Antecedente atopico asociado.")
	}
	if in.RecurrentCourse {
		score++
		findings = append(findings, "Curso cronico/recidivante compatible con pitiriasis alba.")
	}
	return score, findings
}

func pityriasisRedFlags(in PityriasisInput) []string {
	var redFlags []string
	if in.SensoryLossInLesion {
		redFlags = append(redFlags, "Perdida de sensibilidad en lesion: descartar lepra tuberculoide con prioridad.")
	}
	if in.DeepErythemaWarmthPain {
		redFlags = append(redFlags, "Eritema doloroso/caliente profundo: descartar celulitis o erisipela.")
	}
	if in.SystemicSigns && in.DeepErythemaWarmthPain {
		redFlags = append(redFlags, "Signos sistemicos con foco cutaneo doloroso: valorar antibioticoterapia sistemica urgente.")
	}
	return redFlags
}

type pityriasisScore struct {
	name  string
	score int
}

// The top entity must win by more than one point to be named; ties or weak
// scores stay indeterminado.
func pityriasisMostLikely(scores []pityriasisScore) string {
	ordered := make([]pityriasisScore, len(scores))
	copy(ordered, scores)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].score > ordered[j].score })
	if ordered[0].score < 3 {
		return "indeterminado"
	}
	if len(ordered) > 1 && ordered[0].score-ordered[1].score <= 1 {
		return "indeterminado"
	}
	return ordered[0].name
}

func pityriasisRecommendedTests(in PityriasisInput, mostLikely string, redFlags []string) []string {
	var tests []string
	switch mostLikely {
	case "pitiriasis_versicolor":
		if in.KOHResult == "no_realizado" {
			tests = append(tests, "Realizar examen directo con KOH para confirmar patron 'spaghetti y albondigas'.")
		}
		if in.WoodLampResult == "no_realizada" {
			tests = append(tests, "Completar evaluacion con luz de Wood en consulta.")
		}
	case "pitiriasis_rosada":
		if in.KOHResult == "no_realizado" {
			tests = append(tests, "Si hay duda morfologica, realizar KOH para descartar tinea corporis.")
		}
	case "indeterminado":
		tests = append(tests,
			"Completar KOH y luz de Wood para acotar etiologia.",
			"Valorar interconsulta con dermatologia para confirmacion diagnostica.")
	}
	if len(redFlags) > 0 {
		tests = append(tests, "Escalar estudio etiologico alternativo (incluyendo infeccion profunda o lepra) por red flags.")
	}
	if len(tests) == 0 {
		tests = append(tests, "No se requieren pruebas adicionales inmediatas; seguimiento clinico.")
	}
	return tests
}

func pityriasisInitialManagement(mostLikely string, redFlags []string) []string {
	var management []string
	switch mostLikely {
	case "pitiriasis_versicolor":
		management = append(management,
			"Primera linea: azoles topicos o sulfuro de selenio.",
			"Considerar terapia sistemica solo en cuadros extensos o muy recidivantes.")
	case "pitiriasis_rosada":
		management = append(management,
			"Manejo expectante: proceso habitualmente autolimitado.",
			"Control sintomatico de prurito con antihistaminicos y corticoide topico de baja potencia.")
	case "pitiriasis_alba":
		management = append(management,
			"Hidratacion cutanea intensiva con emolientes.",
			"Fotoproteccion diaria para reducir contraste de hipopigmentacion.")
	default:
		management = append(management, "No iniciar tratamiento dirigido hasta clarificar etiologia con pruebas complementarias.")
	}
	if len(redFlags) > 0 {
		management = append([]string{
			"Priorizar valoracion presencial urgente para descartar diagnosticos de mayor riesgo.",
		}, management...)
	}
	return management
}

func pityriasisFollowUp(mostLikely string, redFlags []string) []string {
	followUp := []string{
		"Reevaluar evolucion clinica y respuesta terapeutica en 2-4 semanas.",
		"Escalar antes si aparecen dolor intenso, fiebre o extension rapida de lesiones.",
	}
	if mostLikely == "pitiriasis_alba" {
		followUp = append(followUp, "Informar curso potencialmente prolongado en hipopigmentacion residual.")
	}
	if mostLikely == "pitiriasis_versicolor" {
		followUp = append(followUp, "Explicar riesgo de recidiva y necesidad de adherencia a tratamiento topico.")
	}
	if len(redFlags) > 0 {
		followUp = append(followUp, "No esperar control ambulatorio si persisten red flags; derivar a evaluacion urgente.")
	}
	return followUp
}

// EvaluatePityriasis builds the pityriasis differential recommendation.
func EvaluatePityriasis(in PityriasisInput) PityriasisRecommendation {
	versicolorScore, versicolorFindings := pityriasisScoreVersicolor(in)
	rosadaScore, rosadaFindings := pityriasisScoreRosada(in)
	albaScore, albaFindings := pityriasisScoreAlba(in)

	scores := []pityriasisScore{
		{"pitiriasis_versicolor", versicolorScore},
		{"pitiriasis_rosada", rosadaScore},
		{"pitiriasis_alba", albaScore},
	}
	mostLikely := pityriasisMostLikely(scores)
	redFlags := pityriasisRedFlags(in)

	ordered := make([]pityriasisScore, len(scores))
	copy(ordered, scores)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].score > ordered[j].score })
	var differentials []string
	for _, entry := range ordered {
		if entry.score >= 1 && len(differentials) < 3 {
			differentials = append(differentials, entry.name)
		}
	}
	if mostLikely == "indeterminado" && len(differentials) == 0 {
		differentials = []string{"pitiriasis_versicolor", "pitiriasis_rosada", "pitiriasis_alba"}
	}

	var supporting []string
	switch mostLikely {
	case "pitiriasis_versicolor":
		supporting = versicolorFindings
	case "pitiriasis_rosada":
		supporting = rosadaFindings
	case "pitiriasis_alba":
		supporting = albaFindings
	default:
		for _, findings := range [][]string{versicolorFindings, rosadaFindings, albaFindings} {
			if len(findings) > 0 {
				supporting = append(supporting, findings[0])
			}
		}
		if len(supporting) == 0 {
			supporting = []string{"Hallazgos no concluyentes para una pitiriasis especifica."}
		}
	}

	management := pityriasisInitialManagement(mostLikely, redFlags)

	var safety []string
	if len(redFlags) > 0 {
		safety = append(safety, "Red flags dermatologicas activas.")
	}
	severity := ComputeSeverity(nil, safety, management)

	trace := []string{
		fmt.Sprintf("score_versicolor=%d", versicolorScore),
		fmt.Sprintf("score_rosada=%d", rosadaScore),
		fmt.Sprintf("score_alba=%d", albaScore),
		fmt.Sprintf("most_likely_condition=%s", mostLikely),
		fmt.Sprintf("severity_level=%s", severity),
	}

	return PityriasisRecommendation{
		MostLikelyCondition:     mostLikely,
		DifferentialDiagnoses:   differentials,
		SupportingFindings:      supporting,
		RecommendedTests:        pityriasisRecommendedTests(in, mostLikely, redFlags),
		InitialManagement:       management,
		UrgentRedFlags:          redFlags,
		FollowUpRecommendations: pityriasisFollowUp(mostLikely, redFlags),
		SeverityLevel:           severity,
		InterpretabilityTrace:   trace,
		HumanValidationRequired: true,
		NonDiagnosticWarning:    "Soporte operativo no diagnostico. Requiere validacion clinica/dermatologica humana.",
	}
}

func init() {
	register("pityriasis", typed((*PityriasisInput).Validate, EvaluatePityriasis))
}
