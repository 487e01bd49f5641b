package protocol

import "fmt"

// Acne vs rosacea differential with pharmacologic safety alerts and the
// isotretinoin monitoring checklist.

var acneRosaceaSexes = map[string]bool{"femenino": true, "masculino": true, "otro": true}

var acneRosaceaDistributions = map[string]bool{
	"mejillas": true, "nariz": true, "frente": true, "menton": true,
	"torax": true, "espalda": true, "cuello": true, "generalizada": true,
}

var acneRosaceaPatterns = map[string]bool{
	"polimorfo": true, "monomorfo": true, "papulo_pustuloso": true, "nodulo_quistico": true,
}

// AcneRosaceaInput is the structured input for the acne/rosacea differential.
type AcneRosaceaInput struct {
	AgeYears                      int      `json:"age_years"`
	Sex                           string   `json:"sex"`
	LesionDistribution            []string `json:"lesion_distribution"`
	ComedonesPresent              bool     `json:"comedones_present"`
	LesionPattern                 string   `json:"lesion_pattern"`
	FlushingPresent               bool     `json:"flushing_present"`
	TelangiectasiasPresent        bool     `json:"telangiectasias_present"`
	OcularSymptomsPresent         bool     `json:"ocular_symptoms_present"`
	PhymatousChangesPresent       bool     `json:"phymatous_changes_present"`
	PhotosensitivityTriggered     bool     `json:"photosensitivity_triggered"`
	VasodilatoryTriggersPresent   bool     `json:"vasodilatory_triggers_present"`
	SevereNodulesAbscessesPresent bool     `json:"severe_nodules_abscesses_present"`
	SystemicSymptomsPresent       bool     `json:"systemic_symptoms_present"`
	ElevatedVSGOrLeukocytosis     bool     `json:"elevated_vsg_or_leukocytosis"`
	SuspectedHyperandrogenism     bool     `json:"suspected_hyperandrogenism"`
	PediatricPatient              bool     `json:"pediatric_patient"`
	PregnantOrPregnancyPossible   bool     `json:"pregnant_or_pregnancy_possible"`
	IsotretinoinCandidate         bool     `json:"isotretinoin_candidate"`
	CurrentSystemicTetracycline   bool     `json:"current_systemic_tetracycline"`
	CurrentRetinoidOral           bool     `json:"current_retinoid_oral"`
	ClinicalContext               *string  `json:"clinical_context,omitempty"`
}

// AcneRosaceaRecommendation is the interpretable differential output.
type AcneRosaceaRecommendation struct {
	MostLikelyCondition             string   `json:"most_likely_condition"`
	SuspectedSubtype                string   `json:"suspected_subtype"`
	SeverityLevel                   Severity `json:"severity_level"`
	DifferentialDiagnoses           []string `json:"differential_diagnoses"`
	SupportingFindings              []string `json:"supporting_findings"`
	InitialManagement               []string `json:"initial_management"`
	PharmacologicConsiderations     []string `json:"pharmacologic_considerations"`
	IsotretinoinMonitoringChecklist []string `json:"isotretinoin_monitoring_checklist"`
	UrgentRedFlags                  []string `json:"urgent_red_flags"`
	FollowUpRecommendations         []string `json:"follow_up_recommendations"`
	InterpretabilityTrace           []string `json:"interpretability_trace"`
	HumanValidationRequired         bool     `json:"human_validation_required"`
	NonDiagnosticWarning            string   `json:"non_diagnostic_warning"`
}

func (in *AcneRosaceaInput) Validate() error {
	if in.AgeYears < 0 || in.AgeYears > 120 {
		return invalidf("age_years", "must be between 0 and 120")
	}
	if in.Sex == "" {
		in.Sex = "otro"
	}
	if !acneRosaceaSexes[in.Sex] {
		return invalidf("sex", "unknown value %q", in.Sex)
	}
	for _, zone := range in.LesionDistribution {
		if !acneRosaceaDistributions[zone] {
			return invalidf("lesion_distribution", "unknown value %q", zone)
		}
	}
	if in.LesionPattern == "" {
		in.LesionPattern = "papulo_pustuloso"
	}
	if !acneRosaceaPatterns[in.LesionPattern] {
		return invalidf("lesion_pattern", "unknown value %q", in.LesionPattern)
	}
	return validateNotes("clinical_context", in.ClinicalContext)
}

func (in AcneRosaceaInput) distributionIntersects(zones ...string) bool {
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

func acneScore(in AcneRosaceaInput) (int, []string) {
	score := 0
	var findings []string
	if in.ComedonesPresent {
		score += 4
		findings = append(findings, "Comedones presentes, hallazgo clave a favor de acne.")
	}
	if in.LesionPattern == "polimorfo" || in.LesionPattern == "nodulo_quistico" {
		score += 2
		findings = append(findings, "Patron lesional polimorfo/nodulo-quistico compatible con acne.")
	}
	if in.distributionIntersects("torax", "espalda") {
		score += 2
		findings = append(findings, "Afectacion troncal frecuente en acne.")
	}
	if in.SuspectedHyperandrogenism && in.Sex == "femenino" {
		score++
		findings = append(findings, "Contexto de posible hiperandrogenismo asociado.")
	}
	if in.FlushingPresent || in.TelangiectasiasPresent {
		score--
	}
	return score, findings
}

func rosaceaScore(in AcneRosaceaInput) (int, []string) {
	score := 0
	var findings []string
	if !in.ComedonesPresent {
		score += 2
		findings = append(findings, "Ausencia de comedones, orienta a rosacea.")
	}
	if in.FlushingPresent {
		score += 2
		findings = append(findings, "Flushing facial presente.")
	}
	if in.TelangiectasiasPresent {
		score += 2
		findings = append(findings, "Telangiectasias presentes.")
	}
	if in.VasodilatoryTriggersPresent || in.PhotosensitivityTriggered {
		score++
		findings = append(findings, "Detonantes vasodilatadores/fotoexposicion reportados.")
	}
	if in.distributionIntersects("mejillas", "nariz", "frente", "menton") {
		score++
		findings = append(findings, "Distribucion centrofacial compatible.")
	}
	if in.OcularSymptomsPresent {
		score++
		findings = append(findings, "Sintomas oculares compatibles con subtipo ocular.")
	}
	if in.PhymatousChangesPresent {
		score += 2
		findings = append(findings, "Cambios fimatosos presentes.")
	}
	return score, findings
}

func acneRosaceaRedFlags(in AcneRosaceaInput) []string {
	var alerts []string
	if in.SevereNodulesAbscessesPresent && in.SystemicSymptomsPresent && in.ElevatedVSGOrLeukocytosis {
		alerts = append(alerts, "Sospecha de acne fulminans: priorizar valoracion dermatologica urgente.")
	}
	if in.PhymatousChangesPresent {
		alerts = append(alerts, "Rosacea fimatosa: valorar derivacion para manejo quirurgico/laser especializado.")
	}
	if in.OcularSymptomsPresent {
		alerts = append(alerts, "Rosacea ocular probable: coordinar valoracion oftalmologica precoz.")
	}
	return alerts
}

func acneRosaceaCondition(acne, rosacea int) string {
	if acne < 2 && rosacea < 2 {
		return "indeterminado"
	}
	diff := acne - rosacea
	if diff < 0 {
		diff = -diff
	}
	if diff <= 1 {
		return "indeterminado"
	}
	if acne > rosacea {
		return "acne"
	}
	return "rosacea"
}

func acneRosaceaSubtype(in AcneRosaceaInput, condition string) string {
	switch condition {
	case "acne":
		if in.SevereNodulesAbscessesPresent {
			return "acne_grave_nodulo_quistico"
		}
		if in.LesionPattern == "polimorfo" {
			return "acne_vulgar_polimorfo"
		}
		return "acne_papulo_pustuloso"
	case "rosacea":
		if in.PhymatousChangesPresent {
			return "rosacea_fimatosa"
		}
		if in.OcularSymptomsPresent {
			return "rosacea_ocular"
		}
		if in.FlushingPresent || in.TelangiectasiasPresent {
			return "rosacea_eritematotelangiectasica"
		}
		return "rosacea_papulopustulosa"
	default:
		return "diferencial_abierto"
	}
}

func acneRosaceaSeverity(in AcneRosaceaInput, redFlags []string) Severity {
	if len(redFlags) > 0 || in.SevereNodulesAbscessesPresent {
		return SeverityHigh
	}
	if in.LesionPattern == "papulo_pustuloso" || in.LesionPattern == "polimorfo" {
		return SeverityMedium
	}
	return SeverityLow
}

func acneRosaceaInitialManagement(condition, subtype string) []string {
	switch condition {
	case "acne":
		actions := []string{
			"Base topica inicial: peroxido de benzoilo + retinoide topico segun tolerancia.",
		}
		if subtype == "acne_grave_nodulo_quistico" {
			actions = append(actions, "Escalar a terapia sistemica y derivacion dermatologica preferente.")
		} else {
			actions = append(actions, "Valorar antibiotico oral en acne moderado si no hay respuesta topica.")
		}
		return actions
	case "rosacea":
		actions := []string{
			"Evitar detonantes vasodilatadores y reforzar fotoproteccion diaria.",
		}
		switch subtype {
		case "rosacea_eritematotelangiectasica":
			actions = append(actions, "Considerar brimonidina topica para control de eritema persistente.")
		case "rosacea_papulopustulosa":
			actions = append(actions, "Primera linea topica: metronidazol/azelaico/ivermectina.")
		default:
			actions = append(actions, "Derivacion especializada por subtipo no leve.")
		}
		return actions
	default:
		return []string{"No iniciar estrategia dirigida hasta confirmar diferencial en consulta."}
	}
}

func acneRosaceaPharmacologicNotes(in AcneRosaceaInput, condition string) []string {
	var notes []string
	if condition == "acne" {
		if in.PediatricPatient {
			notes = append(notes, "Evitar tetraciclinas en paciente pediatrico; considerar alternativa segun edad.")
		}
		if in.SuspectedHyperandrogenism && in.Sex == "femenino" {
			notes = append(notes, "Valorar estrategia antiandrogenica en coordinacion con ginecologia.")
		}
	}
	if in.PregnantOrPregnancyPossible {
		notes = append(notes, "Contraindicar retinoides sistemicos si existe embarazo posible.")
	}
	if in.CurrentSystemicTetracycline && in.CurrentRetinoidOral {
		notes = append(notes, "Revisar seguridad por combinacion sistemica y ajustar pauta segun criterio experto.")
	}
	if len(notes) == 0 {
		notes = append(notes, "Sin alertas farmacologicas mayores en datos reportados.")
	}
	return notes
}

func isotretinoinChecklist(in AcneRosaceaInput) []string {
	if !in.IsotretinoinCandidate {
		return []string{"No aplica en este episodio (candidato a isotretinoina no activado)."}
	}
	return []string{
		"Confirmar consentimiento informado especifico de isotretinoina.",
		"Solicitar perfil lipidico basal y seguimiento seriado.",
		"Solicitar funcion hepatica (GOT/GPT) basal y seguimiento.",
		"Monitorizar CPK, especialmente si realiza ejercicio intenso.",
		"Asegurar estrategia anticonceptiva y test de embarazo segun protocolo.",
		"Plan de hidratacion/fotoproteccion por xerosis y fotosensibilidad esperables.",
	}
}

// EvaluateAcneRosacea builds the acne/rosacea differential recommendation.
func EvaluateAcneRosacea(in AcneRosaceaInput) AcneRosaceaRecommendation {
	acnePoints, acneFindings := acneScore(in)
	rosaceaPoints, rosaceaFindings := rosaceaScore(in)
	redFlags := acneRosaceaRedFlags(in)
	condition := acneRosaceaCondition(acnePoints, rosaceaPoints)
	subtype := acneRosaceaSubtype(in, condition)
	severity := acneRosaceaSeverity(in, redFlags)

	var findings []string
	switch condition {
	case "acne":
		findings = acneFindings
	case "rosacea":
		findings = rosaceaFindings
	default:
		if len(acneFindings) > 0 {
			findings = append(findings, acneFindings[0])
		}
		if len(rosaceaFindings) > 0 {
			findings = append(findings, rosaceaFindings[0])
		}
		if len(findings) == 0 {
			findings = []string{"Datos clinicos no concluyentes para clasificacion unica."}
		}
	}

	trace := []string{
		fmt.Sprintf("score_acne=%d", acnePoints),
		fmt.Sprintf("score_rosacea=%d", rosaceaPoints),
		fmt.Sprintf("most_likely_condition=%s", condition),
		fmt.Sprintf("suspected_subtype=%s", subtype),
		fmt.Sprintf("severity_level=%s", severity),
	}

	return AcneRosaceaRecommendation{
		MostLikelyCondition:             condition,
		SuspectedSubtype:                subtype,
		SeverityLevel:                   severity,
		DifferentialDiagnoses:           []string{"acne", "rosacea", "urticaria_vasculitis"},
		SupportingFindings:              findings,
		InitialManagement:               acneRosaceaInitialManagement(condition, subtype),
		PharmacologicConsiderations:     acneRosaceaPharmacologicNotes(in, condition),
		IsotretinoinMonitoringChecklist: isotretinoinChecklist(in),
		UrgentRedFlags:                  redFlags,
		FollowUpRecommendations: []string{
			"Reevaluar respuesta en 2-4 semanas o antes si empeora.",
			"Escalar a dermatologia si no hay mejoria clinica inicial.",
		},
		InterpretabilityTrace:   trace,
		HumanValidationRequired: true,
		NonDiagnosticWarning:    Disclaimer,
	}
}

func init() {
	register("acne_rosacea", typed((*AcneRosaceaInput).Validate, EvaluateAcneRosacea))
}
