package protocol

import "fmt"

// Chest X-ray reading support: pattern and sign based hints, never a
// radiology report.

var chestXrayProjections = map[string]bool{"pa": true, "ap": true, "lateral": true}

var chestXrayInspiratoryQualities = map[string]bool{"adecuada": true, "suboptima": true}

var chestXrayPatterns = map[string]bool{
	"ninguno": true, "alveolar": true, "intersticial": true, "atelectasia": true,
	"neumotorax": true, "derrame_pleural": true, "mixto": true,
}

var chestXraySigns = map[string]bool{
	"broncograma_aereo":                true,
	"lineas_kerley_b":                  true,
	"desplazamiento_cisuras":           true,
	"linea_pleural_visceral":           true,
	"ausencia_trama_periferica":        true,
	"signo_menisco":                    true,
	"desplazamiento_mediastinico":      true,
	"cardiomegalia_aparente_ap":        true,
	"neumoperitoneo_subdiafragmatico":  true,
}

// ChestXrayInput collects the observed radiographic findings.
type ChestXrayInput struct {
	Projection         string   `json:"projection"`
	InspiratoryQuality string   `json:"inspiratory_quality"`
	Pattern            string   `json:"pattern"`
	Signs              []string `json:"signs"`
	LesionSizeCm       *float64 `json:"lesion_size_cm,omitempty"`
	ClinicalContext    *string  `json:"clinical_context,omitempty"`
}

// ChestXrayRecommendation is the orientative reading output.
type ChestXrayRecommendation struct {
	SuspectedPatterns       []string `json:"suspected_patterns"`
	UrgentRedFlags          []string `json:"urgent_red_flags"`
	SuggestedActions        []string `json:"suggested_actions"`
	ProjectionCaveats       []string `json:"projection_caveats"`
	SeverityLevel           Severity `json:"severity_level"`
	InterpretabilityTrace   []string `json:"interpretability_trace"`
	HumanValidationRequired bool     `json:"human_validation_required"`
	NonDiagnosticWarning    string   `json:"non_diagnostic_warning"`
}

func (in *ChestXrayInput) Validate() error {
	if in.Projection == "" {
		in.Projection = "pa"
	}
	if !chestXrayProjections[in.Projection] {
		return invalidf("projection", "unknown value %q", in.Projection)
	}
	if in.InspiratoryQuality == "" {
		in.InspiratoryQuality = "adecuada"
	}
	if !chestXrayInspiratoryQualities[in.InspiratoryQuality] {
		return invalidf("inspiratory_quality", "unknown value %q", in.InspiratoryQuality)
	}
	if in.Pattern == "" {
		in.Pattern = "ninguno"
	}
	if !chestXrayPatterns[in.Pattern] {
		return invalidf("pattern", "unknown value %q", in.Pattern)
	}
	for _, sign := range in.Signs {
		if !chestXraySigns[sign] {
			return invalidf("signs", "unknown value %q", sign)
		}
	}
	if in.LesionSizeCm != nil && *in.LesionSizeCm < 0 {
		return invalidf("lesion_size_cm", "must be >= 0")
	}
	return validateNotes("clinical_context", in.ClinicalContext)
}

func (in ChestXrayInput) hasSign(sign string) bool {
	for _, s := range in.Signs {
		if s == sign {
			return true
		}
	}
	return false
}

func chestXraySuspectedPatterns(in ChestXrayInput) []string {
	var suspected []string
	if in.Pattern == "alveolar" || in.Pattern == "mixto" {
		if in.hasSign("broncograma_aereo") {
			suspected = append(suspected, "Ocupacion alveolar compatible con consolidacion (ej. neumonia o edema).")
		} else {
			suspected = append(suspected, "Patron alveolar probable; correlacionar con clinica y evolucion.")
		}
	}
	if in.Pattern == "intersticial" || in.Pattern == "mixto" {
		if in.hasSign("lineas_kerley_b") {
			suspected = append(suspected, "Patron intersticial con lineas B de Kerley (considerar congestion).")
		} else {
			suspected = append(suspected, "Patron intersticial sugerido; completar evaluacion hemodinamica.")
		}
	}
	if in.Pattern == "atelectasia" || in.hasSign("desplazamiento_cisuras") {
		suspected = append(suspected, "Perdida de volumen compatible con atelectasia.")
	}
	if in.Pattern == "neumotorax" ||
		(in.hasSign("linea_pleural_visceral") && in.hasSign("ausencia_trama_periferica")) {
		suspected = append(suspected, "Neumotorax probable por signos pleurales tipicos.")
	}
	if in.Pattern == "derrame_pleural" || in.hasSign("signo_menisco") {
		suspected = append(suspected, "Derrame pleural probable por signo de menisco.")
	}
	if in.LesionSizeCm != nil {
		if *in.LesionSizeCm >= 3 {
			suspected = append(suspected, "Lesion >=3 cm: clasifica como masa y requiere estudio prioritario.")
		} else if *in.LesionSizeCm > 0 {
			suspected = append(suspected, "Lesion focal <3 cm: clasifica como nodulo y requiere seguimiento.")
		}
	}
	if len(suspected) == 0 {
		suspected = append(suspected, "Sin patron dominante; mantener lectura sistematica y correlacion clinica.")
	}
	return suspected
}

func chestXrayRedFlags(in ChestXrayInput) []string {
	var redFlags []string
	if in.Pattern == "neumotorax" && in.hasSign("desplazamiento_mediastinico") && in.hasSign("linea_pleural_visceral") {
		redFlags = append(redFlags, "Sospecha de neumotorax a tension: priorizar descompresion y escalado inmediato.")
	}
	if in.hasSign("neumoperitoneo_subdiafragmatico") {
		redFlags = append(redFlags, "Aire subdiafragmatico sugerente de neumoperitoneo: valorar urgencia quirurgica.")
	}
	return redFlags
}

func chestXrayProjectionCaveats(in ChestXrayInput) []string {
	var caveats []string
	if in.Projection == "ap" {
		caveats = append(caveats, "Proyeccion AP puede magnificar silueta cardiaca (falsa cardiomegalia).")
	}
	if in.InspiratoryQuality == "suboptima" {
		caveats = append(caveats, "Inspiracion suboptima puede simular aumento de densidad basal.")
	}
	return caveats
}

func chestXraySuggestedActions(in ChestXrayInput, redFlags []string) []string {
	var actions []string
	if len(redFlags) > 0 {
		actions = append(actions, "Escalar de inmediato a equipo senior/criticos segun protocolo local.")
	}
	if in.Pattern == "neumotorax" {
		actions = append(actions, "Confirmar extension y monitorizar compromiso hemodinamico.")
	}
	if in.Pattern == "alveolar" || in.Pattern == "intersticial" || in.Pattern == "mixto" {
		actions = append(actions, "Correlacionar hallazgos con gasometria, saturacion y estado clinico.")
	}
	if in.Projection == "ap" && in.hasSign("cardiomegalia_aparente_ap") {
		actions = append(actions, "Evitar sobrediagnosticar cardiomegalia en AP sin correlacion clinica.")
	}
	if in.Pattern == "neumotorax" && in.InspiratoryQuality == "adecuada" {
		actions = append(actions, "Si persiste duda de pequeno neumotorax, considerar placa en espiracion.")
	}
	if in.hasSign("signo_menisco") {
		actions = append(actions, "Valorar cuantia de derrame y causa de base (cardiaca, infecciosa, neoplasica).")
	}
	if len(actions) == 0 {
		actions = append(actions, "Continuar lectura sistematica y reevaluar con contexto clinico del paciente.")
	}
	return actions
}

// EvaluateChestXray builds the chest X-ray support recommendation.
func EvaluateChestXray(in ChestXrayInput) ChestXrayRecommendation {
	redFlags := chestXrayRedFlags(in)
	suspected := chestXraySuspectedPatterns(in)
	actions := chestXraySuggestedActions(in, redFlags)

	var critical []string
	if len(redFlags) > 0 {
		critical = append(critical, "Hallazgo radiografico tiempo-dependiente.")
	}
	severity := ComputeSeverity(critical, nil, actions)

	trace := []string{
		fmt.Sprintf("pattern=%s", in.Pattern),
		fmt.Sprintf("urgent_red_flags=%d", len(redFlags)),
		fmt.Sprintf("severity_level=%s", severity),
	}

	return ChestXrayRecommendation{
		SuspectedPatterns:       suspected,
		UrgentRedFlags:          redFlags,
		SuggestedActions:        actions,
		ProjectionCaveats:       chestXrayProjectionCaveats(in),
		SeverityLevel:           severity,
		InterpretabilityTrace:   trace,
		HumanValidationRequired: true,
		NonDiagnosticWarning:    Disclaimer,
	}
}

func init() {
	register("chest_xray", typed((*ChestXrayInput).Validate, EvaluateChestXray))
}
