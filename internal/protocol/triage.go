package protocol

import (
	"strings"
)

// Deterministic keyword triage for care tasks. Explainable on purpose: each
// matched rule contributes a readable reason fragment.

var (
	triageBugKeywords      = []string{"bug", "error", "fix", "exception", "crash", "incident"}
	triageOpsKeywords      = []string{"deploy", "docker", "infra", "monitor", "prometheus", "grafana"}
	triageDocsKeywords     = []string{"docs", "readme", "document", "guide", "tutorial"}
	triageAnalysisKeywords = []string{"analyze", "investigate", "research", "spike", "poc"}
	triageUrgentKeywords   = []string{"urgent", "asap", "critical", "blocker", "production"}
)

// TriageInput is the text to classify.
type TriageInput struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
}

// TriageSuggestion is the rule-based triage output.
type TriageSuggestion struct {
	Priority   string  `json:"priority"`
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
	Reason     string  `json:"reason"`
	Source     string  `json:"source"`
}

func (in *TriageInput) Validate() error {
	if n := len(in.Title); n < 3 || n > 200 {
		return invalidf("title", "length must be between 3 and 200")
	}
	if in.Description != nil && len(*in.Description) > 2000 {
		return invalidf("description", "must be at most 2000 characters")
	}
	return nil
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// EvaluateTriage classifies a task title and description into a category and
// an execution priority using deterministic rules.
func EvaluateTriage(in TriageInput) TriageSuggestion {
	desc := ""
	if in.Description != nil {
		desc = *in.Description
	}
	text := strings.ToLower(in.Title + " " + desc)

	category := "general"
	confidence := 0.55
	var reasons []string

	switch {
	case containsAny(text, triageBugKeywords):
		category = "bug"
		confidence = max(confidence, 0.8)
		reasons = append(reasons, "Se detectaron palabras clave de errores.")
	case containsAny(text, triageDocsKeywords):
		category = "docs"
		confidence = max(confidence, 0.76)
		reasons = append(reasons, "Se detectaron palabras clave de documentacion.")
	case containsAny(text, triageOpsKeywords):
		category = "ops"
		confidence = max(confidence, 0.78)
		reasons = append(reasons, "Se detectaron palabras clave de operaciones/infraestructura.")
	case containsAny(text, triageAnalysisKeywords):
		category = "analysis"
		confidence = max(confidence, 0.74)
		reasons = append(reasons, "Se detectaron palabras clave de analisis/investigacion.")
	case strings.Contains(text, "api") || strings.Contains(text, "feature") || strings.Contains(text, "endpoint"):
		category = "dev"
		confidence = max(confidence, 0.72)
		reasons = append(reasons, "Se detectaron palabras clave de desarrollo/producto.")
	}

	priority := "medium"
	switch {
	case containsAny(text, triageUrgentKeywords):
		priority = "high"
		confidence = max(confidence, 0.85)
		reasons = append(reasons, "Las palabras de urgencia indican prioridad alta.")
	case category == "bug" || category == "ops":
		priority = "high"
		confidence = max(confidence, 0.8)
		reasons = append(reasons, "La categoria suele impactar la fiabilidad del sistema.")
	case category == "docs" || category == "analysis":
		priority = "low"
		reasons = append(reasons, "La tarea parece no bloqueante para la operacion en ejecucion.")
	}

	if len(reasons) == 0 {
		reasons = append(reasons, "No se detectaron senales fuertes; se aplican valores conservadores.")
	}

	return TriageSuggestion{
		Priority:   priority,
		Category:   category,
		Confidence: round2(confidence),
		Reason:     strings.Join(reasons, " "),
		Source:     "rules",
	}
}

func init() {
	register("triage", typed((*TriageInput).Validate, EvaluateTriage))
}
