package audit

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/edops/edops/internal/domain/agentrun"
)

// InferAITriageLevel reads the Manchester level (1..5) from a stored triage
// run output, falling back to the priority when the level is absent.
func InferAITriageLevel(run *agentrun.AgentRun) int {
	output := outputSection(run, "triage")
	if level, ok := output["triage_level"].(float64); ok {
		l := int(level)
		if l >= 1 && l <= 5 {
			return l
		}
	}
	priority := strings.ToLower(fmt.Sprintf("%v", output["priority"]))
	switch priority {
	case "critical":
		return 1
	case "high":
		return 2
	case "medium":
		return 3
	case "low":
		return 4
	}
	return 3
}

// ClassifyTriageDeviation compares the AI level against the human validated
// one. A higher AI number means a less urgent call, so ai > human is
// under-triage.
func ClassifyTriageDeviation(aiLevel, humanLevel int) string {
	if aiLevel == humanLevel {
		return ClassMatch
	}
	if aiLevel > humanLevel {
		return ClassUnderTriage
	}
	return ClassOverTriage
}

// ScreeningFlags are the AI-side screening signals re-read from a run.
type ScreeningFlags struct {
	RiskLevel                string
	HIVScreeningSuggested    bool
	SepsisRouteSuggested     bool
	PersistentCovidSuspected bool
	LongActingCandidate      bool
}

// ExtractScreeningFlags reads the advanced screening signals from a stored
// run output.
func ExtractScreeningFlags(run *agentrun.AgentRun) ScreeningFlags {
	output := outputSection(run, "advanced_screening")
	actionText := joinedLower(output["screening_actions"])
	return ScreeningFlags{
		RiskLevel:                lowerString(output["geriatric_risk_level"], "medium"),
		HIVScreeningSuggested:    strings.Contains(actionText, "cribado vih"),
		SepsisRouteSuggested:     strings.Contains(actionText, "sepsis"),
		PersistentCovidSuspected: boolValue(output["persistent_covid_suspected"]),
		LongActingCandidate:      boolValue(output["long_acting_candidate"]),
	}
}

// ClassifyScreeningDeviation maps low/medium/high to ordinals and classifies
// the severity deviation. Unknown levels rank as medium.
func ClassifyScreeningDeviation(aiLevel, humanLevel string) string {
	return classifyOrdinal(aiLevel, humanLevel,
		map[string]int{"low": 1, "medium": 2, "high": 3}, 2,
		ClassUnderScreening, ClassOverScreening)
}

// MedicolegalFlags are the AI-side medicolegal signals re-read from a run.
type MedicolegalFlags struct {
	LegalRiskLevel               string
	ConsentRequired              bool
	JudicialNotificationRequired bool
	ChainOfCustodyRequired       bool
}

// ExtractMedicolegalFlags reads the medicolegal signals from a stored run
// output. Judicial and custody flags scan documents, actions and alerts
// together; consent only scans the required documents.
func ExtractMedicolegalFlags(run *agentrun.AgentRun) MedicolegalFlags {
	output := outputSection(run, "medicolegal_ops")
	docsText := joinedLower(output["required_documents"])
	actionsText := joinedLower(output["operational_actions"])
	alertsText := joinedLower(output["critical_legal_alerts"])
	mergedText := docsText + " " + actionsText + " " + alertsText

	return MedicolegalFlags{
		LegalRiskLevel:  lowerString(output["legal_risk_level"], "medium"),
		ConsentRequired: strings.Contains(docsText, "consentimiento informado"),
		JudicialNotificationRequired: containsAny(mergedText,
			"judicial", "juzgado", "parte judicial", "muerte no natural"),
		ChainOfCustodyRequired: strings.Contains(mergedText, "cadena de custodia"),
	}
}

// ClassifyMedicolegalDeviation classifies the legal risk severity deviation.
func ClassifyMedicolegalDeviation(aiLevel, humanLevel string) string {
	return classifyOrdinal(aiLevel, humanLevel,
		map[string]int{"low": 1, "medium": 2, "high": 3}, 2,
		ClassUnderLegalRisk, ClassOverLegalRisk)
}

// ScasestFlags are the AI-side SCASEST signals re-read from a run.
type ScasestFlags struct {
	HighRiskScasest               bool
	EscalationRequired            bool
	ImmediateAntiischemicStrategy bool
}

// ExtractScasestFlags reads the SCASEST signals from a stored run output.
func ExtractScasestFlags(run *agentrun.AgentRun) ScasestFlags {
	output := outputSection(run, "scasest_protocol")
	escalationText := joinedLower(output["escalation_actions"])
	treatmentText := joinedLower(output["initial_treatment_actions"])
	return ScasestFlags{
		HighRiskScasest: boolValue(output["high_risk_scasest"]),
		EscalationRequired: containsAny(escalationText,
			"escalar", "uci", "coronaria", "cardiologia"),
		ImmediateAntiischemicStrategy: containsAny(treatmentText,
			"aas", "antiagregante", "anticoagulacion", "nitratos"),
	}
}

// ClassifyScasestDeviation compares the boolean high-risk calls. Missing a
// high-risk patient is under-classification.
func ClassifyScasestDeviation(aiHighRisk, humanHighRisk bool) string {
	if aiHighRisk == humanHighRisk {
		return ClassMatch
	}
	if !aiHighRisk && humanHighRisk {
		return ClassUnderScasestRisk
	}
	return ClassOverScasestRisk
}

// CardioRiskFlags are the AI-side cardiovascular signals re-read from a run.
type CardioRiskFlags struct {
	RiskLevel                      string
	NonHDLTargetRequired           bool
	PharmacologicStrategySuggested bool
	IntensiveLifestyleRequired     bool
}

// ExtractCardioRiskFlags reads the cardiovascular signals from a stored run
// output.
func ExtractCardioRiskFlags(run *agentrun.AgentRun) CardioRiskFlags {
	output := outputSection(run, "cardio_risk_support")
	return CardioRiskFlags{
		RiskLevel:                      lowerString(output["risk_level"], "moderate"),
		NonHDLTargetRequired:           boolValue(output["non_hdl_target_required"]),
		PharmacologicStrategySuggested: boolValue(output["pharmacologic_strategy_suggested"]),
		IntensiveLifestyleRequired:     boolValue(output["intensive_lifestyle_required"]),
	}
}

// ClassifyCardioRiskDeviation classifies the cardiovascular risk deviation.
// Unknown levels rank as moderate.
func ClassifyCardioRiskDeviation(aiLevel, humanLevel string) string {
	return classifyOrdinal(aiLevel, humanLevel,
		map[string]int{"low": 1, "moderate": 2, "high": 3, "very_high": 4}, 2,
		ClassUnderCardioRisk, ClassOverCardioRisk)
}

// ResuscitationFlags are the AI-side resuscitation signals re-read from a run.
type ResuscitationFlags struct {
	SeverityLevel            string
	ShockRecommended         bool
	ReversibleCausesRequired bool
	AirwayPlanAdequate       bool
}

// ExtractResuscitationFlags reads the resuscitation signals from a stored run
// output. The reversible causes flag is true when the checklist is non-empty.
func ExtractResuscitationFlags(run *agentrun.AgentRun) ResuscitationFlags {
	output := outputSection(run, "resuscitation_protocol")
	ventilationText := joinedLower(output["ventilation_actions"])
	checklist, _ := output["reversible_causes_checklist"].([]any)
	return ResuscitationFlags{
		SeverityLevel:            lowerString(output["severity_level"], "high"),
		ShockRecommended:         boolValue(output["shock_recommended"]),
		ReversibleCausesRequired: len(checklist) > 0,
		AirwayPlanAdequate: strings.Contains(ventilationText, "capnografia") ||
			strings.Contains(ventilationText, "via aerea"),
	}
}

// ClassifyResuscitationDeviation classifies the severity deviation. Unknown
// levels rank as high.
func ClassifyResuscitationDeviation(aiLevel, humanLevel string) string {
	return classifyOrdinal(aiLevel, humanLevel,
		map[string]int{"medium": 1, "high": 2, "critical": 3}, 2,
		ClassUnderResuscitationRisk, ClassOverResuscitationRisk)
}

func classifyOrdinal(aiLevel, humanLevel string, ranks map[string]int, fallback int, under, over string) string {
	aiValue, ok := ranks[aiLevel]
	if !ok {
		aiValue = fallback
	}
	humanValue, ok := ranks[humanLevel]
	if !ok {
		humanValue = fallback
	}
	if aiValue == humanValue {
		return ClassMatch
	}
	if aiValue < humanValue {
		return under
	}
	return over
}

// outputSection decodes the named object from a run's stored output. Returns
// an empty map when the output is absent or malformed.
func outputSection(run *agentrun.AgentRun, key string) map[string]any {
	if run == nil || len(run.RunOutput) == 0 {
		return map[string]any{}
	}
	var output map[string]json.RawMessage
	if err := json.Unmarshal(run.RunOutput, &output); err != nil {
		return map[string]any{}
	}
	var section map[string]any
	if err := json.Unmarshal(output[key], &section); err != nil {
		return map[string]any{}
	}
	return section
}

func joinedLower(value any) string {
	items, ok := value.([]any)
	if !ok {
		return ""
	}
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, strings.ToLower(fmt.Sprintf("%v", item)))
	}
	return strings.Join(parts, " ")
}

func lowerString(value any, fallback string) string {
	s, ok := value.(string)
	if !ok || s == "" {
		return fallback
	}
	return strings.ToLower(s)
}

func boolValue(value any) bool {
	b, _ := value.(bool)
	return b
}

func containsAny(text string, tokens ...string) bool {
	for _, token := range tokens {
		if strings.Contains(text, token) {
			return true
		}
	}
	return false
}
