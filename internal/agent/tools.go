// Package agent implements the safety layer around assistant tool usage:
// the tool catalog, the layered allow/deny policy pipeline, risk assessment,
// untrusted-content isolation and per-turn security findings.
package agent

import (
	"sort"
	"strings"
)

// Tool modes the assistant can be asked to run in. Group membership drives
// both the policy pipeline and the risk assessor.
const (
	ToolChat       = "chat"
	ToolCases      = "cases"
	ToolMedication = "medication"
	ToolTreatment  = "treatment"
	ToolDeepSearch = "deep_search"
	ToolImages     = "images"
)

// toolGroups maps a group name to its member tool modes. The dangerous and
// all groups are derived from the base groups, never listed by hand.
var toolGroups = buildToolGroups()

func buildToolGroups() map[string]map[string]bool {
	groups := map[string]map[string]bool{
		"conversation":     {ToolChat: true, ToolCases: true},
		"clinical_actions": {ToolMedication: true, ToolTreatment: true},
		"external_network": {ToolDeepSearch: true},
		"sensitive_media":  {ToolImages: true},
	}
	dangerous := map[string]bool{}
	for _, group := range []string{"clinical_actions", "external_network", "sensitive_media"} {
		for tool := range groups[group] {
			dangerous[tool] = true
		}
	}
	groups["dangerous"] = dangerous
	all := map[string]bool{}
	for _, members := range groups {
		for tool := range members {
			all[tool] = true
		}
	}
	groups["all"] = all
	return groups
}

func toolInGroup(group, mode string) bool {
	return toolGroups[group][mode]
}

// KnownTools returns every catalogued tool mode, sorted.
func KnownTools() []string {
	tools := make([]string, 0, len(toolGroups["all"]))
	for tool := range toolGroups["all"] {
		tools = append(tools, tool)
	}
	sort.Strings(tools)
	return tools
}

// RiskAssessment is the risk snapshot for one requested tool mode.
type RiskAssessment struct {
	ToolMode    string   `json:"tool_mode"`
	IsDangerous bool     `json:"is_dangerous"`
	RiskLevel   string   `json:"risk_level"`
	Categories  []string `json:"categories"`
	Reasons     []string `json:"reasons"`
}

// RiskContext carries the turn context the assessor weighs.
type RiskContext struct {
	ToolMode                string
	ResponseMode            string
	PromptInjectionDetected bool
	UseWebSources           bool
}

// AssessToolRisk classifies the requested tool mode on a low/medium/high/
// critical ladder. Membership in a risky group lifts the base level, clinical
// actions in clinical mode and web-backed network lookups lift it again, and
// any injection signal on top of a risky category is critical.
func AssessToolRisk(ctx RiskContext) RiskAssessment {
	mode := strings.ToLower(strings.TrimSpace(ctx.ToolMode))
	categories := []string{}
	reasons := []string{}

	if toolInGroup("clinical_actions", mode) {
		categories = append(categories, "clinical_actions")
		reasons = append(reasons, "may_suggest_mutable_clinical_actions")
	}
	if toolInGroup("external_network", mode) {
		categories = append(categories, "external_network")
		reasons = append(reasons, "may_trigger_external_network_lookup")
	}
	if toolInGroup("sensitive_media", mode) {
		categories = append(categories, "sensitive_media")
		reasons = append(reasons, "may_handle_sensitive_media_context")
	}

	riskLevel := "low"
	if len(categories) > 0 {
		riskLevel = "medium"
	}
	if toolInGroup("clinical_actions", mode) && ctx.ResponseMode == "clinical" {
		riskLevel = "high"
	}
	if toolInGroup("external_network", mode) && ctx.UseWebSources {
		riskLevel = "high"
	}
	if ctx.PromptInjectionDetected && len(categories) > 0 {
		riskLevel = "critical"
		reasons = append(reasons, "prompt_injection_signal_present")
	}

	return RiskAssessment{
		ToolMode:    mode,
		IsDangerous: toolInGroup("dangerous", mode),
		RiskLevel:   riskLevel,
		Categories:  categories,
		Reasons:     reasons,
	}
}
