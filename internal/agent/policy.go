package agent

import (
	"fmt"
	"sort"
	"strings"
)

// policyLayer contributes allow/deny rules, by tool and by group, to the fold.
type policyLayer struct {
	name        string
	allowTools  []string
	denyTools   []string
	allowGroups []string
	denyGroups  []string
}

// PolicyContext carries everything the pipeline needs to decide one turn.
type PolicyContext struct {
	RequestedToolMode       string
	ResponseMode            string
	UserIsSuperuser         bool
	PromptInjectionDetected bool
	HumanReviewRequired     bool
	UseWebSources           bool
	IncludeProtocolCatalog  bool
}

// PolicyDecision is the outcome of the layered evaluation. A denied request
// is a normal decision, not an error; the effective mode falls back to chat.
type PolicyDecision struct {
	RequestedToolMode string   `json:"requested_tool_mode"`
	EffectiveToolMode string   `json:"effective_tool_mode"`
	Allowed           bool     `json:"allowed"`
	ReasonCode        string   `json:"reason_code"`
	Trace             []string `json:"trace"`
	Allowlist         []string `json:"allowlist"`
	Denylist          []string `json:"denylist"`
}

// Decision reason codes.
const (
	ReasonAllowedByPolicy = "allowed_by_policy"
	ReasonDeniedByPolicy  = "denied_by_policy"
	ReasonDeniedByDefault = "denied_by_default"
	ReasonUnknownToolMode = "unknown_tool_mode"
)

func buildPolicyLayers(ctx PolicyContext) []policyLayer {
	layers := []policyLayer{
		{
			name:       "global",
			allowTools: []string{ToolChat, ToolCases},
			denyGroups: []string{"dangerous"},
		},
	}

	if ctx.UserIsSuperuser {
		layers = append(layers, policyLayer{
			name:        "profile:superuser",
			allowGroups: []string{"all"},
		})
	} else {
		var allowGroups []string
		if ctx.ResponseMode == "clinical" {
			allowGroups = append(allowGroups, "clinical_actions", "sensitive_media")
		}
		if ctx.UseWebSources {
			allowGroups = append(allowGroups, "external_network")
		}
		layers = append(layers, policyLayer{
			name:        "profile:clinician",
			allowGroups: allowGroups,
		})
	}

	if !ctx.HumanReviewRequired {
		layers = append(layers, policyLayer{
			name:       "context:no_human_review",
			denyGroups: []string{"clinical_actions"},
		})
	}
	if !ctx.IncludeProtocolCatalog {
		layers = append(layers, policyLayer{
			name:      "agent:catalog_disabled",
			denyTools: []string{ToolTreatment},
		})
	}
	if ctx.PromptInjectionDetected {
		layers = append(layers, policyLayer{
			name:       "context:prompt_injection",
			denyGroups: []string{"dangerous"},
		})
	}
	return layers
}

func expandGroups(groups []string) map[string]bool {
	expanded := map[string]bool{}
	for _, group := range groups {
		for tool := range toolGroups[group] {
			expanded[tool] = true
		}
	}
	return expanded
}

func sortedCSV(set map[string]bool) string {
	if len(set) == 0 {
		return "none"
	}
	tools := make([]string, 0, len(set))
	for tool := range set {
		tools = append(tools, tool)
	}
	sort.Strings(tools)
	return strings.Join(tools, ",")
}

func sortedList(set map[string]bool) []string {
	tools := make([]string, 0, len(set))
	for tool := range set {
		tools = append(tools, tool)
	}
	sort.Strings(tools)
	return tools
}

// EvaluatePolicy resolves the effective tool mode through the layered
// policies. Layer order matters: an allow in a later layer lifts a deny from
// an earlier one, and a later deny blocks the tool again. The trace records
// every layer contribution plus the final decision line.
func EvaluatePolicy(ctx PolicyContext) PolicyDecision {
	requested := strings.ToLower(strings.TrimSpace(ctx.RequestedToolMode))
	if requested == "" {
		requested = ToolChat
	}
	allowSet := map[string]bool{}
	denySet := map[string]bool{}
	var trace []string

	for _, layer := range buildPolicyLayers(ctx) {
		layerAllow := expandGroups(layer.allowGroups)
		for _, tool := range layer.allowTools {
			layerAllow[tool] = true
		}
		layerDeny := expandGroups(layer.denyGroups)
		for _, tool := range layer.denyTools {
			layerDeny[tool] = true
		}
		for tool := range layerAllow {
			allowSet[tool] = true
		}
		for tool := range layerDeny {
			delete(allowSet, tool)
			denySet[tool] = true
		}
		for tool := range layerAllow {
			delete(denySet, tool)
		}
		trace = append(trace, fmt.Sprintf(
			"tool_policy_layer=%s;allow=%s;deny=%s",
			layer.name, sortedCSV(layerAllow), sortedCSV(layerDeny),
		))
	}

	if !toolInGroup("all", requested) {
		return PolicyDecision{
			RequestedToolMode: requested,
			EffectiveToolMode: ToolChat,
			Allowed:           false,
			ReasonCode:        ReasonUnknownToolMode,
			Trace:             append(trace, "tool_policy_decision=deny_unknown:"+requested),
			Allowlist:         sortedList(allowSet),
			Denylist:          sortedList(denySet),
		}
	}

	allowed := allowSet[requested] && !denySet[requested]
	reason := ReasonDeniedByDefault
	effective := ToolChat
	verdict := "deny"
	switch {
	case allowed:
		reason = ReasonAllowedByPolicy
		effective = requested
		verdict = "allow"
	case denySet[requested]:
		reason = ReasonDeniedByPolicy
	}

	trace = append(trace, fmt.Sprintf(
		"tool_policy_decision=%s;requested=%s;effective=%s;reason=%s",
		verdict, requested, effective, reason,
	))
	return PolicyDecision{
		RequestedToolMode: requested,
		EffectiveToolMode: effective,
		Allowed:           allowed,
		ReasonCode:        reason,
		Trace:             trace,
		Allowlist:         sortedList(allowSet),
		Denylist:          sortedList(denySet),
	}
}
