package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluatePolicyDefaultClinicianChat(t *testing.T) {
	decision := EvaluatePolicy(PolicyContext{
		RequestedToolMode:      "chat",
		ResponseMode:           "general",
		HumanReviewRequired:    true,
		IncludeProtocolCatalog: true,
	})

	assert.True(t, decision.Allowed)
	assert.Equal(t, "chat", decision.EffectiveToolMode)
	assert.Equal(t, ReasonAllowedByPolicy, decision.ReasonCode)
	require.NotEmpty(t, decision.Trace)
	assert.Equal(t, "tool_policy_layer=global;allow=cases,chat;deny=deep_search,images,medication,treatment", decision.Trace[0])
	assert.Equal(t, "tool_policy_decision=allow;requested=chat;effective=chat;reason=allowed_by_policy", decision.Trace[len(decision.Trace)-1])
}

func TestEvaluatePolicyClinicalModeLiftsGlobalDeny(t *testing.T) {
	decision := EvaluatePolicy(PolicyContext{
		RequestedToolMode:      "medication",
		ResponseMode:           "clinical",
		HumanReviewRequired:    true,
		IncludeProtocolCatalog: true,
	})

	assert.True(t, decision.Allowed)
	assert.Equal(t, "medication", decision.EffectiveToolMode)
	assert.Contains(t, decision.Allowlist, "medication")
	assert.NotContains(t, decision.Denylist, "medication")
}

func TestEvaluatePolicyNoHumanReviewBlocksClinicalActions(t *testing.T) {
	decision := EvaluatePolicy(PolicyContext{
		RequestedToolMode:      "treatment",
		ResponseMode:           "clinical",
		HumanReviewRequired:    false,
		IncludeProtocolCatalog: true,
	})

	assert.False(t, decision.Allowed)
	assert.Equal(t, "chat", decision.EffectiveToolMode)
	assert.Equal(t, ReasonDeniedByPolicy, decision.ReasonCode)
	assert.Contains(t, decision.Trace, "tool_policy_layer=context:no_human_review;allow=none;deny=medication,treatment")
}

func TestEvaluatePolicyCatalogDisabledDeniesTreatmentOnly(t *testing.T) {
	decision := EvaluatePolicy(PolicyContext{
		RequestedToolMode:      "treatment",
		ResponseMode:           "clinical",
		HumanReviewRequired:    true,
		IncludeProtocolCatalog: false,
	})

	assert.False(t, decision.Allowed)
	assert.Equal(t, ReasonDeniedByPolicy, decision.ReasonCode)

	medication := EvaluatePolicy(PolicyContext{
		RequestedToolMode:      "medication",
		ResponseMode:           "clinical",
		HumanReviewRequired:    true,
		IncludeProtocolCatalog: false,
	})
	assert.True(t, medication.Allowed)
}

func TestEvaluatePolicySuperuserInjectionStillDenies(t *testing.T) {
	decision := EvaluatePolicy(PolicyContext{
		RequestedToolMode:       "deep_search",
		ResponseMode:            "clinical",
		UserIsSuperuser:         true,
		PromptInjectionDetected: true,
		HumanReviewRequired:     true,
		IncludeProtocolCatalog:  true,
	})

	assert.False(t, decision.Allowed)
	assert.Equal(t, ReasonDeniedByPolicy, decision.ReasonCode)
	assert.Equal(t, "chat", decision.EffectiveToolMode)
	assert.Contains(t, decision.Trace, "tool_policy_layer=context:prompt_injection;allow=none;deny=deep_search,images,medication,treatment")
}

func TestEvaluatePolicySuperuserGetsEverything(t *testing.T) {
	decision := EvaluatePolicy(PolicyContext{
		RequestedToolMode:      "images",
		ResponseMode:           "general",
		UserIsSuperuser:        true,
		HumanReviewRequired:    false,
		IncludeProtocolCatalog: false,
	})

	// catalog_disabled only re-denies treatment; images stays allowed.
	assert.True(t, decision.Allowed)
	assert.Equal(t, "images", decision.EffectiveToolMode)
}

func TestEvaluatePolicyUnknownTool(t *testing.T) {
	decision := EvaluatePolicy(PolicyContext{
		RequestedToolMode:      "shell",
		HumanReviewRequired:    true,
		IncludeProtocolCatalog: true,
	})

	assert.False(t, decision.Allowed)
	assert.Equal(t, ReasonUnknownToolMode, decision.ReasonCode)
	assert.Equal(t, "chat", decision.EffectiveToolMode)
	assert.Equal(t, "tool_policy_decision=deny_unknown:shell", decision.Trace[len(decision.Trace)-1])
}

func TestEvaluatePolicyEmptyRequestDefaultsToChat(t *testing.T) {
	decision := EvaluatePolicy(PolicyContext{
		RequestedToolMode:      "  ",
		HumanReviewRequired:    true,
		IncludeProtocolCatalog: true,
	})

	assert.True(t, decision.Allowed)
	assert.Equal(t, "chat", decision.RequestedToolMode)
}

func TestEvaluatePolicyDeniedByDefaultForWebWithoutOptIn(t *testing.T) {
	decision := EvaluatePolicy(PolicyContext{
		RequestedToolMode:      "deep_search",
		ResponseMode:           "clinical",
		UseWebSources:          false,
		HumanReviewRequired:    true,
		IncludeProtocolCatalog: true,
	})

	assert.False(t, decision.Allowed)
	assert.Equal(t, ReasonDeniedByPolicy, decision.ReasonCode)
}
