package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKnownTools(t *testing.T) {
	assert.Equal(t, []string{"cases", "chat", "deep_search", "images", "medication", "treatment"}, KnownTools())
}

func TestAssessToolRiskChatIsLow(t *testing.T) {
	risk := AssessToolRisk(RiskContext{ToolMode: "chat", ResponseMode: "general"})

	assert.Equal(t, "low", risk.RiskLevel)
	assert.False(t, risk.IsDangerous)
	assert.Empty(t, risk.Categories)
	assert.Empty(t, risk.Reasons)
}

func TestAssessToolRiskMediumForSensitiveMedia(t *testing.T) {
	risk := AssessToolRisk(RiskContext{ToolMode: "images", ResponseMode: "general"})

	assert.Equal(t, "medium", risk.RiskLevel)
	assert.True(t, risk.IsDangerous)
	assert.Equal(t, []string{"sensitive_media"}, risk.Categories)
	assert.Equal(t, []string{"may_handle_sensitive_media_context"}, risk.Reasons)
}

func TestAssessToolRiskHighForClinicalActionsInClinicalMode(t *testing.T) {
	risk := AssessToolRisk(RiskContext{ToolMode: "medication", ResponseMode: "clinical"})

	assert.Equal(t, "high", risk.RiskLevel)
	assert.Equal(t, []string{"may_suggest_mutable_clinical_actions"}, risk.Reasons)
}

func TestAssessToolRiskHighForWebBackedSearch(t *testing.T) {
	risk := AssessToolRisk(RiskContext{ToolMode: "deep_search", ResponseMode: "general", UseWebSources: true})

	assert.Equal(t, "high", risk.RiskLevel)
	assert.Equal(t, []string{"external_network"}, risk.Categories)
}

func TestAssessToolRiskCriticalOnInjection(t *testing.T) {
	risk := AssessToolRisk(RiskContext{
		ToolMode:                "treatment",
		ResponseMode:            "clinical",
		PromptInjectionDetected: true,
	})

	assert.Equal(t, "critical", risk.RiskLevel)
	assert.Contains(t, risk.Reasons, "prompt_injection_signal_present")
}

func TestAssessToolRiskInjectionWithoutRiskyCategoryStaysLow(t *testing.T) {
	risk := AssessToolRisk(RiskContext{
		ToolMode:                "chat",
		ResponseMode:            "clinical",
		PromptInjectionDetected: true,
	})

	assert.Equal(t, "low", risk.RiskLevel)
	assert.NotContains(t, risk.Reasons, "prompt_injection_signal_present")
}

func TestAssessToolRiskNormalizesMode(t *testing.T) {
	risk := AssessToolRisk(RiskContext{ToolMode: "  DEEP_SEARCH  ", ResponseMode: "general"})

	assert.Equal(t, "deep_search", risk.ToolMode)
	assert.Equal(t, "medium", risk.RiskLevel)
}
