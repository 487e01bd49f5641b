package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findingCodes(findings []SecurityFinding) []string {
	codes := make([]string, 0, len(findings))
	for _, finding := range findings {
		codes = append(codes, finding.Code)
	}
	return codes
}

func TestAuditChatSecurityBaselineOK(t *testing.T) {
	findings := AuditChatSecurity(FindingsInput{
		Risk:              AssessToolRisk(RiskContext{ToolMode: "chat"}),
		ToolPolicyAllowed: true,
		ResponseMode:      "general",
	})

	require.Len(t, findings, 1)
	assert.Equal(t, "security_baseline_ok", findings[0].Code)
	assert.Equal(t, "info", findings[0].Severity)
}

func TestAuditChatSecurityInjectionCriticalWithDangerousTool(t *testing.T) {
	risk := AssessToolRisk(RiskContext{ToolMode: "medication", ResponseMode: "clinical", PromptInjectionDetected: true})
	findings := AuditChatSecurity(FindingsInput{
		PromptInjectionSignals: []string{"override_instructions", "system_prompt_probe", "role_escalation", "role_tag_markup", "code_fence_payload"},
		Risk:                   risk,
		ToolPolicyAllowed:      false,
		ToolPolicyReason:       ReasonDeniedByPolicy,
		ResponseMode:           "clinical",
		InternalSourcesCount:   2,
	})

	require.NotEmpty(t, findings)
	assert.Equal(t, "prompt_injection_signal", findings[0].Code)
	assert.Equal(t, "critical", findings[0].Severity)
	// Message lists at most the first four signals.
	assert.Contains(t, findings[0].Message, "override_instructions, system_prompt_probe, role_escalation, role_tag_markup")
	assert.NotContains(t, findings[0].Message, "code_fence_payload")
	assert.Contains(t, findingCodes(findings), "dangerous_tool_blocked")
}

func TestAuditChatSecurityInjectionWarnWithSafeTool(t *testing.T) {
	findings := AuditChatSecurity(FindingsInput{
		PromptInjectionSignals: []string{"system_prompt_probe"},
		Risk:                   AssessToolRisk(RiskContext{ToolMode: "chat"}),
		ToolPolicyAllowed:      true,
	})

	assert.Equal(t, "warn", findings[0].Severity)
}

func TestAuditChatSecurityDangerousToolAllowed(t *testing.T) {
	risk := AssessToolRisk(RiskContext{ToolMode: "deep_search", UseWebSources: true})
	findings := AuditChatSecurity(FindingsInput{
		Risk:              risk,
		ToolPolicyAllowed: true,
		UseWebSources:     true,
	})

	codes := findingCodes(findings)
	assert.Contains(t, codes, "dangerous_tool_allowed")
	assert.Contains(t, codes, "web_sources_used")
	for _, finding := range findings {
		if finding.Code == "dangerous_tool_allowed" {
			assert.Equal(t, "warn", finding.Severity)
		}
	}
}

func TestAuditChatSecurityDangerousToolAllowedMediumIsInfo(t *testing.T) {
	risk := AssessToolRisk(RiskContext{ToolMode: "images"})
	findings := AuditChatSecurity(FindingsInput{
		Risk:              risk,
		ToolPolicyAllowed: true,
	})

	require.NotEmpty(t, findings)
	assert.Equal(t, "dangerous_tool_allowed", findings[0].Code)
	assert.Equal(t, "info", findings[0].Severity)
}

func TestAuditChatSecurityMissingValidatedSources(t *testing.T) {
	findings := AuditChatSecurity(FindingsInput{
		Risk:                     AssessToolRisk(RiskContext{ToolMode: "chat"}),
		ToolPolicyAllowed:        true,
		ResponseMode:             "clinical",
		InternalSourcesCount:     0,
		ValidatedSourcesRequired: true,
	})

	require.NotEmpty(t, findings)
	assert.Equal(t, "missing_validated_internal_sources", findings[0].Code)
	assert.Equal(t, "critical", findings[0].Severity)
}

func TestAuditChatSecurityBlockedToolReasonFallback(t *testing.T) {
	risk := AssessToolRisk(RiskContext{ToolMode: "treatment"})
	findings := AuditChatSecurity(FindingsInput{
		Risk:              risk,
		ToolPolicyAllowed: false,
	})

	require.NotEmpty(t, findings)
	assert.Equal(t, "dangerous_tool_blocked", findings[0].Code)
	assert.Contains(t, findings[0].Message, "(reason=policy)")
}
