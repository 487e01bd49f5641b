package agent

import (
	"fmt"
	"strings"
)

// SecurityFinding is a single actionable audit finding for a chat turn.
type SecurityFinding struct {
	Code        string `json:"code"`
	Severity    string `json:"severity"`
	Message     string `json:"message"`
	Remediation string `json:"remediation"`
}

// FindingsInput carries the turn state the auditor inspects.
type FindingsInput struct {
	PromptInjectionSignals   []string
	Risk                     RiskAssessment
	ToolPolicyAllowed        bool
	ToolPolicyReason         string
	ResponseMode             string
	InternalSourcesCount     int
	ValidatedSourcesRequired bool
	UseWebSources            bool
}

// AuditChatSecurity produces the security findings for one chat turn. There
// is always at least one finding: when nothing is relevant a baseline-ok
// entry records that the turn was checked.
func AuditChatSecurity(in FindingsInput) []SecurityFinding {
	var findings []SecurityFinding

	if len(in.PromptInjectionSignals) > 0 {
		severity := "warn"
		if in.Risk.IsDangerous {
			severity = "critical"
		}
		shown := in.PromptInjectionSignals
		if len(shown) > 4 {
			shown = shown[:4]
		}
		findings = append(findings, SecurityFinding{
			Code:     "prompt_injection_signal",
			Severity: severity,
			Message: "Prompt injection signals detected in user content: " +
				strings.Join(shown, ", "),
			Remediation: "Keep strict delimiters, avoid auto-escalation, and require " +
				"human validation before executing risky actions.",
		})
	}

	if in.Risk.IsDangerous && !in.ToolPolicyAllowed {
		reason := in.ToolPolicyReason
		if reason == "" {
			reason = "policy"
		}
		findings = append(findings, SecurityFinding{
			Code:     "dangerous_tool_blocked",
			Severity: "info",
			Message: fmt.Sprintf("Tool '%s' was blocked by policy (reason=%s).",
				in.Risk.ToolMode, reason),
			Remediation: "Use safer mode ('chat' or 'cases') or adjust policy " +
				"with explicit approval.",
		})
	} else if in.Risk.IsDangerous && in.ToolPolicyAllowed {
		severity := "info"
		if in.Risk.RiskLevel == "high" {
			severity = "warn"
		}
		findings = append(findings, SecurityFinding{
			Code:     "dangerous_tool_allowed",
			Severity: severity,
			Message:  fmt.Sprintf("Risky tool '%s' allowed under current context.", in.Risk.ToolMode),
			Remediation: "Review output with clinician-in-the-loop and verify " +
				"protocol before operational use.",
		})
	}

	if in.ResponseMode == "clinical" && in.ValidatedSourcesRequired && in.InternalSourcesCount == 0 {
		findings = append(findings, SecurityFinding{
			Code:     "missing_validated_internal_sources",
			Severity: "critical",
			Message:  "Clinical response has no validated internal source evidence.",
			Remediation: "Escalate for professional review and curate validated " +
				"internal knowledge.",
		})
	}

	if in.UseWebSources {
		findings = append(findings, SecurityFinding{
			Code:     "web_sources_used",
			Severity: "info",
			Message:  "Web sources were enabled for this turn.",
			Remediation: "Confirm domains are whitelisted and cross-check " +
				"with internal protocols.",
		})
	}

	if len(findings) == 0 {
		findings = append(findings, SecurityFinding{
			Code:        "security_baseline_ok",
			Severity:    "info",
			Message:     "No relevant chat security findings in this turn.",
			Remediation: "Continue monitoring traces and periodic policy audit.",
		})
	}

	return findings
}
