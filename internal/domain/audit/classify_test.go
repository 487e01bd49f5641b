package audit

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"

	"github.com/edops/edops/internal/domain/agentrun"
)

func runWithOutput(t *testing.T, outputKey string, section map[string]any) *agentrun.AgentRun {
	t.Helper()
	output, err := json.Marshal(map[string]any{outputKey: section})
	if err != nil {
		t.Fatalf("marshal output: %v", err)
	}
	return &agentrun.AgentRun{ID: uuid.New(), RunOutput: output}
}

func TestInferAITriageLevel_UsesExplicitLevel(t *testing.T) {
	run := runWithOutput(t, "triage", map[string]any{"triage_level": 2, "priority": "low"})
	if got := InferAITriageLevel(run); got != 2 {
		t.Fatalf("expected 2, got %d", got)
	}
}

func TestInferAITriageLevel_FallsBackToPriority(t *testing.T) {
	cases := map[string]int{"critical": 1, "high": 2, "medium": 3, "low": 4, "unheard_of": 3}
	for priority, want := range cases {
		run := runWithOutput(t, "triage", map[string]any{"priority": priority})
		if got := InferAITriageLevel(run); got != want {
			t.Fatalf("priority %q: expected %d, got %d", priority, want, got)
		}
	}
}

func TestInferAITriageLevel_IgnoresOutOfRangeLevel(t *testing.T) {
	run := runWithOutput(t, "triage", map[string]any{"triage_level": 9, "priority": "critical"})
	if got := InferAITriageLevel(run); got != 1 {
		t.Fatalf("expected fallback to priority 1, got %d", got)
	}
}

func TestInferAITriageLevel_EmptyOutput(t *testing.T) {
	run := &agentrun.AgentRun{ID: uuid.New()}
	if got := InferAITriageLevel(run); got != 3 {
		t.Fatalf("expected default 3, got %d", got)
	}
}

func TestClassifyTriageDeviation(t *testing.T) {
	if got := ClassifyTriageDeviation(3, 3); got != ClassMatch {
		t.Fatalf("expected match, got %q", got)
	}
	// AI said level 4 (less urgent) while the human validated level 2.
	if got := ClassifyTriageDeviation(4, 2); got != ClassUnderTriage {
		t.Fatalf("expected under_triage, got %q", got)
	}
	if got := ClassifyTriageDeviation(1, 3); got != ClassOverTriage {
		t.Fatalf("expected over_triage, got %q", got)
	}
}

func TestExtractScreeningFlags(t *testing.T) {
	run := runWithOutput(t, "advanced_screening", map[string]any{
		"geriatric_risk_level": "HIGH",
		"screening_actions": []string{
			"Ofrecer cribado VIH oportunista",
			"Activar ruta sepsis si empeora",
		},
		"persistent_covid_suspected": true,
	})
	flags := ExtractScreeningFlags(run)
	if flags.RiskLevel != "high" {
		t.Fatalf("expected high, got %q", flags.RiskLevel)
	}
	if !flags.HIVScreeningSuggested || !flags.SepsisRouteSuggested {
		t.Fatalf("expected hiv and sepsis flags set: %+v", flags)
	}
	if !flags.PersistentCovidSuspected || flags.LongActingCandidate {
		t.Fatalf("unexpected boolean flags: %+v", flags)
	}
}

func TestExtractScreeningFlags_Defaults(t *testing.T) {
	run := runWithOutput(t, "advanced_screening", map[string]any{})
	flags := ExtractScreeningFlags(run)
	if flags.RiskLevel != "medium" {
		t.Fatalf("expected default medium, got %q", flags.RiskLevel)
	}
}

func TestClassifyScreeningDeviation(t *testing.T) {
	if got := ClassifyScreeningDeviation("low", "high"); got != ClassUnderScreening {
		t.Fatalf("expected under_screening, got %q", got)
	}
	if got := ClassifyScreeningDeviation("high", "medium"); got != ClassOverScreening {
		t.Fatalf("expected over_screening, got %q", got)
	}
	// Unknown levels rank as medium on both sides.
	if got := ClassifyScreeningDeviation("weird", "medium"); got != ClassMatch {
		t.Fatalf("expected match, got %q", got)
	}
}

func TestExtractMedicolegalFlags(t *testing.T) {
	run := runWithOutput(t, "medicolegal_ops", map[string]any{
		"legal_risk_level":    "high",
		"required_documents":  []string{"Consentimiento informado firmado"},
		"operational_actions": []string{"Preservar cadena de custodia de muestras"},
		"critical_legal_alerts": []string{
			"Posible muerte no natural, valorar parte judicial",
		},
	})
	flags := ExtractMedicolegalFlags(run)
	if flags.LegalRiskLevel != "high" {
		t.Fatalf("expected high, got %q", flags.LegalRiskLevel)
	}
	if !flags.ConsentRequired {
		t.Fatal("expected consent flag from documents text")
	}
	if !flags.JudicialNotificationRequired {
		t.Fatal("expected judicial flag from merged text")
	}
	if !flags.ChainOfCustodyRequired {
		t.Fatal("expected custody flag from merged text")
	}
}

func TestExtractMedicolegalFlags_ConsentOnlyScansDocuments(t *testing.T) {
	run := runWithOutput(t, "medicolegal_ops", map[string]any{
		"operational_actions": []string{"Recabar consentimiento informado verbal"},
	})
	flags := ExtractMedicolegalFlags(run)
	if flags.ConsentRequired {
		t.Fatal("consent signal must come from required documents only")
	}
}

func TestExtractScasestFlags(t *testing.T) {
	run := runWithOutput(t, "scasest_protocol", map[string]any{
		"high_risk_scasest":         true,
		"escalation_actions":        []string{"Escalar a UCI coronaria"},
		"initial_treatment_actions": []string{"AAS 300 mg y anticoagulacion"},
	})
	flags := ExtractScasestFlags(run)
	if !flags.HighRiskScasest || !flags.EscalationRequired || !flags.ImmediateAntiischemicStrategy {
		t.Fatalf("expected all flags set: %+v", flags)
	}
}

func TestClassifyScasestDeviation(t *testing.T) {
	if got := ClassifyScasestDeviation(false, true); got != ClassUnderScasestRisk {
		t.Fatalf("expected under_scasest_risk, got %q", got)
	}
	if got := ClassifyScasestDeviation(true, false); got != ClassOverScasestRisk {
		t.Fatalf("expected over_scasest_risk, got %q", got)
	}
	if got := ClassifyScasestDeviation(true, true); got != ClassMatch {
		t.Fatalf("expected match, got %q", got)
	}
}

func TestExtractCardioRiskFlags_Defaults(t *testing.T) {
	run := runWithOutput(t, "cardio_risk_support", map[string]any{})
	flags := ExtractCardioRiskFlags(run)
	if flags.RiskLevel != "moderate" {
		t.Fatalf("expected default moderate, got %q", flags.RiskLevel)
	}
	if flags.NonHDLTargetRequired || flags.PharmacologicStrategySuggested || flags.IntensiveLifestyleRequired {
		t.Fatalf("expected all booleans false: %+v", flags)
	}
}

func TestClassifyCardioRiskDeviation(t *testing.T) {
	if got := ClassifyCardioRiskDeviation("moderate", "very_high"); got != ClassUnderCardioRisk {
		t.Fatalf("expected under_cardio_risk, got %q", got)
	}
	if got := ClassifyCardioRiskDeviation("very_high", "low"); got != ClassOverCardioRisk {
		t.Fatalf("expected over_cardio_risk, got %q", got)
	}
}

func TestExtractResuscitationFlags(t *testing.T) {
	run := runWithOutput(t, "resuscitation_protocol", map[string]any{
		"severity_level":              "critical",
		"shock_recommended":           true,
		"reversible_causes_checklist": []string{"Hipoxia", "Hipovolemia"},
		"ventilation_actions":         []string{"Asegurar via aerea con capnografia"},
	})
	flags := ExtractResuscitationFlags(run)
	if flags.SeverityLevel != "critical" {
		t.Fatalf("expected critical, got %q", flags.SeverityLevel)
	}
	if !flags.ShockRecommended || !flags.ReversibleCausesRequired || !flags.AirwayPlanAdequate {
		t.Fatalf("expected all flags set: %+v", flags)
	}
}

func TestExtractResuscitationFlags_EmptyChecklist(t *testing.T) {
	run := runWithOutput(t, "resuscitation_protocol", map[string]any{
		"reversible_causes_checklist": []string{},
	})
	flags := ExtractResuscitationFlags(run)
	if flags.ReversibleCausesRequired {
		t.Fatal("empty checklist must not require reversible causes review")
	}
	if flags.SeverityLevel != "high" {
		t.Fatalf("expected default high, got %q", flags.SeverityLevel)
	}
}

func TestClassifyResuscitationDeviation(t *testing.T) {
	if got := ClassifyResuscitationDeviation("medium", "critical"); got != ClassUnderResuscitationRisk {
		t.Fatalf("expected under_resuscitation_risk, got %q", got)
	}
	if got := ClassifyResuscitationDeviation("critical", "medium"); got != ClassOverResuscitationRisk {
		t.Fatalf("expected over_resuscitation_risk, got %q", got)
	}
}
