package protocol

import (
	"encoding/json"
	"errors"
	"reflect"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDs_SortedAndComplete(t *testing.T) {
	ids := IDs()
	assert.Len(t, ids, 34)
	assert.True(t, sort.StringsAreSorted(ids))
	assert.Contains(t, ids, "triage")
	assert.Contains(t, ids, "sepsis")
	assert.Contains(t, ids, "resuscitation")
}

func TestEvaluate_UnknownProtocol(t *testing.T) {
	_, err := Evaluate("telepathy", json.RawMessage(`{}`))
	require.Error(t, err)

	var invalid *ValidationError
	assert.False(t, errors.As(err, &invalid), "unknown protocol is not an input error")
}

func TestEvaluate_MalformedJSON(t *testing.T) {
	_, err := Evaluate("sepsis", json.RawMessage(`{"suspected_infection":`))
	var invalid *ValidationError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "payload", invalid.Field)
}

func TestEvaluate_RangeValidation(t *testing.T) {
	_, err := Evaluate("sepsis", json.RawMessage(`{"lactate_mmol_l": -1}`))
	var invalid *ValidationError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "lactate_mmol_l", invalid.Field)
}

func TestComputeSeverity_Lattice(t *testing.T) {
	assert.Equal(t, SeverityCritical, ComputeSeverity([]string{"x"}, []string{"y"}, []string{"z"}))
	assert.Equal(t, SeverityHigh, ComputeSeverity(nil, []string{"y"}, []string{"z"}))
	assert.Equal(t, SeverityMedium, ComputeSeverity(nil, nil, []string{"z"}))
	assert.Equal(t, SeverityLow, ComputeSeverity(nil, nil, nil))
}

func TestSeverity_MaxAndRank(t *testing.T) {
	assert.Equal(t, SeverityCritical, SeverityHigh.Max(SeverityCritical))
	assert.Equal(t, SeverityHigh, SeverityHigh.Max(SeverityLow))
	assert.Equal(t, 0, Severity("bogus").Rank())
}

func TestEvaluateSepsis_HighRiskBundle(t *testing.T) {
	rr, sbp, bolus, since := 25, 95, 10, 75
	lactate := 3.4
	out := EvaluateSepsis(SepsisInput{
		SuspectedInfection:        true,
		RespiratoryRateRPM:        &rr,
		SystolicBP:                &sbp,
		AlteredMentalStatus:       true,
		LactateMmolL:              &lactate,
		BloodCulturesCollected:    false,
		AntibioticsStarted:        false,
		FluidBolusMlPerKg:         &bolus,
		TimeSinceDetectionMinutes: &since,
	})

	assert.Equal(t, 3, out.QSOFAScore)
	assert.True(t, out.HighSepsisRisk)
	assert.False(t, out.SepticShockSuspected)
	assert.Contains(t, out.OneHourBundleActions, "Extraer hemocultivos antes de antibiotico si no retrasa inicio.")
	assert.Contains(t, out.OneHourBundleActions, "Iniciar antibioterapia de amplio espectro en <1 hora.")
	assert.Contains(t, out.OneHourBundleActions, "Completar fluidoterapia inicial hasta 30 ml/kg (cristaloides).")
	assert.Contains(t, out.EscalationActions, "Revisar demora del bundle de sepsis y corregir cuellos de botella.")
	assert.Contains(t, []Severity{SeverityHigh, SeverityCritical}, out.SeverityLevel)
	assert.True(t, out.HumanValidationRequired)
	assert.Equal(t, Disclaimer, out.NonDiagnosticWarning)
}

func TestEvaluateScasest_HighRiskEscalation(t *testing.T) {
	grace := 145
	out := EvaluateScasest(ScasestInput{
		ChestPainTypical:       true,
		ECGSTDepression:        true,
		TroponinPositive:       true,
		HemodynamicInstability: true,
		GraceScore:             &grace,
	})

	assert.True(t, out.ScasestSuspected)
	assert.True(t, out.HighRiskScasest)
	assert.Contains(t, out.EscalationActions, "Escalar a circuito coronario urgente y avisar cardiologia.")
	assert.Contains(t, out.Alerts, "SCASEST de alto riesgo: no demorar escalado invasivo.")
	assert.Equal(t, SeverityCritical, out.SeverityLevel)
	assert.True(t, out.HumanValidationRequired)
}

func TestEvaluateResuscitation_VFArrest(t *testing.T) {
	depth, etco2 := 5.4, 17.0
	rate, interruption := 108, 9
	out := EvaluateResuscitation(ResuscitationInput{
		ContextType:           "cardiac_arrest",
		Rhythm:                "vf",
		HasPulse:              false,
		CompressionDepthCm:    &depth,
		CompressionRatePerMin: &rate,
		InterruptionSeconds:   &interruption,
		EtCO2mmHg:             &etco2,
	})

	assert.Equal(t, "shockable_arrest", out.RhythmClassification)
	assert.True(t, out.ShockRecommended)
	require.NotNil(t, out.CPRQualityOK)
	assert.True(t, *out.CPRQualityOK)
	assert.Equal(t, SeverityCritical, out.SeverityLevel)
	assert.Contains(t, out.PrimaryActions, "Iniciar RCP de alta calidad con interrupciones minimas.")
	assert.Contains(t, out.PrimaryActions, "Aplicar desfibrilacion inmediata segun ritmo y energia recomendada.")
}

func TestEvaluateCardioRisk_VeryHigh(t *testing.T) {
	apob := 142.0
	out := EvaluateCardioRisk(CardioRiskInput{
		AgeYears:             74,
		Sex:                  "female",
		Smoker:               true,
		SystolicBP:           172,
		NonHDLmgDl:           235,
		ApoBmgDl:             &apob,
		Diabetes:             true,
		ChronicKidneyDisease: true,
	})

	assert.Equal(t, "very_high", out.RiskLevel)
	assert.Equal(t, 55, out.LDLTargetMgDl)
	assert.Equal(t, 85, out.NonHDLTargetMgDl)
	assert.True(t, out.NonHDLTargetRequired)
	assert.True(t, out.PharmacologicStrategySuggested)
	assert.True(t, out.IntensiveLifestyleRequired)
}

func TestEvaluateTriage_BugKeywords(t *testing.T) {
	out := EvaluateTriage(TriageInput{Title: "production crash on save"})
	assert.Equal(t, "bug", out.Category)
	assert.Equal(t, "high", out.Priority)
	assert.Equal(t, "rules", out.Source)
}

func TestEvaluateTriage_TitleLength(t *testing.T) {
	in := TriageInput{Title: "no"}
	err := in.Validate()
	var invalid *ValidationError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "title", invalid.Field)
}

func TestEvaluate_Deterministic(t *testing.T) {
	payload := json.RawMessage(`{"suspected_infection":true,"altered_mental_status":true,"systolic_bp":90}`)

	first, err := Evaluate("sepsis", payload)
	require.NoError(t, err)
	second, err := Evaluate("sepsis", payload)
	require.NoError(t, err)

	assert.True(t, reflect.DeepEqual(first, second))
}

func TestEvaluate_EmptyPayloadIsTotal(t *testing.T) {
	// Protocols without required fields must evaluate an empty payload
	// without panicking; contradictory inputs are surfaced as alerts.
	for _, id := range []string{"sepsis", "scasest"} {
		_, err := Evaluate(id, nil)
		assert.NoError(t, err, id)
	}
}

func TestEvaluate_RequiredEnums(t *testing.T) {
	// Protocols with enum inputs reject an empty payload instead of
	// guessing a context.
	for _, id := range []string{"resuscitation", "cardio_risk"} {
		_, err := Evaluate(id, json.RawMessage(`{}`))
		var invalid *ValidationError
		assert.ErrorAs(t, err, &invalid, id)
	}
}
