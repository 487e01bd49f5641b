package protocol

import (
	"fmt"
	"strconv"
	"strings"
)

// Clinical epidemiology operational engine: frequency measures, NNT,
// counterfactual causal inference with Bradford Hill support and economic
// evaluation consistency.

// EpidemiologyInput is the clinical-operational input for applied
// epidemiologic analytics.
type EpidemiologyInput struct {
	RequestedIndividualRiskEstimation bool `json:"requested_individual_risk_estimation"`
	RequestedPopulationStatusSnapshot bool `json:"requested_population_status_snapshot"`

	NewCasesCount         *int     `json:"new_cases_count,omitempty"`
	PopulationAtRiskCount *int     `json:"population_at_risk_count,omitempty"`
	PersonTimeAtRisk      *float64 `json:"person_time_at_risk,omitempty"`
	ExistingCasesCount    *int     `json:"existing_cases_count,omitempty"`
	PopulationTotalCount  *int     `json:"population_total_count,omitempty"`

	ExposedRisk   *float64 `json:"exposed_risk,omitempty"`
	UnexposedRisk *float64 `json:"unexposed_risk,omitempty"`

	ControlEventRisk      *float64 `json:"control_event_risk,omitempty"`
	InterventionEventRisk *float64 `json:"intervention_event_risk,omitempty"`

	HillStrengthOfAssociation bool `json:"hill_strength_of_association"`
	HillConsistency           bool `json:"hill_consistency"`
	HillSpecificity           bool `json:"hill_specificity"`
	HillTemporality           bool `json:"hill_temporality"`
	HillBiologicalGradient    bool `json:"hill_biological_gradient"`
	HillPlausibility          bool `json:"hill_plausibility"`
	HillCoherence             bool `json:"hill_coherence"`
	HillExperiment            bool `json:"hill_experiment"`
	HillAnalogy               bool `json:"hill_analogy"`

	EconomicStudyType         *string `json:"economic_study_type,omitempty"`
	QALYOrUtilityOutcomesUsed bool    `json:"qaly_or_utility_outcomes_used"`

	Notes *string `json:"notes,omitempty"`
}

// EpidemiologyRecommendation is the structured epidemiologic support output.
type EpidemiologyRecommendation struct {
	SeverityLevel             Severity `json:"severity_level"`
	CriticalAlerts            []string `json:"critical_alerts"`
	FrequencyActions          []string `json:"frequency_actions"`
	NNTActions                []string `json:"nnt_actions"`
	CausalInferenceActions    []string `json:"causal_inference_actions"`
	EconomicEvaluationActions []string `json:"economic_evaluation_actions"`
	SafetyBlocks              []string `json:"safety_blocks"`
	InterpretabilityTrace     []string `json:"interpretability_trace"`
	IncidenceAccumulated      *float64 `json:"incidence_accumulated"`
	IncidenceDensity          *float64 `json:"incidence_density"`
	Prevalence                *float64 `json:"prevalence"`
	RiskRelative              *float64 `json:"risk_relative"`
	AbsoluteRiskReduction     *float64 `json:"absolute_risk_reduction"`
	NumberNeededToTreat       *float64 `json:"number_needed_to_treat"`
	HumanValidationRequired   bool     `json:"human_validation_required"`
	NonDiagnosticWarning      string   `json:"non_diagnostic_warning"`
}

func (in *EpidemiologyInput) Validate() error {
	if in.NewCasesCount != nil && *in.NewCasesCount < 0 {
		return invalidf("new_cases_count", "must be at least 0")
	}
	if in.PopulationAtRiskCount != nil && *in.PopulationAtRiskCount < 1 {
		return invalidf("population_at_risk_count", "must be at least 1")
	}
	if in.PersonTimeAtRisk != nil && *in.PersonTimeAtRisk < 0 {
		return invalidf("person_time_at_risk", "must be at least 0")
	}
	if in.ExistingCasesCount != nil && *in.ExistingCasesCount < 0 {
		return invalidf("existing_cases_count", "must be at least 0")
	}
	if in.PopulationTotalCount != nil && *in.PopulationTotalCount < 1 {
		return invalidf("population_total_count", "must be at least 1")
	}
	if err := inRangeF("exposed_risk", in.ExposedRisk, 0, 1); err != nil {
		return err
	}
	if err := inRangeF("unexposed_risk", in.UnexposedRisk, 0, 1); err != nil {
		return err
	}
	if err := inRangeF("control_event_risk", in.ControlEventRisk, 0, 1); err != nil {
		return err
	}
	if err := inRangeF("intervention_event_risk", in.InterventionEventRisk, 0, 1); err != nil {
		return err
	}
	if in.EconomicStudyType != nil && len(*in.EconomicStudyType) > 40 {
		return invalidf("economic_study_type", "must be at most 40 characters")
	}
	return validateNotes("notes", in.Notes)
}

func epiSafeDivision(numerator, denominator float64) *float64 {
	if denominator <= 0 {
		return nil
	}
	v := numerator / denominator
	return &v
}

// epiFormatPercent renders a percentage rounded to two decimals keeping at
// least one decimal place.
func epiFormatPercent(v float64) string {
	s := strconv.FormatFloat(round2(v), 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// epiFrequencyMetrics computes accumulated incidence, incidence density and
// prevalence.
func epiFrequencyMetrics(in EpidemiologyInput) (incidenceAccumulated, incidenceDensity, prevalence *float64, actions, safetyBlocks, trace []string) {
	if in.NewCasesCount != nil && in.PopulationAtRiskCount != nil {
		incidenceAccumulated = epiSafeDivision(float64(*in.NewCasesCount), float64(*in.PopulationAtRiskCount))
		if incidenceAccumulated != nil {
			trace = append(trace, "Incidencia acumulada calculada como casos nuevos / poblacion en riesgo.")
		}
	}

	if in.NewCasesCount != nil && in.PersonTimeAtRisk != nil {
		incidenceDensity = epiSafeDivision(float64(*in.NewCasesCount), *in.PersonTimeAtRisk)
		if incidenceDensity != nil {
			trace = append(trace, "Densidad de incidencia calculada como casos nuevos / persona-tiempo.")
		} else {
			safetyBlocks = append(safetyBlocks, "No se puede calcular densidad de incidencia sin persona-tiempo > 0.")
		}
	}

	if in.ExistingCasesCount != nil && in.PopulationTotalCount != nil {
		prevalence = epiSafeDivision(float64(*in.ExistingCasesCount), float64(*in.PopulationTotalCount))
		if prevalence != nil {
			trace = append(trace, "Prevalencia calculada como casos existentes / poblacion total.")
		}
	}

	if in.RequestedIndividualRiskEstimation {
		if incidenceAccumulated != nil {
			actions = append(actions, "Usar incidencia acumulada para estimar probabilidad individual de enfermar en el periodo.")
		} else {
			safetyBlocks = append(safetyBlocks, "Falta numerador/denominador valido para incidencia acumulada en estimacion individual.")
		}
	}

	if in.RequestedPopulationStatusSnapshot {
		if prevalence != nil {
			actions = append(actions, "Usar prevalencia para describir situacion actual de enfermedad en la poblacion.")
		} else {
			safetyBlocks = append(safetyBlocks, "Falta numerador/denominador valido para prevalencia en foto poblacional.")
		}
	}

	if incidenceDensity != nil {
		actions = append(actions, "Interpretar densidad de incidencia como velocidad colectiva de transicion sano->enfermo por unidad de tiempo.")
	}

	return incidenceAccumulated, incidenceDensity, prevalence, actions, safetyBlocks, trace
}

// epiNNTMetrics derives absolute risk reduction and number needed to treat.
func epiNNTMetrics(in EpidemiologyInput) (absoluteRiskReduction, numberNeededToTreat *float64, actions, safetyBlocks, trace []string) {
	if in.ControlEventRisk != nil && in.InterventionEventRisk != nil {
		rar := *in.ControlEventRisk - *in.InterventionEventRisk
		if rar < 0 {
			rar = -rar
		}
		absoluteRiskReduction = &rar
		trace = append(trace, "RAR calculada como diferencia absoluta de riesgo entre control e intervencion.")
		if rar > 0 {
			nnt := 1 / rar
			numberNeededToTreat = &nnt
			actions = append(actions, "Calcular NNT como inverso de la RAR usando riesgos en tanto por uno.")
			trace = append(trace, "NNT calculado como 1 / RAR.")
		} else {
			safetyBlocks = append(safetyBlocks, "RAR igual a 0: NNT no interpretable (sin diferencia absoluta de riesgo).")
		}
	} else {
		actions = append(actions, "Para NNT se requieren riesgo de control y riesgo de intervencion en formato 0..1.")
	}

	return absoluteRiskReduction, numberNeededToTreat, actions, safetyBlocks, trace
}

// epiCausalInferenceMetrics computes relative risk with counterfactual
// interpretation and Bradford Hill criteria support.
func epiCausalInferenceMetrics(in EpidemiologyInput) (riskRelative *float64, actions, safetyBlocks, criticalAlerts, trace []string) {
	if in.ExposedRisk != nil && in.UnexposedRisk != nil {
		if *in.UnexposedRisk == 0 {
			safetyBlocks = append(safetyBlocks, "RR no calculable: riesgo en no expuestos igual a 0.")
			if *in.ExposedRisk > 0 {
				criticalAlerts = append(criticalAlerts, "RR potencialmente infinito: revisar calidad de datos y estratificacion.")
			}
		} else {
			rr := *in.ExposedRisk / *in.UnexposedRisk
			riskRelative = &rr
			trace = append(trace, "RR calculado como riesgo expuestos / riesgo no expuestos.")
			actions = append(actions, "Interpretar RR como medida de asociacion antes de afirmar causalidad.")
			switch {
			case rr < 1:
				actions = append(actions, fmt.Sprintf("En inferencia causal contrafactual, la incidencia en no expuestos se reduciria un %s%% si toda la poblacion utilizara la intervencion.", epiFormatPercent((1-rr)*100)))
			case rr > 1:
				actions = append(actions, fmt.Sprintf("En inferencia causal contrafactual, la incidencia en no expuestos aumentaria un %s%% si toda la poblacion estuviera expuesta.", epiFormatPercent((rr-1)*100)))
			default:
				actions = append(actions, "RR cercano a 1: no se observa diferencia de riesgo atribuible clara.")
			}
		}
	}

	hillCriteria := []struct {
		name    string
		enabled bool
	}{
		{"fuerza_asociacion", in.HillStrengthOfAssociation},
		{"consistencia", in.HillConsistency},
		{"especificidad", in.HillSpecificity},
		{"temporalidad", in.HillTemporality},
		{"gradiente_biologico", in.HillBiologicalGradient},
		{"plausibilidad", in.HillPlausibility},
		{"coherencia", in.HillCoherence},
		{"experimento", in.HillExperiment},
		{"analogia", in.HillAnalogy},
	}
	var positiveCriteria []string
	for _, criterion := range hillCriteria {
		if criterion.enabled {
			positiveCriteria = append(positiveCriteria, criterion.name)
		}
	}
	if len(positiveCriteria) > 0 {
		actions = append(actions, "Aplicar Bradford Hill para soporte causal: "+strings.Join(positiveCriteria, ", ")+".")
	}
	if in.HillBiologicalGradient {
		actions = append(actions, "El gradiente biologico (dosis-respuesta) respalda consistencia causal.")
	}
	if !in.HillTemporality {
		safetyBlocks = append(safetyBlocks, "Sin temporalidad documentada no se puede sostener inferencia causal robusta.")
	}

	trace = append(trace, fmt.Sprintf("Criterios Bradford Hill positivos: %d de 9.", len(positiveCriteria)))
	return riskRelative, actions, safetyBlocks, criticalAlerts, trace
}

// epiEconomicEvaluationMetrics checks cost-utility classification
// consistency against declared QALY outcomes.
func epiEconomicEvaluationMetrics(in EpidemiologyInput) (actions, safetyBlocks, trace []string) {
	studyTypeRaw := ""
	if in.EconomicStudyType != nil {
		studyTypeRaw = *in.EconomicStudyType
	}
	studyType := strings.ToLower(strings.TrimSpace(studyTypeRaw))
	isCostUtility := strings.Contains(studyType, "coste-utilidad") ||
		strings.Contains(studyType, "coste utilidad") ||
		strings.Contains(studyType, "cost-utility")

	switch {
	case isCostUtility:
		actions = append(actions, "Clasificar como analisis coste-utilidad cuando el resultado se exprese en AVAC/QALY o utilidades.")
		if !in.QALYOrUtilityOutcomesUsed {
			safetyBlocks = append(safetyBlocks, "Inconsistencia economica: coste-utilidad sin AVAC/QALY/utilidades declaradas.")
		}
		trace = append(trace, "Estudio economico identificado como coste-utilidad.")
	case studyType != "":
		actions = append(actions, fmt.Sprintf("Clasificar estudio como '%s' y no interpretar resultados como utilidades.", studyTypeRaw))
		if in.QALYOrUtilityOutcomesUsed {
			safetyBlocks = append(safetyBlocks, "AVAC/QALY informados en estudio no clasificado como coste-utilidad.")
		}
		trace = append(trace, "Estudio economico no clasificado como coste-utilidad.")
	default:
		actions = append(actions, "Definir tipo de evaluacion economica (coste-utilidad/coste-efectividad/coste-beneficio).")
	}

	return actions, safetyBlocks, trace
}

func epiSeverity(criticalAlerts, safetyBlocks []string, hasActions bool) Severity {
	if len(criticalAlerts) > 0 {
		return SeverityCritical
	}
	if len(safetyBlocks) > 0 {
		return SeverityHigh
	}
	if hasActions {
		return SeverityMedium
	}
	return SeverityLow
}

// EvaluateEpidemiology builds the epidemiology support recommendation.
func EvaluateEpidemiology(in EpidemiologyInput) EpidemiologyRecommendation {
	incidenceAccumulated, incidenceDensity, prevalence, frequencyActions, frequencySafety, frequencyTrace := epiFrequencyMetrics(in)
	absoluteRiskReduction, numberNeededToTreat, nntActions, nntSafety, nntTrace := epiNNTMetrics(in)
	riskRelative, causalActions, causalSafety, causalCritical, causalTrace := epiCausalInferenceMetrics(in)
	economicActions, economicSafety, economicTrace := epiEconomicEvaluationMetrics(in)

	safetyBlocks := append(append(append(append([]string{}, frequencySafety...), nntSafety...), causalSafety...), economicSafety...)
	hasActions := len(frequencyActions) > 0 || len(nntActions) > 0 ||
		len(causalActions) > 0 || len(economicActions) > 0

	return EpidemiologyRecommendation{
		SeverityLevel:             epiSeverity(causalCritical, safetyBlocks, hasActions),
		CriticalAlerts:            causalCritical,
		FrequencyActions:          frequencyActions,
		NNTActions:                nntActions,
		CausalInferenceActions:    causalActions,
		EconomicEvaluationActions: economicActions,
		SafetyBlocks:              safetyBlocks,
		InterpretabilityTrace:     append(append(append(append([]string{}, frequencyTrace...), nntTrace...), causalTrace...), economicTrace...),
		IncidenceAccumulated:      incidenceAccumulated,
		IncidenceDensity:          incidenceDensity,
		Prevalence:                prevalence,
		RiskRelative:              riskRelative,
		AbsoluteRiskReduction:     absoluteRiskReduction,
		NumberNeededToTreat:       numberNeededToTreat,
		HumanValidationRequired:   true,
		NonDiagnosticWarning:      "Soporte operativo no diagnostico. Requiere validacion por epidemiologia clinica/equipo asistencial.",
	}
}

func init() {
	register("epidemiology", typed((*EpidemiologyInput).Validate, EvaluateEpidemiology))
}
