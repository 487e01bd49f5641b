package protocol

import "strings"

// Oncology operational engine: checkpoint-inhibitor mechanisms and biomarker
// strategy, immune toxicity grading, cardio-oncology gating, febrile
// neutropenia and sarcoma response support.

// OncologyInput is the clinical-operational input for oncologic
// prioritization in the emergency department.
type OncologyInput struct {
	CheckpointInhibitorClass *string `json:"checkpoint_inhibitor_class,omitempty"`
	CheckpointAgentName      *string `json:"checkpoint_agent_name,omitempty"`

	MetastaticCRCUnresectable bool `json:"metastatic_crc_unresectable"`
	FirstLineSetting          bool `json:"first_line_setting"`
	DMMRPresent               bool `json:"dmmr_present"`
	MSIHighPresent            bool `json:"msi_high_present"`

	ImmuneHepatotoxicitySuspected        bool     `json:"immune_hepatotoxicity_suspected"`
	HepaticToxicityGrade                 *int     `json:"hepatic_toxicity_grade,omitempty"`
	TransaminasesMultipleULN             *float64 `json:"transaminases_multiple_uln,omitempty"`
	TotalBilirubinMgDl                   *float64 `json:"total_bilirubin_mg_dl,omitempty"`
	ImmunotherapySuspended               bool     `json:"immunotherapy_suspended"`
	PrednisoneMgKgDay                    *float64 `json:"prednisone_mg_kg_day,omitempty"`
	RefractoryToSteroids                 bool     `json:"refractory_to_steroids"`
	InfliximabConsidered                 bool     `json:"infliximab_considered"`
	RechallengeConsideredAfterResolution bool     `json:"rechallenge_considered_after_resolution"`

	TrastuzumabPlanned   bool     `json:"trastuzumab_planned"`
	AnthracyclinePlanned bool     `json:"anthracycline_planned"`
	BaselineLVEFAssessed bool     `json:"baseline_lvef_assessed"`
	BaselineLVEFPercent  *float64 `json:"baseline_lvef_percent,omitempty"`

	TemperatureCSingle           *float64 `json:"temperature_c_single,omitempty"`
	FeverOver38MoreThan1h        bool     `json:"fever_over_38_more_than_1h"`
	FeverThreeMeasurements24h    bool     `json:"fever_three_measurements_24h"`
	AbsoluteNeutrophilCountMm3   *int     `json:"absolute_neutrophil_count_mm3,omitempty"`
	ANCExpectedToDropBelow500    bool     `json:"anc_expected_to_drop_below_500"`
	PerioperativeOrAdjuvantContext bool   `json:"perioperative_or_adjuvant_context"`
	PalliativeLaterLineContext   bool     `json:"palliative_later_line_context"`

	BoneSarcomaPostNeoadjuvantSpecimenAvailable bool     `json:"bone_sarcoma_post_neoadjuvant_specimen_available"`
	NecrosisRatePercent                         *float64 `json:"necrosis_rate_percent,omitempty"`
	EwingSarcomaSuspected                       bool     `json:"ewing_sarcoma_suspected"`
	EWSR1RearrangementDocumented                bool     `json:"ewsr1_rearrangement_documented"`

	Notes *string `json:"notes,omitempty"`
}

// OncologyRecommendation is the structured oncology support output.
type OncologyRecommendation struct {
	SeverityLevel               Severity `json:"severity_level"`
	CriticalAlerts              []string `json:"critical_alerts"`
	ImmunotherapyMechanismNotes []string `json:"immunotherapy_mechanism_notes"`
	BiomarkerStrategy           []string `json:"biomarker_strategy"`
	ToxicityManagementActions   []string `json:"toxicity_management_actions"`
	CardioOncologyActions       []string `json:"cardio_oncology_actions"`
	FebrileNeutropeniaActions   []string `json:"febrile_neutropenia_actions"`
	SarcomaResponseActions      []string `json:"sarcoma_response_actions"`
	InterpretabilityTrace       []string `json:"interpretability_trace"`
	HumanValidationRequired     bool     `json:"human_validation_required"`
	NonDiagnosticWarning        string   `json:"non_diagnostic_warning"`
}

func (in *OncologyInput) Validate() error {
	if in.CheckpointInhibitorClass != nil && len(*in.CheckpointInhibitorClass) > 40 {
		return invalidf("checkpoint_inhibitor_class", "must be at most 40 characters")
	}
	if in.CheckpointAgentName != nil && len(*in.CheckpointAgentName) > 80 {
		return invalidf("checkpoint_agent_name", "must be at most 80 characters")
	}
	if err := inRangeI("hepatic_toxicity_grade", in.HepaticToxicityGrade, 1, 5); err != nil {
		return err
	}
	if err := inRangeF("transaminases_multiple_uln", in.TransaminasesMultipleULN, 0, 50); err != nil {
		return err
	}
	if err := inRangeF("total_bilirubin_mg_dl", in.TotalBilirubinMgDl, 0, 60); err != nil {
		return err
	}
	if err := inRangeF("prednisone_mg_kg_day", in.PrednisoneMgKgDay, 0, 10); err != nil {
		return err
	}
	if err := inRangeF("baseline_lvef_percent", in.BaselineLVEFPercent, 0, 100); err != nil {
		return err
	}
	if err := inRangeF("temperature_c_single", in.TemperatureCSingle, 30, 45); err != nil {
		return err
	}
	if err := inRangeI("absolute_neutrophil_count_mm3", in.AbsoluteNeutrophilCountMm3, 0, 50000); err != nil {
		return err
	}
	if err := inRangeF("necrosis_rate_percent", in.NecrosisRatePercent, 0, 100); err != nil {
		return err
	}
	return validateNotes("notes", in.Notes)
}

func oncoImmunotherapyBiomarkers(in OncologyInput) (mechanismNotes, biomarkerStrategy, trace []string) {
	checkpointClass := ""
	if in.CheckpointInhibitorClass != nil {
		checkpointClass = strings.ToLower(strings.TrimSpace(*in.CheckpointInhibitorClass))
	}
	checkpointAgent := ""
	if in.CheckpointAgentName != nil {
		checkpointAgent = strings.ToLower(strings.TrimSpace(*in.CheckpointAgentName))
	}

	if checkpointClass == "pd-1" || checkpointClass == "pd1" ||
		checkpointAgent == "nivolumab" || checkpointAgent == "pembrolizumab" {
		mechanismNotes = append(mechanismNotes, "Inhibidor PD-1: bloquea receptor PD-1 del linfocito T y restaura activacion inmune antitumoral.")
	}
	switch checkpointClass {
	case "pd-l1", "pdl1", "pd-l2", "pdl2":
		mechanismNotes = append(mechanismNotes, "Inhibidor PD-L1/L2: bloquea ligandos tumorales e impide senal inhibitoria sobre linfocitos T.")
	default:
		switch checkpointAgent {
		case "atezolizumab", "avelumab", "durvalumab":
			mechanismNotes = append(mechanismNotes, "Inhibidor PD-L1/L2: bloquea ligandos tumorales e impide senal inhibitoria sobre linfocitos T.")
		}
	}
	if checkpointClass == "ctla-4" || checkpointClass == "ctla4" || checkpointAgent == "ipilimumab" {
		mechanismNotes = append(mechanismNotes, "Inhibidor CTLA-4: refuerza activacion de linfocitos T a nivel de priming inmune.")
	}

	if in.MetastaticCRCUnresectable && in.FirstLineSetting && (in.DMMRPresent || in.MSIHighPresent) {
		biomarkerStrategy = append(biomarkerStrategy, "CCR metastasico irresecable con dMMR/MSI-high: priorizar inmunoterapia (pembrolizumab o nivolumab+ipilimumab) sobre quimioterapia inicial.")
		trace = append(trace, "Regla biomarcador dMMR/MSI-high de primera linea activada.")
	} else if in.MetastaticCRCUnresectable && in.FirstLineSetting {
		biomarkerStrategy = append(biomarkerStrategy, "Sin biomarcador dMMR/MSI-high documentado: no escalar a inmunoterapia de primera linea sin reevaluacion molecular.")
	}
	return mechanismNotes, biomarkerStrategy, trace
}

func oncoImmuneToxicityPathway(in OncologyInput) (criticalAlerts, management, trace []string) {
	grade3Hepatotoxicity := false
	if in.HepaticToxicityGrade != nil && *in.HepaticToxicityGrade >= 3 {
		grade3Hepatotoxicity = true
	}
	if in.TransaminasesMultipleULN != nil && *in.TransaminasesMultipleULN > 5 {
		grade3Hepatotoxicity = true
	}
	if in.TotalBilirubinMgDl != nil && *in.TotalBilirubinMgDl > 2.3 &&
		in.TransaminasesMultipleULN != nil && *in.TransaminasesMultipleULN > 3 {
		grade3Hepatotoxicity = true
	}

	if in.ImmuneHepatotoxicitySuspected {
		management = append(management, "Toxicidad inmunomediada sospechada: gradar segun NCI y monitorizar analitica seriada.")
	}

	if grade3Hepatotoxicity {
		criticalAlerts = append(criticalAlerts, "Hepatotoxicidad inmunomediada grado >=3: suspender inmunoterapia de forma temporal.")
		management = append(management, "Iniciar prednisona/equivalente 1-2 mg/kg/dia como primera linea.")
		if !in.ImmunotherapySuspended {
			criticalAlerts = append(criticalAlerts, "Toxicidad hepatica grave sin suspension documentada del farmaco.")
		}
		if in.PrednisoneMgKgDay != nil && *in.PrednisoneMgKgDay < 1 {
			criticalAlerts = append(criticalAlerts, "Dosis corticoide por debajo de rango recomendado en toxicidad grave.")
		}
		trace = append(trace, "Regla de hepatotoxicidad grado 3 por transaminasas/bilirrubina activada.")
	}

	if in.RefractoryToSteroids {
		management = append(management, "Toxicidad refractaria a corticoides: escalar inmunosupresion de segunda linea.")
		if in.InfliximabConsidered {
			management = append(management, "Infliximab considerado como segunda linea en refractarios.")
		} else {
			criticalAlerts = append(criticalAlerts, "Refractariedad a esteroides sin estrategia de segunda linea documentada.")
		}
	}

	if in.RechallengeConsideredAfterResolution {
		management = append(management, "Tras resolucion clinica/analitica puede valorarse reintroduccion controlada.")
	}
	return criticalAlerts, management, trace
}

func oncoCardioOncologyPathway(in OncologyInput) (criticalAlerts, cardioActions, trace []string) {
	cardioRiskTherapy := in.TrastuzumabPlanned || in.AnthracyclinePlanned
	if cardioRiskTherapy {
		cardioActions = append(cardioActions, "Terapia con riesgo cardiotoxico detectada: FEVI basal obligatoria por eco o medicina nuclear antes de iniciar.")
		if !in.BaselineLVEFAssessed && in.BaselineLVEFPercent == nil {
			criticalAlerts = append(criticalAlerts, "Bloquear inicio de trastuzumab/antraciclina sin FEVI basal.")
		}
		if in.BaselineLVEFPercent != nil {
			trace = append(trace, "FEVI basal documentada para ruta cardio-oncologica.")
			if *in.BaselineLVEFPercent < 50 {
				criticalAlerts = append(criticalAlerts, "FEVI basal reducida: activar valoracion cardio-oncologica prioritaria.")
			}
		}
	}
	return criticalAlerts, cardioActions, trace
}

func oncoFebrileNeutropeniaPathway(in OncologyInput) (criticalAlerts, fnActions, trace []string) {
	feverCriterion := (in.TemperatureCSingle != nil && *in.TemperatureCSingle > 38.3) ||
		in.FeverOver38MoreThan1h || in.FeverThreeMeasurements24h

	neutropeniaCriterion := false
	if in.AbsoluteNeutrophilCountMm3 != nil {
		anc := *in.AbsoluteNeutrophilCountMm3
		if anc < 500 {
			neutropeniaCriterion = true
		} else if anc < 1000 && in.ANCExpectedToDropBelow500 {
			neutropeniaCriterion = true
		}
	}

	if feverCriterion && neutropeniaCriterion {
		criticalAlerts = append(criticalAlerts, "Neutropenia febril: activar aislamiento y antibioterapia empirica inmediata.")
		fnActions = append(fnActions, "Tomar cultivos y no retrasar inicio de antibiotico de amplio espectro.")
		trace = append(trace, "Regla diagnostica de neutropenia febril activada.")
		if in.PerioperativeOrAdjuvantContext {
			fnActions = append(fnActions, "Contexto perioperatorio/adyuvante: considerar mayor intensidad de riesgo.")
		}
		if in.PalliativeLaterLineContext {
			fnActions = append(fnActions, "Contexto paliativo de lineas avanzadas: ajustar intensidad segun estado global.")
		}
	}
	return criticalAlerts, fnActions, trace
}

func oncoSarcomaResponsePathway(in OncologyInput) (actions, trace []string) {
	if in.BoneSarcomaPostNeoadjuvantSpecimenAvailable && in.NecrosisRatePercent != nil {
		actions = append(actions, "Registrar tasa de necrosis en pieza quirurgica como marcador pronostico principal.")
		if *in.NecrosisRatePercent >= 90 {
			actions = append(actions, "Alta necrosis post-neoadyuvancia: sugiere mejor respuesta patologica.")
		} else {
			actions = append(actions, "Necrosis suboptima: considerar riesgo pronostico mayor y reevaluacion terapeutica.")
		}
		trace = append(trace, "Regla pronostica por necrosis en sarcoma oseo activada.")
	}

	if in.EwingSarcomaSuspected {
		if in.EWSR1RearrangementDocumented {
			actions = append(actions, "Reordenamiento EWSR1 documentado en soporte diagnostico de Ewing.")
		} else {
			actions = append(actions, "Sarcoma de Ewing sospechado: completar/confirmar estado de reordenamiento EWSR1.")
		}
	}
	return actions, trace
}

func oncoSeverity(criticalAlerts, management []string) Severity {
	if len(criticalAlerts) > 0 {
		return SeverityCritical
	}
	if len(management) > 0 {
		return SeverityHigh
	}
	return SeverityMedium
}

// EvaluateOncology builds the oncology support recommendation.
func EvaluateOncology(in OncologyInput) OncologyRecommendation {
	mechanismNotes, biomarkerStrategy, traceImmuno := oncoImmunotherapyBiomarkers(in)
	criticalTox, toxicityActions, traceTox := oncoImmuneToxicityPathway(in)
	criticalCardio, cardioActions, traceCardio := oncoCardioOncologyPathway(in)
	criticalFN, fnActions, traceFN := oncoFebrileNeutropeniaPathway(in)
	sarcomaActions, traceSarcoma := oncoSarcomaResponsePathway(in)

	criticalAlerts := append(append(append([]string{}, criticalTox...), criticalCardio...), criticalFN...)
	trace := append(append(append(append(append([]string{}, traceImmuno...), traceTox...), traceCardio...), traceFN...), traceSarcoma...)
	management := append(append(append(append([]string{}, toxicityActions...), cardioActions...), fnActions...), sarcomaActions...)

	return OncologyRecommendation{
		SeverityLevel:               oncoSeverity(criticalAlerts, management),
		CriticalAlerts:              criticalAlerts,
		ImmunotherapyMechanismNotes: mechanismNotes,
		BiomarkerStrategy:           biomarkerStrategy,
		ToxicityManagementActions:   toxicityActions,
		CardioOncologyActions:       cardioActions,
		FebrileNeutropeniaActions:   fnActions,
		SarcomaResponseActions:      sarcomaActions,
		InterpretabilityTrace:       trace,
		HumanValidationRequired:     true,
		NonDiagnosticWarning:        "Soporte operativo no diagnostico. Requiere validacion por oncologia/equipo de urgencias.",
	}
}

func init() {
	register("oncology", typed((*OncologyInput).Validate, EvaluateOncology))
}
