package protocol

// Geriatrics and frailty operational engine: aging-morphology
// interpretation, immobility syndrome, delirium safety blocks and START v3
// pharmacologic optimization.

// GeriatricsInput is the clinical-operational input for geriatric
// prioritization in the emergency department.
type GeriatricsInput struct {
	PatientAgeYears *int `json:"patient_age_years,omitempty"`

	MesangialMatrixExpansionPresent             bool `json:"mesangial_matrix_expansion_present"`
	GlomerularBasementMembraneThickeningPresent bool `json:"glomerular_basement_membrane_thickening_present"`
	GlomerulosclerosisPresent                   bool `json:"glomerulosclerosis_present"`
	NephrologyRedFlagsPresent                   bool `json:"nephrology_red_flags_present"`

	CerebralVolumeLossAgeExpected               bool `json:"cerebral_volume_loss_age_expected"`
	WidenedSulciOrVentriclesPresent             bool `json:"widened_sulci_or_ventricles_present"`
	SinusNodePacemakerCellLossSuspected         bool `json:"sinus_node_pacemaker_cell_loss_suspected"`
	TrachealCostalCartilageCalcificationPresent bool `json:"tracheal_costal_cartilage_calcification_present"`

	ProlongedImmobilityPresent    bool `json:"prolonged_immobility_present"`
	NitrogenBalanceNegative       bool `json:"nitrogen_balance_negative"`
	HighProteinSupportPlanActive  bool `json:"high_protein_support_plan_active"`
	InsulinResistanceSignsPresent bool `json:"insulin_resistance_signs_present"`
	RestingTachycardiaPresent     bool `json:"resting_tachycardia_present"`
	PsychomotorSlowingPresent     bool `json:"psychomotor_slowing_present"`

	DeliriumSuspected                                    bool `json:"delirium_suspected"`
	InfectiousTriggerSuspected                           bool `json:"infectious_trigger_suspected"`
	SevereBehavioralDisturbancePresent                   bool `json:"severe_behavioral_disturbance_present"`
	RisperidoneActive                                    bool `json:"risperidone_active"`
	BehavioralStabilizationAfterCausalTreatment          bool `json:"behavioral_stabilization_after_causal_treatment"`
	InsomniaPresent                                      bool `json:"insomnia_present"`
	BenzodiazepinePlanned                                bool `json:"benzodiazepine_planned"`
	DementiaProgressionAssessmentPlannedDuringAcuteEvent bool `json:"dementia_progression_assessment_planned_during_acute_event"`

	SymptomaticAtrophicVaginitis             bool  `json:"symptomatic_atrophic_vaginitis"`
	TopicalVaginalEstrogenActive             bool  `json:"topical_vaginal_estrogen_active"`
	LidocainePatchPlannedForGeneralJointPain bool  `json:"lidocaine_patch_planned_for_general_joint_pain"`
	LocalizedNeuropathicPainPresent          bool  `json:"localized_neuropathic_pain_present"`
	COPDGoldStage                            *int  `json:"copd_gold_stage,omitempty"`
	InhaledCorticosteroidPlanned             bool  `json:"inhaled_corticosteroid_planned"`
	OpenWoundPresent                         bool  `json:"open_wound_present"`
	TetanusBoosterPlanned                    bool  `json:"tetanus_booster_planned"`
	TetanusDosesCompleted                    *bool `json:"tetanus_doses_completed,omitempty"`
	YearsSinceLastTetanusDose                *int  `json:"years_since_last_tetanus_dose,omitempty"`

	Notes *string `json:"notes,omitempty"`
}

// GeriatricsRecommendation is the structured geriatrics support output.
type GeriatricsRecommendation struct {
	SeverityLevel                    Severity `json:"severity_level"`
	CriticalAlerts                   []string `json:"critical_alerts"`
	AgingContextInterpretation       []string `json:"aging_context_interpretation"`
	DiagnosticActions                []string `json:"diagnostic_actions"`
	TherapeuticActions               []string `json:"therapeutic_actions"`
	PharmacologicOptimizationActions []string `json:"pharmacologic_optimization_actions"`
	SafetyBlocks                     []string `json:"safety_blocks"`
	InterpretabilityTrace            []string `json:"interpretability_trace"`
	HumanValidationRequired          bool     `json:"human_validation_required"`
	NonDiagnosticWarning             string   `json:"non_diagnostic_warning"`
}

func (in *GeriatricsInput) Validate() error {
	if err := inRangeI("patient_age_years", in.PatientAgeYears, 0, 130); err != nil {
		return err
	}
	if err := inRangeI("copd_gold_stage", in.COPDGoldStage, 1, 4); err != nil {
		return err
	}
	if err := inRangeI("years_since_last_tetanus_dose", in.YearsSinceLastTetanusDose, 0, 80); err != nil {
		return err
	}
	return validateNotes("notes", in.Notes)
}

func geriAgingMorphologyPathway(in GeriatricsInput) (interpretation, diagnostic, trace []string) {
	renalAgingPattern := in.MesangialMatrixExpansionPresent ||
		in.GlomerularBasementMembraneThickeningPresent || in.GlomerulosclerosisPresent
	if renalAgingPattern {
		interpretation = append(interpretation, "Cambios nefrourologicos compatibles con envejecimiento (mesangio/membrana basal/glomeruloesclerosis).")
		if !in.NephrologyRedFlagsPresent {
			interpretation = append(interpretation, "La expansion mesangial aislada se interpreta como hallazgo de edad y no como dano necesariamente patologico.")
			trace = append(trace, "Regla geriatrica renal aplicada: aumento de matriz mesangial sin red flags no se etiqueta como patologia por si sola.")
		} else {
			diagnostic = append(diagnostic, "Correlacionar hallazgos renales de envejecimiento con red flags nefrologicas.")
		}
	}

	if in.CerebralVolumeLossAgeExpected && in.WidenedSulciOrVentriclesPresent {
		interpretation = append(interpretation, "Patron cerebral de envejecimiento esperado: menor masa cerebral con aumento de surcos/ventriculos.")
	}
	if in.SinusNodePacemakerCellLossSuspected {
		interpretation = append(interpretation, "Reduccion de celulas marcapasos del nodo sinusal compatible con edad avanzada.")
	}
	if in.TrachealCostalCartilageCalcificationPresent {
		interpretation = append(interpretation, "Calcificacion de cartilagos traqueales/costales compatible con envejecimiento.")
	}
	return interpretation, diagnostic, trace
}

func geriImmobilityPathway(in GeriatricsInput) (criticalAlerts, therapeutic, safetyBlocks, trace []string) {
	if in.ProlongedImmobilityPresent {
		therapeutic = append(therapeutic, "Inmovilidad prolongada: activar plan de movilizacion precoz y prevencion de desacondicionamiento.")
		if in.NitrogenBalanceNegative {
			criticalAlerts = append(criticalAlerts, "Balance nitrogenado negativo en inmovilidad: priorizar soporte proteico.")
			trace = append(trace, "Regla de fragilidad metabolica por inmovilidad activada.")
			if !in.HighProteinSupportPlanActive {
				safetyBlocks = append(safetyBlocks, "Falta plan proteico pese a balance nitrogenado negativo.")
			} else {
				therapeutic = append(therapeutic, "Mantener/reforzar aporte proteico para frenar catabolismo.")
			}
		}

		if in.InsulinResistanceSignsPresent {
			therapeutic = append(therapeutic, "Monitorizar intolerancia hidrocarbonada asociada a inmovilidad.")
		}
		if in.RestingTachycardiaPresent {
			therapeutic = append(therapeutic, "Vigilar taquicardia de reposo por predominio simpatico en inmovilidad.")
		}
		if in.PsychomotorSlowingPresent {
			therapeutic = append(therapeutic, "Enlentecimiento psicomotor en inmovilidad: reevaluar estado cognitivo funcional tras intervencion de movilidad.")
		}
	}
	return criticalAlerts, therapeutic, safetyBlocks, trace
}

func geriDeliriumPathway(in GeriatricsInput) (criticalAlerts, diagnostic, therapeutic, safetyBlocks, trace []string) {
	if in.DeliriumSuspected {
		therapeutic = append(therapeutic, "Delirium: priorizar tratamiento de la causa subyacente antes de sedacion cronica.")
		if in.InfectiousTriggerSuspected {
			diagnostic = append(diagnostic, "Buscar y tratar desencadenante infeccioso (p. ej., foco urinario).")
		}

		if in.SevereBehavioralDisturbancePresent {
			therapeutic = append(therapeutic, "Trastorno conductual grave: considerar risperidona a dosis minima y duracion corta.")
			if !in.RisperidoneActive {
				trace = append(trace, "Risperidona propuesta solo por gravedad conductual.")
			}
		}

		if in.RisperidoneActive && in.BehavioralStabilizationAfterCausalTreatment {
			therapeutic = append(therapeutic, "Iniciar desescalada progresiva de risperidona cuando conducta se estabiliza.")
			trace = append(trace, "Regla de retirada precoz de antipsicotico aplicada tras mejoria causal.")
		}

		if in.InsomniaPresent && in.BenzodiazepinePlanned {
			criticalAlerts = append(criticalAlerts, "Bloqueo de benzodiacepinas en insomnio con delirium sospechado.")
			safetyBlocks = append(safetyBlocks, "Evitar benzodiacepinas: aumentan somnolencia diurna y deterioro funcional.")
		}

		if in.DementiaProgressionAssessmentPlannedDuringAcuteEvent {
			safetyBlocks = append(safetyBlocks, "No valorar progresion de demencia durante delirium agudo reversible.")
		}
	}
	return criticalAlerts, diagnostic, therapeutic, safetyBlocks, trace
}

func geriStartV3Pathway(in GeriatricsInput) (optimization, safetyBlocks, diagnostic []string) {
	if in.SymptomaticAtrophicVaginitis && !in.TopicalVaginalEstrogenActive {
		optimization = append(optimization, "START v3: valorar estrogenos topicos vaginales en vaginitis atrofica sintomatica.")
	}

	if in.LidocainePatchPlannedForGeneralJointPain {
		if !in.LocalizedNeuropathicPainPresent {
			safetyBlocks = append(safetyBlocks, "Parches de lidocaina no indicados para dolor articular generalizado.")
		} else {
			optimization = append(optimization, "Lidocaina topica compatible con dolor neuropatico localizado.")
		}
	}

	if in.InhaledCorticosteroidPlanned && in.COPDGoldStage != nil &&
		(*in.COPDGoldStage == 1 || *in.COPDGoldStage == 2) {
		safetyBlocks = append(safetyBlocks, "Evitar corticoide inhalado en EPOC GOLD 1-2 salvo indicacion justificada.")
	}

	if in.OpenWoundPresent && in.TetanusBoosterPlanned {
		if in.TetanusDosesCompleted == nil {
			diagnostic = append(diagnostic, "Verificar esquema antitetanico previo antes de indicar recuerdo automatico.")
		} else if *in.TetanusDosesCompleted &&
			in.YearsSinceLastTetanusDose != nil && *in.YearsSinceLastTetanusDose < 10 {
			safetyBlocks = append(safetyBlocks, "Refuerzo antitetanico no automatico: esquema completo y ultima dosis <10 anos.")
		}
	}
	return optimization, safetyBlocks, diagnostic
}

func geriSeverity(criticalAlerts, safetyBlocks, therapeutic []string) Severity {
	if len(criticalAlerts) > 0 {
		return SeverityCritical
	}
	if len(safetyBlocks) > 0 {
		return SeverityHigh
	}
	if len(therapeutic) > 0 {
		return SeverityMedium
	}
	return SeverityLow
}

// EvaluateGeriatrics builds the geriatrics support recommendation.
func EvaluateGeriatrics(in GeriatricsInput) GeriatricsRecommendation {
	agingInterpretation, diagnosticAging, traceAging := geriAgingMorphologyPathway(in)
	criticalImmob, therapeuticImmob, safetyImmob, traceImmob := geriImmobilityPathway(in)
	criticalDelirium, diagnosticDelirium, therapeuticDelirium, safetyDelirium, traceDelirium := geriDeliriumPathway(in)
	optimizationStart, safetyStart, diagnosticStart := geriStartV3Pathway(in)

	criticalAlerts := append(append([]string{}, criticalImmob...), criticalDelirium...)
	diagnostic := append(append(append([]string{}, diagnosticAging...), diagnosticDelirium...), diagnosticStart...)
	therapeutic := append(append([]string{}, therapeuticImmob...), therapeuticDelirium...)
	safetyBlocks := append(append(append([]string{}, safetyImmob...), safetyDelirium...), safetyStart...)
	trace := append(append(append([]string{}, traceAging...), traceImmob...), traceDelirium...)

	return GeriatricsRecommendation{
		SeverityLevel:                    geriSeverity(criticalAlerts, safetyBlocks, therapeutic),
		CriticalAlerts:                   criticalAlerts,
		AgingContextInterpretation:       agingInterpretation,
		DiagnosticActions:                diagnostic,
		TherapeuticActions:               therapeutic,
		PharmacologicOptimizationActions: optimizationStart,
		SafetyBlocks:                     safetyBlocks,
		InterpretabilityTrace:            trace,
		HumanValidationRequired:          true,
		NonDiagnosticWarning:             "Soporte operativo no diagnostico. Requiere validacion por geriatria/equipo de urgencias.",
	}
}

func init() {
	register("geriatrics", typed((*GeriatricsInput).Validate, EvaluateGeriatrics))
}
