package protocol

// Endocrine-metabolic operational engine: metabolic emergencies, thyroid
// routes, pituitary/water/adrenal axes, incidentaloma screening and diabetes
// staging support.

// EndocrinologyInput is the clinical-operational input for endocrine and
// metabolic prioritization in the emergency department.
type EndocrinologyInput struct {
	SuspectedHypoglycemia     bool `json:"suspected_hypoglycemia"`
	FastingContext            bool `json:"fasting_context"`
	KetosisPresent            bool `json:"ketosis_present"`
	LacticAcidosisPresent     bool `json:"lactic_acidosis_present"`
	HyperammonemiaPresent     bool `json:"hyperammonemia_present"`
	DicarboxylicAcidsElevated bool `json:"dicarboxylic_acids_elevated"`

	InsulinResistanceSuspected        bool `json:"insulin_resistance_suspected"`
	Hexokinase2DownregulationReported bool `json:"hexokinase2_downregulation_reported"`
	HepaticFoxO1ActivationReported    bool `json:"hepatic_foxo1_activation_reported"`

	PediatricPatient             bool `json:"pediatric_patient"`
	PediatricGrowthDeceleration  bool `json:"pediatric_growth_deceleration"`
	TSHElevated                  bool `json:"tsh_elevated"`
	FreeT4Low                    bool `json:"free_t4_low"`
	AntiTPOPositive              bool `json:"anti_tpo_positive"`
	AntiThyroglobulinPositive    bool `json:"anti_thyroglobulin_positive"`
	DiffuseFirmPainlessGoiter    bool `json:"diffuse_firm_painless_goiter"`

	MedullaryThyroidCarcinomaSuspected  bool `json:"medullary_thyroid_carcinoma_suspected"`
	PreopUrinaryMetanephrinesCompleted  bool `json:"preop_urinary_metanephrines_completed"`
	RETGeneticStudyCompleted            bool `json:"ret_genetic_study_completed"`
	CalcitoninAvailable                 bool `json:"calcitonin_available"`
	CEAAvailable                        bool `json:"cea_available"`
	ThyroglobulinFollowupPlanned        bool `json:"thyroglobulin_followup_planned"`
	CentralOrLateralNodesSuspected      bool `json:"central_or_lateral_nodes_suspected"`

	HyponatremiaPresent              bool     `json:"hyponatremia_present"`
	PlasmaHypoosmolarityPresent      bool     `json:"plasma_hypoosmolarity_present"`
	InappropriatelyConcentratedUrine bool     `json:"inappropriately_concentrated_urine"`
	SerumSodiumMmolL                 *float64 `json:"serum_sodium_mmol_l,omitempty"`
	NeurologicSymptomsPresent        bool     `json:"neurologic_symptoms_present"`
	SIADHCourseChronic               bool     `json:"siadh_course_chronic"`
	TolvaptanPlanned                 bool     `json:"tolvaptan_planned"`
	WaterRestrictionPlanned          bool     `json:"water_restriction_planned"`

	HyperprolactinemiaPresent     bool     `json:"hyperprolactinemia_present"`
	ProlactinNgMl                 *float64 `json:"prolactin_ng_ml,omitempty"`
	PregnancyRuledOut             bool     `json:"pregnancy_ruled_out"`
	DopamineAntagonistExposure    bool     `json:"dopamine_antagonist_exposure"`
	PrimaryHypothyroidismPresent  bool     `json:"primary_hypothyroidism_present"`
	PituitaryMRIPlanned           bool     `json:"pituitary_mri_planned"`

	RefractoryHypotensionPresent        bool `json:"refractory_hypotension_present"`
	AbdominalPainOrVomitingPresent      bool `json:"abdominal_pain_or_vomiting_present"`
	SkinMucosalHyperpigmentationPresent bool `json:"skin_mucosal_hyperpigmentation_present"`

	AdrenalIncidentalomaPresent            bool `json:"adrenal_incidentaloma_present"`
	IsolatedSerumCortisolScreeningPlanned  bool `json:"isolated_serum_cortisol_screening_planned"`
	AldosteroneReninRatioCompleted         bool `json:"aldosterone_renin_ratio_completed"`
	OvernightDexamethasone1mgTestCompleted bool `json:"overnight_dexamethasone_1mg_test_completed"`
	UrinaryMetanephrines24hCompleted       bool `json:"urinary_metanephrines_24h_completed"`
	HypertensionPresent                    bool `json:"hypertension_present"`

	T1DAutoimmunityPositive  bool `json:"t1d_autoimmunity_positive"`
	GlucoseNormal            bool `json:"glucose_normal"`
	PrediabetesRange         bool `json:"prediabetes_range"`
	DiabetesCriteriaPresent  bool `json:"diabetes_criteria_present"`

	ObesityPresent         bool `json:"obesity_present"`
	HighCardiovascularRisk bool `json:"high_cardiovascular_risk"`
	WeightLossPriority     bool `json:"weight_loss_priority"`
	GLP1RAPlanned          bool `json:"glp1_ra_planned"`
	PioglitazonePlanned    bool `json:"pioglitazone_planned"`
	SulfonylureaPlanned    bool `json:"sulfonylurea_planned"`
	InsulinPlanned         bool `json:"insulin_planned"`

	HypercalcemiaPresent         bool `json:"hypercalcemia_present"`
	ThiazideExposure             bool `json:"thiazide_exposure"`
	ChronicAlcoholUse            bool `json:"chronic_alcohol_use"`
	HypertriglyceridemiaPresent  bool `json:"hypertriglyceridemia_present"`
	HDLLowPresent                bool `json:"hdl_low_present"`

	Notes *string `json:"notes,omitempty"`
}

// EndocrinologyRecommendation is the structured endocrine-metabolic output.
type EndocrinologyRecommendation struct {
	SeverityLevel             Severity `json:"severity_level"`
	CriticalAlerts            []string `json:"critical_alerts"`
	DiagnosticActions         []string `json:"diagnostic_actions"`
	TherapeuticActions        []string `json:"therapeutic_actions"`
	PharmacologicSafetyAlerts []string `json:"pharmacologic_safety_alerts"`
	ScreeningChecklist        []string `json:"screening_checklist"`
	DiabetesStagingSupport    []string `json:"diabetes_staging_support"`
	MetabolicContextFlags     []string `json:"metabolic_context_flags"`
	InterpretabilityTrace     []string `json:"interpretability_trace"`
	HumanValidationRequired   bool     `json:"human_validation_required"`
	NonDiagnosticWarning      string   `json:"non_diagnostic_warning"`
}

func (in *EndocrinologyInput) Validate() error {
	if err := inRangeF("serum_sodium_mmol_l", in.SerumSodiumMmolL, 90, 170); err != nil {
		return err
	}
	if err := inRangeF("prolactin_ng_ml", in.ProlactinNgMl, 0, 10000); err != nil {
		return err
	}
	return validateNotes("notes", in.Notes)
}

func endoMetabolicEmergencyPathway(in EndocrinologyInput) (criticalAlerts, diagnostic, therapeutic, trace []string) {
	if in.SuspectedHypoglycemia && !in.KetosisPresent {
		criticalAlerts = append(criticalAlerts, "Hipoglucemia sin cetosis: activar flujo de defectos de beta-oxidacion.")
		diagnostic = append(diagnostic, "Solicitar perfil metabolico urgente con lactato, amonio y dicarboxilicos.")
		trace = append(trace, "Regla de hipoglucemia hipocetosica aplicada para errores innatos.")
		if in.FastingContext {
			diagnostic = append(diagnostic, "Contexto de ayuno presente: aumenta sospecha de deficit de acil-CoA deshidrogenasa.")
		}
	}

	if in.SuspectedHypoglycemia && !in.KetosisPresent && in.LacticAcidosisPresent && in.HyperammonemiaPresent {
		criticalAlerts = append(criticalAlerts, "Triada bioquimica critica (hipoglucemia hipocetosica + acidosis lactica + hiperamonemia).")
		therapeutic = append(therapeutic, "Escalar a area critica y soporte metabolico urgente segun protocolo local.")
	}

	if in.DicarboxylicAcidsElevated {
		diagnostic = append(diagnostic, "Dicarboxilicos elevados: hallazgo de apoyo para bloqueo en beta-oxidacion.")
	}
	return criticalAlerts, diagnostic, therapeutic, trace
}

func endoThyroidPathway(in EndocrinologyInput) (criticalAlerts, diagnostic, therapeutic, safetyAlerts, trace []string) {
	if in.PediatricPatient && in.PediatricGrowthDeceleration {
		diagnostic = append(diagnostic, "Desaceleracion del crecimiento pediatrico: priorizar cribado tiroideo (TSH/T4L).")
		if in.TSHElevated {
			diagnostic = append(diagnostic, "TSH elevada: hallazgo principal para hipotiroidismo en contexto compatible.")
		}
		if in.AntiTPOPositive || in.AntiThyroglobulinPositive {
			diagnostic = append(diagnostic, "Autoinmunidad tiroidea positiva: compatible con tiroiditis de Hashimoto.")
		}
		if in.DiffuseFirmPainlessGoiter {
			diagnostic = append(diagnostic, "Bocio difuso firme e indoloro: hallazgo fisico de apoyo para Hashimoto.")
		}
		trace = append(trace, "Ruta de hipotiroidismo pediatrico aplicada.")
	}

	if in.MedullaryThyroidCarcinomaSuspected {
		therapeutic = append(therapeutic, "Plan quirurgico de referencia: tiroidectomia total con linfadenectomia central.")
		if in.CentralOrLateralNodesSuspected {
			therapeutic = append(therapeutic, "Si hay afectacion ganglionar lateral, ampliar linfadenectomia lateral.")
		}
		if !in.PreopUrinaryMetanephrinesCompleted {
			criticalAlerts = append(criticalAlerts, "Sospecha de CMT sin metanefrinas urinarias preoperatorias: descartar feocromocitoma antes de cirugia.")
		}
		if in.ThyroglobulinFollowupPlanned {
			safetyAlerts = append(safetyAlerts, "En CMT, tiroglobulina no es marcador de seguimiento util; usar calcitonina y CEA.")
		}
		if !in.CalcitoninAvailable || !in.CEAAvailable {
			diagnostic = append(diagnostic, "Asegurar marcadores de seguimiento para CMT: calcitonina y CEA.")
		}
		if !in.RETGeneticStudyCompleted {
			diagnostic = append(diagnostic, "Completar estudio genetico del protooncogen RET.")
		}
		trace = append(trace, "Ruta operativa de carcinoma medular tiroideo aplicada.")
	}
	return criticalAlerts, diagnostic, therapeutic, safetyAlerts, trace
}

func endoPituitaryWaterAdrenalPathway(in EndocrinologyInput) (criticalAlerts, diagnostic, therapeutic, safetyAlerts, checklist []string) {
	if in.HyponatremiaPresent && in.PlasmaHypoosmolarityPresent && in.InappropriatelyConcentratedUrine {
		diagnostic = append(diagnostic, "Perfil compatible con SIADH: hiponatremia hipoosmolar con orina inapropiadamente concentrada.")
		severeSodium := in.SerumSodiumMmolL != nil && *in.SerumSodiumMmolL < 120
		if severeSodium || in.NeurologicSymptomsPresent {
			criticalAlerts = append(criticalAlerts, "SIADH grave/sintomatica: iniciar suero salino hipertónico a ritmo lento.")
		} else {
			therapeutic = append(therapeutic, "SIADH cronica/leve: restriccion hidrica y dieta rica en sal.")
			if in.SIADHCourseChronic {
				checklist = append(checklist, "Reevaluar sodio seriado en SIADH cronica para evitar correccion brusca.")
			}
		}

		if in.TolvaptanPlanned {
			therapeutic = append(therapeutic, "Tolvaptan: antagonista selectivo V2 indicado segun contexto.")
			if in.WaterRestrictionPlanned {
				safetyAlerts = append(safetyAlerts, "Con tolvaptan, evitar restriccion hidrica estricta y mantener acceso libre al agua.")
			}
		}
	}

	if in.HyperprolactinemiaPresent {
		diagnostic = append(diagnostic, "Antes de RM hipofisaria, descartar embarazo, farmacos antidopaminergicos e hipotiroidismo primario.")
		if !in.PregnancyRuledOut {
			diagnostic = append(diagnostic, "Completar descarte de embarazo como causa fisiologica de hiperprolactinemia.")
		}
		if in.ProlactinNgMl != nil && *in.ProlactinNgMl >= 100 {
			if !in.PituitaryMRIPlanned {
				criticalAlerts = append(criticalAlerts, "Prolactina >=100 ng/mL sin causa explicada: priorizar RM hipofisaria.")
			}
		} else if in.ProlactinNgMl != nil && *in.ProlactinNgMl > 0 &&
			!in.DopamineAntagonistExposure && !in.PrimaryHypothyroidismPresent && !in.PituitaryMRIPlanned {
			diagnostic = append(diagnostic, "Hiperprolactinemia inexplicada: considerar RM hipofisaria.")
		}
	}

	if in.RefractoryHypotensionPresent && in.AbdominalPainOrVomitingPresent &&
		in.SkinMucosalHyperpigmentationPresent && in.HyponatremiaPresent {
		criticalAlerts = append(criticalAlerts, "Patron compatible con crisis suprarrenal (Addison) en urgencias.")
		therapeutic = append(therapeutic, "Escalar manejo de insuficiencia suprarrenal aguda segun protocolo institucional.")
	}
	return criticalAlerts, diagnostic, therapeutic, safetyAlerts, checklist
}

func endoIncidentalomaDiabetesConfoundersPathway(in EndocrinologyInput) (criticalAlerts, therapeutic, safetyAlerts, staging, contextFlags []string) {
	if in.AdrenalIncidentalomaPresent {
		if in.IsolatedSerumCortisolScreeningPlanned {
			criticalAlerts = append(criticalAlerts, "Incidentaloma suprarrenal: rechazar cortisol serico aislado como cribado valido.")
		}
		if in.HypertensionPresent && !in.AldosteroneReninRatioCompleted {
			criticalAlerts = append(criticalAlerts, "Incidentaloma en hipertenso sin ratio aldosterona/renina: cribado incompleto.")
		}
		if !in.OvernightDexamethasone1mgTestCompleted {
			criticalAlerts = append(criticalAlerts, "Incidentaloma sin test de supresion con 1 mg de dexametasona nocturna.")
		}
		if !in.UrinaryMetanephrines24hCompleted {
			criticalAlerts = append(criticalAlerts, "Incidentaloma sin metanefrinas fraccionadas en orina 24h.")
		}
	}

	if in.T1DAutoimmunityPositive {
		if in.GlucoseNormal && !in.PrediabetesRange && !in.DiabetesCriteriaPresent {
			staging = append(staging, "DM1 estadio 1: autoinmunidad positiva con glucosa normal.")
		} else if in.PrediabetesRange && !in.DiabetesCriteriaPresent {
			staging = append(staging, "DM1 estadio 2: autoinmunidad positiva con disglucemia/prediabetes.")
		} else if in.DiabetesCriteriaPresent {
			staging = append(staging, "DM1 estadio 3: autoinmunidad positiva con criterios clinicos de diabetes.")
		}
	}

	if in.ObesityPresent && in.HighCardiovascularRisk {
		therapeutic = append(therapeutic, "Priorizar agonista GLP-1 por beneficio en peso y riesgo cardiovascular.")
		if !in.GLP1RAPlanned {
			safetyAlerts = append(safetyAlerts, "Valorar inclusion de GLP-1 RA como estrategia de alto valor clinico.")
		}
	}
	if in.WeightLossPriority && in.PioglitazonePlanned {
		safetyAlerts = append(safetyAlerts, "Evitar pioglitazona si el objetivo es perder peso (retencion hidrica/ganancia ponderal).")
	}
	if in.WeightLossPriority && in.SulfonylureaPlanned {
		safetyAlerts = append(safetyAlerts, "Evitar sulfonilureas cuando se prioriza menor hipoglucemia y no ganancia de peso.")
	}
	if in.WeightLossPriority && in.InsulinPlanned {
		safetyAlerts = append(safetyAlerts, "Reevaluar necesidad de insulinizacion si objetivo principal es evitar ganancia de peso.")
	}

	if in.HypercalcemiaPresent && in.ThiazideExposure {
		contextFlags = append(contextFlags, "Tiazidas pueden explicar hipercalcemia; descartar causa farmacologica antes de hiperparatiroidismo primario.")
	}
	if in.ChronicAlcoholUse && in.HypertriglyceridemiaPresent && in.HDLLowPresent {
		contextFlags = append(contextFlags, "Perfil compatible con sindrome metabolico asociado a alcohol (hipertrigliceridemia y descenso de HDL).")
	}

	if in.InsulinResistanceSuspected && in.Hexokinase2DownregulationReported {
		contextFlags = append(contextFlags, "Resistencia insulinica con menor expresion de exoquinasa 2 reportada.")
	}
	if in.InsulinResistanceSuspected && in.HepaticFoxO1ActivationReported {
		contextFlags = append(contextFlags, "Activacion hepatica de genes gluconeogenicos mediada por FoxO1 no fosforilado.")
	}
	return criticalAlerts, therapeutic, safetyAlerts, staging, contextFlags
}

func endoSeverity(criticalAlerts, safetyAlerts, staging, contextFlags []string) Severity {
	if len(criticalAlerts) > 0 {
		return SeverityCritical
	}
	if len(safetyAlerts) > 0 {
		return SeverityHigh
	}
	if len(staging) > 0 || len(contextFlags) > 0 {
		return SeverityMedium
	}
	return SeverityLow
}

// EvaluateEndocrinology builds the endocrine-metabolic support recommendation.
func EvaluateEndocrinology(in EndocrinologyInput) EndocrinologyRecommendation {
	criticalMet, diagnosticMet, therapeuticMet, traceMet := endoMetabolicEmergencyPathway(in)
	criticalThy, diagnosticThy, therapeuticThy, safetyThy, traceThy := endoThyroidPathway(in)
	criticalPit, diagnosticPit, therapeuticPit, safetyPit, checklistPit := endoPituitaryWaterAdrenalPathway(in)
	criticalMisc, therapeuticMisc, safetyMisc, staging, contextFlags := endoIncidentalomaDiabetesConfoundersPathway(in)

	criticalAlerts := append(append(append(append([]string{}, criticalMet...), criticalThy...), criticalPit...), criticalMisc...)
	diagnostic := append(append(append([]string{}, diagnosticMet...), diagnosticThy...), diagnosticPit...)
	therapeutic := append(append(append(append([]string{}, therapeuticMet...), therapeuticThy...), therapeuticPit...), therapeuticMisc...)
	safetyAlerts := append(append(append([]string{}, safetyThy...), safetyPit...), safetyMisc...)
	trace := append(append([]string{}, traceMet...), traceThy...)

	return EndocrinologyRecommendation{
		SeverityLevel:            endoSeverity(criticalAlerts, safetyAlerts, staging, contextFlags),
		CriticalAlerts:           criticalAlerts,
		DiagnosticActions:        diagnostic,
		TherapeuticActions:       therapeutic,
		PharmacologicSafetyAlerts: safetyAlerts,
		ScreeningChecklist:       checklistPit,
		DiabetesStagingSupport:   staging,
		MetabolicContextFlags:    contextFlags,
		InterpretabilityTrace:    trace,
		HumanValidationRequired:  true,
		NonDiagnosticWarning:     "Soporte operativo no diagnostico. Requiere validacion por endocrinologia/equipo de urgencias.",
	}
}

func init() {
	register("endocrinology", typed((*EndocrinologyInput).Validate, EvaluateEndocrinology))
}
