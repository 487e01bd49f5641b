package protocol

// Gastro-hepato operational engine: portal thrombosis and variceal bleeding
// routes, abdominal imaging red flags, surgical and pharmacology support.

var gastroHerniaTechniques = map[string]bool{
	"desconocida": true, "shouldice": true, "lichtenstein": true,
	"tep": true, "tapp": true, "otra": true,
}

// GastroHepatoInput is the clinical-operational input for digestive and
// hepatobiliary emergency rules.
type GastroHepatoInput struct {
	AbdominalPain      bool `json:"abdominal_pain"`
	Jaundice           bool `json:"jaundice"`
	Ascites            bool `json:"ascites"`
	HypotensionPresent bool `json:"hypotension_present"`

	PortalDopplerNoFlowSilence        bool `json:"portal_doppler_no_flow_silence"`
	PortalDopplerHeterogeneous        bool `json:"portal_doppler_heterogeneous"`
	PortalThrombosisConfirmed         bool `json:"portal_thrombosis_confirmed"`
	InitialOralAnticoagulationStarted bool `json:"initial_oral_anticoagulation_started"`
	FailedInitialAnticoagulation      bool `json:"failed_initial_anticoagulation"`
	EndovascularTherapyConsidered     bool `json:"endovascular_therapy_considered"`

	CirrhosisKnown               bool     `json:"cirrhosis_known"`
	UpperGIBleedingSuspected     bool     `json:"upper_gi_bleeding_suspected"`
	VasoactiveSomatostatinStarted bool    `json:"vasoactive_somatostatin_started"`
	EndoscopyPerformed           bool     `json:"endoscopy_performed"`
	HoursToEndoscopy             *float64 `json:"hours_to_endoscopy,omitempty"`
	VaricealBandLigationDone     bool     `json:"variceal_band_ligation_done"`
	EarlyRebleeding              bool     `json:"early_rebleeding"`
	BleedingControlledWithBands  *bool    `json:"bleeding_controlled_with_bands,omitempty"`
	TIPSConsidered               bool     `json:"tips_considered"`

	PortalVenousGasOnCT        bool `json:"portal_venous_gas_on_ct"`
	GastricPneumatosisOnCT     bool `json:"gastric_pneumatosis_on_ct"`
	AerobiliaCentralPattern    bool `json:"aerobilia_central_pattern"`
	PriorBiliaryInstrumentation bool `json:"prior_biliary_instrumentation"`

	PainlessGallbladderDistension        bool `json:"painless_gallbladder_distension"`
	BiliaryTreeDilationIntraExtrahepatic bool `json:"biliary_tree_dilation_intra_extrahepatic"`
	CholestaticJaundice                  bool `json:"cholestatic_jaundice"`
	RecentAmoxicillinClavulanate         bool `json:"recent_amoxicillin_clavulanate"`

	LeftLowerQuadrantPain                      bool `json:"left_lower_quadrant_pain"`
	FeverPresent                               bool `json:"fever_present"`
	LeukocytosisPresent                        bool `json:"leukocytosis_present"`
	CRPElevated                                bool `json:"crp_elevated"`
	CTPericolonicInflammationSigmoidDescending bool `json:"ct_pericolonic_inflammation_sigmoid_descending"`
	BowelLoopDilationPresent                   bool `json:"bowel_loop_dilation_present"`

	HerniaBelowInguinalLigament      bool `json:"hernia_below_inguinal_ligament"`
	IntestinalObstructionSigns       bool `json:"intestinal_obstruction_signs"`
	IncarcerationOrStrangulationSigns bool `json:"incarceration_or_strangulation_signs"`

	PorcelainGallbladder                  bool     `json:"porcelain_gallbladder"`
	GallstoneSizeCm                       *float64 `json:"gallstone_size_cm,omitempty"`
	SymptomaticMicrolithiasis             bool     `json:"symptomatic_microlithiasis"`
	DuodenalAdenocarcinomaNonMetastatic   bool     `json:"duodenal_adenocarcinoma_non_metastatic"`
	DuodenalAdenocarcinomaNodalOrMetastatic bool   `json:"duodenal_adenocarcinoma_nodal_or_metastatic"`
	InguinalHerniaRepairPlanned           bool     `json:"inguinal_hernia_repair_planned"`
	WantsNonMeshTechnique                 bool     `json:"wants_non_mesh_technique"`
	PlannedHerniaTechnique                string   `json:"planned_hernia_technique"`

	IBDPatient                bool `json:"ibd_patient"`
	AzathioprineActive        bool `json:"azathioprine_active"`
	InfliximabOrBiologicActive bool `json:"infliximab_or_biologic_active"`

	ZenkerDiverticulumSuspected bool `json:"zenker_diverticulum_suspected"`
	OpenZenkerSurgerySelected   bool `json:"open_zenker_surgery_selected"`

	GERDPreopEvaluation                 bool  `json:"gerd_preop_evaluation"`
	EsophagealManometryDone             bool  `json:"esophageal_manometry_done"`
	FAPSuspected                        bool  `json:"fap_suspected"`
	APCMutationPresent                  *bool `json:"apc_mutation_present,omitempty"`
	MandibularOsteomas                  bool  `json:"mandibular_osteomas"`
	RetinalPigmentEpitheliumHypertrophy bool  `json:"retinal_pigment_epithelium_hypertrophy"`

	Notes *string `json:"notes,omitempty"`
}

// GastroHepatoRecommendation is the structured gastro-hepato support output.
type GastroHepatoRecommendation struct {
	SeverityLevel             Severity `json:"severity_level"`
	CriticalAlerts            []string `json:"critical_alerts"`
	HemodynamicActions        []string `json:"hemodynamic_actions"`
	ImagingRedFlags           []string `json:"imaging_red_flags"`
	DifferentialClues         []string `json:"differential_clues"`
	SurgicalDecisionSupport   []string `json:"surgical_decision_support"`
	PharmacologySafetyAlerts  []string `json:"pharmacology_safety_alerts"`
	FunctionalGeneticGuidance []string `json:"functional_genetic_guidance"`
	InterpretabilityTrace     []string `json:"interpretability_trace"`
	HumanValidationRequired   bool     `json:"human_validation_required"`
	NonDiagnosticWarning      string   `json:"non_diagnostic_warning"`
}

func (in *GastroHepatoInput) Validate() error {
	if err := inRangeF("hours_to_endoscopy", in.HoursToEndoscopy, 0, 168); err != nil {
		return err
	}
	if err := inRangeF("gallstone_size_cm", in.GallstoneSizeCm, 0, 10); err != nil {
		return err
	}
	if in.PlannedHerniaTechnique == "" {
		in.PlannedHerniaTechnique = "desconocida"
	}
	if !gastroHerniaTechniques[in.PlannedHerniaTechnique] {
		return invalidf("planned_hernia_technique", "unknown value %q", in.PlannedHerniaTechnique)
	}
	return validateNotes("notes", in.Notes)
}

func gastroVascularHemodynamicPathway(in GastroHepatoInput) (criticalAlerts, actions, trace []string) {
	portalThrombosisPattern := in.PortalThrombosisConfirmed ||
		(in.AbdominalPain && in.Jaundice && in.Ascites && in.PortalDopplerNoFlowSilence)
	if portalThrombosisPattern {
		criticalAlerts = append(criticalAlerts, "Sospecha de trombosis portal aguda: priorizar anticoagulacion inmediata.")
		actions = append(actions, "Iniciar anticoagulacion oral como primera linea si no hay contraindicaciones.")
		trace = append(trace, "Patron clinico-Doppler de trombosis portal identificado.")
		if in.FailedInitialAnticoagulation {
			actions = append(actions, "Fracaso terapeutico: valorar TIPS/angioplastia en centro experimentado.")
		} else if in.EndovascularTherapyConsidered {
			actions = append(actions, "Terapia endovascular reservada para fracaso del manejo anticoagulante.")
		}
	}

	if in.CirrhosisKnown && in.UpperGIBleedingSuspected {
		actions = append(actions, "HDA en cirrotico: estabilizacion hemodinamica con fluidoterapia.")
		if !in.VasoactiveSomatostatinStarted {
			criticalAlerts = append(criticalAlerts, "HDA en cirrotico sin somatostatina inmediata: riesgo de peor control inicial.")
		} else {
			actions = append(actions, "Mantener farmaco vasoactivo precoz (somatostatina) previo a endoscopia.")
		}

		if in.EndoscopyPerformed {
			if in.HoursToEndoscopy != nil && *in.HoursToEndoscopy > 12 {
				criticalAlerts = append(criticalAlerts, "Endoscopia >12 h en HDA cirrotico: incumplimiento de ventana objetivo.")
			}
			if in.VaricealBandLigationDone {
				actions = append(actions, "Endoscopia terapeutica con ligadura de varices realizada.")
			}
		} else {
			criticalAlerts = append(criticalAlerts, "HDA en cirrotico sin endoscopia temprana: priorizar procedimiento <12 h.")
		}

		bandsFailed := in.BleedingControlledWithBands != nil && !*in.BleedingControlledWithBands
		if in.EarlyRebleeding || bandsFailed {
			actions = append(actions, "Hemorragia no controlada/resangrado precoz: valorar TIPS de rescate.")
			trace = append(trace, "Escalada a terapia de rescate por fracaso de bandas.")
		} else if in.TIPSConsidered && !in.VaricealBandLigationDone {
			actions = append(actions, "Evitar TIPS precoz sin intento endoscopico, salvo inestabilidad extrema.")
		}
	}
	return criticalAlerts, actions, trace
}

func gastroImagingDifferentialPathway(in GastroHepatoInput) (criticalAlerts, imagingRedFlags, clues []string) {
	if in.AbdominalPain && in.HypotensionPresent && in.PortalVenousGasOnCT && in.GastricPneumatosisOnCT {
		criticalAlerts = append(criticalAlerts, "Triada critica (dolor + hipotension + gas portal/neumatosis): sugiere isquemia/necrosis gastrointestinal de mal pronostico.")
		imagingRedFlags = append(imagingRedFlags, "Gas portal periferico asociado a neumatosis gastrica: red flag mayor.")
	} else if in.PortalVenousGasOnCT && in.GastricPneumatosisOnCT {
		imagingRedFlags = append(imagingRedFlags, "Gas portal + neumatosis gastrica: vigilar isquemia intestinal y evolucion hemodinamica.")
	}

	if in.AerobiliaCentralPattern {
		if in.PriorBiliaryInstrumentation {
			clues = append(clues, "Aerobilia central con manipulacion biliar previa: hallazgo esperado post-procedimiento.")
		} else {
			clues = append(clues, "Aerobilia central sin antecedente instrumental: ampliar estudio etiologico.")
		}
	}

	courvoisierPattern := in.PainlessGallbladderDistension && in.CholestaticJaundice &&
		in.BiliaryTreeDilationIntraExtrahepatic
	if courvoisierPattern {
		imagingRedFlags = append(imagingRedFlags, "Signo de Courvoisier: priorizar estudio de obstruccion maligna distal.")
		clues = append(clues, "Patron sugiere tumor pancreatico/colangiocarcinoma distal mas que hepatitis medicamentosa.")
	} else if in.RecentAmoxicillinClavulanate && !in.BiliaryTreeDilationIntraExtrahepatic {
		clues = append(clues, "Colestasis por amoxicilina-clavulanato posible sin dilatacion biliar mecanica.")
	}

	diverticulitisPattern := in.LeftLowerQuadrantPain && in.FeverPresent &&
		in.LeukocytosisPresent && in.CRPElevated &&
		in.CTPericolonicInflammationSigmoidDescending
	if diverticulitisPattern && !in.BowelLoopDilationPresent {
		clues = append(clues, "Perfil compatible con diverticulitis aguda no oclusiva (sigma/colon descendente).")
	} else if diverticulitisPattern && in.BowelLoopDilationPresent {
		criticalAlerts = append(criticalAlerts, "Dolor FII con dilatacion de asas: descartar proceso oclusivo/complicado.")
	}

	if in.HerniaBelowInguinalLigament {
		clues = append(clues, "Hernia crural/femoral: alto riesgo de incarceracion y obstruccion.")
		if in.IntestinalObstructionSigns || in.IncarcerationOrStrangulationSigns {
			criticalAlerts = append(criticalAlerts, "Hernia crural complicada con datos obstructivos: valoracion quirurgica urgente.")
		}
	}
	return criticalAlerts, imagingRedFlags, clues
}

func gastroSurgicalPharmacologyGeneticPathway(in GastroHepatoInput) (surgical, pharmacology, genetic, trace []string) {
	if in.PorcelainGallbladder {
		surgical = append(surgical, "Vesicula en porcelana: indicacion de colecistectomia programada por alto riesgo oncologico.")
		trace = append(trace, "Indicacion quirurgica fuerte por vesicula en porcelana.")
	}

	if in.GallstoneSizeCm != nil && *in.GallstoneSizeCm >= 2.5 {
		surgical = append(surgical, "Calculos >=2.5-3 cm: considerar cirugia segun riesgo individual (evidencia limitada).")
	}
	if in.SymptomaticMicrolithiasis {
		surgical = append(surgical, "Microlitiasis sintomatica: valorar colecistectomia por sintomas.")
	}

	if in.InguinalHerniaRepairPlanned {
		if in.WantsNonMeshTechnique || in.PlannedHerniaTechnique == "shouldice" {
			surgical = append(surgical, "Shouldice: unica tecnica clasica sin malla para hernia inguinal.")
		}
		switch in.PlannedHerniaTechnique {
		case "tep", "tapp", "lichtenstein":
			surgical = append(surgical, "Tecnica planificada con malla (TEP/TAPP/Lichtenstein) segun abordaje.")
		}
	}

	if in.DuodenalAdenocarcinomaNonMetastatic && !in.DuodenalAdenocarcinomaNodalOrMetastatic {
		surgical = append(surgical, "Adenocarcinoma duodenal resecable: considerar duodenopancreatectomia cefalica (Whipple).")
	}

	if in.IBDPatient && in.AzathioprineActive {
		pharmacology = append(pharmacology, "Azatioprina en EII: aumentar vigilancia de cancer cutaneo no melanocitico.")
	}
	if in.IBDPatient && in.InfliximabOrBiologicActive {
		pharmacology = append(pharmacology, "Infliximab/biologico en EII: reforzar cribado de melanoma.")
	}

	if in.ZenkerDiverticulumSuspected {
		surgical = append(surgical, "Diverticulo de Zenker: diverticulo de pulsion por debilidad cricofaringea.")
		if in.OpenZenkerSurgerySelected {
			surgical = append(surgical, "Abordaje abierto de Zenker: via cervical izquierda.")
		}
	}

	if in.GERDPreopEvaluation && !in.EsophagealManometryDone {
		genetic = append(genetic, "ERGE prequirurgico: completar manometria esofagica (gold standard funcional).")
	} else if in.GERDPreopEvaluation && in.EsophagealManometryDone {
		genetic = append(genetic, "Manometria esofagica realizada para planificacion de ERGE.")
	}

	if in.FAPSuspected {
		genetic = append(genetic, "PAF: priorizar estudio de mutacion APC.")
		if in.MandibularOsteomas || in.RetinalPigmentEpitheliumHypertrophy {
			genetic = append(genetic, "Manifestaciones extracolonicas (osteomas mandibulares/epitelio pigmentario retiniano) apoyan PAF.")
		}
		if in.APCMutationPresent != nil && *in.APCMutationPresent {
			genetic = append(genetic, "Mutacion APC confirmada: seguimiento de alto riesgo oncologico.")
		}
	}
	return surgical, pharmacology, genetic, trace
}

func gastroSeverity(criticalAlerts, hemodynamicActions, imagingRedFlags []string) Severity {
	if len(criticalAlerts) > 0 {
		return SeverityCritical
	}
	if len(hemodynamicActions) > 0 || len(imagingRedFlags) > 0 {
		return SeverityHigh
	}
	return SeverityMedium
}

// EvaluateGastroHepato builds the gastro-hepato support recommendation.
func EvaluateGastroHepato(in GastroHepatoInput) GastroHepatoRecommendation {
	criticalVascular, hemodynamicActions, vascularTrace := gastroVascularHemodynamicPathway(in)
	criticalImaging, imagingRedFlags, clues := gastroImagingDifferentialPathway(in)
	surgical, pharmacology, genetic, surgeryTrace := gastroSurgicalPharmacologyGeneticPathway(in)

	criticalAlerts := append(append([]string{}, criticalVascular...), criticalImaging...)
	severity := gastroSeverity(criticalAlerts, hemodynamicActions, imagingRedFlags)
	trace := append(append([]string{}, vascularTrace...), surgeryTrace...)

	return GastroHepatoRecommendation{
		SeverityLevel:             severity,
		CriticalAlerts:            criticalAlerts,
		HemodynamicActions:        hemodynamicActions,
		ImagingRedFlags:           imagingRedFlags,
		DifferentialClues:         clues,
		SurgicalDecisionSupport:   surgical,
		PharmacologySafetyAlerts:  pharmacology,
		FunctionalGeneticGuidance: genetic,
		InterpretabilityTrace:     trace,
		HumanValidationRequired:   true,
		NonDiagnosticWarning:      "Soporte operativo no diagnostico. Requiere validacion de digestivo/cirugia.",
	}
}

func init() {
	register("gastro_hepato", typed((*GastroHepatoInput).Validate, EvaluateGastroHepato))
}
