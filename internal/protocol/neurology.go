package protocol

import "strings"

// Neurology operational engine: SAH and stroke-code pathways, parkinsonism
// differential clues, autoimmune neuromuscular routes, biomarkers and
// advanced decision support.

var neurologyAngiographyResults = map[string]bool{
	"normal": true, "aneurisma_o_malformacion": true, "no_realizada": true,
}

var neurologyLevodopaResponses = map[string]bool{
	"excelente": true, "pobre": true, "desconocida": true,
}

var neurologyFacialPatterns = map[string]bool{
	"ninguno": true, "mitad_inferior": true, "hemicara_completa": true,
}

// NeurologyInput is the clinical-operational input for early neuro decisions.
type NeurologyInput struct {
	SuddenSevereHeadache             bool   `json:"sudden_severe_headache"`
	CranialCTSubarachnoidHyperdensity bool  `json:"cranial_ct_subarachnoid_hyperdensity"`
	PerimesencephalicBleedingPattern bool   `json:"perimesencephalic_bleeding_pattern"`
	CerebralAngiographyResult        string `json:"cerebral_angiography_result"`

	SuspectedStroke           bool     `json:"suspected_stroke"`
	SymptomOnsetKnown         *bool    `json:"symptom_onset_known,omitempty"`
	WakeUpStroke              bool     `json:"wake_up_stroke"`
	HoursSinceSymptomOnset    *float64 `json:"hours_since_symptom_onset,omitempty"`
	CTPerfusionPerformed      bool     `json:"ct_perfusion_performed"`
	SalvageablePenumbraPresent *bool   `json:"salvageable_penumbra_present,omitempty"`
	ASPECTSScore              *int     `json:"aspects_score,omitempty"`

	ParkinsonismSuspected    bool   `json:"parkinsonism_suspected"`
	LevodopaResponse         string `json:"levodopa_response"`
	EarlyFalls               bool   `json:"early_falls"`
	SevereEarlyDysautonomia  bool   `json:"severe_early_dysautonomia"`
	OcularMovementLimitation bool   `json:"ocular_movement_limitation"`
	MIBGCardiacDenervation   *bool  `json:"mibg_cardiac_denervation,omitempty"`
	DaTSCANPresynapticDeficit *bool `json:"datscan_presynaptic_deficit,omitempty"`

	FacialWeaknessPattern string `json:"facial_weakness_pattern"`

	BilateralPressingHeadache  bool `json:"bilateral_pressing_headache"`
	PulsatileUnilateralHeadache bool `json:"pulsatile_unilateral_headache"`
	HeadacheActivityLimitation bool `json:"headache_activity_limitation"`
	NauseaOrVomiting           bool `json:"nausea_or_vomiting"`
	Photophobia                bool `json:"photophobia"`

	RapidlyProgressiveWeakness        bool `json:"rapidly_progressive_weakness"`
	AreflexiaOrHyporeflexia           bool `json:"areflexia_or_hyporeflexia"`
	CSFAlbuminocytologicDissociation  bool `json:"csf_albuminocytologic_dissociation"`
	CorticosteroidsPlanned            bool `json:"corticosteroids_planned"`

	FluctuatingWeakness    bool  `json:"fluctuating_weakness"`
	OcularPtosisOrDiplopia bool  `json:"ocular_ptosis_or_diplopia"`
	PupilsSpared           *bool `json:"pupils_spared,omitempty"`
	MyastheniaSeronegative bool  `json:"myasthenia_seronegative"`

	YoungWoman                   bool `json:"young_woman"`
	AcutePsychiatricSymptoms     bool `json:"acute_psychiatric_symptoms"`
	SeizuresPresent              bool `json:"seizures_present"`
	OrofacialDyskinesias         bool `json:"orofacial_dyskinesias"`
	OvarianTeratomaScreeningDone bool `json:"ovarian_teratoma_screening_done"`

	CSFTauElevated               *bool `json:"csf_tau_elevated,omitempty"`
	CSFBetaAmyloid42Decreased    *bool `json:"csf_beta_amyloid_42_decreased,omitempty"`
	ApoEE4Present                *bool `json:"apoe_e4_present,omitempty"`
	AneurysmOrMalformationSuspected bool `json:"aneurysm_or_malformation_suspected"`

	ProgressiveParaparesis              bool  `json:"progressive_paraparesis"`
	UpperMotorNeuronSigns               bool  `json:"upper_motor_neuron_signs"`
	SphincterDysfunction                bool  `json:"sphincter_dysfunction"`
	WorsensWithCervicalFlexionExtension bool  `json:"worsens_with_cervical_flexion_extension"`
	CervicalMRICompressivePatternT2     *bool `json:"cervical_mri_compressive_pattern_t2,omitempty"`

	DBSCandidateConsidered             bool `json:"dbs_candidate_considered"`
	ParkinsonSymptomsLevodopaResponsive bool `json:"parkinson_symptoms_levodopa_responsive"`
	SevereCognitiveDecline             bool `json:"severe_cognitive_decline"`

	Notes *string `json:"notes,omitempty"`
}

// NeurologyRecommendation is the structured neurology support output.
type NeurologyRecommendation struct {
	SeverityLevel                  Severity `json:"severity_level"`
	VascularLifeThreatAlerts       []string `json:"vascular_life_threat_alerts"`
	ImmediateActions               []string `json:"immediate_actions"`
	StrokeReperfusionPathway       []string `json:"stroke_reperfusion_pathway"`
	DifferentialClues              []string `json:"differential_clues"`
	AutoimmuneNeuromuscularPathway []string `json:"autoimmune_neuromuscular_pathway"`
	BiomarkerGuidance              []string `json:"biomarker_guidance"`
	AdvancedDecisionSupport        []string `json:"advanced_decision_support"`
	ContraindicationAlerts         []string `json:"contraindication_alerts"`
	InterpretabilityTrace          []string `json:"interpretability_trace"`
	HumanValidationRequired        bool     `json:"human_validation_required"`
	NonDiagnosticWarning           string   `json:"non_diagnostic_warning"`
}

func (in *NeurologyInput) Validate() error {
	if in.CerebralAngiographyResult == "" {
		in.CerebralAngiographyResult = "no_realizada"
	}
	if !neurologyAngiographyResults[in.CerebralAngiographyResult] {
		return invalidf("cerebral_angiography_result", "unknown value %q", in.CerebralAngiographyResult)
	}
	if err := inRangeF("hours_since_symptom_onset", in.HoursSinceSymptomOnset, 0, 240); err != nil {
		return err
	}
	if err := inRangeI("aspects_score", in.ASPECTSScore, 0, 10); err != nil {
		return err
	}
	if in.LevodopaResponse == "" {
		in.LevodopaResponse = "desconocida"
	}
	if !neurologyLevodopaResponses[in.LevodopaResponse] {
		return invalidf("levodopa_response", "unknown value %q", in.LevodopaResponse)
	}
	if in.FacialWeaknessPattern == "" {
		in.FacialWeaknessPattern = "ninguno"
	}
	if !neurologyFacialPatterns[in.FacialWeaknessPattern] {
		return invalidf("facial_weakness_pattern", "unknown value %q", in.FacialWeaknessPattern)
	}
	return validateNotes("notes", in.Notes)
}

func neurologyVascularPathway(in NeurologyInput) (alerts, actions, strokePathway, trace []string) {
	if in.SuddenSevereHeadache {
		alerts = append(alerts, "Cefalea brusca: descartar hemorragia subaracnoidea de forma inmediata.")
		actions = append(actions, "Priorizar TAC craneal urgente ante cefalea de inicio brusco.")
		trace = append(trace, "Disparador HSA activado por cefalea brusca.")
	}
	if in.CranialCTSubarachnoidHyperdensity {
		alerts = append(alerts, "TAC con hiperdensidad subaracnoidea: alta sospecha de HSA.")
		actions = append(actions, "Activar circuito neurovascular/neuroquirurgico urgente.")
		trace = append(trace, "Imagen compatible con sangrado subaracnoideo.")
	}
	if in.PerimesencephalicBleedingPattern {
		actions = append(actions, "Patron perimesencefalico (~10% de HSA): considerar origen no aneurismatico de mejor pronostico.")
		trace = append(trace, "Fenotipo perimesencefalico detectado.")
		if in.CerebralAngiographyResult == "normal" {
			actions = append(actions, "Angiografia normal con patron perimesencefalico: curso tipicamente benigno.")
		}
	}
	if in.AneurysmOrMalformationSuspected {
		actions = append(actions, "Si sospecha de aneurisma/malformacion, recordar angiografia cerebral como patron oro.")
		trace = append(trace, "Regla de gold standard vascular aplicada.")
	}

	if in.SuspectedStroke {
		strokePathway = append(strokePathway, "Sospecha de ictus: activar codigo ictus inmediato.")
		trace = append(trace, "Codigo ictus activado.")

		onsetKnown := in.SymptomOnsetKnown == nil || *in.SymptomOnsetKnown
		unknownOnset := in.WakeUpStroke || !onsetKnown || in.HoursSinceSymptomOnset == nil
		if unknownOnset {
			strokePathway = append(strokePathway, "Inicio desconocido/wake-up stroke: priorizar TAC perfusion para penumbra.")
			if in.CTPerfusionPerformed && in.SalvageablePenumbraPresent != nil {
				if *in.SalvageablePenumbraPresent {
					strokePathway = append(strokePathway, "Penumbra salvable en inicio desconocido: valorar trombectomia hasta 24 h.")
				} else {
					strokePathway = append(strokePathway, "Perfusion sin penumbra salvable: reevaluar beneficio de reperfusion invasiva.")
				}
			}
			trace = append(trace, "Ruta de inicio desconocido activada.")
		} else {
			hours := *in.HoursSinceSymptomOnset
			switch {
			case hours <= 4.5:
				strokePathway = append(strokePathway, "Ventana <=4.5 h: valorar fibrinolisis con alteplasa segun criterios.")
				trace = append(trace, "Ventana de fibrinolisis potencialmente abierta.")
			case hours <= 24:
				if in.CTPerfusionPerformed && in.SalvageablePenumbraPresent != nil && *in.SalvageablePenumbraPresent {
					strokePathway = append(strokePathway, "Hasta 24 h con penumbra salvable: valorar trombectomia mecanica.")
					trace = append(trace, "Trombectomia tardia sustentada por perfusion con penumbra.")
				} else {
					strokePathway = append(strokePathway, "Fuera de fibrinolisis: completar imagen de perfusion para seleccion de trombectomia.")
				}
			default:
				strokePathway = append(strokePathway, "Tiempo de evolucion >24 h: individualizar segun imagen y clinica.")
			}
		}

		if in.ASPECTSScore != nil {
			if *in.ASPECTSScore >= 8 {
				strokePathway = append(strokePathway, "ASPECTS alto (8-10): poca isquemia establecida, favorecer estrategia de reperfusion.")
				trace = append(trace, "ASPECTS alto favorece tratamiento activo.")
			} else if *in.ASPECTSScore <= 5 {
				strokePathway = append(strokePathway, "ASPECTS bajo: alta carga isquemica, reevaluar balance riesgo-beneficio.")
			}
		}
	}
	return alerts, actions, strokePathway, trace
}

func neurologyDifferentialClues(in NeurologyInput) (clues, trace []string) {
	if in.ParkinsonismSuspected {
		atypical := in.LevodopaResponse == "pobre" || in.EarlyFalls ||
			in.SevereEarlyDysautonomia || in.OcularMovementLimitation
		if in.LevodopaResponse == "excelente" &&
			in.MIBGCardiacDenervation != nil && *in.MIBGCardiacDenervation && !atypical {
			clues = append(clues, "Perfil compatible con Parkinson (respuesta a levodopa + MIBG desinervado).")
			trace = append(trace, "Regla de apoyo a Parkinson clasico activada.")
		}
		if atypical {
			clues = append(clues, "Red flags de parkinsonismo atipico: respuesta pobre a levodopa, caidas precoces, disautonomia grave o paresia ocular.")
			trace = append(trace, "Red flags de parkinsonismo atipico detectadas.")
		}
		if in.DaTSCANPresynapticDeficit != nil && *in.DaTSCANPresynapticDeficit {
			clues = append(clues, "DaTSCAN alterado confirma via nigroestriada, pero no diferencia Parkinson vs parkinsonismos atipicos.")
		}
	}

	switch in.FacialWeaknessPattern {
	case "mitad_inferior":
		clues = append(clues, "Paralisis facial de mitad inferior: orienta a origen central supranuclear.")
		trace = append(trace, "Mapa facial sugiere lesion central.")
	case "hemicara_completa":
		clues = append(clues, "Paralisis facial de hemicara completa: orienta a origen periferico.")
		trace = append(trace, "Mapa facial sugiere lesion periferica.")
	}

	if in.BilateralPressingHeadache && !in.HeadacheActivityLimitation {
		clues = append(clues, "Patron compatible con cefalea tensional (bilateral, opresiva, funcional).")
	}
	if in.PulsatileUnilateralHeadache && in.HeadacheActivityLimitation &&
		(in.NauseaOrVomiting || in.Photophobia) {
		clues = append(clues, "Patron compatible con migrana (unilateral pulsatil y sintomas asociados).")
	}
	return clues, trace
}

func neurologyAutoimmunePathway(in NeurologyInput) (pathway, contraindications, trace []string) {
	gbsSuspected := in.RapidlyProgressiveWeakness && in.AreflexiaOrHyporeflexia
	if gbsSuspected {
		pathway = append(pathway, "SGB probable: debilidad progresiva + arreflexia/hiporreflexia, vigilar progresion.")
		trace = append(trace, "Criterio clinico de SGB activado.")
		if in.CSFAlbuminocytologicDissociation {
			pathway = append(pathway, "LCR con disociacion albumino-citologica apoya SGB.")
		}
		if in.CorticosteroidsPlanned {
			contraindications = append(contraindications, "SGB: corticoides contraindicados; reevaluar plan terapeutico.")
			trace = append(trace, "Alerta de seguridad por corticoides en SGB.")
		}
	}

	if in.FluctuatingWeakness && in.OcularPtosisOrDiplopia {
		pathway = append(pathway, "Miastenia gravis probable: debilidad fluctuante con predominio ocular.")
		if in.PupilsSpared == nil || *in.PupilsSpared {
			pathway = append(pathway, "Respeta pupila: dato semiologico compatible con miastenia.")
		}
		if in.MyastheniaSeronegative {
			pathway = append(pathway, "Miastenia seronegativa: puede tener respuesta terapeutica menos predecible.")
		}
		trace = append(trace, "Perfil clinico de miastenia detectado.")
	}

	if in.YoungWoman && in.AcutePsychiatricSymptoms && in.SeizuresPresent && in.OrofacialDyskinesias {
		pathway = append(pathway, "Perfil compatible con encefalitis anti-NMDA: combinar manejo neurologico y psiquiatrico.")
		if !in.OvarianTeratomaScreeningDone {
			pathway = append(pathway, "Realizar busqueda obligatoria de teratoma ovarico asociado.")
		}
		trace = append(trace, "Disparador anti-NMDA activado por fenotipo clinico completo.")
	}
	return pathway, contraindications, trace
}

func neurologyBiomarkerGuidance(in NeurologyInput) (guidance, trace []string) {
	if in.CSFTauElevated != nil && *in.CSFTauElevated &&
		in.CSFBetaAmyloid42Decreased != nil && *in.CSFBetaAmyloid42Decreased {
		guidance = append(guidance, "Perfil LCR (Tau alta + beta-amiloide42 baja) compatible con Alzheimer temprano.")
		trace = append(trace, "Regla de biomarcadores de Alzheimer activada.")
	}
	if in.ApoEE4Present != nil && *in.ApoEE4Present {
		guidance = append(guidance, "ApoE4 es factor de riesgo, pero no establece diagnostico por si solo.")
	}
	if in.AneurysmOrMalformationSuspected {
		guidance = append(guidance, "Angiografia/arteriografia cerebral mantiene rol de patron oro en aneurismas/MAV.")
	}
	if in.DaTSCANPresynapticDeficit != nil && *in.DaTSCANPresynapticDeficit {
		guidance = append(guidance, "DaTSCAN alterado indica via nigroestriada afectada sin diferenciar subtipo.")
	}
	return guidance, trace
}

func neurologyAdvancedSupport(in NeurologyInput) (support, trace []string) {
	if in.DBSCandidateConsidered {
		if in.ParkinsonSymptomsLevodopaResponsive && !in.SevereCognitiveDecline {
			support = append(support, "DBS (nucleo subtalamico) potencialmente util en sintomas levodopa-responsivos.")
			trace = append(trace, "DBS favorecida por respuesta a levodopa sin deterioro cognitivo grave.")
		}
		if in.SevereCognitiveDecline {
			support = append(support, "DBS no indicada para deterioro cognitivo no respondedor a levodopa.")
		}
	}

	if in.ProgressiveParaparesis && in.UpperMotorNeuronSigns {
		support = append(support, "Paraparesia progresiva con signos de 1a motoneurona: priorizar RM cervical.")
		if in.SphincterDysfunction {
			support = append(support, "Compromiso esfinteriano refuerza sospecha de mielopatia compresiva.")
		}
		if in.WorsensWithCervicalFlexionExtension {
			support = append(support, "Empeoramiento con flexo-extension cervical sugiere compresion mecanica.")
		}
		if in.CervicalMRICompressivePatternT2 != nil && *in.CervicalMRICompressivePatternT2 {
			support = append(support, "RM cervical con patron compresivo: valorar descompresion segun neurocirugia.")
		}
		trace = append(trace, "Ruta de mielopatia cervical compresiva activada.")
	}
	return support, trace
}

func neurologySeverity(vascularAlerts, strokePathway, contraindications, autoimmune []string) Severity {
	if len(vascularAlerts) > 0 || len(contraindications) > 0 {
		return SeverityCritical
	}
	for _, item := range strokePathway {
		if strings.Contains(strings.ToLower(item), "codigo ictus") {
			return SeverityHigh
		}
	}
	if len(autoimmune) > 0 {
		return SeverityHigh
	}
	return SeverityMedium
}

// EvaluateNeurology builds the neurology support recommendation.
func EvaluateNeurology(in NeurologyInput) NeurologyRecommendation {
	vascularAlerts, immediateActions, strokePathway, vascularTrace := neurologyVascularPathway(in)
	clues, differentialTrace := neurologyDifferentialClues(in)
	autoimmune, contraindications, autoimmuneTrace := neurologyAutoimmunePathway(in)
	biomarkers, biomarkerTrace := neurologyBiomarkerGuidance(in)
	advanced, advancedTrace := neurologyAdvancedSupport(in)

	severity := neurologySeverity(vascularAlerts, strokePathway, contraindications, autoimmune)

	trace := make([]string, 0)
	for _, part := range [][]string{vascularTrace, differentialTrace, autoimmuneTrace, biomarkerTrace, advancedTrace} {
		trace = append(trace, part...)
	}

	return NeurologyRecommendation{
		SeverityLevel:                  severity,
		VascularLifeThreatAlerts:       vascularAlerts,
		ImmediateActions:               immediateActions,
		StrokeReperfusionPathway:       strokePathway,
		DifferentialClues:              clues,
		AutoimmuneNeuromuscularPathway: autoimmune,
		BiomarkerGuidance:              biomarkers,
		AdvancedDecisionSupport:        advanced,
		ContraindicationAlerts:         contraindications,
		InterpretabilityTrace:          trace,
		HumanValidationRequired:        true,
		NonDiagnosticWarning:           "Soporte operativo no diagnostico. Requiere validacion neurologica/neuroquirurgica.",
	}
}

func init() {
	register("neurology", typed((*NeurologyInput).Validate, EvaluateNeurology))
}
