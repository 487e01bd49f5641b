package protocol

import "strings"

// Pneumology operational engine: imaging pattern reading, ventilatory control
// assessment, COPD/asthma escalation, BAL support findings and interventional
// risk checks.

// PneumologyInput is the clinical-operational input for pneumologic
// prioritization in the emergency department.
type PneumologyInput struct {
	CTPeripheralSubpleuralConsolidation bool `json:"ct_peripheral_subpleural_consolidation"`
	AirBronchogramPresent               bool `json:"air_bronchogram_present"`
	CentrilobularUpperLobeNodules       bool `json:"centrilobular_upper_lobe_nodules"`
	InterstitialPatternPredominant      bool `json:"interstitial_pattern_predominant"`
	SmokerActiveOrHistory               bool `json:"smoker_active_or_history"`
	ObstructiveLesionSigns              bool `json:"obstructive_lesion_signs"`
	SignificantVolumeLossSigns          bool `json:"significant_volume_loss_signs"`

	PO2LowDetected              bool `json:"po2_low_detected"`
	PCO2HighDetected            bool `json:"pco2_high_detected"`
	RespiratoryAcidosisPresent  bool `json:"respiratory_acidosis_present"`
	ChronicHypercapniaDays      *int `json:"chronic_hypercapnia_days,omitempty"`
	RenalCompensationEvidence   bool `json:"renal_compensation_evidence"`

	HemoptysisPresent            bool `json:"hemoptysis_present"`
	KnownBronchiectasis          bool `json:"known_bronchiectasis"`
	BibasalVelcroCracklesPresent bool `json:"bibasal_velcro_crackles_present"`
	DigitalClubbingPresent       bool `json:"digital_clubbing_present"`
	ReducedBreathSoundsPresent   bool `json:"reduced_breath_sounds_present"`
	WheezePresent                bool `json:"wheeze_present"`

	COPDDiagnosed                 bool `json:"copd_diagnosed"`
	PersistentFrequentExacerbator bool `json:"persistent_frequent_exacerbator"`
	FrequentHospitalizations      bool `json:"frequent_hospitalizations"`
	OnLABALAMA                    bool `json:"on_laba_lama"`
	OnLABAICSWithoutLAMA          bool `json:"on_laba_ics_without_lama"`
	EosinophilsPerUl              *int `json:"eosinophils_per_ul,omitempty"`

	SevereAsthma                      bool    `json:"severe_asthma"`
	EosinophilicPhenotype             bool    `json:"eosinophilic_phenotype"`
	ChronicRhinosinusitisWithPolyposis bool   `json:"chronic_rhinosinusitis_with_polyposis"`
	AllergicAsthmaPhenotype           bool    `json:"allergic_asthma_phenotype"`
	BiologicPlanned                   *string `json:"biologic_planned,omitempty"`

	BALPerformed                         bool `json:"bal_performed"`
	BALPASPositiveLipoproteins           bool `json:"bal_pas_positive_lipoproteins"`
	BALClearsWithSerialLavage            bool `json:"bal_clears_with_serial_lavage"`
	SarcoidosisSuspected                 bool `json:"sarcoidosis_suspected"`
	BALCD4CD8High                        bool `json:"bal_cd4_cd8_high"`
	HypersensitivityPneumonitisSuspected bool `json:"hypersensitivity_pneumonitis_suspected"`
	BALLymphocytosisPresent              bool `json:"bal_lymphocytosis_present"`

	SolitaryNoduleMalignancySuspected bool     `json:"solitary_nodule_malignancy_suspected"`
	PETPositive                       bool     `json:"pet_positive"`
	VO2MaxMlKgMin                     *float64 `json:"vo2max_ml_kg_min,omitempty"`
	SurgeryPlanned                    bool     `json:"surgery_planned"`
	BiopsyHighRisk                    bool     `json:"biopsy_high_risk"`

	Notes *string `json:"notes,omitempty"`
}

// PneumologyRecommendation is the structured pneumology support output.
type PneumologyRecommendation struct {
	SeverityLevel                Severity `json:"severity_level"`
	CriticalAlerts               []string `json:"critical_alerts"`
	ImagingAssessment            []string `json:"imaging_assessment"`
	VentilatoryControlAssessment []string `json:"ventilatory_control_assessment"`
	DiagnosticActions            []string `json:"diagnostic_actions"`
	TherapeuticActions           []string `json:"therapeutic_actions"`
	BiologicStrategy             []string `json:"biologic_strategy"`
	ProceduralSafetyAlerts       []string `json:"procedural_safety_alerts"`
	InterpretabilityTrace        []string `json:"interpretability_trace"`
	HumanValidationRequired      bool     `json:"human_validation_required"`
	NonDiagnosticWarning         string   `json:"non_diagnostic_warning"`
}

func (in *PneumologyInput) Validate() error {
	if err := inRangeI("chronic_hypercapnia_days", in.ChronicHypercapniaDays, 0, 60); err != nil {
		return err
	}
	if err := inRangeI("eosinophils_per_ul", in.EosinophilsPerUl, 0, 5000); err != nil {
		return err
	}
	if in.BiologicPlanned != nil && len(*in.BiologicPlanned) > 60 {
		return invalidf("biologic_planned", "must be at most 60 characters")
	}
	if err := inRangeF("vo2max_ml_kg_min", in.VO2MaxMlKgMin, 0, 80); err != nil {
		return err
	}
	return validateNotes("notes", in.Notes)
}

func pneumoImagingPathway(in PneumologyInput) (imaging, diagnostic, trace []string) {
	if in.CTPeripheralSubpleuralConsolidation && in.AirBronchogramPresent {
		imaging = append(imaging, "Patron de consolidacion periferica/subpleural con broncograma aereo: compatible con NOC.")
		trace = append(trace, "Regla de NOC por patron consolidativo periferico activada.")
	}

	if in.CentrilobularUpperLobeNodules && in.SmokerActiveOrHistory {
		imaging = append(imaging, "Nodulos centrilobulillares en lobulos superiores en fumador: sugieren bronquiolitis respiratoria.")
	}

	if in.InterstitialPatternPredominant {
		imaging = append(imaging, "Patron intersticial predominante: considerar neumonia intersticial inespecifica.")
	}

	if !in.ObstructiveLesionSigns && !in.SignificantVolumeLossSigns {
		imaging = append(imaging, "Atelectasia menos probable por ausencia de signos de obstruccion o perdida de volumen relevante.")
		trace = append(trace, "Regla de descarte operativo de atelectasia aplicada.")
	} else {
		diagnostic = append(diagnostic, "Completar estudio de atelectasia (obstruccion endobronquial y perdida de volumen).")
	}
	return imaging, diagnostic, trace
}

func pneumoVentilatoryPathway(in PneumologyInput) (ventilatory, therapeutic, trace []string) {
	if in.PO2LowDetected {
		ventilatory = append(ventilatory, "Hipoxemia: predominio de activacion por quimiorreceptores perifericos (carotideos/aorticos).")
	}
	if in.PCO2HighDetected || in.RespiratoryAcidosisPresent {
		ventilatory = append(ventilatory, "Hipercapnia/acidosis respiratoria: predominio de respuesta en quimiorreceptores centrales.")
	}

	if in.PCO2HighDetected && in.RespiratoryAcidosisPresent {
		therapeutic = append(therapeutic, "Preferir BiPAP para soporte ventilatorio en insuficiencia hipercapnica/acidosis respiratoria.")
		trace = append(trace, "Regla BiPAP activada por hipercapnia con acidosis.")
	} else if in.PO2LowDetected && !in.PCO2HighDetected {
		therapeutic = append(therapeutic, "Priorizar estrategia de oxigenacion (CPAP/oxigenoterapia) en insuficiencia hipoxemica sin hipercapnia.")
	}

	if in.ChronicHypercapniaDays != nil && *in.ChronicHypercapniaDays >= 2 {
		ventilatory = append(ventilatory, "Con hipercapnia sostenida por dias, la respuesta ventilatoria al CO2 se atenúa por compensacion progresiva.")
		if in.RenalCompensationEvidence {
			trace = append(trace, "Atenuacion de respuesta al CO2 reforzada por compensacion renal.")
		}
	}
	return ventilatory, therapeutic, trace
}

func pneumoPhysicalExamPathway(in PneumologyInput) (diagnostic, safetyAlerts, trace []string) {
	if in.HemoptysisPresent {
		if in.KnownBronchiectasis {
			diagnostic = append(diagnostic, "Hemoptisis con bronquiectasias conocidas: priorizarlas como causa frecuente.")
		} else {
			diagnostic = append(diagnostic, "Hemoptisis sin etiologia definida: descartar bronquiectasias y otras causas.")
		}
	}

	if in.BibasalVelcroCracklesPresent || in.DigitalClubbingPresent || in.ReducedBreathSoundsPresent {
		diagnostic = append(diagnostic, "Perfil de EPID/fibrosis (crepitantes tipo Velcro, acropaquias, murmullo vesicular disminuido).")
	}

	if in.WheezePresent && (in.BibasalVelcroCracklesPresent || in.DigitalClubbingPresent) {
		safetyAlerts = append(safetyAlerts, "Sibilancias en contexto fibrosante: hallazgo menos tipico, revisar diferencial bronquial (asma/EPOC).")
		trace = append(trace, "Red flag de diferencial fibrosis vs arbol bronquial activada.")
	}
	return diagnostic, safetyAlerts, trace
}

func pneumoCOPDAsthmaPathway(in PneumologyInput) (therapeutic, biologicStrategy, safetyAlerts, trace []string) {
	if in.COPDDiagnosed && in.OnLABALAMA &&
		(in.PersistentFrequentExacerbator || in.FrequentHospitalizations) {
		if in.EosinophilsPerUl != nil && *in.EosinophilsPerUl > 100 {
			therapeutic = append(therapeutic, "EPOC agudizador con eosinofilos >100/uL pese a LABA+LAMA: escalar a triple terapia (LAMA+LABA+corticoide inhalado).")
			trace = append(trace, "Escalada GOLD a triple terapia activada.")
		} else {
			therapeutic = append(therapeutic, "EPOC agudizador persistente con eosinofilos no favorables: revalorar fenotipo y causas de exacerbacion.")
		}
	}

	if in.COPDDiagnosed && in.OnLABAICSWithoutLAMA {
		safetyAlerts = append(safetyAlerts, "En EPOC no se recomienda LABA+corticoide inhalado como paso inicial/preferente sin LAMA.")
	}

	if in.SevereAsthma && in.EosinophilicPhenotype {
		if in.ChronicRhinosinusitisWithPolyposis {
			biologicStrategy = append(biologicStrategy, "Fenotipo eosinofilico con poliposis nasal: priorizar mepolizumab.")
		} else {
			biologicStrategy = append(biologicStrategy, "Fenotipo eosinofilico sin poliposis predominante: considerar benralizumab.")
		}
	}
	if in.SevereAsthma && in.AllergicAsthmaPhenotype {
		biologicStrategy = append(biologicStrategy, "Fenotipo alergico mediado por IgE: considerar omalizumab.")
	}

	planned := ""
	if in.BiologicPlanned != nil {
		planned = strings.ToLower(strings.TrimSpace(*in.BiologicPlanned))
	}
	if planned != "" && len(biologicStrategy) > 0 {
		if strings.Contains(planned, "mepolizumab") && !in.ChronicRhinosinusitisWithPolyposis {
			safetyAlerts = append(safetyAlerts, "Biologico planificado no alineado con fenotipo dominante; revisar seleccion en comite de asma grave.")
		}
		if strings.Contains(planned, "omalizumab") && !in.AllergicAsthmaPhenotype {
			safetyAlerts = append(safetyAlerts, "Omalizumab planificado sin fenotipo alergico claro; revisar indicacion.")
		}
	}
	return therapeutic, biologicStrategy, safetyAlerts, trace
}

func pneumoBALInterventionalPathway(in PneumologyInput) (criticalAlerts, diagnostic, therapeutic, safetyAlerts []string) {
	if in.BALPerformed && in.BALPASPositiveLipoproteins && in.BALClearsWithSerialLavage {
		diagnostic = append(diagnostic, "LBA compatible con proteinosis alveolar (material lipoproteico PAS+ y aclaramiento con lavados sucesivos).")
	}

	if in.SarcoidosisSuspected && in.BALCD4CD8High {
		diagnostic = append(diagnostic, "LBA con CD4/CD8 alto: hallazgo de apoyo en sarcoidosis (requiere confirmacion adicional).")
		safetyAlerts = append(safetyAlerts, "En sarcoidosis, el LBA es de apoyo: confirmar con biopsia/criterios integrados.")
	}

	if in.HypersensitivityPneumonitisSuspected && in.BALLymphocytosisPresent {
		diagnostic = append(diagnostic, "LBA con celularidad compatible con neumonitis por hipersensibilidad (hallazgo de apoyo).")
		safetyAlerts = append(safetyAlerts, "En neumonitis por hipersensibilidad, confirmar con radiologia/IgG especificas.")
	}

	if in.SolitaryNoduleMalignancySuspected && in.PETPositive {
		if in.VO2MaxMlKgMin != nil && *in.VO2MaxMlKgMin < 10 {
			criticalAlerts = append(criticalAlerts, "Funcion pulmonar deteriorada (VO2 max < 10 ml/kg/min): cirugia no recomendable.")
			therapeutic = append(therapeutic, "En nodulo sospechoso con alto riesgo operatorio, priorizar radioterapia.")
			if in.SurgeryPlanned {
				safetyAlerts = append(safetyAlerts, "Evitar lobectomia en VO2 max por debajo del umbral de seguridad.")
			}
		} else if in.SurgeryPlanned {
			therapeutic = append(therapeutic, "Si riesgo funcional aceptable, la cirugia sigue siendo estandar en nodulo con alta sospecha de malignidad.")
		} else {
			diagnostic = append(diagnostic, "Completar estratificacion funcional para definir cirugia vs alternativa.")
		}

		if in.BiopsyHighRisk {
			therapeutic = append(therapeutic, "Con alto riesgo de biopsia y perfil funcional limite, valorar estrategia no invasiva consensuada.")
		}
	}
	return criticalAlerts, diagnostic, therapeutic, safetyAlerts
}

func pneumoSeverity(criticalAlerts, safetyAlerts []string) Severity {
	if len(criticalAlerts) > 0 {
		return SeverityCritical
	}
	if len(safetyAlerts) > 0 {
		return SeverityHigh
	}
	return SeverityMedium
}

// EvaluatePneumology builds the pneumology support recommendation.
func EvaluatePneumology(in PneumologyInput) PneumologyRecommendation {
	imaging, diagnosticImaging, traceImaging := pneumoImagingPathway(in)
	ventilatory, therapeuticVent, traceVent := pneumoVentilatoryPathway(in)
	diagnosticExam, safetyExam, traceExam := pneumoPhysicalExamPathway(in)
	therapeuticCOPD, biologicStrategy, safetyCOPD, traceCOPD := pneumoCOPDAsthmaPathway(in)
	criticalLBA, diagnosticLBA, therapeuticLBA, safetyLBA := pneumoBALInterventionalPathway(in)

	diagnostic := append(append(append([]string{}, diagnosticImaging...), diagnosticExam...), diagnosticLBA...)
	therapeutic := append(append(append([]string{}, therapeuticVent...), therapeuticCOPD...), therapeuticLBA...)
	safetyAlerts := append(append(append([]string{}, safetyExam...), safetyCOPD...), safetyLBA...)
	trace := append(append(append(append([]string{}, traceImaging...), traceVent...), traceExam...), traceCOPD...)

	return PneumologyRecommendation{
		SeverityLevel:                pneumoSeverity(criticalLBA, safetyAlerts),
		CriticalAlerts:               criticalLBA,
		ImagingAssessment:            imaging,
		VentilatoryControlAssessment: ventilatory,
		DiagnosticActions:            diagnostic,
		TherapeuticActions:           therapeutic,
		BiologicStrategy:             biologicStrategy,
		ProceduralSafetyAlerts:       safetyAlerts,
		InterpretabilityTrace:        trace,
		HumanValidationRequired:      true,
		NonDiagnosticWarning:         "Soporte operativo no diagnostico. Requiere validacion por neumologia/equipo de urgencias.",
	}
}

func init() {
	register("pneumology", typed((*PneumologyInput).Validate, EvaluatePneumology))
}
