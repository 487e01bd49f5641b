package protocol

// Rheum-immuno operational engine: vital-risk routes (PE in lupus, digital
// ischemia, temporal arteritis), diagnostic workflows, imaging screening and
// maternal-fetal domains.

// RheumImmunoInput is the clinical-operational input for early rheumatologic
// and immunologic decisions.
type RheumImmunoInput struct {
	LupusKnown            bool `json:"lupus_known"`
	NewUnexplainedDyspnea bool `json:"new_unexplained_dyspnea"`
	PriorAPTTProlonged    bool `json:"prior_aptt_prolonged"`

	SystemicSclerosisKnown      bool `json:"systemic_sclerosis_known"`
	RaynaudPhenomenonActive     bool `json:"raynaud_phenomenon_active"`
	ActiveDigitalIschemicUlcers bool `json:"active_digital_ischemic_ulcers"`

	GiantCellArteritisSuspected bool     `json:"giant_cell_arteritis_suspected"`
	ESRmmH                      *float64 `json:"esr_mm_h,omitempty"`

	ProximalSymmetricWeakness    bool `json:"proximal_symmetric_weakness"`
	MyalgiaProminent             bool `json:"myalgia_prominent"`
	AntiMDA5Positive             bool `json:"anti_mda5_positive"`
	InterstitialLungDiseaseSigns bool `json:"interstitial_lung_disease_signs"`

	RecurrentOralAphthae          bool `json:"recurrent_oral_aphthae"`
	OcularInflammationOrUveitis   bool `json:"ocular_inflammation_or_uveitis"`
	ErythemaNodosumPresent        bool `json:"erythema_nodosum_present"`
	CerebralParenchymalInvolvement bool `json:"cerebral_parenchymal_involvement"`
	CyclosporinePlanned           bool `json:"cyclosporine_planned"`

	ElderlyMaleWithAcuteMonoarthritis  bool `json:"elderly_male_with_acute_monoarthritis"`
	IntercurrentTriggerPresent         bool `json:"intercurrent_trigger_present"`
	WristXrayChondrocalcinosis         bool `json:"wrist_xray_chondrocalcinosis"`
	KneeXrayChondrocalcinosis          bool `json:"knee_xray_chondrocalcinosis"`
	PubicSymphysisXrayChondrocalcinosis bool `json:"pubic_symphysis_xray_chondrocalcinosis"`

	YoungMaleWithInflammatoryBackPain bool `json:"young_male_with_inflammatory_back_pain"`
	SacroiliitisOnImaging             bool `json:"sacroiliitis_on_imaging"`
	PeripheralJointInvolvement        bool `json:"peripheral_joint_involvement"`

	PregnancyOngoing                  bool `json:"pregnancy_ongoing"`
	AntiRoPositive                    bool `json:"anti_ro_positive"`
	AntiLaPositive                    bool `json:"anti_la_positive"`
	FetalConductionOrMyocardialRisk   bool `json:"fetal_conduction_or_myocardial_risk"`
	FluorinatedCorticosteroidsStarted bool `json:"fluorinated_corticosteroids_started"`
	AntiDesmoglein3Positive           bool `json:"anti_desmoglein3_positive"`
	AntiAcetylcholineReceptorPositive bool `json:"anti_acetylcholine_receptor_positive"`

	IgG4RelatedDiseaseSuspected   bool `json:"igg4_related_disease_suspected"`
	IgG4LymphoplasmacyticInfiltrate bool `json:"igg4_lymphoplasmacytic_infiltrate"`
	IgG4ObliterativePhlebitis     bool `json:"igg4_obliterative_phlebitis"`
	IgG4StoriformFibrosis         bool `json:"igg4_storiform_fibrosis"`

	APSClinicalEventPresent       bool `json:"aps_clinical_event_present"`
	APSLaboratoryCriterionPresent bool `json:"aps_laboratory_criterion_present"`
	ThrombocytopeniaPresent       bool `json:"thrombocytopenia_present"`

	Notes *string `json:"notes,omitempty"`
}

// RheumImmunoRecommendation is the structured rheum-immuno support output.
type RheumImmunoRecommendation struct {
	SeverityLevel           Severity `json:"severity_level"`
	CriticalAlerts          []string `json:"critical_alerts"`
	DiagnosticActions       []string `json:"diagnostic_actions"`
	TherapeuticActions      []string `json:"therapeutic_actions"`
	SafetyAlerts            []string `json:"safety_alerts"`
	ImagingScreeningActions []string `json:"imaging_screening_actions"`
	MaternalFetalActions    []string `json:"maternal_fetal_actions"`
	DataModelFlags          []string `json:"data_model_flags"`
	InterpretabilityTrace   []string `json:"interpretability_trace"`
	HumanValidationRequired bool     `json:"human_validation_required"`
	NonDiagnosticWarning    string   `json:"non_diagnostic_warning"`
}

func (in *RheumImmunoInput) Validate() error {
	if err := inRangeF("esr_mm_h", in.ESRmmH, 0, 200); err != nil {
		return err
	}
	return validateNotes("notes", in.Notes)
}

func rheumVitalRiskPathway(in RheumImmunoInput) (criticalAlerts, diagnostic, therapeutic, trace []string) {
	if in.LupusKnown && in.NewUnexplainedDyspnea {
		criticalAlerts = append(criticalAlerts, "LES + disnea inexplicable: priorizar descarte de tromboembolismo pulmonar (TEP).")
		diagnostic = append(diagnostic, "Solicitar Dimero D inmediato como primer paso de estratificacion.")
		trace = append(trace, "Disparador de TEP en LES activado.")
		if in.PriorAPTTProlonged {
			criticalAlerts = append(criticalAlerts, "TTPa prolongado previo compatible con anticoagulante lupico: mayor riesgo trombotico.")
		}
	}

	if in.SystemicSclerosisKnown && in.RaynaudPhenomenonActive && in.ActiveDigitalIschemicUlcers {
		criticalAlerts = append(criticalAlerts, "Isquemia digital critica en esclerosis sistemica: riesgo de perdida tisular.")
		therapeutic = append(therapeutic, "Priorizar prostaglandinas intravenosas en ulceras isquemicas activas.")
		therapeutic = append(therapeutic, "Calcioantagonistas o inhibidores PDE5 para control/prevision de Raynaud.")
		trace = append(trace, "Ruta de isquemia digital critica activada.")
	}

	if in.GiantCellArteritisSuspected && in.ESRmmH != nil {
		if *in.ESRmmH <= 20 {
			diagnostic = append(diagnostic, "VSG normal en urgencias: arteritis temporal menos probable.")
			trace = append(trace, "Criterio de exclusion operativa para arteritis temporal aplicado.")
		} else {
			criticalAlerts = append(criticalAlerts, "VSG elevada con sospecha de arteritis temporal: mantener via rapida diagnostica.")
		}
	}
	return criticalAlerts, diagnostic, therapeutic, trace
}

func rheumDiagnosticWorkflows(in RheumImmunoInput) (diagnostic, therapeutic, safetyAlerts, trace []string) {
	if in.ProximalSymmetricWeakness {
		diagnostic = append(diagnostic, "Debilidad proximal simetrica: orientar estudio a miopatia inflamatoria.")
		trace = append(trace, "Patron clinico de miopatia inflamatoria detectado.")
	}
	if in.MyalgiaProminent && !in.ProximalSymmetricWeakness {
		diagnostic = append(diagnostic, "Mialgia aislada sin perdida de fuerza: reevaluar diferencial no miopatico.")
	}
	if in.AntiMDA5Positive {
		safetyAlerts = append(safetyAlerts, "Anti-MDA5 positivo: activar vigilancia estrecha de EPI agresiva.")
		if in.InterstitialLungDiseaseSigns {
			safetyAlerts = append(safetyAlerts, "Anti-MDA5 + signos de afectacion intersticial: escalada respiratoria precoz.")
		}
	}

	behcetTriad := in.RecurrentOralAphthae && in.OcularInflammationOrUveitis && in.ErythemaNodosumPresent
	if behcetTriad {
		diagnostic = append(diagnostic, "Triada de Behcet en urgencias: alta sospecha clinica.")
		therapeutic = append(therapeutic, "Primera linea sugerida: pulsos de corticoides + azatioprina.")
		trace = append(trace, "Ruta diagnostico-terapeutica de Behcet activada.")
	}
	if in.CerebralParenchymalInvolvement && in.CyclosporinePlanned {
		safetyAlerts = append(safetyAlerts, "Behcet neurologico: evitar ciclosporina por riesgo de empeoramiento cerebral.")
	}
	return diagnostic, therapeutic, safetyAlerts, trace
}

func rheumImagingScreeningPathway(in RheumImmunoInput) (imaging, therapeutic []string) {
	if in.ElderlyMaleWithAcuteMonoarthritis && in.IntercurrentTriggerPresent {
		if !in.WristXrayChondrocalcinosis {
			imaging = append(imaging, "Pseudo-gota probable con carpo negativo: solicitar RX de rodillas.")
			imaging = append(imaging, "Completar cribado de condrocalcinosis con RX de sinfisis del pubis.")
		} else {
			imaging = append(imaging, "Condrocalcinosis carpiana detectada: compatible con artritis por pirofosfato.")
		}
	}

	if in.YoungMaleWithInflammatoryBackPain && in.SacroiliitisOnImaging {
		imaging = append(imaging, "Sacroileitis en imagen: respalda espondiloartropatia axial.")
		therapeutic = append(therapeutic, "Primera linea: AINEs + fisioterapia en espondiloartropatia.")
		therapeutic = append(therapeutic, "Si refractaria: valorar anti-TNF/anti-IL17/inhibidores JAK.")
		if in.PeripheralJointInvolvement {
			therapeutic = append(therapeutic, "Metotrexato util cuando hay afectacion articular periferica.")
		} else {
			therapeutic = append(therapeutic, "Metotrexato con utilidad limitada en fenotipo axial puro.")
		}
	}
	return imaging, therapeutic
}

func rheumMaternalFetalDataDomains(in RheumImmunoInput) (criticalAlerts, maternalFetal, dataFlags []string) {
	if in.PregnancyOngoing && (in.AntiRoPositive || in.AntiLaPositive) {
		maternalFetal = append(maternalFetal, "Gestacion con anti-Ro/anti-La: vigilancia ecocardiografica fetal estrecha.")
		if in.FetalConductionOrMyocardialRisk {
			if !in.FluorinatedCorticosteroidsStarted {
				criticalAlerts = append(criticalAlerts, "Riesgo fetal cardiaco en lupus neonatal: iniciar corticoides fluorados.")
			} else {
				maternalFetal = append(maternalFetal, "Corticoides fluorados iniciados para riesgo de bloqueo cardiaco fetal.")
			}
		}
	}

	if in.PregnancyOngoing && in.AntiDesmoglein3Positive {
		maternalFetal = append(maternalFetal, "Antidesmogleina 3 positiva: monitorizar posible afectacion neonatal.")
	}
	if in.PregnancyOngoing && in.AntiAcetylcholineReceptorPositive {
		maternalFetal = append(maternalFetal, "Antirreceptor ACh positiva: vigilar miastenia neonatal transitoria.")
	}

	if in.IgG4RelatedDiseaseSuspected {
		if in.IgG4LymphoplasmacyticInfiltrate && in.IgG4ObliterativePhlebitis && in.IgG4StoriformFibrosis {
			dataFlags = append(dataFlags, "IgG4: triada histologica completa (infiltrado, flebitis, fibrosis estoriforme).")
		} else {
			dataFlags = append(dataFlags, "IgG4: completar campos histologicos obligatorios para clasificacion.")
		}
	}

	if in.APSClinicalEventPresent && in.APSLaboratoryCriterionPresent {
		dataFlags = append(dataFlags, "SAF: criterio de entrada clinico + analitico presente.")
		if in.ThrombocytopeniaPresent {
			dataFlags = append(dataFlags, "SAF: trombopenia registrada como dominio relevante en clasificacion actual.")
		}
	}
	return criticalAlerts, maternalFetal, dataFlags
}

func rheumSeverity(criticalAlerts, safetyAlerts []string) Severity {
	if len(criticalAlerts) > 0 {
		return SeverityCritical
	}
	if len(safetyAlerts) > 0 {
		return SeverityHigh
	}
	return SeverityMedium
}

// EvaluateRheumImmuno builds the rheum-immuno support recommendation.
func EvaluateRheumImmuno(in RheumImmunoInput) RheumImmunoRecommendation {
	criticalVital, diagnosticVital, therapeuticVital, traceVital := rheumVitalRiskPathway(in)
	diagnosticCore, therapeuticCore, safetyAlerts, traceCore := rheumDiagnosticWorkflows(in)
	imaging, therapeuticImaging := rheumImagingScreeningPathway(in)
	criticalMF, maternalFetal, dataFlags := rheumMaternalFetalDataDomains(in)

	criticalAlerts := append(append([]string{}, criticalVital...), criticalMF...)
	diagnostic := append(append([]string{}, diagnosticVital...), diagnosticCore...)
	therapeutic := append(append(append([]string{}, therapeuticVital...), therapeuticCore...), therapeuticImaging...)
	trace := append(append([]string{}, traceVital...), traceCore...)

	return RheumImmunoRecommendation{
		SeverityLevel:           rheumSeverity(criticalAlerts, safetyAlerts),
		CriticalAlerts:          criticalAlerts,
		DiagnosticActions:       diagnostic,
		TherapeuticActions:      therapeutic,
		SafetyAlerts:            safetyAlerts,
		ImagingScreeningActions: imaging,
		MaternalFetalActions:    maternalFetal,
		DataModelFlags:          dataFlags,
		InterpretabilityTrace:   trace,
		HumanValidationRequired: true,
		NonDiagnosticWarning:    "Soporte operativo no diagnostico. Requiere validacion de Reumatologia/Medicina Interna.",
	}
}

func init() {
	register("rheum_immuno", typed((*RheumImmunoInput).Validate, EvaluateRheumImmuno))
}
