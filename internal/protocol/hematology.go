package protocol

// Hematology operational engine: thrombotic microangiopathy and hemolysis
// routes, HIT safety, lymphoma immunophenotype notes, Fanconi phenotype flags
// and splenectomy checklists.

// HematologyInput is the clinical-operational input for early hematologic
// decisions in the emergency department.
type HematologyInput struct {
	MAHAnemiaPresent       bool `json:"mah_anemia_present"`
	ThrombocytopeniaPresent bool `json:"thrombocytopenia_present"`
	OrganDamagePresent     bool `json:"organ_damage_present"`

	ColdExposureTrigger          bool `json:"cold_exposure_trigger"`
	IntravascularHemolysisSudden bool `json:"intravascular_hemolysis_sudden"`
	HemoglobinuriaPresent        bool `json:"hemoglobinuria_present"`
	FreePlasmaHemoglobinHigh     bool `json:"free_plasma_hemoglobin_high"`
	HypotensionPresent           bool `json:"hypotension_present"`
	AcralCyanosisPresent         bool `json:"acral_cyanosis_present"`
	HemophagocytosisInSmear      bool `json:"hemophagocytosis_in_smear"`

	BloodyDiarrheaProdrome  bool     `json:"bloody_diarrhea_prodrome"`
	ShigaToxinSuspected     bool     `json:"shiga_toxin_suspected"`
	DirectCoombsNegative    bool     `json:"direct_coombs_negative"`
	SchistocytesPercent     *float64 `json:"schistocytes_percent,omitempty"`
	CreatinineElevated      bool     `json:"creatinine_elevated"`
	NeurologicalInvolvement bool     `json:"neurological_involvement"`

	HeparinExposureActive        bool     `json:"heparin_exposure_active"`
	DaysSinceHeparinStart        *int     `json:"days_since_heparin_start,omitempty"`
	PlateletDropPercent          *float64 `json:"platelet_drop_percent,omitempty"`
	MajorOrthopedicPostopContext bool     `json:"major_orthopedic_postop_context"`
	RenalFailurePresent          bool     `json:"renal_failure_present"`
	HepaticFailurePresent        bool     `json:"hepatic_failure_present"`

	HemophiliaASevere            bool `json:"hemophilia_a_severe"`
	HighTiterFactorVIIIInhibitors bool `json:"high_titer_factor_viii_inhibitors"`
	AcuteHemarthrosis            bool `json:"acute_hemarthrosis"`
	OnEmicizumabProphylaxis      bool `json:"on_emicizumab_prophylaxis"`
	ProthrombinComplexPlanned    bool `json:"prothrombin_complex_planned"`

	BiopsyHistologyAvailable bool `json:"biopsy_histology_available"`
	FineNeedleAspirateOnly   bool `json:"fine_needle_aspirate_only"`
	CD20Positive             bool `json:"cd20_positive"`
	CD3Positive              bool `json:"cd3_positive"`
	CD15Positive             bool `json:"cd15_positive"`
	CD30Positive             bool `json:"cd30_positive"`
	CD19Positive             bool `json:"cd19_positive"`
	CD5Positive              bool `json:"cd5_positive"`
	CD23Positive             bool `json:"cd23_positive"`
	CD20Weak                 bool `json:"cd20_weak"`
	CyclinD1Positive         bool `json:"cyclin_d1_positive"`
	SOX11Positive            bool `json:"sox11_positive"`
	HHV8Positive             bool `json:"hhv8_positive"`
	EBVPositive              bool `json:"ebv_positive"`
	HTLV1Positive            bool `json:"htlv1_positive"`

	PediatricPatient        bool `json:"pediatric_patient"`
	ShortStature            bool `json:"short_stature"`
	CafeAuLaitSpots         bool `json:"cafe_au_lait_spots"`
	ThumbOrRadiusHypoplasia bool `json:"thumb_or_radius_hypoplasia"`
	RenalAnomalyPresent     bool `json:"renal_anomaly_present"`
	MicrognathiaPresent     bool `json:"micrognathia_present"`
	MacrocytosisPresent     bool `json:"macrocytosis_present"`
	PancytopeniaPresent     bool `json:"pancytopenia_present"`

	PlannedSplenectomy                 bool `json:"planned_splenectomy"`
	EncapsulatedVaccinesCompletedPreop bool `json:"encapsulated_vaccines_completed_preop"`
	DaysVaccinesBeforeSplenectomy      *int `json:"days_vaccines_before_splenectomy,omitempty"`
	PostsplenectomyStatus              bool `json:"postsplenectomy_status"`
	ActiveBleeding                     bool `json:"active_bleeding"`
	ThromboprophylaxisStarted          bool `json:"thromboprophylaxis_started"`

	HSCTRecipient              bool `json:"hsct_recipient"`
	RecipientMale              bool `json:"recipient_male"`
	DonorKaryotype47XXYDetected bool `json:"donor_karyotype_47xxy_detected"`

	Notes *string `json:"notes,omitempty"`
}

// HematologyRecommendation is the structured hematology support output.
type HematologyRecommendation struct {
	SeverityLevel                   Severity `json:"severity_level"`
	CriticalAlerts                  []string `json:"critical_alerts"`
	DiagnosticActions               []string `json:"diagnostic_actions"`
	TherapeuticActions              []string `json:"therapeutic_actions"`
	PharmacologicSafetyAlerts       []string `json:"pharmacologic_safety_alerts"`
	OncologyImmunophenotypeNotes    []string `json:"oncology_immunophenotype_notes"`
	InheritedBoneMarrowFailureFlags []string `json:"inherited_bone_marrow_failure_flags"`
	PostsplenectomyChecklist        []string `json:"postsplenectomy_checklist"`
	TransplantFlags                 []string `json:"transplant_flags"`
	InterpretabilityTrace           []string `json:"interpretability_trace"`
	HumanValidationRequired         bool     `json:"human_validation_required"`
	NonDiagnosticWarning            string   `json:"non_diagnostic_warning"`
}

func (in *HematologyInput) Validate() error {
	if err := inRangeF("schistocytes_percent", in.SchistocytesPercent, 0, 100); err != nil {
		return err
	}
	if err := inRangeI("days_since_heparin_start", in.DaysSinceHeparinStart, 0, 60); err != nil {
		return err
	}
	if err := inRangeF("platelet_drop_percent", in.PlateletDropPercent, 0, 100); err != nil {
		return err
	}
	if err := inRangeI("days_vaccines_before_splenectomy", in.DaysVaccinesBeforeSplenectomy, 0, 365); err != nil {
		return err
	}
	return validateNotes("notes", in.Notes)
}

func hemMicroangiopathyHemolysisPathway(in HematologyInput) (criticalAlerts, diagnostic, therapeutic, trace []string) {
	if in.MAHAnemiaPresent && in.ThrombocytopeniaPresent && in.OrganDamagePresent {
		criticalAlerts = append(criticalAlerts, "Triada de microangiopatia trombotica (MAT) detectada: anemia hemolitica + trombocitopenia + dano de organo.")
		diagnostic = append(diagnostic, "Activar estudio urgente de MAT con frotis, hemolisis y funcion organica.")
		trace = append(trace, "Regla de triada MAT activada.")
	}

	if in.ColdExposureTrigger && in.IntravascularHemolysisSudden &&
		in.HemoglobinuriaPresent && in.FreePlasmaHemoglobinHigh {
		criticalAlerts = append(criticalAlerts, "Sospecha de hemoglobinuria paroxistica a frigore (Donath-Landsteiner).")
		diagnostic = append(diagnostic, "Correlacionar con mecanismo anti-P mediado por complemento y priorizar estudio de hemolisis intravascular.")
		if in.HypotensionPresent || in.AcralCyanosisPresent {
			criticalAlerts = append(criticalAlerts, "Hemolisis intravascular con compromiso hemodinamico/acral: riesgo vital.")
		}
		if in.HemophagocytosisInSmear {
			diagnostic = append(diagnostic, "Hemofagocitosis en frotis como hallazgo de apoyo (no patognomonico).")
		}
	}

	shuSuspected := in.BloodyDiarrheaProdrome && in.DirectCoombsNegative &&
		in.ThrombocytopeniaPresent && in.CreatinineElevated
	if in.SchistocytesPercent != nil {
		shuSuspected = shuSuspected && *in.SchistocytesPercent > 10
	}
	if shuSuspected {
		criticalAlerts = append(criticalAlerts, "Patron compatible con SHU tipico posdiarreico (Shiga-toxina).")
		diagnostic = append(diagnostic, "Confirmar etiologia enterica y monitorizar dano renal/neurologico seriado.")
		therapeutic = append(therapeutic, "En SHU tipico, priorizar soporte + antibiotico segun protocolo local.")
		therapeutic = append(therapeutic, "No priorizar plasmaferesis en SHU tipico por baja utilidad.")
		if in.NeurologicalInvolvement {
			criticalAlerts = append(criticalAlerts, "SHU con afectacion neurologica: escalar monitorizacion en area critica.")
		}
	}
	return criticalAlerts, diagnostic, therapeutic, trace
}

func hemHITHemostasisPathway(in HematologyInput) (criticalAlerts, therapeutic, safetyAlerts, trace []string) {
	if in.HeparinExposureActive {
		inWindow := in.DaysSinceHeparinStart != nil &&
			*in.DaysSinceHeparinStart >= 5 && *in.DaysSinceHeparinStart <= 10
		drop50 := in.PlateletDropPercent != nil && *in.PlateletDropPercent > 50
		if inWindow && drop50 {
			criticalAlerts = append(criticalAlerts, "Sospecha alta de TIH (ventana 5-10 dias + caida plaquetaria >50%).")
			therapeutic = append(therapeutic, "Suspender heparina de forma inmediata.")
			if in.RenalFailurePresent {
				therapeutic = append(therapeutic, "En insuficiencia renal, priorizar Argatroban.")
			} else if in.HepaticFailurePresent {
				therapeutic = append(therapeutic, "En fallo hepatico, valorar Danaparoide o Fondaparinux.")
			} else {
				therapeutic = append(therapeutic, "Iniciar anticoagulacion alternativa no heparinica segun riesgo.")
			}
			trace = append(trace, "Ruta de seguridad TIH activada.")
			if in.MajorOrthopedicPostopContext {
				criticalAlerts = append(criticalAlerts, "Contexto postquirurgico ortopedico mayor incrementa riesgo trombotico.")
			}
		}
	}

	if in.HemophiliaASevere && in.HighTiterFactorVIIIInhibitors && in.AcuteHemarthrosis {
		criticalAlerts = append(criticalAlerts, "Hemofilia A grave con inhibidores en sangrado articular agudo.")
		therapeutic = append(therapeutic, "Usar agentes bypass: rFVIIa o complejo protrombinico (segun contexto).")
		if in.OnEmicizumabProphylaxis {
			safetyAlerts = append(safetyAlerts, "Emicizumab es profilaxis; no sustituye control del sangrado agudo.")
			if in.ProthrombinComplexPlanned {
				criticalAlerts = append(criticalAlerts, "Evitar complejo protrombinico junto a Emicizumab por riesgo de MAT.")
			}
		}
	}
	return criticalAlerts, therapeutic, safetyAlerts, trace
}

func hemOncologyGeneticPathway(in HematologyInput) (diagnostic, oncologyNotes, fanconiFlags, transplantFlags, trace []string) {
	if in.FineNeedleAspirateOnly && !in.BiopsyHistologyAvailable {
		diagnostic = append(diagnostic, "PAAF aislada insuficiente para clasificacion: requerir biopsia histologica.")
	} else if in.BiopsyHistologyAvailable {
		diagnostic = append(diagnostic, "Biopsia histologica disponible: base valida para clasificacion de linfoma.")
	}

	if in.CD20Positive && !in.CD3Positive {
		oncologyNotes = append(oncologyNotes, "Inmunofenotipo compatible con LBDCG (CD20+, CD3-).")
	}
	if in.CD15Positive && in.CD30Positive {
		oncologyNotes = append(oncologyNotes, "Patron compatible con linfoma de Hodgkin clasico (CD15+, CD30+).")
	}
	if in.CD19Positive && in.CD5Positive && in.CD23Positive {
		if in.CD20Weak {
			oncologyNotes = append(oncologyNotes, "Patron compatible con LLC (CD19+, CD5+, CD23+, CD20 debil).")
		} else {
			oncologyNotes = append(oncologyNotes, "Perfil sugiere LLC; confirmar intensidad de CD20 y correlacion clinica.")
		}
	}
	if in.CD5Positive && !in.CD23Positive {
		if in.CyclinD1Positive || in.SOX11Positive {
			oncologyNotes = append(oncologyNotes, "CD5+ con CD23- y CiclinaD1/SOX11: sugiere linfoma del manto.")
		}
	}

	if in.HHV8Positive {
		oncologyNotes = append(oncologyNotes, "HHV-8 asociado a linfoma primario de cavidades.")
	}
	if in.EBVPositive {
		oncologyNotes = append(oncologyNotes, "EBV asociado a Burkitt, Hodgkin y NK/T nasal.")
	}
	if in.HTLV1Positive {
		oncologyNotes = append(oncologyNotes, "HTLV-1 asociado a leucemia/linfoma T del adulto.")
	}

	fanconiPhenotypePoints := 0
	for _, point := range []bool{in.ShortStature, in.CafeAuLaitSpots, in.ThumbOrRadiusHypoplasia, in.RenalAnomalyPresent, in.MicrognathiaPresent} {
		if point {
			fanconiPhenotypePoints++
		}
	}
	if in.PediatricPatient && fanconiPhenotypePoints >= 3 {
		fanconiFlags = append(fanconiFlags, "Fenotipo compatible con anemia de Fanconi: activar ruta de insuficiencia medular.")
		if in.MacrocytosisPresent || in.ThrombocytopeniaPresent {
			fanconiFlags = append(fanconiFlags, "Evolucion hematologica sugestiva (macrocitosis/trombopenia).")
		}
		if in.PancytopeniaPresent {
			fanconiFlags = append(fanconiFlags, "Pancitopenia en contexto Fanconi: alto riesgo de progresion medular.")
		}
		fanconiFlags = append(fanconiFlags, "Activar cribado onco-hematologico por riesgo de LMA y tumores solidos.")
		trace = append(trace, "Ruta de sospecha de Fanconi pediatrica activada.")
	}

	if in.HSCTRecipient && in.RecipientMale && in.DonorKaryotype47XXYDetected {
		transplantFlags = append(transplantFlags, "Quimerismo post-trasplante sugiere posible sindrome de Klinefelter en donante.")
	}
	return diagnostic, oncologyNotes, fanconiFlags, transplantFlags, trace
}

func hemPostsplenectomySafetyPathway(in HematologyInput) (criticalAlerts, checklist, trace []string) {
	if in.PlannedSplenectomy {
		if in.EncapsulatedVaccinesCompletedPreop {
			if in.DaysVaccinesBeforeSplenectomy != nil && *in.DaysVaccinesBeforeSplenectomy >= 14 {
				checklist = append(checklist, "Vacunacion preoperatoria frente a encapsulados completada en ventana segura.")
			} else {
				criticalAlerts = append(criticalAlerts, "Vacunacion preoperatoria insuficiente (<2 semanas) antes de esplenectomia.")
			}
		} else {
			criticalAlerts = append(criticalAlerts, "Falta vacunacion preoperatoria frente a encapsulados antes de esplenectomia.")
		}
		trace = append(trace, "Checklist de seguridad preesplenectomia evaluado.")
	}

	if in.PostsplenectomyStatus {
		if in.ActiveBleeding {
			checklist = append(checklist, "Posesplenectomia con sangrado activo: diferir tromboprofilaxis hasta control.")
		} else if in.ThromboprophylaxisStarted {
			checklist = append(checklist, "Tromboprofilaxis posesplenectomia iniciada correctamente.")
		} else {
			criticalAlerts = append(criticalAlerts, "Posesplenectomia sin tromboprofilaxis: riesgo tromboembolico elevado.")
		}
	}
	return criticalAlerts, checklist, trace
}

func hemSeverity(criticalAlerts, safetyAlerts, fanconiFlags []string) Severity {
	if len(criticalAlerts) > 0 {
		return SeverityCritical
	}
	if len(safetyAlerts) > 0 || len(fanconiFlags) > 0 {
		return SeverityHigh
	}
	return SeverityMedium
}

// EvaluateHematology builds the hematology support recommendation.
func EvaluateHematology(in HematologyInput) HematologyRecommendation {
	criticalMAT, diagnosticMAT, therapeuticMAT, traceMAT := hemMicroangiopathyHemolysisPathway(in)
	criticalHIT, therapeuticHIT, safetyHIT, traceHIT := hemHITHemostasisPathway(in)
	diagnosticOnco, oncologyNotes, fanconiFlags, transplantFlags, traceOnco := hemOncologyGeneticPathway(in)
	criticalSpl, splChecklist, traceSpl := hemPostsplenectomySafetyPathway(in)

	criticalAlerts := append(append(append([]string{}, criticalMAT...), criticalHIT...), criticalSpl...)
	diagnostic := append(append([]string{}, diagnosticMAT...), diagnosticOnco...)
	therapeutic := append(append([]string{}, therapeuticMAT...), therapeuticHIT...)
	trace := append(append(append(append([]string{}, traceMAT...), traceHIT...), traceOnco...), traceSpl...)

	return HematologyRecommendation{
		SeverityLevel:                   hemSeverity(criticalAlerts, safetyHIT, fanconiFlags),
		CriticalAlerts:                  criticalAlerts,
		DiagnosticActions:               diagnostic,
		TherapeuticActions:              therapeutic,
		PharmacologicSafetyAlerts:       safetyHIT,
		OncologyImmunophenotypeNotes:    oncologyNotes,
		InheritedBoneMarrowFailureFlags: fanconiFlags,
		PostsplenectomyChecklist:        splChecklist,
		TransplantFlags:                 transplantFlags,
		InterpretabilityTrace:           trace,
		HumanValidationRequired:         true,
		NonDiagnosticWarning:            "Soporte operativo no diagnostico. Requiere validacion por hematologia/equipo de urgencias.",
	}
}

func init() {
	register("hematology", typed((*HematologyInput).Validate, EvaluateHematology))
}
