package protocol

import "strings"

// Urology operational engine: emphysematous pyelonephritis, obstructive
// acute kidney injury sequencing, penile trauma and uro-oncologic strategy.

// UrologyInput is the clinical-operational input for urologic prioritization
// in the emergency department.
type UrologyInput struct {
	DiabetesMellitusPoorControl               bool `json:"diabetes_mellitus_poor_control"`
	HypertensionPresent                       bool `json:"hypertension_present"`
	UrinaryTractGasOnImaging                  bool `json:"urinary_tract_gas_on_imaging"`
	UrinaryObstructionLithiasisSuspected      bool `json:"urinary_obstruction_lithiasis_suspected"`
	SuspectedPathogenEColi                    bool `json:"suspected_pathogen_e_coli"`
	XanthogranulomatousChronicPatternSuspected bool `json:"xanthogranulomatous_chronic_pattern_suspected"`

	ColickyFlankPainPresent                   bool     `json:"colicky_flank_pain_present"`
	VomitingPresent                           bool     `json:"vomiting_present"`
	AnuriaPresent                             bool     `json:"anuria_present"`
	CreatinineMgDl                            *float64 `json:"creatinine_mg_dl,omitempty"`
	EGFRMlMin                                 *float64 `json:"egfr_ml_min,omitempty"`
	BilateralPyelocalicealDilationOnUltrasound bool    `json:"bilateral_pyelocaliceal_dilation_on_ultrasound"`
	UrgentUrinaryDiversionPlanned             bool     `json:"urgent_urinary_diversion_planned"`
	UrgentCTPlannedBeforeDiversion            bool     `json:"urgent_ct_planned_before_diversion"`

	GenitalTraumaDuringErection           bool `json:"genital_trauma_during_erection"`
	PenileEdemaOrExpansiveHematomaPresent bool `json:"penile_edema_or_expansive_hematoma_present"`
	FlaccidPenisAfterTrauma               bool `json:"flaccid_penis_after_trauma"`
	UrethralInjurySuspected               bool `json:"urethral_injury_suspected"`
	BladderCatheterizationPlanned         bool `json:"bladder_catheterization_planned"`
	UrgentSurgicalReviewPlanned           bool `json:"urgent_surgical_review_planned"`
	CavernosalBloodGasPlanned             bool `json:"cavernosal_blood_gas_planned"`

	LocalizedRenalTumorSuspected      bool     `json:"localized_renal_tumor_suspected"`
	RenalMassCm                       *float64 `json:"renal_mass_cm,omitempty"`
	SolitaryFunctionalKidney          bool     `json:"solitary_functional_kidney"`
	ContralateralKidneyAtrophyPresent bool     `json:"contralateral_kidney_atrophy_present"`
	PlannedPartialNephrectomy         bool     `json:"planned_partial_nephrectomy"`
	PlannedRadicalNephrectomy         bool     `json:"planned_radical_nephrectomy"`

	ProstateMRIAnteriorLesionPresent bool `json:"prostate_mri_anterior_lesion_present"`
	TransrectalBiopsyPlanned         bool `json:"transrectal_biopsy_planned"`
	TransperinealFusionBiopsyPlanned bool `json:"transperineal_fusion_biopsy_planned"`

	ProstateMetastaticHighVolume bool     `json:"prostate_metastatic_high_volume"`
	GleasonScore                 *int     `json:"gleason_score,omitempty"`
	PSANgMl                      *float64 `json:"psa_ng_ml,omitempty"`
	BoneMetastasesPresent        bool     `json:"bone_metastases_present"`
	LiverMetastasesPresent       bool     `json:"liver_metastases_present"`
	LHRHAnalogPlanned            bool     `json:"lhrh_analog_planned"`
	DocetaxelPlanned             bool     `json:"docetaxel_planned"`
	NovelAntiandrogenName        *string  `json:"novel_antiandrogen_name,omitempty"`
	LocalCurativeTreatmentPlanned bool    `json:"local_curative_treatment_planned"`
	RadiotherapyPlanned          bool     `json:"radiotherapy_planned"`
	LowVolumeMetastaticProfile   bool     `json:"low_volume_metastatic_profile"`

	Notes *string `json:"notes,omitempty"`
}

// UrologyRecommendation is the structured urologic support output.
type UrologyRecommendation struct {
	SeverityLevel           Severity `json:"severity_level"`
	CriticalAlerts          []string `json:"critical_alerts"`
	InfectionActions        []string `json:"infection_actions"`
	ObstructionActions      []string `json:"obstruction_actions"`
	TraumaActions           []string `json:"trauma_actions"`
	OncologicActions        []string `json:"oncologic_actions"`
	SafetyBlocks            []string `json:"safety_blocks"`
	InterpretabilityTrace   []string `json:"interpretability_trace"`
	HumanValidationRequired bool     `json:"human_validation_required"`
	NonDiagnosticWarning    string   `json:"non_diagnostic_warning"`
}

func (in *UrologyInput) Validate() error {
	if err := inRangeF("creatinine_mg_dl", in.CreatinineMgDl, 0, 30); err != nil {
		return err
	}
	if err := inRangeF("egfr_ml_min", in.EGFRMlMin, 0, 200); err != nil {
		return err
	}
	if err := inRangeF("renal_mass_cm", in.RenalMassCm, 0, 30); err != nil {
		return err
	}
	if err := inRangeI("gleason_score", in.GleasonScore, 2, 10); err != nil {
		return err
	}
	if err := inRangeF("psa_ng_ml", in.PSANgMl, 0, 10000); err != nil {
		return err
	}
	if in.NovelAntiandrogenName != nil && len(*in.NovelAntiandrogenName) > 80 {
		return invalidf("novel_antiandrogen_name", "must be at most 80 characters")
	}
	return validateNotes("notes", in.Notes)
}

// uroEmphysematousPyelonephritisPathway handles gas in the urinary tract.
func uroEmphysematousPyelonephritisPathway(in UrologyInput) (criticalAlerts, infectionActions, trace []string) {
	metabolicRisk := in.DiabetesMellitusPoorControl || in.HypertensionPresent
	if in.UrinaryTractGasOnImaging {
		infectionActions = append(infectionActions, "Gas en via urinaria: iniciar antibioterapia de amplio espectro de forma inmediata.")
		if in.UrinaryObstructionLithiasisSuspected {
			infectionActions = append(infectionActions, "Componente obstructivo probable: activar derivacion urinaria urgente.")
		}
		if in.SuspectedPathogenEColi {
			infectionActions = append(infectionActions, "Escherichia coli es etiologia frecuente; ajustar cultivo y cobertura.")
		}

		if metabolicRisk {
			criticalAlerts = append(criticalAlerts, "Sospecha de pielonefritis enfisematosa en paciente de alto riesgo metabolico.")
			trace = append(trace, "Regla de PFE por gas en via urinaria + riesgo metabolico activada.")
		} else {
			criticalAlerts = append(criticalAlerts, "Gas en via urinaria con potencial infeccion necrotizante: manejar como urgencia.")
		}

		if !in.UrgentUrinaryDiversionPlanned {
			criticalAlerts = append(criticalAlerts, "Gas urinario con obstruccion potencial sin derivacion urgente planificada.")
		}

		if in.XanthogranulomatousChronicPatternSuspected {
			infectionActions = append(infectionActions, "Diferenciar de pielonefritis xantogranulomatosa (curso cronico) antes del plan definitivo.")
		}
	}

	return criticalAlerts, infectionActions, trace
}

// uroObstructiveAKIPathway sequences urinary diversion before advanced CT.
func uroObstructiveAKIPathway(in UrologyInput) (criticalAlerts, obstructionActions, safetyBlocks []string) {
	renalSeverity := (in.CreatinineMgDl != nil && *in.CreatinineMgDl > 7) ||
		(in.EGFRMlMin != nil && *in.EGFRMlMin < 15)
	colicContext := in.ColickyFlankPainPresent || in.VomitingPresent
	triadObstructiveAKI := colicContext && in.AnuriaPresent && renalSeverity &&
		in.BilateralPyelocalicealDilationOnUltrasound

	if triadObstructiveAKI {
		criticalAlerts = append(criticalAlerts, "FRA obstructivo grave (colico/anuria/deterioro renal con dilatacion bilateral).")
		obstructionActions = append(obstructionActions, "Prioridad absoluta: derivacion urinaria urgente antes de TAC avanzado.")
		if !in.UrgentUrinaryDiversionPlanned {
			criticalAlerts = append(criticalAlerts, "FRA obstructivo sin derivacion urgente documentada.")
		}
		if in.UrgentCTPlannedBeforeDiversion {
			safetyBlocks = append(safetyBlocks, "Bloquear secuencia TAC previo: primero derivacion urinaria en FRA obstructivo.")
		}
	} else if in.BilateralPyelocalicealDilationOnUltrasound && renalSeverity {
		obstructionActions = append(obstructionActions, "Dilatacion de via urinaria + deterioro renal: coordinar desobstruccion temprana.")
		if in.UrgentCTPlannedBeforeDiversion {
			safetyBlocks = append(safetyBlocks, "Evitar retraso por imagen avanzada antes de resolver obstruccion.")
		}
	}

	return criticalAlerts, obstructionActions, safetyBlocks
}

// uroPenileTraumaPathway covers penile fracture suspicion and blocked orders.
func uroPenileTraumaPathway(in UrologyInput) (criticalAlerts, traumaActions, safetyBlocks, trace []string) {
	fractureSuspicion := in.GenitalTraumaDuringErection && in.PenileEdemaOrExpansiveHematomaPresent
	if in.FlaccidPenisAfterTrauma {
		fractureSuspicion = fractureSuspicion || in.PenileEdemaOrExpansiveHematomaPresent
	}

	if fractureSuspicion {
		criticalAlerts = append(criticalAlerts, "Sospecha de fractura de pene: activar revision quirurgica urgente.")
		traumaActions = append(traumaActions, "Indicar exploracion quirurgica aun con ecografia no concluyente por hematoma.")
		if !in.UrgentSurgicalReviewPlanned {
			criticalAlerts = append(criticalAlerts, "Sospecha de fractura sin revision quirurgica urgente planificada.")
		}
		if in.BladderCatheterizationPlanned &&
			(in.PenileEdemaOrExpansiveHematomaPresent || in.UrethralInjurySuspected) {
			safetyBlocks = append(safetyBlocks, "Bloquear orden de sondaje vesical en traumatismo genital con hematoma.")
		}
		if in.CavernosalBloodGasPlanned {
			safetyBlocks = append(safetyBlocks, "Gasometria de cuerpos cavernosos no indicada en fractura de pene (util en diferencial de priapismo).")
		}
		trace = append(trace, "Regla de trauma genital con hematoma y flujo quirurgico activada.")
	}

	return criticalAlerts, traumaActions, safetyBlocks, trace
}

// uroOncologyPathway covers nephron sparing surgery, anterior prostate
// lesions and high volume metastatic triple therapy.
func uroOncologyPathway(in UrologyInput) (criticalAlerts, oncologicActions, safetyBlocks []string) {
	nephronSparingContext := in.LocalizedRenalTumorSuspected &&
		in.RenalMassCm != nil && *in.RenalMassCm <= 7 &&
		(in.SolitaryFunctionalKidney || in.ContralateralKidneyAtrophyPresent)
	if nephronSparingContext {
		oncologicActions = append(oncologicActions, "Tumor renal localizado en rinon unico/contralateral atrofico: priorizar nefrectomia parcial conservadora de nefronas.")
		if in.PlannedRadicalNephrectomy {
			safetyBlocks = append(safetyBlocks, "Reevaluar nefrectomia radical en contexto de preservacion renal obligada.")
		}
		if !in.PlannedPartialNephrectomy {
			oncologicActions = append(oncologicActions, "Valorar plan quirurgico conservador como estrategia de eleccion.")
		}
	}

	if in.ProstateMRIAnteriorLesionPresent {
		oncologicActions = append(oncologicActions, "Lesion prostatica anterior en RM: recomendar biopsia transperineal sistematica y dirigida por fusion RM-ecografia.")
		if in.TransrectalBiopsyPlanned && !in.TransperinealFusionBiopsyPlanned {
			safetyBlocks = append(safetyBlocks, "Acceso trasrectal aislado insuficiente para lesion anterior; priorizar via transperineal.")
		}
	}

	highVolumeInferred := in.ProstateMetastaticHighVolume ||
		(in.GleasonScore != nil && *in.GleasonScore >= 9 &&
			in.BoneMetastasesPresent && in.LiverMetastasesPresent)
	if highVolumeInferred {
		oncologicActions = append(oncologicActions, "Prostata metastasica de alto volumen: estrategia sistemica de triple terapia (LHRH + docetaxel + antiandrogeno de nueva generacion).")
		if !in.LHRHAnalogPlanned {
			criticalAlerts = append(criticalAlerts, "Triple terapia incompleta: falta analogo LHRH en alto volumen metastasico.")
		}
		if !in.DocetaxelPlanned {
			criticalAlerts = append(criticalAlerts, "Triple terapia incompleta: falta docetaxel en alto volumen metastasico.")
		}
		antiandrogen := ""
		if in.NovelAntiandrogenName != nil {
			antiandrogen = strings.ToLower(strings.TrimSpace(*in.NovelAntiandrogenName))
		}
		if antiandrogen != "darolutamida" && antiandrogen != "abiraterona" {
			criticalAlerts = append(criticalAlerts, "Triple terapia incompleta o no alineada: falta antiandrogeno de nueva generacion recomendado.")
		}
		if antiandrogen == "enzalutamida" && in.DocetaxelPlanned {
			safetyBlocks = append(safetyBlocks, "Combinacion docetaxel-enzalutamida con evidencia conjunta limitada; priorizar esquemas estandar validados.")
		}
		if in.LocalCurativeTreatmentPlanned {
			safetyBlocks = append(safetyBlocks, "Bloquear tratamiento local curativo en enfermedad metastasica de alto volumen.")
		}
		if in.RadiotherapyPlanned && !in.LowVolumeMetastaticProfile {
			safetyBlocks = append(safetyBlocks, "Radioterapia local suele reservarse para enfermedad metastasica de bajo volumen.")
		}
	}

	return criticalAlerts, oncologicActions, safetyBlocks
}

func uroSeverity(criticalAlerts, safetyBlocks []string, hasActions bool) Severity {
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

// EvaluateUrology builds the urology support recommendation.
func EvaluateUrology(in UrologyInput) UrologyRecommendation {
	criticalInf, infectionActions, traceInf := uroEmphysematousPyelonephritisPathway(in)
	criticalObs, obstructionActions, safetyObs := uroObstructiveAKIPathway(in)
	criticalTrauma, traumaActions, safetyTrauma, traceTrauma := uroPenileTraumaPathway(in)
	criticalOnco, oncologicActions, safetyOnco := uroOncologyPathway(in)

	criticalAlerts := append(append(append(append([]string{}, criticalInf...), criticalObs...), criticalTrauma...), criticalOnco...)
	safetyBlocks := append(append(append([]string{}, safetyObs...), safetyTrauma...), safetyOnco...)
	hasActions := len(infectionActions) > 0 || len(obstructionActions) > 0 ||
		len(traumaActions) > 0 || len(oncologicActions) > 0

	return UrologyRecommendation{
		SeverityLevel:           uroSeverity(criticalAlerts, safetyBlocks, hasActions),
		CriticalAlerts:          criticalAlerts,
		InfectionActions:        infectionActions,
		ObstructionActions:      obstructionActions,
		TraumaActions:           traumaActions,
		OncologicActions:        oncologicActions,
		SafetyBlocks:            safetyBlocks,
		InterpretabilityTrace:   append(append([]string{}, traceInf...), traceTrauma...),
		HumanValidationRequired: true,
		NonDiagnosticWarning:    "Soporte operativo no diagnostico. Requiere validacion por urologia/equipo de urgencias.",
	}
}

func init() {
	register("urology", typed((*UrologyInput).Validate, EvaluateUrology))
}
