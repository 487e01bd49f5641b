package protocol

import "fmt"

// Nephrology operational engine: syndromic AKI classification, renopulmonary
// and glomerular routes, acid-base compensation check, AEIOU dialysis
// triggers and nephroprotection.

// NephrologyInput is the clinical-operational input for nephrologic
// prioritization in the emergency department.
type NephrologyInput struct {
	AcuteKidneyInjuryPresent        bool     `json:"acute_kidney_injury_present"`
	UrineSodiumMmolL                *float64 `json:"urine_sodium_mmol_l,omitempty"`
	AbruptAnuriaPresent             bool     `json:"abrupt_anuria_present"`
	HydronephrosisUltrasoundPresent bool     `json:"hydronephrosis_ultrasound_present"`

	ProteinuriaPresent                   bool `json:"proteinuria_present"`
	MicrohematuriaPresent                bool `json:"microhematuria_present"`
	DysmorphicRBCPresent                 bool `json:"dysmorphic_rbc_present"`
	BilateralGroundGlassCTPresent        bool `json:"bilateral_ground_glass_ct_present"`
	PulmonaryHemorrhagePresent           bool `json:"pulmonary_hemorrhage_present"`
	AcuteAnemizationPresent              bool `json:"acute_anemization_present"`
	AntiGBMPositive                      bool `json:"anti_gbm_positive"`
	RapidlyProgressiveGNRequiresDialysis bool `json:"rapidly_progressive_gn_requires_dialysis"`
	PlateletCountTypoSuspected           bool `json:"platelet_count_typo_suspected"`

	PH        *float64 `json:"ph,omitempty"`
	HCO3MmolL *float64 `json:"hco3_mmol_l,omitempty"`
	PCO2mmHg  *float64 `json:"pco2_mm_hg,omitempty"`

	RefractoryMetabolicAcidosis             bool `json:"refractory_metabolic_acidosis"`
	RefractoryHyperkalemiaWithECGChanges    bool `json:"refractory_hyperkalemia_with_ecg_changes"`
	SevereTumorHypercalcemiaNeurologic      bool `json:"severe_tumor_hypercalcemia_neurologic"`
	DialyzableIntoxicationLithium           bool `json:"dialyzable_intoxication_lithium"`
	DialyzableIntoxicationSalicylates       bool `json:"dialyzable_intoxication_salicylates"`
	RefractoryVolumeOverloadPulmonaryEdema  bool `json:"refractory_volume_overload_pulmonary_edema"`
	UremicEncephalopathy                    bool `json:"uremic_encephalopathy"`
	UremicPericarditis                      bool `json:"uremic_pericarditis"`

	DiabeticNephropathySuspected bool `json:"diabetic_nephropathy_suspected"`
	ProteinuricCKDPresent        bool `json:"proteinuric_ckd_present"`
	SGLT2Planned                 bool `json:"sglt2_planned"`
	ACEIActive                   bool `json:"acei_active"`
	ARBActive                    bool `json:"arb_active"`
	DiabeticRetinopathyPresent   bool `json:"diabetic_retinopathy_present"`

	IgAMesangialDepositsBiopsy bool     `json:"iga_mesangial_deposits_biopsy"`
	C3MesangialDepositsBiopsy  bool     `json:"c3_mesangial_deposits_biopsy"`
	ProteinuriaG24h            *float64 `json:"proteinuria_g_24h,omitempty"`
	MonthsConservativeTherapy  *int     `json:"months_conservative_therapy,omitempty"`

	RecentDrugTriggerPresent bool    `json:"recent_drug_trigger_present"`
	SuspectedDrugName        *string `json:"suspected_drug_name,omitempty"`
	FeverPresent             bool    `json:"fever_present"`
	RashPresent              bool    `json:"rash_present"`
	EosinophiliaPresent      bool    `json:"eosinophilia_present"`
	NoImprovementAfter4872h  bool    `json:"no_improvement_after_48_72h"`

	ANCAPositive              bool     `json:"anca_positive"`
	CrescentsPercentGlomeruli *float64 `json:"crescents_percent_glomeruli,omitempty"`
	PauciImmuneIFNegative     bool     `json:"pauci_immune_if_negative"`

	Notes *string `json:"notes,omitempty"`
}

// NephrologyRecommendation is the structured nephrology support output.
type NephrologyRecommendation struct {
	SeverityLevel               Severity `json:"severity_level"`
	CriticalAlerts              []string `json:"critical_alerts"`
	AKIClassification           string   `json:"aki_classification"`
	AcidBaseAssessment          []string `json:"acid_base_assessment"`
	DiagnosticActions           []string `json:"diagnostic_actions"`
	TherapeuticActions          []string `json:"therapeutic_actions"`
	DialysisAlerts              []string `json:"dialysis_alerts"`
	NephroprotectionActions     []string `json:"nephroprotection_actions"`
	PharmacologicSafetyAlerts   []string `json:"pharmacologic_safety_alerts"`
	GlomerularInterstitialFlags []string `json:"glomerular_interstitial_flags"`
	InterpretabilityTrace       []string `json:"interpretability_trace"`
	HumanValidationRequired     bool     `json:"human_validation_required"`
	NonDiagnosticWarning        string   `json:"non_diagnostic_warning"`
}

func (in *NephrologyInput) Validate() error {
	if err := inRangeF("urine_sodium_mmol_l", in.UrineSodiumMmolL, 0, 300); err != nil {
		return err
	}
	if err := inRangeF("ph", in.PH, 6.5, 7.8); err != nil {
		return err
	}
	if err := inRangeF("hco3_mmol_l", in.HCO3MmolL, 0, 60); err != nil {
		return err
	}
	if err := inRangeF("pco2_mm_hg", in.PCO2mmHg, 0, 120); err != nil {
		return err
	}
	if err := inRangeF("proteinuria_g_24h", in.ProteinuriaG24h, 0, 30); err != nil {
		return err
	}
	if err := inRangeI("months_conservative_therapy", in.MonthsConservativeTherapy, 0, 60); err != nil {
		return err
	}
	if err := inRangeF("crescents_percent_glomeruli", in.CrescentsPercentGlomeruli, 0, 100); err != nil {
		return err
	}
	if in.SuspectedDrugName != nil && len(*in.SuspectedDrugName) > 120 {
		return invalidf("suspected_drug_name", "must be at most 120 characters")
	}
	return validateNotes("notes", in.Notes)
}

func nephroAKIClassificationPathway(in NephrologyInput) (classification string, diagnostic, glomerularFlags, trace []string) {
	if in.AbruptAnuriaPresent || in.HydronephrosisUltrasoundPresent {
		trace = append(trace, "Clasificacion FRA obstructivo por anuria/hidronefrosis.")
		diagnostic = append(diagnostic, "Priorizar descarte de obstruccion urinaria y descompresion urgente si procede.")
		return "obstructive", diagnostic, glomerularFlags, trace
	}

	if in.UrineSodiumMmolL != nil {
		if *in.UrineSodiumMmolL < 20 {
			trace = append(trace, "Clasificacion FRA prerrenal por sodio urinario bajo.")
			return "prerenal", diagnostic, glomerularFlags, trace
		}
		if *in.UrineSodiumMmolL > 40 {
			trace = append(trace, "Clasificacion FRA parenquimatoso (NTA probable) por sodio urinario elevado.")
			return "parenchymal", diagnostic, glomerularFlags, trace
		}
	}

	if in.DiabeticRetinopathyPresent && in.AcuteKidneyInjuryPresent {
		glomerularFlags = append(glomerularFlags, "Retinopatia diabetica asociada: refuerza contexto de dano renal vascular diabetico.")
	}

	trace = append(trace, "Clasificacion FRA indeterminada; completar datos de sedimento/imagen.")
	diagnostic = append(diagnostic, "Completar perfil urinario y ecografia para clasificacion sindromica del FRA.")
	return "indeterminate", diagnostic, glomerularFlags, trace
}

func nephroRenopulmonaryGlomerularPathway(in NephrologyInput) (criticalAlerts, diagnostic, therapeutic, glomerularFlags, trace []string) {
	renopulmonary := in.ProteinuriaPresent && in.MicrohematuriaPresent &&
		in.BilateralGroundGlassCTPresent && in.AcuteAnemizationPresent
	if renopulmonary {
		criticalAlerts = append(criticalAlerts, "Sindrome renopulmonar critico: probable GNRP con hemorragia alveolar.")
		therapeutic = append(therapeutic, "Escalar inicio urgente de inmunosupresion y plasmaferesis segun protocolo local.")
		trace = append(trace, "Regla sindromica renopulmonar activada.")
		if in.PlateletCountTypoSuspected {
			trace = append(trace, "Se prioriza diagnostico sindromico renopulmonar sobre recuento plaquetario dudoso.")
			diagnostic = append(diagnostic, "Repetir hemograma por posible error tipografico sin frenar la ruta critica.")
		}
	}

	if in.AntiGBMPositive {
		criticalAlerts = append(criticalAlerts, "Anti-MBG positivo: plasmaferesis obligatoria en estrategia inicial.")
	}
	if in.RapidlyProgressiveGNRequiresDialysis {
		criticalAlerts = append(criticalAlerts, "GNRP con necesidad de dialisis: plasmaferesis obligatoria.")
	}
	if in.PulmonaryHemorrhagePresent {
		criticalAlerts = append(criticalAlerts, "Hemorragia pulmonar asociada: plasmaferesis obligatoria.")
	}

	if in.DysmorphicRBCPresent {
		glomerularFlags = append(glomerularFlags, "Hematies dismorficos en sedimento: origen glomerular del sangrado.")
	}

	if in.MicrohematuriaPresent && in.DysmorphicRBCPresent &&
		in.IgAMesangialDepositsBiopsy && in.C3MesangialDepositsBiopsy {
		glomerularFlags = append(glomerularFlags, "Patron compatible con nefropatia IgA (Berger) en contexto de biopsia.")
		therapeutic = append(therapeutic, "Control estricto de TA y proteinuria con IECA o ARA-II.")
		if in.ProteinuriaG24h != nil && *in.ProteinuriaG24h > 1 &&
			in.MonthsConservativeTherapy != nil && *in.MonthsConservativeTherapy >= 6 {
			therapeutic = append(therapeutic, "Tras 6 meses de manejo conservador y proteinuria >1 g/24h, valorar corticoides.")
		}
	}

	if in.ANCAPositive && in.CrescentsPercentGlomeruli != nil &&
		*in.CrescentsPercentGlomeruli >= 50 && in.PauciImmuneIFNegative {
		glomerularFlags = append(glomerularFlags, "Vasculitis ANCA pauci-inmune probable (semilunas >50% + IF negativa).")
		diagnostic = append(diagnostic, "Correlacionar con ANCA y anatomia patologica para estrategia inmunosupresora.")
	}

	if in.AcuteKidneyInjuryPresent && in.RecentDrugTriggerPresent &&
		in.FeverPresent && in.RashPresent && in.EosinophiliaPresent {
		glomerularFlags = append(glomerularFlags, "Perfil compatible con nefritis intersticial aguda farmacologica.")
		therapeutic = append(therapeutic, "Suspender inmediatamente el farmaco sospechoso.")
		if in.SuspectedDrugName != nil && *in.SuspectedDrugName != "" {
			diagnostic = append(diagnostic, fmt.Sprintf("Registrar trigger farmacologico reportado: %s.", *in.SuspectedDrugName))
		}
		if in.NoImprovementAfter4872h {
			therapeutic = append(therapeutic, "Sin mejoria en 48-72h: considerar corticoides segun protocolo.")
		}
	}
	return criticalAlerts, diagnostic, therapeutic, glomerularFlags, trace
}

func nephroAcidBasePathway(in NephrologyInput) (criticalAlerts, assessment, trace []string) {
	if in.PH == nil || in.HCO3MmolL == nil || in.PCO2mmHg == nil {
		return criticalAlerts, assessment, trace
	}

	if *in.PH < 7.35 && *in.HCO3MmolL < 24 {
		assessment = append(assessment, "Acidosis metabolica: pH < 7.35 con bicarbonato < 24.")
		expectedPCO2 := 40 - (24 - *in.HCO3MmolL)
		assessment = append(assessment, fmt.Sprintf("Compensacion esperada aproximada: PCO2 ~ %.1f mmHg.", expectedPCO2))
		trace = append(trace, "Regla de compensacion respiratoria lineal aplicada.")

		if *in.PCO2mmHg < 40 && *in.PCO2mmHg <= expectedPCO2+2 {
			assessment = append(assessment, "Acidosis metabolica parcialmente compensada (pH aun acidemico).")
		} else if *in.PCO2mmHg > expectedPCO2+2 {
			criticalAlerts = append(criticalAlerts, "Trastorno mixto probable: acidosis metabolica + acidosis respiratoria.")
		}
	}
	return criticalAlerts, assessment, trace
}

func nephroAEIOUDialysisPathway(in NephrologyInput) (criticalAlerts, dialysisAlerts, therapeutic []string) {
	var triggers []string
	if in.RefractoryMetabolicAcidosis {
		triggers = append(triggers, "A: acidosis metabolica refractaria")
	}
	if in.RefractoryHyperkalemiaWithECGChanges {
		triggers = append(triggers, "E: hiperpotasemia toxica refractaria")
	}
	if in.SevereTumorHypercalcemiaNeurologic {
		triggers = append(triggers, "E: hipercalcemia tumoral grave con afectacion neurologica")
	}
	if in.DialyzableIntoxicationLithium {
		triggers = append(triggers, "I: intoxicacion por litio")
	}
	if in.DialyzableIntoxicationSalicylates {
		triggers = append(triggers, "I: intoxicacion por salicilatos")
	}
	if in.RefractoryVolumeOverloadPulmonaryEdema {
		triggers = append(triggers, "O: sobrecarga de volumen con edema pulmonar refractario")
	}
	if in.UremicEncephalopathy {
		triggers = append(triggers, "U: encefalopatia uremica")
	}
	if in.UremicPericarditis {
		triggers = append(triggers, "U: pericarditis uremica")
	}

	if len(triggers) > 0 {
		dialysisAlerts = append(dialysisAlerts, triggers...)
		criticalAlerts = append(criticalAlerts, "Criterios AEIOU presentes: activar interconsulta nefrologica para dialisis urgente.")
		therapeutic = append(therapeutic, "Coordinar ventana de hemodialisis urgente segun estabilidad hemodinamica.")
	}
	return criticalAlerts, dialysisAlerts, therapeutic
}

func nephroProtectionPathway(in NephrologyInput) (nephroActions, safetyAlerts, trace []string) {
	if in.DiabeticNephropathySuspected || in.ProteinuricCKDPresent {
		nephroActions = append(nephroActions, "Valorar iSGLT2 para reducir hiperfiltracion y proteinuria en contexto proteinurico.")
		nephroActions = append(nephroActions, "Estrategia combinada valida: iSGLT2 + IECA/ARA-II (sin doble bloqueo).")
		trace = append(trace, "Ruta de nefroproteccion con iSGLT2 activada.")
		if !in.SGLT2Planned {
			nephroActions = append(nephroActions, "Documentar motivo si iSGLT2 no se inicia en candidato elegible.")
		}
	}

	if in.ACEIActive && in.ARBActive {
		safetyAlerts = append(safetyAlerts, "Doble bloqueo IECA + ARA-II contraindicado por riesgo de hiperpotasemia y dano hemodinamico.")
	}
	return nephroActions, safetyAlerts, trace
}

func nephroSeverity(criticalAlerts, dialysisAlerts, safetyAlerts, glomerularFlags []string) Severity {
	if len(criticalAlerts) > 0 || len(dialysisAlerts) > 0 {
		return SeverityCritical
	}
	if len(safetyAlerts) > 0 || len(glomerularFlags) > 0 {
		return SeverityHigh
	}
	return SeverityMedium
}

// EvaluateNephrology builds the nephrology support recommendation.
func EvaluateNephrology(in NephrologyInput) NephrologyRecommendation {
	akiClassification, diagAKI, flagsAKI, traceAKI := nephroAKIClassificationPathway(in)
	criticalGlom, diagGlom, txGlom, flagsGlom, traceGlom := nephroRenopulmonaryGlomerularPathway(in)
	criticalAB, acidBase, traceAB := nephroAcidBasePathway(in)
	criticalDial, dialysisAlerts, txDial := nephroAEIOUDialysisPathway(in)
	nephroActions, safetyAlerts, traceNephro := nephroProtectionPathway(in)

	criticalAlerts := append(append(append([]string{}, criticalGlom...), criticalAB...), criticalDial...)
	diagnostic := append(append([]string{}, diagAKI...), diagGlom...)
	therapeutic := append(append([]string{}, txGlom...), txDial...)
	glomerularFlags := append(append([]string{}, flagsAKI...), flagsGlom...)
	trace := append(append(append(append([]string{}, traceAKI...), traceGlom...), traceAB...), traceNephro...)

	return NephrologyRecommendation{
		SeverityLevel:              nephroSeverity(criticalAlerts, dialysisAlerts, safetyAlerts, glomerularFlags),
		CriticalAlerts:             criticalAlerts,
		AKIClassification:          akiClassification,
		AcidBaseAssessment:         acidBase,
		DiagnosticActions:          diagnostic,
		TherapeuticActions:         therapeutic,
		DialysisAlerts:             dialysisAlerts,
		NephroprotectionActions:    nephroActions,
		PharmacologicSafetyAlerts:  safetyAlerts,
		GlomerularInterstitialFlags: glomerularFlags,
		InterpretabilityTrace:      trace,
		HumanValidationRequired:    true,
		NonDiagnosticWarning:       "Soporte operativo no diagnostico. Requiere validacion por nefrologia/equipo de urgencias.",
	}
}

func init() {
	register("nephrology", typed((*NephrologyInput).Validate, EvaluateNephrology))
}
