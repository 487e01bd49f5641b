package protocol

// Gynecology and obstetrics operational engine: hereditary oncology
// (Amsterdam II / Lynch), urgent gynecology triage, obstetric monitoring,
// varicella exposure windows, preeclampsia flow and pharmacologic
// prevention safety.

var gynMolecularProfiles = map[string]bool{
	"unknown":                    true,
	"pole_ultramutated":          true,
	"p53_mutated_serous_like":    true,
	"mismatch_repair_deficient":  true,
	"no_specific_profile":        true,
}

var gynBreastSubtypes = map[string]bool{
	"unknown":         true,
	"triple_negative": true,
	"luminal_a":       true,
	"other":           true,
}

var gynProgestinGenerations = map[string]bool{
	"unknown":               true,
	"second_levonorgestrel": true,
	"third":                 true,
	"fourth":                true,
}

// GynecologyObstetricsInput is the clinical-operational input for
// gyneco-obstetric prioritization.
type GynecologyObstetricsInput struct {
	PatientAgeYears *int `json:"patient_age_years,omitempty"`

	EndometrialCancerDiagnosed            bool `json:"endometrial_cancer_diagnosed"`
	AgeAtEndometrialCancerDiagnosis       *int `json:"age_at_endometrial_cancer_diagnosis,omitempty"`
	FamilyLynchRelatedCancersCount        int  `json:"family_lynch_related_cancers_count"`
	FamilyGenerationsAffectedCount        int  `json:"family_generations_affected_count"`
	FamilyLynchRelatedCancersUnder50Count int  `json:"family_lynch_related_cancers_under_50_count"`
	KnownMismatchRepairMutation           bool `json:"known_mismatch_repair_mutation"`

	EndometrialTumorMolecularProfile string `json:"endometrial_tumor_molecular_profile"`
	BreastCancerSubtype              string `json:"breast_cancer_subtype"`

	ReproductiveAgeWithAbdominalPainOrBleeding bool `json:"reproductive_age_with_abdominal_pain_or_bleeding"`
	PregnancyTestPositive                      bool `json:"pregnancy_test_positive"`
	SevereAbdominalPain                        bool `json:"severe_abdominal_pain"`
	VaginalSpottingPresent                     bool `json:"vaginal_spotting_present"`
	FreeIntraperitonealFluidOnUltrasound       bool `json:"free_intraperitoneal_fluid_on_ultrasound"`
	DilatedOrViolaceousTubeOnUltrasound        bool `json:"dilated_or_violaceous_tube_on_ultrasound"`

	CyclicPelvicPainWithMenses                  bool `json:"cyclic_pelvic_pain_with_menses"`
	DeepEndometriosisDigestiveImplantsSuspected bool `json:"deep_endometriosis_digestive_implants_suspected"`

	GestationalAgeWeeks                         *int     `json:"gestational_age_weeks,omitempty"`
	FirstTrimesterCRLAvailable                  bool     `json:"first_trimester_crl_available"`
	LMPVsFirstTrimesterUltrasoundDifferenceDays *int     `json:"lmp_vs_first_trimester_ultrasound_difference_days,omitempty"`
	FetalPercentile                             *float64 `json:"fetal_percentile,omitempty"`

	MonochorionicPregnancy             bool     `json:"monochorionic_pregnancy"`
	RecipientAmnioticVerticalPocketCm  *float64 `json:"recipient_amniotic_vertical_pocket_cm,omitempty"`
	DonorAmnioticVerticalPocketCm      *float64 `json:"donor_amniotic_vertical_pocket_cm,omitempty"`
	DonorBladderVisible                *bool    `json:"donor_bladder_visible,omitempty"`
	RecipientBladderDistended          bool     `json:"recipient_bladder_distended"`

	VaricellaExposureInPregnancy               bool  `json:"varicella_exposure_in_pregnancy"`
	VaricellaIgGPositive                       *bool `json:"varicella_igg_positive,omitempty"`
	HoursSinceVaricellaExposure                *int  `json:"hours_since_varicella_exposure,omitempty"`
	MaternalVaricellaConfirmed                 bool  `json:"maternal_varicella_confirmed"`
	DaysFromMaternalVaricellaToDelivery        *int  `json:"days_from_maternal_varicella_to_delivery,omitempty"`
	LiveAttenuatedVaccineRequestedDuringPregnancy bool `json:"live_attenuated_vaccine_requested_during_pregnancy"`

	PostpartumPreeclampsiaSuspected bool  `json:"postpartum_preeclampsia_suspected"`
	SystolicBPMmHg                  *int  `json:"systolic_bp_mm_hg,omitempty"`
	TargetOrganDamagePresent        bool  `json:"target_organ_damage_present"`
	ProteinuriaPresent              *bool `json:"proteinuria_present,omitempty"`
	SevereFeaturesPresent           bool  `json:"severe_features_present"`
	IVAntihypertensiveStarted       bool  `json:"iv_antihypertensive_started"`
	MagnesiumSulfateStarted         bool  `json:"magnesium_sulfate_started"`
	PreeclampsiaLabeledAsModerate   bool  `json:"preeclampsia_labeled_as_moderate"`

	OralContraceptionPlanned                  bool   `json:"oral_contraception_planned"`
	BaselineHistoryCompleted                  bool   `json:"baseline_history_completed"`
	BaselineBPRecorded                        bool   `json:"baseline_bp_recorded"`
	BaselineBMIRecorded                       bool   `json:"baseline_bmi_recorded"`
	RoutineCytologyRequiredBeforeOCP          bool   `json:"routine_cytology_required_before_ocp"`
	RoutineThrombophiliaPanelRequiredBeforeOCP bool  `json:"routine_thrombophilia_panel_required_before_ocp"`
	ProgestinGeneration                       string `json:"progestin_generation"`

	GestationalDiabetesOneStep75gPerformed bool     `json:"gestational_diabetes_one_step_75g_performed"`
	FastingGlucoseMgDl                     *float64 `json:"fasting_glucose_mg_dl,omitempty"`
	Glucose1hMgDl                          *float64 `json:"glucose_1h_mg_dl,omitempty"`
	Glucose2hMgDl                          *float64 `json:"glucose_2h_mg_dl,omitempty"`

	FetalNeuroprotectionMagnesiumRequested bool `json:"fetal_neuroprotection_magnesium_requested"`
	RiskOfImminentPretermBirth             bool `json:"risk_of_imminent_preterm_birth"`
	RupturedMembranesPresent               bool `json:"ruptured_membranes_present"`
	CervixLongWithoutContractions          bool `json:"cervix_long_without_contractions"`

	ChronicLymphedemaPostOncologicSurgery bool `json:"chronic_lymphedema_post_oncologic_surgery"`
	DiureticPrescriptionRequested         bool `json:"diuretic_prescription_requested"`

	Notes *string `json:"notes,omitempty"`
}

// GynecologyObstetricsRecommendation is the structured gyneco-obstetric
// support output.
type GynecologyObstetricsRecommendation struct {
	SeverityLevel                 Severity `json:"severity_level"`
	CriticalAlerts                []string `json:"critical_alerts"`
	HereditaryOncologyActions     []string `json:"hereditary_oncology_actions"`
	UrgentGynecologyActions       []string `json:"urgent_gynecology_actions"`
	ObstetricMonitoringActions    []string `json:"obstetric_monitoring_actions"`
	InfectiousRiskActions         []string `json:"infectious_risk_actions"`
	PreeclampsiaActions           []string `json:"preeclampsia_actions"`
	PharmacologyPreventionActions []string `json:"pharmacology_prevention_actions"`
	SafetyBlocks                  []string `json:"safety_blocks"`
	InterpretabilityTrace         []string `json:"interpretability_trace"`
	HumanValidationRequired       bool     `json:"human_validation_required"`
	NonDiagnosticWarning          string   `json:"non_diagnostic_warning"`
}

func (in *GynecologyObstetricsInput) Validate() error {
	if err := inRangeI("patient_age_years", in.PatientAgeYears, 10, 65); err != nil {
		return err
	}
	if err := inRangeI("age_at_endometrial_cancer_diagnosis", in.AgeAtEndometrialCancerDiagnosis, 10, 100); err != nil {
		return err
	}
	if in.FamilyLynchRelatedCancersCount < 0 || in.FamilyLynchRelatedCancersCount > 30 {
		return invalidf("family_lynch_related_cancers_count", "must be between 0 and 30")
	}
	if in.FamilyGenerationsAffectedCount < 0 || in.FamilyGenerationsAffectedCount > 10 {
		return invalidf("family_generations_affected_count", "must be between 0 and 10")
	}
	if in.FamilyLynchRelatedCancersUnder50Count < 0 || in.FamilyLynchRelatedCancersUnder50Count > 20 {
		return invalidf("family_lynch_related_cancers_under_50_count", "must be between 0 and 20")
	}
	if in.EndometrialTumorMolecularProfile == "" {
		in.EndometrialTumorMolecularProfile = "unknown"
	}
	if !gynMolecularProfiles[in.EndometrialTumorMolecularProfile] {
		return invalidf("endometrial_tumor_molecular_profile", "unknown value %q", in.EndometrialTumorMolecularProfile)
	}
	if in.BreastCancerSubtype == "" {
		in.BreastCancerSubtype = "unknown"
	}
	if !gynBreastSubtypes[in.BreastCancerSubtype] {
		return invalidf("breast_cancer_subtype", "unknown value %q", in.BreastCancerSubtype)
	}
	if err := inRangeI("gestational_age_weeks", in.GestationalAgeWeeks, 0, 45); err != nil {
		return err
	}
	if err := inRangeI("lmp_vs_first_trimester_ultrasound_difference_days", in.LMPVsFirstTrimesterUltrasoundDifferenceDays, -40, 40); err != nil {
		return err
	}
	if err := inRangeF("fetal_percentile", in.FetalPercentile, 0, 100); err != nil {
		return err
	}
	if err := inRangeF("recipient_amniotic_vertical_pocket_cm", in.RecipientAmnioticVerticalPocketCm, 0, 30); err != nil {
		return err
	}
	if err := inRangeF("donor_amniotic_vertical_pocket_cm", in.DonorAmnioticVerticalPocketCm, 0, 30); err != nil {
		return err
	}
	if err := inRangeI("hours_since_varicella_exposure", in.HoursSinceVaricellaExposure, 0, 720); err != nil {
		return err
	}
	if err := inRangeI("days_from_maternal_varicella_to_delivery", in.DaysFromMaternalVaricellaToDelivery, -30, 30); err != nil {
		return err
	}
	if err := inRangeI("systolic_bp_mm_hg", in.SystolicBPMmHg, 50, 300); err != nil {
		return err
	}
	if in.ProgestinGeneration == "" {
		in.ProgestinGeneration = "unknown"
	}
	if !gynProgestinGenerations[in.ProgestinGeneration] {
		return invalidf("progestin_generation", "unknown value %q", in.ProgestinGeneration)
	}
	if err := inRangeF("fasting_glucose_mg_dl", in.FastingGlucoseMgDl, 20, 400); err != nil {
		return err
	}
	if err := inRangeF("glucose_1h_mg_dl", in.Glucose1hMgDl, 20, 500); err != nil {
		return err
	}
	if err := inRangeF("glucose_2h_mg_dl", in.Glucose2hMgDl, 20, 500); err != nil {
		return err
	}
	return validateNotes("notes", in.Notes)
}

// gynHereditaryOncologyPathway applies Amsterdam II criteria and molecular
// profile routing.
func gynHereditaryOncologyPathway(in GynecologyObstetricsInput) (criticalAlerts, actions, trace []string) {
	amsterdamIISuspected := in.FamilyLynchRelatedCancersCount >= 3 &&
		in.FamilyGenerationsAffectedCount >= 2 &&
		in.FamilyLynchRelatedCancersUnder50Count >= 1
	if amsterdamIISuspected {
		criticalAlerts = append(criticalAlerts, "Criterios de Amsterdam II compatibles con sindrome de Lynch: activar ruta onco-genetica prioritaria.")
		actions = append(actions, "Revisar antecedentes paternos y maternos de colon, endometrio, ovario, estomago y pancreas.")
		trace = append(trace, "Regla Amsterdam II activada por patron familiar.")
	}

	if in.EndometrialCancerDiagnosed && in.AgeAtEndometrialCancerDiagnosis != nil &&
		*in.AgeAtEndometrialCancerDiagnosis <= 45 {
		actions = append(actions, "Cancer de endometrio en paciente joven: priorizar descarte de sindrome hereditario (Lynch/MMR).")
	}

	if in.KnownMismatchRepairMutation {
		actions = append(actions, "Mutacion MMR conocida: reforzar estrategia de consejeria genetica y vigilancia familiar.")
	}

	switch in.EndometrialTumorMolecularProfile {
	case "pole_ultramutated":
		actions = append(actions, "Perfil molecular POLE ultramutado: pronostico favorable relativo.")
	case "p53_mutated_serous_like":
		criticalAlerts = append(criticalAlerts, "Perfil molecular P53 mutado (serous-like): alto riesgo oncologico.")
	case "mismatch_repair_deficient":
		actions = append(actions, "Perfil dMMR: evaluar implicaciones pronosticas y geneticas asociadas.")
	}

	switch in.BreastCancerSubtype {
	case "triple_negative":
		criticalAlerts = append(criticalAlerts, "Subtipo mama triple negativo: fenotipo de mayor agresividad clinica.")
	case "luminal_a":
		actions = append(actions, "Subtipo luminal A: fenotipo frecuente con mejor pronostico relativo.")
	}

	return criticalAlerts, actions, trace
}

// gynUrgentGynecologyPathway covers ectopic pregnancy triage and
// endometriosis hypotheses.
func gynUrgentGynecologyPathway(in GynecologyObstetricsInput) (criticalAlerts, actions, trace []string) {
	if in.ReproductiveAgeWithAbdominalPainOrBleeding {
		actions = append(actions, "Mujer en edad reproductiva con dolor/sangrado: descartar primero patologia gestacional.")
	}

	ectopicTriage := in.PregnancyTestPositive && in.SevereAbdominalPain && in.VaginalSpottingPresent
	if ectopicTriage {
		criticalAlerts = append(criticalAlerts, "Triada de alerta de gestacion ectopica: test positivo + dolor intenso + manchado vaginal.")
		trace = append(trace, "Regla de ectopico activada.")
	}

	ruptureSigns := in.PregnancyTestPositive && in.FreeIntraperitonealFluidOnUltrasound &&
		in.DilatedOrViolaceousTubeOnUltrasound
	if ruptureSigns {
		criticalAlerts = append(criticalAlerts, "Signos ecograficos de probable rotura ectopica: priorizar ruta quirurgica urgente.")
	}

	if in.CyclicPelvicPainWithMenses {
		actions = append(actions, "Dolor ciclico asociado a menstruacion: priorizar endometriosis como hipotesis operativa inicial.")
	}
	if in.DeepEndometriosisDigestiveImplantsSuspected {
		actions = append(actions, "Sospecha de endometriosis profunda con compromiso digestivo: valorar plan conjunto ginecologia-cirugia.")
	}

	return criticalAlerts, actions, trace
}

// gynObstetricPathway covers dating adjustment, early severe growth
// restriction and twin-to-twin transfusion staging.
func gynObstetricPathway(in GynecologyObstetricsInput) (criticalAlerts, actions, trace []string) {
	if in.FirstTrimesterCRLAvailable && in.LMPVsFirstTrimesterUltrasoundDifferenceDays != nil {
		diff := *in.LMPVsFirstTrimesterUltrasoundDifferenceDays
		if diff < 0 {
			diff = -diff
		}
		if diff >= 5 {
			actions = append(actions, "Datacion: ajustar fecha probable de parto segun CRL de primer trimestre por diferencia >=5 dias.")
			trace = append(trace, "Regla de ajuste de datacion por CRL activada.")
		}
	}

	if in.GestationalAgeWeeks != nil && *in.GestationalAgeWeeks < 28 &&
		in.FetalPercentile != nil && *in.FetalPercentile < 3 {
		criticalAlerts = append(criticalAlerts, "CIR severo precoz (<P3 antes de semana 28): priorizar estudio invasivo segun protocolo.")
		actions = append(actions, "Considerar amniocentesis para estudio microbiologico y genetico (arrays).")
	}

	if in.MonochorionicPregnancy {
		recipientThreshold := 10.0
		if in.GestationalAgeWeeks != nil && *in.GestationalAgeWeeks < 20 {
			recipientThreshold = 8.0
		}

		recipientPoly := in.RecipientAmnioticVerticalPocketCm != nil &&
			*in.RecipientAmnioticVerticalPocketCm > recipientThreshold
		donorOligo := in.DonorAmnioticVerticalPocketCm != nil &&
			*in.DonorAmnioticVerticalPocketCm < 2.0
		donorBladderNotVisible := in.DonorBladderVisible != nil && !*in.DonorBladderVisible

		if recipientPoly && donorOligo {
			actions = append(actions, "Secuencia oligoamnios-polidramnios compatible con STFF: escalar evaluacion fetal especializada.")
			if in.RecipientBladderDistended && donorBladderNotVisible {
				criticalAlerts = append(criticalAlerts, "STFF compatible con estadio 2 de Quintero: receptor con vejiga distendida y donante sin vejiga visible.")
			}
		}
	}

	return criticalAlerts, actions, trace
}

// gynInfectiousVaricellaPathway handles post-exposure prophylaxis windows
// and peripartum varicella risk.
func gynInfectiousVaricellaPathway(in GynecologyObstetricsInput) (criticalAlerts, actions, safetyBlocks []string) {
	seronegative := in.VaricellaIgGPositive != nil && !*in.VaricellaIgGPositive
	if in.VaricellaExposureInPregnancy && seronegative && in.HoursSinceVaricellaExposure != nil {
		switch {
		case *in.HoursSinceVaricellaExposure <= 72:
			actions = append(actions, "Gestante sin inmunidad tras exposicion: administrar gammaglobulina hiperinmune idealmente dentro de 72h.")
		case *in.HoursSinceVaricellaExposure <= 240:
			actions = append(actions, "Profilaxis post-exposicion aun util hasta 10 dias tras contacto.")
		default:
			actions = append(actions, "Exposicion fuera de ventana habitual de profilaxis: revalorar estrategia con infectologia/obstetricia.")
		}
	}

	if in.LiveAttenuatedVaccineRequestedDuringPregnancy {
		safetyBlocks = append(safetyBlocks, "Vacunas vivas atenuadas (varicela/triple virica) contraindicadas en embarazo.")
	}

	if in.MaternalVaricellaConfirmed {
		if in.GestationalAgeWeeks != nil && *in.GestationalAgeWeeks < 20 {
			actions = append(actions, "Infeccion materna antes de semana 20: vigilar riesgo de teratogenia fetal.")
		}
		if in.DaysFromMaternalVaricellaToDelivery != nil &&
			*in.DaysFromMaternalVaricellaToDelivery >= -5 && *in.DaysFromMaternalVaricellaToDelivery <= 2 {
			criticalAlerts = append(criticalAlerts, "Varicela periparto en ventana de alto riesgo neonatal respiratorio (-5 a +2 dias del parto).")
		}
	}

	return criticalAlerts, actions, safetyBlocks
}

// gynPreeclampsiaPathway covers severe hypertension treatment flow and
// terminology safety.
func gynPreeclampsiaPathway(in GynecologyObstetricsInput) (criticalAlerts, actions, safetyBlocks, trace []string) {
	proteinuriaAbsent := in.ProteinuriaPresent != nil && !*in.ProteinuriaPresent
	if in.PostpartumPreeclampsiaSuspected && in.TargetOrganDamagePresent && proteinuriaAbsent {
		actions = append(actions, "Preeclampsia posparto: la afectacion de organo diana permite diagnostico sin proteinuria.")
	}

	severeSystolic := in.SystolicBPMmHg != nil && *in.SystolicBPMmHg >= 160
	if severeSystolic {
		criticalAlerts = append(criticalAlerts, "Preeclampsia con sistolica >=160 mmHg: priorizar antihipertensivo IV inmediato.")
		actions = append(actions, "Activar flujo de tratamiento intravenoso y monitorizacion estrecha.")
		trace = append(trace, "Regla de tension grave en preeclampsia activada.")
	}

	if in.SevereFeaturesPresent {
		actions = append(actions, "Preeclampsia con criterios de gravedad: sulfato de magnesio como prevencion de convulsiones.")
	}

	if severeSystolic && !in.IVAntihypertensiveStarted {
		safetyBlocks = append(safetyBlocks, "Sistolica >=160 sin antihipertensivo IV registrado: corregir de forma inmediata.")
	}
	if in.SevereFeaturesPresent && !in.MagnesiumSulfateStarted {
		safetyBlocks = append(safetyBlocks, "Criterios de gravedad sin sulfato de magnesio iniciado: validar omision.")
	}
	if in.PreeclampsiaLabeledAsModerate {
		safetyBlocks = append(safetyBlocks, "Terminologia invalida: preeclampsia se clasifica como leve o grave, no moderada.")
	}

	return criticalAlerts, actions, safetyBlocks, trace
}

// gynPharmacologyPreventionPathway covers contraception baseline checks,
// gestational diabetes thresholds, fetal neuroprotection and lymphedema.
func gynPharmacologyPreventionPathway(in GynecologyObstetricsInput) (actions, safetyBlocks, trace []string) {
	if in.OralContraceptionPlanned {
		if !in.BaselineHistoryCompleted {
			safetyBlocks = append(safetyBlocks, "Anticoncepcion oral sin historia clinica basal registrada.")
		}
		if !in.BaselineBPRecorded {
			safetyBlocks = append(safetyBlocks, "Anticoncepcion oral sin toma basal de tension arterial.")
		}
		if !in.BaselineBMIRecorded {
			safetyBlocks = append(safetyBlocks, "Anticoncepcion oral sin calculo basal de IMC.")
		}
		if in.RoutineCytologyRequiredBeforeOCP {
			safetyBlocks = append(safetyBlocks, "No exigir citologia rutinaria como requisito previo universal para ACO.")
		}
		if in.RoutineThrombophiliaPanelRequiredBeforeOCP {
			safetyBlocks = append(safetyBlocks, "No exigir trombofilia rutinaria antes de ACO sin indicacion clinica.")
		}

		switch in.ProgestinGeneration {
		case "second_levonorgestrel":
			actions = append(actions, "Progestageno de segunda generacion (levonorgestrel): menor riesgo relativo de tromboembolismo.")
		case "third", "fourth":
			actions = append(actions, "Progestageno de tercera/cuarta generacion: vigilar riesgo tromboembolico relativo superior.")
		}
	}

	if in.GestationalDiabetesOneStep75gPerformed {
		if in.FastingGlucoseMgDl != nil || in.Glucose1hMgDl != nil || in.Glucose2hMgDl != nil {
			gdmPositive := (in.FastingGlucoseMgDl != nil && *in.FastingGlucoseMgDl >= 92) ||
				(in.Glucose1hMgDl != nil && *in.Glucose1hMgDl >= 180) ||
				(in.Glucose2hMgDl != nil && *in.Glucose2hMgDl >= 153)
			if gdmPositive {
				actions = append(actions, "Sobrecarga oral 75g positiva (92/180/153): activar ruta de diabetes gestacional.")
			} else {
				trace = append(trace, "Sobrecarga oral 75g sin umbrales diagnosticos de diabetes gestacional.")
			}
		}
	}

	if in.FetalNeuroprotectionMagnesiumRequested {
		switch {
		case in.GestationalAgeWeeks != nil && *in.GestationalAgeWeeks < 32 && in.RiskOfImminentPretermBirth:
			actions = append(actions, "Neuroproteccion fetal con magnesio indicada (<32 semanas y parto inminente).")
		case in.RupturedMembranesPresent && in.CervixLongWithoutContractions:
			safetyBlocks = append(safetyBlocks, "Neuroproteccion fetal con magnesio no indicada en RPM con cuello largo sin dinamica uterina.")
		case in.GestationalAgeWeeks != nil && *in.GestationalAgeWeeks >= 32:
			safetyBlocks = append(safetyBlocks, "Neuroproteccion fetal con magnesio fuera de umbral (<32 semanas).")
		}
	}

	if in.ChronicLymphedemaPostOncologicSurgery && in.DiureticPrescriptionRequested {
		safetyBlocks = append(safetyBlocks, "Bloqueo de diureticos en linfedema cronico post-oncologico.")
		actions = append(actions, "Sugerir fisioterapia descongestiva y ejercicio fisico como manejo preferente.")
	}

	return actions, safetyBlocks, trace
}

func gynSeverity(criticalAlerts, safetyBlocks []string, hasActions bool) Severity {
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

// EvaluateGynecologyObstetrics builds the gyneco-obstetric support
// recommendation.
func EvaluateGynecologyObstetrics(in GynecologyObstetricsInput) GynecologyObstetricsRecommendation {
	criticalOncology, oncologyActions, oncologyTrace := gynHereditaryOncologyPathway(in)
	criticalUrgent, urgentActions, urgentTrace := gynUrgentGynecologyPathway(in)
	criticalObstetric, obstetricActions, obstetricTrace := gynObstetricPathway(in)
	criticalVaricella, infectiousActions, infectiousSafety := gynInfectiousVaricellaPathway(in)
	criticalPreeclampsia, preeclampsiaActions, preeclampsiaSafety, preeclampsiaTrace := gynPreeclampsiaPathway(in)
	pharmActions, pharmSafety, pharmTrace := gynPharmacologyPreventionPathway(in)

	criticalAlerts := append(append(append(append(append([]string{}, criticalOncology...), criticalUrgent...), criticalObstetric...), criticalVaricella...), criticalPreeclampsia...)
	safetyBlocks := append(append(append([]string{}, infectiousSafety...), preeclampsiaSafety...), pharmSafety...)
	hasActions := len(oncologyActions) > 0 || len(urgentActions) > 0 || len(obstetricActions) > 0 ||
		len(infectiousActions) > 0 || len(preeclampsiaActions) > 0 || len(pharmActions) > 0

	return GynecologyObstetricsRecommendation{
		SeverityLevel:                 gynSeverity(criticalAlerts, safetyBlocks, hasActions),
		CriticalAlerts:                criticalAlerts,
		HereditaryOncologyActions:     oncologyActions,
		UrgentGynecologyActions:       urgentActions,
		ObstetricMonitoringActions:    obstetricActions,
		InfectiousRiskActions:         infectiousActions,
		PreeclampsiaActions:           preeclampsiaActions,
		PharmacologyPreventionActions: pharmActions,
		SafetyBlocks:                  safetyBlocks,
		InterpretabilityTrace:         append(append(append(append([]string{}, oncologyTrace...), urgentTrace...), obstetricTrace...), append(preeclampsiaTrace, pharmTrace...)...),
		HumanValidationRequired:       true,
		NonDiagnosticWarning:          "Soporte operativo no diagnostico. Requiere validacion por ginecologia/obstetricia.",
	}
}

func init() {
	register("gynecology_obstetrics", typed((*GynecologyObstetricsInput).Validate, EvaluateGynecologyObstetrics))
}
