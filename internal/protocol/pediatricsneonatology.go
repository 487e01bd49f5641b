package protocol

import "fmt"

// Pediatrics and neonatology operational engine: measles isolation,
// neonatal resuscitation saturation targets, pertussis contact prophylaxis,
// intussusception triage and congenital syphilis stigmata.

// PediatricsNeonatologyInput is the clinical-operational input for
// pediatric/neonatal prioritization.
type PediatricsNeonatologyInput struct {
	PatientAgeMonths *int `json:"patient_age_months,omitempty"`
	PatientAgeYears  *int `json:"patient_age_years,omitempty"`

	HighFeverPresent                   bool `json:"high_fever_present"`
	PhotophobiaPresent                 bool `json:"photophobia_present"`
	CoughPresent                       bool `json:"cough_present"`
	KoplikSpotsPresent                 bool `json:"koplik_spots_present"`
	ConfluentMaculopapularRashPresent  bool `json:"confluent_maculopapular_rash_present"`
	CephalocaudalRashProgressionPresent bool `json:"cephalocaudal_rash_progression_present"`
	RedEyePresent                      bool `json:"red_eye_present"`
	KawasakiFeaturesPresent            bool `json:"kawasaki_features_present"`
	MMRDosesReceived                   *int `json:"mmr_doses_received,omitempty"`
	RespiratoryIsolationStarted        bool `json:"respiratory_isolation_started"`

	ApgarMinute1                       *int     `json:"apgar_minute_1,omitempty"`
	ApgarMinute5                       *int     `json:"apgar_minute_5,omitempty"`
	ApgarOnlyMinute0Recorded           bool     `json:"apgar_only_minute_0_recorded"`
	NeonatalHeartRateBpm               *int     `json:"neonatal_heart_rate_bpm,omitempty"`
	SpontaneousBreathingPresent        bool     `json:"spontaneous_breathing_present"`
	NeonatalRespiratoryDistressPresent bool     `json:"neonatal_respiratory_distress_present"`
	NeonatalCyanosisPresent            bool     `json:"neonatal_cyanosis_present"`
	MinuteOfLife                       *int     `json:"minute_of_life,omitempty"`
	OxygenSaturationPercent            *float64 `json:"oxygen_saturation_percent,omitempty"`
	GestationalAgeWeeks                *int     `json:"gestational_age_weeks,omitempty"`
	FiO2Percent                        *float64 `json:"fio2_percent,omitempty"`
	OxygenIncreaseRequested            bool     `json:"oxygen_increase_requested"`
	CPAPStarted                        bool     `json:"cpap_started"`

	ConfirmedPertussisCase               bool `json:"confirmed_pertussis_case"`
	HouseholdContact                     bool `json:"household_contact"`
	FaceToFaceSecretionsContact          bool `json:"face_to_face_secretions_contact"`
	NewbornOfInfectiousMotherAtDelivery  bool `json:"newborn_of_infectious_mother_at_delivery"`
	HealthcareAirwayExposureWithoutMask  bool `json:"healthcare_airway_exposure_without_mask"`
	MacrolideProphylaxisStarted          bool `json:"macrolide_prophylaxis_started"`
	DaysSinceEffectivePertussisTreatment *int `json:"days_since_effective_pertussis_treatment,omitempty"`
	DaysSincePertussisSymptomOnset       *int `json:"days_since_pertussis_symptom_onset,omitempty"`

	IntermittentColickyAbdominalPain             bool `json:"intermittent_colicky_abdominal_pain"`
	AsymptomaticIntervalsBetweenPain             bool `json:"asymptomatic_intervals_between_pain"`
	VomitingPresent                              bool `json:"vomiting_present"`
	CurrantJellyStoolPresent                     bool `json:"currant_jelly_stool_present"`
	PeritonitisSignsPresent                      bool `json:"peritonitis_signs_present"`
	RecentRespiratoryInfectionAdenovirusSuspected bool `json:"recent_respiratory_infection_adenovirus_suspected"`
	DaysSinceRotavirusVaccine                    *int `json:"days_since_rotavirus_vaccine,omitempty"`

	HutchinsonTeethPresent         bool `json:"hutchinson_teeth_present"`
	InterstitialKeratitisPresent   bool `json:"interstitial_keratitis_present"`
	SensorineuralDeafnessPresent   bool `json:"sensorineural_deafness_present"`
	SaddleNosePresent              bool `json:"saddle_nose_present"`
	MulberryMolarsPresent          bool `json:"mulberry_molars_present"`
	SaberShinsPresent              bool `json:"saber_shins_present"`
	FrontalBossingPresent          bool `json:"frontal_bossing_present"`
	CluttonJointsPresent           bool `json:"clutton_joints_present"`
	CongenitalHeartDiseasePresent  bool `json:"congenital_heart_disease_present"`

	Notes *string `json:"notes,omitempty"`
}

// PediatricsNeonatologyRecommendation is the structured pediatric/neonatal
// support output.
type PediatricsNeonatologyRecommendation struct {
	SeverityLevel                Severity `json:"severity_level"`
	CriticalAlerts               []string `json:"critical_alerts"`
	InfectiousExanthemActions    []string `json:"infectious_exanthem_actions"`
	NeonatalResuscitationActions []string `json:"neonatal_resuscitation_actions"`
	PertussisContactActions      []string `json:"pertussis_contact_actions"`
	SurgicalPediatricActions     []string `json:"surgical_pediatric_actions"`
	CongenitalSyphilisActions    []string `json:"congenital_syphilis_actions"`
	SafetyBlocks                 []string `json:"safety_blocks"`
	InterpretabilityTrace        []string `json:"interpretability_trace"`
	HumanValidationRequired      bool     `json:"human_validation_required"`
	NonDiagnosticWarning         string   `json:"non_diagnostic_warning"`
}

func (in *PediatricsNeonatologyInput) Validate() error {
	if err := inRangeI("patient_age_months", in.PatientAgeMonths, 0, 216); err != nil {
		return err
	}
	if err := inRangeI("patient_age_years", in.PatientAgeYears, 0, 18); err != nil {
		return err
	}
	if err := inRangeI("mmr_doses_received", in.MMRDosesReceived, 0, 2); err != nil {
		return err
	}
	if err := inRangeI("apgar_minute_1", in.ApgarMinute1, 0, 10); err != nil {
		return err
	}
	if err := inRangeI("apgar_minute_5", in.ApgarMinute5, 0, 10); err != nil {
		return err
	}
	if err := inRangeI("neonatal_heart_rate_bpm", in.NeonatalHeartRateBpm, 0, 300); err != nil {
		return err
	}
	if err := inRangeI("minute_of_life", in.MinuteOfLife, 0, 60); err != nil {
		return err
	}
	if err := inRangeF("oxygen_saturation_percent", in.OxygenSaturationPercent, 0, 100); err != nil {
		return err
	}
	if err := inRangeI("gestational_age_weeks", in.GestationalAgeWeeks, 22, 44); err != nil {
		return err
	}
	if err := inRangeF("fio2_percent", in.FiO2Percent, 21, 100); err != nil {
		return err
	}
	if err := inRangeI("days_since_effective_pertussis_treatment", in.DaysSinceEffectivePertussisTreatment, 0, 30); err != nil {
		return err
	}
	if err := inRangeI("days_since_pertussis_symptom_onset", in.DaysSincePertussisSymptomOnset, 0, 60); err != nil {
		return err
	}
	if err := inRangeI("days_since_rotavirus_vaccine", in.DaysSinceRotavirusVaccine, 0, 90); err != nil {
		return err
	}
	return validateNotes("notes", in.Notes)
}

// pedsMeaslesPathway covers the prodrome triad, Koplik spots, vaccination
// schedule review and the Kawasaki differential.
func pedsMeaslesPathway(in PediatricsNeonatologyInput) (criticalAlerts, actions, safetyBlocks, trace []string) {
	prodromeTriad := in.HighFeverPresent && in.PhotophobiaPresent && in.CoughPresent
	exanthemPattern := in.ConfluentMaculopapularRashPresent && in.CephalocaudalRashProgressionPresent
	measlesSuspected := prodromeTriad && (in.KoplikSpotsPresent || exanthemPattern)

	if measlesSuspected {
		criticalAlerts = append(criticalAlerts, "Sospecha alta de sarampion: activar aislamiento respiratorio inmediato.")
		actions = append(actions, "Priorizar notificacion y circuito de aislamiento respiratorio por cuadro exantematico.")
		trace = append(trace, "Regla de sarampion activada por triada prodromica con tos.")
		if !in.RespiratoryIsolationStarted {
			safetyBlocks = append(safetyBlocks, "Sospecha de sarampion sin aislamiento respiratorio iniciado.")
		}
	}

	if in.KoplikSpotsPresent {
		actions = append(actions, "Manchas de Koplik presentes: hallazgo altamente sugestivo de sarampion.")
	}

	if in.PatientAgeMonths != nil {
		switch {
		case *in.PatientAgeMonths < 12:
			actions = append(actions, "Lactante <12 meses: puede estar correctamente vacunado para su edad y seguir susceptible.")
		case in.MMRDosesReceived != nil && *in.MMRDosesReceived == 0:
			safetyBlocks = append(safetyBlocks, "Paciente con edad de primera dosis (>12 meses) sin triple virica registrada.")
		case *in.PatientAgeMonths >= 36 && in.MMRDosesReceived != nil && *in.MMRDosesReceived < 2:
			actions = append(actions, "Esquema triple virica incompleto para edad >=3 anios: revisar cobertura vacunal.")
		}
	}

	if in.RedEyePresent {
		actions = append(actions, "Ojo rojo en cuadro febril/exantematico: incluir diferencial con enfermedad de Kawasaki.")
		if in.KawasakiFeaturesPresent {
			criticalAlerts = append(criticalAlerts, "Signos compatibles con Kawasaki en diferencial de sarampion: priorizar valoracion pediatrica.")
		}
	}

	return criticalAlerts, actions, safetyBlocks, trace
}

// pedsNeonatalResuscitationPathway covers Apgar registration, CPAP
// escalation and minute-of-life saturation targets.
func pedsNeonatalResuscitationPathway(in PediatricsNeonatologyInput) (criticalAlerts, actions, safetyBlocks, trace []string) {
	if in.ApgarOnlyMinute0Recorded {
		safetyBlocks = append(safetyBlocks, "Registro Apgar en minuto 0 no valida la escala: registrar minuto 1 y 5.")
	}
	if in.ApgarMinute1 == nil {
		safetyBlocks = append(safetyBlocks, "Falta Apgar del minuto 1.")
	}
	if in.ApgarMinute5 == nil {
		safetyBlocks = append(safetyBlocks, "Falta Apgar del minuto 5.")
	}

	positiveInitialEval := in.NeonatalHeartRateBpm != nil && *in.NeonatalHeartRateBpm > 100 &&
		in.SpontaneousBreathingPresent
	if positiveInitialEval {
		actions = append(actions, "Evaluacion inicial positiva (FC>100 y respiracion espontanea).")
		if in.NeonatalRespiratoryDistressPresent {
			actions = append(actions, "Distres respiratorio con FC>100: modalidad inicial recomendada CPAP.")
			trace = append(trace, "Regla de CPAP activada por FC>100 con distres respiratorio.")
			if !in.CPAPStarted {
				safetyBlocks = append(safetyBlocks, "Distres neonatal con FC>100 sin CPAP iniciada.")
			}
		}
	}

	if in.GestationalAgeWeeks != nil && *in.GestationalAgeWeeks > 30 &&
		in.FiO2Percent != nil && *in.FiO2Percent < 21 {
		safetyBlocks = append(safetyBlocks, "FiO2 por debajo de 21% en RN >30 semanas.")
	}

	minuteTargets := map[int][2]float64{
		3:  {60, 80},
		5:  {75, 85},
		10: {85, 90},
	}
	if in.MinuteOfLife != nil && in.OxygenSaturationPercent != nil {
		if target, ok := minuteTargets[*in.MinuteOfLife]; ok {
			low, high := target[0], target[1]
			sat := *in.OxygenSaturationPercent
			if sat < low {
				actions = append(actions, fmt.Sprintf("SatO2 por debajo del objetivo al minuto %d: ajustar soporte ventilatorio.", *in.MinuteOfLife))
			} else if sat > high {
				actions = append(actions, fmt.Sprintf("SatO2 por encima del objetivo al minuto %d: evitar hiperoxia.", *in.MinuteOfLife))
			}

			minute3Block := *in.MinuteOfLife == 3 &&
				in.NeonatalHeartRateBpm != nil && *in.NeonatalHeartRateBpm > 100 &&
				in.NeonatalCyanosisPresent && sat >= low && sat <= high
			if minute3Block {
				trace = append(trace, "Minuto 3 con FC>100 y SatO2 en rango 60-80: no escalar oxigeno.")
				if in.OxygenIncreaseRequested {
					safetyBlocks = append(safetyBlocks, "Bloqueo: no aumentar O2 si SatO2 minuto 3 esta en 60-80 con FC>100; priorizar CPAP 21%.")
				}
				actions = append(actions, "Con cianosis y SatO2 objetivo al minuto 3: mantener CPAP con FiO2 21%.")
			}
		}
	}

	if in.GestationalAgeWeeks != nil && *in.GestationalAgeWeeks > 30 &&
		in.FiO2Percent != nil && *in.FiO2Percent > 21 &&
		in.MinuteOfLife != nil && *in.MinuteOfLife <= 3 {
		actions = append(actions, "RN >30 semanas: revisar necesidad de FiO2 >21% al inicio para evitar hiperoxia.")
	}

	return criticalAlerts, actions, safetyBlocks, trace
}

// pedsPertussisContactsPathway applies universal close-contact prophylaxis
// and contagiousness windows.
func pedsPertussisContactsPathway(in PediatricsNeonatologyInput) (criticalAlerts, actions, trace []string) {
	closeContact := in.HouseholdContact || in.FaceToFaceSecretionsContact ||
		in.NewbornOfInfectiousMotherAtDelivery || in.HealthcareAirwayExposureWithoutMask
	if in.ConfirmedPertussisCase && closeContact {
		actions = append(actions, "Contacto estrecho de tosferina: indicar profilaxis con azitromicina 5 dias o claritromicina 7 dias.")
		actions = append(actions, "Aplicar profilaxis a convivientes independientemente de edad o estado vacunal.")
		trace = append(trace, "Regla de profilaxis universal en contactos estrechos activada.")
		if !in.MacrolideProphylaxisStarted {
			criticalAlerts = append(criticalAlerts, "Contacto estrecho de tosferina sin profilaxis macrolida iniciada.")
		}
	}

	if in.HealthcareAirwayExposureWithoutMask {
		actions = append(actions, "Personal sanitario con exposicion de via aerea sin mascarilla: indicar profilaxis.")
	}

	if in.DaysSinceEffectivePertussisTreatment != nil {
		if *in.DaysSinceEffectivePertussisTreatment < 5 {
			actions = append(actions, "Paciente con tosferina sigue contagioso hasta completar 5 dias de tratamiento eficaz.")
		}
	} else if in.DaysSincePertussisSymptomOnset != nil {
		if *in.DaysSincePertussisSymptomOnset <= 21 {
			actions = append(actions, "Sin tratamiento eficaz, considerar contagiosidad hasta 21 dias desde inicio de sintomas.")
		}
	}

	return criticalAlerts, actions, trace
}

// pedsIntussusceptionPathway covers the typical colic pattern in the 6-24
// month risk window.
func pedsIntussusceptionPathway(in PediatricsNeonatologyInput) (criticalAlerts, actions, trace []string) {
	inRiskAge := in.PatientAgeMonths != nil && *in.PatientAgeMonths >= 6 && *in.PatientAgeMonths <= 24
	typicalColicPattern := in.IntermittentColickyAbdominalPain && in.AsymptomaticIntervalsBetweenPain
	if inRiskAge && typicalColicPattern {
		criticalAlerts = append(criticalAlerts, "Sospecha de invaginacion intestinal (6-24 meses con colico intermitente).")
		actions = append(actions, "Priorizar evaluacion por obstruccion intestinal y confirmar localizacion iliocecal.")
		trace = append(trace, "Regla de invaginacion activada por patron clinico tipico.")
	}

	if in.PeritonitisSignsPresent {
		criticalAlerts = append(criticalAlerts, "Signos de peritonitis en probable invaginacion: riesgo de gangrena/perforacion.")
	}

	if in.RecentRespiratoryInfectionAdenovirusSuspected {
		actions = append(actions, "Antecedente respiratorio reciente compatible con adenovirus: factor asociado a invaginacion.")
	}

	if in.DaysSinceRotavirusVaccine != nil && *in.DaysSinceRotavirusVaccine <= 21 {
		actions = append(actions, "Cuadro dentro de 3 semanas post-vacuna rotavirus: considerar aumento ligero de riesgo sin contraindicar vacunacion.")
	}

	return criticalAlerts, actions, trace
}

// pedsCongenitalSyphilisPathway counts Hutchinson triad features and other
// late stigmata.
func pedsCongenitalSyphilisPathway(in PediatricsNeonatologyInput) (criticalAlerts, actions, trace []string) {
	hutchinsonCount := 0
	for _, present := range []bool{in.HutchinsonTeethPresent, in.InterstitialKeratitisPresent, in.SensorineuralDeafnessPresent} {
		if present {
			hutchinsonCount++
		}
	}
	if hutchinsonCount >= 2 {
		criticalAlerts = append(criticalAlerts, "Estigmas tardios compatibles con sifilis congenita (triada de Hutchinson parcial/completa).")
		trace = append(trace, "Regla de sifilis congenita tardia activada por triada de Hutchinson.")
	}

	if in.SaddleNosePresent || in.MulberryMolarsPresent || in.SaberShinsPresent ||
		in.FrontalBossingPresent || in.CluttonJointsPresent {
		actions = append(actions, "Estigmas tardios adicionales presentes (nariz en silla de montar, molares de Morera, tibias en sable, frente prominente o articulaciones de Clutton).")
	}

	if in.CongenitalHeartDiseasePresent {
		actions = append(actions, "Cardiopatia congenita no es manifestacion tipica de sifilis congenita: ampliar diferencial.")
	}

	return criticalAlerts, actions, trace
}

func pedsSeverity(criticalAlerts, safetyBlocks []string, hasActions bool) Severity {
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

// EvaluatePediatricsNeonatology builds the pediatric/neonatal support
// recommendation.
func EvaluatePediatricsNeonatology(in PediatricsNeonatologyInput) PediatricsNeonatologyRecommendation {
	criticalMeasles, measlesActions, measlesSafety, measlesTrace := pedsMeaslesPathway(in)
	criticalNeonatal, neonatalActions, neonatalSafety, neonatalTrace := pedsNeonatalResuscitationPathway(in)
	criticalPertussis, pertussisActions, pertussisTrace := pedsPertussisContactsPathway(in)
	criticalSurgical, surgicalActions, surgicalTrace := pedsIntussusceptionPathway(in)
	criticalSyphilis, syphilisActions, syphilisTrace := pedsCongenitalSyphilisPathway(in)

	criticalAlerts := append(append(append(append(append([]string{}, criticalMeasles...), criticalNeonatal...), criticalPertussis...), criticalSurgical...), criticalSyphilis...)
	safetyBlocks := append(append([]string{}, measlesSafety...), neonatalSafety...)
	hasActions := len(measlesActions) > 0 || len(neonatalActions) > 0 ||
		len(pertussisActions) > 0 || len(surgicalActions) > 0 || len(syphilisActions) > 0

	return PediatricsNeonatologyRecommendation{
		SeverityLevel:                pedsSeverity(criticalAlerts, safetyBlocks, hasActions),
		CriticalAlerts:               criticalAlerts,
		InfectiousExanthemActions:    measlesActions,
		NeonatalResuscitationActions: neonatalActions,
		PertussisContactActions:      pertussisActions,
		SurgicalPediatricActions:     surgicalActions,
		CongenitalSyphilisActions:    syphilisActions,
		SafetyBlocks:                 safetyBlocks,
		InterpretabilityTrace:        append(append(append(append(append([]string{}, measlesTrace...), neonatalTrace...), pertussisTrace...), surgicalTrace...), syphilisTrace...),
		HumanValidationRequired:      true,
		NonDiagnosticWarning:         "Soporte operativo no diagnostico. Requiere validacion por pediatria/neonatologia.",
	}
}

func init() {
	register("pediatrics_neonatology", typed((*PediatricsNeonatologyInput).Validate, EvaluatePediatricsNeonatology))
}
