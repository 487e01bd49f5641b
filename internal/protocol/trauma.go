package protocol

import "fmt"

// Trauma operational engine: mortality phase windows, airway triad rules,
// spinal syndromes, crush, hypothermia staging, Gustilo grading and a
// condition matrix for tabular display.

const traumaSource = "CCM 2025 - Especialidad Urgencias"

var traumaProfiles = map[string]bool{
	"adulto": true, "geriatrico": true, "pediatrico": true, "embarazada": true,
}

// TraumaInput is the structured input for trauma prioritization.
type TraumaInput struct {
	MinutesSinceTrauma      int  `json:"minutes_since_trauma"`
	PrehospitalDelayMinutes *int `json:"prehospital_delay_minutes,omitempty"`

	SuspectedMajorBrainInjury    bool `json:"suspected_major_brain_injury"`
	SuspectedMajorVascularInjury bool `json:"suspected_major_vascular_injury"`
	EpiduralHematomaSuspected    bool `json:"epidural_hematoma_suspected"`
	MassiveHemothoraxSuspected   bool `json:"massive_hemothorax_suspected"`
	SplenicRuptureSuspected      bool `json:"splenic_rupture_suspected"`
	SepsisSignsPostStabilization bool `json:"sepsis_signs_post_stabilization"`
	PersistentOrganDysfunction   bool `json:"persistent_organ_dysfunction"`

	LaryngealFracturePalpable     bool `json:"laryngeal_fracture_palpable"`
	HoarsenessPresent             bool `json:"hoarseness_present"`
	SubcutaneousEmphysemaPresent  bool `json:"subcutaneous_emphysema_present"`
	AgitationPresent              bool `json:"agitation_present"`
	StuporPresent                 bool `json:"stupor_present"`
	IntercostalRetractionsPresent bool `json:"intercostal_retractions_present"`
	AccessoryMuscleUsePresent     bool `json:"accessory_muscle_use_present"`

	HyperthermiaPresent bool `json:"hyperthermia_present"`
	HypercapniaPresent  bool `json:"hypercapnia_present"`
	AcidosisPresent     bool `json:"acidosis_present"`

	MotorLossArmsMoreThanLegs        bool `json:"motor_loss_arms_more_than_legs"`
	MotorLossGlobal                  bool `json:"motor_loss_global"`
	SensoryLossGlobal                bool `json:"sensory_loss_global"`
	PreservedVibrationProprioception bool `json:"preserved_vibration_proprioception"`
	IpsilateralMotorVibrationLoss    bool `json:"ipsilateral_motor_vibration_loss"`
	ContralateralPainTemperatureLoss bool `json:"contralateral_pain_temperature_loss"`

	CrushInjurySuspected     bool `json:"crush_injury_suspected"`
	HyperkalemiaRisk         bool `json:"hyperkalemia_risk"`
	HyperphosphatemiaPresent bool `json:"hyperphosphatemia_present"`
	ECGSeriesStarted         bool `json:"ecg_series_started"`

	PatientProfile              string `json:"patient_profile"`
	PregnancyWeeks              *int   `json:"pregnancy_weeks,omitempty"`
	LeftLateralDecubitusApplied bool   `json:"left_lateral_decubitus_applied"`
	BroselowTapeUsed            bool   `json:"broselow_tape_used"`
	SniffingPositionApplied     bool   `json:"sniffing_position_applied"`

	CoreTemperatureCelsius *float64 `json:"core_temperature_celsius,omitempty"`
	OsbornJWavePresent     bool     `json:"osborn_j_wave_present"`

	OpenFractureWoundCm     *float64 `json:"open_fracture_wound_cm,omitempty"`
	HighEnergyOpenFracture  bool     `json:"high_energy_open_fracture"`

	HeartRateBPM         *int `json:"heart_rate_bpm,omitempty"`
	SystolicBPmmHg       *int `json:"systolic_bp_mm_hg,omitempty"`
	RespiratoryRateRPM   *int `json:"respiratory_rate_rpm,omitempty"`
	UrineOutputMlH       *int `json:"urine_output_ml_h,omitempty"`
	EstimatedBloodLossMl *int `json:"estimated_blood_loss_ml,omitempty"`

	ChestPainPresent               bool `json:"chest_pain_present"`
	DyspneaPresent                 bool `json:"dyspnea_present"`
	CyanosisPresent                bool `json:"cyanosis_present"`
	PercussionHyperresonancePresent bool `json:"percussion_hyperresonance_present"`
	TrachealDeviationPresent       bool `json:"tracheal_deviation_present"`

	BeckHypotensionPresent        bool `json:"beck_hypotension_present"`
	BeckMuffledHeartSoundsPresent bool `json:"beck_muffled_heart_sounds_present"`
	BeckJVDPresent                bool `json:"beck_jvd_present"`

	GlasgowComaScale             *int `json:"glasgow_coma_scale,omitempty"`
	VomitingPresent              bool `json:"vomiting_present"`
	AmnesiaPresent               bool `json:"amnesia_present"`
	FocalNeurologicDeficitPresent bool `json:"focal_neurologic_deficit_present"`

	CompartmentPressureMmHg        *int `json:"compartment_pressure_mm_hg,omitempty"`
	CompartmentPainOutOfProportion bool `json:"compartment_pain_out_of_proportion"`
	CompartmentParesthesias        bool `json:"compartment_paresthesias"`
	CompartmentPallor              bool `json:"compartment_pallor"`
	CompartmentPulselessness       bool `json:"compartment_pulselessness"`
	CompartmentParalysis           bool `json:"compartment_paralysis"`

	BurnTBSAPercent           *float64 `json:"burn_tbsa_percent,omitempty"`
	BurnAirwayInjurySuspected bool     `json:"burn_airway_injury_suspected"`

	Notes *string `json:"notes,omitempty"`
}

// TraumaConditionCard is one row of the tabular condition matrix.
type TraumaConditionCard struct {
	Condition                   string   `json:"condition"`
	ClassificationCategory      string   `json:"classification_category"`
	KeySignsSymptoms            []string `json:"key_signs_symptoms"`
	DiagnosticMethod            []string `json:"diagnostic_method"`
	InitialImmediateTreatment   []string `json:"initial_immediate_treatment"`
	DefinitiveSurgicalTreatment []string `json:"definitive_surgical_treatment"`
	TechnicalObservations       []string `json:"technical_observations"`
	Source                      string   `json:"source"`
}

// TraumaRecommendation is the interpretable trauma output.
type TraumaRecommendation struct {
	MortalityPhaseRisk string `json:"mortality_phase_risk"`
	TeclaTiclaPriority string `json:"tecla_ticla_priority"`

	LaryngealTraumaTriadPresent bool     `json:"laryngeal_trauma_triad_present"`
	AirwayPriorityLevel         string   `json:"airway_priority_level"`
	AirwayRedFlags              []string `json:"airway_red_flags"`
	OxygenCurveShiftRightRisk   bool     `json:"oxygen_curve_shift_right_risk"`

	SuspectedSpinalSyndrome string `json:"suspected_spinal_syndrome"`

	CrushSyndromeAlert   bool     `json:"crush_syndrome_alert"`
	RenalFailureRiskHigh bool     `json:"renal_failure_risk_high"`
	SerialECGRequired    bool     `json:"serial_ecg_required"`
	CrushComplications   []string `json:"crush_complications"`

	HypothermiaStage  string   `json:"hypothermia_stage"`
	HypothermiaAlerts []string `json:"hypothermia_alerts"`

	OpenFractureGustiloGrade         string `json:"open_fracture_gustilo_grade"`
	AntibioticCoverageRecommendation string `json:"antibiotic_coverage_recommendation"`

	ConditionMatrix          []TraumaConditionCard `json:"condition_matrix"`
	SpecialPopulationActions []string              `json:"special_population_actions"`
	PrimaryActions           []string              `json:"primary_actions"`
	Alerts                   []string              `json:"alerts"`
	SeverityLevel            Severity              `json:"severity_level"`
	InterpretabilityTrace    []string              `json:"interpretability_trace"`
	HumanValidationRequired  bool                  `json:"human_validation_required"`
	NonDiagnosticWarning     string                `json:"non_diagnostic_warning"`
}

func (in *TraumaInput) Validate() error {
	if in.MinutesSinceTrauma < 0 || in.MinutesSinceTrauma > 10080 {
		return invalidf("minutes_since_trauma", "must be between 0 and 10080")
	}
	if err := inRangeI("prehospital_delay_minutes", in.PrehospitalDelayMinutes, 0, 720); err != nil {
		return err
	}
	if in.PatientProfile == "" {
		in.PatientProfile = "adulto"
	}
	if !traumaProfiles[in.PatientProfile] {
		return invalidf("patient_profile", "unknown value %q", in.PatientProfile)
	}
	if err := inRangeI("pregnancy_weeks", in.PregnancyWeeks, 0, 45); err != nil {
		return err
	}
	if err := inRangeF("core_temperature_celsius", in.CoreTemperatureCelsius, 20, 45); err != nil {
		return err
	}
	if err := inRangeF("open_fracture_wound_cm", in.OpenFractureWoundCm, 0, 80); err != nil {
		return err
	}
	if err := inRangeI("heart_rate_bpm", in.HeartRateBPM, 0, 260); err != nil {
		return err
	}
	if err := inRangeI("systolic_bp_mm_hg", in.SystolicBPmmHg, 20, 300); err != nil {
		return err
	}
	if err := inRangeI("respiratory_rate_rpm", in.RespiratoryRateRPM, 0, 80); err != nil {
		return err
	}
	if err := inRangeI("urine_output_ml_h", in.UrineOutputMlH, 0, 1000); err != nil {
		return err
	}
	if err := inRangeI("estimated_blood_loss_ml", in.EstimatedBloodLossMl, 0, 10000); err != nil {
		return err
	}
	if err := inRangeI("glasgow_coma_scale", in.GlasgowComaScale, 3, 15); err != nil {
		return err
	}
	if err := inRangeI("compartment_pressure_mm_hg", in.CompartmentPressureMmHg, 0, 150); err != nil {
		return err
	}
	if err := inRangeF("burn_tbsa_percent", in.BurnTBSAPercent, 0, 100); err != nil {
		return err
	}
	return validateNotes("notes", in.Notes)
}

// Trimodal mortality distribution: immediate, early (golden period), late.
func traumaMortalityPhase(in TraumaInput) string {
	if in.SuspectedMajorBrainInjury || in.SuspectedMajorVascularInjury {
		return "immediate"
	}
	if in.EpiduralHematomaSuspected || in.MassiveHemothoraxSuspected ||
		in.SplenicRuptureSuspected || in.MinutesSinceTrauma <= 360 {
		return "early"
	}
	if in.SepsisSignsPostStabilization || in.PersistentOrganDysfunction {
		return "late"
	}
	return "mixed"
}

func traumaTeclaTiclaPriority(in TraumaInput, phase string) string {
	if phase == "immediate" {
		return "nivel_i"
	}
	if phase == "early" && in.MinutesSinceTrauma <= 360 {
		return "nivel_i"
	}
	if phase == "early" || phase == "late" {
		return "nivel_ii"
	}
	return "monitorizacion_estrecha"
}

func traumaLaryngealTriad(in TraumaInput) bool {
	return in.LaryngealFracturePalpable && in.HoarsenessPresent && in.SubcutaneousEmphysemaPresent
}

func traumaAirwayRedFlags(in TraumaInput, triad bool) []string {
	var flags []string
	if triad {
		flags = append(flags, "Triada de trauma laringeo completa: activar via aerea dificil/quirurgica inmediata.")
	}
	if in.AgitationPresent {
		flags = append(flags, "Agitacion compatible con hipoxemia en progreso.")
	}
	if in.StuporPresent {
		flags = append(flags, "Estupor compatible con hipercapnia severa.")
	}
	if in.IntercostalRetractionsPresent || in.AccessoryMuscleUsePresent {
		flags = append(flags, "Tiraje o uso de musculos accesorios: riesgo de fatiga respiratoria.")
	}
	return flags
}

func traumaAirwayPriority(in TraumaInput, triad bool) string {
	if triad {
		return "nivel_i"
	}
	if in.StuporPresent || in.IntercostalRetractionsPresent || in.AccessoryMuscleUsePresent {
		return "alto"
	}
	return "moderado"
}

func traumaSpinalSyndrome(in TraumaInput) string {
	if in.IpsilateralMotorVibrationLoss && in.ContralateralPainTemperatureLoss {
		return "brown_sequard"
	}
	if in.MotorLossGlobal && in.SensoryLossGlobal && in.PreservedVibrationProprioception {
		return "anterior_cord"
	}
	if in.MotorLossArmsMoreThanLegs {
		return "central_cord"
	}
	return "indeterminado"
}

func traumaHypothermiaStage(in TraumaInput) string {
	if in.CoreTemperatureCelsius == nil {
		return "none"
	}
	temp := *in.CoreTemperatureCelsius
	switch {
	case temp < 28:
		return "severe"
	case temp < 32:
		return "moderate"
	case temp < 35:
		return "mild"
	default:
		return "none"
	}
}

func traumaHypothermiaAlerts(in TraumaInput, stage string) []string {
	var alerts []string
	temp := in.CoreTemperatureCelsius
	if stage == "mild" || stage == "moderate" || stage == "severe" {
		alerts = append(alerts, "Hipotermia detectada: iniciar recalentamiento segun gravedad.")
	}
	if in.OsbornJWavePresent || (temp != nil && *temp < 31) {
		alerts = append(alerts, "Ondas J de Osborne probables/presentes: vigilar inestabilidad electrica.")
	}
	if temp != nil && *temp <= 28 {
		alerts = append(alerts, "Riesgo alto de fibrilacion ventricular por temperatura <=28C.")
	}
	if temp != nil && *temp <= 24 {
		alerts = append(alerts, "Riesgo de asistolia por temperatura <=24C.")
	}
	return alerts
}

func traumaGustiloGrade(in TraumaInput) string {
	if in.OpenFractureWoundCm == nil && !in.HighEnergyOpenFracture {
		return "no_aplica"
	}
	if in.HighEnergyOpenFracture {
		return "grado_iii"
	}
	wound := 0.0
	if in.OpenFractureWoundCm != nil {
		wound = *in.OpenFractureWoundCm
	}
	switch {
	case wound < 1:
		return "grado_i"
	case wound <= 10:
		return "grado_ii"
	default:
		return "grado_iii"
	}
}

func traumaAntibioticCoverage(grade string) string {
	switch grade {
	case "grado_i":
		return "Cobertura inicial para Gram positivos."
	case "grado_ii":
		return "Cobertura para Gram positivos y ampliacion segun contaminacion/localizacion."
	case "grado_iii":
		return "Cobertura amplia Gram positivos + Gram negativos (cefalosporina + aminoglucosido)."
	default:
		return "No aplica en este episodio (sin fractura expuesta declarada)."
	}
}

func traumaSpecialPopulationActions(in TraumaInput) []string {
	var actions []string
	switch in.PatientProfile {
	case "geriatrico":
		actions = append(actions,
			"En geriatria, la caida es causa frecuente: considerar neuroimagen con umbral bajo.",
			"Evitar sobrecarga de fluidos por fragilidad renal.")
	case "pediatrico":
		if in.BroselowTapeUsed {
			actions = append(actions, "Usar cinta de Broselow para dosis/dispositivos.")
		} else {
			actions = append(actions, "Activar cinta de Broselow para estimacion de dosis/dispositivos.")
		}
		if in.SniffingPositionApplied {
			actions = append(actions, "Mantener posicion de olfateo para via aerea pediatrica.")
		} else {
			actions = append(actions, "Aplicar posicion de olfateo para alinear ejes de via aerea pediatrica.")
		}
	case "embarazada":
		if in.LeftLateralDecubitusApplied {
			actions = append(actions, "Decubito lateral izquierdo 15-30 grados activo.")
		} else {
			actions = append(actions, "Aplicar decubito lateral izquierdo 15-30 grados de forma inmediata.")
		}
		actions = append(actions, "Considerar anemia fisiologica gestacional e hiperventilacion basal en la interpretacion.")
	}
	return actions
}

func traumaPrimaryActions(in TraumaInput, phase string, triad bool, stage string) []string {
	actions := []string{
		"Iniciar revision primaria X-ABCDE en 2-5 minutos.",
		"Oxigeno suplementario y control de hemorragia (Stop the bleeding).",
		"Inmovilizacion cervical con collarin rigido hasta descartar lesion.",
	}
	if phase == "immediate" || phase == "early" {
		actions = append(actions, "Optimizar TECLA/TICLA en periodo de oro para reducir mortalidad temprana.")
	}
	if triad {
		actions = append(actions, "Activar equipo de via aerea dificil y preparar acceso quirurgico de rescate.")
	}
	if in.CrushInjurySuspected {
		actions = append(actions, "Iniciar protocolo de aplastamiento y solicitar ECG seriados.")
	}
	if stage == "moderate" || stage == "severe" {
		actions = append(actions, "Combinar recalentamiento externo e interno con soluciones a 40C segun recursos.")
	}
	return actions
}

func traumaHemorrhagicShockGrade(in TraumaInput) int {
	blood := 0
	if in.EstimatedBloodLossMl != nil {
		blood = *in.EstimatedBloodLossMl
	}
	switch {
	case blood > 2000:
		return 4
	case blood > 1500:
		return 3
	case blood > 750:
		return 2
	default:
		return 1
	}
}

func traumaTensionPneumothorax(in TraumaInput) bool {
	return in.DyspneaPresent && in.PercussionHyperresonancePresent && in.TrachealDeviationPresent
}

func traumaCardiacTamponade(in TraumaInput) bool {
	return in.BeckHypotensionPresent && in.BeckMuffledHeartSoundsPresent && in.BeckJVDPresent
}

func traumaConditionCards(in TraumaInput) []TraumaConditionCard {
	cards := []TraumaConditionCard{
		{
			Condition:              "Paciente Politraumatizado",
			ClassificationCategory: "Revision Primaria (ABCDE)",
			KeySignsSymptoms: []string{
				"Lesiones con riesgo de vida, extremidad u organo",
				"Hemorragia activa",
			},
			DiagnosticMethod: []string{
				"Evaluacion clinica 2-5 min",
				"Protocolo X-ABCDE",
				"Gasometria (pH, lactato, deficit de base)",
				"Rx pelvis AP y torax AP",
			},
			InitialImmediateTreatment: []string{
				"Oxigeno suplementario",
				"Control de hemorragia",
				"Inmovilizacion cervical con collarin rigido",
			},
			DefinitiveSurgicalTreatment: []string{
				"Manejo segun revision secundaria y cirugia si hay compromiso inminente",
			},
			TechnicalObservations: []string{
				"Toda victima de trauma se considera con fractura cervical hasta descartarla",
				"La uresis es indicador clave de reanimacion",
			},
			Source: traumaSource,
		},
		{
			Condition:              "Choque Hipovolemico (Hemorragico)",
			ClassificationCategory: fmt.Sprintf("Estado de Choque (Grado %d)", traumaHemorrhagicShockGrade(in)),
			KeySignsSymptoms: []string{
				"Perdida hematica",
				"Taquicardia",
				"Hipotension (habitual desde grado 3)",
				"Alteracion del estado de conciencia",
			},
			DiagnosticMethod: []string{
				"Estimacion de perdida hematica",
				"Frecuencia cardiaca y tension arterial",
				"Frecuencia respiratoria y uresis",
			},
			InitialImmediateTreatment: []string{
				"Reanimacion con cristaloides",
				"Control de fuente de sangrado",
			},
			DefinitiveSurgicalTreatment: []string{
				"Transfusion de hemoderivados",
				"Cirugia de control de danos segun necesidad",
			},
			TechnicalObservations: []string{"Es el tipo de choque mas frecuente en trauma."},
			Source:                traumaSource,
		},
	}

	if traumaTensionPneumothorax(in) {
		cards = append(cards, TraumaConditionCard{
			Condition:              "Neumotorax a Tension",
			ClassificationCategory: "Trauma de Torax / Choque Obstructivo",
			KeySignsSymptoms: []string{
				"Dolor toracico",
				"Disnea",
				"Taquicardia/hipotension",
				"Hiperresonancia",
				"Desviacion traqueal",
			},
			DiagnosticMethod: []string{
				"Diagnostico clinico prioritario",
				"Rx torax (si no retrasa descompresion)",
			},
			InitialImmediateTreatment: []string{
				"Descompresion con aguja en 5to espacio intercostal linea axilar",
			},
			DefinitiveSurgicalTreatment: []string{"Tubo de pleurostomia con sello pleural"},
			TechnicalObservations:       []string{"Produce choque obstructivo por menor retorno venoso."},
			Source:                      traumaSource,
		})
	}

	if traumaCardiacTamponade(in) {
		cards = append(cards, TraumaConditionCard{
			Condition:              "Taponamiento Cardiaco",
			ClassificationCategory: "Trauma de Torax / Choque Obstructivo",
			KeySignsSymptoms: []string{
				"Triada de Beck: hipotension, ruidos cardiacos velados, ingurgitacion yugular",
			},
			DiagnosticMethod: []string{
				"Clinico",
				"FAST ventana pericardica",
				"ECG con alternancia electrica",
			},
			InitialImmediateTreatment:   []string{"Pericardiocentesis"},
			DefinitiveSurgicalTreatment: []string{"Toracotomia quirurgica"},
			TechnicalObservations: []string{
				"La sangre pericardica impide sistole/diastole efectivas.",
			},
			Source: traumaSource,
		})
	}

	if in.GlasgowComaScale != nil {
		cards = append(cards, TraumaConditionCard{
			Condition:              "Traumatismo Craneoencefalico (TCE)",
			ClassificationCategory: "Trauma Neurologico",
			KeySignsSymptoms: []string{
				"Alteracion del estado de alerta",
				"Vomitos/amnesia",
				"Focalizacion neurologica",
			},
			DiagnosticMethod: []string{"Escala de Glasgow", "TAC craneo como estudio de eleccion"},
			InitialImmediateTreatment: []string{
				"Asegurar via aerea si Glasgow <=8",
				"Mantener normocarnia, normoxemia y normoglucemia",
			},
			DefinitiveSurgicalTreatment: []string{
				"Neurocirugia para evacuacion de hematoma segun clasificacion",
			},
			TechnicalObservations: []string{
				"Epidural: biconvexo (arterial). Subdural: media luna (venoso).",
			},
			Source: traumaSource,
		})
	}

	if in.CompartmentPressureMmHg != nil || in.CompartmentPainOutOfProportion {
		cards = append(cards, TraumaConditionCard{
			Condition:              "Sindrome Compartimental",
			ClassificationCategory: "Trauma Musculoesqueletico",
			KeySignsSymptoms: []string{
				"6P: parestesias, dolor, presion, palidez, ausencia de pulso, paralisis",
			},
			DiagnosticMethod: []string{
				"Clinico",
				"Presion compartimental (>35 mmHg)",
			},
			InitialImmediateTreatment:   []string{"Retirar yesos o vendajes compresivos"},
			DefinitiveSurgicalTreatment: []string{"Fasciotomia urgente"},
			TechnicalObservations: []string{
				"Ventana critica aproximada de 8 horas para evitar dano irreversible.",
			},
			Source: traumaSource,
		})
	}

	if in.BurnTBSAPercent != nil {
		cards = append(cards, TraumaConditionCard{
			Condition:              "Quemaduras",
			ClassificationCategory: "Emergencia Termica",
			KeySignsSymptoms: []string{
				"Eritema/ampollas/tejido carbonaceo segun profundidad",
			},
			DiagnosticMethod: []string{
				"Regla de los nueves en adultos",
				"Lund-Browder en pediatria",
			},
			InitialImmediateTreatment: []string{
				"Asegurar via aerea",
				"Reanimacion hidrica con formula de Parkland (2-4 ml/kg/%SCQ)",
			},
			DefinitiveSurgicalTreatment: []string{
				"Antibioticos topicos",
				"Escarectomia e injertos segun profundidad",
			},
			TechnicalObservations: []string{
				"No usar antibioticos sistemicos profilacticos.",
				"Administrar profilaxis antitetanica.",
			},
			Source: traumaSource,
		})
	}

	return cards
}

func traumaAlerts(in TraumaInput, phase string, triad bool, airwayFlags []string, spinal string,
	crushAlert, renalRiskHigh, serialECG bool, stage, gustilo string,
	tensionPneumo, tamponade bool) []string {

	var alerts []string
	switch phase {
	case "immediate":
		alerts = append(alerts, "Ventana de mortalidad inmediata: maxima prioridad prehospitalaria y de sala.")
	case "early":
		alerts = append(alerts, "Ventana de mortalidad temprana activa: optimizar TECLA/TICLA.")
	case "late":
		alerts = append(alerts, "Riesgo de mortalidad tardia: vigilar sepsis y falla multiorganica.")
	}
	if triad {
		alerts = append(alerts, "Triada laringea positiva: elevar prioridad a Nivel I.")
	}
	alerts = append(alerts, airwayFlags...)
	if tensionPneumo {
		alerts = append(alerts, "Sospecha de neumotorax a tension: descompresion inmediata.")
	}
	if tamponade {
		alerts = append(alerts, "Triada de Beck positiva: tratar como taponamiento cardiaco.")
	}
	if in.GlasgowComaScale != nil && *in.GlasgowComaScale <= 8 {
		alerts = append(alerts, "Glasgow <=8: asegurar via aerea y ventilacion protegida.")
	}
	if spinal == "anterior_cord" {
		alerts = append(alerts, "Patron de cordon anterior: peor pronostico funcional esperado.")
	}
	if spinal == "brown_sequard" {
		alerts = append(alerts, "Patron cruzado compatible con Brown-Sequard.")
	}
	if crushAlert {
		alerts = append(alerts, "Sindrome de aplastamiento: riesgo de rabdomiolisis, FRA y CID.")
	}
	if renalRiskHigh {
		alerts = append(alerts, "Riesgo renal alto por mioglobinuria e hipovolemia de tercer espacio.")
	}
	if serialECG {
		alerts = append(alerts, "ECG seriados requeridos por riesgo arritmico metabolico.")
	}
	if stage == "severe" {
		alerts = append(alerts, "Hipotermia severa: protocolo avanzado de recalentamiento.")
	}
	if gustilo == "grado_iii" {
		alerts = append(alerts, "Fractura expuesta grado III: prioridad quirurgica y antibiotico amplio.")
	}
	return alerts
}

// EvaluateTrauma builds the operational trauma recommendation.
func EvaluateTrauma(in TraumaInput) TraumaRecommendation {
	phase := traumaMortalityPhase(in)
	triad := traumaLaryngealTriad(in)
	airwayFlags := traumaAirwayRedFlags(in, triad)
	spinal := traumaSpinalSyndrome(in)

	crushAlert := in.CrushInjurySuspected
	renalRiskHigh := crushAlert && (in.HyperkalemiaRisk || in.HyperphosphatemiaPresent)
	serialECG := crushAlert && !in.ECGSeriesStarted

	stage := traumaHypothermiaStage(in)
	gustilo := traumaGustiloGrade(in)
	tensionPneumo := traumaTensionPneumothorax(in)
	tamponade := traumaCardiacTamponade(in)

	alerts := traumaAlerts(in, phase, triad, airwayFlags, spinal, crushAlert, renalRiskHigh,
		serialECG, stage, gustilo, tensionPneumo, tamponade)
	primary := traumaPrimaryActions(in, phase, triad, stage)

	var crushComplications []string
	if crushAlert {
		crushComplications = []string{
			"rabdomiolisis",
			"fracaso_renal_agudo",
			"cid",
			"arritmias_por_hipercalemia",
		}
	}

	var critical []string
	if phase == "immediate" || triad || tensionPneumo || tamponade ||
		(in.GlasgowComaScale != nil && *in.GlasgowComaScale <= 8) || stage == "severe" {
		critical = append(critical, "Condicion tiempo-dependiente con riesgo vital inmediato.")
	}
	var safety []string
	if crushAlert || stage == "moderate" || gustilo == "grado_iii" || phase == "early" {
		safety = append(safety, "Ventana operativa critica activa.")
	}
	severity := ComputeSeverity(critical, safety, primary)

	trace := []string{
		fmt.Sprintf("mortality_phase_risk=%s", phase),
		fmt.Sprintf("laryngeal_trauma_triad_present=%t", triad),
		fmt.Sprintf("suspected_spinal_syndrome=%s", spinal),
		fmt.Sprintf("hypothermia_stage=%s", stage),
		fmt.Sprintf("open_fracture_gustilo_grade=%s", gustilo),
		fmt.Sprintf("severity_level=%s", severity),
	}

	return TraumaRecommendation{
		MortalityPhaseRisk:               phase,
		TeclaTiclaPriority:               traumaTeclaTiclaPriority(in, phase),
		LaryngealTraumaTriadPresent:      triad,
		AirwayPriorityLevel:              traumaAirwayPriority(in, triad),
		AirwayRedFlags:                   airwayFlags,
		OxygenCurveShiftRightRisk:        in.HyperthermiaPresent || in.HypercapniaPresent || in.AcidosisPresent,
		SuspectedSpinalSyndrome:          spinal,
		CrushSyndromeAlert:               crushAlert,
		RenalFailureRiskHigh:             renalRiskHigh,
		SerialECGRequired:                serialECG,
		CrushComplications:               crushComplications,
		HypothermiaStage:                 stage,
		HypothermiaAlerts:                traumaHypothermiaAlerts(in, stage),
		OpenFractureGustiloGrade:         gustilo,
		AntibioticCoverageRecommendation: traumaAntibioticCoverage(gustilo),
		ConditionMatrix:                  traumaConditionCards(in),
		SpecialPopulationActions:         traumaSpecialPopulationActions(in),
		PrimaryActions:                   primary,
		Alerts:                           alerts,
		SeverityLevel:                    severity,
		InterpretabilityTrace:            trace,
		HumanValidationRequired:          true,
		NonDiagnosticWarning:             Disclaimer,
	}
}

func init() {
	register("trauma", typed((*TraumaInput).Validate, EvaluateTrauma))
}
