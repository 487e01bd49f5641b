package protocol

import (
	"fmt"
	"strings"
)

// Cross-cutting critical operations engine: time SLAs, oxygen therapy device
// selection, PE pathway, anaphylaxis, hemodynamic profiling, toxicology
// reversal rules and operational red flags.

var criticalTriageLevels = map[string]bool{
	"rojo": true, "naranja": true, "amarillo": true, "verde": true, "azul": true,
}

var criticalRespSeverities = map[string]bool{
	"ninguna": true, "leve": true, "moderada": true, "grave": true,
}

// CriticalOpsInput is the clinical-operational input for cross-cutting rules.
type CriticalOpsInput struct {
	NonTraumaticChestPain          bool   `json:"non_traumatic_chest_pain"`
	DoorToECGMinutes               *int   `json:"door_to_ecg_minutes,omitempty"`
	SuspectedSepticShock           bool   `json:"suspected_septic_shock"`
	SepsisAntibioticMinutes        *int   `json:"sepsis_antibiotic_minutes,omitempty"`
	TriageLevel                    string `json:"triage_level"`
	TriageToFirstAssessmentMinutes *int   `json:"triage_to_first_assessment_minutes,omitempty"`

	OxygenSaturationPercent        *int   `json:"oxygen_saturation_percent,omitempty"`
	RespiratoryFailureSeverity     string `json:"respiratory_failure_severity"`
	HypercapniaRisk                bool   `json:"hypercapnia_risk"`
	RespiratoryAcidosisPresent     bool   `json:"respiratory_acidosis_present"`
	PulmonaryEdemaSuspected        bool   `json:"pulmonary_edema_suspected"`
	ShockOrSevereArrhythmiaPresent bool   `json:"shock_or_severe_arrhythmia_present"`
	GoodRespiratoryMechanics       *bool  `json:"good_respiratory_mechanics,omitempty"`

	SuspectedPE        bool     `json:"suspected_pe"`
	WellsScore         *float64 `json:"wells_score,omitempty"`
	DDimerNgMl         *float64 `json:"d_dimer_ng_ml,omitempty"`
	ChestXrayPerformed bool     `json:"chest_xray_performed"`
	HiatalHerniaOnXray bool     `json:"hiatal_hernia_on_xray"`

	RapidCutaneousMucosalSymptoms       bool `json:"rapid_cutaneous_mucosal_symptoms"`
	RespiratoryCompromise               bool `json:"respiratory_compromise"`
	CardiovascularCompromise            bool `json:"cardiovascular_compromise"`
	OnBetaBlocker                       bool `json:"on_beta_blocker"`
	AnaphylaxisRefractoryToIMAdrenaline bool `json:"anaphylaxis_refractory_to_im_adrenaline"`

	SVRDynSCm5                          *int     `json:"svr_dyn_s_cm5,omitempty"`
	CVPmmHg                             *float64 `json:"cvp_mm_hg,omitempty"`
	CardiacOutputLMin                   *float64 `json:"cardiac_output_l_min,omitempty"`
	PulmonaryCapillaryWedgePressureMmHg *float64 `json:"pulmonary_capillary_wedge_pressure_mm_hg,omitempty"`
	LactateMmolL                        *float64 `json:"lactate_mmol_l,omitempty"`
	PreviousLactateMmolL                *float64 `json:"previous_lactate_mmol_l,omitempty"`
	LactateIntervalMinutes              *int     `json:"lactate_interval_minutes,omitempty"`

	UnknownOriginComa                bool     `json:"unknown_origin_coma"`
	CapillaryGlucoseMgDl             *float64 `json:"capillary_glucose_mg_dl,omitempty"`
	OpioidIntoxicationSuspected      bool     `json:"opioid_intoxication_suspected"`
	BenzodiazepineIntoxicationSuspected bool  `json:"benzodiazepine_intoxication_suspected"`
	MalnutritionOrChronicAlcoholUse  bool     `json:"malnutrition_or_chronic_alcohol_use"`
	SmokeInhalationSuspected         bool     `json:"smoke_inhalation_suspected"`
	CyanideSuspected                 bool     `json:"cyanide_suspected"`
	ParacetamolOverdoseSuspected     bool     `json:"paracetamol_overdose_suspected"`
	HoursSinceParacetamolIngestion   *float64 `json:"hours_since_paracetamol_ingestion,omitempty"`
	ParacetamolLevelMcgMl            *float64 `json:"paracetamol_level_mcg_ml,omitempty"`
	CoreTemperatureCelsius           *float64 `json:"core_temperature_celsius,omitempty"`
	PersistentAsystole               bool     `json:"persistent_asystole"`

	SystemicSclerosisOrRaynaud  bool    `json:"systemic_sclerosis_or_raynaud"`
	DigitalNecrosisPresent      bool    `json:"digital_necrosis_present"`
	AbruptAnuriaPresent         bool    `json:"abrupt_anuria_present"`
	WomanChildbearingAge        bool    `json:"woman_childbearing_age"`
	LowerAbdominalPain          bool    `json:"lower_abdominal_pain"`
	VaginalBleeding             bool    `json:"vaginal_bleeding"`
	FreeFluidUltrasound         bool    `json:"free_fluid_ultrasound"`
	ChestTubeOutputImmediateMl  *int    `json:"chest_tube_output_immediate_ml,omitempty"`

	Notes *string `json:"notes,omitempty"`
}

// CriticalOpsRecommendation is the structured cross-cutting critical output.
type CriticalOpsRecommendation struct {
	SeverityLevel                Severity `json:"severity_level"`
	SLAAlerts                    []string `json:"sla_alerts"`
	SLABreaches                  []string `json:"sla_breaches"`
	RespiratoryDeviceRecommended string   `json:"respiratory_device_recommended"`
	RespiratoryTargetSaturation  string   `json:"respiratory_target_saturation"`
	RespiratorySupportPlan       []string `json:"respiratory_support_plan"`
	ChestPainPEPathway           []string `json:"chest_pain_pe_pathway"`
	AnaphylaxisPathway           []string `json:"anaphylaxis_pathway"`
	HemodynamicProfile           string   `json:"hemodynamic_profile"`
	HemodynamicActions           []string `json:"hemodynamic_actions"`
	ToxicologyReversalActions    []string `json:"toxicology_reversal_actions"`
	ToxicologyAlerts             []string `json:"toxicology_alerts"`
	OperationalRedFlags          []string `json:"operational_red_flags"`
	RadiologyActions             []string `json:"radiology_actions"`
	CriticalAlerts               []string `json:"critical_alerts"`
	InterpretabilityTrace        []string `json:"interpretability_trace"`
	HumanValidationRequired      bool     `json:"human_validation_required"`
	NonDiagnosticWarning         string   `json:"non_diagnostic_warning"`
}

func (in *CriticalOpsInput) Validate() error {
	if err := inRangeI("door_to_ecg_minutes", in.DoorToECGMinutes, 0, 720); err != nil {
		return err
	}
	if err := inRangeI("sepsis_antibiotic_minutes", in.SepsisAntibioticMinutes, 0, 1440); err != nil {
		return err
	}
	if in.TriageLevel == "" {
		in.TriageLevel = "amarillo"
	}
	if !criticalTriageLevels[in.TriageLevel] {
		return invalidf("triage_level", "unknown value %q", in.TriageLevel)
	}
	if err := inRangeI("triage_to_first_assessment_minutes", in.TriageToFirstAssessmentMinutes, 0, 720); err != nil {
		return err
	}
	if err := inRangeI("oxygen_saturation_percent", in.OxygenSaturationPercent, 40, 100); err != nil {
		return err
	}
	if in.RespiratoryFailureSeverity == "" {
		in.RespiratoryFailureSeverity = "ninguna"
	}
	if !criticalRespSeverities[in.RespiratoryFailureSeverity] {
		return invalidf("respiratory_failure_severity", "unknown value %q", in.RespiratoryFailureSeverity)
	}
	if err := inRangeF("wells_score", in.WellsScore, 0, 20); err != nil {
		return err
	}
	if err := inRangeF("d_dimer_ng_ml", in.DDimerNgMl, 0, 20000); err != nil {
		return err
	}
	if err := inRangeI("svr_dyn_s_cm5", in.SVRDynSCm5, 100, 5000); err != nil {
		return err
	}
	if err := inRangeF("cvp_mm_hg", in.CVPmmHg, 0, 40); err != nil {
		return err
	}
	if err := inRangeF("cardiac_output_l_min", in.CardiacOutputLMin, 0, 20); err != nil {
		return err
	}
	if err := inRangeF("pulmonary_capillary_wedge_pressure_mm_hg", in.PulmonaryCapillaryWedgePressureMmHg, 0, 40); err != nil {
		return err
	}
	if err := inRangeF("lactate_mmol_l", in.LactateMmolL, 0, 30); err != nil {
		return err
	}
	if err := inRangeF("previous_lactate_mmol_l", in.PreviousLactateMmolL, 0, 30); err != nil {
		return err
	}
	if err := inRangeI("lactate_interval_minutes", in.LactateIntervalMinutes, 0, 600); err != nil {
		return err
	}
	if err := inRangeF("capillary_glucose_mg_dl", in.CapillaryGlucoseMgDl, 0, 1000); err != nil {
		return err
	}
	if err := inRangeF("hours_since_paracetamol_ingestion", in.HoursSinceParacetamolIngestion, 0, 200); err != nil {
		return err
	}
	if err := inRangeF("paracetamol_level_mcg_ml", in.ParacetamolLevelMcgMl, 0, 1000); err != nil {
		return err
	}
	if err := inRangeF("core_temperature_celsius", in.CoreTemperatureCelsius, 20, 45); err != nil {
		return err
	}
	if err := inRangeI("chest_tube_output_immediate_ml", in.ChestTubeOutputImmediateMl, 0, 10000); err != nil {
		return err
	}
	return validateNotes("notes", in.Notes)
}

func criticalSLA(in CriticalOpsInput) (alerts, breaches, trace []string) {
	if in.NonTraumaticChestPain {
		alerts = append(alerts, "Dolor toracico no traumatico: ECG obligatorio en <=10 minutos.")
		trace = append(trace, "Regla 10 minutos activada por dolor toracico no traumatico.")
		if in.DoorToECGMinutes == nil {
			breaches = append(breaches, "Sin registro de ECG inicial en dolor toracico.")
		} else if *in.DoorToECGMinutes > 10 {
			breaches = append(breaches, "SLA ECG incumplido (>10 min) en dolor toracico.")
		}
	}
	if in.SuspectedSepticShock {
		alerts = append(alerts, "Sospecha de shock septico: iniciar antibiotico empirico en <=60 minutos.")
		trace = append(trace, "Hora de oro de sepsis activada por sospecha de shock septico.")
		if in.SepsisAntibioticMinutes == nil {
			breaches = append(breaches, "Sin registro de inicio de antibiotico en sepsis.")
		} else if *in.SepsisAntibioticMinutes > 60 {
			breaches = append(breaches, "SLA sepsis incumplido (>60 min para antibiotico).")
		}
	}
	if in.TriageLevel == "rojo" {
		alerts = append(alerts, "Triaje rojo: valoracion clinica obligatoria en <=5 minutos.")
		trace = append(trace, "SLA de triaje rojo activado (riesgo vital inminente).")
		if in.TriageToFirstAssessmentMinutes == nil {
			breaches = append(breaches, "Sin registro de primera valoracion en triaje rojo.")
		} else if *in.TriageToFirstAssessmentMinutes > 5 {
			breaches = append(breaches, "SLA de triaje rojo incumplido (>5 min).")
		}
	}
	return alerts, breaches, trace
}

func criticalRespiratorySupport(in CriticalOpsInput) (device, target string, plan, trace []string) {
	target = "96-98%"
	if in.HypercapniaRisk {
		target = "88-92%"
		trace = append(trace, "Objetivo de saturacion ajustado por riesgo de hipercapnia.")
	} else {
		trace = append(trace, "Objetivo de saturacion estandar para paciente critico general.")
	}

	goodMechanics := in.GoodRespiratoryMechanics == nil || *in.GoodRespiratoryMechanics
	device = "monitorizacion"
	severity := in.RespiratoryFailureSeverity

	switch {
	case in.RespiratoryAcidosisPresent:
		device = "bipap"
		plan = append(plan, "Insuficiencia respiratoria hipercapnica/acidosis respiratoria: priorizar BiPAP.")
		trace = append(trace, "BiPAP elegido por acidosis respiratoria/hipercapnia.")
	case in.PulmonaryEdemaSuspected && !in.ShockOrSevereArrhythmiaPresent:
		device = "cpap"
		plan = append(plan, "Edema agudo de pulmon: considerar CPAP para mejorar oxigenacion.")
		trace = append(trace, "CPAP elegido por edema agudo de pulmon sin contraindicaciones mayores.")
	case in.PulmonaryEdemaSuspected && in.ShockOrSevereArrhythmiaPresent:
		device = "mascarilla_reservorio"
		plan = append(plan, "EAP con shock/arritmia grave: evitar CPAP inicialmente y usar mascarilla reservorio.")
		trace = append(trace, "CPAP descartado por contraindicacion hemodinamica.")
	case severity == "grave":
		device = "mascarilla_reservorio"
		plan = append(plan, "Hipoxemia grave con mecanica preservada: usar mascarilla reservorio.")
		trace = append(trace, "Reservorio elegido por hipoxemia grave.")
	case severity == "moderada" && goodMechanics:
		device = "mascarilla_venturi"
		plan = append(plan, "Hipoxemia moderada sin hipercapnia: usar mascarilla Venturi.")
		trace = append(trace, "Venturi elegido por hipoxemia moderada sin acidosis respiratoria.")
	case severity == "leve":
		device = "gafas_nasales"
		plan = append(plan, "Paciente estable con hipoxemia leve: iniciar gafas nasales.")
		trace = append(trace, "Gafas nasales elegidas por hipoxemia leve.")
	default:
		plan = append(plan, "Sin insuficiencia respiratoria relevante: mantener monitorizacion y reevaluar.")
	}

	if in.OxygenSaturationPercent != nil {
		plan = append(plan, fmt.Sprintf(
			"Saturacion actual registrada: %d%%. Objetivo operativo: %s.",
			*in.OxygenSaturationPercent, target))
	}
	return device, target, plan, trace
}

func criticalChestPainPEPathway(in CriticalOpsInput) (pathway, trace []string) {
	if !in.SuspectedPE {
		if in.NonTraumaticChestPain {
			pathway = append(pathway, "Dolor toracico: integrar ECG precoz y correlacion clinico-analitica.")
		}
		return pathway, trace
	}
	if in.WellsScore == nil {
		pathway = append(pathway, "Calcular Wells para estimar probabilidad pretest de TEP.")
		trace = append(trace, "Ruta TEP pausada: Wells no informado.")
		return pathway, trace
	}
	if *in.WellsScore > 6 {
		pathway = append(pathway, "Wells >6: omitir Dimero D y solicitar Angio-TAC directamente.")
		trace = append(trace, "Wells alto (>6): ruta directa a Angio-TAC.")
		return pathway, trace
	}
	pathway = append(pathway, "Wells baja/intermedia: solicitar Dimero D.")
	trace = append(trace, "Wells <=6: activar ruta Dimero D previa a imagen.")
	switch {
	case in.DDimerNgMl == nil:
		pathway = append(pathway, "Pendiente resultado de Dimero D para decidir imagen.")
	case *in.DDimerNgMl > 500:
		pathway = append(pathway, "Dimero D >500: escalar a Angio-TAC.")
		trace = append(trace, "Dimero D positivo: recomendacion de Angio-TAC.")
	default:
		pathway = append(pathway, "Dimero D <=500: TEP menos probable, reevaluar segun clinica.")
		trace = append(trace, "Dimero D negativo en Wells no alto.")
	}
	return pathway, trace
}

func criticalAnaphylaxisPathway(in CriticalOpsInput) (pathway, trace []string) {
	probable := in.RapidCutaneousMucosalSymptoms &&
		(in.RespiratoryCompromise || in.CardiovascularCompromise)
	if !probable {
		return nil, nil
	}
	pathway = append(pathway,
		"Anafilaxia probable: administrar adrenalina intramuscular inmediata.",
		"Monitorizar via aerea, hemodinamica y necesidad de repeticion de dosis IM.")
	trace = append(trace, "Anafilaxia activada por sintomas cutaneomucosos rapidos + compromiso organico.")
	if in.OnBetaBlocker && in.AnaphylaxisRefractoryToIMAdrenaline {
		pathway = append(pathway, "Paciente en betabloqueantes refractario: considerar glucagon.")
		trace = append(trace, "Glucagon sugerido por refractariedad en paciente con betabloqueo.")
	}
	return pathway, trace
}

func criticalHemodynamicProfile(in CriticalOpsInput) (profile string, actions, trace []string) {
	profile = "indeterminado"

	lowSVR := in.SVRDynSCm5 != nil && *in.SVRDynSCm5 < 900
	highSVR := in.SVRDynSCm5 != nil && *in.SVRDynSCm5 > 1200
	lowOrNormalCVP := in.CVPmmHg != nil && *in.CVPmmHg <= 10
	highCVP := in.CVPmmHg != nil && *in.CVPmmHg > 12
	lowCO := in.CardiacOutputLMin != nil && *in.CardiacOutputLMin < 4
	highPCWP := in.PulmonaryCapillaryWedgePressureMmHg != nil && *in.PulmonaryCapillaryWedgePressureMmHg > 18
	normalPCWP := in.PulmonaryCapillaryWedgePressureMmHg != nil && *in.PulmonaryCapillaryWedgePressureMmHg <= 18

	switch {
	case lowSVR && lowOrNormalCVP:
		profile = "shock_distributivo_probable"
		trace = append(trace, "Perfil distributivo: SVR bajo + PVC normal/baja.")
	case highCVP && highSVR && lowCO && highPCWP:
		profile = "shock_cardiogenico_probable"
		trace = append(trace, "Perfil cardiogenico: PVC alta + SVR alta + GC bajo + PCP alta.")
	case highCVP && highSVR && lowCO && normalPCWP:
		profile = "shock_obstructivo_probable"
		trace = append(trace, "Perfil obstructivo: PVC alta + SVR alta + GC bajo + PCP normal.")
	}

	actions = append(actions, "Monitorizar lactato de forma seriada cada 2 horas.")
	if in.LactateIntervalMinutes == nil || *in.LactateIntervalMinutes > 120 {
		actions = append(actions, "Ajustar intervalo de lactato a <=120 minutos.")
	}
	if in.LactateMmolL != nil && *in.LactateMmolL > 2 {
		actions = append(actions, "Lactato elevado: reforzar evaluacion de hipoperfusion tisular.")
	}
	if in.LactateMmolL != nil && in.PreviousLactateMmolL != nil && *in.LactateMmolL >= *in.PreviousLactateMmolL {
		actions = append(actions, "Lactato no desciende: considerar perfusion inadecuada persistente.")
		trace = append(trace, "Tendencia de lactato desfavorable (no clearance).")
	}
	return profile, actions, trace
}

// Linear approximation of the Rumack-Matthew treatment line:
// 150 mcg/mL at 4 h, 25 mcg/mL at 24 h.
func nacThresholdAtHour(hours float64) float64 {
	if hours <= 4 {
		return 150.0
	}
	if hours >= 24 {
		return 25.0
	}
	return 150.0 - ((hours - 4.0) * 6.25)
}

func criticalToxicology(in CriticalOpsInput) (actions, alerts, trace []string) {
	if in.UnknownOriginComa {
		if in.CapillaryGlucoseMgDl != nil && *in.CapillaryGlucoseMgDl >= 70 {
			actions = append(actions, "Coma de origen no filiado con glucemia normal: considerar naloxona y flumacenilo segun sospecha.")
			trace = append(trace, "Protocolo de coma desconocido activado tras descartar hipoglucemia capilar.")
		} else {
			actions = append(actions, "Corregir hipoglucemia antes de protocolo de antidotos.")
		}
		if in.MalnutritionOrChronicAlcoholUse {
			actions = append(actions, "Administrar tiamina en paciente desnutrido/alcoholismo cronico.")
		}
	}
	if in.OpioidIntoxicationSuspected {
		actions = append(actions, "Sospecha de opiaceos: priorizar ventilacion y naloxona temprana.")
	}
	if in.BenzodiazepineIntoxicationSuspected {
		actions = append(actions, "Sospecha de benzodiacepinas: valorar flumacenilo en contexto adecuado.")
	}
	if in.SmokeInhalationSuspected {
		actions = append(actions, "Intoxicacion por humo: administrar oxigeno al 100% de inmediato.")
		alerts = append(alerts, "Intoxicacion por humo: descartar coexposicion a CO y cianuro.")
		trace = append(trace, "Ruta de humo activada con O2 al 100%.")
		if in.CyanideSuspected {
			actions = append(actions, "Sospecha de cianuro: administrar hidroxocobalamina 5 g IV.")
			alerts = append(alerts, "Posible intoxicacion por cianuro en incendio.")
			trace = append(trace, "Antidoto de cianuro sugerido por sospecha clinica.")
		}
	}
	if in.ParacetamolOverdoseSuspected {
		switch {
		case in.HoursSinceParacetamolIngestion == nil:
			actions = append(actions, "Paracetamol: documentar tiempo de ingesta y aplicar nomograma Rumack-Matthew.")
		case *in.HoursSinceParacetamolIngestion < 4:
			actions = append(actions, "Paracetamol <4 h: obtener nivel a las 4 horas para decision de NAC.")
		case in.ParacetamolLevelMcgMl == nil:
			actions = append(actions, "Paracetamol >=4 h: solicitar nivel plasmatico para nomograma.")
		default:
			threshold := nacThresholdAtHour(*in.HoursSinceParacetamolIngestion)
			if *in.ParacetamolLevelMcgMl >= threshold {
				actions = append(actions, "Nomograma sugiere toxicidad: iniciar N-acetilcisteina (NAC).")
				trace = append(trace, "NAC recomendada por cruce de linea de tratamiento en nomograma.")
			} else {
				actions = append(actions, "Nivel por debajo de linea de tratamiento: vigilar y reevaluar.")
			}
		}
	}
	if in.CoreTemperatureCelsius != nil && *in.CoreTemperatureCelsius < 32 {
		alerts = append(alerts, "Hipotermia moderada/severa: recalentamiento activo obligatorio.")
		if in.PersistentAsystole {
			actions = append(actions, "No certificar muerte hasta recalentamiento (objetivo >28-32 C).")
			trace = append(trace, "Regla 'caliente y muerto' activada por hipotermia con asistolia.")
		}
		if *in.CoreTemperatureCelsius < 28 {
			alerts = append(alerts, "Temperatura <28 C: riesgo electrico extremo y alta prioridad.")
		}
	}
	return actions, alerts, trace
}

func criticalRedFlags(in CriticalOpsInput) (flags, trace []string) {
	if in.SystemicSclerosisOrRaynaud && in.DigitalNecrosisPresent {
		flags = append(flags, "Isquemia digital en esclerosis/Raynaud: valorar prostaglandinas IV urgentes.")
		trace = append(trace, "Bandera roja de necrosis digital en contexto autoinmune.")
	}
	if in.AbruptAnuriaPresent {
		flags = append(flags, "Anuria brusca: sospechar obstruccion bilateral y desobstruccion urgente (nefrostomia/doble J).")
		trace = append(trace, "Bandera roja de anuria brusca con probable causa obstructiva.")
	}
	if in.WomanChildbearingAge && in.LowerAbdominalPain && in.VaginalBleeding && in.FreeFluidUltrasound {
		flags = append(flags, "Sospecha de embarazo ectopico roto: activar circuito ginecologico urgente.")
		trace = append(trace, "Triada de ectopico (dolor + sangrado + liquido libre) detectada.")
	}
	if in.ChestTubeOutputImmediateMl != nil && *in.ChestTubeOutputImmediateMl > 1500 {
		flags = append(flags, "Hemotorax masivo (>1500 ml inmediatos): indicacion de toracotomia urgente.")
		trace = append(trace, "Umbral quirurgico de hemotorax masivo superado.")
	}
	return flags, trace
}

func criticalRadiologyActions(in CriticalOpsInput) (actions, trace []string) {
	if in.NonTraumaticChestPain && !in.ChestXrayPerformed {
		actions = append(actions, "Solicitar radiografia de torax para descartar causas benignas y urgentes de dolor toracico.")
		trace = append(trace, "Integracion de RX torax en dolor toracico no traumatico.")
	}
	if in.HiatalHerniaOnXray {
		actions = append(actions, "Hallazgo de hernia de hiato en RX: correlacionar con clinica para evitar sobre-escalado.")
		trace = append(trace, "RX sugiere hernia de hiato como posible mimico de dolor toracico.")
	}
	return actions, trace
}

func criticalSeverity(slaBreaches, anaphylaxis []string, profile string, toxAlerts, redFlags []string) Severity {
	switch {
	case len(slaBreaches) > 0 || len(redFlags) > 0:
		return SeverityCritical
	case len(anaphylaxis) > 0:
		return SeverityCritical
	case profile == "shock_cardiogenico_probable" || profile == "shock_obstructivo_probable":
		return SeverityHigh
	case len(toxAlerts) > 0:
		return SeverityHigh
	default:
		return SeverityMedium
	}
}

// EvaluateCriticalOps builds the cross-cutting critical operations output.
func EvaluateCriticalOps(in CriticalOpsInput) CriticalOpsRecommendation {
	slaAlerts, slaBreaches, slaTrace := criticalSLA(in)
	device, target, respPlan, respTrace := criticalRespiratorySupport(in)
	chestPathway, chestTrace := criticalChestPainPEPathway(in)
	anaphylaxis, anaphylaxisTrace := criticalAnaphylaxisPathway(in)
	profile, hemoActions, hemoTrace := criticalHemodynamicProfile(in)
	toxActions, toxAlerts, toxTrace := criticalToxicology(in)
	redFlags, redTrace := criticalRedFlags(in)
	radiologyActions, radiologyTrace := criticalRadiologyActions(in)

	criticalAlerts := append(append([]string{}, slaBreaches...), redFlags...)
	for _, alert := range toxAlerts {
		lower := strings.ToLower(alert)
		if strings.Contains(lower, "cianuro") || strings.Contains(lower, "hipotermia") {
			criticalAlerts = append(criticalAlerts, alert)
		}
	}

	severity := criticalSeverity(slaBreaches, anaphylaxis, profile, toxAlerts, redFlags)

	trace := make([]string, 0,
		len(slaTrace)+len(respTrace)+len(chestTrace)+len(anaphylaxisTrace)+
			len(hemoTrace)+len(toxTrace)+len(redTrace)+len(radiologyTrace))
	for _, part := range [][]string{slaTrace, respTrace, chestTrace, anaphylaxisTrace, hemoTrace, toxTrace, redTrace, radiologyTrace} {
		trace = append(trace, part...)
	}

	return CriticalOpsRecommendation{
		SeverityLevel:                severity,
		SLAAlerts:                    slaAlerts,
		SLABreaches:                  slaBreaches,
		RespiratoryDeviceRecommended: device,
		RespiratoryTargetSaturation:  target,
		RespiratorySupportPlan:       respPlan,
		ChestPainPEPathway:           chestPathway,
		AnaphylaxisPathway:           anaphylaxis,
		HemodynamicProfile:           profile,
		HemodynamicActions:           hemoActions,
		ToxicologyReversalActions:    toxActions,
		ToxicologyAlerts:             toxAlerts,
		OperationalRedFlags:          redFlags,
		RadiologyActions:             radiologyActions,
		CriticalAlerts:               criticalAlerts,
		InterpretabilityTrace:        trace,
		HumanValidationRequired:      true,
		NonDiagnosticWarning:         "Soporte operativo no diagnostico. Requiere validacion clinica humana inmediata.",
	}
}

func init() {
	register("critical_ops", typed((*CriticalOpsInput).Validate, EvaluateCriticalOps))
}
