package protocol

import "fmt"

// Resuscitation and life-support operational engine. Does not replace
// institutional ACLS/BLS protocols.

var resuscitationContexts = map[string]bool{
	"cardiac_arrest":             true,
	"tachyarrhythmia_with_pulse": true,
	"bradyarrhythmia_with_pulse": true,
	"post_rosc":                  true,
}

var resuscitationRhythms = map[string]bool{
	"vf": true, "pulseless_vt": true, "asystole": true, "pea": true,
	"svt_flutter": true, "af": true, "vt_monomorphic": true,
	"vt_polymorphic": true, "brady_advanced": true,
}

var shockableRhythms = map[string]bool{"vf": true, "pulseless_vt": true}
var nonShockableRhythms = map[string]bool{"asystole": true, "pea": true}

// ResuscitationInput captures the facts for a resuscitation scenario.
type ResuscitationInput struct {
	ContextType                     string   `json:"context_type"`
	Rhythm                          string   `json:"rhythm"`
	HasPulse                        bool     `json:"has_pulse"`
	CompressionDepthCm              *float64 `json:"compression_depth_cm,omitempty"`
	CompressionRatePerMin           *int     `json:"compression_rate_per_min,omitempty"`
	InterruptionSeconds             *int     `json:"interruption_seconds,omitempty"`
	EtCO2mmHg                       *float64 `json:"etco2_mm_hg,omitempty"`
	Hypotension                     bool     `json:"hypotension"`
	AlteredMentalStatus             bool     `json:"altered_mental_status"`
	ShockSigns                      bool     `json:"shock_signs"`
	IschemicChestPain               bool     `json:"ischemic_chest_pain"`
	AcuteHeartFailure               bool     `json:"acute_heart_failure"`
	SystolicBPmmHg                  *float64 `json:"systolic_bp_mm_hg,omitempty"`
	DiastolicBPmmHg                 *float64 `json:"diastolic_bp_mm_hg,omitempty"`
	MAPmmHg                         *float64 `json:"map_mm_hg,omitempty"`
	OxygenSaturationPercent         *int     `json:"oxygen_saturation_percent,omitempty"`
	ComatosePostROSC                bool     `json:"comatose_post_rosc"`
	Pregnant                        bool     `json:"pregnant"`
	GestationalWeeks                *int     `json:"gestational_weeks,omitempty"`
	UterineFundusAtOrAboveUmbilicus bool     `json:"uterine_fundus_at_or_above_umbilicus"`
	MinutesSinceArrest              *int     `json:"minutes_since_arrest,omitempty"`
	AccessAboveDiaphragmSecured     *bool    `json:"access_above_diaphragm_secured,omitempty"`
	FetalMonitorConnected           *bool    `json:"fetal_monitor_connected,omitempty"`
	MagnesiumInfusionActive         bool     `json:"magnesium_infusion_active"`
	MagnesiumToxicitySuspected      bool     `json:"magnesium_toxicity_suspected"`
	OpioidSuspected                 bool     `json:"opioid_suspected"`
	DoorECGMinutes                  *int     `json:"door_ecg_minutes,omitempty"`
	SymptomOnsetMinutes             *int     `json:"symptom_onset_minutes,omitempty"`
	Notes                           *string  `json:"notes,omitempty"`
}

// ResuscitationRecommendation is the structured resuscitation support output.
type ResuscitationRecommendation struct {
	SeverityLevel             Severity `json:"severity_level"`
	RhythmClassification      string   `json:"rhythm_classification"`
	ShockRecommended          bool     `json:"shock_recommended"`
	CPRQualityOK              *bool    `json:"cpr_quality_ok"`
	PrimaryActions            []string `json:"primary_actions"`
	MedicationActions         []string `json:"medication_actions"`
	ElectricalTherapyPlan     []string `json:"electrical_therapy_plan"`
	SedoanalgesiaPlan         []string `json:"sedoanalgesia_plan"`
	PreShockSafetyChecklist   []string `json:"pre_shock_safety_checklist"`
	VentilationActions        []string `json:"ventilation_actions"`
	ReversibleCausesChecklist []string `json:"reversible_causes_checklist"`
	SpecialSituationActions   []string `json:"special_situation_actions"`
	SLAAlerts                 []string `json:"sla_alerts"`
	Alerts                    []string `json:"alerts"`
	InterpretabilityTrace     []string `json:"interpretability_trace"`
	HumanValidationRequired   bool     `json:"human_validation_required"`
	NonDiagnosticWarning      string   `json:"non_diagnostic_warning"`
}

func (in *ResuscitationInput) Validate() error {
	if !resuscitationContexts[in.ContextType] {
		return invalidf("context_type", "unknown value %q", in.ContextType)
	}
	if !resuscitationRhythms[in.Rhythm] {
		return invalidf("rhythm", "unknown value %q", in.Rhythm)
	}
	if err := inRangeF("compression_depth_cm", in.CompressionDepthCm, 0, 10); err != nil {
		return err
	}
	if err := inRangeI("compression_rate_per_min", in.CompressionRatePerMin, 0, 200); err != nil {
		return err
	}
	if err := inRangeI("interruption_seconds", in.InterruptionSeconds, 0, 60); err != nil {
		return err
	}
	if err := inRangeF("etco2_mm_hg", in.EtCO2mmHg, 0, 120); err != nil {
		return err
	}
	if err := inRangeF("systolic_bp_mm_hg", in.SystolicBPmmHg, 40, 260); err != nil {
		return err
	}
	if err := inRangeF("diastolic_bp_mm_hg", in.DiastolicBPmmHg, 20, 200); err != nil {
		return err
	}
	if err := inRangeF("map_mm_hg", in.MAPmmHg, 20, 180); err != nil {
		return err
	}
	if err := inRangeI("oxygen_saturation_percent", in.OxygenSaturationPercent, 40, 100); err != nil {
		return err
	}
	if err := inRangeI("gestational_weeks", in.GestationalWeeks, 0, 45); err != nil {
		return err
	}
	if err := inRangeI("minutes_since_arrest", in.MinutesSinceArrest, 0, 240); err != nil {
		return err
	}
	if err := inRangeI("door_ecg_minutes", in.DoorECGMinutes, 0, 240); err != nil {
		return err
	}
	if err := inRangeI("symptom_onset_minutes", in.SymptomOnsetMinutes, 0, 10080); err != nil {
		return err
	}
	return validateNotes("notes", in.Notes)
}

func (in ResuscitationInput) narrowPulsePressure() bool {
	if in.SystolicBPmmHg == nil || in.DiastolicBPmmHg == nil {
		return false
	}
	return *in.SystolicBPmmHg-*in.DiastolicBPmmHg < 30
}

func (in ResuscitationInput) unstableWithPulse() bool {
	return in.Hypotension || in.AlteredMentalStatus || in.ShockSigns ||
		in.IschemicChestPain || in.AcuteHeartFailure || in.narrowPulsePressure()
}

func resuscitationSeverity(in ResuscitationInput) Severity {
	switch in.ContextType {
	case "cardiac_arrest":
		return SeverityCritical
	case "post_rosc":
		if in.ComatosePostROSC || in.MAPmmHg != nil {
			if in.ComatosePostROSC || (in.MAPmmHg != nil && *in.MAPmmHg < 65) {
				return SeverityCritical
			}
			return SeverityHigh
		}
		return SeverityMedium
	case "tachyarrhythmia_with_pulse", "bradyarrhythmia_with_pulse":
		if in.unstableWithPulse() {
			return SeverityHigh
		}
		return SeverityMedium
	}
	return SeverityMedium
}

func resuscitationRhythmClass(in ResuscitationInput) string {
	switch {
	case shockableRhythms[in.Rhythm]:
		return "shockable_arrest"
	case nonShockableRhythms[in.Rhythm]:
		return "non_shockable_arrest"
	case in.Rhythm == "svt_flutter" || in.Rhythm == "af" || in.Rhythm == "vt_monomorphic":
		return "tachyarrhythmia_with_pulse"
	case in.Rhythm == "vt_polymorphic":
		return "polymorphic_ventricular_tachycardia"
	}
	return "advanced_bradyarrhythmia"
}

func resuscitationShockRecommended(in ResuscitationInput, rhythmClass string) bool {
	switch {
	case rhythmClass == "shockable_arrest":
		return true
	case in.Rhythm == "vt_polymorphic":
		return true
	case rhythmClass == "tachyarrhythmia_with_pulse":
		return in.unstableWithPulse()
	}
	return false
}

// cprQualityOK is nil outside cardiac arrest or when any metric is missing.
func resuscitationCPRQuality(in ResuscitationInput) *bool {
	if in.ContextType != "cardiac_arrest" {
		return nil
	}
	if in.CompressionDepthCm == nil || in.CompressionRatePerMin == nil ||
		in.InterruptionSeconds == nil || in.EtCO2mmHg == nil {
		return nil
	}
	ok := *in.CompressionDepthCm >= 5 &&
		*in.CompressionRatePerMin >= 100 && *in.CompressionRatePerMin <= 120 &&
		*in.InterruptionSeconds <= 10 &&
		*in.EtCO2mmHg >= 10
	return &ok
}

func resuscitationPrimaryActions(in ResuscitationInput, shockRecommended bool) []string {
	var actions []string
	if in.ContextType == "cardiac_arrest" {
		actions = append(actions, "Iniciar RCP de alta calidad con interrupciones minimas.")
		if shockRecommended {
			actions = append(actions, "Aplicar desfibrilacion inmediata segun ritmo y energia recomendada.")
		} else {
			actions = append(actions, "Confirmar ritmo no desfibrilable y mantener ciclos de RCP.")
		}
	}
	if in.ContextType == "tachyarrhythmia_with_pulse" {
		if in.unstableWithPulse() {
			actions = append(actions, "Priorizar cardioversion sincronizada por inestabilidad hemodinamica.")
		} else {
			actions = append(actions, "Valorar control de frecuencia/ritmo y monitorizacion estrecha.")
		}
	}
	if in.ContextType == "bradyarrhythmia_with_pulse" {
		actions = append(actions, "Evaluar bradicardia inestable y preparar marcapasos transcutaneo.")
	}
	if in.ContextType == "post_rosc" {
		actions = append(actions, "Optimizar hemodinamica y ventilacion para prevenir dano secundario.")
	}
	return actions
}

func resuscitationMedicationActions(in ResuscitationInput, shockRecommended bool) []string {
	var actions []string
	if in.ContextType == "cardiac_arrest" {
		if shockRecommended {
			actions = append(actions,
				"Administrar adrenalina 1 mg cada 3-5 min tras segunda descarga.",
				"Valorar amiodarona 300 mg (o lidocaina alternativa) tras tercera descarga.")
		} else {
			actions = append(actions, "Administrar adrenalina 1 mg cada 3-5 min de forma inmediata.")
		}
	}
	if in.ContextType == "bradyarrhythmia_with_pulse" {
		actions = append(actions,
			"Atropina 1 mg inicial (maximo 3 mg) si no hay contraindicaciones.",
			"Si refractaria, valorar infusion de dopamina (5-20 mcg/kg/min) o adrenalina (2-10 mcg/min).")
	}
	if in.OpioidSuspected {
		actions = append(actions, "Administrar naloxona precoz si se sospecha intoxicacion por opiaceos.")
	}
	if in.ContextType == "post_rosc" && in.MAPmmHg != nil && *in.MAPmmHg < 65 {
		actions = append(actions, "Valorar norepinefrina para objetivo de PAM >= 65 mmHg.")
	}
	return actions
}

func resuscitationElectricalPlan(in ResuscitationInput, rhythmClass string, shockRecommended bool) []string {
	var plan []string
	switch {
	case rhythmClass == "shockable_arrest":
		plan = append(plan,
			"Desfibrilacion no sincronizada inmediata: 200 J bifasico o energia maxima disponible.",
			"No retrasar descarga por sedoanalgesia en paro sin pulso.")
	case in.Rhythm == "vt_polymorphic":
		plan = append(plan, "TV polimorfica: realizar desfibrilacion no sincronizada (200 J bifasico o 360 J monofasico).")
	case rhythmClass == "tachyarrhythmia_with_pulse" && shockRecommended:
		plan = append(plan, "Activar modo sincronizado y confirmar marcas sobre cada onda R antes de descargar.")
		switch in.Rhythm {
		case "svt_flutter":
			plan = append(plan, "Cardioversion sincronizada: 50-100 J inicial.")
		case "af":
			plan = append(plan, "Cardioversion sincronizada: 120-200 J bifasico (escalar a maxima energia si falla).")
		case "vt_monomorphic":
			plan = append(plan, "Cardioversion sincronizada: 100 J inicial.")
		}
		plan = append(plan, "Evitar fenomeno R sobre T: no descargar sin sincronizacion en ritmos organizados con pulso.")
	case rhythmClass == "tachyarrhythmia_with_pulse":
		plan = append(plan, "Sin inestabilidad mayor: priorizar tratamiento medico y reevaluacion hemodinamica continua.")
	case in.ContextType == "bradyarrhythmia_with_pulse":
		plan = append(plan, "Bradiarritmia avanzada: considerar marcapasos transcutaneo si deterioro hemodinamico.")
	}
	return plan
}

func resuscitationSedoanalgesiaPlan(in ResuscitationInput, rhythmClass string, shockRecommended bool) []string {
	var plan []string
	switch {
	case rhythmClass == "shockable_arrest" || rhythmClass == "non_shockable_arrest":
		plan = append(plan, "En paro sin pulso no retrasar desfibrilacion/RCP por sedacion.")
	case in.Rhythm == "vt_polymorphic":
		plan = append(plan, "Si pierde pulso, priorizar desfibrilacion inmediata sin demoras.")
	case rhythmClass == "tachyarrhythmia_with_pulse" && shockRecommended:
		if in.Hypotension || in.ShockSigns {
			plan = append(plan, "Fentanilo 0.5-1 mcg/kg (escenario muy inestable) aprox. 3.5 min antes de descarga.")
		} else {
			plan = append(plan, "Fentanilo 1-3 mcg/kg aprox. 3.5 min antes de descarga.")
		}
		plan = append(plan,
			"Etomidato 0.1-0.15 mg/kg 15-40 s antes (hipnotico de eleccion por estabilidad hemodinamica).",
			"Alternativa: propofol 1-1.5 mg/kg con precaucion por hipotension; considerar lidocaina IV previa para dolor en vena.")
	}
	return plan
}

func resuscitationPreShockChecklist(in ResuscitationInput, rhythmClass string) []string {
	checklist := []string{
		"Aplicar gel/pasta conductora suficiente para reducir impedancia.",
		"Aviso de seguridad: fuera equipo, fuera paciente, fuera oxigeno.",
		"Retirar fuente de oxigeno de alto flujo del campo inmediato.",
	}
	if rhythmClass == "tachyarrhythmia_with_pulse" {
		checklist = append(checklist, "Verificar modo sincronizado activo y marcas de onda R visibles.")
	} else {
		checklist = append(checklist, "Confirmar descarga no sincronizada para ritmo caotico o sin pulso.")
	}
	if in.Pregnant {
		checklist = append(checklist, "Mantener desplazamiento uterino lateral manual durante todo el proceso.")
	}
	return checklist
}

func resuscitationVentilationActions(in ResuscitationInput) []string {
	var actions []string
	if in.ContextType == "cardiac_arrest" {
		actions = append(actions,
			"Si ventilador en RCP: FiO2 100%, PEEP 0, trigger off, FR 10/min y VT 8 ml/kg peso ideal.",
			"Usar capnografia continua para confirmar via aerea y calidad de compresiones.")
	}
	if in.ContextType == "post_rosc" {
		actions = append(actions, "Objetivo post-ROSC: SpO2 92-98% y PaCO2 35-45 mmHg.")
		if in.ComatosePostROSC {
			actions = append(actions, "Valorar manejo de temperatura objetivo (32-36 C) durante 24h.")
		}
	}
	if in.OpioidSuspected {
		actions = append(actions, "Priorizar ventilacion de rescate efectiva en sospecha de opiaceos.")
	}
	return actions
}

func resuscitationReversibleCauses(in ResuscitationInput) []string {
	checklist := []string{
		"Hipovolemia",
		"Hipoxia",
		"Acidosis (H+)",
		"Hipo/Hiperpotasemia",
		"Hipotermia",
		"Neumotorax a tension",
		"Taponamiento cardiaco",
		"Toxinas",
		"Trombosis pulmonar o coronaria",
	}
	if in.Pregnant {
		checklist = append(checklist,
			"Anestesia: complicaciones de via aerea o bloqueo neuroaxial",
			"Bleeding: hemorragia obstetrica masiva",
			"Cardiovascular: IAM/miocardiopatia periparto",
			"Drugs: toxicidad por magnesio o anestesicos locales",
			"Embolismo: TEP o embolia de liquido amniotico",
			"Fiebre: desestabilizacion termica",
			"Hipertension: preeclampsia/eclampsia")
	}
	return checklist
}

func resuscitationSpecialSituations(in ResuscitationInput) []string {
	var actions []string
	if !in.Pregnant {
		return actions
	}
	actions = append(actions,
		"Activar codigo obstetrico con equipo multidisciplinar: obstetricia, anestesiologia, neonatologia y enfermeria critica.",
		"Mantener desplazamiento uterino lateral manual 15-30 grados priorizando compresiones en superficie firme.",
		"Usar acceso vascular por encima del diafragma para farmacos de reanimacion.")
	if in.FetalMonitorConnected != nil && *in.FetalMonitorConnected {
		actions = append(actions, "Desconectar monitor fetal durante RCP para evitar interferencias.")
	}
	if in.ContextType == "cardiac_arrest" &&
		(in.UterineFundusAtOrAboveUmbilicus || (in.GestationalWeeks != nil && *in.GestationalWeeks >= 20)) {
		actions = append(actions, "Sospechar compresion aortocava relevante y mantener alivio mecanico continuo.")
	}
	if in.ContextType == "cardiac_arrest" && in.MinutesSinceArrest != nil {
		if *in.MinutesSinceArrest >= 4 && !in.HasPulse {
			actions = append(actions, "Aplicar regla 4-5 min: iniciar histerotomia resucitativa al minuto 4 si no hay ROSC.")
		}
		if *in.MinutesSinceArrest >= 5 && !in.HasPulse {
			actions = append(actions, "Objetivo operativo: extraccion fetal al minuto 5 para mejorar ROSC materno.")
		}
	}
	if in.MagnesiumInfusionActive && in.MagnesiumToxicitySuspected {
		actions = append(actions, "Sospecha de toxicidad por magnesio: suspender infusion y administrar gluconato/cloruro de calcio 1 g IV.")
	}
	if in.ContextType == "cardiac_arrest" {
		actions = append(actions, "Preparar neonatologia para recepcion y reanimacion neonatal avanzada.")
	}
	return actions
}

func resuscitationSLAAlerts(in ResuscitationInput) []string {
	var alerts []string
	if in.DoorECGMinutes != nil && *in.DoorECGMinutes > 10 {
		alerts = append(alerts, "SLA puerta-electro incumplido (>10 min).")
	}
	if in.SymptomOnsetMinutes != nil && *in.SymptomOnsetMinutes > 360 {
		alerts = append(alerts, "Demora prolongada desde inicio de sintomas.")
	}
	return alerts
}

func resuscitationAlerts(in ResuscitationInput, severity Severity, cprQualityOK *bool) []string {
	var alerts []string
	if severity == SeverityCritical {
		alerts = append(alerts, "Escenario critico: validar decisiones de forma inmediata.")
	}
	if cprQualityOK != nil && !*cprQualityOK {
		alerts = append(alerts, "Calidad de RCP por debajo de objetivo operativo.")
	}
	if in.ContextType == "post_rosc" && in.MAPmmHg != nil && *in.MAPmmHg < 65 {
		alerts = append(alerts, "PAM por debajo de objetivo post-ROSC.")
	}
	if in.OxygenSaturationPercent != nil && *in.OxygenSaturationPercent < 90 {
		alerts = append(alerts, "Hipoxemia significativa detectada.")
	}
	if in.Pregnant && in.AccessAboveDiaphragmSecured != nil && !*in.AccessAboveDiaphragmSecured {
		alerts = append(alerts, "Acceso vascular por encima del diafragma pendiente en paciente gestante.")
	}
	if in.Pregnant && in.ContextType == "cardiac_arrest" &&
		in.MinutesSinceArrest != nil && *in.MinutesSinceArrest >= 4 && !in.HasPulse {
		alerts = append(alerts, "Ventana critica 4-5 min activa para histerotomia resucitativa.")
	}
	if in.MagnesiumInfusionActive && in.MagnesiumToxicitySuspected {
		alerts = append(alerts, "Riesgo de toxicidad por magnesio en contexto obstetrico critico.")
	}
	if in.ContextType == "tachyarrhythmia_with_pulse" && in.narrowPulsePressure() {
		alerts = append(alerts, "Presion de pulso estrecha: posible bajo gasto hemodinamico.")
	}
	return alerts
}

// EvaluateResuscitation builds the operational resuscitation recommendation.
func EvaluateResuscitation(in ResuscitationInput) ResuscitationRecommendation {
	severity := resuscitationSeverity(in)
	rhythmClass := resuscitationRhythmClass(in)
	shockRecommended := resuscitationShockRecommended(in, rhythmClass)
	cprQualityOK := resuscitationCPRQuality(in)

	trace := []string{
		fmt.Sprintf("context_type=%s", in.ContextType),
		fmt.Sprintf("rhythm_classification=%s", rhythmClass),
		fmt.Sprintf("shock_recommended=%t", shockRecommended),
		fmt.Sprintf("severity_level=%s", severity),
	}
	if cprQualityOK != nil {
		trace = append(trace, fmt.Sprintf("cpr_quality_ok=%t", *cprQualityOK))
	}

	return ResuscitationRecommendation{
		SeverityLevel:             severity,
		RhythmClassification:      rhythmClass,
		ShockRecommended:          shockRecommended,
		CPRQualityOK:              cprQualityOK,
		PrimaryActions:            resuscitationPrimaryActions(in, shockRecommended),
		MedicationActions:         resuscitationMedicationActions(in, shockRecommended),
		ElectricalTherapyPlan:     resuscitationElectricalPlan(in, rhythmClass, shockRecommended),
		SedoanalgesiaPlan:         resuscitationSedoanalgesiaPlan(in, rhythmClass, shockRecommended),
		PreShockSafetyChecklist:   resuscitationPreShockChecklist(in, rhythmClass),
		VentilationActions:        resuscitationVentilationActions(in),
		ReversibleCausesChecklist: resuscitationReversibleCauses(in),
		SpecialSituationActions:   resuscitationSpecialSituations(in),
		SLAAlerts:                 resuscitationSLAAlerts(in),
		Alerts:                    resuscitationAlerts(in, severity, cprQualityOK),
		InterpretabilityTrace:     trace,
		HumanValidationRequired:   true,
		NonDiagnosticWarning:      Disclaimer,
	}
}

func init() {
	register("resuscitation", typed((*ResuscitationInput).Validate, EvaluateResuscitation))
}
