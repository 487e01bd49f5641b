package protocol

import "strings"

// Psychiatry operational engine: temporal triage of trauma reactions, suicide
// risk escalation, psychosis prognosis flags, pharmacologic safety in
// pregnancy and geriatrics, eating-disorder medicine alerts.

// PsychiatryInput is the clinical-operational input for psychiatric
// prioritization in the emergency department.
type PsychiatryInput struct {
	AgeYears *int `json:"age_years,omitempty"`

	TraumaticEventExposure  bool `json:"traumatic_event_exposure"`
	DaysSinceTraumaticEvent *int `json:"days_since_traumatic_event,omitempty"`
	ReexperiencingSymptoms  bool `json:"reexperiencing_symptoms"`
	AvoidanceSymptoms       bool `json:"avoidance_symptoms"`
	HyperarousalSymptoms    bool `json:"hyperarousal_symptoms"`

	PsychosocialStressorPresent   bool `json:"psychosocial_stressor_present"`
	DaysSincePsychosocialStressor *int `json:"days_since_psychosocial_stressor,omitempty"`

	SelfHarmPresent      bool `json:"self_harm_present"`
	PriorSuicideAttempt  bool `json:"prior_suicide_attempt"`
	FamilyHistorySuicide bool `json:"family_history_suicide"`
	SocialIsolation      bool `json:"social_isolation"`
	MaleSex              bool `json:"male_sex"`

	PsychosisSuspected          bool `json:"psychosis_suspected"`
	PsychosisOnsetAcute         bool `json:"psychosis_onset_acute"`
	PsychosisEarlyAgeOnset      bool `json:"psychosis_early_age_onset"`
	NegativeSymptomsPredominant bool `json:"negative_symptoms_predominant"`

	BipolarDisorderKnown  bool    `json:"bipolar_disorder_known"`
	PregnancyOngoing      bool    `json:"pregnancy_ongoing"`
	PlannedMoodStabilizer *string `json:"planned_mood_stabilizer,omitempty"`

	InsomniaPresent            bool `json:"insomnia_present"`
	PainSecondaryCauseSuspected bool `json:"pain_secondary_cause_suspected"`
	HypnoticPlanned            bool `json:"hypnotic_planned"`
	BenzodiazepinePlanned      bool `json:"benzodiazepine_planned"`

	EatingDisorderSuspected       bool `json:"eating_disorder_suspected"`
	LanugoPresent                 bool `json:"lanugo_present"`
	HypotensionPresent            bool `json:"hypotension_present"`
	SinusBradycardiaPresent       bool `json:"sinus_bradycardia_present"`
	TachycardiaPresent            bool `json:"tachycardia_present"`
	PurgingVomitingPresent        bool `json:"purging_vomiting_present"`
	HypokalemiaPresent            bool `json:"hypokalemia_present"`
	HypochloremicAlkalosisPresent bool `json:"hypochloremic_alkalosis_present"`

	DelusionalDisorderSuspected bool `json:"delusional_disorder_suspected"`
	DefenseProjection           bool `json:"defense_projection"`
	DefenseDenial               bool `json:"defense_denial"`
	DefenseReactionFormation    bool `json:"defense_reaction_formation"`
	DefenseRegression           bool `json:"defense_regression"`

	Notes *string `json:"notes,omitempty"`
}

// PsychiatryRecommendation is the structured psychiatry support output.
type PsychiatryRecommendation struct {
	SeverityLevel             Severity `json:"severity_level"`
	CriticalAlerts            []string `json:"critical_alerts"`
	TriageActions             []string `json:"triage_actions"`
	DiagnosticSupport         []string `json:"diagnostic_support"`
	PharmacologicSafetyAlerts []string `json:"pharmacologic_safety_alerts"`
	PrognosisFlags            []string `json:"prognosis_flags"`
	MaternalFetalActions      []string `json:"maternal_fetal_actions"`
	InternalMedicineAlerts    []string `json:"internal_medicine_alerts"`
	PsychodynamicFlags        []string `json:"psychodynamic_flags"`
	InterpretabilityTrace     []string `json:"interpretability_trace"`
	HumanValidationRequired   bool     `json:"human_validation_required"`
	NonDiagnosticWarning      string   `json:"non_diagnostic_warning"`
}

func (in *PsychiatryInput) Validate() error {
	if in.AgeYears == nil {
		adult := 18
		in.AgeYears = &adult
	}
	if err := inRangeI("age_years", in.AgeYears, 0, 120); err != nil {
		return err
	}
	if err := inRangeI("days_since_traumatic_event", in.DaysSinceTraumaticEvent, 0, 3650); err != nil {
		return err
	}
	if err := inRangeI("days_since_psychosocial_stressor", in.DaysSincePsychosocialStressor, 0, 3650); err != nil {
		return err
	}
	if in.PlannedMoodStabilizer != nil && len(*in.PlannedMoodStabilizer) > 60 {
		return invalidf("planned_mood_stabilizer", "must be at most 60 characters")
	}
	return validateNotes("notes", in.Notes)
}

func psychTemporalTriagePathway(in PsychiatryInput) (triage, diagnostic, trace []string) {
	traumaCluster := in.ReexperiencingSymptoms || in.AvoidanceSymptoms || in.HyperarousalSymptoms
	if in.TraumaticEventExposure && traumaCluster {
		if in.DaysSinceTraumaticEvent != nil {
			if *in.DaysSinceTraumaticEvent < 30 {
				diagnostic = append(diagnostic, "Sintomas en dias-semanas post evento grave: compatible con reaccion de estres aguda.")
				trace = append(trace, "Clasificacion temporal de estres agudo aplicada.")
			} else {
				diagnostic = append(diagnostic, "Persistencia >= 1 mes tras trauma: priorizar evaluacion de TEPT.")
				triage = append(triage, "Escalar seguimiento especializado por duracion prolongada.")
				trace = append(trace, "Umbral temporal de TEPT activado.")
			}
		} else {
			diagnostic = append(diagnostic, "Completar cronologia del trauma para diferenciar estres agudo vs TEPT.")
		}
	}

	if in.PsychosocialStressorPresent {
		if in.DaysSincePsychosocialStressor != nil && *in.DaysSincePsychosocialStressor <= 30 {
			diagnostic = append(diagnostic, "Inicio en el mes posterior a estresor psicosocial comun: considerar trastorno adaptativo.")
			trace = append(trace, "Ruta operativa de trastorno adaptativo activada.")
		} else {
			diagnostic = append(diagnostic, "Si no existe evento catastrofico, priorizar evaluacion de adaptacion psicosocial.")
		}
	}
	return triage, diagnostic, trace
}

func psychSuicideRiskPathway(in PsychiatryInput) (criticalAlerts, triage, diagnostic, trace []string) {
	if *in.AgeYears < 18 && in.SelfHarmPresent {
		criticalAlerts = append(criticalAlerts, "Autolesiones en menor de edad: elevar riesgo suicida a nivel maximo.")
		triage = append(triage, "Activar evaluacion psiquiatrica inmediata y observacion estrecha.")
		triage = append(triage, "Registrar prioridad operativa maxima en triaje.")
		trace = append(trace, "Regla infanto-juvenil de riesgo suicida maximo activada.")
	}

	additionalRiskFactors := 0
	for _, factor := range []bool{in.PriorSuicideAttempt, in.FamilyHistorySuicide, in.SocialIsolation, in.MaleSex} {
		if factor {
			additionalRiskFactors++
		}
	}
	if additionalRiskFactors >= 2 {
		criticalAlerts = append(criticalAlerts, "Multiples factores de riesgo suicida acumulados; reforzar contencion y vigilancia.")
		diagnostic = append(diagnostic, "Documentar antecedentes de intento previo, red de apoyo y riesgo familiar.")
	}
	return criticalAlerts, triage, diagnostic, trace
}

func psychPsychosisPrognosisPathway(in PsychiatryInput) (prognosisFlags, diagnostic []string) {
	if in.PsychosisSuspected {
		diagnostic = append(diagnostic, "Ante psicosis, priorizar evaluacion estructurada de sintomas positivos y negativos.")
		if in.PsychosisOnsetAcute {
			prognosisFlags = append(prognosisFlags, "Inicio agudo de psicosis: factor de mejor pronostico operativo.")
		}
		if in.PsychosisEarlyAgeOnset {
			prognosisFlags = append(prognosisFlags, "Inicio temprano de psicosis: factor de mal pronostico.")
		}
		if in.NegativeSymptomsPredominant {
			prognosisFlags = append(prognosisFlags, "Predominio de sintomas negativos: riesgo de peor respuesta y retraso diagnostico.")
		}
	}
	return prognosisFlags, diagnostic
}

func psychPharmacologicSafetyPathway(in PsychiatryInput) (criticalAlerts, safetyAlerts, maternalFetal, triage, trace []string) {
	planned := ""
	if in.PlannedMoodStabilizer != nil {
		planned = strings.ToLower(strings.TrimSpace(*in.PlannedMoodStabilizer))
	}
	if in.BipolarDisorderKnown && in.PregnancyOngoing {
		maternalFetal = append(maternalFetal, "En bipolaridad durante embarazo, priorizar lamotrigina como estabilizador de referencia.")
		switch planned {
		case "litio", "lithium":
			criticalAlerts = append(criticalAlerts, "Embarazo + litio: contraindicado por riesgo de anomalia de Ebstein.")
		case "acido valproico", "valproato", "valproic acid":
			criticalAlerts = append(criticalAlerts, "Embarazo + valproato: contraindicado por teratogenia grave.")
		case "carbamazepina":
			safetyAlerts = append(safetyAlerts, "Embarazo + carbamazepina: alto riesgo de defectos del tubo neural y malformaciones craneofaciales.")
		case "lamotrigina":
			maternalFetal = append(maternalFetal, "Lamotrigina seleccionada: mantener monitorizacion obstetrica y psiquiatrica estrecha.")
		}
	}

	if *in.AgeYears >= 80 && in.InsomniaPresent {
		triage = append(triage, "Activar flujo de deteccion de causas secundarias de dolor antes de sugerir hipnoticos.")
		trace = append(trace, "Regla de insomnio geriatrico con causa secundaria activada.")
		if in.PainSecondaryCauseSuspected {
			triage = append(triage, "Si el insomnio es secundario a dolor, priorizar analgesia inicial (p. ej., paracetamol) y reevaluar.")
		}
		if in.BenzodiazepinePlanned {
			safetyAlerts = append(safetyAlerts, "Evitar benzodiacepinas en ancianos por riesgo de caidas, delirium y deterioro cognitivo.")
		}
		if in.HypnoticPlanned && !in.PainSecondaryCauseSuspected {
			safetyAlerts = append(safetyAlerts, "No iniciar hipnoticos sin descartar causa secundaria de insomnio en >80 anos.")
		}
	}
	return criticalAlerts, safetyAlerts, maternalFetal, triage, trace
}

func psychInternalMedicinePsychodynamicsPathway(in PsychiatryInput) (internalAlerts, psychodynamicFlags, criticalAlerts, diagnostic []string) {
	if in.EatingDisorderSuspected {
		if in.LanugoPresent {
			internalAlerts = append(internalAlerts, "Lanugo presente: compatible con desnutricion de trastorno alimentario.")
		}
		if in.HypotensionPresent {
			internalAlerts = append(internalAlerts, "Hipotension en probable anorexia: vigilar compromiso hemodinamico.")
		}
		if in.SinusBradycardiaPresent {
			internalAlerts = append(internalAlerts, "Bradicardia sinusal en probable anorexia: hallazgo fisiopatologico esperado.")
		}
		if in.TachycardiaPresent {
			criticalAlerts = append(criticalAlerts, "Taquicardia en anorexia no es patron tipico: descartar complicacion aguda.")
		}
		if in.PurgingVomitingPresent {
			diagnostic = append(diagnostic, "Con purgas, solicitar iones y gasometria para detectar hipopotasemia/alcalosis hipocloromica.")
			if in.HypokalemiaPresent || in.HypochloremicAlkalosisPresent {
				criticalAlerts = append(criticalAlerts, "Complicacion metabolica por purga (hipopotasemia/alcalosis): riesgo arrtimico y necesidad de correccion urgente.")
			}
		}
	}

	if in.DelusionalDisorderSuspected {
		if in.DefenseProjection {
			psychodynamicFlags = append(psychodynamicFlags, "Mecanismo de defensa probable: proyeccion.")
		}
		if in.DefenseDenial {
			psychodynamicFlags = append(psychodynamicFlags, "Mecanismo de defensa probable: negacion.")
		}
		if in.DefenseReactionFormation {
			psychodynamicFlags = append(psychodynamicFlags, "Mecanismo de defensa probable: formacion reactiva.")
		}
		if in.DefenseRegression {
			psychodynamicFlags = append(psychodynamicFlags, "Regresion reportada: menos caracteristica de psicosis delirante.")
		}
	}
	return internalAlerts, psychodynamicFlags, criticalAlerts, diagnostic
}

func psychSeverity(criticalAlerts, safetyAlerts, prognosisFlags []string) Severity {
	if len(criticalAlerts) > 0 {
		return SeverityCritical
	}
	if len(safetyAlerts) > 0 {
		return SeverityHigh
	}
	if len(prognosisFlags) > 0 {
		return SeverityMedium
	}
	return SeverityLow
}

// EvaluatePsychiatry builds the psychiatry support recommendation.
func EvaluatePsychiatry(in PsychiatryInput) PsychiatryRecommendation {
	triageTime, diagnosticTime, traceTime := psychTemporalTriagePathway(in)
	criticalSuicide, triageSuicide, diagnosticSuicide, traceSuicide := psychSuicideRiskPathway(in)
	prognosisFlags, diagnosticPsychosis := psychPsychosisPrognosisPathway(in)
	criticalPharm, safetyPharm, maternalFetal, triagePharm, tracePharm := psychPharmacologicSafetyPathway(in)
	internalAlerts, psychodynamicFlags, criticalInternal, diagnosticInternal := psychInternalMedicinePsychodynamicsPathway(in)

	criticalAlerts := append(append(append([]string{}, criticalSuicide...), criticalPharm...), criticalInternal...)
	triage := append(append(append([]string{}, triageTime...), triageSuicide...), triagePharm...)
	diagnostic := append(append(append(append([]string{}, diagnosticTime...), diagnosticSuicide...), diagnosticPsychosis...), diagnosticInternal...)
	trace := append(append(append([]string{}, traceTime...), traceSuicide...), tracePharm...)

	return PsychiatryRecommendation{
		SeverityLevel:            psychSeverity(criticalAlerts, safetyPharm, prognosisFlags),
		CriticalAlerts:           criticalAlerts,
		TriageActions:            triage,
		DiagnosticSupport:        diagnostic,
		PharmacologicSafetyAlerts: safetyPharm,
		PrognosisFlags:           prognosisFlags,
		MaternalFetalActions:     maternalFetal,
		InternalMedicineAlerts:   internalAlerts,
		PsychodynamicFlags:       psychodynamicFlags,
		InterpretabilityTrace:    trace,
		HumanValidationRequired:  true,
		NonDiagnosticWarning:     "Soporte operativo no diagnostico. Requiere validacion por psiquiatria/equipo de urgencias.",
	}
}

func init() {
	register("psychiatry", typed((*PsychiatryInput).Validate, EvaluatePsychiatry))
}
