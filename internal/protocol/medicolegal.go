package protocol

import "fmt"

// Medicolegal operational support: legal alerts, documentation checklist and
// risk mitigation actions, including the pediatric life-saving conflict rule.

// MedicolegalInput is the structured input for operational legal risk review.
type MedicolegalInput struct {
	TriageWaitMinutes          *int `json:"triage_wait_minutes,omitempty"`
	FirstMedicalContactMinutes *int `json:"first_medical_contact_minutes,omitempty"`
	PatientAgeYears            int  `json:"patient_age_years"`

	PatientHasDecisionCapacity bool `json:"patient_has_decision_capacity"`
	InformedConsentDocumented  bool `json:"informed_consent_documented"`
	InvasiveProcedurePlanned   bool `json:"invasive_procedure_planned"`

	LegalRepresentativePresent                   bool `json:"legal_representative_present"`
	LegalRepresentativesDeceased                 bool `json:"legal_representatives_deceased"`
	RefusesCare                                  bool `json:"refuses_care"`
	ParentalReligiousRefusalLifeSavingTreatment  bool `json:"parental_religious_refusal_life_saving_treatment"`
	LifeThreateningCondition                     bool `json:"life_threatening_condition"`
	BloodTransfusionIndicated                    bool `json:"blood_transfusion_indicated"`
	ImmediateJudicialAuthorizationAvailable      bool `json:"immediate_judicial_authorization_available"`

	PublicHealthRisk               bool `json:"public_health_risk"`
	InvoluntaryPsychiatricAdmission bool `json:"involuntary_psychiatric_admission"`
	PatientEscapeRisk              bool `json:"patient_escape_risk"`
	IntoxicationForensicContext    bool `json:"intoxication_forensic_context"`
	ChainOfCustodyStarted          bool `json:"chain_of_custody_started"`
	SuspectedCrimeInjuries         bool `json:"suspected_crime_injuries"`
	NonNaturalDeathSuspected       bool `json:"non_natural_death_suspected"`

	ContextNotes *string `json:"context_notes,omitempty"`
}

// MedicolegalRecommendation is the operational compliance output.
type MedicolegalRecommendation struct {
	LegalRiskLevel                    string   `json:"legal_risk_level"`
	LifePreservingOverrideRecommended bool     `json:"life_preserving_override_recommended"`
	EthicalLegalBasis                 []string `json:"ethical_legal_basis"`
	UrgencySummary                    string   `json:"urgency_summary"`
	CriticalLegalAlerts               []string `json:"critical_legal_alerts"`
	RequiredDocuments                 []string `json:"required_documents"`
	OperationalActions                []string `json:"operational_actions"`
	ComplianceChecklist               []string `json:"compliance_checklist"`
	SeverityLevel                     Severity `json:"severity_level"`
	InterpretabilityTrace             []string `json:"interpretability_trace"`
	HumanValidationRequired           bool     `json:"human_validation_required"`
	NonDiagnosticWarning              string   `json:"non_diagnostic_warning"`
}

func (in *MedicolegalInput) Validate() error {
	if in.TriageWaitMinutes != nil && *in.TriageWaitMinutes < 0 {
		return invalidf("triage_wait_minutes", "must be >= 0")
	}
	if in.FirstMedicalContactMinutes != nil && *in.FirstMedicalContactMinutes < 0 {
		return invalidf("first_medical_contact_minutes", "must be >= 0")
	}
	if in.PatientAgeYears < 0 {
		return invalidf("patient_age_years", "must be >= 0")
	}
	return validateNotes("context_notes", in.ContextNotes)
}

// Minor at vital risk whose representatives refuse a potentially life-saving
// transfusion. This single condition drives most of the escalation logic.
func medicolegalPediatricConflict(in MedicolegalInput) bool {
	return in.PatientAgeYears < 18 &&
		in.LifeThreateningCondition &&
		in.BloodTransfusionIndicated &&
		in.ParentalReligiousRefusalLifeSavingTreatment
}

func medicolegalCriticalAlerts(in MedicolegalInput) []string {
	var alerts []string
	if in.TriageWaitMinutes != nil && *in.TriageWaitMinutes > 5 {
		alerts = append(alerts, "Triaje fuera de ventana objetivo (<5 min) en urgencias.")
	}
	if in.FirstMedicalContactMinutes != nil && *in.FirstMedicalContactMinutes > 30 {
		alerts = append(alerts, "Valoracion medica inicial fuera de objetivo operativo (<30 min).")
	}
	if in.InvasiveProcedurePlanned && !in.InformedConsentDocumented && in.PatientHasDecisionCapacity {
		alerts = append(alerts, "Procedimiento invasivo sin consentimiento documentado.")
	}
	if in.IntoxicationForensicContext && !in.ChainOfCustodyStarted {
		alerts = append(alerts, "Contexto forense sin cadena de custodia iniciada.")
	}
	if in.NonNaturalDeathSuspected {
		alerts = append(alerts, "Sospecha de muerte no natural: no emitir certificado de defuncion.")
	}
	if medicolegalPediatricConflict(in) {
		alerts = append(alerts,
			"Conflicto bioetico critico: menor en riesgo vital con rechazo representado de tratamiento potencialmente salvador.",
			"Priorizar interes superior del menor y preservacion de la vida como bien juridico prevalente.")
		if in.LegalRepresentativesDeceased || !in.LegalRepresentativePresent {
			alerts = append(alerts, "Desamparo legal inmediato: equipo clinico asume deber de proteccion del menor.")
		}
	}
	return alerts
}

func medicolegalRequiredDocuments(in MedicolegalInput) []string {
	docs := []string{"Registro clinico estructurado con hallazgos positivos y negativos."}
	if in.InvasiveProcedurePlanned {
		docs = append(docs, "Consentimiento informado (escrito si procedimiento invasivo/riesgo).")
	}
	if in.SuspectedCrimeInjuries {
		docs = append(docs, "Parte judicial de lesiones con terminologia medico-legal.")
	}
	if in.IntoxicationForensicContext {
		docs = append(docs, "Formulario de cadena de custodia con fechas/firmas.")
	}
	if in.RefusesCare {
		docs = append(docs, "Documento de alta voluntaria con riesgos explicados.")
	}
	if in.InvoluntaryPsychiatricAdmission {
		docs = append(docs, "Comunicacion de ingreso involuntario a Psiquiatria/Juzgado.")
	}
	if in.PatientEscapeRisk {
		docs = append(docs, "Registro de protocolo de fuga y notificacion a CFSE/Juzgado.")
	}
	if medicolegalPediatricConflict(in) {
		docs = append(docs,
			"Registro de ponderacion bioetica: interes superior del menor, riesgo vital e intervencion proporcional.",
			"Nota clinico-legal de estado de necesidad terapeutica y fundamento de decision urgente.",
			"Registro de comunicacion post-estabilizacion con asesoria juridica, trabajo social y autoridad judicial.")
	}
	return docs
}

func medicolegalOperationalActions(in MedicolegalInput) []string {
	var actions []string
	if in.TriageWaitMinutes != nil && *in.TriageWaitMinutes > 5 {
		actions = append(actions, "Escalar saturacion operativa y priorizar triaje seguro.")
	}
	if in.RefusesCare && in.PatientHasDecisionCapacity {
		actions = append(actions, "Confirmar decision informada y registrar riesgos especificos.")
	}
	if in.RefusesCare && !in.PatientHasDecisionCapacity {
		actions = append(actions, "No formalizar alta voluntaria; activar proteccion clinica por incapacidad.")
	}
	if in.PublicHealthRisk {
		actions = append(actions, "Aplicar excepcion por salud publica segun normativa vigente.")
	}
	if in.IntoxicationForensicContext && in.ChainOfCustodyStarted {
		actions = append(actions, "Mantener trazabilidad de muestras hasta laboratorio receptor.")
	}
	if in.NonNaturalDeathSuspected {
		actions = append(actions, "Judicializar caso y coordinar con forense/autoridad competente.")
	}
	if medicolegalPediatricConflict(in) {
		actions = append(actions,
			"Activar supervision clinica senior inmediata (urgencias/pediatria/criticos).",
			"No demorar medida de soporte vital indicada por tramitacion judicial cuando riesgo vital es inminente.")
		if in.LegalRepresentativesDeceased || !in.LegalRepresentativePresent {
			actions = append(actions, "Proceder bajo deber de proteccion del menor y estado de necesidad, con trazabilidad completa de tiempos y motivos.")
		}
		if !in.ImmediateJudicialAuthorizationAvailable {
			actions = append(actions, "Escalar comunicacion judicial tan pronto como la estabilizacion lo permita.")
		}
	}
	if len(actions) == 0 {
		actions = append(actions, "Mantener vigilancia medico-legal estandar y documentacion completa.")
	}
	return actions
}

func medicolegalComplianceChecklist(in MedicolegalInput) []string {
	checklist := []string{
		"Verificar identificacion del paciente y profesional responsable.",
		"Registrar cronologia asistencial (triaje, valoracion, decisiones).",
		"Documentar razon clinica de pruebas e intervenciones.",
	}
	if in.InvasiveProcedurePlanned {
		checklist = append(checklist, "Confirmar consentimiento documentado antes de tecnica invasiva.")
	}
	if in.IntoxicationForensicContext {
		checklist = append(checklist, "Completar cadena de custodia sin rupturas.")
	}
	if in.SuspectedCrimeInjuries {
		checklist = append(checklist, "Emitir parte judicial de lesiones con descripcion forense.")
	}
	if in.PatientAgeYears < 16 {
		checklist = append(checklist, "Validar decision con representante legal por minoria de edad.")
	}
	if medicolegalPediatricConflict(in) {
		checklist = append(checklist,
			"Documentar riesgo vital inminente y proporcionalidad de la medida.",
			"Registrar causa de imposibilidad de autorizacion judicial inmediata.",
			"Registrar hora exacta de decision e intervencion en linea temporal.")
	}
	return checklist
}

func medicolegalRiskLevel(alerts []string, in MedicolegalInput) string {
	switch {
	case medicolegalPediatricConflict(in):
		return "high"
	case len(alerts) >= 3:
		return "high"
	case len(alerts) >= 1:
		return "medium"
	default:
		return "low"
	}
}

// EvaluateMedicolegal builds the medicolegal operations recommendation.
func EvaluateMedicolegal(in MedicolegalInput) MedicolegalRecommendation {
	alerts := medicolegalCriticalAlerts(in)
	conflict := medicolegalPediatricConflict(in)
	overrideRecommended := conflict &&
		(in.LegalRepresentativesDeceased || !in.LegalRepresentativePresent ||
			!in.ImmediateJudicialAuthorizationAvailable)

	var basis []string
	if conflict {
		basis = append(basis,
			"Interes superior del menor como criterio prevalente en riesgo vital.",
			"Deber de beneficencia y no maleficencia ante dano irreversible evitable.",
			"Estado de necesidad terapeutica en urgencia extrema.",
			"Proteccion de autonomia futura del menor preservando su vida.")
		if in.LegalRepresentativesDeceased || !in.LegalRepresentativePresent {
			basis = append(basis, "Desamparo de representacion: el equipo clinico asume funcion de garante.")
		}
	}

	var urgencySummary string
	switch {
	case overrideRecommended:
		urgencySummary = "Riesgo vital inminente: se recomienda priorizar medida de soporte vital indicada sin demoras administrativas, con trazabilidad reforzada."
	case conflict:
		urgencySummary = "Conflicto pediatrico critico activo: mantener escalado clinico-juridico inmediato y decision centrada en preservacion de vida."
	default:
		urgencySummary = "Sin conflicto pediatrico vital activo en esta evaluacion."
	}

	riskLevel := medicolegalRiskLevel(alerts, in)
	actions := medicolegalOperationalActions(in)

	var critical, safety []string
	if conflict {
		critical = append(critical, "Conflicto pediatrico vital activo.")
	}
	if riskLevel == "high" {
		safety = append(safety, "Riesgo legal alto detectado.")
	} else if len(alerts) > 0 {
		safety = append(safety, "Alertas legales activas.")
	}
	severity := ComputeSeverity(critical, safety, actions)

	trace := []string{
		fmt.Sprintf("legal_risk_level=%s", riskLevel),
		fmt.Sprintf("pediatric_life_saving_conflict=%t", conflict),
		fmt.Sprintf("life_preserving_override_recommended=%t", overrideRecommended),
		fmt.Sprintf("severity_level=%s", severity),
	}

	return MedicolegalRecommendation{
		LegalRiskLevel:                    riskLevel,
		LifePreservingOverrideRecommended: overrideRecommended,
		EthicalLegalBasis:                 basis,
		UrgencySummary:                    urgencySummary,
		CriticalLegalAlerts:               alerts,
		RequiredDocuments:                 medicolegalRequiredDocuments(in),
		OperationalActions:                actions,
		ComplianceChecklist:               medicolegalComplianceChecklist(in),
		SeverityLevel:                     severity,
		InterpretabilityTrace:             trace,
		HumanValidationRequired:           true,
		NonDiagnosticWarning:              "Soporte operativo no diagnostico ni consejo legal formal. Requiere validacion clinica y juridica humana.",
	}
}

func init() {
	register("medicolegal_ops", typed((*MedicolegalInput).Validate, EvaluateMedicolegal))
}
