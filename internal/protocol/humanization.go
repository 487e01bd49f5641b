package protocol

import (
	"fmt"
	"strings"
)

// Pediatric humanization support: family communication, psychosocial support
// and multidisciplinary coordination plans.

var humanizationContexts = map[string]bool{
	"neuro_oncologia":           true,
	"ensayo_clinico":            true,
	"hospitalizacion_compleja":  true,
	"seguimiento":               true,
}

var humanizationConsentStatuses = map[string]bool{
	"pendiente": true, "explicado": true, "firmado": true, "rechazado": true,
}

var humanizationBurnoutLevels = map[string]bool{"low": true, "medium": true, "high": true}

// HumanizationInput is the operational input for pediatric humanization.
type HumanizationInput struct {
	PatientAgeYears          int      `json:"patient_age_years"`
	PrimaryContext           string   `json:"primary_context"`
	EmotionalDistressLevel   int      `json:"emotional_distress_level"`
	FamilyUnderstandingLevel int      `json:"family_understanding_level"`
	FamilyPresent            *bool    `json:"family_present,omitempty"`
	SiblingSupportNeeded     bool     `json:"sibling_support_needed"`
	SocialRiskFlags          []string `json:"social_risk_flags"`
	NeedsSpiritualSupport    bool     `json:"needs_spiritual_support"`
	MultidisciplinaryTeam    []string `json:"multidisciplinary_team"`
	HasClinicalTrialOption   bool     `json:"has_clinical_trial_option"`
	InformedConsentStatus    string   `json:"informed_consent_status"`
	ProfessionalBurnoutRisk  string   `json:"professional_burnout_risk"`
	Notes                    *string  `json:"notes,omitempty"`
}

// HumanizationRecommendation is the structured humanization plan output.
type HumanizationRecommendation struct {
	CommunicationPlan          []string `json:"communication_plan"`
	FamilyIntegrationPlan      []string `json:"family_integration_plan"`
	SupportPlan                []string `json:"support_plan"`
	InnovationCoordinationPlan []string `json:"innovation_coordination_plan"`
	TeamCarePlan               []string `json:"team_care_plan"`
	Alerts                     []string `json:"alerts"`
	SeverityLevel              Severity `json:"severity_level"`
	InterpretabilityTrace      []string `json:"interpretability_trace"`
	HumanValidationRequired    bool     `json:"human_validation_required"`
	NonDiagnosticWarning       string   `json:"non_diagnostic_warning"`
}

func (in *HumanizationInput) Validate() error {
	if in.PatientAgeYears < 0 {
		return invalidf("patient_age_years", "must be >= 0")
	}
	if in.PrimaryContext == "" {
		in.PrimaryContext = "hospitalizacion_compleja"
	}
	if !humanizationContexts[in.PrimaryContext] {
		return invalidf("primary_context", "unknown value %q", in.PrimaryContext)
	}
	if in.EmotionalDistressLevel < 0 || in.EmotionalDistressLevel > 10 {
		return invalidf("emotional_distress_level", "must be between 0 and 10")
	}
	if in.FamilyUnderstandingLevel < 0 || in.FamilyUnderstandingLevel > 10 {
		return invalidf("family_understanding_level", "must be between 0 and 10")
	}
	if in.InformedConsentStatus == "" {
		in.InformedConsentStatus = "pendiente"
	}
	if !humanizationConsentStatuses[in.InformedConsentStatus] {
		return invalidf("informed_consent_status", "unknown value %q", in.InformedConsentStatus)
	}
	if in.ProfessionalBurnoutRisk == "" {
		in.ProfessionalBurnoutRisk = "low"
	}
	if !humanizationBurnoutLevels[in.ProfessionalBurnoutRisk] {
		return invalidf("professional_burnout_risk", "unknown value %q", in.ProfessionalBurnoutRisk)
	}
	if in.Notes != nil && len(*in.Notes) > 3000 {
		return invalidf("notes", "must be at most 3000 characters")
	}
	return nil
}

func humanizationCommunicationPlan(in HumanizationInput) []string {
	plan := []string{
		"Explicar situacion en lenguaje claro, sin tecnicismos innecesarios.",
		"Confirmar comprension con tecnica de repeticion por parte de la familia.",
	}
	if in.FamilyUnderstandingLevel <= 4 {
		plan = append(plan, "Programar segundo bloque informativo en menos de 2 horas.")
	}
	if in.EmotionalDistressLevel >= 7 {
		plan = append(plan, "Realizar comunicacion en entorno tranquilo con pausas guiadas.")
	}
	return plan
}

func humanizationFamilyIntegrationPlan(in HumanizationInput) []string {
	var plan []string
	if in.FamilyPresent == nil || *in.FamilyPresent {
		plan = append(plan, "Incluir a tutores en el plan diario como co-terapeutas informados.")
	} else {
		plan = append(plan, "Activar contacto remoto estructurado con tutores en cada hito clinico.")
	}
	if in.SiblingSupportNeeded {
		plan = append(plan, "Coordinar soporte para hermanos con trabajo social/psicologia.")
	}
	if in.InformedConsentStatus == "pendiente" || in.InformedConsentStatus == "rechazado" {
		plan = append(plan, "Revisar consentimiento con enfoque gradual y dudas abiertas.")
	}
	return plan
}

func humanizationSupportPlan(in HumanizationInput) []string {
	var plan []string
	if len(in.SocialRiskFlags) > 0 {
		plan = append(plan, "Escalar a trabajo social por factores de riesgo psicosocial.")
	}
	if in.NeedsSpiritualSupport {
		plan = append(plan, "Ofrecer atencion espiritual voluntaria segun preferencia familiar.")
	}
	if in.EmotionalDistressLevel >= 8 {
		plan = append(plan, "Solicitar intervencion de psicologia clinica pediatrica.")
	}
	if len(plan) == 0 {
		plan = append(plan, "Mantener seguimiento psicosocial estandar en unidad.")
	}
	return plan
}

func humanizationInnovationPlan(in HumanizationInput) []string {
	var plan []string
	if in.PrimaryContext == "neuro_oncologia" {
		plan = append(plan, "Coordinar sesion breve neuro-oncologia + familia para plan actualizado.")
	}
	if in.HasClinicalTrialOption {
		plan = append(plan,
			"Valorar pre-elegibilidad a ensayo clinico con revision multidisciplinar.",
			"Sincronizar ventana operativa con anestesia y equipo de investigacion.")
	}
	if len(plan) == 0 {
		plan = append(plan, "Mantener coordinacion clinica convencional segun protocolo de servicio.")
	}
	return plan
}

func humanizationTeamCarePlan(in HumanizationInput) []string {
	var plan []string
	if in.ProfessionalBurnoutRisk == "high" {
		plan = append(plan, "Activar pausa operativa de equipo y reparto de carga asistencial.")
	}
	if in.ProfessionalBurnoutRisk == "medium" || in.ProfessionalBurnoutRisk == "high" {
		plan = append(plan, "Planificar micro-huddle de 10 minutos al cierre de turno.")
	}
	hasAnesthesia := false
	for _, member := range in.MultidisciplinaryTeam {
		if strings.ToLower(member) == "anestesia" {
			hasAnesthesia = true
			break
		}
	}
	if !hasAnesthesia {
		plan = append(plan, "Revisar necesidad de incluir anestesia en procedimientos complejos.")
	}
	return plan
}

func humanizationAlerts(in HumanizationInput) []string {
	var alerts []string
	if in.EmotionalDistressLevel >= 8 {
		alerts = append(alerts, "Distres emocional alto: priorizar contencion familiar inmediata.")
	}
	if in.FamilyUnderstandingLevel <= 3 {
		alerts = append(alerts, "Riesgo de baja comprension: reforzar comunicacion estructurada.")
	}
	if in.InformedConsentStatus == "rechazado" {
		alerts = append(alerts, "Consentimiento rechazado: requiere reevaluacion clinico-legal humana.")
	}
	if in.PrimaryContext == "ensayo_clinico" && !in.HasClinicalTrialOption {
		alerts = append(alerts, "Contexto de ensayo sin opcion activa: validar coherencia del caso.")
	}
	return alerts
}

// EvaluateHumanization builds the pediatric humanization recommendation.
func EvaluateHumanization(in HumanizationInput) HumanizationRecommendation {
	alerts := humanizationAlerts(in)
	communication := humanizationCommunicationPlan(in)
	support := humanizationSupportPlan(in)

	severity := ComputeSeverity(nil, alerts, append(append([]string{}, communication...), support...))

	trace := []string{
		fmt.Sprintf("primary_context=%s", in.PrimaryContext),
		fmt.Sprintf("emotional_distress_level=%d", in.EmotionalDistressLevel),
		fmt.Sprintf("family_understanding_level=%d", in.FamilyUnderstandingLevel),
		fmt.Sprintf("severity_level=%s", severity),
	}

	return HumanizationRecommendation{
		CommunicationPlan:          communication,
		FamilyIntegrationPlan:      humanizationFamilyIntegrationPlan(in),
		SupportPlan:                support,
		InnovationCoordinationPlan: humanizationInnovationPlan(in),
		TeamCarePlan:               humanizationTeamCarePlan(in),
		Alerts:                     alerts,
		SeverityLevel:              severity,
		InterpretabilityTrace:      trace,
		HumanValidationRequired:    true,
		NonDiagnosticWarning:       Disclaimer,
	}
}

func init() {
	register("humanization", typed((*HumanizationInput).Validate, EvaluateHumanization))
}
