package protocol

import "fmt"

// Viral respiratory infection operational rules (COVID / flu / RSV): early
// actions to improve timing and safety for vulnerable patients.

var respiratoryPathogens = map[string]bool{
	"covid": true, "gripe": true, "vrs": true, "indeterminado": true,
}

var antigenResults = map[string]bool{
	"positivo": true, "negativo": true, "no_realizado": true,
}

// RespiratoryInput captures the facts for the respiratory protocol.
type RespiratoryInput struct {
	AgeYears                       int      `json:"age_years"`
	Immunosuppressed               bool     `json:"immunosuppressed"`
	Comorbidities                  []string `json:"comorbidities"`
	VaccinationUpdatedLast12Months *bool    `json:"vaccination_updated_last_12_months,omitempty"`
	SymptomOnsetHours              *int     `json:"symptom_onset_hours,omitempty"`
	HoursSinceERArrival            *int     `json:"hours_since_er_arrival,omitempty"`
	CurrentSystolicBP              *int     `json:"current_systolic_bp,omitempty"`
	BaselineSystolicBP             *int     `json:"baseline_systolic_bp,omitempty"`
	NeedsOxygen                    bool     `json:"needs_oxygen"`
	PathogenSuspected              string   `json:"pathogen_suspected"`
	AntigenResult                  string   `json:"antigen_result"`
	OralAntiviralContraindicated   bool     `json:"oral_antiviral_contraindicated"`
	Notes                          *string  `json:"notes,omitempty"`
}

// RespiratoryRecommendation is the structured respiratory support output.
type RespiratoryRecommendation struct {
	VulnerablePatient       bool     `json:"vulnerable_patient"`
	ShockRelativeSuspected  bool     `json:"shock_relative_suspected"`
	DiagnosticPlan          []string `json:"diagnostic_plan"`
	AntiviralPlan           []string `json:"antiviral_plan"`
	IsolationPlan           []string `json:"isolation_plan"`
	Alerts                  []string `json:"alerts"`
	SeverityLevel           Severity `json:"severity_level"`
	InterpretabilityTrace   []string `json:"interpretability_trace"`
	HumanValidationRequired bool     `json:"human_validation_required"`
	NonDiagnosticWarning    string   `json:"non_diagnostic_warning"`
}

func (in *RespiratoryInput) Validate() error {
	if in.AgeYears < 0 {
		return invalidf("age_years", "must be >= 0")
	}
	if in.PathogenSuspected == "" {
		in.PathogenSuspected = "indeterminado"
	}
	if !respiratoryPathogens[in.PathogenSuspected] {
		return invalidf("pathogen_suspected", "unknown value %q", in.PathogenSuspected)
	}
	if in.AntigenResult == "" {
		in.AntigenResult = "no_realizado"
	}
	if !antigenResults[in.AntigenResult] {
		return invalidf("antigen_result", "unknown value %q", in.AntigenResult)
	}
	if in.SymptomOnsetHours != nil && *in.SymptomOnsetHours < 0 {
		return invalidf("symptom_onset_hours", "must be >= 0")
	}
	if in.HoursSinceERArrival != nil && *in.HoursSinceERArrival < 0 {
		return invalidf("hours_since_er_arrival", "must be >= 0")
	}
	if in.CurrentSystolicBP != nil && *in.CurrentSystolicBP < 20 {
		return invalidf("current_systolic_bp", "must be >= 20")
	}
	if in.BaselineSystolicBP != nil && *in.BaselineSystolicBP < 20 {
		return invalidf("baseline_systolic_bp", "must be >= 20")
	}
	return validateNotes("notes", in.Notes)
}

func respiratoryVulnerable(in RespiratoryInput) bool {
	return in.AgeYears >= 65 ||
		in.Immunosuppressed ||
		len(in.Comorbidities) > 0 ||
		(in.VaccinationUpdatedLast12Months != nil && !*in.VaccinationUpdatedLast12Months)
}

// Relative shock: hypertensive baseline dropping to borderline values.
func respiratoryRelativeShock(in RespiratoryInput) bool {
	if in.CurrentSystolicBP == nil || in.BaselineSystolicBP == nil {
		return false
	}
	return *in.BaselineSystolicBP >= 140 && *in.CurrentSystolicBP <= 110
}

func respiratoryDiagnosticPlan(in RespiratoryInput, vulnerable bool) []string {
	var plan []string
	if in.AntigenResult == "no_realizado" {
		plan = append(plan, "Realizar test de antigeno respiratorio en triaje.")
	}
	needPCR := in.AntigenResult == "negativo" && (vulnerable || in.Immunosuppressed || in.NeedsOxygen)
	if needPCR {
		plan = append(plan, "Escalar a PCR / tecnica molecular multiple por alto riesgo.")
	}
	if in.PathogenSuspected == "vrs" && in.AntigenResult == "negativo" {
		plan = append(plan, "Para VRS en adulto: usar muestra combinada (saliva + exudado nasofaringeo).")
	}
	return plan
}

func respiratoryAntiviralPlan(in RespiratoryInput, vulnerable bool) []string {
	var plan []string
	onset := in.SymptomOnsetHours
	switch in.PathogenSuspected {
	case "covid":
		switch {
		case in.NeedsOxygen:
			plan = append(plan, "Valorar Remdesivir IV 5-10 dias por cuadro grave.")
		case vulnerable && onset != nil && *onset <= 5*24:
			if in.OralAntiviralContraindicated {
				plan = append(plan, "Valorar Remdesivir IV 3 dias por contraindicacion de antiviral oral.")
			} else {
				plan = append(plan, "Valorar Nirmatrelvir/Ritonavir VO 5 dias (<5 dias de inicio).")
			}
		case vulnerable && onset != nil && *onset <= 7*24:
			plan = append(plan, "Valorar Remdesivir IV 3 dias (<7 dias de inicio).")
		}
	case "gripe":
		switch {
		case in.NeedsOxygen:
			plan = append(plan, "Iniciar Oseltamivir precozmente; objetivo operativo ideal <6h desde llegada.")
		case vulnerable && onset != nil && *onset <= 48:
			plan = append(plan, "Iniciar Oseltamivir en ventana <48h.")
		}
	case "vrs":
		plan = append(plan, "No hay antiviral estandar de urgencias; priorizar soporte y vigilancia estrecha.")
	}
	return plan
}

func respiratoryIsolationPlan(in RespiratoryInput) []string {
	var plan []string
	switch in.PathogenSuspected {
	case "covid":
		plan = append(plan,
			"Aplicar control de aerosoles estricto y mascarilla.",
			"Minimizar estancia en zonas congestionadas y reforzar ventilacion.")
	case "gripe":
		plan = append(plan, "Aplicar aislamiento respiratorio segun protocolo local.")
	case "vrs":
		plan = append(plan, "Aislar de forma activa para prevenir transmision nosocomial en mayores.")
	}
	return plan
}

func respiratoryAlerts(in RespiratoryInput, vulnerable, shockRelative bool) []string {
	var alerts []string
	if vulnerable {
		alerts = append(alerts, "Paciente vulnerable: priorizar evaluacion y circuito rapido.")
	}
	if shockRelative {
		alerts = append(alerts, "Sospecha de shock relativo en paciente con basal hipertensa.")
	}
	if in.Immunosuppressed && in.PathogenSuspected == "covid" {
		alerts = append(alerts, "Inmunosupresion: vigilar posible replicacion viral persistente.")
	}
	if in.PathogenSuspected == "gripe" && in.HoursSinceERArrival != nil && *in.HoursSinceERArrival > 6 {
		alerts = append(alerts, "Ventana operativa >6h para gripe grave: revisar demora terapeutica.")
	}
	return alerts
}

// EvaluateRespiratory builds the operational respiratory recommendation.
func EvaluateRespiratory(in RespiratoryInput) RespiratoryRecommendation {
	vulnerable := respiratoryVulnerable(in)
	shockRelative := respiratoryRelativeShock(in)

	diagnostic := respiratoryDiagnosticPlan(in, vulnerable)
	antiviral := respiratoryAntiviralPlan(in, vulnerable)
	isolation := respiratoryIsolationPlan(in)
	alerts := respiratoryAlerts(in, vulnerable, shockRelative)

	var critical []string
	if shockRelative && in.NeedsOxygen {
		critical = append(critical, "Shock relativo con necesidad de oxigeno: reevaluacion inmediata.")
	}
	var safety []string
	if shockRelative {
		safety = append(safety, "Sospecha de shock relativo en paciente con basal hipertensa.")
	}
	actions := append(append(append([]string{}, diagnostic...), antiviral...), isolation...)
	severity := ComputeSeverity(critical, safety, actions)

	trace := []string{
		fmt.Sprintf("vulnerable_patient=%t", vulnerable),
		fmt.Sprintf("shock_relative_suspected=%t", shockRelative),
		fmt.Sprintf("pathogen_suspected=%s", in.PathogenSuspected),
		fmt.Sprintf("severity_level=%s", severity),
	}

	return RespiratoryRecommendation{
		VulnerablePatient:       vulnerable,
		ShockRelativeSuspected:  shockRelative,
		DiagnosticPlan:          diagnostic,
		AntiviralPlan:           antiviral,
		IsolationPlan:           isolation,
		Alerts:                  alerts,
		SeverityLevel:           severity,
		InterpretabilityTrace:   trace,
		HumanValidationRequired: true,
		NonDiagnosticWarning:    Disclaimer,
	}
}

func init() {
	register("respiratory", typed((*RespiratoryInput).Validate, EvaluateRespiratory))
}
