package protocol

// Immunology operational engine: primary immunodeficiency (Bruton), innate
// pulmonary defense and humoral differential profiles.

// ImmunologyInput is the clinical-operational input for immunologic
// prioritization in the emergency department.
type ImmunologyInput struct {
	PatientMale bool `json:"patient_male"`
	AgeMonths   *int `json:"age_months,omitempty"`

	BTKMutationConfirmed           bool `json:"btk_mutation_confirmed"`
	XLinkedFamilyPatternSuspected  bool `json:"x_linked_family_pattern_suspected"`
	BCellMaturationBlockSuspected  bool `json:"b_cell_maturation_block_suspected"`
	PeripheralCD19CD20BCellsAbsent bool `json:"peripheral_cd19_cd20_b_cells_absent"`

	IgGLowOrAbsent bool `json:"igg_low_or_absent"`
	IgALowOrAbsent bool `json:"iga_low_or_absent"`
	IgMLowOrAbsent bool `json:"igm_low_or_absent"`
	IgMElevated    bool `json:"igm_elevated"`

	RecurrentSinopulmonaryBacterialInfections bool `json:"recurrent_sinopulmonary_bacterial_infections"`
	SevereInfectionAfter6Months               bool `json:"severe_infection_after_6_months"`
	MonocyteFunctionAbnormalReported          bool `json:"monocyte_function_abnormal_reported"`

	LowerRespiratoryInfectionActive             bool `json:"lower_respiratory_infection_active"`
	AlveolarMacrophageDysfunctionSuspected      bool `json:"alveolar_macrophage_dysfunction_suspected"`
	NeutrophilRecruitmentFailureSuspected       bool `json:"neutrophil_recruitment_failure_suspected"`
	MucociliaryClearanceFailureSuspected        bool `json:"mucociliary_clearance_failure_suspected"`
	ComplementSupportFailureSuspected           bool `json:"complement_support_failure_suspected"`
	AntimicrobialPeptideBarrierFailureSuspected bool `json:"antimicrobial_peptide_barrier_failure_suspected"`

	Notes *string `json:"notes,omitempty"`
}

// ImmunologyRecommendation is the structured immunologic support output.
type ImmunologyRecommendation struct {
	SeverityLevel                  Severity `json:"severity_level"`
	CriticalAlerts                 []string `json:"critical_alerts"`
	PrimaryImmunodeficiencyActions []string `json:"primary_immunodeficiency_actions"`
	InnatePulmonaryActions         []string `json:"innate_pulmonary_actions"`
	HumoralDifferentialActions     []string `json:"humoral_differential_actions"`
	SafetyBlocks                   []string `json:"safety_blocks"`
	InterpretabilityTrace          []string `json:"interpretability_trace"`
	HumanValidationRequired        bool     `json:"human_validation_required"`
	NonDiagnosticWarning           string   `json:"non_diagnostic_warning"`
}

func (in *ImmunologyInput) Validate() error {
	if err := inRangeI("age_months", in.AgeMonths, 0, 240); err != nil {
		return err
	}
	return validateNotes("notes", in.Notes)
}

func immunoBrutonPattern(in ImmunologyInput) bool {
	return in.PeripheralCD19CD20BCellsAbsent && in.IgGLowOrAbsent &&
		in.IgALowOrAbsent && in.IgMLowOrAbsent
}

// immunoPrimaryImmunodeficiencyPathway covers the Bruton/BTK route and the
// maternal IgG window in the first months of life.
func immunoPrimaryImmunodeficiencyPathway(in ImmunologyInput) (criticalAlerts, actions, safetyBlocks, trace []string) {
	brutonPattern := immunoBrutonPattern(in)

	if brutonPattern {
		criticalAlerts = append(criticalAlerts, "Perfil compatible con agammaglobulinemia ligada al X (Bruton/BTK).")
		actions = append(actions, "Priorizar valoracion de inmunologia clinica y ruta de reposicion de inmunoglobulinas segun protocolo.")
		trace = append(trace, "Regla Bruton activada por ausencia CD19/CD20 + panhipogammaglobulinemia.")
	}

	if in.BTKMutationConfirmed {
		actions = append(actions, "Mutacion BTK confirmada: consolidar fenotipo, infecciones previas y plan de seguimiento inmunologico.")
		if !in.PatientMale {
			safetyBlocks = append(safetyBlocks, "Mutacion BTK en paciente no varon: validar fenotipo y contexto genetico por posible presentacion atipica.")
		}
	}

	if in.XLinkedFamilyPatternSuspected {
		actions = append(actions, "Sospecha de herencia ligada al X: ampliar trazabilidad familiar y consejo genetico.")
	}

	if in.BCellMaturationBlockSuspected {
		actions = append(actions, "Bloqueo madurativo de linfocito B sospechado: coordinar confirmacion inmunofenotipica y genetica.")
	}

	ageAfterMaternalWindow := in.AgeMonths != nil && *in.AgeMonths > 6
	if ageAfterMaternalWindow &&
		(in.RecurrentSinopulmonaryBacterialInfections || in.SevereInfectionAfter6Months) {
		criticalAlerts = append(criticalAlerts, "Infecciones bacterianas recurrentes tras ventana de IgG materna: escalado inmunologico urgente.")
	}

	if in.AgeMonths != nil && *in.AgeMonths <= 6 {
		trace = append(trace, "Interpretacion pediatrica: la IgG materna puede enmascarar deficit humoral durante primeros meses.")
	}

	if in.MonocyteFunctionAbnormalReported && brutonPattern {
		safetyBlocks = append(safetyBlocks, "En Bruton clasico, la funcion monocitaria suele preservarse: revisar causas alternativas del defecto funcional reportado.")
	}

	if in.PeripheralCD19CD20BCellsAbsent && !brutonPattern {
		safetyBlocks = append(safetyBlocks, "Ausencia de CD19/CD20 sin patron completo de agammaglobulinemia: revisar perfil inmunoglobulinico y diagnostico diferencial.")
	}

	return criticalAlerts, actions, safetyBlocks, trace
}

// immunoInnatePulmonaryPathway covers first line pulmonary defense layers.
func immunoInnatePulmonaryPathway(in ImmunologyInput) (criticalAlerts, actions, trace []string) {
	if in.LowerRespiratoryInfectionActive {
		actions = append(actions, "Infeccion respiratoria activa: priorizar evaluacion de defensa innata pulmonar (macrofago alveolar como primera linea).")
	}

	if in.AlveolarMacrophageDysfunctionSuspected {
		actions = append(actions, "Sospecha de disfuncion de macrofago alveolar: reforzar vigilancia de carga infecciosa distal y respuesta inflamatoria local.")
		trace = append(trace, "Regla pulmonar activada por compromiso de primera linea fagocitica.")
		if in.LowerRespiratoryInfectionActive {
			criticalAlerts = append(criticalAlerts, "Infeccion respiratoria con posible fallo de macrofago alveolar: priorizar escalado clinico temprano.")
		}
	}

	if in.NeutrophilRecruitmentFailureSuspected {
		actions = append(actions, "Fallo de reclutamiento inflamatorio sospechado: valorar integridad de ejes de quimiocinas y respuesta neutrofilica.")
	}

	if in.MucociliaryClearanceFailureSuspected {
		actions = append(actions, "Disfuncion mucociliar sospechada: reforzar control de aclaramiento mecanico y riesgo de colonizacion.")
	}

	if in.ComplementSupportFailureSuspected {
		actions = append(actions, "Defecto de soporte por complemento sospechado: coordinar estudio inmunologico complementario.")
	}

	if in.AntimicrobialPeptideBarrierFailureSuspected {
		actions = append(actions, "Compromiso de barrera antimicrobiana sospechado: aumentar vigilancia de infecciones respiratorias recurrentes.")
	}

	return criticalAlerts, actions, trace
}

// immunoHumoralDifferentialPathway separates selective IgA, hyper-IgM and
// CVID profiles and flags incoherent laboratory panels.
func immunoHumoralDifferentialPathway(in ImmunologyInput) (criticalAlerts, actions, safetyBlocks, trace []string) {
	selectiveIgAProfile := in.IgALowOrAbsent && !in.IgGLowOrAbsent &&
		!in.IgMLowOrAbsent && !in.IgMElevated
	hyperIgMProfile := in.IgMElevated && in.IgGLowOrAbsent && in.IgALowOrAbsent
	cvidProfile := in.IgGLowOrAbsent && (in.IgALowOrAbsent || in.IgMLowOrAbsent) &&
		!in.PeripheralCD19CD20BCellsAbsent

	if selectiveIgAProfile {
		actions = append(actions, "Perfil compatible con deficit selectivo de IgA (IgA baja con IgG/IgM conservadas).")
		trace = append(trace, "Diferencial humoral: patron selectivo de IgA.")
	}

	if hyperIgMProfile {
		criticalAlerts = append(criticalAlerts, "Perfil compatible con sindrome de hiper-IgM (IgM alta con IgG/IgA bajas).")
		actions = append(actions, "Priorizar validacion inmunologica de cambio de clase y riesgo infeccioso asociado.")
		trace = append(trace, "Diferencial humoral: patron hiper-IgM.")
	}

	if cvidProfile {
		actions = append(actions, "Perfil compatible con inmunodeficiencia comun variable (descenso de IgG +/- IgA/IgM).")
		trace = append(trace, "Diferencial humoral: patron compatible con CVID.")
	}

	if in.IgMLowOrAbsent && in.IgMElevated {
		safetyBlocks = append(safetyBlocks, "IgM marcada simultaneamente como baja y elevada: revisar consistencia del dato de laboratorio.")
	}

	if in.PeripheralCD19CD20BCellsAbsent && in.IgMElevated {
		safetyBlocks = append(safetyBlocks, "Ausencia de linfocitos B perifericos con IgM elevada: perfil no congruente para Bruton clasico, revisar diferencial.")
	}

	profileCount := 0
	for _, active := range []bool{selectiveIgAProfile, hyperIgMProfile, cvidProfile} {
		if active {
			profileCount++
		}
	}
	if profileCount > 1 {
		safetyBlocks = append(safetyBlocks, "Multiples perfiles humorales activados en paralelo: requerir revalidacion analitica e inmunofenotipica.")
	}

	humoralAbnormalityPresent := in.IgGLowOrAbsent || in.IgALowOrAbsent ||
		in.IgMLowOrAbsent || in.IgMElevated || in.PeripheralCD19CD20BCellsAbsent
	if humoralAbnormalityPresent && profileCount == 0 {
		safetyBlocks = append(safetyBlocks, "Alteraciones humorales presentes sin encaje claro en perfil Bruton/IgA/Hiper-IgM/CVID: completar estudio inmunologico.")
	}

	return criticalAlerts, actions, safetyBlocks, trace
}

func immunoSeverity(criticalAlerts, safetyBlocks []string, hasActions bool) Severity {
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

// EvaluateImmunology builds the immunology support recommendation.
func EvaluateImmunology(in ImmunologyInput) ImmunologyRecommendation {
	criticalPID, pidActions, safetyPID, tracePID := immunoPrimaryImmunodeficiencyPathway(in)
	criticalPulmonary, pulmonaryActions, tracePulmonary := immunoInnatePulmonaryPathway(in)
	criticalDiff, differentialActions, safetyDiff, traceDiff := immunoHumoralDifferentialPathway(in)

	criticalAlerts := append(append(append([]string{}, criticalPID...), criticalPulmonary...), criticalDiff...)
	safetyBlocks := append(append([]string{}, safetyPID...), safetyDiff...)
	hasActions := len(pidActions) > 0 || len(pulmonaryActions) > 0 || len(differentialActions) > 0

	return ImmunologyRecommendation{
		SeverityLevel:                  immunoSeverity(criticalAlerts, safetyBlocks, hasActions),
		CriticalAlerts:                 criticalAlerts,
		PrimaryImmunodeficiencyActions: pidActions,
		InnatePulmonaryActions:         pulmonaryActions,
		HumoralDifferentialActions:     differentialActions,
		SafetyBlocks:                   safetyBlocks,
		InterpretabilityTrace:          append(append(append([]string{}, tracePID...), tracePulmonary...), traceDiff...),
		HumanValidationRequired:        true,
		NonDiagnosticWarning:           "Soporte operativo no diagnostico. Requiere validacion por inmunologia/equipo de urgencias.",
	}
}

func init() {
	register("immunology", typed((*ImmunologyInput).Validate, EvaluateImmunology))
}
