package protocol

// Ophthalmology operational engine: retinal vascular events, neuro
// ophthalmologic pupil routing, ocular surface inflammation, cataract IFIS
// safety and macular degeneration classification.

// OphthalmologyInput is the clinical-operational input for ophthalmologic
// prioritization in the emergency department.
type OphthalmologyInput struct {
	SuddenVisualLoss               bool `json:"sudden_visual_loss"`
	VisualLossProgressiveOverMonths bool `json:"visual_loss_progressive_over_months"`

	FundusFlameHemorrhagesPresent  bool     `json:"fundus_flame_hemorrhages_present"`
	FundusPapilledemaPresent       bool     `json:"fundus_papilledema_present"`
	CottonWoolExudatesPresent      bool     `json:"cotton_wool_exudates_present"`
	CherryRedSpotPresent           bool     `json:"cherry_red_spot_present"`
	DiffuseRetinalWhiteningPresent bool     `json:"diffuse_retinal_whitening_present"`
	IntraocularPressureMmHg        *float64 `json:"intraocular_pressure_mmhg,omitempty"`

	EmbolicArrhythmiaSuspected      bool `json:"embolic_arrhythmia_suspected"`
	AntiarrhythmicManagementPlanned bool `json:"antiarrhythmic_management_planned"`

	AnisocoriaPresent                       bool `json:"anisocoria_present"`
	AnisocoriaWorseInDarkness               bool `json:"anisocoria_worse_in_darkness"`
	AnisocoriaWorseInBrightLight            bool `json:"anisocoria_worse_in_bright_light"`
	RelativeAfferentPupillaryDefectPresent  bool `json:"relative_afferent_pupillary_defect_present"`
	OpticNerveDiseaseSuspected              bool `json:"optic_nerve_disease_suspected"`
	ExtensiveRetinalDiseaseSuspected        bool `json:"extensive_retinal_disease_suspected"`
	PosteriorCommunicatingAneurysmSuspected bool `json:"posterior_communicating_aneurysm_suspected"`
	CompressiveThirdNerveSignsPresent       bool `json:"compressive_third_nerve_signs_present"`

	AbruptConjunctivalReactionAfterExposure bool `json:"abrupt_conjunctival_reaction_after_exposure"`
	PalpebralEdemaOrErythemaPresent         bool `json:"palpebral_edema_or_erythema_present"`
	ChemosisPresent                         bool `json:"chemosis_present"`
	IntenseItchingPresent                   bool `json:"intense_itching_present"`
	TearingPresent                          bool `json:"tearing_present"`
	OcularPainPresent                       bool `json:"ocular_pain_present"`
	LongTermDiabetesPresent                 bool `json:"long_term_diabetes_present"`

	CataractSurgeryPlanned              bool `json:"cataract_surgery_planned"`
	TamsulosinOrAlphaBlockerActive      bool `json:"tamsulosin_or_alpha_blocker_active"`
	IntracameralPhenylephrinePlanned    bool `json:"intracameral_phenylephrine_planned"`
	RecommendationToStopTamsulosinPreop bool `json:"recommendation_to_stop_tamsulosin_preop"`
	IndexMyopiaShiftPresent             bool `json:"index_myopia_shift_present"`
	HighMyopiaPresent                   bool `json:"high_myopia_present"`
	YoungPatientForLensSurgery          bool `json:"young_patient_for_lens_surgery"`

	DrusenPresent                             bool `json:"drusen_present"`
	RetinalPigmentEpitheliumThinningOrChanges bool `json:"retinal_pigment_epithelium_thinning_or_changes"`
	NeovascularMembraneOrExudationPresent     bool `json:"neovascular_membrane_or_exudation_present"`
	AntiVEGFPlanned                           bool `json:"anti_vegf_planned"`

	Notes *string `json:"notes,omitempty"`
}

// OphthalmologyRecommendation is the structured ophthalmologic support output.
type OphthalmologyRecommendation struct {
	SeverityLevel             Severity `json:"severity_level"`
	CriticalAlerts            []string `json:"critical_alerts"`
	VascularTriageActions     []string `json:"vascular_triage_actions"`
	NeuroOphthalmologyActions []string `json:"neuro_ophthalmology_actions"`
	InflammationActions       []string `json:"inflammation_actions"`
	CataractSafetyActions     []string `json:"cataract_safety_actions"`
	DMAEActions               []string `json:"dmae_actions"`
	SafetyBlocks              []string `json:"safety_blocks"`
	InterpretabilityTrace     []string `json:"interpretability_trace"`
	HumanValidationRequired   bool     `json:"human_validation_required"`
	NonDiagnosticWarning      string   `json:"non_diagnostic_warning"`
}

func (in *OphthalmologyInput) Validate() error {
	if err := inRangeF("intraocular_pressure_mmhg", in.IntraocularPressureMmHg, 0, 80); err != nil {
		return err
	}
	return validateNotes("notes", in.Notes)
}

// ophthalVascularPathway distinguishes central retinal vein and artery events.
func ophthalVascularPathway(in OphthalmologyInput) (criticalAlerts, actions, safetyBlocks, trace []string) {
	ovcrPattern := in.FundusFlameHemorrhagesPresent || in.FundusPapilledemaPresent ||
		in.CottonWoolExudatesPresent
	oacrPattern := in.CherryRedSpotPresent || in.DiffuseRetinalWhiteningPresent

	if in.SuddenVisualLoss && ovcrPattern {
		criticalAlerts = append(criticalAlerts, "Perdida visual brusca con hemorragias en llama/exudados: priorizar OVCR.")
		actions = append(actions, "Solicitar fondo de ojo urgente completo y estratificar edema papilar/isquemia.")
		trace = append(trace, "Regla OVCR activada por perdida visual brusca + hemorragias en llama.")
	}

	if in.SuddenVisualLoss && oacrPattern {
		criticalAlerts = append(criticalAlerts, "Perdida visual brusca con mancha rojo cereza/retina blanquecina: priorizar OACR.")
		actions = append(actions, "Activar ruta de evento arterial retiniano con evaluacion sistemica urgente.")
		trace = append(trace, "Regla OACR activada por mancha rojo cereza.")
	}

	if ovcrPattern && oacrPattern {
		safetyBlocks = append(safetyBlocks, "Patron mixto OVCR/OACR en fondo de ojo: requerir reevaluacion oftalmologica inmediata.")
	}

	if in.IntraocularPressureMmHg != nil && *in.IntraocularPressureMmHg > 21 {
		actions = append(actions, "PIO elevada: considerar control hipotensor ocular (ej. latanoprost/timolol) segun contexto.")
		if in.SuddenVisualLoss && ovcrPattern {
			criticalAlerts = append(criticalAlerts, "OVCR con PIO elevada: mayor riesgo de progresion isquemica.")
		}
	}

	if in.EmbolicArrhythmiaSuspected && in.SuddenVisualLoss && oacrPattern {
		actions = append(actions, "Sospecha emboligena asociada: coordinar estudio cardiaco y manejo antiarritmico.")
		if !in.AntiarrhythmicManagementPlanned {
			safetyBlocks = append(safetyBlocks, "Sospecha emboligena en OACR sin plan antiarritmico/cardiologico documentado.")
		}
	}

	return criticalAlerts, actions, safetyBlocks, trace
}

// ophthalNeuroPathway routes pupillary findings and third nerve compression.
func ophthalNeuroPathway(in OphthalmologyInput) (criticalAlerts, actions, safetyBlocks, trace []string) {
	if in.RelativeAfferentPupillaryDefectPresent {
		actions = append(actions, "DPAR (Marcus Gunn) presente: priorizar lesion de nervio optico o retina extensa.")
		if !(in.OpticNerveDiseaseSuspected || in.ExtensiveRetinalDiseaseSuspected) {
			safetyBlocks = append(safetyBlocks, "DPAR sin sospecha de lesion aferente documentada: revisar exploracion pupilar.")
		}
	}

	if in.AnisocoriaPresent {
		if in.AnisocoriaWorseInDarkness {
			actions = append(actions, "Anisocoria que aumenta en oscuridad: orientar a disfuncion simpatica (Horner).")
		}
		if in.AnisocoriaWorseInBrightLight {
			actions = append(actions, "Anisocoria que aumenta con luz: orientar a disfuncion parasimpatica.")
		}
		if in.AnisocoriaWorseInDarkness && in.AnisocoriaWorseInBrightLight {
			safetyBlocks = append(safetyBlocks, "Anisocoria con patrones simpatico y parasimpatico simultaneos: repetir examen.")
		}
	}

	if in.PosteriorCommunicatingAneurysmSuspected || in.CompressiveThirdNerveSignsPresent {
		criticalAlerts = append(criticalAlerts, "Sospecha de lesion compresiva del III par (aneurisma comunicante posterior).")
		actions = append(actions, "Priorizar neuroimagen urgente por riesgo de compromiso de fibras pupilares.")
	}

	trace = append(trace, "Reflejo fotomotor: via aferente retina/nervio optico y via eferente parasimpatica del III par.")
	return criticalAlerts, actions, safetyBlocks, trace
}

// ophthalSurfaceInflammationPathway covers allergic surface profiles and
// neovascular glaucoma screening in diabetes.
func ophthalSurfaceInflammationPathway(in OphthalmologyInput) (criticalAlerts, actions, trace []string) {
	allergicProfile := in.AbruptConjunctivalReactionAfterExposure &&
		in.PalpebralEdemaOrErythemaPresent && in.ChemosisPresent && in.IntenseItchingPresent
	if allergicProfile {
		actions = append(actions, "Perfil compatible con conjuntivitis alergica aguda: valorar antihistaminico topico o corticoide de baja potencia.")
		trace = append(trace, "Regla de superficie ocular alergica activada por quemosis + prurito.")
	}

	if in.LongTermDiabetesPresent && in.OcularPainPresent &&
		in.IntraocularPressureMmHg != nil && *in.IntraocularPressureMmHg > 21 {
		criticalAlerts = append(criticalAlerts, "Dolor ocular + PIO alta en diabetes de larga evolucion: descartar glaucoma neovascular.")
	}

	return criticalAlerts, actions, trace
}

// ophthalCataractIFISPathway handles tamsulosin related floppy iris risk.
func ophthalCataractIFISPathway(in OphthalmologyInput) (criticalAlerts, actions, safetyBlocks, trace []string) {
	if in.CataractSurgeryPlanned && in.TamsulosinOrAlphaBlockerActive {
		criticalAlerts = append(criticalAlerts, "Riesgo de IFIS por tamsulosina/alfabloqueante en cirugia de catarata.")
		actions = append(actions, "Planificar fenilefrina intracamerular al inicio para estabilizar iris.")
		trace = append(trace, "Alerta IFIS activada por uso de tamsulosina preoperatoria.")
		if !in.IntracameralPhenylephrinePlanned {
			safetyBlocks = append(safetyBlocks, "Cirugia de catarata con tamsulosina sin plan de fenilefrina intracamerular.")
		}
		if in.RecommendationToStopTamsulosinPreop {
			safetyBlocks = append(safetyBlocks, "No recomendar suspension aislada de tamsulosina: el riesgo IFIS puede persistir.")
		}
	}

	if in.IndexMyopiaShiftPresent {
		actions = append(actions, "Miopia de indice preoperatoria: correlacionar mejoria cercana paradoxica con progresion de catarata.")
	}

	if in.CataractSurgeryPlanned && in.HighMyopiaPresent && in.YoungPatientForLensSurgery {
		criticalAlerts = append(criticalAlerts, "Riesgo aumentado de desprendimiento de retina postcirugia en paciente miope joven.")
	}

	return criticalAlerts, actions, safetyBlocks, trace
}

// ophthalDMAEPathway classifies dry and wet macular degeneration profiles.
func ophthalDMAEPathway(in OphthalmologyInput) (criticalAlerts, actions, trace []string) {
	dryPattern := in.DrusenPresent && in.RetinalPigmentEpitheliumThinningOrChanges &&
		in.VisualLossProgressiveOverMonths && !in.NeovascularMembraneOrExudationPresent
	wetPattern := in.NeovascularMembraneOrExudationPresent ||
		(in.SuddenVisualLoss && in.DrusenPresent)

	if dryPattern {
		actions = append(actions, "Perfil compatible con DMAE seca: observacion estructurada y suplementos antioxidantes segun protocolo.")
		trace = append(trace, "Clasificacion operativa DMAE seca por drusas + evolucion lenta.")
	}

	if wetPattern {
		criticalAlerts = append(criticalAlerts, "Perfil compatible con DMAE humeda/exudativa: priorizar anti-VEGF intravitreo.")
		actions = append(actions, "Coordinar ruta de retina para confirmacion de membrana neovascular y tratamiento.")
		if !in.AntiVEGFPlanned {
			criticalAlerts = append(criticalAlerts, "DMAE humeda sospechada sin plan anti-VEGF documentado.")
		}
		trace = append(trace, "Clasificacion operativa DMAE humeda por exudacion/neovascularizacion.")
	}

	return criticalAlerts, actions, trace
}

func ophthalSeverity(criticalAlerts, safetyBlocks []string, hasActions bool) Severity {
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

// EvaluateOphthalmology builds the ophthalmology support recommendation.
func EvaluateOphthalmology(in OphthalmologyInput) OphthalmologyRecommendation {
	criticalVascular, vascularActions, safetyVascular, traceVascular := ophthalVascularPathway(in)
	criticalNeuro, neuroActions, safetyNeuro, traceNeuro := ophthalNeuroPathway(in)
	criticalSurface, surfaceActions, traceSurface := ophthalSurfaceInflammationPathway(in)
	criticalIFIS, cataractActions, safetyIFIS, traceIFIS := ophthalCataractIFISPathway(in)
	criticalDMAE, dmaeActions, traceDMAE := ophthalDMAEPathway(in)

	criticalAlerts := append(append(append(append(append([]string{}, criticalVascular...), criticalNeuro...), criticalSurface...), criticalIFIS...), criticalDMAE...)
	safetyBlocks := append(append(append([]string{}, safetyVascular...), safetyNeuro...), safetyIFIS...)
	hasActions := len(vascularActions) > 0 || len(neuroActions) > 0 ||
		len(surfaceActions) > 0 || len(cataractActions) > 0 || len(dmaeActions) > 0

	return OphthalmologyRecommendation{
		SeverityLevel:             ophthalSeverity(criticalAlerts, safetyBlocks, hasActions),
		CriticalAlerts:            criticalAlerts,
		VascularTriageActions:     vascularActions,
		NeuroOphthalmologyActions: neuroActions,
		InflammationActions:       surfaceActions,
		CataractSafetyActions:     cataractActions,
		DMAEActions:               dmaeActions,
		SafetyBlocks:              safetyBlocks,
		InterpretabilityTrace:     append(append(append(append(append([]string{}, traceVascular...), traceNeuro...), traceSurface...), traceIFIS...), traceDMAE...),
		HumanValidationRequired:   true,
		NonDiagnosticWarning:      "Soporte operativo no diagnostico. Requiere validacion por oftalmologia/equipo de urgencias.",
	}
}

func init() {
	register("ophthalmology", typed((*OphthalmologyInput).Validate, EvaluateOphthalmology))
}
