package agentrun

// Workflow describes how one protocol evaluation is persisted: the versioned
// workflow identifier and the key the recommendation is stored under in
// run_output. Audit extractors read the output back through the same key, so
// both values are part of the stored contract and never change for a version.
type Workflow struct {
	Name      string
	OutputKey string
}

var workflowsByProtocol = map[string]Workflow{
	"triage":                 {Name: "care_task_triage_v1", OutputKey: "triage"},
	"respiratory":            {Name: "respiratory_protocol_v1", OutputKey: "respiratory_protocol"},
	"humanization":           {Name: "pediatric_neuro_onco_support_v1", OutputKey: "humanization_protocol"},
	"advanced_screening":     {Name: "advanced_screening_support_v1", OutputKey: "advanced_screening"},
	"chest_xray":             {Name: "chest_xray_support_v1", OutputKey: "chest_xray_support"},
	"medicolegal_ops":        {Name: "medicolegal_ops_support_v1", OutputKey: "medicolegal_ops"},
	"sepsis":                 {Name: "sepsis_protocol_support_v1", OutputKey: "sepsis_protocol"},
	"resuscitation":          {Name: "resuscitation_protocol_support_v1", OutputKey: "resuscitation_protocol"},
	"scasest":                {Name: "scasest_protocol_support_v1", OutputKey: "scasest_protocol"},
	"cardio_risk":            {Name: "cardio_risk_support_v1", OutputKey: "cardio_risk_support"},
	"pityriasis":             {Name: "pityriasis_differential_support_v1", OutputKey: "pityriasis_differential"},
	"acne_rosacea":           {Name: "acne_rosacea_differential_support_v1", OutputKey: "acne_rosacea_differential"},
	"trauma":                 {Name: "trauma_support_v1", OutputKey: "trauma_support"},
	"critical_ops":           {Name: "critical_ops_support_v1", OutputKey: "critical_ops"},
	"neurology":              {Name: "neurology_support_v1", OutputKey: "neurology_support"},
	"gastro_hepato":          {Name: "gastro_hepato_support_v1", OutputKey: "gastro_hepato_support"},
	"rheum_immuno":           {Name: "rheum_immuno_support_v1", OutputKey: "rheum_immuno_support"},
	"psychiatry":             {Name: "psychiatry_support_v1", OutputKey: "psychiatry_support"},
	"hematology":             {Name: "hematology_support_v1", OutputKey: "hematology_support"},
	"endocrinology":          {Name: "endocrinology_support_v1", OutputKey: "endocrinology_support"},
	"nephrology":             {Name: "nephrology_support_v1", OutputKey: "nephrology_support"},
	"pneumology":             {Name: "pneumology_support_v1", OutputKey: "pneumology_support"},
	"geriatrics":             {Name: "geriatrics_support_v1", OutputKey: "geriatrics_support"},
	"oncology":               {Name: "oncology_support_v1", OutputKey: "oncology_support"},
	"anesthesiology":         {Name: "anesthesiology_support_v1", OutputKey: "anesthesiology_support"},
	"palliative":             {Name: "palliative_support_v1", OutputKey: "palliative_support"},
	"urology":                {Name: "urology_support_v1", OutputKey: "urology_support"},
	"ophthalmology":          {Name: "ophthalmology_support_v1", OutputKey: "ophthalmology_support"},
	"immunology":             {Name: "immunology_support_v1", OutputKey: "immunology_support"},
	"genetic_recurrence":     {Name: "genetic_recurrence_support_v1", OutputKey: "genetic_recurrence_support"},
	"gynecology_obstetrics":  {Name: "gynecology_obstetrics_support_v1", OutputKey: "gynecology_obstetrics_support"},
	"pediatrics_neonatology": {Name: "pediatrics_neonatology_support_v1", OutputKey: "pediatrics_neonatology_support"},
	"epidemiology":           {Name: "epidemiology_support_v1", OutputKey: "epidemiology_support"},
	"anisakis":               {Name: "anisakis_support_v1", OutputKey: "anisakis_support"},
}

// WorkflowClinicalChat is the workflow recorded for assistant chat turns.
var WorkflowClinicalChat = Workflow{Name: "care_task_clinical_chat_v1", OutputKey: "clinical_chat"}

// WorkflowFor resolves the persistence metadata for a protocol identifier.
func WorkflowFor(protocolID string) (Workflow, bool) {
	wf, ok := workflowsByProtocol[protocolID]
	return wf, ok
}
