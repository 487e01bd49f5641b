// Package caretask implements the clinical-operational work unit of the
// service. A CareTask organizes and prioritizes operational work around a
// patient; it never stores diagnoses and never replaces human decision.
package caretask

import (
	"time"

	"github.com/google/uuid"
)

// CareTask maps to the care_tasks table.
type CareTask struct {
	ID                  uuid.UUID `db:"id" json:"id"`
	Title               string    `db:"title" json:"title"`
	Description         *string   `db:"description" json:"description,omitempty"`
	ClinicalPriority    string    `db:"clinical_priority" json:"clinical_priority"`
	Specialty           string    `db:"specialty" json:"specialty"`
	PatientReference    *string   `db:"patient_reference" json:"patient_reference,omitempty"`
	SLATargetMinutes    int       `db:"sla_target_minutes" json:"sla_target_minutes"`
	HumanReviewRequired bool      `db:"human_review_required" json:"human_review_required"`
	Completed           bool      `db:"completed" json:"completed"`
	CreatedAt           time.Time `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time `db:"updated_at" json:"updated_at"`
}

// ListFilter narrows CareTask listings. Nil fields are not applied.
type ListFilter struct {
	Completed        *bool
	ClinicalPriority *string
	Specialty        *string
	PatientReference *string
}

// Update carries the mutable fields of a CareTask. Nil fields are left
// untouched so partial updates do not clobber stored values.
type Update struct {
	Title               *string `json:"title,omitempty"`
	Description         *string `json:"description,omitempty"`
	ClinicalPriority    *string `json:"clinical_priority,omitempty"`
	Specialty           *string `json:"specialty,omitempty"`
	PatientReference    *string `json:"patient_reference,omitempty"`
	SLATargetMinutes    *int    `json:"sla_target_minutes,omitempty"`
	HumanReviewRequired *bool   `json:"human_review_required,omitempty"`
	Completed           *bool   `json:"completed,omitempty"`
}
