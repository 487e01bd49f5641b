package caretask

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ErrNotFound marks a lookup for a CareTask that does not exist.
var ErrNotFound = errors.New("care task not found")

var validClinicalPriorities = map[string]bool{
	"low":      true,
	"medium":   true,
	"high":     true,
	"critical": true,
}

const maxTitleLen = 200

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) validate(t *CareTask) error {
	t.Title = strings.TrimSpace(t.Title)
	if t.Title == "" {
		return fmt.Errorf("title is required")
	}
	if len(t.Title) > maxTitleLen {
		return fmt.Errorf("title must be at most %d characters", maxTitleLen)
	}
	t.ClinicalPriority = strings.ToLower(strings.TrimSpace(t.ClinicalPriority))
	if t.ClinicalPriority == "" {
		t.ClinicalPriority = "medium"
	}
	if !validClinicalPriorities[t.ClinicalPriority] {
		return fmt.Errorf("invalid clinical priority: allowed low, medium, high, critical")
	}
	if t.Specialty == "" {
		t.Specialty = "general"
	}
	if t.SLATargetMinutes == 0 {
		t.SLATargetMinutes = 240
	}
	if t.SLATargetMinutes < 0 {
		return fmt.Errorf("sla_target_minutes must be positive")
	}
	return nil
}

func (s *Service) Create(ctx context.Context, t *CareTask) error {
	if err := s.validate(t); err != nil {
		return err
	}
	return s.repo.Create(ctx, t)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*CareTask, error) {
	t, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return t, err
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, upd Update) (*CareTask, error) {
	t, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if upd.Title != nil {
		t.Title = *upd.Title
	}
	if upd.Description != nil {
		t.Description = upd.Description
	}
	if upd.ClinicalPriority != nil {
		t.ClinicalPriority = *upd.ClinicalPriority
	}
	if upd.Specialty != nil {
		t.Specialty = *upd.Specialty
	}
	if upd.PatientReference != nil {
		t.PatientReference = upd.PatientReference
	}
	if upd.SLATargetMinutes != nil {
		t.SLATargetMinutes = *upd.SLATargetMinutes
	}
	if upd.HumanReviewRequired != nil {
		t.HumanReviewRequired = *upd.HumanReviewRequired
	}
	if upd.Completed != nil {
		t.Completed = *upd.Completed
	}
	if err := s.validate(t); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, t); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

// Complete marks the task done. Kept separate from Update so the common
// closing action stays a single idempotent call.
func (s *Service) Complete(ctx context.Context, id uuid.UUID) (*CareTask, error) {
	done := true
	return s.Update(ctx, id, Update{Completed: &done})
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func (s *Service) List(ctx context.Context, filter ListFilter, limit, offset int) ([]*CareTask, int, error) {
	if filter.ClinicalPriority != nil {
		normalized := strings.ToLower(strings.TrimSpace(*filter.ClinicalPriority))
		filter.ClinicalPriority = &normalized
	}
	return s.repo.List(ctx, filter, limit, offset)
}
