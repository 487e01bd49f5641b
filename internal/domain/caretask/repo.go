package caretask

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, t *CareTask) error
	GetByID(ctx context.Context, id uuid.UUID) (*CareTask, error)
	Update(ctx context.Context, t *CareTask) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter ListFilter, limit, offset int) ([]*CareTask, int, error)
}
