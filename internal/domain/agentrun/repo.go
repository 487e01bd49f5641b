package agentrun

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, run *AgentRun) error
	GetByID(ctx context.Context, id uuid.UUID) (*AgentRun, error)
	ListRecent(ctx context.Context, filter ListFilter, limit int) ([]*AgentRun, error)
	OpsSummary(ctx context.Context, workflowName *string) (*OpsSummary, error)
}
