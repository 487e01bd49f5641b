package audit

import (
	"context"

	"github.com/google/uuid"
)

// Repository persists one audit row per agent run for each family. List with
// a nil careTaskID returns every row; limit <= 0 means no limit.
type Repository interface {
	UpsertTriage(ctx context.Context, a *TriageAudit) error
	ListTriage(ctx context.Context, careTaskID *uuid.UUID, limit int) ([]*TriageAudit, error)

	UpsertScreening(ctx context.Context, a *ScreeningAudit) error
	ListScreening(ctx context.Context, careTaskID *uuid.UUID, limit int) ([]*ScreeningAudit, error)

	UpsertMedicolegal(ctx context.Context, a *MedicolegalAudit) error
	ListMedicolegal(ctx context.Context, careTaskID *uuid.UUID, limit int) ([]*MedicolegalAudit, error)

	UpsertScasest(ctx context.Context, a *ScasestAudit) error
	ListScasest(ctx context.Context, careTaskID *uuid.UUID, limit int) ([]*ScasestAudit, error)

	UpsertCardioRisk(ctx context.Context, a *CardioRiskAudit) error
	ListCardioRisk(ctx context.Context, careTaskID *uuid.UUID, limit int) ([]*CardioRiskAudit, error)

	UpsertResuscitation(ctx context.Context, a *ResuscitationAudit) error
	ListResuscitation(ctx context.Context, careTaskID *uuid.UUID, limit int) ([]*ResuscitationAudit, error)
}
