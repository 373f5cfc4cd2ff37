package repositories

import (
	"context"

	"github.com/planvia/demandplan/pkg/domain/entities"
)

// ExecutionRepository provides access to reconciliation run records
type ExecutionRepository interface {
	CreateRun(ctx context.Context, run *entities.ReconciliationRun) error
	GetRun(ctx context.Context, id string) (*entities.ReconciliationRun, error)
	UpdateRun(ctx context.Context, run *entities.ReconciliationRun) error
}
