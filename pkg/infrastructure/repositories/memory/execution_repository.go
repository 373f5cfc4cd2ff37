package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/planvia/demandplan/pkg/domain/entities"
	"github.com/planvia/demandplan/pkg/domain/repositories"
)

// ExecutionRepository provides in-memory storage of reconciliation run
// records
type ExecutionRepository struct {
	runs  map[string]entities.ReconciliationRun
	mutex sync.RWMutex
}

// NewExecutionRepository creates a new in-memory execution repository
func NewExecutionRepository() *ExecutionRepository {
	return &ExecutionRepository{
		runs: make(map[string]entities.ReconciliationRun),
	}
}

// Verify interface compliance
var _ repositories.ExecutionRepository = (*ExecutionRepository)(nil)

// CreateRun stores a new run record
func (r *ExecutionRepository) CreateRun(ctx context.Context, run *entities.ReconciliationRun) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.runs[run.ID]; exists {
		return fmt.Errorf("duplicate run id: %s", run.ID)
	}
	r.runs[run.ID] = *run
	return nil
}

// GetRun returns the run record with the given id
func (r *ExecutionRepository) GetRun(ctx context.Context, id string) (*entities.ReconciliationRun, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	run, exists := r.runs[id]
	if !exists {
		return nil, fmt.Errorf("run not found: %s", id)
	}
	return &run, nil
}

// UpdateRun replaces an existing run record
func (r *ExecutionRepository) UpdateRun(ctx context.Context, run *entities.ReconciliationRun) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.runs[run.ID]; !exists {
		return fmt.Errorf("run not found: %s", run.ID)
	}
	r.runs[run.ID] = *run
	return nil
}
