package entities

import (
	"fmt"
	"time"
)

// RunStatus represents the lifecycle state of a reconciliation run
type RunStatus int

const (
	RunPending RunStatus = iota
	RunRunning
	RunCompleted
	RunFailed
)

// String method for RunStatus enum
func (s RunStatus) String() string {
	switch s {
	case RunPending:
		return "PENDING"
	case RunRunning:
		return "RUNNING"
	case RunCompleted:
		return "COMPLETED"
	case RunFailed:
		return "FAILED"
	default:
		return "Unknown"
	}
}

// ReconciliationRun records one reconciliation pass over a completed
// planning run. The run id doubles as the execution id carried by the
// engine's input and output.
type ReconciliationRun struct {
	ID            string
	Status        RunStatus
	CreatedAt     time.Time
	StartedAt     time.Time
	CompletedAt   time.Time
	ErrorMessage  string
	TotalMessages int
	TotalCancel   int
	TotalIncrease int
	TotalReduce   int
	TotalExpedite int
	TotalNew      int
}

// NewReconciliationRun creates a pending run record
func NewReconciliationRun(id string) (*ReconciliationRun, error) {
	if id == "" {
		return nil, fmt.Errorf("run id cannot be empty")
	}
	return &ReconciliationRun{
		ID:        id,
		Status:    RunPending,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Start marks the run as executing
func (r *ReconciliationRun) Start() {
	r.Status = RunRunning
	r.StartedAt = time.Now().UTC()
}

// Complete records the per-type message totals and marks the run finished
func (r *ReconciliationRun) Complete(cancel, increase, reduce, expedite, created int) {
	r.Status = RunCompleted
	r.CompletedAt = time.Now().UTC()
	r.TotalCancel = cancel
	r.TotalIncrease = increase
	r.TotalReduce = reduce
	r.TotalExpedite = expedite
	r.TotalNew = created
	r.TotalMessages = cancel + increase + reduce + expedite + created
}

// Fail marks the run as failed with the surfaced error
func (r *ReconciliationRun) Fail(errorMessage string) {
	r.Status = RunFailed
	r.CompletedAt = time.Now().UTC()
	r.ErrorMessage = errorMessage
}
