package events

import (
	"github.com/planvia/demandplan/pkg/domain/entities"
)

const (
	ReconciliationStartedEvent   = "reconciliation.started"
	ReconciliationCompletedEvent = "reconciliation.completed"
	ReconciliationFailedEvent    = "reconciliation.failed"

	ActionMessageCreatedEvent = "actionmessage.created"
)

// ReconciliationStarted marks the beginning of a reconciliation pass over a
// planning run
type ReconciliationStarted struct {
	ExecutionID   string `json:"execution_id"`
	PlannedOrders int    `json:"planned_orders"`
}

// ReconciliationCompleted carries the run-level totals
type ReconciliationCompleted struct {
	ExecutionID   string `json:"execution_id"`
	TotalMessages int    `json:"total_messages"`
	TotalCancel   int    `json:"total_cancel"`
	TotalIncrease int    `json:"total_increase"`
	TotalReduce   int    `json:"total_reduce"`
	TotalExpedite int    `json:"total_expedite"`
	TotalNew      int    `json:"total_new"`
}

// ReconciliationFailed records a run that aborted before completing
type ReconciliationFailed struct {
	ExecutionID string `json:"execution_id"`
	Reason      string `json:"reason"`
}

// ActionMessageCreated records one corrective instruction attached to an
// order record
type ActionMessageCreated struct {
	ExecutionID   string                 `json:"execution_id"`
	ActionMessage entities.ActionMessage `json:"action_message"`
}

// NewReconciliationStartedEvent creates a start event on the run's stream
func NewReconciliationStartedEvent(executionID string, plannedOrders int) Event {
	return NewEvent(ReconciliationStartedEvent, executionID, ReconciliationStarted{
		ExecutionID:   executionID,
		PlannedOrders: plannedOrders,
	})
}

// NewReconciliationCompletedEvent creates a completion event carrying the
// run totals
func NewReconciliationCompletedEvent(run *entities.ReconciliationRun) Event {
	return NewEvent(ReconciliationCompletedEvent, run.ID, ReconciliationCompleted{
		ExecutionID:   run.ID,
		TotalMessages: run.TotalMessages,
		TotalCancel:   run.TotalCancel,
		TotalIncrease: run.TotalIncrease,
		TotalReduce:   run.TotalReduce,
		TotalExpedite: run.TotalExpedite,
		TotalNew:      run.TotalNew,
	})
}

// NewReconciliationFailedEvent creates a failure event with the surfaced
// reason
func NewReconciliationFailedEvent(executionID, reason string) Event {
	return NewEvent(ReconciliationFailedEvent, executionID, ReconciliationFailed{
		ExecutionID: executionID,
		Reason:      reason,
	})
}

// NewActionMessageCreatedEvent creates an event for one emitted action
// message
func NewActionMessageCreatedEvent(executionID string, message entities.ActionMessage) Event {
	return NewEvent(ActionMessageCreatedEvent, executionID, ActionMessageCreated{
		ExecutionID:   executionID,
		ActionMessage: message,
	})
}
