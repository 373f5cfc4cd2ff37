package dto

import (
	"github.com/planvia/demandplan/pkg/domain/entities"
)

// ActionMessagesInput carries one planning run's proposed orders into the
// reconciliation engine
type ActionMessagesInput struct {
	ExecutionID   string                  `json:"execution_id"`
	PlannedOrders []entities.PlannedOrder `json:"planned_orders"`
}

// ActionMessagesResult contains the complete output of a reconciliation run
type ActionMessagesResult struct {
	ExecutionID   string                   `json:"execution_id"`
	Messages      []entities.ActionMessage `json:"messages"`
	TotalCancel   int                      `json:"total_cancel"`
	TotalIncrease int                      `json:"total_increase"`
	TotalReduce   int                      `json:"total_reduce"`
	TotalExpedite int                      `json:"total_expedite"`
	TotalNew      int                      `json:"total_new"`
}
