package reconcile

import (
	"github.com/planvia/demandplan/pkg/application/dto"
	"github.com/planvia/demandplan/pkg/domain/entities"
)

// Aggregate projects the classifier's output into the run-level result with
// per-type counts. Pure function, no side effects.
func Aggregate(executionID string, messages []entities.ActionMessage) *dto.ActionMessagesResult {
	result := &dto.ActionMessagesResult{
		ExecutionID: executionID,
		Messages:    messages,
	}

	for i := range messages {
		switch messages[i].Type {
		case entities.ActionCancel:
			result.TotalCancel++
		case entities.ActionIncrease:
			result.TotalIncrease++
		case entities.ActionReduce:
			result.TotalReduce++
		case entities.ActionExpedite:
			result.TotalExpedite++
		case entities.ActionNew:
			result.TotalNew++
		}
	}

	return result
}
