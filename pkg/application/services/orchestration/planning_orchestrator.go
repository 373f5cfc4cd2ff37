package orchestration

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/planvia/demandplan/pkg/application/dto"
	"github.com/planvia/demandplan/pkg/application/services/reconcile"
	"github.com/planvia/demandplan/pkg/domain/entities"
	"github.com/planvia/demandplan/pkg/domain/repositories"
	"github.com/planvia/demandplan/pkg/infrastructure/events"
)

// PlanningOrchestrator coordinates one reconciliation pass per completed
// planning run: it books a run record, invokes the engine exactly once, and
// stores the outcome. Runs must be serialized by the caller; the engine is
// not designed for concurrent invocations against the same commitment set.
type PlanningOrchestrator struct {
	reconciler *reconcile.Service
	runs       repositories.ExecutionRepository
	eventStore events.EventStore
	logger     *zap.Logger
}

// NewPlanningOrchestrator creates a new planning orchestrator
func NewPlanningOrchestrator(
	reconciler *reconcile.Service,
	runs repositories.ExecutionRepository,
	eventStore events.EventStore,
	logger *zap.Logger,
) *PlanningOrchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PlanningOrchestrator{
		reconciler: reconciler,
		runs:       runs,
		eventStore: eventStore,
		logger:     logger,
	}
}

// ReconcilePlanningRun executes one reconciliation pass over the planning
// run's proposed orders. The run record survives the call either completed
// with totals or failed with the surfaced error; in the failure case the
// error is also returned so the caller can retry the run wholesale later.
func (po *PlanningOrchestrator) ReconcilePlanningRun(
	ctx context.Context,
	plannedOrders []entities.PlannedOrder,
) (*dto.ActionMessagesResult, error) {
	run, err := entities.NewReconciliationRun(uuid.NewString())
	if err != nil {
		return nil, err
	}

	if err := po.runs.CreateRun(ctx, run); err != nil {
		return nil, fmt.Errorf("failed to create run record: %w", err)
	}

	run.Start()
	if err := po.runs.UpdateRun(ctx, run); err != nil {
		return nil, fmt.Errorf("failed to start run %s: %w", run.ID, err)
	}
	po.appendEvent(events.NewReconciliationStartedEvent(run.ID, len(plannedOrders)))

	input := &dto.ActionMessagesInput{
		ExecutionID:   run.ID,
		PlannedOrders: plannedOrders,
	}

	result, err := po.reconciler.GenerateActionMessages(ctx, input)
	if err != nil {
		run.Fail(err.Error())
		if updateErr := po.runs.UpdateRun(ctx, run); updateErr != nil {
			po.logger.Error("failed to record run failure",
				zap.String("run_id", run.ID),
				zap.Error(updateErr),
			)
		}
		po.appendEvent(events.NewReconciliationFailedEvent(run.ID, err.Error()))
		return nil, fmt.Errorf("reconciliation run %s failed: %w", run.ID, err)
	}

	run.Complete(
		result.TotalCancel,
		result.TotalIncrease,
		result.TotalReduce,
		result.TotalExpedite,
		result.TotalNew,
	)
	if err := po.runs.UpdateRun(ctx, run); err != nil {
		return nil, fmt.Errorf("failed to complete run %s: %w", run.ID, err)
	}

	for _, message := range result.Messages {
		po.appendEvent(events.NewActionMessageCreatedEvent(run.ID, message))
	}
	po.appendEvent(events.NewReconciliationCompletedEvent(run))

	return result, nil
}

// appendEvent publishes to the event store when one is configured
func (po *PlanningOrchestrator) appendEvent(event events.Event) {
	if po.eventStore == nil {
		return
	}
	if err := po.eventStore.AppendEvent(event.StreamID(), event); err != nil {
		po.logger.Warn("failed to append event",
			zap.String("event_type", event.Type()),
			zap.String("stream_id", event.StreamID()),
			zap.Error(err),
		)
	}
}
