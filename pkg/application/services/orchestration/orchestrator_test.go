package orchestration

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planvia/demandplan/pkg/application/services/reconcile"
	"github.com/planvia/demandplan/pkg/domain/entities"
	"github.com/planvia/demandplan/pkg/infrastructure/events"
	"github.com/planvia/demandplan/pkg/infrastructure/repositories/memory"
)

// brokenOrderRepository fails every read so the engine aborts
type brokenOrderRepository struct{}

func (brokenOrderRepository) GetOpenOrders(ctx context.Context) ([]*entities.CommittedOrder, error) {
	return nil, errors.New("connection refused")
}

func (brokenOrderRepository) SetActionMessage(ctx context.Context, orderID, message string) error {
	return errors.New("connection refused")
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestReconcilePlanningRun_CompletesRunWithTotals(t *testing.T) {
	needDate := date(2026, time.April, 1)

	committed, err := entities.NewCommittedOrder(
		"C1", "WIDGET", entities.Purchase,
		decimal.RequireFromString("50"), needDate, needDate, entities.StatusFirm)
	require.NoError(t, err)

	planned, err := entities.NewPlannedOrder(
		"P1", "WIDGET", entities.Purchase,
		decimal.RequireFromString("100"), needDate)
	require.NoError(t, err)

	orderRepo := memory.NewOrderRepository()
	require.NoError(t, orderRepo.LoadCommittedOrders([]*entities.CommittedOrder{committed}))
	require.NoError(t, orderRepo.LoadPlannedOrders([]*entities.PlannedOrder{planned}))
	runRepo := memory.NewExecutionRepository()
	eventStore := events.NewInMemoryEventStore()

	reconciler := reconcile.NewService(orderRepo, nil)
	orchestrator := NewPlanningOrchestrator(reconciler, runRepo, eventStore, nil)

	result, err := orchestrator.ReconcilePlanningRun(context.Background(),
		[]entities.PlannedOrder{*planned})
	require.NoError(t, err)

	require.Len(t, result.Messages, 1)
	assert.Equal(t, entities.ActionIncrease, result.Messages[0].Type)
	assert.Equal(t, 1, result.TotalIncrease)
	assert.NotEmpty(t, result.ExecutionID)

	run, err := runRepo.GetRun(context.Background(), result.ExecutionID)
	require.NoError(t, err)
	assert.Equal(t, entities.RunCompleted, run.Status)
	assert.Equal(t, 1, run.TotalMessages)
	assert.Equal(t, 1, run.TotalIncrease)
	assert.Zero(t, run.TotalCancel)
	assert.False(t, run.StartedAt.IsZero())
	assert.False(t, run.CompletedAt.IsZero())

	message, ok := orderRepo.ActionMessage("P1")
	require.True(t, ok)
	assert.Equal(t, "INCREASE: +50 units needed", message)

	stream, err := eventStore.ReadEvents(result.ExecutionID, 1)
	require.NoError(t, err)
	require.Len(t, stream, 3)
	assert.Equal(t, events.ReconciliationStartedEvent, stream[0].Type())
	assert.Equal(t, events.ActionMessageCreatedEvent, stream[1].Type())
	assert.Equal(t, events.ReconciliationCompletedEvent, stream[2].Type())
}

func TestReconcilePlanningRun_EngineFailureMarksRunFailed(t *testing.T) {
	runRepo := memory.NewExecutionRepository()
	eventStore := events.NewInMemoryEventStore()

	reconciler := reconcile.NewService(brokenOrderRepository{}, nil)
	orchestrator := NewPlanningOrchestrator(reconciler, runRepo, eventStore, nil)

	result, err := orchestrator.ReconcilePlanningRun(context.Background(), nil)
	require.Error(t, err)
	assert.Nil(t, result)

	all, err := eventStore.ReadAllEvents(0)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, events.ReconciliationStartedEvent, all[0].Type())
	assert.Equal(t, events.ReconciliationFailedEvent, all[1].Type())

	run, err := runRepo.GetRun(context.Background(), all[0].StreamID())
	require.NoError(t, err)
	assert.Equal(t, entities.RunFailed, run.Status)
	assert.Contains(t, run.ErrorMessage, "connection refused")
	assert.Zero(t, run.TotalMessages)
}

func TestReconcilePlanningRun_NilEventStore(t *testing.T) {
	orderRepo := memory.NewOrderRepository()
	runRepo := memory.NewExecutionRepository()

	reconciler := reconcile.NewService(orderRepo, nil)
	orchestrator := NewPlanningOrchestrator(reconciler, runRepo, nil, nil)

	result, err := orchestrator.ReconcilePlanningRun(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, result.Messages)

	run, err := runRepo.GetRun(context.Background(), result.ExecutionID)
	require.NoError(t, err)
	assert.Equal(t, entities.RunCompleted, run.Status)
}
