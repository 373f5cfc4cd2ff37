package main

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/planvia/demandplan/pkg/application/services/orchestration"
	"github.com/planvia/demandplan/pkg/application/services/reconcile"
	"github.com/planvia/demandplan/pkg/domain/entities"
	"github.com/planvia/demandplan/pkg/infrastructure/events"
	"github.com/planvia/demandplan/pkg/infrastructure/repositories/memory"
)

func main() {
	ctx := context.Background()

	// Create repositories
	orderRepo := memory.NewOrderRepository()
	runRepo := memory.NewExecutionRepository()
	eventStore := events.NewInMemoryEventStore()

	// Set up standing commitments from an earlier planning run
	setupCommittedOrders(orderRepo)

	// Create the reconciliation engine and orchestrator
	reconciler := reconcile.NewService(orderRepo, nil)
	orchestrator := orchestration.NewPlanningOrchestrator(reconciler, runRepo, eventStore, nil)

	// The latest planning run proposes a changed demand picture: more
	// valve bodies, fewer seals, and a brand-new requirement for gaskets.
	// The standing pump housing order has no counterpart anymore.
	planned := setupPlannedOrders(orderRepo)

	fmt.Println("Reconciling latest planning run against open orders...")
	fmt.Printf("Planned orders: %d\n\n", len(planned))

	result, err := orchestrator.ReconcilePlanningRun(ctx, planned)
	if err != nil {
		fmt.Printf("Reconciliation failed: %v\n", err)
		return
	}

	fmt.Println("Reconciliation Results:")
	fmt.Printf("  Execution: %s\n", result.ExecutionID)
	fmt.Printf("  Messages: %d (cancel %d, increase %d, reduce %d, expedite %d, new %d)\n\n",
		len(result.Messages),
		result.TotalCancel,
		result.TotalIncrease,
		result.TotalReduce,
		result.TotalExpedite,
		result.TotalNew)

	for _, msg := range result.Messages {
		fmt.Printf("  [%s] order %s: %s\n",
			msg.Type.String(), msg.TargetOrderID(), msg.Message)
	}

	fmt.Println()
	fmt.Println("Reconciliation complete.")
}

func setupCommittedOrders(orderRepo *memory.OrderRepository) {
	needDate := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

	committed := []*entities.CommittedOrder{
		{
			ID:                   "PO-1001",
			ProductID:            "VALVE_BODY",
			OrderType:            entities.Purchase,
			Quantity:             decimal.NewFromInt(100),
			NeedDate:             needDate,
			ExpectedDeliveryDate: needDate,
			Status:               entities.StatusFirm,
		},
		{
			ID:                   "PO-1002",
			ProductID:            "SHAFT_SEAL",
			OrderType:            entities.Purchase,
			Quantity:             decimal.NewFromInt(500),
			NeedDate:             needDate,
			ExpectedDeliveryDate: needDate,
			Status:               entities.StatusReleased,
		},
		{
			ID:                   "WO-2001",
			ProductID:            "PUMP_HOUSING",
			OrderType:            entities.Production,
			Quantity:             decimal.NewFromInt(25),
			NeedDate:             needDate,
			// Delivery has slipped a week past the need date
			ExpectedDeliveryDate: needDate.AddDate(0, 0, 7),
			Status:               entities.StatusFirm,
		},
	}

	if err := orderRepo.LoadCommittedOrders(committed); err != nil {
		panic(err)
	}
}

func setupPlannedOrders(orderRepo *memory.OrderRepository) []entities.PlannedOrder {
	needDate := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

	planned := []*entities.PlannedOrder{
		{
			ID:        "PL-3001",
			ProductID: "VALVE_BODY",
			OrderType: entities.Purchase,
			Quantity:  decimal.NewFromInt(150),
			NeedDate:  needDate,
		},
		{
			ID:        "PL-3002",
			ProductID: "SHAFT_SEAL",
			OrderType: entities.Purchase,
			Quantity:  decimal.NewFromInt(350),
			NeedDate:  needDate,
		},
		{
			ID:        "PL-3003",
			ProductID: "PUMP_HOUSING",
			OrderType: entities.Production,
			Quantity:  decimal.NewFromInt(25),
			NeedDate:  needDate,
		},
		{
			ID:        "PL-3004",
			ProductID: "FLANGE_GASKET",
			OrderType: entities.Purchase,
			Quantity:  decimal.RequireFromString("72.5"),
			NeedDate:  needDate.AddDate(0, 0, 14),
		},
	}

	if err := orderRepo.LoadPlannedOrders(planned); err != nil {
		panic(err)
	}

	orders := make([]entities.PlannedOrder, len(planned))
	for i, order := range planned {
		orders[i] = *order
	}
	return orders
}
