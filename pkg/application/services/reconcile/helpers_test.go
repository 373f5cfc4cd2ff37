package reconcile

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/planvia/demandplan/pkg/domain/entities"
)

// Test fixture helpers shared by the matcher, classifier and service tests.

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func plannedOrder(id, productID string, orderType entities.OrderType, quantity string, needDate time.Time) *entities.PlannedOrder {
	return &entities.PlannedOrder{
		ID:        id,
		ProductID: productID,
		OrderType: orderType,
		Quantity:  decimal.RequireFromString(quantity),
		NeedDate:  needDate,
	}
}

func committedOrder(id, productID string, orderType entities.OrderType, quantity string, needDate time.Time) *entities.CommittedOrder {
	return committedOrderSlipped(id, productID, orderType, quantity, needDate, needDate)
}

func committedOrderSlipped(id, productID string, orderType entities.OrderType, quantity string, needDate, deliveryDate time.Time) *entities.CommittedOrder {
	return &entities.CommittedOrder{
		ID:                   id,
		ProductID:            productID,
		OrderType:            orderType,
		Quantity:             decimal.RequireFromString(quantity),
		NeedDate:             needDate,
		ExpectedDeliveryDate: deliveryDate,
		Status:               entities.StatusFirm,
	}
}
