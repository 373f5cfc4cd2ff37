package entities

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// OrderType represents the sourcing of a supply order
type OrderType int

const (
	Purchase OrderType = iota
	Production
)

// String method for OrderType enum
func (o OrderType) String() string {
	switch o {
	case Purchase:
		return "PURCHASE"
	case Production:
		return "PRODUCTION"
	default:
		return "Unknown"
	}
}

// ParseOrderType converts the store/CSV representation into an OrderType
func ParseOrderType(s string) (OrderType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "PURCHASE":
		return Purchase, nil
	case "PRODUCTION":
		return Production, nil
	default:
		return Purchase, fmt.Errorf("invalid order type: %s (expected: PURCHASE or PRODUCTION)", s)
	}
}

// OrderStatus represents the lifecycle state of a supply order
type OrderStatus int

const (
	StatusPlanned OrderStatus = iota
	StatusFirm
	StatusReleased
	StatusCancelled
)

// String method for OrderStatus enum
func (s OrderStatus) String() string {
	switch s {
	case StatusPlanned:
		return "PLANNED"
	case StatusFirm:
		return "FIRM"
	case StatusReleased:
		return "RELEASED"
	case StatusCancelled:
		return "CANCELLED"
	default:
		return "Unknown"
	}
}

// ParseOrderStatus converts the store/CSV representation into an OrderStatus
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "PLANNED":
		return StatusPlanned, nil
	case "FIRM":
		return StatusFirm, nil
	case "RELEASED":
		return StatusReleased, nil
	case "CANCELLED":
		return StatusCancelled, nil
	default:
		return StatusPlanned, fmt.Errorf(
			"invalid order status: %s (expected: PLANNED, FIRM, RELEASED, or CANCELLED)", s)
	}
}

// IsOpen reports whether an order in this status is a standing commitment
// visible to reconciliation. Orders in any other status are invisible to
// the engine.
func (s OrderStatus) IsOpen() bool {
	return s == StatusFirm || s == StatusReleased
}

// PlannedOrder represents a proposed supply order from the latest planning
// run, not yet committed
type PlannedOrder struct {
	ID        string
	ProductID string
	OrderType OrderType
	Quantity  decimal.Decimal
	NeedDate  time.Time
}

// NewPlannedOrder creates a validated PlannedOrder
func NewPlannedOrder(
	id, productID string,
	orderType OrderType,
	quantity decimal.Decimal,
	needDate time.Time,
) (*PlannedOrder, error) {
	if id == "" {
		return nil, fmt.Errorf("order id cannot be empty")
	}
	if productID == "" {
		return nil, fmt.Errorf("product id cannot be empty")
	}
	if quantity.IsNegative() {
		return nil, fmt.Errorf("quantity cannot be negative, got %s", quantity)
	}
	if needDate.IsZero() {
		return nil, fmt.Errorf("need date cannot be zero")
	}

	return &PlannedOrder{
		ID:        id,
		ProductID: productID,
		OrderType: orderType,
		Quantity:  quantity,
		NeedDate:  needDate,
	}, nil
}

// CommittedOrder represents a previously planned order now locked in.
// ExpectedDeliveryDate may differ from NeedDate when the schedule has
// slipped.
type CommittedOrder struct {
	ID                   string
	ProductID            string
	OrderType            OrderType
	Quantity             decimal.Decimal
	NeedDate             time.Time
	ExpectedDeliveryDate time.Time
	Status               OrderStatus
}

// NewCommittedOrder creates a validated CommittedOrder. A zero expected
// delivery date defaults to the need date.
func NewCommittedOrder(
	id, productID string,
	orderType OrderType,
	quantity decimal.Decimal,
	needDate, expectedDeliveryDate time.Time,
	status OrderStatus,
) (*CommittedOrder, error) {
	if id == "" {
		return nil, fmt.Errorf("order id cannot be empty")
	}
	if productID == "" {
		return nil, fmt.Errorf("product id cannot be empty")
	}
	if quantity.IsNegative() {
		return nil, fmt.Errorf("quantity cannot be negative, got %s", quantity)
	}
	if needDate.IsZero() {
		return nil, fmt.Errorf("need date cannot be zero")
	}
	if expectedDeliveryDate.IsZero() {
		expectedDeliveryDate = needDate
	}

	return &CommittedOrder{
		ID:                   id,
		ProductID:            productID,
		OrderType:            orderType,
		Quantity:             quantity,
		NeedDate:             needDate,
		ExpectedDeliveryDate: expectedDeliveryDate,
		Status:               status,
	}, nil
}
