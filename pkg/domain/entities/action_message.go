package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// ActionType represents the kind of corrective instruction emitted by the
// reconciliation engine
type ActionType int

const (
	ActionCancel ActionType = iota
	ActionIncrease
	ActionReduce
	ActionExpedite
	ActionNew
)

// String method for ActionType enum
func (a ActionType) String() string {
	switch a {
	case ActionCancel:
		return "CANCEL"
	case ActionIncrease:
		return "INCREASE"
	case ActionReduce:
		return "REDUCE"
	case ActionExpedite:
		return "EXPEDITE"
	case ActionNew:
		return "NEW"
	default:
		return "Unknown"
	}
}

// MaxMessageLength is the hard cap on rendered action message text
const MaxMessageLength = 100

// ActionMessage is a single corrective instruction for a planner. It is not
// persisted as its own row; the text is projected onto the owning order
// record's action message field.
type ActionMessage struct {
	Type            ActionType       `json:"type"`
	ExistingOrderID string           `json:"existing_order_id,omitempty"`
	PlannedOrderID  string           `json:"planned_order_id,omitempty"`
	DeltaQuantity   *decimal.Decimal `json:"delta_quantity,omitempty"`
	DeltaDays       *int             `json:"delta_days,omitempty"`
	CurrentDate     *time.Time       `json:"current_date,omitempty"`
	RequiredDate    *time.Time       `json:"required_date,omitempty"`
	Message         string           `json:"message"`
}

// TargetOrderID returns the id of the single order record this message is
// written onto: the committed order for CANCEL, the planned order otherwise.
func (m *ActionMessage) TargetOrderID() string {
	if m.Type == ActionCancel {
		return m.ExistingOrderID
	}
	return m.PlannedOrderID
}
