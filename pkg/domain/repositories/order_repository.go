package repositories

import (
	"context"

	"github.com/planvia/demandplan/pkg/domain/entities"
)

// OrderRepository provides the order-store surface the reconciliation
// engine depends on: the open-commitment query and the point update that
// attaches an action message to a single order record. The engine performs
// no other reads or writes against the store.
type OrderRepository interface {
	// GetOpenOrders returns every committed order with status FIRM or
	// RELEASED. Orders in any other status must not be returned.
	GetOpenOrders(ctx context.Context) ([]*entities.CommittedOrder, error)

	// SetActionMessage writes the message text onto the order record with
	// the given id, replacing any previous message.
	SetActionMessage(ctx context.Context, orderID string, message string) error
}
