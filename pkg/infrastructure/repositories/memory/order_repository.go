package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/planvia/demandplan/pkg/domain/entities"
	"github.com/planvia/demandplan/pkg/domain/repositories"
)

// OrderRepository provides in-memory order storage. It holds both committed
// order records and planned order records (persisted in "planned" state by
// the planning run), since action messages attach to either kind.
type OrderRepository struct {
	committed map[string]entities.CommittedOrder
	planned   map[string]entities.PlannedOrder
	messages  map[string]string
	mutex     sync.RWMutex
}

// NewOrderRepository creates a new in-memory order repository
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{
		committed: make(map[string]entities.CommittedOrder),
		planned:   make(map[string]entities.PlannedOrder),
		messages:  make(map[string]string),
	}
}

// Verify interface compliance
var _ repositories.OrderRepository = (*OrderRepository)(nil)

// LoadCommittedOrders loads committed order records. Orders of every status
// are accepted; only FIRM and RELEASED ones are visible through
// GetOpenOrders.
func (r *OrderRepository) LoadCommittedOrders(orders []*entities.CommittedOrder) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for _, order := range orders {
		if err := r.checkUnknownID(order.ID); err != nil {
			return err
		}
		r.committed[order.ID] = *order
	}
	return nil
}

// LoadPlannedOrders loads planned order records so action messages can be
// attached to them
func (r *OrderRepository) LoadPlannedOrders(orders []*entities.PlannedOrder) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for _, order := range orders {
		if err := r.checkUnknownID(order.ID); err != nil {
			return err
		}
		r.planned[order.ID] = *order
	}
	return nil
}

func (r *OrderRepository) checkUnknownID(id string) error {
	if _, exists := r.committed[id]; exists {
		return fmt.Errorf("duplicate order id: %s", id)
	}
	if _, exists := r.planned[id]; exists {
		return fmt.Errorf("duplicate order id: %s", id)
	}
	return nil
}

// GetOpenOrders returns every committed order with status FIRM or RELEASED,
// ordered by id for determinism
func (r *OrderRepository) GetOpenOrders(ctx context.Context) ([]*entities.CommittedOrder, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	var open []*entities.CommittedOrder
	for id := range r.committed {
		order := r.committed[id]
		if order.Status.IsOpen() {
			open = append(open, &order)
		}
	}

	sort.Slice(open, func(i, j int) bool {
		return open[i].ID < open[j].ID
	})
	return open, nil
}

// SetActionMessage writes the message text onto the order record with the
// given id
func (r *OrderRepository) SetActionMessage(ctx context.Context, orderID string, message string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	_, isCommitted := r.committed[orderID]
	_, isPlanned := r.planned[orderID]
	if !isCommitted && !isPlanned {
		return fmt.Errorf("order not found: %s", orderID)
	}
	r.messages[orderID] = message
	return nil
}

// ActionMessage returns the message attached to the given order, if any
func (r *OrderRepository) ActionMessage(orderID string) (string, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	message, ok := r.messages[orderID]
	return message, ok
}
