package reconcile

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/planvia/demandplan/pkg/application/dto"
	"github.com/planvia/demandplan/pkg/domain/entities"
	"github.com/planvia/demandplan/pkg/domain/repositories"
)

// DefaultToleranceDays is the standard matching window: committed orders
// whose need date falls within this many calendar days of a planned order's
// need date belong to the same period.
const DefaultToleranceDays = 3

// Config holds per-invocation engine settings. The tolerance is resolved
// once per invocation rather than living as mutable service state.
type Config struct {
	// ToleranceDays is the ± calendar-day matching window. Boundary
	// distance counts as a match.
	ToleranceDays int
	// DryRun computes and aggregates without writing action messages back
	// to the order store.
	DryRun bool
}

// DefaultConfig returns the standard engine configuration
func DefaultConfig() Config {
	return Config{ToleranceDays: DefaultToleranceDays}
}

// Service runs the order reconciliation pipeline: it diffs a freshly
// computed plan against standing commitments and emits the minimal set of
// corrective action messages. One invocation per completed planning run;
// the caller is responsible for serializing runs against the same
// commitment set.
type Service struct {
	orders repositories.OrderRepository
	config Config
	logger *zap.Logger
}

// NewService creates a reconciliation service with default configuration
func NewService(orders repositories.OrderRepository, logger *zap.Logger) *Service {
	return NewServiceWithConfig(orders, logger, DefaultConfig())
}

// NewServiceWithConfig creates a reconciliation service with custom
// configuration
func NewServiceWithConfig(orders repositories.OrderRepository, logger *zap.Logger, config Config) *Service {
	if config.ToleranceDays < 0 {
		config.ToleranceDays = DefaultToleranceDays
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		orders: orders,
		config: config,
		logger: logger,
	}
}

// GenerateActionMessages executes one reconciliation pass. Re-running with
// identical inputs yields byte-identical messages and identical writes.
func (s *Service) GenerateActionMessages(
	ctx context.Context,
	input *dto.ActionMessagesInput,
) (*dto.ActionMessagesResult, error) {
	// Step 1: validate the input before any store access
	if err := validateInput(input); err != nil {
		return nil, err
	}

	// Step 2: load the standing commitments. A read failure aborts the
	// whole run with nothing written.
	committed, err := s.orders.GetOpenOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load open orders: %w", err)
	}

	planned := make([]*entities.PlannedOrder, len(input.PlannedOrders))
	for i := range input.PlannedOrders {
		planned[i] = &input.PlannedOrders[i]
	}

	// Step 3: match planned orders against commitments
	match := MatchOrders(planned, committed, s.config.ToleranceDays)

	// Step 4: classify and format
	messages, err := Classify(match)
	if err != nil {
		return nil, fmt.Errorf("failed to classify match groups: %w", err)
	}

	// Step 5: persist each message onto its owning order record
	if !s.config.DryRun {
		if err := s.persist(ctx, messages); err != nil {
			return nil, err
		}
	}

	// Step 6: aggregate run-level counts
	result := Aggregate(input.ExecutionID, messages)

	s.logger.Info("reconciliation completed",
		zap.String("execution_id", input.ExecutionID),
		zap.Int("planned_orders", len(planned)),
		zap.Int("open_orders", len(committed)),
		zap.Int("messages", len(messages)),
		zap.Int("cancel", result.TotalCancel),
		zap.Int("increase", result.TotalIncrease),
		zap.Int("reduce", result.TotalReduce),
		zap.Int("expedite", result.TotalExpedite),
		zap.Int("new", result.TotalNew),
		zap.Bool("dry_run", s.config.DryRun),
	)

	return result, nil
}

// persist writes each message onto the single order record it concerns.
// Fail-fast: the first write failure halts the remaining writes so that
// "messages computed" and "messages persisted" cannot silently diverge.
func (s *Service) persist(ctx context.Context, messages []entities.ActionMessage) error {
	for i := range messages {
		msg := &messages[i]
		targetID := msg.TargetOrderID()
		if err := s.orders.SetActionMessage(ctx, targetID, msg.Message); err != nil {
			s.logger.Error("action message write failed",
				zap.String("order_id", targetID),
				zap.String("action", msg.Type.String()),
				zap.Error(err),
			)
			return fmt.Errorf("failed to persist %s message for order %s: %w",
				msg.Type, targetID, err)
		}
	}
	return nil
}

// validateInput rejects malformed inputs before the store is touched
func validateInput(input *dto.ActionMessagesInput) error {
	if input == nil {
		return fmt.Errorf("input cannot be nil")
	}
	if input.ExecutionID == "" {
		return fmt.Errorf("execution id cannot be empty")
	}
	for i := range input.PlannedOrders {
		order := &input.PlannedOrders[i]
		if order.ID == "" {
			return fmt.Errorf("planned order %d: order id cannot be empty", i)
		}
		if order.ProductID == "" {
			return fmt.Errorf("planned order %s: product id cannot be empty", order.ID)
		}
		if order.Quantity.IsNegative() {
			return fmt.Errorf("planned order %s: quantity cannot be negative, got %s",
				order.ID, order.Quantity)
		}
		if order.NeedDate.IsZero() {
			return fmt.Errorf("planned order %s: need date cannot be zero", order.ID)
		}
	}
	return nil
}
