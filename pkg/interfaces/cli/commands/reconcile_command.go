package commands

import (
	"context"
	"fmt"

	"github.com/planvia/demandplan/pkg/application/services/orchestration"
	"github.com/planvia/demandplan/pkg/application/services/reconcile"
	"github.com/planvia/demandplan/pkg/domain/entities"
	"github.com/planvia/demandplan/pkg/infrastructure/events"
	"github.com/planvia/demandplan/pkg/infrastructure/logging"
	"github.com/planvia/demandplan/pkg/infrastructure/repositories/csv"
	"github.com/planvia/demandplan/pkg/infrastructure/repositories/memory"
	"github.com/planvia/demandplan/pkg/interfaces/cli/output"
)

// Config holds configuration for the reconcile command
type Config struct {
	PlannedFile   string
	CommittedFile string
	ToleranceDays int
	DryRun        bool
	OutputDir     string
	Format        string
	LogLevel      string
	Verbose       bool
	Help          bool
}

// ReconcileCommand runs the action-message engine against CSV order data
type ReconcileCommand struct {
	config Config
}

// NewReconcileCommand creates a new reconcile command with the given
// configuration
func NewReconcileCommand(config Config) *ReconcileCommand {
	return &ReconcileCommand{
		config: config,
	}
}

// Execute runs the reconcile command
func (c *ReconcileCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		c.showHelp()
		return nil
	}

	if err := c.validateInputs(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	logger, err := logging.NewZapLogger(c.config.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer logger.Sync()

	// Load order data from CSV files
	csvLoader := csv.NewLoader()

	plannedOrders, err := csvLoader.LoadPlannedOrders(c.config.PlannedFile)
	if err != nil {
		return fmt.Errorf("error loading planned orders: %w", err)
	}

	committedOrders, err := csvLoader.LoadCommittedOrders(c.config.CommittedFile)
	if err != nil {
		return fmt.Errorf("error loading committed orders: %w", err)
	}

	if c.config.Verbose {
		fmt.Printf("Data loaded successfully:\n")
		fmt.Printf("  Planned Orders: %d\n", len(plannedOrders))
		fmt.Printf("  Committed Orders: %d\n", len(committedOrders))
		fmt.Println()
	}

	// Create repositories
	orderRepo := memory.NewOrderRepository()
	if err := orderRepo.LoadCommittedOrders(committedOrders); err != nil {
		return fmt.Errorf("failed to load committed orders into repository: %w", err)
	}
	if err := orderRepo.LoadPlannedOrders(plannedOrders); err != nil {
		return fmt.Errorf("failed to load planned orders into repository: %w", err)
	}
	runRepo := memory.NewExecutionRepository()
	eventStore := events.NewInMemoryEventStore()

	// Create the engine and orchestrator
	engineConfig := reconcile.Config{
		ToleranceDays: c.config.ToleranceDays,
		DryRun:        c.config.DryRun,
	}
	reconciler := reconcile.NewServiceWithConfig(orderRepo, logger, engineConfig)
	orchestrator := orchestration.NewPlanningOrchestrator(reconciler, runRepo, eventStore, logger)

	// Run reconciliation
	planned := make([]entities.PlannedOrder, len(plannedOrders))
	for i, order := range plannedOrders {
		planned[i] = *order
	}

	result, err := orchestrator.ReconcilePlanningRun(ctx, planned)
	if err != nil {
		return err
	}

	// Render results
	outputConfig := output.Config{
		Format:    c.config.Format,
		OutputDir: c.config.OutputDir,
		Verbose:   c.config.Verbose,
	}
	return output.Generate(result, outputConfig)
}

// validateInputs checks required configuration before any work happens
func (c *ReconcileCommand) validateInputs() error {
	if c.config.PlannedFile == "" {
		return fmt.Errorf("planned orders file is required (use -planned)")
	}
	if c.config.CommittedFile == "" {
		return fmt.Errorf("committed orders file is required (use -committed)")
	}
	if c.config.ToleranceDays < 0 {
		return fmt.Errorf("tolerance days cannot be negative, got %d", c.config.ToleranceDays)
	}
	switch c.config.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unsupported output format: %s (expected: text or json)", c.config.Format)
	}
	return nil
}

func (c *ReconcileCommand) showHelp() {
	fmt.Println("reconcile - diff a planning run against open orders and emit action messages")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  reconcile -planned planned.csv -committed committed.csv [options]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -planned     Path to planned orders CSV file (required)")
	fmt.Println("  -committed   Path to committed orders CSV file (required)")
	fmt.Println("  -tolerance   Matching window in calendar days (default 3)")
	fmt.Println("  -dry-run     Compute messages without writing them back")
	fmt.Println("  -format      Output format: text, json (default text)")
	fmt.Println("  -output      Output directory for results (optional)")
	fmt.Println("  -log-level   Log level: debug, info, warn, error (default info)")
	fmt.Println("  -verbose     Enable verbose output")
}
