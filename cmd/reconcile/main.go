package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/planvia/demandplan/pkg/application/services/reconcile"
	"github.com/planvia/demandplan/pkg/interfaces/cli/commands"
)

func main() {
	// Command line flags
	var (
		plannedFile = flag.String(
			"planned",
			"",
			"Path to planned orders CSV file",
		)
		committedFile = flag.String("committed", "", "Path to committed orders CSV file")
		tolerance     = flag.Int("tolerance", reconcile.DefaultToleranceDays, "Matching window in calendar days")
		dryRun        = flag.Bool("dry-run", false, "Compute messages without writing them back")
		outputDir     = flag.String("output", "", "Output directory for results (optional)")
		format        = flag.String("format", "text", "Output format: text, json")
		logLevel      = flag.String("log-level", "info", "Log level: debug, info, warn, error")
		verbose       = flag.Bool("verbose", false, "Enable verbose output")
		help          = flag.Bool("help", false, "Show help message")
	)

	flag.Parse()

	// Create command configuration
	config := commands.Config{
		PlannedFile:   *plannedFile,
		CommittedFile: *committedFile,
		ToleranceDays: *tolerance,
		DryRun:        *dryRun,
		OutputDir:     *outputDir,
		Format:        *format,
		LogLevel:      *logLevel,
		Verbose:       *verbose,
		Help:          *help,
	}

	// Create and execute command
	cmd := commands.NewReconcileCommand(config)
	ctx := context.Background()

	if err := cmd.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
