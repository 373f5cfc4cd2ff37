package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/planvia/demandplan/pkg/application/dto"
)

// Config holds configuration for output generation
type Config struct {
	Format    string
	OutputDir string
	Verbose   bool
}

// Generate renders the reconciliation result in the specified format
func Generate(result *dto.ActionMessagesResult, config Config) error {
	switch config.Format {
	case "text":
		return generateTextOutput(result, config)
	case "json":
		return generateJSONOutput(result, config)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

// generateTextOutput creates human-readable text output
func generateTextOutput(result *dto.ActionMessagesResult, config Config) error {
	fmt.Printf("Reconciliation Summary\n")
	fmt.Printf("======================\n\n")

	fmt.Printf("Execution: %s\n", result.ExecutionID)
	fmt.Printf("Messages: %d (cancel %d, increase %d, reduce %d, expedite %d, new %d)\n\n",
		len(result.Messages),
		result.TotalCancel,
		result.TotalIncrease,
		result.TotalReduce,
		result.TotalExpedite,
		result.TotalNew)

	if len(result.Messages) > 0 {
		fmt.Printf("%-10s %-14s %-14s %s\n",
			"Action", "Existing", "Planned", "Message")
		fmt.Printf("%-10s %-14s %-14s %s\n",
			"----------", "--------------", "--------------", "-------")

		for _, msg := range result.Messages {
			fmt.Printf("%-10s %-14s %-14s %s\n",
				msg.Type.String(),
				orDash(msg.ExistingOrderID),
				orDash(msg.PlannedOrderID),
				msg.Message)
		}
		fmt.Println()
	}

	return nil
}

// generateJSONOutput creates JSON output
func generateJSONOutput(result *dto.ActionMessagesResult, config Config) error {
	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if config.OutputDir == "" {
		fmt.Println(string(jsonData))
		return nil
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	filename := filepath.Join(config.OutputDir, "action_messages.json")
	if err := os.WriteFile(filename, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write JSON file: %w", err)
	}

	if config.Verbose {
		fmt.Printf("JSON results saved to: %s\n", filename)
	}
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
