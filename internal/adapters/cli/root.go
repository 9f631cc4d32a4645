package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rajivmehta/cargoplan-go/internal/domain/planning"
)

var (
	// Global flags
	configPath string
	verbose    bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cargoplan",
		Short: "CargoPlan - air cargo route and load planning",
		Long: `CargoPlan plans air cargo itineraries and flight loads.

It enumerates feasible routes per cargo, optimizes the route mix with a
seeded genetic algorithm, resolves per-flight capacity contention under
the priority guarantee, and can replay what-if disruption scenarios.

Examples:
  cargoplan plan --flights flights.csv --cargo cargo.csv --connections connections.csv --out ./out
  cargoplan disrupt --flights flights.csv --cargo cargo.csv --connections connections.csv --events events.json --out ./out
  cargoplan sample --disrupt --out ./out
  cargoplan serve`,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: search ./config.yaml, ./configs, /etc/cargoplan)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose output")

	rootCmd.AddCommand(NewPlanCommand())
	rootCmd.AddCommand(NewDisruptCommand())
	rootCmd.AddCommand(NewSampleCommand())
	rootCmd.AddCommand(NewRunsCommand())
	rootCmd.AddCommand(NewServeCommand())

	return rootCmd
}

// Execute runs the root command and maps failures to exit codes:
// 0 success, 2 data validation failure, 1 anything else.
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		var validation *planning.DataValidationError
		if errors.As(err, &validation) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
