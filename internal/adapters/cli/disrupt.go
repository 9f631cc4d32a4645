package cli

import (
	"github.com/spf13/cobra"

	"github.com/rajivmehta/cargoplan-go/internal/infrastructure/config"
)

// NewDisruptCommand creates the disrupt command
func NewDisruptCommand() *cobra.Command {
	var (
		flightsPath     string
		cargoPath       string
		connectionsPath string
		eventsPath      string
		outDir          string
		seed            int64
		history         bool
	)

	cmd := &cobra.Command{
		Use:   "disrupt",
		Short: "Run a what-if disruption scenario",
		Long: `Disrupt plans the baseline, applies the disruption events
(delay, cancel, swap) to the flight set, replans the mutated world and
writes the disrupted plan plus the baseline diff alerts.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.MustLoadConfig(configPath)
			if cmd.Flags().Changed("seed") {
				cfg.Planner.Seed = seed
			}

			inputs, err := loadInputs(flightsPath, cargoPath, connectionsPath, eventsPath)
			if err != nil {
				return err
			}
			return runPlan(cfg, inputs, outDir, history)
		},
	}

	cmd.Flags().StringVar(&flightsPath, "flights", "flights.csv", "Path to flights.csv")
	cmd.Flags().StringVar(&cargoPath, "cargo", "cargo.csv", "Path to cargo.csv")
	cmd.Flags().StringVar(&connectionsPath, "connections", "connections.csv", "Path to connections.csv")
	cmd.Flags().StringVar(&eventsPath, "events", "events.json", "Disruption event JSON document")
	cmd.Flags().StringVar(&outDir, "out", "out", "Output directory for the plan artifacts")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Override the optimizer seed")
	cmd.Flags().BoolVar(&history, "history", false, "Record the run in the plan-run history database")
	_ = cmd.MarkFlagRequired("events")

	return cmd
}
