package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rajivmehta/cargoplan-go/internal/adapters/output"
	"github.com/rajivmehta/cargoplan-go/internal/application/pipeline"
	"github.com/rajivmehta/cargoplan-go/internal/infrastructure/config"
	"github.com/rajivmehta/cargoplan-go/internal/infrastructure/database"
)

// NewPlanCommand creates the plan command
func NewPlanCommand() *cobra.Command {
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
		Use:   "plan",
		Short: "Run a planning cycle over CSV inputs",
		Long: `Plan enumerates feasible routes for every cargo, optimizes the
route mix and writes the four output artifacts (plan_routes.csv,
flight_loads.csv, alerts.csv, plan_summary.json) to the output
directory. When --events is given the disrupted scenario is planned
and diffed against the baseline.`,
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
	cmd.Flags().StringVar(&eventsPath, "events", "", "Optional disruption event JSON document")
	cmd.Flags().StringVar(&outDir, "out", "out", "Output directory for the plan artifacts")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Override the optimizer seed")
	cmd.Flags().BoolVar(&history, "history", false, "Record the run in the plan-run history database")

	return cmd
}

// runPlan executes one pipeline run and writes the artifacts.
func runPlan(cfg *config.Config, inputs pipeline.Inputs, outDir string, history bool) error {
	repo, db, err := openHistory(cfg, history)
	if err != nil {
		return err
	}
	if db != nil {
		defer database.Close(db)
	}

	started := time.Now()
	planner := pipeline.NewPlanner(plannerOptions(cfg), nil, repo)
	result, err := planner.Run(plannerContext(cfg), inputs)
	if err != nil {
		return err
	}

	if err := output.WriteAll(outDir, result.Payload); err != nil {
		return err
	}
	printSummary(result, time.Since(started))
	fmt.Printf("  artifacts written to %s\n", outDir)
	return nil
}
