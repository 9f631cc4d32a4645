package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"gorm.io/gorm"

	"github.com/rajivmehta/cargoplan-go/internal/adapters/csvdata"
	"github.com/rajivmehta/cargoplan-go/internal/adapters/httpapi"
	"github.com/rajivmehta/cargoplan-go/internal/adapters/persistence"
	"github.com/rajivmehta/cargoplan-go/internal/application/common"
	"github.com/rajivmehta/cargoplan-go/internal/application/pipeline"
	"github.com/rajivmehta/cargoplan-go/internal/domain/planning"
	"github.com/rajivmehta/cargoplan-go/internal/infrastructure/config"
	"github.com/rajivmehta/cargoplan-go/internal/infrastructure/database"
)

// plannerOptions maps configuration onto pipeline options.
func plannerOptions(cfg *config.Config) pipeline.Options {
	return httpapi.OptionsFromConfig(cfg)
}

// loadInputs reads the flight and cargo CSV files plus the optional
// connection rules and disruption event documents.
func loadInputs(flightsPath, cargoPath, connectionsPath, eventsPath string) (pipeline.Inputs, error) {
	flights, err := csvdata.LoadFlightsFile(flightsPath)
	if err != nil {
		return pipeline.Inputs{}, err
	}
	cargo, err := csvdata.LoadCargoFile(cargoPath)
	if err != nil {
		return pipeline.Inputs{}, err
	}
	rules := planning.NewRuleIndex(nil)
	if connectionsPath != "" {
		if rules, err = csvdata.LoadConnectionsFile(connectionsPath); err != nil {
			return pipeline.Inputs{}, err
		}
	}
	inputs := pipeline.Inputs{Flights: flights, Cargo: cargo, Rules: rules}
	if eventsPath != "" {
		events, err := csvdata.LoadEventsFile(eventsPath)
		if err != nil {
			return pipeline.Inputs{}, err
		}
		inputs.Events = events
	}
	return inputs, nil
}

// plannerContext builds the run context with the configured logger.
func plannerContext(cfg *config.Config) context.Context {
	level := cfg.Logging.Level
	if verbose {
		level = "debug"
	}
	out := os.Stdout
	if cfg.Logging.Output == "stderr" {
		out = os.Stderr
	}
	logger := common.NewStdLogger(out, level, cfg.Logging.Format)
	return common.WithLogger(context.Background(), logger)
}

// openHistory opens the configured history store, or returns nil when
// history is disabled.
func openHistory(cfg *config.Config, enabled bool) (pipeline.HistoryRepository, *gorm.DB, error) {
	if !enabled {
		return nil, nil, nil
	}
	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("opening history database: %w", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		return nil, nil, fmt.Errorf("migrating history database: %w", err)
	}
	return persistence.NewGormPlanRunRepository(db), db, nil
}

// printSummary writes the run digest to stdout.
func printSummary(result *pipeline.PlanResult, elapsed time.Duration) {
	summary := result.Payload.Summary
	fmt.Printf("run %s finished in %s\n", result.RunID, elapsed.Round(time.Millisecond))
	fmt.Printf("  total margin: %.2f INR\n", summary.TotalMargin)
	fmt.Printf("  delivered: %d  rolled: %d  denied: %d\n",
		summary.Delivered, summary.Rolled, summary.Denied)
	fmt.Printf("  generations: %d  evaluations: %d  seed: %d\n",
		summary.Generations, summary.Evaluations, summary.Seed)
	if critical := summary.AlertCounts["critical"]; critical > 0 {
		fmt.Printf("  ATTENTION: %d critical alert(s), see alerts.csv\n", critical)
	}
}
