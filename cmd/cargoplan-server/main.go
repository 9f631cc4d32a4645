package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/rajivmehta/cargoplan-go/internal/adapters/httpapi"
	"github.com/rajivmehta/cargoplan-go/internal/adapters/metrics"
	"github.com/rajivmehta/cargoplan-go/internal/adapters/persistence"
	"github.com/rajivmehta/cargoplan-go/internal/application/optimizer"
	"github.com/rajivmehta/cargoplan-go/internal/application/pipeline"
	"github.com/rajivmehta/cargoplan-go/internal/infrastructure/config"
	"github.com/rajivmehta/cargoplan-go/internal/infrastructure/database"
)

// Standalone planning service. Equivalent to `cargoplan serve` but
// built as its own binary for container deployments.
func main() {
	configFlag := flag.String("config", "", "Path to the configuration file")
	historyFlag := flag.Bool("history", true, "Record runs in the plan-run history database")
	flag.Parse()

	cfg := config.MustLoadConfig(*configFlag)

	var recorder optimizer.MetricsRecorder
	if cfg.Server.Metrics.Enabled {
		metrics.InitRegistry()
		collector := metrics.NewOptimizerMetricsCollector()
		if err := collector.Register(); err != nil {
			log.Fatalf("Failed to register optimizer metrics: %v", err)
		}
		recorder = collector
	}

	var history pipeline.HistoryRepository
	if *historyFlag {
		db, err := database.NewConnection(&cfg.Database)
		if err != nil {
			log.Fatalf("Failed to open history database: %v", err)
		}
		defer database.Close(db)
		if err := database.AutoMigrate(db); err != nil {
			log.Fatalf("Failed to migrate history database: %v", err)
		}
		history = persistence.NewGormPlanRunRepository(db)
	}

	server := httpapi.NewServer(cfg.Server, httpapi.OptionsFromConfig(cfg), recorder, history)

	errCh := make(chan error, 1)
	go func() { errCh <- server.Start() }()
	fmt.Printf("planning API listening on %s\n", cfg.Server.Address)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	case sig := <-stop:
		fmt.Printf("received %s, shutting down\n", sig)
		if err := server.Shutdown(context.Background()); err != nil {
			log.Fatalf("Shutdown failed: %v", err)
		}
	}
}
