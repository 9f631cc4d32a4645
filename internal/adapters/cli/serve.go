package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rajivmehta/cargoplan-go/internal/adapters/httpapi"
	"github.com/rajivmehta/cargoplan-go/internal/adapters/metrics"
	"github.com/rajivmehta/cargoplan-go/internal/application/optimizer"
	"github.com/rajivmehta/cargoplan-go/internal/infrastructure/config"
	"github.com/rajivmehta/cargoplan-go/internal/infrastructure/database"
)

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	var history bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the planning HTTP API",
		Long: `Serve starts the planning HTTP API: POST /api/plan accepts
inline CSV documents plus an optional disruption scenario, POST
/api/plan/sample runs the bundled dataset, GET /api/runs lists the run
history, and the Prometheus endpoint exposes optimizer metrics when
enabled.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.MustLoadConfig(configPath)

			var recorder optimizer.MetricsRecorder
			if cfg.Server.Metrics.Enabled {
				metrics.InitRegistry()
				collector := metrics.NewOptimizerMetricsCollector()
				if err := collector.Register(); err != nil {
					return fmt.Errorf("registering optimizer metrics: %w", err)
				}
				recorder = collector
			}

			repo, db, err := openHistory(cfg, history)
			if err != nil {
				return err
			}
			if db != nil {
				defer database.Close(db)
			}

			server := httpapi.NewServer(cfg.Server, plannerOptions(cfg), recorder, repo)

			errCh := make(chan error, 1)
			go func() { errCh <- server.Start() }()
			fmt.Printf("planning API listening on %s\n", cfg.Server.Address)

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

			select {
			case err := <-errCh:
				return err
			case sig := <-stop:
				fmt.Printf("received %s, shutting down\n", sig)
				return server.Shutdown(context.Background())
			}
		},
	}

	cmd.Flags().BoolVar(&history, "history", true, "Record runs in the plan-run history database")
	return cmd
}
