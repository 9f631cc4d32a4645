// Package httpapi serves the planning API: run a plan over inline CSV
// payloads, run the bundled sample, and inspect recent runs.
package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/rajivmehta/cargoplan-go/internal/adapters/metrics"
	"github.com/rajivmehta/cargoplan-go/internal/application/optimizer"
	"github.com/rajivmehta/cargoplan-go/internal/application/pipeline"
	"github.com/rajivmehta/cargoplan-go/internal/infrastructure/config"
)

// Server hosts the planning HTTP API.
type Server struct {
	cfg        config.ServerConfig
	options    pipeline.Options
	recorder   optimizer.MetricsRecorder
	history    pipeline.HistoryRepository
	limiter    *rate.Limiter
	httpServer *http.Server
}

// NewServer creates the API server. recorder and history may be nil.
func NewServer(
	cfg config.ServerConfig,
	options pipeline.Options,
	recorder optimizer.MetricsRecorder,
	history pipeline.HistoryRepository,
) *Server {
	s := &Server{
		cfg:      cfg,
		options:  options,
		recorder: recorder,
		history:  history,
		limiter:  rate.NewLimiter(rate.Limit(cfg.RateLimit.Requests), cfg.RateLimit.Burst),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/plan", s.handlePlan)
	mux.HandleFunc("POST /api/plan/sample", s.handleSample)
	mux.HandleFunc("GET /api/runs", s.handleRuns)
	mux.HandleFunc("GET /api/runs/{id}", s.handleRun)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	if cfg.Metrics.Enabled && metrics.IsEnabled() {
		mux.Handle("GET "+cfg.Metrics.Path, promhttp.HandlerFor(
			metrics.GetRegistry(), promhttp.HandlerOpts{},
		))
	}

	var handler http.Handler = mux
	if cfg.Metrics.Enabled {
		httpCollector := metrics.NewHTTPMetricsCollector()
		if err := httpCollector.Register(); err == nil {
			handler = httpCollector.Middleware(handler)
		}
	}

	s.httpServer = &http.Server{
		Addr:         cfg.Address,
		Handler:      handler,
		ReadTimeout:  cfg.RequestTimeout,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
	}
	return s
}

// Start serves until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests within the configured timeout.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.ShutdownTimeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}

// Handler exposes the routed handler for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}
