// Package pipeline orchestrates a full planning run: route enumeration,
// genetic optimization, what-if disruption analysis and output assembly.
package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rajivmehta/cargoplan-go/internal/application/common"
	"github.com/rajivmehta/cargoplan-go/internal/application/disruption"
	"github.com/rajivmehta/cargoplan-go/internal/application/optimizer"
	"github.com/rajivmehta/cargoplan-go/internal/domain/planning"
	"github.com/rajivmehta/cargoplan-go/internal/domain/routing"
	"github.com/rajivmehta/cargoplan-go/internal/domain/selection"
	"github.com/rajivmehta/cargoplan-go/pkg/utils"
)

// Options carry the planner configuration surface.
type Options struct {
	Params          optimizer.Params
	Weights         selection.Weights
	DenialFactor    float64
	MaxLegs         int
	MarginThreshold float64
}

// DefaultOptions returns the standard planner configuration.
func DefaultOptions() Options {
	return Options{
		Params:          optimizer.DefaultParams(),
		Weights:         selection.DefaultWeights(),
		DenialFactor:    routing.DefaultDenialFactor,
		MaxLegs:         routing.DefaultMaxLegs,
		MarginThreshold: disruption.DefaultMarginThreshold,
	}
}

// Inputs are the loaded planning data for one run.
type Inputs struct {
	Flights planning.FlightMap
	Cargo   planning.CargoMap
	Rules   *planning.RuleIndex
	Events  []disruption.Event
}

// PlanResult is the outcome of one pipeline run. Final is the plan the
// outputs describe: the disrupted scenario when events were supplied,
// the baseline otherwise.
type PlanResult struct {
	RunID    string
	Baseline *optimizer.Result
	Final    *optimizer.SimulationResult
	Flights  planning.FlightMap
	Alerts   []planning.Alert
	Payload  *Payload
}

// Planner wires the planning components into a single entry point.
type Planner struct {
	options Options
	metrics optimizer.MetricsRecorder
	history HistoryRepository
}

// NewPlanner creates a planner. metrics and history may be nil.
func NewPlanner(options Options, metrics optimizer.MetricsRecorder, history HistoryRepository) *Planner {
	if options.MaxLegs <= 0 {
		options.MaxLegs = routing.DefaultMaxLegs
	}
	if options.DenialFactor <= 0 {
		options.DenialFactor = routing.DefaultDenialFactor
	}
	return &Planner{options: options, metrics: metrics, history: history}
}

// Run executes the full pipeline on the given inputs.
func (p *Planner) Run(ctx context.Context, inputs Inputs) (*PlanResult, error) {
	logger := common.LoggerFromContext(ctx)
	started := time.Now()

	baseline := p.optimize(ctx, inputs.Flights, inputs.Cargo, inputs.Rules, p.options.Params.Seed)
	logger.Log("info", "baseline optimized", map[string]interface{}{
		"total_margin": baseline.Simulation.TotalMargin,
		"generations":  baseline.Generations,
	})

	winning := baseline
	engine := disruption.NewEngine(p.options.MarginThreshold)
	outcome, err := engine.Run(ctx, baseline.Simulation, inputs.Flights, inputs.Events,
		func(ctx context.Context, flights planning.FlightMap) (*optimizer.SimulationResult, error) {
			scenario := p.optimize(ctx, flights, inputs.Cargo, inputs.Rules,
				p.options.Params.Seed^disruption.ScenarioSeedSalt)
			winning = scenario
			return scenario.Simulation, nil
		})
	if err != nil {
		return nil, err
	}

	alerts := append(append([]planning.Alert{}, outcome.Scenario.Alerts...), outcome.Alerts...)
	payload := BuildPayload(outcome.Scenario, outcome.Flights, alerts,
		p.options.Params.Seed, winning.Generations, winning.Evaluations)

	result := &PlanResult{
		RunID:    utils.GenerateRunID("plan", started),
		Baseline: baseline,
		Final:    outcome.Scenario,
		Flights:  outcome.Flights,
		Alerts:   alerts,
		Payload:  payload,
	}

	p.record(ctx, result, len(inputs.Events))
	logger.Log("info", "plan run complete", map[string]interface{}{
		"run_id":       result.RunID,
		"total_margin": result.Final.TotalMargin,
		"elapsed_ms":   time.Since(started).Milliseconds(),
	})
	return result, nil
}

// optimize runs enumeration, catalog build and the GA for one flight
// set and seed.
func (p *Planner) optimize(
	ctx context.Context,
	flights planning.FlightMap,
	cargo planning.CargoMap,
	rules *planning.RuleIndex,
	seed int64,
) *optimizer.Result {
	scorer := routing.NewScorer(rules, p.options.DenialFactor)
	enumerator := routing.NewEnumerator(flights, rules, scorer, p.options.MaxLegs)
	catalog := routing.BuildCatalog(cargo, enumerator)
	selector := selection.NewSelector(p.options.Weights)
	simulator := optimizer.NewSimulator(flights, cargo, catalog, selector, p.options.DenialFactor)

	params := p.options.Params
	params.Seed = seed
	return optimizer.NewOptimizer(params, catalog, simulator, p.metrics).Run(ctx)
}

// record persists the run trace. History failures are logged and
// swallowed; a plan run never fails on telemetry.
func (p *Planner) record(ctx context.Context, result *PlanResult, eventCount int) {
	if p.history == nil {
		return
	}
	delivered, rolled, denied := result.Final.StatusCounts()
	summaryJSON, err := json.Marshal(result.Payload.Summary)
	if err != nil {
		summaryJSON = []byte("{}")
	}
	record := &PlanRecord{
		ID:          result.RunID,
		CreatedAt:   time.Now().UTC(),
		Seed:        p.options.Params.Seed,
		TotalMargin: result.Final.TotalMargin,
		Delivered:   delivered,
		Rolled:      rolled,
		Denied:      denied,
		EventCount:  eventCount,
		AlertCount:  len(result.Alerts),
		SummaryJSON: string(summaryJSON),
	}
	if err := p.history.Save(ctx, record); err != nil {
		common.LoggerFromContext(ctx).Log("warn", "failed to persist plan run", map[string]interface{}{
			"run_id": result.RunID,
			"error":  err.Error(),
		})
	}
}
