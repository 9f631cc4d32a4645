package httpapi

import (
	"github.com/rajivmehta/cargoplan-go/internal/application/optimizer"
	"github.com/rajivmehta/cargoplan-go/internal/application/pipeline"
	"github.com/rajivmehta/cargoplan-go/internal/domain/selection"
	"github.com/rajivmehta/cargoplan-go/internal/infrastructure/config"
)

// OptionsFromConfig maps configuration onto pipeline options, shared by
// the serve command and the standalone server binary.
func OptionsFromConfig(cfg *config.Config) pipeline.Options {
	return pipeline.Options{
		Params: optimizer.Params{
			PopulationSize: cfg.Planner.PopulationSize,
			Generations:    cfg.Planner.Generations,
			CrossoverRate:  cfg.Planner.CrossoverRate,
			MutationRate:   cfg.Planner.MutationRate,
			TournamentSize: cfg.Planner.TournamentSize,
			EliteCount:     cfg.Planner.EliteCount,
			StaleLimit:     cfg.Planner.StaleLimit,
			Seed:           cfg.Planner.Seed,
			Budget:         cfg.Planner.OptimizationBudget,
			Workers:        cfg.Planner.Workers,
		},
		Weights: selection.Weights{
			Density:     cfg.Planner.KnapsackWeights.Density,
			Priority:    cfg.Planner.KnapsackWeights.Priority,
			Utilization: cfg.Planner.KnapsackWeights.Utilization,
			Dwell:       cfg.Planner.KnapsackWeights.Dwell,
		},
		DenialFactor:    cfg.Planner.DenialFactor,
		MaxLegs:         cfg.Planner.MaxLegs,
		MarginThreshold: cfg.Disruption.MarginThreshold,
	}
}
