package config

import "time"

// PlannerConfig holds the optimization options recognized by the core.
type PlannerConfig struct {
	// Genetic algorithm parameters
	PopulationSize int     `mapstructure:"population_size" validate:"min=1"`
	Generations    int     `mapstructure:"generations" validate:"min=1"`
	CrossoverRate  float64 `mapstructure:"crossover_rate" validate:"min=0,max=1"`
	MutationRate   float64 `mapstructure:"mutation_rate" validate:"min=0,max=1"`
	TournamentSize int     `mapstructure:"tournament_size" validate:"min=1"`
	EliteCount     int     `mapstructure:"elite_count" validate:"min=0"`
	StaleLimit     int     `mapstructure:"stale_limit" validate:"min=1"`
	Seed           int64   `mapstructure:"seed"`

	// Wall-clock budget for one optimization run; zero disables it
	OptimizationBudget time.Duration `mapstructure:"optimization_budget" validate:"min=0"`

	// Number of fitness evaluator workers; zero means NumCPU
	Workers int `mapstructure:"workers" validate:"min=0"`

	// Route enumeration bounds
	MaxLegs int `mapstructure:"max_legs" validate:"min=1,max=8"`

	// Fraction of revenue lost as goodwill on a denied cargo
	DenialFactor float64 `mapstructure:"denial_factor" validate:"min=0,max=1"`

	// Low-priority knapsack scoring weights
	KnapsackWeights KnapsackWeightsConfig `mapstructure:"knapsack_weights"`
}

// KnapsackWeightsConfig holds the low-priority subset scoring weights.
type KnapsackWeightsConfig struct {
	Density     float64 `mapstructure:"density" validate:"min=0"`
	Priority    float64 `mapstructure:"priority" validate:"min=0"`
	Utilization float64 `mapstructure:"utilization" validate:"min=0"`
	Dwell       float64 `mapstructure:"dwell" validate:"min=0"`
}

// DisruptionConfig holds what-if analysis options.
type DisruptionConfig struct {
	// Absolute margin movement, in INR, that triggers a margin_change
	// alert; the relative 10% threshold applies on top of it
	MarginThreshold float64 `mapstructure:"margin_threshold" validate:"min=0"`
}
