package config

import "time"

// SetDefaults sets default values for all configuration fields
func SetDefaults(cfg *Config) {
	// Planner defaults
	if cfg.Planner.PopulationSize == 0 {
		cfg.Planner.PopulationSize = 80
	}
	if cfg.Planner.Generations == 0 {
		cfg.Planner.Generations = 120
	}
	if cfg.Planner.CrossoverRate == 0 {
		cfg.Planner.CrossoverRate = 0.8
	}
	if cfg.Planner.MutationRate == 0 {
		cfg.Planner.MutationRate = 0.15
	}
	if cfg.Planner.TournamentSize == 0 {
		cfg.Planner.TournamentSize = 3
	}
	if cfg.Planner.EliteCount == 0 {
		cfg.Planner.EliteCount = 1
	}
	if cfg.Planner.StaleLimit == 0 {
		cfg.Planner.StaleLimit = 20
	}
	if cfg.Planner.Seed == 0 {
		cfg.Planner.Seed = 42
	}
	if cfg.Planner.MaxLegs == 0 {
		cfg.Planner.MaxLegs = 4
	}
	if cfg.Planner.DenialFactor == 0 {
		cfg.Planner.DenialFactor = 0.25
	}
	if cfg.Planner.KnapsackWeights == (KnapsackWeightsConfig{}) {
		cfg.Planner.KnapsackWeights = KnapsackWeightsConfig{
			Density:     1.0,
			Priority:    0.5,
			Utilization: 0.3,
			Dwell:       0.05,
		}
	}

	// Disruption defaults
	if cfg.Disruption.MarginThreshold == 0 {
		cfg.Disruption.MarginThreshold = 5000
	}

	// Server defaults
	if cfg.Server.Address == "" {
		cfg.Server.Address = "localhost:8080"
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = 60 * time.Second
	}
	if cfg.Server.RateLimit.Requests == 0 {
		cfg.Server.RateLimit.Requests = 2
	}
	if cfg.Server.RateLimit.Burst == 0 {
		cfg.Server.RateLimit.Burst = 5
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10 * time.Second
	}
	if cfg.Server.Metrics.Path == "" {
		cfg.Server.Metrics.Path = "/metrics"
	}

	// Database defaults
	if cfg.Database.Type == "" {
		cfg.Database.Type = "sqlite"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "cargoplan"
	}
	if cfg.Database.Name == "" {
		cfg.Database.Name = "cargoplan"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "cargoplan.db"
	}
	if cfg.Database.Pool.MaxOpen == 0 {
		cfg.Database.Pool.MaxOpen = 25
	}
	if cfg.Database.Pool.MaxIdle == 0 {
		cfg.Database.Pool.MaxIdle = 5
	}
	if cfg.Database.Pool.MaxLifetime == 0 {
		cfg.Database.Pool.MaxLifetime = 5 * time.Minute
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}
}
