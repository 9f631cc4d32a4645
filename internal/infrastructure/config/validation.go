package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator wraps go-playground/validator with the planner's
// cross-field rules registered.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a validator instance for the configuration tree.
func NewValidator() *Validator {
	v := validator.New()
	v.RegisterStructValidation(plannerStructRules, PlannerConfig{})
	return &Validator{validate: v}
}

// plannerStructRules enforces constraints the per-field tags cannot
// express. The GA degenerates when elitism or the tournament covers
// the whole population, and the knapsack scorer needs at least one
// positive weight or every candidate subset ties at zero.
func plannerStructRules(sl validator.StructLevel) {
	cfg := sl.Current().Interface().(PlannerConfig)
	if cfg.EliteCount >= cfg.PopulationSize {
		sl.ReportError(cfg.EliteCount, "elite_count", "EliteCount", "lt_population", "")
	}
	if cfg.TournamentSize > cfg.PopulationSize {
		sl.ReportError(cfg.TournamentSize, "tournament_size", "TournamentSize", "lte_population", "")
	}
	weights := cfg.KnapsackWeights
	if weights.Density+weights.Priority+weights.Utilization+weights.Dwell <= 0 {
		sl.ReportError(weights, "knapsack_weights", "KnapsackWeights", "positive_weight", "")
	}
}

// Validate validates a struct using its validation tags plus the
// registered planner rules.
func (v *Validator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return v.formatValidationError(err)
	}
	return nil
}

// formatValidationError flattens validator errors into one readable
// message per offending field.
func (v *Validator) formatValidationError(err error) error {
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	messages := make([]string, 0, len(validationErrs))
	for _, e := range validationErrs {
		messages = append(messages, fmt.Sprintf(
			"field '%s' failed rule '%s' (value: '%v')", e.Field(), e.Tag(), e.Value(),
		))
	}
	return fmt.Errorf("validation failed:\n  %s", strings.Join(messages, "\n  "))
}

// ValidateConfig validates the entire configuration
func ValidateConfig(cfg *Config) error {
	v := NewValidator()
	return v.Validate(cfg)
}
