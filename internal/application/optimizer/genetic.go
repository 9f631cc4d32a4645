package optimizer

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/rajivmehta/cargoplan-go/internal/application/common"
	"github.com/rajivmehta/cargoplan-go/internal/domain/planning"
	"github.com/rajivmehta/cargoplan-go/internal/domain/routing"
)

// Params configure the genetic optimizer.
type Params struct {
	PopulationSize int
	Generations    int
	CrossoverRate  float64
	MutationRate   float64
	TournamentSize int
	EliteCount     int
	StaleLimit     int
	Seed           int64
	Budget         time.Duration
	Workers        int
}

// DefaultParams returns the standard optimizer parameters.
func DefaultParams() Params {
	return Params{
		PopulationSize: 80,
		Generations:    120,
		CrossoverRate:  0.8,
		MutationRate:   0.15,
		TournamentSize: 3,
		EliteCount:     1,
		StaleLimit:     20,
		Seed:           42,
	}
}

// onTimeBias is the probability of seeding a gene with an on-time
// option during initialization when the cargo has any.
const onTimeBias = 0.7

// complexityPenaltyPerLeg nudges fitness toward simpler plans between
// margin-equal individuals. Small enough to never outweigh real money.
const complexityPenaltyPerLeg = 1e-3

// Result is the outcome of one optimization run.
type Result struct {
	Simulation  *SimulationResult
	Genes       []int
	Fitness     float64
	Generations int
	Evaluations int
	Alerts      []planning.Alert
}

// MetricsRecorder receives optimizer telemetry. Implementations must be
// safe to skip: a nil recorder disables metrics.
type MetricsRecorder interface {
	RecordGeneration(generation int, bestFitness float64)
	RecordEvaluations(count int)
	RecordOptimizationRun(seconds float64, generations int)
}

// Optimizer searches the space of per-cargo route choices with a
// seeded genetic algorithm. All randomness flows from the single seed;
// runs with identical inputs and seed produce identical output.
type Optimizer struct {
	params    Params
	catalog   *routing.Catalog
	simulator *Simulator
	metrics   MetricsRecorder
}

// NewOptimizer creates an optimizer over a route catalog.
func NewOptimizer(params Params, catalog *routing.Catalog, simulator *Simulator, metrics MetricsRecorder) *Optimizer {
	if params.PopulationSize <= 0 {
		params.PopulationSize = DefaultParams().PopulationSize
	}
	if params.Generations <= 0 {
		params.Generations = DefaultParams().Generations
	}
	if params.TournamentSize <= 0 {
		params.TournamentSize = DefaultParams().TournamentSize
	}
	if params.EliteCount <= 0 {
		params.EliteCount = DefaultParams().EliteCount
	}
	if params.StaleLimit <= 0 {
		params.StaleLimit = DefaultParams().StaleLimit
	}
	return &Optimizer{params: params, catalog: catalog, simulator: simulator, metrics: metrics}
}

// Run executes the GA until the generation budget, the staleness limit,
// the wall-clock budget or a context cancel ends it. It always returns
// the best plan found so far.
func (o *Optimizer) Run(ctx context.Context) *Result {
	logger := common.LoggerFromContext(ctx)
	started := time.Now()
	rng := rand.New(rand.NewSource(o.params.Seed))

	result := &Result{}
	if o.catalog.Len() == 0 {
		result.Simulation = o.simulator.Run(nil)
		return result
	}

	var deadline time.Time
	if o.params.Budget > 0 {
		deadline = started.Add(o.params.Budget)
	}

	population := o.initialize(rng)
	fitness := make([]float64, len(population))
	evaluations := make([]*SimulationResult, len(population))

	bestFitness := 0.0
	var bestGenes []int
	haveBest := false
	stale := 0

	for generation := 0; generation < o.params.Generations; generation++ {
		o.evaluateAll(population, fitness, evaluations)
		result.Evaluations += len(population)
		result.Generations = generation + 1
		if o.metrics != nil {
			o.metrics.RecordEvaluations(len(population))
		}

		improved := false
		for i := range population {
			if !haveBest || fitness[i] > bestFitness {
				bestFitness = fitness[i]
				bestGenes = cloneGenes(population[i])
				haveBest = true
				improved = true
			}
		}
		if improved {
			stale = 0
		} else {
			stale++
		}

		if o.metrics != nil {
			o.metrics.RecordGeneration(generation, bestFitness)
		}
		logger.Log("debug", "generation evaluated", map[string]interface{}{
			"generation":   generation,
			"best_fitness": bestFitness,
			"stale":        stale,
		})

		if stale >= o.params.StaleLimit {
			break
		}
		if ctx.Err() != nil {
			break
		}
		if !deadline.IsZero() && time.Now().After(deadline) {
			result.Alerts = append(result.Alerts, planning.NewAlert(
				planning.AlertPartialOptimization,
				planning.SeverityInfo,
				fmt.Sprintf("optimization budget exhausted after %d generations; best plan so far returned", generation+1),
			))
			break
		}
		if generation == o.params.Generations-1 {
			break
		}

		population = o.breed(population, fitness, rng)
	}

	// Re-simulate the winner to materialize its assignment. The
	// simulation is pure, so this reproduces the evaluated result.
	result.Genes = bestGenes
	result.Fitness = bestFitness
	result.Simulation = o.simulator.Run(bestGenes)
	result.Simulation.Alerts = append(result.Simulation.Alerts, result.Alerts...)

	if o.metrics != nil {
		o.metrics.RecordOptimizationRun(time.Since(started).Seconds(), result.Generations)
	}
	return result
}

// initialize seeds the population, biasing genes toward on-time route
// options when the cargo has any.
func (o *Optimizer) initialize(rng *rand.Rand) [][]int {
	population := make([][]int, o.params.PopulationSize)
	for p := range population {
		genes := make([]int, o.catalog.Len())
		for i := range genes {
			options := o.catalog.OptionsAt(i)
			onTime := o.catalog.OnTimeIndexes(i)
			if len(onTime) > 0 && rng.Float64() < onTimeBias {
				genes[i] = onTime[rng.Intn(len(onTime))]
			} else {
				genes[i] = rng.Intn(len(options))
			}
		}
		population[p] = genes
	}
	return population
}

// breed produces the next generation: elites pass through unchanged,
// the rest come from tournament selection, single-point crossover and
// per-gene mutation.
func (o *Optimizer) breed(population [][]int, fitness []float64, rng *rand.Rand) [][]int {
	next := make([][]int, 0, len(population))

	eliteIdx := 0
	for i := 1; i < len(population); i++ {
		if fitness[i] > fitness[eliteIdx] {
			eliteIdx = i
		}
	}
	for e := 0; e < o.params.EliteCount && len(next) < len(population); e++ {
		next = append(next, cloneGenes(population[eliteIdx]))
	}

	for len(next) < len(population) {
		parentA := o.tournament(population, fitness, rng)
		parentB := o.tournament(population, fitness, rng)
		childA, childB := o.crossover(parentA, parentB, rng)
		o.mutate(childA, rng)
		o.mutate(childB, rng)
		next = append(next, childA)
		if len(next) < len(population) {
			next = append(next, childB)
		}
	}
	return next
}

// tournament draws k individuals uniformly and returns a copy of the
// fittest; the earliest draw wins ties.
func (o *Optimizer) tournament(population [][]int, fitness []float64, rng *rand.Rand) []int {
	best := rng.Intn(len(population))
	for k := 1; k < o.params.TournamentSize; k++ {
		contender := rng.Intn(len(population))
		if fitness[contender] > fitness[best] {
			best = contender
		}
	}
	return cloneGenes(population[best])
}

// crossover swaps suffixes at a uniform locus with probability
// CrossoverRate; otherwise returns untouched copies.
func (o *Optimizer) crossover(parentA, parentB []int, rng *rand.Rand) ([]int, []int) {
	childA := cloneGenes(parentA)
	childB := cloneGenes(parentB)
	if len(parentA) <= 1 || rng.Float64() >= o.params.CrossoverRate {
		return childA, childB
	}
	point := 1 + rng.Intn(len(parentA)-1)
	for i := point; i < len(parentA); i++ {
		childA[i], childB[i] = parentB[i], parentA[i]
	}
	return childA, childB
}

// mutate resamples each gene independently with probability
// MutationRate from that cargo's option list.
func (o *Optimizer) mutate(genes []int, rng *rand.Rand) {
	for i := range genes {
		if rng.Float64() < o.params.MutationRate {
			genes[i] = rng.Intn(len(o.catalog.OptionsAt(i)))
		}
	}
}

// fitnessOf scores a simulation: total margin less a tiny complexity
// penalty per leg so margin-equal plans prefer fewer legs.
func fitnessOf(result *SimulationResult) float64 {
	legs := 0
	for _, assignment := range result.Assignments {
		legs += len(assignment.Route.Legs)
	}
	return result.TotalMargin - complexityPenaltyPerLeg*float64(legs)
}

func cloneGenes(genes []int) []int {
	cloned := make([]int, len(genes))
	copy(cloned, genes)
	return cloned
}
