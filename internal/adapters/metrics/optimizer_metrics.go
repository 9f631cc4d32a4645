package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// OptimizerMetricsCollector records genetic optimizer telemetry. It
// implements the optimizer's MetricsRecorder interface.
type OptimizerMetricsCollector struct {
	generationsTotal prometheus.Counter
	evaluationsTotal prometheus.Counter
	bestFitness      prometheus.Gauge
	runDuration      prometheus.Histogram
	runGenerations   prometheus.Histogram
}

// NewOptimizerMetricsCollector creates a new optimizer metrics collector
func NewOptimizerMetricsCollector() *OptimizerMetricsCollector {
	return &OptimizerMetricsCollector{
		generationsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "generations_total",
			Help:      "Total number of GA generations evaluated",
		}),
		evaluationsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "evaluations_total",
			Help:      "Total number of fitness evaluations",
		}),
		bestFitness: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "best_fitness",
			Help:      "Best fitness seen in the current optimization run",
		}),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "run_duration_seconds",
			Help:      "Optimization run duration distribution",
			Buckets:   []float64{0.1, 0.25, 0.5, 1.0, 2.0, 5.0, 10.0, 30.0, 60.0},
		}),
		runGenerations: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "run_generations",
			Help:      "Generations consumed per optimization run",
			Buckets:   []float64{1, 5, 10, 20, 40, 80, 120},
		}),
	}
}

// Register registers all optimizer metrics with the Prometheus registry
func (c *OptimizerMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}
	for _, collector := range []prometheus.Collector{
		c.generationsTotal,
		c.evaluationsTotal,
		c.bestFitness,
		c.runDuration,
		c.runGenerations,
	} {
		if err := Registry.Register(collector); err != nil {
			return err
		}
	}
	return nil
}

// RecordGeneration records one evaluated generation and the best
// fitness seen so far
func (c *OptimizerMetricsCollector) RecordGeneration(generation int, bestFitness float64) {
	c.generationsTotal.Inc()
	c.bestFitness.Set(bestFitness)
}

// RecordEvaluations records a batch of fitness evaluations
func (c *OptimizerMetricsCollector) RecordEvaluations(count int) {
	c.evaluationsTotal.Add(float64(count))
}

// RecordOptimizationRun records a completed optimization run
func (c *OptimizerMetricsCollector) RecordOptimizationRun(seconds float64, generations int) {
	c.runDuration.Observe(seconds)
	c.runGenerations.Observe(float64(generations))
}
