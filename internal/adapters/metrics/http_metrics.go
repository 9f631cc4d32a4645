package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// HTTPMetricsCollector records planning API request metrics
type HTTPMetricsCollector struct {
	requestDuration *prometheus.HistogramVec
	requestsTotal   *prometheus.CounterVec
}

// NewHTTPMetricsCollector creates a new HTTP metrics collector
func NewHTTPMetricsCollector() *HTTPMetricsCollector {
	return &HTTPMetricsCollector{
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request duration distribution",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.0, 5.0, 10.0, 30.0},
			},
			[]string{"path", "status"},
		),
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests by path and status",
			},
			[]string{"path", "status"},
		),
	}
}

// Register registers all HTTP metrics with the Prometheus registry
func (c *HTTPMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}
	for _, collector := range []prometheus.Collector{c.requestDuration, c.requestsTotal} {
		if err := Registry.Register(collector); err != nil {
			return err
		}
	}
	return nil
}

// statusRecorder captures the response status for metrics labeling
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Middleware wraps a handler and records duration and count per
// request. A nil collector passes the handler through untouched.
func (c *HTTPMetricsCollector) Middleware(next http.Handler) http.Handler {
	if c == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(recorder, r)

		status := strconv.Itoa(recorder.status)
		c.requestDuration.WithLabelValues(r.URL.Path, status).Observe(time.Since(start).Seconds())
		c.requestsTotal.WithLabelValues(r.URL.Path, status).Inc()
	})
}
