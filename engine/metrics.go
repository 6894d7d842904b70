package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "primegrid"

// Metrics exports the engine's progress counters. All fields are updated on
// the Record path and safe for concurrent use.
type Metrics struct {
	TasksCompleted prometheus.Counter
	PrimesFound    prometheus.Counter
	WorkersActive  prometheus.Gauge
	TaskSeconds    prometheus.Histogram
}

// NewMetrics registers the engine metrics with reg and returns them.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		TasksCompleted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "tasks_completed_total",
			Help:      "Number of task results recorded.",
		}),
		PrimesFound: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "primes_found_total",
			Help:      "Number of primes found across all completed tasks.",
		}),
		WorkersActive: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "workers_active",
			Help:      "Workers currently computing a task.",
		}),
		TaskSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "task_seconds",
			Help:      "Wall-clock time spent computing one task.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 14),
		}),
	}
}
