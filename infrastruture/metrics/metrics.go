// Package metrics exposes traversal activity as Prometheus metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Traversal collects counters for traversal sessions and runs.
type Traversal struct {
	registry       *prometheus.Registry
	stepsTotal     prometheus.Counter
	runsTotal      *prometheus.CounterVec
	runSteps       prometheus.Histogram
	activeSessions prometheus.Gauge
}

// NewTraversal registers the traversal metrics on a fresh registry, next to
// the Go runtime and process collectors.
func NewTraversal() *Traversal {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Traversal{
		registry: reg,
		stepsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "maze_traversal_steps_total",
			Help: "Total traversal steps taken across all sessions",
		}),
		runsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "maze_traversal_runs_total",
			Help: "Finished traversal runs by outcome",
		}, []string{"outcome"}),
		runSteps: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "maze_traversal_run_steps",
			Help:    "Number of steps a finished run took",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		}),
		activeSessions: factory.NewGauge(prometheus.GaugeOpts{
			Name: "maze_traversal_active_sessions",
			Help: "Traversal sessions currently open",
		}),
	}
}

// StepTaken counts one engine step.
func (t *Traversal) StepTaken() {
	t.stepsTotal.Inc()
}

// RunFinished records a halted run.
func (t *Traversal) RunFinished(outcome string, steps int) {
	t.runsTotal.WithLabelValues(outcome).Inc()
	t.runSteps.Observe(float64(steps))
}

// SessionOpened increments the active session gauge.
func (t *Traversal) SessionOpened() {
	t.activeSessions.Inc()
}

// SessionClosed decrements the active session gauge.
func (t *Traversal) SessionClosed() {
	t.activeSessions.Dec()
}

// Handler serves the registry in the Prometheus exposition format.
func (t *Traversal) Handler() http.Handler {
	return promhttp.HandlerFor(t.registry, promhttp.HandlerOpts{})
}
