package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PropagationMetrics records metadata for branch availability walks.
type PropagationMetrics struct {
	duration *prometheus.HistogramVec
	visited  *prometheus.CounterVec
	skipped  *prometheus.CounterVec
	runs     *prometheus.CounterVec
}

// NewPropagationMetrics registers the propagation metrics on the provided registerer.
func NewPropagationMetrics(reg prometheus.Registerer) *PropagationMetrics {
	if reg == nil {
		return &PropagationMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "availability_propagation_duration_seconds",
		Help:    "Duration of availability propagation walks in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"result"})
	visited := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "availability_propagation_nodes_visited",
		Help: "Graph nodes visited during propagation walks.",
	}, []string{"kind"})
	skipped := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "availability_propagation_nodes_skipped",
		Help: "Dangling references skipped during propagation walks.",
	}, []string{"kind"})
	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "availability_propagation_runs",
		Help: "Propagation walk executions.",
	}, []string{"result"})
	reg.MustRegister(duration, visited, skipped, runs)
	return &PropagationMetrics{
		duration: duration,
		visited:  visited,
		skipped:  skipped,
		runs:     runs,
	}
}

// ObserveDuration records the walk duration for the given result label.
func (p *PropagationMetrics) ObserveDuration(result string, duration time.Duration) {
	if p == nil || p.duration == nil {
		return
	}
	p.duration.WithLabelValues(normalizeLabel(result)).Observe(duration.Seconds())
}

// IncVisited increments the visited counter for the node kind.
func (p *PropagationMetrics) IncVisited(kind string) {
	if p == nil || p.visited == nil {
		return
	}
	p.visited.WithLabelValues(normalizeLabel(kind)).Inc()
}

// IncSkipped increments the skipped counter for the node kind.
func (p *PropagationMetrics) IncSkipped(kind string) {
	if p == nil || p.skipped == nil {
		return
	}
	p.skipped.WithLabelValues(normalizeLabel(kind)).Inc()
}

// IncRun increments the run counter for the given result label.
func (p *PropagationMetrics) IncRun(result string) {
	if p == nil || p.runs == nil {
		return
	}
	p.runs.WithLabelValues(normalizeLabel(result)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
