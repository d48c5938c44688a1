package provisioning

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/imamik/rlcluster/internal/platform"
)

// Operation results used as the result label.
const (
	ResultSuccess  = "success"
	ResultNotFound = "not_found"
	ResultError    = "error"
)

// Metrics records phase durations and platform operation outcomes in a
// private registry.
type Metrics struct {
	registry      *prometheus.Registry
	phaseDuration *prometheus.HistogramVec
	operations    *prometheus.CounterVec
}

// NewMetrics creates and registers the provisioning metrics.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		phaseDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "rlcluster",
				Name:      "phase_duration_seconds",
				Help:      "Duration of provisioning phases in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.1, 2, 12), // 100ms to ~3.4m
			},
			[]string{"phase"},
		),
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "rlcluster",
				Name:      "operations_total",
				Help:      "Total number of platform operations by operation and result",
			},
			[]string{"op", "result"},
		),
	}
	m.registry.MustRegister(m.phaseDuration, m.operations)
	return m
}

// ObservePhase records the duration of a phase.
func (m *Metrics) ObservePhase(phase string, d time.Duration) {
	m.phaseDuration.WithLabelValues(phase).Observe(d.Seconds())
}

// RecordOperation counts the outcome of a platform operation.
func (m *Metrics) RecordOperation(op string, err error) {
	m.operations.WithLabelValues(op, resultOf(err)).Inc()
}

// Registry returns the registry holding the metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes the metrics in the text exposition format.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}

func resultOf(err error) string {
	switch {
	case err == nil:
		return ResultSuccess
	case platform.IsNotFound(err):
		return ResultNotFound
	default:
		return ResultError
	}
}
