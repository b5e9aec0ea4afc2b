// Package metrics holds the Prometheus collectors for the escrow engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics aggregates the engine's collectors. A nil *Metrics is a valid
// no-op receiver so tests can skip registration entirely.
type Metrics struct {
	Transitions   *prometheus.CounterVec
	SweepBatches  prometheus.Counter
	SweepOutcomes *prometheus.CounterVec
}

// New registers the collectors with reg and returns them.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		Transitions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "rekber",
				Subsystem: "escrow",
				Name:      "transitions_total",
				Help:      "Transition attempts by action and result",
			},
			[]string{"action", "result"},
		),
		SweepBatches: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: "rekber",
				Subsystem: "escrow",
				Name:      "sweep_batches_total",
				Help:      "Auto-completion sweep runs",
			},
		),
		SweepOutcomes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "rekber",
				Subsystem: "escrow",
				Name:      "sweep_outcomes_total",
				Help:      "Per-record auto-completion outcomes",
			},
			[]string{"result"},
		),
	}
}

// ObserveTransition counts one transition attempt.
func (m *Metrics) ObserveTransition(action, result string) {
	if m == nil {
		return
	}

	m.Transitions.WithLabelValues(action, result).Inc()
}

// ObserveSweep counts one sweep batch and its per-record outcomes.
func (m *Metrics) ObserveSweep(completed, failed int) {
	if m == nil {
		return
	}

	m.SweepBatches.Inc()
	m.SweepOutcomes.WithLabelValues("completed").Add(float64(completed))
	m.SweepOutcomes.WithLabelValues("failed").Add(float64(failed))
}
