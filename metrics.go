// FILE: bbconfig/metrics.go
package config

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metric result labels.
const (
	resultOK    = "ok"
	resultError = "error"
	resultHit   = "hit"
	resultMiss  = "miss"
)

// Metrics counts store activity. A nil *Metrics records nothing.
type Metrics struct {
	Loads        *prometheus.CounterVec
	MirrorPulls  *prometheus.CounterVec
	MirrorPushes *prometheus.CounterVec
	Lookups      *prometheus.CounterVec
}

// NewMetrics creates the store counters and registers them with reg.
// A nil reg creates unregistered counters.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Loads: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bbconfig",
			Name:      "loads_total",
			Help:      "Configuration table loads from the line source, by result.",
		}, []string{"result"}),
		MirrorPulls: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bbconfig",
			Name:      "mirror_pulls_total",
			Help:      "Snapshot pulls from the shared store, by result (hit, miss, error).",
		}, []string{"result"}),
		MirrorPushes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bbconfig",
			Name:      "mirror_pushes_total",
			Help:      "Snapshot pushes to the shared store, by result.",
		}, []string{"result"}),
		Lookups: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bbconfig",
			Name:      "lookups_total",
			Help:      "Top-level key lookups, by result.",
		}, []string{"result"}),
	}
}

func (m *Metrics) load(err error) {
	if m == nil {
		return
	}
	m.Loads.WithLabelValues(outcome(err)).Inc()
}

func (m *Metrics) pull(result string) {
	if m == nil {
		return
	}
	m.MirrorPulls.WithLabelValues(result).Inc()
}

func (m *Metrics) push(err error) {
	if m == nil {
		return
	}
	m.MirrorPushes.WithLabelValues(outcome(err)).Inc()
}

func (m *Metrics) lookup(err error) {
	if m == nil {
		return
	}
	m.Lookups.WithLabelValues(outcome(err)).Inc()
}

func outcome(err error) string {
	if err != nil {
		return resultError
	}
	return resultOK
}
