// Package observability holds the prometheus instrumentation of the gateway.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics aggregates the gateway's prometheus collectors.
type Metrics struct {
	Queries           *prometheus.CounterVec
	CacheHits         prometheus.Counter
	SimulationSeconds prometheus.Histogram
	ParticlesTotal    prometheus.Counter
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Queries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "aeon",
			Name:      "gateway_queries_total",
			Help:      "Gateway queries by outcome (ok, empty, invalid, error).",
		}, []string{"outcome"}),
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "aeon",
			Name:      "result_cache_hits_total",
			Help:      "Queries answered from the result cache.",
		}),
		SimulationSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "aeon",
			Name:      "simulation_duration_seconds",
			Help:      "Wall time of full Monte Carlo ensembles.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
		}),
		ParticlesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "aeon",
			Name:      "simulation_particles_total",
			Help:      "Particles simulated across all queries.",
		}),
	}

	reg.MustRegister(m.Queries, m.CacheHits, m.SimulationSeconds, m.ParticlesTotal)
	return m
}

// NewNop returns metrics backed by an unexported registry, for tests and
// callers that do not scrape.
func NewNop() *Metrics {
	return New(prometheus.NewRegistry())
}
