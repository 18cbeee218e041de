// Package metrics exposes Prometheus instrumentation for the merit engine
// and its HTTP surface.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector bundles the engine's metric vectors behind one registry
type Collector struct {
	Registry *prometheus.Registry

	MeritCalculations     prometheus.Counter
	RecommendationRuns    prometheus.Counter
	RecommendationSize    prometheus.Histogram
	RequestDuration       *prometheus.HistogramVec
	CacheHits             prometheus.Counter
	CacheMisses           prometheus.Counter
	SnapshotReloads       prometheus.Counter
	SnapshotRecordsLoaded prometheus.Gauge
}

// NewCollector registers every engine metric on a fresh registry
func NewCollector() *Collector {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Collector{
		Registry: registry,
		MeritCalculations: factory.NewCounter(prometheus.CounterOpts{
			Name: "pakuni_merit_calculations_total",
			Help: "Merit aggregate calculations served",
		}),
		RecommendationRuns: factory.NewCounter(prometheus.CounterOpts{
			Name: "pakuni_recommendation_runs_total",
			Help: "Full recommendation pipeline runs",
		}),
		RecommendationSize: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "pakuni_recommendation_candidates",
			Help:    "Candidate count per recommendation run",
			Buckets: []float64{0, 2, 5, 10, 15, 20, 30, 50},
		}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "pakuni_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "status"}),
		CacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "pakuni_cache_hits_total",
			Help: "Recommendation cache hits",
		}),
		CacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Name: "pakuni_cache_misses_total",
			Help: "Recommendation cache misses",
		}),
		SnapshotReloads: factory.NewCounter(prometheus.CounterOpts{
			Name: "pakuni_snapshot_reloads_total",
			Help: "Reference snapshot swaps performed",
		}),
		SnapshotRecordsLoaded: factory.NewGauge(prometheus.GaugeOpts{
			Name: "pakuni_snapshot_history_records",
			Help: "Historical merit records in the live snapshot",
		}),
	}
}
