package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics bundles the service's Prometheus collectors.
type Metrics struct {
	CacheHits      prometheus.Counter
	CacheMisses    prometheus.Counter
	FetchTotal     prometheus.Counter
	FetchFailures  prometheus.Counter
	MutationsTotal *prometheus.CounterVec
}

// New registers the collectors on reg. Pass prometheus.DefaultRegisterer
// in production; tests use a fresh registry.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		CacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "availability_cache_hits_total",
			Help: "Number of availability reads served from the snapshot cache.",
		}),
		CacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Name: "availability_cache_misses_total",
			Help: "Number of availability reads that ran the full pipeline.",
		}),
		FetchTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "calendar_fetch_total",
			Help: "Number of per-room calendar fetch attempts.",
		}),
		FetchFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "calendar_fetch_failures_total",
			Help: "Number of per-room calendar fetches that failed.",
		}),
		MutationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "reservation_mutations_total",
			Help: "Reservation mutations by action and outcome.",
		}, []string{"action", "outcome"}),
	}
}
