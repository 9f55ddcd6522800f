package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Resolution outcome label values.
const (
	OutcomeCache    = "cache"
	OutcomeFresh    = "fresh"
	OutcomeStale    = "stale"
	OutcomeIdentity = "identity"
	OutcomeError    = "error"
)

// Metrics covers the resolution pipeline. Constructed against an explicit
// Registerer so tests can use a private registry.
type Metrics struct {
	CacheHits        prometheus.Counter
	CacheMisses      prometheus.Counter
	ProviderRequests *prometheus.CounterVec
	Resolutions      *prometheus.CounterVec
	ResolveDuration  prometheus.Histogram
	HistoryPurged    prometheus.Counter
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		CacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "fx_cache_hits_total",
			Help: "Rate resolutions served from cache.",
		}),
		CacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Name: "fx_cache_misses_total",
			Help: "Rate resolutions that missed the cache.",
		}),
		ProviderRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "fx_provider_requests_total",
			Help: "Provider fetch attempts by provider and outcome.",
		}, []string{"provider", "outcome"}),
		Resolutions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "fx_resolutions_total",
			Help: "Rate resolutions by outcome (cache, fresh, stale, identity, error).",
		}, []string{"outcome"}),
		ResolveDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "fx_resolve_duration_seconds",
			Help:    "End-to-end rate resolution latency.",
			Buckets: prometheus.DefBuckets,
		}),
		HistoryPurged: factory.NewCounter(prometheus.CounterOpts{
			Name: "fx_history_purged_records_total",
			Help: "History records removed by the retention job.",
		}),
	}
}
