package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/rickgao/futures-data/internal/model"
)

const namespace = "futuresdata"

// Resolution outcomes.
const (
	OutcomeHit      = "hit"
	OutcomeResolved = "resolved"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

// Resolver holds the resolution metrics. A nil *Resolver is valid and
// records nothing.
type Resolver struct {
	resolves    *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	cacheClears prometheus.Counter
}

// NewResolver creates the resolution metrics and registers them on reg.
// A nil reg leaves them unregistered.
func NewResolver(reg prometheus.Registerer) (*Resolver, error) {
	m := &Resolver{
		resolves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resolve_total",
			Help:      "Read plan resolutions by source kind and outcome.",
		}, []string{"source", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "resolve_duration_seconds",
			Help:      "Latency of resolutions that consult the filesystem.",
			Buckets:   prometheus.ExponentialBuckets(0.00005, 4, 8),
		}, []string{"source"}),
		cacheClears: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_clears_total",
			Help:      "Resolver cache clears.",
		}),
	}

	if reg != nil {
		for _, c := range []prometheus.Collector{m.resolves, m.duration, m.cacheClears} {
			if err := reg.Register(c); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

// ObserveHit records a resolution served from cache.
func (m *Resolver) ObserveHit(kind model.SourceKind) {
	if m == nil {
		return
	}
	m.resolves.WithLabelValues(string(kind), OutcomeHit).Inc()
}

// ObserveResolve records a resolution that consulted the filesystem.
func (m *Resolver) ObserveResolve(kind model.SourceKind, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.resolves.WithLabelValues(string(kind), outcome).Inc()
	m.duration.WithLabelValues(string(kind)).Observe(elapsed.Seconds())
}

// ObserveCacheClear records one cache clear.
func (m *Resolver) ObserveCacheClear() {
	if m == nil {
		return
	}
	m.cacheClears.Inc()
}
