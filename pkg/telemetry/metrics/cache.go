package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"ludum-hq/fate/pkg/config"
)

// CacheMetrics tracks formula cache traffic. It satisfies the cache
// package's Recorder interface so a cache can report directly into
// Prometheus.
//
// Metrics:
//   - ludum_fate_cache_hits_total: Cache hits by cache name
//   - ludum_fate_cache_misses_total: Cache misses by cache name
//   - ludum_fate_cache_evictions_total: Evictions by cache name
//   - ludum_fate_cache_entries: Current entries by cache name
type CacheMetrics struct {
	enabled        bool
	hitsTotal      *prometheus.CounterVec
	missesTotal    *prometheus.CounterVec
	evictionsTotal *prometheus.CounterVec
	entries        *prometheus.GaugeVec
}

// NewCacheMetrics creates and registers cache metrics with the provided
// registry.
func NewCacheMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *CacheMetrics {
	cm := &CacheMetrics{
		enabled: cfg.Enabled,

		hitsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "cache_hits_total",
				Help:      "Total number of formula cache hits",
			},
			[]string{"cache"},
		),

		missesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "cache_misses_total",
				Help:      "Total number of formula cache misses",
			},
			[]string{"cache"},
		),

		evictionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "cache_evictions_total",
				Help:      "Total number of formula cache evictions",
			},
			[]string{"cache"},
		),

		entries: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "cache_entries",
				Help:      "Current number of entries in the formula cache",
			},
			[]string{"cache"},
		),
	}

	registry.MustRegister(cm.hitsTotal, cm.missesTotal, cm.evictionsTotal, cm.entries)

	return cm
}

// RecordHit implements cache.Recorder.
func (cm *CacheMetrics) RecordHit(cache string) {
	if !cm.enabled {
		return
	}
	cm.hitsTotal.WithLabelValues(cache).Inc()
}

// RecordMiss implements cache.Recorder.
func (cm *CacheMetrics) RecordMiss(cache string) {
	if !cm.enabled {
		return
	}
	cm.missesTotal.WithLabelValues(cache).Inc()
}

// RecordEviction implements cache.Recorder.
func (cm *CacheMetrics) RecordEviction(cache string) {
	if !cm.enabled {
		return
	}
	cm.evictionsTotal.WithLabelValues(cache).Inc()
}

// SetEntries implements cache.Recorder.
func (cm *CacheMetrics) SetEntries(cache string, n int) {
	if !cm.enabled {
		return
	}
	cm.entries.WithLabelValues(cache).Set(float64(n))
}
