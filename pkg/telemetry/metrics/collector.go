package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"ludum-hq/fate/pkg/config"
)

// Collector owns the Prometheus registry and all fate metric families.
// It is the single type components record through; when metrics are
// disabled every record call is a cheap no-op.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	formulaMetrics *FormulaMetrics
	libraryMetrics *LibraryMetrics
	cacheMetrics   *CacheMetrics
}

// NewCollector creates a metrics collector with the specified
// configuration and Prometheus registry. If registry is nil a fresh
// registry is used.
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	if cfg.Namespace == "" {
		cfg.Namespace = "ludum"
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = "fate"
	}

	c := &Collector{
		config:   cfg,
		registry: registry,
	}

	c.formulaMetrics = NewFormulaMetrics(cfg, registry)
	c.libraryMetrics = NewLibraryMetrics(cfg, registry)
	c.cacheMetrics = NewCacheMetrics(cfg, registry)

	return c
}

// RecordCompile records a formula compilation.
//
// Parameters:
//   - status: "success" or "error"
//   - duration: time spent tokenizing, parsing and validating
func (c *Collector) RecordCompile(status string, duration time.Duration) {
	if !c.config.Enabled {
		return
	}
	c.formulaMetrics.RecordCompile(status, duration)
}

// RecordExecution records one formula execution.
//
// Parameters:
//   - name: formula name, or "adhoc" for unnamed expressions
//   - duration: evaluation time
func (c *Collector) RecordExecution(name string, duration time.Duration) {
	if !c.config.Enabled {
		return
	}
	c.formulaMetrics.RecordExecution(name, duration)
}

// RecordLibraryLoad records a library load cycle.
//
// Parameters:
//   - loaded: number of formulas compiled successfully
//   - failed: number of definitions that failed to compile
func (c *Collector) RecordLibraryLoad(loaded, failed int) {
	if !c.config.Enabled {
		return
	}
	c.libraryMetrics.RecordLoad(loaded, failed)
}

// Cache returns the cache metrics recorder, suitable for wiring into a
// formula cache. It records nothing while metrics are disabled.
func (c *Collector) Cache() *CacheMetrics {
	return c.cacheMetrics
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
