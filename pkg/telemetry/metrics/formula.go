package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"ludum-hq/fate/pkg/config"
)

// FormulaMetrics tracks compilation and execution of formulas.
//
// Metrics:
//   - ludum_fate_compiles_total: Total compilations by status
//   - ludum_fate_compile_duration_seconds: Compilation duration
//   - ludum_fate_executions_total: Total executions by formula name
//   - ludum_fate_execution_duration_seconds: Execution duration
type FormulaMetrics struct {
	compilesTotal     *prometheus.CounterVec
	compileDuration   prometheus.Histogram
	executionsTotal   *prometheus.CounterVec
	executionDuration *prometheus.HistogramVec
}

// NewFormulaMetrics creates and registers formula metrics with the
// provided registry.
func NewFormulaMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *FormulaMetrics {
	fm := &FormulaMetrics{
		compilesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "compiles_total",
				Help:      "Total number of formula compilations",
			},
			[]string{"status"},
		),

		compileDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "compile_duration_seconds",
				Help:      "Duration of formula compilation in seconds",
				// Compilation is a single parse pass (< 1ms typical)
				Buckets: prometheus.ExponentialBuckets(0.000001, 2, 12), // 1µs to 2ms
			},
		),

		executionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "executions_total",
				Help:      "Total number of formula executions",
			},
			[]string{"formula"},
		),

		executionDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "execution_duration_seconds",
				Help:      "Duration of formula execution in seconds",
				// Tree-walking evaluation should stay in the microseconds
				Buckets: prometheus.ExponentialBuckets(0.0000001, 4, 10), // 100ns to 26ms
			},
			[]string{"formula"},
		),
	}

	registry.MustRegister(
		fm.compilesTotal,
		fm.compileDuration,
		fm.executionsTotal,
		fm.executionDuration,
	)

	return fm
}

// RecordCompile records a formula compilation with its outcome.
func (fm *FormulaMetrics) RecordCompile(status string, duration time.Duration) {
	fm.compilesTotal.WithLabelValues(status).Inc()
	fm.compileDuration.Observe(duration.Seconds())
}

// RecordExecution records one formula execution.
func (fm *FormulaMetrics) RecordExecution(name string, duration time.Duration) {
	fm.executionsTotal.WithLabelValues(name).Inc()
	fm.executionDuration.WithLabelValues(name).Observe(duration.Seconds())
}

// LibraryMetrics tracks formula library load cycles.
//
// Metrics:
//   - ludum_fate_library_loads_total: Total library load cycles
//   - ludum_fate_library_formulas: Formulas in the current revision
//   - ludum_fate_library_load_failures: Definitions that failed to compile
//     in the current revision
type LibraryMetrics struct {
	loadsTotal   prometheus.Counter
	formulas     prometheus.Gauge
	loadFailures prometheus.Gauge
}

// NewLibraryMetrics creates and registers library metrics with the
// provided registry.
func NewLibraryMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *LibraryMetrics {
	lm := &LibraryMetrics{
		loadsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "library_loads_total",
				Help:      "Total number of library load cycles",
			},
		),

		formulas: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "library_formulas",
				Help:      "Number of formulas in the currently loaded revision",
			},
		),

		loadFailures: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "library_load_failures",
				Help:      "Number of definitions that failed to compile in the last load",
			},
		),
	}

	registry.MustRegister(lm.loadsTotal, lm.formulas, lm.loadFailures)

	return lm
}

// RecordLoad records one library load cycle.
func (lm *LibraryMetrics) RecordLoad(loaded, failed int) {
	lm.loadsTotal.Inc()
	lm.formulas.Set(float64(loaded))
	lm.loadFailures.Set(float64(failed))
}
