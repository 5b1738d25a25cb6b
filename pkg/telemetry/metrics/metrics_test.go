package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"ludum-hq/fate/pkg/config"
)

func testConfig() *config.MetricsConfig {
	return &config.MetricsConfig{
		Enabled:   true,
		Namespace: "ludum",
		Subsystem: "fate",
	}
}

func TestCollector_RecordCompile(t *testing.T) {
	c := NewCollector(testConfig(), nil)

	c.RecordCompile("success", 50*time.Microsecond)
	c.RecordCompile("success", 80*time.Microsecond)
	c.RecordCompile("error", 10*time.Microsecond)

	got := testutil.ToFloat64(c.formulaMetrics.compilesTotal.WithLabelValues("success"))
	if got != 2 {
		t.Errorf("compiles_total{status=success} = %v, want 2", got)
	}
	got = testutil.ToFloat64(c.formulaMetrics.compilesTotal.WithLabelValues("error"))
	if got != 1 {
		t.Errorf("compiles_total{status=error} = %v, want 1", got)
	}
}

func TestCollector_RecordExecution(t *testing.T) {
	c := NewCollector(testConfig(), nil)

	c.RecordExecution("damage", 2*time.Microsecond)
	c.RecordExecution("damage", 3*time.Microsecond)
	c.RecordExecution("adhoc", 1*time.Microsecond)

	got := testutil.ToFloat64(c.formulaMetrics.executionsTotal.WithLabelValues("damage"))
	if got != 2 {
		t.Errorf("executions_total{formula=damage} = %v, want 2", got)
	}
}

func TestCollector_RecordLibraryLoad(t *testing.T) {
	c := NewCollector(testConfig(), nil)

	c.RecordLibraryLoad(12, 2)
	c.RecordLibraryLoad(14, 0)

	if got := testutil.ToFloat64(c.libraryMetrics.loadsTotal); got != 2 {
		t.Errorf("library_loads_total = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.libraryMetrics.formulas); got != 14 {
		t.Errorf("library_formulas = %v, want 14", got)
	}
	if got := testutil.ToFloat64(c.libraryMetrics.loadFailures); got != 0 {
		t.Errorf("library_load_failures = %v, want 0", got)
	}
}

func TestCacheMetrics_Recorder(t *testing.T) {
	c := NewCollector(testConfig(), nil)
	cm := c.Cache()

	cm.RecordHit("formula")
	cm.RecordHit("formula")
	cm.RecordMiss("formula")
	cm.RecordEviction("formula")
	cm.SetEntries("formula", 42)

	if got := testutil.ToFloat64(cm.hitsTotal.WithLabelValues("formula")); got != 2 {
		t.Errorf("cache_hits_total = %v, want 2", got)
	}
	if got := testutil.ToFloat64(cm.missesTotal.WithLabelValues("formula")); got != 1 {
		t.Errorf("cache_misses_total = %v, want 1", got)
	}
	if got := testutil.ToFloat64(cm.evictionsTotal.WithLabelValues("formula")); got != 1 {
		t.Errorf("cache_evictions_total = %v, want 1", got)
	}
	if got := testutil.ToFloat64(cm.entries.WithLabelValues("formula")); got != 42 {
		t.Errorf("cache_entries = %v, want 42", got)
	}
}

func TestCollector_DisabledRecordsNothing(t *testing.T) {
	cfg := testConfig()
	cfg.Enabled = false
	c := NewCollector(cfg, nil)

	c.RecordCompile("success", time.Microsecond)
	c.RecordExecution("damage", time.Microsecond)
	c.RecordLibraryLoad(5, 1)
	c.Cache().RecordHit("formula")

	if got := testutil.ToFloat64(c.formulaMetrics.compilesTotal.WithLabelValues("success")); got != 0 {
		t.Errorf("disabled collector recorded compile: %v", got)
	}
	if got := testutil.ToFloat64(c.cacheMetrics.hitsTotal.WithLabelValues("formula")); got != 0 {
		t.Errorf("disabled collector recorded cache hit: %v", got)
	}
}

func TestCollector_Handler(t *testing.T) {
	c := NewCollector(testConfig(), prometheus.NewRegistry())
	c.RecordCompile("success", time.Microsecond)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/metrics", nil)
	c.Handler().ServeHTTP(rec, req)

	if rec.Code != 200 {
		t.Fatalf("GET /metrics status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "ludum_fate_compiles_total") {
		t.Error("exposition output missing ludum_fate_compiles_total")
	}
}

func TestCollector_DefaultNaming(t *testing.T) {
	cfg := &config.MetricsConfig{Enabled: true}
	NewCollector(cfg, nil)

	if cfg.Namespace != "ludum" || cfg.Subsystem != "fate" {
		t.Errorf("defaults = %q/%q, want ludum/fate", cfg.Namespace, cfg.Subsystem)
	}
}
