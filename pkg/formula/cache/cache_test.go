package cache

import (
	"fmt"
	"testing"

	"ludum-hq/fate/pkg/formula"
)

func TestCache_HitAndMiss(t *testing.T) {
	ctx := formula.NewContext()
	ctx.Define("x", 3)
	c := New(DefaultConfig())

	f1, err := c.GetOrCompile(ctx, "x * 2")
	if err != nil {
		t.Fatalf("GetOrCompile failed: %v", err)
	}
	f2, err := c.GetOrCompile(ctx, "x * 2")
	if err != nil {
		t.Fatalf("GetOrCompile failed: %v", err)
	}

	if f1 != f2 {
		t.Error("second GetOrCompile returned a different formula, want cached instance")
	}
	if got := f2.Execute(ctx); got != 6 {
		t.Errorf("Execute = %v, want 6", got)
	}

	stats := c.Stats()
	if stats.Hits != 1 || stats.Misses != 1 {
		t.Errorf("stats = %d hits / %d misses, want 1/1", stats.Hits, stats.Misses)
	}
	if stats.Entries != 1 {
		t.Errorf("entries = %d, want 1", stats.Entries)
	}
}

func TestCache_CompileErrorsAreNotCached(t *testing.T) {
	ctx := formula.NewContext()
	c := New(DefaultConfig())

	if _, err := c.GetOrCompile(ctx, "1 +"); err == nil {
		t.Fatal("GetOrCompile on invalid source succeeded")
	}
	if got := c.Len(); got != 0 {
		t.Errorf("Len() = %d after failed compile, want 0", got)
	}

	// The error comes back on every attempt, not just the first.
	if _, err := c.GetOrCompile(ctx, "1 +"); err == nil {
		t.Fatal("second GetOrCompile on invalid source succeeded")
	}
}

func TestCache_Eviction(t *testing.T) {
	ctx := formula.NewContext()
	c := New(Config{Size: 4})

	for i := 0; i < 10; i++ {
		if _, err := c.GetOrCompile(ctx, fmt.Sprintf("%d + 1", i)); err != nil {
			t.Fatalf("GetOrCompile #%d failed: %v", i, err)
		}
	}

	if got := c.Len(); got != 4 {
		t.Errorf("Len() = %d, want 4", got)
	}
	if got := c.Stats().Evictions; got != 6 {
		t.Errorf("evictions = %d, want 6", got)
	}

	// The most recent entry survived; the oldest did not.
	if _, ok := c.Get("9 + 1"); !ok {
		t.Error("most recent entry was evicted")
	}
	if _, ok := c.Get("0 + 1"); ok {
		t.Error("oldest entry survived past capacity")
	}
}

func TestCache_Purge(t *testing.T) {
	ctx := formula.NewContext()
	c := New(DefaultConfig())
	c.GetOrCompile(ctx, "1 + 1")
	c.GetOrCompile(ctx, "2 + 2")

	c.Purge()

	if got := c.Len(); got != 0 {
		t.Errorf("Len() = %d after Purge, want 0", got)
	}
}

// recorderSpy counts Recorder callbacks.
type recorderSpy struct {
	hits, misses, evictions int
	entries                 int
}

func (r *recorderSpy) RecordHit(string)      { r.hits++ }
func (r *recorderSpy) RecordMiss(string)     { r.misses++ }
func (r *recorderSpy) RecordEviction(string) { r.evictions++ }
func (r *recorderSpy) SetEntries(_ string, n int) {
	r.entries = n
}

func TestCache_Recorder(t *testing.T) {
	ctx := formula.NewContext()
	c := New(Config{Size: 2})
	spy := &recorderSpy{}
	c.SetRecorder(spy)

	c.GetOrCompile(ctx, "1")
	c.GetOrCompile(ctx, "1")
	c.GetOrCompile(ctx, "2")
	c.GetOrCompile(ctx, "3") // evicts "1"

	if spy.hits != 1 {
		t.Errorf("recorded hits = %d, want 1", spy.hits)
	}
	if spy.misses != 3 {
		t.Errorf("recorded misses = %d, want 3", spy.misses)
	}
	if spy.evictions != 1 {
		t.Errorf("recorded evictions = %d, want 1", spy.evictions)
	}
	if spy.entries != 2 {
		t.Errorf("recorded entries = %d, want 2", spy.entries)
	}
}
