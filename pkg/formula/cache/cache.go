package cache

import (
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"ludum-hq/fate/pkg/formula"
)

// Recorder receives cache traffic events, typically to feed external
// metrics. All methods must be safe for concurrent use.
type Recorder interface {
	RecordHit(cache string)
	RecordMiss(cache string)
	RecordEviction(cache string)
	SetEntries(cache string, n int)
}

// Config configures a formula cache.
type Config struct {
	// Name identifies the cache in stats and metrics. Default: "formula".
	Name string

	// Size is the maximum number of compiled formulas to retain before
	// evicting least-recently-used entries. Default: 256.
	Size int

	// TTL is the lifetime of an entry. Zero means entries never expire.
	TTL time.Duration
}

// DefaultConfig returns the default cache configuration.
func DefaultConfig() Config {
	return Config{
		Name: "formula",
		Size: 256,
	}
}

// Stats is a point-in-time snapshot of cache counters.
type Stats struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Entries   int
}

// Cache is a bounded LRU of compiled formulas keyed by their source text.
// Hosts that evaluate ad-hoc expression strings (scripted events, console
// commands) use it to pay the parse cost once per distinct expression.
//
// The cache is safe for concurrent use. Cached formulas are immutable, so a
// formula obtained from the cache may be executed by any goroutine against
// its own context.
type Cache struct {
	name     string
	lru      *expirable.LRU[string, *formula.Formula]
	recorder Recorder

	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64
}

// New creates a cache with the given configuration.
func New(cfg Config) *Cache {
	if cfg.Name == "" {
		cfg.Name = "formula"
	}
	if cfg.Size <= 0 {
		cfg.Size = 256
	}

	c := &Cache{name: cfg.Name}
	c.lru = expirable.NewLRU[string, *formula.Formula](cfg.Size, func(string, *formula.Formula) {
		c.evictions.Add(1)
		if c.recorder != nil {
			c.recorder.RecordEviction(c.name)
		}
	}, cfg.TTL)

	return c
}

// SetRecorder attaches a metrics recorder. Call before the cache sees
// traffic; a nil recorder disables reporting.
func (c *Cache) SetRecorder(r Recorder) {
	c.recorder = r
}

// GetOrCompile returns the cached compiled form of src, compiling and
// caching it on a miss. Compile failures are not cached: the error is
// returned (and recorded on ctx) every time, so a formula fixed at runtime
// does not need an explicit invalidation.
func (c *Cache) GetOrCompile(ctx *formula.Context, src string) (*formula.Formula, error) {
	if f, ok := c.lru.Get(src); ok {
		c.hits.Add(1)
		if c.recorder != nil {
			c.recorder.RecordHit(c.name)
		}
		return f, nil
	}

	c.misses.Add(1)
	if c.recorder != nil {
		c.recorder.RecordMiss(c.name)
	}

	f, err := formula.Compile(ctx, src)
	if err != nil {
		return nil, err
	}

	c.lru.Add(src, f)
	if c.recorder != nil {
		c.recorder.SetEntries(c.name, c.lru.Len())
	}
	return f, nil
}

// Get returns the cached formula for src without compiling on a miss.
func (c *Cache) Get(src string) (*formula.Formula, bool) {
	f, ok := c.lru.Get(src)
	if ok {
		c.hits.Add(1)
		if c.recorder != nil {
			c.recorder.RecordHit(c.name)
		}
	} else {
		c.misses.Add(1)
		if c.recorder != nil {
			c.recorder.RecordMiss(c.name)
		}
	}
	return f, ok
}

// Add inserts an already-compiled formula keyed by its source text.
func (c *Cache) Add(f *formula.Formula) {
	c.lru.Add(f.Source(), f)
	if c.recorder != nil {
		c.recorder.SetEntries(c.name, c.lru.Len())
	}
}

// Len returns the current number of cached formulas.
func (c *Cache) Len() int {
	return c.lru.Len()
}

// Purge drops every entry. Counters are kept.
func (c *Cache) Purge() {
	c.lru.Purge()
	if c.recorder != nil {
		c.recorder.SetEntries(c.name, 0)
	}
}

// Stats returns a snapshot of the cache counters.
func (c *Cache) Stats() Stats {
	return Stats{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
		Entries:   c.lru.Len(),
	}
}
