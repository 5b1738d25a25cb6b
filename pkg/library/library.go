package library

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"ludum-hq/fate/pkg/formula"
	"ludum-hq/fate/pkg/library/source"
)

// Entry is one named, compiled formula held by a Library.
type Entry struct {
	// Name is the key the formula is looked up by.
	Name string

	// Description is the human-readable note carried from the source.
	Description string

	// Formula is the compiled expression.
	Formula *formula.Formula

	// Source identifies which source the definition came from.
	Source string
}

// LoadError records a definition that failed to compile during a load.
// Failed definitions are skipped; the rest of the load proceeds.
type LoadError struct {
	Name   string
	Expr   string
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("formula %q from %s: %v", e.Name, e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Library holds a named set of compiled formulas loaded from one or more
// sources. Loading is atomic: readers always see either the previous
// revision or the new one, never a half-loaded mix.
//
// Each successful load gets a fresh revision identifier so operators can
// tell from logs and metrics which formula set a given evaluation used.
type Library struct {
	mu       sync.RWMutex
	sources  []source.Source
	proto    *formula.Context
	loaded   *formula.Context
	entries  map[string]*Entry
	revision string
	loadedAt time.Time
	logger   *slog.Logger
}

// New creates a library over the given sources. The prototype context
// supplies the functions and seed variables every load compiles against;
// constants from the sources are defined on a clone of it, so the
// prototype itself is never mutated. A nil prototype gets a fresh context
// with the standard named constants seeded.
func New(sources []source.Source, proto *formula.Context, logger *slog.Logger) *Library {
	if proto == nil {
		proto = formula.NewContext()
		proto.SeedConstants()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Library{
		sources: sources,
		proto:   proto,
		entries: make(map[string]*Entry),
		logger:  logger.With("component", "library"),
	}
}

// Load fetches every source, compiles all definitions, and swaps the
// result in atomically. Definitions that fail to compile are reported in
// the returned slice and skipped; Load returns a non-nil error only when
// a source itself cannot be read.
func (l *Library) Load(ctx context.Context) ([]*LoadError, error) {
	proto := l.proto.Clone()

	docs := make([]*source.Document, 0, len(l.sources))
	names := make([]string, 0, len(l.sources))
	for _, src := range l.sources {
		doc, err := src.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load source %s: %w", src, err)
		}
		docs = append(docs, doc)
		names = append(names, src.String())
	}

	// Constants from all sources are defined before any compilation so
	// formulas in one source may reference constants from another.
	for i, doc := range docs {
		for name, v := range doc.Constants {
			if err := proto.Define(name, v); err != nil {
				l.logger.Warn("skipping constant",
					"name", name,
					"source", names[i],
					"error", err,
				)
			}
		}
	}

	entries := make(map[string]*Entry)
	var failures []*LoadError
	for i, doc := range docs {
		for _, def := range doc.Definitions {
			f, err := formula.Compile(proto, def.Expr)
			if err != nil {
				failures = append(failures, &LoadError{
					Name:   def.Name,
					Expr:   def.Expr,
					Source: names[i],
					Err:    err,
				})
				continue
			}
			if _, dup := entries[def.Name]; dup {
				l.logger.Warn("duplicate formula name, later definition wins",
					"name", def.Name,
					"source", names[i],
				)
			}
			entries[def.Name] = &Entry{
				Name:        def.Name,
				Description: def.Description,
				Formula:     f,
				Source:      names[i],
			}
		}
	}

	revision := uuid.New().String()
	now := time.Now()

	l.mu.Lock()
	l.entries = entries
	l.revision = revision
	l.loadedAt = now
	l.loaded = proto
	l.mu.Unlock()

	l.logger.Info("library loaded",
		"revision", revision,
		"formula_count", len(entries),
		"failed_count", len(failures),
		"source_count", len(l.sources),
	)
	for _, f := range failures {
		l.logger.Warn("formula failed to compile",
			"name", f.Name,
			"source", f.Source,
			"error", f.Err,
		)
	}

	return failures, nil
}

// Get returns the entry for name, if loaded.
func (l *Library) Get(name string) (*Entry, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	e, ok := l.entries[name]
	return e, ok
}

// Names returns the loaded formula names in sorted order.
func (l *Library) Names() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	names := make([]string, 0, len(l.entries))
	for name := range l.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of loaded formulas.
func (l *Library) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Revision returns the identifier of the currently loaded formula set,
// or the empty string before the first load.
func (l *Library) Revision() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.revision
}

// LoadedAt returns when the current revision was loaded.
func (l *Library) LoadedAt() time.Time {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.loadedAt
}

// NewContext returns a fresh evaluation context carrying the library's
// functions and constants. Callers define their per-evaluation variables
// on it and pass it to Execute.
func (l *Library) NewContext() *formula.Context {
	l.mu.RLock()
	proto := l.loaded
	l.mu.RUnlock()
	if proto == nil {
		proto = l.proto
	}
	return proto.Clone()
}

// Execute runs the named formula against the given context. It returns
// NaN and false when the formula is not loaded.
func (l *Library) Execute(name string, c *formula.Context) (float64, bool) {
	e, ok := l.Get(name)
	if !ok {
		return math.NaN(), false
	}
	return e.Formula.Execute(c), true
}
