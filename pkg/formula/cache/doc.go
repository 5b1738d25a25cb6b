// Package cache provides a bounded LRU cache of compiled formulas.
//
// Compiling a formula costs a tokenize and a parse; executing one is a
// plain tree walk. Hosts that repeatedly evaluate the same small set of
// expression strings (scripted triggers, data-driven effects, console
// input) front the engine with this cache so each distinct source string
// is compiled once:
//
//	fc := cache.New(cache.Config{Size: 512})
//	f, err := fc.GetOrCompile(ctx, "base * (1 + crit_bonus)")
//	if err != nil { ... }
//	v := f.Execute(ctx)
//
// Entries are evicted least-recently-used first, and optionally by TTL.
// Hit, miss, and eviction counts are tracked and can be forwarded to
// metrics through the Recorder interface.
package cache
