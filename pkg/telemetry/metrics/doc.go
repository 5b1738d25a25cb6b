// Package metrics provides Prometheus metrics for the fate service.
//
// The Collector owns a private registry and all metric families:
// formula compilation and execution, library load cycles, and formula
// cache traffic. Components record through the Collector (or through
// CacheMetrics, which implements the cache package's Recorder
// interface); every record call checks the enabled flag so disabled
// metrics cost nothing.
//
// Metric names follow <namespace>_<subsystem>_<name>, with namespace
// and subsystem taken from configuration (default ludum_fate).
package metrics
