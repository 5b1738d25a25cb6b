package config

import "time"

// Config is the root configuration structure for the fate service. It
// covers the formula library and its sources, the compile cache,
// telemetry, and logging.
type Config struct {
	// Library contains configuration for the formula library including
	// sources, hot reload, and scheduled refresh.
	Library LibraryConfig `yaml:"library"`

	// Cache contains configuration for the compiled formula cache.
	Cache CacheConfig `yaml:"cache"`

	// Metrics contains configuration for Prometheus metrics.
	Metrics MetricsConfig `yaml:"metrics"`

	// Logging contains configuration for structured logging.
	Logging LoggingConfig `yaml:"logging"`
}

// LibraryConfig contains configuration for the formula library.
type LibraryConfig struct {
	// Paths are YAML formula files or directories to load.
	Paths []string `yaml:"paths"`

	// SQLite configures an optional database-backed formula source.
	SQLite SQLiteConfig `yaml:"sqlite"`

	// Watch enables reloading when formula files change on disk.
	// Default: true
	Watch bool `yaml:"watch"`

	// DebounceInterval is the quiet period after the last file change
	// before a reload is triggered.
	// Default: 250ms
	DebounceInterval time.Duration `yaml:"debounce_interval"`

	// RefreshSchedule is an optional cron expression for scheduled
	// reloads (e.g. "@every 5m"). Empty disables scheduled refresh.
	RefreshSchedule string `yaml:"refresh_schedule"`

	// SeedConstants controls whether the standard named constants
	// (pi, e, tau, phi) are defined before formulas are compiled.
	// Default: true
	SeedConstants bool `yaml:"seed_constants"`
}

// SQLiteConfig configures the database-backed formula source.
type SQLiteConfig struct {
	// Path is the SQLite database file. Empty disables the source.
	Path string `yaml:"path"`

	// Table is the table formulas are read from.
	// Default: "formulas"
	Table string `yaml:"table"`
}

// CacheConfig contains configuration for the compiled formula cache.
type CacheConfig struct {
	// Enabled controls whether ad-hoc expressions are cached after
	// compilation.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Size is the maximum number of cached formulas.
	// Default: 256
	Size int `yaml:"size"`

	// TTL is how long a cached formula stays valid. Zero means no
	// expiry.
	TTL time.Duration `yaml:"ttl"`
}

// MetricsConfig contains configuration for Prometheus metrics.
type MetricsConfig struct {
	// Enabled controls whether metrics are collected and served.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// ListenAddress is the address the metrics endpoint listens on.
	// Default: "127.0.0.1:9090"
	ListenAddress string `yaml:"listen_address"`

	// Path is the HTTP path the metrics are served at.
	// Default: "/metrics"
	Path string `yaml:"path"`

	// Namespace is the Prometheus metric namespace.
	// Default: "ludum"
	Namespace string `yaml:"namespace"`

	// Subsystem is the Prometheus metric subsystem.
	// Default: "fate"
	Subsystem string `yaml:"subsystem"`
}

// LoggingConfig contains configuration for structured logging.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	// Default: "info"
	Level string `yaml:"level"`

	// Format is the log output format: "json" or "text".
	// Default: "json"
	Format string `yaml:"format"`
}
