package config

import "time"

// DefaultConfig returns a configuration populated with default values.
// Boolean fields that default to true are set here rather than in
// ApplyDefaults, since a parsed false is indistinguishable from unset.
// LoadConfig unmarshals on top of this value so explicit file settings
// still win.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.Library.Watch = true
	cfg.Library.SeedConstants = true
	cfg.Cache.Enabled = true
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills in default values for any unset fields. It is
// called after parsing a configuration file, so only zero-valued fields
// are touched.
func ApplyDefaults(cfg *Config) {
	// Library defaults
	if cfg.Library.DebounceInterval == 0 {
		cfg.Library.DebounceInterval = 250 * time.Millisecond
	}
	if cfg.Library.SQLite.Table == "" {
		cfg.Library.SQLite.Table = "formulas"
	}

	// Cache defaults
	if cfg.Cache.Size == 0 {
		cfg.Cache.Size = 256
	}

	// Metrics defaults
	if cfg.Metrics.ListenAddress == "" {
		cfg.Metrics.ListenAddress = "127.0.0.1:9090"
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = "ludum"
	}
	if cfg.Metrics.Subsystem == "" {
		cfg.Metrics.Subsystem = "fate"
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
}
