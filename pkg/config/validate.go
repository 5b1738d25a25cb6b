package config

import (
	"fmt"

	"github.com/robfig/cron/v3"
)

// Validate checks the configuration for invalid or inconsistent values.
// It returns the first problem found.
func Validate(cfg *Config) error {
	if err := validateLibrary(&cfg.Library); err != nil {
		return err
	}
	if err := validateCache(&cfg.Cache); err != nil {
		return err
	}
	if err := validateMetrics(&cfg.Metrics); err != nil {
		return err
	}
	return validateLogging(&cfg.Logging)
}

func validateLibrary(cfg *LibraryConfig) error {
	if cfg.DebounceInterval < 0 {
		return fmt.Errorf("library.debounce_interval must not be negative, got %v", cfg.DebounceInterval)
	}
	if cfg.RefreshSchedule != "" {
		if _, err := cron.ParseStandard(cfg.RefreshSchedule); err != nil {
			return fmt.Errorf("library.refresh_schedule %q is not a valid cron expression: %w", cfg.RefreshSchedule, err)
		}
	}
	if cfg.SQLite.Path != "" && cfg.SQLite.Table == "" {
		return fmt.Errorf("library.sqlite.table must be set when library.sqlite.path is set")
	}
	return nil
}

func validateCache(cfg *CacheConfig) error {
	if cfg.Size < 0 {
		return fmt.Errorf("cache.size must not be negative, got %d", cfg.Size)
	}
	if cfg.TTL < 0 {
		return fmt.Errorf("cache.ttl must not be negative, got %v", cfg.TTL)
	}
	return nil
}

func validateMetrics(cfg *MetricsConfig) error {
	if !cfg.Enabled {
		return nil
	}
	if cfg.ListenAddress == "" {
		return fmt.Errorf("metrics.listen_address must be set when metrics are enabled")
	}
	if cfg.Path == "" {
		return fmt.Errorf("metrics.path must be set when metrics are enabled")
	}
	return nil
}

func validateLogging(cfg *LoggingConfig) error {
	switch cfg.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", cfg.Level)
	}
	switch cfg.Format {
	case "json", "text":
	default:
		return fmt.Errorf("logging.format must be json or text, got %q", cfg.Format)
	}
	return nil
}
