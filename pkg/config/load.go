package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file at the specified path.
// Parsing starts from DefaultConfig so unset fields keep their defaults,
// then the result is validated.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and
// applies environment variable overrides. Environment variables follow
// the naming convention FATE_SECTION_FIELD (e.g. FATE_LIBRARY_WATCH)
// and always take precedence over file-based configuration.
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides using the
// FATE_SECTION_FIELD format.
func applyEnvOverrides(cfg *Config) {
	// Library overrides
	if val := os.Getenv("FATE_LIBRARY_PATHS"); val != "" {
		cfg.Library.Paths = strings.Split(val, string(os.PathListSeparator))
	}
	if val := os.Getenv("FATE_LIBRARY_SQLITE_PATH"); val != "" {
		cfg.Library.SQLite.Path = val
	}
	if val := os.Getenv("FATE_LIBRARY_SQLITE_TABLE"); val != "" {
		cfg.Library.SQLite.Table = val
	}
	if val := os.Getenv("FATE_LIBRARY_WATCH"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Library.Watch = b
		}
	}
	if val := os.Getenv("FATE_LIBRARY_DEBOUNCE_INTERVAL"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Library.DebounceInterval = d
		}
	}
	if val := os.Getenv("FATE_LIBRARY_REFRESH_SCHEDULE"); val != "" {
		cfg.Library.RefreshSchedule = val
	}
	if val := os.Getenv("FATE_LIBRARY_SEED_CONSTANTS"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Library.SeedConstants = b
		}
	}

	// Cache overrides
	if val := os.Getenv("FATE_CACHE_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Cache.Enabled = b
		}
	}
	if val := os.Getenv("FATE_CACHE_SIZE"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Cache.Size = i
		}
	}
	if val := os.Getenv("FATE_CACHE_TTL"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Cache.TTL = d
		}
	}

	// Metrics overrides
	if val := os.Getenv("FATE_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Metrics.Enabled = b
		}
	}
	if val := os.Getenv("FATE_METRICS_LISTEN_ADDRESS"); val != "" {
		cfg.Metrics.ListenAddress = val
	}
	if val := os.Getenv("FATE_METRICS_PATH"); val != "" {
		cfg.Metrics.Path = val
	}
	if val := os.Getenv("FATE_METRICS_NAMESPACE"); val != "" {
		cfg.Metrics.Namespace = val
	}
	if val := os.Getenv("FATE_METRICS_SUBSYSTEM"); val != "" {
		cfg.Metrics.Subsystem = val
	}

	// Logging overrides
	if val := os.Getenv("FATE_LOGGING_LEVEL"); val != "" {
		cfg.Logging.Level = val
	}
	if val := os.Getenv("FATE_LOGGING_FORMAT"); val != "" {
		cfg.Logging.Format = val
	}
}
