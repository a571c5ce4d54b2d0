// Package config loads the YAML configuration for a service embedding
// the cryptoflip toolkit: logging preferences, the observability server,
// and the flip protocol's default behavior.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration structure.
type Config struct {
	Logging *LoggingConfig `yaml:"logging" json:"logging"`
	Metrics *MetricsConfig `yaml:"metrics" json:"metrics"`
	Health  *HealthConfig  `yaml:"health" json:"health"`
	Flip    *FlipConfig    `yaml:"flip" json:"flip"`
}

// LoggingConfig controls the structured logger.
type LoggingConfig struct {
	Level  string `yaml:"level" json:"level"`   // debug, info, warn, error, silent
	Format string `yaml:"format" json:"format"` // text or json
}

// MetricsConfig controls the Prometheus export endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	Addr    string `yaml:"addr" json:"addr"`
}

// HealthConfig controls the health/readiness endpoints.
type HealthConfig struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	Version string `yaml:"version" json:"version"`
}

// FlipConfig sets the default behavior for flip protocol operations.
type FlipConfig struct {
	// AddGarbage is the default for the addGarbage parameter to
	// flip.Encrypt when the caller doesn't specify otherwise.
	AddGarbage bool `yaml:"add_garbage" json:"add_garbage"`

	// DefaultMarker is authenticated alongside every flip message unless
	// a caller overrides it. Empty means no additional authenticated
	// data by default.
	DefaultMarker string `yaml:"default_marker" json:"default_marker"`
}

// LoadFromFile reads a YAML (or, as a fallback, JSON) configuration file
// from path and applies defaults to any unset fields.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		if jsonErr := json.Unmarshal(data, cfg); jsonErr != nil {
			return nil, fmt.Errorf("failed to parse config file (tried YAML and JSON): %w", err)
		}
	}

	setDefaults(cfg)
	return cfg, nil
}

// SaveToFile writes cfg to path, choosing YAML or JSON by the file
// extension (".json" for JSON, anything else for YAML).
func SaveToFile(cfg *Config, path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".json") {
		data, err = json.MarshalIndent(cfg, "", "  ")
	} else {
		data, err = yaml.Marshal(cfg)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// setDefaults fills in zero-valued fields with sane defaults.
func setDefaults(cfg *Config) {
	if cfg.Logging == nil {
		cfg.Logging = &LoggingConfig{}
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}

	if cfg.Metrics == nil {
		cfg.Metrics = &MetricsConfig{}
	}
	if cfg.Metrics.Addr == "" {
		cfg.Metrics.Addr = ":9090"
	}

	if cfg.Health == nil {
		cfg.Health = &HealthConfig{}
	}
	if cfg.Health.Version == "" {
		cfg.Health.Version = "dev"
	}

	if cfg.Flip == nil {
		cfg.Flip = &FlipConfig{AddGarbage: true}
	}
}
