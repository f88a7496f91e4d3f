// Package config provides loading and parsing of workbench.yaml
// configuration files. Workbench configurations cover the analysis backend
// call, the investigation store, and logging; every setting has a default
// so a missing file or empty section is never an error at use sites.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents a workbench.yaml configuration file.
type Config struct {
	// Analysis configures the external analysis backend call.
	Analysis *AnalysisConfig `yaml:"analysis,omitempty"`

	// Store configures investigation persistence.
	Store *StoreConfig `yaml:"store,omitempty"`

	// Logging configures the engine's structured logger.
	Logging *LoggingConfig `yaml:"logging,omitempty"`
}

// AnalysisConfig configures the analysis backend call.
type AnalysisConfig struct {
	// Timeout bounds one backend call.
	// Format: Go duration string (e.g., "30s", "1m")
	// Default: 30s
	Timeout string `yaml:"timeout,omitempty"`

	// SampleSize is how many records per source are sent to the backend.
	// Default: 10
	SampleSize int `yaml:"sample_size,omitempty"`
}

// GetTimeout parses the timeout string and returns a duration.
// Returns the default value if not set or invalid.
func (a *AnalysisConfig) GetTimeout() time.Duration {
	if a == nil || a.Timeout == "" {
		return 30 * time.Second
	}
	d, err := time.ParseDuration(a.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// GetSampleSize returns the configured sample size or the default value.
func (a *AnalysisConfig) GetSampleSize() int {
	if a == nil || a.SampleSize <= 0 {
		return 10
	}
	return a.SampleSize
}

// StoreConfig configures investigation persistence.
type StoreConfig struct {
	// Backend selects the store implementation: "memory" or "redis".
	// Default: memory
	Backend string `yaml:"backend,omitempty"`

	// Redis configures the Redis store when Backend is "redis".
	Redis *RedisConfig `yaml:"redis,omitempty"`
}

// GetBackend returns the configured backend or the default value.
func (s *StoreConfig) GetBackend() string {
	if s == nil || s.Backend == "" {
		return "memory"
	}
	return s.Backend
}

// RedisConfig configures the Redis-backed investigation store.
type RedisConfig struct {
	// URL is the Redis connection string.
	// Default: redis://localhost:6379
	URL string `yaml:"url,omitempty"`

	// ConnectTimeout bounds connection establishment.
	// Format: Go duration string. Default: 5s
	ConnectTimeout string `yaml:"connect_timeout,omitempty"`
}

// GetURL returns the configured URL or the default value.
func (r *RedisConfig) GetURL() string {
	if r == nil || r.URL == "" {
		return "redis://localhost:6379"
	}
	return r.URL
}

// GetConnectTimeout parses the connect timeout string and returns a
// duration. Returns the default value if not set or invalid.
func (r *RedisConfig) GetConnectTimeout() time.Duration {
	if r == nil || r.ConnectTimeout == "" {
		return 5 * time.Second
	}
	d, err := time.ParseDuration(r.ConnectTimeout)
	if err != nil {
		return 5 * time.Second
	}
	return d
}

// LoggingConfig configures the engine logger.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", or "error".
	// Default: info
	Level string `yaml:"level,omitempty"`
}

// GetLevel maps the configured level to a slog.Level.
// Unknown values fall back to info.
func (l *LoggingConfig) GetLevel() slog.Level {
	if l == nil {
		return slog.LevelInfo
	}
	switch l.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Load reads and parses a workbench.yaml file from the given path.
// If the path is a directory, it looks for workbench.yaml or workbench.yml
// in that directory.
func Load(path string) (*Config, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat path: %w", err)
	}

	configPath := path
	if info.IsDir() {
		yamlPath := filepath.Join(path, "workbench.yaml")
		if _, err := os.Stat(yamlPath); err == nil {
			configPath = yamlPath
		} else {
			ymlPath := filepath.Join(path, "workbench.yml")
			if _, err := os.Stat(ymlPath); err != nil {
				return nil, fmt.Errorf("no workbench.yaml or workbench.yml found in %s", path)
			}
			configPath = ymlPath
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}
