// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - Functions accept context.Context as the first parameter.
// - External errors are wrapped with this package's sentinel kinds.
package config

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects text or json log output.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// DatasetPath points at the JSON or YAML dataset served by the process.
	DatasetPath string `koanf:"dataset_path"`

	// DatasetReloadInterval polls the dataset file for changes. Zero disables polling.
	DatasetReloadInterval time.Duration `koanf:"dataset_reload_interval"`

	// CacheSize bounds the number of cached window snapshots.
	CacheSize int `koanf:"cache_size"`

	// WarmWorkers precompute snapshots after each dataset load.
	WarmWorkers int `koanf:"warm_workers"`

	// WarmQueueSize bounds the pending warm-up windows.
	WarmQueueSize int `koanf:"warm_queue_size"`

	// EloKFactor is the ELO update step.
	EloKFactor float64 `koanf:"elo_k_factor"`

	// EloTopics get their own rating columns on the ELO leaderboard.
	EloTopics []string `koanf:"elo_topics"`

	// ReferenceDateMS is always present on the release-date timeline.
	ReferenceDateMS int64 `koanf:"reference_date_ms"`
}

// New returns a Config holding the defaults.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:        "info",
		LogFormat:       "text",
		Addr:            ":9080",
		CacheSize:       64,
		WarmWorkers:     2,
		WarmQueueSize:   256,
		EloKFactor:      32,
		EloTopics:       []string{"Politics", "Entertainment"},
		ReferenceDateMS: 1704067200000,
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if c.EloKFactor <= 0 {
		return fmt.Errorf("%w: elo_k_factor must be positive, got %v", ErrInvalidConfig, c.EloKFactor)
	}
	if c.DatasetReloadInterval < 0 {
		return fmt.Errorf("%w: dataset_reload_interval must not be negative", ErrInvalidConfig)
	}
	if c.CacheSize < 0 || c.WarmWorkers < 0 || c.WarmQueueSize < 0 {
		return fmt.Errorf("%w: cache_size, warm_workers and warm_queue_size must not be negative", ErrInvalidConfig)
	}
	switch strings.ToLower(c.LogFormat) {
	case "", "text", "json":
	default:
		return fmt.Errorf("%w: unknown log_format %q", ErrInvalidConfig, c.LogFormat)
	}
	return nil
}
