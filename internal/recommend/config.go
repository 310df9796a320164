// Curio - Cross-Media Knowledge Graph Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package recommend

import (
	"fmt"
	"time"

	"github.com/tomtom215/curio/internal/similarity"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Defaults are applied to requests that omit a parameter.
	Defaults DefaultsConfig `koanf:"defaults"`

	// Limits contains operational limits.
	Limits LimitsConfig `koanf:"limits"`

	// Weights are the similarity signal coefficients.
	Weights similarity.Weights `koanf:"weights"`
}

// DefaultsConfig holds default request parameters.
type DefaultsConfig struct {
	// Threshold is the default similarity threshold on the 0-10 scale.
	Threshold float64 `koanf:"threshold"`

	// TopN is the default number of candidates kept in the graph.
	TopN int `koanf:"top_n"`
}

// LimitsConfig contains operational limits.
type LimitsConfig struct {
	// RequestTimeout bounds a single graph generation. Zero disables it.
	RequestTimeout time.Duration `koanf:"request_timeout"`

	// MaxRecent caps Recent listings.
	MaxRecent int `koanf:"max_recent"`
}

// DefaultConfig returns the configuration used when none is supplied.
func DefaultConfig() *Config {
	return &Config{
		Defaults: DefaultsConfig{
			Threshold: 3,
			TopN:      5,
		},
		Limits: LimitsConfig{
			RequestTimeout: 10 * time.Second,
			MaxRecent:      50,
		},
		Weights: similarity.DefaultWeights(),
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	defaults := Params{Threshold: c.Defaults.Threshold, TopN: c.Defaults.TopN}
	if err := defaults.Validate(); err != nil {
		return fmt.Errorf("defaults: %w", err)
	}
	if c.Limits.RequestTimeout < 0 {
		return fmt.Errorf("limits.request_timeout must be non-negative, got %v", c.Limits.RequestTimeout)
	}
	if c.Limits.MaxRecent < 1 {
		return fmt.Errorf("limits.max_recent must be positive, got %d", c.Limits.MaxRecent)
	}
	if err := c.Weights.Validate(); err != nil {
		return fmt.Errorf("weights: %w", err)
	}
	return nil
}
