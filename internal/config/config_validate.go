// Curio - Cross-Media Knowledge Graph Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package config

import (
	"fmt"
	"strings"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateDatabase(); err != nil {
		return err
	}

	if err := c.validateEntityCache(); err != nil {
		return err
	}

	if err := c.Recommend.Validate(); err != nil {
		return fmt.Errorf("recommend: %w", err)
	}

	if err := c.validateBreaker(); err != nil {
		return err
	}

	if err := c.validateMaintenance(); err != nil {
		return err
	}

	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 || c.Server.ShutdownTimeout < 0 || c.Server.GraphCacheTTL < 0 {
		return fmt.Errorf("server timeouts must be non-negative")
	}
	if !c.Server.RateLimitDisabled {
		if c.Server.RateLimitRequests < 1 {
			return fmt.Errorf("RATE_LIMIT_REQUESTS must be positive, got %d", c.Server.RateLimitRequests)
		}
		if c.Server.RateLimitWindow <= 0 {
			return fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got %v", c.Server.RateLimitWindow)
		}
	}
	return nil
}

func (c *Config) validateDatabase() error {
	if c.Database.Threads < 0 {
		return fmt.Errorf("DUCKDB_THREADS must be non-negative, got %d", c.Database.Threads)
	}
	if c.Database.MaxMemory == "" {
		return fmt.Errorf("DUCKDB_MAX_MEMORY is required")
	}
	return nil
}

func (c *Config) validateEntityCache() error {
	if !c.EntityCache.Enabled {
		return nil
	}
	if c.EntityCache.Capacity < 1 {
		return fmt.Errorf("ENTITY_CACHE_CAPACITY must be positive, got %d", c.EntityCache.Capacity)
	}
	if c.EntityCache.TTL < 0 {
		return fmt.Errorf("ENTITY_CACHE_TTL must be non-negative, got %v", c.EntityCache.TTL)
	}
	return nil
}

func (c *Config) validateBreaker() error {
	if !c.Breaker.Enabled {
		return nil
	}
	if c.Breaker.FailureRatio <= 0 || c.Breaker.FailureRatio > 1 {
		return fmt.Errorf("BREAKER_FAIL_RATIO must be in (0, 1], got %v", c.Breaker.FailureRatio)
	}
	if c.Breaker.MinRequests < 1 {
		return fmt.Errorf("BREAKER_MIN_REQ must be positive")
	}
	if c.Breaker.Timeout <= 0 {
		return fmt.Errorf("BREAKER_TIMEOUT must be positive, got %v", c.Breaker.Timeout)
	}
	return nil
}

func (c *Config) validateMaintenance() error {
	m := c.Maintenance
	if m.Interval < 0 {
		return fmt.Errorf("MAINTENANCE_INTERVAL must be non-negative, got %v", m.Interval)
	}
	if m.GCDiscardRatio <= 0 || m.GCDiscardRatio >= 1 {
		return fmt.Errorf("GC_DISCARD_RATIO must be in (0, 1), got %v", m.GCDiscardRatio)
	}
	if m.Warmup && (m.WarmupRate <= 0 || m.WarmupBurst < 1) {
		return fmt.Errorf("warmup rate and burst must be positive")
	}
	return nil
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	validLevels := map[string]bool{
		"trace": true, "debug": true, "info": true, "warn": true, "error": true,
	}
	level := strings.ToLower(c.Logging.Level)
	if !validLevels[level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error (got: %s)", c.Logging.Level)
	}

	format := strings.ToLower(c.Logging.Format)
	if format != "json" && format != "console" {
		return fmt.Errorf("LOG_FORMAT must be json or console (got: %s)", c.Logging.Format)
	}
	return nil
}
