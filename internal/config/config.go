// Curio - Cross-Media Knowledge Graph Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package config

import (
	"time"

	"github.com/tomtom215/curio/internal/recommend"
)

// Config holds all application configuration
type Config struct {
	Server      ServerConfig      `koanf:"server"`
	Database    DatabaseConfig    `koanf:"database"`
	EntityCache EntityCacheConfig `koanf:"entity_cache"`
	Recommend   recommend.Config  `koanf:"recommend"`
	Breaker     BreakerConfig     `koanf:"breaker"`
	Moderation  ModerationConfig  `koanf:"moderation"`
	Maintenance MaintenanceConfig `koanf:"maintenance"`
	Logging     LoggingConfig     `koanf:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// CORSOrigins lists allowed origins. "*" allows any origin.
	CORSOrigins []string `koanf:"cors_origins"`

	// RateLimitRequests is the per-IP request allowance in each window.
	// Set RateLimitDisabled to turn limiting off entirely.
	RateLimitRequests int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`

	// GraphCacheTTL keeps generated graphs for repeat requests. Zero disables
	// the cache.
	GraphCacheTTL time.Duration `koanf:"graph_cache_ttl"`
}

// DatabaseConfig holds DuckDB configuration
type DatabaseConfig struct {
	// Path is the database file. Empty or ":memory:" opens an in-memory database.
	Path      string `koanf:"path"`
	MaxMemory string `koanf:"max_memory"`
	Threads   int    `koanf:"threads"`
}

// EntityCacheConfig controls title entity extraction and its caches.
type EntityCacheConfig struct {
	// Enabled turns on the in-memory LRU and, when Dir is set, the badger store.
	Enabled  bool          `koanf:"enabled"`
	Dir      string        `koanf:"dir"`
	Capacity int           `koanf:"capacity"`
	TTL      time.Duration `koanf:"ttl"`

	// ModelPath points at a prose model directory. Empty uses the bundled model.
	ModelPath string `koanf:"model_path"`
}

// BreakerConfig configures the circuit breaker in front of the catalog store.
type BreakerConfig struct {
	Enabled      bool          `koanf:"enabled"`
	Name         string        `koanf:"name"`
	MaxRequests  uint32        `koanf:"max_requests"`
	Interval     time.Duration `koanf:"interval"`
	Timeout      time.Duration `koanf:"timeout"`
	MinRequests  uint32        `koanf:"min_requests"`
	FailureRatio float64       `koanf:"failure_ratio"`
}

// ModerationConfig lists the terms that cause a tag submission to be rejected.
// An empty list uses the built-in blocklist.
type ModerationConfig struct {
	Terms []string `koanf:"terms"`
}

// MaintenanceConfig schedules background upkeep.
type MaintenanceConfig struct {
	// Interval between maintenance runs. Zero disables the maintenance service.
	Interval time.Duration `koanf:"interval"`

	// GCDiscardRatio is passed to badger value log GC.
	GCDiscardRatio float64 `koanf:"gc_discard_ratio"`

	// Warmup extracts entities for every catalog title at startup, paced
	// at WarmupRate titles per second with bursts of WarmupBurst.
	Warmup      bool    `koanf:"warmup"`
	WarmupRate  float64 `koanf:"warmup_rate"`
	WarmupBurst int     `koanf:"warmup_burst"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	// Level is one of trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is json or console.
	Format string `koanf:"format"`

	// Caller adds file:line to each entry.
	Caller bool `koanf:"caller"`
}
