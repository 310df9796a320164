// Curio - Cross-Media Knowledge Graph Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/tomtom215/curio/internal/recommend"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/curio/config.yaml",
	"/etc/curio/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// EnvPrefix is the prefix of every environment variable read into the config.
const EnvPrefix = "CURIO_"

// defaultConfig returns a Config struct with all sensible default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:              "0.0.0.0",
			Port:              8080,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      30 * time.Second,
			ShutdownTimeout:   10 * time.Second,
			CORSOrigins:       []string{"*"},
			RateLimitRequests: 100,
			RateLimitWindow:   time.Minute,
			GraphCacheTTL:     5 * time.Minute,
		},
		Database: DatabaseConfig{
			Path:      "/data/curio.duckdb",
			MaxMemory: "1GB",
			Threads:   0, // 0 = runtime.NumCPU()
		},
		EntityCache: EntityCacheConfig{
			Enabled:  true,
			Dir:      "/data/entities",
			Capacity: 10000,
			TTL:      24 * time.Hour,
		},
		Recommend: *recommend.DefaultConfig(),
		Breaker: BreakerConfig{
			Enabled:      true,
			Name:         "catalog-store",
			MaxRequests:  3,
			Interval:     time.Minute,
			Timeout:      30 * time.Second,
			MinRequests:  10,
			FailureRatio: 0.6,
		},
		Moderation: ModerationConfig{},
		Maintenance: MaintenanceConfig{
			Interval:       time.Hour,
			GCDiscardRatio: 0.5,
			Warmup:         true,
			WarmupRate:     50,
			WarmupBurst:    10,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Load loads configuration using Koanf with layered sources:
//
//  1. Defaults: Built-in sensible defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: CURIO_* overrides
//
// Precedence is ENV > File > Defaults.
func Load() (*Config, error) {
	return LoadFile(FindConfigFile())
}

// LoadFile is Load with an explicit config file path. An empty path skips
// the file layer.
func LoadFile(configPath string) (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	// CURIO_HTTP_PORT -> server.port
	if err := k.Load(env.Provider(EnvPrefix, ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// FindConfigFile returns the config file Load uses: CONFIG_PATH when it
// exists, else the first of DefaultConfigPaths that exists.
// It returns "" when no file is found.
func FindConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"server.cors_origins",
	"moderation.terms",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// Env vars come in as strings while the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}

		strVal, ok := val.(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps lowercased environment variable names, without the
// CURIO_ prefix, to koanf paths.
var envMappings = map[string]string{
	"http_host":             "server.host",
	"http_port":             "server.port",
	"http_read_timeout":     "server.read_timeout",
	"http_write_timeout":    "server.write_timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",
	"cors_origins":          "server.cors_origins",
	"rate_limit_requests":   "server.rate_limit_requests",
	"rate_limit_window":     "server.rate_limit_window",
	"disable_rate_limit":    "server.rate_limit_disabled",
	"graph_cache_ttl":       "server.graph_cache_ttl",

	"duckdb_path":       "database.path",
	"duckdb_max_memory": "database.max_memory",
	"duckdb_threads":    "database.threads",

	"entity_cache_enabled":  "entity_cache.enabled",
	"entity_cache_dir":      "entity_cache.dir",
	"entity_cache_capacity": "entity_cache.capacity",
	"entity_cache_ttl":      "entity_cache.ttl",
	"entity_model_path":     "entity_cache.model_path",

	"default_threshold":  "recommend.defaults.threshold",
	"default_top_n":      "recommend.defaults.top_n",
	"request_timeout":    "recommend.limits.request_timeout",
	"max_recent":         "recommend.limits.max_recent",
	"weight_lexical":     "recommend.weights.lexical",
	"weight_tags":        "recommend.weights.tags",
	"weight_entities":    "recommend.weights.entities",
	"breaker_enabled":    "breaker.enabled",
	"breaker_name":       "breaker.name",
	"breaker_max_req":    "breaker.max_requests",
	"breaker_interval":   "breaker.interval",
	"breaker_timeout":    "breaker.timeout",
	"breaker_min_req":    "breaker.min_requests",
	"breaker_fail_ratio": "breaker.failure_ratio",

	"moderation_terms": "moderation.terms",

	"maintenance_interval": "maintenance.interval",
	"gc_discard_ratio":     "maintenance.gc_discard_ratio",
	"warmup":               "maintenance.warmup",
	"warmup_rate":          "maintenance.warmup_rate",
	"warmup_burst":         "maintenance.warmup_burst",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - CURIO_HTTP_PORT -> server.port
//   - CURIO_DUCKDB_PATH -> database.path
//   - CURIO_DEFAULT_TOP_N -> recommend.defaults.top_n
//
// Unmapped variables return "" and are skipped.
func envTransformFunc(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	return envMappings[key]
}

// WatchConfigFile calls callback whenever the file at path changes.
// The caller is responsible for synchronizing access to any configuration
// it reloads.
func WatchConfigFile(path string, callback func()) error {
	provider := file.Provider(path)
	return provider.Watch(func(event interface{}, err error) {
		if err != nil {
			return
		}
		callback()
	})
}
