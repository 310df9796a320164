// Curio - Cross-Media Knowledge Graph Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

/*
Package config loads and validates Curio's configuration.

# Configuration Sources

Configuration is layered with koanf, later layers overriding earlier ones:

 1. Built-in defaults (defaultConfig)
 2. An optional YAML file: $CONFIG_PATH, else the first of DefaultConfigPaths
 3. CURIO_* environment variables

# Environment Variables

Server:
  - CURIO_HTTP_HOST, CURIO_HTTP_PORT (default 8080)
  - CURIO_HTTP_READ_TIMEOUT, CURIO_HTTP_WRITE_TIMEOUT, CURIO_HTTP_SHUTDOWN_TIMEOUT
  - CURIO_CORS_ORIGINS: comma-separated
  - CURIO_RATE_LIMIT_REQUESTS, CURIO_RATE_LIMIT_WINDOW, CURIO_DISABLE_RATE_LIMIT

Database:
  - CURIO_DUCKDB_PATH (default /data/curio.duckdb, ":memory:" for in-memory)
  - CURIO_DUCKDB_MAX_MEMORY (default 1GB), CURIO_DUCKDB_THREADS

Entity extraction:
  - CURIO_ENTITY_CACHE_ENABLED, CURIO_ENTITY_CACHE_DIR
  - CURIO_ENTITY_CACHE_CAPACITY, CURIO_ENTITY_CACHE_TTL, CURIO_ENTITY_MODEL_PATH

Recommendations:
  - CURIO_DEFAULT_THRESHOLD (default 3), CURIO_DEFAULT_TOP_N (default 5)
  - CURIO_REQUEST_TIMEOUT, CURIO_MAX_RECENT
  - CURIO_WEIGHT_LEXICAL, CURIO_WEIGHT_TAGS, CURIO_WEIGHT_ENTITIES

Circuit breaker, moderation, maintenance and logging follow the same
pattern; see envMappings for the full list.

# Usage

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}
*/
package config
