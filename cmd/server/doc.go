// Curio - Cross-Media Knowledge Graph Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

/*
Package main is the entry point for the Curio server.

Curio recommends books, films and games for a seed item by building a small
weighted knowledge graph: every catalog item is scored against the seed on
title similarity, shared user tags and shared named entities, and items above
a threshold are linked to the seed and to each other.

# Application Architecture

Services run under a Suture v4 supervisor tree:

	RootSupervisor ("curio")
	├── DataSupervisor ("data-layer")
	│   └── Maintenance service (checkpoint, badger GC, cache pruning, warm-up)
	└── APISupervisor ("api-layer")
	    └── HTTP Server (chi router)

Component initialization order:

 1. Configuration: Koanf v2 with defaults, YAML file and CURIO_* variables
 2. Logging: zerolog with JSON or console output
 3. Database: DuckDB catalog and tag tables
 4. Circuit breaker: gobreaker in front of catalog reads (optional)
 5. Entity extraction: prose model, LRU cache, badger store (optional)
 6. Recommendation engine
 7. API handler, graph cache and router
 8. Supervisor tree with the HTTP and maintenance services

# Configuration

Sources, highest priority first:

	Environment variables > Config file > Defaults

The config file is found at CONFIG_PATH, ./config.yaml, ./config.yml or
/etc/curio/config.yaml. Common variables:

	CURIO_HTTP_PORT=8080
	CURIO_DUCKDB_PATH=/data/curio.duckdb
	CURIO_ENTITY_CACHE_DIR=/data/entities
	CURIO_DEFAULT_THRESHOLD=5
	CURIO_DEFAULT_TOP_N=3
	CURIO_MAINTENANCE_INTERVAL=1h
	CURIO_LOG_LEVEL=info

Changes to logging.level in the config file are applied without a restart.

# Signals

SIGINT and SIGTERM cancel the root context. The HTTP server drains for up to
server.shutdown_timeout, then the database and entity store are closed.

# Build

	go build -ldflags "-X main.version=1.0.0" -o curio ./cmd/server
*/
package main
