// Curio - Cross-Media Knowledge Graph Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered on the default registry through promauto and are
exposed at /metrics by the api package:

	curl http://localhost:8080/metrics

# Available Metrics

Database:
  - duckdb_query_duration_seconds{operation, table}
  - duckdb_query_errors_total{operation, table, error_type}
  - duckdb_connection_pool_size

API:
  - api_requests_total{method, endpoint, status_code}
  - api_request_duration_seconds{method, endpoint}
  - api_active_requests

Recommendations:
  - graph_build_duration_seconds{phase}: select, build and total
  - graph_requests_total{outcome}
  - candidates_scored_total
  - graph_nodes, graph_edges
  - entity_extractions_total{result}, entity_extraction_duration_seconds
  - tags_rejected_total

Cache and resilience:
  - cache_hits_total{cache_type}, cache_misses_total{cache_type}
  - cache_entries{cache_type}, cache_evictions_total{cache_type}
  - circuit_breaker_state{name}, circuit_breaker_requests_total{name, result}
  - circuit_breaker_consecutive_failures{name}
  - circuit_breaker_state_transitions_total{name, from_state, to_state}

# Usage

	start := time.Now()
	rows, err := db.QueryContext(ctx, query)
	metrics.RecordDBQuery("select", "books", time.Since(start), err)

Error label values are truncated to 50 characters to bound cardinality.
*/
package metrics
