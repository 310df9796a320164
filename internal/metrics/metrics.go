// Curio - Cross-Media Knowledge Graph Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for:
// - DuckDB catalog queries
// - API endpoint latency and throughput
// - graph generation and entity extraction
// - cache efficiency
// - store circuit breaker

var (
	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table", "error_type"},
	)

	DBConnectionPoolSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "duckdb_connection_pool_size",
			Help: "Current number of database connections in use",
		},
	)

	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Recommendation Metrics
	GraphBuildDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "graph_build_duration_seconds",
			Help:    "Duration of graph generation phases in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"phase"}, // "select", "build", "total"
	)

	GraphRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "graph_requests_total",
			Help: "Total number of graph generation requests by outcome",
		},
		[]string{"outcome"}, // "ok", "not_found", "invalid", "unavailable", "timeout", "error"
	)

	CandidatesScored = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "candidates_scored_total",
			Help: "Total number of catalog items scored against a seed",
		},
	)

	GraphNodes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "graph_nodes",
			Help:    "Number of nodes in generated graphs",
			Buckets: prometheus.LinearBuckets(1, 1, 11),
		},
	)

	GraphEdges = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "graph_edges",
			Help:    "Number of edges in generated graphs",
			Buckets: prometheus.LinearBuckets(0, 5, 12),
		},
	)

	EntityExtractions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "entity_extractions_total",
			Help: "Total number of named entity extractions by result",
		},
		[]string{"result"}, // "success", "failure"
	)

	EntityExtractionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "entity_extraction_duration_seconds",
			Help:    "Duration of named entity extraction in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		},
	)

	TagsRejected = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tags_rejected_total",
			Help: "Total number of tag submissions rejected by moderation",
		},
	)

	// Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_type"}, // "entity_memory", "entity_badger"
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_type"},
	)

	CacheSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_entries",
			Help: "Current number of cached entries",
		},
		[]string{"cache_type"},
	)

	CacheEvictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_evictions_total",
			Help: "Total number of cache evictions (TTL expiry)",
		},
		[]string{"cache_type"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)

	AppUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)
)

// RecordDBQuery records a database query metric
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		errorType := err.Error()
		// Truncate long error messages
		if len(errorType) > 50 {
			errorType = errorType[:50]
		}
		DBQueryErrors.WithLabelValues(operation, table, errorType).Inc()
	}
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordGraphPhase records how long one phase of graph generation took.
func RecordGraphPhase(phase string, duration time.Duration) {
	GraphBuildDuration.WithLabelValues(phase).Observe(duration.Seconds())
}

// RecordGraphRequest records the outcome of a graph request and, when it
// succeeded, the size of the graph.
func RecordGraphRequest(outcome string, nodes, edges int) {
	GraphRequests.WithLabelValues(outcome).Inc()
	if outcome == "ok" {
		GraphNodes.Observe(float64(nodes))
		GraphEdges.Observe(float64(edges))
	}
}

// RecordEntityExtraction records one NER pass
func RecordEntityExtraction(duration time.Duration, err error) {
	EntityExtractionDuration.Observe(duration.Seconds())
	if err != nil {
		EntityExtractions.WithLabelValues("failure").Inc()
		return
	}
	EntityExtractions.WithLabelValues("success").Inc()
}

// RecordCacheLookup records a hit or miss for cacheType.
func RecordCacheLookup(cacheType string, hit bool) {
	if hit {
		CacheHits.WithLabelValues(cacheType).Inc()
		return
	}
	CacheMisses.WithLabelValues(cacheType).Inc()
}
