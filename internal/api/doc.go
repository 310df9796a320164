// Curio - Cross-Media Knowledge Graph Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

/*
Package api provides the HTTP REST API of Curio.

Every response uses the same envelope:

	{"success": true, "data": ..., "meta": {"request_id": "...", "timestamp": "...", "duration_ms": 3}}
	{"success": false, "error": {"code": "NOT_FOUND", "message": "..."}}

Endpoints:

	GET  /api/v1/graph?type=book&id=1&weighting=3&top_n=5
	GET  /api/v1/graph?type=film&title=dune
	GET  /api/v1/items/{type}/{id}
	POST /api/v1/items/{type}
	POST /api/v1/items/{type}/{id}/tags
	POST /api/v1/items/{type}/{id}/tags/{tag_id}/upvote
	GET  /api/v1/search?q=
	GET  /api/v1/recent?limit=
	GET  /health
	GET  /metrics

Graph responses are cached in a TTL cache keyed by seed and parameters when
HandlerConfig.GraphCacheTTL is positive. Any catalog or tag write clears it.

Domain errors map onto status codes in writeError: invalid parameters and
refs give 400, unknown items 404, moderated tags 422, an open store breaker
503 and exceeded request deadlines 504.

Routing uses go-chi/chi with go-chi/cors and go-chi/httprate; request
metrics are recorded by middleware.PrometheusMetrics.
*/
package api
