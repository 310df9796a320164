// Curio - Cross-Media Knowledge Graph Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

/*
Package middleware provides HTTP middleware shared by the API router.

  - RequestID: UUID request ids in the X-Request-ID header and the logging context
  - AccessLog: one zerolog line per request
  - PrometheusMetrics: request count, latency and in-flight gauge by chi route pattern

All three are plain func(http.Handler) http.Handler and compose with chi:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog)
	r.Use(middleware.PrometheusMetrics)
*/
package middleware
