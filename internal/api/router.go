// Curio - Cross-Media Knowledge Graph Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/curio/internal/middleware"
)

// NewRouter wires every endpoint onto a chi router.
//
// Global middleware runs for all routes; rate limiting, security headers and
// request metrics apply to /api/v1 only.
func NewRouter(h *Handler, mw *ChiMiddleware) http.Handler {
	if mw == nil {
		mw = NewChiMiddleware(DefaultChiMiddlewareConfig())
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.AccessLog)
	r.Use(chimiddleware.Recoverer)
	r.Use(mw.CORS()) // must be global to answer OPTIONS preflight

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		NewResponseWriter(w, req).NotFound("Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		NewResponseWriter(w, req).Error(http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "Method not allowed")
	})

	r.Get("/health", h.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(mw.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(middleware.PrometheusMetrics)

		r.Get("/graph", h.Graph)
		r.Get("/search", h.Search)
		r.Get("/recent", h.Recent)

		r.Route("/items/{type}", func(r chi.Router) {
			r.Post("/", h.AddItem)
			r.Get("/{id}", h.GetItem)
			r.Post("/{id}/tags", h.AddTags)
			r.Post("/{id}/tags/{tag_id}/upvote", h.ToggleUpvote)
		})
	})

	return r
}
