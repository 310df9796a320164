// Curio - Cross-Media Knowledge Graph Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package api

import (
	"context"
	"net/http"
	"time"
)

// HealthStatus is the body of GET /health.
type HealthStatus struct {
	Status            string  `json:"status"`
	Version           string  `json:"version,omitempty"`
	DatabaseConnected bool    `json:"database_connected"`
	Breaker           string  `json:"breaker,omitempty"`
	Uptime            float64 `json:"uptime_seconds"`
}

// Health handles GET /health. It reports "degraded" with 503 when the
// database does not answer a ping or the store breaker is open.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := HealthStatus{
		Status:            "healthy",
		Version:           h.version,
		DatabaseConnected: h.catalog.Ping(ctx) == nil,
		Uptime:            time.Since(h.startTime).Seconds(),
	}
	if h.breaker != nil {
		status.Breaker = h.breaker.State()
	}
	if !status.DatabaseConnected || status.Breaker == "open" {
		status.Status = "degraded"
		rw.ErrorWithDetails(http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Service degraded", status)
		return
	}
	rw.Success(status)
}
