// Curio - Cross-Media Knowledge Graph Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package api

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/curio/internal/cache"
	"github.com/tomtom215/curio/internal/catalog"
	"github.com/tomtom215/curio/internal/database"
	"github.com/tomtom215/curio/internal/moderation"
	"github.com/tomtom215/curio/internal/recommend"
)

// Catalog is the write and search surface of the catalog database.
// *database.DB implements it.
type Catalog interface {
	GetItem(ctx context.Context, ref catalog.Ref) (catalog.Item, error)
	ItemTags(ctx context.Context, ref catalog.Ref) ([]catalog.Tag, error)
	AddItem(ctx context.Context, item catalog.Item) (catalog.Item, bool, error)
	AddTags(ctx context.Context, userID int64, ref catalog.Ref, raw string, pred moderation.Predicate) (database.TagResult, error)
	ToggleUpvote(ctx context.Context, userID int64, ref catalog.Ref, tagID int64) (int, error)
	Search(ctx context.Context, query string) ([]database.SearchResult, error)
	Ping(ctx context.Context) error
}

// BreakerStater reports a circuit breaker state.
type BreakerStater interface {
	State() string
}

// HandlerConfig carries the dependencies of Handler.
type HandlerConfig struct {
	Engine    *recommend.Engine
	Catalog   Catalog
	Moderator moderation.Predicate

	// Breaker is optional; when set its state is reported by /health.
	Breaker BreakerStater

	// GraphCacheTTL enables the graph response cache when positive.
	GraphCacheTTL time.Duration

	// Version is reported by /health.
	Version string
}

// Handler holds the dependencies of every API endpoint.
type Handler struct {
	engine    *recommend.Engine
	catalog   Catalog
	moderator moderation.Predicate
	breaker   BreakerStater
	graphs    *cache.TTL[*recommend.Result]
	version   string

	// graphMu orders cache stores against invalidation; graphGen counts
	// invalidations.
	graphMu  sync.Mutex
	graphGen uint64

	startTime time.Time
	logger    zerolog.Logger
}

// NewHandler validates cfg and returns a Handler.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewHandler(cfg HandlerConfig, logger zerolog.Logger) (*Handler, error) {
	if cfg.Engine == nil {
		return nil, errors.New("api: engine is required")
	}
	if cfg.Catalog == nil {
		return nil, errors.New("api: catalog is required")
	}
	if cfg.Moderator == nil {
		cfg.Moderator = moderation.NewBlocklist(nil)
	}

	h := &Handler{
		engine:    cfg.Engine,
		catalog:   cfg.Catalog,
		moderator: cfg.Moderator,
		breaker:   cfg.Breaker,
		version:   cfg.Version,
		startTime: time.Now(),
		logger:    logger.With().Str("component", "api").Logger(),
	}
	if cfg.GraphCacheTTL > 0 {
		h.graphs = cache.NewTTL[*recommend.Result](cfg.GraphCacheTTL)
	}
	return h, nil
}

// GraphCache returns the graph response cache, or nil when disabled.
func (h *Handler) GraphCache() *cache.TTL[*recommend.Result] {
	return h.graphs
}

// graphGeneration returns the current invalidation generation. A graph
// computed from reads made after this call may be stored with storeGraph.
func (h *Handler) graphGeneration() uint64 {
	h.graphMu.Lock()
	defer h.graphMu.Unlock()
	return h.graphGen
}

// storeGraph caches res unless the cache was invalidated after gen was taken.
func (h *Handler) storeGraph(key string, res *recommend.Result, gen uint64) bool {
	if h.graphs == nil {
		return false
	}
	h.graphMu.Lock()
	defer h.graphMu.Unlock()
	if h.graphGen != gen {
		return false
	}
	h.graphs.Set(key, res)
	return true
}

// invalidateGraphs drops cached graphs after a catalog or tag write.
func (h *Handler) invalidateGraphs() {
	if h.graphs == nil {
		return
	}
	h.graphMu.Lock()
	h.graphGen++
	n := h.graphs.Clear()
	h.graphMu.Unlock()
	if n > 0 {
		h.logger.Debug().Int("entries", n).Msg("Graph cache invalidated")
	}
}
