// Curio - Cross-Media Knowledge Graph Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package recommend

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/curio/internal/catalog"
	"github.com/tomtom215/curio/internal/entity"
	"github.com/tomtom215/curio/internal/graph"
	"github.com/tomtom215/curio/internal/logging"
	"github.com/tomtom215/curio/internal/metrics"
	"github.com/tomtom215/curio/internal/similarity"
)

// Result is a generated recommendation graph with display metadata for every
// node.
type Result struct {
	Seed     string                    `json:"seed"`
	Graph    graph.Payload             `json:"graph"`
	Metadata map[string]catalog.Fields `json:"metadata"`
}

// Engine generates recommendation graphs. It is safe for concurrent use.
type Engine struct {
	config   *Config
	store    catalog.Store
	scorer   *similarity.Scorer
	selector *Selector
	builder  *Builder
	logger   zerolog.Logger
}

// NewEngine creates an engine over store. A nil cfg uses DefaultConfig; a nil
// extractor scores without the entity signal.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, store catalog.Store, extractor entity.Extractor, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if store == nil {
		return nil, errors.New("recommend: store is required")
	}

	logger = logger.With().Str("component", "recommend").Logger()
	scorer := similarity.NewScorer(extractor, cfg.Weights, logger)
	return &Engine{
		config:   cfg,
		store:    store,
		scorer:   scorer,
		selector: NewSelector(store, scorer, logger),
		builder:  NewBuilder(store, scorer, logger),
		logger:   logger,
	}, nil
}

// Config returns the engine configuration.
func (e *Engine) Config() Config {
	return *e.config
}

// DefaultParams returns the configured default request parameters.
func (e *Engine) DefaultParams() Params {
	return Params{Threshold: e.config.Defaults.Threshold, TopN: e.config.Defaults.TopN}
}

// Scorer returns the engine's similarity scorer.
func (e *Engine) Scorer() *similarity.Scorer {
	return e.scorer
}

// Generate builds the recommendation graph around seed.
func (e *Engine) Generate(ctx context.Context, seed catalog.Ref, p Params) (*Result, error) {
	if err := p.Validate(); err != nil {
		metrics.RecordGraphRequest("invalid", 0, 0)
		return nil, err
	}
	if !seed.Valid() {
		metrics.RecordGraphRequest("invalid", 0, 0)
		return nil, fmt.Errorf("seed %q: %w", seed, catalog.ErrInvalidRef)
	}

	if e.config.Limits.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.config.Limits.RequestTimeout)
		defer cancel()
	}

	logger := logging.Ctx(ctx).With().
		Str("component", "recommend").
		Str("seed", seed.String()).
		Float64("threshold", p.Threshold).
		Int("top_n", p.TopN).
		Logger()

	start := time.Now()
	cands, err := e.selector.Select(ctx, seed, p.Threshold)
	metrics.RecordGraphPhase("select", time.Since(start))
	if err != nil {
		metrics.RecordGraphRequest(outcome(err), 0, 0)
		return nil, err
	}

	start = time.Now()
	g, err := e.builder.Build(ctx, seed, cands, p.TopN, p.Threshold)
	metrics.RecordGraphPhase("build", time.Since(start))
	if err != nil {
		metrics.RecordGraphRequest(outcome(err), 0, 0)
		return nil, err
	}

	payload := graph.Serialize(g)

	start = time.Now()
	meta, err := e.Metadata(ctx, payload.NodeIDs())
	metrics.RecordGraphPhase("metadata", time.Since(start))
	if err != nil {
		metrics.RecordGraphRequest(outcome(err), 0, 0)
		return nil, err
	}

	metrics.RecordGraphRequest("ok", g.NodeCount(), g.EdgeCount())
	logger.Info().
		Int("candidates", cands.Len()).
		Int("nodes", g.NodeCount()).
		Int("edges", g.EdgeCount()).
		Msg("Recommendation graph generated")

	return &Result{Seed: seed.String(), Graph: payload, Metadata: meta}, nil
}

// GenerateByTitle resolves the seed by title and builds its graph.
func (e *Engine) GenerateByTitle(ctx context.Context, kind catalog.Kind, title string, p Params) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	seed, err := e.ResolveSeed(ctx, kind, title)
	if err != nil {
		return nil, err
	}
	return e.Generate(ctx, seed.Ref(), p)
}

// ResolveSeed returns the first item of kind whose title contains title,
// case-insensitively.
func (e *Engine) ResolveSeed(ctx context.Context, kind catalog.Kind, title string) (catalog.Item, error) {
	if !kind.Valid() {
		return catalog.Item{}, fmt.Errorf("kind %q: %w", kind, catalog.ErrInvalidRef)
	}
	items, err := e.store.FindByTitle(ctx, kind, title)
	if err != nil {
		return catalog.Item{}, fmt.Errorf("find %s by title: %w", kind, err)
	}
	if len(items) == 0 {
		return catalog.Item{}, fmt.Errorf("no %s titled %q: %w", kind, title, catalog.ErrNotFound)
	}
	return items[0], nil
}

// Metadata resolves each node id to the display fields of its item.
func (e *Engine) Metadata(ctx context.Context, nodes []string) (map[string]catalog.Fields, error) {
	meta := make(map[string]catalog.Fields, len(nodes))
	for _, id := range nodes {
		ref, err := catalog.ParseRef(id)
		if err != nil {
			return nil, err
		}
		item, err := e.store.GetItem(ctx, ref)
		if err != nil {
			return nil, fmt.Errorf("metadata for %s: %w", id, err)
		}
		fields, err := catalog.Project(item)
		if err != nil {
			return nil, fmt.Errorf("metadata for %s: %w", id, err)
		}
		meta[id] = fields
	}
	return meta, nil
}

// Recent returns up to n of the newest items, capped by Limits.MaxRecent.
func (e *Engine) Recent(ctx context.Context, n int) ([]catalog.Item, error) {
	if n < 1 {
		n = 1
	}
	if n > e.config.Limits.MaxRecent {
		n = e.config.Limits.MaxRecent
	}
	items, err := e.store.Recent(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("recent items: %w", err)
	}
	return items, nil
}

func outcome(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return "timeout"
	case errors.Is(err, catalog.ErrNotFound):
		return "not_found"
	case errors.Is(err, catalog.ErrStoreUnavailable):
		return "unavailable"
	default:
		return "error"
	}
}
