// Curio - Cross-Media Knowledge Graph Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tomtom215/curio/internal/catalog"
	"github.com/tomtom215/curio/internal/entity"
	"github.com/tomtom215/curio/internal/metrics"
)

// Checkpointer flushes the DuckDB write-ahead log (*database.DB).
type Checkpointer interface {
	Checkpoint(ctx context.Context) error
}

// ValueLogCollector reclaims badger value-log space (*entity.BadgerStore).
type ValueLogCollector interface {
	RunGC(discardRatio float64) error
}

// Pruner drops expired entries of an in-memory cache
// (*entity.CachedExtractor).
type Pruner interface {
	Prune() int
}

// Cleaner drops expired entries of a TTL cache (*cache.TTL).
type Cleaner interface {
	Cleanup() int
}

// TitleSource lists the catalog items whose titles are warmed.
type TitleSource interface {
	AllItems(ctx context.Context, kind catalog.Kind) ([]catalog.Item, error)
}

// MaintenanceServiceConfig configures MaintenanceService. Every dependency
// is optional; a nil one skips its task.
type MaintenanceServiceConfig struct {
	Interval       time.Duration
	GCDiscardRatio float64

	DB          Checkpointer
	EntityStore ValueLogCollector
	EntityCache Pruner
	GraphCache  Cleaner

	// Warm-up runs once at start when Titles and Extractor are both set.
	Titles      TitleSource
	Extractor   entity.Extractor
	WarmupRate  float64 // titles per second; <= 0 is unlimited
	WarmupBurst int
}

// MaintenanceService performs periodic housekeeping of the stores and
// caches, and warms the entity cache with every catalog title at start.
type MaintenanceService struct {
	cfg    MaintenanceServiceConfig
	logger zerolog.Logger
	name   string
}

// NewMaintenanceService creates the service. A non-positive interval
// selects one hour and a discard ratio outside (0, 1) selects 0.5.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewMaintenanceService(cfg MaintenanceServiceConfig, logger zerolog.Logger) *MaintenanceService {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Hour
	}
	if cfg.GCDiscardRatio <= 0 || cfg.GCDiscardRatio >= 1 {
		cfg.GCDiscardRatio = 0.5
	}
	if cfg.WarmupBurst < 1 {
		cfg.WarmupBurst = 1
	}
	return &MaintenanceService{
		cfg:    cfg,
		logger: logger.With().Str("service", "maintenance").Logger(),
		name:   "maintenance-service",
	}
}

// Serve implements suture.Service.
func (s *MaintenanceService) Serve(ctx context.Context) error {
	s.logger.Info().Dur("interval", s.cfg.Interval).Msg("maintenance service starting")

	if s.cfg.Titles != nil && s.cfg.Extractor != nil {
		warmed, err := s.Warmup(ctx)
		switch {
		case errors.Is(err, context.Canceled):
			return ctx.Err()
		case err != nil:
			s.logger.Warn().Err(err).Int("warmed", warmed).Msg("entity warm-up stopped early")
		default:
			s.logger.Info().Int("warmed", warmed).Msg("entity warm-up complete")
		}
	}

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("maintenance service shutting down")
			return ctx.Err()
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}

// MaintenanceReport summarizes one maintenance pass.
type MaintenanceReport struct {
	Checkpointed  bool
	GCRan         bool
	EntityPruned  int
	GraphsExpired int
	Errors        int
}

// RunOnce performs one maintenance pass. Task failures are logged and
// counted; they never stop the remaining tasks.
func (s *MaintenanceService) RunOnce(ctx context.Context) MaintenanceReport {
	var rep MaintenanceReport
	start := time.Now()

	if s.cfg.DB != nil {
		if err := s.cfg.DB.Checkpoint(ctx); err != nil {
			rep.Errors++
			s.logger.Warn().Err(err).Msg("duckdb checkpoint failed")
		} else {
			rep.Checkpointed = true
		}
	}
	if s.cfg.EntityStore != nil {
		if err := s.cfg.EntityStore.RunGC(s.cfg.GCDiscardRatio); err != nil {
			rep.Errors++
			s.logger.Warn().Err(err).Msg("badger value log GC failed")
		} else {
			rep.GCRan = true
		}
	}
	if s.cfg.EntityCache != nil {
		rep.EntityPruned = s.cfg.EntityCache.Prune()
	}
	if s.cfg.GraphCache != nil {
		rep.GraphsExpired = s.cfg.GraphCache.Cleanup()
		if rep.GraphsExpired > 0 {
			metrics.CacheEvictions.WithLabelValues("graph").Add(float64(rep.GraphsExpired))
		}
	}

	s.logger.Debug().
		Dur("duration", time.Since(start)).
		Int("entity_pruned", rep.EntityPruned).
		Int("graphs_expired", rep.GraphsExpired).
		Int("errors", rep.Errors).
		Msg("maintenance pass complete")
	return rep
}

// Warmup extracts entities for every catalog title, paced by a token bucket,
// and returns how many titles were processed. Extraction failures of single
// titles are skipped.
func (s *MaintenanceService) Warmup(ctx context.Context) (int, error) {
	limit := rate.Inf
	if s.cfg.WarmupRate > 0 {
		limit = rate.Limit(s.cfg.WarmupRate)
	}
	limiter := rate.NewLimiter(limit, s.cfg.WarmupBurst)

	warmed := 0
	for _, kind := range catalog.Kinds {
		items, err := s.cfg.Titles.AllItems(ctx, kind)
		if err != nil {
			return warmed, err
		}
		for _, it := range items {
			if err := limiter.Wait(ctx); err != nil {
				if ctx.Err() != nil {
					return warmed, ctx.Err()
				}
				return warmed, err
			}
			if _, err := s.cfg.Extractor.Extract(ctx, it.Title); err != nil {
				if ctx.Err() != nil {
					return warmed, ctx.Err()
				}
				s.logger.Debug().Err(err).Str("title", it.Title).Msg("warm-up extraction failed")
				continue
			}
			warmed++
		}
	}
	return warmed, nil
}

// String implements fmt.Stringer.
func (s *MaintenanceService) String() string {
	return s.name
}
