// Curio - Cross-Media Knowledge Graph Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package entity

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/curio/internal/cache"
	"github.com/tomtom215/curio/internal/metrics"
)

const (
	memoryCacheType = "entity_memory"
	storeCacheType  = "entity_badger"
)

// CachedExtractor serves repeated titles from memory, then from an optional
// persistent Store, before falling back to the wrapped extractor. Store
// failures are logged and treated as misses.
type CachedExtractor struct {
	next   Extractor
	memory *cache.LRU[Set]
	store  Store
	logger zerolog.Logger
}

// NewCachedExtractor wraps next. store may be nil.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewCachedExtractor(next Extractor, capacity int, ttl time.Duration, store Store, logger zerolog.Logger) *CachedExtractor {
	return &CachedExtractor{
		next:   next,
		memory: cache.NewLRU[Set](capacity, ttl),
		store:  store,
		logger: logger.With().Str("component", "entity_cache").Logger(),
	}
}

// Extract implements Extractor.
func (c *CachedExtractor) Extract(ctx context.Context, title string) (Set, error) {
	if set, ok := c.memory.Get(title); ok {
		metrics.RecordCacheLookup(memoryCacheType, true)
		return set, nil
	}
	metrics.RecordCacheLookup(memoryCacheType, false)

	if c.store != nil {
		set, ok, err := c.store.Get(ctx, title)
		switch {
		case err != nil:
			c.logger.Warn().Err(err).Str("title", title).Msg("Entity store read failed")
		case ok:
			metrics.RecordCacheLookup(storeCacheType, true)
			c.memory.Add(title, set)
			return set, nil
		default:
			metrics.RecordCacheLookup(storeCacheType, false)
		}
	}

	set, err := c.next.Extract(ctx, title)
	if err != nil {
		return nil, err
	}

	c.memory.Add(title, set)
	if c.store != nil {
		if err := c.store.Put(ctx, title, set); err != nil {
			c.logger.Warn().Err(err).Str("title", title).Msg("Entity store write failed")
		}
	}
	metrics.CacheSize.WithLabelValues(memoryCacheType).Set(float64(c.memory.Len()))
	return set, nil
}

// Prune drops expired in-memory entries and returns how many were removed.
func (c *CachedExtractor) Prune() int {
	removed := c.memory.CleanupExpired()
	if removed > 0 {
		metrics.CacheEvictions.WithLabelValues(memoryCacheType).Add(float64(removed))
	}
	metrics.CacheSize.WithLabelValues(memoryCacheType).Set(float64(c.memory.Len()))
	return removed
}
