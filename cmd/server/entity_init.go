// Curio - Cross-Media Knowledge Graph Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package main

import (
	"github.com/rs/zerolog"

	"github.com/tomtom215/curio/internal/config"
	"github.com/tomtom215/curio/internal/entity"
)

// entityComponents holds the extraction pipeline. cached and store are nil
// when caching is disabled or no cache directory is configured.
type entityComponents struct {
	extractor entity.Extractor
	cached    *entity.CachedExtractor
	store     *entity.BadgerStore
	logger    zerolog.Logger
}

// initEntities loads the prose model and layers the LRU and badger caches
// over it when enabled. A badger store that fails to open is logged and
// skipped; the in-memory cache still works without it.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func initEntities(cfg config.EntityCacheConfig, logger zerolog.Logger) (*entityComponents, error) {
	prose := entity.NewProseExtractor(cfg.ModelPath)
	if err := prose.Load(); err != nil {
		return nil, err
	}

	comps := &entityComponents{extractor: prose, logger: logger}
	if !cfg.Enabled {
		logger.Info().Msg("Entity cache disabled")
		return comps, nil
	}

	var store entity.Store
	if cfg.Dir != "" {
		bs, err := entity.OpenBadgerStore(cfg.Dir)
		if err != nil {
			logger.Warn().Err(err).Str("dir", cfg.Dir).Msg("Persistent entity cache unavailable, using memory only")
		} else {
			comps.store = bs
			store = bs
			if n, err := bs.Count(); err == nil {
				logger.Info().Str("dir", cfg.Dir).Int("entries", n).Msg("Persistent entity cache opened")
			}
		}
	}

	comps.cached = entity.NewCachedExtractor(prose, cfg.Capacity, cfg.TTL, store, logger)
	comps.extractor = comps.cached
	return comps, nil
}

// Close releases the badger store if one was opened.
func (c *entityComponents) Close() {
	if c.store == nil {
		return
	}
	if err := c.store.Close(); err != nil {
		c.logger.Error().Err(err).Msg("Error closing entity store")
	}
}
