// Curio - Cross-Media Knowledge Graph Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package recommend

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/curio/internal/catalog"
	"github.com/tomtom215/curio/internal/metrics"
	"github.com/tomtom215/curio/internal/similarity"
)

// Selector scores the catalog against a seed item.
type Selector struct {
	store  catalog.Store
	scorer *similarity.Scorer
	logger zerolog.Logger
}

// NewSelector creates a selector reading from store.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewSelector(store catalog.Store, scorer *similarity.Scorer, logger zerolog.Logger) *Selector {
	return &Selector{
		store:  store,
		scorer: scorer,
		logger: logger.With().Str("component", "selector").Logger(),
	}
}

// Select scores every catalog item except the seed, in kind order book,
// film, game and store order within a kind, and keeps those scoring at
// least threshold.
func (s *Selector) Select(ctx context.Context, seed catalog.Ref, threshold float64) (*Candidates, error) {
	seedInput, err := loadInput(ctx, s.store, seed)
	if err != nil {
		return nil, fmt.Errorf("load seed %s: %w", seed, err)
	}
	prepared := s.scorer.Prepare(ctx, seedInput)

	cands := &Candidates{}
	scored := 0
	for _, kind := range catalog.Kinds {
		items, err := s.store.AllItems(ctx, kind)
		if err != nil {
			return nil, fmt.Errorf("list %s items: %w", kind, err)
		}

		for i := range items {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("select candidates: %w", err)
			}

			ref := items[i].Ref()
			if ref == seed {
				continue
			}

			tags, err := s.store.TagsFor(ctx, ref)
			if err != nil {
				return nil, fmt.Errorf("tags for %s: %w", ref, err)
			}

			score := s.scorer.ScorePrepared(prepared, s.scorer.Prepare(ctx, similarity.Input{
				Title: items[i].Title,
				Tags:  tags,
			}))
			scored++
			if score >= threshold {
				cands.Set(ref, score)
			}
		}
	}
	metrics.CandidatesScored.Add(float64(scored))

	s.logger.Debug().
		Str("seed", seed.String()).
		Float64("threshold", threshold).
		Int("scored", scored).
		Int("kept", cands.Len()).
		Msg("Candidates selected")

	return cands, nil
}

// loadInput fetches the title and tag vector of ref.
func loadInput(ctx context.Context, store catalog.Store, ref catalog.Ref) (similarity.Input, error) {
	item, err := store.GetItem(ctx, ref)
	if err != nil {
		return similarity.Input{}, err
	}
	tags, err := store.TagsFor(ctx, ref)
	if err != nil {
		return similarity.Input{}, err
	}
	return similarity.Input{Title: item.Title, Tags: tags}, nil
}
