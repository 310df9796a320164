// Curio - Cross-Media Knowledge Graph Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package recommend

import (
	"context"
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/tomtom215/curio/internal/catalog"
	"github.com/tomtom215/curio/internal/graph"
	"github.com/tomtom215/curio/internal/similarity"
)

// Builder assembles the recommendation graph from selected candidates.
type Builder struct {
	store  catalog.Store
	scorer *similarity.Scorer
	logger zerolog.Logger
}

// NewBuilder creates a builder reading from store.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewBuilder(store catalog.Store, scorer *similarity.Scorer, logger zerolog.Logger) *Builder {
	return &Builder{
		store:  store,
		scorer: scorer,
		logger: logger.With().Str("component", "builder").Logger(),
	}
}

// Build adds the seed and the topN best candidates as nodes, then rescores
// every unordered pair of nodes and connects those scoring at least
// threshold. Edge weight is the score rounded half to even.
func (b *Builder) Build(ctx context.Context, seed catalog.Ref, cands *Candidates, topN int, threshold float64) (*graph.Graph, error) {
	g := graph.New()
	refs := []catalog.Ref{seed}
	g.AddNode(seed.String())
	for _, c := range cands.Top(topN) {
		if g.AddNode(c.Ref.String()) {
			refs = append(refs, c.Ref)
		}
	}

	// Each node's title and tags are fetched once up front; every pair is
	// still rescored from them.
	nodes := make([]similarity.Prepared, len(refs))
	for i, ref := range refs {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("build graph: %w", err)
		}
		in, err := loadInput(ctx, b.store, ref)
		if err != nil {
			return nil, fmt.Errorf("load node %s: %w", ref, err)
		}
		nodes[i] = b.scorer.Prepare(ctx, in)
	}

	for i := 0; i < len(refs); i++ {
		for j := i + 1; j < len(refs); j++ {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("build graph: %w", err)
			}

			score := b.scorer.ScorePrepared(nodes[i], nodes[j])
			if score < threshold {
				continue
			}
			if err := g.AddEdge(refs[i].String(), refs[j].String(), edgeWeight(score)); err != nil {
				return nil, fmt.Errorf("add edge %s - %s: %w", refs[i], refs[j], err)
			}
		}
	}

	b.logger.Debug().
		Str("seed", seed.String()).
		Int("nodes", g.NodeCount()).
		Int("edges", g.EdgeCount()).
		Msg("Graph built")

	return g, nil
}

func edgeWeight(score float64) int {
	w := int(math.RoundToEven(score))
	if w > int(similarity.MaxScore) {
		return int(similarity.MaxScore)
	}
	return w
}
