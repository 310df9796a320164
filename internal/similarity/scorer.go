// Curio - Cross-Media Knowledge Graph Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package similarity

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/tomtom215/curio/internal/catalog"
	"github.com/tomtom215/curio/internal/entity"
)

// MaxScore is the upper bound of a similarity score.
const MaxScore = 10.0

// Weights are the coefficients of the three signals in the composite score.
type Weights struct {
	Lexical  float64 `koanf:"lexical" validate:"gte=0,lte=1"`
	Tags     float64 `koanf:"tags" validate:"gte=0,lte=1"`
	Entities float64 `koanf:"entities" validate:"gte=0,lte=1"`
}

// DefaultWeights returns the standard 0.3 / 0.6 / 0.1 weighting.
func DefaultWeights() Weights {
	return Weights{Lexical: 0.3, Tags: 0.6, Entities: 0.1}
}

// Validate rejects weights that could push a score above MaxScore.
func (w Weights) Validate() error {
	for name, v := range map[string]float64{"lexical": w.Lexical, "tags": w.Tags, "entities": w.Entities} {
		if v < 0 || v > 1 || math.IsNaN(v) {
			return fmt.Errorf("similarity weight %s must be in [0, 1], got %v", name, v)
		}
	}
	if sum := w.Lexical + w.Tags + w.Entities; sum > 1+1e-9 {
		return fmt.Errorf("similarity weights must sum to at most 1, got %v", sum)
	}
	return nil
}

// Combine merges the three signals into a score in [0, MaxScore]. The raw
// composite is rounded to two decimals before scaling; a NaN composite,
// which happens whenever the tag cosine is undefined, scores 0.
func Combine(w Weights, lexical, tagCosine, overlap float64) float64 {
	composite := w.Lexical*lexical + w.Tags*tagCosine + w.Entities*overlap
	if math.IsNaN(composite) {
		return 0
	}
	score := round2(composite) * MaxScore
	return math.Max(0, math.Min(MaxScore, score))
}

// round2 rounds x to two decimals using the exact binary value of x, with
// exact ties going to the even digit (0.125 -> 0.12, 2.675 -> 2.67).
func round2(x float64) float64 {
	if math.IsInf(x, 0) {
		return x
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(x, 'f', 2, 64), 64)
	if err != nil {
		return math.Round(x*100) / 100
	}
	return r
}

// Input is one side of a comparison.
type Input struct {
	Title string
	Tags  catalog.TagVector
}

// Prepared is an Input with its entities already extracted, so one item can be
// compared against many without repeating extraction.
type Prepared struct {
	Input
	Entities entity.Set
}

// Breakdown reports the individual signals behind a score.
type Breakdown struct {
	Lexical   float64
	TagCosine float64
	Overlap   float64
	Score     float64
}

// Scorer computes pairwise similarity. It holds no per-request state and is
// safe for concurrent use when its Extractor is.
type Scorer struct {
	weights   Weights
	extractor entity.Extractor
	logger    zerolog.Logger
}

// NewScorer returns a scorer using extractor for the entity signal.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewScorer(extractor entity.Extractor, weights Weights, logger zerolog.Logger) *Scorer {
	return &Scorer{
		weights:   weights,
		extractor: extractor,
		logger:    logger.With().Str("component", "similarity").Logger(),
	}
}

// Weights returns the scorer's weights.
func (s *Scorer) Weights() Weights {
	return s.weights
}

// Prepare extracts entities for in. Extraction failures never fail scoring:
// they are logged and the title is treated as having no entities.
func (s *Scorer) Prepare(ctx context.Context, in Input) Prepared {
	p := Prepared{Input: in, Entities: entity.Set{}}
	if s.extractor == nil {
		return p
	}

	set, err := s.extractor.Extract(ctx, in.Title)
	if err != nil {
		s.logger.Warn().Err(err).Str("title", in.Title).Msg("Entity extraction failed, scoring without entities")
		return p
	}
	if set != nil {
		p.Entities = set
	}
	return p
}

// Score returns the similarity of a and b in [0, MaxScore].
func (s *Scorer) Score(ctx context.Context, a, b Input) float64 {
	return s.ScorePrepared(s.Prepare(ctx, a), s.Prepare(ctx, b))
}

// ScorePrepared scores two prepared inputs.
func (s *Scorer) ScorePrepared(a, b Prepared) float64 {
	return s.Explain(a, b).Score
}

// Explain scores two prepared inputs and returns each signal.
func (s *Scorer) Explain(a, b Prepared) Breakdown {
	br := Breakdown{
		Lexical:   Lexical(a.Title, b.Title),
		TagCosine: TagCosine(a.Tags, b.Tags),
		Overlap:   EntityOverlap(a.Entities, b.Entities),
	}
	br.Score = Combine(s.weights, br.Lexical, br.TagCosine, br.Overlap)
	return br
}
