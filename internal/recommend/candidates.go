// Curio - Cross-Media Knowledge Graph Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package recommend

import (
	"sort"

	"github.com/tomtom215/curio/internal/catalog"
)

// Candidate is a catalog item scored against the seed.
type Candidate struct {
	Ref   catalog.Ref `json:"ref"`
	Score float64     `json:"score"`
}

// Candidates is an insertion-ordered ref to score association.
// The zero value is ready to use.
type Candidates struct {
	entries []Candidate
	index   map[catalog.Ref]int
}

// Set records score for ref. A ref that is already present keeps its
// position and takes the new score.
func (c *Candidates) Set(ref catalog.Ref, score float64) {
	if c.index == nil {
		c.index = make(map[catalog.Ref]int)
	}
	if i, ok := c.index[ref]; ok {
		c.entries[i].Score = score
		return
	}
	c.index[ref] = len(c.entries)
	c.entries = append(c.entries, Candidate{Ref: ref, Score: score})
}

// Get returns the score of ref.
func (c *Candidates) Get(ref catalog.Ref) (float64, bool) {
	i, ok := c.index[ref]
	if !ok {
		return 0, false
	}
	return c.entries[i].Score, true
}

// Len returns the number of candidates.
func (c *Candidates) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

// All returns the candidates in insertion order.
func (c *Candidates) All() []Candidate {
	if c == nil {
		return nil
	}
	out := make([]Candidate, len(c.entries))
	copy(out, c.entries)
	return out
}

// Top returns the n best candidates, highest score first. Equal scores keep
// insertion order.
func (c *Candidates) Top(n int) []Candidate {
	ranked := c.All()
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	if n >= 0 && n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}
