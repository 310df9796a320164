// Curio - Cross-Media Knowledge Graph Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package similarity

import (
	"math"
	"unicode/utf8"

	"github.com/hbollon/go-edlib"

	"github.com/tomtom215/curio/internal/catalog"
	"github.com/tomtom215/curio/internal/entity"
)

// Lexical returns the Levenshtein ratio of two titles:
// (len(a)+len(b)-d)/(len(a)+len(b)) where d is the insert/delete edit
// distance, equivalently 2*LCS/(len(a)+len(b)). Lengths are in runes and
// comparison is case-sensitive. Two empty titles are identical (1.0).
func Lexical(a, b string) float64 {
	total := utf8.RuneCountInString(a) + utf8.RuneCountInString(b)
	if total == 0 {
		return 1
	}
	return float64(2*edlib.LCS(a, b)) / float64(total)
}

// TagCosine returns the cosine similarity of two tag vectors over the union of
// their keys. It is NaN when either vector has zero magnitude; callers must
// let that propagate into the composite score.
func TagCosine(a, b catalog.TagVector) float64 {
	var dot, normA, normB float64
	for id, ca := range a {
		fa := float64(ca)
		normA += fa * fa
		if cb, ok := b[id]; ok {
			dot += fa * float64(cb)
		}
	}
	for _, cb := range b {
		fb := float64(cb)
		normB += fb * fb
	}
	if normA == 0 || normB == 0 {
		return math.NaN()
	}

	cos := dot / math.Sqrt(normA*normB)
	if cos > 1 {
		return 1
	}
	return cos
}

// EntityOverlap returns |A∩B| / (|A|+|B|-|A∩B|) over entity texts, or 0 when
// both sets are empty.
func EntityOverlap(a, b entity.Set) float64 {
	if len(a)+len(b) == 0 {
		return 0
	}
	common := a.Common(b)
	return float64(common) / float64(len(a)+len(b)-common)
}
