// Curio - Cross-Media Knowledge Graph Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

/*
Package similarity scores how related two catalog items are.

Three signals are combined with fixed weights:

	score = round(0.3*lexical + 0.6*tag_cosine + 0.1*entity_overlap, 2) * 10

The signals are:

  - lexical: Levenshtein ratio of the titles (go-edlib LCS)
  - tag_cosine: cosine of the tag count vectors over the union of tag ids
  - entity_overlap: Jaccard index of the named entities in the titles

The tag cosine is undefined when either item has no tags. That NaN is kept
in the weighted sum and the whole score collapses to 0, even when the titles
are identical. Items without tags are never related to anything.

Rounding to two decimals works on the exact binary value of the composite
and sends exact ties to the even digit, so 0.125 becomes 0.12.
*/
package similarity
