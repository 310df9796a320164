// Curio - Cross-Media Knowledge Graph Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

/*
Package recommend builds cross-media recommendation graphs.

Given a seed item, the engine scores every other book, film and game in the
catalog against it, keeps the best-scoring candidates and connects every pair
of selected nodes whose similarity clears the user's threshold:

	seed ref + Params
	    │
	    ▼
	Selector.Select   scan book, film, game; skip seed; keep score >= threshold
	    │
	    ▼
	Candidates        insertion-ordered (ref, score) association
	    │
	    ▼
	Builder.Build     stable sort, top N, pairwise rescoring, edge threshold
	    │
	    ▼
	graph.Serialize + Engine.Metadata

# Parameters

Threshold is on the 0-10 score scale and is used twice: once to filter
candidates against the seed and once to filter edges between any two nodes.
TopN is in [1, 10], so a graph has at most 11 nodes and the pairwise phase
scores at most 55 pairs.

Invalid parameters are rejected with ErrInvalidParameters before any store
access; the wrapped *validation.RequestValidationError carries field details.

# Deadlines

Config.Limits.RequestTimeout bounds the catalog scan and the pairwise phase.
Both check the context between items, so an expired deadline surfaces as an
error wrapping context.DeadlineExceeded.

# Thread Safety

Engine, Selector and Builder hold no per-request state and are safe for
concurrent use. Each request builds and discards its own graph.
*/
package recommend
