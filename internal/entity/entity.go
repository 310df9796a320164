// Curio - Cross-Media Knowledge Graph Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

// Package entity extracts named entities from item titles.
//
// The default extractor runs the prose NER model, loaded once per process and
// shared read-only by every caller. CachedExtractor puts an in-memory LRU and
// an optional badger store in front of it, since titles are re-scored on every
// graph request.
package entity

import "context"

// Set maps entity text to its category label, for example
// {"Frank Herbert": "PERSON"}. A nil or empty Set means no entities.
type Set map[string]string

// Common returns the number of entity texts present in both sets. Labels are
// not compared.
func (s Set) Common(other Set) int {
	small, large := s, other
	if len(small) > len(large) {
		small, large = large, small
	}
	n := 0
	for text := range small {
		if _, ok := large[text]; ok {
			n++
		}
	}
	return n
}

// Extractor returns the entities recognised in a title. Implementations are
// safe for concurrent use; an empty title yields an empty set and no error.
type Extractor interface {
	Extract(ctx context.Context, title string) (Set, error)
}

// ExtractorFunc adapts a function to Extractor.
type ExtractorFunc func(ctx context.Context, title string) (Set, error)

// Extract implements Extractor.
func (f ExtractorFunc) Extract(ctx context.Context, title string) (Set, error) {
	return f(ctx, title)
}
