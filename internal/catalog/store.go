// Curio - Cross-Media Knowledge Graph Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package catalog

import "context"

// CatalogStore reads catalog items.
type CatalogStore interface {
	// GetItem returns the item for ref or an error wrapping ErrNotFound.
	GetItem(ctx context.Context, ref Ref) (Item, error)

	// AllItems returns every item of one kind in store order.
	AllItems(ctx context.Context, kind Kind) ([]Item, error)

	// FindByTitle returns items of kind whose title contains text,
	// case-insensitively, in store order.
	FindByTitle(ctx context.Context, kind Kind, text string) ([]Item, error)
}

// TagStore reads aggregated tag counts.
type TagStore interface {
	TagsFor(ctx context.Context, ref Ref) (TagVector, error)
}

// RecentStore lists the newest items.
type RecentStore interface {
	// Recent returns up to n items across all kinds, newest first.
	Recent(ctx context.Context, n int) ([]Item, error)
}

// Store is the full read surface the recommendation engine depends on.
type Store interface {
	CatalogStore
	TagStore
	RecentStore
}
