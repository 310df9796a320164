// Curio - Cross-Media Knowledge Graph Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

// Package catalog defines the media catalog data model shared by every Curio
// component: items (books, films and games), item references, tag vectors and
// the storage interfaces the recommendation core consumes.
//
// # Item Kinds
//
// The catalog is a closed set of three kinds. Every dispatch on Kind is an
// exhaustive switch; an unknown kind is always an error and never falls
// through to a default variant:
//
//	switch item.Kind {
//	case catalog.KindBook:
//	case catalog.KindFilm:
//	case catalog.KindGame:
//	default:
//	    return catalog.ErrInvalidRef
//	}
//
// # References
//
// A Ref identifies an item across kinds. Its string form "{id} {kind}"
// (for example "12 book") is the node identifier used in rendered graphs and
// the key of the metadata map returned to clients:
//
//	ref, err := catalog.ParseRef("12 book")
//	fmt.Println(ref.String()) // "12 book"
//
// # Storage
//
// CatalogStore and TagStore are implemented by the database package (DuckDB)
// and wrapped by a circuit breaker. Implementations wrap driver failures with
// ErrStoreUnavailable and report missing items with ErrNotFound.
package catalog
