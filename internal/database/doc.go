// Curio - Cross-Media Knowledge Graph Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

/*
Package database stores the Curio catalog in DuckDB.

# Schema

One table per media kind (books, films, games) with its own id sequence,
a shared tags table, item_tags holding the aggregated count per item and
tag, and user_upvotes recording which user voted for which tag. Every item
row carries added_seq from a shared sequence so Recent can order across
kinds without timestamps.

# Store Interface

DB implements catalog.Store for the recommendation engine. Write paths
(AddItem, AddTags, ToggleUpvote, SetTagCount) are DB methods only. Driver
errors are wrapped with catalog.ErrStoreUnavailable; missing rows map to
catalog.ErrNotFound.

# Circuit Breaker

BreakerStore wraps any catalog.Store with a gobreaker circuit. Not-found
results never count as failures.

	db, err := database.New(&cfg.Database)
	store := database.NewBreakerStore(db, cfg.Breaker)

# Metrics

Every query records duckdb_query_duration_seconds and, on error,
duckdb_query_errors_total, labelled by operation and table.
*/
package database
