// Curio - Cross-Media Knowledge Graph Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

/*
Package services provides suture.Service wrappers for Curio components.

HTTPServerService translates the blocking ListenAndServe of *http.Server
into suture's context-aware Serve and shuts the server down gracefully on
cancellation.

MaintenanceService warms the entity cache with every catalog title at start,
paced by a golang.org/x/time/rate token bucket, then ticks on an interval:

  - DuckDB CHECKPOINT
  - badger value-log GC of the persistent entity cache
  - expiry of the in-memory entity LRU
  - expiry of the graph response cache

Its dependencies are small interfaces (Checkpointer, ValueLogCollector,
Pruner, Cleaner, TitleSource); any of them may be nil. A failing task is
logged and the next one still runs.
*/
package services
