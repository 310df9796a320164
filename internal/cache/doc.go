// Curio - Cross-Media Knowledge Graph Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

/*
Package cache provides thread-safe in-memory caches.

  - LRU: bounded least recently used cache with per-entry TTL. Backs the
    in-memory layer of entity extraction.
  - TTL: unbounded map cache with expiration. Backs graph responses in the
    HTTP API, cleared whenever tags or items change.

Both expire lazily on Get; LRU.CleanupExpired and TTL.Cleanup drop expired
entries in bulk and are called by the maintenance service.

# Usage

	responses := cache.NewTTL[*recommend.Result](time.Minute)
	key := cache.GenerateKey("graph", params)
	if res, ok := responses.Get(key); ok {
	    return res
	}
*/
package cache
