// Curio - Cross-Media Knowledge Graph Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package cache

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/goccy/go-json"
)

type ttlEntry[V any] struct {
	value     V
	expiresAt time.Time
}

// TTL is a thread-safe map cache where every entry expires ttl after it was
// set. It has no size bound; callers invalidate with Clear when the
// underlying data changes and call Cleanup periodically.
type TTL[V any] struct {
	mu      sync.RWMutex
	entries map[string]ttlEntry[V]
	ttl     time.Duration
	now     func() time.Time

	stats Stats
}

// Stats tracks cache performance counters.
type Stats struct {
	Hits        int64
	Misses      int64
	Evictions   int64
	Keys        int
	LastCleanup time.Time
}

// NewTTL creates a cache whose entries live for ttl. A non-positive ttl
// selects the package default.
func NewTTL[V any](ttl time.Duration) *TTL[V] {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &TTL[V]{
		entries: make(map[string]ttlEntry[V]),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the value for key if present and not expired. An expired
// entry is removed and counted as a miss.
func (c *TTL[V]) Get(key string) (V, bool) {
	var zero V

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		c.mu.Lock()
		c.stats.Misses++
		c.mu.Unlock()
		return zero, false
	}

	if c.now().After(entry.expiresAt) {
		c.mu.Lock()
		// recheck under the write lock; a concurrent Set may have refreshed it
		if cur, still := c.entries[key]; still && c.now().After(cur.expiresAt) {
			delete(c.entries, key)
			c.stats.Evictions++
		}
		c.stats.Misses++
		c.mu.Unlock()
		return zero, false
	}

	c.mu.Lock()
	c.stats.Hits++
	c.mu.Unlock()
	return entry.value, true
}

// Set stores value under key with the default TTL.
func (c *TTL[V]) Set(key string, value V) {
	c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL stores value under key for ttl.
func (c *TTL[V]) SetWithTTL(key string, value V, ttl time.Duration) {
	c.mu.Lock()
	c.entries[key] = ttlEntry[V]{value: value, expiresAt: c.now().Add(ttl)}
	c.mu.Unlock()
}

// Delete removes key. Missing keys are ignored.
func (c *TTL[V]) Delete(key string) {
	c.mu.Lock()
	if _, ok := c.entries[key]; ok {
		delete(c.entries, key)
		c.stats.Evictions++
	}
	c.mu.Unlock()
}

// Clear removes every entry and returns how many were dropped.
func (c *TTL[V]) Clear() int {
	c.mu.Lock()
	n := len(c.entries)
	c.entries = make(map[string]ttlEntry[V])
	c.stats.Evictions += int64(n)
	c.mu.Unlock()
	return n
}

// Cleanup removes expired entries and returns how many were dropped.
func (c *TTL[V]) Cleanup() int {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, key)
			removed++
		}
	}
	c.stats.Evictions += int64(removed)
	c.stats.LastCleanup = now
	return removed
}

// Len returns the number of stored entries, including expired ones not yet removed.
func (c *TTL[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// GetStats returns a snapshot of the counters.
func (c *TTL[V]) GetStats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s := c.stats
	s.Keys = len(c.entries)
	return s
}

// HitRate returns the hit rate as a percentage.
func (c *TTL[V]) HitRate() float64 {
	s := c.GetStats()
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total) * 100
}

// GenerateKey derives a compact cache key from a method name and its parameters.
func GenerateKey(method string, params interface{}) string {
	data, err := json.Marshal(params)
	if err != nil {
		return fmt.Sprintf("%s:%v", method, params)
	}
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%x", method, hash[:16])
}
