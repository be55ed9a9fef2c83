// Roadwatch - Traffic Camera Aggregation and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roadwatch

// Package cache provides the in-process TTL cache used for raw upstream
// feed payloads.
//
// Each provider adapter owns one cache keyed by region id. Only the raw
// payload is cached, never normalized cameras; normalization runs on every
// request so canonical records are always rebuilt from the same snapshot.
// The cache is deliberately per-process: camera staleness under a minute is
// acceptable and a distributed cache would be disproportionate to that
// freshness requirement.
package cache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/tomtom215/roadwatch/internal/metrics"
)

// Entry is a cached raw payload with its expiration time.
type Entry struct {
	Data      interface{}
	ExpiresAt time.Time
}

// TTLCache is a thread-safe in-memory cache with a fixed TTL and
// single-flight fill: concurrent misses for the same key trigger exactly
// one upstream call per process.
type TTLCache struct {
	mu      sync.RWMutex
	entries map[string]Entry
	ttl     time.Duration

	// name labels this cache's Prometheus series, e.g. "caltrans-feed".
	name string

	group singleflight.Group
}

// New creates a TTL cache and starts a background cleanup goroutine that
// removes expired entries. The goroutine runs for the process lifetime;
// there is no explicit teardown because the key space is tiny (one entry
// per upstream region).
func New(name string, ttl time.Duration) *TTLCache {
	c := &TTLCache{
		entries: make(map[string]Entry),
		ttl:     ttl,
		name:    name,
	}
	go c.cleanupLoop()
	return c
}

// Get returns the cached value for key if present and unexpired.
func (c *TTLCache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	entry, exists := c.entries[key]
	c.mu.RUnlock()

	if !exists {
		metrics.FeedCacheMisses.WithLabelValues(c.name).Inc()
		return nil, false
	}

	if time.Now().After(entry.ExpiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		metrics.FeedCacheMisses.WithLabelValues(c.name).Inc()
		metrics.FeedCacheEvictions.WithLabelValues(c.name).Inc()
		return nil, false
	}

	metrics.FeedCacheHits.WithLabelValues(c.name).Inc()
	return entry.Data, true
}

// Set stores a value with the cache's TTL. Last writer wins; concurrent
// writers for the same key always carry equivalent data, so the race is a
// wasted upstream call at worst, never corruption.
func (c *TTLCache) Set(key string, value interface{}) {
	c.mu.Lock()
	c.entries[key] = Entry{
		Data:      value,
		ExpiresAt: time.Now().Add(c.ttl),
	}
	size := len(c.entries)
	c.mu.Unlock()

	metrics.FeedCacheEntries.WithLabelValues(c.name).Set(float64(size))
}

// GetOrFill returns the cached value for key, filling it via fill on a
// miss. Concurrent callers missing on the same key share a single fill
// call (singleflight); the fill result is cached only on success.
//
// The fill function receives the context of the caller that initiated the
// shared call. Cancellation of other waiters does not abort the in-flight
// fill; they simply receive its result.
func (c *TTLCache) GetOrFill(ctx context.Context, key string, fill func(ctx context.Context) (interface{}, error)) (interface{}, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		// Re-check: another caller may have completed a fill between our
		// miss and acquiring the flight.
		if v, ok := c.Get(key); ok {
			return v, nil
		}
		v, err := fill(ctx)
		if err != nil {
			return nil, err
		}
		c.Set(key, v)
		return v, nil
	})
	return v, err
}

// Delete removes a single entry.
func (c *TTLCache) Delete(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	size := len(c.entries)
	c.mu.Unlock()

	metrics.FeedCacheEvictions.WithLabelValues(c.name).Inc()
	metrics.FeedCacheEntries.WithLabelValues(c.name).Set(float64(size))
}

// Clear removes all entries.
func (c *TTLCache) Clear() {
	c.mu.Lock()
	evicted := len(c.entries)
	c.entries = make(map[string]Entry)
	c.mu.Unlock()

	metrics.FeedCacheEvictions.WithLabelValues(c.name).Add(float64(evicted))
	metrics.FeedCacheEntries.WithLabelValues(c.name).Set(0)
}

// Len returns the number of entries, including any not yet swept.
func (c *TTLCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// cleanupLoop sweeps expired entries periodically. The sweep interval is
// the TTL itself, floored at one second so sub-second TTLs in tests do not
// spin.
func (c *TTLCache) cleanupLoop() {
	interval := c.ttl
	if interval < time.Second {
		interval = time.Second
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		evicted := 0

		c.mu.Lock()
		for key, entry := range c.entries {
			if now.After(entry.ExpiresAt) {
				delete(c.entries, key)
				evicted++
			}
		}
		size := len(c.entries)
		c.mu.Unlock()

		if evicted > 0 {
			metrics.FeedCacheEvictions.WithLabelValues(c.name).Add(float64(evicted))
			metrics.FeedCacheEntries.WithLabelValues(c.name).Set(float64(size))
		}
	}
}
