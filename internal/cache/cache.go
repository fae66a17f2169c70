// Package cache holds recently consolidated records keyed by ticker.
//
// The cache replaces any hidden memoization with an explicit contract: the
// owner decides the TTL and capacity, and a record always carries the time
// it was stored, so staleness is visible rather than implicit.
package cache

import (
	"sync"
	"time"

	"fiipulse/pkg/contracts/domain"
)

type entry struct {
	record   domain.ConsolidatedRecord
	storedAt time.Time
}

// Cache is a bounded, time-keyed ticker → record cache. Safe for concurrent
// use.
type Cache struct {
	mu      sync.Mutex
	ttl     time.Duration
	maxSize int
	entries map[string]entry

	// now is stubbed in tests.
	now func() time.Time
}

// New creates a cache. A maxSize of zero disables storage entirely, which
// keeps call sites free of nil checks.
func New(ttl time.Duration, maxSize int) *Cache {
	return &Cache{
		ttl:     ttl,
		maxSize: maxSize,
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Get returns the cached record for a ticker if it is still fresh.
func (c *Cache) Get(ticker string) (domain.ConsolidatedRecord, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[ticker]
	if !ok {
		return domain.ConsolidatedRecord{}, false
	}
	if c.now().Sub(e.storedAt) > c.ttl {
		delete(c.entries, ticker)
		return domain.ConsolidatedRecord{}, false
	}
	return e.record, true
}

// Put stores a record. At capacity the oldest entry is evicted first.
func (c *Cache) Put(ticker string, rec domain.ConsolidatedRecord) {
	if c.maxSize <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[ticker]; !exists && len(c.entries) >= c.maxSize {
		c.evictOldestLocked()
	}
	c.entries[ticker] = entry{record: rec, storedAt: c.now()}
}

// Len returns the number of stored entries, fresh or not.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Cache) evictOldestLocked() {
	var oldestKey string
	var oldestAt time.Time
	first := true
	for key, e := range c.entries {
		if first || e.storedAt.Before(oldestAt) {
			oldestKey, oldestAt = key, e.storedAt
			first = false
		}
	}
	if !first {
		delete(c.entries, oldestKey)
	}
}
