package currency

import (
	"sync"
	"time"

	"carrental-backend/internal/domain"
)

type cacheEntry struct {
	table     domain.RateTable
	expiresAt time.Time
}

// rateCache is a TTL cache of rate tables keyed by base currency. It is
// shared across all converter callers and evicted wholesale on refresh.
type rateCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	ttl     time.Duration
}

func newRateCache(ttl time.Duration) *rateCache {
	return &rateCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
	}
}

func (c *rateCache) get(base string) (domain.RateTable, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[base]
	if !ok || time.Now().After(entry.expiresAt) {
		return domain.RateTable{}, false
	}
	return entry.table, true
}

func (c *rateCache) put(table domain.RateTable) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[table.Base] = cacheEntry{
		table:     table,
		expiresAt: time.Now().Add(c.ttl),
	}
}

// evictAll drops every cached table; subsequent lookups re-fetch.
func (c *rateCache) evictAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]cacheEntry)
}
