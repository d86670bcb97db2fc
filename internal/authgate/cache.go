package authgate

import (
	"sync"
	"time"
)

// tokenCache is the process-wide verification cache, keyed by token value.
// Writes are last-write-wins: verdicts are idempotent snapshots, so the last
// completed call for a token may safely overwrite an earlier one.
type tokenCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
}

func newTokenCache() *tokenCache {
	return &tokenCache{entries: make(map[string]cacheEntry)}
}

func (c *tokenCache) get(token string) (cacheEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[token]
	return entry, ok
}

func (c *tokenCache) put(token string, entry cacheEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[token] = entry
}

func (c *tokenCache) remove(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, token)
}

// sweep drops expired entries once the cache exceeds maxEntries. Amortized
// cleanup on the write path; there is no background timer.
func (c *tokenCache) sweep(maxEntries int, ttl time.Duration, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.entries) <= maxEntries {
		return
	}
	for token, entry := range c.entries {
		if now.Sub(entry.recordedAt) >= ttl {
			delete(c.entries, token)
		}
	}
}

// len reports the current entry count, for tests.
func (c *tokenCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
