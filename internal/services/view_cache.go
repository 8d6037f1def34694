package services

import (
	"sync"
	"time"
)

// viewCache is the in-process fallback for view de-duplication when Redis is
// down. Entries expire after the TTL; expired entries are swept lazily on
// every 10,000th insert to bound memory without a background goroutine.
type viewCache struct {
	mu      sync.Mutex
	entries map[string]time.Time
	ttl     time.Duration
	inserts int
}

const viewCacheSweepInterval = 10000

func newViewCache(ttl time.Duration) *viewCache {
	return &viewCache{
		entries: make(map[string]time.Time),
		ttl:     ttl,
	}
}

// FirstSeen reports whether the key is new within the TTL window and records
// it. Returns false when the key was already seen recently.
func (c *viewCache) FirstSeen(key string, now time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if expiry, ok := c.entries[key]; ok && now.Before(expiry) {
		return false
	}

	c.entries[key] = now.Add(c.ttl)
	c.inserts++

	if c.inserts%viewCacheSweepInterval == 0 {
		c.sweep(now)
	}

	return true
}

func (c *viewCache) sweep(now time.Time) {
	for key, expiry := range c.entries {
		if !now.Before(expiry) {
			delete(c.entries, key)
		}
	}
}

func (c *viewCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
