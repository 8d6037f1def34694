package services

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestViewCacheFirstSeen(t *testing.T) {
	cache := newViewCache(30 * time.Minute)
	now := time.Now()

	assert.True(t, cache.FirstSeen("1.2.3.4:prop1", now))
	assert.False(t, cache.FirstSeen("1.2.3.4:prop1", now.Add(time.Minute)))
	assert.True(t, cache.FirstSeen("1.2.3.4:prop2", now))
	assert.True(t, cache.FirstSeen("5.6.7.8:prop1", now))
}

func TestViewCacheExpiry(t *testing.T) {
	cache := newViewCache(30 * time.Minute)
	now := time.Now()

	assert.True(t, cache.FirstSeen("viewer", now))
	assert.False(t, cache.FirstSeen("viewer", now.Add(29*time.Minute)))
	assert.True(t, cache.FirstSeen("viewer", now.Add(31*time.Minute)))
}

func TestViewCacheSweep(t *testing.T) {
	cache := newViewCache(time.Minute)
	now := time.Now()

	// Fill up to just below the sweep interval with entries that will be
	// stale by the time the sweep runs.
	for i := 0; i < viewCacheSweepInterval-1; i++ {
		cache.FirstSeen("old-"+strconv.Itoa(i), now)
	}
	assert.Equal(t, viewCacheSweepInterval-1, cache.len())

	// The next insert is the 10,000th and happens after expiry, so the
	// sweep drops everything stale.
	cache.FirstSeen("fresh", now.Add(2*time.Minute))
	assert.Equal(t, 1, cache.len())
}
