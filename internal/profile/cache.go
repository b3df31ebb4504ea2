package profile

import (
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/satchel/internal/metrics"
	"github.com/osse101/satchel/internal/save"
)

// CacheSchemaVersion is the current version of the cache schema.
// Increment this when the cached data structure changes to auto-invalidate old entries.
const CacheSchemaVersion = "1.0"

// CacheStats reports snapshot cache effectiveness
type CacheStats struct {
	Size   int   `json:"size"`
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
}

type cachedSaveEntry struct {
	Version  string
	Save     *save.Envelope
	CachedAt time.Time
}

// saveCache keeps decoded, normalized saves so a transaction does not re-read
// and re-normalize the stored payload. Entries are immutable envelopes.
type saveCache struct {
	lru    *expirable.LRU[string, *cachedSaveEntry]
	hits   atomic.Int64
	misses atomic.Int64
}

func newSaveCache(size int, ttl time.Duration) *saveCache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &saveCache{
		lru: expirable.NewLRU[string, *cachedSaveEntry](size, nil, ttl),
	}
}

// Get returns the cached envelope; a version mismatch counts as a miss and evicts
func (c *saveCache) Get(profileID string) (*save.Envelope, bool) {
	entry, found := c.lru.Get(profileID)
	if found && entry.Version != CacheSchemaVersion {
		c.lru.Remove(profileID)
		found = false
	}
	if !found {
		c.misses.Add(1)
		metrics.SnapshotCacheLookups.WithLabelValues(metrics.ResultMiss).Inc()
		return nil, false
	}
	c.hits.Add(1)
	metrics.SnapshotCacheLookups.WithLabelValues(metrics.ResultHit).Inc()
	return entry.Save, true
}

func (c *saveCache) Set(profileID string, env *save.Envelope) {
	c.lru.Add(profileID, &cachedSaveEntry{
		Version:  CacheSchemaVersion,
		Save:     env,
		CachedAt: time.Now(),
	})
}

func (c *saveCache) Invalidate(profileID string) {
	c.lru.Remove(profileID)
}

func (c *saveCache) Clear() {
	c.lru.Purge()
}

func (c *saveCache) Stats() CacheStats {
	return CacheStats{
		Size:   c.lru.Len(),
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
	}
}
