package cache

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/pms/backend/internal/domain/revenue"
	"github.com/pms/backend/internal/domain/tenancy"
)

// memoryEntry carries the serialized summary and, when a Set asked for a
// shorter lifetime than the LRU's own TTL, the earlier deadline.
type memoryEntry struct {
	data     []byte
	expireAt time.Time
}

// InMemorySummaryCache implements SummaryCache with a bounded expirable LRU.
// Suitable for single-instance deployments and tests. The construction-time
// TTL is the upper bound on every entry's lifetime; a shorter per-call TTL
// is honored with a per-entry deadline checked on read.
type InMemorySummaryCache struct {
	entries *lru.LRU[string, memoryEntry]
	ttl     time.Duration
}

// NewInMemorySummaryCache creates an in-memory summary cache holding at most
// size entries, each expiring after ttl.
func NewInMemorySummaryCache(size int, ttl time.Duration) *InMemorySummaryCache {
	if size <= 0 {
		size = 4096
	}
	return &InMemorySummaryCache{
		entries: lru.NewLRU[string, memoryEntry](size, nil, ttl),
		ttl:     ttl,
	}
}

// Get retrieves a summary from cache
func (c *InMemorySummaryCache) Get(_ context.Context, key Key) (*revenue.Summary, error) {
	entry, ok := c.entries.Get(key.String())
	if !ok {
		return nil, ErrCacheMiss
	}
	if !entry.expireAt.IsZero() && time.Now().After(entry.expireAt) {
		c.entries.Remove(key.String())
		return nil, ErrCacheMiss
	}

	var summary revenue.Summary
	if err := json.Unmarshal(entry.data, &summary); err != nil {
		c.entries.Remove(key.String())
		return nil, ErrCacheMiss
	}
	return &summary, nil
}

// Set stores a summary in cache. A ttl of zero or less means the cache-wide
// TTL; a shorter ttl expires the entry early, a longer one is capped by the
// LRU's own expiry.
func (c *InMemorySummaryCache) Set(_ context.Context, key Key, summary *revenue.Summary, ttl time.Duration) error {
	if summary == nil {
		return nil
	}

	data, err := json.Marshal(summary)
	if err != nil {
		return err
	}

	entry := memoryEntry{data: data}
	if ttl > 0 && ttl < c.ttl {
		entry.expireAt = time.Now().Add(ttl)
	}
	c.entries.Add(key.String(), entry)
	return nil
}

// InvalidateProperty drops every cached summary of one property under one tenant
func (c *InMemorySummaryCache) InvalidateProperty(_ context.Context, tctx tenancy.Context, propertyID uuid.UUID) error {
	prefix := PropertyPrefix(tctx, SummaryKind, propertyID)
	for _, key := range c.entries.Keys() {
		if strings.HasPrefix(key, prefix) {
			c.entries.Remove(key)
		}
	}
	return nil
}

// InvalidateTenant drops every cached entry of one tenant
func (c *InMemorySummaryCache) InvalidateTenant(_ context.Context, tctx tenancy.Context) error {
	prefix := TenantPrefix(tctx)
	for _, key := range c.entries.Keys() {
		if strings.HasPrefix(key, prefix) {
			c.entries.Remove(key)
		}
	}
	return nil
}

// Close releases cache resources
func (c *InMemorySummaryCache) Close() error {
	c.entries.Purge()
	return nil
}

var _ SummaryCache = (*InMemorySummaryCache)(nil)
