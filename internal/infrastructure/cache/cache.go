package cache

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/pms/backend/internal/domain/revenue"
	"github.com/pms/backend/internal/domain/tenancy"
)

// ErrCacheMiss is returned when a key has no cached value. It is the only
// cache error callers may treat as routine; everything else is a backend
// failure.
var ErrCacheMiss = errors.New("cache miss")

// SummaryKind is the key kind under which revenue summaries are cached
const SummaryKind = "summary"

// SummaryCache stores computed revenue summaries keyed by tenant-first keys.
// Backends are interchangeable; isolation comes from the key layout, not
// from the backend.
type SummaryCache interface {
	// Get returns the cached summary or ErrCacheMiss
	Get(ctx context.Context, key Key) (*revenue.Summary, error)

	// Set stores a summary under the key for the given TTL
	Set(ctx context.Context, key Key, summary *revenue.Summary, ttl time.Duration) error

	// InvalidateProperty drops every cached summary of one property under
	// one tenant. Other tenants' entries are untouched even for the same
	// property id.
	InvalidateProperty(ctx context.Context, tctx tenancy.Context, propertyID uuid.UUID) error

	// InvalidateTenant drops every cached entry of one tenant. Used when a
	// tenant is suspended or its data is bulk-modified.
	InvalidateTenant(ctx context.Context, tctx tenancy.Context) error

	// Close releases backend resources
	Close() error
}
