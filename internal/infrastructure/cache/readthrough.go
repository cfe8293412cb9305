package cache

import (
	"context"
	"errors"
	"time"

	"github.com/pms/backend/internal/domain/revenue"
	"github.com/pms/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ComputeFunc produces the authoritative value on a cache miss
type ComputeFunc func(ctx context.Context) (*revenue.Summary, error)

// ReadThrough wraps a SummaryCache with miss handling. Concurrent misses on
// the same key collapse into one computation; a failing backend degrades to
// computing every request instead of failing it. The fallback is always the
// authoritative scoped query, never a stale or differently-keyed entry.
type ReadThrough struct {
	cache SummaryCache
	ttl   time.Duration
	group singleflight.Group
}

// NewReadThrough creates a ReadThrough over the given cache
func NewReadThrough(cache SummaryCache, ttl time.Duration) *ReadThrough {
	return &ReadThrough{
		cache: cache,
		ttl:   ttl,
	}
}

// GetOrCompute returns the cached value for key, or runs compute and caches
// its result. When several callers miss the same key at once, exactly one
// compute runs and the rest share its result.
func (r *ReadThrough) GetOrCompute(ctx context.Context, key Key, compute ComputeFunc) (*revenue.Summary, error) {
	summary, err := r.cache.Get(ctx, key)
	if err == nil {
		return summary, nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		// Backend outage: fall through to the computation. Slower, never wrong.
		logger.L(ctx).Warn("Cache read failed, computing from source",
			zap.String("key", key.String()),
			zap.Error(err))
	}

	ch := r.group.DoChan(key.String(), func() (interface{}, error) {
		// The computation outlives any single waiter; one caller hanging up
		// must not cancel the result the others are waiting for.
		computeCtx := context.WithoutCancel(ctx)

		value, err := compute(computeCtx)
		if err != nil {
			return nil, err
		}

		if err := r.cache.Set(computeCtx, key, value, r.ttl); err != nil {
			logger.L(ctx).Warn("Cache write failed after compute",
				zap.String("key", key.String()),
				zap.Error(err))
		}
		return value, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*revenue.Summary), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Invalidate forwards property invalidation to the underlying cache
func (r *ReadThrough) Cache() SummaryCache {
	return r.cache
}

// TTL returns the freshness window applied to computed entries
func (r *ReadThrough) TTL() time.Duration {
	return r.ttl
}
