package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pms/backend/internal/domain/revenue"
	"github.com/pms/backend/internal/domain/tenancy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// brokenCache fails every operation, simulating a backend outage
type brokenCache struct{}

func (brokenCache) Get(context.Context, Key) (*revenue.Summary, error) {
	return nil, errors.New("connection refused")
}

func (brokenCache) Set(context.Context, Key, *revenue.Summary, time.Duration) error {
	return errors.New("connection refused")
}

func (brokenCache) InvalidateProperty(context.Context, tenancy.Context, uuid.UUID) error {
	return errors.New("connection refused")
}

func (brokenCache) InvalidateTenant(context.Context, tenancy.Context) error {
	return errors.New("connection refused")
}

func (brokenCache) Close() error { return nil }

func TestReadThrough_HitSkipsCompute(t *testing.T) {
	c := NewInMemorySummaryCache(16, time.Minute)
	defer c.Close()
	rt := NewReadThrough(c, time.Minute)

	tctx := newKeyTenant(t)
	propertyID := uuid.New()
	key, err := BuildKey(tctx, SummaryKind, propertyID, nil)
	require.NoError(t, err)

	require.NoError(t, c.Set(context.Background(), key, testSummary(propertyID, "42.00", 1), 0))

	summary, err := rt.GetOrCompute(context.Background(), key, func(ctx context.Context) (*revenue.Summary, error) {
		t.Fatal("compute must not run on a cache hit")
		return nil, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "42.00", summary.TotalRevenue.String())
}

func TestReadThrough_MissComputesAndCaches(t *testing.T) {
	c := NewInMemorySummaryCache(16, time.Minute)
	defer c.Close()
	rt := NewReadThrough(c, time.Minute)

	tctx := newKeyTenant(t)
	propertyID := uuid.New()
	key, err := BuildKey(tctx, SummaryKind, propertyID, nil)
	require.NoError(t, err)

	var calls atomic.Int32
	compute := func(ctx context.Context) (*revenue.Summary, error) {
		calls.Add(1)
		return testSummary(propertyID, "99.00", 2), nil
	}

	summary, err := rt.GetOrCompute(context.Background(), key, compute)
	require.NoError(t, err)
	assert.Equal(t, int64(2), summary.ReservationsCount)
	assert.Equal(t, int32(1), calls.Load())

	// Second call hits the cache
	_, err = rt.GetOrCompute(context.Background(), key, compute)
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestReadThrough_ConcurrentMissesCollapse(t *testing.T) {
	c := NewInMemorySummaryCache(16, time.Minute)
	defer c.Close()
	rt := NewReadThrough(c, time.Minute)

	tctx := newKeyTenant(t)
	propertyID := uuid.New()
	key, err := BuildKey(tctx, SummaryKind, propertyID, nil)
	require.NoError(t, err)

	var calls atomic.Int32
	release := make(chan struct{})
	compute := func(ctx context.Context) (*revenue.Summary, error) {
		calls.Add(1)
		<-release
		return testSummary(propertyID, "10.00", 1), nil
	}

	const waiters = 20
	var wg sync.WaitGroup
	results := make([]*revenue.Summary, waiters)
	errs := make([]error, waiters)

	for i := 0; i < waiters; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = rt.GetOrCompute(context.Background(), key, compute)
		}(i)
	}

	// Let every waiter join the in-flight computation before releasing it
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	for i := 0; i < waiters; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, int64(1), results[i].ReservationsCount)
	}
	assert.Equal(t, int32(1), calls.Load())
}

func TestReadThrough_BrokenBackendFallsOpen(t *testing.T) {
	rt := NewReadThrough(brokenCache{}, time.Minute)

	tctx := newKeyTenant(t)
	propertyID := uuid.New()
	key, err := BuildKey(tctx, SummaryKind, propertyID, nil)
	require.NoError(t, err)

	var calls atomic.Int32
	compute := func(ctx context.Context) (*revenue.Summary, error) {
		calls.Add(1)
		return testSummary(propertyID, "7.00", 1), nil
	}

	// Every request computes; none fails
	for i := 0; i < 3; i++ {
		summary, err := rt.GetOrCompute(context.Background(), key, compute)
		require.NoError(t, err)
		assert.Equal(t, "7.00", summary.TotalRevenue.String())
	}
	assert.Equal(t, int32(3), calls.Load())
}

func TestReadThrough_ComputeErrorPropagates(t *testing.T) {
	c := NewInMemorySummaryCache(16, time.Minute)
	defer c.Close()
	rt := NewReadThrough(c, time.Minute)

	tctx := newKeyTenant(t)
	key, err := BuildKey(tctx, SummaryKind, uuid.New(), nil)
	require.NoError(t, err)

	wantErr := errors.New("query failed")
	_, err = rt.GetOrCompute(context.Background(), key, func(ctx context.Context) (*revenue.Summary, error) {
		return nil, wantErr
	})
	assert.ErrorIs(t, err, wantErr)
}

func TestReadThrough_CancelledWaiterDetaches(t *testing.T) {
	c := NewInMemorySummaryCache(16, time.Minute)
	defer c.Close()
	rt := NewReadThrough(c, time.Minute)

	tctx := newKeyTenant(t)
	propertyID := uuid.New()
	key, err := BuildKey(tctx, SummaryKind, propertyID, nil)
	require.NoError(t, err)

	release := make(chan struct{})
	compute := func(ctx context.Context) (*revenue.Summary, error) {
		<-release
		return testSummary(propertyID, "5.00", 1), nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := rt.GetOrCompute(ctx, key, compute)
		done <- err
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	// The cancelled caller returns promptly with its context error
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("cancelled waiter did not return")
	}

	// The computation itself carries on and lands in the cache
	close(release)
	assert.Eventually(t, func() bool {
		_, err := c.Get(context.Background(), key)
		return err == nil
	}, time.Second, 10*time.Millisecond)
}
