package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pms/backend/internal/domain/revenue"
	"github.com/pms/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSummary(propertyID uuid.UUID, amount string, count int64) *revenue.Summary {
	total, _ := decimal.NewFromString(amount)
	return &revenue.Summary{
		PropertyID:        propertyID,
		TotalRevenue:      valueobject.NewAmount(total),
		Currency:          valueobject.USD,
		ReservationsCount: count,
	}
}

func TestInMemorySummaryCache_RoundTrip(t *testing.T) {
	c := NewInMemorySummaryCache(16, time.Minute)
	defer c.Close()

	tctx := newKeyTenant(t)
	propertyID := uuid.New()
	key, err := BuildKey(tctx, SummaryKind, propertyID, nil)
	require.NoError(t, err)

	_, err = c.Get(context.Background(), key)
	assert.ErrorIs(t, err, ErrCacheMiss)

	want := testSummary(propertyID, "1500.000", 3)
	require.NoError(t, c.Set(context.Background(), key, want, time.Minute))

	got, err := c.Get(context.Background(), key)
	require.NoError(t, err)
	assert.Equal(t, want.PropertyID, got.PropertyID)
	assert.Equal(t, "1500.000", got.TotalRevenue.String())
	assert.Equal(t, want.Currency, got.Currency)
	assert.Equal(t, want.ReservationsCount, got.ReservationsCount)
}

func TestInMemorySummaryCache_Expiry(t *testing.T) {
	c := NewInMemorySummaryCache(16, 20*time.Millisecond)
	defer c.Close()

	tctx := newKeyTenant(t)
	propertyID := uuid.New()
	key, err := BuildKey(tctx, SummaryKind, propertyID, nil)
	require.NoError(t, err)

	require.NoError(t, c.Set(context.Background(), key, testSummary(propertyID, "10.00", 1), 0))

	time.Sleep(60 * time.Millisecond)

	_, err = c.Get(context.Background(), key)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestInMemorySummaryCache_PerCallTTLExpiresEarly(t *testing.T) {
	c := NewInMemorySummaryCache(16, time.Minute)
	defer c.Close()

	tctx := newKeyTenant(t)
	propertyID := uuid.New()
	key, err := BuildKey(tctx, SummaryKind, propertyID, nil)
	require.NoError(t, err)

	require.NoError(t, c.Set(context.Background(), key, testSummary(propertyID, "10.00", 1), 10*time.Millisecond))

	got, err := c.Get(context.Background(), key)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.ReservationsCount)

	time.Sleep(30 * time.Millisecond)

	_, err = c.Get(context.Background(), key)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestInMemorySummaryCache_InvalidatePropertyIsTenantScoped(t *testing.T) {
	c := NewInMemorySummaryCache(16, time.Minute)
	defer c.Close()

	tctxA := newKeyTenant(t)
	tctxB := newKeyTenant(t)
	propertyID := uuid.New() // same property id under both tenants

	keyA, err := BuildKey(tctxA, SummaryKind, propertyID, nil)
	require.NoError(t, err)
	keyB, err := BuildKey(tctxB, SummaryKind, propertyID, nil)
	require.NoError(t, err)

	require.NoError(t, c.Set(context.Background(), keyA, testSummary(propertyID, "100.00", 1), 0))
	require.NoError(t, c.Set(context.Background(), keyB, testSummary(propertyID, "200.00", 2), 0))

	require.NoError(t, c.InvalidateProperty(context.Background(), tctxA, propertyID))

	_, err = c.Get(context.Background(), keyA)
	assert.ErrorIs(t, err, ErrCacheMiss)

	got, err := c.Get(context.Background(), keyB)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.ReservationsCount)
}

func TestInMemorySummaryCache_InvalidateTenant(t *testing.T) {
	c := NewInMemorySummaryCache(16, time.Minute)
	defer c.Close()

	tctxA := newKeyTenant(t)
	tctxB := newKeyTenant(t)

	keyA1, err := BuildKey(tctxA, SummaryKind, uuid.New(), nil)
	require.NoError(t, err)
	keyA2, err := BuildKey(tctxA, SummaryKind, uuid.New(), map[string]string{"year": "2026", "month": "3"})
	require.NoError(t, err)
	keyB, err := BuildKey(tctxB, SummaryKind, uuid.New(), nil)
	require.NoError(t, err)

	require.NoError(t, c.Set(context.Background(), keyA1, testSummary(keyA1.resource, "100.00", 1), 0))
	require.NoError(t, c.Set(context.Background(), keyA2, testSummary(keyA2.resource, "200.00", 2), 0))
	require.NoError(t, c.Set(context.Background(), keyB, testSummary(keyB.resource, "300.00", 3), 0))

	require.NoError(t, c.InvalidateTenant(context.Background(), tctxA))

	_, err = c.Get(context.Background(), keyA1)
	assert.ErrorIs(t, err, ErrCacheMiss)
	_, err = c.Get(context.Background(), keyA2)
	assert.ErrorIs(t, err, ErrCacheMiss)

	got, err := c.Get(context.Background(), keyB)
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.ReservationsCount)
}
