package booking

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pms/backend/internal/domain/shared"
	"github.com/pms/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMoney(t *testing.T, amount string) valueobject.Money {
	t.Helper()
	m, err := valueobject.NewMoneyFromString(amount, valueobject.USD)
	require.NoError(t, err)
	return m
}

func testProperty(t *testing.T) *Property {
	t.Helper()
	p, err := NewProperty(uuid.New(), "Beach House", "America/New_York")
	require.NoError(t, err)
	return p
}

func TestNewReservation(t *testing.T) {
	checkIn := time.Date(2026, 6, 1, 15, 0, 0, 0, time.UTC)
	checkOut := time.Date(2026, 6, 5, 11, 0, 0, 0, time.UTC)

	t.Run("creates reservation inheriting property tenant", func(t *testing.T) {
		p := testProperty(t)
		r, err := NewReservation(p, checkIn, checkOut, mustMoney(t, "500.000"))
		require.NoError(t, err)
		assert.Equal(t, p.TenantID, r.TenantID)
		assert.Equal(t, p.ID, r.PropertyID)
		assert.Equal(t, 4, r.Nights())
	})

	t.Run("rejects check-out before check-in", func(t *testing.T) {
		p := testProperty(t)
		_, err := NewReservation(p, checkOut, checkIn, mustMoney(t, "500.000"))
		assert.Error(t, err)
	})

	t.Run("rejects equal check-in and check-out", func(t *testing.T) {
		p := testProperty(t)
		_, err := NewReservation(p, checkIn, checkIn, mustMoney(t, "500.000"))
		assert.Error(t, err)
	})

	t.Run("rejects missing dates", func(t *testing.T) {
		p := testProperty(t)
		_, err := NewReservation(p, time.Time{}, checkOut, mustMoney(t, "500.000"))
		assert.Error(t, err)
	})

	t.Run("rejects negative amount", func(t *testing.T) {
		p := testProperty(t)
		_, err := NewReservation(p, checkIn, checkOut, mustMoney(t, "-1.00"))
		assert.Error(t, err)
	})
}

func TestReservationTenantMatchInvariant(t *testing.T) {
	checkIn := time.Date(2026, 6, 1, 15, 0, 0, 0, time.UTC)
	checkOut := time.Date(2026, 6, 5, 11, 0, 0, 0, time.UTC)

	p := testProperty(t)
	r, err := NewReservation(p, checkIn, checkOut, mustMoney(t, "500.000"))
	require.NoError(t, err)

	// A reservation re-pointed at another tenant's property must fail validation.
	other := testProperty(t)
	other.ID = r.PropertyID
	err = r.Validate(other)
	assert.ErrorIs(t, err, shared.ErrIsolationViolation)
}

func TestNewProperty(t *testing.T) {
	t.Run("rejects nil tenant", func(t *testing.T) {
		_, err := NewProperty(uuid.Nil, "Cabin", "UTC")
		assert.Error(t, err)
	})

	t.Run("rejects unknown timezone", func(t *testing.T) {
		_, err := NewProperty(uuid.New(), "Cabin", "Mars/Olympus")
		assert.Error(t, err)
	})

	t.Run("defaults timezone to UTC", func(t *testing.T) {
		p, err := NewProperty(uuid.New(), "Cabin", "")
		require.NoError(t, err)
		assert.Equal(t, "UTC", p.Timezone)
	})
}
