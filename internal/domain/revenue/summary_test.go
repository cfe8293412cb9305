package revenue

import (
	"testing"

	"github.com/google/uuid"
	"github.com/pms/backend/internal/domain/shared"
	"github.com/pms/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSummary(t *testing.T) {
	propertyID := uuid.New()

	t.Run("no reservations yields zero summary in default currency", func(t *testing.T) {
		s, err := NewSummary(propertyID, nil)
		require.NoError(t, err)
		assert.True(t, s.TotalRevenue.IsZero())
		assert.Equal(t, valueobject.DefaultCurrency, s.Currency)
		assert.EqualValues(t, 0, s.ReservationsCount)
	})

	t.Run("single currency folds into summary", func(t *testing.T) {
		s, err := NewSummary(propertyID, []CurrencyTotal{
			{Currency: valueobject.USD, Total: decimal.RequireFromString("1500.000"), Count: 3},
		})
		require.NoError(t, err)
		assert.Equal(t, "1500.000", s.TotalRevenue.String())
		assert.Equal(t, valueobject.USD, s.Currency)
		assert.EqualValues(t, 3, s.ReservationsCount)
	})

	t.Run("mixed currencies are rejected, never summed", func(t *testing.T) {
		_, err := NewSummary(propertyID, []CurrencyTotal{
			{Currency: valueobject.USD, Total: decimal.RequireFromString("100"), Count: 1},
			{Currency: valueobject.EUR, Total: decimal.RequireFromString("100"), Count: 1},
		})
		assert.ErrorIs(t, err, shared.ErrMixedCurrency)
	})
}
