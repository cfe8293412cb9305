// Package revenue defines the revenue aggregation read model.
package revenue

import (
	"context"

	"github.com/google/uuid"
	"github.com/pms/backend/internal/domain/shared"
	"github.com/pms/backend/internal/domain/shared/valueobject"
	"github.com/pms/backend/internal/domain/tenancy"
	"github.com/shopspring/decimal"
)

// Summary is a property's aggregated revenue. Monetary values are fixed-point
// decimals end to end; floats never enter the computation.
type Summary struct {
	PropertyID        uuid.UUID            `json:"property_id"`
	TotalRevenue      valueobject.Amount   `json:"total_revenue"`
	Currency          valueobject.Currency `json:"currency"`
	ReservationsCount int64                `json:"reservations_count"`
}

// CurrencyTotal is one currency's share of a property's revenue
type CurrencyTotal struct {
	Currency valueobject.Currency
	Total    decimal.Decimal
	Count    int64
}

// NewSummary folds per-currency aggregation rows into a single-currency
// summary. Rows spanning more than one currency yield ErrMixedCurrency:
// incompatible currencies are never silently summed.
func NewSummary(propertyID uuid.UUID, totals []CurrencyTotal) (*Summary, error) {
	switch len(totals) {
	case 0:
		return &Summary{
			PropertyID:        propertyID,
			TotalRevenue:      valueobject.NewAmount(decimal.New(0, -2)),
			Currency:          valueobject.DefaultCurrency,
			ReservationsCount: 0,
		}, nil
	case 1:
		return &Summary{
			PropertyID:        propertyID,
			TotalRevenue:      valueobject.NewAmount(totals[0].Total),
			Currency:          totals[0].Currency,
			ReservationsCount: totals[0].Count,
		}, nil
	default:
		return nil, shared.ErrMixedCurrency
	}
}

// Repository defines the tenant-scoped aggregation reads. Implementations
// must inject the tenant predicate on every statement; both tables involved
// are tenant-partitioned.
type Repository interface {
	// AggregateByProperty sums reservation totals for one property, grouped
	// by currency. Returns no rows (not an error) when the property has no
	// reservations.
	AggregateByProperty(ctx context.Context, tctx tenancy.Context, propertyID uuid.UUID) ([]CurrencyTotal, error)

	// AggregateByPropertyMonth sums reservation totals whose check-in falls
	// inside the given month of the property's local timezone.
	AggregateByPropertyMonth(ctx context.Context, tctx tenancy.Context, propertyID uuid.UUID, year, month int) ([]CurrencyTotal, error)
}
