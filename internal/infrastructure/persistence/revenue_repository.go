package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pms/backend/internal/domain/revenue"
	"github.com/pms/backend/internal/domain/shared/valueobject"
	"github.com/pms/backend/internal/domain/tenancy"
	"github.com/pms/backend/internal/infrastructure/persistence/tenant"
	"github.com/shopspring/decimal"
)

// aggregateRetryDelay is the pause before the single retry of a failed
// aggregation read. The reads are idempotent, so one retry is safe.
const aggregateRetryDelay = 100 * time.Millisecond

// GormRevenueRepository implements revenue.Repository with raw aggregation
// queries. Sums run inside the database on the decimal column; amounts never
// pass through floats.
type GormRevenueRepository struct {
	scoped *tenant.ScopedDB
}

// NewGormRevenueRepository creates a new GormRevenueRepository
func NewGormRevenueRepository(scoped *tenant.ScopedDB) *GormRevenueRepository {
	return &GormRevenueRepository{scoped: scoped}
}

type currencyTotalRow struct {
	Currency string
	Total    decimal.Decimal
	Count    int64
}

// queryTotals runs an aggregation query, retrying once after a short pause on
// backend failure.
func (r *GormRevenueRepository) queryTotals(ctx context.Context, query string, args ...interface{}) ([]currencyTotalRow, error) {
	var rows []currencyTotalRow
	err := r.scoped.DB().WithContext(ctx).Raw(query, args...).Scan(&rows).Error
	if err == nil {
		return rows, nil
	}

	select {
	case <-ctx.Done():
		return nil, err
	case <-time.After(aggregateRetryDelay):
	}

	rows = nil
	if err := r.scoped.DB().WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func toCurrencyTotals(rows []currencyTotalRow) []revenue.CurrencyTotal {
	totals := make([]revenue.CurrencyTotal, len(rows))
	for i, row := range rows {
		totals[i] = revenue.CurrencyTotal{
			Currency: valueobject.Currency(row.Currency),
			Total:    row.Total,
			Count:    row.Count,
		}
	}
	return totals
}

// AggregateByProperty sums reservation totals for one property, grouped by
// currency. Returns no rows when the property has no reservations.
func (r *GormRevenueRepository) AggregateByProperty(ctx context.Context, tctx tenancy.Context, propertyID uuid.UUID) ([]revenue.CurrencyTotal, error) {
	if !tctx.Valid() {
		return nil, tenant.ErrTenantRequired
	}

	rows, err := r.queryTotals(ctx, `
		SELECT r.currency AS currency,
		       COALESCE(SUM(r.total_amount), 0) AS total,
		       COUNT(*) AS count
		FROM reservations r
		WHERE r.tenant_id = ? AND r.property_id = ?
		GROUP BY r.currency
		ORDER BY r.currency`,
		tctx.TenantID(), propertyID,
	)
	if err != nil {
		return nil, err
	}
	return toCurrencyTotals(rows), nil
}

// AggregateByPropertyMonth sums reservation totals whose check-in falls
// inside the given month of the property's local timezone. Stored timestamps
// are UTC; the shift into property-local time happens in the database so the
// month boundary matches what the property's calendar shows.
func (r *GormRevenueRepository) AggregateByPropertyMonth(ctx context.Context, tctx tenancy.Context, propertyID uuid.UUID, year, month int) ([]revenue.CurrencyTotal, error) {
	if !tctx.Valid() {
		return nil, tenant.ErrTenantRequired
	}

	rows, err := r.queryTotals(ctx, `
		SELECT r.currency AS currency,
		       COALESCE(SUM(r.total_amount), 0) AS total,
		       COUNT(*) AS count
		FROM reservations r
		JOIN properties p
		  ON p.tenant_id = r.tenant_id AND p.id = r.property_id
		WHERE r.tenant_id = ?
		  AND r.property_id = ?
		  AND EXTRACT(YEAR FROM (r.check_in_date AT TIME ZONE 'UTC' AT TIME ZONE p.timezone)) = ?
		  AND EXTRACT(MONTH FROM (r.check_in_date AT TIME ZONE 'UTC' AT TIME ZONE p.timezone)) = ?
		GROUP BY r.currency
		ORDER BY r.currency`,
		tctx.TenantID(), propertyID, year, month,
	)
	if err != nil {
		return nil, err
	}
	return toCurrencyTotals(rows), nil
}

var _ revenue.Repository = (*GormRevenueRepository)(nil)
