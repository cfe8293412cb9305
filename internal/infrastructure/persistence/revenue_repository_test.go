package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/pms/backend/internal/domain/shared/valueobject"
	"github.com/pms/backend/internal/domain/tenancy"
	"github.com/pms/backend/internal/infrastructure/persistence/tenant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errConnReset = errors.New("connection reset by peer")

func TestGormRevenueRepository_AggregateByProperty(t *testing.T) {
	t.Run("returns per-currency totals", func(t *testing.T) {
		scoped, mock, mockDB := setupScopedDB(t)
		defer mockDB.Close()

		repo := NewGormRevenueRepository(scoped)
		tctx := newTenantContext(t)
		propertyID := uuid.New()

		mock.ExpectQuery(`SELECT r.currency AS currency`).
			WithArgs(tctx.TenantID(), propertyID).
			WillReturnRows(sqlmock.NewRows([]string{"currency", "total", "count"}).
				AddRow("USD", "1500.000", 3))

		totals, err := repo.AggregateByProperty(context.Background(), tctx, propertyID)
		require.NoError(t, err)
		require.Len(t, totals, 1)
		assert.Equal(t, valueobject.USD, totals[0].Currency)
		assert.Equal(t, "1500", totals[0].Total.String())
		assert.Equal(t, int64(3), totals[0].Count)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no reservations yields no rows", func(t *testing.T) {
		scoped, mock, mockDB := setupScopedDB(t)
		defer mockDB.Close()

		repo := NewGormRevenueRepository(scoped)
		tctx := newTenantContext(t)

		mock.ExpectQuery(`SELECT r.currency AS currency`).
			WillReturnRows(sqlmock.NewRows([]string{"currency", "total", "count"}))

		totals, err := repo.AggregateByProperty(context.Background(), tctx, uuid.New())
		require.NoError(t, err)
		assert.Empty(t, totals)
	})

	t.Run("mixed currencies come back as separate rows", func(t *testing.T) {
		scoped, mock, mockDB := setupScopedDB(t)
		defer mockDB.Close()

		repo := NewGormRevenueRepository(scoped)
		tctx := newTenantContext(t)

		mock.ExpectQuery(`SELECT r.currency AS currency`).
			WillReturnRows(sqlmock.NewRows([]string{"currency", "total", "count"}).
				AddRow("EUR", "200.00", 1).
				AddRow("USD", "300.00", 2))

		totals, err := repo.AggregateByProperty(context.Background(), tctx, uuid.New())
		require.NoError(t, err)
		assert.Len(t, totals, 2)
	})

	t.Run("retries once on transient backend failure", func(t *testing.T) {
		scoped, mock, mockDB := setupScopedDB(t)
		defer mockDB.Close()

		repo := NewGormRevenueRepository(scoped)
		tctx := newTenantContext(t)
		propertyID := uuid.New()

		mock.ExpectQuery(`SELECT r.currency AS currency`).
			WillReturnError(errConnReset)
		mock.ExpectQuery(`SELECT r.currency AS currency`).
			WithArgs(tctx.TenantID(), propertyID).
			WillReturnRows(sqlmock.NewRows([]string{"currency", "total", "count"}).
				AddRow("USD", "1500.000", 3))

		totals, err := repo.AggregateByProperty(context.Background(), tctx, propertyID)
		require.NoError(t, err)
		require.Len(t, totals, 1)
		assert.Equal(t, int64(3), totals[0].Count)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects zero-value tenant context", func(t *testing.T) {
		scoped, _, mockDB := setupScopedDB(t)
		defer mockDB.Close()

		repo := NewGormRevenueRepository(scoped)

		_, err := repo.AggregateByProperty(context.Background(), tenancy.Context{}, uuid.New())
		assert.ErrorIs(t, err, tenant.ErrTenantRequired)
	})
}

func TestGormRevenueRepository_AggregateByPropertyMonth(t *testing.T) {
	scoped, mock, mockDB := setupScopedDB(t)
	defer mockDB.Close()

	repo := NewGormRevenueRepository(scoped)
	tctx := newTenantContext(t)
	propertyID := uuid.New()

	mock.ExpectQuery(`SELECT r.currency AS currency`).
		WithArgs(tctx.TenantID(), propertyID, 2026, 3).
		WillReturnRows(sqlmock.NewRows([]string{"currency", "total", "count"}).
			AddRow("USD", "720.50", 2))

	totals, err := repo.AggregateByPropertyMonth(context.Background(), tctx, propertyID, 2026, 3)
	require.NoError(t, err)
	require.Len(t, totals, 1)
	assert.Equal(t, "720.5", totals[0].Total.String())

	assert.NoError(t, mock.ExpectationsWereMet())
}
