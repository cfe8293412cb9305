package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/pms/backend/internal/domain/booking"
	"github.com/pms/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestGormPropertyRepository_FindByID(t *testing.T) {
	t.Run("returns property owned by the tenant", func(t *testing.T) {
		scoped, mock, mockDB := setupScopedDB(t)
		defer mockDB.Close()

		repo := NewGormPropertyRepository(scoped)
		tctx := newTenantContext(t)
		propertyID := uuid.New()
		now := time.Now()

		mock.ExpectQuery(`SELECT \* FROM "properties" WHERE tenant_id = \$1 AND id = \$2`).
			WithArgs(tctx.TenantID().String(), propertyID.String(), 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "tenant_id", "created_at", "updated_at", "name", "timezone"}).
				AddRow(propertyID.String(), tctx.TenantID().String(), now, now, "Seaside Villa", "Europe/Lisbon"))

		property, err := repo.FindByID(context.Background(), tctx, propertyID)
		require.NoError(t, err)
		assert.Equal(t, propertyID, property.ID)
		assert.Equal(t, tctx.TenantID(), property.TenantID)
		assert.Equal(t, "Seaside Villa", property.Name)
		assert.Equal(t, "Europe/Lisbon", property.Timezone)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps missing row to ErrNotFound", func(t *testing.T) {
		scoped, mock, mockDB := setupScopedDB(t)
		defer mockDB.Close()

		repo := NewGormPropertyRepository(scoped)
		tctx := newTenantContext(t)

		mock.ExpectQuery(`SELECT \* FROM "properties" WHERE tenant_id = \$1 AND id = \$2`).
			WillReturnError(gorm.ErrRecordNotFound)

		_, err := repo.FindByID(context.Background(), tctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("another tenant's property is a missing row", func(t *testing.T) {
		scoped, mock, mockDB := setupScopedDB(t)
		defer mockDB.Close()

		repo := NewGormPropertyRepository(scoped)
		tctx := newTenantContext(t)
		propertyID := uuid.New()

		// The predicate excludes the row; the database returns nothing
		mock.ExpectQuery(`SELECT \* FROM "properties" WHERE tenant_id = \$1 AND id = \$2`).
			WithArgs(tctx.TenantID().String(), propertyID.String(), 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "tenant_id", "created_at", "updated_at", "name", "timezone"}))

		_, err := repo.FindByID(context.Background(), tctx, propertyID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormPropertyRepository_FindAll(t *testing.T) {
	scoped, mock, mockDB := setupScopedDB(t)
	defer mockDB.Close()

	repo := NewGormPropertyRepository(scoped)
	tctx := newTenantContext(t)
	now := time.Now()

	mock.ExpectQuery(`SELECT \* FROM "properties" WHERE tenant_id = \$1 ORDER BY created_at DESC LIMIT \$2`).
		WithArgs(tctx.TenantID().String(), 20).
		WillReturnRows(sqlmock.NewRows([]string{"id", "tenant_id", "created_at", "updated_at", "name", "timezone"}).
			AddRow(uuid.New().String(), tctx.TenantID().String(), now, now, "Villa A", "UTC").
			AddRow(uuid.New().String(), tctx.TenantID().String(), now, now, "Villa B", "UTC"))

	properties, err := repo.FindAll(context.Background(), tctx, shared.DefaultFilter())
	require.NoError(t, err)
	assert.Len(t, properties, 2)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormPropertyRepository_Save(t *testing.T) {
	t.Run("rejects property of another tenant", func(t *testing.T) {
		scoped, _, mockDB := setupScopedDB(t)
		defer mockDB.Close()

		repo := NewGormPropertyRepository(scoped)
		tctx := newTenantContext(t)

		property, err := booking.NewProperty(uuid.New(), "Foreign Villa", "UTC")
		require.NoError(t, err)

		err = repo.Save(context.Background(), tctx, property)
		assert.ErrorIs(t, err, shared.ErrIsolationViolation)
	})

	t.Run("updates property of the tenant", func(t *testing.T) {
		scoped, mock, mockDB := setupScopedDB(t)
		defer mockDB.Close()

		repo := NewGormPropertyRepository(scoped)
		tctx := newTenantContext(t)

		property, err := booking.NewProperty(tctx.TenantID(), "Seaside Villa", "UTC")
		require.NoError(t, err)

		mock.ExpectExec(`UPDATE "properties" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err = repo.Save(context.Background(), tctx, property)
		require.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormPropertyRepository_Delete(t *testing.T) {
	t.Run("deletes property of the tenant", func(t *testing.T) {
		scoped, mock, mockDB := setupScopedDB(t)
		defer mockDB.Close()

		repo := NewGormPropertyRepository(scoped)
		tctx := newTenantContext(t)
		propertyID := uuid.New()

		mock.ExpectExec(`DELETE FROM "properties" WHERE tenant_id = \$1 AND id = \$2`).
			WithArgs(tctx.TenantID().String(), propertyID.String()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Delete(context.Background(), tctx, propertyID)
		require.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row maps to ErrNotFound", func(t *testing.T) {
		scoped, mock, mockDB := setupScopedDB(t)
		defer mockDB.Close()

		repo := NewGormPropertyRepository(scoped)
		tctx := newTenantContext(t)

		mock.ExpectExec(`DELETE FROM "properties" WHERE tenant_id = \$1 AND id = \$2`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), tctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
