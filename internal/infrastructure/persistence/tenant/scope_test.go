package tenant

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/pms/backend/internal/domain/tenancy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// TestModel is a simple model for testing tenant scoping
type TestModel struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name     string    `gorm:"size:100"`
}

func (TestModel) TableName() string {
	return "test_models"
}

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func testTenantContext(t *testing.T) tenancy.Context {
	tctx, err := tenancy.NewContext(uuid.New())
	require.NoError(t, err)
	return tctx
}

func TestTenantScope(t *testing.T) {
	t.Run("applies tenant filter to query", func(t *testing.T) {
		db, mock, mockDB := setupMockDB(t)
		defer mockDB.Close()

		tctx := testTenantContext(t)

		mock.ExpectQuery(`SELECT \* FROM "test_models" WHERE tenant_id = \$1`).
			WithArgs(tctx.TenantID().String()).
			WillReturnRows(sqlmock.NewRows([]string{"id", "tenant_id", "name"}))

		var results []TestModel
		err := db.Scopes(TenantScope(tctx)).Find(&results).Error
		require.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestScopedDB_Scoped(t *testing.T) {
	t.Run("scopes query to the given tenant", func(t *testing.T) {
		db, mock, mockDB := setupMockDB(t)
		defer mockDB.Close()

		scoped := NewScopedDB(db)
		tctx := testTenantContext(t)

		mock.ExpectQuery(`SELECT \* FROM "test_models" WHERE tenant_id = \$1`).
			WithArgs(tctx.TenantID().String()).
			WillReturnRows(sqlmock.NewRows([]string{"id", "tenant_id", "name"}))

		var results []TestModel
		err := scoped.Scoped(context.Background(), tctx).Find(&results).Error
		require.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("errors on zero-value tenant context", func(t *testing.T) {
		db, _, mockDB := setupMockDB(t)
		defer mockDB.Close()

		scoped := NewScopedDB(db)

		scopedDB := scoped.Scoped(context.Background(), tenancy.Context{})
		assert.ErrorIs(t, scopedDB.Error, ErrTenantRequired)
	})

	t.Run("different tenants get different scopes", func(t *testing.T) {
		db, _, mockDB := setupMockDB(t)
		defer mockDB.Close()

		scoped := NewScopedDB(db)
		ctx := context.Background()

		db1 := scoped.Scoped(ctx, testTenantContext(t))
		db2 := scoped.Scoped(ctx, testTenantContext(t))
		assert.NotEqual(t, db1, db2)
	})

	t.Run("scope chains with additional where clauses", func(t *testing.T) {
		db, mock, mockDB := setupMockDB(t)
		defer mockDB.Close()

		scoped := NewScopedDB(db)
		tctx := testTenantContext(t)
		id := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "test_models" WHERE tenant_id = \$1 AND id = \$2`).
			WithArgs(tctx.TenantID().String(), id.String()).
			WillReturnRows(sqlmock.NewRows([]string{"id", "tenant_id", "name"}))

		var results []TestModel
		err := scoped.Scoped(context.Background(), tctx).Where("id = ?", id).Find(&results).Error
		require.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestScopedDB_Transaction(t *testing.T) {
	t.Run("transaction errors without tenant", func(t *testing.T) {
		db, _, mockDB := setupMockDB(t)
		defer mockDB.Close()

		scoped := NewScopedDB(db)

		err := scoped.Transaction(context.Background(), tenancy.Context{}, func(tx *gorm.DB) error {
			return nil
		})
		assert.ErrorIs(t, err, ErrTenantRequired)
	})

	t.Run("transaction executes with tenant scope", func(t *testing.T) {
		db, mock, mockDB := setupMockDB(t)
		defer mockDB.Close()

		scoped := NewScopedDB(db)
		tctx := testTenantContext(t)

		mock.ExpectBegin()
		mock.ExpectCommit()

		err := scoped.Transaction(context.Background(), tctx, func(tx *gorm.DB) error {
			return nil
		})
		require.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
