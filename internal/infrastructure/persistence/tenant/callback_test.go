package tenant

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/pms/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuard_BlocksUnscopedQuery(t *testing.T) {
	db, _, mockDB := setupMockDB(t)
	defer mockDB.Close()

	NewGuard("test_models").Register(db)

	var results []TestModel
	err := db.WithContext(context.Background()).Find(&results).Error
	assert.ErrorIs(t, err, shared.ErrIsolationViolation)
}

func TestGuard_AllowsScopedQuery(t *testing.T) {
	db, mock, mockDB := setupMockDB(t)
	defer mockDB.Close()

	NewGuard("test_models").Register(db)
	tctx := testTenantContext(t)

	mock.ExpectQuery(`SELECT \* FROM "test_models" WHERE tenant_id = \$1`).
		WithArgs(tctx.TenantID().String()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "tenant_id", "name"}))

	var results []TestModel
	err := db.Scopes(TenantScope(tctx)).Find(&results).Error
	require.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGuard_IgnoresUnguardedTable(t *testing.T) {
	db, mock, mockDB := setupMockDB(t)
	defer mockDB.Close()

	NewGuard("other_table").Register(db)

	mock.ExpectQuery(`SELECT \* FROM "test_models"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "tenant_id", "name"}))

	var results []TestModel
	err := db.Find(&results).Error
	require.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGuard_HonorsSystemExemption(t *testing.T) {
	db, mock, mockDB := setupMockDB(t)
	defer mockDB.Close()

	scoped := NewScopedDB(db, "test_models")

	mock.ExpectQuery(`SELECT \* FROM "test_models"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "tenant_id", "name"}))

	var results []TestModel
	err := scoped.System(context.Background()).Find(&results).Error
	require.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGuard_BlocksUnscopedUpdate(t *testing.T) {
	db, _, mockDB := setupMockDB(t)
	defer mockDB.Close()

	NewGuard("test_models").Register(db)

	err := db.Model(&TestModel{}).Where("name = ?", "stale").Update("name", "fresh").Error
	assert.ErrorIs(t, err, shared.ErrIsolationViolation)
}

func TestGuard_BlocksUnscopedDelete(t *testing.T) {
	db, _, mockDB := setupMockDB(t)
	defer mockDB.Close()

	NewGuard("test_models").Register(db)

	err := db.Where("name = ?", "stale").Delete(&TestModel{}).Error
	assert.ErrorIs(t, err, shared.ErrIsolationViolation)
}

func TestGuard_BlocksCreateWithoutTenant(t *testing.T) {
	db, _, mockDB := setupMockDB(t)
	defer mockDB.Close()

	NewGuard("test_models").Register(db)

	model := TestModel{ID: uuid.New(), Name: "orphan"}
	err := db.Create(&model).Error
	assert.ErrorIs(t, err, shared.ErrIsolationViolation)
}

func TestGuard_AllowsCreateWithTenant(t *testing.T) {
	db, mock, mockDB := setupMockDB(t)
	defer mockDB.Close()

	NewGuard("test_models").Register(db)

	model := TestModel{ID: uuid.New(), TenantID: uuid.New(), Name: "owned"}

	mock.ExpectExec(`INSERT INTO "test_models"`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := db.Create(&model).Error
	require.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGuard_AllowsRawQueryWithTenantPredicate(t *testing.T) {
	db, mock, mockDB := setupMockDB(t)
	defer mockDB.Close()

	NewGuard("test_models").Register(db)
	tenantID := uuid.New()

	mock.ExpectQuery(`SELECT count\(\*\) FROM test_models WHERE tenant_id = \$1`).
		WithArgs(tenantID.String()).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	var count int64
	err := db.Raw("SELECT count(*) FROM test_models WHERE tenant_id = ?", tenantID).Scan(&count).Error
	require.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGuard_GuardedTableLookup(t *testing.T) {
	g := NewGuard("properties", "reservations")

	assert.Contains(t, g.tables, "properties")
	assert.Contains(t, g.tables, "reservations")
	assert.NotContains(t, g.tables, "tenants")
	assert.Equal(t, "tenant_id", g.tenantColumn)
}

// The guard must not slow statements down measurably; it only inspects
// already-built clauses.
func TestGuard_VerifyIsCheap(t *testing.T) {
	db, mock, mockDB := setupMockDB(t)
	defer mockDB.Close()

	NewGuard("test_models").Register(db)
	tctx := testTenantContext(t)

	for i := 0; i < 50; i++ {
		mock.ExpectQuery(`SELECT \* FROM "test_models" WHERE tenant_id = \$1`).
			WithArgs(tctx.TenantID().String()).
			WillReturnRows(sqlmock.NewRows([]string{"id", "tenant_id", "name"}))
	}

	start := time.Now()
	for i := 0; i < 50; i++ {
		var results []TestModel
		require.NoError(t, db.Scopes(TenantScope(tctx)).Find(&results).Error)
	}
	assert.Less(t, time.Since(start), 5*time.Second)
}
