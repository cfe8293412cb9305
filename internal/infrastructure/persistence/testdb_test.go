package persistence

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/pms/backend/internal/domain/tenancy"
	"github.com/pms/backend/internal/infrastructure/persistence/tenant"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupScopedDB returns a guarded ScopedDB backed by sqlmock. The guard is
// installed exactly as in production, so these tests also prove that every
// repository statement carries its tenant predicate.
func setupScopedDB(t *testing.T) (*tenant.ScopedDB, sqlmock.Sqlmock, *sql.DB) {
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

	return tenant.NewScopedDB(gormDB, GuardedTables...), mock, mockDB
}

func newTenantContext(t *testing.T) tenancy.Context {
	tctx, err := tenancy.NewContext(uuid.New())
	require.NoError(t, err)
	return tctx
}
