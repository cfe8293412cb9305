// Package tenant provides tenant-scoped database access for GORM.
//
// Every statement that touches a tenant-partitioned table goes through
// ScopedDB, which takes the request's tenancy.Context explicitly and applies
// the tenant predicate. A guard callback sits underneath as a second line of
// defense: any statement that reaches the database without a tenant predicate
// on a guarded table fails fast instead of running.
//
// Usage:
//
//	scoped := tenant.NewScopedDB(gormDB)
//	scoped.Scoped(ctx, tctx).Find(&properties) // WHERE tenant_id = ? is applied
package tenant

import (
	"context"

	"github.com/pms/backend/internal/domain/shared"
	"github.com/pms/backend/internal/domain/tenancy"
	"gorm.io/gorm"
)

// ErrTenantRequired is returned when a scoped operation is attempted without
// a valid tenant identity.
var ErrTenantRequired = shared.NewDomainError("TENANT_REQUIRED", "A tenant identity is required for this operation")

// exemptKey marks a statement as deliberately unscoped. Only the system
// access path sets it; the guard honors it.
const exemptKey = "tenant:exempt"

// TenantScope applies the tenant predicate to a GORM query
func TenantScope(tctx tenancy.Context) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("tenant_id = ?", tctx.TenantID())
	}
}

// ScopedDB wraps GORM with explicit tenant scoping. The zero-value
// tenancy.Context fails every operation; there is no fallback identity.
type ScopedDB struct {
	db *gorm.DB
}

// NewScopedDB creates a ScopedDB and installs the isolation guard for the
// given tables.
func NewScopedDB(db *gorm.DB, guardedTables ...string) *ScopedDB {
	if len(guardedTables) > 0 {
		NewGuard(guardedTables...).Register(db)
	}
	return &ScopedDB{db: db}
}

// Scoped returns a GORM DB carrying the request context and the tenant
// predicate. Every query, update and delete built on it is tenant-filtered.
func (s *ScopedDB) Scoped(ctx context.Context, tctx tenancy.Context) *gorm.DB {
	if !tctx.Valid() {
		db := s.db.WithContext(ctx)
		_ = db.AddError(ErrTenantRequired)
		return db
	}
	return s.db.WithContext(ctx).Scopes(TenantScope(tctx))
}

// System returns a GORM DB exempt from the isolation guard. It exists for
// the small set of legitimately global reads, such as resolving tenants
// themselves. Never hand it to tenant-facing code paths.
func (s *ScopedDB) System(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Set(exemptKey, true)
}

// Transaction executes fn inside a database transaction. The callback
// receives a tenant-scoped handle; statements outside the tenant's partition
// are rejected by the guard as usual.
func (s *ScopedDB) Transaction(ctx context.Context, tctx tenancy.Context, fn func(tx *gorm.DB) error) error {
	if !tctx.Valid() {
		return ErrTenantRequired
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(tx.Scopes(TenantScope(tctx)))
	})
}

// DB returns the underlying GORM DB without tenant scoping. The guard still
// applies; this is for wiring, not for bypassing isolation.
func (s *ScopedDB) DB() *gorm.DB {
	return s.db
}
