package tenancy

import (
	"context"

	"github.com/google/uuid"
	"github.com/pms/backend/internal/domain/shared"
)

// TenantStatus represents the lifecycle state of a tenant
type TenantStatus string

const (
	TenantStatusActive    TenantStatus = "active"
	TenantStatusSuspended TenantStatus = "suspended"
)

// Tenant is an isolated customer organization. Tenants are immutable after
// creation except for their status.
type Tenant struct {
	shared.BaseEntity
	Name   string
	Status TenantStatus
}

// NewTenant creates a new active tenant
func NewTenant(name string) (*Tenant, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_TENANT_NAME", "Tenant name cannot be empty")
	}
	return &Tenant{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Status:     TenantStatusActive,
	}, nil
}

// IsActive returns true if the tenant may issue requests
func (t *Tenant) IsActive() bool {
	return t.Status == TenantStatusActive
}

// Suspend marks the tenant as suspended
func (t *Tenant) Suspend() {
	t.Status = TenantStatusSuspended
}

// TenantRepository defines persistence operations for tenants.
// Tenant lookups are the one deliberately unscoped read path: they resolve
// the identity the scoping itself is built on.
type TenantRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Tenant, error)
	Save(ctx context.Context, tenant *Tenant) error
	List(ctx context.Context, filter shared.Filter) ([]Tenant, error)
}
