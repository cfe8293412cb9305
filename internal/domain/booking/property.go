// Package booking holds the property and reservation aggregates.
//
// A property identifier is only unique within its tenant: identity is the
// pair (tenant_id, property_id). Every lookup in this package is therefore
// tenant-qualified; there is no way to resolve a property by id alone.
package booking

import (
	"time"

	"github.com/google/uuid"
	"github.com/pms/backend/internal/domain/shared"
)

// Property is a rentable unit owned by exactly one tenant
type Property struct {
	shared.TenantEntity
	Name     string
	Timezone string // IANA zone name, e.g. "America/New_York"
}

// NewProperty creates a property for a tenant
func NewProperty(tenantID uuid.UUID, name, timezone string) (*Property, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Property must belong to a tenant")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_PROPERTY_NAME", "Property name cannot be empty")
	}
	if timezone == "" {
		timezone = "UTC"
	}
	if _, err := time.LoadLocation(timezone); err != nil {
		return nil, shared.NewDomainError("INVALID_TIMEZONE", "Unknown IANA timezone: "+timezone)
	}
	return &Property{
		TenantEntity: shared.TenantEntity{
			BaseEntity: shared.NewBaseEntity(),
			TenantID:   tenantID,
		},
		Name:     name,
		Timezone: timezone,
	}, nil
}

// Location resolves the property's IANA timezone
func (p *Property) Location() (*time.Location, error) {
	return time.LoadLocation(p.Timezone)
}
