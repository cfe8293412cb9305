package tenancy

import (
	"github.com/google/uuid"
	"github.com/pms/backend/internal/domain/shared"
)

// ErrUnauthenticated is returned when a Context is constructed from missing
// or unverified identity input. No data access happens after this error.
var ErrUnauthenticated = shared.NewDomainError("UNAUTHENTICATED", "No verified tenant identity")

// Context is the request-scoped tenant identity capability. It is constructed
// exactly once at the API boundary from a verified identity claim and passed
// explicitly to every downstream call; business code never reads the tenant
// from ambient state. The zero value is invalid and fails every scoped
// operation.
type Context struct {
	tenantID uuid.UUID
}

// FromVerifiedClaim builds a Context from an already-verified tenant claim,
// such as the tenant_id of a validated JWT. Unverified input must never reach
// this constructor.
func FromVerifiedClaim(tenantID string) (Context, error) {
	if tenantID == "" {
		return Context{}, ErrUnauthenticated
	}
	id, err := uuid.Parse(tenantID)
	if err != nil || id == uuid.Nil {
		return Context{}, ErrUnauthenticated
	}
	return Context{tenantID: id}, nil
}

// NewContext builds a Context from a tenant UUID that is already trusted,
// e.g. one loaded from storage in ops tooling or tests.
func NewContext(tenantID uuid.UUID) (Context, error) {
	if tenantID == uuid.Nil {
		return Context{}, ErrUnauthenticated
	}
	return Context{tenantID: tenantID}, nil
}

// TenantID returns the authenticated tenant identifier
func (c Context) TenantID() uuid.UUID {
	return c.tenantID
}

// Valid reports whether the context carries a tenant identity
func (c Context) Valid() bool {
	return c.tenantID != uuid.Nil
}

// Equal compares two contexts by tenant identifier
func (c Context) Equal(other Context) bool {
	return c.tenantID == other.tenantID
}
