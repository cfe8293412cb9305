// Package tenancy provides application services for tenant lifecycle
// management. Tenant records are the only globally-readable data in the
// system; everything else is partitioned by them.
package tenancy

import (
	"context"

	"github.com/google/uuid"
	"github.com/pms/backend/internal/domain/shared"
	"github.com/pms/backend/internal/domain/tenancy"
	"github.com/pms/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// SummaryInvalidator drops a tenant's cached aggregates. Satisfied by the
// summary cache.
type SummaryInvalidator interface {
	InvalidateTenant(ctx context.Context, tctx tenancy.Context) error
}

// TenantService handles tenant provisioning and lifecycle operations
type TenantService struct {
	tenantRepo  tenancy.TenantRepository
	invalidator SummaryInvalidator
}

// NewTenantService creates a new TenantService. The invalidator may be nil
// when no cache is wired.
func NewTenantService(tenantRepo tenancy.TenantRepository, invalidator SummaryInvalidator) *TenantService {
	return &TenantService{
		tenantRepo:  tenantRepo,
		invalidator: invalidator,
	}
}

// Create provisions a new active tenant
func (s *TenantService) Create(ctx context.Context, req CreateTenantRequest) (*TenantResponse, error) {
	tenant, err := tenancy.NewTenant(req.Name)
	if err != nil {
		return nil, err
	}

	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		return nil, err
	}

	response := ToTenantResponse(tenant)
	return &response, nil
}

// Get returns a tenant by id
func (s *TenantService) Get(ctx context.Context, tenantID uuid.UUID) (*TenantResponse, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	response := ToTenantResponse(tenant)
	return &response, nil
}

// List returns all tenants
func (s *TenantService) List(ctx context.Context, filter shared.Filter) ([]TenantResponse, error) {
	tenants, err := s.tenantRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return ToTenantResponses(tenants), nil
}

// Suspend marks a tenant as suspended. Suspended tenants fail authentication
// at the boundary on their next request.
func (s *TenantService) Suspend(ctx context.Context, tenantID uuid.UUID) (*TenantResponse, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	tenant.Suspend()

	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		return nil, err
	}

	// Suspension also drops the tenant's cached aggregates; a failure here
	// never undoes the suspension itself.
	if s.invalidator != nil {
		tctx, err := tenancy.NewContext(tenantID)
		if err == nil {
			if err := s.invalidator.InvalidateTenant(ctx, tctx); err != nil {
				logger.L(ctx).Warn("Failed to invalidate suspended tenant's cache",
					zap.String("tenant_id", tenantID.String()),
					zap.Error(err))
			}
		}
	}

	response := ToTenantResponse(tenant)
	return &response, nil
}

// EnsureActive resolves a tenant and verifies it may issue requests. Used by
// the request boundary after token validation.
func (s *TenantService) EnsureActive(ctx context.Context, tenantID uuid.UUID) (*tenancy.Tenant, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if !tenant.IsActive() {
		return nil, shared.NewDomainError("TENANT_SUSPENDED", "Tenant is suspended")
	}
	return tenant, nil
}
