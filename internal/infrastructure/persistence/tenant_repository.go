package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pms/backend/internal/domain/shared"
	"github.com/pms/backend/internal/domain/tenancy"
	"github.com/pms/backend/internal/infrastructure/persistence/models"
	"github.com/pms/backend/internal/infrastructure/persistence/tenant"
	"gorm.io/gorm"
)

// GormTenantRepository implements tenancy.TenantRepository using GORM.
// Tenant rows are global, so it reads through the system (unguarded) path.
type GormTenantRepository struct {
	scoped *tenant.ScopedDB
}

// NewGormTenantRepository creates a new GormTenantRepository
func NewGormTenantRepository(scoped *tenant.ScopedDB) *GormTenantRepository {
	return &GormTenantRepository{scoped: scoped}
}

// FindByID finds a tenant by its ID
func (r *GormTenantRepository) FindByID(ctx context.Context, id uuid.UUID) (*tenancy.Tenant, error) {
	var model models.TenantModel
	if err := r.scoped.System(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save persists a tenant (insert or update)
func (r *GormTenantRepository) Save(ctx context.Context, t *tenancy.Tenant) error {
	var model models.TenantModel
	model.FromDomain(t)
	return r.scoped.System(ctx).Save(&model).Error
}

// List returns tenants matching the filter
func (r *GormTenantRepository) List(ctx context.Context, filter shared.Filter) ([]tenancy.Tenant, error) {
	var tenantModels []models.TenantModel
	query := applyFilter(r.scoped.System(ctx).Model(&models.TenantModel{}), filter)

	if err := query.Find(&tenantModels).Error; err != nil {
		return nil, err
	}

	tenants := make([]tenancy.Tenant, len(tenantModels))
	for i, model := range tenantModels {
		tenants[i] = *model.ToDomain()
	}
	return tenants, nil
}

var _ tenancy.TenantRepository = (*GormTenantRepository)(nil)
