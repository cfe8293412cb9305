package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pms/backend/internal/domain/booking"
	"github.com/pms/backend/internal/domain/shared"
	"github.com/pms/backend/internal/domain/tenancy"
	"github.com/pms/backend/internal/infrastructure/persistence/models"
	"github.com/pms/backend/internal/infrastructure/persistence/tenant"
	"gorm.io/gorm"
)

// GormPropertyRepository implements booking.PropertyRepository using GORM.
// Every operation runs through the tenant-scoped handle; a property under a
// different tenant resolves to ErrNotFound, never to data.
type GormPropertyRepository struct {
	scoped *tenant.ScopedDB
}

// NewGormPropertyRepository creates a new GormPropertyRepository
func NewGormPropertyRepository(scoped *tenant.ScopedDB) *GormPropertyRepository {
	return &GormPropertyRepository{scoped: scoped}
}

// FindByID finds a property by ID within the tenant
func (r *GormPropertyRepository) FindByID(ctx context.Context, tctx tenancy.Context, id uuid.UUID) (*booking.Property, error) {
	var model models.PropertyModel
	if err := r.scoped.Scoped(ctx, tctx).
		Where("id = ?", id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all properties of the tenant matching the filter
func (r *GormPropertyRepository) FindAll(ctx context.Context, tctx tenancy.Context, filter shared.Filter) ([]booking.Property, error) {
	var propertyModels []models.PropertyModel
	query := applyFilterFields(
		r.scoped.Scoped(ctx, tctx).Model(&models.PropertyModel{}),
		filter,
		PropertySortFields,
	)

	if err := query.Find(&propertyModels).Error; err != nil {
		return nil, err
	}

	properties := make([]booking.Property, len(propertyModels))
	for i, model := range propertyModels {
		properties[i] = *model.ToDomain()
	}
	return properties, nil
}

// Save persists a property (insert or update) within the tenant
func (r *GormPropertyRepository) Save(ctx context.Context, tctx tenancy.Context, property *booking.Property) error {
	if property.TenantID != tctx.TenantID() {
		return shared.ErrIsolationViolation
	}
	var model models.PropertyModel
	model.FromDomain(property)
	return r.scoped.Scoped(ctx, tctx).Save(&model).Error
}

// Delete removes a property by ID within the tenant
func (r *GormPropertyRepository) Delete(ctx context.Context, tctx tenancy.Context, id uuid.UUID) error {
	result := r.scoped.Scoped(ctx, tctx).
		Where("id = ?", id).
		Delete(&models.PropertyModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ booking.PropertyRepository = (*GormPropertyRepository)(nil)
