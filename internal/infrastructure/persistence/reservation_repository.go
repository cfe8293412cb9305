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

// GormReservationRepository implements booking.ReservationRepository using GORM
type GormReservationRepository struct {
	scoped *tenant.ScopedDB
}

// NewGormReservationRepository creates a new GormReservationRepository
func NewGormReservationRepository(scoped *tenant.ScopedDB) *GormReservationRepository {
	return &GormReservationRepository{scoped: scoped}
}

// FindByID finds a reservation by ID within the tenant
func (r *GormReservationRepository) FindByID(ctx context.Context, tctx tenancy.Context, id uuid.UUID) (*booking.Reservation, error) {
	var model models.ReservationModel
	if err := r.scoped.Scoped(ctx, tctx).
		Where("id = ?", id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// FindByProperty finds reservations of one property within the tenant
func (r *GormReservationRepository) FindByProperty(ctx context.Context, tctx tenancy.Context, propertyID uuid.UUID, filter shared.Filter) ([]booking.Reservation, error) {
	var reservationModels []models.ReservationModel
	query := applyFilterFields(
		r.scoped.Scoped(ctx, tctx).
			Model(&models.ReservationModel{}).
			Where("property_id = ?", propertyID),
		filter,
		ReservationSortFields,
	)

	if err := query.Find(&reservationModels).Error; err != nil {
		return nil, err
	}

	reservations := make([]booking.Reservation, 0, len(reservationModels))
	for _, model := range reservationModels {
		reservation, err := model.ToDomain()
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, *reservation)
	}
	return reservations, nil
}

// Save persists a reservation (insert or update) within the tenant
func (r *GormReservationRepository) Save(ctx context.Context, tctx tenancy.Context, reservation *booking.Reservation) error {
	if reservation.TenantID != tctx.TenantID() {
		return shared.ErrIsolationViolation
	}
	var model models.ReservationModel
	model.FromDomain(reservation)
	return r.scoped.Scoped(ctx, tctx).Save(&model).Error
}

// Delete removes a reservation by ID within the tenant
func (r *GormReservationRepository) Delete(ctx context.Context, tctx tenancy.Context, id uuid.UUID) error {
	result := r.scoped.Scoped(ctx, tctx).
		Where("id = ?", id).
		Delete(&models.ReservationModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ booking.ReservationRepository = (*GormReservationRepository)(nil)
