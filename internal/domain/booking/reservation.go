package booking

import (
	"time"

	"github.com/google/uuid"
	"github.com/pms/backend/internal/domain/shared"
	"github.com/pms/backend/internal/domain/shared/valueobject"
)

// Reservation is a stay booked against a property. The tenant identifier is
// denormalized onto the reservation and must always equal the referenced
// property's tenant - a cross-entity invariant, not just a foreign key.
type Reservation struct {
	shared.TenantEntity
	PropertyID   uuid.UUID
	CheckInDate  time.Time
	CheckOutDate time.Time
	TotalAmount  valueobject.Money
}

// NewReservation creates a reservation for a property, enforcing the
// tenant-match invariant against the owning property.
func NewReservation(property *Property, checkIn, checkOut time.Time, total valueobject.Money) (*Reservation, error) {
	if property == nil {
		return nil, shared.NewDomainError("INVALID_PROPERTY", "Reservation must reference a property")
	}
	r := &Reservation{
		TenantEntity: shared.TenantEntity{
			BaseEntity: shared.NewBaseEntity(),
			TenantID:   property.TenantID,
		},
		PropertyID:   property.ID,
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
		TotalAmount:  total,
	}
	if err := r.Validate(property); err != nil {
		return nil, err
	}
	return r, nil
}

// Validate checks the reservation's invariants against its property
func (r *Reservation) Validate(property *Property) error {
	if property == nil || r.PropertyID != property.ID {
		return shared.NewDomainError("INVALID_PROPERTY", "Reservation does not reference this property")
	}
	if r.TenantID != property.TenantID {
		return shared.ErrIsolationViolation
	}
	if r.CheckInDate.IsZero() || r.CheckOutDate.IsZero() {
		return shared.NewDomainError("INVALID_DATES", "Check-in and check-out dates are required")
	}
	if !r.CheckOutDate.After(r.CheckInDate) {
		return shared.NewDomainError("INVALID_DATES", "Check-out must be after check-in")
	}
	if r.TotalAmount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Total amount cannot be negative")
	}
	if r.TotalAmount.Currency() == "" {
		return shared.NewDomainError("INVALID_AMOUNT", "Currency is required")
	}
	return nil
}

// Nights returns the length of the stay in nights
func (r *Reservation) Nights() int {
	return int(r.CheckOutDate.Sub(r.CheckInDate).Hours() / 24)
}
