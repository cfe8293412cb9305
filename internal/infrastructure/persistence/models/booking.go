package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/pms/backend/internal/domain/booking"
	"github.com/pms/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// PropertyModel is the persistence model for the Property entity.
type PropertyModel struct {
	TenantOwnedModel
	Name     string `gorm:"type:varchar(200);not null"`
	Timezone string `gorm:"type:varchar(64);not null;default:'UTC'"`
}

// TableName returns the table name for GORM
func (PropertyModel) TableName() string {
	return "properties"
}

// ToDomain converts the persistence model to a domain Property entity.
func (m *PropertyModel) ToDomain() *booking.Property {
	return &booking.Property{
		TenantEntity: m.ToDomainTenantEntity(),
		Name:         m.Name,
		Timezone:     m.Timezone,
	}
}

// FromDomain populates the persistence model from a domain Property entity.
func (m *PropertyModel) FromDomain(p *booking.Property) {
	m.FromDomainTenantEntity(p.TenantEntity)
	m.Name = p.Name
	m.Timezone = p.Timezone
}

// ReservationModel is the persistence model for the Reservation entity.
// The (tenant_id, property_id) pair references the owning property's full
// composite key, so a reservation cannot point across tenants.
type ReservationModel struct {
	TenantOwnedModel
	PropertyID   uuid.UUID       `gorm:"type:uuid;not null;index:idx_reservations_tenant_property,priority:2"`
	CheckInDate  time.Time       `gorm:"type:timestamptz;not null"`
	CheckOutDate time.Time       `gorm:"type:timestamptz;not null"`
	TotalAmount  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Currency     string          `gorm:"type:varchar(3);not null;default:'USD'"`
}

// TableName returns the table name for GORM
func (ReservationModel) TableName() string {
	return "reservations"
}

// ToDomain converts the persistence model to a domain Reservation entity.
func (m *ReservationModel) ToDomain() (*booking.Reservation, error) {
	total, err := valueobject.NewMoney(m.TotalAmount, valueobject.Currency(m.Currency))
	if err != nil {
		return nil, err
	}
	return &booking.Reservation{
		TenantEntity: m.ToDomainTenantEntity(),
		PropertyID:   m.PropertyID,
		CheckInDate:  m.CheckInDate,
		CheckOutDate: m.CheckOutDate,
		TotalAmount:  total,
	}, nil
}

// FromDomain populates the persistence model from a domain Reservation entity.
func (m *ReservationModel) FromDomain(r *booking.Reservation) {
	m.FromDomainTenantEntity(r.TenantEntity)
	m.PropertyID = r.PropertyID
	m.CheckInDate = r.CheckInDate
	m.CheckOutDate = r.CheckOutDate
	m.TotalAmount = r.TotalAmount.Amount()
	m.Currency = string(r.TotalAmount.Currency())
}
