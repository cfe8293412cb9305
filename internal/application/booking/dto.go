package booking

import (
	"time"

	"github.com/google/uuid"
	"github.com/pms/backend/internal/domain/booking"
	"github.com/shopspring/decimal"
)

// =============================================================================
// Property DTOs
// =============================================================================

// CreatePropertyRequest represents a request to create a new property
type CreatePropertyRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=200"`
	Timezone string `json:"timezone" binding:"max=64"`
}

// UpdatePropertyRequest represents a request to update a property
type UpdatePropertyRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=200"`
	Timezone *string `json:"timezone" binding:"omitempty,max=64"`
}

// PropertyResponse represents a property in API responses
type PropertyResponse struct {
	ID        uuid.UUID `json:"id"`
	TenantID  uuid.UUID `json:"tenant_id"`
	Name      string    `json:"name"`
	Timezone  string    `json:"timezone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToPropertyResponse converts a property entity to a response DTO
func ToPropertyResponse(p *booking.Property) PropertyResponse {
	return PropertyResponse{
		ID:        p.ID,
		TenantID:  p.TenantID,
		Name:      p.Name,
		Timezone:  p.Timezone,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// ToPropertyResponses converts a slice of properties to response DTOs
func ToPropertyResponses(properties []booking.Property) []PropertyResponse {
	responses := make([]PropertyResponse, len(properties))
	for i := range properties {
		responses[i] = ToPropertyResponse(&properties[i])
	}
	return responses
}

// =============================================================================
// Reservation DTOs
// =============================================================================

// CreateReservationRequest represents a request to create a new reservation
type CreateReservationRequest struct {
	PropertyID   uuid.UUID       `json:"property_id" binding:"required"`
	CheckInDate  time.Time       `json:"check_in_date" binding:"required"`
	CheckOutDate time.Time       `json:"check_out_date" binding:"required"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	Currency     string          `json:"currency" binding:"omitempty,len=3"`
}

// UpdateReservationRequest represents a request to update a reservation
type UpdateReservationRequest struct {
	CheckInDate  *time.Time       `json:"check_in_date"`
	CheckOutDate *time.Time       `json:"check_out_date"`
	TotalAmount  *decimal.Decimal `json:"total_amount"`
	Currency     *string          `json:"currency" binding:"omitempty,len=3"`
}

// ReservationResponse represents a reservation in API responses
type ReservationResponse struct {
	ID           uuid.UUID       `json:"id"`
	TenantID     uuid.UUID       `json:"tenant_id"`
	PropertyID   uuid.UUID       `json:"property_id"`
	CheckInDate  time.Time       `json:"check_in_date"`
	CheckOutDate time.Time       `json:"check_out_date"`
	Nights       int             `json:"nights"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	Currency     string          `json:"currency"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ToReservationResponse converts a reservation entity to a response DTO
func ToReservationResponse(r *booking.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:           r.ID,
		TenantID:     r.TenantID,
		PropertyID:   r.PropertyID,
		CheckInDate:  r.CheckInDate,
		CheckOutDate: r.CheckOutDate,
		Nights:       r.Nights(),
		TotalAmount:  r.TotalAmount.Amount(),
		Currency:     string(r.TotalAmount.Currency()),
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

// ToReservationResponses converts a slice of reservations to response DTOs
func ToReservationResponses(reservations []booking.Reservation) []ReservationResponse {
	responses := make([]ReservationResponse, len(reservations))
	for i := range reservations {
		responses[i] = ToReservationResponse(&reservations[i])
	}
	return responses
}
