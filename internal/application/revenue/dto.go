package revenue

import (
	"github.com/google/uuid"
	"github.com/pms/backend/internal/domain/revenue"
	"github.com/pms/backend/internal/domain/shared/valueobject"
)

// SummaryResponse represents a property's aggregated revenue in API
// responses. Amounts are rendered as fixed-point decimal strings at the
// scale the aggregation produced, trailing zeros included.
type SummaryResponse struct {
	PropertyID        uuid.UUID          `json:"property_id"`
	TotalRevenue      valueobject.Amount `json:"total_revenue"`
	Currency          string             `json:"currency"`
	ReservationsCount int64              `json:"reservations_count"`
	Year              int                `json:"year,omitempty"`
	Month             int                `json:"month,omitempty"`
}

// ToSummaryResponse converts a revenue summary to a response DTO
func ToSummaryResponse(s *revenue.Summary) SummaryResponse {
	return SummaryResponse{
		PropertyID:        s.PropertyID,
		TotalRevenue:      s.TotalRevenue,
		Currency:          string(s.Currency),
		ReservationsCount: s.ReservationsCount,
	}
}

// ToMonthlySummaryResponse converts a monthly summary, stamping the period
func ToMonthlySummaryResponse(s *revenue.Summary, year, month int) SummaryResponse {
	response := ToSummaryResponse(s)
	response.Year = year
	response.Month = month
	return response
}
