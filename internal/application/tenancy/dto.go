package tenancy

import (
	"time"

	"github.com/google/uuid"
	"github.com/pms/backend/internal/domain/tenancy"
)

// CreateTenantRequest represents a request to provision a new tenant
type CreateTenantRequest struct {
	Name string `json:"name" binding:"required,min=1,max=200"`
}

// TenantResponse represents a tenant in API responses
type TenantResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToTenantResponse converts a tenant entity to a response DTO
func ToTenantResponse(t *tenancy.Tenant) TenantResponse {
	return TenantResponse{
		ID:        t.ID,
		Name:      t.Name,
		Status:    string(t.Status),
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

// ToTenantResponses converts a slice of tenants to response DTOs
func ToTenantResponses(tenants []tenancy.Tenant) []TenantResponse {
	responses := make([]TenantResponse, len(tenants))
	for i := range tenants {
		responses[i] = ToTenantResponse(&tenants[i])
	}
	return responses
}
