package models

import (
	"github.com/pms/backend/internal/domain/tenancy"
)

// TenantModel is the persistence model for the Tenant entity.
// Tenants themselves are global rows; everything else is partitioned by them.
type TenantModel struct {
	BaseModel
	Name   string `gorm:"type:varchar(200);not null"`
	Status string `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (TenantModel) TableName() string {
	return "tenants"
}

// ToDomain converts the persistence model to a domain Tenant entity.
func (m *TenantModel) ToDomain() *tenancy.Tenant {
	return &tenancy.Tenant{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		Status:     tenancy.TenantStatus(m.Status),
	}
}

// FromDomain populates the persistence model from a domain Tenant entity.
func (m *TenantModel) FromDomain(t *tenancy.Tenant) {
	m.FromDomainBaseEntity(t.BaseEntity)
	m.Name = t.Name
	m.Status = string(t.Status)
}
