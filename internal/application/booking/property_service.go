// Package booking provides application services for properties and
// reservations. Every operation takes the caller's tenancy.Context; the
// services never resolve a tenant from ambient request state.
package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pms/backend/internal/domain/booking"
	"github.com/pms/backend/internal/domain/shared"
	"github.com/pms/backend/internal/domain/tenancy"
	"github.com/pms/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// SummaryInvalidator drops cached revenue summaries for a property after its
// underlying reservations change. Satisfied by cache.SummaryCache.
type SummaryInvalidator interface {
	InvalidateProperty(ctx context.Context, tctx tenancy.Context, propertyID uuid.UUID) error
}

// PropertyService handles property-related business operations
type PropertyService struct {
	propertyRepo booking.PropertyRepository
	invalidator  SummaryInvalidator
}

// NewPropertyService creates a new PropertyService
func NewPropertyService(propertyRepo booking.PropertyRepository, invalidator SummaryInvalidator) *PropertyService {
	return &PropertyService{
		propertyRepo: propertyRepo,
		invalidator:  invalidator,
	}
}

// Create creates a new property for the caller's tenant
func (s *PropertyService) Create(ctx context.Context, tctx tenancy.Context, req CreatePropertyRequest) (*PropertyResponse, error) {
	if !tctx.Valid() {
		return nil, tenancy.ErrUnauthenticated
	}

	property, err := booking.NewProperty(tctx.TenantID(), req.Name, req.Timezone)
	if err != nil {
		return nil, err
	}

	if err := s.propertyRepo.Save(ctx, tctx, property); err != nil {
		return nil, err
	}

	response := ToPropertyResponse(property)
	return &response, nil
}

// Get returns a property by id within the caller's tenant
func (s *PropertyService) Get(ctx context.Context, tctx tenancy.Context, propertyID uuid.UUID) (*PropertyResponse, error) {
	property, err := s.propertyRepo.FindByID(ctx, tctx, propertyID)
	if err != nil {
		return nil, err
	}

	response := ToPropertyResponse(property)
	return &response, nil
}

// List returns the caller's properties
func (s *PropertyService) List(ctx context.Context, tctx tenancy.Context, filter shared.Filter) ([]PropertyResponse, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	properties, err := s.propertyRepo.FindAll(ctx, tctx, filter)
	if err != nil {
		return nil, err
	}
	return ToPropertyResponses(properties), nil
}

// Update updates a property's name or timezone
func (s *PropertyService) Update(ctx context.Context, tctx tenancy.Context, propertyID uuid.UUID, req UpdatePropertyRequest) (*PropertyResponse, error) {
	property, err := s.propertyRepo.FindByID(ctx, tctx, propertyID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, shared.NewDomainError("INVALID_PROPERTY_NAME", "Property name cannot be empty")
		}
		property.Name = *req.Name
	}

	if req.Timezone != nil {
		if _, err := time.LoadLocation(*req.Timezone); err != nil {
			return nil, shared.NewDomainError("INVALID_TIMEZONE", "Unknown IANA timezone: "+*req.Timezone)
		}
		property.Timezone = *req.Timezone
	}

	if err := s.propertyRepo.Save(ctx, tctx, property); err != nil {
		return nil, err
	}

	// A timezone change shifts which month each reservation falls into, so
	// cached monthly summaries are no longer correct.
	if req.Timezone != nil {
		s.invalidateSummaries(ctx, tctx, property.ID)
	}

	response := ToPropertyResponse(property)
	return &response, nil
}

// Delete removes a property and drops its cached summaries
func (s *PropertyService) Delete(ctx context.Context, tctx tenancy.Context, propertyID uuid.UUID) error {
	if err := s.propertyRepo.Delete(ctx, tctx, propertyID); err != nil {
		return err
	}

	s.invalidateSummaries(ctx, tctx, propertyID)
	return nil
}

func (s *PropertyService) invalidateSummaries(ctx context.Context, tctx tenancy.Context, propertyID uuid.UUID) {
	invalidateSummaries(ctx, tctx, s.invalidator, propertyID)
}

// invalidateSummaries drops cached summaries for the property. Invalidation
// failures do not fail the write; stale entries expire with their TTL.
func invalidateSummaries(ctx context.Context, tctx tenancy.Context, inv SummaryInvalidator, propertyID uuid.UUID) {
	if inv == nil {
		return
	}
	if err := inv.InvalidateProperty(ctx, tctx, propertyID); err != nil {
		logger.L(ctx).Warn("Failed to invalidate revenue summaries",
			zap.String("property_id", propertyID.String()),
			zap.Error(err))
	}
}
