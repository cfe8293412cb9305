package booking

import (
	"context"

	"github.com/google/uuid"
	"github.com/pms/backend/internal/domain/shared"
	"github.com/pms/backend/internal/domain/tenancy"
)

// PropertyRepository defines tenant-qualified persistence for properties.
// Every read takes a tenancy.Context: a property that exists under another
// tenant is indistinguishable from one that does not exist at all.
type PropertyRepository interface {
	FindByID(ctx context.Context, tctx tenancy.Context, id uuid.UUID) (*Property, error)
	FindAll(ctx context.Context, tctx tenancy.Context, filter shared.Filter) ([]Property, error)
	Save(ctx context.Context, tctx tenancy.Context, property *Property) error
	Delete(ctx context.Context, tctx tenancy.Context, id uuid.UUID) error
}

// ReservationRepository defines tenant-qualified persistence for reservations
type ReservationRepository interface {
	FindByID(ctx context.Context, tctx tenancy.Context, id uuid.UUID) (*Reservation, error)
	FindByProperty(ctx context.Context, tctx tenancy.Context, propertyID uuid.UUID, filter shared.Filter) ([]Reservation, error)
	Save(ctx context.Context, tctx tenancy.Context, reservation *Reservation) error
	Delete(ctx context.Context, tctx tenancy.Context, id uuid.UUID) error
}
