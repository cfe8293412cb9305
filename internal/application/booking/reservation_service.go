package booking

import (
	"context"

	"github.com/google/uuid"
	"github.com/pms/backend/internal/domain/booking"
	"github.com/pms/backend/internal/domain/shared"
	"github.com/pms/backend/internal/domain/shared/valueobject"
	"github.com/pms/backend/internal/domain/tenancy"
)

// ReservationService handles reservation-related business operations. Every
// write invalidates the property's cached revenue summaries, so readers see
// at most TTL-stale data and usually fresh data.
type ReservationService struct {
	reservationRepo booking.ReservationRepository
	propertyRepo    booking.PropertyRepository
	invalidator     SummaryInvalidator
}

// NewReservationService creates a new ReservationService
func NewReservationService(
	reservationRepo booking.ReservationRepository,
	propertyRepo booking.PropertyRepository,
	invalidator SummaryInvalidator,
) *ReservationService {
	return &ReservationService{
		reservationRepo: reservationRepo,
		propertyRepo:    propertyRepo,
		invalidator:     invalidator,
	}
}

// Create books a reservation against one of the caller's properties. The
// property lookup is tenant-qualified, so booking against another tenant's
// property comes back as NOT_FOUND.
func (s *ReservationService) Create(ctx context.Context, tctx tenancy.Context, req CreateReservationRequest) (*ReservationResponse, error) {
	property, err := s.propertyRepo.FindByID(ctx, tctx, req.PropertyID)
	if err != nil {
		return nil, err
	}

	currency := valueobject.Currency(req.Currency)
	if currency == "" {
		currency = valueobject.DefaultCurrency
	}
	total, err := valueobject.NewMoney(req.TotalAmount, currency)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_AMOUNT", err.Error())
	}

	reservation, err := booking.NewReservation(property, req.CheckInDate, req.CheckOutDate, total)
	if err != nil {
		return nil, err
	}

	if err := s.reservationRepo.Save(ctx, tctx, reservation); err != nil {
		return nil, err
	}

	s.invalidateSummaries(ctx, tctx, property.ID)

	response := ToReservationResponse(reservation)
	return &response, nil
}

// Get returns a reservation by id within the caller's tenant
func (s *ReservationService) Get(ctx context.Context, tctx tenancy.Context, reservationID uuid.UUID) (*ReservationResponse, error) {
	reservation, err := s.reservationRepo.FindByID(ctx, tctx, reservationID)
	if err != nil {
		return nil, err
	}

	response := ToReservationResponse(reservation)
	return &response, nil
}

// ListByProperty returns a property's reservations
func (s *ReservationService) ListByProperty(ctx context.Context, tctx tenancy.Context, propertyID uuid.UUID, filter shared.Filter) ([]ReservationResponse, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	// Resolve the property first so an unknown or foreign id is reported as
	// NOT_FOUND rather than an empty list.
	if _, err := s.propertyRepo.FindByID(ctx, tctx, propertyID); err != nil {
		return nil, err
	}

	reservations, err := s.reservationRepo.FindByProperty(ctx, tctx, propertyID, filter)
	if err != nil {
		return nil, err
	}
	return ToReservationResponses(reservations), nil
}

// Update modifies a reservation's dates or amount
func (s *ReservationService) Update(ctx context.Context, tctx tenancy.Context, reservationID uuid.UUID, req UpdateReservationRequest) (*ReservationResponse, error) {
	reservation, err := s.reservationRepo.FindByID(ctx, tctx, reservationID)
	if err != nil {
		return nil, err
	}

	property, err := s.propertyRepo.FindByID(ctx, tctx, reservation.PropertyID)
	if err != nil {
		return nil, err
	}

	if req.CheckInDate != nil {
		reservation.CheckInDate = *req.CheckInDate
	}
	if req.CheckOutDate != nil {
		reservation.CheckOutDate = *req.CheckOutDate
	}
	if req.TotalAmount != nil || req.Currency != nil {
		amount := reservation.TotalAmount.Amount()
		currency := reservation.TotalAmount.Currency()
		if req.TotalAmount != nil {
			amount = *req.TotalAmount
		}
		if req.Currency != nil {
			currency = valueobject.Currency(*req.Currency)
		}
		total, err := valueobject.NewMoney(amount, currency)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_AMOUNT", err.Error())
		}
		reservation.TotalAmount = total
	}

	if err := reservation.Validate(property); err != nil {
		return nil, err
	}

	if err := s.reservationRepo.Save(ctx, tctx, reservation); err != nil {
		return nil, err
	}

	s.invalidateSummaries(ctx, tctx, reservation.PropertyID)

	response := ToReservationResponse(reservation)
	return &response, nil
}

// Delete removes a reservation and drops the property's cached summaries
func (s *ReservationService) Delete(ctx context.Context, tctx tenancy.Context, reservationID uuid.UUID) error {
	reservation, err := s.reservationRepo.FindByID(ctx, tctx, reservationID)
	if err != nil {
		return err
	}

	if err := s.reservationRepo.Delete(ctx, tctx, reservationID); err != nil {
		return err
	}

	s.invalidateSummaries(ctx, tctx, reservation.PropertyID)
	return nil
}

func (s *ReservationService) invalidateSummaries(ctx context.Context, tctx tenancy.Context, propertyID uuid.UUID) {
	invalidateSummaries(ctx, tctx, s.invalidator, propertyID)
}
