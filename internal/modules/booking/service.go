package booking

import (
	"context"
	"errors"
	"time"

	"motofix/internal/domain"
	"motofix/internal/repository"
)

type Service struct {
	bookings     BookingRepository
	motorcycles  MotorcycleRepository
	dispatcher   Dispatcher
	availability AvailabilityReader
	events       EventPublisher
}

func NewService(
	bookings BookingRepository,
	motorcycles MotorcycleRepository,
	dispatcher Dispatcher,
	availability AvailabilityReader,
	events EventPublisher,
) *Service {
	return &Service{
		bookings:     bookings,
		motorcycles:  motorcycles,
		dispatcher:   dispatcher,
		availability: availability,
		events:       events,
	}
}

// CreateBooking persists a new pending booking, fans offers out to every
// mechanic available at this moment and announces the result. An empty
// availability snapshot is not an error: the booking simply waits with
// zero offers.
func (s *Service) CreateBooking(ctx context.Context, customerID int64, req CreateBookingRequest) (*domain.Booking, error) {
	if req.AppointmentDate.Before(time.Now()) {
		return nil, ErrValidation
	}

	moto, err := s.motorcycles.GetByID(ctx, req.MotorcycleID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrValidation
		}
		return nil, err
	}
	// a motorcycle that belongs to someone else is as good as absent
	if moto.OwnerID != customerID {
		return nil, ErrValidation
	}

	b := &domain.Booking{
		CustomerID:         customerID,
		MotorcycleID:       req.MotorcycleID,
		ProblemDescription: req.ProblemDescription,
		AppointmentDate:    req.AppointmentDate,
		EstimatedCost:      req.EstimatedCost,
		Status:             domain.BookingPending,
	}
	if err := s.bookings.Create(ctx, b); err != nil {
		return nil, err
	}

	snapshot, err := s.availability.AvailableMechanicIDs(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := s.dispatcher.CreateOffers(ctx, b, snapshot); err != nil {
		return nil, err
	}

	s.events.Publish(ctx, domain.BookingCreated{
		Booking:            b,
		OfferedMechanicIDs: snapshot,
	})
	return b, nil
}

// GetBooking returns the booking if the actor is allowed to see it: the
// owning customer, the assigned mechanic, or an admin.
func (s *Service) GetBooking(ctx context.Context, bookingID, actorID int64, role domain.UserRole) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !s.canSee(b, actorID, role) {
		return nil, ErrNotFound
	}
	return b, nil
}

func (s *Service) ListCustomerBookings(ctx context.Context, customerID int64, limit, offset int) ([]domain.Booking, error) {
	return s.bookings.ListByCustomer(ctx, customerID, normalizeLimit(limit), offset)
}

func (s *Service) ListMechanicBookings(ctx context.Context, mechanicID int64, limit, offset int) ([]domain.Booking, error) {
	return s.bookings.ListByMechanic(ctx, mechanicID, normalizeLimit(limit), offset)
}

// StartWork moves the booking from confirmed to in_progress. Only the
// assigned mechanic can do this.
func (s *Service) StartWork(ctx context.Context, bookingID, mechanicID int64) (*domain.Booking, error) {
	b, err := s.bookings.Start(ctx, bookingID, mechanicID)
	if err != nil {
		return nil, s.mapTransitionErr(err)
	}

	s.events.Publish(ctx, domain.WorkStarted{Booking: b})
	return b, nil
}

// CompleteWork finishes an in_progress booking and records the repair
// outcome.
func (s *Service) CompleteWork(ctx context.Context, bookingID, mechanicID int64, req CompleteWorkRequest) (*domain.Booking, error) {
	cost := req.ActualCost
	b, err := s.bookings.Complete(ctx, bookingID, mechanicID, &cost, req.RepairNotes, time.Now())
	if err != nil {
		return nil, s.mapTransitionErr(err)
	}

	s.events.Publish(ctx, domain.WorkCompleted{Booking: b})
	return b, nil
}

// CancelBooking cancels a pending or confirmed booking. The owning
// customer and admins can always try; the assigned mechanic can back out
// of a booking they accepted. Once work started, nobody cancels.
func (s *Service) CancelBooking(ctx context.Context, bookingID, actorID int64, role domain.UserRole) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !s.canCancel(b, actorID, role) {
		return nil, ErrForbidden
	}

	cancelled, _, err := s.bookings.Cancel(ctx, bookingID)
	if err != nil {
		return nil, s.mapTransitionErr(err)
	}

	s.events.Publish(ctx, domain.BookingCancelledEvent{
		Booking:   cancelled,
		ActorRole: role,
	})
	return cancelled, nil
}

func (s *Service) canSee(b *domain.Booking, actorID int64, role domain.UserRole) bool {
	if role == domain.RoleAdmin {
		return true
	}
	if b.CustomerID == actorID {
		return true
	}
	return b.MechanicID != nil && *b.MechanicID == actorID
}

// canCancel checks who may ask; whether the status still allows it is
// enforced by the repository's guarded update.
func (s *Service) canCancel(b *domain.Booking, actorID int64, role domain.UserRole) bool {
	if role == domain.RoleAdmin {
		return true
	}
	if role == domain.RoleCustomer {
		return b.CustomerID == actorID
	}
	return b.MechanicID != nil && *b.MechanicID == actorID
}

func (s *Service) mapTransitionErr(err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrNotAssigned):
		return ErrForbidden
	case errors.Is(err, repository.ErrInvalidStatus):
		return ErrConflict
	default:
		return err
	}
}

func normalizeLimit(limit int) int {
	if limit <= 0 || limit > 100 {
		return 50
	}
	return limit
}

// --- motorcycles ---

func (s *Service) CreateMotorcycle(ctx context.Context, ownerID int64, req CreateMotorcycleRequest) (*domain.Motorcycle, error) {
	m := &domain.Motorcycle{
		OwnerID:      ownerID,
		Brand:        req.Brand,
		Model:        req.Model,
		Year:         req.Year,
		CC:           req.CC,
		BikeType:     domain.BikeType(req.BikeType),
		LicensePlate: req.LicensePlate,
		Color:        req.Color,
		Mileage:      req.Mileage,
		Notes:        req.Notes,
	}
	if err := s.motorcycles.Create(ctx, m); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrValidation
		}
		return nil, err
	}
	return m, nil
}

func (s *Service) ListMotorcycles(ctx context.Context, ownerID int64) ([]domain.Motorcycle, error) {
	return s.motorcycles.ListByOwner(ctx, ownerID)
}

func (s *Service) UpdateMotorcycle(ctx context.Context, ownerID, motorcycleID int64, req UpdateMotorcycleRequest) (*domain.Motorcycle, error) {
	m, err := s.motorcycles.GetByID(ctx, motorcycleID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if m.OwnerID != ownerID {
		return nil, ErrNotFound
	}

	m.Brand = req.Brand
	m.Model = req.Model
	m.Year = req.Year
	m.CC = req.CC
	m.BikeType = domain.BikeType(req.BikeType)
	m.Color = req.Color
	m.Mileage = req.Mileage
	m.Notes = req.Notes
	if err := s.motorcycles.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) DeleteMotorcycle(ctx context.Context, ownerID, motorcycleID int64) error {
	if err := s.motorcycles.Delete(ctx, motorcycleID, ownerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
