package mechanic

import (
	"context"
	"errors"

	"motofix/internal/domain"
	"motofix/internal/repository"
)

type Service struct {
	mechanics MechanicRepository
	offers    OfferCounter
	bookings  BookingCounter
}

func NewService(mechanics MechanicRepository, offers OfferCounter, bookings BookingCounter) *Service {
	return &Service{mechanics: mechanics, offers: offers, bookings: bookings}
}

func (s *Service) GetProfile(ctx context.Context, userID int64) (*domain.MechanicProfile, error) {
	p, err := s.mechanics.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *Service) UpdateProfile(ctx context.Context, userID int64, req UpdateProfileRequest) (*domain.MechanicProfile, error) {
	p := &domain.MechanicProfile{
		UserID:            userID,
		Specialization:    domain.Specialization(req.Specialization),
		YearsOfExperience: req.YearsOfExperience,
		Certification:     req.Certification,
		Bio:               req.Bio,
	}
	if err := s.mechanics.UpdateProfile(ctx, p); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return s.GetProfile(ctx, userID)
}

// Dashboard summarizes the mechanic's queue and workload.
type Dashboard struct {
	PendingOffers int64 `json:"pending_offers"`
	ActiveJobs    int64 `json:"active_jobs"`
	CompletedJobs int64 `json:"completed_jobs"`
}

func (s *Service) GetDashboard(ctx context.Context, userID int64) (*Dashboard, error) {
	pending, err := s.offers.CountByMechanicAndStatus(ctx, userID, domain.OfferPending)
	if err != nil {
		return nil, err
	}
	confirmed, err := s.bookings.CountByMechanicAndStatus(ctx, userID, domain.BookingConfirmed)
	if err != nil {
		return nil, err
	}
	inProgress, err := s.bookings.CountByMechanicAndStatus(ctx, userID, domain.BookingInProgress)
	if err != nil {
		return nil, err
	}
	completed, err := s.bookings.CountByMechanicAndStatus(ctx, userID, domain.BookingCompleted)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		PendingOffers: pending,
		ActiveJobs:    confirmed + inProgress,
		CompletedJobs: completed,
	}, nil
}

// SetAvailability flips whether the mechanic appears in future dispatch
// snapshots. It never touches offers already on their queue.
func (s *Service) SetAvailability(ctx context.Context, userID int64, available bool) (*domain.MechanicProfile, error) {
	if err := s.mechanics.SetAvailability(ctx, userID, available); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return s.GetProfile(ctx, userID)
}
