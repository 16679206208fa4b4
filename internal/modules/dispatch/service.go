package dispatch

import (
	"context"
	"errors"
	"time"

	"motofix/internal/domain"
	"motofix/internal/metrics"
	"motofix/internal/repository"
)

type Service struct {
	offers OfferRepository
	events EventPublisher
	stats  *metrics.Metrics // optional
}

func NewService(offers OfferRepository, events EventPublisher, stats *metrics.Metrics) *Service {
	return &Service{offers: offers, events: events, stats: stats}
}

// CreateOffers fans one booking out to every mechanic in the snapshot.
// All offers share one assigned_at timestamp so the batch reads as a
// single dispatch decision.
func (s *Service) CreateOffers(ctx context.Context, b *domain.Booking, mechanicIDs []int64) ([]domain.WorkOffer, error) {
	if len(mechanicIDs) == 0 {
		return nil, nil
	}

	offers, err := s.offers.CreateBatch(ctx, b.ID, mechanicIDs, time.Now())
	if err != nil {
		return nil, err
	}
	if s.stats != nil {
		s.stats.OffersCreated.Add(float64(len(offers)))
	}
	return offers, nil
}

// AcceptOffer claims the booking for the mechanic. Exactly one accept per
// booking ever succeeds; everyone else gets ErrJobTaken or
// ErrOfferResolved depending on what they raced against.
func (s *Service) AcceptOffer(ctx context.Context, offerID, mechanicID int64) (*domain.Booking, error) {
	b, losers, err := s.offers.Accept(ctx, offerID, mechanicID, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrOfferNotFound
		case errors.Is(err, repository.ErrBookingTaken):
			s.countConflict()
			return nil, ErrJobTaken
		case errors.Is(err, repository.ErrOfferNotPending):
			s.countConflict()
			return nil, ErrOfferResolved
		default:
			return nil, err
		}
	}

	if s.stats != nil {
		s.stats.OffersAccepted.Inc()
	}
	s.events.Publish(ctx, domain.OfferAcceptedEvent{
		Booking:          b,
		WinnerMechanicID: mechanicID,
		LoserMechanicIDs: losers,
	})
	return b, nil
}

// RejectOffer declines a pending offer. Rejection is local to this
// mechanic: the booking and everyone else's offers are untouched.
func (s *Service) RejectOffer(ctx context.Context, offerID, mechanicID int64) (*domain.WorkOffer, error) {
	o, err := s.offers.Reject(ctx, offerID, mechanicID, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrOfferNotFound
		case errors.Is(err, repository.ErrOfferNotPending):
			return nil, ErrOfferResolved
		default:
			return nil, err
		}
	}

	if s.stats != nil {
		s.stats.OffersRejected.Inc()
	}
	return o, nil
}

func (s *Service) ListOffers(ctx context.Context, mechanicID int64) ([]domain.WorkOffer, error) {
	return s.offers.ListByMechanic(ctx, mechanicID)
}

func (s *Service) countConflict() {
	if s.stats != nil {
		s.stats.AcceptConflicts.Inc()
	}
}
