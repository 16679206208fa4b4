package dispatch

import (
	"context"
	"time"

	"motofix/internal/domain"
)

// OfferRepository performs the atomic dispatch operations. Accept is the
// arbitration point: it either claims the booking for the mechanic or
// reports exactly why it could not.
type OfferRepository interface {
	CreateBatch(ctx context.Context, bookingID int64, mechanicIDs []int64, assignedAt time.Time) ([]domain.WorkOffer, error)
	Accept(ctx context.Context, offerID, mechanicID int64, now time.Time) (*domain.Booking, []int64, error)
	Reject(ctx context.Context, offerID, mechanicID int64, now time.Time) (*domain.WorkOffer, error)
	ListByMechanic(ctx context.Context, mechanicID int64) ([]domain.WorkOffer, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, evs ...domain.Event)
}
