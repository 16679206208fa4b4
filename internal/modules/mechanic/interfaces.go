package mechanic

import (
	"context"

	"motofix/internal/domain"
)

type MechanicRepository interface {
	GetByUserID(ctx context.Context, userID int64) (*domain.MechanicProfile, error)
	UpdateProfile(ctx context.Context, p *domain.MechanicProfile) error
	SetAvailability(ctx context.Context, userID int64, available bool) error
}

// WorkloadCounters back the dashboard: how many offers wait on the
// mechanic's queue and how many jobs are in flight or finished.
type OfferCounter interface {
	CountByMechanicAndStatus(ctx context.Context, mechanicID int64, status domain.OfferStatus) (int64, error)
}

type BookingCounter interface {
	CountByMechanicAndStatus(ctx context.Context, mechanicID int64, status domain.BookingStatus) (int64, error)
}
