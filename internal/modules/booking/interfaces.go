package booking

import (
	"context"
	"time"

	"motofix/internal/domain"
)

// BookingRepository defines the storage operations the lifecycle needs.
// Start, Complete and Cancel carry their transition guards inside the
// repository so a stale read here cannot produce an illegal transition.
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListByCustomer(ctx context.Context, customerID int64, limit, offset int) ([]domain.Booking, error)
	ListByMechanic(ctx context.Context, mechanicID int64, limit, offset int) ([]domain.Booking, error)
	Start(ctx context.Context, bookingID, mechanicID int64) (*domain.Booking, error)
	Complete(ctx context.Context, bookingID, mechanicID int64, actualCost *float64, repairNotes string, now time.Time) (*domain.Booking, error)
	Cancel(ctx context.Context, bookingID int64) (*domain.Booking, []int64, error)
}

type MotorcycleRepository interface {
	Create(ctx context.Context, m *domain.Motorcycle) error
	GetByID(ctx context.Context, id int64) (*domain.Motorcycle, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Motorcycle, error)
	Update(ctx context.Context, m *domain.Motorcycle) error
	Delete(ctx context.Context, id, ownerID int64) error
}

// Dispatcher fans a new booking out to mechanics. The caller passes the
// availability snapshot explicitly, so the set of offered mechanics is
// decided in exactly one place.
type Dispatcher interface {
	CreateOffers(ctx context.Context, b *domain.Booking, mechanicIDs []int64) ([]domain.WorkOffer, error)
}

type AvailabilityReader interface {
	AvailableMechanicIDs(ctx context.Context) ([]int64, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, evs ...domain.Event)
}
