package notification

import (
	"context"
	"fmt"

	"motofix/internal/domain"
)

// Fanout turns lifecycle events into durable notification rows. It runs
// as an event consumer after the emitting transaction commits, so a
// failed insert here never unwinds a booking or an accept.
type Fanout struct {
	notifications NotificationRepository
}

func NewFanout(notifications NotificationRepository) *Fanout {
	return &Fanout{notifications: notifications}
}

func (f *Fanout) HandleEvent(ctx context.Context, ev domain.Event) error {
	switch e := ev.(type) {
	case domain.BookingCreated:
		return f.onBookingCreated(ctx, e)
	case domain.OfferAcceptedEvent:
		return f.onOfferAccepted(ctx, e)
	case domain.WorkStarted:
		return f.onWorkStarted(ctx, e)
	case domain.WorkCompleted:
		return f.onWorkCompleted(ctx, e)
	case domain.BookingCancelledEvent:
		return f.onBookingCancelled(ctx, e)
	default:
		return nil
	}
}

// onBookingCreated tells every offered mechanic there is a new job up
// for grabs.
func (f *Fanout) onBookingCreated(ctx context.Context, e domain.BookingCreated) error {
	if len(e.OfferedMechanicIDs) == 0 {
		return nil
	}

	rows := make([]domain.Notification, 0, len(e.OfferedMechanicIDs))
	for _, mechanicID := range e.OfferedMechanicIDs {
		rows = append(rows, domain.Notification{
			UserID:    mechanicID,
			BookingID: &e.Booking.ID,
			Type:      domain.NotifNewBookingAvailable,
			Title:     "New job available",
			Message:   fmt.Sprintf("Booking #%d: %s", e.Booking.ID, e.Booking.ProblemDescription),
		})
	}
	return f.notifications.CreateBatch(ctx, rows)
}

// onOfferAccepted congratulates nobody: the winner already holds the
// booking. The losers learn the job is gone and the customer learns who
// took it.
func (f *Fanout) onOfferAccepted(ctx context.Context, e domain.OfferAcceptedEvent) error {
	rows := make([]domain.Notification, 0, len(e.LoserMechanicIDs)+1)
	for _, mechanicID := range e.LoserMechanicIDs {
		rows = append(rows, domain.Notification{
			UserID:    mechanicID,
			BookingID: &e.Booking.ID,
			Type:      domain.NotifWorkTakenByOther,
			Title:     "Job no longer available",
			Message:   fmt.Sprintf("Booking #%d was taken by another mechanic", e.Booking.ID),
		})
	}
	rows = append(rows, domain.Notification{
		UserID:    e.Booking.CustomerID,
		BookingID: &e.Booking.ID,
		Type:      domain.NotifBookingConfirmed,
		Title:     "Booking confirmed",
		Message:   fmt.Sprintf("A mechanic accepted your booking #%d", e.Booking.ID),
	})
	return f.notifications.CreateBatch(ctx, rows)
}

func (f *Fanout) onWorkStarted(ctx context.Context, e domain.WorkStarted) error {
	return f.notifications.Create(ctx, &domain.Notification{
		UserID:    e.Booking.CustomerID,
		BookingID: &e.Booking.ID,
		Type:      domain.NotifBookingInProgress,
		Title:     "Work started",
		Message:   fmt.Sprintf("Work on your booking #%d has started", e.Booking.ID),
	})
}

func (f *Fanout) onWorkCompleted(ctx context.Context, e domain.WorkCompleted) error {
	return f.notifications.Create(ctx, &domain.Notification{
		UserID:    e.Booking.CustomerID,
		BookingID: &e.Booking.ID,
		Type:      domain.NotifBookingCompleted,
		Title:     "Work completed",
		Message:   fmt.Sprintf("Your motorcycle is ready, booking #%d is complete", e.Booking.ID),
	})
}

// onBookingCancelled notifies the customer, and the assigned mechanic
// when the booking already had one.
func (f *Fanout) onBookingCancelled(ctx context.Context, e domain.BookingCancelledEvent) error {
	rows := []domain.Notification{{
		UserID:    e.Booking.CustomerID,
		BookingID: &e.Booking.ID,
		Type:      domain.NotifBookingCancelled,
		Title:     "Booking cancelled",
		Message:   fmt.Sprintf("Booking #%d was cancelled", e.Booking.ID),
	}}
	if e.Booking.MechanicID != nil && e.ActorRole != domain.RoleMechanic {
		rows = append(rows, domain.Notification{
			UserID:    *e.Booking.MechanicID,
			BookingID: &e.Booking.ID,
			Type:      domain.NotifWorkCancelledByClient,
			Title:     "Job cancelled",
			Message:   fmt.Sprintf("The customer cancelled booking #%d", e.Booking.ID),
		})
	}
	return f.notifications.CreateBatch(ctx, rows)
}
