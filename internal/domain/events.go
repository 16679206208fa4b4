package domain

// Event is emitted by lifecycle and dispatch operations after their
// transaction commits. Consumers (notification fanout, chat provisioning,
// metrics) run synchronously afterwards; their failures never unwind the
// committed state.
type Event interface {
	EventName() string
}

// BookingCreated fires after a new booking is persisted and its offers
// are created. OfferedMechanicIDs is the availability snapshot that
// received offers.
type BookingCreated struct {
	Booking            *Booking
	OfferedMechanicIDs []int64
}

func (BookingCreated) EventName() string { return "booking_created" }

// OfferAccepted fires after a mechanic wins the acceptance race.
// LoserMechanicIDs are the mechanics whose pending offers were superseded
// in the same transaction.
type OfferAcceptedEvent struct {
	Booking          *Booking
	WinnerMechanicID int64
	LoserMechanicIDs []int64
}

func (OfferAcceptedEvent) EventName() string { return "offer_accepted" }

type WorkStarted struct {
	Booking *Booking
}

func (WorkStarted) EventName() string { return "work_started" }

type WorkCompleted struct {
	Booking *Booking
}

func (WorkCompleted) EventName() string { return "work_completed" }

// BookingCancelled fires after a cancellation commits. The fanout notifies
// the assigned mechanic too when Booking.MechanicID is set.
type BookingCancelledEvent struct {
	Booking   *Booking
	ActorRole UserRole
}

func (BookingCancelledEvent) EventName() string { return "booking_cancelled" }
