package chat

import "errors"

var (
	ErrRoomNotFound = errors.New("chat room not found")
	// ErrNotParticipant: the actor is neither the customer nor the
	// mechanic of the room's booking.
	ErrNotParticipant = errors.New("user is not a participant of this room")
	ErrValidation     = errors.New("validation error")
	// ErrNoMechanic: the booking has no assigned mechanic yet, so there
	// is nobody to chat with.
	ErrNoMechanic = errors.New("booking has no assigned mechanic")
)
