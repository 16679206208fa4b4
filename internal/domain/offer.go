package domain

import "time"

type OfferStatus string

const (
	OfferPending  OfferStatus = "pending"
	OfferAccepted OfferStatus = "accepted"
	OfferRejected OfferStatus = "rejected"
	// OfferSuperseded marks an offer invalidated because another mechanic
	// accepted the same booking first, or the booking was cancelled.
	OfferSuperseded OfferStatus = "superseded"
)

// Terminal reports whether the status can never change again.
func (s OfferStatus) Terminal() bool {
	return s != OfferPending
}

// WorkOffer is a per-mechanic proposal for a booking. One row is created
// per mechanic available at booking-creation time. At most one offer per
// booking ever reaches accepted.
type WorkOffer struct {
	ID          int64       `json:"id"`
	MechanicID  int64       `json:"mechanic_id" gorm:"index"`
	BookingID   int64       `json:"booking_id" gorm:"index"`
	Status      OfferStatus `json:"status"`
	AssignedAt  time.Time   `json:"assigned_at"`
	RespondedAt *time.Time  `json:"responded_at,omitempty"`

	Booking *Booking `json:"booking,omitempty" gorm:"foreignKey:BookingID"`
}

func (WorkOffer) TableName() string { return "work_offers" }
