package domain

import "time"

type BookingStatus string

const (
	BookingPending    BookingStatus = "pending"
	BookingConfirmed  BookingStatus = "confirmed"
	BookingInProgress BookingStatus = "in_progress"
	BookingCompleted  BookingStatus = "completed"
	BookingCancelled  BookingStatus = "cancelled"
)

// bookingTransitions is the only legal transition graph. Completed and
// cancelled are terminal; nothing moves backwards except into cancelled.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:    {BookingConfirmed, BookingCancelled},
	BookingConfirmed:  {BookingInProgress, BookingCancelled},
	BookingInProgress: {BookingCompleted},
}

// CanTransition reports whether from → to is a legal booking status change.
func CanTransition(from, to BookingStatus) bool {
	for _, next := range bookingTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Cancellable reports whether a booking in this status may still be cancelled.
func (s BookingStatus) Cancellable() bool {
	return CanTransition(s, BookingCancelled)
}

type Booking struct {
	ID                 int64         `json:"id"`
	CustomerID         int64         `json:"customer_id" validate:"required"`
	MotorcycleID       int64         `json:"motorcycle_id" validate:"required"`
	MechanicID         *int64        `json:"mechanic_id,omitempty"`
	ProblemDescription string        `json:"problem_description" gorm:"type:text" validate:"required"`
	AppointmentDate    time.Time     `json:"appointment_date" validate:"required"`
	Status             BookingStatus `json:"status"`
	EstimatedCost      *float64      `json:"estimated_cost,omitempty"`
	ActualCost         *float64      `json:"actual_cost,omitempty"`
	RepairNotes        string        `json:"repair_notes,omitempty" gorm:"type:text"`
	CompletionDate     *time.Time    `json:"completion_date,omitempty"`
	PickupDate         *time.Time    `json:"pickup_date,omitempty"`
	CreatedAt          time.Time     `json:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at"`

	Customer   *User       `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	Motorcycle *Motorcycle `json:"motorcycle,omitempty" gorm:"foreignKey:MotorcycleID"`
}

func (Booking) TableName() string { return "bookings" }
