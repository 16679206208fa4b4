package domain

import "time"

type NotificationType string

const (
	NotifNewBookingAvailable   NotificationType = "new_booking_available"
	NotifWorkTakenByOther      NotificationType = "work_taken_by_other"
	NotifBookingConfirmed      NotificationType = "booking_confirmed"
	NotifBookingInProgress     NotificationType = "booking_in_progress"
	NotifBookingCompleted      NotificationType = "booking_completed"
	NotifBookingCancelled      NotificationType = "booking_cancelled"
	NotifWorkCancelledByClient NotificationType = "work_cancelled_by_customer"
)

// Notification is an append-only durable record; clients poll for them.
// Only IsRead is ever mutated after creation.
type Notification struct {
	ID        int64            `json:"id"`
	UserID    int64            `json:"user_id" gorm:"index:idx_notifications_user_unread"`
	BookingID *int64           `json:"booking_id,omitempty"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message" gorm:"type:text"`
	IsRead    bool             `json:"is_read" gorm:"index:idx_notifications_user_unread"`
	CreatedAt time.Time        `json:"created_at"`
}

func (Notification) TableName() string { return "notifications" }
