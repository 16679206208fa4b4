package domain

import "time"

// ChatRoom links a customer and the assigned mechanic for one booking.
// The unique index on BookingID is what makes provisioning idempotent.
type ChatRoom struct {
	ID         string    `json:"id" gorm:"column:id;primaryKey"`
	BookingID  int64     `json:"booking_id" gorm:"uniqueIndex"`
	CustomerID int64     `json:"customer_id"`
	MechanicID *int64    `json:"mechanic_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (ChatRoom) TableName() string { return "chat_rooms" }

type Message struct {
	ID         string    `json:"id" gorm:"column:id;primaryKey"`
	ChatRoomID string    `json:"chat_room_id" gorm:"index"`
	SenderID   int64     `json:"sender_id"`
	Text       string    `json:"text" gorm:"column:text;type:text"`
	IsRead     bool      `json:"is_read"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Message) TableName() string { return "messages" }
