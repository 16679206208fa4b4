package chat

import "motofix/internal/domain"

type SendMessageRequest struct {
	Text string `json:"text" validate:"required,min=1,max=4000"`
}

// RoomView is a room plus the caller's unread counter.
type RoomView struct {
	domain.ChatRoom
	UnreadCount int64 `json:"unread_count"`
}
