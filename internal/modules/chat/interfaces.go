package chat

import (
	"context"

	"motofix/internal/domain"
)

type ChatRepository interface {
	EnsureRoom(ctx context.Context, bookingID, customerID int64, mechanicID *int64) (*domain.ChatRoom, error)
	GetRoomByID(ctx context.Context, roomID string) (*domain.ChatRoom, error)
	GetRoomByBookingID(ctx context.Context, bookingID int64) (*domain.ChatRoom, error)
	ListRoomsByUser(ctx context.Context, userID int64) ([]domain.ChatRoom, error)
	CreateMessage(ctx context.Context, msg *domain.Message) error
	ListMessages(ctx context.Context, roomID string, limit int) ([]domain.Message, error)
	MarkMessagesRead(ctx context.Context, roomID string, readerID int64) error
	UnreadCount(ctx context.Context, roomID string, userID int64) (int64, error)
}
