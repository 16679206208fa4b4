package repository

import (
	"context"
	"errors"
	"time"

	"motofix/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) *ChatRepository {
	return &ChatRepository{db: db}
}

// EnsureRoom creates the room for a booking or returns the existing one.
// The unique index on booking_id closes the check-then-act window: when a
// concurrent insert wins, the violation is swallowed and the winner's row
// is fetched instead.
func (r *ChatRepository) EnsureRoom(ctx context.Context, bookingID, customerID int64, mechanicID *int64) (*domain.ChatRoom, error) {
	existing, err := r.GetRoomByBookingID(ctx, bookingID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	room := &domain.ChatRoom{
		ID:         uuid.New().String(),
		BookingID:  bookingID,
		CustomerID: customerID,
		MechanicID: mechanicID,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	if err := r.db.WithContext(ctx).Create(room).Error; err != nil {
		if isUniqueViolation(err) {
			return r.GetRoomByBookingID(ctx, bookingID)
		}
		return nil, err
	}
	return room, nil
}

func (r *ChatRepository) GetRoomByID(ctx context.Context, roomID string) (*domain.ChatRoom, error) {
	var room domain.ChatRoom
	if err := r.db.WithContext(ctx).Where("id = ?", roomID).First(&room).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &room, nil
}

func (r *ChatRepository) GetRoomByBookingID(ctx context.Context, bookingID int64) (*domain.ChatRoom, error) {
	var room domain.ChatRoom
	if err := r.db.WithContext(ctx).Where("booking_id = ?", bookingID).First(&room).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &room, nil
}

func (r *ChatRepository) ListRoomsByUser(ctx context.Context, userID int64) ([]domain.ChatRoom, error) {
	var rooms []domain.ChatRoom
	err := r.db.WithContext(ctx).
		Where("customer_id = ? OR mechanic_id = ?", userID, userID).
		Order("updated_at desc").
		Find(&rooms).Error
	return rooms, err
}

func (r *ChatRepository) CreateMessage(ctx context.Context, msg *domain.Message) error {
	if msg.ID == "" {
		msg.ID = uuid.New().String()
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(msg).Error; err != nil {
			return err
		}
		// Bump the room so it sorts to the top of the user's list.
		return tx.Model(&domain.ChatRoom{}).
			Where("id = ?", msg.ChatRoomID).
			Update("updated_at", msg.CreatedAt).Error
	})
}

func (r *ChatRepository) ListMessages(ctx context.Context, roomID string, limit int) ([]domain.Message, error) {
	var msgs []domain.Message
	err := r.db.WithContext(ctx).
		Where("chat_room_id = ?", roomID).
		Order("created_at asc").
		Limit(limit).
		Find(&msgs).Error
	return msgs, err
}

// MarkMessagesRead marks every message in the room not sent by reader.
func (r *ChatRepository) MarkMessagesRead(ctx context.Context, roomID string, readerID int64) error {
	return r.db.WithContext(ctx).
		Model(&domain.Message{}).
		Where("chat_room_id = ? AND sender_id <> ? AND is_read = ?", roomID, readerID, false).
		Update("is_read", true).Error
}

func (r *ChatRepository) UnreadCount(ctx context.Context, roomID string, userID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Message{}).
		Where("chat_room_id = ? AND sender_id <> ? AND is_read = ?", roomID, userID, false).
		Count(&count).Error
	return count, err
}

// ConfirmedBookingsWithoutRoom feeds the one-time backfill command.
func (r *ChatRepository) ConfirmedBookingsWithoutRoom(ctx context.Context) ([]domain.Booking, error) {
	var rows []bookingModel
	err := r.db.WithContext(ctx).
		Where("status = ? AND mechanic_id IS NOT NULL", domain.BookingConfirmed).
		Where("id NOT IN (?)", r.db.Model(&domain.ChatRoom{}).Select("booking_id")).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}
