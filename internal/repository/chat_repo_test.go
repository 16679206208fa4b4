package repository

import (
	"context"
	"testing"

	"motofix/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatRepository_EnsureRoom_Idempotent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	chats := NewChatRepository(db)

	customer := seedUser(t, db, domain.RoleCustomer, "rider@example.com")
	mech := seedMechanic(t, db, "m1@example.com", true)
	b := seedBooking(t, db, customer.ID, domain.BookingConfirmed)

	first, err := chats.EnsureRoom(ctx, b.ID, customer.ID, &mech.ID)
	require.NoError(t, err)

	second, err := chats.EnsureRoom(ctx, b.ID, customer.ID, &mech.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&domain.ChatRoom{}).Where("booking_id = ?", b.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestChatRepository_Messages(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	chats := NewChatRepository(db)

	customer := seedUser(t, db, domain.RoleCustomer, "rider@example.com")
	mech := seedMechanic(t, db, "m1@example.com", true)
	b := seedBooking(t, db, customer.ID, domain.BookingConfirmed)

	room, err := chats.EnsureRoom(ctx, b.ID, customer.ID, &mech.ID)
	require.NoError(t, err)

	msg := &domain.Message{
		ChatRoomID: room.ID,
		SenderID:   customer.ID,
		Text:       "when can I pick it up?",
	}
	require.NoError(t, chats.CreateMessage(ctx, msg))
	assert.NotEmpty(t, msg.ID)

	unread, err := chats.UnreadCount(ctx, room.ID, mech.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread)

	// The sender's own count ignores their message.
	unread, err = chats.UnreadCount(ctx, room.ID, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), unread)

	require.NoError(t, chats.MarkMessagesRead(ctx, room.ID, mech.ID))
	unread, err = chats.UnreadCount(ctx, room.ID, mech.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), unread)

	msgs, err := chats.ListMessages(ctx, room.ID, 50)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "when can I pick it up?", msgs[0].Text)
}

func TestChatRepository_ConfirmedBookingsWithoutRoom(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	chats := NewChatRepository(db)

	customer := seedUser(t, db, domain.RoleCustomer, "rider@example.com")
	mech := seedMechanic(t, db, "m1@example.com", true)

	withRoom := seedBooking(t, db, customer.ID, domain.BookingConfirmed)
	require.NoError(t, db.Model(&bookingModel{}).Where("id = ?", withRoom.ID).Update("mechanic_id", mech.ID).Error)
	_, err := chats.EnsureRoom(ctx, withRoom.ID, customer.ID, &mech.ID)
	require.NoError(t, err)

	withoutRoom := seedBooking(t, db, customer.ID, domain.BookingConfirmed)
	require.NoError(t, db.Model(&bookingModel{}).Where("id = ?", withoutRoom.ID).Update("mechanic_id", mech.ID).Error)

	// Pending bookings never get a room, mechanic or not.
	seedBooking(t, db, customer.ID, domain.BookingPending)

	missing, err := chats.ConfirmedBookingsWithoutRoom(ctx)
	require.NoError(t, err)
	require.Len(t, missing, 1)
	assert.Equal(t, withoutRoom.ID, missing[0].ID)
}
