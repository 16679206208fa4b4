package chat

import (
	"context"
	"testing"

	"motofix/internal/domain"
	"motofix/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockChatRepository struct {
	mock.Mock
}

func (m *MockChatRepository) EnsureRoom(ctx context.Context, bookingID, customerID int64, mechanicID *int64) (*domain.ChatRoom, error) {
	args := m.Called(ctx, bookingID, customerID, mechanicID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChatRoom), args.Error(1)
}

func (m *MockChatRepository) GetRoomByID(ctx context.Context, roomID string) (*domain.ChatRoom, error) {
	args := m.Called(ctx, roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChatRoom), args.Error(1)
}

func (m *MockChatRepository) GetRoomByBookingID(ctx context.Context, bookingID int64) (*domain.ChatRoom, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChatRoom), args.Error(1)
}

func (m *MockChatRepository) ListRoomsByUser(ctx context.Context, userID int64) ([]domain.ChatRoom, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.ChatRoom), args.Error(1)
}

func (m *MockChatRepository) CreateMessage(ctx context.Context, msg *domain.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockChatRepository) ListMessages(ctx context.Context, roomID string, limit int) ([]domain.Message, error) {
	args := m.Called(ctx, roomID, limit)
	return args.Get(0).([]domain.Message), args.Error(1)
}

func (m *MockChatRepository) MarkMessagesRead(ctx context.Context, roomID string, readerID int64) error {
	args := m.Called(ctx, roomID, readerID)
	return args.Error(0)
}

func (m *MockChatRepository) UnreadCount(ctx context.Context, roomID string, userID int64) (int64, error) {
	args := m.Called(ctx, roomID, userID)
	return args.Get(0).(int64), args.Error(1)
}

func TestHandleEvent_ProvisionsRoomOnAccept(t *testing.T) {
	repo := new(MockChatRepository)
	svc := NewService(repo, nil)

	mech := int64(10)
	repo.On("EnsureRoom", mock.Anything, int64(5), int64(1), &mech).
		Return(&domain.ChatRoom{ID: "room-1", BookingID: 5, CustomerID: 1, MechanicID: &mech}, nil)

	err := svc.HandleEvent(context.Background(), domain.OfferAcceptedEvent{
		Booking:          &domain.Booking{ID: 5, CustomerID: 1, MechanicID: &mech},
		WinnerMechanicID: mech,
	})

	assert.NoError(t, err)
	repo.AssertCalled(t, "EnsureRoom", mock.Anything, int64(5), int64(1), &mech)
}

func TestHandleEvent_IgnoresUnrelatedEvents(t *testing.T) {
	repo := new(MockChatRepository)
	svc := NewService(repo, nil)

	err := svc.HandleEvent(context.Background(), domain.WorkStarted{
		Booking: &domain.Booking{ID: 5},
	})

	assert.NoError(t, err)
	repo.AssertNotCalled(t, "EnsureRoom", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestEnsureRoomForBooking_RequiresMechanic(t *testing.T) {
	svc := NewService(new(MockChatRepository), nil)

	_, err := svc.EnsureRoomForBooking(context.Background(), &domain.Booking{ID: 5, CustomerID: 1})
	assert.ErrorIs(t, err, ErrNoMechanic)
}

func TestSendMessage_MembershipAndValidation(t *testing.T) {
	mech := int64(10)
	room := &domain.ChatRoom{ID: "room-1", BookingID: 5, CustomerID: 1, MechanicID: &mech}

	t.Run("member sends", func(t *testing.T) {
		repo := new(MockChatRepository)
		svc := NewService(repo, nil)
		repo.On("GetRoomByID", mock.Anything, "room-1").Return(room, nil)
		repo.On("CreateMessage", mock.Anything, mock.AnythingOfType("*domain.Message")).Return(nil)

		msg, err := svc.SendMessage(context.Background(), "room-1", 10, "on my way")
		assert.NoError(t, err)
		assert.Equal(t, "on my way", msg.Text)
		assert.Equal(t, int64(10), msg.SenderID)
	})

	t.Run("outsider", func(t *testing.T) {
		repo := new(MockChatRepository)
		svc := NewService(repo, nil)
		repo.On("GetRoomByID", mock.Anything, "room-1").Return(room, nil)

		_, err := svc.SendMessage(context.Background(), "room-1", 99, "hello")
		assert.ErrorIs(t, err, ErrNotParticipant)
	})

	t.Run("blank text", func(t *testing.T) {
		svc := NewService(new(MockChatRepository), nil)

		_, err := svc.SendMessage(context.Background(), "room-1", 1, "   ")
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("unknown room", func(t *testing.T) {
		repo := new(MockChatRepository)
		svc := NewService(repo, nil)
		repo.On("GetRoomByID", mock.Anything, "nope").Return(nil, repository.ErrNotFound)

		_, err := svc.SendMessage(context.Background(), "nope", 1, "hello")
		assert.ErrorIs(t, err, ErrRoomNotFound)
	})
}

func TestGetRoomMessages_MarksPeerMessagesRead(t *testing.T) {
	repo := new(MockChatRepository)
	svc := NewService(repo, nil)

	mech := int64(10)
	room := &domain.ChatRoom{ID: "room-1", CustomerID: 1, MechanicID: &mech}
	repo.On("GetRoomByID", mock.Anything, "room-1").Return(room, nil)
	repo.On("ListMessages", mock.Anything, "room-1", 100).
		Return([]domain.Message{{ID: "m1", SenderID: 10, Text: "done"}}, nil)
	repo.On("MarkMessagesRead", mock.Anything, "room-1", int64(1)).Return(nil)

	msgs, err := svc.GetRoomMessages(context.Background(), "room-1", 1, 0)

	assert.NoError(t, err)
	assert.Len(t, msgs, 1)
	repo.AssertCalled(t, "MarkMessagesRead", mock.Anything, "room-1", int64(1))
}
