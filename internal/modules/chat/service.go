package chat

import (
	"context"
	"errors"
	"strings"

	"motofix/internal/domain"
	"motofix/internal/repository"
)

type Service struct {
	rooms ChatRepository
	hub   *Hub // optional; nil in tests and in the backfill job
}

func NewService(rooms ChatRepository, hub *Hub) *Service {
	return &Service{rooms: rooms, hub: hub}
}

// HandleEvent provisions the chat room the moment a mechanic wins a
// booking. Runs as an event consumer, so a provisioning failure never
// unwinds the accept.
func (s *Service) HandleEvent(ctx context.Context, ev domain.Event) error {
	accepted, ok := ev.(domain.OfferAcceptedEvent)
	if !ok {
		return nil
	}
	_, err := s.EnsureRoomForBooking(ctx, accepted.Booking)
	return err
}

// EnsureRoomForBooking creates the booking's chat room if it does not
// exist yet. Safe to call any number of times; every call lands on the
// same room.
func (s *Service) EnsureRoomForBooking(ctx context.Context, b *domain.Booking) (*domain.ChatRoom, error) {
	if b.MechanicID == nil {
		return nil, ErrNoMechanic
	}
	return s.rooms.EnsureRoom(ctx, b.ID, b.CustomerID, b.MechanicID)
}

// ListRooms returns the caller's rooms with unread counters, most
// recently active first.
func (s *Service) ListRooms(ctx context.Context, userID int64) ([]RoomView, error) {
	rooms, err := s.rooms.ListRoomsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]RoomView, 0, len(rooms))
	for _, room := range rooms {
		unread, err := s.rooms.UnreadCount(ctx, room.ID, userID)
		if err != nil {
			return nil, err
		}
		out = append(out, RoomView{ChatRoom: room, UnreadCount: unread})
	}
	return out, nil
}

// GetRoomMessages returns the room's history and marks everything the
// peer sent as read.
func (s *Service) GetRoomMessages(ctx context.Context, roomID string, userID int64, limit int) ([]domain.Message, error) {
	room, err := s.memberRoom(ctx, roomID, userID)
	if err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	msgs, err := s.rooms.ListMessages(ctx, room.ID, limit)
	if err != nil {
		return nil, err
	}
	if err := s.rooms.MarkMessagesRead(ctx, room.ID, userID); err != nil {
		return nil, err
	}
	return msgs, nil
}

// SendMessage persists the message and pushes it to both members' live
// connections when they are online.
func (s *Service) SendMessage(ctx context.Context, roomID string, senderID int64, text string) (*domain.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrValidation
	}

	room, err := s.memberRoom(ctx, roomID, senderID)
	if err != nil {
		return nil, err
	}

	msg := &domain.Message{
		ChatRoomID: room.ID,
		SenderID:   senderID,
		Text:       text,
	}
	if err := s.rooms.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}

	if s.hub != nil {
		s.hub.SendToUser(room.CustomerID, msg)
		if room.MechanicID != nil {
			s.hub.SendToUser(*room.MechanicID, msg)
		}
	}
	return msg, nil
}

func (s *Service) MarkRead(ctx context.Context, roomID string, userID int64) error {
	room, err := s.memberRoom(ctx, roomID, userID)
	if err != nil {
		return err
	}
	return s.rooms.MarkMessagesRead(ctx, room.ID, userID)
}

func (s *Service) memberRoom(ctx context.Context, roomID string, userID int64) (*domain.ChatRoom, error) {
	room, err := s.rooms.GetRoomByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	if room.CustomerID != userID && (room.MechanicID == nil || *room.MechanicID != userID) {
		return nil, ErrNotParticipant
	}
	return room, nil
}
