package notification

import (
	"context"
	"errors"

	"motofix/internal/domain"
	"motofix/internal/repository"
)

type Service struct {
	notifications NotificationRepository
}

func NewService(notifications NotificationRepository) *Service {
	return &Service{notifications: notifications}
}

func (s *Service) List(ctx context.Context, userID int64, limit int) ([]domain.Notification, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.notifications.ListByUser(ctx, userID, limit)
}

func (s *Service) UnreadCount(ctx context.Context, userID int64) (int64, error) {
	return s.notifications.CountUnread(ctx, userID)
}

// MarkRead is owner-scoped: marking someone else's notification reports
// not found.
func (s *Service) MarkRead(ctx context.Context, notificationID, userID int64) error {
	if err := s.notifications.MarkRead(ctx, notificationID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *Service) MarkAllRead(ctx context.Context, userID int64) error {
	return s.notifications.MarkAllRead(ctx, userID)
}
