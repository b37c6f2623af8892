package service

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DefaultNotificationLimit bounds notification listings when the caller
// does not supply a limit.
const DefaultNotificationLimit = 50

// notificationService implements NotificationService.
type notificationService struct {
	repo   repository.NotificationRepository
	logger zerolog.Logger
}

// NewNotificationService creates a new notification service.
func NewNotificationService(repo repository.NotificationRepository, logger zerolog.Logger) NotificationService {
	return &notificationService{
		repo:   repo,
		logger: logger.With().Str("service", "notification").Logger(),
	}
}

// Create persists a notification. Callers that treat notification emission
// as best-effort are expected to log and swallow the returned error.
func (s *notificationService) Create(ctx context.Context, n *model.Notification) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}

	if err := s.repo.Create(ctx, n); err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

// List retrieves notifications newest first, bounded by limit.
func (s *notificationService) List(ctx context.Context, limit int) ([]model.Notification, error) {
	if limit < 1 {
		limit = DefaultNotificationLimit
	}

	notifications, err := s.repo.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	if notifications == nil {
		notifications = []model.Notification{}
	}
	return notifications, nil
}

// MarkRead flips the read flag. Repeating the call on an already-read
// notification yields the same state.
func (s *notificationService) MarkRead(ctx context.Context, id uuid.UUID) (*model.Notification, error) {
	updated, err := s.repo.MarkRead(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to mark notification read: %w", err)
	}
	if updated == nil {
		return nil, model.ErrNotificationNotFound
	}
	return updated, nil
}
