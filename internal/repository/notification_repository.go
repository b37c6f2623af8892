package repository

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const notificationColumns = "id, type, message, user_id, meta, read, created_at"

// notificationRepository implements the NotificationRepository interface
// using PostgreSQL.
type notificationRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewNotificationRepository creates a new PostgreSQL-backed notification repository.
func NewNotificationRepository(pool *pgxpool.Pool, logger zerolog.Logger) NotificationRepository {
	return &notificationRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "notification").Logger(),
	}
}

// Create inserts a new notification.
func (r *notificationRepository) Create(ctx context.Context, n *model.Notification) error {
	query := `
		INSERT INTO notifications (id, type, message, user_id, meta, read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		n.ID, n.Type, n.Message, n.UserID, n.Meta, n.Read, n.CreatedAt)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("notification_id", n.ID.String()).
			Msg("failed to create notification")
		return fmt.Errorf("failed to create notification: %w", err)
	}

	r.logger.Debug().Str("notification_id", n.ID.String()).Msg("notification created")

	return nil
}

// List retrieves notifications newest first, bounded by limit.
func (r *notificationRepository) List(ctx context.Context, limit int) ([]model.Notification, error) {
	query := `
		SELECT ` + notificationColumns + `
		FROM notifications
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		r.logger.Error().Err(err).Int("limit", limit).Msg("failed to query notifications")
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	var notifications []model.Notification
	for rows.Next() {
		var n model.Notification
		err := rows.Scan(&n.ID, &n.Type, &n.Message, &n.UserID, &n.Meta, &n.Read, &n.CreatedAt)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan notification row")
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating notification rows")
		return nil, fmt.Errorf("error iterating notifications: %w", err)
	}

	return notifications, nil
}

// MarkRead flips the read flag and returns the updated notification, or nil
// if absent. Marking an already-read notification is a harmless overwrite.
func (r *notificationRepository) MarkRead(ctx context.Context, id uuid.UUID) (*model.Notification, error) {
	query := `
		UPDATE notifications
		SET read = TRUE
		WHERE id = $1
		RETURNING ` + notificationColumns

	var n model.Notification
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&n.ID, &n.Type, &n.Message, &n.UserID, &n.Meta, &n.Read, &n.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("notification_id", id.String()).Msg("failed to mark notification read")
		return nil, fmt.Errorf("failed to mark notification read: %w", err)
	}

	return &n, nil
}
