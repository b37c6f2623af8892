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

// userRepository implements the UserRepository interface using PostgreSQL.
type userRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewUserRepository creates a new PostgreSQL-backed user repository.
func NewUserRepository(pool *pgxpool.Pool, logger zerolog.Logger) UserRepository {
	return &userRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "user").Logger(),
	}
}

// Create inserts a new user.
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (id, full_name, email, phone, password, role, cart, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	if user.Cart == nil {
		user.Cart = []model.CartEntry{}
	}

	_, err := r.pool.Exec(ctx, query,
		user.ID, user.FullName, user.Email, user.Phone, user.Password, user.Role, user.Cart, user.CreatedAt)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("user_id", user.ID.String()).
			Msg("failed to create user")
		return fmt.Errorf("failed to create user: %w", err)
	}

	r.logger.Debug().Str("user_id", user.ID.String()).Msg("user created")

	return nil
}

// GetByID retrieves a user by ID, or nil if absent.
func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return r.getOne(ctx, "id = $1", id)
}

// GetByEmail retrieves a user by email, or nil if absent.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getOne(ctx, "email = $1", email)
}

func (r *userRepository) getOne(ctx context.Context, where string, arg any) (*model.User, error) {
	query := `
		SELECT id, full_name, email, phone, password, role, cart, created_at
		FROM users
		WHERE ` + where

	var u model.User
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.FullName, &u.Email, &u.Phone, &u.Password, &u.Role, &u.Cart, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Msg("failed to query user")
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	return &u, nil
}

// UpdateCart overwrites the user's embedded cart. The write is
// last-write-wins; concurrent cart mutations against the same user are not
// coordinated here.
func (r *userRepository) UpdateCart(ctx context.Context, userID uuid.UUID, cart []model.CartEntry) error {
	if cart == nil {
		cart = []model.CartEntry{}
	}

	tag, err := r.pool.Exec(ctx, `UPDATE users SET cart = $2 WHERE id = $1`, userID, cart)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("user_id", userID.String()).
			Msg("failed to update cart")
		return fmt.Errorf("failed to update cart: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("failed to update cart: user %s not found", userID)
	}

	r.logger.Debug().
		Str("user_id", userID.String()).
		Int("entries", len(cart)).
		Msg("cart updated")

	return nil
}

// ClearCart empties the user's embedded cart.
func (r *userRepository) ClearCart(ctx context.Context, userID uuid.UUID) error {
	return r.UpdateCart(ctx, userID, []model.CartEntry{})
}

// CountByRole counts users holding the given role.
func (r *userRepository) CountByRole(ctx context.Context, role string) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE role = $1`, role).Scan(&count)
	if err != nil {
		r.logger.Error().Err(err).Str("role", role).Msg("failed to count users by role")
		return 0, fmt.Errorf("failed to count users by role: %w", err)
	}
	return count, nil
}
