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

const orderColumns = "id, user_id, items, total_amount, status, payment_method, shipping_address, created_at"

// orderRepository implements the OrderRepository interface using PostgreSQL.
// An order is a single row; its items travel as one JSONB document so the
// snapshot is written atomically with the order itself.
type orderRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool *pgxpool.Pool, logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "order").Logger(),
	}
}

// Create inserts a new order. This is the checkout durability point: once
// this returns nil, the order exists regardless of any later side effect.
func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	query := `
		INSERT INTO orders (id, user_id, items, total_amount, status, payment_method, shipping_address, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		order.ID, order.UserID, order.Items, order.TotalAmount,
		order.Status, order.PaymentMethod, order.ShippingAddress, order.CreatedAt)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_id", order.ID.String()).
			Msg("failed to create order")
		return fmt.Errorf("failed to create order: %w", err)
	}

	r.logger.Debug().
		Str("order_id", order.ID.String()).
		Int("item_count", len(order.Items)).
		Msg("order created")

	return nil
}

// GetByID retrieves an order by ID, or nil if absent.
func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE id = $1
	`

	var o model.Order
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&o.ID, &o.UserID, &o.Items, &o.TotalAmount,
		&o.Status, &o.PaymentMethod, &o.ShippingAddress, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("order_id", id.String()).Msg("order not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to query order")
		return nil, fmt.Errorf("failed to query order: %w", err)
	}

	return &o, nil
}

// ListByUser retrieves a user's orders, newest first.
func (r *orderRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	return r.list(ctx, query, userID)
}

// ListAll retrieves every order, newest first.
func (r *orderRepository) ListAll(ctx context.Context) ([]model.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		ORDER BY created_at DESC
	`
	return r.list(ctx, query)
}

// ListRecent retrieves the latest orders, bounded by limit.
func (r *orderRepository) ListRecent(ctx context.Context, limit int) ([]model.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		ORDER BY created_at DESC
		LIMIT $1
	`
	return r.list(ctx, query, limit)
}

func (r *orderRepository) list(ctx context.Context, query string, args ...any) ([]model.Order, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query orders")
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		var o model.Order
		err := rows.Scan(
			&o.ID, &o.UserID, &o.Items, &o.TotalAmount,
			&o.Status, &o.PaymentMethod, &o.ShippingAddress, &o.CreatedAt)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order row")
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order rows")
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	return orders, nil
}

// UpdateStatus overwrites the status and returns the updated order, or nil
// if absent. Any status string is accepted; the store keeps records, it does
// not enforce a transition table.
func (r *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*model.Order, error) {
	query := `
		UPDATE orders
		SET status = $2
		WHERE id = $1
		RETURNING ` + orderColumns

	var o model.Order
	err := r.pool.QueryRow(ctx, query, id, status).Scan(
		&o.ID, &o.UserID, &o.Items, &o.TotalAmount,
		&o.Status, &o.PaymentMethod, &o.ShippingAddress, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to update order status")
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	r.logger.Debug().
		Str("order_id", id.String()).
		Str("status", status).
		Msg("order status updated")

	return &o, nil
}

// Delete removes an order and returns the deleted row, or nil if absent.
func (r *orderRepository) Delete(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	query := `
		DELETE FROM orders
		WHERE id = $1
		RETURNING ` + orderColumns

	var o model.Order
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&o.ID, &o.UserID, &o.Items, &o.TotalAmount,
		&o.Status, &o.PaymentMethod, &o.ShippingAddress, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to delete order")
		return nil, fmt.Errorf("failed to delete order: %w", err)
	}

	r.logger.Debug().Str("order_id", id.String()).Msg("order deleted")

	return &o, nil
}
