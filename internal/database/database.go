package database

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// NewPool creates the process-wide PostgreSQL connection pool. The pool is
// created once at startup and shared by every repository; there is no
// implicit per-request connection state.
func NewPool(ctx context.Context, cfg config.DatabaseConfig, logger zerolog.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxConnections)
	poolConfig.MinConns = int32(cfg.MinConnections)
	poolConfig.MaxConnLifetime = time.Duration(cfg.MaxConnLifetime) * time.Second
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = 1 * time.Minute

	logger.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Str("database", cfg.Database).
		Int("max_connections", cfg.MaxConnections).
		Int("min_connections", cfg.MinConnections).
		Msg("creating database connection pool")

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info().Msg("database connection pool created successfully")

	return pool, nil
}

// Schema is the storefront schema. Orders deliberately carry no foreign keys
// to users or products: order items are snapshots, and deleting a product
// must never invalidate a past order.
const Schema = `
	CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		full_name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		phone TEXT NOT NULL DEFAULT '',
		password TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'customer',
		cart JSONB NOT NULL DEFAULT '[]',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS products (
		id UUID PRIMARY KEY,
		title TEXT NOT NULL,
		price TEXT NOT NULL,
		images JSONB NOT NULL DEFAULT '[]',
		img TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		seller TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS orders (
		id UUID PRIMARY KEY,
		user_id UUID,
		items JSONB NOT NULL,
		total_amount NUMERIC(12, 2) NOT NULL DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'placed',
		payment_method TEXT NOT NULL DEFAULT '',
		shipping_address JSONB NOT NULL DEFAULT '{}',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	CREATE INDEX IF NOT EXISTS idx_orders_user_id ON orders (user_id);
	CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders (created_at DESC);

	CREATE TABLE IF NOT EXISTS notifications (
		id UUID PRIMARY KEY,
		type TEXT NOT NULL DEFAULT '',
		message TEXT NOT NULL DEFAULT '',
		user_id UUID,
		meta JSONB,
		read BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	CREATE INDEX IF NOT EXISTS idx_notifications_created_at ON notifications (created_at DESC);
`

// Migrate applies the schema. Statements are idempotent, so it is safe to
// run at every startup.
func Migrate(ctx context.Context, pool *pgxpool.Pool, logger zerolog.Logger) error {
	if _, err := pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	logger.Info().Msg("database schema applied")
	return nil
}
