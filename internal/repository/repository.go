package repository

import (
	"context"

	"storefront/internal/model"

	"github.com/google/uuid"
)

// UserRepository defines the interface for user data access operations. The
// cart lives inside the user row, so cart persistence goes through here.
type UserRepository interface {
	// Create inserts a new user.
	Create(ctx context.Context, user *model.User) error

	// GetByID retrieves a user by ID, or nil if absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)

	// GetByEmail retrieves a user by email, or nil if absent.
	GetByEmail(ctx context.Context, email string) (*model.User, error)

	// UpdateCart overwrites the user's embedded cart.
	UpdateCart(ctx context.Context, userID uuid.UUID, cart []model.CartEntry) error

	// ClearCart empties the user's embedded cart.
	ClearCart(ctx context.Context, userID uuid.UUID) error

	// CountByRole counts users holding the given role.
	CountByRole(ctx context.Context, role string) (int64, error)
}

// ProductRepository defines the interface for catalog data access operations.
type ProductRepository interface {
	// Create inserts a new product.
	Create(ctx context.Context, product *model.Product) error

	// GetAll retrieves products with pagination support, newest first.
	GetAll(ctx context.Context, limit, offset int) ([]model.Product, error)

	// GetByID retrieves a single product by its ID, or nil if absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)

	// GetByIDs retrieves multiple products by their IDs.
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Product, error)

	// Delete removes a product and returns the deleted row, or nil if absent.
	Delete(ctx context.Context, id uuid.UUID) (*model.Product, error)
}

// OrderRepository defines the interface for order data access operations.
// Orders are written once; only the status field is ever updated.
type OrderRepository interface {
	// Create inserts a new order. This is the checkout durability point.
	Create(ctx context.Context, order *model.Order) error

	// GetByID retrieves an order by ID, or nil if absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)

	// ListByUser retrieves a user's orders, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Order, error)

	// ListAll retrieves every order, newest first.
	ListAll(ctx context.Context) ([]model.Order, error)

	// ListRecent retrieves the latest orders, bounded by limit.
	ListRecent(ctx context.Context, limit int) ([]model.Order, error)

	// UpdateStatus overwrites the status and returns the updated order, or
	// nil if absent.
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*model.Order, error)

	// Delete removes an order and returns the deleted row, or nil if absent.
	Delete(ctx context.Context, id uuid.UUID) (*model.Order, error)
}

// NotificationRepository defines the interface for the admin event log.
// Notifications are never deleted.
type NotificationRepository interface {
	// Create inserts a new notification.
	Create(ctx context.Context, notification *model.Notification) error

	// List retrieves notifications newest first, bounded by limit.
	List(ctx context.Context, limit int) ([]model.Notification, error)

	// MarkRead flips the read flag and returns the updated notification, or
	// nil if absent.
	MarkRead(ctx context.Context, id uuid.UUID) (*model.Notification, error)
}
