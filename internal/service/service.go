package service

import (
	"context"

	"storefront/internal/model"

	"github.com/google/uuid"
)

// AuthService defines registration and login for users and admins. Admins
// are users with the admin role; both flows share one implementation.
type AuthService interface {
	// Register creates an account with the given role and returns it with a
	// fresh signed token.
	Register(ctx context.Context, req model.RegisterRequest, role string) (*model.User, string, error)

	// Login verifies credentials for an account holding the given role and
	// returns it with a fresh signed token.
	Login(ctx context.Context, creds model.Credentials, role string) (*model.User, string, error)

	// AdminExists reports whether at least one admin account exists.
	AdminExists(ctx context.Context) (bool, error)
}

// CatalogService defines operations for product management.
type CatalogService interface {
	// Create adds a product to the catalog.
	Create(ctx context.Context, req model.CreateProductRequest) (*model.Product, error)

	// List retrieves products with pagination, newest first.
	List(ctx context.Context, limit, offset int) ([]model.Product, error)

	// GetByID retrieves a single product.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)

	// Delete removes a product and returns the deleted record.
	Delete(ctx context.Context, id uuid.UUID) (*model.Product, error)
}

// CartService defines mutations of the cart embedded in a user record.
// Every mutation persists the updated cart.
type CartService interface {
	// AddItem adds quantity of a product to the cart, incrementing the
	// existing entry if one is present.
	AddItem(ctx context.Context, userID, productID uuid.UUID, quantity int) ([]model.CartEntry, error)

	// RemoveItem deletes the matching entry; absent entries are a no-op.
	RemoveItem(ctx context.Context, userID, productID uuid.UUID) ([]model.CartEntry, error)

	// SetItemQuantity overwrites an entry's quantity; zero or negative
	// removes the entry.
	SetItemQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) ([]model.CartEntry, error)

	// GetCart returns the cart with product references resolved to full
	// catalog records.
	GetCart(ctx context.Context, userID uuid.UUID) ([]model.CartLine, error)
}

// OrderService defines checkout and order administration.
type OrderService interface {
	// Checkout builds and persists an order snapshot. userID is nil for
	// guest checkout.
	Checkout(ctx context.Context, userID *uuid.UUID, req *model.CheckoutRequest) (*model.Order, error)

	// ListMine retrieves the caller's orders, newest first.
	ListMine(ctx context.Context, userID uuid.UUID) ([]model.Order, error)

	// ListAll retrieves every order, newest first.
	ListAll(ctx context.Context) ([]model.Order, error)

	// RecentItems flattens the latest orders into per-line-item records.
	RecentItems(ctx context.Context, limit int) ([]model.RecentOrderItem, error)

	// UpdateStatus overwrites an order's status.
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*model.Order, error)

	// Delete removes an order and returns the deleted record.
	Delete(ctx context.Context, id uuid.UUID) (*model.Order, error)
}

// NotificationService defines the admin event log.
type NotificationService interface {
	// Create persists a notification.
	Create(ctx context.Context, n *model.Notification) error

	// List retrieves notifications newest first, bounded by limit.
	List(ctx context.Context, limit int) ([]model.Notification, error)

	// MarkRead flips the read flag.
	MarkRead(ctx context.Context, id uuid.UUID) (*model.Notification, error)
}
