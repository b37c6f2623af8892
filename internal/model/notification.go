package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// NotificationTypeOrder marks notifications emitted by order placement.
const NotificationTypeOrder = "order"

// Notification is an admin-facing event record. Read defaults to false and
// is flipped only by an explicit mark-read action; notifications are never
// deleted.
type Notification struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	Type      string     `json:"type" db:"type"`
	Message   string     `json:"message" db:"message"`
	UserID    *uuid.UUID `json:"user" db:"user_id"`
	Meta      *OrderMeta `json:"meta,omitempty" db:"meta"`
	Read      bool       `json:"read" db:"read"`
	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
}

// OrderMeta is the full order summary attached to an order notification so
// admins can preview details without loading the order.
type OrderMeta struct {
	OrderID         uuid.UUID       `json:"orderId"`
	User            MetaUser        `json:"user"`
	Items           []MetaItem      `json:"items"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	ShippingAddress Address         `json:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod"`
}

// MetaUser describes the ordering party. For guest orders the ID is nil and
// the name falls back to the address name or "Guest".
type MetaUser struct {
	ID    *uuid.UUID `json:"id"`
	Name  string     `json:"name"`
	Email string     `json:"email,omitempty"`
	Phone string     `json:"phone,omitempty"`
}

// MetaItem is a compact item summary inside notification meta.
type MetaItem struct {
	Title     string     `json:"title"`
	ProductID *uuid.UUID `json:"product"`
	Price     string     `json:"price"`
	Quantity  int        `json:"quantity"`
}
