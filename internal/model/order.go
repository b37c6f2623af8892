package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Conventional order statuses. The store accepts arbitrary status strings;
// it is a record-keeper, not a workflow engine.
const (
	StatusPlaced    = "placed"
	StatusShipped   = "shipped"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

// Order is created exactly once per checkout. UserID is nil for guest
// orders. Items are snapshots of catalog data taken at checkout time, so
// later catalog edits or deletions never alter a past order.
type Order struct {
	ID              uuid.UUID       `json:"id" db:"id"`
	UserID          *uuid.UUID      `json:"user" db:"user_id"`
	Items           []OrderItem     `json:"items" db:"items"`
	TotalAmount     decimal.Decimal `json:"totalAmount" db:"total_amount"`
	Status          string          `json:"status" db:"status"`
	PaymentMethod   string          `json:"paymentMethod" db:"payment_method"`
	ShippingAddress Address         `json:"shippingAddress" db:"shipping_address"`
	CreatedAt       time.Time       `json:"createdAt" db:"created_at"`
}

// OrderItem is an immutable copy of product data at checkout time. ProductID
// is a weak historical reference and may be nil for ad-hoc items.
type OrderItem struct {
	ProductID *uuid.UUID `json:"product"`
	Title     string     `json:"title"`
	Price     string     `json:"price"`
	Img       string     `json:"img"`
	Images    []string   `json:"images"`
	Quantity  int        `json:"quantity"`
}

// Address holds structured postal fields. All fields are optional; checkout
// is never blocked on address detail.
type Address struct {
	Name        string       `json:"name,omitempty"`
	Street      string       `json:"street,omitempty"`
	City        string       `json:"city,omitempty"`
	State       string       `json:"state,omitempty"`
	PostalCode  string       `json:"postalCode,omitempty"`
	Country     string       `json:"country,omitempty"`
	Phone       string       `json:"phone,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}

// Coordinates is an optional geo location attached to a shipping address.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// OrderActor identifies who placed an order, for admin display.
type OrderActor struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// RecentOrderItem is one line item of a recent order, flattened for the
// admin dashboard.
type RecentOrderItem struct {
	OrderID         uuid.UUID   `json:"orderId"`
	ProductID       *uuid.UUID  `json:"productId"`
	Title           string      `json:"title"`
	Price           string      `json:"price"`
	Img             string      `json:"img"`
	Images          []string    `json:"images"`
	Quantity        int         `json:"quantity"`
	OrderedAt       time.Time   `json:"orderedAt"`
	OrderedBy       *OrderActor `json:"orderedBy"`
	ShippingAddress Address     `json:"shippingAddress"`
}
