package model

import (
	"time"

	"github.com/google/uuid"
)

// User roles.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// User represents a registered account. The cart is embedded in the user
// record and owned exclusively by it; it is mutated in place by the cart
// operations and cleared only by a cart-based checkout.
type User struct {
	ID        uuid.UUID   `json:"id" db:"id"`
	FullName  string      `json:"Fullname" db:"full_name"`
	Email     string      `json:"Email" db:"email"`
	Phone     string      `json:"Phone,omitempty" db:"phone"`
	Password  string      `json:"-" db:"password"`
	Role      string      `json:"role" db:"role"`
	Cart      []CartEntry `json:"cart" db:"cart"`
	CreatedAt time.Time   `json:"createdAt" db:"created_at"`
}

// CartEntry is a single cart line: a product reference plus quantity.
// Entries are unique by product.
type CartEntry struct {
	ProductID uuid.UUID `json:"product"`
	Quantity  int       `json:"quantity"`
}

// CartLine is a cart entry with its product reference resolved to the full
// catalog record at read time. The join is never stored.
type CartLine struct {
	Product  *Product `json:"product"`
	Quantity int      `json:"quantity"`
}
