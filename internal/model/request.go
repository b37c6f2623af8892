package model

import (
	"encoding/json"

	"github.com/google/uuid"
)

// RegisterRequest is the payload for user and admin registration.
type RegisterRequest struct {
	FullName string `json:"Fullname"`
	Email    string `json:"Email"`
	Password string `json:"Password"`
	Phone    string `json:"Phone"`
}

// Credentials is a login payload. Clients historically send either
// capitalized or lowercase field names; both are accepted, with the
// capitalized spelling winning when both appear. The normalization happens
// here, once, instead of per-field checks in every controller.
type Credentials struct {
	Email    string
	Password string
}

// UnmarshalJSON accepts Email/email and Password/password interchangeably.
func (c *Credentials) UnmarshalJSON(data []byte) error {
	var aux struct {
		Email      string `json:"Email"`
		EmailLower string `json:"email"`
		Password   string `json:"Password"`
		PassLower  string `json:"password"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	c.Email = firstNonEmpty(aux.Email, aux.EmailLower)
	c.Password = firstNonEmpty(aux.Password, aux.PassLower)
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// CheckoutRequest is the checkout payload. A non-empty Items list selects
// the buy-now path; otherwise the order is built from the authenticated
// user's stored cart.
type CheckoutRequest struct {
	Items         []CheckoutItem `json:"items"`
	Address       Address        `json:"address"`
	PaymentMethod string         `json:"paymentMethod"`
}

// CheckoutItem is one ad-hoc item in a buy-now checkout. Every field is
// optional; normalization fills the defaults.
type CheckoutItem struct {
	Product  *uuid.UUID `json:"product"`
	Title    string     `json:"title"`
	Price    string     `json:"price"`
	Img      string     `json:"img"`
	Images   []string   `json:"images"`
	Quantity int        `json:"quantity"`
}

// CartAddRequest adds a product to the cart, default quantity 1.
type CartAddRequest struct {
	ProductID uuid.UUID `json:"productId"`
	Quantity  int       `json:"quantity"`
}

// CartRemoveRequest removes a product from the cart.
type CartRemoveRequest struct {
	ProductID uuid.UUID `json:"productId"`
}

// CartUpdateRequest overwrites the quantity of an existing cart entry.
// Quantity is a pointer so a missing field can be told apart from zero.
type CartUpdateRequest struct {
	ProductID uuid.UUID `json:"productId"`
	Quantity  *int      `json:"quantity"`
}

// CreateProductRequest is the payload for catalog creation.
type CreateProductRequest struct {
	Title       string   `json:"title"`
	Price       string   `json:"price"`
	Images      []string `json:"images"`
	Img         string   `json:"img"`
	Description string   `json:"description"`
	Seller      string   `json:"seller"`
}

// StatusUpdateRequest carries the new status for an admin order update.
type StatusUpdateRequest struct {
	Status string `json:"status"`
}
