package model

import (
	"time"

	"github.com/google/uuid"
)

// MaxProductImages caps the number of image URLs a product may carry.
const MaxProductImages = 12

// Product represents a catalog entry. Price is a display string, not a
// numeric type; downstream totals use a tolerant parse. The singular Img
// field is kept for backward compatibility with older records.
type Product struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Price       string    `json:"price" db:"price"`
	Images      []string  `json:"images" db:"images"`
	Img         string    `json:"img,omitempty" db:"img"`
	Description string    `json:"description" db:"description"`
	Seller      string    `json:"seller,omitempty" db:"seller"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}
