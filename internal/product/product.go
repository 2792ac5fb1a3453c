package product

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product maps to the `products` table. JSON tags follow the snake_case
// contract the storefront frontend already consumes.
type Product struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url"`
	Category    string          `json:"category"`
	CreatedAt   time.Time       `json:"created_at"`
}
