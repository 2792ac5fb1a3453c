package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order status tracks whether the relay message went out, so a future
// reconciliation pass could resend for orders stuck in pending.
const (
	StatusPendingNotification = "pending-notification"
	StatusNotified            = "notified"
)

// Order is created once at checkout and never mutated afterwards, except
// for the status flip when the relay confirms delivery.
type Order struct {
	ID        int             `json:"id"`
	Reference string          `json:"reference"`
	UserID    int             `json:"user_id"`
	Total     decimal.Decimal `json:"total"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
}

// LineItem captures the unit price at order time, decoupled from any later
// catalog price change.
type LineItem struct {
	ID        int             `json:"id"`
	OrderID   int             `json:"order_id"`
	ProductID int             `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}
