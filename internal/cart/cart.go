package cart

import (
	"time"

	"github.com/stgcatalog/storefront-backend/internal/product"
)

// Item is one cart line: a product with its quantity. There is never more
// than one line per (user, product) pair; the manager merges duplicates.
type Item struct {
	ID        int             `json:"id"`
	Product   product.Product `json:"product"`
	Quantity  int             `json:"quantity"`
	CreatedAt time.Time       `json:"created_at"`
}

// Snapshot is a point-in-time copy of the cart kept in the durable cache so
// a fresh sign-in can skip the remote read.
type Snapshot struct {
	Items     []Item    `json:"items"`
	Timestamp time.Time `json:"timestamp"`
}

// SnapshotMaxAge is the freshness window: older snapshots force a remote read.
const SnapshotMaxAge = 5 * time.Minute
