package order

import (
	"errors"
	"sync"
	"time"
)

var (
	ErrNotFound = errors.New("order not found")
)

// Repository persists orders and their line items. Creating an order and
// its items are two separate writes; the caller owns the ordering and
// accepts the inconsistency window between them.
type Repository interface {
	CreateOrder(ord Order) (Order, error)
	CreateLineItems(orderID int, items []LineItem) error
	SetStatus(orderID int, status string) error
	ListByUser(userID int) ([]Order, error)
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu     sync.RWMutex
	orders []Order
	items  map[int][]LineItem
	nextID int
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{items: make(map[int][]LineItem), nextID: 1}
}

func (r *InMemoryRepository) CreateOrder(ord Order) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ord.ID = r.nextID
	r.nextID++
	ord.CreatedAt = time.Now()
	r.orders = append(r.orders, ord)
	return ord, nil
}

func (r *InMemoryRepository) CreateLineItems(orderID int, items []LineItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range items {
		items[i].OrderID = orderID
		items[i].ID = len(r.items[orderID]) + i + 1
	}
	r.items[orderID] = append(r.items[orderID], items...)
	return nil
}

func (r *InMemoryRepository) SetStatus(orderID int, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.orders {
		if r.orders[i].ID == orderID {
			r.orders[i].Status = status
			return nil
		}
	}
	return ErrNotFound
}

func (r *InMemoryRepository) ListByUser(userID int) ([]Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Order, 0)
	for _, ord := range r.orders {
		if ord.UserID == userID {
			out = append(out, ord)
		}
	}
	return out, nil
}

// LineItems returns the stored items of one order; used by tests.
func (r *InMemoryRepository) LineItems(orderID int) []LineItem {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]LineItem, len(r.items[orderID]))
	copy(out, r.items[orderID])
	return out
}
