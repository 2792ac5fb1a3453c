package cart

import (
	"errors"
	"sync"
	"time"

	"github.com/stgcatalog/storefront-backend/internal/product"
)

var (
	ErrNotFound = errors.New("cart item not found")
)

// Repository is the remote collection store for cart lines. Each call is a
// single write or read; failures surface as one error and are never retried
// here.
type Repository interface {
	GetCart(userID int) ([]Item, error)
	AddItem(userID, productID, quantity int) (Item, error)
	UpdateQuantity(userID, productID, quantity int) error
	RemoveItem(userID, productID int) error
	Clear(userID int) error
}

// InMemoryRepository is used for tests and local scenarios. It resolves
// products from a seed catalog the way the Postgres implementation joins
// against the products table.
type InMemoryRepository struct {
	mu       sync.RWMutex
	products map[int]product.Product
	items    map[int][]Item
	nextID   int
}

func NewInMemoryRepository(catalog []product.Product) *InMemoryRepository {
	r := &InMemoryRepository{
		products: make(map[int]product.Product, len(catalog)),
		items:    make(map[int][]Item),
		nextID:   1,
	}
	for _, p := range catalog {
		r.products[p.ID] = p
	}
	return r
}

func (r *InMemoryRepository) GetCart(userID int) ([]Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Item, len(r.items[userID]))
	copy(out, r.items[userID])
	return out, nil
}

func (r *InMemoryRepository) AddItem(userID, productID, quantity int) (Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.products[productID]
	if !ok {
		return Item{}, product.ErrNotFound
	}

	item := Item{
		ID:        r.nextID,
		Product:   p,
		Quantity:  quantity,
		CreatedAt: time.Now(),
	}
	r.nextID++
	r.items[userID] = append(r.items[userID], item)
	return item, nil
}

func (r *InMemoryRepository) UpdateQuantity(userID, productID, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, item := range r.items[userID] {
		if item.Product.ID == productID {
			r.items[userID][i].Quantity = quantity
			return nil
		}
	}
	return ErrNotFound
}

func (r *InMemoryRepository) RemoveItem(userID, productID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := r.items[userID]
	for i, item := range list {
		if item.Product.ID == productID {
			r.items[userID] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (r *InMemoryRepository) Clear(userID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, userID)
	return nil
}
