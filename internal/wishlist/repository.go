// Package wishlist keeps each identity's saved products. Entries are
// membership only: (user, product), no quantity.
package wishlist

import (
	"sync"

	"github.com/stgcatalog/storefront-backend/internal/product"
)

// Repository persists wishlist membership. Remove is idempotent: deleting
// an absent entry succeeds without effect.
type Repository interface {
	GetWishlist(userID int) ([]product.Product, error)
	Add(userID, productID int) error
	Remove(userID, productID int) error
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu       sync.RWMutex
	products map[int]product.Product
	entries  map[int][]int // userID -> product ids, insertion order
}

func NewInMemoryRepository(catalog []product.Product) *InMemoryRepository {
	r := &InMemoryRepository{
		products: make(map[int]product.Product, len(catalog)),
		entries:  make(map[int][]int),
	}
	for _, p := range catalog {
		r.products[p.ID] = p
	}
	return r
}

func (r *InMemoryRepository) GetWishlist(userID int) ([]product.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]product.Product, 0, len(r.entries[userID]))
	for _, id := range r.entries[userID] {
		if p, ok := r.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) Add(userID, productID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[productID]; !ok {
		return product.ErrNotFound
	}
	for _, id := range r.entries[userID] {
		if id == productID {
			return nil
		}
	}
	r.entries[userID] = append(r.entries[userID], productID)
	return nil
}

func (r *InMemoryRepository) Remove(userID, productID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := r.entries[userID]
	for i, id := range list {
		if id == productID {
			r.entries[userID] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return nil
}
