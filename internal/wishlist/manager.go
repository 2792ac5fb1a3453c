package wishlist

import (
	"context"
	"log"
	"sync"

	"github.com/stgcatalog/storefront-backend/internal/product"
)

// Manager is the cart manager's simpler sibling: same
// load-on-identity-present / clear-on-identity-absent lifecycle, no
// quantities, no cache layer.
type Manager struct {
	repo Repository

	mu       sync.Mutex
	sessions map[int][]product.Product
}

func NewManager(repo Repository) *Manager {
	return &Manager{
		repo:     repo,
		sessions: make(map[int][]product.Product),
	}
}

// Load fetches the identity's saved products. A remote failure leaves the
// list empty; no retry.
func (m *Manager) Load(_ context.Context, userID int) {
	m.mu.Lock()
	_, loaded := m.sessions[userID]
	m.mu.Unlock()
	if loaded {
		return
	}

	items, err := m.repo.GetWishlist(userID)
	if err != nil {
		log.Printf("wishlist load failed for user %d: %v", userID, err)
		items = []product.Product{}
	}

	m.mu.Lock()
	m.sessions[userID] = items
	m.mu.Unlock()
}

func (m *Manager) SignOut(userID int) {
	m.mu.Lock()
	delete(m.sessions, userID)
	m.mu.Unlock()
}

func (m *Manager) AddItem(_ context.Context, userID int, p product.Product) error {
	if err := m.repo.Add(userID, p.ID); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.sessions[userID] {
		if existing.ID == p.ID {
			return nil
		}
	}
	m.sessions[userID] = append(m.sessions[userID], p)
	return nil
}

// RemoveItem is a safe no-op for products not on the list.
func (m *Manager) RemoveItem(_ context.Context, userID, productID int) error {
	if err := m.repo.Remove(userID, productID); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	list := m.sessions[userID]
	for i, p := range list {
		if p.ID == productID {
			m.sessions[userID] = append(list[:i], list[i+1:]...)
			break
		}
	}
	return nil
}

// IsInWishlist is a linear membership check over the in-memory list.
func (m *Manager) IsInWishlist(userID, productID int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.sessions[userID] {
		if p.ID == productID {
			return true
		}
	}
	return false
}

func (m *Manager) Items(userID int) []product.Product {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]product.Product, len(m.sessions[userID]))
	copy(out, m.sessions[userID])
	return out
}
