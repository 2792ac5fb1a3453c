package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stgcatalog/storefront-backend/internal/cache"
	"github.com/stgcatalog/storefront-backend/internal/money"
	"github.com/stgcatalog/storefront-backend/internal/product"
)

// State of a per-identity cart session.
type State int

const (
	StateEmpty State = iota
	StateLoading
	StateReady
)

// Manager owns the in-memory cart of each signed-in identity and keeps it
// synchronized against the remote store and the snapshot cache. Every
// mutation writes the remote store first and commits to memory only on
// success; a remote failure leaves memory untouched and raises a
// notification. Confirmations carry a per-identity sequence number so a
// slow response can never overwrite a later-issued change.
type Manager struct {
	repo     Repository
	store    cache.Store
	notifier Notifier

	mu       sync.Mutex
	sessions map[int]*session
}

type session struct {
	state   State
	items   []Item
	seq     uint64
	applied map[int]uint64 // productID -> highest confirmation applied
}

func NewManager(repo Repository, store cache.Store, notifier Notifier) *Manager {
	return &Manager{
		repo:     repo,
		store:    store,
		notifier: notifier,
		sessions: make(map[int]*session),
	}
}

func (m *Manager) session(userID int) *session {
	s, ok := m.sessions[userID]
	if !ok {
		s = &session{applied: make(map[int]uint64)}
		m.sessions[userID] = s
	}
	return s
}

// Load brings the identity's cart to the ready state. A snapshot younger
// than SnapshotMaxAge short-circuits the remote read entirely; a remote
// failure still reaches ready, with no items and an error notification,
// and is not retried.
func (m *Manager) Load(ctx context.Context, userID int) {
	m.mu.Lock()
	s := m.session(userID)
	if s.state == StateReady {
		m.mu.Unlock()
		return
	}
	s.state = StateLoading
	m.mu.Unlock()

	if snap, ok := m.readSnapshot(ctx, userID); ok {
		m.mu.Lock()
		s.items = snap.Items
		s.state = StateReady
		m.mu.Unlock()
		return
	}

	items, err := m.repo.GetCart(userID)

	m.mu.Lock()
	if err != nil {
		s.items = nil
	} else {
		s.items = items
	}
	s.state = StateReady
	snap := s.copyItems()
	m.mu.Unlock()

	if err != nil {
		log.Printf("cart load failed for user %d: %v", userID, err)
		m.notifier.Error(userID, "Erro ao carregar carrinho", "")
		return
	}
	m.writeSnapshot(ctx, userID, snap)
}

// SignOut drops the identity's in-memory items and its cached snapshot.
func (m *Manager) SignOut(ctx context.Context, userID int) {
	m.mu.Lock()
	delete(m.sessions, userID)
	m.mu.Unlock()

	if err := m.store.Remove(ctx, snapshotKey(userID)); err != nil {
		log.Printf("cart snapshot remove failed for user %d: %v", userID, err)
	}
}

// AddItem puts a product in the cart. If a line for the product already
// exists the call becomes a quantity update with the summed quantity, so a
// duplicate line is never created.
func (m *Manager) AddItem(ctx context.Context, userID int, p product.Product, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}

	m.mu.Lock()
	s := m.session(userID)
	existing := 0
	for _, it := range s.items {
		if it.Product.ID == p.ID {
			existing = it.Quantity
			break
		}
	}
	m.mu.Unlock()

	var err error
	if existing > 0 {
		err = m.applyQuantity(ctx, userID, p.ID, existing+quantity)
	} else {
		err = m.insertItem(ctx, userID, p, quantity)
	}

	if err != nil {
		m.notifier.Error(userID, "Erro ao adicionar produto", "Tente novamente em alguns instantes")
		return err
	}
	m.notifier.Success(userID, "Produto adicionado ao carrinho", p.Name+" foi adicionado com sucesso")
	return nil
}

func (m *Manager) insertItem(ctx context.Context, userID int, p product.Product, quantity int) error {
	m.mu.Lock()
	s := m.session(userID)
	s.seq++
	seq := s.seq
	m.mu.Unlock()

	item, err := m.repo.AddItem(userID, p.ID, quantity)
	if err != nil {
		return err
	}

	m.mu.Lock()
	if seq > s.applied[p.ID] {
		s.items = append(s.items, item)
		s.applied[p.ID] = seq
	}
	snap := s.copyItems()
	m.mu.Unlock()

	m.writeSnapshot(ctx, userID, snap)
	return nil
}

// UpdateQuantity sets the quantity of an existing line. Quantities below one
// are a no-op: dropping a line goes through RemoveItem explicitly.
func (m *Manager) UpdateQuantity(ctx context.Context, userID, productID, quantity int) error {
	if quantity < 1 {
		return nil
	}
	if err := m.applyQuantity(ctx, userID, productID, quantity); err != nil {
		m.notifier.Error(userID, "Erro ao atualizar quantidade", "")
		return err
	}
	return nil
}

func (m *Manager) applyQuantity(ctx context.Context, userID, productID, quantity int) error {
	m.mu.Lock()
	s := m.session(userID)
	s.seq++
	seq := s.seq
	m.mu.Unlock()

	if err := m.repo.UpdateQuantity(userID, productID, quantity); err != nil {
		return err
	}

	m.mu.Lock()
	if seq > s.applied[productID] {
		for i := range s.items {
			if s.items[i].Product.ID == productID {
				s.items[i].Quantity = quantity
				break
			}
		}
		s.applied[productID] = seq
	}
	snap := s.copyItems()
	m.mu.Unlock()

	m.writeSnapshot(ctx, userID, snap)
	return nil
}

// RemoveItem deletes a line and notifies with the removed product's name.
func (m *Manager) RemoveItem(ctx context.Context, userID, productID int) error {
	m.mu.Lock()
	s := m.session(userID)
	name := ""
	for _, it := range s.items {
		if it.Product.ID == productID {
			name = it.Product.Name
			break
		}
	}
	s.seq++
	seq := s.seq
	m.mu.Unlock()

	if err := m.repo.RemoveItem(userID, productID); err != nil {
		m.notifier.Error(userID, "Erro ao remover produto", "")
		return err
	}

	m.mu.Lock()
	if seq > s.applied[productID] {
		for i := range s.items {
			if s.items[i].Product.ID == productID {
				s.items = append(s.items[:i], s.items[i+1:]...)
				break
			}
		}
		s.applied[productID] = seq
	}
	snap := s.copyItems()
	m.mu.Unlock()

	m.writeSnapshot(ctx, userID, snap)
	m.notifier.Success(userID, "Produto removido", name+" foi removido do carrinho")
	return nil
}

// Clear empties the cart remotely, then in memory, and drops the snapshot.
func (m *Manager) Clear(ctx context.Context, userID int) error {
	if err := m.repo.Clear(userID); err != nil {
		m.notifier.Error(userID, "Erro ao limpar carrinho", "")
		return err
	}

	m.mu.Lock()
	s := m.session(userID)
	s.items = nil
	m.mu.Unlock()

	if err := m.store.Remove(ctx, snapshotKey(userID)); err != nil {
		log.Printf("cart snapshot remove failed for user %d: %v", userID, err)
	}
	return nil
}

// Items returns a copy of the identity's current lines.
func (m *Manager) Items(userID int) []Item {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session(userID).copyItems()
}

func (m *Manager) StateOf(userID int) State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session(userID).state
}

// Total is recomputed from the current lines on every call; it is never
// cached, so it cannot go stale across mutations.
func (m *Manager) Total(userID int) decimal.Decimal {
	m.mu.Lock()
	defer m.mu.Unlock()

	total := decimal.Zero
	for _, it := range m.session(userID).items {
		total = total.Add(money.Subtotal(it.Product.Price, it.Quantity))
	}
	return total
}

// ItemCount sums quantities across lines.
func (m *Manager) ItemCount(userID int) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	count := 0
	for _, it := range m.session(userID).items {
		count += it.Quantity
	}
	return count
}

func (s *session) copyItems() []Item {
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

func snapshotKey(userID int) string {
	return fmt.Sprintf("%s:%d", cache.KeyCartCache, userID)
}

func (m *Manager) readSnapshot(ctx context.Context, userID int) (Snapshot, bool) {
	raw, err := m.store.Get(ctx, snapshotKey(userID))
	if err != nil {
		return Snapshot{}, false
	}
	var snap Snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		return Snapshot{}, false
	}
	if time.Since(snap.Timestamp) >= SnapshotMaxAge {
		return Snapshot{}, false
	}
	return snap, true
}

// writeSnapshot is best-effort: the cart keeps working from memory if the
// cache is unavailable.
func (m *Manager) writeSnapshot(ctx context.Context, userID int, items []Item) {
	raw, err := json.Marshal(Snapshot{Items: items, Timestamp: time.Now()})
	if err != nil {
		log.Printf("cart snapshot marshal failed for user %d: %v", userID, err)
		return
	}
	if err := m.store.Set(ctx, snapshotKey(userID), string(raw), cache.CartSnapshotTTL); err != nil {
		log.Printf("cart snapshot write failed for user %d: %v", userID, err)
	}
}
