package order

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/stgcatalog/storefront-backend/internal/cart"
	"github.com/stgcatalog/storefront-backend/internal/relay"
	"github.com/stgcatalog/storefront-backend/internal/user"
)

var (
	ErrEmptyCart = errors.New("cart is empty")
)

// Service runs the checkout flow: persist the order and its line items,
// send the summary through the relay, then clear the cart. A failure at any
// step aborts the remaining ones and leaves the cart untouched; rows already
// written are not rolled back, the status field marks them for a later
// reconciliation pass.
type Service struct {
	repo   Repository
	cart   *cart.Manager
	users  *user.Service
	sender relay.Sender
}

func NewService(repo Repository, cartManager *cart.Manager, users *user.Service, sender relay.Sender) *Service {
	return &Service{repo: repo, cart: cartManager, users: users, sender: sender}
}

func (s *Service) Submit(ctx context.Context, userID int) (Order, error) {
	u, err := s.users.GetByID(userID)
	if err != nil {
		return Order{}, fmt.Errorf("load identity: %w", err)
	}

	s.cart.Load(ctx, userID)
	items := s.cart.Items(userID)
	if len(items) == 0 {
		return Order{}, ErrEmptyCart
	}
	total := s.cart.Total(userID)

	created, err := s.repo.CreateOrder(Order{
		Reference: uuid.NewString(),
		UserID:    userID,
		Total:     total,
		Status:    StatusPendingNotification,
	})
	if err != nil {
		return Order{}, fmt.Errorf("create order: %w", err)
	}

	lineItems := make([]LineItem, 0, len(items))
	messageItems := make([]MessageItem, 0, len(items))
	for _, item := range items {
		lineItems = append(lineItems, LineItem{
			OrderID:   created.ID,
			ProductID: item.Product.ID,
			Quantity:  item.Quantity,
			Price:     item.Product.Price,
		})
		messageItems = append(messageItems, MessageItem{
			Name:     item.Product.Name,
			Quantity: item.Quantity,
			Price:    item.Product.Price,
		})
	}
	if err := s.repo.CreateLineItems(created.ID, lineItems); err != nil {
		return Order{}, fmt.Errorf("create order items: %w", err)
	}

	message := FormatMessage(u.Name, u.Email, messageItems, total)
	if err := s.sender.SendText(ctx, message); err != nil {
		return Order{}, fmt.Errorf("send order message: %w", err)
	}

	if err := s.repo.SetStatus(created.ID, StatusNotified); err != nil {
		// the message went out; a stale status only affects reconciliation
		log.Printf("order %d status update failed: %v", created.ID, err)
	} else {
		created.Status = StatusNotified
	}

	if err := s.cart.Clear(ctx, userID); err != nil {
		log.Printf("cart clear after checkout failed for user %d: %v", userID, err)
	}

	return created, nil
}

func (s *Service) ListByUser(userID int) ([]Order, error) {
	if userID <= 0 {
		return nil, ErrNotFound
	}
	return s.repo.ListByUser(userID)
}
