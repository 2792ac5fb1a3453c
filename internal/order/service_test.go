package order

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stgcatalog/storefront-backend/internal/cache"
	"github.com/stgcatalog/storefront-backend/internal/cart"
	"github.com/stgcatalog/storefront-backend/internal/product"
	"github.com/stgcatalog/storefront-backend/internal/user"
)

func checkoutFixture(t *testing.T, sender *stubSender) (*Service, *cart.Manager, *InMemoryRepository, int) {
	t.Helper()
	ctx := context.Background()

	catalog := []product.Product{
		{ID: 1, Name: "Widget", Price: decimal.RequireFromString("10.00"), CreatedAt: time.Now()},
		{ID: 2, Name: "Gadget", Price: decimal.RequireFromString("25.00"), CreatedAt: time.Now()},
	}

	users := user.NewService(user.NewInMemoryRepository(nil))
	u, err := users.Register(user.User{Email: "ana@example.com", Password: "pw", Name: "Ana"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	cartManager := cart.NewManager(cart.NewInMemoryRepository(catalog), cache.NewMemoryStore(), cart.LogNotifier{})
	cartManager.Load(ctx, u.ID)
	if err := cartManager.AddItem(ctx, u.ID, catalog[0], 2); err != nil {
		t.Fatalf("cart seed failed: %v", err)
	}

	repo := NewInMemoryRepository()
	return NewService(repo, cartManager, users, sender), cartManager, repo, u.ID
}

func TestSubmit_SuccessClearsCart(t *testing.T) {
	ctx := context.Background()
	sender := &stubSender{}
	svc, cartManager, repo, userID := checkoutFixture(t, sender)

	created, err := svc.Submit(ctx, userID)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	if !created.Total.Equal(decimal.RequireFromString("20.00")) {
		t.Fatalf("expected total 20.00, got %s", created.Total)
	}
	if created.Status != StatusNotified {
		t.Fatalf("expected status %q, got %q", StatusNotified, created.Status)
	}
	if created.Reference == "" {
		t.Fatal("expected a non-empty order reference")
	}

	items := repo.LineItems(created.ID)
	if len(items) != 1 {
		t.Fatalf("expected 1 line item, got %d", len(items))
	}
	if items[0].Quantity != 2 || !items[0].Price.Equal(decimal.RequireFromString("10.00")) {
		t.Fatalf("line item did not capture price and quantity: %+v", items[0])
	}

	if count := cartManager.ItemCount(userID); count != 0 {
		t.Fatalf("expected cart cleared after relay success, count=%d", count)
	}
}

func TestSubmit_RelayFailurePreservesCart(t *testing.T) {
	ctx := context.Background()
	sender := &stubSender{err: errors.New("relay down")}
	svc, cartManager, repo, userID := checkoutFixture(t, sender)

	if _, err := svc.Submit(ctx, userID); err == nil {
		t.Fatal("expected submit to fail when relay is down")
	}

	if count := cartManager.ItemCount(userID); count != 2 {
		t.Fatalf("cart must keep its pre-checkout contents, count=%d", count)
	}

	// the persisted order is not rolled back; it stays pending
	orders, _ := repo.ListByUser(userID)
	if len(orders) != 1 {
		t.Fatalf("expected the persisted order to remain, got %d", len(orders))
	}
	if orders[0].Status != StatusPendingNotification {
		t.Fatalf("expected pending status, got %q", orders[0].Status)
	}
}

func TestSubmit_EmptyCartDoesNotStart(t *testing.T) {
	ctx := context.Background()
	sender := &stubSender{}
	svc, cartManager, repo, userID := checkoutFixture(t, sender)

	if err := cartManager.Clear(ctx, userID); err != nil {
		t.Fatalf("clear failed: %v", err)
	}

	if _, err := svc.Submit(ctx, userID); !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
	if orders, _ := repo.ListByUser(userID); len(orders) != 0 {
		t.Fatalf("no order may be created for an empty cart, got %d", len(orders))
	}
}

func TestSubmit_MessageUsesIdentityAndTotals(t *testing.T) {
	ctx := context.Background()
	sender := &stubSender{}
	svc, _, _, userID := checkoutFixture(t, sender)

	if _, err := svc.Submit(ctx, userID); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	for _, want := range []string{
		"Cliente: Ana",
		"Email: ana@example.com",
		"- Widget - Qtd: 2 - R$ 20,00",
		"TOTAL: R$ 20,00",
	} {
		if !strings.Contains(sender.lastMessage, want) {
			t.Fatalf("message missing %q:\n%s", want, sender.lastMessage)
		}
	}
}
