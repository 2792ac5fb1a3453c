package wishlist

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stgcatalog/storefront-backend/internal/product"
)

func testCatalog() []product.Product {
	return []product.Product{
		{ID: 1, Name: "Widget", Price: decimal.RequireFromString("10.00"), CreatedAt: time.Now()},
		{ID: 2, Name: "Gadget", Price: decimal.RequireFromString("25.00"), CreatedAt: time.Now()},
	}
}

func TestAddAndMembership(t *testing.T) {
	ctx := context.Background()
	catalog := testCatalog()
	m := NewManager(NewInMemoryRepository(catalog))
	m.Load(ctx, 7)

	if m.IsInWishlist(7, 1) {
		t.Fatal("unexpected membership before add")
	}

	if err := m.AddItem(ctx, 7, catalog[0]); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if !m.IsInWishlist(7, 1) {
		t.Fatal("expected membership after add")
	}

	// adding twice keeps a single entry
	if err := m.AddItem(ctx, 7, catalog[0]); err != nil {
		t.Fatalf("second add failed: %v", err)
	}
	if items := m.Items(7); len(items) != 1 {
		t.Fatalf("expected one entry, got %d", len(items))
	}
}

func TestRemoveAbsentIsNoOp(t *testing.T) {
	ctx := context.Background()
	catalog := testCatalog()
	m := NewManager(NewInMemoryRepository(catalog))
	m.Load(ctx, 7)
	m.AddItem(ctx, 7, catalog[0])

	if err := m.RemoveItem(ctx, 7, 99); err != nil {
		t.Fatalf("removing an absent product must not fail: %v", err)
	}
	if items := m.Items(7); len(items) != 1 {
		t.Fatalf("state changed on no-op removal: %+v", items)
	}
}

func TestSignOutClearsList(t *testing.T) {
	ctx := context.Background()
	catalog := testCatalog()
	m := NewManager(NewInMemoryRepository(catalog))
	m.Load(ctx, 7)
	m.AddItem(ctx, 7, catalog[1])

	m.SignOut(7)

	if m.IsInWishlist(7, 2) {
		t.Fatal("membership survived sign-out")
	}
}
