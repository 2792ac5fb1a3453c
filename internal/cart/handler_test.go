package cart

import (
	"io"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/shopspring/decimal"
	"github.com/stgcatalog/storefront-backend/internal/cache"
	"github.com/stgcatalog/storefront-backend/internal/product"
)

func makeAppWithCartHandler(h *Handler) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if v := c.Get("X-User-ID"); v != "" {
			id, err := strconv.Atoi(v)
			if err == nil {
				claims := jwt.MapClaims{"user_id": id}
				tok := &jwt.Token{Claims: claims}
				c.Locals("user", tok)
			}
		}
		return c.Next()
	})
	h.RegisterProtectedRoutes(app)
	return app
}

func newCartApp() *fiber.App {
	catalog := []product.Product{
		{ID: 1, Name: "Widget", Price: decimal.RequireFromString("10.00"), CreatedAt: time.Now()},
		{ID: 2, Name: "Gadget", Price: decimal.RequireFromString("25.00"), CreatedAt: time.Now()},
	}
	manager := NewManager(NewInMemoryRepository(catalog), cache.NewMemoryStore(), LogNotifier{})
	handler := NewHandler(manager, product.NewService(product.NewInMemoryRepository(catalog)))
	return makeAppWithCartHandler(handler)
}

func TestCartRoutes_Basic(t *testing.T) {
	app := newCartApp()

	// unauthorized access should be blocked
	res, _ := app.Test(httptest.NewRequest("GET", "/api/v1/cart", nil))
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 for unauthenticated GET, got %d", res.StatusCode)
	}

	// authorized GET starts empty
	req := httptest.NewRequest("GET", "/api/v1/cart", nil)
	req.Header.Set("X-User-ID", "42")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for authenticated GET, got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(b), `"itemCount":0`) {
		t.Fatalf("expected empty cart, got %s", b)
	}

	// add a product twice; the line must merge
	for i := 0; i < 2; i++ {
		req = httptest.NewRequest("POST", "/api/v1/cart/items", strings.NewReader(`{"product_id":1,"quantity":1}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-User-ID", "42")
		res, _ = app.Test(req)
		if res.StatusCode != fiber.StatusOK {
			t.Fatalf("expected 200 for add, got %d", res.StatusCode)
		}
	}
	b, _ = io.ReadAll(res.Body)
	if !strings.Contains(string(b), `"quantity":2`) {
		t.Fatalf("expected merged quantity 2, got %s", b)
	}
	if strings.Count(string(b), `"Widget"`) != 1 {
		t.Fatalf("expected a single Widget line, got %s", b)
	}

	// totals use the shared currency formatting
	req = httptest.NewRequest("GET", "/api/v1/cart", nil)
	req.Header.Set("X-User-ID", "42")
	res, _ = app.Test(req)
	b, _ = io.ReadAll(res.Body)
	if !strings.Contains(string(b), `R$ 20,00`) {
		t.Fatalf("expected formatted total R$ 20,00, got %s", b)
	}

	// remove the line
	req = httptest.NewRequest("DELETE", "/api/v1/cart/items/1", nil)
	req.Header.Set("X-User-ID", "42")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for remove, got %d", res.StatusCode)
	}

	// clearing an already empty cart still succeeds
	req = httptest.NewRequest("DELETE", "/api/v1/cart", nil)
	req.Header.Set("X-User-ID", "42")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusNoContent {
		t.Fatalf("expected 204 for clear, got %d", res.StatusCode)
	}
}

func TestCartRoutes_UnknownProduct(t *testing.T) {
	app := newCartApp()

	req := httptest.NewRequest("POST", "/api/v1/cart/items", strings.NewReader(`{"product_id":99}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "42")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 for unknown product, got %d", res.StatusCode)
	}
}
