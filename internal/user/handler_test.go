package user

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestRegisterAndLogin(t *testing.T) {
	handler := NewHandler(NewService(NewInMemoryRepository(nil)))
	app := fiber.New()
	handler.RegisterPublicRoutes(app)

	// missing fields rejected
	req := httptest.NewRequest("POST", "/api/v1/sign-up", strings.NewReader(`{"email":"a@b.com"}`))
	req.Header.Set("Content-Type", "application/json")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for incomplete sign-up, got %d", res.StatusCode)
	}

	// full registration succeeds
	body := `{"email":"ana@example.com","password":"s3cret","name":"Ana"}`
	req = httptest.NewRequest("POST", "/api/v1/sign-up", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201 for sign-up, got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	if strings.Contains(string(b), "s3cret") {
		t.Fatalf("response leaked password: %s", b)
	}

	// duplicate email conflicts
	req = httptest.NewRequest("POST", "/api/v1/sign-up", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusConflict {
		t.Fatalf("expected 409 for duplicate email, got %d", res.StatusCode)
	}

	// wrong password rejected
	req = httptest.NewRequest("POST", "/api/v1/sign-in", strings.NewReader(`{"email":"ana@example.com","password":"wrong"}`))
	req.Header.Set("Content-Type", "application/json")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 for bad credentials, got %d", res.StatusCode)
	}

	// correct credentials yield a token
	req = httptest.NewRequest("POST", "/api/v1/sign-in", strings.NewReader(`{"email":"ana@example.com","password":"s3cret"}`))
	req.Header.Set("Content-Type", "application/json")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for sign-in, got %d", res.StatusCode)
	}
	b, _ = io.ReadAll(res.Body)
	if !strings.Contains(string(b), "token") {
		t.Fatalf("sign-in response missing token: %s", b)
	}
}
