package order

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stgcatalog/storefront-backend/internal/relay"
)

type stubSender struct {
	lastMessage string
	err         error
}

func (s *stubSender) SendText(_ context.Context, message string) error {
	if s.err != nil {
		return s.err
	}
	s.lastMessage = message
	return nil
}

func makeSendOrderApp(sender relay.Sender) *fiber.App {
	handler := NewHandler(nil, sender)
	app := fiber.New()
	handler.RegisterPublicRoutes(app)
	return app
}

func postJSON(app *fiber.App, path, body string) (*fiber.App, int, string) {
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res, _ := app.Test(req)
	b, _ := io.ReadAll(res.Body)
	return app, res.StatusCode, string(b)
}

func TestSendOrder_IncompletePayload(t *testing.T) {
	app := makeSendOrderApp(&stubSender{})

	_, status, body := postJSON(app, "/api/send-order", `{"userName":"A"}`)
	if status != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
	if !strings.Contains(body, "Dados incompletos") {
		t.Fatalf("unexpected body: %s", body)
	}
}

func TestSendOrder_Success(t *testing.T) {
	sender := &stubSender{}
	app := makeSendOrderApp(sender)

	payload := `{
		"userName": "Ana",
		"userEmail": "ana@example.com",
		"items": [{"name": "Widget", "quantity": 2, "price": 10.00}],
		"total": 20.00
	}`
	_, status, body := postJSON(app, "/api/send-order", payload)
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d: %s", status, body)
	}

	var res map[string]string
	if err := json.Unmarshal([]byte(body), &res); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if res["message"] != "Pedido enviado com sucesso" {
		t.Fatalf("unexpected message: %q", res["message"])
	}

	if !strings.Contains(sender.lastMessage, "- Widget - Qtd: 2 - R$ 20,00") {
		t.Fatalf("relayed message missing item line:\n%s", sender.lastMessage)
	}
	if !strings.Contains(sender.lastMessage, "TOTAL: R$ 20,00") {
		t.Fatalf("relayed message missing total line:\n%s", sender.lastMessage)
	}
}

func TestSendOrder_RelayFailure(t *testing.T) {
	sender := &stubSender{err: &relay.StatusError{Code: 502, Body: "relay offline"}}
	app := makeSendOrderApp(sender)

	payload := `{"userName":"Ana","userEmail":"a@b.com","items":[{"name":"W","quantity":1,"price":1}],"total":1}`
	_, status, body := postJSON(app, "/api/send-order", payload)
	if status != fiber.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", status)
	}
	if !strings.Contains(body, "Erro ao enviar mensagem") || !strings.Contains(body, "relay offline") {
		t.Fatalf("unexpected body: %s", body)
	}
}

func TestSendOrder_UnexpectedError(t *testing.T) {
	sender := &stubSender{err: errors.New("connection refused")}
	app := makeSendOrderApp(sender)

	payload := `{"userName":"Ana","userEmail":"a@b.com","items":[{"name":"W","quantity":1,"price":1}],"total":1}`
	_, status, body := postJSON(app, "/api/send-order", payload)
	if status != fiber.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", status)
	}
	if !strings.Contains(body, "Erro interno") {
		t.Fatalf("unexpected body: %s", body)
	}
}
