package order

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stgcatalog/storefront-backend/internal/relay"
	"github.com/stgcatalog/storefront-backend/internal/user"
)

type Handler struct {
	service *Service
	sender  relay.Sender
}

func NewHandler(service *Service, sender relay.Sender) *Handler {
	return &Handler{service: service, sender: sender}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/api/send-order", h.sendOrder)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/v1/checkout", h.checkout)
	app.Get("/api/v1/orders", h.listOrders)
}

type sendOrderItem struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type sendOrderRequest struct {
	UserName  string          `json:"userName"`
	UserEmail string          `json:"userEmail"`
	Items     []sendOrderItem `json:"items"`
	Total     float64         `json:"total"`
}

// sendOrder formats an order summary and pushes it through the relay. The
// response contract (shapes and Portuguese messages) is what the frontend
// already expects.
func (h *Handler) sendOrder(c *fiber.Ctx) error {
	payload := new(sendOrderRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Erro interno",
			"error":   err.Error(),
		})
	}

	if payload.UserName == "" || payload.UserEmail == "" || len(payload.Items) == 0 || payload.Total == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Dados incompletos"})
	}

	items := make([]MessageItem, 0, len(payload.Items))
	for _, item := range payload.Items {
		items = append(items, MessageItem{
			Name:     item.Name,
			Quantity: item.Quantity,
			Price:    decimal.NewFromFloat(item.Price),
		})
	}
	message := FormatMessage(payload.UserName, payload.UserEmail, items, decimal.NewFromFloat(payload.Total))

	if err := h.sender.SendText(c.Context(), message); err != nil {
		var statusErr *relay.StatusError
		if errors.As(err, &statusErr) {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Erro ao enviar mensagem",
				"details": statusErr.Body,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Erro interno",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{"message": "Pedido enviado com sucesso"})
}

func (h *Handler) checkout(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	created, err := h.service.Submit(c.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrEmptyCart) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Carrinho vazio"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Erro ao enviar pedido", "error": err.Error()})
	}

	return c.JSON(created)
}

func (h *Handler) listOrders(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	orders, err := h.service.ListByUser(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(orders)
}
