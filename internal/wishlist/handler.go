package wishlist

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/stgcatalog/storefront-backend/internal/product"
	"github.com/stgcatalog/storefront-backend/internal/user"
)

type Handler struct {
	manager  *Manager
	products *product.Service
}

func NewHandler(manager *Manager, products *product.Service) *Handler {
	return &Handler{manager: manager, products: products}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/wishlist", h.getWishlist)
	app.Post("/api/v1/wishlist/:productID", h.addItem)
	app.Delete("/api/v1/wishlist/:productID", h.removeItem)
}

func (h *Handler) getWishlist(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	h.manager.Load(c.Context(), userID)
	return c.JSON(h.manager.Items(userID))
}

func (h *Handler) addItem(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	productID, err := strconv.Atoi(c.Params("productID"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid product id"})
	}

	p, err := h.products.GetByID(productID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
	}

	h.manager.Load(c.Context(), userID)
	if err := h.manager.AddItem(c.Context(), userID, p); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(h.manager.Items(userID))
}

func (h *Handler) removeItem(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	productID, err := strconv.Atoi(c.Params("productID"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid product id"})
	}

	h.manager.Load(c.Context(), userID)
	if err := h.manager.RemoveItem(c.Context(), userID, productID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(h.manager.Items(userID))
}
