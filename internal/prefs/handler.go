// Package prefs exposes client preferences kept in the cache layer: the UI
// theme, a small preferences blob and the recent-search history.
package prefs

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/stgcatalog/storefront-backend/internal/cache"
)

type Handler struct {
	volatile cache.Store
	durable  cache.Store
	history  *cache.SearchHistory
}

func NewHandler(volatile, durable cache.Store) *Handler {
	return &Handler{
		volatile: volatile,
		durable:  durable,
		history:  cache.NewSearchHistory(volatile),
	}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/prefs/theme", h.getTheme)
	app.Put("/api/v1/prefs/theme", h.setTheme)
	app.Get("/api/v1/prefs", h.getPrefs)
	app.Put("/api/v1/prefs", h.setPrefs)
	app.Get("/api/v1/search-history", h.getSearchHistory)
	app.Post("/api/v1/search-history", h.addSearchTerm)
	app.Delete("/api/v1/search-history", h.clearSearchHistory)
}

func (h *Handler) getTheme(c *fiber.Ctx) error {
	theme, err := h.volatile.Get(c.Context(), cache.KeyTheme)
	if errors.Is(err, cache.ErrNotFound) {
		theme = "light"
	}
	return c.JSON(fiber.Map{"theme": theme})
}

type themeRequest struct {
	Theme string `json:"theme"`
}

func (h *Handler) setTheme(c *fiber.Ctx) error {
	var req themeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid body"})
	}
	if req.Theme != "light" && req.Theme != "dark" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "unknown theme"})
	}

	// theme is cosmetic, a lost write only costs a refreshed default
	_ = h.volatile.Set(c.Context(), cache.KeyTheme, req.Theme, 0)
	return c.JSON(fiber.Map{"theme": req.Theme})
}

func (h *Handler) getPrefs(c *fiber.Ctx) error {
	raw, err := h.durable.Get(c.Context(), cache.KeyUserPrefs)
	if errors.Is(err, cache.ErrNotFound) {
		return c.JSON(fiber.Map{})
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.SendString(raw)
}

func (h *Handler) setPrefs(c *fiber.Ctx) error {
	body := c.Body()
	if len(body) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid body"})
	}
	if err := h.durable.Set(c.Context(), cache.KeyUserPrefs, string(body), cache.UserPrefsTTL); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) getSearchHistory(c *fiber.Ctx) error {
	terms := h.history.Get(c.Context())
	if terms == nil {
		terms = []string{}
	}
	return c.JSON(terms)
}

type searchTermRequest struct {
	Term string `json:"term"`
}

func (h *Handler) addSearchTerm(c *fiber.Ctx) error {
	var req searchTermRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid body"})
	}

	// recording a term is best-effort
	_ = h.history.Add(c.Context(), req.Term)

	terms := h.history.Get(c.Context())
	if terms == nil {
		terms = []string{}
	}
	return c.JSON(terms)
}

func (h *Handler) clearSearchHistory(c *fiber.Ctx) error {
	if err := h.history.Clear(c.Context()); err != nil && !errors.Is(err, cache.ErrNotFound) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
