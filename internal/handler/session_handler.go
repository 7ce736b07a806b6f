package handler

import (
	"go-pos-ledger/internal/session"

	"github.com/gofiber/fiber/v2"
)

type SessionHandler struct {
	registry *session.Registry
}

func NewSessionHandler(registry *session.Registry) *SessionHandler {
	return &SessionHandler{registry: registry}
}

func (h *SessionHandler) Open(c *fiber.Ctx) error {
	s := h.registry.Create()
	return c.Status(201).JSON(fiber.Map{"message": "Session opened", "data": s})
}

func (h *SessionHandler) Close(c *fiber.Ctx) error {
	if err := h.registry.Close(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Session closed"})
}

// SwitchMode moves the session to another screen. The cart and any pending
// registration are discarded.
func (h *SessionHandler) SwitchMode(c *fiber.Ctx) error {
	var req struct {
		Mode session.Mode `json:"mode"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON", "code": "invalid_input"})
	}

	s := currentSession(c)
	if err := s.SwitchMode(req.Mode); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Mode switched", "data": s})
}
