package middleware

import (
	"sync"

	"go-pos-ledger/internal/session"

	"github.com/gofiber/fiber/v2"
)

const (
	SessionHeader = "X-Session-ID"
	SessionKey    = "session"
)

// RequireSession resolves the X-Session-ID header and stores the session in context
func RequireSession(registry *session.Registry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(SessionHeader)
		if id == "" {
			return c.Status(401).JSON(fiber.Map{"error": "Missing session header", "code": "session_required"})
		}

		s, err := registry.Get(id)
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "Session not found or closed", "code": "session_not_found"})
		}

		c.Locals(SessionKey, s)
		return c.Next()
	}
}

// Serialize runs the wrapped handlers one at a time across all sessions.
// Every store operation is a whole-table read-modify-write, so two requests
// must never interleave.
func Serialize() fiber.Handler {
	var mu sync.Mutex
	return func(c *fiber.Ctx) error {
		mu.Lock()
		defer mu.Unlock()
		return c.Next()
	}
}
