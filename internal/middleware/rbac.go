package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// RequireAdmin gates the bot status/stream endpoints. The check runs once
// per request; for the SSE stream that means once at connection open, with
// no revocation mid-stream.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := GetClaims(c)
		if claims == nil {
			return Unauthorized("User not found")
		}

		if !claims.IsAdmin() {
			return Forbidden("Insufficient permissions for this operation")
		}

		return c.Next()
	}
}
