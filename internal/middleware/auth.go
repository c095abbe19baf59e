package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"amersur-crm/internal/service/auth"
)

const ClaimsContextKey = "claims"

// AuthRequired validates the Bearer token and stores its claims in the
// request context. The token is issued by the main CRM application; this
// service treats it purely as a current-user provider.
func AuthRequired(authService auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"code":    "UNAUTHORIZED",
				"message": "Missing authorization header",
			})
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"code":    "UNAUTHORIZED",
				"message": "Invalid authorization header format",
			})
		}

		claims, err := authService.ValidateAccessToken(parts[1])
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"code":    "UNAUTHORIZED",
				"message": "Invalid or expired token",
			})
		}

		c.Locals(ClaimsContextKey, claims)

		return c.Next()
	}
}

func GetClaims(c *fiber.Ctx) *auth.Claims {
	claims, ok := c.Locals(ClaimsContextKey).(*auth.Claims)
	if !ok {
		return nil
	}
	return claims
}

func GetCurrentUserID(c *fiber.Ctx) uuid.UUID {
	claims := GetClaims(c)
	if claims == nil {
		return uuid.Nil
	}
	return claims.UserID
}
