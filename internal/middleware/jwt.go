package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/resulto-ai/resulto/internal/auth"
)

const (
	msgMissingToken = "Unauthorized: Missing or invalid token"
	msgExpiredToken = "Token expired"
	msgInvalidToken = "Invalid token"
)

// BearerAuth validates the session token in the Authorization header and
// stores the caller's uid in c.Locals("user_id").
func BearerAuth(tokens *auth.Tokens) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authz := c.Get(fiber.HeaderAuthorization)
		if len(authz) < len("Bearer ") || !strings.EqualFold(authz[:len("Bearer ")], "bearer ") {
			return fiber.NewError(http.StatusUnauthorized, msgMissingToken)
		}
		raw := strings.TrimSpace(authz[len("Bearer "):])

		uid, err := tokens.Verify(raw)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrMissingToken):
				return fiber.NewError(http.StatusUnauthorized, msgMissingToken)
			case errors.Is(err, auth.ErrExpired):
				return fiber.NewError(http.StatusUnauthorized, msgExpiredToken)
			default:
				return fiber.NewError(http.StatusUnauthorized, msgInvalidToken)
			}
		}

		c.Locals("user_id", uid)
		return c.Next()
	}
}
