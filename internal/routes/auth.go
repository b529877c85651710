package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/resulto-ai/resulto/internal/auth"
	"github.com/resulto-ai/resulto/internal/identity"
)

// RegisterAuthRoutes wires the public sign-in endpoint.
func RegisterAuthRoutes(r fiber.Router, h *auth.Handler, rateLimiter fiber.Handler) {
	group := r.Group("/auth")
	if rateLimiter != nil {
		group.Post("/google", rateLimiter, h.Google)
	} else {
		group.Post("/google", h.Google)
	}
}

// RegisterIdentityRoutes wires the session check, which echoes the profile.
func RegisterIdentityRoutes(r fiber.Router, h *identity.Handler) {
	r.Get("/auth/verify", h.Profile)
}
