package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/resulto-ai/resulto/internal/payments"
)

// RegisterPaymentRoutes wires payment verification behind the idempotency guard.
func RegisterPaymentRoutes(r fiber.Router, h *payments.Handler, idempotency fiber.Handler) {
	group := r.Group("/payment")
	if idempotency != nil {
		group.Post("/verify", idempotency, h.Verify)
	} else {
		group.Post("/verify", h.Verify)
	}
}
