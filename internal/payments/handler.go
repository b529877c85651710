package payments

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes payment endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a payment handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type verifyRequest struct {
	Reference string `json:"reference"`
}

// Verify confirms a payment reference and upgrades the authenticated user.
func (h *Handler) Verify(c *fiber.Ctx) error {
	uid, _ := c.Locals("user_id").(string)
	if uid == "" {
		return fiber.NewError(http.StatusUnauthorized, "unauthorized")
	}
	var req verifyRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.VerifyAndUpgrade(c.UserContext(), uid, req.Reference); err != nil {
		switch {
		case errors.Is(err, ErrMissingReference):
			return fiber.NewError(http.StatusBadRequest, ErrMissingReference.Error())
		case errors.Is(err, ErrVerificationFailed):
			return fiber.NewError(http.StatusBadRequest, ErrVerificationFailed.Error())
		default:
			return fiber.NewError(http.StatusInternalServerError, "payment verification error: "+err.Error())
		}
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"success": true})
}
