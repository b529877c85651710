package auth

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/resulto-ai/resulto/internal/identity"
)

// Handler exposes the sign-in endpoint.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type googleRequest struct {
	IDToken string `json:"id_token"`
}

type sessionResponse struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	IsPremium   bool   `json:"isPremium"`
	Token       string `json:"token"`
}

// Google exchanges a Google ID token for a session token.
func (h *Handler) Google(c *fiber.Ctx) error {
	var req googleRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	session, err := h.svc.Exchange(c.UserContext(), req.IDToken)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingAssertion):
			return fiber.NewError(http.StatusBadRequest, err.Error())
		case errors.Is(err, identity.ErrInvalidAssertion):
			return fiber.NewError(http.StatusUnauthorized, "Invalid Google token: "+err.Error())
		default:
			return fiber.NewError(http.StatusInternalServerError, "Server error: "+err.Error())
		}
	}
	return c.Status(http.StatusOK).JSON(sessionResponse{
		UID:         session.User.UID,
		Email:       session.User.Email,
		DisplayName: session.User.DisplayName,
		IsPremium:   session.User.IsPremium,
		Token:       session.Token,
	})
}
