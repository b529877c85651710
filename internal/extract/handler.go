package extract

import (
	"errors"
	"io"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

const imageField = "image"

// Handler exposes the OCR upload endpoint.
type Handler struct {
	service *Service
}

// NewHandler constructs an extraction handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Upload accepts a multipart image and returns the extracted record.
func (h *Handler) Upload(c *fiber.Ctx) error {
	header, err := c.FormFile(imageField)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, ErrNoImage.Error())
	}
	f, err := header.Open()
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	rec, err := h.service.Extract(c.UserContext(), data)
	if err != nil {
		if errors.Is(err, ErrNoImage) {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(rec)
}
