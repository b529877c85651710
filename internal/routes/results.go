package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/resulto-ai/resulto/internal/extract"
	"github.com/resulto-ai/resulto/internal/results"
)

// RegisterResultRoutes wires OCR upload, card generation and history.
func RegisterResultRoutes(r fiber.Router, ocr *extract.Handler, h *results.Handler) {
	r.Post("/ocr", ocr.Upload)
	r.Post("/generate", h.Generate)
	r.Get("/history", h.History)
}
