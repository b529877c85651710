package routes

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/resulto-ai/resulto/internal/infra"
)

// RegisterFileRoutes serves objects held by the in-memory store so rendered
// cards open in a browser during local development.
func RegisterFileRoutes(app *fiber.App, store *infra.MemoryStorage) {
	app.Get("/files/*", func(c *fiber.Ctx) error {
		key := strings.TrimPrefix(c.Params("*"), "/")
		data, ok := store.Object(key)
		if !ok {
			return fiber.NewError(http.StatusNotFound, "file not found")
		}
		c.Set(fiber.HeaderContentType, "image/png")
		return c.Status(http.StatusOK).Send(data)
	})
}
