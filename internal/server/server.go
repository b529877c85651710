package server

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/resulto-ai/resulto/internal/config"
	"github.com/resulto-ai/resulto/internal/results"
	"github.com/resulto-ai/resulto/internal/routes"
)

// maxUploadBytes bounds multipart uploads on /api/ocr.
const maxUploadBytes = 10 << 20

// Server wraps the Fiber application and its background jobs.
type Server struct {
	app    *fiber.App
	cfg    config.Config
	purger *results.Purger
}

// New instantiates the HTTP server and delegates route wiring to routes.Setup.
func New(d routes.Deps) (*Server, error) {
	app := fiber.New(fiber.Config{
		AppName:      d.Cfg.AppName,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		BodyLimit:    maxUploadBytes,
		ErrorHandler: routes.ErrorHandler(d.Logger),
	})

	purger, err := routes.Setup(app, d)
	if err != nil {
		return nil, err
	}

	return &Server{app: app, cfg: d.Cfg, purger: purger}, nil
}

// App exposes the underlying Fiber application, mainly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// StartJobs launches background jobs; they stop when ctx is cancelled.
func (s *Server) StartJobs(ctx context.Context) {
	go s.purger.Run(ctx)
}

// Listen starts the HTTP server.
func (s *Server) Listen() error {
	return s.app.Listen(s.cfg.Address())
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}
