package routes

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/resulto-ai/resulto/internal/auth"
	"github.com/resulto-ai/resulto/internal/config"
	"github.com/resulto-ai/resulto/internal/extract"
	"github.com/resulto-ai/resulto/internal/identity"
	"github.com/resulto-ai/resulto/internal/infra"
	"github.com/resulto-ai/resulto/internal/logging"
	"github.com/resulto-ai/resulto/internal/middleware"
	"github.com/resulto-ai/resulto/internal/notification"
	"github.com/resulto-ai/resulto/internal/payments"
	"github.com/resulto-ai/resulto/internal/render"
	"github.com/resulto-ai/resulto/internal/results"
)

// Deps aggregates shared dependencies required to wire routes. Optional
// collaborators left nil get a development default.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger

	Assertions identity.AssertionVerifier
	Recognizer extract.Recognizer
	Storage    results.Uploader
	Payments   payments.Verifier
	Fonts      *render.Fonts
	Notifier   notification.Notifier
}

// Setup configures middlewares and all application routes. It returns the
// purge job bound to the same result store the handlers use.
func Setup(app *fiber.App, d Deps) (*results.Purger, error) {
	if d.Logger == nil {
		d.Logger = logging.Discard()
	}
	if !d.Cfg.IsDev() && d.DB == nil {
		return nil, fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.Env)
	}
	if d.Assertions == nil {
		return nil, fmt.Errorf("identity assertion verifier is required")
	}

	// Middlewares
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	// Plain text access log in desired format: [HH:MM:SS] 200 -  145ms METHOD /path
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))
	app.Use(middleware.Audit(logging.Component(d.Logger, "http")))
	app.Use("/api", cors.New(cors.Config{
		AllowOrigins: strings.Join(d.Cfg.AllowedOrigins, ","),
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Content-Type,Authorization,Idempotency-Key,X-Request-ID",
	}))

	RegisterHealthRoutes(app, d)

	// Stores
	var userRepo identity.Repository
	var resultRepo results.Repository
	if d.DB != nil {
		userRepo = identity.NewPostgresRepository(d.DB)
		resultRepo = results.NewPostgresRepository(d.DB)
	} else {
		userRepo = identity.NewMemoryRepository()
		resultRepo = results.NewMemoryRepository()
	}

	storage := d.Storage
	if storage == nil {
		mem := infra.NewMemoryStorage("/files")
		RegisterFileRoutes(app, mem)
		storage = mem
	}
	recognizer := d.Recognizer
	if recognizer == nil {
		recognizer = extract.NewTesseractRecognizer(d.Cfg.OCRLanguages...)
	}
	verifier := d.Payments
	if verifier == nil {
		verifier = payments.NewPaystackVerifier(d.Cfg.PaystackBaseURL, d.Cfg.PaystackSecretKey, d.Cfg.PaymentTimeout)
	}
	notifier := d.Notifier
	if notifier == nil {
		notifier = notification.NewLoggerNotifier(logging.Component(d.Logger, "notification"))
	}

	// Services and handlers
	tokens := auth.NewTokens(d.Cfg.JWTSecret, d.Cfg.SessionTTL)
	userSvc := identity.NewService(userRepo)
	authSvc := auth.NewService(d.Assertions, userSvc, tokens)
	extractSvc := extract.NewService(recognizer)
	resultSvc := results.NewService(resultRepo, userSvc, render.NewRenderer(d.Fonts), storage)
	paymentSvc := payments.NewService(verifier, userSvc, notifier, logging.Component(d.Logger, "payments"))

	api := app.Group("/api")

	// Public routes
	RegisterAuthRoutes(api, auth.NewHandler(authSvc), middleware.RateLimit(d.Cache, "auth", d.Cfg.AuthRateLimitPerMin))

	// Protected routes
	protected := api.Group("", middleware.BearerAuth(tokens))
	RegisterIdentityRoutes(protected, identity.NewHandler(userSvc))
	RegisterResultRoutes(protected, extract.NewHandler(extractSvc), results.NewHandler(resultSvc))
	RegisterPaymentRoutes(protected, payments.NewHandler(paymentSvc), middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, logging.Component(d.Logger, "idempotency")))

	purger := results.NewPurger(resultRepo, d.Cfg.ResultRetention, d.Cfg.PurgeInterval, logging.Component(d.Logger, "purge"))
	return purger, nil
}
