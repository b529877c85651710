package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/resulto-ai/resulto/internal/config"
	"github.com/resulto-ai/resulto/internal/extract"
	"github.com/resulto-ai/resulto/internal/identity"
	"github.com/resulto-ai/resulto/internal/infra"
	"github.com/resulto-ai/resulto/internal/logging"
	"github.com/resulto-ai/resulto/internal/payments"
	"github.com/resulto-ai/resulto/internal/render"
	"github.com/resulto-ai/resulto/internal/routes"
	"github.com/resulto-ai/resulto/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.LogLevel)

	ctx, stopJobs := context.WithCancel(context.Background())
	defer stopJobs()

	var db *pgxpool.Pool
	if cfg.DatabaseURL != "" {
		db, err = infra.NewPostgresPool(ctx, cfg.DatabaseURL, cfg.AppName)
		if err != nil {
			logger.Error("connect postgres", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		if err := infra.Migrate(ctx, db); err != nil {
			logger.Error("migrate postgres", "error", err)
			os.Exit(1)
		}
	} else {
		logger.Warn("DATABASE_URL not set, using in-memory stores")
	}

	cache, err := infra.NewRedisClient(ctx, cfg.RedisURL, cfg.AppName)
	if err != nil {
		logger.Error("connect redis", "error", err)
		os.Exit(1)
	}
	if cache != nil {
		defer func() {
			if err := cache.Close(); err != nil {
				logger.Warn("close redis", "error", err)
			}
		}()
	}

	assertions, err := identity.NewGoogleVerifier(ctx, cfg.GoogleClientID)
	if err != nil {
		logger.Error("build google verifier", "error", err)
		os.Exit(1)
	}

	deps := routes.Deps{
		Cfg:        cfg,
		DB:         db,
		Cache:      cache,
		Logger:     logger,
		Assertions: assertions,
		Recognizer: extract.NewTesseractRecognizer(cfg.OCRLanguages...),
		Payments:   payments.NewPaystackVerifier(cfg.PaystackBaseURL, cfg.PaystackSecretKey, cfg.PaymentTimeout),
	}

	if cfg.Storage.Enabled() {
		storage, err := infra.NewS3Storage(ctx, cfg.Storage)
		if err != nil {
			logger.Error("build object storage", "error", err)
			os.Exit(1)
		}
		deps.Storage = storage
	} else {
		logger.Warn("S3_BUCKET not set, rendered cards are kept in memory")
	}

	fonts, err := render.LoadFonts(cfg.FontPath)
	if err != nil {
		logger.Warn("card font unavailable, using bitmap fallback", "path", cfg.FontPath, "error", err)
	}
	deps.Fonts = fonts

	srv, err := server.New(deps)
	if err != nil {
		logger.Error("build server", "error", err)
		os.Exit(1)
	}
	srv.StartJobs(ctx)

	srvErrCh := make(chan error, 1)
	go func() {
		srvErrCh <- srv.Listen()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("shutdown signal received", "signal", sig.String())
	case err := <-srvErrCh:
		if err != nil {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
		return
	}

	stopJobs()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownPeriod)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
		os.Exit(1)
	}

	logger.Info("server exited cleanly")
}
