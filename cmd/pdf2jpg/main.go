package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"

	"github.com/CastorPolux2050/PDF2JPG-SupabaseService/internal/config"
	"github.com/CastorPolux2050/PDF2JPG-SupabaseService/internal/http/server"
	"github.com/CastorPolux2050/PDF2JPG-SupabaseService/internal/infra/logging"
	"github.com/CastorPolux2050/PDF2JPG-SupabaseService/internal/infra/ratelimit"
)

// version is stamped at build time via -ldflags.
var version = "dev"

func main() {
	// A missing .env file is fine; deployments usually set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	logging.InitLogger(
		cfg.Logger.File,
		cfg.Logger.MaxSizeMB,
		cfg.Logger.MaxBackups,
		cfg.Logger.MaxAgeDays,
		cfg.Logger.Compress,
		cfg.Logger.Level,
	)

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.Sentry.DSN,
			Environment: cfg.Sentry.Environment,
			Release:     "pdf2jpg@" + version,
		}); err != nil {
			logging.Error("Sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	limiter := ratelimit.New(cfg.RateLimit.PerMinute, time.Minute)
	app := server.New(server.Deps{Config: cfg, Limiter: limiter})

	logging.Info("Server starting",
		"addr", cfg.Server.Host+":"+cfg.Server.Port,
		"api_key_required", cfg.Auth.APIKey != "",
		"rate_limit_per_minute", cfg.RateLimit.PerMinute,
	)

	idleConnsClosed := make(chan struct{})
	startServer(app, cfg, idleConnsClosed)
	<-idleConnsClosed
}

// startServer starts the Fiber app and listens for shutdown signals
func startServer(app *fiber.App, cfg config.Config, idleConnsClosed chan struct{}) {
	go func() {
		if err := app.Listen(cfg.Server.Host + ":" + cfg.Server.Port); err != nil {
			logging.Error("Server error", "error", err)
		}
	}()

	// Listen for OS termination signals
	sigint := make(chan os.Signal, 1)
	signal.Notify(sigint, syscall.SIGINT, syscall.SIGTERM)
	<-sigint

	logging.Warn("Shutdown signal received, closing server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logging.Error("Server forced to shutdown", "error", err)
	}

	close(idleConnsClosed)
	logging.Info("Server stopped cleanly")
}
