package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/ahmetcoskunkizilkaya/bond-keeper/internal/config"
	"github.com/ahmetcoskunkizilkaya/bond-keeper/internal/database"
	"github.com/ahmetcoskunkizilkaya/bond-keeper/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/bond-keeper/internal/identity"
	"github.com/ahmetcoskunkizilkaya/bond-keeper/internal/logging"
	"github.com/ahmetcoskunkizilkaya/bond-keeper/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/bond-keeper/internal/notify"
	"github.com/ahmetcoskunkizilkaya/bond-keeper/internal/relationship"
	"github.com/ahmetcoskunkizilkaya/bond-keeper/internal/routes"
	"github.com/ahmetcoskunkizilkaya/bond-keeper/internal/services"
	"github.com/ahmetcoskunkizilkaya/bond-keeper/internal/session"
	"github.com/ahmetcoskunkizilkaya/bond-keeper/internal/storage"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

const appName = "Bond Keeper"

func main() {
	cfg := config.Load()

	// Structured logging (JSON to stdout)
	stdout := logging.Setup(cfg.LogLevel)

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}

	ctx := context.Background()

	// Storage backend
	kv, closeStorage, err := openStorage(ctx, cfg)
	if err != nil {
		slog.Error("storage init failed", "driver", cfg.StorageDriver, "error", err)
		os.Exit(1)
	}
	slog.Info("storage ready", "driver", cfg.StorageDriver)

	// PostgreSQL log handler (ERROR+ async batch) and retention cleanup
	cleanupDone := make(chan struct{})
	var dbLogHandler *logging.DBHandler
	if cfg.StorageDriver == "postgres" {
		dbLogHandler = logging.NewDBHandler(database.DB, 5*time.Second)
		slog.SetDefault(slog.New(logging.NewMultiHandler(stdout, dbLogHandler)))
		logging.StartCleanup(database.DB, cfg.LogRetentionDays, cleanupDone)
	}

	// Notifications
	notifier, closeNotifier := openNotifier(cfg)

	// Session: identity holder plus the store scoped to it
	holder := identity.NewHolder(kv)
	store := relationship.NewStore(kv)
	sess := session.New(holder, store)
	if err := sess.Start(ctx); err != nil {
		// Start over signed out rather than refuse to serve.
		slog.Error("session restore failed", "action", "restore", "error", err)
	}

	authService := services.NewAuthService(sess, cfg)

	h := routes.Handlers{
		Auth:         handlers.NewAuthHandler(authService),
		Health:       handlers.NewHealthHandler(kv, cfg.StorageDriver, notifier),
		Legal:        handlers.NewLegalHandler(appName),
		Settings:     handlers.NewSettingsHandler(cfg, notifier),
		Contact:      handlers.NewContactHandler(store),
		Date:         handlers.NewDateHandler(store, cfg.DefaultReminderDays, cfg.UpcomingWindowDays),
		Survey:       handlers.NewSurveyHandler(store),
		Export:       handlers.NewExportHandler(store),
		Notification: handlers.NewNotificationHandler(store, notifier),
	}

	// Sentry error tracking
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    4 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	// Sentry middleware
	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		return c.Next()
	})

	// Routes
	routes.Setup(app, cfg, holder, h)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	close(cleanupDone)
	if dbLogHandler != nil {
		dbLogHandler.Stop()
	}
	closeNotifier()
	sentry.Flush(2 * time.Second)
	closeStorage()

	slog.Info("server stopped")
}

// openStorage picks the key-value backend named by STORAGE_DRIVER.
func openStorage(ctx context.Context, cfg *config.Config) (storage.Storage, func(), error) {
	switch cfg.StorageDriver {
	case "postgres":
		if cfg.DBPassword == "" {
			return nil, nil, errors.New("DB_PASSWORD environment variable is required")
		}
		if err := database.Connect(cfg); err != nil {
			return nil, nil, err
		}
		if err := database.Migrate(); err != nil {
			return nil, nil, fmt.Errorf("migration failed: %w", err)
		}
		closeFn := func() {
			if sqlDB, err := database.DB.DB(); err == nil {
				if err := sqlDB.Close(); err != nil {
					slog.Error("database close error", "error", err)
				}
			}
		}
		return storage.NewGorm(database.DB, cfg.StorageKeyPrefix), closeFn, nil

	case "redis":
		client, err := database.ConnectRedis(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			if err := client.Close(); err != nil {
				slog.Error("redis close error", "error", err)
			}
		}
		return storage.NewRedis(client, cfg.StorageKeyPrefix), closeFn, nil

	case "memory", "":
		slog.Warn("using in-memory storage; data is lost on restart")
		return storage.NewMemory(), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

// openNotifier picks the host bridge named by NOTIFY_DRIVER. A bridge that
// cannot be reached degrades to no notifications.
func openNotifier(cfg *config.Config) (notify.Notifier, func()) {
	switch cfg.NotifyDriver {
	case "http":
		return notify.NewHTTPBridge(cfg.NotifyURL), func() {}
	case "mqtt":
		m, err := notify.DialMQTT(cfg.MQTTBroker, cfg.MQTTClientID, cfg.MQTTTopic)
		if err != nil {
			slog.Error("mqtt notifier unavailable", "action", "notify_mqtt", "error", err)
			return notify.Noop{}, func() {}
		}
		return m, m.Close
	default:
		return notify.Noop{}, func() {}
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
