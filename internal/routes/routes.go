package routes

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/bond-keeper/internal/config"
	"github.com/ahmetcoskunkizilkaya/bond-keeper/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/bond-keeper/internal/identity"
	"github.com/ahmetcoskunkizilkaya/bond-keeper/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

type Handlers struct {
	Auth         *handlers.AuthHandler
	Health       *handlers.HealthHandler
	Legal        *handlers.LegalHandler
	Settings     *handlers.SettingsHandler
	Contact      *handlers.ContactHandler
	Date         *handlers.DateHandler
	Survey       *handlers.SurveyHandler
	Export       *handlers.ExportHandler
	Notification *handlers.NotificationHandler
}

func Setup(app *fiber.App, cfg *config.Config, holder *identity.Holder, h Handlers) {
	api := app.Group("/api")

	// General API rate limiter: 120 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               120,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", h.Health.Check)
	api.Get("/config", h.Settings.GetConfig)
	api.Get("/legal/privacy", h.Legal.PrivacyPolicy)
	api.Get("/legal/terms", h.Legal.TermsOfService)

	// Auth: stricter rate limit, 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/google", h.Auth.GoogleSignIn)
	auth.Post("/signin", h.Auth.SignIn)
	auth.Get("/me", h.Auth.Me)

	// Everything below needs a session token for the signed-in identity.
	protected := middleware.Protected(cfg, holder)

	auth.Post("/signout", append(protected, h.Auth.SignOut)...)

	contacts := api.Group("/contacts", protected...)
	contacts.Get("/", h.Contact.List)
	contacts.Post("/", h.Contact.Create)
	contacts.Get("/:id", h.Contact.Get)
	contacts.Put("/:id", h.Contact.Update)
	contacts.Delete("/:id", h.Contact.Delete)

	dates := api.Group("/dates", protected...)
	dates.Get("/", h.Date.List)
	dates.Post("/", h.Date.Create)
	dates.Get("/upcoming", h.Date.Upcoming)
	dates.Get("/next", h.Date.Next)
	dates.Get("/reminders", h.Date.Reminders)
	dates.Put("/:id", h.Date.Update)
	dates.Delete("/:id", h.Date.Delete)

	surveys := api.Group("/surveys", protected...)
	surveys.Get("/", h.Survey.List)
	surveys.Post("/", h.Survey.Create)
	surveys.Get("/:id", h.Survey.Get)
	surveys.Put("/:id", h.Survey.Update)
	surveys.Delete("/:id", h.Survey.Delete)
	surveys.Post("/:id/responses", h.Survey.AddResponse)

	api.Get("/export", append(protected, h.Export.Download)...)

	notifications := api.Group("/notifications", protected...)
	notifications.Post("/test", h.Notification.Test)
	notifications.Post("/reminders", h.Notification.Reminders)
}
