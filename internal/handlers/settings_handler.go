package handlers

import (
	"github.com/ahmetcoskunkizilkaya/bond-keeper/internal/config"
	"github.com/ahmetcoskunkizilkaya/bond-keeper/internal/notify"
	"github.com/ahmetcoskunkizilkaya/bond-keeper/internal/relationship"
	"github.com/gofiber/fiber/v2"
)

// SettingsHandler exposes the defaults a client needs to render its forms.
type SettingsHandler struct {
	cfg      *config.Config
	notifier notify.Notifier
}

func NewSettingsHandler(cfg *config.Config, notifier notify.Notifier) *SettingsHandler {
	return &SettingsHandler{cfg: cfg, notifier: notifier}
}

func (h *SettingsHandler) GetConfig(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"default_reminder_days":   h.cfg.DefaultReminderDays,
		"upcoming_window_days":    h.cfg.UpcomingWindowDays,
		"notifications_available": h.notifier.Available(),
		"date_types": []relationship.DateType{
			relationship.DateTypeBirthday,
			relationship.DateTypeAnniversary,
			relationship.DateTypeOther,
		},
		"question_types": []relationship.QuestionType{
			relationship.QuestionText,
			relationship.QuestionMultipleChoice,
			relationship.QuestionRating,
		},
	})
}
