package handlers

import (
	"github.com/ahmetcoskunkizilkaya/bond-keeper/internal/dto"
	"github.com/ahmetcoskunkizilkaya/bond-keeper/internal/notify"
	"github.com/ahmetcoskunkizilkaya/bond-keeper/internal/relationship"
	"github.com/gofiber/fiber/v2"
)

type NotificationHandler struct {
	store    *relationship.Store
	notifier notify.Notifier
}

func NewNotificationHandler(store *relationship.Store, notifier notify.Notifier) *NotificationHandler {
	return &NotificationHandler{store: store, notifier: notifier}
}

// Test sends a fixed notification so the user can check the host bridge.
func (h *NotificationHandler) Test(c *fiber.Ctx) error {
	if !h.notifier.Available() {
		return c.JSON(dto.ReminderDispatchResponse{Available: false})
	}
	h.notifier.Notify(c.UserContext(), notify.Notification{
		Title: "Bond Keeper",
		Body:  "Notifications are working.",
	})
	return c.JSON(dto.ReminderDispatchResponse{Available: true, Sent: 1})
}

// Reminders notifies about every date whose reminder is due.
func (h *NotificationHandler) Reminders(c *fiber.Ctx) error {
	sent := notify.Reminders(c.UserContext(), h.notifier, h.store.DueReminders())
	return c.JSON(dto.ReminderDispatchResponse{
		Available: h.notifier.Available(),
		Sent:      sent,
	})
}
