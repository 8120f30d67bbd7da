package handlers

import (
	"context"
	"time"

	"github.com/ahmetcoskunkizilkaya/bond-keeper/internal/dto"
	"github.com/ahmetcoskunkizilkaya/bond-keeper/internal/notify"
	"github.com/ahmetcoskunkizilkaya/bond-keeper/internal/storage"
	"github.com/gofiber/fiber/v2"
)

type HealthHandler struct {
	kv       storage.Storage
	driver   string
	notifier notify.Notifier
}

func NewHealthHandler(kv storage.Storage, driver string, notifier notify.Notifier) *HealthHandler {
	return &HealthHandler{kv: kv, driver: driver, notifier: notifier}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	status, storageStatus := "ok", "ok"
	if err := h.kv.Ping(ctx); err != nil {
		status = "degraded"
		storageStatus = "unhealthy: " + err.Error()
	}

	return c.JSON(dto.HealthResponse{
		Status:        status,
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		Storage:       storageStatus,
		StorageDriver: h.driver,
		Notifications: h.notifier.Available(),
	})
}
