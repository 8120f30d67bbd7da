package handlers

import (
	"github.com/ahmetcoskunkizilkaya/bond-keeper/internal/dto"
	"github.com/ahmetcoskunkizilkaya/bond-keeper/internal/relationship"
	"github.com/gofiber/fiber/v2"
)

const maxWindowDays = 366

type DateHandler struct {
	store               *relationship.Store
	defaultReminderDays int
	upcomingWindowDays  int
}

func NewDateHandler(store *relationship.Store, defaultReminderDays, upcomingWindowDays int) *DateHandler {
	return &DateHandler{
		store:               store,
		defaultReminderDays: defaultReminderDays,
		upcomingWindowDays:  upcomingWindowDays,
	}
}

// List returns all important dates, or those matching ?q= by title or
// contact name.
func (h *DateHandler) List(c *fiber.Ctx) error {
	if q := c.Query("q"); q != "" {
		return c.JSON(h.store.SearchImportantDates(q))
	}
	return c.JSON(h.store.ImportantDates())
}

// Upcoming lists dates whose this-year occurrence is within ?days= of today.
func (h *DateHandler) Upcoming(c *fiber.Ctx) error {
	days := c.QueryInt("days", h.upcomingWindowDays)
	if days < 0 || days > maxWindowDays {
		return badRequest(c, "days must be between 0 and 366")
	}
	return c.JSON(dto.UpcomingDateResponse{
		Dates:      h.store.UpcomingOccurrences(days),
		WindowDays: days,
	})
}

// Next lists every date by its next occurrence, nearest first.
func (h *DateHandler) Next(c *fiber.Ctx) error {
	return c.JSON(h.store.ListByNextOccurrence())
}

func (h *DateHandler) Reminders(c *fiber.Ctx) error {
	return c.JSON(h.store.DueReminders())
}

func (h *DateHandler) Create(c *fiber.Ctx) error {
	var req dto.ImportantDateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	req.ApplyDefaults(h.defaultReminderDays)
	if err := req.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	date, err := h.store.AddImportantDate(c.UserContext(), req.Input())
	if err != nil {
		return storeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(date)
}

// Update validates the patch against the stored date so the merged result
// keeps a positive reminder lead time. Unknown ids are a silent no-op.
func (h *DateHandler) Update(c *fiber.Ctx) error {
	var req dto.ImportantDatePatchRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	id := c.Params("id")
	current, ok := h.store.GetImportantDateByID(id)
	if !ok {
		if err := req.Validate(); err != nil {
			return badRequest(c, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
	if err := req.ValidateAgainst(current); err != nil {
		return badRequest(c, err.Error())
	}

	if err := h.store.UpdateImportantDate(c.UserContext(), id, req.Patch()); err != nil {
		return storeError(c, err)
	}
	if d, ok := h.store.GetImportantDateByID(id); ok {
		return c.JSON(d)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *DateHandler) Delete(c *fiber.Ctx) error {
	if err := h.store.DeleteImportantDate(c.UserContext(), c.Params("id")); err != nil {
		return storeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
