package handlers

import (
	"github.com/ahmetcoskunkizilkaya/bond-keeper/internal/dto"
	"github.com/ahmetcoskunkizilkaya/bond-keeper/internal/relationship"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type SurveyHandler struct {
	store *relationship.Store
}

func NewSurveyHandler(store *relationship.Store) *SurveyHandler {
	return &SurveyHandler{store: store}
}

func (h *SurveyHandler) List(c *fiber.Ctx) error {
	return c.JSON(h.store.Surveys())
}

func (h *SurveyHandler) Get(c *fiber.Ctx) error {
	sv, ok := h.store.GetSurveyByID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Survey not found",
		})
	}
	return c.JSON(sv)
}

func (h *SurveyHandler) Create(c *fiber.Ctx) error {
	var req dto.SurveyRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	sv, err := h.store.AddSurvey(c.UserContext(), req.Input())
	if err != nil {
		return storeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(sv)
}

func (h *SurveyHandler) Update(c *fiber.Ctx) error {
	var req dto.SurveyPatchRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	id := c.Params("id")
	if err := h.store.UpdateSurvey(c.UserContext(), id, req.Patch(uuid.NewString)); err != nil {
		return storeError(c, err)
	}
	if sv, ok := h.store.GetSurveyByID(id); ok {
		return c.JSON(sv)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *SurveyHandler) Delete(c *fiber.Ctx) error {
	if err := h.store.DeleteSurvey(c.UserContext(), c.Params("id")); err != nil {
		return storeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddResponse appends one answer to the survey. Unknown surveys are a
// silent no-op.
func (h *SurveyHandler) AddResponse(c *fiber.Ctx) error {
	var req dto.ResponseRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	resp, found, err := h.store.AddResponse(c.UserContext(), c.Params("id"), req.Input())
	if err != nil {
		return storeError(c, err)
	}
	if !found {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}
