package handlers

import (
	"github.com/ahmetcoskunkizilkaya/bond-keeper/internal/dto"
	"github.com/ahmetcoskunkizilkaya/bond-keeper/internal/relationship"
	"github.com/gofiber/fiber/v2"
)

type ContactHandler struct {
	store *relationship.Store
}

func NewContactHandler(store *relationship.Store) *ContactHandler {
	return &ContactHandler{store: store}
}

// List returns all contacts, or those matching ?q= by name or relationship.
func (h *ContactHandler) List(c *fiber.Ctx) error {
	if q := c.Query("q"); q != "" {
		return c.JSON(h.store.SearchContacts(q))
	}
	return c.JSON(h.store.Contacts())
}

func (h *ContactHandler) Get(c *fiber.Ctx) error {
	contact, ok := h.store.GetContactByID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Contact not found",
		})
	}
	return c.JSON(contact)
}

func (h *ContactHandler) Create(c *fiber.Ctx) error {
	var req dto.ContactRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	contact, err := h.store.AddContact(c.UserContext(), req.Input())
	if err != nil {
		return storeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(contact)
}

// Update merges the sent fields. Unknown ids are a silent no-op.
func (h *ContactHandler) Update(c *fiber.Ctx) error {
	var req dto.ContactPatchRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	id := c.Params("id")
	if err := h.store.UpdateContact(c.UserContext(), id, req.Patch()); err != nil {
		return storeError(c, err)
	}
	if contact, ok := h.store.GetContactByID(id); ok {
		return c.JSON(contact)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Delete removes the contact along with its important dates.
func (h *ContactHandler) Delete(c *fiber.Ctx) error {
	if err := h.store.DeleteContact(c.UserContext(), c.Params("id")); err != nil {
		return storeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
