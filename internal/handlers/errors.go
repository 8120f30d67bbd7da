package handlers

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/bond-keeper/internal/dto"
	"github.com/ahmetcoskunkizilkaya/bond-keeper/internal/relationship"
	"github.com/gofiber/fiber/v2"
)

type validatable interface {
	Validate() error
}

// parseBody decodes and validates the request body. On failure the 400
// response has already been written and ok is false.
func parseBody(c *fiber.Ctx, req validatable) (ok bool, err error) {
	if err := c.BodyParser(req); err != nil {
		return false, badRequest(c, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return false, badRequest(c, err.Error())
	}
	return true, nil
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: true, Message: msg,
	})
}

// storeError maps store failures to a response. Persistence details stay in
// the logs.
func storeError(c *fiber.Ctx, err error) error {
	if errors.Is(err, relationship.ErrNoIdentity) {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "No user is signed in",
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: "Failed to save changes",
	})
}
