package handlers

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/bond-keeper/internal/dto"
	"github.com/ahmetcoskunkizilkaya/bond-keeper/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) GoogleSignIn(c *fiber.Ctx) error {
	var req dto.GoogleSignInRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Credential == "" {
		return badRequest(c, "Credential is required")
	}

	resp, err := h.authService.GoogleSignIn(c.UserContext(), req.Credential)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredential) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Invalid Google credential",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to sign in",
		})
	}

	return c.JSON(resp)
}

func (h *AuthHandler) SignIn(c *fiber.Ctx) error {
	var req dto.SignInRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	resp, err := h.authService.SignIn(c.UserContext(), req.Identity())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to sign in",
		})
	}

	return c.JSON(resp)
}

func (h *AuthHandler) SignOut(c *fiber.Ctx) error {
	if err := h.authService.SignOut(c.UserContext()); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to sign out",
		})
	}
	return c.JSON(fiber.Map{"message": "Signed out successfully"})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, err := h.authService.Me()
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "No user is signed in",
		})
	}
	return c.JSON(user)
}
