package middleware

import (
	"github.com/ahmetcoskunkizilkaya/bond-keeper/internal/config"
	"github.com/ahmetcoskunkizilkaya/bond-keeper/internal/dto"
	"github.com/ahmetcoskunkizilkaya/bond-keeper/internal/identity"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
)

func JWTProtected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error:   true,
				Message: "Unauthorized: invalid or expired token",
			})
		},
	})
}

// ActiveIdentity rejects tokens issued for anyone but the signed-in identity.
// A token outlives a sign-out or a switch to another user; the store does not.
func ActiveIdentity(holder *identity.Holder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sub, err := GetUserID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error:   true,
				Message: "Unauthorized: " + err.Error(),
			})
		}

		current := holder.Current()
		if current == nil || current.ID != sub {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error:   true,
				Message: "Unauthorized: session is not signed in",
			})
		}

		c.Locals(userIDKey, sub)
		return c.Next()
	}
}

// Protected chains token verification and the active identity check.
func Protected(cfg *config.Config, holder *identity.Holder) []fiber.Handler {
	return []fiber.Handler{JWTProtected(cfg), ActiveIdentity(holder)}
}
