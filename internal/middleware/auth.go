package middleware

import (
	"errors"
	"strings"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/notehive/notehive-backend/internal/config"
	"github.com/notehive/notehive-backend/internal/dto"
)

// JWTProtected verifies the bearer token and attaches the parsed token to
// c.Locals("user"). Missing, expired and otherwise invalid tokens each get
// their own message; expiry is distinguished so clients know to refresh.
func JWTProtected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			message := "Unauthorized: invalid token"
			switch {
			case errors.Is(err, jwtware.ErrJWTMissingOrMalformed):
				message = "Unauthorized: missing or malformed token"
			case errors.Is(err, jwt.ErrTokenExpired) || strings.Contains(err.Error(), "expired"):
				message = "Unauthorized: token expired"
			}
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error:   true,
				Message: message,
			})
		},
	})
}
