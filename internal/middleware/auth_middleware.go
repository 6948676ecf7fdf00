package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"lightbnb_backend/pkg/utils/jwt"
)

// UserKey is the fiber.Ctx local holding the caller's *jwt.Claims.
const UserKey = "user"

// AuthMiddleware rejects requests without a valid bearer token.
func AuthMiddleware(issuer *jwt.Issuer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing authorization token",
			})
		}

		claims, err := issuer.ValidateToken(tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired token",
			})
		}

		c.Locals(UserKey, claims)
		return c.Next()
	}
}

// CurrentUser returns the claims stored by AuthMiddleware.
func CurrentUser(c *fiber.Ctx) (*jwt.Claims, bool) {
	claims, ok := c.Locals(UserKey).(*jwt.Claims)
	return claims, ok
}
