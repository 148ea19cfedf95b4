package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/biosecret/todo-api/models"
)

const userIdentityKey = "user_identity"

// TokenVerifier xác thực bearer token, không truy cập database
type TokenVerifier interface {
	Verify(token string) (models.UserIdentity, error)
}

// JWTMiddleware xác thực access token và lưu danh tính user vào context
func JWTMiddleware(verifier TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Lấy token từ header Authorization
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return unauthorized(c, "missing token")
		}

		// Tách từ "Bearer <token>"
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return unauthorized(c, "invalid token format")
		}

		identity, err := verifier.Verify(strings.TrimSpace(tokenString))
		if err != nil {
			return unauthorized(c, "invalid or expired token")
		}

		c.Locals(userIdentityKey, identity)
		return c.Next()
	}
}

// CurrentUser lấy danh tính đã được JWTMiddleware lưu
func CurrentUser(c *fiber.Ctx) (models.UserIdentity, bool) {
	identity, ok := c.Locals(userIdentityKey).(models.UserIdentity)
	return identity, ok && identity.UserID != ""
}

func unauthorized(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": msg})
}
