package api

import (
	"strings"

	"github.com/example/task-manager-api/modules/auth"
	"github.com/gofiber/fiber/v2"
)

// userIDKey is the Fiber locals key holding the authenticated user id.
const userIDKey = "user_id"

// AuthMiddleware requires a valid bearer token and stores its user id in the
// request locals.
func AuthMiddleware(authPort auth.AuthPort) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return unauthorized(c, "Authorization header is required")
		}
		if !strings.HasPrefix(header, "Bearer ") {
			return unauthorized(c, "Invalid authorization header format. Use: Bearer <token>")
		}
		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if token == "" {
			return unauthorized(c, "Token is required")
		}

		claims, err := authPort.ValidateToken(c.UserContext(), token)
		if err != nil {
			return unauthorized(c, "Invalid or expired token")
		}

		c.Locals(userIDKey, claims.UserID)
		return c.Next()
	}
}

// currentUser returns the id stored by AuthMiddleware.
func currentUser(c *fiber.Ctx) uint {
	id, _ := c.Locals(userIDKey).(uint)
	return id
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
		Error:   "unauthorized",
		Message: message,
	})
}
