package middleware

import (
	"log"
	"strings"

	"bazaar/internal/applog"
	"bazaar/internal/models"
	"bazaar/internal/services"

	"github.com/gofiber/fiber/v2"
)

// AuthRequired is a Fiber middleware that rebuilds the caller's session from
// the bearer token and stores it in the context.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header is required",
			})
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header format must be 'Bearer <token>'",
			})
		}

		session, err := authService.Authenticate(parts[1])
		if err != nil {
			log.Printf("JWT validation failed: %v", err)
			applog.Security(c, "auth.token_rejected", nil)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
				"error":   err.Error(),
			})
		}

		c.Locals(applog.LocalsKey, session)
		c.Locals("user_id", session.User.ID)
		c.Locals("role", string(session.User.Type))
		return c.Next()
	}
}

// CurrentSession returns the session stored by AuthRequired.
func CurrentSession(c *fiber.Ctx) *services.Session {
	session, _ := c.Locals(applog.LocalsKey).(*services.Session)
	return session
}

// CurrentUser returns the signed-in user, or nil outside AuthRequired.
func CurrentUser(c *fiber.Ctx) *models.User {
	if session := CurrentSession(c); session != nil {
		return &session.User
	}
	return nil
}

// RequireRole rejects callers whose role is not listed.
func RequireRole(roles ...models.UserType) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user != nil {
			for _, role := range roles {
				if user.Type == role {
					return c.Next()
				}
			}
		}
		applog.Security(c, "auth.role_denied", map[string]any{"required": roles})
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "This action is not available for your role",
		})
	}
}
