package handlers

import (
	"errors"
	"log"

	"bazaar/internal/applog"
	"bazaar/internal/middleware"
	"bazaar/internal/models"
	"bazaar/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService *services.AuthService
	limiter     *middleware.RateLimiter
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler. limiter may be nil.
func NewAuthHandler(authService *services.AuthService, limiter *middleware.RateLimiter) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		limiter:     limiter,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	if h.limiter != nil {
		authRoutes.Post("/login", h.limiter.Limit(), h.HandleLogin)
	} else {
		authRoutes.Post("/login", h.HandleLogin)
	}
	authRoutes.Post("/logout", middleware.AuthRequired(h.authService), h.HandleLogout)
	authRoutes.Get("/me", middleware.AuthRequired(h.authService), h.HandleMe)
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=vendor service_provider"`
}

// HandleLogin authenticates a user and issues a JWT token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing login request body: %v", err)
		return invalidBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	session, token, err := h.authService.Login(req.Email, req.Password, models.UserType(req.Role))
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			applog.Security(c, "auth.login_failed", map[string]any{"email": req.Email, "role": req.Role})
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Invalid email, password or role",
			})
		}
		log.Printf("Error during login for %s: %v", req.Email, err)
		return errorResponse(c, "Authentication failed", err)
	}

	c.Locals(applog.LocalsKey, session)
	applog.Audit(c, "auth.login", nil)
	return c.JSON(fiber.Map{
		"success": true,
		"user":    session.User,
		"token":   token,
	})
}

// HandleLogout revokes the caller's token.
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	session := middleware.CurrentSession(c)
	applog.Audit(c, "auth.logout", nil)
	if err := h.authService.Logout(session); err != nil {
		log.Printf("Error during logout: %v", err)
		return errorResponse(c, "Logout failed", err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Logged out",
	})
}

// HandleMe returns the signed-in user.
func (h *AuthHandler) HandleMe(c *fiber.Ctx) error {
	session := middleware.CurrentSession(c)
	return c.JSON(fiber.Map{
		"user":      session.User,
		"expiresAt": session.ExpiresAt,
	})
}
