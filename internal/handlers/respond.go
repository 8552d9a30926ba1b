package handlers

import (
	"errors"
	"fmt"

	"bazaar/internal/applog"
	"bazaar/internal/models"
	"bazaar/internal/repositories"
	"bazaar/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrInvalidCredentials), errors.Is(err, services.ErrInvalidToken):
		return fiber.StatusUnauthorized
	case errors.Is(err, services.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, repositories.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, models.ErrInvalidTransition),
		errors.Is(err, repositories.ErrStatusConflict),
		errors.Is(err, services.ErrNotDelivered):
		return fiber.StatusConflict
	case errors.Is(err, services.ErrInsufficientStock), errors.Is(err, services.ErrEmptyCart):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, models.ErrInvalidQuantity):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// errorResponse writes err with its mapped status. Unexpected failures are
// also recorded in the audit log.
func errorResponse(c *fiber.Ctx, message string, err error) error {
	status := statusFor(err)
	if status >= fiber.StatusInternalServerError {
		applog.Error(c, "request.failed", err, map[string]any{"status": status})
	}
	return c.Status(status).JSON(fiber.Map{
		"message": message,
		"error":   err.Error(),
	})
}

func invalidBody(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Invalid request body",
		"error":   err.Error(),
	})
}

// validationFailed reports every failed field of a validator error.
func validationFailed(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return invalidBody(c, err)
	}
	errorMessages := make(map[string]string)
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errorMessages,
	})
}
