package handlers

import (
	"log"

	"bazaar/internal/middleware"
	"bazaar/internal/models"
	"bazaar/internal/services"

	"github.com/gofiber/fiber/v2"
)

// AnalyticsHandler serves the vendor dashboard summary.
type AnalyticsHandler struct {
	service *services.AnalyticsService
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(service *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

// RegisterRoutes registers the analytics route on an authenticated router.
func (h *AnalyticsHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/analytics", middleware.RequireRole(models.UserTypeVendor), h.HandleGetAnalytics)
}

// HandleGetAnalytics returns the analytics of ?vendorId=, defaulting to the caller.
func (h *AnalyticsHandler) HandleGetAnalytics(c *fiber.Ctx) error {
	analytics, err := h.service.ForVendor(middleware.CurrentUser(c), c.Query("vendorId"))
	if err != nil {
		log.Printf("Error computing analytics: %v", err)
		return errorResponse(c, "Could not compute analytics", err)
	}
	return c.JSON(analytics)
}
