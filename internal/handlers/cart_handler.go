package handlers

import (
	"log"

	"bazaar/internal/middleware"
	"bazaar/internal/models"
	"bazaar/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for the service provider's cart.
type CartHandler struct {
	service  *services.CartService
	validate *validator.Validate
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the cart routes on an authenticated router.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart", middleware.RequireRole(models.UserTypeServiceProvider))
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Post("/items", h.HandleAddItem)
	cartRoutes.Patch("/items/:materialId", h.HandleUpdateItem)
	cartRoutes.Delete("/items/:materialId", h.HandleRemoveItem)
}

// AddItemRequest represents the request body for adding to the cart.
type AddItemRequest struct {
	MaterialID string `json:"materialId" validate:"required"`
	Quantity   int    `json:"quantity"`
}

// HandleGetCart returns the caller's cart.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	view, err := h.service.View(middleware.CurrentUser(c))
	if err != nil {
		return errorResponse(c, "Could not retrieve cart", err)
	}
	return c.JSON(view)
}

// HandleAddItem adds a material to the cart.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	var req AddItemRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}
	view, err := h.service.AddItem(middleware.CurrentUser(c), req.MaterialID, req.Quantity)
	if err != nil {
		log.Printf("Error adding %s to cart: %v", req.MaterialID, err)
		return errorResponse(c, "Could not add to cart", err)
	}
	return c.JSON(view)
}

// HandleUpdateItem sets the quantity of a cart line; zero or less removes it.
func (h *CartHandler) HandleUpdateItem(c *fiber.Ctx) error {
	materialID := c.Params("materialId")
	var req struct {
		Quantity *int `json:"quantity"`
	}
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, err)
	}
	if req.Quantity == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Quantity is required for a cart update.",
		})
	}
	view, err := h.service.UpdateItem(middleware.CurrentUser(c), materialID, *req.Quantity)
	if err != nil {
		log.Printf("Error updating cart line %s: %v", materialID, err)
		return errorResponse(c, "Could not update cart", err)
	}
	return c.JSON(view)
}

// HandleRemoveItem drops a material from the cart.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	materialID := c.Params("materialId")
	view, err := h.service.RemoveItem(middleware.CurrentUser(c), materialID)
	if err != nil {
		return errorResponse(c, "Could not remove from cart", err)
	}
	return c.JSON(view)
}
