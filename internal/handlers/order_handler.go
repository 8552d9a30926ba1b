package handlers

import (
	"fmt"
	"log"
	"time"

	"bazaar/internal/applog"
	"bazaar/internal/middleware"
	"bazaar/internal/models"
	"bazaar/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service  *services.OrderService
	carts    *services.CartService
	receipts *services.ReceiptService
	validate *validator.Validate
	now      func() time.Time
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService, carts *services.CartService, receipts *services.ReceiptService) *OrderHandler {
	return &OrderHandler{
		service:  service,
		carts:    carts,
		receipts: receipts,
		validate: validator.New(),
		now:      time.Now,
	}
}

// RegisterRoutes registers the order routes on an authenticated router.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/", h.HandleGetOrders)
	orderRoutes.Post("/", middleware.RequireRole(models.UserTypeServiceProvider), h.HandleCheckout)
	orderRoutes.Get("/:id", h.HandleGetOrderByID)
	orderRoutes.Get("/:id/transitions", h.HandleGetTransitions)
	orderRoutes.Patch("/:id/status", h.HandleUpdateOrderStatus)
	orderRoutes.Get("/:id/receipt", h.HandleGetReceipt)
}

// HandleGetOrders lists the caller's orders, filtered by search, status,
// window and active. Active listings carry delivery estimates.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	filter := services.OrderFilter{
		Search:     c.Query("search"),
		Status:     models.OrderStatus(c.Query("status")),
		Window:     services.DateWindow(c.Query("window")),
		ActiveOnly: c.Query("active") == "true",
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": fmt.Sprintf("Unknown status filter %q", filter.Status),
		})
	}
	if !filter.Window.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": fmt.Sprintf("Unknown window %q", filter.Window),
		})
	}

	orders, err := h.service.ListForUser(user)
	if err != nil {
		log.Printf("Error getting orders for %s: %v", user.ID, err)
		return errorResponse(c, "Could not retrieve orders", err)
	}
	filtered := services.FilterOrders(orders, user.Type, filter, h.now())
	stats := services.ComputeOrderStats(filtered)
	if filter.ActiveOnly {
		return c.JSON(fiber.Map{"orders": services.Track(filtered), "stats": stats})
	}
	return c.JSON(fiber.Map{"orders": filtered, "stats": stats})
}

// HandleCheckout turns the caller's cart into orders.
func (h *OrderHandler) HandleCheckout(c *fiber.Ctx) error {
	result, err := h.carts.Checkout(middleware.CurrentUser(c))
	if err != nil {
		log.Printf("Error during checkout: %v", err)
		return errorResponse(c, "Could not place orders", err)
	}
	applog.Audit(c, "order.checkout", map[string]any{"orders": len(result.Orders), "vendors": result.VendorCount})
	return c.Status(fiber.StatusCreated).JSON(result)
}

// HandleGetOrderByID retrieves a single order by its ID.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	orderID := c.Params("id")
	order, err := h.service.GetForUser(middleware.CurrentUser(c), orderID)
	if err != nil {
		log.Printf("Error getting order by ID %s: %v", orderID, err)
		return errorResponse(c, "Could not retrieve order", err)
	}
	return c.JSON(order)
}

// HandleGetTransitions lists the statuses the caller may move the order to.
func (h *OrderHandler) HandleGetTransitions(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	order, err := h.service.GetForUser(user, c.Params("id"))
	if err != nil {
		return errorResponse(c, "Could not retrieve order", err)
	}
	return c.JSON(fiber.Map{
		"status":  order.Status,
		"allowed": h.service.AllowedTransitions(user, order),
	})
}

// UpdateStatusRequest represents the request body for a status change.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// HandleUpdateOrderStatus moves an order through its lifecycle.
func (h *OrderHandler) HandleUpdateOrderStatus(c *fiber.Ctx) error {
	orderID := c.Params("id")
	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing request body for status update: %v", err)
		return invalidBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	order, err := h.service.UpdateStatus(middleware.CurrentUser(c), orderID, models.OrderStatus(req.Status))
	if err != nil {
		log.Printf("Error updating order status for order %s: %v", orderID, err)
		return errorResponse(c, "Could not update order status", err)
	}
	applog.Audit(c, "order.transition", map[string]any{"order_id": orderID, "status": order.Status})
	return c.JSON(order)
}

// HandleGetReceipt streams the PDF receipt of a delivered order.
func (h *OrderHandler) HandleGetReceipt(c *fiber.Ctx) error {
	orderID := c.Params("id")
	pdf, err := h.receipts.Receipt(middleware.CurrentUser(c), orderID)
	if err != nil {
		log.Printf("Error building receipt for order %s: %v", orderID, err)
		return errorResponse(c, "Could not build receipt", err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=receipt-%s.pdf", orderID))
	return c.Send(pdf)
}
