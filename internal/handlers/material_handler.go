package handlers

import (
	"log"

	"bazaar/internal/applog"
	"bazaar/internal/middleware"
	"bazaar/internal/models"
	"bazaar/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// MaterialHandler handles HTTP requests for the catalog and vendor inventory.
type MaterialHandler struct {
	service  *services.MaterialService
	validate *validator.Validate
}

// NewMaterialHandler creates a new MaterialHandler.
func NewMaterialHandler(service *services.MaterialService) *MaterialHandler {
	return &MaterialHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the material routes on an authenticated router.
func (h *MaterialHandler) RegisterRoutes(router fiber.Router) {
	vendorOnly := middleware.RequireRole(models.UserTypeVendor)

	router.Get("/categories", h.HandleGetCategories)
	router.Get("/inventory", vendorOnly, h.HandleGetInventory)

	materialRoutes := router.Group("/materials")
	materialRoutes.Get("/", h.HandleGetMaterials)
	materialRoutes.Get("/:id", h.HandleGetMaterialByID)
	materialRoutes.Post("/", vendorOnly, h.HandleCreateMaterial)
	materialRoutes.Put("/:id", vendorOnly, h.HandleUpdateMaterial)
	materialRoutes.Delete("/:id", vendorOnly, h.HandleDeleteMaterial)
}

// HandleGetCategories lists the material categories.
func (h *MaterialHandler) HandleGetCategories(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"categories": models.Categories})
}

// HandleGetMaterials returns the filtered catalog.
func (h *MaterialHandler) HandleGetMaterials(c *fiber.Ctx) error {
	materials, err := h.service.Catalog(c.Query("search"), c.Query("category"))
	if err != nil {
		log.Printf("Error getting catalog: %v", err)
		return errorResponse(c, "Could not retrieve materials", err)
	}
	return c.JSON(materials)
}

// HandleGetInventory returns the caller's own materials.
func (h *MaterialHandler) HandleGetInventory(c *fiber.Ctx) error {
	materials, err := h.service.Inventory(middleware.CurrentUser(c), c.Query("search"), c.Query("category"))
	if err != nil {
		log.Printf("Error getting inventory: %v", err)
		return errorResponse(c, "Could not retrieve inventory", err)
	}
	return c.JSON(materials)
}

// HandleGetMaterialByID retrieves a single material by its ID.
func (h *MaterialHandler) HandleGetMaterialByID(c *fiber.Ctx) error {
	id := c.Params("id")
	material, err := h.service.GetByID(id)
	if err != nil {
		log.Printf("Error getting material by ID %s: %v", id, err)
		return errorResponse(c, "Could not retrieve material", err)
	}
	return c.JSON(material)
}

// parseInput decodes and validates the body into in. When it reports false
// the 400 response has already been written.
func (h *MaterialHandler) parseInput(c *fiber.Ctx, in *services.MaterialInput) (bool, error) {
	if err := c.BodyParser(in); err != nil {
		log.Printf("Error parsing material request body: %v", err)
		return false, invalidBody(c, err)
	}
	if err := h.validate.Struct(in); err != nil {
		return false, validationFailed(c, err)
	}
	return true, nil
}

// HandleCreateMaterial adds a material to the caller's inventory.
func (h *MaterialHandler) HandleCreateMaterial(c *fiber.Ctx) error {
	var in services.MaterialInput
	if ok, err := h.parseInput(c, &in); !ok {
		return err
	}
	material, err := h.service.Create(middleware.CurrentUser(c), in)
	if err != nil {
		log.Printf("Error creating material: %v", err)
		return errorResponse(c, "Could not create material", err)
	}
	applog.Audit(c, "material.create", map[string]any{"material_id": material.ID})
	return c.Status(fiber.StatusCreated).JSON(material)
}

// HandleUpdateMaterial replaces the editable fields of a material.
func (h *MaterialHandler) HandleUpdateMaterial(c *fiber.Ctx) error {
	id := c.Params("id")
	var in services.MaterialInput
	if ok, err := h.parseInput(c, &in); !ok {
		return err
	}
	material, err := h.service.Update(middleware.CurrentUser(c), id, in)
	if err != nil {
		log.Printf("Error updating material %s: %v", id, err)
		return errorResponse(c, "Could not update material", err)
	}
	applog.Audit(c, "material.update", map[string]any{"material_id": id})
	return c.JSON(material)
}

// HandleDeleteMaterial removes a material. The request must carry confirm=true.
func (h *MaterialHandler) HandleDeleteMaterial(c *fiber.Ctx) error {
	id := c.Params("id")
	if c.Query("confirm") != "true" {
		return c.Status(fiber.StatusPreconditionRequired).JSON(fiber.Map{
			"message": "Deleting a material must be confirmed with confirm=true",
		})
	}
	if err := h.service.Delete(middleware.CurrentUser(c), id); err != nil {
		log.Printf("Error deleting material %s: %v", id, err)
		return errorResponse(c, "Could not delete material", err)
	}
	applog.Audit(c, "material.delete", map[string]any{"material_id": id})
	return c.SendStatus(fiber.StatusNoContent)
}
