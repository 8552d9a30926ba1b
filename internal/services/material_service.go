package services

import (
	"fmt"

	"bazaar/internal/models"
	"bazaar/internal/repositories"

	"github.com/google/uuid"
)

// MaterialInput is the vendor-editable part of a material.
type MaterialInput struct {
	Name        string  `json:"name" validate:"required,min=2,max=100"`
	Category    string  `json:"category" validate:"required,oneof=Grains Vegetables Spices Oils Meat Dairy Others"`
	Price       float64 `json:"price" validate:"gt=0"`
	Unit        string  `json:"unit" validate:"required,max=16"`
	Quantity    int     `json:"quantity" validate:"gte=0"`
	Description string  `json:"description" validate:"max=500"`
	Image       string  `json:"image" validate:"omitempty,url,max=500"`
}

func (in MaterialInput) apply(m *models.Material) {
	m.Name = in.Name
	m.Category = in.Category
	m.Price = in.Price
	m.Unit = in.Unit
	m.Quantity = in.Quantity
	m.Description = in.Description
	m.Image = in.Image
	m.Normalize()
}

// MaterialService handles the catalog and vendor inventory.
type MaterialService struct {
	repo repositories.MaterialRepository
}

// NewMaterialService creates a new MaterialService.
func NewMaterialService(repo repositories.MaterialRepository) *MaterialService {
	return &MaterialService{repo: repo}
}

// Catalog returns the orderable materials matching search and category.
func (s *MaterialService) Catalog(search, category string) ([]models.Material, error) {
	all, err := s.repo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load materials: %w", err)
	}
	return FilterCatalog(all, search, category), nil
}

// Inventory returns the vendor's own materials matching search and category.
func (s *MaterialService) Inventory(vendor *models.User, search, category string) ([]models.Material, error) {
	if !vendor.IsVendor() {
		return nil, ErrForbidden
	}
	own, err := s.repo.GetByVendor(vendor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load inventory: %w", err)
	}
	return FilterInventory(own, search, category), nil
}

// GetByID retrieves a single material by its ID.
func (s *MaterialService) GetByID(id string) (*models.Material, error) {
	return s.repo.GetByID(id)
}

// Create adds a material owned by the vendor.
func (s *MaterialService) Create(vendor *models.User, in MaterialInput) (*models.Material, error) {
	if !vendor.IsVendor() {
		return nil, ErrForbidden
	}
	m := &models.Material{
		ID:         uuid.New().String(),
		VendorID:   vendor.ID,
		VendorName: vendor.Name,
	}
	in.apply(m)
	if err := s.repo.Create(m); err != nil {
		return nil, fmt.Errorf("failed to create material: %w", err)
	}
	return m, nil
}

// Update replaces the editable fields of one of the vendor's materials.
func (s *MaterialService) Update(vendor *models.User, id string, in MaterialInput) (*models.Material, error) {
	m, err := s.owned(vendor, id)
	if err != nil {
		return nil, err
	}
	in.apply(m)
	if err := s.repo.Update(m); err != nil {
		return nil, fmt.Errorf("failed to update material %s: %w", id, err)
	}
	return m, nil
}

// Delete removes one of the vendor's materials. Orders already placed keep
// their copied material name and price.
func (s *MaterialService) Delete(vendor *models.User, id string) error {
	if _, err := s.owned(vendor, id); err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete material %s: %w", id, err)
	}
	return nil
}

func (s *MaterialService) owned(vendor *models.User, id string) (*models.Material, error) {
	if !vendor.IsVendor() {
		return nil, ErrForbidden
	}
	m, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if m.VendorID != vendor.ID {
		return nil, fmt.Errorf("material %s belongs to another vendor: %w", id, ErrForbidden)
	}
	return m, nil
}
