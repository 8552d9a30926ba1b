package repositories

import (
	"errors"
	"fmt"

	"bazaar/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMMaterialRepository is a GORM implementation of MaterialRepository.
type GORMMaterialRepository struct {
	db *gorm.DB
}

// NewGORMMaterialRepository creates a new instance of GORMMaterialRepository.
func NewGORMMaterialRepository(db *gorm.DB) *GORMMaterialRepository {
	return &GORMMaterialRepository{
		db: db,
	}
}

// GetAll retrieves all materials from the database.
func (r *GORMMaterialRepository) GetAll() ([]models.Material, error) {
	var materials []models.Material
	if err := r.db.Order("created_at, id").Find(&materials).Error; err != nil {
		return nil, fmt.Errorf("failed to get all materials: %w", err)
	}
	return materials, nil
}

// GetByVendor retrieves the materials owned by a vendor.
func (r *GORMMaterialRepository) GetByVendor(vendorID string) ([]models.Material, error) {
	var materials []models.Material
	if err := r.db.Where("vendor_id = ?", vendorID).Order("created_at, id").Find(&materials).Error; err != nil {
		return nil, fmt.Errorf("failed to get materials for vendor %s: %w", vendorID, err)
	}
	return materials, nil
}

// GetByID retrieves a single material by its ID from the database.
func (r *GORMMaterialRepository) GetByID(id string) (*models.Material, error) {
	var material models.Material
	if err := r.db.First(&material, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("material with ID %s %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get material by ID %s: %w", id, err)
	}
	return &material, nil
}

// Create creates a new material in the database.
func (r *GORMMaterialRepository) Create(material *models.Material) error {
	if material.ID == "" {
		material.ID = uuid.New().String()
	}
	material.Normalize()
	if err := r.db.Create(material).Error; err != nil {
		return fmt.Errorf("failed to create material: %w", err)
	}
	return nil
}

// Update updates an existing material in the database.
func (r *GORMMaterialRepository) Update(material *models.Material) error {
	material.Normalize()
	res := r.db.Model(&models.Material{}).Where("id = ?", material.ID).Select("*").Omit("created_at").Updates(material)
	if res.Error != nil {
		return fmt.Errorf("failed to update material: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("material with ID %s %w for update", material.ID, ErrNotFound)
	}
	return nil
}

// Delete deletes a material by its ID from the database.
func (r *GORMMaterialRepository) Delete(id string) error {
	res := r.db.Delete(&models.Material{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete material: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("material with ID %s %w for deletion", id, ErrNotFound)
	}
	return nil
}
