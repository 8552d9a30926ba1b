package repositories

import (
	"bazaar/internal/models"
)

// MaterialRepository defines the interface for material data access.
type MaterialRepository interface {
	GetAll() ([]models.Material, error)
	GetByID(id string) (*models.Material, error)
	GetByVendor(vendorID string) ([]models.Material, error)
	Create(material *models.Material) error
	Update(material *models.Material) error
	Delete(id string) error
}
