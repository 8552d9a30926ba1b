package repositories

import (
	"time"

	"bazaar/internal/models"
)

// OrderRepository defines the interface for order data access.
// Orders are never deleted, only moved to a terminal status.
type OrderRepository interface {
	GetAll() ([]models.Order, error)
	GetByID(id string) (*models.Order, error)
	GetByVendor(vendorID string) ([]models.Order, error)
	GetByServiceProvider(serviceProviderID string) ([]models.Order, error)
	// CreateBatch stores all orders or none of them.
	CreateBatch(orders []*models.Order) error
	// UpdateStatus moves an order from one status to another and fails with
	// ErrStatusConflict when the stored status is no longer from.
	UpdateStatus(id string, from, to models.OrderStatus, deliveryDate *time.Time) (*models.Order, error)
}
