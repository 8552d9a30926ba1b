package repositories

import (
	"errors"
	"fmt"
	"time"

	"bazaar/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{
		db: db,
	}
}

// GetAll retrieves all orders, newest first.
func (r *GORMOrderRepository) GetAll() ([]models.Order, error) {
	return r.find("failed to get all orders", r.db)
}

// GetByVendor retrieves the orders placed with a vendor.
func (r *GORMOrderRepository) GetByVendor(vendorID string) ([]models.Order, error) {
	return r.find("failed to get orders for vendor "+vendorID, r.db.Where("vendor_id = ?", vendorID))
}

// GetByServiceProvider retrieves the orders placed by a service provider.
func (r *GORMOrderRepository) GetByServiceProvider(serviceProviderID string) ([]models.Order, error) {
	return r.find("failed to get orders for service provider "+serviceProviderID, r.db.Where("service_provider_id = ?", serviceProviderID))
}

// GetByID retrieves a single order by its ID.
func (r *GORMOrderRepository) GetByID(id string) (*models.Order, error) {
	var order models.Order
	if err := r.db.First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order with ID %s %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get order by ID %s: %w", id, err)
	}
	return &order, nil
}

// CreateBatch inserts the orders in one transaction.
func (r *GORMOrderRepository) CreateBatch(orders []*models.Order) error {
	if len(orders) == 0 {
		return nil
	}
	now := time.Now()
	for _, order := range orders {
		if order.ID == "" {
			order.ID = uuid.New().String()
		}
		if order.OrderDate.IsZero() {
			order.OrderDate = now
		}
	}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		for _, order := range orders {
			if err := tx.Create(order).Error; err != nil {
				return fmt.Errorf("order %s: %w", order.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to create orders: %w", err)
	}
	return nil
}

// UpdateStatus performs a conditional update on the current status.
func (r *GORMOrderRepository) UpdateStatus(id string, from, to models.OrderStatus, deliveryDate *time.Time) (*models.Order, error) {
	updates := map[string]interface{}{"status": to}
	if deliveryDate != nil {
		updates["delivery_date"] = *deliveryDate
	}
	res := r.db.Model(&models.Order{}).Where("id = ? AND status = ?", id, from).Updates(updates)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update order status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		current, err := r.GetByID(id)
		if err != nil {
			return nil, fmt.Errorf("order with ID %s %w for status update", id, ErrNotFound)
		}
		return nil, fmt.Errorf("order %s is %s, expected %s: %w", id, current.Status, from, ErrStatusConflict)
	}
	return r.GetByID(id)
}

func (r *GORMOrderRepository) find(msg string, q *gorm.DB) ([]models.Order, error) {
	var orders []models.Order
	if err := q.Order("order_date DESC, id").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("%s: %w", msg, err)
	}
	return orders, nil
}
