package repositories

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"bazaar/internal/models"

	"github.com/google/uuid"
)

// MockOrderRepository is an in-memory implementation of OrderRepository.
type MockOrderRepository struct {
	orders map[string]models.Order
	mu     sync.RWMutex
}

// NewMockOrderRepository creates a new instance of MockOrderRepository.
func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{
		orders: make(map[string]models.Order),
	}
}

// GetAll returns all orders, newest first.
func (r *MockOrderRepository) GetAll() ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.list(func(models.Order) bool { return true }), nil
}

// GetByVendor returns the orders placed with a vendor.
func (r *MockOrderRepository) GetByVendor(vendorID string) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.list(func(o models.Order) bool { return o.VendorID == vendorID }), nil
}

// GetByServiceProvider returns the orders placed by a service provider.
func (r *MockOrderRepository) GetByServiceProvider(serviceProviderID string) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.list(func(o models.Order) bool { return o.ServiceProviderID == serviceProviderID }), nil
}

// GetByID returns an order by its ID.
func (r *MockOrderRepository) GetByID(id string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, fmt.Errorf("order with ID %s %w", id, ErrNotFound)
	}
	return &order, nil
}

// CreateBatch adds the orders under a single lock; a duplicate ID rejects the whole batch.
func (r *MockOrderRepository) CreateBatch(orders []*models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[string]bool, len(orders))
	for _, order := range orders {
		if order.ID == "" {
			order.ID = uuid.New().String()
		}
		if _, exists := r.orders[order.ID]; exists || seen[order.ID] {
			return fmt.Errorf("order with ID %s already exists", order.ID)
		}
		seen[order.ID] = true
	}
	now := time.Now()
	for _, order := range orders {
		if order.OrderDate.IsZero() {
			order.OrderDate = now
		}
		order.UpdatedAt = now
		r.orders[order.ID] = *order
	}
	return nil
}

// UpdateStatus updates the status of an order if it is still in the expected status.
func (r *MockOrderRepository) UpdateStatus(id string, from, to models.OrderStatus, deliveryDate *time.Time) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, fmt.Errorf("order with ID %s %w for status update", id, ErrNotFound)
	}
	if order.Status != from {
		return nil, fmt.Errorf("order %s is %s, expected %s: %w", id, order.Status, from, ErrStatusConflict)
	}
	order.Status = to
	if deliveryDate != nil {
		d := *deliveryDate
		order.DeliveryDate = &d
	}
	order.UpdatedAt = time.Now()
	r.orders[id] = order
	return &order, nil
}

func (r *MockOrderRepository) list(keep func(models.Order) bool) []models.Order {
	out := make([]models.Order, 0, len(r.orders))
	for _, o := range r.orders {
		if keep(o) {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].OrderDate.Equal(out[j].OrderDate) {
			return out[i].ID < out[j].ID
		}
		return out[i].OrderDate.After(out[j].OrderDate)
	})
	return out
}
