package services

import (
	"fmt"
	"log"
	"time"

	"bazaar/internal/models"
	"bazaar/internal/repositories"
	"bazaar/pkg/events"
)

// OrderService handles reading orders and moving them through their lifecycle.
type OrderService struct {
	orderRepo repositories.OrderRepository
	publisher events.Publisher
	producer  string
	now       func() time.Time
}

// NewOrderService creates a new OrderService. publisher may be nil.
func NewOrderService(orderRepo repositories.OrderRepository, publisher events.Publisher, producer string) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		publisher: publisher,
		producer:  producer,
		now:       time.Now,
	}
}

// ListForUser returns the orders the user sells or buys, newest first.
func (s *OrderService) ListForUser(user *models.User) ([]models.Order, error) {
	switch {
	case user.IsVendor():
		return s.orderRepo.GetByVendor(user.ID)
	case user.IsServiceProvider():
		return s.orderRepo.GetByServiceProvider(user.ID)
	default:
		return nil, ErrForbidden
	}
}

// GetForUser returns an order the user is a party to.
func (s *OrderService) GetForUser(user *models.User, id string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil || !order.InvolvesUser(user.ID) {
		return nil, fmt.Errorf("order %s: %w", id, ErrForbidden)
	}
	return order, nil
}

// AllowedTransitions returns the statuses the user may move the order to.
// The vendor drives the lifecycle; the buyer may only cancel while pending.
func (s *OrderService) AllowedTransitions(user *models.User, order *models.Order) []models.OrderStatus {
	switch {
	case user.IsVendor() && order.VendorID == user.ID:
		return order.Status.AllowedTransitions()
	case user.IsServiceProvider() && order.ServiceProviderID == user.ID &&
		models.CanTransition(order.Status, models.StatusCancelled):
		return []models.OrderStatus{models.StatusCancelled}
	default:
		return []models.OrderStatus{}
	}
}

// UpdateStatus moves an order to status `to`. The write only succeeds if the
// order still holds the status it was read with.
func (s *OrderService) UpdateStatus(user *models.User, id string, to models.OrderStatus) (*models.Order, error) {
	if !to.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", models.ErrInvalidTransition, to)
	}
	order, err := s.GetForUser(user, id)
	if err != nil {
		return nil, err
	}

	next := *order
	if err := next.Transition(to, s.now()); err != nil {
		return nil, err
	}
	if !containsStatus(s.AllowedTransitions(user, order), to) {
		return nil, fmt.Errorf("%s may not move order %s to %s: %w", user.Type, id, to, ErrForbidden)
	}

	updated, err := s.orderRepo.UpdateStatus(id, order.Status, to, next.DeliveryDate)
	if err != nil {
		return nil, fmt.Errorf("failed to update order %s: %w", id, err)
	}
	log.Printf("Order %s moved %s -> %s by %s", id, order.Status, to, user.ID)

	publishEvent(s.publisher, s.producer, events.EventOrderStatusChanged, id, events.OrderStatusChangedPayload{
		OrderID:   id,
		VendorID:  updated.VendorID,
		From:      string(order.Status),
		To:        string(to),
		ChangedBy: user.ID,
	})
	return updated, nil
}

func containsStatus(list []models.OrderStatus, s models.OrderStatus) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
