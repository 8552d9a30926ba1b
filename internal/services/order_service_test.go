package services_test

import (
	"fmt"
	"testing"
	"time"

	"bazaar/internal/models"
	"bazaar/internal/repositories"
	"bazaar/internal/services"
	"bazaar/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestOrderService_ListForUser(t *testing.T) {
	s := seededStore(t)
	service := services.NewOrderService(s.orders, nil, "test")

	vendorOrders, err := service.ListForUser(s.user(t, "1"))
	require.NoError(t, err)
	assert.Len(t, vendorOrders, 2)
	assert.Equal(t, "2", vendorOrders[0].ID, "newest first")

	buyerOrders, err := service.ListForUser(s.user(t, "4"))
	require.NoError(t, err)
	assert.Len(t, buyerOrders, 2)
}

func TestOrderService_GetForUser(t *testing.T) {
	s := seededStore(t)
	service := services.NewOrderService(s.orders, nil, "test")

	order, err := service.GetForUser(s.user(t, "3"), "1")
	require.NoError(t, err)
	assert.Equal(t, 800.0, order.TotalPrice)

	_, err = service.GetForUser(s.user(t, "4"), "1")
	assert.ErrorIs(t, err, services.ErrForbidden)

	_, err = service.GetForUser(s.user(t, "3"), "missing")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestOrderService_HappyPathKeepsTotal(t *testing.T) {
	s := seededStore(t)
	service := services.NewOrderService(s.orders, nil, "test")
	ravi := s.user(t, "1")

	require.NoError(t, s.orders.CreateBatch([]*models.Order{{
		ID: "o-800", MaterialID: "1", MaterialName: "Basmati Rice", VendorID: "1", VendorName: "Ravi Kumar",
		ServiceProviderID: "3", ServiceProviderName: "Amit Restaurant",
		Quantity: 10, TotalPrice: 800, Status: models.StatusPending,
	}}))

	for _, next := range []models.OrderStatus{models.StatusConfirmed, models.StatusPreparing, models.StatusReady} {
		order, err := service.UpdateStatus(ravi, "o-800", next)
		require.NoError(t, err)
		assert.Equal(t, next, order.Status)
		assert.Nil(t, order.DeliveryDate)
	}

	order, err := service.UpdateStatus(ravi, "o-800", models.StatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, 800.0, order.TotalPrice)
	require.NotNil(t, order.DeliveryDate)
	assert.WithinDuration(t, time.Now(), *order.DeliveryDate, time.Minute)

	_, err = service.UpdateStatus(ravi, "o-800", models.StatusCancelled)
	assert.ErrorIs(t, err, models.ErrInvalidTransition)
}

func TestOrderService_UpdateStatus_Permissions(t *testing.T) {
	s := seededStore(t)
	service := services.NewOrderService(s.orders, nil, "test")

	// Order 4 is pending, sold by Priya (2) to Spice Junction (4).
	_, err := service.UpdateStatus(s.user(t, "1"), "4", models.StatusConfirmed)
	assert.ErrorIs(t, err, services.ErrForbidden, "other vendor")

	_, err = service.UpdateStatus(s.user(t, "4"), "4", models.StatusConfirmed)
	assert.ErrorIs(t, err, services.ErrForbidden, "buyer may not confirm")

	order, err := service.UpdateStatus(s.user(t, "4"), "4", models.StatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, order.Status)
	assert.Nil(t, order.DeliveryDate)

	// Order 3 is confirmed; the buyer can no longer cancel it.
	_, err = service.UpdateStatus(s.user(t, "3"), "3", models.StatusCancelled)
	assert.ErrorIs(t, err, models.ErrInvalidTransition)
}

func TestOrderService_UpdateStatus_InvalidTransitions(t *testing.T) {
	s := seededStore(t)
	service := services.NewOrderService(s.orders, nil, "test")
	priya := s.user(t, "2")

	_, err := service.UpdateStatus(priya, "4", models.StatusDelivered)
	assert.ErrorIs(t, err, models.ErrInvalidTransition, "skipping steps")

	_, err = service.UpdateStatus(priya, "4", models.OrderStatus("shipped"))
	assert.ErrorIs(t, err, models.ErrInvalidTransition, "unknown status")

	order, err := s.orders.GetByID("4")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, order.Status)
}

func TestOrderService_UpdateStatus_Conflict(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	service := services.NewOrderService(orderRepo, nil, "test")
	vendor := &models.User{ID: "2", Type: models.UserTypeVendor}

	orderRepo.On("GetByID", "4").Return(&models.Order{ID: "4", VendorID: "2", ServiceProviderID: "4", Status: models.StatusPending}, nil).Once()
	orderRepo.On("UpdateStatus", "4", models.StatusPending, models.StatusConfirmed, (*time.Time)(nil)).
		Return(nil, fmt.Errorf("order 4 is cancelled, expected pending: %w", repositories.ErrStatusConflict)).Once()

	_, err := service.UpdateStatus(vendor, "4", models.StatusConfirmed)
	assert.ErrorIs(t, err, repositories.ErrStatusConflict)
	orderRepo.AssertExpectations(t)
}

func TestOrderService_UpdateStatus_PublishesEvent(t *testing.T) {
	s := seededStore(t)
	publisher := new(MockPublisher)
	publisher.On("Publish", mock.MatchedBy(func(ev events.Envelope) bool {
		if ev.EventType != events.EventOrderStatusChanged || ev.CorrelationID != "3" {
			return false
		}
		p, err := events.UnwrapPayload[events.OrderStatusChangedPayload](ev.Payload)
		return err == nil && p.From == "confirmed" && p.To == "preparing" && p.ChangedBy == "2"
	})).Return(nil).Once()
	service := services.NewOrderService(s.orders, publisher, "test")

	_, err := service.UpdateStatus(s.user(t, "2"), "3", models.StatusPreparing)
	require.NoError(t, err)
	publisher.AssertExpectations(t)
}

func TestOrderService_AllowedTransitions(t *testing.T) {
	s := seededStore(t)
	service := services.NewOrderService(s.orders, nil, "test")
	pending, err := s.orders.GetByID("4")
	require.NoError(t, err)
	delivered, err := s.orders.GetByID("1")
	require.NoError(t, err)

	assert.Equal(t, []models.OrderStatus{models.StatusConfirmed, models.StatusCancelled}, service.AllowedTransitions(s.user(t, "2"), pending))
	assert.Equal(t, []models.OrderStatus{models.StatusCancelled}, service.AllowedTransitions(s.user(t, "4"), pending))
	assert.Empty(t, service.AllowedTransitions(s.user(t, "1"), pending))
	assert.Empty(t, service.AllowedTransitions(s.user(t, "1"), delivered))
}
