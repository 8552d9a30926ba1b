package services_test

import (
	"testing"

	"bazaar/internal/models"
	"bazaar/internal/repositories"
	"bazaar/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaterialService_Create(t *testing.T) {
	s := seededStore(t)
	service := services.NewMaterialService(s.materials)
	ravi := s.user(t, "1")

	m, err := service.Create(ravi, services.MaterialInput{
		Name: "Paneer", Category: "Dairy", Price: 320, Unit: "kg", Quantity: 8,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, m.ID)
	assert.Equal(t, "1", m.VendorID)
	assert.Equal(t, "Ravi Kumar", m.VendorName)
	assert.Equal(t, models.AvailabilityLowStock, m.Availability)

	stored, err := s.materials.GetByID(m.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AvailabilityLowStock, stored.Availability)
}

func TestMaterialService_Create_ServiceProviderForbidden(t *testing.T) {
	s := seededStore(t)
	service := services.NewMaterialService(s.materials)

	_, err := service.Create(s.user(t, "3"), services.MaterialInput{Name: "Paneer", Category: "Dairy", Price: 1, Unit: "kg"})
	assert.ErrorIs(t, err, services.ErrForbidden)
}

func TestMaterialService_Update_RecomputesAvailability(t *testing.T) {
	s := seededStore(t)
	service := services.NewMaterialService(s.materials)

	m, err := service.Update(s.user(t, "1"), "1", services.MaterialInput{
		Name: "Basmati Rice", Category: "Grains", Price: 85, Unit: "kg", Quantity: 0,
	})
	require.NoError(t, err)
	assert.Equal(t, models.AvailabilityOutOfStock, m.Availability)
	assert.Equal(t, 85.0, m.Price)

	catalog, err := service.Catalog("rice", "")
	require.NoError(t, err)
	assert.Empty(t, catalog)
}

func TestMaterialService_OwnershipEnforced(t *testing.T) {
	s := seededStore(t)
	service := services.NewMaterialService(s.materials)
	priya := s.user(t, "2")

	_, err := service.Update(priya, "1", services.MaterialInput{Name: "Rice", Category: "Grains", Price: 1, Unit: "kg"})
	assert.ErrorIs(t, err, services.ErrForbidden)

	err = service.Delete(priya, "1")
	assert.ErrorIs(t, err, services.ErrForbidden)

	_, err = s.materials.GetByID("1")
	assert.NoError(t, err)
}

func TestMaterialService_Delete(t *testing.T) {
	s := seededStore(t)
	service := services.NewMaterialService(s.materials)
	ravi := s.user(t, "1")

	require.NoError(t, service.Delete(ravi, "5"))

	_, err := s.materials.GetByID("5")
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	err = service.Delete(ravi, "5")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestMaterialService_Inventory(t *testing.T) {
	s := seededStore(t)
	service := services.NewMaterialService(s.materials)

	inventory, err := service.Inventory(s.user(t, "2"), "", "")
	require.NoError(t, err)
	assert.Len(t, inventory, 3)

	_, err = service.Inventory(s.user(t, "3"), "", "")
	assert.ErrorIs(t, err, services.ErrForbidden)
}
