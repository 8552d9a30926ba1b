package seed_test

import (
	"testing"

	"bazaar/internal/models"
	"bazaar/internal/repositories"
	"bazaar/internal/seed"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaterials_AvailabilityMatchesQuantity(t *testing.T) {
	for _, m := range seed.Materials() {
		assert.Equal(t, models.AvailabilityFor(m.Quantity), m.Availability, m.Name)
	}
}

func TestOrders_VendorMatchesMaterial(t *testing.T) {
	byID := map[string]models.Material{}
	for _, m := range seed.Materials() {
		byID[m.ID] = m
	}
	for _, o := range seed.Orders() {
		m, ok := byID[o.MaterialID]
		require.True(t, ok, "order %s references unknown material", o.ID)
		assert.Equal(t, m.VendorID, o.VendorID, "order %s", o.ID)
	}
}

func TestLoad_SeedsOnce(t *testing.T) {
	users := repositories.NewMockUserRepository()
	materials := repositories.NewMockMaterialRepository()
	orders := repositories.NewMockOrderRepository()

	require.NoError(t, seed.Load(users, materials, orders))
	require.NoError(t, seed.Load(users, materials, orders))

	allUsers, _ := users.GetAll()
	allMaterials, _ := materials.GetAll()
	allOrders, _ := orders.GetAll()
	assert.Len(t, allUsers, 4)
	assert.Len(t, allMaterials, 6)
	assert.Len(t, allOrders, 4)
	assert.Equal(t, "Basmati Rice", allMaterials[0].Name)
}
