package repositories

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"bazaar/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type backend struct {
	users     UserRepository
	materials MaterialRepository
	orders    OrderRepository
}

// backends returns a fresh in-memory store and a fresh SQLite store.
func backends(t *testing.T) map[string]backend {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := OpenDB("sqlite", dsn)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	return map[string]backend{
		"memory": {NewMockUserRepository(), NewMockMaterialRepository(), NewMockOrderRepository()},
		"gorm":   {NewGORMUserRepository(db), NewGORMMaterialRepository(db), NewGORMOrderRepository(db)},
	}
}

func TestMaterialRepository(t *testing.T) {
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			rice := &models.Material{ID: "1", Name: "Basmati Rice", Category: "Grains", Price: 80, Unit: "kg", Quantity: 50, VendorID: "1"}
			tomatoes := &models.Material{ID: "2", Name: "Fresh Tomatoes", Category: "Vegetables", Price: 25, Unit: "kg", Quantity: 5, VendorID: "1"}
			masala := &models.Material{ID: "3", Name: "Garam Masala", Category: "Spices", Price: 200, Unit: "kg", Quantity: 0, VendorID: "2"}
			for _, m := range []*models.Material{rice, tomatoes, masala} {
				require.NoError(t, b.materials.Create(m))
			}

			got, err := b.materials.GetByID("2")
			require.NoError(t, err)
			assert.Equal(t, models.AvailabilityLowStock, got.Availability)

			all, err := b.materials.GetAll()
			require.NoError(t, err)
			assert.Len(t, all, 3)

			own, err := b.materials.GetByVendor("1")
			require.NoError(t, err)
			assert.Len(t, own, 2)

			got.Quantity = 11
			require.NoError(t, b.materials.Update(got))
			got, err = b.materials.GetByID("2")
			require.NoError(t, err)
			assert.Equal(t, models.AvailabilityAvailable, got.Availability)

			missing := &models.Material{ID: "99", Name: "Ghost"}
			assert.ErrorIs(t, b.materials.Update(missing), ErrNotFound)

			require.NoError(t, b.materials.Delete("3"))
			_, err = b.materials.GetByID("3")
			assert.ErrorIs(t, err, ErrNotFound)
			assert.ErrorIs(t, b.materials.Delete("3"), ErrNotFound)
		})
	}
}

func TestMaterialRepository_CreateNormalizes(t *testing.T) {
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			m := &models.Material{Name: "Oil", Quantity: -4, Availability: models.AvailabilityAvailable}
			require.NoError(t, b.materials.Create(m))
			assert.NotEmpty(t, m.ID)

			got, err := b.materials.GetByID(m.ID)
			require.NoError(t, err)
			assert.Equal(t, 0, got.Quantity)
			assert.Equal(t, models.AvailabilityOutOfStock, got.Availability)
		})
	}
}

func newOrder(id string, status models.OrderStatus, placed time.Time) *models.Order {
	return &models.Order{
		ID: id, MaterialID: "1", MaterialName: "Basmati Rice", VendorID: "1", VendorName: "Ravi Kumar",
		ServiceProviderID: "3", ServiceProviderName: "Amit Restaurant",
		Quantity: 10, TotalPrice: 800, Status: status, OrderDate: placed,
	}
}

func TestOrderRepository_CreateBatchAndList(t *testing.T) {
	base := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, b.orders.CreateBatch([]*models.Order{
				newOrder("a", models.StatusPending, base),
				newOrder("b", models.StatusPending, base.Add(time.Hour)),
			}))

			all, err := b.orders.GetAll()
			require.NoError(t, err)
			require.Len(t, all, 2)
			assert.Equal(t, "b", all[0].ID, "newest first")

			byVendor, err := b.orders.GetByVendor("1")
			require.NoError(t, err)
			assert.Len(t, byVendor, 2)

			byBuyer, err := b.orders.GetByServiceProvider("4")
			require.NoError(t, err)
			assert.Empty(t, byBuyer)
		})
	}
}

func TestOrderRepository_CreateBatchIsAtomic(t *testing.T) {
	now := time.Now()
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, b.orders.CreateBatch([]*models.Order{newOrder("a", models.StatusPending, now)}))

			err := b.orders.CreateBatch([]*models.Order{
				newOrder("c", models.StatusPending, now),
				newOrder("a", models.StatusPending, now),
			})
			assert.Error(t, err)

			_, err = b.orders.GetByID("c")
			assert.ErrorIs(t, err, ErrNotFound, "no partial batch")
		})
	}
}

func TestOrderRepository_UpdateStatusCompareAndSwap(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, b.orders.CreateBatch([]*models.Order{newOrder("a", models.StatusReady, now)}))

			delivered := now.Add(time.Hour)
			updated, err := b.orders.UpdateStatus("a", models.StatusReady, models.StatusDelivered, &delivered)
			require.NoError(t, err)
			assert.Equal(t, models.StatusDelivered, updated.Status)
			require.NotNil(t, updated.DeliveryDate)
			assert.True(t, delivered.Equal(*updated.DeliveryDate))
			assert.Equal(t, 800.0, updated.TotalPrice)

			_, err = b.orders.UpdateStatus("a", models.StatusReady, models.StatusDelivered, &delivered)
			assert.ErrorIs(t, err, ErrStatusConflict)

			_, err = b.orders.UpdateStatus("missing", models.StatusPending, models.StatusConfirmed, nil)
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestUserRepository(t *testing.T) {
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, b.users.Create(&models.User{ID: "1", Name: "Ravi Kumar", Email: "ravi@vendor.com", Type: models.UserTypeVendor}))
			require.NoError(t, b.users.Create(&models.User{ID: "9", Name: "Ravi Buys", Email: "ravi@vendor.com", Type: models.UserTypeServiceProvider}))

			u, err := b.users.GetByEmailAndType("ravi@vendor.com", models.UserTypeServiceProvider)
			require.NoError(t, err)
			assert.Equal(t, "9", u.ID)

			_, err = b.users.GetByEmailAndType("RAVI@vendor.com", models.UserTypeVendor)
			assert.ErrorIs(t, err, ErrNotFound, "exact match only")

			err = b.users.Create(&models.User{ID: "2", Name: "Dup", Email: "ravi@vendor.com", Type: models.UserTypeVendor})
			assert.Error(t, err)

			all, err := b.users.GetAll()
			require.NoError(t, err)
			assert.Len(t, all, 2)

			_, err = b.users.GetByID("404")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestMockSessionRepository_Expiry(t *testing.T) {
	repo := NewMockSessionRepository()
	now := time.Now()
	repo.now = func() time.Time { return now }

	require.NoError(t, repo.Save("s1", "1", time.Minute))
	userID, err := repo.GetUserID("s1")
	require.NoError(t, err)
	assert.Equal(t, "1", userID)

	now = now.Add(2 * time.Minute)
	_, err = repo.GetUserID("s1")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, repo.Save("s2", "1", time.Minute))
	require.NoError(t, repo.Delete("s2"))
	_, err = repo.GetUserID("s2")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, repo.Delete("unknown"))
}
