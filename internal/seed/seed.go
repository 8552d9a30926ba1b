// Package seed holds the marketplace's starting data set.
package seed

import (
	"fmt"
	"log"
	"time"

	"bazaar/internal/models"
	"bazaar/internal/repositories"
)

// Users returns the seed vendors and service providers.
func Users() []models.User {
	return []models.User{
		{ID: "1", Name: "Ravi Kumar", Email: "ravi@vendor.com", Type: models.UserTypeVendor, Phone: "+91 9876543210", Address: "Gandhi Bazaar, Bangalore"},
		{ID: "2", Name: "Priya Sharma", Email: "priya@vendor.com", Type: models.UserTypeVendor, Phone: "+91 9876543211", Address: "Commercial Street, Bangalore"},
		{ID: "3", Name: "Amit Restaurant", Email: "amit@service.com", Type: models.UserTypeServiceProvider, Phone: "+91 9876543212", Address: "MG Road, Bangalore"},
		{ID: "4", Name: "Spice Junction Cafe", Email: "spice@service.com", Type: models.UserTypeServiceProvider, Phone: "+91 9876543213", Address: "Koramangala, Bangalore"},
	}
}

// Materials returns the seed catalog. Availability is derived, not listed.
func Materials() []models.Material {
	materials := []models.Material{
		{ID: "1", Name: "Basmati Rice", Category: "Grains", Price: 80, Unit: "kg", Quantity: 50, VendorID: "1", VendorName: "Ravi Kumar", Description: "Premium quality basmati rice", Image: "https://images.pexels.com/photos/723198/pexels-photo-723198.jpeg?auto=compress&cs=tinysrgb&w=300"},
		{ID: "2", Name: "Fresh Tomatoes", Category: "Vegetables", Price: 25, Unit: "kg", Quantity: 5, VendorID: "1", VendorName: "Ravi Kumar", Description: "Fresh, ripe tomatoes", Image: "https://images.pexels.com/photos/533280/pexels-photo-533280.jpeg?auto=compress&cs=tinysrgb&w=300"},
		{ID: "3", Name: "Garam Masala", Category: "Spices", Price: 200, Unit: "kg", Quantity: 0, VendorID: "2", VendorName: "Priya Sharma", Description: "Authentic garam masala blend", Image: "https://images.pexels.com/photos/4198655/pexels-photo-4198655.jpeg?auto=compress&cs=tinysrgb&w=300"},
		{ID: "4", Name: "Cooking Oil", Category: "Oils", Price: 120, Unit: "liter", Quantity: 20, VendorID: "2", VendorName: "Priya Sharma", Description: "Refined sunflower oil", Image: "https://images.pexels.com/photos/4198776/pexels-photo-4198776.jpeg?auto=compress&cs=tinysrgb&w=300"},
		{ID: "5", Name: "Fresh Onions", Category: "Vegetables", Price: 30, Unit: "kg", Quantity: 40, VendorID: "1", VendorName: "Ravi Kumar", Description: "Fresh red onions", Image: "https://images.pexels.com/photos/533342/pexels-photo-533342.jpeg?auto=compress&cs=tinysrgb&w=300"},
		{ID: "6", Name: "Chicken (Fresh)", Category: "Meat", Price: 220, Unit: "kg", Quantity: 15, VendorID: "2", VendorName: "Priya Sharma", Description: "Fresh chicken, cleaned and cut", Image: "https://images.pexels.com/photos/2338407/pexels-photo-2338407.jpeg?auto=compress&cs=tinysrgb&w=300"},
	}
	for i := range materials {
		materials[i].Normalize()
	}
	return materials
}

// Orders returns the seed order book.
func Orders() []models.Order {
	delivered := mustTime("2024-01-16T14:00:00Z")
	return []models.Order{
		{ID: "1", MaterialID: "1", MaterialName: "Basmati Rice", VendorID: "1", VendorName: "Ravi Kumar", ServiceProviderID: "3", ServiceProviderName: "Amit Restaurant", Quantity: 10, TotalPrice: 800, Status: models.StatusDelivered, OrderDate: mustTime("2024-01-15T10:30:00Z"), DeliveryDate: &delivered, Notes: "Delivered on time"},
		{ID: "2", MaterialID: "2", MaterialName: "Fresh Tomatoes", VendorID: "1", VendorName: "Ravi Kumar", ServiceProviderID: "4", ServiceProviderName: "Spice Junction Cafe", Quantity: 5, TotalPrice: 125, Status: models.StatusPreparing, OrderDate: mustTime("2024-01-16T09:15:00Z"), Notes: "Rush order for evening service"},
		{ID: "3", MaterialID: "4", MaterialName: "Cooking Oil", VendorID: "2", VendorName: "Priya Sharma", ServiceProviderID: "3", ServiceProviderName: "Amit Restaurant", Quantity: 3, TotalPrice: 360, Status: models.StatusConfirmed, OrderDate: mustTime("2024-01-16T11:45:00Z")},
		{ID: "4", MaterialID: "6", MaterialName: "Chicken (Fresh)", VendorID: "2", VendorName: "Priya Sharma", ServiceProviderID: "4", ServiceProviderName: "Spice Junction Cafe", Quantity: 2, TotalPrice: 440, Status: models.StatusPending, OrderDate: mustTime("2024-01-16T13:20:00Z"), Notes: "Need by evening for special menu"},
	}
}

// Load writes the seed data into empty repositories. A store that already
// holds users is left untouched so persistent databases are seeded once.
func Load(users repositories.UserRepository, materials repositories.MaterialRepository, orders repositories.OrderRepository) error {
	existing, err := users.GetAll()
	if err != nil {
		return fmt.Errorf("failed to inspect users: %w", err)
	}
	if len(existing) > 0 {
		log.Printf("Store already holds %d users, skipping seed", len(existing))
		return nil
	}

	for _, u := range Users() {
		u := u
		if err := users.Create(&u); err != nil {
			return fmt.Errorf("failed to seed user %s: %w", u.Email, err)
		}
	}
	for _, m := range Materials() {
		m := m
		if err := materials.Create(&m); err != nil {
			return fmt.Errorf("failed to seed material %s: %w", m.Name, err)
		}
	}
	seedOrders := Orders()
	batch := make([]*models.Order, len(seedOrders))
	for i := range seedOrders {
		batch[i] = &seedOrders[i]
	}
	if err := orders.CreateBatch(batch); err != nil {
		return fmt.Errorf("failed to seed orders: %w", err)
	}
	log.Printf("Seeded %d users, %d materials, %d orders", len(Users()), len(Materials()), len(seedOrders))
	return nil
}

func mustTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}
