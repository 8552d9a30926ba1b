package services_test

import (
	"testing"

	"bazaar/internal/models"
	"bazaar/internal/seed"
	"bazaar/internal/services"

	"github.com/stretchr/testify/assert"
)

func names(materials []models.Material) []string {
	out := make([]string, len(materials))
	for i, m := range materials {
		out[i] = m.Name
	}
	return out
}

func TestFilterCatalog(t *testing.T) {
	materials := seed.Materials()

	tests := []struct {
		name     string
		search   string
		category string
		want     []string
	}{
		{"search by name", "rice", "", []string{"Basmati Rice"}},
		{"case insensitive", "TOMATO", "", []string{"Fresh Tomatoes"}},
		{"search by vendor name", "priya", "", []string{"Cooking Oil", "Chicken (Fresh)"}},
		{"search by category", "spices", "", []string{}},
		{"category filter", "", "Vegetables", []string{"Fresh Tomatoes", "Fresh Onions"}},
		{"all pseudo category", "", services.CategoryAll, []string{"Basmati Rice", "Fresh Tomatoes", "Cooking Oil", "Fresh Onions", "Chicken (Fresh)"}},
		{"search and category", "fresh", "Meat", []string{"Chicken (Fresh)"}},
		{"no match", "saffron", "", []string{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := services.FilterCatalog(materials, tc.search, tc.category)
			assert.NotNil(t, got)
			assert.Equal(t, tc.want, names(got))
		})
	}
}

func TestFilterCatalog_NeverReturnsOutOfStock(t *testing.T) {
	for _, m := range services.FilterCatalog(seed.Materials(), "", "") {
		assert.NotEqual(t, models.AvailabilityOutOfStock, m.Availability)
	}
}

func TestFilterInventory(t *testing.T) {
	materials := seed.Materials()
	var priya []models.Material
	for _, m := range materials {
		if m.VendorID == "2" {
			priya = append(priya, m)
		}
	}

	assert.Equal(t, []string{"Garam Masala", "Cooking Oil", "Chicken (Fresh)"}, names(services.FilterInventory(priya, "", "")))
	assert.Equal(t, []string{"Garam Masala"}, names(services.FilterInventory(priya, "spice", "")))
	assert.Equal(t, []string{"Cooking Oil"}, names(services.FilterInventory(priya, "", "Oils")))
	// Vendor names are not searched in the inventory view.
	assert.Empty(t, services.FilterInventory(priya, "priya", ""))
}
