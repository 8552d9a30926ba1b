package services

import (
	"strings"

	"bazaar/internal/models"
)

// CategoryAll is the catalog's pseudo-category meaning no category filter.
const CategoryAll = "All"

// FilterCatalog returns the orderable materials matching the search term
// (name, category or vendor name, case-insensitive) and category.
func FilterCatalog(materials []models.Material, searchTerm, category string) []models.Material {
	term := strings.ToLower(searchTerm)
	out := []models.Material{}
	for _, m := range materials {
		if m.Availability == models.AvailabilityOutOfStock {
			continue
		}
		if !matchesCategory(m, category) {
			continue
		}
		if !containsFold(term, m.Name, m.Category, m.VendorName) {
			continue
		}
		out = append(out, m)
	}
	return out
}

// FilterInventory is the vendor's view of their own materials: search over
// name and category, out-of-stock materials included.
func FilterInventory(materials []models.Material, searchTerm, category string) []models.Material {
	term := strings.ToLower(searchTerm)
	out := []models.Material{}
	for _, m := range materials {
		if matchesCategory(m, category) && containsFold(term, m.Name, m.Category) {
			out = append(out, m)
		}
	}
	return out
}

func matchesCategory(m models.Material, category string) bool {
	return category == "" || category == CategoryAll || m.Category == category
}

// containsFold reports whether any field contains the already lower-cased term.
func containsFold(term string, fields ...string) bool {
	if term == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}
