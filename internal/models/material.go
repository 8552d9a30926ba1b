package models

import "time"

// Availability is the stock-level classification of a material.
type Availability string

const (
	AvailabilityAvailable  Availability = "available"
	AvailabilityLowStock   Availability = "low_stock"
	AvailabilityOutOfStock Availability = "out_of_stock"
)

// LowStockThreshold is the largest quantity still reported as low stock.
const LowStockThreshold = 10

// Categories lists the material categories vendors can file materials under.
var Categories = []string{"Grains", "Vegetables", "Spices", "Oils", "Meat", "Dairy", "Others"}

// AvailabilityFor derives the availability of a material holding quantity units.
// It is the only place the thresholds live; every write of a Material goes
// through Normalize so the stored value never drifts from the quantity.
func AvailabilityFor(quantity int) Availability {
	switch {
	case quantity > LowStockThreshold:
		return AvailabilityAvailable
	case quantity > 0:
		return AvailabilityLowStock
	default:
		return AvailabilityOutOfStock
	}
}

// Material represents a raw material a vendor offers.
type Material struct {
	ID           string       `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name         string       `json:"name" gorm:"type:varchar(100)"`
	Category     string       `json:"category" gorm:"index;type:varchar(32)"`
	Price        float64      `json:"price"`
	Unit         string       `json:"unit" gorm:"type:varchar(16)"`
	Quantity     int          `json:"quantity"`
	Availability Availability `json:"availability" gorm:"type:varchar(16)"`
	VendorID     string       `json:"vendorId" gorm:"index;type:varchar(36)"`
	VendorName   string       `json:"vendorName" gorm:"type:varchar(100)"`
	Description  string       `json:"description,omitempty" gorm:"type:varchar(500)"`
	Image        string       `json:"image,omitempty" gorm:"type:varchar(500)"`
	CreatedAt    time.Time    `json:"-"`
	UpdatedAt    time.Time    `json:"-"`
}

// Normalize recomputes the derived availability from the quantity.
func (m *Material) Normalize() {
	if m.Quantity < 0 {
		m.Quantity = 0
	}
	m.Availability = AvailabilityFor(m.Quantity)
}

// InStock reports whether the material can be ordered at all.
func (m *Material) InStock() bool {
	return m.Availability != AvailabilityOutOfStock
}
