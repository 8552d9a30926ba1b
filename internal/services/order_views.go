package services

import (
	"math"
	"strings"
	"time"

	"bazaar/internal/models"
)

// DateWindow restricts an order history to recent orders.
type DateWindow string

const (
	WindowAll     DateWindow = ""
	WindowToday   DateWindow = "today"
	WindowWeek    DateWindow = "week"
	WindowMonth   DateWindow = "month"
	WindowQuarter DateWindow = "quarter"
)

// Valid reports whether w is a known window.
func (w DateWindow) Valid() bool {
	switch w {
	case WindowAll, WindowToday, WindowWeek, WindowMonth, WindowQuarter:
		return true
	}
	return false
}

// Contains reports whether an order placed at orderDate falls in the window.
// Age is counted in whole days, rounded down.
func (w DateWindow) Contains(orderDate, now time.Time) bool {
	days := int(math.Floor(now.Sub(orderDate).Hours() / 24))
	switch w {
	case WindowToday:
		return days == 0
	case WindowWeek:
		return days <= 7
	case WindowMonth:
		return days <= 30
	case WindowQuarter:
		return days <= 90
	default:
		return true
	}
}

// OrderFilter selects orders for the list views. Zero values match everything.
type OrderFilter struct {
	Search     string
	Status     models.OrderStatus
	Window     DateWindow
	ActiveOnly bool
}

// FilterOrders applies f to orders. The search term matches the material
// name and the counterparty's name: the buyer for vendors, the vendor for
// service providers.
func FilterOrders(orders []models.Order, viewer models.UserType, f OrderFilter, now time.Time) []models.Order {
	term := strings.ToLower(f.Search)
	out := []models.Order{}
	for _, o := range orders {
		if f.ActiveOnly && !o.Status.IsActive() {
			continue
		}
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		if !f.Window.Contains(o.OrderDate, now) {
			continue
		}
		counterparty := o.VendorName
		if viewer == models.UserTypeVendor {
			counterparty = o.ServiceProviderName
		}
		if !containsFold(term, o.MaterialName, counterparty) {
			continue
		}
		out = append(out, o)
	}
	return out
}

// OrderStats summarises an order history.
type OrderStats struct {
	Total      int     `json:"total"`
	Delivered  int     `json:"delivered"`
	Cancelled  int     `json:"cancelled"`
	TotalSpent float64 `json:"totalSpent"` // every listed order, whatever its status
}

// ComputeOrderStats summarises orders.
func ComputeOrderStats(orders []models.Order) OrderStats {
	stats := OrderStats{Total: len(orders)}
	for _, o := range orders {
		switch o.Status {
		case models.StatusDelivered:
			stats.Delivered++
		case models.StatusCancelled:
			stats.Cancelled++
		}
		stats.TotalSpent += o.TotalPrice
	}
	return stats
}

var deliveryLeadTimes = map[models.OrderStatus]time.Duration{
	models.StatusPending:   4 * time.Hour,
	models.StatusConfirmed: 3 * time.Hour,
	models.StatusPreparing: time.Hour,
	models.StatusReady:     30 * time.Minute,
}

// EstimatedDelivery is the order date plus a lead time that shrinks as the
// order advances.
func EstimatedDelivery(o models.Order) time.Time {
	lead, ok := deliveryLeadTimes[o.Status]
	if !ok {
		lead = 2 * time.Hour
	}
	return o.OrderDate.Add(lead)
}

// TrackedOrder is an active order with its delivery estimate.
type TrackedOrder struct {
	models.Order
	EstimatedDelivery time.Time `json:"estimatedDelivery"`
}

// Track attaches delivery estimates to orders.
func Track(orders []models.Order) []TrackedOrder {
	out := make([]TrackedOrder, len(orders))
	for i, o := range orders {
		out[i] = TrackedOrder{Order: o, EstimatedDelivery: EstimatedDelivery(o)}
	}
	return out
}
