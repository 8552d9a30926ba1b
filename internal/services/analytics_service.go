package services

import (
	"fmt"
	"sort"

	"bazaar/internal/models"
	"bazaar/internal/repositories"
)

const (
	topMaterialsLimit   = 5
	recentActivityLimit = 5
)

// ComputeVendorAnalytics derives the dashboard summary from a vendor's
// orders and materials.
func ComputeVendorAnalytics(vendorID string, orders []models.Order, materials []models.Material) models.VendorAnalytics {
	a := models.VendorAnalytics{
		VendorID:           vendorID,
		TotalOrders:        len(orders),
		StatusDistribution: make(map[models.OrderStatus]int, len(models.OrderStatuses)),
		TopMaterials:       []models.MaterialPerformance{},
		RecentActivity:     []models.Order{},
	}
	for _, s := range models.OrderStatuses {
		a.StatusDistribution[s] = 0
	}

	perf := []models.MaterialPerformance{}
	pos := make(map[string]int)
	for _, o := range orders {
		a.StatusDistribution[o.Status]++
		if o.Status == models.StatusDelivered {
			a.CompletedOrders++
			a.TotalRevenue += o.TotalPrice
		}
		if o.Status.IsActive() {
			a.PendingOrders++
		}

		i, ok := pos[o.MaterialID]
		if !ok {
			i = len(perf)
			pos[o.MaterialID] = i
			perf = append(perf, models.MaterialPerformance{MaterialID: o.MaterialID, MaterialName: o.MaterialName})
		}
		perf[i].Orders++
		perf[i].Revenue += o.TotalPrice
		perf[i].Quantity += o.Quantity
	}

	if a.TotalOrders > 0 {
		a.CompletionRate = float64(a.CompletedOrders) / float64(a.TotalOrders) * 100
	}
	if a.CompletedOrders > 0 {
		a.AvgOrderValue = a.TotalRevenue / float64(a.CompletedOrders)
	}

	sort.SliceStable(perf, func(i, j int) bool { return perf[i].Revenue > perf[j].Revenue })
	if len(perf) > topMaterialsLimit {
		perf = perf[:topMaterialsLimit]
	}
	a.TopMaterials = perf

	recent := make([]models.Order, len(orders))
	copy(recent, orders)
	sort.SliceStable(recent, func(i, j int) bool { return recent[i].OrderDate.After(recent[j].OrderDate) })
	if len(recent) > recentActivityLimit {
		recent = recent[:recentActivityLimit]
	}
	a.RecentActivity = recent

	for _, m := range materials {
		a.Inventory.TotalMaterials++
		switch m.Availability {
		case models.AvailabilityAvailable:
			a.Inventory.Available++
		case models.AvailabilityLowStock:
			a.Inventory.LowStock++
		case models.AvailabilityOutOfStock:
			a.Inventory.OutOfStock++
		}
	}
	return a
}

// AnalyticsService loads a vendor's data and summarises it on every call.
type AnalyticsService struct {
	orderRepo    repositories.OrderRepository
	materialRepo repositories.MaterialRepository
}

// NewAnalyticsService creates a new AnalyticsService.
func NewAnalyticsService(orderRepo repositories.OrderRepository, materialRepo repositories.MaterialRepository) *AnalyticsService {
	return &AnalyticsService{orderRepo: orderRepo, materialRepo: materialRepo}
}

// ForVendor returns the analytics of vendorID. Vendors may only read their own.
func (s *AnalyticsService) ForVendor(user *models.User, vendorID string) (*models.VendorAnalytics, error) {
	if vendorID == "" && user != nil {
		vendorID = user.ID
	}
	if !user.IsVendor() || user.ID != vendorID {
		return nil, ErrForbidden
	}
	orders, err := s.orderRepo.GetByVendor(vendorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}
	materials, err := s.materialRepo.GetByVendor(vendorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load materials: %w", err)
	}
	a := ComputeVendorAnalytics(vendorID, orders, materials)
	return &a, nil
}
