package models

// MaterialPerformance aggregates the orders placed for one material.
type MaterialPerformance struct {
	MaterialID   string  `json:"materialId"`
	MaterialName string  `json:"materialName"`
	Orders       int     `json:"orders"`
	Revenue      float64 `json:"revenue"`
	Quantity     int     `json:"quantity"`
}

// InventorySummary counts a vendor's materials by availability.
type InventorySummary struct {
	TotalMaterials int `json:"totalMaterials"`
	Available      int `json:"available"`
	LowStock       int `json:"lowStock"`
	OutOfStock     int `json:"outOfStock"`
}

// VendorAnalytics is the dashboard summary for one vendor.
type VendorAnalytics struct {
	VendorID           string                `json:"vendorId"`
	TotalRevenue       float64               `json:"totalRevenue"`
	TotalOrders        int                   `json:"totalOrders"`
	CompletedOrders    int                   `json:"completedOrders"`
	PendingOrders      int                   `json:"pendingOrders"`
	AvgOrderValue      float64               `json:"avgOrderValue"`
	CompletionRate     float64               `json:"completionRate"`
	StatusDistribution map[OrderStatus]int   `json:"statusDistribution"`
	TopMaterials       []MaterialPerformance `json:"topMaterials"`
	RecentActivity     []Order               `json:"recentActivity"`
	Inventory          InventorySummary      `json:"inventory"`
}
