package models

// InventoryHealth summarizes how worrying the current stock situation is.
type InventoryHealth string

const (
	InventoryHealthEmpty    InventoryHealth = "empty"
	InventoryHealthCritical InventoryHealth = "critical"
	InventoryHealthWarning  InventoryHealth = "warning"
	InventoryHealthGood     InventoryHealth = "good"
)

type DashboardStats struct {
	TotalProducts       int     `json:"total_products"`
	InStockCount        int     `json:"in_stock_count"`
	LowStockCount       int     `json:"low_stock_count"`
	OutOfStockCount     int     `json:"out_of_stock_count"`
	TotalInventoryValue float64 `json:"total_inventory_value"`
	AverageProductPrice float64 `json:"average_product_price"`
}

type StockDistribution struct {
	InStock    int `json:"in_stock"`
	LowStock   int `json:"low_stock"`
	OutOfStock int `json:"out_of_stock"`
}

// Dashboard is the aggregate payload for the dashboard view. The product
// lists are capped at five entries each.
type Dashboard struct {
	Stats              DashboardStats    `json:"stats"`
	RecentProducts     []*ProductDTO     `json:"recent_products"`
	LowStockProducts   []*ProductDTO     `json:"low_stock_products"`
	OutOfStockProducts []*ProductDTO     `json:"out_of_stock_products"`
	StockDistribution  StockDistribution `json:"stock_distribution"`
	HealthStatus       InventoryHealth   `json:"health_status"`
}
