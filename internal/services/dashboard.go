package service

import (
	"context"

	appErrors "github.com/stockroom/product-catalog/internal/errors"
	"github.com/stockroom/product-catalog/internal/models"
)

// dashboardListLimit caps the recent/low-stock/out-of-stock lists shown on
// the dashboard.
const dashboardListLimit = 5

// Thresholds for the inventory health classification, as fractions of the
// total product count.
const (
	criticalOutOfStockFraction = 0.20
	warningOutOfStockFraction  = 0.10
	warningLowStockFraction    = 0.30
)

// DashboardService aggregates catalog statistics for the dashboard view. It
// consumes only the ProductService's read methods; no storage access of its
// own.
type DashboardService interface {
	GetDashboard(ctx context.Context) (*models.Dashboard, error)
}

type dashboardService struct {
	products ProductService
}

func NewDashboardService(products ProductService) DashboardService {
	return &dashboardService{products: products}
}

func (s *dashboardService) GetDashboard(ctx context.Context) (*models.Dashboard, error) {
	stats, err := s.products.GetStats(ctx)
	if err != nil {
		return nil, err
	}

	all, err := s.products.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	recent, err := s.products.ListPaginated(ctx, 1, dashboardListLimit, "")
	if err != nil {
		return nil, err
	}

	if recent == nil {
		return nil, appErrors.InternalError("Missing paginated products")
	}

	distribution := models.StockDistribution{
		InStock:    len(stats.InStockProducts),
		LowStock:   len(stats.LowStockProducts),
		OutOfStock: len(stats.OutOfStockProducts),
	}

	return &models.Dashboard{
		Stats: models.DashboardStats{
			TotalProducts:       stats.TotalProducts,
			InStockCount:        distribution.InStock,
			LowStockCount:       distribution.LowStock,
			OutOfStockCount:     distribution.OutOfStock,
			TotalInventoryValue: totalInventoryValue(all),
			AverageProductPrice: averagePrice(all),
		},
		RecentProducts:     takeFirst(recent.Data, dashboardListLimit),
		LowStockProducts:   takeFirst(stats.LowStockProducts, dashboardListLimit),
		OutOfStockProducts: takeFirst(stats.OutOfStockProducts, dashboardListLimit),
		StockDistribution:  distribution,
		HealthStatus:       healthStatus(stats.TotalProducts, distribution),
	}, nil
}

func totalInventoryValue(products []*models.ProductDTO) float64 {
	var total float64

	for _, product := range products {
		total += product.Price * float64(product.Stock)
	}

	return total
}

func averagePrice(products []*models.ProductDTO) float64 {
	if len(products) == 0 {
		return 0
	}

	var sum float64

	for _, product := range products {
		sum += product.Price
	}

	return sum / float64(len(products))
}

// healthStatus classifies the inventory: empty when there are no products,
// critical when more than 20% are out of stock, warning when more than 10%
// are out of stock or more than 30% are low, otherwise good.
func healthStatus(total int, distribution models.StockDistribution) models.InventoryHealth {
	if total == 0 {
		return models.InventoryHealthEmpty
	}

	outOfStockFraction := float64(distribution.OutOfStock) / float64(total)
	lowStockFraction := float64(distribution.LowStock) / float64(total)

	switch {
	case outOfStockFraction > criticalOutOfStockFraction:
		return models.InventoryHealthCritical
	case outOfStockFraction > warningOutOfStockFraction || lowStockFraction > warningLowStockFraction:
		return models.InventoryHealthWarning
	default:
		return models.InventoryHealthGood
	}
}

func takeFirst(products []*models.ProductDTO, limit int) []*models.ProductDTO {
	if len(products) <= limit {
		return products
	}

	return products[:limit]
}
