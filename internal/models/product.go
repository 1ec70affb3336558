package models

import "time"

// StockStatus is the derived three-way classification of a product's stock
// quantity. It is computed on the fly and never persisted.
type StockStatus string

const (
	StockStatusInStock    StockStatus = "in_stock"
	StockStatusLowStock   StockStatus = "low_stock"
	StockStatusOutOfStock StockStatus = "out_of_stock"
)

// DefaultLowStockThreshold is the stock quantity at or below which (but above
// zero) a product counts as low stock. Overridable via CatalogConfig.
const DefaultLowStockThreshold = 5

// Product is the storage-shaped record backed by the products table.
type Product struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// StockStatusFor classifies a stock quantity against the given threshold.
func StockStatusFor(stock, threshold int) StockStatus {
	switch {
	case stock == 0:
		return StockStatusOutOfStock
	case stock <= threshold:
		return StockStatusLowStock
	default:
		return StockStatusInStock
	}
}

// StockStatusAt classifies the product's stock against the given threshold.
func (p *Product) StockStatusAt(threshold int) StockStatus {
	return StockStatusFor(p.Stock, threshold)
}

// ProductDTO is the presentation-boundary shape returned by the service. It
// carries the derived stock status so rendering layers never depend on the
// classification rule.
type ProductDTO struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Price       float64     `json:"price"`
	Stock       int         `json:"stock"`
	Description string      `json:"description,omitempty"`
	StockStatus StockStatus `json:"stock_status"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

func (p *Product) ToDTO(lowStockThreshold int) *ProductDTO {
	return &ProductDTO{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price,
		Stock:       p.Stock,
		Description: p.Description,
		StockStatus: p.StockStatusAt(lowStockThreshold),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ProductFields is the field bundle accepted by create and update. The id and
// timestamps are owned by the storage layer.
type ProductFields struct {
	Name        string
	Price       float64
	Stock       int
	Description string
}

type CreateProductRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=255"`
	Price       float64 `json:"price" validate:"required,gt=0,lte=999999.99"`
	Stock       int     `json:"stock" validate:"gte=0,lte=999999"`
	Description string  `json:"description,omitempty" validate:"omitempty,max=1000"`
}

// UpdateProductRequest replaces name/price/stock/description wholesale; there
// are no partial updates.
type UpdateProductRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=255"`
	Price       float64 `json:"price" validate:"required,gt=0,lte=999999.99"`
	Stock       int     `json:"stock" validate:"gte=0,lte=999999"`
	Description string  `json:"description,omitempty" validate:"omitempty,max=1000"`
}

// ProductStats groups the stock-classified product lists used by the stats
// endpoint and the dashboard. Computed fresh on every call.
type ProductStats struct {
	TotalProducts      int           `json:"total_products"`
	InStockProducts    []*ProductDTO `json:"in_stock_products"`
	LowStockProducts   []*ProductDTO `json:"low_stock_products"`
	OutOfStockProducts []*ProductDTO `json:"out_of_stock_products"`
}
