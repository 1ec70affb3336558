package service

import (
	"context"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/stockroom/product-catalog/internal/config"
	appErrors "github.com/stockroom/product-catalog/internal/errors"
	"github.com/stockroom/product-catalog/internal/models"
	repository "github.com/stockroom/product-catalog/internal/repositories"
	"github.com/stockroom/product-catalog/internal/validation"
)

// ProductService is the single business API the request-handling layer talks
// to. Every persistence operation goes through the repository; validation
// runs before every mutation.
type ProductService interface {
	ListPaginated(ctx context.Context, page, pageSize int, search string) (*models.PaginatedProducts, error)
	GetByID(ctx context.Context, id int64) (*models.ProductDTO, error)
	Create(ctx context.Context, req *models.CreateProductRequest) (*models.ProductDTO, error)
	Update(ctx context.Context, id int64, req *models.UpdateProductRequest) (*models.ProductDTO, error)
	Delete(ctx context.Context, id int64) error
	ListAll(ctx context.Context) ([]*models.ProductDTO, error)
	Search(ctx context.Context, term string) ([]*models.ProductDTO, error)
	GetStats(ctx context.Context) (*models.ProductStats, error)
}

type productService struct {
	repo      repository.ProductRepository
	catalog   *config.Catalog
	sanitizer *bluemonday.Policy
}

func NewProductService(repo repository.ProductRepository, catalog *config.Catalog) ProductService {
	return &productService{
		repo:      repo,
		catalog:   catalog,
		// Free-text fields come straight from form input; strip all markup.
		sanitizer: bluemonday.StrictPolicy(),
	}
}

func (s *productService) threshold() int {
	return s.catalog.LowStockThresholdOrDefault()
}

// clampPageSize falls back to the default whenever the requested size is
// absent or outside the configured bounds.
func (s *productService) clampPageSize(pageSize int) int {
	if pageSize < s.catalog.MinPageSize || pageSize > s.catalog.MaxPageSize {
		return s.catalog.DefaultPageSize
	}

	return pageSize
}

func (s *productService) toDTOs(products []*models.Product) []*models.ProductDTO {
	dtos := make([]*models.ProductDTO, 0, len(products))

	for _, product := range products {
		dtos = append(dtos, product.ToDTO(s.threshold()))
	}

	return dtos
}

func (s *productService) ListPaginated(ctx context.Context, page, pageSize int, search string) (*models.PaginatedProducts, error) {
	pageSize = s.clampPageSize(pageSize)

	if page < 1 {
		page = 1
	}

	search = strings.TrimSpace(search)

	products, total, err := s.repo.FindPaginated(ctx, page, pageSize, search)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch products").WithError(err)
	}

	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	return &models.PaginatedProducts{
		Data:        s.toDTOs(products),
		Total:       total,
		CurrentPage: page,
		TotalPages:  totalPages,
		PerPage:     pageSize,
		Search:      search,
	}, nil
}

func (s *productService) GetByID(ctx context.Context, id int64) (*models.ProductDTO, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch product").WithError(err)
	}

	if product == nil {
		return nil, appErrors.NotFoundError("Product not found")
	}

	return product.ToDTO(s.threshold()), nil
}

func (s *productService) Create(ctx context.Context, req *models.CreateProductRequest) (*models.ProductDTO, error) {
	fields := s.buildFields(req.Name, req.Price, req.Stock, req.Description)

	if errs := validation.ValidateAll(fields); len(errs) > 0 {
		return nil, appErrors.ValidationError("Validation failed").WithFields(errs)
	}

	product, err := s.repo.Create(ctx, fields)
	if err != nil {
		if _, ok := appErrors.IsAppError(err); ok {
			return nil, err
		}

		return nil, appErrors.DatabaseError("Failed to create product").WithError(err)
	}

	return product.ToDTO(s.threshold()), nil
}

func (s *productService) Update(ctx context.Context, id int64, req *models.UpdateProductRequest) (*models.ProductDTO, error) {
	exists, err := s.repo.ExistsByID(ctx, id)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch product").WithError(err)
	}

	if !exists {
		return nil, appErrors.NotFoundError("Product not found")
	}

	fields := s.buildFields(req.Name, req.Price, req.Stock, req.Description)

	if errs := validation.ValidateAll(fields); len(errs) > 0 {
		return nil, appErrors.ValidationError("Validation failed").WithFields(errs)
	}

	product, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		if _, ok := appErrors.IsAppError(err); ok {
			return nil, err
		}

		return nil, appErrors.DatabaseError("Failed to update product").WithError(err)
	}

	// Deleted between the existence check and the write.
	if product == nil {
		return nil, appErrors.NotFoundError("Product not found")
	}

	return product.ToDTO(s.threshold()), nil
}

func (s *productService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return appErrors.DatabaseError("Failed to delete product").WithError(err)
	}

	if !deleted {
		return appErrors.NotFoundError("Product not found")
	}

	return nil
}

func (s *productService) ListAll(ctx context.Context) ([]*models.ProductDTO, error) {
	products, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch products").WithError(err)
	}

	return s.toDTOs(products), nil
}

// Search returns an empty slice for blank terms instead of scanning the whole
// table: empty UI input must never turn into a full listing.
func (s *productService) Search(ctx context.Context, term string) ([]*models.ProductDTO, error) {
	term = strings.TrimSpace(term)

	if term == "" {
		return []*models.ProductDTO{}, nil
	}

	products, err := s.repo.Search(ctx, term)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to search products").WithError(err)
	}

	return s.toDTOs(products), nil
}

func (s *productService) GetStats(ctx context.Context) (*models.ProductStats, error) {
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to count products").WithError(err)
	}

	lowStock, err := s.repo.FindLowStock(ctx, s.threshold())
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch low stock products").WithError(err)
	}

	outOfStock, err := s.repo.FindOutOfStock(ctx)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch out of stock products").WithError(err)
	}

	inStock, err := s.repo.FindInStock(ctx, s.threshold())
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch in stock products").WithError(err)
	}

	return &models.ProductStats{
		TotalProducts:      total,
		InStockProducts:    s.toDTOs(inStock),
		LowStockProducts:   s.toDTOs(lowStock),
		OutOfStockProducts: s.toDTOs(outOfStock),
	}, nil
}

func (s *productService) buildFields(name string, price float64, stock int, description string) models.ProductFields {
	return models.ProductFields{
		Name:        strings.TrimSpace(name),
		Price:       price,
		Stock:       stock,
		Description: s.sanitizer.Sanitize(strings.TrimSpace(description)),
	}
}
