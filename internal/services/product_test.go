package service_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/stockroom/product-catalog/internal/config"
	appErrors "github.com/stockroom/product-catalog/internal/errors"
	"github.com/stockroom/product-catalog/internal/models"
	"github.com/stockroom/product-catalog/internal/repositories/mocks"
	service "github.com/stockroom/product-catalog/internal/services"
)

func testCatalog() *config.Catalog {
	return &config.Catalog{
		LowStockThreshold: 5,
		DefaultPageSize:   10,
		MinPageSize:       5,
		MaxPageSize:       100,
	}
}

func newTestService(t *testing.T) (service.ProductService, *mocks.ProductRepository) {
	t.Helper()

	mockRepo := new(mocks.ProductRepository)

	return service.NewProductService(mockRepo, testCatalog()), mockRepo
}

func sampleProduct(id int64, name string, stock int) *models.Product {
	now := time.Now()

	return &models.Product{
		ID:        id,
		Name:      name,
		Price:     19.99,
		Stock:     stock,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestListPaginated(t *testing.T) {
	ctx := t.Context()

	t.Run("ClampsOutOfRangePageSize", func(t *testing.T) {
		tests := []struct {
			name      string
			requested int
			expected  int
		}{
			{"Zero", 0, 10},
			{"Negative", -1, 10},
			{"BelowMin", 3, 10},
			{"TooLarge", 1000, 10},
			{"WithinRange", 25, 25},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				// Arrange
				productService, mockRepo := newTestService(t)
				mockRepo.On("FindPaginated", mock.Anything, 1, tt.expected, "").
					Return([]*models.Product{}, 0, nil).Once()

				// Act
				result, err := productService.ListPaginated(ctx, 1, tt.requested, "")

				// Assert
				require.NoError(t, err)
				assert.Equal(t, tt.expected, result.PerPage)
				mockRepo.AssertExpectations(t)
			})
		}
	})

	t.Run("TrimsSearchAndComputesPages", func(t *testing.T) {
		// Arrange
		productService, mockRepo := newTestService(t)
		mockRepo.On("FindPaginated", mock.Anything, 2, 10, "widget").
			Return([]*models.Product{sampleProduct(1, "Widget A", 12)}, 23, nil).Once()

		// Act
		result, err := productService.ListPaginated(ctx, 2, 10, "  widget  ")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 23, result.Total)
		assert.Equal(t, 2, result.CurrentPage)
		assert.Equal(t, 3, result.TotalPages)
		assert.Equal(t, "widget", result.Search)
		require.Len(t, result.Data, 1)
		assert.Equal(t, models.StockStatusInStock, result.Data[0].StockStatus)
		mockRepo.AssertExpectations(t)
	})

	t.Run("EmptyCatalogStillHasOnePage", func(t *testing.T) {
		// Arrange
		productService, mockRepo := newTestService(t)
		mockRepo.On("FindPaginated", mock.Anything, 1, 10, "").
			Return([]*models.Product{}, 0, nil).Once()

		// Act
		result, err := productService.ListPaginated(ctx, 0, 0, "")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 1, result.TotalPages)
		assert.Equal(t, 1, result.CurrentPage)
		mockRepo.AssertExpectations(t)
	})

	t.Run("RepositoryError", func(t *testing.T) {
		// Arrange
		productService, mockRepo := newTestService(t)
		mockRepo.On("FindPaginated", mock.Anything, 1, 10, "").
			Return(nil, 0, errors.New("connection refused")).Once()

		// Act
		result, err := productService.ListPaginated(ctx, 1, 10, "")

		// Assert
		require.Error(t, err)
		assert.Nil(t, result)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeDatabaseError, appErr.Code)
		mockRepo.AssertExpectations(t)
	})
}

func TestGetByID(t *testing.T) {
	ctx := t.Context()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		productService, mockRepo := newTestService(t)
		mockRepo.On("FindByID", mock.Anything, int64(7)).
			Return(sampleProduct(7, "Widget A", 3), nil).Once()

		// Act
		product, err := productService.GetByID(ctx, 7)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, int64(7), product.ID)
		assert.Equal(t, models.StockStatusLowStock, product.StockStatus)
		mockRepo.AssertExpectations(t)
	})

	t.Run("NotFound", func(t *testing.T) {
		// Arrange
		productService, mockRepo := newTestService(t)
		mockRepo.On("FindByID", mock.Anything, int64(99)).
			Return(nil, nil).Once()

		// Act
		product, err := productService.GetByID(ctx, 99)

		// Assert
		require.Error(t, err)
		assert.Nil(t, product)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
		mockRepo.AssertExpectations(t)
	})
}

func TestCreate(t *testing.T) {
	ctx := t.Context()

	validReq := &models.CreateProductRequest{
		Name:        "Widget A",
		Price:       19.99,
		Stock:       12,
		Description: "A fine widget",
	}

	t.Run("Success", func(t *testing.T) {
		// Arrange
		productService, mockRepo := newTestService(t)
		created := sampleProduct(1, "Widget A", 12)
		mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(f models.ProductFields) bool {
			return f.Name == "Widget A" && f.Price == 19.99 && f.Stock == 12
		})).Return(created, nil).Once()

		// Act
		product, err := productService.Create(ctx, validReq)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, int64(1), product.ID)
		assert.Equal(t, models.StockStatusInStock, product.StockStatus)
		mockRepo.AssertExpectations(t)
	})

	t.Run("StripsMarkupFromDescription", func(t *testing.T) {
		// Arrange
		productService, mockRepo := newTestService(t)
		mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(f models.ProductFields) bool {
			return f.Description == "A fine widget"
		})).Return(sampleProduct(1, "Widget A", 12), nil).Once()

		req := &models.CreateProductRequest{
			Name:        "Widget A",
			Price:       19.99,
			Stock:       12,
			Description: "<b>A fine widget</b>",
		}

		// Act
		_, err := productService.Create(ctx, req)

		// Assert
		require.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("ValidationFailureSkipsRepository", func(t *testing.T) {
		// Arrange
		productService, mockRepo := newTestService(t)

		req := &models.CreateProductRequest{
			Name:  "x",
			Price: -5,
			Stock: -1,
		}

		// Act
		product, err := productService.Create(ctx, req)

		// Assert
		require.Error(t, err)
		assert.Nil(t, product)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeValidation, appErr.Code)
		assert.Contains(t, appErr.Fields, "name")
		assert.Contains(t, appErr.Fields, "price")
		assert.Contains(t, appErr.Fields, "stock")
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("DuplicateNamePropagatesConflict", func(t *testing.T) {
		// Arrange
		productService, mockRepo := newTestService(t)
		conflict := appErrors.DuplicateEntryError("A product with this name already exists")
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("models.ProductFields")).
			Return(nil, conflict).Once()

		// Act
		product, err := productService.Create(ctx, validReq)

		// Assert
		require.Error(t, err)
		assert.Nil(t, product)
		assert.Same(t, conflict, err, "conflict errors must propagate unchanged")
		mockRepo.AssertExpectations(t)
	})
}

func TestUpdate(t *testing.T) {
	ctx := t.Context()

	validReq := &models.UpdateProductRequest{
		Name:  "Widget A2",
		Price: 24.99,
		Stock: 7,
	}

	t.Run("NotFound", func(t *testing.T) {
		// Arrange
		productService, mockRepo := newTestService(t)
		mockRepo.On("ExistsByID", mock.Anything, int64(99)).Return(false, nil).Once()

		// Act
		product, err := productService.Update(ctx, 99, validReq)

		// Assert
		require.Error(t, err)
		assert.Nil(t, product)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("ValidationRunsAfterExistenceCheck", func(t *testing.T) {
		// Arrange
		productService, mockRepo := newTestService(t)
		mockRepo.On("ExistsByID", mock.Anything, int64(1)).Return(true, nil).Once()

		req := &models.UpdateProductRequest{Name: "Widget A2", Price: 0, Stock: 7}

		// Act
		product, err := productService.Update(ctx, 1, req)

		// Assert
		require.Error(t, err)
		assert.Nil(t, product)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeValidation, appErr.Code)
		assert.Contains(t, appErr.Fields, "price")
		mockRepo.AssertExpectations(t)
	})

	t.Run("Success", func(t *testing.T) {
		// Arrange
		productService, mockRepo := newTestService(t)
		mockRepo.On("ExistsByID", mock.Anything, int64(1)).Return(true, nil).Once()
		mockRepo.On("Update", mock.Anything, int64(1), mock.MatchedBy(func(f models.ProductFields) bool {
			return f.Name == "Widget A2" && f.Price == 24.99 && f.Stock == 7
		})).Return(sampleProduct(1, "Widget A2", 7), nil).Once()

		// Act
		product, err := productService.Update(ctx, 1, validReq)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "Widget A2", product.Name)
		mockRepo.AssertExpectations(t)
	})
}

func TestDelete(t *testing.T) {
	ctx := t.Context()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		productService, mockRepo := newTestService(t)
		mockRepo.On("Delete", mock.Anything, int64(1)).Return(true, nil).Once()

		// Act
		err := productService.Delete(ctx, 1)

		// Assert
		require.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("NotFound", func(t *testing.T) {
		// Arrange
		productService, mockRepo := newTestService(t)
		mockRepo.On("Delete", mock.Anything, int64(99)).Return(false, nil).Once()

		// Act
		err := productService.Delete(ctx, 99)

		// Assert
		require.Error(t, err)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
		mockRepo.AssertExpectations(t)
	})
}

func TestSearch(t *testing.T) {
	ctx := t.Context()

	t.Run("BlankTermShortCircuits", func(t *testing.T) {
		for _, term := range []string{"", "   "} {
			// Arrange
			productService, mockRepo := newTestService(t)

			// Act
			results, err := productService.Search(ctx, term)

			// Assert
			require.NoError(t, err)
			assert.Empty(t, results)
			mockRepo.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
		}
	})

	t.Run("MatchesByTerm", func(t *testing.T) {
		// Arrange
		productService, mockRepo := newTestService(t)
		mockRepo.On("Search", mock.Anything, "wid").
			Return([]*models.Product{sampleProduct(1, "Widget A", 12)}, nil).Once()

		// Act
		results, err := productService.Search(ctx, "wid")

		// Assert
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "Widget A", results[0].Name)
		mockRepo.AssertExpectations(t)
	})
}

func TestGetStats(t *testing.T) {
	ctx := t.Context()

	t.Run("CombinesRepositoryCalls", func(t *testing.T) {
		// Arrange
		productService, mockRepo := newTestService(t)
		mockRepo.On("Count", mock.Anything).Return(7, nil).Once()
		mockRepo.On("FindLowStock", mock.Anything, 5).
			Return([]*models.Product{sampleProduct(3, "C", 3), sampleProduct(4, "D", 5)}, nil).Once()
		mockRepo.On("FindOutOfStock", mock.Anything).
			Return([]*models.Product{sampleProduct(1, "A", 0), sampleProduct(2, "B", 0)}, nil).Once()
		mockRepo.On("FindInStock", mock.Anything, 5).
			Return([]*models.Product{
				sampleProduct(5, "E", 6), sampleProduct(6, "F", 10), sampleProduct(7, "G", 100),
			}, nil).Once()

		// Act
		stats, err := productService.GetStats(ctx)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 7, stats.TotalProducts)
		assert.Len(t, stats.LowStockProducts, 2)
		assert.Len(t, stats.OutOfStockProducts, 2)
		assert.Len(t, stats.InStockProducts, 3)
		mockRepo.AssertExpectations(t)
	})

	t.Run("CountError", func(t *testing.T) {
		// Arrange
		productService, mockRepo := newTestService(t)
		mockRepo.On("Count", mock.Anything).Return(0, errors.New("boom")).Once()

		// Act
		stats, err := productService.GetStats(ctx)

		// Assert
		require.Error(t, err)
		assert.Nil(t, stats)
		mockRepo.AssertExpectations(t)
	})
}
