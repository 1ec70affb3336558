package repository_test

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/stockroom/product-catalog/internal/errors"
	"github.com/stockroom/product-catalog/internal/models"
	repository "github.com/stockroom/product-catalog/internal/repositories"
)

var productCols = []string{"id", "name", "price", "stock", "description", "created_at", "updated_at"}

func TestNewProductRepo(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewProductRepo(db)
	assert.NotNil(t, repo, "NewProductRepo should return a non-nil repository")
}

func TestProductRepository(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewProductRepo(db)
	ctx := t.Context()
	now := time.Now()

	t.Run("Create", func(t *testing.T) {
		expectedSQL := regexp.QuoteMeta(`INSERT INTO products (name, price, stock, description) VALUES ($1, $2, $3, NULLIF($4, '')) RETURNING id, name, price, stock, description, created_at, updated_at`)

		fields := models.ProductFields{
			Name:        "Widget A",
			Price:       19.99,
			Stock:       12,
			Description: "A fine widget",
		}

		t.Run("Success", func(t *testing.T) {
			// Arrange
			mock.ExpectQuery(expectedSQL).
				WithArgs(fields.Name, fields.Price, fields.Stock, fields.Description).
				WillReturnRows(sqlmock.NewRows(productCols).
					AddRow(int64(1), fields.Name, fields.Price, fields.Stock, fields.Description, now, now))

			// Act
			product, err := repo.Create(ctx, fields)

			// Assert
			require.NoError(t, err)
			assert.Equal(t, int64(1), product.ID)
			assert.Equal(t, fields.Name, product.Name)
			assert.WithinDuration(t, now, product.CreatedAt, time.Second)
			require.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("DuplicateName", func(t *testing.T) {
			// Arrange
			mock.ExpectQuery(expectedSQL).
				WithArgs(fields.Name, fields.Price, fields.Stock, fields.Description).
				WillReturnError(&pq.Error{Code: "23505", Constraint: "products_name_key"})

			// Act
			product, err := repo.Create(ctx, fields)

			// Assert
			require.Error(t, err)
			assert.Nil(t, product)

			appErr, ok := appErrors.IsAppError(err)
			require.True(t, ok, "unique violations should surface as AppError")
			assert.Equal(t, appErrors.ErrCodeDuplicateEntry, appErr.Code)
			require.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("Error", func(t *testing.T) {
			// Arrange
			dbError := errors.New("database insertion error")
			mock.ExpectQuery(expectedSQL).
				WithArgs(fields.Name, fields.Price, fields.Stock, fields.Description).
				WillReturnError(dbError)

			// Act
			product, err := repo.Create(ctx, fields)

			// Assert
			require.Error(t, err)
			assert.ErrorIs(t, err, dbError)
			assert.Nil(t, product)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	})

	t.Run("FindByID", func(t *testing.T) {
		expectedSQL := regexp.QuoteMeta(`SELECT id, name, price, stock, description, created_at, updated_at FROM products WHERE id = $1`)

		t.Run("Success", func(t *testing.T) {
			// Arrange
			mock.ExpectQuery(expectedSQL).
				WithArgs(int64(7)).
				WillReturnRows(sqlmock.NewRows(productCols).
					AddRow(int64(7), "Widget A", 19.99, 12, "A fine widget", now, now))

			// Act
			product, err := repo.FindByID(ctx, 7)

			// Assert
			require.NoError(t, err)
			require.NotNil(t, product)
			assert.Equal(t, int64(7), product.ID)
			assert.Equal(t, "Widget A", product.Name)
			require.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("NullDescription", func(t *testing.T) {
			// Arrange
			mock.ExpectQuery(expectedSQL).
				WithArgs(int64(8)).
				WillReturnRows(sqlmock.NewRows(productCols).
					AddRow(int64(8), "Widget B", 5.00, 0, nil, now, now))

			// Act
			product, err := repo.FindByID(ctx, 8)

			// Assert
			require.NoError(t, err)
			require.NotNil(t, product)
			assert.Empty(t, product.Description)
			require.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("Miss", func(t *testing.T) {
			// Arrange
			mock.ExpectQuery(expectedSQL).
				WithArgs(int64(99)).
				WillReturnRows(sqlmock.NewRows(productCols))

			// Act
			product, err := repo.FindByID(ctx, 99)

			// Assert: absence is not an error at this layer
			require.NoError(t, err)
			assert.Nil(t, product)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	})

	t.Run("FindPaginated", func(t *testing.T) {
		listSQL := regexp.QuoteMeta(`SELECT id, name, price, stock, description, created_at, updated_at FROM products ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`)
		countSQL := regexp.QuoteMeta(`SELECT COUNT(*) FROM products`)

		t.Run("NoSearch", func(t *testing.T) {
			// Arrange
			mock.ExpectQuery(countSQL).
				WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(23))
			mock.ExpectQuery(listSQL).
				WithArgs(10, 10).
				WillReturnRows(sqlmock.NewRows(productCols).
					AddRow(int64(2), "Widget B", 5.00, 3, nil, now, now).
					AddRow(int64(1), "Widget A", 19.99, 12, "A fine widget", now.Add(-time.Hour), now.Add(-time.Hour)))

			// Act
			products, total, err := repo.FindPaginated(ctx, 2, 10, "")

			// Assert
			require.NoError(t, err)
			assert.Equal(t, 23, total)
			assert.Len(t, products, 2)
			require.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("WithSearch", func(t *testing.T) {
			// Arrange
			filteredCountSQL := regexp.QuoteMeta(`SELECT COUNT(*) FROM products WHERE name ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%'`)
			filteredListSQL := regexp.QuoteMeta(`WHERE name ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%' ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`)

			mock.ExpectQuery(filteredCountSQL).
				WithArgs("wid").
				WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
			mock.ExpectQuery(filteredListSQL).
				WithArgs("wid", 10, 0).
				WillReturnRows(sqlmock.NewRows(productCols).
					AddRow(int64(1), "Widget A", 19.99, 12, nil, now, now))

			// Act
			products, total, err := repo.FindPaginated(ctx, 1, 10, "wid")

			// Assert
			require.NoError(t, err)
			assert.Equal(t, 1, total)
			require.Len(t, products, 1)
			assert.Equal(t, "Widget A", products[0].Name)
			require.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("CountError", func(t *testing.T) {
			// Arrange
			dbError := errors.New("count query failed")
			mock.ExpectQuery(countSQL).WillReturnError(dbError)

			// Act
			products, total, err := repo.FindPaginated(ctx, 1, 10, "")

			// Assert
			require.Error(t, err)
			assert.ErrorIs(t, err, dbError)
			assert.Nil(t, products)
			assert.Zero(t, total)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	})

	t.Run("Update", func(t *testing.T) {
		expectedSQL := regexp.QuoteMeta(`UPDATE products SET name = $1, price = $2, stock = $3, description = NULLIF($4, ''), updated_at = NOW() WHERE id = $5 RETURNING id, name, price, stock, description, created_at, updated_at`)

		fields := models.ProductFields{Name: "Widget A2", Price: 24.99, Stock: 7}

		t.Run("Success", func(t *testing.T) {
			// Arrange
			mock.ExpectQuery(expectedSQL).
				WithArgs(fields.Name, fields.Price, fields.Stock, fields.Description, int64(1)).
				WillReturnRows(sqlmock.NewRows(productCols).
					AddRow(int64(1), fields.Name, fields.Price, fields.Stock, nil, now.Add(-time.Hour), now))

			// Act
			product, err := repo.Update(ctx, 1, fields)

			// Assert
			require.NoError(t, err)
			require.NotNil(t, product)
			assert.Equal(t, fields.Name, product.Name)
			assert.True(t, product.UpdatedAt.After(product.CreatedAt))
			require.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("Miss", func(t *testing.T) {
			// Arrange
			mock.ExpectQuery(expectedSQL).
				WithArgs(fields.Name, fields.Price, fields.Stock, fields.Description, int64(99)).
				WillReturnRows(sqlmock.NewRows(productCols))

			// Act
			product, err := repo.Update(ctx, 99, fields)

			// Assert
			require.NoError(t, err)
			assert.Nil(t, product)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	})

	t.Run("Delete", func(t *testing.T) {
		expectedSQL := regexp.QuoteMeta(`DELETE FROM products WHERE id = $1`)

		t.Run("Removed", func(t *testing.T) {
			// Arrange
			mock.ExpectExec(expectedSQL).
				WithArgs(int64(1)).
				WillReturnResult(sqlmock.NewResult(0, 1))

			// Act
			deleted, err := repo.Delete(ctx, 1)

			// Assert
			require.NoError(t, err)
			assert.True(t, deleted)
			require.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("NoMatch", func(t *testing.T) {
			// Arrange
			mock.ExpectExec(expectedSQL).
				WithArgs(int64(99)).
				WillReturnResult(sqlmock.NewResult(0, 0))

			// Act
			deleted, err := repo.Delete(ctx, 99)

			// Assert
			require.NoError(t, err)
			assert.False(t, deleted)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	})

	t.Run("ExistsByID", func(t *testing.T) {
		expectedSQL := regexp.QuoteMeta(`SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`)

		mock.ExpectQuery(expectedSQL).
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		exists, err := repo.ExistsByID(ctx, 1)

		require.NoError(t, err)
		assert.True(t, exists)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Count", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM products`)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

		count, err := repo.Count(ctx)

		require.NoError(t, err)
		assert.Equal(t, 7, count)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("StockFilters", func(t *testing.T) {
		t.Run("LowStock", func(t *testing.T) {
			// Arrange
			expectedSQL := regexp.QuoteMeta(`WHERE stock > 0 AND stock <= $1 ORDER BY stock ASC, created_at DESC`)
			mock.ExpectQuery(expectedSQL).
				WithArgs(5).
				WillReturnRows(sqlmock.NewRows(productCols).
					AddRow(int64(3), "Widget C", 2.50, 3, nil, now, now).
					AddRow(int64(4), "Widget D", 3.50, 5, nil, now, now))

			// Act
			products, err := repo.FindLowStock(ctx, 5)

			// Assert
			require.NoError(t, err)
			assert.Len(t, products, 2)
			require.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("OutOfStock", func(t *testing.T) {
			// Arrange
			expectedSQL := regexp.QuoteMeta(`WHERE stock = 0 ORDER BY created_at DESC, id DESC`)
			mock.ExpectQuery(expectedSQL).
				WillReturnRows(sqlmock.NewRows(productCols).
					AddRow(int64(5), "Widget E", 9.00, 0, nil, now, now))

			// Act
			products, err := repo.FindOutOfStock(ctx)

			// Assert
			require.NoError(t, err)
			require.Len(t, products, 1)
			assert.Zero(t, products[0].Stock)
			require.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("InStock", func(t *testing.T) {
			// Arrange
			expectedSQL := regexp.QuoteMeta(`WHERE stock > $1 ORDER BY created_at DESC, id DESC`)
			mock.ExpectQuery(expectedSQL).
				WithArgs(5).
				WillReturnRows(sqlmock.NewRows(productCols).
					AddRow(int64(1), "Widget A", 19.99, 12, nil, now, now))

			// Act
			products, err := repo.FindInStock(ctx, 5)

			// Assert
			require.NoError(t, err)
			assert.Len(t, products, 1)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	})
}
