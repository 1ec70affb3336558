package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	appErrors "github.com/stockroom/product-catalog/internal/errors"
	"github.com/stockroom/product-catalog/internal/models"
	"github.com/stockroom/product-catalog/internal/utils"
)

// ProductRepository translates domain-shaped catalog operations into storage
// queries. It owns no business rules: callers clamp page sizes and decide
// what an absent record means.
type ProductRepository interface {
	FindByID(ctx context.Context, id int64) (*models.Product, error)
	FindAll(ctx context.Context) ([]*models.Product, error)
	FindPaginated(ctx context.Context, page, pageSize int, search string) ([]*models.Product, int, error)
	Search(ctx context.Context, term string) ([]*models.Product, error)
	Create(ctx context.Context, fields models.ProductFields) (*models.Product, error)
	Update(ctx context.Context, id int64, fields models.ProductFields) (*models.Product, error)
	Delete(ctx context.Context, id int64) (bool, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	Count(ctx context.Context) (int, error)
	FindLowStock(ctx context.Context, threshold int) ([]*models.Product, error)
	FindOutOfStock(ctx context.Context) ([]*models.Product, error)
	FindInStock(ctx context.Context, threshold int) ([]*models.Product, error)
}

type productRepository struct {
	DB *sql.DB
}

func NewProductRepo(db *sql.DB) ProductRepository {
	return &productRepository{DB: db}
}

const productColumns = `id, name, price, stock, description, created_at, updated_at`

// uniqueViolation is the postgres error code raised when the name uniqueness
// constraint rejects a write.
const uniqueViolation = "23505"

func scanProduct(row interface{ Scan(...any) error }) (*models.Product, error) {
	product := &models.Product{}

	var description sql.NullString

	err := row.Scan(&product.ID, &product.Name, &product.Price, &product.Stock,
		&description, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return nil, err
	}

	product.Description = description.String

	return product, nil
}

func (r *productRepository) queryProducts(ctx context.Context, query string, args ...any) ([]*models.Product, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var products []*models.Product

	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}

		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return products, nil
}

// FindByID returns (nil, nil) when no record matches; the caller decides
// whether absence is an error.
func (r *productRepository) FindByID(ctx context.Context, id int64) (*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	product, err := scanProduct(r.DB.QueryRowContext(dbCtx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("querying product by id: %w", err)
	}

	return product, nil
}

func (r *productRepository) FindAll(ctx context.Context) ([]*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC, id DESC`

	return r.queryProducts(dbCtx, query)
}

// FindPaginated trusts its page and pageSize: the service clamps them before
// they reach this layer. A non-empty search filters on name OR description,
// case-insensitively.
func (r *productRepository) FindPaginated(ctx context.Context, page, pageSize int, search string) ([]*models.Product, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var (
		total     int
		countErr  error
		countArgs []any
	)

	countQuery := `SELECT COUNT(*) FROM products`
	listQuery := `SELECT ` + productColumns + ` FROM products`

	if search != "" {
		filter := ` WHERE name ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%'`
		countQuery += filter
		listQuery += filter
		countArgs = append(countArgs, search)
	}

	countErr = r.DB.QueryRowContext(dbCtx, countQuery, countArgs...).Scan(&total)
	if countErr != nil {
		return nil, 0, countErr
	}

	offset := (page - 1) * pageSize

	listArgs := countArgs
	if search != "" {
		listQuery += ` ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`
	} else {
		listQuery += ` ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`
	}

	listArgs = append(listArgs, pageSize, offset)

	products, err := r.queryProducts(dbCtx, listQuery, listArgs...)
	if err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

// Search matches name OR description, case-insensitively. Blank-term
// short-circuiting is the service's rule, not this layer's.
func (r *productRepository) Search(ctx context.Context, term string) ([]*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + productColumns + ` FROM products
		WHERE name ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%'
		ORDER BY created_at DESC, id DESC`

	return r.queryProducts(dbCtx, query, term)
}

func (r *productRepository) Create(ctx context.Context, fields models.ProductFields) (*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `INSERT INTO products (name, price, stock, description)
		VALUES ($1, $2, $3, NULLIF($4, ''))
		RETURNING ` + productColumns

	product, err := scanProduct(r.DB.QueryRowContext(dbCtx, query,
		fields.Name, fields.Price, fields.Stock, fields.Description))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, appErrors.DuplicateEntryError("A product with this name already exists").WithError(err)
		}

		return nil, fmt.Errorf("inserting product: %w", err)
	}

	return product, nil
}

// Update returns (nil, nil) when no record with the id exists. The store
// refreshes updated_at; created_at and id are untouched.
func (r *productRepository) Update(ctx context.Context, id int64, fields models.ProductFields) (*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `UPDATE products
		SET name = $1, price = $2, stock = $3, description = NULLIF($4, ''), updated_at = NOW()
		WHERE id = $5
		RETURNING ` + productColumns

	product, err := scanProduct(r.DB.QueryRowContext(dbCtx, query,
		fields.Name, fields.Price, fields.Stock, fields.Description, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		if isUniqueViolation(err) {
			return nil, appErrors.DuplicateEntryError("A product with this name already exists").WithError(err)
		}

		return nil, fmt.Errorf("updating product: %w", err)
	}

	return product, nil
}

func (r *productRepository) Delete(ctx context.Context, id int64) (bool, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("deleting product: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("reading delete result: %w", err)
	}

	return affected > 0, nil
}

func (r *productRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var exists bool

	err := r.DB.QueryRowContext(dbCtx,
		`SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking product existence: %w", err)
	}

	return exists, nil
}

func (r *productRepository) Count(ctx context.Context) (int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var count int

	err := r.DB.QueryRowContext(dbCtx, `SELECT COUNT(*) FROM products`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting products: %w", err)
	}

	return count, nil
}

func (r *productRepository) FindLowStock(ctx context.Context, threshold int) ([]*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + productColumns + ` FROM products
		WHERE stock > 0 AND stock <= $1
		ORDER BY stock ASC, created_at DESC`

	return r.queryProducts(dbCtx, query, threshold)
}

func (r *productRepository) FindOutOfStock(ctx context.Context) ([]*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + productColumns + ` FROM products
		WHERE stock = 0
		ORDER BY created_at DESC, id DESC`

	return r.queryProducts(dbCtx, query)
}

// FindInStock returns products comfortably above the low-stock threshold;
// anything at or below it belongs to FindLowStock.
func (r *productRepository) FindInStock(ctx context.Context, threshold int) ([]*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + productColumns + ` FROM products
		WHERE stock > $1
		ORDER BY created_at DESC, id DESC`

	return r.queryProducts(dbCtx, query, threshold)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error

	return errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation
}
