package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/stockroom/product-catalog/internal/api/middleware"
	"github.com/stockroom/product-catalog/internal/models"
	service "github.com/stockroom/product-catalog/internal/services"
	"github.com/stockroom/product-catalog/internal/utils/response"
)

type ProductHandler struct {
	productService service.ProductService
	validator      *validator.Validate
}

func NewProductHandler(productService service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService, validator: validator.New()}
}

// CreateProduct godoc
//	@Summary		Create a new product
//	@Description	Creates a catalog product. The name must be unique; the description may be empty.
//	@Tags			Products
//	@Accept			json
//	@Produce		json
//	@Param			product	body		models.CreateProductRequest	true	"Product details"
//	@Success		201		{object}	models.ProductDTO			"Successfully created product"
//	@Failure		400		{object}	response.ErrorResponse		"Validation error"
//	@Failure		409		{object}	response.ErrorResponse		"A product with this name already exists"
//	@Failure		500		{object}	response.ErrorResponse		"Internal server error"
//	@Router			/products [post]
func (h *ProductHandler) CreateProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		var req models.CreateProductRequest
		if !parseAndValidate(w, r, &req, h.validator) {
			logger.Warn("Invalid create product input")

			return
		}

		product, err := h.productService.Create(r.Context(), &req)
		if err != nil {
			logger.Error("Failed to create product", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		logger.Info("Product created successfully", slog.Int64("productId", product.ID))
		response.Success(w, http.StatusCreated, product)
	}
}

// GetProduct godoc
//	@Summary		Get a product by ID
//	@Description	Retrieves a single product, including its derived stock status.
//	@Tags			Products
//	@Produce		json
//	@Param			id	path		int						true	"Product ID"
//	@Success		200	{object}	models.ProductDTO		"Successfully retrieved product"
//	@Failure		400	{object}	response.ErrorResponse	"Invalid product id"
//	@Failure		404	{object}	response.ErrorResponse	"Product not found"
//	@Failure		500	{object}	response.ErrorResponse	"Internal server error"
//	@Router			/products/{id} [get]
func (h *ProductHandler) GetProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		id, err := parseID(r, "id")
		if err != nil {
			logger.Warn("Invalid product id", slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		product, err := h.productService.GetByID(r.Context(), id)
		if err != nil {
			logger.Error("Failed to get product", slog.Int64("productId", id), slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, product)
	}
}

// UpdateProduct godoc
//	@Summary		Update a product
//	@Description	Replaces the product's name, price, stock and description.
//	@Tags			Products
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int							true	"Product ID"
//	@Param			product	body		models.UpdateProductRequest	true	"Updated product details"
//	@Success		200		{object}	models.ProductDTO			"Successfully updated product"
//	@Failure		400		{object}	response.ErrorResponse		"Validation error or invalid product id"
//	@Failure		404		{object}	response.ErrorResponse		"Product not found"
//	@Failure		409		{object}	response.ErrorResponse		"A product with this name already exists"
//	@Failure		500		{object}	response.ErrorResponse		"Internal server error"
//	@Router			/products/{id} [put]
func (h *ProductHandler) UpdateProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		id, err := parseID(r, "id")
		if err != nil {
			logger.Warn("Invalid product id", slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		var req models.UpdateProductRequest
		if !parseAndValidate(w, r, &req, h.validator) {
			logger.Warn("Invalid update product input", slog.Int64("productId", id))

			return
		}

		product, err := h.productService.Update(r.Context(), id, &req)
		if err != nil {
			logger.Error("Failed to update product", slog.Int64("productId", id), slog.Any("error", err))
			response.Error(w, err)

			return
		}

		logger.Info("Product updated successfully", slog.Int64("productId", id))
		response.Success(w, http.StatusOK, product)
	}
}

// DeleteProduct godoc
//	@Summary		Delete a product
//	@Description	Permanently removes a product from the catalog.
//	@Tags			Products
//	@Param			id	path	int	true	"Product ID"
//	@Success		204	"Product deleted"
//	@Failure		400	{object}	response.ErrorResponse	"Invalid product id"
//	@Failure		404	{object}	response.ErrorResponse	"Product not found"
//	@Failure		500	{object}	response.ErrorResponse	"Internal server error"
//	@Router			/products/{id} [delete]
func (h *ProductHandler) DeleteProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		id, err := parseID(r, "id")
		if err != nil {
			logger.Warn("Invalid product id", slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		if err := h.productService.Delete(r.Context(), id); err != nil {
			logger.Error("Failed to delete product", slog.Int64("productId", id), slog.Any("error", err))
			response.Error(w, err)

			return
		}

		logger.Info("Product deleted successfully", slog.Int64("productId", id))
		w.WriteHeader(http.StatusNoContent)
	}
}

// ListProducts godoc
//	@Summary		List products with pagination and search
//	@Description	Retrieves a newest-first page of products, optionally filtered by a case-insensitive name/description match.
//	@Tags			Products
//	@Produce		json
//	@Param			page		query		int											false	"Page number (default: 1)"	minimum(1)
//	@Param			per_page	query		int											false	"Items per page (default: 10, bounds: 5-100)"
//	@Param			search		query		string										false	"Filter term matched against name and description"
//	@Success		200			{object}	models.PaginatedProducts					"Successfully retrieved products"
//	@Failure		500			{object}	response.ErrorResponse						"Internal server error"
//	@Router			/products [get]
func (h *ProductHandler) ListProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))
		search := r.URL.Query().Get("search")

		products, err := h.productService.ListPaginated(r.Context(), page, perPage, search)
		if err != nil {
			logger.Error("Failed to list products", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, products)
	}
}

// SearchProducts godoc
//	@Summary		Search products
//	@Description	Returns products whose name or description contains the term, case-insensitively. A blank term returns an empty list.
//	@Tags			Products
//	@Produce		json
//	@Param			q	query		string					true	"Search term"
//	@Success		200	{array}		models.ProductDTO		"Matching products"
//	@Failure		500	{object}	response.ErrorResponse	"Internal server error"
//	@Router			/products/search [get]
func (h *ProductHandler) SearchProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		results, err := h.productService.Search(r.Context(), r.URL.Query().Get("q"))
		if err != nil {
			logger.Error("Failed to search products", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, results)
	}
}

// GetStats godoc
//	@Summary		Catalog stock statistics
//	@Description	Returns the total product count plus the products in each stock classification.
//	@Tags			Products
//	@Produce		json
//	@Success		200	{object}	models.ProductStats		"Current statistics"
//	@Failure		500	{object}	response.ErrorResponse	"Internal server error"
//	@Router			/products/stats [get]
func (h *ProductHandler) GetStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		stats, err := h.productService.GetStats(r.Context())
		if err != nil {
			logger.Error("Failed to compute product stats", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, stats)
	}
}
