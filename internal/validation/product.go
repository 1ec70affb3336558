package validation

import (
	"fmt"
	"math"
	"strings"

	"github.com/stockroom/product-catalog/internal/models"
)

// Field limits for product records. The storage schema and the HTTP request
// DTOs must stay in sync with these.
const (
	NameMinLength        = 2
	NameMaxLength        = 255
	PriceMax             = 999999.99
	PriceDecimalPlaces   = 2
	StockMax             = 999999
	DescriptionMaxLength = 1000
)

// ValidateName returns a human-readable message, or "" when the name is
// valid. Leading and trailing whitespace does not count towards the minimum.
func ValidateName(name string) string {
	trimmed := strings.TrimSpace(name)

	if trimmed == "" {
		return "The product name is required."
	}

	if len(trimmed) < NameMinLength {
		return fmt.Sprintf("The product name must be at least %d characters.", NameMinLength)
	}

	if len(name) > NameMaxLength {
		return fmt.Sprintf("The product name may not be greater than %d characters.", NameMaxLength)
	}

	return ""
}

func ValidatePrice(price float64) string {
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return "The product price must be a valid number."
	}

	if price <= 0 {
		return "The product price must be greater than 0."
	}

	if price > PriceMax {
		return fmt.Sprintf("The product price may not be greater than %.2f.", PriceMax)
	}

	// Reject more than two fractional digits, tolerating float noise.
	cents := price * 100
	if math.Abs(cents-math.Round(cents)) > 1e-6 {
		return fmt.Sprintf("The product price must have at most %d decimal places.", PriceDecimalPlaces)
	}

	return ""
}

func ValidateStock(stock int) string {
	if stock < 0 {
		return "The product stock cannot be negative."
	}

	if stock > StockMax {
		return fmt.Sprintf("The product stock may not be greater than %d.", StockMax)
	}

	return ""
}

// ValidateDescription only bounds the length; the description is optional.
func ValidateDescription(description string) string {
	if len(description) > DescriptionMaxLength {
		return fmt.Sprintf("The product description cannot exceed %d characters.", DescriptionMaxLength)
	}

	return ""
}

// ValidateAll aggregates all field validators. An empty map means the bundle
// is valid.
func ValidateAll(fields models.ProductFields) map[string]string {
	errs := make(map[string]string)

	if msg := ValidateName(fields.Name); msg != "" {
		errs["name"] = msg
	}

	if msg := ValidatePrice(fields.Price); msg != "" {
		errs["price"] = msg
	}

	if msg := ValidateStock(fields.Stock); msg != "" {
		errs["stock"] = msg
	}

	if msg := ValidateDescription(fields.Description); msg != "" {
		errs["description"] = msg
	}

	return errs
}
