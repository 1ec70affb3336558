package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	appErrors "github.com/stockroom/product-catalog/internal/errors"
	"github.com/stockroom/product-catalog/internal/utils"
	"github.com/stockroom/product-catalog/internal/utils/response"
)

// parseAndValidate decodes the JSON body into dest and runs the request-shape
// validator, writing the error response itself when either step fails.
func parseAndValidate(w http.ResponseWriter, r *http.Request, dest any, validate *validator.Validate) bool {
	if err := utils.DecodeJSONBody(r, dest); err != nil {
		response.Error(w, appErrors.BadRequestError(err.Error()))

		return false
	}

	if err := utils.ValidateStruct(validate, dest); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			response.ValidationError(w, validationErrs)

			return false
		}

		response.Error(w, appErrors.BadRequestError("Invalid request payload"))

		return false
	}

	return true
}

// parseID reads a positive int64 path value.
func parseID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id < 1 {
		return 0, appErrors.BadRequestError("Invalid product id")
	}

	return id, nil
}
