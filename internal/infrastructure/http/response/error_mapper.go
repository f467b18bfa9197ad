package response

import (
	"errors"
	"net/http"

	domainErrors "github.com/zenvory/storefront-service/internal/domain/errors"
)

type ErrorMapping struct {
	HTTPStatus int
	Status     Status
	Message    string
}

var errorMappings = map[error]ErrorMapping{
	domainErrors.ErrProductNotFound: {
		HTTPStatus: http.StatusNotFound,
		Status:     StatusNotFound,
		Message:    "Product not found",
	},
	domainErrors.ErrCategoryNotFound: {
		HTTPStatus: http.StatusNotFound,
		Status:     StatusNotFound,
		Message:    "Category not found",
	},
	domainErrors.ErrDuplicateSKU: {
		HTTPStatus: http.StatusConflict,
		Status:     StatusConflict,
		Message:    "Product with this sku already exists",
	},
	domainErrors.ErrLineNotFound: {
		HTTPStatus: http.StatusNotFound,
		Status:     StatusNotFound,
		Message:    "Cart line not found",
	},
	domainErrors.ErrInvalidQuantity: {
		HTTPStatus: http.StatusBadRequest,
		Status:     StatusError,
		Message:    "Quantity must be at least 1",
	},
	domainErrors.ErrCartUnavailable: {
		HTTPStatus: http.StatusServiceUnavailable,
		Status:     StatusInternalError,
		Message:    "Failed to update cart",
	},
	domainErrors.ErrMissingSKU: {
		HTTPStatus: http.StatusBadRequest,
		Status:     StatusValidationError,
		Message:    "sku cannot be empty",
	},
	domainErrors.ErrMissingName: {
		HTTPStatus: http.StatusBadRequest,
		Status:     StatusValidationError,
		Message:    "name cannot be empty",
	},
}

func MapDomainError(err error) (int, *ErrorResponse) {
	for domainErr, mapping := range errorMappings {
		if errors.Is(err, domainErr) {
			return mapping.HTTPStatus, Error(mapping.Status, mapping.Message, err.Error())
		}
	}

	return http.StatusInternalServerError, Error(StatusInternalError, "Internal server error", err.Error())
}

func WriteDomainError(w http.ResponseWriter, err error) {
	statusCode, errorResponse := MapDomainError(err)
	WriteJSON(w, statusCode, errorResponse)
}
