package errors

import (
	"errors"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrDuplicateSKU     = errors.New("product with this sku already exists")

	ErrLineNotFound    = errors.New("cart line not found")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrCartUnavailable = errors.New("failed to update cart")

	ErrMissingSKU  = errors.New("sku cannot be empty")
	ErrMissingName = errors.New("name cannot be empty")
)
