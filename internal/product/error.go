package product

import "errors"

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrVariantNotFound  = errors.New("product variant not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrNotProductOwner  = errors.New("product belongs to another seller")
)
