package cart

import "errors"

var (
	// -- Validation & Input --
	ErrInvalidQuantity = errors.New("invalid cart quantity")
	ErrProductNotFound = errors.New("product not found")
	ErrVariantNotFound = errors.New("product variant not found")

	// -- Persistence --
	ErrFailedSaveCart = errors.New("failed to save cart")
)

// SellerUnknown is the grouping bucket for line items whose product can no
// longer be resolved. Such items must stay visible, not be dropped.
const SellerUnknown = "unknown"
