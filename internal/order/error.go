package order

import "errors"

var (
	// -- Validation & Input --
	ErrEmptySubmission = errors.New("order submission has no items")

	// -- Resource State --
	ErrOrderNotFound     = errors.New("order not found")
	ErrOrderItemNotFound = errors.New("order item not found")
	ErrNotOrderOwner     = errors.New("order belongs to another customer")
	ErrNotItemSeller     = errors.New("order item belongs to another seller")

	// -- Lifecycle --
	ErrInvalidTransition = errors.New("invalid status transition")

	// -- Database & Operation Failures --
	ErrFailedCreateOrder = errors.New("failed to create order")
)
