package services

import "errors"

// Business-rule failures surfaced to the client as 4xx. Anything not in
// this list is treated as a storage/dependency failure and becomes a 5xx.
var (
	ErrAddressMissing    = errors.New("add your address & phone number before placing order")
	ErrCartEmpty         = errors.New("cart is empty")
	ErrProductNotFound   = errors.New("product not found")
	ErrSellerMissing     = errors.New("product missing seller info")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrNoValidItems      = errors.New("no valid items in cart")
	ErrInvalidAmount     = errors.New("invalid order amount")
	ErrStockConflict     = errors.New("stock conflict")

	ErrOrderNotFound     = errors.New("order not found")
	ErrOrderHasNoItems   = errors.New("order has no items")
	ErrForbidden         = errors.New("order contains items from another seller")
	ErrOrderLocked       = errors.New("order is locked by a buyer-initiated state")
	ErrInvalidStatus     = errors.New("invalid status")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrUpdateConflict    = errors.New("order was modified concurrently")

	ErrNotAuthorized = errors.New("you can not perform this action")
	ErrAddressExists = errors.New("address already added")
)
