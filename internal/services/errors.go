// Package services defines the business logic for the catalog and the
// order lifecycle. This file centralizes common service-level error values
// so that they can be consistently returned by service methods and checked
// by callers.
//
// Translation into user-facing messages or HTTP status codes is performed
// at the handler layer.
package services

import "errors"

var (
	// ErrProductNotFound indicates that the requested product does not exist.
	ErrProductNotFound = errors.New("product not found")

	// ErrOrderNotFound indicates that the requested order does not exist.
	ErrOrderNotFound = errors.New("order not found")

	// ErrInvalidProduct is returned when a product payload is missing a name.
	ErrInvalidProduct = errors.New("product name is required")

	// ErrInvalidPrice is returned when a price is negative or not a number.
	ErrInvalidPrice = errors.New("price must be a non-negative number")

	// ErrInvalidField is returned when an edit targets a column outside the
	// editable whitelist.
	ErrInvalidField = errors.New("field is not editable")

	// ErrInvalidCustomer is returned when an order is missing the customer
	// name or phone.
	ErrInvalidCustomer = errors.New("customer name and phone are required")

	// ErrEmptyOrder is returned when an order request carries no items.
	ErrEmptyOrder = errors.New("order has no items")

	// ErrInvalidQuantity is returned when an item quantity is not positive.
	// Quantity is validated here, at the boundary; the repository does not
	// re-check it.
	ErrInvalidQuantity = errors.New("quantity must be positive")

	// ErrInvalidStatus is returned when a status value names no known state.
	ErrInvalidStatus = errors.New("invalid order status")

	// ErrInvalidTransition is returned when a status change violates the
	// transition policy (see domain.Status).
	ErrInvalidTransition = errors.New("illegal status transition")
)
