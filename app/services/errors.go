package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrPartNotFound        = errors.New("part not found")
	ErrLineItemNotFound    = errors.New("cart item not found")
	ErrCartNotFound        = errors.New("cart not found")
	ErrInvalidQuantity     = errors.New("quantity must be a positive integer")
	ErrCartOrdered         = errors.New("cart has already been turned into an order")
	ErrNotCartOwner        = errors.New("cart belongs to another customer")
	ErrCustomerNotFound    = errors.New("customer not found")
	ErrOrderNotFound       = errors.New("order not found")
	ErrBadStatusTransition = errors.New("order status can only move forward")
)

// ValidationError carries per-field messages for a rejected form. It is
// expected and recoverable: nothing is persisted when it is returned.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
