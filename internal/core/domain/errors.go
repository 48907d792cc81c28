package domain

import (
	"errors"
	"fmt"
)

// Error categories. Every error returned by Stock wraps exactly one of them.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrOutOfRange      = errors.New("value out of range")
	ErrNotFound        = errors.New("not found")
)

var (
	ErrEmptyItemName       = fmt.Errorf("%w: item must be a non-empty name", ErrInvalidArgument)
	ErrNegativeQuantity    = fmt.Errorf("%w: quantity must be non-negative; use remove to decrement stock", ErrOutOfRange)
	ErrNonPositiveQuantity = fmt.Errorf("%w: quantity to remove must be positive", ErrOutOfRange)
	ErrInsufficientStock   = fmt.Errorf("%w: insufficient stock", ErrOutOfRange)
	ErrItemNotFound        = fmt.Errorf("%w: item not in inventory", ErrNotFound)
)

// Reasons attached to snapshot entries that could not be loaded.
var (
	ErrNonNumericQuantity  = errors.New("quantity is not numeric")
	ErrNonPositiveSnapshot = errors.New("quantity is not positive")
)

// IsMutationError reports whether err belongs to one of the three categories
// raised by add/remove/query operations.
func IsMutationError(err error) bool {
	return errors.Is(err, ErrInvalidArgument) ||
		errors.Is(err, ErrOutOfRange) ||
		errors.Is(err, ErrNotFound)
}
