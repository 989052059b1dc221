package domain

import "errors"

// Sentinel errors for the matching core. All failures are synchronous and
// non-retryable; the handler layer maps these to HTTP status codes.
var (
	ErrOverfill       = errors.New("overfill")
	ErrWrongOrderType = errors.New("wrong_order_type")
	ErrCrossingOrders = errors.New("crossing_orders")
	ErrEmptySide      = errors.New("empty_side")
	ErrEmptyBook      = errors.New("empty_book")
)

// ValidationError represents an invalid construction argument.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
