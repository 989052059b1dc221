package domain

import "math"

// Epsilon is the absolute tolerance under which a remaining quantity counts
// as zero. Fill quantities are float sums, so exact zero is not guaranteed.
const Epsilon = 1e-9

// Order is the capability shared by every order variant. Each book accepts
// exactly one concrete variant and rejects the rest at placement time.
type Order interface {
	ID() int64
	Side() Direction
	Quantity() float64
	Remaining() float64
	Done() bool
}

// LimitOrder is an immutable snapshot of a priced order. Every fill produces
// a new value via Consume; the owning book stores the returned value back, so
// no caller ever observes in-place mutation.
type LimitOrder struct {
	id        int64
	side      Direction
	price     float64
	quantity  float64
	remaining float64
}

// NewLimitOrder creates a limit order with remaining equal to quantity.
// Price and quantity must be strictly positive.
func NewLimitOrder(id int64, side Direction, price, quantity float64) (LimitOrder, error) {
	if !side.Valid() {
		return LimitOrder{}, &ValidationError{Message: `side must be "buy" or "sell"`}
	}
	if price <= 0 {
		return LimitOrder{}, &ValidationError{Message: "price must be > 0"}
	}
	if quantity <= 0 {
		return LimitOrder{}, &ValidationError{Message: "quantity must be > 0"}
	}
	return LimitOrder{id: id, side: side, price: price, quantity: quantity, remaining: quantity}, nil
}

// ID returns the caller-assigned order identifier. Uniqueness is a caller
// concern; the books never index by it.
func (o LimitOrder) ID() int64 { return o.id }

// Side returns the order's direction.
func (o LimitOrder) Side() Direction { return o.side }

// Price returns the limit price, fixed at creation.
func (o LimitOrder) Price() float64 { return o.price }

// Quantity returns the original size at creation.
func (o LimitOrder) Quantity() float64 { return o.quantity }

// Remaining returns the current unfilled size.
func (o LimitOrder) Remaining() float64 { return o.remaining }

// Done reports whether remaining is within Epsilon of zero.
func (o LimitOrder) Done() bool { return math.Abs(o.remaining) < Epsilon }

// Consume returns a copy of o with remaining reduced by amount. Overfill is
// rejected, never clamped.
func (o LimitOrder) Consume(amount float64) (LimitOrder, error) {
	if amount <= 0 {
		return LimitOrder{}, &ValidationError{Message: "amount must be > 0"}
	}
	if amount > o.remaining {
		return LimitOrder{}, ErrOverfill
	}
	o.remaining -= amount
	return o, nil
}

// MidOrder is an immutable snapshot of an unpriced order. It carries no price
// of its own: each fill executes at the reference book's mid at that instant.
type MidOrder struct {
	id        int64
	side      Direction
	quantity  float64
	remaining float64
}

// NewMidOrder creates a mid order with remaining equal to quantity.
func NewMidOrder(id int64, side Direction, quantity float64) (MidOrder, error) {
	if !side.Valid() {
		return MidOrder{}, &ValidationError{Message: `side must be "buy" or "sell"`}
	}
	if quantity <= 0 {
		return MidOrder{}, &ValidationError{Message: "quantity must be > 0"}
	}
	return MidOrder{id: id, side: side, quantity: quantity, remaining: quantity}, nil
}

// ID returns the caller-assigned order identifier.
func (o MidOrder) ID() int64 { return o.id }

// Side returns the order's direction.
func (o MidOrder) Side() Direction { return o.side }

// Quantity returns the original size at creation.
func (o MidOrder) Quantity() float64 { return o.quantity }

// Remaining returns the current unfilled size.
func (o MidOrder) Remaining() float64 { return o.remaining }

// Done reports whether remaining is within Epsilon of zero.
func (o MidOrder) Done() bool { return math.Abs(o.remaining) < Epsilon }

// Consume returns a copy of o with remaining reduced by amount. Overfill is
// rejected, never clamped.
func (o MidOrder) Consume(amount float64) (MidOrder, error) {
	if amount <= 0 {
		return MidOrder{}, &ValidationError{Message: "amount must be > 0"}
	}
	if amount > o.remaining {
		return MidOrder{}, ErrOverfill
	}
	o.remaining -= amount
	return o, nil
}
