package domain

// Direction indicates which side of the book an order belongs to.
type Direction string

const (
	Buy  Direction = "buy"
	Sell Direction = "sell"
)

// Valid reports whether d is one of the two known directions.
func (d Direction) Valid() bool {
	return d == Buy || d == Sell
}
