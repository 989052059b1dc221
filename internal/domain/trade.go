package domain

// Trade records a single match between a taker and a resting maker. Price is
// always the maker's resting price, so the taker never pays worse than the
// quote it crossed.
type Trade struct {
	TakerID  int64
	MakerID  int64
	Price    float64
	Quantity float64
}

// BookLevel is one aggregated price level: the price and the total remaining
// quantity resting at it.
type BookLevel struct {
	Price         float64
	TotalQuantity float64
}

// ExecutionReport is the synchronous result of placing one order.
type ExecutionReport struct {
	Trades         []Trade
	FilledQuantity float64
	VWAP           float64
}

// NewExecutionReport builds a report from the trades of one placement. An
// empty trade list yields (0, 0): an unfilled placement is a normal outcome,
// not an error.
func NewExecutionReport(trades []Trade) ExecutionReport {
	if len(trades) == 0 {
		return ExecutionReport{Trades: []Trade{}}
	}
	var filled, notional float64
	for _, t := range trades {
		filled += t.Quantity
		notional += t.Price * t.Quantity
	}
	return ExecutionReport{
		Trades:         trades,
		FilledQuantity: filled,
		VWAP:           notional / filled,
	}
}
