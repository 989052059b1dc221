package engine

import "github.com/efreitasn/matchcore/internal/domain"

// DemoOrders returns the seed used by the demo bootstrap: a two-sided,
// non-crossing book quoted 100.00 / 101.00.
func DemoOrders() []domain.LimitOrder {
	specs := []struct {
		id    int64
		side  domain.Direction
		price float64
		qty   float64
	}{
		// Asks.
		{1, domain.Sell, 101.00, 500},
		{2, domain.Sell, 101.00, 200},
		{3, domain.Sell, 101.50, 350},
		{4, domain.Sell, 101.50, 150},
		{5, domain.Sell, 102.00, 700},
		{6, domain.Sell, 102.50, 400},
		{7, domain.Sell, 102.50, 300},
		{8, domain.Sell, 102.50, 100},
		{9, domain.Sell, 103.00, 900},
		{10, domain.Sell, 103.50, 450},
		{11, domain.Sell, 103.50, 250},
		{12, domain.Sell, 104.00, 600},
		{13, domain.Sell, 104.50, 1200},
		{14, domain.Sell, 105.00, 500},
		{15, domain.Sell, 105.00, 300},

		// Bids.
		{16, domain.Buy, 100.00, 500},
		{17, domain.Buy, 100.00, 200},
		{18, domain.Buy, 99.50, 300},
		{19, domain.Buy, 99.50, 150},
		{20, domain.Buy, 99.00, 450},
		{21, domain.Buy, 98.50, 250},
		{22, domain.Buy, 98.50, 100},
		{23, domain.Buy, 98.00, 400},
		{24, domain.Buy, 97.50, 220},
		{25, domain.Buy, 97.00, 300},
		{26, domain.Buy, 96.50, 180},
		{27, domain.Buy, 96.00, 200},
	}

	out := make([]domain.LimitOrder, 0, len(specs))
	for _, s := range specs {
		o, err := domain.NewLimitOrder(s.id, s.side, s.price, s.qty)
		if err != nil {
			panic(err) // seed values are static
		}
		out = append(out, o)
	}
	return out
}
