package engine

import (
	"fmt"
	"math"

	"github.com/efreitasn/matchcore/internal/domain"
)

// MidOrderBook holds unpriced orders in two flat FIFO queues and executes
// them at the companion limit book's current mid price. There are no price
// levels: mid orders are priced only at execution time.
type MidOrderBook struct {
	bids []domain.MidOrder
	asks []domain.MidOrder
	ref  *LimitOrderBook
}

// NewMidOrderBook creates a mid book against an existing limit book. The
// reference is read-only: only its mid price is consulted.
func NewMidOrderBook(ref *LimitOrderBook) (*MidOrderBook, error) {
	if ref == nil {
		return nil, &domain.ValidationError{Message: "reference limit order book must not be nil"}
	}
	return &MidOrderBook{ref: ref}, nil
}

// AddOrder enqueues o at the back of its side's queue without matching.
func (m *MidOrderBook) AddOrder(o domain.MidOrder) {
	if o.Side() == domain.Buy {
		m.bids = append(m.bids, o)
	} else {
		m.asks = append(m.asks, o)
	}
}

// PlaceOrder matches the incoming taker against the opposite queue in FIFO
// order, pricing each fill at the reference book's mid at that instant, and
// enqueues whatever is left. Only MidOrders are accepted.
func (m *MidOrderBook) PlaceOrder(order domain.Order) (domain.ExecutionReport, error) {
	mo, ok := order.(domain.MidOrder)
	if !ok {
		return domain.ExecutionReport{}, fmt.Errorf("%w: mid order book only accepts mid orders", domain.ErrWrongOrderType)
	}

	opposite := &m.asks
	if mo.Side() == domain.Sell {
		opposite = &m.bids
	}

	var trades []domain.Trade
	var err error

	for !mo.Done() && len(*opposite) > 0 {
		// Read the mid before touching the queue, so an empty reference book
		// fails without leaving a half-consumed maker behind.
		mid, midErr := m.ref.Mid()
		if midErr != nil {
			return domain.ExecutionReport{}, midErr
		}

		maker := (*opposite)[0]

		fill := math.Min(mo.Remaining(), maker.Remaining())
		trades = append(trades, domain.Trade{
			TakerID:  mo.ID(),
			MakerID:  maker.ID(),
			Price:    mid,
			Quantity: fill,
		})

		if mo, err = mo.Consume(fill); err != nil {
			return domain.ExecutionReport{}, err
		}
		if maker, err = maker.Consume(fill); err != nil {
			return domain.ExecutionReport{}, err
		}

		// Same head-swap as the limit book: the maker keeps its queue
		// position until done.
		if maker.Done() {
			*opposite = (*opposite)[1:]
		} else {
			(*opposite)[0] = maker
		}
	}

	if !mo.Done() {
		m.AddOrder(mo)
	}

	return domain.NewExecutionReport(trades), nil
}

// BidCount returns the number of queued mid bids.
func (m *MidOrderBook) BidCount() int { return len(m.bids) }

// AskCount returns the number of queued mid asks.
func (m *MidOrderBook) AskCount() int { return len(m.asks) }
