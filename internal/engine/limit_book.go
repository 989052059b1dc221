package engine

import (
	"fmt"
	"math"

	"github.com/google/btree"

	"github.com/efreitasn/matchcore/internal/domain"
)

// priceLevel holds the FIFO queue of orders resting at one price. The head of
// the slice is the oldest order. A drained level is removed from its tree
// immediately; empty levels never persist.
type priceLevel struct {
	price  float64
	orders []domain.LimitOrder
}

// bidLevelLess orders the bid side by price descending, so Min() returns the
// best bid.
func bidLevelLess(a, b *priceLevel) bool { return a.price > b.price }

// askLevelLess orders the ask side by price ascending, so Min() returns the
// best ask.
func askLevelLess(a, b *priceLevel) bool { return a.price < b.price }

// LimitOrderBook is a price-time priority book: B-trees of price levels on
// each side, a FIFO queue of immutable orders per level. It assumes a single
// sequential writer; callers needing concurrent access must serialize around
// the whole book.
type LimitOrderBook struct {
	bids *btree.BTreeG[*priceLevel]
	asks *btree.BTreeG[*priceLevel]
}

const btreeDegree = 32

func newLimitOrderBook() *LimitOrderBook {
	return &LimitOrderBook{
		bids: btree.NewG(btreeDegree, bidLevelLess),
		asks: btree.NewG(btreeDegree, askLevelLess),
	}
}

// NewLimitOrderBook builds a book from an optional snapshot of resting
// orders. Each seed goes through the normal matching path; a seed that would
// trade fails the whole construction, so a book built from a snapshot is
// never silently self-trading.
func NewLimitOrderBook(orders []domain.LimitOrder) (*LimitOrderBook, error) {
	b := newLimitOrderBook()
	for _, o := range orders {
		report, err := b.PlaceOrder(o)
		if err != nil {
			return nil, err
		}
		if len(report.Trades) > 0 {
			return nil, fmt.Errorf("%w: seed order %d crosses the book", domain.ErrCrossingOrders, o.ID())
		}
	}
	return b, nil
}

// Copy returns an independent deep copy of both sides: new trees and new
// queues holding the same immutable order values.
func (b *LimitOrderBook) Copy() *LimitOrderBook {
	c := newLimitOrderBook()
	copySide(b.bids, c.bids)
	copySide(b.asks, c.asks)
	return c
}

func copySide(src, dst *btree.BTreeG[*priceLevel]) {
	src.Ascend(func(lvl *priceLevel) bool {
		dst.ReplaceOrInsert(&priceLevel{
			price:  lvl.price,
			orders: append([]domain.LimitOrder(nil), lvl.orders...),
		})
		return true
	})
}

// AddOrder rests o at the back of its side/price queue without matching,
// creating the level if absent. Used for residual quantity after a sweep.
func (b *LimitOrderBook) AddOrder(o domain.LimitOrder) {
	tree := b.asks
	if o.Side() == domain.Buy {
		tree = b.bids
	}
	key := &priceLevel{price: o.Price()}
	lvl, ok := tree.Get(key)
	if !ok {
		lvl = key
		tree.ReplaceOrInsert(lvl)
	}
	lvl.orders = append(lvl.orders, o)
}

// PlaceOrder matches the incoming taker against the opposite side under
// price-time priority, sweeping level by level while the taker's price
// crosses the best opposite price, and rests whatever is left. Only
// LimitOrders are accepted.
func (b *LimitOrderBook) PlaceOrder(order domain.Order) (domain.ExecutionReport, error) {
	lo, ok := order.(domain.LimitOrder)
	if !ok {
		return domain.ExecutionReport{}, fmt.Errorf("%w: limit order book only accepts limit orders", domain.ErrWrongOrderType)
	}

	opposite := b.asks
	if lo.Side() == domain.Sell {
		opposite = b.bids
	}

	var trades []domain.Trade
	var err error

	for !lo.Done() {
		lvl, found := opposite.Min()
		if !found {
			break
		}
		if lo.Side() == domain.Buy && lo.Price() < lvl.price {
			break
		}
		if lo.Side() == domain.Sell && lo.Price() > lvl.price {
			break
		}

		for !lo.Done() && len(lvl.orders) > 0 {
			maker := lvl.orders[0]

			fill := math.Min(lo.Remaining(), maker.Remaining())
			trades = append(trades, domain.Trade{
				TakerID:  lo.ID(),
				MakerID:  maker.ID(),
				Price:    maker.Price(),
				Quantity: fill,
			})

			if lo, err = lo.Consume(fill); err != nil {
				return domain.ExecutionReport{}, err
			}
			if maker, err = maker.Consume(fill); err != nil {
				return domain.ExecutionReport{}, err
			}

			// Swap the consumed snapshot in at the head so the maker keeps
			// its time priority; pop it once done.
			if maker.Done() {
				lvl.orders = lvl.orders[1:]
			} else {
				lvl.orders[0] = maker
			}
		}

		if len(lvl.orders) == 0 {
			opposite.Delete(lvl)
		}
	}

	if !lo.Done() {
		b.AddOrder(lo)
	}

	return domain.NewExecutionReport(trades), nil
}

// BestBid returns the highest resting bid price.
func (b *LimitOrderBook) BestBid() (float64, error) {
	lvl, ok := b.bids.Min()
	if !ok {
		return 0, fmt.Errorf("bids: %w", domain.ErrEmptySide)
	}
	return lvl.price, nil
}

// BestAsk returns the lowest resting ask price.
func (b *LimitOrderBook) BestAsk() (float64, error) {
	lvl, ok := b.asks.Min()
	if !ok {
		return 0, fmt.Errorf("asks: %w", domain.ErrEmptySide)
	}
	return lvl.price, nil
}

// Mid returns (bestBid + bestAsk) / 2, failing when either side is empty.
func (b *LimitOrderBook) Mid() (float64, error) {
	bid, err := b.BestBid()
	if err != nil {
		return 0, err
	}
	ask, err := b.BestAsk()
	if err != nil {
		return 0, err
	}
	return (bid + ask) / 2, nil
}

// OrdersAtPrice returns a snapshot of the FIFO queue at price on whichever
// side holds it, or an empty slice if neither side has that level.
func (b *LimitOrderBook) OrdersAtPrice(price float64) []domain.LimitOrder {
	key := &priceLevel{price: price}
	lvl, ok := b.bids.Get(key)
	if !ok {
		lvl, ok = b.asks.Get(key)
	}
	if !ok {
		return []domain.LimitOrder{}
	}
	return append([]domain.LimitOrder{}, lvl.orders...)
}

// BidLevels returns (price, total remaining quantity) per bid level, best
// price first.
func (b *LimitOrderBook) BidLevels() []domain.BookLevel {
	return levels(b.bids)
}

// AskLevels returns (price, total remaining quantity) per ask level, best
// price first.
func (b *LimitOrderBook) AskLevels() []domain.BookLevel {
	return levels(b.asks)
}

func levels(tree *btree.BTreeG[*priceLevel]) []domain.BookLevel {
	out := make([]domain.BookLevel, 0, tree.Len())
	tree.Ascend(func(lvl *priceLevel) bool {
		var total float64
		for _, o := range lvl.orders {
			total += o.Remaining()
		}
		out = append(out, domain.BookLevel{Price: lvl.price, TotalQuantity: total})
		return true
	})
	return out
}

// VWAPBook returns the quantity-weighted average price across every resting
// order on both sides.
func (b *LimitOrderBook) VWAPBook() (float64, error) {
	bidNotional, bidVolume := sideNotional(b.bids)
	askNotional, askVolume := sideNotional(b.asks)
	volume := bidVolume + askVolume
	if volume == 0 {
		return 0, fmt.Errorf("cannot compute VWAP: %w", domain.ErrEmptyBook)
	}
	return (bidNotional + askNotional) / volume, nil
}

// VWAPSide is VWAPBook restricted to one side.
func (b *LimitOrderBook) VWAPSide(side domain.Direction) (float64, error) {
	tree := b.asks
	if side == domain.Buy {
		tree = b.bids
	}
	notional, volume := sideNotional(tree)
	if volume == 0 {
		return 0, fmt.Errorf("%s: %w", side, domain.ErrEmptySide)
	}
	return notional / volume, nil
}

func sideNotional(tree *btree.BTreeG[*priceLevel]) (notional, volume float64) {
	tree.Ascend(func(lvl *priceLevel) bool {
		for _, o := range lvl.orders {
			notional += o.Price() * o.Remaining()
			volume += o.Remaining()
		}
		return true
	})
	return notional, volume
}

// BidCount returns the number of individual resting bids.
func (b *LimitOrderBook) BidCount() int {
	return countOrders(b.bids)
}

// AskCount returns the number of individual resting asks.
func (b *LimitOrderBook) AskCount() int {
	return countOrders(b.asks)
}

func countOrders(tree *btree.BTreeG[*priceLevel]) int {
	n := 0
	tree.Ascend(func(lvl *priceLevel) bool {
		n += len(lvl.orders)
		return true
	})
	return n
}
