package service

import (
	"sync"

	"github.com/google/uuid"

	"github.com/efreitasn/matchcore/internal/domain"
	"github.com/efreitasn/matchcore/internal/engine"
)

// PlaceLimitOrderRequest carries a caller-assigned limit order into the venue.
type PlaceLimitOrderRequest struct {
	ID       int64
	Side     domain.Direction
	Price    float64
	Quantity float64
}

// PlaceMidOrderRequest carries a caller-assigned mid order into the venue.
type PlaceMidOrderRequest struct {
	ID       int64
	Side     domain.Direction
	Quantity float64
}

// TradeResult is one fill within a placement result.
type TradeResult struct {
	TakerID  int64
	MakerID  int64
	Price    float64
	Quantity float64
}

// PlacementResult is the outcome of one placement: the execution report plus
// what happened to the taker's residual quantity.
type PlacementResult struct {
	ReportID       string
	Trades         []TradeResult
	FilledQuantity float64
	VWAP           float64
	Remaining      float64
	Resting        bool
}

// OrderSnapshot is a read-only view of one resting limit order.
type OrderSnapshot struct {
	ID        int64
	Side      domain.Direction
	Price     float64
	Quantity  float64
	Remaining float64
}

// LevelSnapshot is one aggregated price level in a book snapshot.
type LevelSnapshot struct {
	Price         float64
	TotalQuantity float64
}

// BookSnapshot is the full-depth view of the limit book. BestBid, BestAsk,
// Mid, and Spread are nil when the relevant side is empty.
type BookSnapshot struct {
	Bids    []LevelSnapshot
	Asks    []LevelSnapshot
	BestBid *float64
	BestAsk *float64
	Mid     *float64
	Spread  *float64
}

// Venue owns one limit book and its companion mid book. The books assume a
// single sequential writer, so every operation runs under one mutex; the
// matching core itself carries no locking.
type Venue struct {
	mu    sync.Mutex
	limit *engine.LimitOrderBook
	mid   *engine.MidOrderBook
}

// NewVenue builds a venue, replaying seed orders through the matching path.
// A crossing seed fails construction.
func NewVenue(seed []domain.LimitOrder) (*Venue, error) {
	limit, err := engine.NewLimitOrderBook(seed)
	if err != nil {
		return nil, err
	}
	mid, err := engine.NewMidOrderBook(limit)
	if err != nil {
		return nil, err
	}
	return &Venue{limit: limit, mid: mid}, nil
}

// PlaceLimitOrder validates the request, places the order on the limit book,
// and returns the placement result.
func (v *Venue) PlaceLimitOrder(req PlaceLimitOrderRequest) (*PlacementResult, error) {
	if req.ID < 0 {
		return nil, &domain.ValidationError{Message: "id must be a non-negative integer"}
	}
	order, err := domain.NewLimitOrder(req.ID, req.Side, req.Price, req.Quantity)
	if err != nil {
		return nil, err
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	report, err := v.limit.PlaceOrder(order)
	if err != nil {
		return nil, err
	}
	return buildPlacementResult(report, order.Quantity()), nil
}

// PlaceMidOrder validates the request, places the order on the mid book, and
// returns the placement result.
func (v *Venue) PlaceMidOrder(req PlaceMidOrderRequest) (*PlacementResult, error) {
	if req.ID < 0 {
		return nil, &domain.ValidationError{Message: "id must be a non-negative integer"}
	}
	order, err := domain.NewMidOrder(req.ID, req.Side, req.Quantity)
	if err != nil {
		return nil, err
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	report, err := v.mid.PlaceOrder(order)
	if err != nil {
		return nil, err
	}
	return buildPlacementResult(report, order.Quantity()), nil
}

// Snapshot returns the current depth of the limit book with top-of-book
// derived fields.
func (v *Venue) Snapshot() *BookSnapshot {
	v.mu.Lock()
	defer v.mu.Unlock()

	snap := &BookSnapshot{
		Bids: toLevelSnapshots(v.limit.BidLevels()),
		Asks: toLevelSnapshots(v.limit.AskLevels()),
	}
	if bid, err := v.limit.BestBid(); err == nil {
		snap.BestBid = &bid
	}
	if ask, err := v.limit.BestAsk(); err == nil {
		snap.BestAsk = &ask
	}
	if snap.BestBid != nil && snap.BestAsk != nil {
		mid := (*snap.BestBid + *snap.BestAsk) / 2
		spread := *snap.BestAsk - *snap.BestBid
		snap.Mid = &mid
		snap.Spread = &spread
	}
	return snap
}

// OrdersAtPrice returns snapshots of the resting orders at the given price,
// in time priority order.
func (v *Venue) OrdersAtPrice(price float64) ([]OrderSnapshot, error) {
	if price <= 0 {
		return nil, &domain.ValidationError{Message: "price must be > 0"}
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	orders := v.limit.OrdersAtPrice(price)
	out := make([]OrderSnapshot, len(orders))
	for i, o := range orders {
		out[i] = OrderSnapshot{
			ID:        o.ID(),
			Side:      o.Side(),
			Price:     o.Price(),
			Quantity:  o.Quantity(),
			Remaining: o.Remaining(),
		}
	}
	return out, nil
}

// VWAPBook returns the quantity-weighted average price across every resting
// order on both sides of the limit book.
func (v *Venue) VWAPBook() (float64, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.limit.VWAPBook()
}

// VWAPSide returns the quantity-weighted average price of one side.
func (v *Venue) VWAPSide(side domain.Direction) (float64, error) {
	if !side.Valid() {
		return 0, &domain.ValidationError{Message: `side must be "buy" or "sell"`}
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.limit.VWAPSide(side)
}

func buildPlacementResult(report domain.ExecutionReport, quantity float64) *PlacementResult {
	trades := make([]TradeResult, len(report.Trades))
	for i, t := range report.Trades {
		trades[i] = TradeResult{
			TakerID:  t.TakerID,
			MakerID:  t.MakerID,
			Price:    t.Price,
			Quantity: t.Quantity,
		}
	}
	remaining := quantity - report.FilledQuantity
	return &PlacementResult{
		ReportID:       uuid.New().String(),
		Trades:         trades,
		FilledQuantity: report.FilledQuantity,
		VWAP:           report.VWAP,
		Remaining:      remaining,
		Resting:        remaining > domain.Epsilon,
	}
}

func toLevelSnapshots(levels []domain.BookLevel) []LevelSnapshot {
	out := make([]LevelSnapshot, len(levels))
	for i, lvl := range levels {
		out[i] = LevelSnapshot{Price: lvl.Price, TotalQuantity: lvl.TotalQuantity}
	}
	return out
}
