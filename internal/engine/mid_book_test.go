package engine

import (
	"errors"
	"testing"

	"github.com/efreitasn/matchcore/internal/domain"
)

func mustMid(t *testing.T, id int64, side domain.Direction, qty float64) domain.MidOrder {
	t.Helper()
	o, err := domain.NewMidOrder(id, side, qty)
	if err != nil {
		t.Fatalf("NewMidOrder(%d): %v", id, err)
	}
	return o
}

// quotedMidBook returns a mid book whose reference limit book quotes
// bestBid=100, bestAsk=102, so mid=101.
func quotedMidBook(t *testing.T) *MidOrderBook {
	t.Helper()
	ref := mustBook(t,
		mustLimit(t, 100, domain.Buy, 100, 50),
		mustLimit(t, 101, domain.Sell, 102, 50),
	)
	m, err := NewMidOrderBook(ref)
	if err != nil {
		t.Fatalf("NewMidOrderBook: %v", err)
	}
	return m
}

func TestNewMidOrderBook_NilReference(t *testing.T) {
	_, err := NewMidOrderBook(nil)
	var validationErr *domain.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestMidPlaceOrder_ExecutesAtReferenceMid(t *testing.T) {
	// Spec scenario: mid buy of 5 against a resting mid sell of 10
	// with the reference book quoting 100/102.
	m := quotedMidBook(t)

	report, err := m.PlaceOrder(mustMid(t, 1, domain.Sell, 10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(report.Trades) != 0 {
		t.Fatalf("expected sell to rest unmatched, got %d trades", len(report.Trades))
	}

	report, err = m.PlaceOrder(mustMid(t, 2, domain.Buy, 5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(report.Trades) != 1 {
		t.Fatalf("expected 1 trade, got %d", len(report.Trades))
	}
	trade := report.Trades[0]
	if trade.TakerID != 2 || trade.MakerID != 1 {
		t.Errorf("trade ids = (%d, %d), want (2, 1)", trade.TakerID, trade.MakerID)
	}
	if !almostEqual(trade.Price, 101) {
		t.Errorf("trade price = %v, want mid 101", trade.Price)
	}
	if !almostEqual(trade.Quantity, 5) {
		t.Errorf("trade quantity = %v, want 5", trade.Quantity)
	}

	// The partially filled maker keeps the head of the ask queue.
	if m.AskCount() != 1 {
		t.Errorf("ask queue length = %d, want 1", m.AskCount())
	}
	if m.BidCount() != 0 {
		t.Errorf("bid queue length = %d, want 0 (taker fully filled)", m.BidCount())
	}
}

func TestMidPlaceOrder_FIFO(t *testing.T) {
	m := quotedMidBook(t)

	if _, err := m.PlaceOrder(mustMid(t, 1, domain.Sell, 5)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := m.PlaceOrder(mustMid(t, 2, domain.Sell, 5)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	report, err := m.PlaceOrder(mustMid(t, 3, domain.Buy, 7))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(report.Trades) != 2 {
		t.Fatalf("expected 2 trades, got %d", len(report.Trades))
	}
	if report.Trades[0].MakerID != 1 || !almostEqual(report.Trades[0].Quantity, 5) {
		t.Errorf("trade 0 = %+v, want maker 1 filled for 5", report.Trades[0])
	}
	if report.Trades[1].MakerID != 2 || !almostEqual(report.Trades[1].Quantity, 2) {
		t.Errorf("trade 1 = %+v, want maker 2 filled for 2", report.Trades[1])
	}
	if m.AskCount() != 1 {
		t.Errorf("ask queue length = %d, want the partially filled maker left", m.AskCount())
	}
}

func TestMidPlaceOrder_RestsResidual(t *testing.T) {
	m := quotedMidBook(t)

	if _, err := m.PlaceOrder(mustMid(t, 1, domain.Sell, 3)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	report, err := m.PlaceOrder(mustMid(t, 2, domain.Buy, 5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(report.FilledQuantity, 3) {
		t.Errorf("FilledQuantity = %v, want 3", report.FilledQuantity)
	}
	if m.AskCount() != 0 {
		t.Errorf("ask queue length = %d, want 0", m.AskCount())
	}
	if m.BidCount() != 1 {
		t.Errorf("bid queue length = %d, want the residual buy of 2", m.BidCount())
	}
}

func TestMidPlaceOrder_EmptyReferenceBook(t *testing.T) {
	ref := mustBook(t)
	m, err := NewMidOrderBook(ref)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Resting is fine without a mid; it is only read at fill time.
	if _, err := m.PlaceOrder(mustMid(t, 1, domain.Sell, 10)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = m.PlaceOrder(mustMid(t, 2, domain.Buy, 5))
	if !errors.Is(err, domain.ErrEmptySide) {
		t.Fatalf("expected ErrEmptySide from the reference book, got %v", err)
	}

	// The failed read happened before any queue mutation.
	if m.AskCount() != 1 {
		t.Errorf("ask queue length = %d, want untouched 1", m.AskCount())
	}
	if m.BidCount() != 0 {
		t.Errorf("bid queue length = %d, want 0", m.BidCount())
	}
}

func TestMidPlaceOrder_WrongOrderType(t *testing.T) {
	m := quotedMidBook(t)

	_, err := m.PlaceOrder(mustLimit(t, 1, domain.Buy, 100, 5))
	if !errors.Is(err, domain.ErrWrongOrderType) {
		t.Fatalf("expected ErrWrongOrderType, got %v", err)
	}
}

func TestMidAddOrder_DoesNotMatch(t *testing.T) {
	m := quotedMidBook(t)

	m.AddOrder(mustMid(t, 1, domain.Sell, 5))
	m.AddOrder(mustMid(t, 2, domain.Buy, 5))

	if m.BidCount() != 1 || m.AskCount() != 1 {
		t.Errorf("expected both queued without matching, got bids=%d asks=%d",
			m.BidCount(), m.AskCount())
	}
}
