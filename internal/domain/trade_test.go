package domain

import (
	"math"
	"testing"
)

func TestNewExecutionReport_Empty(t *testing.T) {
	report := NewExecutionReport(nil)

	if report.Trades == nil {
		t.Error("expected empty trade slice, got nil")
	}
	if len(report.Trades) != 0 {
		t.Errorf("expected 0 trades, got %d", len(report.Trades))
	}
	if report.FilledQuantity != 0 {
		t.Errorf("FilledQuantity = %v, want 0", report.FilledQuantity)
	}
	if report.VWAP != 0 {
		t.Errorf("VWAP = %v, want 0 (no fill is a normal outcome)", report.VWAP)
	}
}

func TestNewExecutionReport_VWAP(t *testing.T) {
	trades := []Trade{
		{TakerID: 3, MakerID: 1, Price: 100, Quantity: 10},
		{TakerID: 3, MakerID: 2, Price: 101, Quantity: 5},
	}

	report := NewExecutionReport(trades)

	if report.FilledQuantity != 15 {
		t.Errorf("FilledQuantity = %v, want 15", report.FilledQuantity)
	}
	want := (100*10 + 101*5) / 15.0
	if math.Abs(report.VWAP-want) > 1e-9 {
		t.Errorf("VWAP = %v, want %v", report.VWAP, want)
	}
	if len(report.Trades) != 2 {
		t.Errorf("expected trades preserved, got %d", len(report.Trades))
	}
}
