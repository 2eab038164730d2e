package payoff

import (
	"math"
	"testing"

	"hedgeviz/internal/models"
)

// TestAnalyzeLongCall: unlimited upside, loss capped at the debit,
// breakeven at strike plus per-share cost.
func TestAnalyzeLongCall(t *testing.T) {
	legs := []models.Leg{longCall(100, 2.00, 0.65)}
	c := Compute(legs, Options{})

	s := Analyze(legs, c)

	if !s.UnboundedProfit {
		t.Error("UnboundedProfit = false, want true")
	}
	if s.UnboundedLoss {
		t.Error("UnboundedLoss = true, want false")
	}
	if !almostEqual(s.MaxLoss, -200.65) {
		t.Errorf("MaxLoss = %v, want -200.65", s.MaxLoss)
	}
	if len(s.Breakevens) != 1 {
		t.Fatalf("Breakevens = %v, want exactly one", s.Breakevens)
	}
	// 100 + 200.65/100
	if math.Abs(s.Breakevens[0]-102.0065) > 1e-6 {
		t.Errorf("breakeven = %v, want 102.0065", s.Breakevens[0])
	}
}

// TestAnalyzeShortPut: profit capped at the credit, loss bounded by
// spot zero, breakeven below the strike.
func TestAnalyzeShortPut(t *testing.T) {
	legs := []models.Leg{shortPut(50, 1.00, 0.65)}
	c := Compute(legs, Options{})

	s := Analyze(legs, c)

	if s.UnboundedProfit || s.UnboundedLoss {
		t.Errorf("unbounded flags = %v/%v, want false/false", s.UnboundedProfit, s.UnboundedLoss)
	}
	if !almostEqual(s.MaxProfit, 99.35) {
		t.Errorf("MaxProfit = %v, want 99.35", s.MaxProfit)
	}
	if !almostEqual(s.MaxLoss, -4900.65) {
		t.Errorf("MaxLoss = %v, want -4900.65", s.MaxLoss)
	}
	if len(s.Breakevens) != 1 {
		t.Fatalf("Breakevens = %v, want exactly one", s.Breakevens)
	}
	// 50 - 99.35/100
	if math.Abs(s.Breakevens[0]-49.0065) > 1e-6 {
		t.Errorf("breakeven = %v, want 49.0065", s.Breakevens[0])
	}
}

// TestAnalyzeLongStraddle: two breakevens around the shared strike,
// unlimited above thanks to the call.
func TestAnalyzeLongStraddle(t *testing.T) {
	legs := []models.Leg{
		{Qty: 1, Action: models.ActionBuyToOpen, Type: models.OptionCall, Strike: 100, Price: 2.00},
		{Qty: 1, Action: models.ActionBuyToOpen, Type: models.OptionPut, Strike: 100, Price: 2.00},
	}
	c := Compute(legs, Options{})

	s := Analyze(legs, c)

	if !s.UnboundedProfit {
		t.Error("UnboundedProfit = false, want true")
	}
	if !almostEqual(s.MaxLoss, -400) {
		t.Errorf("MaxLoss = %v, want -400", s.MaxLoss)
	}
	if len(s.Breakevens) != 2 {
		t.Fatalf("Breakevens = %v, want two", s.Breakevens)
	}
	if math.Abs(s.Breakevens[0]-96) > 1e-6 || math.Abs(s.Breakevens[1]-104) > 1e-6 {
		t.Errorf("breakevens = %v, want [96 104]", s.Breakevens)
	}
}

// TestAnalyzeBearCallSpread: both tails bounded because the call
// exposure nets to zero.
func TestAnalyzeBearCallSpread(t *testing.T) {
	legs := []models.Leg{
		{Qty: 1, Action: models.ActionSellToOpen, Type: models.OptionCall, Strike: 100, Price: 3.00},
		{Qty: 1, Action: models.ActionBuyToOpen, Type: models.OptionCall, Strike: 110, Price: 1.00},
	}
	c := Compute(legs, Options{})

	s := Analyze(legs, c)

	if s.UnboundedProfit || s.UnboundedLoss {
		t.Errorf("unbounded flags = %v/%v, want false/false", s.UnboundedProfit, s.UnboundedLoss)
	}
	if !almostEqual(s.MaxProfit, 200) {
		t.Errorf("MaxProfit = %v, want 200", s.MaxProfit)
	}
	if !almostEqual(s.MaxLoss, -800) {
		t.Errorf("MaxLoss = %v, want -800", s.MaxLoss)
	}
	if len(s.Breakevens) != 1 || math.Abs(s.Breakevens[0]-102) > 1e-6 {
		t.Errorf("breakevens = %v, want [102]", s.Breakevens)
	}
}

// TestAnalyzeEmptyCurve: a flat zero book has no extremes worth
// reporting and no breakevens.
func TestAnalyzeEmptyCurve(t *testing.T) {
	c := Compute(nil, Options{})

	s := Analyze(nil, c)

	if s.MaxProfit != 0 || s.MaxLoss != 0 {
		t.Errorf("extremes = %v/%v, want 0/0", s.MaxProfit, s.MaxLoss)
	}
	if s.UnboundedProfit || s.UnboundedLoss {
		t.Error("unbounded flags set for an empty book")
	}
	if len(s.Breakevens) != 0 {
		t.Errorf("Breakevens = %v, want none", s.Breakevens)
	}
}
