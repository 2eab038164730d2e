// Package payoff computes expiration profit-and-loss curves and cash
// ledgers for a book of option legs. Everything here is pure: functions
// take legs and return values, with no session state of their own.
package payoff

import (
	"hedgeviz/internal/models"
)

const (
	// GridSize is the number of spot samples in every curve.
	GridSize = 1000

	// DefaultMaxSpot bounds the grid when the book is empty and no
	// override is given.
	DefaultMaxSpot = 200.0

	// strikeSpan stretches the highest strike to the grid's upper bound
	// so the tails of the strategy stay visible.
	strikeSpan = 1.5

	// priceSpan stretches a must-include spot past the right edge so a
	// current-price marker never sits on the border of the chart.
	priceSpan = 1.1
)

// Options controls spot-domain selection for Compute.
type Options struct {
	// MaxSpot, when positive, is used verbatim as the upper bound of the
	// grid in place of the strike-derived default.
	MaxSpot float64

	// IncludeSpot, when positive, guarantees the grid covers this price:
	// a bound below it grows to IncludeSpot * 1.1 in the same pass, so
	// callers never need a second call to fit the current price in.
	IncludeSpot float64
}

// Curve is an expiration P&L curve sampled over a spot grid.
type Curve struct {
	Spots   []float64
	PnL     []float64
	NetCash float64
	MaxSpot float64
}

// Compute builds the expiration P&L curve for the given legs. The grid
// always has exactly GridSize strictly increasing points from 0 to the
// chosen bound inclusive; an empty book yields a flat zero curve over
// the default domain rather than an error. Leg order does not affect
// the result beyond float rounding.
func Compute(legs []models.Leg, opts Options) Curve {
	bound := domainBound(legs, opts)

	spots := make([]float64, GridSize)
	for i := range spots {
		spots[i] = bound * float64(i) / float64(GridSize-1)
	}
	spots[GridSize-1] = bound

	pnl := make([]float64, GridSize)
	for _, leg := range legs {
		for i, s := range spots {
			pnl[i] += leg.PnLAt(s)
		}
	}

	return Curve{
		Spots:   spots,
		PnL:     pnl,
		NetCash: NetCash(legs),
		MaxSpot: bound,
	}
}

// NetCash returns the spot-independent premium cash across the legs,
// folded in book order. Ledger accumulates the identical fold, so its
// final running total matches this value exactly.
func NetCash(legs []models.Leg) float64 {
	var total float64
	for _, leg := range legs {
		total += leg.NetCashFlow()
	}
	return total
}

// domainBound picks the upper edge of the spot grid: an explicit
// override verbatim, else the highest strike stretched by strikeSpan,
// else the default. A must-include spot beyond that widens the bound
// once more.
func domainBound(legs []models.Leg, opts Options) float64 {
	bound := DefaultMaxSpot
	switch {
	case opts.MaxSpot > 0:
		bound = opts.MaxSpot
	case len(legs) > 0:
		bound = maxStrike(legs) * strikeSpan
	}
	if opts.IncludeSpot > bound {
		bound = opts.IncludeSpot * priceSpan
	}
	if bound <= 0 {
		// grid must stay strictly increasing
		bound = DefaultMaxSpot
	}
	return bound
}

func maxStrike(legs []models.Leg) float64 {
	var max float64
	for _, leg := range legs {
		if leg.Strike > max {
			max = leg.Strike
		}
	}
	return max
}
