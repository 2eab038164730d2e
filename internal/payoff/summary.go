package payoff

import (
	"hedgeviz/internal/models"
)

// Summary describes a strategy at expiration: the extremes of the
// sampled curve, whether either tail is unbounded, and the breakeven
// spots.
type Summary struct {
	NetCash         float64
	MaxProfit       float64
	MaxLoss         float64
	UnboundedProfit bool
	UnboundedLoss   bool
	Breakevens      []float64
}

// Analyze derives strategy statistics from a computed curve. Beyond the
// highest strike the curve is linear in spot, so the sign of that tail
// slope decides whether profit or loss grows without bound on the
// upside; puts cap out at spot zero, which the grid always includes.
// MaxProfit and MaxLoss stay the finite sampled extremes even when a
// tail is unbounded.
func Analyze(legs []models.Leg, c Curve) Summary {
	s := Summary{NetCash: c.NetCash}
	if len(c.PnL) == 0 {
		return s
	}

	s.MaxProfit = c.PnL[0]
	s.MaxLoss = c.PnL[0]
	for _, v := range c.PnL[1:] {
		if v > s.MaxProfit {
			s.MaxProfit = v
		}
		if v < s.MaxLoss {
			s.MaxLoss = v
		}
	}

	slope := tailSlope(legs)
	s.UnboundedProfit = slope > 0
	s.UnboundedLoss = slope < 0

	s.Breakevens = breakevens(c)
	return s
}

// tailSlope is dPnL/dSpot for spots above every strike. Only calls
// contribute; puts are worthless up there.
func tailSlope(legs []models.Leg) float64 {
	var slope float64
	for _, leg := range legs {
		if leg.Type == models.OptionCall {
			slope += float64(leg.Action.Direction()) * float64(leg.Qty) * models.ContractMultiplier
		}
	}
	return slope
}

// breakevens finds the spots where the curve crosses zero, interpolating
// linearly between adjacent samples. The curve is piecewise linear with
// kinks only at strikes, so interpolation between samples is exact up to
// rounding. A curve that never leaves zero has no breakevens.
func breakevens(c Curve) []float64 {
	var points []float64
	prevSign := 0
	for i, v := range c.PnL {
		sign := floatSign(v)
		switch {
		case sign == 0 && prevSign != 0:
			// exact touch after a nonzero stretch
			points = append(points, c.Spots[i])
		case sign != 0 && prevSign != 0 && sign != prevSign:
			prev := c.PnL[i-1]
			x := c.Spots[i-1] + (0-prev)*(c.Spots[i]-c.Spots[i-1])/(v-prev)
			points = append(points, x)
		}
		if sign != 0 {
			prevSign = sign
		}
	}
	if len(points) == 0 {
		return nil
	}

	// collapse points closer than half a grid step; a touch followed by
	// an immediate crossing is one breakeven, not two
	tol := 1.0
	if len(c.Spots) > 1 {
		tol = (c.Spots[1] - c.Spots[0]) / 2
	}
	out := points[:1]
	for _, p := range points[1:] {
		if p-out[len(out)-1] > tol {
			out = append(out, p)
		}
	}
	return out
}

func floatSign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
