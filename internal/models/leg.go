package models

import (
	"fmt"
	"math"
	"time"

	apperrors "hedgeviz/internal/errors"
)

// Leg represents a single option position in the working book.
// Expiration is carried for display only; all payoff math is at
// expiration, so the date never enters a calculation.
type Leg struct {
	ID         string
	Qty        int
	Action     LegAction
	Type       OptionType
	Strike     float64
	Expiration time.Time
	Price      float64 // premium per share
	Fees       float64 // total fees for the leg, always a cash outflow
	Notes      string
	CreatedAt  time.Time
}

// NetCashFlow returns the realized cash effect of entering the leg:
// premium per share times the contract multiplier times quantity, signed
// by the action, minus fees. Fees reduce cash on both sides.
func (l Leg) NetCashFlow() float64 {
	return l.Price * ContractMultiplier * float64(l.Qty) * float64(l.Action.CashSign()) - l.Fees
}

// IntrinsicValue returns the per-share exercise value of the contract at
// the given spot price.
func (l Leg) IntrinsicValue(spot float64) float64 {
	switch l.Type {
	case OptionCall:
		return math.Max(spot-l.Strike, 0)
	case OptionPut:
		return math.Max(l.Strike-spot, 0)
	}
	return 0
}

// PnLAt returns the leg's profit or loss if the underlying expires at
// the given spot price: exercise value scaled by direction, quantity and
// the contract multiplier, plus the entry cash flow.
func (l Leg) PnLAt(spot float64) float64 {
	return l.IntrinsicValue(spot)*float64(l.Action.Direction())*float64(l.Qty)*ContractMultiplier + l.NetCashFlow()
}

// Validate checks the leg against the intake rules. Malformed legs are
// rejected here, before they can enter a book; downstream math assumes
// validated input.
func (l Leg) Validate() error {
	if l.Qty < 1 {
		return apperrors.NewLegInputError("qty", l.Qty, "must be at least 1")
	}
	if !l.Action.Valid() {
		return apperrors.NewLegInputError("action", string(l.Action), "unknown action")
	}
	if !l.Type.Valid() {
		return apperrors.NewLegInputError("type", string(l.Type), "unknown option type")
	}
	if math.IsNaN(l.Strike) || math.IsInf(l.Strike, 0) || l.Strike <= 0 {
		return apperrors.NewLegInputError("strike", l.Strike, "must be a positive price")
	}
	if math.IsNaN(l.Price) || math.IsInf(l.Price, 0) || l.Price < 0 {
		return apperrors.NewLegInputError("price", l.Price, "must not be negative")
	}
	if math.IsNaN(l.Fees) || math.IsInf(l.Fees, 0) || l.Fees < 0 {
		return apperrors.NewLegInputError("fees", l.Fees, "must not be negative")
	}
	return nil
}

// Describe returns a short human-readable form of the leg, e.g.
// "2x Sell to Open Put @ 50.00".
func (l Leg) Describe() string {
	return fmt.Sprintf("%dx %s %s @ %.2f", l.Qty, l.Action.Label(), l.Type.Label(), l.Strike)
}
