package payoff

import "hedgeviz/internal/models"

// Entry is one row of the cash ledger: a leg, its realized cash effect,
// and the cumulative cash banked through that row.
type Entry struct {
	Leg          models.Leg
	NetCashFlow  float64
	RunningTotal float64
}

// Ledger walks the legs in book order and accumulates net premium cash.
// The final running total equals Compute's NetCash over the same legs:
// both fold the identical values in the identical order.
func Ledger(legs []models.Leg) []Entry {
	if len(legs) == 0 {
		return nil
	}

	entries := make([]Entry, 0, len(legs))
	var total float64
	for _, leg := range legs {
		cash := leg.NetCashFlow()
		total += cash
		entries = append(entries, Entry{
			Leg:          leg,
			NetCashFlow:  cash,
			RunningTotal: total,
		})
	}
	return entries
}
