package render

import (
	"io"

	"github.com/gocarina/gocsv"

	apperrors "hedgeviz/internal/errors"
	"hedgeviz/internal/payoff"
)

// LedgerRow is the CSV projection of a ledger entry.
type LedgerRow struct {
	Qty          int     `csv:"qty"`
	Action       string  `csv:"action"`
	OptionType   string  `csv:"option_type"`
	Strike       float64 `csv:"strike"`
	Expiration   string  `csv:"expiration"`
	Price        float64 `csv:"price"`
	Fees         float64 `csv:"fees"`
	NetCashFlow  float64 `csv:"net_cash_flow"`
	RunningTotal float64 `csv:"running_total"`
	Notes        string  `csv:"notes"`
}

// WriteLedgerCSV writes ledger entries as CSV, one row per leg in book
// order. An empty ledger produces just the header.
func WriteLedgerCSV(w io.Writer, entries []payoff.Entry) error {
	rows := make([]*LedgerRow, 0, len(entries))
	for _, e := range entries {
		expiration := ""
		if !e.Leg.Expiration.IsZero() {
			expiration = e.Leg.Expiration.Format("2006-01-02")
		}
		rows = append(rows, &LedgerRow{
			Qty:          e.Leg.Qty,
			Action:       string(e.Leg.Action),
			OptionType:   string(e.Leg.Type),
			Strike:       e.Leg.Strike,
			Expiration:   expiration,
			Price:        e.Leg.Price,
			Fees:         e.Leg.Fees,
			NetCashFlow:  e.NetCashFlow,
			RunningTotal: e.RunningTotal,
			Notes:        e.Leg.Notes,
		})
	}

	if err := gocsv.Marshal(rows, w); err != nil {
		return apperrors.Wrap(err, "writing ledger csv")
	}
	return nil
}
