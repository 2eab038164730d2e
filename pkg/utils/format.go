// Package utils provides shared utility functions.
package utils

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
)

// FormatUSD formats a dollar amount with thousands separators
// and exactly two decimal places.
func FormatUSD(amount float64) string {
	negative := amount < 0
	amount = math.Abs(amount)

	result := "$" + humanize.FormatFloat("#,###.##", amount)
	if negative {
		result = "-" + result
	}
	return result
}

// FormatPercent formats a percentage with sign.
func FormatPercent(value float64) string {
	sign := ""
	if value > 0 {
		sign = "+"
	}
	return fmt.Sprintf("%s%.2f%%", sign, value)
}

// FormatPnL formats a profit or loss with an explicit sign on gains.
func FormatPnL(pnl float64) string {
	formatted := FormatUSD(pnl)
	if pnl > 0 {
		return "+" + formatted
	}
	return formatted
}

// FormatQuantity formats a quantity with commas.
func FormatQuantity(qty int64) string {
	return humanize.Comma(qty)
}

// FormatCompact formats a dollar amount in compact form (K/M) for
// tight spaces such as chart axis labels.
func FormatCompact(amount float64) string {
	abs := math.Abs(amount)
	switch {
	case abs >= 1000000:
		return fmt.Sprintf("%.2fM", amount/1000000)
	case abs >= 10000:
		return fmt.Sprintf("%.1fK", amount/1000)
	}
	return fmt.Sprintf("%.2f", amount)
}
