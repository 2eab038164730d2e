package cli

import (
	"fmt"
	"time"

	"hedgeviz/pkg/utils"
)

// FormatUSD formats a dollar amount with thousands separators.
func FormatUSD(amount float64) string {
	return utils.FormatUSD(amount)
}

// FormatPnL formats a P&L amount with a leading sign on gains.
func FormatPnL(pnl float64) string {
	return utils.FormatPnL(pnl)
}

// FormatPercent formats a percentage with a leading sign.
func FormatPercent(value float64) string {
	return utils.FormatPercent(value)
}

// FormatPrice formats a per-share price or strike.
func FormatPrice(price float64) string {
	return fmt.Sprintf("%.2f", price)
}

// FormatDate formats an expiration date, "-" when unset.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("02-Jan-2006")
}

// FormatDateTime formats a timestamp for table output.
func FormatDateTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("02-Jan-2006 15:04")
}

// TruncateString truncates a string to a maximum length.
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen < 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
