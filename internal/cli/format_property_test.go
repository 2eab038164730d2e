package cli

import (
	"math"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// For any amount in a sane range, FormatUSD should:
// 1. Start with $ (or -$ for negative)
// 2. Have exactly 2 decimal places
// 3. Group thousands with commas
// 4. Preserve the numeric value when parsed back
func TestCurrencyFormattingProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("FormatUSD produces valid US format", prop.ForAll(
		func(amount float64) bool {
			if math.IsNaN(amount) || math.IsInf(amount, 0) {
				return true
			}

			formatted := FormatUSD(amount)

			if amount >= 0 {
				if !strings.HasPrefix(formatted, "$") {
					t.Logf("Expected $ prefix for %f, got %s", amount, formatted)
					return false
				}
			} else {
				if !strings.HasPrefix(formatted, "-$") {
					t.Logf("Expected -$ prefix for %f, got %s", amount, formatted)
					return false
				}
			}

			parts := strings.Split(formatted, ".")
			if len(parts) != 2 {
				t.Logf("Expected decimal point for %f, got %s", amount, formatted)
				return false
			}
			if len(parts[1]) != 2 {
				t.Logf("Expected 2 decimal places for %f, got %s", amount, formatted)
				return false
			}

			numPart := strings.TrimPrefix(formatted, "-")
			numPart = strings.TrimPrefix(numPart, "$")
			numPart = strings.Split(numPart, ".")[0]

			// Groups of 3 digits separated by commas
			usPattern := regexp.MustCompile(`^\d{1,3}(,\d{3})*$`)
			if !usPattern.MatchString(numPart) {
				t.Logf("Invalid US format for %f: %s (numPart: %s)", amount, formatted, numPart)
				return false
			}

			return true
		},
		gen.Float64Range(-1e12, 1e12),
	))

	properties.Property("FormatUSD preserves value", prop.ForAll(
		func(amount float64) bool {
			if math.IsNaN(amount) || math.IsInf(amount, 0) {
				return true
			}

			formatted := FormatUSD(amount)
			parsed := parseUSD(formatted)

			roundedAmount := math.Round(amount*100) / 100
			diff := math.Abs(parsed - roundedAmount)

			if diff > 0.01 {
				t.Logf("Value not preserved: original=%f, formatted=%s, parsed=%f", amount, formatted, parsed)
				return false
			}

			return true
		},
		gen.Float64Range(-1e9, 1e9),
	))

	properties.Property("FormatPnL signs gains and losses", prop.ForAll(
		func(pnl float64) bool {
			if math.IsNaN(pnl) || math.IsInf(pnl, 0) {
				return true
			}

			formatted := FormatPnL(pnl)

			switch {
			case pnl > 0:
				if !strings.HasPrefix(formatted, "+$") {
					t.Logf("Expected +$ prefix for %f, got %s", pnl, formatted)
					return false
				}
			case pnl < 0:
				if !strings.HasPrefix(formatted, "-$") {
					t.Logf("Expected -$ prefix for %f, got %s", pnl, formatted)
					return false
				}
			default:
				if formatted != "$0.00" {
					t.Logf("Expected $0.00 for zero, got %s", formatted)
					return false
				}
			}

			return true
		},
		gen.Float64Range(-1e9, 1e9),
	))

	properties.Property("FormatPercent produces correct format", prop.ForAll(
		func(value float64) bool {
			if math.IsNaN(value) || math.IsInf(value, 0) {
				return true
			}

			formatted := FormatPercent(value)

			if !strings.HasSuffix(formatted, "%") {
				t.Logf("Expected %% suffix for %f, got %s", value, formatted)
				return false
			}
			if value > 0 && !strings.HasPrefix(formatted, "+") {
				t.Logf("Expected + prefix for positive %f, got %s", value, formatted)
				return false
			}

			return true
		},
		gen.Float64Range(-100, 100),
	))

	properties.Property("TruncateString never exceeds the limit", prop.ForAll(
		func(s string, maxLen int) bool {
			truncated := TruncateString(s, maxLen)

			if len(s) <= maxLen {
				if truncated != s {
					t.Logf("Short string modified: %q -> %q", s, truncated)
					return false
				}
				return true
			}
			if len(truncated) != maxLen {
				t.Logf("Truncated %q to %q, want length %d", s, truncated, maxLen)
				return false
			}
			return true
		},
		gen.AlphaString(),
		gen.IntRange(0, 40),
	))

	properties.TestingRun(t)
}

// parseUSD parses a dollar-formatted string back to float64.
func parseUSD(s string) float64 {
	negative := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")

	var parsed float64
	for i, c := range s {
		if c == '.' {
			decPart := s[i+1:]
			for j, d := range decPart {
				if d >= '0' && d <= '9' {
					parsed += float64(d-'0') / math.Pow(10, float64(j+1))
				}
			}
			break
		}
		if c >= '0' && c <= '9' {
			parsed = parsed*10 + float64(c-'0')
		}
	}

	if negative {
		parsed = -parsed
	}

	return parsed
}

// TestUSDFormatExamples tests specific examples of dollar formatting.
func TestUSDFormatExamples(t *testing.T) {
	testCases := []struct {
		amount   float64
		expected string
	}{
		{0, "$0.00"},
		{1, "$1.00"},
		{200.65, "$200.65"},
		{1000, "$1,000.00"},
		{4799.35, "$4,799.35"},
		{1234567.89, "$1,234,567.89"},
		{-200.65, "-$200.65"},
		{-4900.65, "-$4,900.65"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			result := FormatUSD(tc.amount)
			if result != tc.expected {
				t.Errorf("FormatUSD(%f) = %s, want %s", tc.amount, result, tc.expected)
			}
		})
	}
}

// TestFormatDateExamples tests expiration date display.
func TestFormatDateExamples(t *testing.T) {
	exp := time.Date(2025, time.January, 17, 0, 0, 0, 0, time.UTC)

	if got := FormatDate(exp); got != "17-Jan-2025" {
		t.Errorf("FormatDate = %s, want 17-Jan-2025", got)
	}
	if got := FormatDate(time.Time{}); got != "-" {
		t.Errorf("FormatDate(zero) = %s, want -", got)
	}
}

// TestFormatPriceExamples tests strike and premium display.
func TestFormatPriceExamples(t *testing.T) {
	testCases := []struct {
		price    float64
		expected string
	}{
		{100, "100.00"},
		{22.5, "22.50"},
		{0.65, "0.65"},
		{0, "0.00"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			if got := FormatPrice(tc.price); got != tc.expected {
				t.Errorf("FormatPrice(%f) = %s, want %s", tc.price, got, tc.expected)
			}
		})
	}
}
