package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hedgeviz/internal/models"
	"hedgeviz/internal/payoff"
)

func longCallCurve() payoff.Curve {
	legs := []models.Leg{{
		Qty:    1,
		Action: models.ActionBuyToOpen,
		Type:   models.OptionCall,
		Strike: 100,
		Price:  2.00,
		Fees:   0.65,
	}}
	return payoff.Compute(legs, payoff.Options{})
}

func plainConfig() ChartConfig {
	return ChartConfig{Width: 72, Height: 20, Color: false}
}

func TestChartDimensions(t *testing.T) {
	lines := Chart(longCallCurve(), 0, plainConfig())

	// height rows + bottom rule + x labels
	require.Len(t, lines, 22)

	for i := 0; i < 20; i++ {
		assert.Contains(t, lines[i], "│", "row %d should carry the y axis", i)
	}
	assert.Contains(t, lines[20], "└")
}

func TestChartZeroAxis(t *testing.T) {
	lines := Chart(longCallCurve(), 0, plainConfig())

	var axisLine string
	for _, line := range lines[:20] {
		if strings.HasPrefix(line, strings.Repeat(" ", gutterWidth-1)+"0 │") {
			axisLine = line
			break
		}
	}
	require.NotEmpty(t, axisLine, "one row should be labeled 0")
	assert.Contains(t, axisLine, "─────")
}

func TestChartShadesBothRegions(t *testing.T) {
	// A long call is under water left of breakeven and profitable right
	// of it, so both shading colors must appear.
	cfg := plainConfig()
	cfg.Color = true
	joined := strings.Join(Chart(longCallCurve(), 0, cfg), "\n")

	assert.Contains(t, joined, colorGreen)
	assert.Contains(t, joined, colorRed)
	assert.Contains(t, joined, colorReset)
}

func TestChartColorOff(t *testing.T) {
	joined := strings.Join(Chart(longCallCurve(), 0, plainConfig()), "\n")
	assert.NotContains(t, joined, "\033[")
}

func TestChartCurrentPriceMarker(t *testing.T) {
	withMarker := strings.Join(Chart(longCallCurve(), 95, plainConfig()), "\n")
	assert.Contains(t, withMarker, "┊")

	without := strings.Join(Chart(longCallCurve(), 0, plainConfig()), "\n")
	assert.NotContains(t, without, "┊")

	// A price outside the grid draws nothing rather than clamping to
	// the edge.
	outside := strings.Join(Chart(longCallCurve(), 10000, plainConfig()), "\n")
	assert.NotContains(t, outside, "┊")
}

func TestChartXLabels(t *testing.T) {
	lines := Chart(longCallCurve(), 0, plainConfig())
	labels := lines[len(lines)-1]

	// Domain is [0, 150] for a single 100 strike.
	assert.Contains(t, labels, "0")
	assert.Contains(t, labels, "150")
}

func TestChartYLabels(t *testing.T) {
	lines := Chart(longCallCurve(), 0, plainConfig())

	top := lines[0]
	sep := strings.Index(top, " │")
	require.GreaterOrEqual(t, sep, 0)
	assert.NotEqual(t, strings.Repeat(" ", sep), top[:sep], "top row should carry a y label")

	bottom := lines[19]
	assert.NotEqual(t, strings.Repeat(" ", sep), bottom[:sep], "bottom row should carry a y label")
}

func TestChartEmptyCurve(t *testing.T) {
	lines := Chart(payoff.Curve{}, 0, plainConfig())
	require.Len(t, lines, 1)
	assert.Equal(t, "No data to display", lines[0])
}

func TestChartFlatZeroCurve(t *testing.T) {
	// An empty book computes a flat zero curve; the chart must still
	// render an axis without shading or panic.
	c := payoff.Compute(nil, payoff.Options{})
	lines := Chart(c, 0, plainConfig())

	require.Len(t, lines, 22)
	joined := strings.Join(lines, "\n")
	assert.NotContains(t, joined, "░")
}

func TestChartDefaultsApplied(t *testing.T) {
	lines := Chart(longCallCurve(), 0, ChartConfig{})
	assert.Len(t, lines, DefaultChartConfig().Height+2)
}
