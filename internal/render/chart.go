// Package render builds terminal and file representations of payoff
// results. Renderers are pure: they return strings and never print.
package render

import (
	"fmt"
	"strings"

	"hedgeviz/internal/payoff"
	"hedgeviz/pkg/utils"
)

// ANSI color codes for chart cells.
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
)

// Color classes for chart cells.
const (
	cellPlain = iota
	cellProfit
	cellLoss
	cellMarker
)

// gutterWidth is the y-axis label width, excluding the axis column.
const gutterWidth = 8

// ChartConfig holds chart dimensions and color mode.
type ChartConfig struct {
	Width  int
	Height int
	Color  bool
}

// DefaultChartConfig returns the default chart dimensions.
func DefaultChartConfig() ChartConfig {
	return ChartConfig{Width: 72, Height: 20, Color: true}
}

// Chart renders a payoff curve as terminal lines: the P&L line with
// profit and loss regions shaded against the zero axis, and a vertical
// marker at the current underlying price when one is known.
func Chart(c payoff.Curve, currentPrice float64, cfg ChartConfig) []string {
	if len(c.Spots) == 0 || len(c.PnL) != len(c.Spots) {
		return []string{"No data to display"}
	}

	width := cfg.Width
	if width <= 0 {
		width = DefaultChartConfig().Width
	}
	height := cfg.Height
	if height <= 0 {
		height = DefaultChartConfig().Height
	}
	if height < 5 {
		height = 5
	}
	plotW := width - gutterWidth - 2
	if plotW < 10 {
		plotW = 10
	}

	// Sample the curve into one value per column.
	n := len(c.Spots)
	values := make([]float64, plotW)
	for x := 0; x < plotW; x++ {
		values[x] = c.PnL[x*(n-1)/(plotW-1)]
	}

	// The scale always includes zero so the axis stays in frame.
	vMin, vMax := 0.0, 0.0
	for _, v := range values {
		if v < vMin {
			vMin = v
		}
		if v > vMax {
			vMax = v
		}
	}
	if vMax == vMin {
		vMin, vMax = -1, 1
	}
	pad := (vMax - vMin) * 0.05
	vMin -= pad
	vMax += pad

	rowOf := func(v float64) int {
		y := int((v - vMin) / (vMax - vMin) * float64(height-1))
		if y < 0 {
			y = 0
		}
		if y > height-1 {
			y = height - 1
		}
		return height - 1 - y
	}
	zeroRow := rowOf(0)

	// Chart grid with a parallel color grid.
	grid := make([][]rune, height)
	colors := make([][]int, height)
	for i := range grid {
		grid[i] = make([]rune, plotW)
		colors[i] = make([]int, plotW)
		for j := range grid[i] {
			grid[i][j] = ' '
		}
	}

	// Zero axis
	for x := 0; x < plotW; x++ {
		grid[zeroRow][x] = '─'
	}

	// Shade between the curve and the axis, then draw the curve itself.
	for x := 0; x < plotW; x++ {
		r := rowOf(values[x])

		if r < zeroRow {
			for fr := r + 1; fr < zeroRow; fr++ {
				grid[fr][x] = '░'
				colors[fr][x] = cellProfit
			}
		} else if r > zeroRow {
			for fr := zeroRow + 1; fr < r; fr++ {
				grid[fr][x] = '░'
				colors[fr][x] = cellLoss
			}
		}

		grid[r][x] = curveGlyph(values, x, r, zeroRow, rowOf)
		switch {
		case values[x] > 0:
			colors[r][x] = cellProfit
		case values[x] < 0:
			colors[r][x] = cellLoss
		}
	}

	// Current price marker on top of shading, under the curve and axis.
	if col := markerColumn(currentPrice, c.Spots[n-1], plotW); col >= 0 {
		for r := 0; r < height; r++ {
			if grid[r][col] == ' ' || grid[r][col] == '░' {
				grid[r][col] = '┊'
				colors[r][col] = cellMarker
			}
		}
	}

	// Assemble lines with the y-axis gutter.
	lines := make([]string, 0, height+2)
	for r := 0; r < height; r++ {
		var label string
		switch r {
		case 0:
			label = utils.FormatCompact(vMax)
		case zeroRow:
			label = "0"
		case height - 1:
			label = utils.FormatCompact(vMin)
		}
		lines = append(lines, fmt.Sprintf("%*s │%s", gutterWidth, label, renderRow(grid[r], colors[r], cfg.Color)))
	}

	lines = append(lines, strings.Repeat(" ", gutterWidth+1)+"└"+strings.Repeat("─", plotW))
	lines = append(lines, xLabels(c.Spots, plotW))

	return lines
}

// curveGlyph picks the glyph for a curve cell from its local slope,
// marking zero crossings on the axis row.
func curveGlyph(values []float64, x, row, zeroRow int, rowOf func(float64) int) rune {
	var next int
	hasNext := x+1 < len(values)
	if hasNext {
		next = rowOf(values[x+1])
	}

	rising := hasNext && next < row
	falling := hasNext && next > row

	if row == zeroRow && (rising || falling) {
		return '╳'
	}
	if rising {
		return '╱'
	}
	if falling {
		return '╲'
	}
	return '─'
}

// markerColumn maps the current price into a plot column, or -1 when no
// marker should be drawn.
func markerColumn(currentPrice, maxSpot float64, plotW int) int {
	if currentPrice <= 0 || maxSpot <= 0 || currentPrice > maxSpot {
		return -1
	}
	return int(currentPrice / maxSpot * float64(plotW-1))
}

// renderRow converts a grid row to a string, grouping runs of
// same-colored cells into single ANSI spans.
func renderRow(cells []rune, classes []int, color bool) string {
	if !color {
		return string(cells)
	}

	var sb strings.Builder
	current := cellPlain
	for i, ch := range cells {
		if classes[i] != current {
			if current != cellPlain {
				sb.WriteString(colorReset)
			}
			current = classes[i]
			switch current {
			case cellProfit:
				sb.WriteString(colorGreen)
			case cellLoss:
				sb.WriteString(colorRed)
			case cellMarker:
				sb.WriteString(colorYellow)
			}
		}
		sb.WriteRune(ch)
	}
	if current != cellPlain {
		sb.WriteString(colorReset)
	}
	return sb.String()
}

// xLabels builds the spot price label row under the chart.
func xLabels(spots []float64, plotW int) string {
	row := make([]rune, gutterWidth+2+plotW)
	for i := range row {
		row[i] = ' '
	}

	n := len(spots)
	for _, frac := range []float64{0, 1.0 / 3, 2.0 / 3, 1} {
		col := int(frac * float64(plotW-1))
		idx := col * (n - 1) / (plotW - 1)
		label := []rune(fmt.Sprintf("%.0f", spots[idx]))

		start := gutterWidth + 2 + col - len(label)/2
		if start < 0 {
			start = 0
		}
		if start+len(label) > len(row) {
			start = len(row) - len(label)
		}
		copy(row[start:], label)
	}

	return string(row)
}
