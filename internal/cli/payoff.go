package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"hedgeviz/internal/logging"
	"hedgeviz/internal/payoff"
	"hedgeviz/internal/render"
)

// addPayoffCommands adds the payoff analysis command.
func addPayoffCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newPayoffCmd(app))
}

func newPayoffCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payoff",
		Short: "Show the expiration payoff for the book",
		Long: `Compute and display the expiration P&L of the working book.

The chart samples the payoff on a fixed grid of spot prices from zero
to 1.5x the highest strike. A stored spot price widens the domain if
needed and is marked on the chart. An empty book draws a flat zero
line.`,
		Example: `  hedgeviz payoff
  hedgeviz payoff --max-spot 250
  hedgeviz payoff --width 100 --height 30
  hedgeviz payoff --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			name := bookName(cmd, app)

			b, err := app.Store.LoadBook(ctx, name)
			if err != nil {
				output.Error("Failed to load book: %v", err)
				return err
			}

			maxSpot, _ := cmd.Flags().GetFloat64("max-spot")
			legs := b.Legs()
			curve := payoff.Compute(legs, payoff.Options{
				MaxSpot:     maxSpot,
				IncludeSpot: b.CurrentPrice(),
			})
			summary := payoff.Analyze(legs, curve)

			logging.LogPayoffComputed(app.Logger, name, len(legs), curve.NetCash, curve.MaxSpot)

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"book":     name,
					"symbol":   b.Symbol(),
					"spots":    curve.Spots,
					"pnl":      curve.PnL,
					"net_cash": curve.NetCash,
					"max_spot": curve.MaxSpot,
					"summary":  summary,
				})
			}

			title := fmt.Sprintf("Payoff at Expiration - %s", name)
			if b.Symbol() != "" {
				title = fmt.Sprintf("Payoff at Expiration - %s (%s)", name, b.Symbol())
			}
			output.Bold(title)
			output.Println()

			chartCfg := chartConfig(cmd, app, output)
			for _, line := range render.Chart(curve, b.CurrentPrice(), chartCfg) {
				output.Println(line)
			}
			output.Println()

			content := []string{
				fmt.Sprintf("Net Premium Cash:  %s", output.FormatPnL(summary.NetCash)),
				fmt.Sprintf("Max Profit:        %s", formatBound(output, summary.MaxProfit, summary.UnboundedProfit)),
				fmt.Sprintf("Max Loss:          %s", formatBound(output, summary.MaxLoss, summary.UnboundedLoss)),
				fmt.Sprintf("Breakevens:        %s", formatBreakevens(summary.Breakevens)),
			}
			output.Box("Strategy Summary", content)

			if len(legs) > 0 {
				output.Println()
				renderLedger(output, payoff.Ledger(legs))
			}
			return nil
		},
	}

	cmd.Flags().Float64("max-spot", 0, "override the chart's maximum spot price")
	cmd.Flags().Int("width", 0, "chart width in columns (default from config)")
	cmd.Flags().Int("height", 0, "chart height in rows (default from config)")

	return cmd
}

// chartConfig resolves chart dimensions from flags, falling back to the
// configured defaults. Color follows the output's terminal detection so
// piped charts stay plain.
func chartConfig(cmd *cobra.Command, app *App, output *Output) render.ChartConfig {
	cfg := render.DefaultChartConfig()
	if app.Config != nil {
		cfg.Width = app.Config.Chart.Width
		cfg.Height = app.Config.Chart.Height
		cfg.Color = app.Config.Chart.Color
	}
	if w, _ := cmd.Flags().GetInt("width"); w > 0 {
		cfg.Width = w
	}
	if h, _ := cmd.Flags().GetInt("height"); h > 0 {
		cfg.Height = h
	}
	cfg.Color = cfg.Color && output.ColorEnabled()
	return cfg
}

// formatBound formats a max profit or loss figure, substituting
// "Unlimited" when the tail grows without bound.
func formatBound(output *Output, v float64, unbounded bool) string {
	if unbounded {
		return output.Yellow("Unlimited")
	}
	return output.FormatPnL(v)
}

func formatBreakevens(points []float64) string {
	if len(points) == 0 {
		return "none"
	}
	parts := make([]string, len(points))
	for i, p := range points {
		parts[i] = FormatPrice(p)
	}
	return strings.Join(parts, ", ")
}
