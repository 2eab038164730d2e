package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"hedgeviz/internal/logging"
	"hedgeviz/internal/models"
	"hedgeviz/internal/payoff"
)

// strategyParams carries the user inputs a template expands with.
// Premium and fees apply uniformly to every leg; books needing per-leg
// pricing are built with 'leg add' instead.
type strategyParams struct {
	strike float64
	width  float64
	price  float64
	fees   float64
	qty    int
	exp    time.Time
}

// strategyTemplate expands a named multi-leg structure around a center
// strike K, offset by the wing width W where the shape calls for it.
type strategyTemplate struct {
	name        string
	description string
	build       func(p strategyParams) []models.Leg
}

var strategyTemplates = []strategyTemplate{
	{
		name:        "straddle",
		description: "Buy call K, buy put K",
		build: func(p strategyParams) []models.Leg {
			return []models.Leg{
				templateLeg(p, models.ActionBuyToOpen, models.OptionCall, p.strike),
				templateLeg(p, models.ActionBuyToOpen, models.OptionPut, p.strike),
			}
		},
	},
	{
		name:        "strangle",
		description: "Buy call K+W, buy put K-W",
		build: func(p strategyParams) []models.Leg {
			return []models.Leg{
				templateLeg(p, models.ActionBuyToOpen, models.OptionCall, p.strike+p.width),
				templateLeg(p, models.ActionBuyToOpen, models.OptionPut, p.strike-p.width),
			}
		},
	},
	{
		name:        "bull-call-spread",
		description: "Buy call K, sell call K+W",
		build: func(p strategyParams) []models.Leg {
			return []models.Leg{
				templateLeg(p, models.ActionBuyToOpen, models.OptionCall, p.strike),
				templateLeg(p, models.ActionSellToOpen, models.OptionCall, p.strike+p.width),
			}
		},
	},
	{
		name:        "bear-put-spread",
		description: "Buy put K, sell put K-W",
		build: func(p strategyParams) []models.Leg {
			return []models.Leg{
				templateLeg(p, models.ActionBuyToOpen, models.OptionPut, p.strike),
				templateLeg(p, models.ActionSellToOpen, models.OptionPut, p.strike-p.width),
			}
		},
	},
	{
		name:        "iron-condor",
		description: "Buy put K-2W, sell put K-W, sell call K+W, buy call K+2W",
		build: func(p strategyParams) []models.Leg {
			return []models.Leg{
				templateLeg(p, models.ActionBuyToOpen, models.OptionPut, p.strike-2*p.width),
				templateLeg(p, models.ActionSellToOpen, models.OptionPut, p.strike-p.width),
				templateLeg(p, models.ActionSellToOpen, models.OptionCall, p.strike+p.width),
				templateLeg(p, models.ActionBuyToOpen, models.OptionCall, p.strike+2*p.width),
			}
		},
	},
}

func templateLeg(p strategyParams, action models.LegAction, t models.OptionType, strike float64) models.Leg {
	return models.Leg{
		Qty:        p.qty,
		Action:     action,
		Type:       t,
		Strike:     strike,
		Expiration: p.exp,
		Price:      p.price,
		Fees:       p.fees,
	}
}

func findTemplate(name string) (strategyTemplate, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, tpl := range strategyTemplates {
		if tpl.name == name {
			return tpl, true
		}
	}
	return strategyTemplate{}, false
}

func templateNames() []string {
	names := make([]string, len(strategyTemplates))
	for i, tpl := range strategyTemplates {
		names[i] = tpl.name
	}
	return names
}

// addStrategyCommands adds strategy template commands.
func addStrategyCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "strategy",
		Short: "Build common strategies from templates",
		Long:  "Expand well-known multi-leg structures into book legs.",
	}

	cmd.AddCommand(newStrategyListCmd())
	cmd.AddCommand(newStrategyAddCmd(app))

	rootCmd.AddCommand(cmd)
}

func newStrategyListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available strategy templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			if output.IsJSON() {
				templates := make([]map[string]string, len(strategyTemplates))
				for i, tpl := range strategyTemplates {
					templates[i] = map[string]string{
						"name": tpl.name,
						"legs": tpl.description,
					}
				}
				return output.JSON(map[string]interface{}{"templates": templates})
			}

			table := NewTable(output, "Template", "Legs")
			for _, tpl := range strategyTemplates {
				table.AddRow(tpl.name, tpl.description)
			}
			table.Render()
			output.Println()
			output.Dim("K is --strike, W is --width. Premiums apply per leg.")
			return nil
		},
	}
}

func newStrategyAddCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <template>",
		Short: "Expand a strategy template into the book",
		Long: `Expand a named template into legs and add them to the working book.

Every generated leg goes through the same validation as 'leg add'. No
legs are saved unless the whole expansion is valid.`,
		Example: `  hedgeviz strategy add straddle --strike 100 --price 3.10 --fees 0.65
  hedgeviz strategy add iron-condor --strike 100 --width 5 --price 1.20
  hedgeviz strategy add bull-call-spread --strike 95 --width 10 --exp 2025-01-17`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			name := bookName(cmd, app)

			tpl, ok := findTemplate(args[0])
			if !ok {
				err := fmt.Errorf("unknown template %q (available: %s)", args[0], strings.Join(templateNames(), ", "))
				output.Error("%v", err)
				return err
			}

			strike, _ := cmd.Flags().GetFloat64("strike")
			width, _ := cmd.Flags().GetFloat64("width")
			price, _ := cmd.Flags().GetFloat64("price")
			fees, _ := cmd.Flags().GetFloat64("fees")
			qty, _ := cmd.Flags().GetInt("qty")
			expStr, _ := cmd.Flags().GetString("exp")

			exp, err := parseExpiration(expStr)
			if err != nil {
				output.Error("%v", err)
				return err
			}

			legs := tpl.build(strategyParams{
				strike: strike,
				width:  width,
				price:  price,
				fees:   fees,
				qty:    qty,
				exp:    exp,
			})

			// Validate the whole expansion before saving anything, so a
			// wing strike pushed to zero or below rejects cleanly.
			for _, leg := range legs {
				if err := leg.Validate(); err != nil {
					output.Error("%v", err)
					return err
				}
			}

			b, err := app.Store.LoadBook(ctx, name)
			if err != nil {
				output.Error("Failed to load book: %v", err)
				return err
			}

			added := make([]models.Leg, 0, len(legs))
			for _, leg := range legs {
				stamped, err := b.AddLeg(leg)
				if err != nil {
					output.Error("%v", err)
					return err
				}
				if err := app.Store.AppendLeg(ctx, name, stamped); err != nil {
					output.Error("Failed to save leg: %v", err)
					return err
				}
				logging.LogLegAdded(app.Logger, name, string(stamped.Action), string(stamped.Type), stamped.Qty, stamped.Strike, stamped.NetCashFlow())
				added = append(added, stamped)
			}

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"book":     name,
					"strategy": tpl.name,
					"legs":     added,
					"net_cash": payoff.NetCash(added),
				})
			}

			output.Success("✓ Added %s (%d legs) to %s", tpl.name, len(added), name)
			for _, leg := range added {
				output.Printf("  %s\n", leg.Describe())
			}
			output.Printf("  Net cash flow: %s\n", output.FormatPnL(payoff.NetCash(added)))
			output.Println()
			output.Dim("Run 'hedgeviz payoff' to see the curve.")
			return nil
		},
	}

	cmd.Flags().Float64("strike", 0, "center strike K (required)")
	cmd.Flags().Float64("width", 5, "wing width W")
	cmd.Flags().Float64("price", 0, "premium per share, applied to every leg")
	cmd.Flags().Float64("fees", 0, "fees per leg")
	cmd.Flags().Int("qty", 1, "contracts per leg")
	cmd.Flags().String("exp", "", "expiration date, YYYY-MM-DD")
	cmd.MarkFlagRequired("strike")

	return cmd
}
