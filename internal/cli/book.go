package cli

import (
	"context"
	"fmt"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	apperrors "hedgeviz/internal/errors"
	"hedgeviz/internal/logging"
	"hedgeviz/internal/models"
	"hedgeviz/internal/payoff"
	"hedgeviz/internal/render"
)

// addLegCommands adds leg intake and inspection commands.
func addLegCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "leg",
		Short: "Manage option legs in the working book",
		Long:  "Add and inspect the option legs that make up the current strategy.",
	}

	cmd.AddCommand(newLegAddCmd(app))
	cmd.AddCommand(newLegListCmd(app))

	rootCmd.AddCommand(cmd)
}

func newLegAddCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an option leg to the book",
		Long: `Add a single option leg to the working book.

Legs are validated on the way in: quantity at least one, strike
positive, price and fees non-negative. Price is quoted per share;
cash flows are per contract of 100 shares, and fees always reduce
cash regardless of side.`,
		Example: `  hedgeviz leg add --action bto --type call --strike 100 --price 2.00 --fees 0.65
  hedgeviz leg add --action sto --type put --strike 50 --price 1.00
  hedgeviz leg add --action sto --type call --strike 110 --qty 2 --exp 2025-01-17 --notes "covered call"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			name := bookName(cmd, app)

			qty, _ := cmd.Flags().GetInt("qty")
			actionStr, _ := cmd.Flags().GetString("action")
			typeStr, _ := cmd.Flags().GetString("type")
			strike, _ := cmd.Flags().GetFloat64("strike")
			expStr, _ := cmd.Flags().GetString("exp")
			price, _ := cmd.Flags().GetFloat64("price")
			fees, _ := cmd.Flags().GetFloat64("fees")
			notes, _ := cmd.Flags().GetString("notes")

			action, ok := models.ParseLegAction(actionStr)
			if !ok {
				err := apperrors.NewLegInputError("action", actionStr, "use bto, sto, btc or stc")
				output.Error("%v", err)
				return err
			}
			optType, ok := models.ParseOptionType(typeStr)
			if !ok {
				err := apperrors.NewLegInputError("type", typeStr, "use call or put")
				output.Error("%v", err)
				return err
			}

			expiration, err := parseExpiration(expStr)
			if err != nil {
				output.Error("%v", err)
				return err
			}

			leg := models.Leg{
				Qty:        qty,
				Action:     action,
				Type:       optType,
				Strike:     strike,
				Expiration: expiration,
				Price:      price,
				Fees:       fees,
				Notes:      notes,
			}

			b, err := app.Store.LoadBook(ctx, name)
			if err != nil {
				output.Error("Failed to load book: %v", err)
				return err
			}

			added, err := b.AddLeg(leg)
			if err != nil {
				output.Error("%v", err)
				return err
			}
			if err := app.Store.AppendLeg(ctx, name, added); err != nil {
				output.Error("Failed to save leg: %v", err)
				return err
			}

			logging.LogLegAdded(app.Logger, name, string(added.Action), string(added.Type), added.Qty, added.Strike, added.NetCashFlow())

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"book":          name,
					"leg":           added,
					"net_cash_flow": added.NetCashFlow(),
					"legs_in_book":  b.Len(),
				})
			}

			output.Success("✓ Added %s to %s", added.Describe(), name)
			output.Printf("  Net cash flow: %s\n", output.FormatPnL(added.NetCashFlow()))
			return nil
		},
	}

	cmd.Flags().Int("qty", 1, "number of contracts")
	cmd.Flags().String("action", "", "leg action: bto, sto, btc, stc (required)")
	cmd.Flags().String("type", "", "option type: call or put (required)")
	cmd.Flags().Float64("strike", 0, "strike price (required)")
	cmd.Flags().String("exp", "", "expiration date, YYYY-MM-DD")
	cmd.Flags().Float64("price", 0, "premium per share")
	cmd.Flags().Float64("fees", 0, "total fees for the leg")
	cmd.Flags().String("notes", "", "free-form note")
	cmd.MarkFlagRequired("action")
	cmd.MarkFlagRequired("type")
	cmd.MarkFlagRequired("strike")

	return cmd
}

func newLegListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the premium ledger",
		Long: `List the legs of the working book as a cash ledger.

Each row shows the leg's net cash flow and the running total after
that leg; the final running total is the book's net premium cash.`,
		Example: `  hedgeviz leg list
  hedgeviz leg list --csv ledger.csv
  hedgeviz leg list --json`,
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

			legs := b.Legs()
			entries := payoff.Ledger(legs)

			csvPath, _ := cmd.Flags().GetString("csv")
			if csvPath != "" {
				f, err := os.Create(csvPath)
				if err != nil {
					output.Error("Failed to create %s: %v", csvPath, err)
					return err
				}
				defer f.Close()
				if err := render.WriteLedgerCSV(f, entries); err != nil {
					output.Error("Failed to write CSV: %v", err)
					return err
				}
				output.Success("✓ Wrote %d rows to %s", len(entries), csvPath)
				return nil
			}

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"book":     name,
					"symbol":   b.Symbol(),
					"entries":  entries,
					"net_cash": payoff.NetCash(legs),
				})
			}

			if len(entries) == 0 {
				output.Info("Book %q is empty. Add legs with 'hedgeviz leg add'.", name)
				return nil
			}

			title := fmt.Sprintf("Premium Ledger - %s", name)
			if b.Symbol() != "" {
				title = fmt.Sprintf("Premium Ledger - %s (%s)", name, b.Symbol())
			}
			output.Bold(title)
			output.Println()

			renderLedger(output, entries)

			output.Println()
			output.Printf("Net premium cash: %s\n", output.FormatPnL(payoff.NetCash(legs)))
			return nil
		},
	}

	cmd.Flags().String("csv", "", "write the ledger to a CSV file instead of the terminal")

	return cmd
}

// parseExpiration parses an --exp flag value, empty meaning none.
func parseExpiration(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, apperrors.NewLegInputError("exp", s, "use YYYY-MM-DD")
	}
	return t, nil
}

// renderLedger prints the cash ledger table shared by 'leg list' and
// 'payoff'.
func renderLedger(output *Output, entries []payoff.Entry) {
	table := NewTable(output, "#", "Qty", "Action", "Type", "Strike", "Expiry", "Price", "Fees", "Net Cash", "Running", "Notes")
	for i, e := range entries {
		table.AddRow(
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d", e.Leg.Qty),
			e.Leg.Action.Label(),
			e.Leg.Type.Label(),
			FormatPrice(e.Leg.Strike),
			FormatDate(e.Leg.Expiration),
			FormatPrice(e.Leg.Price),
			FormatPrice(e.Leg.Fees),
			output.FormatPnL(e.NetCashFlow),
			output.FormatPnL(e.RunningTotal),
			TruncateString(e.Leg.Notes, 24),
		)
	}
	table.Render()
}

// addBookCommands adds book-level commands.
func addBookCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newBooksCmd(app))
	rootCmd.AddCommand(newResetCmd(app))
	rootCmd.AddCommand(newSymbolCmd(app))
	rootCmd.AddCommand(newPriceCmd(app))
}

func newBooksCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "books",
		Short: "List saved books",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			infos, err := app.Store.ListBooks(ctx)
			if err != nil {
				output.Error("Failed to list books: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{"books": infos})
			}

			if len(infos) == 0 {
				output.Info("No books yet. 'hedgeviz leg add' creates one.")
				return nil
			}

			table := NewTable(output, "Book", "Symbol", "Price", "Legs", "Updated")
			for _, info := range infos {
				symbol := info.Symbol
				if symbol == "" {
					symbol = "-"
				}
				price := "-"
				if info.CurrentPrice > 0 {
					price = FormatUSD(info.CurrentPrice)
				}
				table.AddRow(
					info.Name,
					symbol,
					price,
					fmt.Sprintf("%d", info.LegCount),
					FormatDateTime(info.UpdatedAt),
				)
			}
			table.Render()
			return nil
		},
	}
}

func newResetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Clear all legs from the book",
		Long:  "Remove every leg from the working book. Symbol and price metadata survive.",
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
			cleared := b.Len()

			if err := app.Store.ClearLegs(ctx, name); err != nil {
				output.Error("Failed to clear book: %v", err)
				return err
			}

			logging.LogBookCleared(app.Logger, name, cleared)

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"book":    name,
					"cleared": cleared,
				})
			}
			output.Success("✓ Cleared %d legs from %s", cleared, name)
			return nil
		},
	}
}

func newSymbolCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "symbol [TICKER]",
		Short: "Show or set the book's underlying symbol",
		Example: `  hedgeviz symbol SPY
  hedgeviz symbol`,
		Args: cobra.MaximumNArgs(1),
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

			if len(args) == 0 {
				if output.IsJSON() {
					return output.JSON(map[string]interface{}{
						"book":   name,
						"symbol": b.Symbol(),
					})
				}
				if b.Symbol() == "" {
					output.Info("No symbol set. Use 'hedgeviz symbol <TICKER>'.")
				} else {
					output.Println(b.Symbol())
				}
				return nil
			}

			b.SetSymbol(args[0])
			if err := app.Store.SaveMeta(ctx, name, b.Symbol(), b.CurrentPrice()); err != nil {
				output.Error("Failed to save symbol: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"book":   name,
					"symbol": b.Symbol(),
				})
			}
			output.Success("✓ Symbol set to %s", b.Symbol())
			return nil
		},
	}
}

func newPriceCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "price",
		Short: "Manage the working spot price",
		Long: `Fetch, set, or show the spot price used to mark the payoff chart.

A failed fetch is not fatal: the previously stored price is kept and
a warning is printed.`,
	}

	cmd.AddCommand(newPriceFetchCmd(app))
	cmd.AddCommand(newPriceSetCmd(app))
	cmd.AddCommand(newPriceShowCmd(app))

	return cmd
}

func newPriceFetchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "fetch",
		Short: "Fetch the current price for the book's symbol",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			name := bookName(cmd, app)

			b, err := app.Store.LoadBook(ctx, name)
			if err != nil {
				output.Error("Failed to load book: %v", err)
				return err
			}
			if b.Symbol() == "" {
				err := fmt.Errorf("no symbol set for book %q", name)
				output.Error("%v. Use 'hedgeviz symbol <TICKER>' first.", err)
				return err
			}
			if app.Quotes == nil {
				err := fmt.Errorf("no quote source configured")
				output.Error("%v", err)
				return err
			}

			start := time.Now()
			price, err := app.Quotes.LastPrice(ctx, b.Symbol())
			logging.LogQuote(app.Logger, app.Quotes.Name(), b.Symbol(), price, time.Since(start), err)
			if err != nil {
				if apperrors.IsQuoteUnavailable(err) {
					if output.IsJSON() {
						return output.JSON(map[string]interface{}{
							"book":         name,
							"symbol":       b.Symbol(),
							"error":        err.Error(),
							"stored_price": b.CurrentPrice(),
						})
					}
					output.Warning("Quote unavailable for %s: %v", b.Symbol(), err)
					if b.CurrentPrice() > 0 {
						output.Printf("Keeping stored price %s\n", FormatUSD(b.CurrentPrice()))
					}
					return nil
				}
				output.Error("Failed to fetch quote: %v", err)
				return err
			}

			b.SetCurrentPrice(price)
			if err := app.Store.SaveMeta(ctx, name, b.Symbol(), price); err != nil {
				output.Error("Failed to save price: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"book":     name,
					"symbol":   b.Symbol(),
					"price":    price,
					"provider": app.Quotes.Name(),
				})
			}
			output.Success("✓ %s: %s", b.Symbol(), FormatUSD(price))
			return nil
		},
	}
}

func newPriceSetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "set <price>",
		Short:   "Set the spot price manually",
		Example: `  hedgeviz price set 101.50`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			name := bookName(cmd, app)

			price, err := strconv.ParseFloat(args[0], 64)
			if err != nil || math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
				err := fmt.Errorf("invalid price %q: must be a positive number", args[0])
				output.Error("%v", err)
				return err
			}

			b, err := app.Store.LoadBook(ctx, name)
			if err != nil {
				output.Error("Failed to load book: %v", err)
				return err
			}

			b.SetCurrentPrice(price)
			if err := app.Store.SaveMeta(ctx, name, b.Symbol(), price); err != nil {
				output.Error("Failed to save price: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"book":  name,
					"price": price,
				})
			}
			output.Success("✓ Price set to %s", FormatUSD(price))
			return nil
		},
	}
}

func newPriceShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the stored spot price",
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

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"book":   name,
					"symbol": b.Symbol(),
					"price":  b.CurrentPrice(),
				})
			}

			if b.CurrentPrice() <= 0 {
				output.Info("No price stored. Use 'hedgeviz price fetch' or 'hedgeviz price set'.")
				return nil
			}
			if b.Symbol() != "" {
				output.Printf("%s: %s\n", b.Symbol(), FormatUSD(b.CurrentPrice()))
			} else {
				output.Println(FormatUSD(b.CurrentPrice()))
			}
			return nil
		},
	}
}
