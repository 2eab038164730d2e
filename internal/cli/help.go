// Package cli provides the command-line interface for the payoff engine.
package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

// addHelpCommands adds help and documentation commands.
func addHelpCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newCommandsCmd(app))
	rootCmd.AddCommand(newExamplesCmd(app))
	rootCmd.AddCommand(newQuickstartCmd(app))
}

func newCommandsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "commands",
		Short: "List all commands by category",
		Long:  "Display all available commands organized by category.",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			output.Bold("hedgeviz Commands")
			output.Println()

			categories := []struct {
				name     string
				commands []struct {
					cmd  string
					desc string
				}
			}{
				{
					name: "Legs",
					commands: []struct {
						cmd  string
						desc string
					}{
						{"leg add", "Add an option leg to the book"},
						{"leg list", "Show the premium ledger"},
						{"leg list --csv FILE", "Export the ledger to CSV"},
						{"reset", "Clear all legs from the book"},
					},
				},
				{
					name: "Payoff",
					commands: []struct {
						cmd  string
						desc string
					}{
						{"payoff", "P&L chart, summary and ledger"},
						{"payoff --max-spot N", "Override the chart domain"},
						{"payoff --json", "Full curve as JSON"},
					},
				},
				{
					name: "Strategies",
					commands: []struct {
						cmd  string
						desc string
					}{
						{"strategy list", "List strategy templates"},
						{"strategy add <template>", "Expand a template into legs"},
					},
				},
				{
					name: "Quotes",
					commands: []struct {
						cmd  string
						desc string
					}{
						{"symbol <TICKER>", "Set the book's underlying"},
						{"price fetch", "Fetch the current price"},
						{"price set <value>", "Set the price manually"},
						{"price show", "Show the stored price"},
					},
				},
				{
					name: "Books",
					commands: []struct {
						cmd  string
						desc string
					}{
						{"books", "List saved books"},
						{"--book <name>", "Target any command at a book"},
					},
				},
				{
					name: "Configuration",
					commands: []struct {
						cmd  string
						desc string
					}{
						{"config show", "Show current configuration"},
						{"config path", "Show config directory"},
						{"config validate", "Validate configuration"},
						{"config init", "Create template config files"},
					},
				},
				{
					name: "Help",
					commands: []struct {
						cmd  string
						desc string
					}{
						{"help <command>", "Detailed help"},
						{"commands", "List all commands"},
						{"examples", "Common workflows"},
						{"quickstart", "New user guide"},
						{"version", "Version information"},
					},
				},
			}

			for _, cat := range categories {
				output.Bold(cat.name)
				for _, c := range cat.commands {
					output.Printf("  %-30s %s\n", output.Cyan(c.cmd), c.desc)
				}
				output.Println()
			}

			output.Dim("Use 'hedgeviz help <command>' for detailed help on any command")

			return nil
		},
	}
}

func newExamplesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "examples",
		Short: "Show common workflow examples",
		Long:  "Display examples of common strategy-building workflows.",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			output.Bold("Common Workflow Examples")
			output.Println()

			examples := []struct {
				title    string
				commands []string
			}{
				{
					title: "Price a Long Call",
					commands: []string{
						"hedgeviz symbol SPY             # Set the underlying",
						"hedgeviz leg add --action bto --type call --strike 100 --price 2.00 --fees 0.65",
						"hedgeviz payoff                 # Chart, breakevens, max loss",
					},
				},
				{
					title: "Short Put Income",
					commands: []string{
						"hedgeviz leg add --action sto --type put --strike 50 --price 1.00 --fees 0.65",
						"hedgeviz payoff                 # Premium kept above the strike",
						"hedgeviz leg list --csv puts.csv # Export the cash ledger",
					},
				},
				{
					title: "Iron Condor from a Template",
					commands: []string{
						"hedgeviz strategy list          # See available shapes",
						"hedgeviz strategy add iron-condor --strike 100 --width 5 --price 1.20",
						"hedgeviz payoff                 # Four legs, two breakevens",
					},
				},
				{
					title: "Mark the Current Spot",
					commands: []string{
						"hedgeviz symbol AAPL            # Quotes need a symbol",
						"hedgeviz price fetch            # Pull the latest price",
						"hedgeviz price set 101.50       # Or set it by hand",
						"hedgeviz payoff                 # Spot shows as a marker",
					},
				},
				{
					title: "Work with Multiple Books",
					commands: []string{
						"hedgeviz --book wheel leg add --action sto --type put --strike 45 --price 0.80",
						"hedgeviz --book wheel payoff    # Each book is independent",
						"hedgeviz books                  # List everything saved",
					},
				},
				{
					title: "Scripting and Export",
					commands: []string{
						"hedgeviz payoff --json | jq .summary",
						"hedgeviz leg list --json | jq '.entries[].RunningTotal'",
						"hedgeviz leg list --csv ledger.csv",
					},
				},
				{
					title: "Start Over",
					commands: []string{
						"hedgeviz reset                  # Clears legs, keeps symbol and price",
						"hedgeviz leg list               # Empty book",
					},
				},
			}

			for _, ex := range examples {
				output.Bold(ex.title)
				for _, c := range ex.commands {
					parts := strings.SplitN(c, "#", 2)
					if len(parts) == 2 {
						output.Printf("  %s %s\n", output.Cyan(strings.TrimSpace(parts[0])), output.DimText(strings.TrimSpace(parts[1])))
					} else {
						output.Printf("  %s\n", output.Cyan(c))
					}
				}
				output.Println()
			}

			return nil
		},
	}
}

func newQuickstartCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "quickstart",
		Short: "New user guide",
		Long:  "Step-by-step guide for new users.",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			output.Bold("hedgeviz - Quick Start Guide")
			output.Println()

			steps := []struct {
				step  int
				title string
				desc  string
				cmd   string
			}{
				{
					step:  1,
					title: "Create the Config Files",
					desc:  "Write template config files to ~/.config/hedgeviz. Defaults work out of the box.",
					cmd:   "hedgeviz config init",
				},
				{
					step:  2,
					title: "Set the Underlying",
					desc:  "Name the ticker the strategy is written against.",
					cmd:   "hedgeviz symbol SPY",
				},
				{
					step:  3,
					title: "Add a Leg",
					desc:  "Build the strategy one leg at a time. Price is per share, fees per leg.",
					cmd:   "hedgeviz leg add --action bto --type call --strike 100 --price 2.00 --fees 0.65",
				},
				{
					step:  4,
					title: "View the Payoff",
					desc:  "Chart the P&L at expiration with breakevens and max profit/loss.",
					cmd:   "hedgeviz payoff",
				},
				{
					step:  5,
					title: "Mark the Spot",
					desc:  "Fetch the current price so the chart shows where the underlying trades now.",
					cmd:   "hedgeviz price fetch",
				},
				{
					step:  6,
					title: "Iterate",
					desc:  "Add legs, or clear the book and try another structure.",
					cmd:   "hedgeviz strategy add straddle --strike 100 --price 3.10",
				},
			}

			for _, s := range steps {
				output.Printf("%s Step %d: %s\n", output.Cyan("→"), s.step, output.BoldText(s.title))
				output.Printf("  %s\n", s.desc)
				output.Printf("  %s\n\n", output.DimText(s.cmd))
			}

			output.Bold("Configuration Files")
			output.Println()
			output.Printf("  %s - chart size, default book, quote provider\n", output.Cyan("config.toml"))
			output.Printf("  %s - broker API keys (only needed for the kite provider)\n", output.Cyan("credentials.toml"))
			output.Println()

			output.Bold("Getting Help")
			output.Println()
			output.Printf("  %s - List all commands\n", output.Cyan("hedgeviz commands"))
			output.Printf("  %s - Common workflows\n", output.Cyan("hedgeviz examples"))
			output.Printf("  %s - Help for any command\n", output.Cyan("hedgeviz help <command>"))
			output.Println()

			output.Bold("Important Notes")
			output.Println()
			output.Printf("  %s Payoff is computed at expiration only, no time value\n", output.Yellow("⚠"))
			output.Printf("  %s Fees always reduce cash, on buys and sells alike\n", output.Yellow("⚠"))
			output.Printf("  %s Quotes are optional; everything works offline with 'price set'\n", output.Yellow("⚠"))

			return nil
		},
	}
}
