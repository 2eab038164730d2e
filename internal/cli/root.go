package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"hedgeviz/internal/config"
	"hedgeviz/internal/logging"
	"hedgeviz/internal/quote"
	"hedgeviz/internal/store"
)

// Version information
const (
	Version   = "0.1.0"
	BuildDate = "2025-06-01"
)

// App holds the application dependencies. The caller constructs them
// and hands them in, so commands can be tested against a temp store
// and a stub quote source.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
	Store  store.SessionStore
	Quotes quote.Source
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "hedgeviz",
		Short: "Options strategy payoff visualizer",
		Long: `hedgeviz builds option strategies leg by leg and renders their payoff
at expiration: an ASCII P&L chart, a premium cash ledger, breakevens
and max profit/loss.

Books persist between invocations, so a strategy can be built up one
leg at a time. Quotes are fetched on demand to mark the current spot
on the chart.

Use 'hedgeviz help <command>' for more information about a command.
Use 'hedgeviz examples' to see common workflows.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Handle debug flag
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				logging.SetDebugLevel()
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/hedgeviz)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().String("book", "", "book to operate on (default from config)")

	// Add all command groups
	addCoreCommands(rootCmd, app)
	addLegCommands(rootCmd, app)
	addBookCommands(rootCmd, app)
	addPayoffCommands(rootCmd, app)
	addStrategyCommands(rootCmd, app)
	addHelpCommands(rootCmd, app)

	return rootCmd
}

// bookName resolves the target book from the --book flag, falling back
// to the configured default.
func bookName(cmd *cobra.Command, app *App) string {
	name, _ := cmd.Flags().GetString("book")
	if name == "" && app.Config != nil {
		name = app.Config.General.DefaultBook
	}
	if name == "" {
		name = "default"
	}
	return name
}

// addCoreCommands adds core utility commands.
func addCoreCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(app))
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{
					"version":    Version,
					"build_date": BuildDate,
				})
			} else {
				output.Printf("hedgeviz v%s\n", Version)
				output.Dim("Build date: %s", BuildDate)
			}
		},
	}
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  "View and manage application configuration.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(app.Config)
			}
			return showConfig(output, app.Config)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration directory path",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{"path": config.DefaultConfigDir()})
			} else {
				output.Println(config.DefaultConfigDir())
			}
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration files",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := app.Config.Validate(); err != nil {
				output.Error("Configuration validation failed: %v", err)
				return err
			}
			if output.IsJSON() {
				output.JSON(map[string]bool{"valid": true})
			} else {
				output.Success("✓ Configuration is valid")
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create template configuration files",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			configDir, _ := cmd.Flags().GetString("config")
			dir, err := config.Init(configDir)
			if err != nil {
				return err
			}
			if output.IsJSON() {
				return output.JSON(map[string]string{"path": dir})
			}
			output.Success("Configuration templates ready in %s", dir)
			output.Println("Edit config.toml to change defaults; credentials.toml holds broker keys.")
			return nil
		},
	})

	return cmd
}

func showConfig(output *Output, cfg *config.Config) error {
	output.Bold("General")
	output.Printf("  Default Book:    %s\n", cfg.General.DefaultBook)
	output.Printf("  Log Level:       %s\n", cfg.General.LogLevel)
	output.Printf("  Log To File:     %v\n", cfg.General.LogToFile)
	output.Println()

	output.Bold("Chart")
	output.Printf("  Width:           %d\n", cfg.Chart.Width)
	output.Printf("  Height:          %d\n", cfg.Chart.Height)
	output.Printf("  Color:           %v\n", cfg.Chart.Color)
	output.Println()

	output.Bold("Quote")
	output.Printf("  Provider:        %s\n", cfg.Quote.Provider)
	output.Printf("  Timeout:         %ds\n", cfg.Quote.TimeoutSeconds)
	output.Printf("  Max Retries:     %d\n", cfg.Quote.MaxRetries)
	output.Println()

	output.Bold("Kite")
	output.Printf("  Exchange:        %s\n", cfg.Kite.Exchange)
	output.Println()

	output.Bold("Storage")
	output.Printf("  Database:        %s\n", cfg.DBPath())

	return nil
}
