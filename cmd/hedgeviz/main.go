package main

import (
	"fmt"
	"os"
	"strings"

	"hedgeviz/internal/cli"
	"hedgeviz/internal/config"
	"hedgeviz/internal/logging"
	"hedgeviz/internal/quote"
	"hedgeviz/internal/store"
)

func main() {
	os.Exit(run())
}

func run() int {
	// The config directory has to be known before cobra parses anything,
	// so the --config flag is scanned out of the raw arguments here and
	// registered again on the root command for help text.
	configDir := configDirFromArgs(os.Args[1:])

	cfg, err := config.Load(configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	logCfg := logging.DefaultLogConfig()
	logCfg.Level = cfg.General.LogLevel
	logCfg.File = cfg.General.LogToFile
	logger := logging.NewLoggerWithConfig(logCfg)

	st, err := store.NewSQLiteStore(cfg.DBPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: opening session store: %v\n", err)
		return 1
	}
	defer st.Close()

	quotes, err := quote.NewSource(quote.Config{
		Provider:   cfg.Quote.Provider,
		Timeout:    cfg.QuoteTimeout(),
		MaxRetries: cfg.Quote.MaxRetries,
		Kite: quote.KiteConfig{
			APIKey:      cfg.Credentials.Kite.APIKey,
			AccessToken: cfg.Credentials.Kite.AccessToken,
			Exchange:    cfg.Kite.Exchange,
		},
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	app := &cli.App{
		Config: cfg,
		Logger: logger,
		Store:  st,
		Quotes: quotes,
	}

	if err := cli.NewRootCmd(app).Execute(); err != nil {
		// Commands print their own detail; this line carries the failure
		// to stderr for scripts and covers flag-parse errors, which
		// SilenceErrors keeps cobra from printing.
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func configDirFromArgs(args []string) string {
	for i, arg := range args {
		if arg == "--config" && i+1 < len(args) {
			return args[i+1]
		}
		if strings.HasPrefix(arg, "--config=") {
			return strings.TrimPrefix(arg, "--config=")
		}
	}
	return ""
}
