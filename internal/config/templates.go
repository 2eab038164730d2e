package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const configTemplate = `# hedgeviz configuration

[general]
# Book loaded when --book is not given
default_book = "default"
# Log level: trace, debug, info, warn, error
log_level = "info"
# Also write logs to a rotating file under the config directory
log_to_file = false

[chart]
# Payoff chart dimensions in terminal cells
width = 72
height = 20
# Enable colored output
color = true

[quote]
# Quote provider: "yahoo" or "kite"
provider = "yahoo"
# HTTP timeout for quote lookups
timeout_seconds = 10
# Retry attempts for transient quote failures
max_retries = 3

[kite]
# Exchange prefix for Kite instruments: NSE, BSE
exchange = "NSE"

[storage]
# Session database path; empty uses <config dir>/books.db
path = ""
`

const credentialsTemplate = `# hedgeviz credentials
# WARNING: Keep this file secure! Do not commit to version control.

[kite]
api_key = ""
access_token = ""
`

// Init writes missing config and credentials templates into configDir,
// creating the directory if needed. Existing files are left untouched.
// Returns the directory that was initialized.
func Init(configDir string) (string, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	if _, err := os.Stat(filepath.Join(configDir, "config.toml")); os.IsNotExist(err) {
		if err := createTemplateConfig(configDir); err != nil {
			return "", err
		}
	}
	if _, err := os.Stat(filepath.Join(configDir, "credentials.toml")); os.IsNotExist(err) {
		if err := createTemplateCredentials(configDir); err != nil {
			return "", err
		}
	}

	return configDir, nil
}

func createTemplateConfig(configDir string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, "config.toml")
	if err := os.WriteFile(path, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing config template: %w", err)
	}

	return nil
}

func createTemplateCredentials(configDir string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, "credentials.toml")
	// Use restricted permissions for credentials file
	if err := os.WriteFile(path, []byte(credentialsTemplate), 0600); err != nil {
		return fmt.Errorf("writing credentials template: %w", err)
	}

	return nil
}
