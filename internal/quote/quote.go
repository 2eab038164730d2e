// Package quote looks up spot prices from external market-data
// providers. Providers are deliberately narrow: one method, one price.
// Every failure wraps ErrQuoteUnavailable, so callers can always fall
// back to the price they already have; a dead provider never takes the
// engine down with it.
package quote

import (
	"context"
	"time"

	apperrors "hedgeviz/internal/errors"
)

// Provider names accepted in configuration.
const (
	ProviderYahoo = "yahoo"
	ProviderKite  = "kite"
)

// Source looks up the latest traded price of an underlying.
type Source interface {
	// LastPrice returns the most recent price for the symbol.
	// Implementations wrap all failures in ErrQuoteUnavailable.
	LastPrice(ctx context.Context, symbol string) (float64, error)

	// Name identifies the provider in logs and errors.
	Name() string
}

// Config selects and tunes a provider.
type Config struct {
	Provider   string
	Timeout    time.Duration
	MaxRetries int
	Kite       KiteConfig
}

// NewSource builds the configured provider. An empty provider defaults
// to Yahoo, matching the zero-setup path.
func NewSource(cfg Config) (Source, error) {
	switch cfg.Provider {
	case "", ProviderYahoo:
		return NewYahooSource(YahooConfig{
			Timeout:    cfg.Timeout,
			MaxRetries: cfg.MaxRetries,
		}), nil
	case ProviderKite:
		return NewKiteSource(cfg.Kite), nil
	}
	return nil, apperrors.Wrapf(apperrors.ErrConfigInvalid, "unknown quote provider %q", cfg.Provider)
}
