package quote

import (
	"context"
	"fmt"
	"strings"

	kiteconnect "github.com/zerodha/gokiteconnect/v4"

	apperrors "hedgeviz/internal/errors"
)

// KiteSource fetches last traded prices from Zerodha Kite Connect, for
// books on Indian underlyings. It needs an API key and a daily access
// token; obtaining the token is the operator's problem, this source
// only spends it.
type KiteSource struct {
	client   *kiteconnect.Client
	exchange string
}

// KiteConfig holds the Kite Connect session material.
type KiteConfig struct {
	APIKey      string
	AccessToken string
	Exchange    string // defaults to NSE
}

// NewKiteSource creates a Kite-backed quote source.
func NewKiteSource(cfg KiteConfig) *KiteSource {
	client := kiteconnect.New(cfg.APIKey)
	if cfg.AccessToken != "" {
		client.SetAccessToken(cfg.AccessToken)
	}
	exchange := cfg.Exchange
	if exchange == "" {
		exchange = "NSE"
	}

	return &KiteSource{
		client:   client,
		exchange: exchange,
	}
}

// Name identifies the provider.
func (s *KiteSource) Name() string {
	return ProviderKite
}

// LastPrice returns the last traded price for the symbol on the
// configured exchange.
func (s *KiteSource) LastPrice(ctx context.Context, symbol string) (float64, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return 0, apperrors.NewQuoteError(s.Name(), symbol, fmt.Errorf("empty symbol"))
	}

	instrument := fmt.Sprintf("%s:%s", s.exchange, symbol)
	quotes, err := s.client.GetLTP(instrument)
	if err != nil {
		return 0, apperrors.NewQuoteError(s.Name(), symbol, err)
	}

	ltp, ok := quotes[instrument]
	if !ok || ltp.LastPrice <= 0 {
		return 0, apperrors.NewQuoteError(s.Name(), symbol, fmt.Errorf("no last price for %s", instrument))
	}
	return ltp.LastPrice, nil
}
