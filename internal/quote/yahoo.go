package quote

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperrors "hedgeviz/internal/errors"
	"hedgeviz/pkg/utils"
)

const defaultYahooBaseURL = "https://query1.finance.yahoo.com"

// YahooSource fetches the latest traded price from the public Yahoo
// Finance chart endpoint. No key material is needed.
type YahooSource struct {
	baseURL string
	client  *http.Client
	retry   utils.RetryConfig
}

// YahooConfig tunes the Yahoo source. BaseURL exists for tests; the
// zero value hits the public API.
type YahooConfig struct {
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
}

// NewYahooSource creates a Yahoo-backed quote source.
func NewYahooSource(cfg YahooConfig) *YahooSource {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultYahooBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	retry := utils.DefaultRetryConfig()
	if cfg.MaxRetries > 0 {
		retry.MaxAttempts = cfg.MaxRetries
	}

	return &YahooSource{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		retry:   retry,
	}
}

// Name identifies the provider.
func (s *YahooSource) Name() string {
	return ProviderYahoo
}

// chartResponse mirrors the slice of the chart payload that matters
// here.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol             string  `json:"symbol"`
				RegularMarketPrice float64 `json:"regularMarketPrice"`
			} `json:"meta"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// LastPrice returns the latest traded price for the symbol, rounded to
// cents. The symbol is uppercased before the lookup. Transport, decode
// and payload problems all come back as quote-unavailable errors.
func (s *YahooSource) LastPrice(ctx context.Context, symbol string) (float64, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return 0, apperrors.NewQuoteError(s.Name(), symbol, fmt.Errorf("empty symbol"))
	}

	endpoint := fmt.Sprintf("%s/v8/finance/chart/%s?range=1d&interval=1d", s.baseURL, url.PathEscape(symbol))

	price, err := utils.RetryWithResult(ctx, s.retry, func() (float64, error) {
		return s.fetch(ctx, endpoint)
	})
	if err != nil {
		return 0, apperrors.NewQuoteError(s.Name(), symbol, err)
	}
	return math.Round(price*100) / 100, nil
}

func (s *YahooSource) fetch(ctx context.Context, endpoint string) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, fmt.Errorf("building quote request: %w", err)
	}
	req.Header.Set("User-Agent", "hedgeviz/1.0")
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("fetching quote: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("quote endpoint returned %s", resp.Status)
	}

	var payload chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, fmt.Errorf("decoding quote payload: %w", err)
	}
	if payload.Chart.Error != nil {
		return 0, fmt.Errorf("quote endpoint error [%s]: %s", payload.Chart.Error.Code, payload.Chart.Error.Description)
	}
	if len(payload.Chart.Result) == 0 {
		return 0, fmt.Errorf("no chart result for symbol")
	}

	price := payload.Chart.Result[0].Meta.RegularMarketPrice
	if price <= 0 {
		return 0, fmt.Errorf("no market price in chart result")
	}
	return price, nil
}
