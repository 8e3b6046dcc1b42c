// Package exchange fetches point-in-time FX rates from an
// exchangerate-api style endpoint: GET {base_url}{BASE} returns a JSON
// document with a "rates" object keyed by currency code.
package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"currency-wallet/config"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client implements ports.ExchangeRateClient.
type Client struct {
	baseURL    string
	httpClient HTTPClient
	log        zerolog.Logger
}

// NewClient creates an exchange rate client.
func NewClient(cfg config.ExchangeConfig, httpClient HTTPClient, log zerolog.Logger) *Client {
	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: httpClient,
		log:        log,
	}
}

type ratesResponse struct {
	// Rates decoded as json.Number so quotes survive the trip into
	// decimal without a float64 detour.
	Rates map[string]json.Number `json:"rates"`
}

// GetRates fetches the current rate table for the given base currency.
func (c *Client) GetRates(ctx context.Context, base string) (map[string]decimal.Decimal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+base, nil)
	if err != nil {
		return nil, fmt.Errorf("build rates request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rates request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rates endpoint returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read rates response: %w", err)
	}

	var parsed ratesResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode rates response: %w", err)
	}
	if len(parsed.Rates) == 0 {
		return nil, fmt.Errorf("rates response for %s is empty", base)
	}

	rates := make(map[string]decimal.Decimal, len(parsed.Rates))
	for code, num := range parsed.Rates {
		rate, err := decimal.NewFromString(num.String())
		if err != nil {
			c.log.Warn().Str("currency", code).Str("value", num.String()).Msg("skipping unparseable rate")
			continue
		}
		rates[code] = rate
	}
	if len(rates) == 0 {
		return nil, fmt.Errorf("no parseable rates for %s", base)
	}
	return rates, nil
}
