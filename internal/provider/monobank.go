// Package provider implements external rate providers for fetching currency
// exchange rates.
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"ratewatch/internal/rates"
)

var _ rates.RatesProvider = (*MonobankProvider)(nil)

// DefaultTimeoutSec is the HTTP client timeout applied when none is configured.
const DefaultTimeoutSec = 15

// MonobankProvider fetches the public currency rate table from the Monobank
// API. The endpoint takes no query parameters and no auth.
type MonobankProvider struct {
	baseURL string
	client  *http.Client
}

// NewMonobankProvider creates a new MonobankProvider.
func NewMonobankProvider(baseURL string, timeoutSec int) *MonobankProvider {
	if baseURL == "" {
		baseURL = "https://api.monobank.ua"
	}
	if timeoutSec <= 0 {
		timeoutSec = DefaultTimeoutSec
	}
	return &MonobankProvider{
		baseURL: baseURL,
		client:  &http.Client{Timeout: time.Duration(timeoutSec) * time.Second},
	}
}

// FetchRates performs one GET against the rate endpoint and decodes the body
// as a JSON array of rate records. A 429 is reported as
// rates.ErrServerRateLimited, any other non-200 as a *rates.StatusError.
func (p *MonobankProvider) FetchRates(ctx context.Context) ([]rates.ExchangeRate, error) {
	reqURL := p.baseURL + "/bank/currency"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("monobank API request creation failed: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("monobank API request failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, rates.ErrServerRateLimited
	case resp.StatusCode != http.StatusOK:
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &rates.StatusError{Code: resp.StatusCode}
	}

	var rows []rates.ExchangeRate
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("failed to decode monobank response: %w", err)
	}

	return rows, nil
}
