package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const exchangeRateAPIName = "exchangerate-api"

// ExchangeRateAPIClient fetches quotes from exchangerate-api.com. The v6 API
// embeds the key in the path and returns the full conversion table for the
// base currency.
type ExchangeRateAPIClient struct {
	http    *http.Client
	baseURL string
	apiKey  string
}

func NewExchangeRateAPIClient(httpClient *http.Client, baseURL, apiKey string) *ExchangeRateAPIClient {
	return &ExchangeRateAPIClient{http: httpClient, baseURL: baseURL, apiKey: apiKey}
}

type exchangeRateAPIResponse struct {
	Result          string             `json:"result"`
	ErrorType       string             `json:"error-type"`
	BaseCode        string             `json:"base_code"`
	ConversionRates map[string]float64 `json:"conversion_rates"`
	LastUpdateUnix  int64              `json:"time_last_update_unix"`
}

func (c *ExchangeRateAPIClient) Name() string { return exchangeRateAPIName }

func (c *ExchangeRateAPIClient) FetchRate(ctx context.Context, base, target string) (float64, time.Time, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("failed to parse base URL: %w", err)
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/v6/" + c.apiKey + "/latest/" + base

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("failed to create request for pair %s/%s: %w", base, target, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("failed to execute request for pair %s/%s: %w", base, target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, time.Time{}, fmt.Errorf("unexpected status code %d for pair %s/%s: %s", resp.StatusCode, base, target, resp.Status)
	}

	var body exchangeRateAPIResponse
	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, time.Time{}, fmt.Errorf("failed to decode response for pair %s/%s: %w", base, target, err)
	}

	if body.Result != "success" {
		return 0, time.Time{}, fmt.Errorf("api returned non-success result for pair %s/%s: %s", base, target, body.ErrorType)
	}

	rate, ok := body.ConversionRates[target]
	if !ok {
		return 0, time.Time{}, fmt.Errorf("response for base %q has no rate for target %q", base, target)
	}
	if err = checkRate(rate, exchangeRateAPIName, base, target); err != nil {
		return 0, time.Time{}, err
	}

	var ts time.Time
	if body.LastUpdateUnix > 0 {
		ts = time.Unix(body.LastUpdateUnix, 0).UTC()
	}
	return rate, ts, nil
}
