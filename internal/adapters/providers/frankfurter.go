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

const frankfurterName = "frankfurter"

// FrankfurterClient fetches quotes from frankfurter.dev. Keyless; the
// response carries no usable timestamp, so the zero time is returned and the
// aggregation layer stamps the quote.
type FrankfurterClient struct {
	http    *http.Client
	baseURL string
}

func NewFrankfurterClient(httpClient *http.Client, baseURL string) *FrankfurterClient {
	return &FrankfurterClient{http: httpClient, baseURL: baseURL}
}

type frankfurterResponse struct {
	Base  string             `json:"base"`
	Rates map[string]float64 `json:"rates"`
}

func (c *FrankfurterClient) Name() string { return frankfurterName }

func (c *FrankfurterClient) FetchRate(ctx context.Context, base, target string) (float64, time.Time, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("failed to parse base URL: %w", err)
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/v1/latest"
	q := u.Query()
	q.Set("base", base)
	q.Set("symbols", target)
	u.RawQuery = q.Encode()

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

	var body frankfurterResponse
	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, time.Time{}, fmt.Errorf("failed to decode response for pair %s/%s: %w", base, target, err)
	}

	rate, ok := body.Rates[target]
	if !ok {
		return 0, time.Time{}, fmt.Errorf("response for base %q has no rate for target %q", base, target)
	}
	if err = checkRate(rate, frankfurterName, base, target); err != nil {
		return 0, time.Time{}, err
	}

	return rate, time.Time{}, nil
}
