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

const fixerName = "fixer"

// FixerClient fetches quotes from fixer.io. The access key travels as a query
// parameter and failures come back as HTTP 200 with success=false.
type FixerClient struct {
	http    *http.Client
	baseURL string
	apiKey  string
}

func NewFixerClient(httpClient *http.Client, baseURL, apiKey string) *FixerClient {
	return &FixerClient{http: httpClient, baseURL: baseURL, apiKey: apiKey}
}

type fixerResponse struct {
	Success   bool               `json:"success"`
	Timestamp int64              `json:"timestamp"`
	Base      string             `json:"base"`
	Rates     map[string]float64 `json:"rates"`
	Error     struct {
		Type string `json:"type"`
		Info string `json:"info"`
	} `json:"error"`
}

func (c *FixerClient) Name() string { return fixerName }

func (c *FixerClient) FetchRate(ctx context.Context, base, target string) (float64, time.Time, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("failed to parse base URL: %w", err)
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/api/latest"
	q := u.Query()
	q.Set("access_key", c.apiKey)
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

	var body fixerResponse
	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, time.Time{}, fmt.Errorf("failed to decode response for pair %s/%s: %w", base, target, err)
	}

	if !body.Success {
		return 0, time.Time{}, fmt.Errorf("api returned failure for pair %s/%s: %s (%s)", base, target, body.Error.Type, body.Error.Info)
	}

	rate, ok := body.Rates[target]
	if !ok {
		return 0, time.Time{}, fmt.Errorf("response for base %q has no rate for target %q", base, target)
	}
	if err = checkRate(rate, fixerName, base, target); err != nil {
		return 0, time.Time{}, err
	}

	var ts time.Time
	if body.Timestamp > 0 {
		ts = time.Unix(body.Timestamp, 0).UTC()
	}
	return rate, ts, nil
}
