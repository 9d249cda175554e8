package geoip

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Prefill carries the two fields the contact form cares about. Everything
// else in the provider response is ignored.
type Prefill struct {
	CountryCode string `json:"country_code"`
	CallingCode string `json:"country_calling_code"`
}

// Client looks up the visitor's apparent location from an ipapi.co-style
// JSON endpoint. No authentication is required.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient wires an HTTP client; timeout defaults to 5 seconds.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Lookup fetches the country code and dialing prefix for an IP. Callers
// treat any error as "no prefill": the lookup is a best-effort enhancement
// and must never block the form.
func (c *Client) Lookup(ctx context.Context, ip string) (*Prefill, error) {
	url := fmt.Sprintf("%s/%s/json/", c.baseURL, ip)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "portfolio-backend/1.0")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request geolocation: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geolocation provider returned %s", resp.Status)
	}

	var prefill Prefill
	if err := json.NewDecoder(resp.Body).Decode(&prefill); err != nil {
		return nil, fmt.Errorf("decode geolocation response: %w", err)
	}
	if prefill.CountryCode == "" {
		return nil, fmt.Errorf("geolocation response missing country_code")
	}

	return &prefill, nil
}
