package rugcheck

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// ---------------------------------------------------------------------------
// RugCheck API Client — per-contract risk verdicts
// ---------------------------------------------------------------------------

// Verdict is the reputation provider's classification of a token.
type Verdict struct {
	Status        string `json:"status"`
	SupplyBundled bool   `json:"supply_bundled"`
}

// StatusGood is the only status eligible for the trade action path.
const StatusGood = "Good"

// StatusUnknown is the default before (or in absence of) classification.
const StatusUnknown = "Unknown"

// Checker produces a verdict for a contract address.
type Checker interface {
	Check(ctx context.Context, contractAddress string) (*Verdict, error)
}

// Client is the HTTP implementation of Checker against the RugCheck API.
type Client struct {
	httpClient *http.Client
	url        string
}

// Compile-time interface check.
var _ Checker = (*Client)(nil)

// NewClient creates a RugCheck client for the given endpoint URL.
func NewClient(endpoint string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		url: endpoint,
	}
}

// Check fetches the verdict for a contract address.
func (c *Client) Check(ctx context.Context, contractAddress string) (*Verdict, error) {
	queryURL, err := url.Parse(c.url)
	if err != nil {
		return nil, fmt.Errorf("rugcheck: parse URL: %w", err)
	}
	q := queryURL.Query()
	q.Set("contract_address", contractAddress)
	queryURL.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, queryURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("rugcheck: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rugcheck: check %s: %w", contractAddress, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("rugcheck: unexpected status %d: %s", resp.StatusCode, string(body))
	}

	var verdict Verdict
	if err := json.NewDecoder(resp.Body).Decode(&verdict); err != nil {
		return nil, fmt.Errorf("rugcheck: decode response: %w", err)
	}

	if verdict.Status == "" {
		verdict.Status = StatusUnknown
	}
	return &verdict, nil
}
