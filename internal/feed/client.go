package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// ---------------------------------------------------------------------------
// Listing Feed Client — polls the migration feed for newly graduated tokens
// ---------------------------------------------------------------------------

// Client fetches migrated tokens from the listing provider over HTTP.
type Client struct {
	httpClient *http.Client
	url        string
}

// NewClient creates a feed client for the given endpoint URL.
func NewClient(url string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		url: url,
	}
}

// FetchMigrated returns the current batch of migrated tokens. A transport
// error or non-success status is returned to the caller, who treats it as an
// empty batch for that cycle.
func (c *Client) FetchMigrated(ctx context.Context) ([]Token, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("feed: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("feed: fetch migrated tokens: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("feed: unexpected status %d: %s", resp.StatusCode, string(body))
	}

	var tokens []Token
	if err := json.NewDecoder(resp.Body).Decode(&tokens); err != nil {
		return nil, fmt.Errorf("feed: decode response: %w", err)
	}

	log.Debug().Int("count", len(tokens)).Msg("feed: batch fetched")
	return tokens, nil
}
