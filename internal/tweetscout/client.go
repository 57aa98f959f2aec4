package tweetscout

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
// TweetScout API Client — per-handle engagement metrics
// ---------------------------------------------------------------------------

// Profile is the reputation snapshot returned by TweetScout for a handle.
type Profile struct {
	Handle         string  `json:"handle"`
	Followers      int64   `json:"followers"`
	EngagementRate float64 `json:"engagement_rate"`
	SentimentScore float64 `json:"sentiment_score"`
}

// Fetcher retrieves the social profile for a twitter handle.
type Fetcher interface {
	FetchProfile(ctx context.Context, handle string) (*Profile, error)
}

// Client is the HTTP implementation of Fetcher against the TweetScout API.
type Client struct {
	httpClient *http.Client
	url        string
	apiKey     string
}

// Compile-time interface check.
var _ Fetcher = (*Client)(nil)

// NewClient creates a TweetScout client for the given endpoint and API key.
func NewClient(endpoint, apiKey string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		url:    endpoint,
		apiKey: apiKey,
	}
}

// FetchProfile fetches the engagement metrics for a handle.
func (c *Client) FetchProfile(ctx context.Context, handle string) (*Profile, error) {
	queryURL, err := url.Parse(c.url)
	if err != nil {
		return nil, fmt.Errorf("tweetscout: parse URL: %w", err)
	}
	q := queryURL.Query()
	q.Set("handle", handle)
	queryURL.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, queryURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("tweetscout: create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tweetscout: fetch %s: %w", handle, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("tweetscout: unexpected status %d: %s", resp.StatusCode, string(body))
	}

	var profile Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("tweetscout: decode response: %w", err)
	}
	return &profile, nil
}
