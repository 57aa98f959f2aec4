package postgres

import (
	"context"
	"fmt"

	"github.com/pumpwatch/pumpwatch/internal/storage"
)

// SocialStore implements storage.SocialStore using PostgreSQL.
type SocialStore struct {
	pool *Pool
}

// NewSocialStore creates a new SocialStore.
func NewSocialStore(pool *Pool) *SocialStore {
	return &SocialStore{pool: pool}
}

// Compile-time interface check.
var _ storage.SocialStore = (*SocialStore)(nil)

// Replace upserts the metrics row for a symbol, last write wins.
func (s *SocialStore) Replace(ctx context.Context, rec *storage.SocialMetrics) error {
	query := `
		INSERT INTO twitter_analysis (
			symbol, twitter_handle, followers, engagement_rate, sentiment_score, last_updated
		) VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (symbol) DO UPDATE SET
			twitter_handle  = EXCLUDED.twitter_handle,
			followers       = EXCLUDED.followers,
			engagement_rate = EXCLUDED.engagement_rate,
			sentiment_score = EXCLUDED.sentiment_score,
			last_updated    = EXCLUDED.last_updated
	`

	_, err := s.pool.Exec(ctx, query,
		rec.Symbol,
		rec.Handle,
		rec.Followers,
		rec.EngagementRate,
		rec.SentimentScore,
		rec.LastUpdated,
	)
	if err != nil {
		return fmt.Errorf("replace social metrics: %w", err)
	}
	return nil
}

// GetBySymbol retrieves the metrics for a symbol. Returns storage.ErrNotFound
// if absent.
func (s *SocialStore) GetBySymbol(ctx context.Context, symbol string) (*storage.SocialMetrics, error) {
	query := `
		SELECT symbol, twitter_handle, followers, engagement_rate, sentiment_score, last_updated
		FROM twitter_analysis
		WHERE symbol = $1
	`

	var rec storage.SocialMetrics
	err := s.pool.QueryRow(ctx, query, symbol).Scan(
		&rec.Symbol,
		&rec.Handle,
		&rec.Followers,
		&rec.EngagementRate,
		&rec.SentimentScore,
		&rec.LastUpdated,
	)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get social metrics by symbol: %w", err)
	}
	return &rec, nil
}
