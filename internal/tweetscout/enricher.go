package tweetscout

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/pumpwatch/pumpwatch/internal/storage"
)

// Enricher fetches social metrics for a symbol and persists them. Enrichment
// is independent of the accept/reject path: a failure here never blocks
// ingestion, and re-enrichment replaces the prior row.
type Enricher struct {
	fetcher Fetcher
	store   storage.SocialStore
}

// NewEnricher creates a social enricher.
func NewEnricher(fetcher Fetcher, store storage.SocialStore) *Enricher {
	return &Enricher{
		fetcher: fetcher,
		store:   store,
	}
}

// Enrich fetches the profile for a handle and upserts the metrics row for the
// symbol, stamped with the current UTC instant.
func (e *Enricher) Enrich(ctx context.Context, symbol, handle string) (*storage.SocialMetrics, error) {
	if symbol == "" || handle == "" {
		return nil, fmt.Errorf("tweetscout: symbol and handle are required")
	}

	profile, err := e.fetcher.FetchProfile(ctx, handle)
	if err != nil {
		return nil, err
	}

	rec := &storage.SocialMetrics{
		Symbol:         symbol,
		Handle:         profile.Handle,
		Followers:      profile.Followers,
		EngagementRate: profile.EngagementRate,
		SentimentScore: profile.SentimentScore,
		LastUpdated:    time.Now().UTC(),
	}

	if err := e.store.Replace(ctx, rec); err != nil {
		return nil, fmt.Errorf("tweetscout: persist metrics for %s: %w", symbol, err)
	}

	log.Debug().
		Str("symbol", symbol).
		Str("handle", rec.Handle).
		Int64("followers", rec.Followers).
		Msg("tweetscout: metrics updated")

	return rec, nil
}
