package postgres

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

const schema = `
CREATE TABLE IF NOT EXISTS migrated_tokens (
    id               BIGSERIAL PRIMARY KEY,
    contract_address TEXT UNIQUE NOT NULL,
    name             TEXT NOT NULL DEFAULT '',
    symbol           TEXT NOT NULL DEFAULT '',
    migrated_at      TIMESTAMPTZ NOT NULL,
    initial_price    NUMERIC NOT NULL DEFAULT 0,
    current_price    NUMERIC NOT NULL DEFAULT 0,
    volume           NUMERIC NOT NULL DEFAULT 0,
    market_cap       NUMERIC NOT NULL DEFAULT 0,
    dev_address      TEXT NOT NULL DEFAULT '',
    rugcheck_status  TEXT NOT NULL DEFAULT 'Unknown',
    supply_bundled   BOOLEAN NOT NULL DEFAULT FALSE,
    created_at       TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_migrated_tokens_symbol ON migrated_tokens(symbol);

CREATE TABLE IF NOT EXISTS twitter_analysis (
    id              BIGSERIAL PRIMARY KEY,
    symbol          TEXT UNIQUE NOT NULL,
    twitter_handle  TEXT NOT NULL DEFAULT '',
    followers       BIGINT NOT NULL DEFAULT 0,
    engagement_rate DOUBLE PRECISION NOT NULL DEFAULT 0,
    sentiment_score DOUBLE PRECISION NOT NULL DEFAULT 0,
    last_updated    TIMESTAMPTZ NOT NULL
);
`

// InitSchema creates the token and social-metric tables if they do not exist.
// Safe to run on every startup.
func InitSchema(ctx context.Context, pool *Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	log.Info().Msg("postgres: schema ready")
	return nil
}
