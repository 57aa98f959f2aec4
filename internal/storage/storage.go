package storage

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Record Store — durable, deduplicated token and social-metric records
// ---------------------------------------------------------------------------

// Sentinel errors shared by all store implementations.
var (
	ErrNotFound     = errors.New("storage: record not found")
	ErrDuplicateKey = errors.New("storage: duplicate key")
)

// TokenRecord is one migrated token as persisted, keyed by contract address.
// Records are written once; repeated ingestion of the same address is a no-op.
type TokenRecord struct {
	ContractAddress string
	Name            string
	Symbol          string
	MigratedAt      time.Time
	InitialPrice    decimal.Decimal
	CurrentPrice    decimal.Decimal
	Volume          decimal.Decimal
	MarketCap       decimal.Decimal
	DevAddress      string
	RugcheckStatus  string
	SupplyBundled   bool
}

// SocialMetrics is the engagement snapshot for a token symbol. Unlike
// TokenRecord, re-enrichment replaces the prior row (last-write-wins).
type SocialMetrics struct {
	Symbol         string
	Handle         string
	Followers      int64
	EngagementRate float64
	SentimentScore float64
	LastUpdated    time.Time
}

// TokenStore persists token records with first-write-wins semantics.
type TokenStore interface {
	// InsertIfAbsent stores the record unless one already exists for the same
	// contract address. Returns whether an insert occurred; an existing record
	// is not an error. The insert-or-skip decision is atomic.
	InsertIfAbsent(ctx context.Context, rec *TokenRecord) (bool, error)

	// GetByAddress returns the record for a contract address, or ErrNotFound.
	GetByAddress(ctx context.Context, contractAddress string) (*TokenRecord, error)
}

// SocialStore persists social metrics with last-write-wins semantics.
type SocialStore interface {
	// Replace unconditionally upserts the metrics row keyed by symbol.
	Replace(ctx context.Context, rec *SocialMetrics) error

	// GetBySymbol returns the metrics for a symbol, or ErrNotFound.
	GetBySymbol(ctx context.Context, symbol string) (*SocialMetrics, error)
}
