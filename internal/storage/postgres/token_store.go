package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pumpwatch/pumpwatch/internal/storage"
)

// TokenStore implements storage.TokenStore using PostgreSQL.
type TokenStore struct {
	pool *Pool
}

// NewTokenStore creates a new TokenStore.
func NewTokenStore(pool *Pool) *TokenStore {
	return &TokenStore{pool: pool}
}

// Compile-time interface check.
var _ storage.TokenStore = (*TokenStore)(nil)

// InsertIfAbsent inserts the record unless the contract address is already
// known. ON CONFLICT DO NOTHING makes the race between two concurrent
// ingestions of the same address resolve to exactly one stored row.
func (s *TokenStore) InsertIfAbsent(ctx context.Context, rec *storage.TokenRecord) (bool, error) {
	query := `
		INSERT INTO migrated_tokens (
			contract_address, name, symbol, migrated_at, initial_price,
			current_price, volume, market_cap, dev_address, rugcheck_status, supply_bundled
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (contract_address) DO NOTHING
	`

	tag, err := s.pool.Exec(ctx, query,
		rec.ContractAddress,
		rec.Name,
		rec.Symbol,
		rec.MigratedAt,
		rec.InitialPrice,
		rec.CurrentPrice,
		rec.Volume,
		rec.MarketCap,
		rec.DevAddress,
		rec.RugcheckStatus,
		rec.SupplyBundled,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return false, nil
		}
		return false, fmt.Errorf("insert token: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// GetByAddress retrieves a token record. Returns storage.ErrNotFound if absent.
func (s *TokenStore) GetByAddress(ctx context.Context, contractAddress string) (*storage.TokenRecord, error) {
	query := `
		SELECT contract_address, name, symbol, migrated_at, initial_price,
		       current_price, volume, market_cap, dev_address, rugcheck_status, supply_bundled
		FROM migrated_tokens
		WHERE contract_address = $1
	`

	row := s.pool.QueryRow(ctx, query, contractAddress)
	rec, err := scanToken(row)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get token by address: %w", err)
	}
	return rec, nil
}

func scanToken(row pgx.Row) (*storage.TokenRecord, error) {
	var rec storage.TokenRecord
	err := row.Scan(
		&rec.ContractAddress,
		&rec.Name,
		&rec.Symbol,
		&rec.MigratedAt,
		&rec.InitialPrice,
		&rec.CurrentPrice,
		&rec.Volume,
		&rec.MarketCap,
		&rec.DevAddress,
		&rec.RugcheckStatus,
		&rec.SupplyBundled,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
