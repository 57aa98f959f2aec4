// Package memory provides in-memory store implementations used by stub mode
// and by pipeline tests.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/pumpwatch/pumpwatch/internal/storage"
)

// Store implements both storage.TokenStore and storage.SocialStore in memory.
type Store struct {
	mu      sync.Mutex
	tokens  map[string]storage.TokenRecord   // keyed by contract address
	social  map[string]storage.SocialMetrics // keyed by symbol
	failing map[string]bool                  // contract addresses that fail persistence
}

// Compile-time interface checks.
var (
	_ storage.TokenStore  = (*Store)(nil)
	_ storage.SocialStore = (*Store)(nil)
)

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		tokens:  make(map[string]storage.TokenRecord),
		social:  make(map[string]storage.SocialMetrics),
		failing: make(map[string]bool),
	}
}

// FailAddress makes every persistence attempt for the given contract address
// return an error, simulating a storage fault for that record.
func (s *Store) FailAddress(contractAddress string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failing[contractAddress] = true
}

// InsertIfAbsent stores the record unless the contract address is already known.
func (s *Store) InsertIfAbsent(_ context.Context, rec *storage.TokenRecord) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failing[rec.ContractAddress] {
		return false, fmt.Errorf("memory store: injected fault for %s", rec.ContractAddress)
	}
	if _, exists := s.tokens[rec.ContractAddress]; exists {
		return false, nil
	}
	s.tokens[rec.ContractAddress] = *rec
	return true, nil
}

// GetByAddress returns the stored record or storage.ErrNotFound.
func (s *Store) GetByAddress(_ context.Context, contractAddress string) (*storage.TokenRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.tokens[contractAddress]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &rec, nil
}

// Replace upserts the metrics row for a symbol.
func (s *Store) Replace(_ context.Context, rec *storage.SocialMetrics) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.social[rec.Symbol] = *rec
	return nil
}

// GetBySymbol returns the stored metrics or storage.ErrNotFound.
func (s *Store) GetBySymbol(_ context.Context, symbol string) (*storage.SocialMetrics, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.social[symbol]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &rec, nil
}

// TokenCount returns the number of stored token records.
func (s *Store) TokenCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tokens)
}
