package blacklist

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// ---------------------------------------------------------------------------
// Blacklist Store — process-wide exclusion sets for symbols and dev wallets
// ---------------------------------------------------------------------------

// Store holds the symbols and dev addresses excluded from ingestion.
// Entries are append-only and live for the process lifetime; there is no
// removal path. Safe for concurrent use.
type Store struct {
	mu        sync.RWMutex
	symbols   map[string]bool
	addresses map[string]bool
}

// NewStore creates an empty blacklist store.
func NewStore() *Store {
	return &Store{
		symbols:   make(map[string]bool),
		addresses: make(map[string]bool),
	}
}

// Seed loads the initial exclusion lists from configuration.
func (s *Store) Seed(symbols, addresses []string) {
	s.mu.Lock()
	for _, sym := range symbols {
		if sym != "" {
			s.symbols[sym] = true
		}
	}
	for _, addr := range addresses {
		if addr != "" {
			s.addresses[addr] = true
		}
	}
	s.mu.Unlock()

	if len(symbols) > 0 || len(addresses) > 0 {
		log.Info().
			Int("symbols", len(symbols)).
			Int("addresses", len(addresses)).
			Msg("blacklist: seeded from config")
	}
}

// AddSymbol blacklists a token symbol. Adding an existing entry is a no-op.
func (s *Store) AddSymbol(symbol string) {
	if symbol == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.symbols[symbol] {
		return
	}
	s.symbols[symbol] = true
	log.Info().Str("symbol", symbol).Msg("blacklist: symbol added")
}

// AddAddress blacklists a dev wallet address. Adding an existing entry is a no-op.
func (s *Store) AddAddress(address string) {
	if address == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.addresses[address] {
		return
	}
	s.addresses[address] = true
	log.Info().Str("address", address).Msg("blacklist: dev address added")
}

// ContainsSymbol reports whether a symbol is blacklisted.
func (s *Store) ContainsSymbol(symbol string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.symbols[symbol]
}

// ContainsAddress reports whether a dev address is blacklisted.
func (s *Store) ContainsAddress(address string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.addresses[address]
}

// Size returns the current entry counts (symbols, addresses).
func (s *Store) Size() (int, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.symbols), len(s.addresses)
}
