package rugcheck

import (
	"context"
	"fmt"
	"sync"
)

// StubChecker is a deterministic Checker for tests and stub mode. Verdicts
// are keyed by contract address; unknown addresses return a configurable
// default or an error.
type StubChecker struct {
	mu       sync.Mutex
	verdicts map[string]Verdict
	fallback *Verdict // nil = error for unknown addresses
	calls    int
}

// Compile-time interface check.
var _ Checker = (*StubChecker)(nil)

// NewStubChecker creates an empty stub checker that errors on every address.
func NewStubChecker() *StubChecker {
	return &StubChecker{
		verdicts: make(map[string]Verdict),
	}
}

// SetVerdict pre-loads the verdict for a contract address.
func (s *StubChecker) SetVerdict(contractAddress string, v Verdict) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.verdicts[contractAddress] = v
}

// SetFallback sets the verdict returned for addresses with no pre-loaded
// entry. Passing nil restores the error behavior.
func (s *StubChecker) SetFallback(v *Verdict) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fallback = v
}

// Check returns the pre-loaded verdict for the address.
func (s *StubChecker) Check(_ context.Context, contractAddress string) (*Verdict, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls++

	if v, ok := s.verdicts[contractAddress]; ok {
		return &v, nil
	}
	if s.fallback != nil {
		v := *s.fallback
		return &v, nil
	}
	return nil, fmt.Errorf("stub checker: no verdict for %s", contractAddress)
}

// Calls returns the total number of Check invocations.
func (s *StubChecker) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}
