package rugcheck

import (
	"context"
	"sync/atomic"

	"github.com/rs/zerolog/log"

	"github.com/pumpwatch/pumpwatch/internal/blacklist"
	"github.com/pumpwatch/pumpwatch/internal/feed"
)

// ---------------------------------------------------------------------------
// Reputation Gate — classifies tokens and feeds the blacklist
// ---------------------------------------------------------------------------

// Gate wraps a Checker and turns verdicts into blacklist entries. A non-Good
// status or bundled supply blacklists the token's symbol and dev address as a
// side effect of classification, independent of whether the token is ever
// persisted.
type Gate struct {
	checker   Checker
	blacklist *blacklist.Store

	// Stats.
	checked     atomic.Int64
	flagged     atomic.Int64
	checkErrors atomic.Int64
}

// NewGate creates a reputation gate backed by the given checker and blacklist.
func NewGate(checker Checker, bl *blacklist.Store) *Gate {
	return &Gate{
		checker:   checker,
		blacklist: bl,
	}
}

// Classify fetches the verdict for a token and applies the blacklist side
// effect. Returns nil if the provider is unavailable: the token proceeds with
// an unknown status and the blacklist is left untouched for this pass.
// A token with an empty contract address is not sent to the provider; it gets
// a local default verdict instead.
func (g *Gate) Classify(ctx context.Context, token *feed.Token) *Verdict {
	if token.ContractAddress == "" {
		return &Verdict{Status: StatusUnknown, SupplyBundled: false}
	}

	g.checked.Add(1)

	verdict, err := g.checker.Check(ctx, token.ContractAddress)
	if err != nil {
		g.checkErrors.Add(1)
		log.Warn().Err(err).
			Str("contract", token.ContractAddress).
			Msg("rugcheck: check failed, verdict unknown")
		return nil
	}

	if verdict.Status != StatusGood || verdict.SupplyBundled {
		g.flagged.Add(1)
		g.blacklist.AddSymbol(token.Symbol)
		g.blacklist.AddAddress(token.DevAddress)
		log.Info().
			Str("contract", token.ContractAddress).
			Str("symbol", token.Symbol).
			Str("status", verdict.Status).
			Bool("bundled", verdict.SupplyBundled).
			Msg("rugcheck: token flagged")
	}

	return verdict
}

// GateStats returns gate statistics.
type GateStats struct {
	Checked     int64 `json:"checked"`
	Flagged     int64 `json:"flagged"`
	CheckErrors int64 `json:"check_errors"`
}

func (g *Gate) Stats() GateStats {
	return GateStats{
		Checked:     g.checked.Load(),
		Flagged:     g.flagged.Load(),
		CheckErrors: g.checkErrors.Load(),
	}
}
