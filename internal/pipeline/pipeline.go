package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/pumpwatch/pumpwatch/internal/blacklist"
	"github.com/pumpwatch/pumpwatch/internal/feed"
	"github.com/pumpwatch/pumpwatch/internal/rugcheck"
	"github.com/pumpwatch/pumpwatch/internal/storage"
)

// ---------------------------------------------------------------------------
// Ingestion Pipeline — classify, filter, persist, act
// Per item: Fetched -> Classified -> {Excluded | Persisted} -> {Actioned | Idle}
// ---------------------------------------------------------------------------

// buyAction is the trade verb dispatched for accepted tokens.
const buyAction = "buy"

// TradeDispatcher emits the trade command and notification for an accepted token.
type TradeDispatcher interface {
	Dispatch(ctx context.Context, symbol, action string) error
}

// SocialEnricher updates the social metrics row for a symbol.
type SocialEnricher interface {
	Enrich(ctx context.Context, symbol, handle string) (*storage.SocialMetrics, error)
}

// Pipeline runs one full ingestion cycle over a feed batch.
type Pipeline struct {
	gate       *rugcheck.Gate
	blacklist  *blacklist.Store
	tokens     storage.TokenStore
	enricher   SocialEnricher // nil disables social enrichment
	dispatcher TradeDispatcher
}

// New creates an ingestion pipeline. enricher may be nil.
func New(
	gate *rugcheck.Gate,
	bl *blacklist.Store,
	tokens storage.TokenStore,
	enricher SocialEnricher,
	dispatcher TradeDispatcher,
) *Pipeline {
	return &Pipeline{
		gate:       gate,
		blacklist:  bl,
		tokens:     tokens,
		enricher:   enricher,
		dispatcher: dispatcher,
	}
}

// CycleReport summarizes one ingestion cycle.
type CycleReport struct {
	CycleID      string        `json:"cycle_id"`
	Seen         int           `json:"seen"`
	Inserted     int           `json:"inserted"`
	AlreadyKnown int           `json:"already_known"`
	Blacklisted  int           `json:"blacklisted"`
	Actioned     int           `json:"actioned"`
	Enriched     int           `json:"enriched"`
	Failures     int           `json:"failures"`
	Duration     time.Duration `json:"duration"`
}

// RunCycle processes a feed batch in order. A failure in one item never stops
// the rest of the batch.
//
// Classification runs before the blacklist filter so that a verdict computed
// for an earlier item in the same batch excludes later items with the same
// symbol or dev address — and can exclude the very item that produced it.
func (p *Pipeline) RunCycle(ctx context.Context, items []feed.Token) CycleReport {
	report := CycleReport{CycleID: uuid.NewString()}
	start := time.Now()

	for i := range items {
		item := &items[i]
		report.Seen++
		p.processItem(ctx, item, &report)
	}

	// Social enrichment is keyed by symbol and independent of the
	// accept/reject path; it runs as its own pass and never fails the cycle.
	if p.enricher != nil {
		for i := range items {
			item := &items[i]
			if item.Symbol == "" || item.TwitterHandle == "" {
				continue
			}
			if _, err := p.enricher.Enrich(ctx, item.Symbol, item.TwitterHandle); err != nil {
				log.Warn().Err(err).Str("symbol", item.Symbol).
					Msg("pipeline: social enrichment failed")
				continue
			}
			report.Enriched++
		}
	}

	report.Duration = time.Since(start)

	log.Info().
		Str("cycle_id", report.CycleID).
		Int("seen", report.Seen).
		Int("inserted", report.Inserted).
		Int("already_known", report.AlreadyKnown).
		Int("blacklisted", report.Blacklisted).
		Int("actioned", report.Actioned).
		Int("enriched", report.Enriched).
		Int("failures", report.Failures).
		Dur("duration", report.Duration).
		Msg("pipeline: cycle complete")

	return report
}

func (p *Pipeline) processItem(ctx context.Context, item *feed.Token, report *CycleReport) {
	// 1. Classify. The verdict fields are merged into the item even when the
	// filter later excludes it. A nil verdict (provider down) leaves the
	// status at its default and the blacklist untouched for this pass.
	if verdict := p.gate.Classify(ctx, item); verdict != nil {
		item.RugcheckStatus = verdict.Status
		item.SupplyBundled = verdict.SupplyBundled
	}

	// 2. Filter.
	if p.blacklist.ContainsSymbol(item.Symbol) || p.blacklist.ContainsAddress(item.DevAddress) {
		report.Blacklisted++
		log.Info().
			Str("contract", item.ContractAddress).
			Str("symbol", item.Symbol).
			Msg("pipeline: token excluded by blacklist")
		return
	}

	// 3. Normalize and persist, first write wins.
	rec := normalize(item)
	inserted, err := p.tokens.InsertIfAbsent(ctx, rec)
	if err != nil {
		report.Failures++
		log.Error().Err(err).
			Str("contract", item.ContractAddress).
			Msg("pipeline: persist failed, item skipped")
		return
	}
	if inserted {
		report.Inserted++
	} else {
		report.AlreadyKnown++
		log.Debug().Str("contract", item.ContractAddress).Msg("pipeline: token already known")
	}

	// 4. Decision. Only a status that came from an actual verdict can equal
	// "Good"; an unknown classification is never treated as accepted.
	if item.Symbol == "" || rec.RugcheckStatus != rugcheck.StatusGood {
		return
	}

	if err := p.dispatcher.Dispatch(ctx, item.Symbol, buyAction); err != nil {
		report.Failures++
		log.Error().Err(err).Str("symbol", item.Symbol).
			Msg("pipeline: dispatch failed")
		return
	}
	report.Actioned++
}

// normalize builds the persisted record, filling the documented defaults for
// missing optional fields. Numeric fields zero-default via decimal's zero value.
func normalize(item *feed.Token) *storage.TokenRecord {
	migratedAt := item.MigratedAt
	if migratedAt.IsZero() {
		migratedAt = time.Now().UTC()
	}

	status := item.RugcheckStatus
	if status == "" {
		status = rugcheck.StatusUnknown
	}

	return &storage.TokenRecord{
		ContractAddress: item.ContractAddress,
		Name:            item.Name,
		Symbol:          item.Symbol,
		MigratedAt:      migratedAt,
		InitialPrice:    item.InitialPrice,
		CurrentPrice:    item.CurrentPrice,
		Volume:          item.Volume,
		MarketCap:       item.MarketCap,
		DevAddress:      item.DevAddress,
		RugcheckStatus:  status,
		SupplyBundled:   item.SupplyBundled,
	}
}
