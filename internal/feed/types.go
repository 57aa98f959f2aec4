package feed

import (
	"time"

	"github.com/shopspring/decimal"
)

// Token is one migrated token as reported by the listing feed. The verdict
// fields (RugcheckStatus, SupplyBundled) are empty on arrival and merged in
// by the reputation gate before the filter step.
type Token struct {
	ContractAddress string          `json:"contract_address"`
	Name            string          `json:"name"`
	Symbol          string          `json:"symbol"`
	MigratedAt      time.Time       `json:"migrated_at"`
	InitialPrice    decimal.Decimal `json:"initial_price"`
	CurrentPrice    decimal.Decimal `json:"current_price"`
	Volume          decimal.Decimal `json:"volume"`
	MarketCap       decimal.Decimal `json:"market_cap"`
	DevAddress      string          `json:"dev_address"`
	TwitterHandle   string          `json:"twitter_handle,omitempty"`

	RugcheckStatus string `json:"rugcheck_status,omitempty"`
	SupplyBundled  bool   `json:"supply_bundled,omitempty"`
}
