package sources

import (
	"context"
	"strings"

	"fiipulse/pkg/contracts/domain"
)

// Connector fetches one source's view of a fund.
//
// Fetch must be total: transport failures, blocked pages and extraction
// misses all yield a SourceRecord with absent indicators, never an error.
type Connector interface {
	// Name identifies the source in provenance and logs.
	Name() string
	// TrustRank orders sources for reconciliation; lower is more trusted.
	TrustRank() int
	// Fetch extracts the source's indicator set for the ticker.
	Fetch(ctx context.Context, ticker string) domain.SourceRecord
}

// CanonicalTicker normalizes user-supplied tickers: trimmed, upper case.
func CanonicalTicker(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}

// emptyRecord is the all-absent record a connector returns when its source
// is unreachable or unusable.
func emptyRecord(name string, rank int, ticker string) domain.SourceRecord {
	return domain.SourceRecord{
		Ticker:     ticker,
		Source:     name,
		TrustRank:  rank,
		Indicators: domain.IndicatorSet{},
	}
}
