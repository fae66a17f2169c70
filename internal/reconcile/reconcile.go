// Package reconcile merges several sources' views of one fund into a single
// consolidated record.
//
// Precedence is per indicator, not per record: sources are consulted in
// ascending trust-rank order and the first present value wins, so a
// less-trusted source can fill gaps the top-ranked source left while the
// top-ranked source keeps every indicator it does have. No value is ever
// manufactured; an indicator no source supplied stays absent.
package reconcile

import (
	"sort"
	"time"

	"fiipulse/pkg/contracts/domain"
)

// Merge consolidates the source records for one fund. The input order does
// not matter; records are ranked before merging.
func Merge(ticker string, records []domain.SourceRecord) domain.ConsolidatedRecord {
	ranked := make([]domain.SourceRecord, len(records))
	copy(ranked, records)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TrustRank < ranked[j].TrustRank
	})

	consolidated := domain.ConsolidatedRecord{
		Ticker:     ticker,
		Indicators: domain.IndicatorSet{},
		Provenance: map[domain.Indicator]string{},
		FetchedAt:  time.Now().UTC(),
	}

	for _, ind := range domain.AllIndicators {
		for _, rec := range ranked {
			v := rec.Indicators.Get(ind)
			if v.IsAbsent() {
				continue
			}
			consolidated.Indicators.Set(ind, v)
			consolidated.Provenance[ind] = rec.Source
			break
		}
	}
	return consolidated
}
