package ledger

import (
	"sort"
	"strings"

	"fiipulse/pkg/contracts/domain"
)

// EntryFromScored converts a scored record into a ledger row dated to the
// given day. Source lists the distinct providers that contributed values,
// in alphabetical order, so that provenance survives into the file.
func EntryFromScored(rec domain.ScoredRecord, date, notes string) domain.LedgerEntry {
	return domain.LedgerEntry{
		Date:       date,
		Ticker:     rec.Ticker,
		Indicators: rec.Indicators.Clone(),
		Score:      rec.Score,
		Verdict:    rec.Verdict,
		Source:     joinProvenance(rec.Provenance),
		Notes:      notes,
	}
}

func joinProvenance(provenance map[domain.Indicator]string) string {
	seen := make(map[string]struct{}, len(provenance))
	var names []string
	for _, source := range provenance {
		if _, dup := seen[source]; dup {
			continue
		}
		seen[source] = struct{}{}
		names = append(names, source)
	}
	sort.Strings(names)
	return strings.Join(names, "+")
}
