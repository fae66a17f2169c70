package domain

// LedgerDateLayout is the date format used for ledger keys.
const LedgerDateLayout = "2006-01-02"

// LedgerEntry is one persisted analysis row, as confirmed by the operator.
// Entries are keyed by (Date, Ticker); a later entry for the same key
// replaces the earlier one on merge.
type LedgerEntry struct {
	Date       string       `json:"date" validate:"required,datetime=2006-01-02"`
	Ticker     string       `json:"ticker" validate:"required"`
	Indicators IndicatorSet `json:"indicators"`
	Score      int          `json:"score"`
	Verdict    Verdict      `json:"verdict"`
	Source     string       `json:"source"`
	Notes      string       `json:"notes"`
}

// LedgerKey identifies a ledger row for merge deduplication.
type LedgerKey struct {
	Date   string
	Ticker string
}

// Key returns the merge key of the entry.
func (e LedgerEntry) Key() LedgerKey {
	return LedgerKey{Date: e.Date, Ticker: e.Ticker}
}
