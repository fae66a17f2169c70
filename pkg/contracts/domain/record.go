package domain

import "time"

// IndicatorSet maps indicators to their optional values. Absent indicators
// may be stored as absent Values or omitted entirely; Get treats both the
// same way.
type IndicatorSet map[Indicator]Value

// Get returns the value for an indicator; a missing key reads as absent.
func (s IndicatorSet) Get(ind Indicator) Value {
	if s == nil {
		return Value{}
	}
	return s[ind]
}

// Set stores a value. Absent values are dropped from the map so that
// len(present values) stays meaningful.
func (s IndicatorSet) Set(ind Indicator, v Value) {
	if v.IsAbsent() {
		delete(s, ind)
		return
	}
	s[ind] = v
}

// PresentCount returns the number of indicators carrying a value.
func (s IndicatorSet) PresentCount() int {
	n := 0
	for _, v := range s {
		if !v.IsAbsent() {
			n++
		}
	}
	return n
}

// Complete reports whether every tracked indicator has a value.
func (s IndicatorSet) Complete() bool {
	for _, ind := range AllIndicators {
		if s.Get(ind).IsAbsent() {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of the set.
func (s IndicatorSet) Clone() IndicatorSet {
	out := make(IndicatorSet, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// SourceRecord is one connector's extraction result for a single fund.
// It is immutable once produced; a failed fetch yields an all-absent set.
type SourceRecord struct {
	Ticker     string       `json:"ticker"`
	Source     string       `json:"source"`
	TrustRank  int          `json:"trust_rank"`
	Indicators IndicatorSet `json:"indicators"`
}

// ConsolidatedRecord is the reconciled view of a fund across all sources.
// Provenance names, per indicator, the source that supplied the final value.
type ConsolidatedRecord struct {
	Ticker     string               `json:"ticker"`
	Indicators IndicatorSet         `json:"indicators"`
	Provenance map[Indicator]string `json:"provenance"`
	FetchedAt  time.Time            `json:"fetched_at"`
}

// Verdict is the scoring engine's categorical conclusion.
type Verdict string

const (
	VerdictAttractive Verdict = "attractive"
	VerdictFair       Verdict = "fair"
	VerdictCaution    Verdict = "caution"
)

// ScoredRecord is a ConsolidatedRecord plus the deterministic scoring result.
// Reasons holds one human-readable line per scoring rule that fired, in
// rule-table order.
type ScoredRecord struct {
	ConsolidatedRecord
	Score   int      `json:"score"`
	Verdict Verdict  `json:"verdict"`
	Reasons []string `json:"reasons"`
}
