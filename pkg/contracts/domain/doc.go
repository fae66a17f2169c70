// Package domain defines the shared record types exchanged between the
// acquisition core and its callers (CLIs, dashboards, importers).
//
// The central idea is explicit absence: an indicator that could not be
// extracted, or whose extracted value failed plausibility checks, is simply
// missing from the IndicatorSet. The core never substitutes zero, an empty
// string, or any other sentinel for an unknown value.
//
// Record lifecycle:
//
//	SourceRecord        one connector's view of a fund (may be all-absent)
//	ConsolidatedRecord  trust-ranked merge of several SourceRecords
//	ScoredRecord        ConsolidatedRecord plus verdict and rationale
//	LedgerEntry         operator-confirmed row persisted in the ledger
package domain
