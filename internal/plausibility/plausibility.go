// Package plausibility bounds extracted indicator values to domain reality.
//
// Label-anchored extraction can pick up an adjacent, unrelated number. An
// out-of-range value is therefore treated as an extraction error and dropped
// to absent, not rejected as an outlier and not propagated.
package plausibility

import "fiipulse/pkg/contracts/domain"

// Bounds is the closed plausible range for one numeric indicator.
type Bounds struct {
	Min float64
	Max float64
}

// Contains reports whether v lies inside the bounds.
func (b Bounds) Contains(v float64) bool {
	return v >= b.Min && v <= b.Max
}

// bounds holds the canonical plausible range per indicator. Published fund
// data varies slightly between sources; these ranges are deliberately the
// widest defensible ones so reconciliation sees every honest value.
var bounds = map[domain.Indicator]Bounds{
	domain.IndicatorCurrentPrice:     {Min: 0.01, Max: 100_000},
	domain.IndicatorPriceToBook:      {Min: 0.4, Max: 2.2},
	domain.IndicatorDividendYield12M: {Min: 0, Max: 40},
	domain.IndicatorNetWorth:         {Min: 10_000_000, Max: 1e12},
	domain.IndicatorQuotaholderCount: {Min: 200, Max: 50_000_000},
	domain.IndicatorDailyLiquidity:   {Min: 0.01, Max: 1e10},
	domain.IndicatorAdminFee:         {Min: 0, Max: 5},
	domain.IndicatorPerformanceFee:   {Min: 0, Max: 30},
	domain.IndicatorLeveragePct:      {Min: 0, Max: 100},
	domain.IndicatorMaxConcentration: {Min: 0, Max: 100},
}

// BoundsFor returns the canonical bounds for an indicator, if any are
// defined.
func BoundsFor(ind domain.Indicator) (Bounds, bool) {
	b, ok := bounds[ind]
	return b, ok
}

// Check reports whether v is a plausible value for the indicator.
// Indicators without configured bounds always pass.
func Check(ind domain.Indicator, v float64) bool {
	b, ok := bounds[ind]
	if !ok {
		return true
	}
	return b.Contains(v)
}

// Filter converts an implausible value into explicit absence. Plausible
// values pass through untouched.
func Filter(ind domain.Indicator, v float64) (float64, bool) {
	if !Check(ind, v) {
		return 0, false
	}
	return v, true
}
