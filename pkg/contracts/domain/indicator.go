package domain

// Indicator identifies one financial metric tracked for a fund.
type Indicator string

const (
	IndicatorCurrentPrice      Indicator = "current_price"
	IndicatorPriceToBook       Indicator = "price_to_book"
	IndicatorDividendYield12M  Indicator = "dividend_yield_12m"
	IndicatorNetWorth          Indicator = "net_worth"
	IndicatorQuotaholderCount  Indicator = "quotaholder_count"
	IndicatorDailyLiquidity    Indicator = "daily_liquidity"
	IndicatorAdminFee          Indicator = "admin_fee"
	IndicatorPerformanceFee    Indicator = "performance_fee"
	IndicatorRiskClass         Indicator = "risk_class"
	IndicatorLeveragePct       Indicator = "leverage_pct"
	IndicatorMaxConcentration  Indicator = "max_asset_concentration_pct"
)

// AllIndicators lists every tracked indicator in canonical order. The order
// is load-bearing: ledger columns and report output follow it.
var AllIndicators = []Indicator{
	IndicatorCurrentPrice,
	IndicatorPriceToBook,
	IndicatorDividendYield12M,
	IndicatorNetWorth,
	IndicatorQuotaholderCount,
	IndicatorDailyLiquidity,
	IndicatorAdminFee,
	IndicatorPerformanceFee,
	IndicatorRiskClass,
	IndicatorLeveragePct,
	IndicatorMaxConcentration,
}

// IsCategorical reports whether the indicator carries a textual category
// rather than a numeric value.
func (i Indicator) IsCategorical() bool {
	return i == IndicatorRiskClass
}

// String implements fmt.Stringer.
func (i Indicator) String() string {
	return string(i)
}
