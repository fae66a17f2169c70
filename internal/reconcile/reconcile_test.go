package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fiipulse/pkg/contracts/domain"
)

func record(source string, rank int, values map[domain.Indicator]domain.Value) domain.SourceRecord {
	set := domain.IndicatorSet{}
	for ind, v := range values {
		set.Set(ind, v)
	}
	return domain.SourceRecord{
		Ticker:     "HGLG11",
		Source:     source,
		TrustRank:  rank,
		Indicators: set,
	}
}

func TestMergePerIndicatorPrecedence(t *testing.T) {
	a := record("a", 1, map[domain.Indicator]domain.Value{
		domain.IndicatorPriceToBook: domain.Number(1.0),
	})
	b := record("b", 2, map[domain.Indicator]domain.Value{
		domain.IndicatorPriceToBook:      domain.Number(2.0),
		domain.IndicatorDividendYield12M: domain.Number(10),
	})

	got := Merge("HGLG11", []domain.SourceRecord{b, a})

	pvp, ok := got.Indicators.Get(domain.IndicatorPriceToBook).Float()
	require.True(t, ok)
	assert.Equal(t, 1.0, pvp, "the higher-ranked source wins indicators it has")
	assert.Equal(t, "a", got.Provenance[domain.IndicatorPriceToBook])

	dy, ok := got.Indicators.Get(domain.IndicatorDividendYield12M).Float()
	require.True(t, ok)
	assert.Equal(t, 10.0, dy, "a lower-ranked source fills the gaps")
	assert.Equal(t, "b", got.Provenance[domain.IndicatorDividendYield12M])
}

func TestMergeAllSourcesEmpty(t *testing.T) {
	got := Merge("XPML11", []domain.SourceRecord{
		record("a", 1, nil),
		record("b", 2, nil),
	})

	assert.Equal(t, "XPML11", got.Ticker)
	assert.Zero(t, got.Indicators.PresentCount())
	assert.Empty(t, got.Provenance, "absent indicators carry no provenance")
}

func TestMergeNoSources(t *testing.T) {
	got := Merge("XPML11", nil)
	assert.Equal(t, "XPML11", got.Ticker)
	assert.Zero(t, got.Indicators.PresentCount())
}

func TestMergeCategoricalValues(t *testing.T) {
	a := record("a", 1, nil)
	b := record("b", 2, map[domain.Indicator]domain.Value{
		domain.IndicatorRiskClass: domain.Category("Moderado"),
	})

	got := Merge("HGLG11", []domain.SourceRecord{a, b})
	risk, ok := got.Indicators.Get(domain.IndicatorRiskClass).Text()
	require.True(t, ok)
	assert.Equal(t, "Moderado", risk)
	assert.Equal(t, "b", got.Provenance[domain.IndicatorRiskClass])
}
