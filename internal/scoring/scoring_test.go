package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fiipulse/pkg/contracts/domain"
)

func consolidated(values map[domain.Indicator]domain.Value) domain.ConsolidatedRecord {
	set := domain.IndicatorSet{}
	for ind, v := range values {
		set.Set(ind, v)
	}
	return domain.ConsolidatedRecord{
		Ticker:     "HGLG11",
		Indicators: set,
		Provenance: map[domain.Indicator]string{},
	}
}

func TestScoreAttractiveFund(t *testing.T) {
	rec := consolidated(map[domain.Indicator]domain.Value{
		domain.IndicatorPriceToBook:      domain.Number(0.9),
		domain.IndicatorDividendYield12M: domain.Number(13),
	})

	scored := Score(rec)
	assert.Equal(t, 4, scored.Score)
	assert.Equal(t, domain.VerdictAttractive, scored.Verdict)
	require.Len(t, scored.Reasons, 2)
	assert.Contains(t, scored.Reasons[0], "price/book")
	assert.Contains(t, scored.Reasons[1], "dividend yield")
}

func TestScoreAllAbsentIsCaution(t *testing.T) {
	scored := Score(consolidated(nil))
	assert.Equal(t, 0, scored.Score)
	assert.Equal(t, domain.VerdictCaution, scored.Verdict)
	assert.Empty(t, scored.Reasons, "no rule fires on an all-absent record")
}

func TestScoreRuleTable(t *testing.T) {
	tests := []struct {
		name    string
		values  map[domain.Indicator]domain.Value
		score   int
		verdict domain.Verdict
	}{
		{
			name: "near par price to book only",
			values: map[domain.Indicator]domain.Value{
				domain.IndicatorPriceToBook: domain.Number(1.0),
			},
			score:   1,
			verdict: domain.VerdictFair,
		},
		{
			name: "expensive premium fund",
			values: map[domain.Indicator]domain.Value{
				domain.IndicatorPriceToBook:      domain.Number(1.4),
				domain.IndicatorDividendYield12M: domain.Number(6),
			},
			score:   -2,
			verdict: domain.VerdictCaution,
		},
		{
			name: "healthy yield with high risk class",
			values: map[domain.Indicator]domain.Value{
				domain.IndicatorDividendYield12M: domain.Number(10),
				domain.IndicatorRiskClass:        domain.Category("Alto risco"),
			},
			score:   0,
			verdict: domain.VerdictCaution,
		},
		{
			name: "low risk grade adds a point",
			values: map[domain.Indicator]domain.Value{
				domain.IndicatorRiskClass: domain.Category("Investment Grade"),
			},
			score:   1,
			verdict: domain.VerdictFair,
		},
		{
			name: "leverage and concentration penalties",
			values: map[domain.Indicator]domain.Value{
				domain.IndicatorPriceToBook:      domain.Number(0.9),
				domain.IndicatorDividendYield12M: domain.Number(13),
				domain.IndicatorLeveragePct:      domain.Number(35),
				domain.IndicatorMaxConcentration: domain.Number(18),
			},
			score:   2,
			verdict: domain.VerdictFair,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scored := Score(consolidated(tt.values))
			assert.Equal(t, tt.score, scored.Score)
			assert.Equal(t, tt.verdict, scored.Verdict)
		})
	}
}

func TestScoreReasonsFollowRuleTableOrder(t *testing.T) {
	rec := consolidated(map[domain.Indicator]domain.Value{
		domain.IndicatorMaxConcentration: domain.Number(18),
		domain.IndicatorLeveragePct:      domain.Number(35),
		domain.IndicatorRiskClass:        domain.Category("Alto"),
		domain.IndicatorDividendYield12M: domain.Number(13),
		domain.IndicatorPriceToBook:      domain.Number(0.9),
	})

	scored := Score(rec)
	require.Len(t, scored.Reasons, 5)
	assert.Contains(t, scored.Reasons[0], "price/book")
	assert.Contains(t, scored.Reasons[1], "dividend yield")
	assert.Contains(t, scored.Reasons[2], "risk class")
	assert.Contains(t, scored.Reasons[3], "leverage")
	assert.Contains(t, scored.Reasons[4], "largest asset")
}

func TestScoreIsDeterministic(t *testing.T) {
	rec := consolidated(map[domain.Indicator]domain.Value{
		domain.IndicatorPriceToBook:      domain.Number(1.02),
		domain.IndicatorDividendYield12M: domain.Number(9.5),
	})

	first := Score(rec)
	second := Score(rec)
	assert.Equal(t, first.Score, second.Score)
	assert.Equal(t, first.Reasons, second.Reasons)
}
