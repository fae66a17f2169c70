package sources

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fiipulse/pkg/contracts/domain"
)

func TestExtractOneFindsNearestNumber(t *testing.T) {
	rules := compileLabels(map[domain.Indicator][]string{
		domain.IndicatorPriceToBook: {`p/\s*vp`},
	})
	text := "Indicadores do fundo P/VP 0,98 Dividend Yield 8,5%"

	v := extractOne(text, domain.IndicatorPriceToBook, rules[domain.IndicatorPriceToBook])
	num, ok := v.Float()
	require.True(t, ok)
	assert.InDelta(t, 0.98, num, 1e-9)
}

func TestExtractOneMissingLabelIsAbsent(t *testing.T) {
	rules := compileLabels(map[domain.Indicator][]string{
		domain.IndicatorLeveragePct: {`alavancagem`},
	})
	v := extractOne("pagina sem o indicador", domain.IndicatorLeveragePct, rules[domain.IndicatorLeveragePct])
	assert.True(t, v.IsAbsent())
}

func TestExtractOneImplausibleValueIsAbsent(t *testing.T) {
	rules := compileLabels(map[domain.Indicator][]string{
		domain.IndicatorPriceToBook: {`p/\s*vp`},
	})
	// The window catches an adjacent, unrelated number way out of range.
	text := "P/VP 158.000"
	v := extractOne(text, domain.IndicatorPriceToBook, rules[domain.IndicatorPriceToBook])
	assert.True(t, v.IsAbsent(), "out-of-range hit must be dropped, not propagated")
}

func TestExtractOneCategorical(t *testing.T) {
	rules := compileLabels(map[domain.Indicator][]string{
		domain.IndicatorRiskClass: {`classifica[çc][ãa]o de risco`},
	})
	text := "Classificação de risco: Alto risco de mercado"
	v := extractOne(text, domain.IndicatorRiskClass, rules[domain.IndicatorRiskClass])
	word, ok := v.Text()
	require.True(t, ok)
	assert.Contains(t, word, "Alto")
}

func TestFlattenStripsMarkup(t *testing.T) {
	html := `<html><head><script>var x = 99999;</script></head>
<body><div class="card"><span>P/VP</span><strong>1,02</strong></div></body></html>`
	text := flatten(html)

	assert.NotContains(t, text, "99999", "script bodies must not leak numbers")
	assert.NotContains(t, text, "<")

	rules := compileLabels(map[domain.Indicator][]string{
		domain.IndicatorPriceToBook: {`p/\s*vp`},
	})
	v := extractOne(text, domain.IndicatorPriceToBook, rules[domain.IndicatorPriceToBook])
	num, ok := v.Float()
	require.True(t, ok)
	assert.InDelta(t, 1.02, num, 1e-9)
}

func TestExtractIndicatorsSkipsMisses(t *testing.T) {
	rules := compileLabels(map[domain.Indicator][]string{
		domain.IndicatorPriceToBook:      {`p/\s*vp`},
		domain.IndicatorDividendYield12M: {`dividend yield`},
		domain.IndicatorLeveragePct:      {`alavancagem`},
	})
	text := "P/VP 0,90 e Dividend Yield 10,4% no período"

	set := extractIndicators(context.Background(), "test", text, rules, nil)
	assert.Equal(t, 2, set.PresentCount())
	assert.True(t, set.Get(domain.IndicatorLeveragePct).IsAbsent())
}

func TestCanonicalTicker(t *testing.T) {
	assert.Equal(t, "HGLG11", CanonicalTicker("  hglg11 "))
}
