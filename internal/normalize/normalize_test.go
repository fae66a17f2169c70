package normalize

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want float64
		ok   bool
	}{
		{"thousands and decimal", "1.234,56", 1234.56, true},
		{"percent suffix", "12,5%", 12.5, true},
		{"plain decimal comma", "0,98", 0.98, true},
		{"plain dot decimal", "0.98", 0.98, true},
		{"integer with dots", "1.234.567", 1234567, true},
		{"currency prefix", "R$ 10,50", 10.5, true},
		{"non-breaking space", "R$ 2.915.218.340,03", 2915218340.03, true},
		{"negative", "-1,5%", -1.5, true},
		{"multiple commas", "1,234,567", 1234567, true},
		{"already canonical", "1234.56", 1234.56, true},
		{"letters only", "abc", 0, false},
		{"empty", "", 0, false},
		{"lone dash", "-", 0, false},
		{"n/a marker", "N/A", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Parse(tt.raw)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}

func TestParseIdempotent(t *testing.T) {
	inputs := []string{"1.234,56", "12,5%", "0,4", "987"}
	for _, raw := range inputs {
		v, ok := Parse(raw)
		require.True(t, ok, raw)

		again, ok := Parse(strconv.FormatFloat(v, 'f', -1, 64))
		require.True(t, ok, raw)
		assert.Equal(t, v, again, "re-parsing the canonical form must not change the value")
	}
}
