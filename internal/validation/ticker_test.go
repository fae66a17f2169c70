package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeTicker(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "canonical", input: "HGLG11", want: "HGLG11"},
		{name: "lowercase with spaces", input: "  mxrf11 ", want: "MXRF11"},
		{name: "subscription receipt", input: "knri12", want: "KNRI12"},
		{name: "fractional suffix", input: "hglg11b", want: "HGLG11B"},
		{name: "empty", input: "   ", wantErr: true},
		{name: "too short", input: "HG11", wantErr: true},
		{name: "no series number", input: "HGLG", wantErr: true},
		{name: "garbage", input: "not a ticker", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeTicker(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeTickersSplitsValidFromInvalid(t *testing.T) {
	tickers, errs := NormalizeTickers([]string{"hglg11", "bogus", "MXRF11", ""})
	assert.Equal(t, []string{"HGLG11", "MXRF11"}, tickers)
	assert.Len(t, errs, 2)
}
