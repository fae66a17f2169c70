package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fiipulse/internal/config"
	"fiipulse/internal/httpclient"
	"fiipulse/pkg/contracts/domain"
)

func newTestClient() *httpclient.Client {
	return httpclient.New(config.HTTPConfig{
		Timeout:           2 * time.Second,
		MaxAttempts:       2,
		InitialBackoff:    time.Millisecond,
		MaxBackoff:        5 * time.Millisecond,
		BackoffMultiplier: 2.0,
		RequestsPerSecond: 1000,
		Burst:             1000,
		UserAgent:         "fiipulse-test",
	}, nil, nil)
}

const brapiFixture = `{
  "results": [{
    "regularMarketPrice": 161.50,
    "regularMarketVolume": 1845000,
    "defaultKeyStatistics": {"priceToBook": 0.97, "netWorth": 2915218340.03},
    "dividends": {"yield12m": 10.3}
  }]
}`

func TestBrapiFetch(t *testing.T) {
	var gotPath, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(brapiFixture))
	}))
	defer srv.Close()

	conn := NewBrapi(srv.URL, "tok", 1, newTestClient(), nil, nil)
	rec := conn.Fetch(context.Background(), "hglg11")

	assert.Equal(t, "/HGLG11.SA", gotPath)
	assert.Equal(t, "Bearer tok", gotAuth)
	assert.Equal(t, "HGLG11", rec.Ticker)
	assert.Equal(t, 1, rec.TrustRank)

	price, ok := rec.Indicators.Get(domain.IndicatorCurrentPrice).Float()
	require.True(t, ok)
	assert.InDelta(t, 161.50, price, 1e-9)

	pvp, ok := rec.Indicators.Get(domain.IndicatorPriceToBook).Float()
	require.True(t, ok)
	assert.InDelta(t, 0.97, pvp, 1e-9)

	dy, ok := rec.Indicators.Get(domain.IndicatorDividendYield12M).Float()
	require.True(t, ok)
	assert.InDelta(t, 10.3, dy, 1e-9)

	// Fields the API does not report stay absent.
	assert.True(t, rec.Indicators.Get(domain.IndicatorAdminFee).IsAbsent())
}

func TestBrapiFetchNullFieldsStayAbsent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":[{"regularMarketPrice": 99.0, "defaultKeyStatistics": {"priceToBook": null}}]}`))
	}))
	defer srv.Close()

	conn := NewBrapi(srv.URL, "", 1, newTestClient(), nil, nil)
	rec := conn.Fetch(context.Background(), "XPML11")

	assert.True(t, rec.Indicators.Get(domain.IndicatorPriceToBook).IsAbsent())
	assert.Equal(t, 1, rec.Indicators.PresentCount())
}

func TestBrapiFetchImplausibleValueDropped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":[{"defaultKeyStatistics": {"priceToBook": 73.0}}]}`))
	}))
	defer srv.Close()

	conn := NewBrapi(srv.URL, "", 1, newTestClient(), nil, nil)
	rec := conn.Fetch(context.Background(), "XPML11")
	assert.True(t, rec.Indicators.Get(domain.IndicatorPriceToBook).IsAbsent())
}

func TestBrapiFetchSourceDownYieldsEmptyRecord(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	conn := NewBrapi(srv.URL, "", 1, newTestClient(), nil, nil)
	rec := conn.Fetch(context.Background(), "HGLG11")

	assert.Equal(t, "HGLG11", rec.Ticker)
	assert.Zero(t, rec.Indicators.PresentCount(), "dead source must yield an all-absent record, not an error")
}
