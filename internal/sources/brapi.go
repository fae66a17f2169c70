package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"fiipulse/internal/httpclient"
	"fiipulse/internal/infrastructure"
	"fiipulse/internal/plausibility"
	"fiipulse/pkg/contracts/domain"
)

// BrapiName is the source identifier recorded in provenance.
const BrapiName = "brapi"

// Brapi reads the brapi.dev quote API. It is the structured, most trusted
// source: B3 listed funds carry the .SA suffix there.
type Brapi struct {
	baseURL string
	token   string
	rank    int
	client  *httpclient.Client
	logger  *slog.Logger
	metrics *infrastructure.Metrics
}

// NewBrapi creates the brapi connector.
func NewBrapi(baseURL, token string, rank int, client *httpclient.Client, logger *slog.Logger, metrics *infrastructure.Metrics) *Brapi {
	if logger == nil {
		logger = slog.Default()
	}
	return &Brapi{
		baseURL: baseURL,
		token:   token,
		rank:    rank,
		client:  client,
		logger:  infrastructure.WithComponent(logger, "sources.brapi"),
		metrics: metrics,
	}
}

// Name implements Connector.
func (b *Brapi) Name() string { return BrapiName }

// TrustRank implements Connector.
func (b *Brapi) TrustRank() int { return b.rank }

// brapiResponse mirrors the slice of the quote payload we consume.
type brapiResponse struct {
	Results []struct {
		RegularMarketPrice  *float64 `json:"regularMarketPrice"`
		RegularMarketVolume *float64 `json:"regularMarketVolume"`
		DefaultKeyStatistics struct {
			PriceToBook *float64 `json:"priceToBook"`
			NetWorth    *float64 `json:"netWorth"`
		} `json:"defaultKeyStatistics"`
		Dividends struct {
			Yield12M *float64 `json:"yield12m"`
		} `json:"dividends"`
	} `json:"results"`
}

// Fetch implements Connector.
func (b *Brapi) Fetch(ctx context.Context, ticker string) domain.SourceRecord {
	ticker = CanonicalTicker(ticker)
	url := fmt.Sprintf("%s/%s.SA?modules=defaultKeyStatistics,dividends", b.baseURL, ticker)

	headers := map[string]string{"Accept": "application/json"}
	if b.token != "" {
		headers["Authorization"] = "Bearer " + b.token
	}

	body, err := b.client.Get(ctx, url, headers)
	if err != nil {
		b.logger.WarnContext(ctx, "brapi fetch failed",
			slog.String("ticker", ticker),
			slog.String("error", err.Error()))
		return emptyRecord(BrapiName, b.rank, ticker)
	}

	var payload brapiResponse
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Results) == 0 {
		b.logger.WarnContext(ctx, "brapi payload unusable",
			slog.String("ticker", ticker))
		return emptyRecord(BrapiName, b.rank, ticker)
	}

	result := payload.Results[0]
	set := domain.IndicatorSet{}
	b.put(ctx, set, domain.IndicatorCurrentPrice, result.RegularMarketPrice)
	b.put(ctx, set, domain.IndicatorDailyLiquidity, result.RegularMarketVolume)
	b.put(ctx, set, domain.IndicatorPriceToBook, result.DefaultKeyStatistics.PriceToBook)
	b.put(ctx, set, domain.IndicatorNetWorth, result.DefaultKeyStatistics.NetWorth)
	b.put(ctx, set, domain.IndicatorDividendYield12M, result.Dividends.Yield12M)

	return domain.SourceRecord{
		Ticker:     ticker,
		Source:     BrapiName,
		TrustRank:  b.rank,
		Indicators: set,
	}
}

// put applies the plausibility filter before accepting an API value; a JSON
// null stays absent.
func (b *Brapi) put(ctx context.Context, set domain.IndicatorSet, ind domain.Indicator, v *float64) {
	if v == nil {
		b.metrics.RecordExtractionMiss(ctx, BrapiName, ind.String())
		return
	}
	filtered, ok := plausibility.Filter(ind, *v)
	if !ok {
		b.metrics.RecordExtractionMiss(ctx, BrapiName, ind.String())
		return
	}
	set.Set(ind, domain.Number(filtered))
}
