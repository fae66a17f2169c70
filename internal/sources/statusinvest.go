package sources

import (
	"context"
	"fmt"
	"log/slog"

	"fiipulse/internal/httpclient"
	"fiipulse/internal/infrastructure"
	"fiipulse/pkg/contracts/domain"
)

// StatusInvestName is the source identifier recorded in provenance.
const StatusInvestName = "statusinvest"

// statusInvestLabels anchors each indicator to the labels that precede its
// value on the fund page. Patterns are tried in order, case-insensitively.
var statusInvestLabels = map[domain.Indicator][]string{
	domain.IndicatorCurrentPrice:     {`valor atual do ativo`, `pre[çc]o atual`},
	domain.IndicatorPriceToBook:      {`p/\s*vp`, `pre[çc]o sobre valor patrimonial`},
	domain.IndicatorDividendYield12M: {`dividend yield com base nos [úu]ltimos 12 meses`, `dy\s*\(12m\)`},
	domain.IndicatorNetWorth:         {`patrim[ôo]nio l[íi]quido`},
	domain.IndicatorQuotaholderCount: {`n[º°]?\s*de cotistas`, `total de cotistas`},
	domain.IndicatorDailyLiquidity:   {`liquidez m[ée]dia di[áa]ria`, `volume di[áa]rio`},
	domain.IndicatorAdminFee:         {`taxa de administra[çc][ãa]o`},
	domain.IndicatorPerformanceFee:   {`taxa de performance`},
	domain.IndicatorRiskClass:        {`classifica[çc][ãa]o de risco`, `rating`},
	domain.IndicatorLeveragePct:      {`alavancagem`},
	domain.IndicatorMaxConcentration: {`maior concentra[çc][ãa]o por ativo`, `concentra[çc][ãa]o m[áa]xima`},
}

// StatusInvest scrapes statusinvest.com.br fund pages with label-anchored
// extraction over the flattened page text.
type StatusInvest struct {
	baseURL string
	rank    int
	client  *httpclient.Client
	rules   labelRules
	logger  *slog.Logger
	metrics *infrastructure.Metrics
}

// NewStatusInvest creates the statusinvest connector.
func NewStatusInvest(baseURL string, rank int, client *httpclient.Client, logger *slog.Logger, metrics *infrastructure.Metrics) *StatusInvest {
	if logger == nil {
		logger = slog.Default()
	}
	return &StatusInvest{
		baseURL: baseURL,
		rank:    rank,
		client:  client,
		rules:   compileLabels(statusInvestLabels),
		logger:  infrastructure.WithComponent(logger, "sources.statusinvest"),
		metrics: metrics,
	}
}

// Name implements Connector.
func (s *StatusInvest) Name() string { return StatusInvestName }

// TrustRank implements Connector.
func (s *StatusInvest) TrustRank() int { return s.rank }

// Fetch implements Connector.
func (s *StatusInvest) Fetch(ctx context.Context, ticker string) domain.SourceRecord {
	ticker = CanonicalTicker(ticker)
	url := fmt.Sprintf("%s/%s", s.baseURL, ticker)

	body, err := s.client.Get(ctx, url, nil)
	if err != nil {
		s.logger.WarnContext(ctx, "statusinvest fetch failed",
			slog.String("ticker", ticker),
			slog.String("error", err.Error()))
		return emptyRecord(StatusInvestName, s.rank, ticker)
	}

	set := extractIndicators(ctx, StatusInvestName, flatten(string(body)), s.rules, s.metrics)
	s.logger.DebugContext(ctx, "statusinvest extraction finished",
		slog.String("ticker", ticker),
		slog.Int("indicators", set.PresentCount()))

	return domain.SourceRecord{
		Ticker:     ticker,
		Source:     StatusInvestName,
		TrustRank:  s.rank,
		Indicators: set,
	}
}
