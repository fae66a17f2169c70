package sources

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/chromedp/chromedp"

	"fiipulse/internal/infrastructure"
	"fiipulse/pkg/contracts/domain"
)

// FundsExplorerName is the source identifier recorded in provenance.
const FundsExplorerName = "fundsexplorer"

// renderTimeout bounds one headless-browser page load.
const renderTimeout = 45 * time.Second

var fundsExplorerLabels = map[domain.Indicator][]string{
	domain.IndicatorCurrentPrice:     {`cota[çc][ãa]o atual`, `pre[çc]o da cota`},
	domain.IndicatorPriceToBook:      {`p/\s*vp`},
	domain.IndicatorDividendYield12M: {`dividend yield\s*\(12m\)`, `dy \s*acumulado`, `dividend yield`},
	domain.IndicatorNetWorth:         {`patrim[ôo]nio l[íi]quido`},
	domain.IndicatorQuotaholderCount: {`n[úu]mero de cotistas`, `cotistas`},
	domain.IndicatorDailyLiquidity:   {`liquidez di[áa]ria`, `liquidez m[ée]dia`},
	domain.IndicatorAdminFee:         {`taxa de administra[çc][ãa]o`},
	domain.IndicatorPerformanceFee:   {`taxa de performance`},
	domain.IndicatorRiskClass:        {`perfil de risco`, `risco`},
	domain.IndicatorLeveragePct:      {`alavancagem`},
	domain.IndicatorMaxConcentration: {`maior ativo`, `concentra[çc][ãa]o`},
}

// FundsExplorer scrapes fundsexplorer.com.br fund pages. The site renders
// its indicator cards client-side, so the page is fetched through a headless
// browser and the resulting DOM goes through the same label-anchored
// extraction as the static sources.
type FundsExplorer struct {
	baseURL  string
	rank     int
	headless bool
	rules    labelRules
	logger   *slog.Logger
	metrics  *infrastructure.Metrics

	// render obtains the fully rendered page HTML; tests stub it out.
	render func(ctx context.Context, url string) (string, error)
}

// NewFundsExplorer creates the fundsexplorer connector.
func NewFundsExplorer(baseURL string, rank int, logger *slog.Logger, metrics *infrastructure.Metrics) *FundsExplorer {
	if logger == nil {
		logger = slog.Default()
	}
	f := &FundsExplorer{
		baseURL:  baseURL,
		rank:     rank,
		headless: true,
		rules:    compileLabels(fundsExplorerLabels),
		logger:   infrastructure.WithComponent(logger, "sources.fundsexplorer"),
		metrics:  metrics,
	}
	f.render = f.renderWithBrowser
	return f
}

// Name implements Connector.
func (f *FundsExplorer) Name() string { return FundsExplorerName }

// TrustRank implements Connector.
func (f *FundsExplorer) TrustRank() int { return f.rank }

// Fetch implements Connector.
func (f *FundsExplorer) Fetch(ctx context.Context, ticker string) domain.SourceRecord {
	ticker = CanonicalTicker(ticker)
	url := fmt.Sprintf("%s/%s", f.baseURL, ticker)

	html, err := f.render(ctx, url)
	if err != nil {
		f.logger.WarnContext(ctx, "fundsexplorer render failed",
			slog.String("ticker", ticker),
			slog.String("error", err.Error()))
		return emptyRecord(FundsExplorerName, f.rank, ticker)
	}

	set := extractIndicators(ctx, FundsExplorerName, flatten(html), f.rules, f.metrics)
	f.logger.DebugContext(ctx, "fundsexplorer extraction finished",
		slog.String("ticker", ticker),
		slog.Int("indicators", set.PresentCount()))

	return domain.SourceRecord{
		Ticker:     ticker,
		Source:     FundsExplorerName,
		TrustRank:  f.rank,
		Indicators: set,
	}
}

// renderWithBrowser loads the page in headless Chrome and returns the
// rendered DOM.
func (f *FundsExplorer) renderWithBrowser(ctx context.Context, url string) (string, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", f.headless),
		chromedp.Flag("disable-gpu", true),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	browserCtx, cancelTimeout := context.WithTimeout(browserCtx, renderTimeout)
	defer cancelTimeout()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", fmt.Errorf("render %s: %w", url, err)
	}
	return html, nil
}
