// fiiscan scans Brazilian real-estate fund tickers across every configured
// data source, reconciles the indicators, scores each fund, and prints the
// results. With -save the scored rows are appended to the analysis ledger.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	"fiipulse/internal/app"
	"fiipulse/internal/ledger"
	"fiipulse/internal/scheduler"
	"fiipulse/internal/scoring"
	"fiipulse/internal/validation"
	"fiipulse/pkg/contracts"
	"fiipulse/pkg/contracts/domain"
)

func main() {
	tickersFlag := flag.String("tickers", "", "comma-separated fund tickers, e.g. HGLG11,MXRF11")
	configPath := flag.String("config", "", "path to YAML config file (optional)")
	save := flag.Bool("save", false, "append scored results to the ledger")
	notes := flag.String("notes", "", "free-form note stored with saved rows")
	explain := flag.Bool("explain", false, "print the scoring reasons for each fund")
	showVersion := flag.Bool("version", false, "print version information and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(contracts.FullVersionString())
		return
	}

	raw := splitTickers(*tickersFlag)
	if len(raw) == 0 {
		raw = flag.Args()
	}
	tickers, errs := validation.NormalizeTickers(raw)
	for _, err := range errs {
		fmt.Fprintf(os.Stderr, "skipping: %v\n", err)
	}
	if len(tickers) == 0 {
		fmt.Fprintln(os.Stderr, "usage: fiiscan -tickers HGLG11,MXRF11 [-save] [-notes ...]")
		os.Exit(2)
	}

	application, err := app.New(*configPath)
	if err != nil {
		slog.Error("Failed to start", "error", err)
		os.Exit(1)
	}
	defer application.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application.Scheduler.OnProgress(func(p scheduler.Progress) {
		fmt.Fprintf(os.Stderr, "\rscanning %d/%d (%3.0f%%) eta %s   ", p.Done, p.Total, p.Fraction*100, p.ETA)
		if p.Done == p.Total {
			fmt.Fprintln(os.Stderr)
		}
	})

	results := application.Scheduler.FetchMany(ctx, tickers)

	scored := make([]domain.ScoredRecord, 0, len(results))
	for _, rec := range results {
		scored = append(scored, scoring.Score(rec))
	}
	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Ticker < scored[j].Ticker
	})

	printTable(scored, *explain)

	if *save {
		today := time.Now().Format(domain.LedgerDateLayout)
		entries := make([]domain.LedgerEntry, 0, len(scored))
		for _, rec := range scored {
			entries = append(entries, ledger.EntryFromScored(rec, today, *notes))
		}
		if err := application.Ledger.Append(entries); err != nil {
			application.Logger.Error("Failed to append to ledger", "error", err)
			os.Exit(1)
		}
		fmt.Printf("saved %d rows to %s\n", len(entries), application.Ledger.Path())
	}
}

func splitTickers(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func printTable(scored []domain.ScoredRecord, explain bool) {
	fmt.Printf("%-8s %9s %6s %8s %6s  %s\n",
		"TICKER", "PRICE", "P/VP", "DY12M%", "SCORE", "VERDICT")
	for _, rec := range scored {
		fmt.Printf("%-8s %9s %6s %8s %6d  %s\n",
			rec.Ticker,
			fmtValue(rec.Indicators.Get(domain.IndicatorCurrentPrice)),
			fmtValue(rec.Indicators.Get(domain.IndicatorPriceToBook)),
			fmtValue(rec.Indicators.Get(domain.IndicatorDividendYield12M)),
			rec.Score,
			rec.Verdict)
		if explain {
			for _, reason := range rec.Reasons {
				fmt.Printf("         - %s\n", reason)
			}
		}
	}
}

func fmtValue(v domain.Value) string {
	f, ok := v.Float()
	if !ok {
		return "-"
	}
	return fmt.Sprintf("%.2f", f)
}
