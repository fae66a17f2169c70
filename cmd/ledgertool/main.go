// ledgertool inspects and maintains the analysis ledger file. Without
// flags it prints the ledger; -merge imports another CSV into the ledger
// (duplicate (date, ticker) keys keep the incoming row); -dedupe collapses
// duplicates already in the file; -export-xlsx writes an Excel workbook.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"fiipulse/internal/app"
	"fiipulse/internal/ledger"
	"fiipulse/pkg/contracts"
	"fiipulse/pkg/contracts/domain"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file (optional)")
	path := flag.String("path", "", "ledger file path (overrides config)")
	mergePath := flag.String("merge", "", "CSV file to merge into the ledger; overlapping (date, ticker) keys keep the incoming row")
	dedupe := flag.Bool("dedupe", false, "collapse duplicate (date, ticker) rows already in the ledger, keeping the last write")
	exportXLSX := flag.String("export-xlsx", "", "write the ledger to an Excel workbook at this path")
	showVersion := flag.Bool("version", false, "print version information and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(contracts.FullVersionString())
		return
	}

	application, err := app.New(*configPath)
	if err != nil {
		slog.Error("Failed to start", "error", err)
		os.Exit(1)
	}
	defer application.Close()

	store := application.Ledger
	if *path != "" {
		store = ledger.NewStore(*path, application.Logger)
	}
	logger := application.Logger

	var entries []domain.LedgerEntry
	merged := false
	switch {
	case *mergePath != "":
		incoming, err := ledger.NewStore(*mergePath, logger).Load()
		if err != nil {
			logger.Error("Failed to load import file", "error", err)
			os.Exit(1)
		}
		entries, err = store.Merge(incoming)
		if err != nil {
			logger.Error("Failed to merge ledger", "error", err)
			os.Exit(1)
		}
		merged = true
		fmt.Printf("merged %d incoming rows: %d rows in ledger\n", len(incoming), len(entries))
	case *dedupe:
		entries, err = store.Merge(nil)
		if err != nil {
			logger.Error("Failed to deduplicate ledger", "error", err)
			os.Exit(1)
		}
		merged = true
		fmt.Printf("deduplicated ledger: %d rows remain\n", len(entries))
	default:
		entries, err = store.Load()
		if err != nil {
			logger.Error("Failed to load ledger", "error", err)
			os.Exit(1)
		}
	}

	if *exportXLSX != "" {
		if err := ledger.WriteXLSX(*exportXLSX, entries); err != nil {
			logger.Error("Failed to export workbook", "error", err)
			os.Exit(1)
		}
		fmt.Printf("exported %d rows to %s\n", len(entries), *exportXLSX)
		return
	}

	if !merged {
		printLedger(entries)
	}
}

func printLedger(entries []domain.LedgerEntry) {
	if len(entries) == 0 {
		fmt.Println("ledger is empty")
		return
	}
	fmt.Printf("%-12s %-8s %6s %6s %8s %7s  %-10s %s\n",
		"DATE", "TICKER", "P/VP", "DY12M%", "PRICE", "SCORE", "VERDICT", "NOTES")
	for _, e := range entries {
		fmt.Printf("%-12s %-8s %6s %6s %8s %7d  %-10s %s\n",
			e.Date,
			e.Ticker,
			fmtValue(e.Indicators.Get(domain.IndicatorPriceToBook)),
			fmtValue(e.Indicators.Get(domain.IndicatorDividendYield12M)),
			fmtValue(e.Indicators.Get(domain.IndicatorCurrentPrice)),
			e.Score,
			e.Verdict,
			e.Notes)
	}
}

func fmtValue(v domain.Value) string {
	f, ok := v.Float()
	if !ok {
		return "-"
	}
	return fmt.Sprintf("%.2f", f)
}
