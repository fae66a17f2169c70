// Package ledger persists confirmed analysis rows to an append-only CSV
// file. The file is the source of truth: rows are only ever appended during
// normal operation, and Merge rewrites the file to collapse duplicate
// (date, ticker) keys, keeping the last-written row for each key.
package ledger

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"fiipulse/pkg/contracts/domain"
)

// utf8BOM is prepended to new files so Excel opens them as UTF-8.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Header is the canonical column order of the ledger file.
var Header = []string{
	"date", "ticker",
	"current_price", "price_to_book", "dividend_yield_12m", "net_worth",
	"quotaholder_count", "daily_liquidity", "admin_fee", "performance_fee",
	"risk_class", "leverage_pct", "max_asset_concentration_pct",
	"score", "verdict", "source", "notes",
}

// indicatorColumns maps header names to indicators, in Header order.
var indicatorColumns = []struct {
	column string
	ind    domain.Indicator
}{
	{"current_price", domain.IndicatorCurrentPrice},
	{"price_to_book", domain.IndicatorPriceToBook},
	{"dividend_yield_12m", domain.IndicatorDividendYield12M},
	{"net_worth", domain.IndicatorNetWorth},
	{"quotaholder_count", domain.IndicatorQuotaholderCount},
	{"daily_liquidity", domain.IndicatorDailyLiquidity},
	{"admin_fee", domain.IndicatorAdminFee},
	{"performance_fee", domain.IndicatorPerformanceFee},
	{"risk_class", domain.IndicatorRiskClass},
	{"leverage_pct", domain.IndicatorLeveragePct},
	{"max_asset_concentration_pct", domain.IndicatorMaxConcentration},
}

// Store reads and writes the ledger CSV file.
type Store struct {
	path   string
	logger *slog.Logger
}

// NewStore creates a store over the given file path. The file need not
// exist yet; it is created on first Append.
func NewStore(path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{path: path, logger: logger}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads every entry from the ledger file, preserving file order.
// A missing file is an empty ledger, not an error. Rows that cannot be
// parsed are skipped with a warning so that one corrupt line never blocks
// access to the rest of the history.
func (s *Store) Load() ([]domain.LedgerEntry, error) {
	file, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], string(utf8BOM))
	}
	columns := headerIndex(header)
	if _, ok := columns["date"]; !ok {
		return nil, fmt.Errorf("ledger header missing date column: %q", header)
	}

	var entries []domain.LedgerEntry
	line := 1
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			s.logger.Warn("skipping malformed ledger row",
				slog.Int("line", line),
				slog.String("error", err.Error()))
			continue
		}
		entry, err := parseRow(row, columns)
		if err != nil {
			s.logger.Warn("skipping unparsable ledger row",
				slog.Int("line", line),
				slog.String("error", err.Error()))
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Append adds entries to the end of the ledger file, creating it (with
// header and BOM) when absent. Existing rows are never touched.
func (s *Store) Append(entries []domain.LedgerEntry) error {
	if len(entries) == 0 {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create ledger directory: %w", err)
	}

	_, statErr := os.Stat(s.path)
	fresh := errors.Is(statErr, os.ErrNotExist)

	file, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open ledger: %w", err)
	}
	defer file.Close()

	if fresh {
		if _, err := file.Write(utf8BOM); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(file)
	if fresh {
		if err := writer.Write(Header); err != nil {
			return fmt.Errorf("failed to write ledger header: %w", err)
		}
	}
	for _, entry := range entries {
		if err := writer.Write(formatRow(entry)); err != nil {
			return fmt.Errorf("failed to write ledger row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush ledger: %w", err)
	}

	s.logger.Info("ledger appended",
		slog.String("path", s.path),
		slog.Int("rows", len(entries)))
	return nil
}

// Merge combines incoming entries into the ledger and rewrites the file.
// Duplicate (date, ticker) keys collapse to the last occurrence, with
// incoming entries counting as later than everything already stored.
// Merging nil collapses duplicates already present in the file; merging the
// ledger's own content back in is a no-op on the data. The rewrite goes
// through a temp file so a crash mid-merge leaves the original intact.
func (s *Store) Merge(incoming []domain.LedgerEntry) ([]domain.LedgerEntry, error) {
	existing, err := s.Load()
	if err != nil {
		return nil, err
	}
	merged := MergeEntries(existing, incoming)

	tmp := s.path + ".tmp"
	if err := s.writeAll(tmp, merged); err != nil {
		return nil, err
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return nil, fmt.Errorf("failed to replace ledger: %w", err)
	}

	s.logger.Info("ledger merged",
		slog.String("path", s.path),
		slog.Int("incoming", len(incoming)),
		slog.Int("rows_before", len(existing)),
		slog.Int("rows_after", len(merged)))
	return merged, nil
}

// MergeEntries collapses duplicate (date, ticker) keys across both slices,
// keeping the last occurrence for each. Existing rows keep their position;
// keys seen for the first time append in input order.
func MergeEntries(existing, incoming []domain.LedgerEntry) []domain.LedgerEntry {
	index := make(map[domain.LedgerKey]int, len(existing)+len(incoming))
	var merged []domain.LedgerEntry
	add := func(entry domain.LedgerEntry) {
		if i, seen := index[entry.Key()]; seen {
			merged[i] = entry
			return
		}
		index[entry.Key()] = len(merged)
		merged = append(merged, entry)
	}
	for _, entry := range existing {
		add(entry)
	}
	for _, entry := range incoming {
		add(entry)
	}
	return merged
}

func (s *Store) writeAll(path string, entries []domain.LedgerEntry) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create ledger directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create ledger: %w", err)
	}
	if err := writeEntries(file, entries); err != nil {
		file.Close()
		return err
	}
	// The caller renames this file over the ledger, so a short write has to
	// surface here, before the rename replaces good data.
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close ledger: %w", err)
	}
	return nil
}

func writeEntries(file *os.File, entries []domain.LedgerEntry) error {
	if _, err := file.Write(utf8BOM); err != nil {
		return fmt.Errorf("failed to write BOM: %w", err)
	}
	writer := csv.NewWriter(file)
	if err := writer.Write(Header); err != nil {
		return fmt.Errorf("failed to write ledger header: %w", err)
	}
	for _, entry := range entries {
		if err := writer.Write(formatRow(entry)); err != nil {
			return fmt.Errorf("failed to write ledger row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush ledger: %w", err)
	}
	return nil
}

func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return idx
}

// parseRow builds an entry from one CSV row. Older files written with a
// subset of today's columns still load: columns missing from the header
// simply read as absent indicators or zero values.
func parseRow(row []string, columns map[string]int) (domain.LedgerEntry, error) {
	cell := func(name string) (string, bool) {
		i, ok := columns[name]
		if !ok || i >= len(row) {
			return "", false
		}
		return strings.TrimSpace(row[i]), true
	}

	date, _ := cell("date")
	ticker, _ := cell("ticker")
	if date == "" || ticker == "" {
		return domain.LedgerEntry{}, fmt.Errorf("row missing date or ticker")
	}

	entry := domain.LedgerEntry{
		Date:       date,
		Ticker:     strings.ToUpper(ticker),
		Indicators: domain.IndicatorSet{},
	}
	for _, col := range indicatorColumns {
		raw, ok := cell(col.column)
		if !ok || raw == "" {
			continue
		}
		if col.ind.IsCategorical() {
			entry.Indicators.Set(col.ind, domain.Category(raw))
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return domain.LedgerEntry{}, fmt.Errorf("bad %s value %q: %w", col.column, raw, err)
		}
		entry.Indicators.Set(col.ind, domain.Number(v))
	}

	if raw, ok := cell("score"); ok && raw != "" {
		score, err := strconv.Atoi(raw)
		if err != nil {
			return domain.LedgerEntry{}, fmt.Errorf("bad score %q: %w", raw, err)
		}
		entry.Score = score
	}
	if raw, ok := cell("verdict"); ok {
		entry.Verdict = domain.Verdict(raw)
	}
	entry.Source, _ = cell("source")
	entry.Notes, _ = cell("notes")
	return entry, nil
}

func formatRow(entry domain.LedgerEntry) []string {
	row := []string{entry.Date, entry.Ticker}
	for _, col := range indicatorColumns {
		v := entry.Indicators.Get(col.ind)
		switch {
		case v.IsAbsent():
			row = append(row, "")
		case col.ind.IsCategorical():
			text, _ := v.Text()
			row = append(row, text)
		default:
			f, _ := v.Float()
			row = append(row, strconv.FormatFloat(f, 'f', -1, 64))
		}
	}
	row = append(row,
		strconv.Itoa(entry.Score),
		string(entry.Verdict),
		entry.Source,
		entry.Notes)
	return row
}
