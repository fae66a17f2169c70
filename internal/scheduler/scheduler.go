// Package scheduler fans fund acquisition out across a bounded worker pool.
//
// One task per ticker runs every configured connector in trust order and
// reconciles the results. Tasks are isolated: connector failures are
// absorbed inside the connectors themselves, so a dead source or a broken
// page can never abort the pool. FetchMany returns only after every
// submitted task has finished and always returns one entry per ticker, even
// when that entry is all-absent — callers can tell "tried and got nothing"
// apart from "never attempted".
package scheduler

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"fiipulse/internal/cache"
	"fiipulse/internal/config"
	"fiipulse/internal/infrastructure"
	"fiipulse/internal/reconcile"
	"fiipulse/internal/sources"
	"fiipulse/pkg/contracts/domain"
)

// Progress is a point-in-time snapshot of a scan run delivered to the
// progress observer after each task completion.
type Progress struct {
	Done     int
	Total    int
	Fraction float64
	ETA      string
}

// ProgressFunc observes scan progress. It is advisory: calls arrive after
// each task completion and must tolerate out-of-order task finishes. Calls
// are serialized and Done never decreases between them; the observer runs
// under the fan-in lock, so it should return quickly.
type ProgressFunc func(p Progress)

// Scheduler coordinates concurrent multi-source acquisition.
type Scheduler struct {
	connectors []sources.Connector
	cfg        config.ScanConfig
	logger     *slog.Logger
	metrics    *infrastructure.Metrics
	cache      *cache.Cache
	onProgress ProgressFunc
}

// New creates a scheduler over the given connectors. Connectors are expected
// in ascending trust-rank order, as produced by sources.Build.
func New(connectors []sources.Connector, cfg config.ScanConfig, logger *slog.Logger, metrics *infrastructure.Metrics) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		connectors: connectors,
		cfg:        cfg,
		logger:     infrastructure.WithComponent(logger, "scheduler"),
		metrics:    metrics,
	}
}

// UseCache enables read-through caching of consolidated records.
func (s *Scheduler) UseCache(c *cache.Cache) {
	s.cache = c
}

// OnProgress registers the progress observer for subsequent runs.
func (s *Scheduler) OnProgress(fn ProgressFunc) {
	s.onProgress = fn
}

// FetchMany acquires and reconciles every ticker, fanning tasks across the
// worker pool. The result holds exactly one ConsolidatedRecord per distinct
// ticker; it is complete only when all tasks have finished.
func (s *Scheduler) FetchMany(ctx context.Context, tickers []string) map[string]domain.ConsolidatedRecord {
	ctx = infrastructure.WithRunID(ctx, infrastructure.NewRunID())

	distinct := dedupe(tickers)
	tracker := NewProgressTracker(len(distinct))
	results := make(map[string]domain.ConsolidatedRecord, len(distinct))
	var mu sync.Mutex

	s.logger.InfoContext(ctx, "scan started",
		slog.Int("tickers", len(distinct)),
		slog.Int("workers", s.cfg.Workers),
		slog.Int("sources", len(s.connectors)))

	g := &errgroup.Group{}
	g.SetLimit(s.cfg.Workers)
	for _, ticker := range distinct {
		ticker := ticker
		g.Go(func() error {
			rec := s.fetchOne(ctx, ticker)
			s.metrics.RecordEntityScanned(ctx)

			// The observer fires inside the fan-in critical section so two
			// completions can never deliver their snapshots out of order.
			mu.Lock()
			results[ticker] = rec
			done := tracker.Increment()
			if s.onProgress != nil {
				s.onProgress(Progress{
					Done:     done,
					Total:    len(distinct),
					Fraction: tracker.Fraction(),
					ETA:      tracker.ETA(),
				})
			}
			mu.Unlock()
			return nil
		})
	}
	// Tasks never return errors; Wait only fences the fan-in.
	g.Wait()

	s.metrics.RecordScanDuration(ctx, tracker.Elapsed().Seconds())
	s.logger.InfoContext(ctx, "scan finished",
		slog.Int("tickers", len(distinct)),
		slog.Bool("complete", tracker.IsComplete()),
		slog.Duration("elapsed", tracker.Elapsed()))
	return results
}

// FetchOne acquires and reconciles a single ticker.
func (s *Scheduler) FetchOne(ctx context.Context, ticker string) domain.ConsolidatedRecord {
	ctx = infrastructure.WithRunID(ctx, infrastructure.NewRunID())
	return s.fetchOne(ctx, ticker)
}

func (s *Scheduler) fetchOne(ctx context.Context, ticker string) domain.ConsolidatedRecord {
	ticker = sources.CanonicalTicker(ticker)
	if s.cache != nil {
		if rec, ok := s.cache.Get(ticker); ok {
			s.logger.DebugContext(ctx, "cache hit", slog.String("ticker", ticker))
			return rec
		}
	}

	// Sources are queried sequentially in trust order within the task; once
	// every indicator is filled, the remaining lower-ranked sources cannot
	// change the outcome.
	var records []domain.SourceRecord
	for _, conn := range s.connectors {
		records = append(records, conn.Fetch(ctx, ticker))
		if s.cfg.ShortCircuit && reconcile.Merge(ticker, records).Indicators.Complete() {
			break
		}
	}

	rec := reconcile.Merge(ticker, records)
	if s.cache != nil {
		s.cache.Put(ticker, rec)
	}
	return rec
}

// dedupe canonicalizes tickers and removes duplicates, preserving first
// occurrence order.
func dedupe(tickers []string) []string {
	seen := make(map[string]struct{}, len(tickers))
	out := make([]string, 0, len(tickers))
	for _, t := range tickers {
		canonical := sources.CanonicalTicker(t)
		if canonical == "" {
			continue
		}
		if _, dup := seen[canonical]; dup {
			continue
		}
		seen[canonical] = struct{}{}
		out = append(out, canonical)
	}
	return out
}
