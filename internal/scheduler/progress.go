package scheduler

import (
	"fmt"
	"sync"
	"time"
)

// ProgressTracker tracks completion of a scan run. Completion order is not
// deterministic under the worker pool, so the tracker only guarantees a
// monotonically non-decreasing fraction, never strict increments.
type ProgressTracker struct {
	mu        sync.Mutex
	total     int
	current   int
	startTime time.Time
}

// NewProgressTracker creates a tracker for a run of the given size.
func NewProgressTracker(total int) *ProgressTracker {
	return &ProgressTracker{
		total:     total,
		startTime: time.Now(),
	}
}

// Increment marks one more task as finished and returns the new count.
func (p *ProgressTracker) Increment() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.current++
	return p.current
}

// Fraction returns completion in [0, 1].
func (p *ProgressTracker) Fraction() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.total == 0 {
		return 1
	}
	return float64(p.current) / float64(p.total)
}

// Progress returns the current and total task counts.
func (p *ProgressTracker) Progress() (current, total int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current, p.total
}

// IsComplete reports whether every task has finished.
func (p *ProgressTracker) IsComplete() bool {
	current, total := p.Progress()
	return current >= total
}

// ETA estimates the remaining wall time by extrapolating the mean per-task
// duration over the tasks still outstanding.
func (p *ProgressTracker) ETA() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.total == 0 || p.current >= p.total {
		return "done"
	}
	if p.current == 0 {
		return "estimating"
	}

	perTask := time.Since(p.startTime) / time.Duration(p.current)
	remaining := perTask * time.Duration(p.total-p.current)
	switch {
	case remaining < time.Minute:
		return fmt.Sprintf("%ds", int(remaining.Round(time.Second).Seconds()))
	case remaining < time.Hour:
		return fmt.Sprintf("%dm%02ds", int(remaining.Minutes()), int(remaining.Seconds())%60)
	default:
		return fmt.Sprintf("%dh%02dm", int(remaining.Hours()), int(remaining.Minutes())%60)
	}
}

// Elapsed returns the wall time since the run started.
func (p *ProgressTracker) Elapsed() time.Duration {
	return time.Since(p.startTime)
}
