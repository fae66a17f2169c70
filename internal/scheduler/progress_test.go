package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProgressTrackerFractionStaysInUnitInterval(t *testing.T) {
	p := NewProgressTracker(4)
	assert.Equal(t, 0.0, p.Fraction())

	prev := 0.0
	for i := 0; i < 4; i++ {
		p.Increment()
		f := p.Fraction()
		assert.GreaterOrEqual(t, f, prev)
		assert.LessOrEqual(t, f, 1.0)
		prev = f
	}
	assert.Equal(t, 1.0, p.Fraction())
}

func TestProgressTrackerZeroTotalIsComplete(t *testing.T) {
	p := NewProgressTracker(0)
	assert.Equal(t, 1.0, p.Fraction())
	assert.True(t, p.IsComplete())
	assert.Equal(t, "done", p.ETA())
}

func TestProgressTrackerProgressCounts(t *testing.T) {
	p := NewProgressTracker(3)
	assert.Equal(t, 1, p.Increment())
	assert.Equal(t, 2, p.Increment())

	current, total := p.Progress()
	assert.Equal(t, 2, current)
	assert.Equal(t, 3, total)
	assert.False(t, p.IsComplete())

	p.Increment()
	assert.True(t, p.IsComplete())
}

func TestProgressTrackerETA(t *testing.T) {
	p := NewProgressTracker(4)
	assert.Equal(t, "estimating", p.ETA(), "no completions yet")

	// Two of four tasks done after a simulated minute: two more at 30s
	// each leaves roughly a minute remaining.
	p.startTime = time.Now().Add(-time.Minute)
	p.Increment()
	p.Increment()
	assert.Equal(t, "1m00s", p.ETA())

	p.Increment()
	p.Increment()
	assert.Equal(t, "done", p.ETA())
}
