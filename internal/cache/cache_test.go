package cache

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fiipulse/pkg/contracts/domain"
)

func rec(ticker string) domain.ConsolidatedRecord {
	return domain.ConsolidatedRecord{Ticker: ticker, Indicators: domain.IndicatorSet{}}
}

func TestGetReturnsFreshEntries(t *testing.T) {
	c := New(time.Minute, 8)
	c.Put("HGLG11", rec("HGLG11"))

	got, ok := c.Get("HGLG11")
	require.True(t, ok)
	assert.Equal(t, "HGLG11", got.Ticker)

	_, ok = c.Get("XPML11")
	assert.False(t, ok)
}

func TestGetExpiresStaleEntries(t *testing.T) {
	c := New(time.Minute, 8)
	clock := time.Now()
	c.now = func() time.Time { return clock }

	c.Put("HGLG11", rec("HGLG11"))

	clock = clock.Add(2 * time.Minute)
	_, ok := c.Get("HGLG11")
	assert.False(t, ok, "entries past the TTL must read as misses")
	assert.Zero(t, c.Len(), "stale entries are dropped on read")
}

func TestPutEvictsOldestAtCapacity(t *testing.T) {
	c := New(time.Hour, 3)
	clock := time.Now()
	c.now = func() time.Time { return clock }

	for i := 0; i < 3; i++ {
		c.Put(fmt.Sprintf("FII%d", i), rec("x"))
		clock = clock.Add(time.Second)
	}
	c.Put("FII3", rec("x"))

	assert.Equal(t, 3, c.Len())
	_, ok := c.Get("FII0")
	assert.False(t, ok, "the oldest entry goes first")
	_, ok = c.Get("FII3")
	assert.True(t, ok)
}

func TestZeroCapacityDisablesStorage(t *testing.T) {
	c := New(time.Hour, 0)
	c.Put("HGLG11", rec("HGLG11"))
	_, ok := c.Get("HGLG11")
	assert.False(t, ok)
}

func TestPutRefreshesExistingKey(t *testing.T) {
	c := New(time.Hour, 2)
	c.Put("HGLG11", rec("HGLG11"))
	c.Put("XPML11", rec("XPML11"))
	// Re-putting an existing key must not evict anything.
	c.Put("HGLG11", rec("HGLG11"))

	assert.Equal(t, 2, c.Len())
	_, ok := c.Get("XPML11")
	assert.True(t, ok)
}
