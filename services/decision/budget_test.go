package decision

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stepClock(start time.Time) (*time.Time, func() time.Time) {
	current := start
	return &current, func() time.Time { return current }
}

func TestEnrichmentTimeoutCappedByCeiling(t *testing.T) {
	b := StartBudget("live", 2*time.Second, 6*time.Second, 2500*time.Millisecond, 250*time.Millisecond)
	current, clock := stepClock(time.Unix(1000, 0))
	b.SetClock(clock)

	// Nothing elapsed: remaining window is huge, the ceiling wins.
	assert.Equal(t, 2500*time.Millisecond, b.EnrichmentTimeout())

	// Partway through: remaining window below the ceiling.
	*current = current.Add(4 * time.Second)
	assert.Equal(t, 1750*time.Millisecond, b.EnrichmentTimeout())
}

func TestEnrichmentTimeoutSpentBudget(t *testing.T) {
	b := StartBudget("local", 0, time.Second, 2500*time.Millisecond, 250*time.Millisecond)
	current, clock := stepClock(time.Unix(1000, 0))
	b.SetClock(clock)

	*current = current.Add(2 * time.Second)
	assert.Equal(t, time.Duration(0), b.EnrichmentTimeout())
}

func TestBudgetReport(t *testing.T) {
	b := StartBudget("live", 2*time.Second, 6*time.Second, 2500*time.Millisecond, 250*time.Millisecond)
	current, clock := stepClock(time.Unix(1000, 0))
	b.SetClock(clock)

	*current = current.Add(3 * time.Second)
	rep := b.Report(false)
	require.NotNil(t, rep)
	assert.Equal(t, "live", rep.Route)
	assert.Equal(t, int64(2000), rep.TargetMinMS)
	assert.Equal(t, int64(6000), rep.TargetMaxMS)
	assert.Equal(t, int64(3000), rep.ElapsedMS)
	assert.True(t, rep.WithinTarget)
	assert.False(t, rep.EnrichmentSkipped)

	*current = current.Add(4 * time.Second)
	rep = b.Report(true)
	assert.False(t, rep.WithinTarget)
	assert.True(t, rep.EnrichmentSkipped)
}
