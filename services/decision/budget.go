package decision

import (
	"time"

	"scenery/models"
)

// Budget tracks one route's latency window and allocates whatever is left to
// the optional enrichment step.
type Budget struct {
	Route     string
	TargetMin time.Duration
	TargetMax time.Duration
	Ceiling   time.Duration // per-step cap on the enrichment call
	Safety    time.Duration

	start time.Time
	now   func() time.Time
}

// StartBudget opens the window at the current instant.
func StartBudget(route string, targetMin, targetMax, ceiling, safety time.Duration) *Budget {
	b := &Budget{
		Route:     route,
		TargetMin: targetMin,
		TargetMax: targetMax,
		Ceiling:   ceiling,
		Safety:    safety,
		now:       time.Now,
	}
	b.start = b.now()
	return b
}

// SetClock fixes the budget's clock; tests use it to pin elapsed time.
func (b *Budget) SetClock(now func() time.Time) {
	b.now = now
	b.start = now()
}

func (b *Budget) Elapsed() time.Duration {
	return b.now().Sub(b.start)
}

// EnrichmentTimeout is min(ceiling, max(0, targetMax - elapsed - safety)).
// Zero or less means the enrichment call must not be made at all.
func (b *Budget) EnrichmentTimeout() time.Duration {
	remaining := b.TargetMax - b.Elapsed() - b.Safety
	if remaining < 0 {
		remaining = 0
	}
	if remaining > b.Ceiling {
		remaining = b.Ceiling
	}
	return remaining
}

// Report snapshots the window for the response envelope.
func (b *Budget) Report(enrichmentSkipped bool) *models.SLAReport {
	elapsed := b.Elapsed()
	return &models.SLAReport{
		Route:             b.Route,
		TargetMinMS:       b.TargetMin.Milliseconds(),
		TargetMaxMS:       b.TargetMax.Milliseconds(),
		ElapsedMS:         elapsed.Milliseconds(),
		EnrichmentSkipped: enrichmentSkipped,
		WithinTarget:      elapsed <= b.TargetMax,
	}
}
