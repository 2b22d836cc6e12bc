package decision

import (
	"context"
	"fmt"
	"time"

	"scenery/models"
	"scenery/services/livesearch"
	"scenery/services/localdb"

	"go.uber.org/zap"
)

// cascadeLiveFailure handles a live-provider error. Rate-limit failures with
// a known location silently downgrade to the local index; the raw provider
// error never reaches the caller on that path. Anything else surfaces as an
// error action carrying the original message.
func (e *Engine) cascadeLiveFailure(ctx context.Context, query, location string, liveErr error, budget *Budget, resp *models.TurnResponse) {
	if !livesearch.IsRateLimited(liveErr) {
		e.Logger.Error("live provider failed", zap.String("location", location), zap.Error(liveErr))
		fallbacksTotal.WithLabelValues("live_error").Inc()
		resp.Action = models.ActionRapidAPIError
		resp.Message = liveErr.Error()
		return
	}

	e.Logger.Warn("live provider rate limited, falling back to local index",
		zap.String("location", location), zap.Error(liveErr))
	fallbacksTotal.WithLabelValues("live_to_local").Inc()

	fetchStart := time.Now()
	results, err := e.Local.Search(ctx, location, localdb.SearchOptions{
		Rating:      resp.Slots.Rating,
		PriceMin:    resp.Slots.PriceMin,
		PriceMax:    resp.Slots.PriceMax,
		UserRequest: query,
	})
	fetchMS := time.Since(fetchStart).Milliseconds()
	if err != nil {
		e.Logger.Error("local fallback also failed", zap.String("location", location), zap.Error(err))
		resp.Action = models.ActionRapidAPIError
		resp.Message = msgLiveUnavailable
		return
	}

	resp.Action = models.ActionLocalDBFallback
	resp.Data = &models.TurnData{
		Source:  "local_db",
		Count:   len(results),
		Results: results,
		Note:    fmt.Sprintf("Live prices are briefly unavailable; showing saved results for %s.", location),
	}
	enrichMS, skipped := e.enrich(ctx, budget, resp.Data, query, location)
	resp.Timing.FetchMS = fetchMS
	resp.Timing.EnrichMS = enrichMS
	resp.SLA = budget.Report(skipped)
}
