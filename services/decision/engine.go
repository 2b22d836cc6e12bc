package decision

import (
	"context"
	"fmt"
	"strings"
	"time"

	"scenery/models"
	"scenery/services/extractor"
	"scenery/services/generation"
	"scenery/services/geo"
	"scenery/services/livesearch"
	"scenery/services/localdb"
	"scenery/services/session"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Route names used in budgets and SLA reports.
const (
	routeLocal = "local"
	routeLive  = "live"
)

// User-facing messages. Wording follows the assistant's voice, not the
// failure that produced them.
const (
	msgOffTopic        = "I can help with hotels and stays in Sri Lanka. Ask me about a city, dates, or budget."
	msgAskLocation     = "Which city/area in Sri Lanka are you looking for? (e.g., Galle, Colombo, Ella)"
	msgAskLocationLive = "Which city/area should I check prices for? (e.g., Galle, Colombo, Ella)"
	msgAskDates        = "What are your check-in and check-out dates?"
	msgAskDatesAndLoc  = "Which city/area, and what are your check-in and check-out dates?"
	msgFallback        = "Sorry, I couldn't understand that request."
	msgIndexTrouble    = "I'm having trouble reaching the hotel index right now. Please try again in a moment."
	msgLiveUnavailable = "Live prices are temporarily unavailable. Please try again shortly."
)

// LocalSearch is the local hotel index collaborator.
type LocalSearch interface {
	Search(ctx context.Context, location string, opts localdb.SearchOptions) ([]models.Hotel, error)
}

// LiveSearch is the live pricing provider collaborator.
type LiveSearch interface {
	Query(ctx context.Context, geoID int, checkIn, checkOut string, opts livesearch.QueryOptions) ([]models.Hotel, error)
}

// GeoResolver maps location strings to provider geo ids.
type GeoResolver interface {
	Resolve(location string) geo.Result
}

// Enricher runs the optional ranking/summary step under a timeout.
type Enricher interface {
	Rank(ctx context.Context, hotels []models.Hotel, userRequest, location string, timeout time.Duration) *models.RankingResult
}

// Config carries the engine's tunables, all sourced from app configuration.
type Config struct {
	LocalTarget      time.Duration
	LiveTargetMin    time.Duration
	LiveTargetMax    time.Duration
	EnrichmentBudget time.Duration
	SafetyMargin     time.Duration
	ClassifierWait   time.Duration
	FollowupMaxWords int
}

// Engine is the per-turn decision/orchestration core. All collaborators are
// injected at construction; routing never looks anything up dynamically.
type Engine struct {
	Fast       *extractor.FastExtractor
	Classifier extractor.Classifier
	Slotter    extractor.SlotExtractor
	Pool       *extractor.Pool
	Local      LocalSearch
	Live       LiveSearch
	Geo        GeoResolver
	Enricher   Enricher
	Sessions   session.Store
	Cfg        Config
	Logger     *zap.Logger
}

// HandleTurn processes one conversational turn end to end: extraction,
// override rules, context fusion, routing, budgeted fetch and enrichment,
// and the session write. Downstream failures never escape; every branch
// produces a well-formed response.
func (e *Engine) HandleTurn(ctx context.Context, req models.TurnRequest) (models.TurnResponse, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return models.TurnResponse{}, fmt.Errorf("query must not be empty")
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	voice := req.Mode == "voice"

	turnStart := time.Now()
	sctx := e.Sessions.Get(ctx, sessionID)

	intent, confidence, slots, screened := e.extract(ctx, query, sctx)

	// Context fusion, then the override layer once more: fused slots can
	// change the picture (e.g. dates remembered from a prior turn). Only the
	// deterministic off-topic screen is final; a low-confidence classifier
	// OFF_TOPIC still yields to stickiness, so a bare "Colombo" after
	// ASK_LOCATION stays on the hotel route.
	slots = FuseSlots(slots, sctx.Slots)
	if sticky, ok := Stickiness(sctx.LastAction, query, slots, e.Cfg.FollowupMaxWords); ok && !screened {
		intent = sticky
	}
	intent = ApplyOverrides(intent, query, slots)
	extractMS := time.Since(turnStart).Milliseconds()

	resp := models.TurnResponse{
		Intent:     intent,
		Confidence: confidence,
		Slots:      slots,
		SessionID:  sessionID,
		Timing:     &models.Timing{},
	}

	switch intent {
	case models.IntentOffTopic:
		resp.Action = models.ActionFallback
		resp.Message = msgOffTopic
	case models.IntentExploreLocal:
		e.routeExploreLocal(ctx, query, &resp)
	case models.IntentNeedsDates:
		resp.Action = models.ActionAskDates
		if resp.Slots.Location == nil {
			resp.Message = msgAskDatesAndLoc
		} else {
			resp.Message = msgAskDates
		}
	case models.IntentLivePrices:
		e.routeLivePrices(ctx, query, voice, &resp)
	default:
		resp.Action = models.ActionFallback
		resp.Message = msgFallback
	}

	resp.Timing.ExtractMS = extractMS
	resp.Timing.TotalMS = time.Since(turnStart).Milliseconds()

	saved := e.Sessions.SaveTurn(ctx, session.Turn{
		SessionID:     sessionID,
		UserText:      query,
		AssistantText: e.assistantText(resp),
		Action:        resp.Action,
		Slots:         resp.Slots,
	}, sctx)
	resp.ConversationID = saved.ConversationID

	turnsTotal.WithLabelValues(string(resp.Intent), string(resp.Action)).Inc()
	return resp, nil
}

// nlpResult is the classifier/slot-extractor output, handed back over a
// channel so an abandoned call can never touch state the engine reads.
type nlpResult struct {
	label      string
	confidence float64
	slots      models.Slots
}

// extract runs the fast path and, when inconclusive, the classifier and slot
// extractor on the bounded worker pool under a deadline. A failed or slow
// classifier degrades to an unclassified turn; it never aborts. The screened
// return is true only for the deterministic off-topic screen.
func (e *Engine) extract(ctx context.Context, query string, sctx models.SessionContext) (models.Intent, float64, models.Slots, bool) {
	if res, ok := e.Fast.Extract(query, sctx.Slots.LocationOrEmpty()); ok {
		return res.Intent, res.Confidence, res.Slots, res.Intent == models.IntentOffTopic
	}

	// Buffered so a call that outlives its deadline parks its result in the
	// abandoned channel instead of blocking or racing the caller.
	out := make(chan nlpResult, 1)
	err := e.Pool.Run(ctx, e.Cfg.ClassifierWait, func(runCtx context.Context) error {
		label, confidence, err := e.Classifier.Predict(runCtx, query)
		if err != nil {
			return err
		}
		slots, err := e.Slotter.Extract(runCtx, query)
		if err != nil {
			return err
		}
		out <- nlpResult{label: label, confidence: confidence, slots: slots}
		return nil
	})
	if err != nil {
		e.Logger.Warn("classifier path degraded", zap.Error(err))
		return ApplyOverrides("", query, models.Slots{}), 0, models.Slots{}, false
	}
	res := <-out
	return ApplyOverrides(models.Intent(res.label), query, res.slots), res.confidence, res.slots, false
}

func (e *Engine) routeExploreLocal(ctx context.Context, query string, resp *models.TurnResponse) {
	location := resp.Slots.LocationOrEmpty()
	if location == "" {
		resp.Action = models.ActionAskLocation
		resp.Message = msgAskLocation
		return
	}

	budget := StartBudget(routeLocal, 0, e.Cfg.LocalTarget, e.Cfg.EnrichmentBudget, e.Cfg.SafetyMargin)
	fetchStart := time.Now()
	results, err := e.Local.Search(ctx, location, localdb.SearchOptions{
		Rating:      resp.Slots.Rating,
		PriceMin:    resp.Slots.PriceMin,
		PriceMax:    resp.Slots.PriceMax,
		UserRequest: query,
	})
	fetchMS := time.Since(fetchStart).Milliseconds()
	if err != nil {
		e.Logger.Error("local index query failed", zap.String("location", location), zap.Error(err))
		resp.Action = models.ActionFallback
		resp.Message = msgIndexTrouble
		return
	}

	resp.Action = models.ActionLocalDB
	resp.Data = &models.TurnData{Source: "local_db", Count: len(results), Results: results}
	enrichMS, skipped := e.enrich(ctx, budget, resp.Data, query, location)
	resp.Timing.FetchMS = fetchMS
	resp.Timing.EnrichMS = enrichMS
	resp.SLA = budget.Report(skipped)
}

func (e *Engine) routeLivePrices(ctx context.Context, query string, voice bool, resp *models.TurnResponse) {
	if !resp.Slots.HasDates() {
		resp.Intent = models.IntentNeedsDates
		resp.Action = models.ActionAskDates
		resp.Message = msgAskDates
		return
	}
	location := resp.Slots.LocationOrEmpty()
	if location == "" {
		resp.Intent = models.IntentNeedsDates
		resp.Action = models.ActionAskLocation
		resp.Message = msgAskLocationLive
		return
	}

	geoRes := e.Geo.Resolve(location)
	resp.Geo = &models.GeoInfo{GeoID: geoRes.GeoID, Normalized: geoRes.Normalized, Strategy: geoRes.Strategy}
	if !geoRes.Known() {
		resp.Action = models.ActionAskLocation
		resp.Message = fmt.Sprintf("I couldn't find %q. Try a known city like Galle, Colombo, or Ella.", location)
		return
	}

	// Voice turns run under the tighter end of the live window.
	targetMax := e.Cfg.LiveTargetMax
	if voice {
		targetMax = e.Cfg.LiveTargetMin
	}
	budget := StartBudget(routeLive, e.Cfg.LiveTargetMin, targetMax, e.Cfg.EnrichmentBudget, e.Cfg.SafetyMargin)

	opts := livesearch.QueryOptions{
		Rating:   resp.Slots.Rating,
		PriceMin: resp.Slots.PriceMin,
		PriceMax: resp.Slots.PriceMax,
	}
	if resp.Slots.Adults != nil {
		opts.Adults = *resp.Slots.Adults
	}
	if resp.Slots.Rooms != nil {
		opts.Rooms = *resp.Slots.Rooms
	}

	fetchStart := time.Now()
	results, err := e.Live.Query(ctx, geoRes.GeoID, *resp.Slots.CheckIn, *resp.Slots.CheckOut, opts)
	fetchMS := time.Since(fetchStart).Milliseconds()
	if err != nil {
		e.cascadeLiveFailure(ctx, query, location, err, budget, resp)
		return
	}

	resp.Action = models.ActionRapidAPI
	resp.Data = &models.TurnData{Source: "rapidapi", Count: len(results), Results: results}
	enrichMS, skipped := e.enrich(ctx, budget, resp.Data, query, location)
	resp.Timing.FetchMS = fetchMS
	resp.Timing.EnrichMS = enrichMS
	resp.SLA = budget.Report(skipped)
}

// enrich runs the optional ranking step under the remaining budget. A spent
// budget substitutes the templated summary without making the call.
func (e *Engine) enrich(ctx context.Context, budget *Budget, data *models.TurnData, query, location string) (enrichMS int64, skipped bool) {
	timeout := budget.EnrichmentTimeout()
	if timeout <= 0 || e.Enricher == nil {
		data.Ranking = generation.TemplateSummary(data.Results, location)
		enrichmentSkippedTotal.Inc()
		return 0, true
	}
	enrichStart := time.Now()
	data.Ranking = e.Enricher.Rank(ctx, data.Results, query, location, timeout)
	return time.Since(enrichStart).Milliseconds(), false
}

func (e *Engine) assistantText(resp models.TurnResponse) string {
	if resp.Message != "" {
		return resp.Message
	}
	if resp.Data != nil && resp.Data.Ranking != nil {
		return resp.Data.Ranking.LLMResponse
	}
	return string(resp.Action)
}
