package decision

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"scenery/models"
	"scenery/services/extractor"
	"scenery/services/geo"
	"scenery/services/livesearch"
	"scenery/services/localdb"
	"scenery/services/session"
)

type fakeLocal struct {
	lastLocation string
	lastOpts     localdb.SearchOptions
	hotels       []models.Hotel
	err          error
}

func (f *fakeLocal) Search(_ context.Context, location string, opts localdb.SearchOptions) ([]models.Hotel, error) {
	f.lastLocation = location
	f.lastOpts = opts
	return f.hotels, f.err
}

type fakeLive struct {
	lastGeoID    int
	lastCheckIn  string
	lastCheckOut string
	hotels       []models.Hotel
	err          error
}

func (f *fakeLive) Query(_ context.Context, geoID int, checkIn, checkOut string, _ livesearch.QueryOptions) ([]models.Hotel, error) {
	f.lastGeoID = geoID
	f.lastCheckIn = checkIn
	f.lastCheckOut = checkOut
	return f.hotels, f.err
}

type fakeStore struct {
	contexts map[string]models.SessionContext
	saved    []session.Turn
}

func newFakeStore() *fakeStore {
	return &fakeStore{contexts: make(map[string]models.SessionContext)}
}

func (f *fakeStore) Get(_ context.Context, sessionID string) models.SessionContext {
	if sctx, ok := f.contexts[sessionID]; ok {
		return sctx
	}
	return models.SessionContext{SessionID: sessionID, ConversationID: "conv-" + sessionID}
}

func (f *fakeStore) SaveTurn(_ context.Context, turn session.Turn, existing models.SessionContext) models.SessionContext {
	f.saved = append(f.saved, turn)
	out := existing
	out.SessionID = turn.SessionID
	if out.ConversationID == "" {
		out.ConversationID = "conv-" + turn.SessionID
	}
	out.Slots = turn.Slots.Merge(existing.Slots)
	out.LastAction = turn.Action
	f.contexts[turn.SessionID] = out
	return out
}

func testEngine(local *fakeLocal, live *fakeLive, store *fakeStore) *Engine {
	fast := extractor.NewFastExtractor()
	return &Engine{
		Fast:       fast,
		Classifier: extractor.KeywordClassifier{},
		Slotter:    extractor.RegexSlotExtractor{Fast: fast},
		Pool:       extractor.NewPool(2),
		Local:      local,
		Live:       live,
		Geo:        geo.NewResolver(),
		Enricher:   nil,
		Sessions:   store,
		Cfg: Config{
			LocalTarget:      time.Second,
			LiveTargetMin:    2 * time.Second,
			LiveTargetMax:    6 * time.Second,
			EnrichmentBudget: 2500 * time.Millisecond,
			SafetyMargin:     250 * time.Millisecond,
			ClassifierWait:   time.Second,
			FollowupMaxWords: 6,
		},
		Logger: zap.NewNop(),
	}
}

func sampleHotels(source string) []models.Hotel {
	return []models.Hotel{
		{Name: "Sea Breeze Villa", Location: "Galle", Rating: 4.6, Reviews: 310, Price: "LKR 18,000", Source: source},
		{Name: "Fort Heritage", Location: "Galle", Rating: 4.4, Reviews: 120, Price: "LKR 24,000", Source: source},
	}
}

func TestHandleTurnRejectsEmptyQuery(t *testing.T) {
	e := testEngine(&fakeLocal{}, &fakeLive{}, newFakeStore())

	_, err := e.HandleTurn(context.Background(), models.TurnRequest{Query: "   "})
	assert.Error(t, err)
}

func TestHandleTurnOffTopic(t *testing.T) {
	e := testEngine(&fakeLocal{}, &fakeLive{}, newFakeStore())

	resp, err := e.HandleTurn(context.Background(), models.TurnRequest{Query: "hello"})
	require.NoError(t, err)
	assert.Equal(t, models.IntentOffTopic, resp.Intent)
	assert.Equal(t, models.ActionFallback, resp.Action)
	assert.Equal(t, msgOffTopic, resp.Message)
	assert.Nil(t, resp.Data)
}

func TestHandleTurnExploreLocal(t *testing.T) {
	local := &fakeLocal{hotels: sampleHotels("local_db")}
	store := newFakeStore()
	e := testEngine(local, &fakeLive{}, store)

	resp, err := e.HandleTurn(context.Background(), models.TurnRequest{Query: "cheap hotels in Galle", SessionID: "s1"})
	require.NoError(t, err)
	assert.Equal(t, models.IntentExploreLocal, resp.Intent)
	assert.Equal(t, models.ActionLocalDB, resp.Action)
	assert.Equal(t, "Galle", local.lastLocation)
	require.NotNil(t, resp.Data)
	assert.Equal(t, "local_db", resp.Data.Source)
	assert.Equal(t, 2, resp.Data.Count)
	require.NotNil(t, resp.Data.Ranking)
	assert.Equal(t, "fallback", resp.Data.Ranking.Mode)
	assert.Equal(t, "conv-s1", resp.ConversationID)
	require.Len(t, store.saved, 1)
	assert.Equal(t, models.ActionLocalDB, store.saved[0].Action)
}

func TestHandleTurnAsksForLocation(t *testing.T) {
	e := testEngine(&fakeLocal{}, &fakeLive{}, newFakeStore())

	resp, err := e.HandleTurn(context.Background(), models.TurnRequest{Query: "any cheap hotels"})
	require.NoError(t, err)
	assert.Equal(t, models.IntentExploreLocal, resp.Intent)
	assert.Equal(t, models.ActionAskLocation, resp.Action)
	assert.Equal(t, msgAskLocation, resp.Message)
}

func TestHandleTurnBookingWithoutDatesAsksDates(t *testing.T) {
	e := testEngine(&fakeLocal{}, &fakeLive{}, newFakeStore())

	resp, err := e.HandleTurn(context.Background(), models.TurnRequest{Query: "How much are hotels in Kandy?"})
	require.NoError(t, err)
	assert.Equal(t, models.IntentNeedsDates, resp.Intent)
	assert.Equal(t, models.ActionAskDates, resp.Action)
	assert.Equal(t, msgAskDates, resp.Message)
}

func TestHandleTurnLivePrices(t *testing.T) {
	live := &fakeLive{hotels: sampleHotels("rapidapi")}
	e := testEngine(&fakeLocal{}, live, newFakeStore())

	resp, err := e.HandleTurn(context.Background(), models.TurnRequest{
		Query: "hotel prices in Kandy from 2026-03-10 to 2026-03-12",
	})
	require.NoError(t, err)
	assert.Equal(t, models.IntentLivePrices, resp.Intent)
	assert.Equal(t, models.ActionRapidAPI, resp.Action)
	require.NotNil(t, resp.Geo)
	assert.Equal(t, 304138, resp.Geo.GeoID)
	assert.Equal(t, 304138, live.lastGeoID)
	assert.Equal(t, "2026-03-10", live.lastCheckIn)
	assert.Equal(t, "2026-03-12", live.lastCheckOut)
	require.NotNil(t, resp.Data)
	assert.Equal(t, "rapidapi", resp.Data.Source)
	require.NotNil(t, resp.SLA)
	assert.Equal(t, "live", resp.SLA.Route)
}

func TestHandleTurnUnknownGeoAsksLocation(t *testing.T) {
	e := testEngine(&fakeLocal{}, &fakeLive{}, newFakeStore())

	resp, err := e.HandleTurn(context.Background(), models.TurnRequest{
		Query: "hotel prices in matara from 2026-03-10 to 2026-03-12",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ActionAskLocation, resp.Action)
	assert.Contains(t, resp.Message, "Matara")
	require.NotNil(t, resp.Geo)
	assert.Equal(t, 0, resp.Geo.GeoID)
}

func TestHandleTurnRateLimitCascadesToLocal(t *testing.T) {
	local := &fakeLocal{hotels: sampleHotels("local_db")}
	live := &fakeLive{err: &livesearch.ProviderError{StatusCode: 429, Message: "Too Many Requests"}}
	e := testEngine(local, live, newFakeStore())

	resp, err := e.HandleTurn(context.Background(), models.TurnRequest{
		Query: "hotel prices in Kandy from 2026-03-10 to 2026-03-12",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ActionLocalDBFallback, resp.Action)
	require.NotNil(t, resp.Data)
	assert.Equal(t, "local_db", resp.Data.Source)
	assert.NotEmpty(t, resp.Data.Note)
	assert.NotContains(t, resp.Data.Note, "429")
	assert.Equal(t, "Kandy", local.lastLocation)
}

func TestHandleTurnLiveErrorSurfaces(t *testing.T) {
	live := &fakeLive{err: &livesearch.ProviderError{StatusCode: 500, Message: "upstream exploded"}}
	e := testEngine(&fakeLocal{}, live, newFakeStore())

	resp, err := e.HandleTurn(context.Background(), models.TurnRequest{
		Query: "hotel prices in Kandy from 2026-03-10 to 2026-03-12",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ActionRapidAPIError, resp.Action)
	assert.Contains(t, resp.Message, "upstream exploded")
}

func TestHandleTurnFollowupInheritsLocation(t *testing.T) {
	local := &fakeLocal{hotels: sampleHotels("local_db")}
	store := newFakeStore()
	store.contexts["s2"] = models.SessionContext{
		SessionID:      "s2",
		ConversationID: "conv-s2",
		Slots:          models.Slots{Location: models.StringPtr("Galle")},
		LastAction:     models.ActionLocalDB,
	}
	e := testEngine(local, &fakeLive{}, store)

	resp, err := e.HandleTurn(context.Background(), models.TurnRequest{Query: "anything cheaper?", SessionID: "s2"})
	require.NoError(t, err)
	assert.Equal(t, models.ActionLocalDB, resp.Action)
	assert.Equal(t, "Galle", local.lastLocation)
	require.NotNil(t, resp.Slots.Location)
	assert.Equal(t, "Galle", *resp.Slots.Location)
}

func TestHandleTurnRemembersDatesAcrossTurns(t *testing.T) {
	live := &fakeLive{hotels: sampleHotels("rapidapi")}
	store := newFakeStore()
	store.contexts["s3"] = models.SessionContext{
		SessionID:      "s3",
		ConversationID: "conv-s3",
		Slots: models.Slots{
			Location: models.StringPtr("Kandy"),
			CheckIn:  models.StringPtr("2026-03-10"),
			CheckOut: models.StringPtr("2026-03-12"),
		},
		LastAction: models.ActionAskDates,
	}
	e := testEngine(&fakeLocal{}, live, store)

	resp, err := e.HandleTurn(context.Background(), models.TurnRequest{Query: "what about prices?", SessionID: "s3"})
	require.NoError(t, err)
	assert.Equal(t, models.IntentLivePrices, resp.Intent)
	assert.Equal(t, models.ActionRapidAPI, resp.Action)
	assert.Equal(t, "2026-03-10", live.lastCheckIn)
}

func TestHandleTurnGeneratesSessionID(t *testing.T) {
	store := newFakeStore()
	e := testEngine(&fakeLocal{}, &fakeLive{}, store)

	resp, err := e.HandleTurn(context.Background(), models.TurnRequest{Query: "hello"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.SessionID)
	require.Len(t, store.saved, 1)
	assert.Equal(t, resp.SessionID, store.saved[0].SessionID)
}

func TestHandleTurnDeterministicForSameInput(t *testing.T) {
	first := testEngine(&fakeLocal{hotels: sampleHotels("local_db")}, &fakeLive{}, newFakeStore())
	second := testEngine(&fakeLocal{hotels: sampleHotels("local_db")}, &fakeLive{}, newFakeStore())

	req := models.TurnRequest{Query: "cheap hotels in Galle", SessionID: "same"}
	a, err := first.HandleTurn(context.Background(), req)
	require.NoError(t, err)
	b, err := second.HandleTurn(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, a.Intent, b.Intent)
	assert.Equal(t, a.Action, b.Action)
	assert.Equal(t, a.Slots, b.Slots)
}

// stallClassifier ignores cancellation and answers long after the deadline,
// the shape of call the pool abandons.
type stallClassifier struct{ delay time.Duration }

func (s stallClassifier) Predict(context.Context, string) (string, float64, error) {
	time.Sleep(s.delay)
	return string(models.IntentLivePrices), 0.9, nil
}

func TestHandleTurnLocationReplyAfterAskLocation(t *testing.T) {
	local := &fakeLocal{hotels: sampleHotels("local_db")}
	store := newFakeStore()
	e := testEngine(local, &fakeLive{}, store)

	first, err := e.HandleTurn(context.Background(), models.TurnRequest{Query: "Find me a hotel", SessionID: "s4"})
	require.NoError(t, err)
	require.Equal(t, models.ActionAskLocation, first.Action)

	second, err := e.HandleTurn(context.Background(), models.TurnRequest{Query: "Colombo", SessionID: "s4"})
	require.NoError(t, err)
	assert.Equal(t, models.IntentExploreLocal, second.Intent)
	assert.Equal(t, models.ActionLocalDB, second.Action)
	assert.Equal(t, "Colombo", local.lastLocation)
	require.NotNil(t, second.Slots.Location)
	assert.Equal(t, "Colombo", *second.Slots.Location)
}

func TestHandleTurnDeterministicOffTopicStaysFinal(t *testing.T) {
	store := newFakeStore()
	store.contexts["s5"] = models.SessionContext{
		SessionID:      "s5",
		ConversationID: "conv-s5",
		Slots:          models.Slots{Location: models.StringPtr("Galle")},
		LastAction:     models.ActionLocalDB,
	}
	e := testEngine(&fakeLocal{}, &fakeLive{}, store)

	resp, err := e.HandleTurn(context.Background(), models.TurnRequest{Query: "bye!", SessionID: "s5"})
	require.NoError(t, err)
	assert.Equal(t, models.IntentOffTopic, resp.Intent)
	assert.Equal(t, models.ActionFallback, resp.Action)
}

func TestHandleTurnAbandonedClassifierLeavesNoTrace(t *testing.T) {
	e := testEngine(&fakeLocal{}, &fakeLive{}, newFakeStore())
	e.Classifier = stallClassifier{delay: 200 * time.Millisecond}
	e.Cfg.ClassifierWait = 20 * time.Millisecond

	resp, err := e.HandleTurn(context.Background(), models.TurnRequest{Query: "Colombo"})
	require.NoError(t, err)
	assert.Equal(t, models.ActionFallback, resp.Action)
	assert.Zero(t, resp.Confidence)
	assert.Nil(t, resp.Slots.Location)
}

func TestHandleTurnTimingPopulatedOnAllBranches(t *testing.T) {
	local := &fakeLocal{hotels: sampleHotels("local_db")}
	e := testEngine(local, &fakeLive{}, newFakeStore())

	ask, err := e.HandleTurn(context.Background(), models.TurnRequest{Query: "any cheap hotels"})
	require.NoError(t, err)
	require.NotNil(t, ask.Timing)
	assert.Zero(t, ask.Timing.FetchMS)
	assert.Zero(t, ask.Timing.EnrichMS)
	assert.GreaterOrEqual(t, ask.Timing.TotalMS, ask.Timing.ExtractMS)

	data, err := e.HandleTurn(context.Background(), models.TurnRequest{Query: "cheap hotels in Galle"})
	require.NoError(t, err)
	require.NotNil(t, data.Timing)
	assert.GreaterOrEqual(t, data.Timing.TotalMS, data.Timing.FetchMS+data.Timing.EnrichMS)
}
