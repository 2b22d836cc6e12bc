package extractor

import (
	"sync"
	"time"

	"scenery/models"
)

// Confidence levels reported by the deterministic fast path.
const (
	offTopicConfidence = 0.95
	fastConfidence     = 0.9
)

// Result is a resolved (intent, confidence, slots) triple.
type Result struct {
	Intent     models.Intent
	Confidence float64
	Slots      models.Slots
}

// FastExtractor is the deterministic regex/lookup pass tried before the
// probabilistic classifier. It is a pure function of (text, fallback
// location) given a fixed clock and city set.
type FastExtractor struct {
	mu     sync.RWMutex
	cities []string
	now    func() time.Time
}

func NewFastExtractor() *FastExtractor {
	return &FastExtractor{cities: DefaultCities, now: time.Now}
}

// SetCities replaces the known-city set (refreshed from the local index).
func (e *FastExtractor) SetCities(cities []string) {
	if len(cities) == 0 {
		return
	}
	e.mu.Lock()
	e.cities = cities
	e.mu.Unlock()
}

// Cities returns the current known-city set.
func (e *FastExtractor) Cities() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.cities
}

// SetClock fixes the extractor's clock. Tests use this to make relative
// dates deterministic.
func (e *FastExtractor) SetClock(now func() time.Time) { e.now = now }

// Extract resolves intent and slots from raw text without the classifier.
// The second return is false when the fast path is inconclusive and the
// caller should fall back to the classifier pipeline.
func (e *FastExtractor) Extract(text, fallbackLocation string) (*Result, bool) {
	if e.isOffTopic(text) {
		return &Result{Intent: models.IntentOffTopic, Confidence: offTopicConfidence}, true
	}

	location, ok := e.resolveLocation(text, fallbackLocation)
	if !ok {
		return nil, false
	}

	now := e.now()
	in, out := ExtractDates(text, now)
	checkIn, checkOut := FormatDates(in, out)
	adults, rooms := ExtractPeopleRooms(text)
	priceMin, priceMax := ExtractBudget(text)

	slots := models.Slots{
		Location: models.StringPtr(location),
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Adults:   adults,
		Rooms:    rooms,
		PriceMin: priceMin,
		PriceMax: priceMax,
		Rating:   ExtractRating(text),
	}

	intent, ok := decideIntent(text, slots)
	if !ok {
		return nil, false
	}
	return &Result{Intent: intent, Confidence: fastConfidence, Slots: slots}, true
}

// isOffTopic catches greetings, meta questions, prompt-injection attempts,
// and clearly non-hotel topics with no hotel/booking/city signal.
func (e *FastExtractor) isOffTopic(text string) bool {
	if greetingRE.MatchString(text) || metaRE.MatchString(text) || injectionRE.MatchString(text) {
		return true
	}
	if HasHotelSignal(text) || HasBookingSignal(text) {
		return false
	}
	if e.mentionsKnownCity(text) {
		return false
	}
	return offTopicRE.MatchString(text)
}

func (e *FastExtractor) mentionsKnownCity(text string) bool {
	lowered := lower(text)
	for _, city := range e.Cities() {
		if containsWord(lowered, lower(city)) {
			return true
		}
	}
	return false
}

// decideIntent applies the fast path's priority order.
func decideIntent(text string, slots models.Slots) (models.Intent, bool) {
	hotelOrFilter := HasHotelSignal(text) || HasFilterSignal(text)
	switch {
	case hotelOrFilter && !MentionsDates(text):
		return models.IntentExploreLocal, true
	case slots.HasDates():
		return models.IntentLivePrices, true
	case HasBookingSignal(text):
		return models.IntentNeedsDates, true
	}
	return "", false
}
