package extractor

import (
	"context"

	"scenery/models"
)

// Classifier is the probabilistic intent classifier, an external
// collaborator invoked only when the fast path is inconclusive.
type Classifier interface {
	Predict(ctx context.Context, text string) (label string, confidence float64, err error)
}

// SlotExtractor is the natural-language slot extraction collaborator.
type SlotExtractor interface {
	Extract(ctx context.Context, text string) (models.Slots, error)
}

// KeywordClassifier is the in-process default classifier used when no
// trained model is wired in. Deterministic keyword scoring only.
type KeywordClassifier struct{}

func (KeywordClassifier) Predict(_ context.Context, text string) (string, float64, error) {
	switch {
	case MentionsDates(text) && HasHotelSignal(text):
		return string(models.IntentLivePrices), 0.62, nil
	case HasBookingSignal(text):
		return string(models.IntentNeedsDates), 0.6, nil
	case HasHotelSignal(text):
		return string(models.IntentExploreLocal), 0.66, nil
	}
	return string(models.IntentOffTopic), 0.51, nil
}

// RegexSlotExtractor reuses the fast extractor's rule tables but, unlike the
// fast path, returns whatever it found even without a location.
type RegexSlotExtractor struct {
	Fast *FastExtractor
}

func (r RegexSlotExtractor) Extract(_ context.Context, text string) (models.Slots, error) {
	slots := models.Slots{}
	if loc, ok := r.Fast.resolveLocation(text, ""); ok {
		slots.Location = models.StringPtr(loc)
	}
	in, out := ExtractDates(text, r.Fast.now())
	slots.CheckIn, slots.CheckOut = FormatDates(in, out)
	slots.Adults, slots.Rooms = ExtractPeopleRooms(text)
	slots.PriceMin, slots.PriceMax = ExtractBudget(text)
	slots.Rating = ExtractRating(text)
	return slots, nil
}
