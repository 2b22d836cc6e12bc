package decision

import (
	"scenery/models"
	"scenery/services/extractor"
)

// ApplyOverrides is the deterministic rule layer that stabilizes classifier
// noise. Priority order: OFF_TOPIC is never overridden; explicit dates force
// LIVE_PRICES; booking words without dates force NEEDS_DATES; hotel-domain
// words keep the turn out of off-topic handling.
func ApplyOverrides(intent models.Intent, query string, slots models.Slots) models.Intent {
	if intent == models.IntentOffTopic {
		return intent
	}
	if slots.HasDates() {
		return models.IntentLivePrices
	}
	if extractor.HasBookingSignal(query) {
		return models.IntentNeedsDates
	}
	if extractor.HasHotelSignal(query) && intent != models.IntentLivePrices && intent != models.IntentNeedsDates {
		return models.IntentExploreLocal
	}
	return intent
}
