package decision

import (
	"strings"

	"scenery/models"
	"scenery/services/extractor"
)

// referentialMarkers identify a follow-up that leans on the previous answer.
var referentialMarkers = []string{
	"what about", "how about", "cheaper", "those", "these", "them",
	"that one", "instead", "closer", "the same",
}

// FuseSlots merges the prior turn's slots into this turn's. Monotonic: a
// value extracted this turn is never replaced.
func FuseSlots(current, prior models.Slots) models.Slots {
	return current.Merge(prior)
}

// Stickiness keeps short follow-ups on the route the conversation was
// already on. Returns the forced intent and whether one applies.
func Stickiness(lastAction models.Action, query string, slots models.Slots, maxFollowupWords int) (models.Intent, bool) {
	noDates := slots.CheckIn == nil && slots.CheckOut == nil
	if slots.Location == nil || !noDates {
		return "", false
	}

	switch lastAction {
	case models.ActionLocalDB, models.ActionAskLocation:
		followup := extractor.HasFilterSignal(query) || isShortFollowup(query, maxFollowupWords)
		if followup && !extractor.HasBookingSignal(query) {
			return models.IntentExploreLocal, true
		}
	case models.ActionRapidAPI, models.ActionAskDates:
		if isShortFollowup(query, maxFollowupWords) {
			return models.IntentNeedsDates, true
		}
	}
	return "", false
}

// isShortFollowup: at most maxWords words, or a referential marker. The word
// threshold is a tunable, not a contract.
func isShortFollowup(query string, maxWords int) bool {
	if maxWords <= 0 {
		maxWords = 6
	}
	if len(strings.Fields(query)) <= maxWords {
		return true
	}
	q := strings.ToLower(query)
	for _, marker := range referentialMarkers {
		if strings.Contains(q, marker) {
			return true
		}
	}
	return false
}
