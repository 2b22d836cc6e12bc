package models

// Intent is the coarse classification of a turn's purpose.
type Intent string

const (
	IntentOffTopic     Intent = "OFF_TOPIC"
	IntentExploreLocal Intent = "EXPLORE_LOCAL"
	IntentNeedsDates   Intent = "NEEDS_DATES"
	IntentLivePrices   Intent = "LIVE_PRICES"
)

// Action is the concrete response behavior chosen by the router.
type Action string

const (
	ActionAskLocation     Action = "ASK_LOCATION"
	ActionAskDates        Action = "ASK_DATES"
	ActionLocalDB         Action = "LOCAL_DB"
	ActionLocalDBFallback Action = "LOCAL_DB_FALLBACK"
	ActionRapidAPI        Action = "RAPIDAPI"
	ActionRapidAPIError   Action = "RAPIDAPI_ERROR"
	ActionFallback        Action = "FALLBACK"
)
