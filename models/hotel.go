package models

// Hotel is the normalized hotel record shared by the local index and the
// live provider. Fields not supplied by a source stay at their zero value.
type Hotel struct {
	ID        uint    `json:"id,omitempty"`
	Name      string  `json:"name"`
	Location  string  `json:"location,omitempty"`
	Rating    float64 `json:"rating,omitempty"`
	Reviews   int     `json:"reviews,omitempty"`
	Price     string  `json:"price,omitempty"`
	Provider  string  `json:"provider,omitempty"`
	Sponsored bool    `json:"is_sponsored,omitempty"`
	Source    string  `json:"source,omitempty"`
}

// RankingResult is the enrichment attached to a data response.
type RankingResult struct {
	RankedHotels []string `json:"ranked_hotels"`
	LLMResponse  string   `json:"llm_response"`
	Mode         string   `json:"mode"`   // "llm" or "fallback"
	Source       string   `json:"source"` // "generation" or "template"
}
