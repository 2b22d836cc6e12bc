package models

// TurnRequest is the body of POST /chat.
type TurnRequest struct {
	Query     string `json:"query" binding:"required"`
	Mode      string `json:"mode,omitempty"`
	SessionID string `json:"session_id,omitempty"`
}

// TurnData carries the fetched results plus optional enrichment.
type TurnData struct {
	Source  string         `json:"source"`
	Count   int            `json:"count"`
	Results []Hotel        `json:"results"`
	Ranking *RankingResult `json:"ranking,omitempty"`
	Note    string         `json:"note,omitempty"`
}

// GeoInfo reports how a location string was resolved for the live provider.
type GeoInfo struct {
	GeoID      int    `json:"geo_id,omitempty"`
	Normalized string `json:"normalized,omitempty"`
	Strategy   string `json:"strategy"`
}

// Timing breaks down where a turn spent its time.
type Timing struct {
	ExtractMS int64 `json:"extract_ms"`
	FetchMS   int64 `json:"fetch_ms"`
	EnrichMS  int64 `json:"enrich_ms"`
	TotalMS   int64 `json:"total_ms"`
}

// SLAReport records the route budget and whether it was met.
type SLAReport struct {
	Route             string `json:"route"`
	TargetMinMS       int64  `json:"target_min_ms"`
	TargetMaxMS       int64  `json:"target_max_ms"`
	ElapsedMS         int64  `json:"elapsed_ms"`
	EnrichmentSkipped bool   `json:"enrichment_skipped"`
	WithinTarget      bool   `json:"within_target"`
}

// TurnResponse is the envelope returned for every processed turn.
type TurnResponse struct {
	Intent         Intent     `json:"intent"`
	Confidence     float64    `json:"confidence"`
	Action         Action     `json:"action"`
	Message        string     `json:"message,omitempty"`
	Slots          Slots      `json:"slots"`
	Data           *TurnData  `json:"data,omitempty"`
	Geo            *GeoInfo   `json:"geo,omitempty"`
	Timing         *Timing    `json:"timing,omitempty"`
	SLA            *SLAReport `json:"sla,omitempty"`
	SessionID      string     `json:"session_id"`
	ConversationID string     `json:"conversation_id"`
}
