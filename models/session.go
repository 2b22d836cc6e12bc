package models

// TurnEvent is one entry in the bounded per-session turn log.
type TurnEvent struct {
	Role      string `json:"role"`
	Text      string `json:"text"`
	Action    Action `json:"action,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// SessionContext is the per-session state persisted between turns.
type SessionContext struct {
	SessionID      string      `json:"session_id"`
	ConversationID string      `json:"conversation_id"`
	Slots          Slots       `json:"slots"`
	Turns          []TurnEvent `json:"turns"`
	LastAction     Action      `json:"last_action,omitempty"`
	MemoryEnabled  bool        `json:"memory_enabled"`
}
