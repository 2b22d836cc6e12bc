package session

import (
	"context"

	"scenery/models"
)

// Store persists per-session conversation state between turns.
type Store interface {
	// Get loads the session context, returning a fresh default context for
	// unknown or expired sessions. Never fails the turn.
	Get(ctx context.Context, sessionID string) models.SessionContext

	// SaveTurn merges the turn's slots into the session, appends the user
	// and assistant events, and rewrites the session with a refreshed TTL.
	SaveTurn(ctx context.Context, turn Turn, existing models.SessionContext) models.SessionContext
}

// Turn is the per-turn write: what the user said and how we answered.
type Turn struct {
	SessionID     string
	UserText      string
	AssistantText string
	Action        models.Action
	Slots         models.Slots
}
