package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Conversational endpoints
	ChatHandler     gin.HandlerFunc
	VoiceAskHandler gin.HandlerFunc

	// Direct insight endpoints
	LocalInsightsHandler gin.HandlerFunc
	LiveInsightsHandler  gin.HandlerFunc

	// Ops endpoints
	HealthHandler gin.HandlerFunc
}
