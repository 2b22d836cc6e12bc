package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"scenery/services/generation"
	"scenery/utils"
)

const (
	voiceMaxTokens   = 256
	voiceTemperature = 0.6
)

// VoiceAskHandler answers a free-form spoken prompt through the generation
// failover chain. Responses stay short so they read well aloud.
func VoiceAskHandler(gen *generation.Failover) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Prompt string `json:"prompt" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "prompt is required", err.Error())
			return
		}
		if strings.TrimSpace(req.Prompt) == "" {
			utils.JSONError(c, http.StatusBadRequest, "prompt must not be empty", "")
			return
		}

		answer, err := gen.Generate(c.Request.Context(), req.Prompt, voiceMaxTokens, voiceTemperature)
		if err != nil {
			utils.JSONError(c, http.StatusBadGateway, "generation unavailable", err.Error())
			return
		}
		if strings.TrimSpace(answer) == "" {
			utils.JSONError(c, http.StatusBadGateway, "generation returned no text", "")
			return
		}
		c.JSON(http.StatusOK, gin.H{"answer": answer})
	}
}
