package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"scenery/models"
	"scenery/services/decision"
	"scenery/utils"
)

// ChatHandler serves one conversational turn.
func ChatHandler(engine *decision.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.TurnRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid request body", err.Error())
			return
		}
		if strings.TrimSpace(req.Query) == "" {
			utils.JSONError(c, http.StatusBadRequest, "query must not be empty", "")
			return
		}

		resp, err := engine.HandleTurn(c.Request.Context(), req)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, err.Error(), "")
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}
