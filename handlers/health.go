package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"scenery/utils"
)

// HealthHandler reports dependency health from the background monitor.
func HealthHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		status := utils.GetHealthStatus()
		code := http.StatusOK
		if !status.Redis || !status.LocalIndex {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{
			"status":     statusWord(code),
			"redis":      status.Redis,
			"localIndex": status.LocalIndex,
			"checkedAt":  status.CheckedAt,
		})
	}
}

func statusWord(code int) string {
	if code == http.StatusOK {
		return "ok"
	}
	return "degraded"
}
