package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"scenery/services/localdb"
	"scenery/utils"
)

// LocalInsightsHandler queries the local hotel index directly, bypassing the
// conversational pipeline.
func LocalInsightsHandler(repo *localdb.Repo) gin.HandlerFunc {
	return func(c *gin.Context) {
		location := strings.TrimSpace(c.Query("location"))
		if location == "" {
			utils.JSONError(c, http.StatusBadRequest, "location is required", "")
			return
		}

		opts := localdb.SearchOptions{UserRequest: c.Query("request")}
		if v := c.Query("rating"); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				opts.Rating = &n
			}
		}
		if v := c.Query("priceMin"); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				opts.PriceMin = &n
			}
		}
		if v := c.Query("priceMax"); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				opts.PriceMax = &n
			}
		}
		if v := c.Query("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				opts.Limit = n
			}
		}
		if opts.PriceMin != nil && opts.PriceMax != nil && *opts.PriceMin > *opts.PriceMax {
			utils.JSONError(c, http.StatusUnprocessableEntity, "priceMin must not exceed priceMax", "")
			return
		}

		results, err := repo.Search(c.Request.Context(), location, opts)
		if err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "hotel index query failed", err.Error())
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"source":  "local_db",
			"count":   len(results),
			"results": results,
		})
	}
}
