package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"scenery/models"
	"scenery/services/geo"
	"scenery/services/livesearch"
	"scenery/utils"
)

// LiveInsightsHandler queries the live pricing provider directly. Provider
// errors pass through with their upstream status code.
func LiveInsightsHandler(client *livesearch.Client, resolver *geo.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		location := strings.TrimSpace(c.Query("location"))
		checkIn := c.Query("checkIn")
		checkOut := c.Query("checkOut")
		if location == "" || checkIn == "" || checkOut == "" {
			utils.JSONError(c, http.StatusBadRequest, "location, checkIn and checkOut are required", "")
			return
		}

		in, errIn := time.Parse(models.DateLayout, checkIn)
		out, errOut := time.Parse(models.DateLayout, checkOut)
		if errIn != nil || errOut != nil {
			utils.JSONError(c, http.StatusUnprocessableEntity, "dates must be YYYY-MM-DD", "")
			return
		}
		if !out.After(in) {
			utils.JSONError(c, http.StatusUnprocessableEntity, "checkOut must be after checkIn", "")
			return
		}

		geoRes := resolver.Resolve(location)
		if !geoRes.Known() {
			utils.JSONError(c, http.StatusUnprocessableEntity, "unknown location: "+location, "")
			return
		}

		opts := livesearch.QueryOptions{}
		if v := c.Query("adults"); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				opts.Adults = n
			}
		}
		if v := c.Query("rooms"); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				opts.Rooms = n
			}
		}

		results, err := client.Query(c.Request.Context(), geoRes.GeoID, checkIn, checkOut, opts)
		if err != nil {
			var pe *livesearch.ProviderError
			if errors.As(err, &pe) {
				utils.JSONError(c, pe.StatusCode, pe.Message, "")
				return
			}
			utils.JSONError(c, http.StatusBadGateway, "live provider request failed", err.Error())
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"source":  "rapidapi",
			"geo":     gin.H{"geoId": geoRes.GeoID, "normalized": geoRes.Normalized, "strategy": geoRes.Strategy},
			"count":   len(results),
			"results": results,
		})
	}
}
