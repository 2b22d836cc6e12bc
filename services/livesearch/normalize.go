package livesearch

import (
	"scenery/models"

	"github.com/tidwall/gjson"
)

// normalizeHotels trims the provider's nested response down to the fields
// the ranking and explanation layers use.
func normalizeHotels(body []byte, limit int) []models.Hotel {
	items := gjson.GetBytes(body, "data.data")
	if !items.IsArray() {
		items = gjson.GetBytes(body, "data")
	}

	var out []models.Hotel
	items.ForEach(func(_, h gjson.Result) bool {
		name := h.Get("title").String()
		if name == "" {
			name = h.Get("name").String()
		}
		price := h.Get("priceForDisplay").String()
		if price == "" {
			price = h.Get("price.display").String()
		}
		out = append(out, models.Hotel{
			Name:      name,
			Rating:    h.Get("bubbleRating.rating").Float(),
			Reviews:   int(h.Get("bubbleRating.count").Int()),
			Price:     price,
			Provider:  h.Get("provider").String(),
			Sponsored: h.Get("isSponsored").Bool(),
			Source:    "rapidapi",
		})
		return len(out) < limit
	})
	return out
}
