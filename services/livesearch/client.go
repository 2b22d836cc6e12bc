package livesearch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"scenery/models"
)

const (
	searchPath   = "/api/v1/hotels/searchHotels"
	defaultSort  = "BEST_VALUE"
	defaultLimit = 10
)

// QueryOptions are the optional live-search filters.
type QueryOptions struct {
	Adults   int
	Rooms    int
	Rating   *int
	PriceMin *int
	PriceMax *int
	Limit    int
}

// Client calls the TripAdvisor RapidAPI hotel search.
type Client struct {
	httpClient *http.Client
	baseURL    string
	key        string
	host       string
	currency   string
}

func NewClient(key, host, currency string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    "https://" + host,
		key:        key,
		host:       host,
		currency:   currency,
	}
}

// SetBaseURL overrides the provider endpoint (tests point it at a local server).
func (c *Client) SetBaseURL(base string) { c.baseURL = base }

// Query fetches live hotel offers for a geo id and date pair.
func (c *Client) Query(ctx context.Context, geoID int, checkIn, checkOut string, opts QueryOptions) ([]models.Hotel, error) {
	if c.key == "" || c.host == "" {
		return nil, &ProviderError{
			StatusCode: http.StatusInternalServerError,
			Message:    "rapidapi credentials missing (RAPIDAPI_KEY / RAPIDAPI_HOST)",
		}
	}

	adults, rooms := opts.Adults, opts.Rooms
	if adults <= 0 {
		adults = 2
	}
	if rooms <= 0 {
		rooms = 1
	}

	params := url.Values{}
	params.Set("geoId", strconv.Itoa(geoID))
	params.Set("checkIn", checkIn)
	params.Set("checkOut", checkOut)
	params.Set("pageNumber", "1")
	params.Set("sort", defaultSort)
	params.Set("adults", strconv.Itoa(adults))
	params.Set("rooms", strconv.Itoa(rooms))
	params.Set("currencyCode", c.currency)
	if opts.Rating != nil {
		params.Set("rating", strconv.Itoa(*opts.Rating))
	}
	if opts.PriceMin != nil {
		params.Set("priceMin", strconv.Itoa(*opts.PriceMin))
	}
	if opts.PriceMax != nil {
		params.Set("priceMax", strconv.Itoa(*opts.PriceMax))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+searchPath+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build live search request: %w", err)
	}
	req.Header.Set("X-RapidAPI-Key", c.key)
	req.Header.Set("X-RapidAPI-Host", c.host)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ProviderError{
			StatusCode: http.StatusBadGateway,
			Message:    fmt.Sprintf("live search request failed: %v", err),
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read live search response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, &ProviderError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("rapidapi error %d calling searchHotels", resp.StatusCode),
			Payload:    string(body),
		}
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	return normalizeHotels(body, limit), nil
}
