package livesearch

import (
	"errors"
	"net/http"
	"strings"
)

// ProviderError is a non-2xx (or unreachable) live-provider outcome.
type ProviderError struct {
	StatusCode int
	Message    string
	Payload    string
}

func (e *ProviderError) Error() string { return e.Message }

// Rate-limit markers seen in RapidAPI error payloads. Substring matching is
// the fallback when the provider does not send a structured 429.
var rateLimitMarkers = []string{
	"rate limit", "ratelimit", "too many requests", "quota", "requests limit",
}

// IsRateLimited classifies a provider failure as a rate-limit/quota event.
// A structured 429 status wins; otherwise the error text is scanned.
func IsRateLimited(err error) bool {
	var pe *ProviderError
	if !errors.As(err, &pe) {
		return false
	}
	if pe.StatusCode == http.StatusTooManyRequests {
		return true
	}
	text := strings.ToLower(pe.Message + " " + pe.Payload)
	for _, marker := range rateLimitMarkers {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}
