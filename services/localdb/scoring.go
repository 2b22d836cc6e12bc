package localdb

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

var (
	priceNumRE   = regexp.MustCompile(`(\d[\d,]*)`)
	luxuryHintRE = regexp.MustCompile(`(?i)\b(luxury|premium|upscale|high[-\s]?end|5[-\s]?star|five[-\s]?star)\b`)
	familyHintRE = regexp.MustCompile(`(?i)\b(family[-\s]?friendly|family|kids?|children|child)\b`)
)

// extractPriceNumber parses the first number-like token out of a price_range
// text such as "LKR 25,000".
func extractPriceNumber(priceText string) (int, bool) {
	m := priceNumRE.FindStringSubmatch(priceText)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", ""))
	if err != nil {
		return 0, false
	}
	return n, true
}

// preferenceScore counts luxury/family hints in a row's descriptive text
// when the user request asked for them. Zero when the request carries no
// such preference.
func preferenceScore(h Hotel, userRequest string) int {
	wantsLuxury := luxuryHintRE.MatchString(userRequest)
	wantsFamily := familyHintRE.MatchString(userRequest)
	if !wantsLuxury && !wantsFamily {
		return 0
	}

	parts := []string{
		strings.ToLower(h.Name),
		strings.ToLower(h.PrimaryInfo),
		strings.ToLower(h.SecondaryInfo),
		strings.ToLower(h.Description),
	}
	if raw := strings.TrimSpace(h.AmenitiesJSON); raw != "" {
		var amenities []any
		if err := json.Unmarshal([]byte(raw), &amenities); err == nil {
			for _, a := range amenities {
				if s, ok := a.(string); ok {
					parts = append(parts, strings.ToLower(s))
				}
			}
		} else {
			parts = append(parts, strings.ToLower(raw))
		}
	}
	content := strings.Join(parts, " ")

	score := 0
	if wantsLuxury {
		score += len(luxuryHintRE.FindAllString(content, -1))
	}
	if wantsFamily {
		score += len(familyHintRE.FindAllString(content, -1))
	}
	return score
}
