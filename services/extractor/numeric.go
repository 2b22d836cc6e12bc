package extractor

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	currencyWordsRE = regexp.MustCompile(`(?i)(lkr|rs\.?|rup|rupees|usd|\$)`)
	moneyRE         = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*([kK])?`)

	betweenRE = regexp.MustCompile(`(?i)(between|from)\s+(\S+)\s+(and|to)\s+(\S+)`)
	underRE   = regexp.MustCompile(`(?i)(under|below|less than|up to)\s+(\S+)`)
	aboveRE   = regexp.MustCompile(`(?i)(above|more than|over|at least)\s+(\S+)`)

	adultsRE = regexp.MustCompile(`(?i)\b(\d+)\s*(adults?|people|persons?|guests?)\b`)
	roomsRE  = regexp.MustCompile(`(?i)\b(\d+)\s*(rooms?)\b`)

	ratingNumRE  = regexp.MustCompile(`(?i)\b([0-5])\s*[- ]?star`)
	ratingWordRE = regexp.MustCompile(`(?i)\b(one|two|three|four|five)\s*[- ]?star`)
)

var ratingWords = map[string]int{"one": 1, "two": 2, "three": 3, "four": 4, "five": 5}

// looksLikeDateToken rejects money candidates that are really dates, so
// "from 2026-03-10 to 2026-03-12" never becomes a price range.
var looksLikeDateToken = regexp.MustCompile(`^\d{1,4}([-/]\d{1,2}){1,2}$`)

// NormalizeMoney parses "25,000", "12.5k", "rs 25000" into an integer amount.
func NormalizeMoney(token string) *int {
	t := strings.TrimSpace(token)
	t = strings.ReplaceAll(t, ",", "")
	t = strings.TrimSpace(currencyWordsRE.ReplaceAllString(t, ""))
	if looksLikeDateToken.MatchString(t) {
		return nil
	}
	m := moneyRE.FindStringSubmatch(t)
	if m == nil {
		return nil
	}
	val, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return nil
	}
	if m[2] != "" {
		val *= 1000
	}
	out := int(val)
	return &out
}

// ExtractBudget resolves a price range from between/under/over phrasing.
// An inverted "between" pair is swapped, not rejected.
func ExtractBudget(text string) (priceMin, priceMax *int) {
	q := strings.ToLower(text)

	if m := betweenRE.FindStringSubmatch(q); m != nil {
		a, b := NormalizeMoney(m[2]), NormalizeMoney(m[4])
		if a != nil && b != nil {
			if *a > *b {
				a, b = b, a
			}
			return a, b
		}
	}
	if m := underRE.FindStringSubmatch(q); m != nil {
		if mx := NormalizeMoney(m[2]); mx != nil {
			return nil, mx
		}
	}
	if m := aboveRE.FindStringSubmatch(q); m != nil {
		if mn := NormalizeMoney(m[2]); mn != nil {
			return mn, nil
		}
	}
	return nil, nil
}

// ExtractPeopleRooms resolves adults and rooms counts.
func ExtractPeopleRooms(text string) (adults, rooms *int) {
	if m := adultsRE.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			adults = &n
		}
	}
	if m := roomsRE.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			rooms = &n
		}
	}
	return adults, rooms
}

// ExtractRating resolves a numeric or worded star rating.
func ExtractRating(text string) *int {
	if m := ratingNumRE.FindStringSubmatch(text); m != nil {
		n, _ := strconv.Atoi(m[1])
		return &n
	}
	if m := ratingWordRE.FindStringSubmatch(text); m != nil {
		n := ratingWords[strings.ToLower(m[1])]
		return &n
	}
	return nil
}
