package extractor

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// resolveLocation tries, in order: exact city match, fuzzy city match,
// an "in <phrase>" pattern, then the caller-supplied fallback.
func (e *FastExtractor) resolveLocation(text, fallback string) (string, bool) {
	lowered := strings.ToLower(text)
	cities := e.Cities()

	// Exact match, longest city name first so "Nuwara Eliya" beats "Ella"
	// as a substring candidate.
	best := ""
	for _, city := range cities {
		if containsWord(lowered, strings.ToLower(city)) && len(city) > len(best) {
			best = city
		}
	}
	if best != "" {
		return best, true
	}

	if city, ok := fuzzyCity(lowered, cities); ok {
		return city, true
	}

	if m := inPhraseRE.FindStringSubmatch(text); m != nil {
		if phrase, ok := cleanPhrase(m[1]); ok {
			return phrase, true
		}
	}

	if fallback != "" {
		return fallback, true
	}
	return "", false
}

// fuzzyCity tolerates small typos ("colmbo", "kandi") via edit distance over
// the utterance tokens.
func fuzzyCity(lowered string, cities []string) (string, bool) {
	tokens := tokenize(lowered)
	bestCity := ""
	bestDist := 3
	for _, city := range cities {
		target := strings.ToLower(city)
		for _, tok := range tokens {
			if len(tok) < 4 || abs(len(tok)-len(target)) > 2 {
				continue
			}
			if d := levenshtein.ComputeDistance(tok, target); d < bestDist {
				bestCity, bestDist = city, d
			}
		}
		// Two-word cities compare against token bigrams.
		if strings.Contains(target, " ") {
			for _, big := range bigrams(tokens) {
				if d := levenshtein.ComputeDistance(big, target); d < bestDist {
					bestCity, bestDist = city, d
				}
			}
		}
	}
	return bestCity, bestCity != ""
}

// cleanPhrase validates an "in <phrase>" capture: month names and stopwords
// are not places.
func cleanPhrase(phrase string) (string, bool) {
	words := strings.Fields(strings.ToLower(phrase))
	var kept []string
	for _, w := range words {
		if _, isMonth := monthTokens[w]; isMonth {
			break
		}
		if phraseStopwords[w] {
			break
		}
		kept = append(kept, w)
		if len(kept) == 2 {
			break
		}
	}
	if len(kept) == 0 {
		return "", false
	}
	return titleCase(strings.Join(kept, " ")), true
}

func containsWord(haystack, needle string) bool {
	idx := strings.Index(haystack, needle)
	for idx >= 0 {
		beforeOK := idx == 0 || !isLetter(haystack[idx-1])
		after := idx + len(needle)
		afterOK := after == len(haystack) || !isLetter(haystack[after])
		if beforeOK && afterOK {
			return true
		}
		next := strings.Index(haystack[idx+1:], needle)
		if next < 0 {
			return false
		}
		idx += 1 + next
	}
	return false
}

func tokenize(lowered string) []string {
	return strings.FieldsFunc(lowered, func(r rune) bool {
		return !(r >= 'a' && r <= 'z')
	})
}

func bigrams(tokens []string) []string {
	var out []string
	for i := 0; i+1 < len(tokens); i++ {
		out = append(out, tokens[i]+" "+tokens[i+1])
	}
	return out
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
