package extractor

import (
	"regexp"
	"strings"
)

// DefaultCities seeds the known-city set. The maintenance worker refreshes it
// from the local hotel index at runtime.
var DefaultCities = []string{
	"Colombo", "Galle", "Kandy", "Ella", "Mirissa", "Unawatuna", "Hikkaduwa",
	"Negombo", "Nuwara Eliya", "Sigiriya", "Bentota", "Trincomalee", "Arugam Bay",
	"Tangalle", "Weligama", "Dambulla", "Anuradhapura", "Jaffna", "Pasikudah", "Nilaveli",
}

// HotelWords mark an utterance as hotel-domain.
var HotelWords = []string{
	"hotel", "resort", "villa", "guesthouse", "accommodation",
	"stay", "lodge", "hostel", "apartment",
}

// BookingWords mark price/availability/booking intent.
var BookingWords = []string{
	"price", "prices", "cost", "rate", "rates", "how much",
	"availability", "available", "vacancy", "rooms available",
	"book", "booking", "reserve",
	"check-in", "check in", "check out", "check-out",
	"tonight", "tomorrow", "weekend", "next week", "next month",
	"for 1 night", "for 2 nights", "for 3 nights",
}

// FilterWords are refinement signals that keep a follow-up on the hotel topic.
var FilterWords = []string{
	"cheap", "cheaper", "budget", "luxury", "family", "beach", "pool",
	"best", "romantic", "quiet", "view", "star", "expensive", "closer",
}

var (
	greetingRE  = regexp.MustCompile(`(?i)^\s*((hi|hello|hey)(\s+there)?|good\s+(morning|afternoon|evening)|thanks|thank\s+you|bye|goodbye|see\s+you)[\s!.,?]*$`)
	metaRE      = regexp.MustCompile(`(?i)\b(who\s+are\s+you|what\s+can\s+you\s+do|how\s+do\s+you\s+work|are\s+you\s+(a\s+)?(bot|robot|human)|what\s+is\s+this)\b`)
	injectionRE = regexp.MustCompile(`(?i)(ignore\s+(all\s+|any\s+)?(previous|prior|above)\s+instructions|system\s+prompt|you\s+are\s+now|pretend\s+to\s+be|jailbreak)`)
	offTopicRE  = regexp.MustCompile(`(?i)\b(weather|news|cricket|football|election|politics|stock|recipe|cook|translate|math|homework|joke|song|movie)\b`)

	inPhraseRE = regexp.MustCompile(`(?i)\bin\s+([a-z][a-z]+(?:\s+[a-z]+)?)`)
)

// monthTokens and phraseStopwords keep "in march" / "in the morning" from
// being read as locations.
var monthTokens = map[string]int{
	"jan": 1, "january": 1, "feb": 2, "february": 2, "mar": 3, "march": 3,
	"apr": 4, "april": 4, "may": 5, "jun": 6, "june": 6, "jul": 7, "july": 7,
	"aug": 8, "august": 8, "sep": 9, "sept": 9, "september": 9, "oct": 10,
	"october": 10, "nov": 11, "november": 11, "dec": 12, "december": 12,
}

var phraseStopwords = map[string]bool{
	"the": true, "a": true, "an": true, "my": true, "that": true, "this": true,
	"from": true, "for": true, "with": true, "on": true, "at": true, "next": true,
	"morning": true, "evening": true, "afternoon": true, "town": true,
	"total": true, "general": true, "advance": true, "fact": true,
}

// Date-signal patterns, used both by the fast intent decision and by the
// override layer (does the text imply dates without naming them exactly?).
var dateSignalREs = []*regexp.Regexp{
	regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`),
	regexp.MustCompile(`\b\d{1,2}\s*[-/]\s*\d{1,2}\b`),
	regexp.MustCompile(`(?i)\b(jan|january|feb|february|mar|march|apr|april|may|jun|june|jul|july|aug|august|sep|sept|september|oct|october|nov|november|dec|december)\s+\d{1,2}\b`),
	regexp.MustCompile(`(?i)\b\d{1,2}\s+(jan|january|feb|february|mar|march|apr|april|may|jun|june|jul|july|aug|august|sep|sept|september|oct|october|nov|november|dec|december)\b`),
	regexp.MustCompile(`(?i)\b(check\s?-?in|check\s?-?out)\b`),
	regexp.MustCompile(`(?i)\b(today|tonight|tomorrow|next\s+week|next\s+month|this\s+weekend|weekend)\b`),
}

func containsAny(text string, words []string) bool {
	t := strings.ToLower(text)
	for _, w := range words {
		if strings.Contains(t, w) {
			return true
		}
	}
	return false
}

// MentionsDates reports whether the text carries any date-like signal.
func MentionsDates(text string) bool {
	for _, re := range dateSignalREs {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// HasHotelSignal reports hotel-domain vocabulary in the text.
func HasHotelSignal(text string) bool { return containsAny(text, HotelWords) }

// HasBookingSignal reports booking/price/availability vocabulary in the text.
func HasBookingSignal(text string) bool { return containsAny(text, BookingWords) }

// HasFilterSignal reports refinement vocabulary in the text.
func HasFilterSignal(text string) bool { return containsAny(text, FilterWords) }
