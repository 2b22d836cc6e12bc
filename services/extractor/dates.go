package extractor

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"scenery/models"
)

var (
	isoDateRE       = regexp.MustCompile(`\b(\d{4})-(\d{2})-(\d{2})\b`)
	monthDayRangeRE = regexp.MustCompile(`(?i)\b(jan|january|feb|february|mar|march|apr|april|may|jun|june|jul|july|aug|august|sep|sept|september|oct|october|nov|november|dec|december)\s+(\d{1,2})\s*(?:-|–|to|until|till)\s*(\d{1,2})\b`)
	dayRangeMonthRE = regexp.MustCompile(`(?i)\b(\d{1,2})\s*(?:-|–|to|until|till)\s*(\d{1,2})\s+(jan|january|feb|february|mar|march|apr|april|may|jun|june|jul|july|aug|august|sep|sept|september|oct|october|nov|november|dec|december)\b`)
	monthDayRE      = regexp.MustCompile(`(?i)\b(jan|january|feb|february|mar|march|apr|april|may|jun|june|jul|july|aug|august|sep|sept|september|oct|october|nov|november|dec|december)\s+(\d{1,2})\b`)
	dayMonthRE      = regexp.MustCompile(`(?i)\b(\d{1,2})\s+(jan|january|feb|february|mar|march|apr|april|may|jun|june|jul|july|aug|august|sep|sept|september|oct|october|nov|november|dec|december)\b`)

	tonightRE   = regexp.MustCompile(`(?i)\b(tonight|today)\b`)
	tomorrowRE  = regexp.MustCompile(`(?i)\btomorrow\b`)
	weekendRE   = regexp.MustCompile(`(?i)\b(this\s+)?weekend\b`)
	nextWeekRE  = regexp.MustCompile(`(?i)\bnext\s+week\b`)
	nextMonthRE = regexp.MustCompile(`(?i)\bnext\s+month\b`)
)

// dateRule is one (predicate, extractor) pair of the ordered date table.
// Rules run in priority order; the first rule producing a check-in wins.
type dateRule struct {
	name string
	fn   func(text string, now time.Time) (in, out *time.Time)
}

var dateRules = []dateRule{
	{"iso_pair", extractISODates},
	{"month_day_range", extractMonthDayRange},
	{"month_day_pair", extractMonthDayPair},
	{"relative", extractRelativeDates},
}

// ExtractDates resolves the text's date signal to a concrete date pair,
// when possible. Either pointer may be nil.
func ExtractDates(text string, now time.Time) (in, out *time.Time) {
	for _, rule := range dateRules {
		if in, out = rule.fn(text, now); in != nil {
			return in, out
		}
	}
	return nil, nil
}

// FormatDates converts a parsed pair into slot strings.
func FormatDates(in, out *time.Time) (checkIn, checkOut *string) {
	if in != nil {
		checkIn = models.StringPtr(in.Format(models.DateLayout))
	}
	if out != nil {
		checkOut = models.StringPtr(out.Format(models.DateLayout))
	}
	return checkIn, checkOut
}

func extractISODates(text string, now time.Time) (*time.Time, *time.Time) {
	var dates []time.Time
	for _, m := range isoDateRE.FindAllStringSubmatch(text, -1) {
		d, err := time.Parse(models.DateLayout, m[0])
		if err != nil {
			continue
		}
		if len(dates) == 0 || !d.Equal(dates[len(dates)-1]) {
			dates = append(dates, d)
		}
		if len(dates) == 2 {
			break
		}
	}
	switch len(dates) {
	case 0:
		return nil, nil
	case 1:
		return &dates[0], nil
	default:
		return &dates[0], &dates[1]
	}
}

func extractMonthDayRange(text string, now time.Time) (*time.Time, *time.Time) {
	if m := monthDayRangeRE.FindStringSubmatch(text); m != nil {
		month := monthTokens[lower(m[1])]
		d1, _ := strconv.Atoi(m[2])
		d2, _ := strconv.Atoi(m[3])
		return buildRange(month, d1, d2, now)
	}
	if m := dayRangeMonthRE.FindStringSubmatch(text); m != nil {
		month := monthTokens[lower(m[3])]
		d1, _ := strconv.Atoi(m[1])
		d2, _ := strconv.Atoi(m[2])
		return buildRange(month, d1, d2, now)
	}
	return nil, nil
}

// extractMonthDayPair handles "check in March 10 check out March 12" style
// phrasing: two standalone month-day mentions in order.
func extractMonthDayPair(text string, now time.Time) (*time.Time, *time.Time) {
	type hit struct {
		pos   int
		month int
		day   int
	}
	var hits []hit
	for _, idx := range monthDayRE.FindAllStringSubmatchIndex(text, -1) {
		month := monthTokens[lower(text[idx[2]:idx[3]])]
		day, _ := strconv.Atoi(text[idx[4]:idx[5]])
		hits = append(hits, hit{idx[0], month, day})
	}
	for _, idx := range dayMonthRE.FindAllStringSubmatchIndex(text, -1) {
		day, _ := strconv.Atoi(text[idx[2]:idx[3]])
		month := monthTokens[lower(text[idx[4]:idx[5]])]
		hits = append(hits, hit{idx[0], month, day})
	}
	if len(hits) == 0 {
		return nil, nil
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].pos < hits[j].pos })
	first := civilDate(now.Year(), hits[0].month, hits[0].day)
	first = rollForward(first, now)
	if len(hits) == 1 {
		return &first, nil
	}
	second := civilDate(first.Year(), hits[1].month, hits[1].day)
	if second.Before(first) {
		second = second.AddDate(1, 0, 0)
	}
	return &first, &second
}

func extractRelativeDates(text string, now time.Time) (*time.Time, *time.Time) {
	today := civilDate(now.Year(), int(now.Month()), now.Day())
	switch {
	case tonightRE.MatchString(text):
		out := today.AddDate(0, 0, 1)
		return &today, &out
	case tomorrowRE.MatchString(text):
		in := today.AddDate(0, 0, 1)
		out := today.AddDate(0, 0, 2)
		return &in, &out
	case nextWeekRE.MatchString(text):
		in := today.AddDate(0, 0, daysUntil(today, time.Monday, false))
		out := in.AddDate(0, 0, 2)
		return &in, &out
	case nextMonthRE.MatchString(text):
		in := civilDate(today.Year(), int(today.Month()), 1).AddDate(0, 1, 0)
		out := in.AddDate(0, 0, 2)
		return &in, &out
	case weekendRE.MatchString(text):
		in := today.AddDate(0, 0, daysUntil(today, time.Saturday, true))
		out := in.AddDate(0, 0, 1)
		return &in, &out
	}
	return nil, nil
}

func buildRange(month, d1, d2 int, now time.Time) (*time.Time, *time.Time) {
	in := rollForward(civilDate(now.Year(), month, d1), now)
	out := civilDate(in.Year(), month, d2)
	if !out.After(in) {
		out = out.AddDate(0, 1, 0)
	}
	return &in, &out
}

// rollForward pushes a parsed date a year ahead when it landed more than 30
// days in the past ("Feb 10" spoken in December means next February).
func rollForward(d, now time.Time) time.Time {
	if now.Sub(d) > 30*24*time.Hour {
		return d.AddDate(1, 0, 0)
	}
	return d
}

func civilDate(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// daysUntil returns the day offset to the next given weekday. With
// allowToday, a matching current day yields 0.
func daysUntil(today time.Time, wd time.Weekday, allowToday bool) int {
	diff := (int(wd) - int(today.Weekday()) + 7) % 7
	if diff == 0 && !allowToday {
		diff = 7
	}
	return diff
}

func lower(s string) string { return strings.ToLower(s) }
