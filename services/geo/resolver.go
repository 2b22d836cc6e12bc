package geo

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// Resolution strategies, reported back to the caller.
const (
	StrategyDirectID = "direct_id"
	StrategyMap      = "map"
	StrategyContains = "contains"
	StrategyUnknown  = "unknown"
)

// Result is the outcome of resolving a user location string.
type Result struct {
	GeoID      int
	Normalized string
	Strategy   string
}

// Known reports whether resolution produced a usable provider id.
func (r Result) Known() bool { return r.GeoID != 0 }

// defaultGeoIDs maps supported cities to TripAdvisor geo ids.
var defaultGeoIDs = map[string]int{
	"colombo":      293962,
	"kandy":        304138,
	"galle":        189825,
	"ella":         616035,
	"nuwara eliya": 608524,
	"sigiriya":     304141,
	"mirissa":      1407334,
	"negombo":      297897,
	"trincomalee":  424963,
	"arugam bay":   3348959,
	"jaffna":       304135,
	"hambantota":   424962,
	"anuradhapura": 304132,
	"polonnaruwa":  304139,
	"chilaw":       447558,
}

var nonAlnumRE = regexp.MustCompile(`[^a-z0-9\s]`)
var spacesRE = regexp.MustCompile(`\s+`)

// Resolver converts user location strings into provider geo ids.
type Resolver struct {
	mu      sync.RWMutex
	geoIDs  map[string]int
	ordered []string
}

func NewResolver() *Resolver {
	ids := make(map[string]int, len(defaultGeoIDs))
	ordered := make([]string, 0, len(defaultGeoIDs))
	for k, v := range defaultGeoIDs {
		ids[k] = v
		ordered = append(ordered, k)
	}
	// Longest name first so substring resolution is deterministic and a
	// short city name cannot shadow a longer one it is embedded in.
	sort.Slice(ordered, func(i, j int) bool {
		if len(ordered[i]) != len(ordered[j]) {
			return len(ordered[i]) > len(ordered[j])
		}
		return ordered[i] < ordered[j]
	})
	return &Resolver{geoIDs: ids, ordered: ordered}
}

// Resolve turns a location string into a geo id, trying a direct numeric id,
// an exact map hit, then a substring hit ("hotels in colombo").
func (r *Resolver) Resolve(location string) Result {
	raw := strings.TrimSpace(location)
	if raw == "" {
		return Result{Strategy: StrategyUnknown}
	}

	if id, err := strconv.Atoi(raw); err == nil {
		return Result{GeoID: id, Normalized: raw, Strategy: StrategyDirectID}
	}

	norm := normalize(raw)

	r.mu.RLock()
	defer r.mu.RUnlock()

	if id, ok := r.geoIDs[norm]; ok {
		return Result{GeoID: id, Normalized: norm, Strategy: StrategyMap}
	}

	for _, city := range r.ordered {
		if strings.Contains(norm, city) {
			return Result{GeoID: r.geoIDs[city], Normalized: city, Strategy: StrategyContains}
		}
	}

	return Result{Normalized: norm, Strategy: StrategyUnknown}
}

// KnownCities lists the resolvable city names, title-cased.
func (r *Resolver) KnownCities() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.geoIDs))
	for city := range r.geoIDs {
		out = append(out, titleCase(city))
	}
	return out
}

func normalize(text string) string {
	t := strings.ToLower(strings.TrimSpace(text))
	t = nonAlnumRE.ReplaceAllString(t, " ")
	t = spacesRE.ReplaceAllString(t, " ")
	return strings.TrimSpace(t)
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
