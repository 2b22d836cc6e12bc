package models

// DateLayout is the wire format for check-in/check-out dates.
const DateLayout = "2006-01-02"

// Slots holds the typed, optionally-present fields extracted from user text.
// A nil pointer means the field was not mentioned this turn.
type Slots struct {
	Location *string `json:"location,omitempty"`
	CheckIn  *string `json:"check_in,omitempty"`
	CheckOut *string `json:"check_out,omitempty"`
	Adults   *int    `json:"adults,omitempty"`
	Rooms    *int    `json:"rooms,omitempty"`
	PriceMin *int    `json:"price_min,omitempty"`
	PriceMax *int    `json:"price_max,omitempty"`
	Rating   *int    `json:"rating,omitempty"`
}

// Merge fills only the empty fields of s from prior. Values already present
// this turn are never replaced.
func (s Slots) Merge(prior Slots) Slots {
	out := s
	if out.Location == nil {
		out.Location = prior.Location
	}
	if out.CheckIn == nil {
		out.CheckIn = prior.CheckIn
	}
	if out.CheckOut == nil {
		out.CheckOut = prior.CheckOut
	}
	if out.Adults == nil {
		out.Adults = prior.Adults
	}
	if out.Rooms == nil {
		out.Rooms = prior.Rooms
	}
	if out.PriceMin == nil {
		out.PriceMin = prior.PriceMin
	}
	if out.PriceMax == nil {
		out.PriceMax = prior.PriceMax
	}
	if out.Rating == nil {
		out.Rating = prior.Rating
	}
	return out
}

// HasDates reports whether both check-in and check-out are present.
func (s Slots) HasDates() bool {
	return s.CheckIn != nil && s.CheckOut != nil
}

// LocationOrEmpty returns the location slot or "".
func (s Slots) LocationOrEmpty() string {
	if s.Location == nil {
		return ""
	}
	return *s.Location
}

// StringPtr returns a pointer to v.
func StringPtr(v string) *string { return &v }

// IntPtr returns a pointer to v.
func IntPtr(v int) *int { return &v }
