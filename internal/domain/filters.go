package domain

// Filters are the loosely-specified criteria for one recommendation request.
// Empty strings and nil numbers mean "not specified".
type Filters struct {
	Area     string `json:"area,omitempty"`
	Cuisine  string `json:"cuisine,omitempty"`
	Occasion string `json:"occasion,omitempty"`
	Budget   *int   `json:"budget,omitempty"`
	People   *int   `json:"people,omitempty"`
}

// Mode reports which path produced a set of Buckets.
type Mode string

const (
	// ModeStrict means Matched holds every record passing the area/cuisine check.
	ModeStrict Mode = "strict"
	// ModeFallback means nothing matched strictly and Others holds same-category picks.
	ModeFallback Mode = "fallback"
)

// Buckets is the result of a recommendation: strict matches and same-category fallbacks.
// At most one of Matched and Others is non-empty.
type Buckets struct {
	Matched []Restaurant
	Others  []Restaurant
	Mode    Mode
}
