// Package domain contains the core data types for the Resrv recommendation API.
// This package has zero external dependencies and is imported by every other
// internal package (recommend, repo, service, handler).
package domain

// Restaurant is one entry of the read-only restaurant catalog.
// Price, MaxPeople and Rating are nil when the catalog has no value for them;
// a nil numeric field never fails a filter.
type Restaurant struct {
	ID        int64    `json:"id" yaml:"id"`
	Name      string   `json:"name" yaml:"name"`
	Location  string   `json:"location" yaml:"location"`
	Cuisine   string   `json:"cuisine" yaml:"cuisine"`
	Cuisines  []string `json:"cuisines" yaml:"cuisines"`
	Areas     []string `json:"areas" yaml:"areas"`
	Occasions []string `json:"occasions" yaml:"occasions"`
	Price     *int     `json:"price,omitempty" yaml:"price,omitempty"`
	MaxPeople *int     `json:"maxPeople,omitempty" yaml:"maxPeople,omitempty"`
	Rating    *float64 `json:"rating,omitempty" yaml:"rating,omitempty"`
}
