package recommend

import (
	"slices"
	"strings"

	"github.com/pkordes/resrv/backend/internal/domain"
)

// Search is the search-as-you-type filter behind the navigation bar.
// A blank query returns the whole catalog. Otherwise a record is kept when its
// name, location, cuisine label, or any cuisine or area tag loosely matches
// the query. Empty fields are skipped so they do not match every query.
func Search(catalog []domain.Restaurant, query string) []domain.Restaurant {
	if strings.TrimSpace(query) == "" {
		return append([]domain.Restaurant{}, catalog...)
	}

	out := []domain.Restaurant{}
	for _, r := range catalog {
		if searchable(r, query) {
			out = append(out, r)
		}
	}
	return out
}

func searchable(r domain.Restaurant, query string) bool {
	fields := []string{r.Name, r.Location, r.Cuisine}
	fields = append(fields, r.Cuisines...)
	fields = append(fields, r.Areas...)
	return slices.ContainsFunc(fields, func(field string) bool {
		return strings.TrimSpace(field) != "" && IncludesLoose(field, query)
	})
}
