package recommend

import (
	"cmp"
	"slices"
	"strings"

	"github.com/pkordes/resrv/backend/internal/domain"
)

// Recommend splits catalog into strict matches and same-category fallbacks.
//
// With nil criteria every record is returned in catalog order. Otherwise a
// record matches strictly when it satisfies each non-empty area and cuisine
// keyword. Only when nothing matches strictly does Recommend look for records
// of the same cuisine, first directly and then through the cuisine group the
// keyword belongs to. Both buckets are ranked by Score, keeping catalog order
// among equal scores. The returned slices are never nil.
func Recommend(catalog []domain.Restaurant, criteria *domain.Filters) domain.Buckets {
	if criteria == nil {
		return domain.Buckets{
			Matched: append([]domain.Restaurant{}, catalog...),
			Others:  []domain.Restaurant{},
			Mode:    domain.ModeStrict,
		}
	}

	var matched []domain.Restaurant
	for _, r := range catalog {
		if MatchInList(r.Areas, criteria.Area) && MatchInList(r.Cuisines, criteria.Cuisine) {
			matched = append(matched, r)
		}
	}
	if len(matched) > 0 {
		return domain.Buckets{
			Matched: rank(matched, criteria),
			Others:  []domain.Restaurant{},
			Mode:    domain.ModeStrict,
		}
	}

	// The strict set is empty here, so the fallback pool needs no de-duplication.
	others := fallbackPool(catalog, criteria.Cuisine)

	return domain.Buckets{
		Matched: []domain.Restaurant{},
		Others:  rank(others, criteria),
		Mode:    domain.ModeFallback,
	}
}

// fallbackPool collects records sharing the cuisine keyword's category.
func fallbackPool(catalog []domain.Restaurant, cuisine string) []domain.Restaurant {
	keyword := strings.TrimSpace(cuisine)
	if keyword == "" {
		return nil
	}

	pool := filter(catalog, func(r domain.Restaurant) bool {
		return matchesCategory(r, keyword)
	})
	if len(pool) > 0 {
		return pool
	}

	group, ok := ClassifyCuisine(keyword)
	if !ok {
		return nil
	}
	tags := GroupTags(group)
	return filter(catalog, func(r domain.Restaurant) bool {
		return slices.ContainsFunc(tags, func(tag string) bool { return matchesCategory(r, tag) })
	})
}

// Score weighs how well r fits f. Area and cuisine hits count most, then
// occasion, then the numeric filters; rating breaks the remaining ties.
func Score(r domain.Restaurant, f *domain.Filters) float64 {
	if f == nil {
		return 0
	}
	var score float64
	if strings.TrimSpace(f.Area) != "" && MatchInList(r.Areas, f.Area) {
		score += 3
	}
	if strings.TrimSpace(f.Cuisine) != "" && MatchInList(r.Cuisines, f.Cuisine) {
		score += 3
	}
	if strings.TrimSpace(f.Occasion) != "" && MatchInList(r.Occasions, f.Occasion) {
		score += 2
	}
	if present(f.Budget) && MatchBudget(r.Price, f.Budget) {
		score++
	}
	if present(f.People) && MatchPeople(r.MaxPeople, f.People) {
		score++
	}
	if r.Rating != nil {
		score += *r.Rating * 0.1
	}
	return score
}

type scored struct {
	r     domain.Restaurant
	score float64
}

// rank returns records sorted by descending Score. The sort is stable.
func rank(records []domain.Restaurant, f *domain.Filters) []domain.Restaurant {
	items := make([]scored, len(records))
	for i, r := range records {
		items[i] = scored{r: r, score: Score(r, f)}
	}
	slices.SortStableFunc(items, func(a, b scored) int {
		return cmp.Compare(b.score, a.score)
	})

	out := make([]domain.Restaurant, len(items))
	for i, it := range items {
		out[i] = it.r
	}
	return out
}

func filter(catalog []domain.Restaurant, keep func(domain.Restaurant) bool) []domain.Restaurant {
	var out []domain.Restaurant
	for _, r := range catalog {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}
