// Package recommend filters the restaurant catalog against loosely-specified
// criteria. Everything here is a pure function of its inputs: no I/O, no
// shared state, and the catalog is never modified.
package recommend

import (
	"slices"
	"strings"

	"github.com/pkordes/resrv/backend/internal/domain"
)

// BudgetTolerance is how far over budget a restaurant may be priced and still pass.
const BudgetTolerance = 100

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// IncludesLoose reports whether a and b loosely match: after trimming and
// lower-casing, either one contains the other. An empty string matches anything.
func IncludesLoose(a, b string) bool {
	a, b = normalize(a), normalize(b)
	if a == "" || b == "" {
		return true
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// MatchInList reports whether keyword is empty or loosely matches at least one tag.
func MatchInList(tags []string, keyword string) bool {
	if strings.TrimSpace(keyword) == "" {
		return true
	}
	return slices.ContainsFunc(tags, func(tag string) bool {
		return IncludesLoose(tag, keyword)
	})
}

// MatchBudget reports whether price fits within budget plus BudgetTolerance.
// A missing price or budget never fails.
func MatchBudget(price, budget *int) bool {
	if !present(budget) || price == nil {
		return true
	}
	return *price-BudgetTolerance <= *budget
}

// MatchPeople reports whether a restaurant seating maxPeople can host people.
// A missing capacity or party size never fails.
func MatchPeople(maxPeople, people *int) bool {
	if !present(people) || maxPeople == nil {
		return true
	}
	return *maxPeople >= *people
}

// present treats zero like absent, so a zero budget or party size adds no constraint.
func present(n *int) bool {
	return n != nil && *n != 0
}

// matchesCategory reports whether r belongs to the category named by keyword,
// checking both the tag list and the singular cuisine label.
// An empty label carries no category information and never matches.
func matchesCategory(r domain.Restaurant, keyword string) bool {
	if MatchInList(r.Cuisines, keyword) {
		return true
	}
	return strings.TrimSpace(r.Cuisine) != "" && IncludesLoose(r.Cuisine, keyword)
}
