package recommend

import (
	"slices"
	"strings"
	"unicode/utf8"
)

// CuisineGroup names a cluster of related cuisine tags used to broaden a
// keyword that matched nothing directly.
type CuisineGroup string

const (
	GroupHotpot CuisineGroup = "hotpot"
	GroupBBQ    CuisineGroup = "bbq"
	GroupCafe   CuisineGroup = "cafe"
	GroupBar    CuisineGroup = "bar"
)

// cuisineGroups is checked in order; the first group with a matching tag wins.
var cuisineGroups = []struct {
	group CuisineGroup
	tags  []string
}{
	{GroupHotpot, []string{"火鍋", "麻辣鍋", "麻辣", "涮涮鍋", "鍋物", "泰式火鍋", "日式火鍋"}},
	{GroupBBQ, []string{"燒肉", "燒烤", "串燒", "居酒屋"}},
	{GroupCafe, []string{"咖啡", "咖啡廳", "甜點", "早午餐"}},
	{GroupBar, []string{"酒吧", "調酒"}},
}

// ClassifyCuisine resolves keyword to a cuisine group.
// Keywords shorter than two characters or made only of digits are too noisy
// to classify and return false.
func ClassifyCuisine(keyword string) (CuisineGroup, bool) {
	k := strings.TrimSpace(keyword)
	if utf8.RuneCountInString(k) < 2 || isDigits(k) {
		return "", false
	}
	for _, g := range cuisineGroups {
		if slices.ContainsFunc(g.tags, func(tag string) bool { return IncludesLoose(tag, k) }) {
			return g.group, true
		}
	}
	return "", false
}

// GroupTags returns a copy of the representative tags of g, or nil for an unknown group.
func GroupTags(g CuisineGroup) []string {
	for _, cg := range cuisineGroups {
		if cg.group == g {
			return slices.Clone(cg.tags)
		}
	}
	return nil
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}
