package listview

import "strings"

// AllValues is the sentinel selection meaning "do not filter this dimension".
const AllValues = "All"

// Filter applies the page's search and categorical predicates to a
// collection. The input is never mutated; the result is always a fresh slice.
// An item passes when the search text is empty or any designated search field
// contains it (case-insensitive), AND every dimension is either unfiltered or
// lists the item's value.
func Filter(items []Item, def PageDefinition, state FilterState) []Item {
	out := make([]Item, 0, len(items))
	search := strings.ToLower(strings.TrimSpace(state.Search))
	for _, item := range items {
		if !matchesSearch(item, def.SearchFields, search) {
			continue
		}
		if !matchesSelections(item, state.Selections) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func matchesSearch(item Item, fields []string, search string) bool {
	if search == "" {
		return true
	}
	for _, field := range fields {
		if strings.Contains(strings.ToLower(item.Text(field)), search) {
			return true
		}
	}
	return false
}

func matchesSelections(item Item, selections map[string][]string) bool {
	for field, values := range selections {
		if isUnfiltered(values) {
			continue
		}
		value := item.Category(field)
		matched := false
		for _, candidate := range values {
			if strings.EqualFold(candidate, value) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}

// isUnfiltered reports whether a selection set leaves the dimension open:
// no values at all, or the UI's "All" default option.
func isUnfiltered(values []string) bool {
	if len(values) == 0 {
		return true
	}
	for _, v := range values {
		if strings.EqualFold(strings.TrimSpace(v), AllValues) {
			return true
		}
	}
	return false
}
