package listview

import "strings"

// Aggregate derives summary statistics from a filtered collection in a single
// pass. Count rules always appear in the result, zeroed when nothing matches,
// so render layers can bind labels without nil checks. Missing numeric fields
// contribute 0 to the sum.
func Aggregate(items []Item, def PageDefinition) SummaryStats {
	stats := SummaryStats{
		Total:  len(items),
		Counts: make(map[string]int, len(def.CountRules)),
	}
	for _, rule := range def.CountRules {
		stats.Counts[rule.Name] = 0
	}
	for _, item := range items {
		if def.SumField != "" {
			stats.Sum += item.Number(def.SumField)
		}
		for _, rule := range def.CountRules {
			if ruleMatches(item, rule) {
				stats.Counts[rule.Name]++
			}
		}
	}
	return stats
}

func ruleMatches(item Item, rule CountRule) bool {
	if rule.Equals == "" {
		return item.Flag(rule.Field)
	}
	return strings.EqualFold(item.Text(rule.Field), rule.Equals)
}
