package listview

import "testing"

func TestAggregateSingleRunStats(t *testing.T) {
	stats := Aggregate(stockItems(), stockDefinition())

	if stats.Total != 4 {
		t.Fatalf("expected total 4, got %d", stats.Total)
	}
	if stats.Sum != 14 {
		t.Fatalf("expected quantity sum 14, got %v", stats.Sum)
	}
	if stats.Counts["published"] != 2 {
		t.Fatalf("expected 2 published, got %d", stats.Counts["published"])
	}
	if stats.Counts["active"] != 2 {
		t.Fatalf("expected 2 active, got %d", stats.Counts["active"])
	}
}

func TestAggregateMissingNumericCountsAsZero(t *testing.T) {
	items := []Item{
		{"id": "a", "quantity": 3.0},
		{"id": "b"},
		{"id": "c", "quantity": "not-a-number"},
	}
	stats := Aggregate(items, stockDefinition())
	if stats.Sum != 3 {
		t.Fatalf("expected sum 3, got %v", stats.Sum)
	}
}

func TestAggregateEmptyCollectionZeroesEveryRule(t *testing.T) {
	stats := Aggregate(nil, stockDefinition())
	if stats.Total != 0 || stats.Sum != 0 {
		t.Fatalf("expected zero stats, got %+v", stats)
	}
	for _, name := range []string{"published", "active"} {
		count, ok := stats.Counts[name]
		if !ok {
			t.Fatalf("count rule %q missing from stats", name)
		}
		if count != 0 {
			t.Fatalf("count rule %q should be 0, got %d", name, count)
		}
	}
}

func TestAggregateEqualsRuleIgnoresCase(t *testing.T) {
	items := []Item{
		{"id": "a", "status": "Active"},
		{"id": "b", "status": "ACTIVE"},
		{"id": "c", "status": "inactive"},
	}
	stats := Aggregate(items, stockDefinition())
	if stats.Counts["active"] != 2 {
		t.Fatalf("expected 2 active, got %d", stats.Counts["active"])
	}
}
