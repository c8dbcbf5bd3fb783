package listview

import "testing"

func stockDefinition() PageDefinition {
	return PageDefinition{
		Code:         "test.page.stock",
		Name:         "Stock",
		Resource:     "products",
		SearchFields: []string{"name", "id", "category"},
		Dimensions: []Dimension{
			{Field: "category", Label: "Category"},
			{Field: "status", Label: "Status"},
		},
		SumField: "quantity",
		CountRules: []CountRule{
			{Name: "published", Field: "is_published"},
			{Name: "active", Field: "status", Equals: "active"},
		},
	}
}

func stockItems() []Item {
	return []Item{
		{"id": "p1", "name": "Aurora Pendant", "category": "Pendant", "status": "active", "quantity": 4.0, "is_published": true},
		{"id": "p2", "name": "Halo Ceiling", "category": "Ceiling", "status": "active", "quantity": 2.0, "is_published": false},
		{"id": "p3", "name": "Lumen Desk", "category": "Desk", "status": "inactive", "quantity": 7.0, "is_published": true},
		{"id": "p4", "name": "Nimbus Pendant", "category": "Pendant", "status": "inactive", "quantity": 1.0},
	}
}

func TestFilterSearchCaseInsensitiveSubstring(t *testing.T) {
	def := stockDefinition()
	items := stockItems()

	got := Filter(items, def, FilterState{Search: "PENDANT"})
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(got))
	}
	if got[0].ID() != "p1" || got[1].ID() != "p4" {
		t.Fatalf("unexpected matches: %s %s", got[0].ID(), got[1].ID())
	}

	// Search also covers the category field for this page.
	got = Filter(items, def, FilterState{Search: "desk"})
	if len(got) != 1 || got[0].ID() != "p3" {
		t.Fatalf("expected p3 via category search, got %v", got)
	}
}

func TestFilterEmptySearchMatchesEverything(t *testing.T) {
	items := stockItems()
	got := Filter(items, stockDefinition(), FilterState{Search: "   "})
	if len(got) != len(items) {
		t.Fatalf("expected all %d items, got %d", len(items), len(got))
	}
}

func TestFilterSelectionsAreConjunctive(t *testing.T) {
	def := stockDefinition()
	items := stockItems()

	got := Filter(items, def, FilterState{Selections: map[string][]string{
		"category": {"Pendant"},
		"status":   {"active"},
	}})
	if len(got) != 1 || got[0].ID() != "p1" {
		t.Fatalf("expected only p1, got %v", got)
	}
}

func TestFilterAllSentinelLeavesDimensionOpen(t *testing.T) {
	def := stockDefinition()
	items := stockItems()

	for _, values := range [][]string{nil, {}, {"All"}, {"all"}, {" ALL "}, {"Pendant", "All"}} {
		got := Filter(items, def, FilterState{Selections: map[string][]string{"category": values}})
		if len(got) != len(items) {
			t.Fatalf("selection %v should not filter, got %d items", values, len(got))
		}
	}
}

func TestFilterMembershipIsCaseInsensitive(t *testing.T) {
	got := Filter(stockItems(), stockDefinition(), FilterState{Selections: map[string][]string{
		"status": {"ACTIVE"},
	}})
	if len(got) != 2 {
		t.Fatalf("expected 2 active items, got %d", len(got))
	}
}

func TestFilterMissingCategoryMatchesUncategorized(t *testing.T) {
	items := []Item{
		{"id": "x1", "name": "No Category"},
		{"id": "x2", "name": "Tagged", "category": "Pendant"},
	}
	got := Filter(items, stockDefinition(), FilterState{Selections: map[string][]string{
		"category": {UncategorizedLabel},
	}})
	if len(got) != 1 || got[0].ID() != "x1" {
		t.Fatalf("expected uncategorized item only, got %v", got)
	}
}

func TestFilterPaymentsSearchByMethod(t *testing.T) {
	var def PageDefinition
	for _, d := range DefaultPageDefinitions() {
		if d.Code == "admin.page.payments" {
			def = d
		}
	}
	items := []Item{
		{"id": "pay-1", "customer_name": "Dana Cruz", "payment_method": "gcash", "status": "paid", "amount": 2350.0},
		{"id": "pay-2", "customer_name": "Leo Ramos", "payment_method": "cod", "status": "pending", "amount": 980.0},
	}

	got := Filter(items, def, FilterState{Search: "gcash"})
	if len(got) != 1 || got[0].ID() != "pay-1" {
		t.Fatalf("expected only the gcash payment, got %v", got)
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	items := stockItems()
	_ = Filter(items, stockDefinition(), FilterState{Search: "pendant"})
	if len(items) != 4 {
		t.Fatalf("input slice mutated: %d", len(items))
	}
	out := Filter(items, stockDefinition(), FilterState{})
	out[0] = Item{"id": "mutated"}
	if items[0].ID() != "p1" {
		t.Fatalf("result aliases input slice")
	}
}
