package listview

import "testing"

func TestItemTextCoercesScalars(t *testing.T) {
	item := Item{
		"id":     "abc",
		"count":  float64(7),
		"ok":     true,
		"amount": int64(12),
	}
	if item.Text("id") != "abc" {
		t.Fatalf("unexpected id %q", item.Text("id"))
	}
	if item.Text("count") != "7" {
		t.Fatalf("unexpected count %q", item.Text("count"))
	}
	if item.Text("ok") != "true" {
		t.Fatalf("unexpected bool %q", item.Text("ok"))
	}
	if item.Text("amount") != "12" {
		t.Fatalf("unexpected int64 %q", item.Text("amount"))
	}
	if item.Text("missing") != "" {
		t.Fatalf("missing field should be empty")
	}
}

func TestItemNumberDegradesToZero(t *testing.T) {
	item := Item{
		"qty":    float64(3.5),
		"str":    "2.25",
		"junk":   "n/a",
		"absent": nil,
	}
	if item.Number("qty") != 3.5 {
		t.Fatalf("unexpected qty %v", item.Number("qty"))
	}
	if item.Number("str") != 2.25 {
		t.Fatalf("numeric strings should parse, got %v", item.Number("str"))
	}
	if item.Number("junk") != 0 {
		t.Fatalf("unparsable value should be 0, got %v", item.Number("junk"))
	}
	if item.Number("absent") != 0 || item.Number("missing") != 0 {
		t.Fatalf("missing values should be 0")
	}
}

func TestItemFlagDefaultsFalse(t *testing.T) {
	item := Item{
		"a": true,
		"b": "true",
		"c": float64(1),
		"d": "nope",
	}
	if !item.Flag("a") || !item.Flag("b") || !item.Flag("c") {
		t.Fatalf("truthy values not recognized")
	}
	if item.Flag("d") || item.Flag("missing") {
		t.Fatalf("expected false for junk/missing values")
	}
}

func TestItemCategoryFallsBackToUncategorized(t *testing.T) {
	item := Item{"category": "  "}
	if got := item.Category("category"); got != UncategorizedLabel {
		t.Fatalf("blank category should fall back, got %q", got)
	}
	if got := (Item{}).Category("category"); got != UncategorizedLabel {
		t.Fatalf("missing category should fall back, got %q", got)
	}
	item = Item{"category": "Chandelier"}
	if got := item.Category("category"); got != "Chandelier" {
		t.Fatalf("unexpected category %q", got)
	}
}
