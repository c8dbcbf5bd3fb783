package listview

import (
	"fmt"
	"strconv"
	"strings"
)

// UncategorizedLabel is the fallback for missing categorical values.
const UncategorizedLabel = "Uncategorized"

// Item is one record in a page's dataset. Fields arrive as decoded JSON, so
// every accessor degrades to a default instead of failing on a missing or
// malformed value.
type Item map[string]any

// ID returns the item identifier, or "" when absent.
func (it Item) ID() string {
	return it.Text("id")
}

// Text returns a string field, coercing scalar values.
func (it Item) Text(field string) string {
	v, ok := it[field]
	if !ok || v == nil {
		return ""
	}
	switch val := v.(type) {
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// Number returns a numeric field, treating missing or unparsable values as 0.
func (it Item) Number(field string) float64 {
	v, ok := it[field]
	if !ok || v == nil {
		return 0
	}
	switch val := v.(type) {
	case float64:
		return val
	case float32:
		return float64(val)
	case int:
		return float64(val)
	case int64:
		return float64(val)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}

// Flag returns a boolean field, defaulting to false.
func (it Item) Flag(field string) bool {
	v, ok := it[field]
	if !ok || v == nil {
		return false
	}
	switch val := v.(type) {
	case bool:
		return val
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(val))
		return err == nil && parsed
	case float64:
		return val != 0
	case int:
		return val != 0
	default:
		return false
	}
}

// Category returns a categorical field, substituting UncategorizedLabel when
// the value is missing or blank.
func (it Item) Category(field string) string {
	if value := strings.TrimSpace(it.Text(field)); value != "" {
		return value
	}
	return UncategorizedLabel
}
