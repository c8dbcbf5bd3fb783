package listview

// Dimension declares a categorical filter axis for a page.
type Dimension struct {
	Field  string         `json:"field" yaml:"field"`
	Label  string         `json:"label,omitempty" yaml:"label,omitempty"`
	Schema map[string]any `json:"schema,omitempty" yaml:"schema,omitempty"`
}

// CountRule declares a counted predicate for SummaryStats. When Equals is
// empty the rule counts items whose boolean Field is true; otherwise it
// counts items whose categorical Field matches Equals.
type CountRule struct {
	Name   string `json:"name" yaml:"name"`
	Field  string `json:"field" yaml:"field"`
	Equals string `json:"equals,omitempty" yaml:"equals,omitempty"`
}

// PageDefinition configures the pipeline for one list page.
type PageDefinition struct {
	Code         string      `json:"code" yaml:"code"`
	Name         string      `json:"name" yaml:"name"`
	Description  string      `json:"description,omitempty" yaml:"description,omitempty"`
	Resource     string      `json:"resource" yaml:"resource"`
	SearchFields []string    `json:"search_fields" yaml:"search_fields"`
	Dimensions   []Dimension `json:"dimensions,omitempty" yaml:"dimensions,omitempty"`
	SumField     string      `json:"sum_field,omitempty" yaml:"sum_field,omitempty"`
	CountRules   []CountRule `json:"count_rules,omitempty" yaml:"count_rules,omitempty"`
	PageSize     int         `json:"page_size,omitempty" yaml:"page_size,omitempty"`
}

// Dimension finds a declared dimension by field name.
func (d PageDefinition) Dimension(field string) (Dimension, bool) {
	for _, dim := range d.Dimensions {
		if dim.Field == field {
			return dim, true
		}
	}
	return Dimension{}, false
}

func (d PageDefinition) pageSize() int {
	if d.PageSize > 0 {
		return d.PageSize
	}
	return DefaultPageSize
}
