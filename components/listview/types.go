package listview

import (
	"context"
	"time"
)

// Source fetches raw collections from the backing store or REST API.
// Implementations own network concerns; the pipeline never retries or
// cancels on their behalf.
type Source interface {
	FetchCollection(ctx context.Context, resource string) ([]Item, error)
}

// Mutator sends single-item state changes to the backing store. The service
// refetches through Source after a successful mutation; no optimistic state
// change is committed.
type Mutator interface {
	UpdateStatus(ctx context.Context, resource, itemID, field string, value any) error
	DeleteItem(ctx context.Context, resource, itemID string) error
	Reply(ctx context.Context, resource, itemID, message string) error
	SetMaintenance(ctx context.Context, enabled bool) error
}

// PageRegistry stores page definitions discoverable via hooks or manifests.
type PageRegistry interface {
	RegisterDefinition(def PageDefinition) error
	Definition(code string) (PageDefinition, bool)
	Definitions() []PageDefinition
}

// FilterValidator validates categorical selections against a page schema.
type FilterValidator interface {
	Validate(def PageDefinition, state FilterState) error
}

// MutationHook observes committed mutations so callers can feed audit trails.
type MutationHook interface {
	MutationRecorded(ctx context.Context, evt MutationEvent) error
}

// MutationEvent describes a mutation that the backing store accepted.
type MutationEvent struct {
	Verb       string
	PageCode   string
	Resource   string
	ItemID     string
	MutationID string
	ActorID    string
	TenantID   string
	Metadata   map[string]any
	OccurredAt time.Time
}

// FilterState is the user-controlled filter input for one page instance.
// Search matches the page's designated text fields; Selections maps a
// dimension field to the selected value set.
type FilterState struct {
	Search     string              `json:"search"`
	Selections map[string][]string `json:"selections,omitempty"`
}

func (f FilterState) clone() FilterState {
	out := FilterState{Search: f.Search}
	if f.Selections != nil {
		out.Selections = make(map[string][]string, len(f.Selections))
		for dim, values := range f.Selections {
			out.Selections[dim] = append([]string(nil), values...)
		}
	}
	return out
}

// PageState tracks the 1-based current page and the fixed page size.
type PageState struct {
	Size    int
	Current int
}

// SummaryStats are derived from the filtered collection and never persisted.
type SummaryStats struct {
	Total  int            `json:"total"`
	Counts map[string]int `json:"counts"`
	Sum    float64        `json:"sum"`
}

// View is the immutable snapshot handed to the render layer.
type View struct {
	PageCode     string       `json:"page_code"`
	Items        []Item       `json:"items"`
	CurrentPage  int          `json:"current_page"`
	TotalPages   int          `json:"total_pages"`
	VisiblePages []int        `json:"visible_pages"`
	Stats        SummaryStats `json:"stats"`
	Filter       FilterState  `json:"filter"`
	Loading      bool         `json:"loading"`
	Err          string       `json:"error,omitempty"`
}
