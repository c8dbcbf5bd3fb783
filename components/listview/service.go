package listview

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	errMissingSource   = errors.New("listview: source not configured")
	errMissingMutator  = errors.New("listview: mutator not configured")
	errUnknownPage     = errors.New("listview: unknown page code")
	errMissingItemID   = errors.New("listview: item id is required")
	errMissingField    = errors.New("listview: status field is required")
	errEmptyReply      = errors.New("listview: reply message is required")
	// ErrMutationInFlight is returned while a previous mutation for the same
	// item has not settled; the UI keeps the triggering control disabled.
	ErrMutationInFlight = errors.New("listview: mutation already in flight")
)

// Options configures the listview Service. Every collaborator is provided
// via interface so applications can swap implementations without importing
// internal packages.
type Options struct {
	Source    Source
	Mutator   Mutator
	Registry  PageRegistry
	Validator FilterValidator
	Telemetry Telemetry
	Mutations MutationHook
}

// Service wires page pipelines to the backend Source/Mutator pair. It keeps
// one pipeline per page code, guards against duplicate in-flight mutations,
// and refetches after every accepted mutation.
type Service struct {
	opts Options

	mu        sync.Mutex
	pipelines map[string]*Pipeline
	inflight  map[string]struct{}
}

// NewService builds a Service instance with safe defaults.
func NewService(opts Options) *Service {
	if opts.Registry == nil {
		opts.Registry = NewRegistry()
	}
	if opts.Validator == nil {
		opts.Validator = NewJSONSchemaValidator()
	}
	if opts.Mutations == nil {
		opts.Mutations = noopMutationHook{}
	}
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)
	return &Service{
		opts:      opts,
		pipelines: make(map[string]*Pipeline),
		inflight:  make(map[string]struct{}),
	}
}

// Definitions lists the registered page definitions.
func (s *Service) Definitions() []PageDefinition {
	return s.opts.Registry.Definitions()
}

// Open returns the pipeline for a page code, creating it on first use.
func (s *Service) Open(pageCode string) (*Pipeline, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.pipelines[pageCode]; ok {
		return p, nil
	}
	def, ok := s.opts.Registry.Definition(pageCode)
	if !ok {
		return nil, fmt.Errorf("%w: %s", errUnknownPage, pageCode)
	}
	p := NewPipeline(def)
	s.pipelines[pageCode] = p
	return p, nil
}

// View returns the current render snapshot for a page.
func (s *Service) View(pageCode string) (View, error) {
	p, err := s.Open(pageCode)
	if err != nil {
		return View{}, err
	}
	return p.View(), nil
}

// Refresh fetches the page's collection and settles it into the pipeline.
// On fetch failure the pipeline keeps its last-known-good collection and the
// error also returns to the caller.
func (s *Service) Refresh(ctx context.Context, pageCode string) error {
	if s.opts.Source == nil {
		return errMissingSource
	}
	p, err := s.Open(pageCode)
	if err != nil {
		return err
	}
	p.BeginFetch()
	items, fetchErr := s.opts.Source.FetchCollection(ctx, p.Definition().Resource)
	p.CompleteFetch(items, fetchErr)
	s.opts.Telemetry.Record(ctx, "listview.page.refresh", map[string]any{
		"page_code": pageCode,
		"count":     len(items),
		"failed":    fetchErr != nil,
	})
	return fetchErr
}

// Search replaces a page's free-text search and returns the fresh view.
func (s *Service) Search(pageCode, text string) (View, error) {
	p, err := s.Open(pageCode)
	if err != nil {
		return View{}, err
	}
	p.SetSearch(text)
	return p.View(), nil
}

// Select validates and applies a dimension filter, returning the fresh view.
func (s *Service) Select(pageCode, field string, values ...string) (View, error) {
	p, err := s.Open(pageCode)
	if err != nil {
		return View{}, err
	}
	state := FilterState{Selections: map[string][]string{field: values}}
	if err := s.opts.Validator.Validate(p.Definition(), state); err != nil {
		return View{}, err
	}
	p.Select(field, values...)
	return p.View(), nil
}

// GoToPage moves a page's pipeline to the requested page number.
func (s *Service) GoToPage(pageCode string, number int) (View, error) {
	p, err := s.Open(pageCode)
	if err != nil {
		return View{}, err
	}
	p.SetPage(number)
	return p.View(), nil
}

// UpdateStatus sends a single-field state change for an item and refetches on
// success. No local state changes until the refetch lands.
func (s *Service) UpdateStatus(ctx context.Context, pageCode, itemID, field string, value any) error {
	if itemID == "" {
		return errMissingItemID
	}
	if field == "" {
		return errMissingField
	}
	return s.mutate(ctx, pageCode, itemID, "update", map[string]any{"field": field}, func(ctx context.Context, resource string) error {
		return s.opts.Mutator.UpdateStatus(ctx, resource, itemID, field, value)
	})
}

// DeleteItem removes an item and refetches on success.
func (s *Service) DeleteItem(ctx context.Context, pageCode, itemID string) error {
	if itemID == "" {
		return errMissingItemID
	}
	return s.mutate(ctx, pageCode, itemID, "delete", nil, func(ctx context.Context, resource string) error {
		return s.opts.Mutator.DeleteItem(ctx, resource, itemID)
	})
}

// Reply posts a moderation reply to a feedback item and refetches on success.
func (s *Service) Reply(ctx context.Context, pageCode, itemID, message string) error {
	if itemID == "" {
		return errMissingItemID
	}
	if message == "" {
		return errEmptyReply
	}
	return s.mutate(ctx, pageCode, itemID, "reply", nil, func(ctx context.Context, resource string) error {
		return s.opts.Mutator.Reply(ctx, resource, itemID, message)
	})
}

// SetMaintenance toggles the storefront maintenance flag. It shares the
// in-flight guard keyed by the settings resource so the switch cannot be
// double-submitted.
func (s *Service) SetMaintenance(ctx context.Context, enabled bool) error {
	if s.opts.Mutator == nil {
		return errMissingMutator
	}
	key := MaintenanceResource
	if !s.acquire(key) {
		return ErrMutationInFlight
	}
	defer s.release(key)
	if err := s.opts.Mutator.SetMaintenance(ctx, enabled); err != nil {
		return err
	}
	s.recordMutation(ctx, "maintenance", "", MaintenanceResource, "", map[string]any{"enabled": enabled})
	return nil
}

func (s *Service) mutate(ctx context.Context, pageCode, itemID, verb string, meta map[string]any, fn func(ctx context.Context, resource string) error) error {
	if s.opts.Mutator == nil {
		return errMissingMutator
	}
	p, err := s.Open(pageCode)
	if err != nil {
		return err
	}
	resource := p.Definition().Resource
	key := resource + ":" + itemID
	if !s.acquire(key) {
		return ErrMutationInFlight
	}
	defer s.release(key)
	if err := fn(ctx, resource); err != nil {
		return err
	}
	s.recordMutation(ctx, verb, pageCode, resource, itemID, meta)
	if s.opts.Source != nil {
		// Refetch failures are transient; the pipeline keeps the previous
		// collection and surfaces the message on the view.
		_ = s.Refresh(ctx, pageCode)
	}
	return nil
}

func (s *Service) recordMutation(ctx context.Context, verb, pageCode, resource, itemID string, meta map[string]any) {
	actor := actorFrom(ctx)
	evt := MutationEvent{
		Verb:       verb,
		PageCode:   pageCode,
		Resource:   resource,
		ItemID:     itemID,
		MutationID: uuid.NewString(),
		ActorID:    actor.ActorID,
		TenantID:   actor.TenantID,
		Metadata:   meta,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.opts.Mutations.MutationRecorded(ctx, evt); err != nil {
		s.opts.Telemetry.Record(ctx, "listview.mutation.hook_error", map[string]any{
			"verb":  verb,
			"error": err.Error(),
		})
	}
	s.opts.Telemetry.Record(ctx, "listview.mutation."+verb, map[string]any{
		"page_code":   pageCode,
		"resource":    resource,
		"item_id":     itemID,
		"mutation_id": evt.MutationID,
	})
}

func (s *Service) acquire(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inflight[key]; busy {
		return false
	}
	s.inflight[key] = struct{}{}
	return true
}

func (s *Service) release(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inflight, key)
}
