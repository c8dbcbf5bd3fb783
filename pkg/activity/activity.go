// Package activity provides a small audit-event fan-out used to trail admin
// mutations into external activity sinks.
package activity

import (
	"context"
	"strings"
	"time"
)

// DefaultChannel tags events emitted by the admin panel.
const DefaultChannel = "admin"

// Event describes one auditable action.
type Event struct {
	Verb           string
	ActorID        string
	UserID         string
	TenantID       string
	ObjectType     string
	ObjectID       string
	Channel        string
	DefinitionCode string
	Recipients     []string
	Metadata       map[string]any
	OccurredAt     time.Time
}

// NormalizeEvent trims identifying fields, defaults the channel and
// timestamp, and clones metadata/recipients so hooks can mutate their copy.
func NormalizeEvent(evt Event) Event {
	out := evt
	out.Verb = strings.TrimSpace(evt.Verb)
	out.ObjectType = strings.TrimSpace(evt.ObjectType)
	out.ObjectID = strings.TrimSpace(evt.ObjectID)
	if out.Channel == "" {
		out.Channel = DefaultChannel
	}
	if out.OccurredAt.IsZero() {
		out.OccurredAt = time.Now().UTC()
	}
	if evt.Metadata != nil {
		out.Metadata = make(map[string]any, len(evt.Metadata))
		for k, v := range evt.Metadata {
			out.Metadata[k] = v
		}
	}
	if evt.Recipients != nil {
		out.Recipients = append([]string(nil), evt.Recipients...)
	}
	return out
}

// valid reports whether the event carries enough identity to be recorded.
func (e Event) valid() bool {
	return strings.TrimSpace(e.Verb) != "" &&
		strings.TrimSpace(e.ObjectType) != "" &&
		strings.TrimSpace(e.ObjectID) != ""
}

// Hook receives normalized events.
type Hook interface {
	Notify(ctx context.Context, evt Event) error
}

// HookFunc adapts a function to the Hook interface.
type HookFunc func(ctx context.Context, evt Event) error

// Notify implements Hook.
func (f HookFunc) Notify(ctx context.Context, evt Event) error {
	return f(ctx, evt)
}

// Hooks fans an event out to each hook in order. Events missing a verb or
// object identity are skipped. The first hook error stops the fan-out.
type Hooks []Hook

// Notify implements Hook for the collection.
func (h Hooks) Notify(ctx context.Context, evt Event) error {
	if !evt.valid() {
		return nil
	}
	normalized := NormalizeEvent(evt)
	for _, hook := range h {
		if hook == nil {
			continue
		}
		if err := hook.Notify(ctx, normalized); err != nil {
			return err
		}
	}
	return nil
}
