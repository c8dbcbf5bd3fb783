package activity

import (
	"context"

	"github.com/izajlabs/go-adminlist/components/listview"
)

// ListViewHook adapts committed list mutations into activity events so the
// admin audit trail sees status changes, deletions, and replies.
type ListViewHook struct {
	Emitter *Emitter
}

// MutationRecorded implements listview.MutationHook.
func (h ListViewHook) MutationRecorded(ctx context.Context, evt listview.MutationEvent) error {
	if h.Emitter == nil || !h.Emitter.Enabled() {
		return nil
	}

	meta := map[string]any{
		"page_code":   evt.PageCode,
		"mutation_id": evt.MutationID,
	}
	for k, v := range evt.Metadata {
		meta[k] = v
	}

	return h.Emitter.Emit(ctx, Event{
		Verb:       evt.Verb,
		ActorID:    evt.ActorID,
		TenantID:   evt.TenantID,
		ObjectType: evt.Resource,
		ObjectID:   evt.ItemID,
		Metadata:   meta,
		OccurredAt: evt.OccurredAt,
	})
}

var _ listview.MutationHook = ListViewHook{}
