// Package usersink bridges activity events into a go-users activity sink.
package usersink

import (
	"context"
	"strings"

	"github.com/goliatone/go-users/pkg/types"
	"github.com/google/uuid"

	"github.com/izajlabs/go-adminlist/pkg/activity"
)

// Sink is the subset of the go-users activity store the hook needs.
type Sink interface {
	Log(ctx context.Context, record types.ActivityRecord) error
}

// Hook forwards activity events to a Sink as ActivityRecords. Events
// without a verb are dropped.
type Hook struct {
	Sink Sink
}

// Notify implements activity.Hook.
func (h Hook) Notify(ctx context.Context, evt activity.Event) error {
	if h.Sink == nil {
		return nil
	}
	if strings.TrimSpace(evt.Verb) == "" {
		return nil
	}

	record := types.ActivityRecord{
		ActorID:    parseUUID(evt.ActorID),
		UserID:     parseUUID(evt.UserID),
		TenantID:   parseUUID(evt.TenantID),
		Verb:       evt.Verb,
		ObjectType: evt.ObjectType,
		ObjectID:   evt.ObjectID,
		Channel:    evt.Channel,
		OccurredAt: evt.OccurredAt,
		Data:       map[string]any{},
	}
	for k, v := range evt.Metadata {
		record.Data[k] = v
	}
	if evt.DefinitionCode != "" {
		record.Data["definition_code"] = evt.DefinitionCode
	}
	if len(evt.Recipients) > 0 {
		record.Data["recipients"] = append([]string(nil), evt.Recipients...)
	}

	return h.Sink.Log(ctx, record)
}

func parseUUID(value string) uuid.UUID {
	id, err := uuid.Parse(strings.TrimSpace(value))
	if err != nil {
		return uuid.Nil
	}
	return id
}
