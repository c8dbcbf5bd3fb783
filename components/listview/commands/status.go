package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"

	"github.com/izajlabs/go-adminlist/components/listview"
)

func withActor(ctx context.Context, actorID, tenantID string) context.Context {
	if actorID == "" && tenantID == "" {
		return ctx
	}
	return listview.ContextWithActor(ctx, listview.ActorContext{
		ActorID:  actorID,
		TenantID: tenantID,
	})
}

// UpdateStatusInput captures single-field status changes.
type UpdateStatusInput struct {
	PageCode string `json:"page_code"`
	ItemID   string `json:"item_id"`
	Field    string `json:"field"`
	Value    any    `json:"value"`
	ActorID  string `json:"actor_id"`
	TenantID string `json:"tenant_id"`
}

type statusService interface {
	UpdateStatus(ctx context.Context, pageCode, itemID, field string, value any) error
}

// UpdateStatusCommand wraps Service.UpdateStatus.
type UpdateStatusCommand struct {
	service   statusService
	telemetry Telemetry
}

// NewUpdateStatusCommand creates the command.
func NewUpdateStatusCommand(service statusService, telemetry Telemetry) *UpdateStatusCommand {
	return &UpdateStatusCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[UpdateStatusInput] = (*UpdateStatusCommand)(nil)

// Execute applies the status change and lets the service refetch.
func (c *UpdateStatusCommand) Execute(ctx context.Context, msg UpdateStatusInput) error {
	if c.service == nil {
		return errors.New("status command requires service")
	}
	if msg.PageCode == "" {
		return errors.New("status command requires page code")
	}
	if msg.ItemID == "" {
		return errors.New("status command requires item id")
	}
	ctx = withActor(ctx, msg.ActorID, msg.TenantID)
	if err := c.service.UpdateStatus(ctx, msg.PageCode, msg.ItemID, msg.Field, msg.Value); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "listview.command.update_status", map[string]any{
		"page_code": msg.PageCode,
		"item_id":   msg.ItemID,
		"field":     msg.Field,
	})
	return nil
}
