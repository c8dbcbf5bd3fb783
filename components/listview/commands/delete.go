package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
)

// DeleteItemInput identifies the item to remove.
type DeleteItemInput struct {
	PageCode string `json:"page_code"`
	ItemID   string `json:"item_id"`
	ActorID  string `json:"actor_id"`
	TenantID string `json:"tenant_id"`
}

type deleteService interface {
	DeleteItem(ctx context.Context, pageCode, itemID string) error
}

// DeleteItemCommand wraps Service.DeleteItem.
type DeleteItemCommand struct {
	service   deleteService
	telemetry Telemetry
}

// NewDeleteItemCommand creates the command.
func NewDeleteItemCommand(service deleteService, telemetry Telemetry) *DeleteItemCommand {
	return &DeleteItemCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[DeleteItemInput] = (*DeleteItemCommand)(nil)

// Execute removes the item and lets the service refetch.
func (c *DeleteItemCommand) Execute(ctx context.Context, msg DeleteItemInput) error {
	if c.service == nil {
		return errors.New("delete command requires service")
	}
	if msg.PageCode == "" {
		return errors.New("delete command requires page code")
	}
	if msg.ItemID == "" {
		return errors.New("delete command requires item id")
	}
	ctx = withActor(ctx, msg.ActorID, msg.TenantID)
	if err := c.service.DeleteItem(ctx, msg.PageCode, msg.ItemID); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "listview.command.delete", map[string]any{
		"page_code": msg.PageCode,
		"item_id":   msg.ItemID,
	})
	return nil
}
