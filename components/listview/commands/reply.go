package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
)

// ReplyInput carries a moderation reply for a feedback item.
type ReplyInput struct {
	PageCode string `json:"page_code"`
	ItemID   string `json:"item_id"`
	Message  string `json:"message"`
	ActorID  string `json:"actor_id"`
	TenantID string `json:"tenant_id"`
}

type replyService interface {
	Reply(ctx context.Context, pageCode, itemID, message string) error
}

// ReplyCommand wraps Service.Reply.
type ReplyCommand struct {
	service   replyService
	telemetry Telemetry
}

// NewReplyCommand creates the command.
func NewReplyCommand(service replyService, telemetry Telemetry) *ReplyCommand {
	return &ReplyCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ReplyInput] = (*ReplyCommand)(nil)

// Execute posts the reply and lets the service refetch.
func (c *ReplyCommand) Execute(ctx context.Context, msg ReplyInput) error {
	if c.service == nil {
		return errors.New("reply command requires service")
	}
	if msg.PageCode == "" {
		return errors.New("reply command requires page code")
	}
	if msg.ItemID == "" {
		return errors.New("reply command requires item id")
	}
	if msg.Message == "" {
		return errors.New("reply command requires a message")
	}
	ctx = withActor(ctx, msg.ActorID, msg.TenantID)
	if err := c.service.Reply(ctx, msg.PageCode, msg.ItemID, msg.Message); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "listview.command.reply", map[string]any{
		"page_code": msg.PageCode,
		"item_id":   msg.ItemID,
	})
	return nil
}
