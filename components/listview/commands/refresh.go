package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
)

// RefreshListInput requests a refetch for one page.
type RefreshListInput struct {
	PageCode string `json:"page_code"`
	ActorID  string `json:"actor_id"`
	TenantID string `json:"tenant_id"`
}

type refreshService interface {
	Refresh(ctx context.Context, pageCode string) error
}

// RefreshListCommand wraps Service.Refresh.
type RefreshListCommand struct {
	service   refreshService
	telemetry Telemetry
}

// NewRefreshListCommand creates the command.
func NewRefreshListCommand(service refreshService, telemetry Telemetry) *RefreshListCommand {
	return &RefreshListCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[RefreshListInput] = (*RefreshListCommand)(nil)

// Execute refetches the page's collection.
func (c *RefreshListCommand) Execute(ctx context.Context, msg RefreshListInput) error {
	if c.service == nil {
		return errors.New("refresh command requires service")
	}
	if msg.PageCode == "" {
		return errors.New("refresh command requires page code")
	}
	ctx = withActor(ctx, msg.ActorID, msg.TenantID)
	if err := c.service.Refresh(ctx, msg.PageCode); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "listview.command.refresh", map[string]any{
		"page_code": msg.PageCode,
	})
	return nil
}
