package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
)

// SetMaintenanceInput toggles the storefront maintenance flag.
type SetMaintenanceInput struct {
	Enabled  bool   `json:"enabled"`
	ActorID  string `json:"actor_id"`
	TenantID string `json:"tenant_id"`
}

type maintenanceService interface {
	SetMaintenance(ctx context.Context, enabled bool) error
}

// SetMaintenanceCommand wraps Service.SetMaintenance.
type SetMaintenanceCommand struct {
	service   maintenanceService
	telemetry Telemetry
}

// NewSetMaintenanceCommand creates the command.
func NewSetMaintenanceCommand(service maintenanceService, telemetry Telemetry) *SetMaintenanceCommand {
	return &SetMaintenanceCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SetMaintenanceInput] = (*SetMaintenanceCommand)(nil)

// Execute flips the maintenance flag.
func (c *SetMaintenanceCommand) Execute(ctx context.Context, msg SetMaintenanceInput) error {
	if c.service == nil {
		return errors.New("maintenance command requires service")
	}
	ctx = withActor(ctx, msg.ActorID, msg.TenantID)
	if err := c.service.SetMaintenance(ctx, msg.Enabled); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "listview.command.maintenance", map[string]any{
		"enabled": msg.Enabled,
	})
	return nil
}
