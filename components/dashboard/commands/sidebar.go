package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-logistics-dashboard/components/dashboard"
)

// SetSidebarInput opens or collapses the sidebar.
type SetSidebarInput struct {
	SessionID string `json:"-" validate:"required"`
	Open      bool   `json:"open"`
}

type sidebarService interface {
	SetSidebarOpen(ctx context.Context, sessionID string, open bool) (dashboard.Snapshot, error)
}

// SetSidebarCommand toggles the navigation chrome.
type SetSidebarCommand struct {
	service   sidebarService
	telemetry Telemetry
}

// NewSetSidebarCommand creates the command.
func NewSetSidebarCommand(service sidebarService, telemetry Telemetry) *SetSidebarCommand {
	return &SetSidebarCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SetSidebarInput] = (*SetSidebarCommand)(nil)

// Execute delegates to the dashboard service.
func (c *SetSidebarCommand) Execute(ctx context.Context, msg SetSidebarInput) error {
	if c.service == nil {
		return errors.New("sidebar command requires service")
	}
	if err := validateInput(msg); err != nil {
		return err
	}
	if _, err := c.service.SetSidebarOpen(ctx, msg.SessionID, msg.Open); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dashboard.command.sidebar", map[string]any{
		"session": msg.SessionID,
		"open":    msg.Open,
	})
	return nil
}
