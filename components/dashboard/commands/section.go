package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-logistics-dashboard/components/dashboard"
)

// SetSectionInput selects the visible section.
type SetSectionInput struct {
	SessionID string `json:"-" validate:"required"`
	Section   string `json:"section" validate:"required"`
}

type sectionService interface {
	SetActiveSection(ctx context.Context, sessionID string, id dashboard.SectionID) (dashboard.Snapshot, error)
}

// SetSectionCommand switches the active section. Unknown ids surface
// dashboard.ErrUnknownSection so transports can redirect to the dashboard.
type SetSectionCommand struct {
	service   sectionService
	telemetry Telemetry
}

// NewSetSectionCommand creates the command.
func NewSetSectionCommand(service sectionService, telemetry Telemetry) *SetSectionCommand {
	return &SetSectionCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SetSectionInput] = (*SetSectionCommand)(nil)

// Execute delegates to the dashboard service.
func (c *SetSectionCommand) Execute(ctx context.Context, msg SetSectionInput) error {
	if c.service == nil {
		return errors.New("section command requires service")
	}
	if err := validateInput(msg); err != nil {
		return err
	}
	id, err := dashboard.ParseSectionID(msg.Section)
	if err != nil {
		return err
	}
	if _, err := c.service.SetActiveSection(ctx, msg.SessionID, id); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dashboard.command.section", map[string]any{
		"session": msg.SessionID,
		"section": msg.Section,
	})
	return nil
}
