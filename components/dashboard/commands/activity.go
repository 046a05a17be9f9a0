package commands

import (
	"context"
	"errors"
	"strings"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-logistics-dashboard/components/dashboard"
)

// SetActivityCodeInput selects the activity code of a session.
type SetActivityCodeInput struct {
	SessionID    string `json:"-" validate:"required"`
	ActivityCode string `json:"activity_code" validate:"required,max=32"`
}

type activityService interface {
	SetActivityCode(ctx context.Context, sessionID string, code dashboard.ActivityCode) (dashboard.Snapshot, error)
}

// SetActivityCodeCommand switches the filter's activity code.
type SetActivityCodeCommand struct {
	service   activityService
	telemetry Telemetry
}

// NewSetActivityCodeCommand creates a command instance.
func NewSetActivityCodeCommand(service activityService, telemetry Telemetry) *SetActivityCodeCommand {
	return &SetActivityCodeCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SetActivityCodeInput] = (*SetActivityCodeCommand)(nil)

// Execute delegates to the dashboard service. Codes are not checked against
// the directory; unknown codes load empty results.
func (c *SetActivityCodeCommand) Execute(ctx context.Context, msg SetActivityCodeInput) error {
	if c.service == nil {
		return errors.New("activity code command requires service")
	}
	msg.ActivityCode = strings.TrimSpace(msg.ActivityCode)
	if err := validateInput(msg); err != nil {
		return err
	}
	snap, err := c.service.SetActivityCode(ctx, msg.SessionID, dashboard.ActivityCode(msg.ActivityCode))
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dashboard.command.activity_code", map[string]any{
		"session":       msg.SessionID,
		"activity_code": msg.ActivityCode,
		"generation":    snap.Generation,
	})
	return nil
}
