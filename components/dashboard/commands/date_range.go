package commands

import (
	"context"
	"errors"
	"fmt"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-logistics-dashboard/components/dashboard"
)

// SetDateRangeInput selects the date window of a session.
type SetDateRangeInput struct {
	SessionID string `json:"-" validate:"required"`
	StartDate string `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"endDate" validate:"required,datetime=2006-01-02"`
}

type dateRangeService interface {
	SetDateRange(ctx context.Context, sessionID string, rng dashboard.DateRange) (dashboard.Snapshot, error)
}

// SetDateRangeCommand switches the filter's date window.
type SetDateRangeCommand struct {
	service   dateRangeService
	telemetry Telemetry
}

// NewSetDateRangeCommand creates the command.
func NewSetDateRangeCommand(service dateRangeService, telemetry Telemetry) *SetDateRangeCommand {
	return &SetDateRangeCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SetDateRangeInput] = (*SetDateRangeCommand)(nil)

// Execute validates the window and stores it. The store itself accepts any
// range, so ordering is enforced here at the transport boundary.
func (c *SetDateRangeCommand) Execute(ctx context.Context, msg SetDateRangeInput) error {
	if c.service == nil {
		return errors.New("date range command requires service")
	}
	if err := validateInput(msg); err != nil {
		return err
	}
	rng := dashboard.DateRange{StartDate: msg.StartDate, EndDate: msg.EndDate}
	if !rng.Valid() {
		return fmt.Errorf("%w: start date %s is after end date %s", ErrInvalidInput, msg.StartDate, msg.EndDate)
	}
	if _, err := c.service.SetDateRange(ctx, msg.SessionID, rng); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dashboard.command.date_range", map[string]any{
		"session": msg.SessionID,
		"start":   msg.StartDate,
		"end":     msg.EndDate,
		"days":    rng.Days(),
	})
	return nil
}
