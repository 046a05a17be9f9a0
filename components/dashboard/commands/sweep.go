package commands

import (
	"context"
	"errors"
	"time"

	gocommand "github.com/goliatone/go-command"
)

// SweepSessionsInput evicts sessions idle for longer than MaxIdle.
type SweepSessionsInput struct {
	MaxIdle time.Duration `json:"max_idle" validate:"gt=0"`
}

type sessionSweeper interface {
	Sweep(maxIdle time.Duration) int
}

// SweepSessionsCommand is run periodically by the server.
type SweepSessionsCommand struct {
	sessions  sessionSweeper
	telemetry Telemetry
}

// NewSweepSessionsCommand creates the command.
func NewSweepSessionsCommand(sessions sessionSweeper, telemetry Telemetry) *SweepSessionsCommand {
	return &SweepSessionsCommand{sessions: sessions, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SweepSessionsInput] = (*SweepSessionsCommand)(nil)

// Execute sweeps idle sessions.
func (c *SweepSessionsCommand) Execute(ctx context.Context, msg SweepSessionsInput) error {
	if c.sessions == nil {
		return errors.New("sweep command requires session manager")
	}
	if err := validateInput(msg); err != nil {
		return err
	}
	evicted := c.sessions.Sweep(msg.MaxIdle)
	if evicted > 0 {
		c.telemetry.Record(ctx, "dashboard.sessions.swept", map[string]any{
			"evicted":  evicted,
			"max_idle": msg.MaxIdle.String(),
		})
	}
	return nil
}
