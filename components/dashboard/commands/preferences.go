package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-logistics-dashboard/components/dashboard"
)

// SavePreferencesInput carries a partial settings payload.
type SavePreferencesInput struct {
	Payload map[string]any `json:"payload"`
}

// ToggleThemeInput flips between light and dark.
type ToggleThemeInput struct{}

type settingsService interface {
	Apply(ctx context.Context, payload map[string]any) (dashboard.Settings, error)
	ToggleTheme(ctx context.Context) (dashboard.Settings, error)
}

// SavePreferencesCommand validates and persists settings changes.
type SavePreferencesCommand struct {
	service   settingsService
	telemetry Telemetry
}

// NewSavePreferencesCommand creates the command.
func NewSavePreferencesCommand(service settingsService, telemetry Telemetry) *SavePreferencesCommand {
	return &SavePreferencesCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SavePreferencesInput] = (*SavePreferencesCommand)(nil)

// Execute applies the payload through the settings service.
func (c *SavePreferencesCommand) Execute(ctx context.Context, msg SavePreferencesInput) error {
	if c.service == nil {
		return errors.New("preferences command requires service")
	}
	if len(msg.Payload) == 0 {
		return errors.Join(ErrInvalidInput, errors.New("preferences payload is empty"))
	}
	settings, err := c.service.Apply(ctx, msg.Payload)
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dashboard.command.preferences", map[string]any{
		"fields": len(msg.Payload),
		"theme":  string(settings.Theme),
	})
	return nil
}

// ToggleThemeCommand flips the stored theme.
type ToggleThemeCommand struct {
	service   settingsService
	telemetry Telemetry
}

// NewToggleThemeCommand creates the command.
func NewToggleThemeCommand(service settingsService, telemetry Telemetry) *ToggleThemeCommand {
	return &ToggleThemeCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ToggleThemeInput] = (*ToggleThemeCommand)(nil)

// Execute toggles the theme.
func (c *ToggleThemeCommand) Execute(ctx context.Context, _ ToggleThemeInput) error {
	if c.service == nil {
		return errors.New("theme command requires service")
	}
	settings, err := c.service.ToggleTheme(ctx)
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dashboard.command.theme", map[string]any{
		"theme": string(settings.Theme),
	})
	return nil
}
