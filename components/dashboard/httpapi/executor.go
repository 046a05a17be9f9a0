package httpapi

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-logistics-dashboard/components/dashboard"
	"github.com/goliatone/go-logistics-dashboard/components/dashboard/commands"
)

// Executor is the write side shared by every transport.
type Executor interface {
	SetActivityCode(ctx context.Context, input commands.SetActivityCodeInput) error
	SetDateRange(ctx context.Context, input commands.SetDateRangeInput) error
	SetSection(ctx context.Context, input commands.SetSectionInput) error
	SetSidebar(ctx context.Context, input commands.SetSidebarInput) error
	SavePreferences(ctx context.Context, input commands.SavePreferencesInput) error
	ToggleTheme(ctx context.Context, input commands.ToggleThemeInput) error
}

// CommandExecutor dispatches onto go-command commanders.
type CommandExecutor struct {
	ActivityCode gocommand.Commander[commands.SetActivityCodeInput]
	DateRange    gocommand.Commander[commands.SetDateRangeInput]
	Section      gocommand.Commander[commands.SetSectionInput]
	Sidebar      gocommand.Commander[commands.SetSidebarInput]
	Preferences  gocommand.Commander[commands.SavePreferencesInput]
	Theme        gocommand.Commander[commands.ToggleThemeInput]
}

var _ Executor = (*CommandExecutor)(nil)

// NewCommandExecutor wires the default commands onto service.
func NewCommandExecutor(service *dashboard.Service, telemetry commands.Telemetry) *CommandExecutor {
	return &CommandExecutor{
		ActivityCode: commands.NewSetActivityCodeCommand(service, telemetry),
		DateRange:    commands.NewSetDateRangeCommand(service, telemetry),
		Section:      commands.NewSetSectionCommand(service, telemetry),
		Sidebar:      commands.NewSetSidebarCommand(service, telemetry),
		Preferences:  commands.NewSavePreferencesCommand(service.Settings(), telemetry),
		Theme:        commands.NewToggleThemeCommand(service.Settings(), telemetry),
	}
}

var errCommandMissing = errors.New("httpapi: command not configured")

func (e *CommandExecutor) SetActivityCode(ctx context.Context, input commands.SetActivityCodeInput) error {
	return execute(ctx, e.ActivityCode, input)
}

func (e *CommandExecutor) SetDateRange(ctx context.Context, input commands.SetDateRangeInput) error {
	return execute(ctx, e.DateRange, input)
}

func (e *CommandExecutor) SetSection(ctx context.Context, input commands.SetSectionInput) error {
	return execute(ctx, e.Section, input)
}

func (e *CommandExecutor) SetSidebar(ctx context.Context, input commands.SetSidebarInput) error {
	return execute(ctx, e.Sidebar, input)
}

func (e *CommandExecutor) SavePreferences(ctx context.Context, input commands.SavePreferencesInput) error {
	return execute(ctx, e.Preferences, input)
}

func (e *CommandExecutor) ToggleTheme(ctx context.Context, input commands.ToggleThemeInput) error {
	return execute(ctx, e.Theme, input)
}

func execute[T any](ctx context.Context, cmd gocommand.Commander[T], msg T) error {
	if cmd == nil {
		return errCommandMissing
	}
	return cmd.Execute(ctx, msg)
}
