package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	dashboard "github.com/goliatone/go-logistics-dashboard/components/dashboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	codes    []dashboard.ActivityCode
	ranges   []dashboard.DateRange
	sections []dashboard.SectionID
	sidebar  []bool
	err      error
}

func (s *stubService) SetActivityCode(_ context.Context, _ string, code dashboard.ActivityCode) (dashboard.Snapshot, error) {
	s.codes = append(s.codes, code)
	return dashboard.Snapshot{Generation: uint64(len(s.codes) + 1)}, s.err
}

func (s *stubService) SetDateRange(_ context.Context, _ string, rng dashboard.DateRange) (dashboard.Snapshot, error) {
	s.ranges = append(s.ranges, rng)
	return dashboard.Snapshot{}, s.err
}

func (s *stubService) SetActiveSection(_ context.Context, _ string, id dashboard.SectionID) (dashboard.Snapshot, error) {
	s.sections = append(s.sections, id)
	return dashboard.Snapshot{}, s.err
}

func (s *stubService) SetSidebarOpen(_ context.Context, _ string, open bool) (dashboard.Snapshot, error) {
	s.sidebar = append(s.sidebar, open)
	return dashboard.Snapshot{}, s.err
}

type stubSettings struct {
	applied []map[string]any
	toggles int
	err     error
}

func (s *stubSettings) Apply(_ context.Context, payload map[string]any) (dashboard.Settings, error) {
	s.applied = append(s.applied, payload)
	return dashboard.DefaultSettings(), s.err
}

func (s *stubSettings) ToggleTheme(context.Context) (dashboard.Settings, error) {
	s.toggles++
	settings := dashboard.DefaultSettings()
	settings.Theme = dashboard.ThemeDark
	return settings, s.err
}

type stubSweeper struct {
	maxIdle time.Duration
	evicted int
}

func (s *stubSweeper) Sweep(maxIdle time.Duration) int {
	s.maxIdle = maxIdle
	return s.evicted
}

type stubTelemetry struct {
	events []string
}

func (s *stubTelemetry) Record(_ context.Context, event string, _ map[string]any) {
	s.events = append(s.events, event)
}

func TestSetActivityCodeCommand(t *testing.T) {
	service := &stubService{}
	telemetry := &stubTelemetry{}
	cmd := NewSetActivityCodeCommand(service, telemetry)
	if err := cmd.Execute(context.Background(), SetActivityCodeInput{SessionID: "s1", ActivityCode: " ACT002 "}); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	require.Len(t, service.codes, 1)
	assert.Equal(t, dashboard.ActivityCode("ACT002"), service.codes[0])
	assert.Equal(t, []string{"dashboard.command.activity_code"}, telemetry.events)
}

func TestSetActivityCodeCommandRejectsBlankCode(t *testing.T) {
	service := &stubService{}
	cmd := NewSetActivityCodeCommand(service, nil)
	err := cmd.Execute(context.Background(), SetActivityCodeInput{SessionID: "s1", ActivityCode: "   "})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	assert.Empty(t, service.codes)
}

func TestSetDateRangeCommand(t *testing.T) {
	service := &stubService{}
	cmd := NewSetDateRangeCommand(service, nil)
	err := cmd.Execute(context.Background(), SetDateRangeInput{SessionID: "s1", StartDate: "2024-03-01", EndDate: "2024-03-08"})
	require.NoError(t, err)
	require.Len(t, service.ranges, 1)
	assert.Equal(t, "2024-03-01", service.ranges[0].StartDate)
	assert.Equal(t, "2024-03-08", service.ranges[0].EndDate)
}

func TestSetDateRangeCommandValidation(t *testing.T) {
	cases := map[string]SetDateRangeInput{
		"missing session": {StartDate: "2024-03-01", EndDate: "2024-03-08"},
		"bad layout":      {SessionID: "s1", StartDate: "01/03/2024", EndDate: "2024-03-08"},
		"empty end":       {SessionID: "s1", StartDate: "2024-03-01"},
		"reversed":        {SessionID: "s1", StartDate: "2024-03-09", EndDate: "2024-03-08"},
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			service := &stubService{}
			cmd := NewSetDateRangeCommand(service, nil)
			err := cmd.Execute(context.Background(), input)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected invalid input, got %v", err)
			}
			if len(service.ranges) != 0 {
				t.Fatalf("service should not be called on invalid input")
			}
		})
	}
}

func TestSetDateRangeCommandAcceptsSingleDay(t *testing.T) {
	service := &stubService{}
	cmd := NewSetDateRangeCommand(service, nil)
	require.NoError(t, cmd.Execute(context.Background(), SetDateRangeInput{SessionID: "s1", StartDate: "2024-03-08", EndDate: "2024-03-08"}))
	assert.Equal(t, 1, service.ranges[0].Days())
}

func TestSetSectionCommand(t *testing.T) {
	service := &stubService{}
	cmd := NewSetSectionCommand(service, nil)
	require.NoError(t, cmd.Execute(context.Background(), SetSectionInput{SessionID: "s1", Section: "financial"}))
	assert.Equal(t, []dashboard.SectionID{dashboard.SectionFinancial}, service.sections)

	err := cmd.Execute(context.Background(), SetSectionInput{SessionID: "s1", Section: "marketing"})
	if !errors.Is(err, dashboard.ErrUnknownSection) {
		t.Fatalf("expected unknown section error, got %v", err)
	}
	assert.Len(t, service.sections, 1)
}

func TestSetSidebarCommand(t *testing.T) {
	service := &stubService{}
	cmd := NewSetSidebarCommand(service, nil)
	require.NoError(t, cmd.Execute(context.Background(), SetSidebarInput{SessionID: "s1", Open: false}))
	assert.Equal(t, []bool{false}, service.sidebar)
}

func TestCommandsPropagateServiceErrors(t *testing.T) {
	boom := errors.New("boom")
	service := &stubService{err: boom}
	err := NewSetSidebarCommand(service, nil).Execute(context.Background(), SetSidebarInput{SessionID: "s1", Open: true})
	assert.ErrorIs(t, err, boom)
}

func TestCommandsRequireService(t *testing.T) {
	ctx := context.Background()
	assert.Error(t, NewSetActivityCodeCommand(nil, nil).Execute(ctx, SetActivityCodeInput{SessionID: "s1", ActivityCode: "ACT001"}))
	assert.Error(t, NewSetDateRangeCommand(nil, nil).Execute(ctx, SetDateRangeInput{}))
	assert.Error(t, NewSetSectionCommand(nil, nil).Execute(ctx, SetSectionInput{}))
	assert.Error(t, NewSetSidebarCommand(nil, nil).Execute(ctx, SetSidebarInput{}))
	assert.Error(t, NewSavePreferencesCommand(nil, nil).Execute(ctx, SavePreferencesInput{}))
	assert.Error(t, NewToggleThemeCommand(nil, nil).Execute(ctx, ToggleThemeInput{}))
	assert.Error(t, NewSweepSessionsCommand(nil, nil).Execute(ctx, SweepSessionsInput{MaxIdle: time.Minute}))
}

func TestSavePreferencesCommand(t *testing.T) {
	settings := &stubSettings{}
	telemetry := &stubTelemetry{}
	cmd := NewSavePreferencesCommand(settings, telemetry)
	payload := map[string]any{"theme": "dark", "density": "compact"}
	require.NoError(t, cmd.Execute(context.Background(), SavePreferencesInput{Payload: payload}))
	require.Len(t, settings.applied, 1)
	assert.Equal(t, payload, settings.applied[0])
	assert.Equal(t, []string{"dashboard.command.preferences"}, telemetry.events)

	err := cmd.Execute(context.Background(), SavePreferencesInput{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestToggleThemeCommand(t *testing.T) {
	settings := &stubSettings{}
	cmd := NewToggleThemeCommand(settings, nil)
	require.NoError(t, cmd.Execute(context.Background(), ToggleThemeInput{}))
	assert.Equal(t, 1, settings.toggles)
}

func TestSweepSessionsCommand(t *testing.T) {
	sweeper := &stubSweeper{evicted: 2}
	telemetry := &stubTelemetry{}
	cmd := NewSweepSessionsCommand(sweeper, telemetry)
	require.NoError(t, cmd.Execute(context.Background(), SweepSessionsInput{MaxIdle: 30 * time.Minute}))
	assert.Equal(t, 30*time.Minute, sweeper.maxIdle)
	assert.Equal(t, []string{"dashboard.sessions.swept"}, telemetry.events)

	err := cmd.Execute(context.Background(), SweepSessionsInput{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
