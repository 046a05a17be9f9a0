package dashboard

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
)

// Options configures the dashboard Service. Every collaborator is provided via
// interface so applications can swap implementations.
type Options struct {
	Metrics   MetricsProvider
	Registry  *Registry
	Charts    ChartRenderer
	Directory ActivityDirectory
	Settings  *SettingsService
	Hook      StateHook
	Telemetry Telemetry
	Sessions  *SessionManager
}

// Service orchestrates sessions, state and card loading.
type Service struct {
	opts Options
}

// NewService builds a Service with safe defaults. Either a registry or a
// metrics provider is required; with only a provider the default sections
// are registered.
func NewService(opts Options) (*Service, error) {
	if opts.Registry == nil {
		if opts.Metrics == nil {
			return nil, ErrProviderMissing
		}
		opts.Registry = NewRegistry()
		if err := RegisterDefaults(opts.Registry, SectionDeps{Metrics: opts.Metrics, Charts: opts.Charts}); err != nil {
			return nil, err
		}
	}
	if opts.Directory == nil {
		opts.Directory = NewStaticDirectory(nil)
	}
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)
	if opts.Settings == nil {
		opts.Settings = NewSettingsService(nil, opts.Telemetry)
	}
	if opts.Hook == nil {
		opts.Hook = noopStateHook{}
	}
	svc := &Service{opts: opts}
	if svc.opts.Sessions == nil {
		svc.opts.Sessions = NewSessionManager(svc.newStore)
	}
	return svc, nil
}

// newStore seeds a session with the first known code and the preferred
// default section.
func (s *Service) newStore(sessionID string) *Store {
	var code ActivityCode
	if options, err := s.opts.Directory.ActivityCodes(context.Background()); err == nil && len(options) > 0 {
		code = options[0].Code
	}
	return NewStore(StoreOptions{
		SessionID:     sessionID,
		ActivityCode:  code,
		ActiveSection: s.opts.Settings.Current().DefaultSection,
		Hook:          s.opts.Hook,
	})
}

// Registry exposes the section registry.
func (s *Service) Registry() *Registry { return s.opts.Registry }

// Settings exposes the settings service.
func (s *Service) Settings() *SettingsService { return s.opts.Settings }

// Sessions exposes the session manager.
func (s *Service) Sessions() *SessionManager { return s.opts.Sessions }

// Session returns the session for id, creating it when unknown.
func (s *Service) Session(id string) (*Session, bool) {
	return s.opts.Sessions.Ensure(id)
}

func (s *Service) session(id string) (*Session, error) {
	if id == "" {
		return nil, ErrSessionRequired
	}
	sess, _ := s.opts.Sessions.Ensure(id)
	return sess, nil
}

// Snapshot returns the state of a session.
func (s *Service) Snapshot(sessionID string) (Snapshot, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return Snapshot{}, err
	}
	return sess.Store.Snapshot(), nil
}

// SetActivityCode switches the session's activity code.
func (s *Service) SetActivityCode(ctx context.Context, sessionID string, code ActivityCode) (Snapshot, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return Snapshot{}, err
	}
	before := sess.Store.Snapshot().Key()
	snap := sess.Store.SetActivityCode(ctx, code)
	s.afterFilterChange(ctx, sess, before, snap, "dashboard.state.activity_code")
	return snap, nil
}

// SetDateRange switches the session's date window.
func (s *Service) SetDateRange(ctx context.Context, sessionID string, rng DateRange) (Snapshot, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return Snapshot{}, err
	}
	before := sess.Store.Snapshot().Key()
	snap := sess.Store.SetDateRange(ctx, rng)
	s.afterFilterChange(ctx, sess, before, snap, "dashboard.state.date_range")
	return snap, nil
}

func (s *Service) afterFilterChange(ctx context.Context, sess *Session, before string, snap Snapshot, event string) {
	if snap.Key() != before {
		sess.views.invalidate()
	}
	s.recordTelemetry(ctx, event, map[string]any{
		"session":    sess.ID,
		"filter":     snap.Key(),
		"generation": snap.Generation,
	})
}

// SetActiveSection switches the visible section.
func (s *Service) SetActiveSection(ctx context.Context, sessionID string, id SectionID) (Snapshot, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return Snapshot{}, err
	}
	snap, err := sess.Store.SetActiveSection(ctx, id)
	if err != nil {
		return snap, fmt.Errorf("dashboard: set section %q: %w", id, err)
	}
	s.recordTelemetry(ctx, "dashboard.state.section", map[string]any{
		"session": sess.ID,
		"section": string(id),
	})
	return snap, nil
}

// SetSidebarOpen opens or collapses the sidebar.
func (s *Service) SetSidebarOpen(ctx context.Context, sessionID string, open bool) (Snapshot, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return Snapshot{}, err
	}
	return sess.Store.SetSidebarOpen(ctx, open), nil
}

// ActivityCodes lists the selectable activity codes.
func (s *Service) ActivityCodes(ctx context.Context) ([]ActivityCodeOption, error) {
	return s.opts.Directory.ActivityCodes(ctx)
}

// SectionPayload is the loaded state of one section.
type SectionPayload struct {
	Section    SectionID   `json:"section"`
	Name       string      `json:"name"`
	Title      string      `json:"title"`
	Filters    FilterState `json:"filters"`
	Generation uint64      `json:"generation"`
	Stale      bool        `json:"stale"`
	Cards      []CardState `json:"cards"`
}

// LoadSection loads every card of a section concurrently against the
// session's current filter. A failing card never blocks its siblings. A load
// superseded by a newer one for the same card waits for that one to settle.
// The payload is marked stale when the filter moved during the load or a card
// did not settle.
func (s *Service) LoadSection(ctx context.Context, viewer ViewerContext, id SectionID) (SectionPayload, error) {
	sess, err := s.session(viewer.SessionID)
	if err != nil {
		return SectionPayload{}, err
	}
	section, ok := s.opts.Registry.Section(id)
	if !ok {
		return SectionPayload{}, fmt.Errorf("dashboard: load section %q: %w", id, ErrUnknownSection)
	}
	snap := sess.Store.Snapshot()
	theme := s.opts.Settings.Current().Theme
	cards := s.opts.Registry.Cards(id)
	states := make([]CardState, len(cards))

	var group errgroup.Group
	for i, card := range cards {
		view := sess.views.card(card, card.NameForLocale(viewer.Locale))
		group.Go(func() error {
			loadCtx, ticket := view.begin(ctx, snap.Generation)
			data, err := s.fetchCard(loadCtx, card, snap.FilterState, viewer, theme)
			if view.resolve(ticket, data, err) {
				states[i] = view.snapshot()
				return nil
			}
			s.recordTelemetry(ctx, "dashboard.card.discarded", map[string]any{
				"session":    sess.ID,
				"card":       card.Code,
				"generation": snap.Generation,
			})
			states[i] = view.await(ctx)
			return nil
		})
	}
	_ = group.Wait()

	payload := SectionPayload{
		Section:    id,
		Name:       section.NameForLocale(viewer.Locale),
		Title:      section.TitleForLocale(viewer.Locale),
		Filters:    snap.FilterState,
		Generation: snap.Generation,
		Stale:      sess.Store.Generation() != snap.Generation || !allSettled(states),
		Cards:      states,
	}
	s.recordTelemetry(ctx, "dashboard.section.load", map[string]any{
		"session":    sess.ID,
		"section":    string(id),
		"cards":      len(states),
		"stale":      payload.Stale,
		"generation": snap.Generation,
	})
	return payload, nil
}

// allSettled reports whether every card reached success or error.
func allSettled(states []CardState) bool {
	for _, state := range states {
		if state.Status != ViewSuccess && state.Status != ViewError {
			return false
		}
	}
	return true
}

// CardResult is a stateless card fetch outcome.
type CardResult struct {
	Card  CardDefinition
	Data  WidgetData
	Error *ProviderError
}

// FetchSection loads a section's cards against an explicit filter without
// touching any session view state.
func (s *Service) FetchSection(ctx context.Context, filters FilterState, viewer ViewerContext, id SectionID) ([]CardResult, error) {
	if _, ok := s.opts.Registry.Section(id); !ok {
		return nil, fmt.Errorf("dashboard: fetch section %q: %w", id, ErrUnknownSection)
	}
	theme := s.opts.Settings.Current().Theme
	cards := s.opts.Registry.Cards(id)
	results := make([]CardResult, len(cards))
	var group errgroup.Group
	for i, card := range cards {
		group.Go(func() error {
			data, err := s.fetchCard(ctx, card, filters, viewer, theme)
			results[i] = CardResult{Card: card, Data: data, Error: AsProviderError(err)}
			return nil
		})
	}
	_ = group.Wait()
	return results, nil
}

func (s *Service) fetchCard(ctx context.Context, card CardDefinition, filters FilterState, viewer ViewerContext, theme Theme) (WidgetData, error) {
	provider, ok := s.opts.Registry.Provider(card.Code)
	if !ok || provider == nil {
		return nil, NewProviderError(0, "no provider registered for "+card.Code)
	}
	started := time.Now()
	data, err := provider.Fetch(ctx, WidgetContext{
		Card:    card,
		Filters: filters,
		Viewer:  viewer,
		Theme:   theme,
	})
	if err != nil {
		perr := AsProviderError(err)
		s.recordTelemetry(ctx, "dashboard.card.provider_error", map[string]any{
			"card":    card.Code,
			"section": string(card.Section),
			"status":  perr.Status,
			"error":   perr.Message,
		})
		return nil, perr
	}
	s.recordTelemetry(ctx, "dashboard.card.fetch", map[string]any{
		"card":        card.Code,
		"duration_ms": time.Since(started).Milliseconds(),
	})
	return data, nil
}

func (s *Service) recordTelemetry(ctx context.Context, event string, payload map[string]any) {
	s.opts.Telemetry.Record(ctx, event, payload)
}
