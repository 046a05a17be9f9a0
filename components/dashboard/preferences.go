package dashboard

import (
	"context"
	"fmt"
	"strconv"
	"sync"
)

// Theme is the colour scheme of the shell.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Valid reports whether t is a known theme.
func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}

// Toggle returns the opposite theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// Density controls table and card spacing.
type Density string

const (
	DensityCompact     Density = "compact"
	DensityDefault     Density = "default"
	DensityComfortable Density = "comfortable"
)

// Valid reports whether d is a known density.
func (d Density) Valid() bool {
	switch d {
	case DensityCompact, DensityDefault, DensityComfortable:
		return true
	}
	return false
}

// Preference keys.
const (
	PreferenceTheme              = "theme"
	PreferenceDensity            = "density"
	PreferenceDefaultSection     = "default_section"
	PreferenceEmailNotifications = "email_notifications"
	PreferenceDashboardAlerts    = "dashboard_alerts"
)

// Settings are the user-level dashboard preferences.
type Settings struct {
	Theme              Theme     `json:"theme"`
	Density            Density   `json:"density"`
	DefaultSection     SectionID `json:"default_section"`
	EmailNotifications bool      `json:"email_notifications"`
	DashboardAlerts    bool      `json:"dashboard_alerts"`
}

// DefaultSettings returns the settings used before anything is stored.
func DefaultSettings() Settings {
	return Settings{
		Theme:              ThemeLight,
		Density:            DensityDefault,
		DefaultSection:     DefaultSection,
		EmailNotifications: true,
		DashboardAlerts:    true,
	}
}

func (s Settings) values() map[string]string {
	return map[string]string{
		PreferenceTheme:              string(s.Theme),
		PreferenceDensity:            string(s.Density),
		PreferenceDefaultSection:     string(s.DefaultSection),
		PreferenceEmailNotifications: strconv.FormatBool(s.EmailNotifications),
		PreferenceDashboardAlerts:    strconv.FormatBool(s.DashboardAlerts),
	}
}

// apply copies a stored value onto s, ignoring values it cannot parse.
func (s *Settings) apply(key, value string) {
	switch key {
	case PreferenceTheme:
		if theme := Theme(value); theme.Valid() {
			s.Theme = theme
		}
	case PreferenceDensity:
		if density := Density(value); density.Valid() {
			s.Density = density
		}
	case PreferenceDefaultSection:
		if id := SectionID(value); id.Valid() {
			s.DefaultSection = id
		}
	case PreferenceEmailNotifications:
		if b, err := strconv.ParseBool(value); err == nil {
			s.EmailNotifications = b
		}
	case PreferenceDashboardAlerts:
		if b, err := strconv.ParseBool(value); err == nil {
			s.DashboardAlerts = b
		}
	}
}

// Validate rejects settings holding an unknown theme, density or section.
func (s Settings) Validate() error {
	switch {
	case !s.Theme.Valid():
		return fmt.Errorf("%w: theme %q", ErrInvalidPreferences, s.Theme)
	case !s.Density.Valid():
		return fmt.Errorf("%w: density %q", ErrInvalidPreferences, s.Density)
	case !s.DefaultSection.Valid():
		return fmt.Errorf("%w: default section %q", ErrInvalidPreferences, s.DefaultSection)
	}
	return nil
}

func preferenceKeys() []string {
	return []string{
		PreferenceTheme,
		PreferenceDensity,
		PreferenceDefaultSection,
		PreferenceEmailNotifications,
		PreferenceDashboardAlerts,
	}
}

// PreferenceStore is a flat key-value store for settings.
type PreferenceStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// InMemoryPreferenceStore provides a concurrency-safe default store.
type InMemoryPreferenceStore struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewInMemoryPreferenceStore creates an empty preference store.
func NewInMemoryPreferenceStore() *InMemoryPreferenceStore {
	return &InMemoryPreferenceStore{data: make(map[string]string)}
}

// Get returns the stored value for key.
func (s *InMemoryPreferenceStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.data[key]
	return value, ok, nil
}

// Set stores value under key.
func (s *InMemoryPreferenceStore) Set(_ context.Context, key, value string) error {
	if key == "" {
		return fmt.Errorf("dashboard: preference key is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

// SettingsService owns the process-wide settings. It reads the store once
// on Load and writes through on every change.
type SettingsService struct {
	mu        sync.RWMutex
	store     PreferenceStore
	validator *PreferencesValidator
	telemetry Telemetry
	current   Settings
	loaded    bool
}

// NewSettingsService wires a store. A nil store keeps settings in memory.
func NewSettingsService(store PreferenceStore, telemetry Telemetry) *SettingsService {
	if store == nil {
		store = NewInMemoryPreferenceStore()
	}
	return &SettingsService{
		store:     store,
		validator: NewPreferencesValidator(),
		telemetry: normalizeTelemetry(telemetry),
		current:   DefaultSettings(),
	}
}

// Load reads every key from the store. Later calls are no-ops.
func (s *SettingsService) Load(ctx context.Context) (Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return s.current, nil
	}
	next := DefaultSettings()
	for _, key := range preferenceKeys() {
		value, ok, err := s.store.Get(ctx, key)
		if err != nil {
			return s.current, fmt.Errorf("dashboard: load preference %s: %w", key, err)
		}
		if ok {
			next.apply(key, value)
		}
	}
	s.current = next
	s.loaded = true
	return s.current, nil
}

// Current returns the in-memory settings.
func (s *SettingsService) Current() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// SetTheme stores theme.
func (s *SettingsService) SetTheme(ctx context.Context, theme Theme) (Settings, error) {
	if !theme.Valid() {
		return s.Current(), fmt.Errorf("dashboard: invalid theme %q", theme)
	}
	next := s.Current()
	next.Theme = theme
	return s.Save(ctx, next)
}

// ToggleTheme flips between light and dark.
func (s *SettingsService) ToggleTheme(ctx context.Context) (Settings, error) {
	return s.SetTheme(ctx, s.Current().Theme.Toggle())
}

// Save persists the keys of next that differ from the current settings.
// Invalid settings are rejected before anything is written.
func (s *SettingsService) Save(ctx context.Context, next Settings) (Settings, error) {
	if err := next.Validate(); err != nil {
		return s.Current(), err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	before, after := s.current.values(), next.values()
	changed := make([]string, 0)
	for _, key := range preferenceKeys() {
		value := after[key]
		if before[key] == value {
			continue
		}
		if err := s.store.Set(ctx, key, value); err != nil {
			return s.current, fmt.Errorf("dashboard: save preference %s: %w", key, err)
		}
		s.current.apply(key, value)
		changed = append(changed, key)
	}
	if len(changed) > 0 {
		s.telemetry.Record(ctx, "dashboard.preferences.saved", map[string]any{
			"keys": changed,
		})
	}
	return s.current, nil
}

// Apply validates a raw payload and saves the fields it carries.
func (s *SettingsService) Apply(ctx context.Context, payload map[string]any) (Settings, error) {
	if err := s.validator.Validate(payload); err != nil {
		return s.Current(), err
	}
	next := s.Current()
	for key, raw := range payload {
		switch value := raw.(type) {
		case string:
			next.apply(key, value)
		case bool:
			next.apply(key, strconv.FormatBool(value))
		}
	}
	return s.Save(ctx, next)
}
