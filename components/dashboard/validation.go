package dashboard

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ErrInvalidPreferences marks payloads rejected by the preferences schema.
var ErrInvalidPreferences = errors.New("dashboard: invalid preferences")

const preferencesSchemaName = "preferences.json"

func preferencesSchema() map[string]any {
	sections := make([]string, 0, len(AllSections()))
	for _, id := range AllSections() {
		sections = append(sections, string(id))
	}
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			PreferenceTheme:              map[string]any{"type": "string", "enum": []string{string(ThemeLight), string(ThemeDark)}},
			PreferenceDensity:            map[string]any{"type": "string", "enum": []string{string(DensityCompact), string(DensityDefault), string(DensityComfortable)}},
			PreferenceDefaultSection:     map[string]any{"type": "string", "enum": sections},
			PreferenceEmailNotifications: map[string]any{"type": "boolean"},
			PreferenceDashboardAlerts:    map[string]any{"type": "boolean"},
		},
	}
}

// PreferencesValidator checks settings payloads against the preferences schema.
type PreferencesValidator struct {
	schema *jsonschema.Schema
	err    error
}

// NewPreferencesValidator compiles the preferences schema.
func NewPreferencesValidator() *PreferencesValidator {
	v := &PreferencesValidator{}
	data, err := json.Marshal(preferencesSchema())
	if err != nil {
		v.err = fmt.Errorf("dashboard: marshal preferences schema: %w", err)
		return v
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(preferencesSchemaName, strings.NewReader(string(data))); err != nil {
		v.err = fmt.Errorf("dashboard: load preferences schema: %w", err)
		return v
	}
	v.schema, v.err = compiler.Compile(preferencesSchemaName)
	return v
}

// Validate ensures payload satisfies the schema.
func (v *PreferencesValidator) Validate(payload map[string]any) error {
	if v.err != nil {
		return v.err
	}
	// Round-trip so typed values (e.g. Theme) reach the validator as JSON primitives.
	var normalized map[string]any
	if payload == nil {
		normalized = map[string]any{}
	} else {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidPreferences, err)
		}
		if err := json.Unmarshal(data, &normalized); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidPreferences, err)
		}
	}
	if err := v.schema.Validate(normalized); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPreferences, err)
	}
	return nil
}
