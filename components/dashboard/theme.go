package dashboard

import (
	"sort"
	"strings"
)

// ThemeSelection carries resolved theme details for the shell.
type ThemeSelection struct {
	Name       Theme
	Tokens     map[string]string
	ChartTheme string
}

var themeTokens = map[Theme]map[string]string{
	ThemeLight: {
		"background":             "0 0% 100%",
		"foreground":             "222.2 84% 4.9%",
		"card":                   "0 0% 100%",
		"muted":                  "210 40% 96.1%",
		"muted-foreground":       "215.4 16.3% 46.9%",
		"primary":                "221.2 83.2% 53.3%",
		"info":                   "199 89% 48%",
		"info-foreground":        "0 0% 100%",
		"warning":                "38 92% 50%",
		"warning-foreground":     "0 0% 100%",
		"destructive":            "0 84.2% 60.2%",
		"destructive-foreground": "210 40% 98%",
		"border":                 "214.3 31.8% 91.4%",
	},
	ThemeDark: {
		"background":             "222.2 84% 4.9%",
		"foreground":             "210 40% 98%",
		"card":                   "222.2 84% 4.9%",
		"muted":                  "217.2 32.6% 17.5%",
		"muted-foreground":       "215 20.2% 65.1%",
		"primary":                "217.2 91.2% 59.8%",
		"info":                   "199 89% 38%",
		"info-foreground":        "210 40% 98%",
		"warning":                "38 92% 40%",
		"warning-foreground":     "210 40% 98%",
		"destructive":            "0 62.8% 30.6%",
		"destructive-foreground": "210 40% 98%",
		"border":                 "217.2 32.6% 17.5%",
	},
}

// SelectTheme resolves tokens and chart theme for theme. Unknown values
// fall back to light.
func SelectTheme(theme Theme) *ThemeSelection {
	if !theme.Valid() {
		theme = ThemeLight
	}
	tokens := make(map[string]string, len(themeTokens[theme]))
	for key, value := range themeTokens[theme] {
		tokens[key] = value
	}
	return &ThemeSelection{
		Name:       theme,
		Tokens:     tokens,
		ChartTheme: ChartThemeFor(theme),
	}
}

// CSSVariables normalizes token keys into CSS variable names.
func (theme *ThemeSelection) CSSVariables() map[string]string {
	if theme == nil || len(theme.Tokens) == 0 {
		return nil
	}
	vars := make(map[string]string, len(theme.Tokens))
	for key, value := range theme.Tokens {
		name := normalizeCSSVariable(key)
		if name == "" {
			continue
		}
		vars[name] = value
	}
	return vars
}

// CSSVariablesInline renders the CSS variable map as a style string, sorted
// by name so output is stable.
func (theme *ThemeSelection) CSSVariablesInline() string {
	vars := theme.CSSVariables()
	if len(vars) == 0 {
		return ""
	}
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)
	var builder strings.Builder
	for _, name := range names {
		if vars[name] == "" {
			continue
		}
		builder.WriteString(name)
		builder.WriteString(": ")
		builder.WriteString(vars[name])
		builder.WriteString("; ")
	}
	return strings.TrimSpace(builder.String())
}

func normalizeCSSVariable(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	if strings.HasPrefix(name, "--") {
		return name
	}
	return "--" + name
}
