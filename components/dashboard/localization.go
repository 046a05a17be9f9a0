package dashboard

import (
	"strings"

	"golang.org/x/text/language"
)

// DefaultLocale is used when a viewer carries no locale.
const DefaultLocale = "fr"

var dashboardTitle = map[string]string{
	"fr": "Tableau de Bord",
	"en": "Dashboard",
}

// DashboardTitle returns the header title shown outside any section.
func DashboardTitle(locale string) string {
	return ResolveLocalizedValue(dashboardTitle, locale, dashboardTitle["en"])
}

// ResolveLocalizedValue picks the translation for locale. A regional tag
// ("fr-CA") falls back to its base language, then to the "default" key,
// then to fallback.
func ResolveLocalizedValue(values map[string]string, locale, fallback string) string {
	if len(values) == 0 {
		return fallback
	}
	for _, candidate := range localeCandidates(locale) {
		if value := lookupLocale(values, candidate); value != "" {
			return value
		}
	}
	return fallback
}

func lookupLocale(values map[string]string, key string) string {
	if value := values[key]; value != "" {
		return value
	}
	for k, value := range values {
		if value != "" && strings.EqualFold(k, key) {
			return value
		}
	}
	return ""
}

func localeCandidates(locale string) []string {
	locale = normalizeLocale(locale)
	if locale == "" {
		return []string{"default"}
	}
	candidates := []string{locale}
	if base := baseLanguage(locale); base != "" && base != locale {
		candidates = append(candidates, base)
	}
	return append(candidates, "default")
}

// baseLanguage returns the language subtag of a BCP 47 tag ("fr" for
// "fr-ca"). Unparseable tags are cut at the first separator.
func baseLanguage(locale string) string {
	if tag, err := language.Parse(locale); err == nil {
		if base, conf := tag.Base(); conf != language.No {
			return base.String()
		}
	}
	if idx := strings.IndexAny(locale, "-_"); idx > 0 {
		return locale[:idx]
	}
	return ""
}

func normalizeLocale(locale string) string {
	return strings.ReplaceAll(strings.TrimSpace(strings.ToLower(locale)), "_", "-")
}

// normalizeLocaleMap lower-cases keys and drops empty translations.
func normalizeLocaleMap(values map[string]string) map[string]string {
	if len(values) == 0 {
		return nil
	}
	normalized := make(map[string]string, len(values))
	for key, value := range values {
		if key = normalizeLocale(key); key != "" && value != "" {
			normalized[key] = value
		}
	}
	return normalized
}
