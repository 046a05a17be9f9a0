package dashboard

import (
	"fmt"
	"strings"
	"sync"
)

// CardDefinition describes one metric card.
type CardDefinition struct {
	Code          string            `json:"code"`
	Section       SectionID         `json:"section"`
	Name          string            `json:"name"`
	NameLocalized map[string]string `json:"name_localized,omitempty"`
	Description   string            `json:"description,omitempty"`
	Chart         string            `json:"chart,omitempty"`
	Height        int               `json:"height,omitempty"`
}

// NameForLocale returns the card title for locale.
func (def CardDefinition) NameForLocale(locale string) string {
	return ResolveLocalizedValue(def.NameLocalized, locale, def.Name)
}

const defaultCardHeight = 360

func (def CardDefinition) placeholder() string {
	height := def.Height
	if height <= 0 {
		height = defaultCardHeight
	}
	return fmt.Sprintf("%dpx", height)
}

// SectionDefinition describes a dashboard section and its cards.
type SectionDefinition struct {
	ID             SectionID         `json:"id"`
	Name           string            `json:"name"`
	NameLocalized  map[string]string `json:"name_localized,omitempty"`
	Title          string            `json:"title"`
	TitleLocalized map[string]string `json:"title_localized,omitempty"`
	Icon           string            `json:"icon,omitempty"`
	Cards          []string          `json:"cards"`
}

// NameForLocale returns the sidebar label for locale.
func (def SectionDefinition) NameForLocale(locale string) string {
	return ResolveLocalizedValue(def.NameLocalized, locale, def.Name)
}

// TitleForLocale returns the header title for locale.
func (def SectionDefinition) TitleForLocale(locale string) string {
	return ResolveLocalizedValue(def.TitleLocalized, locale, def.Title)
}

// Registry maps sections to cards and cards to providers.
type Registry struct {
	mu        sync.RWMutex
	sections  map[SectionID]SectionDefinition
	cards     map[string]CardDefinition
	providers map[string]Provider
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		sections:  map[SectionID]SectionDefinition{},
		cards:     map[string]CardDefinition{},
		providers: map[string]Provider{},
	}
}

// RegisterSection stores section metadata. Cards listed on def are attached
// as they are registered.
func (r *Registry) RegisterSection(def SectionDefinition) error {
	if !def.ID.Valid() {
		return fmt.Errorf("dashboard: register section %q: %w", def.ID, ErrUnknownSection)
	}
	def.NameLocalized = normalizeLocaleMap(def.NameLocalized)
	def.TitleLocalized = normalizeLocaleMap(def.TitleLocalized)
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.sections[def.ID]; ok && len(def.Cards) == 0 {
		def.Cards = existing.Cards
	}
	r.sections[def.ID] = def
	return nil
}

// RegisterCard stores a card definition with its provider and appends it to
// its section.
func (r *Registry) RegisterCard(def CardDefinition, provider Provider) error {
	if strings.TrimSpace(def.Code) == "" {
		return fmt.Errorf("dashboard: card definition code is required")
	}
	if provider == nil {
		return fmt.Errorf("dashboard: provider for card %s cannot be nil", def.Code)
	}
	def.NameLocalized = normalizeLocaleMap(def.NameLocalized)
	r.mu.Lock()
	defer r.mu.Unlock()
	section, ok := r.sections[def.Section]
	if !ok {
		return fmt.Errorf("dashboard: card %s: section %q not registered", def.Code, def.Section)
	}
	if _, exists := r.cards[def.Code]; !exists {
		section.Cards = append(section.Cards, def.Code)
		r.sections[def.Section] = section
	}
	r.cards[def.Code] = def
	r.providers[def.Code] = provider
	return nil
}

// Section fetches a section by id.
func (r *Registry) Section(id SectionID) (SectionDefinition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.sections[id]
	if ok {
		def.Cards = append([]string(nil), def.Cards...)
	}
	return def, ok
}

// Sections returns registered sections in navigation order.
func (r *Registry) Sections() []SectionDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]SectionDefinition, 0, len(r.sections))
	for _, id := range AllSections() {
		if def, ok := r.sections[id]; ok {
			def.Cards = append([]string(nil), def.Cards...)
			out = append(out, def)
		}
	}
	return out
}

// Card fetches a card definition by code.
func (r *Registry) Card(code string) (CardDefinition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.cards[code]
	return def, ok
}

// Provider fetches the provider of a card.
func (r *Registry) Provider(code string) (Provider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	provider, ok := r.providers[code]
	return provider, ok
}

// Cards returns the card definitions of a section in registration order.
func (r *Registry) Cards(id SectionID) []CardDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	section, ok := r.sections[id]
	if !ok {
		return nil
	}
	out := make([]CardDefinition, 0, len(section.Cards))
	for _, code := range section.Cards {
		if def, ok := r.cards[code]; ok {
			out = append(out, def)
		}
	}
	return out
}
