package dashboard

// DefaultSectionDefinitions returns the built-in sections in navigation order.
func DefaultSectionDefinitions() []SectionDefinition {
	out := make([]SectionDefinition, 0, len(AllSections()))
	for _, id := range AllSections() {
		def, _ := defaultSectionDefinition(id)
		out = append(out, def)
	}
	return out
}

// defaultSectionDefinition maps every SectionID to its metadata. The switch
// is exhaustive over the closed set; adding an id without a case fails the
// section tests.
func defaultSectionDefinition(id SectionID) (SectionDefinition, bool) {
	switch id {
	case SectionDailyReports:
		return SectionDefinition{
			ID:             id,
			Name:           "Daily Reports",
			NameLocalized:  map[string]string{"fr": "Rapports Journaliers", "en": "Daily Reports"},
			Title:          "Daily Reports",
			TitleLocalized: map[string]string{"fr": "Rapports Journaliers"},
			Icon:           "file-text",
		}, true
	case SectionProductivity:
		return SectionDefinition{
			ID:             id,
			Name:           "Productivity",
			NameLocalized:  map[string]string{"fr": "Productivité", "en": "Productivity"},
			Title:          "Productivity Metrics",
			TitleLocalized: map[string]string{"fr": "Métriques de Productivité"},
			Icon:           "bar-chart-3",
		}, true
	case SectionFinancial:
		return SectionDefinition{
			ID:             id,
			Name:           "Financial",
			NameLocalized:  map[string]string{"fr": "Financier", "en": "Financial"},
			Title:          "Financial Metrics",
			TitleLocalized: map[string]string{"fr": "Métriques Financières"},
			Icon:           "trending-up",
		}, true
	case SectionAlerts:
		return SectionDefinition{
			ID:             id,
			Name:           "Alerts",
			NameLocalized:  map[string]string{"fr": "Alertes", "en": "Alerts"},
			Title:          "System Alert Status",
			TitleLocalized: map[string]string{"fr": "État des Alertes Système"},
			Icon:           "bell",
		}, true
	case SectionStock:
		return SectionDefinition{
			ID:             id,
			Name:           "Stock & Storage",
			NameLocalized:  map[string]string{"fr": "Stock & Stockage", "en": "Stock & Storage"},
			Title:          "Stock and Storage Metrics",
			TitleLocalized: map[string]string{"fr": "Métriques de Stock et Stockage"},
			Icon:           "package-search",
		}, true
	case SectionQuality:
		return SectionDefinition{
			ID:             id,
			Name:           "Quality Assurance",
			NameLocalized:  map[string]string{"fr": "Assurance Qualité", "en": "Quality Assurance"},
			Title:          "Quality Assurance",
			TitleLocalized: map[string]string{"fr": "Assurance Qualité"},
			Icon:           "circle-check",
		}, true
	case SectionExport:
		return SectionDefinition{
			ID:             id,
			Name:           "Export Data",
			NameLocalized:  map[string]string{"fr": "Exporter les Données", "en": "Export Data"},
			Title:          "Export Data",
			TitleLocalized: map[string]string{"fr": "Exporter les Données"},
			Icon:           "download",
		}, true
	}
	return SectionDefinition{}, false
}
