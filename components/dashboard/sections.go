package dashboard

import (
	"context"
	"fmt"
)

// SectionDeps are the collaborators card providers need.
type SectionDeps struct {
	Metrics MetricsProvider
	Charts  ChartRenderer
}

// cardBlueprint pairs a definition with its provider.
type cardBlueprint struct {
	def      CardDefinition
	provider Provider
}

// RegisterDefaults registers every section and its cards on reg.
func RegisterDefaults(reg *Registry, deps SectionDeps) error {
	if reg == nil {
		return fmt.Errorf("dashboard: registry is required")
	}
	if deps.Metrics == nil {
		return ErrProviderMissing
	}
	if deps.Charts == nil {
		deps.Charts = NewEChartsRenderer()
	}
	for _, id := range AllSections() {
		def, ok := defaultSectionDefinition(id)
		if !ok {
			return fmt.Errorf("dashboard: no definition for section %q: %w", id, ErrUnknownSection)
		}
		if err := reg.RegisterSection(def); err != nil {
			return err
		}
		for _, card := range sectionCards(id, deps) {
			card.def.Section = id
			if err := reg.RegisterCard(card.def, card.provider); err != nil {
				return err
			}
		}
	}
	return nil
}

// sectionCards is exhaustive over SectionID.
func sectionCards(id SectionID, deps SectionDeps) []cardBlueprint {
	b := cardBuilder{charts: deps.Charts}
	switch id {
	case SectionDailyReports:
		return dailyReportCards(deps.Metrics, b)
	case SectionProductivity:
		return productivityCards(deps.Metrics, b)
	case SectionFinancial:
		return financialCards(deps.Metrics, b)
	case SectionAlerts:
		return alertCards(deps.Metrics, b)
	case SectionStock:
		return stockCards(deps.Metrics, b)
	case SectionQuality:
		return qualityCards(deps.Metrics, b)
	case SectionExport:
		return nil
	}
	return nil
}

// SummaryRow is one label/value pair of a card, also used for export.
type SummaryRow struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Table is a small tabular breakdown rendered under a card.
type Table struct {
	Title   string     `json:"title"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// cardBody is the formatted content of a card before it becomes WidgetData.
type cardBody struct {
	Headline string
	Caption  string
	Trend    Trend
	Chart    *ChartSpec
	Tables   []Table
	Summary  []SummaryRow
	Extra    WidgetData
}

type cardBuilder struct {
	charts ChartRenderer
}

// build renders the chart and flattens body into WidgetData. A chart that
// fails to render leaves the card usable without it.
func (b cardBuilder) build(ctx context.Context, meta WidgetContext, body cardBody) (WidgetData, error) {
	data := WidgetData{
		"headline": body.Headline,
		"summary":  body.Summary,
	}
	if body.Caption != "" {
		data["caption"] = body.Caption
	}
	if body.Trend != "" {
		data["trend"] = body.Trend
	}
	if len(body.Tables) > 0 {
		data["tables"] = body.Tables
	}
	if body.Chart != nil && len(body.Chart.Series) > 0 && b.charts != nil {
		spec := *body.Chart
		spec.Theme = meta.Theme
		if spec.Height <= 0 {
			spec.Height = meta.Card.Height
		}
		html, err := b.charts.RenderChart(ctx, spec)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			data["chart_error"] = err.Error()
		} else {
			data["chart_html"] = html
		}
	}
	for key, value := range body.Extra {
		data[key] = value
	}
	return data, nil
}

func rangeQuery(f FilterState) RangeQuery {
	return RangeQuery{ActivityCode: f.ActivityCode, Range: f.DateRange}
}

func trendCaption(trend Trend) string {
	switch trend {
	case TrendUp:
		return "Trending up"
	case TrendDown:
		return "Trending down"
	case TrendStable:
		return "Stable"
	}
	return ""
}

func series(name string, points []ChartPoint) ChartSeries {
	return ChartSeries{Name: name, Points: points}
}
