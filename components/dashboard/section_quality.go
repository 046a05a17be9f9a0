package dashboard

import "context"

func qualityCards(metrics QualityProvider, b cardBuilder) []cardBlueprint {
	return []cardBlueprint{
		{
			def: CardDefinition{
				Code:          "quality.defect_rate",
				Name:          "Defect Rate",
				NameLocalized: map[string]string{"fr": "Taux de Défaut"},
				Chart:         string(ChartLine),
			},
			provider: ProviderFunc(func(ctx context.Context, meta WidgetContext) (WidgetData, error) {
				data, err := metrics.DefectRate(ctx, DefectRateQuery{ActivityCode: meta.Filters.ActivityCode})
				if err != nil {
					return nil, err
				}
				points := make([]ChartPoint, len(data.Historical))
				for i, h := range data.Historical {
					points[i] = ChartPoint{Label: h.Date, Value: h.Rate}
				}
				rows := make([][]string, len(data.ByCategory))
				summary := []SummaryRow{{Label: "Overall", Value: FormatPercent(data.OverallRate)}}
				for i, c := range data.ByCategory {
					rows[i] = []string{c.Category, FormatPercent(c.Rate)}
					summary = append(summary, SummaryRow{Label: c.Category, Value: FormatPercent(c.Rate)})
				}
				return b.build(ctx, meta, cardBody{
					Headline: FormatPercent(data.OverallRate),
					Caption:  "Defect rate trend",
					Chart: &ChartSpec{
						Kind:   ChartLine,
						Title:  meta.Card.NameForLocale(meta.Viewer.Locale),
						Series: []ChartSeries{series("Defect Rate", points)},
					},
					Tables:  []Table{{Title: "By Category", Columns: []string{"Category", "Rate"}, Rows: rows}},
					Summary: summary,
				})
			}),
		},
		{
			def: CardDefinition{
				Code:          "quality.returns",
				Name:          "Returns Analysis",
				NameLocalized: map[string]string{"fr": "Analyse des Retours"},
				Chart:         string(ChartPie),
			},
			provider: ProviderFunc(func(ctx context.Context, meta WidgetContext) (WidgetData, error) {
				data, err := metrics.ReturnsAnalysis(ctx, ReturnsQuery{ActivityCode: meta.Filters.ActivityCode})
				if err != nil {
					return nil, err
				}
				points := make([]ChartPoint, len(data.ByReason))
				for i, r := range data.ByReason {
					points[i] = ChartPoint{Label: r.Reason, Value: r.Count}
				}
				rows := make([][]string, len(data.ByProduct))
				for i, p := range data.ByProduct {
					rows[i] = []string{p.ProductName, FormatNumber(p.ReturnCount), FormatPercent(p.ReturnRate)}
				}
				return b.build(ctx, meta, cardBody{
					Headline: FormatNumber(data.TotalReturns),
					Caption:  FormatPercent(data.ReturnRate) + " return rate",
					Chart: &ChartSpec{
						Kind:   ChartPie,
						Title:  meta.Card.NameForLocale(meta.Viewer.Locale),
						Series: []ChartSeries{series("Reasons", points)},
					},
					Tables: []Table{{Title: "By Product", Columns: []string{"Product", "Returns", "Rate"}, Rows: rows}},
					Summary: []SummaryRow{
						{Label: "Total Returns", Value: FormatNumber(data.TotalReturns)},
						{Label: "Return Rate", Value: FormatPercent(data.ReturnRate)},
					},
				})
			}),
		},
	}
}
