package dashboard

import "context"

func financialCards(metrics FinancialProvider, b cardBuilder) []cardBlueprint {
	return []cardBlueprint{
		{
			def: CardDefinition{
				Code:          "financial.revenue_comparison",
				Name:          "Revenue Comparison",
				NameLocalized: map[string]string{"fr": "Comparaison du Chiffre d'Affaires"},
				Chart:         string(ChartBar),
			},
			provider: ProviderFunc(func(ctx context.Context, meta WidgetContext) (WidgetData, error) {
				data, err := metrics.RevenueComparison(ctx, RevenueComparisonQuery{
					ActivityCode: meta.Filters.ActivityCode,
					Current:      meta.Filters.DateRange,
				})
				if err != nil {
					return nil, err
				}
				current := make([]ChartPoint, len(data.DailyData))
				previous := make([]ChartPoint, len(data.DailyData))
				for i, day := range data.DailyData {
					current[i] = ChartPoint{Label: day.Date, Value: day.CurrentRevenue}
					previous[i] = ChartPoint{Label: day.Date, Value: day.PreviousRevenue}
				}
				trend := TrendStable
				switch {
				case data.PercentageChange > 0:
					trend = TrendUp
				case data.PercentageChange < 0:
					trend = TrendDown
				}
				return b.build(ctx, meta, cardBody{
					Headline: FormatCurrency(data.CurrentPeriod.Revenue),
					Caption:  FormatPercent(data.PercentageChange) + " vs previous period",
					Trend:    trend,
					Chart: &ChartSpec{
						Kind:   ChartBar,
						Title:  meta.Card.NameForLocale(meta.Viewer.Locale),
						Series: []ChartSeries{series("Current", current), series("Previous", previous)},
					},
					Summary: []SummaryRow{
						{Label: "Current Period", Value: FormatCurrency(data.CurrentPeriod.Revenue)},
						{Label: "Previous Period", Value: FormatCurrency(data.PreviousPeriod.Revenue)},
						{Label: "Change", Value: FormatPercent(data.PercentageChange)},
					},
				})
			}),
		},
		{
			def: CardDefinition{
				Code:          "financial.shipping_cost",
				Name:          "Shipping Cost Breakdown",
				NameLocalized: map[string]string{"fr": "Répartition des Coûts d'Expédition"},
				Chart:         string(ChartPie),
			},
			provider: ProviderFunc(func(ctx context.Context, meta WidgetContext) (WidgetData, error) {
				data, err := metrics.ShippingCost(ctx, rangeQuery(meta.Filters))
				if err != nil {
					return nil, err
				}
				points := make([]ChartPoint, len(data.ByCarrier))
				carriers := make([][]string, len(data.ByCarrier))
				for i, c := range data.ByCarrier {
					points[i] = ChartPoint{Label: c.Carrier, Value: c.Cost}
					carriers[i] = []string{c.Carrier, FormatCurrency(c.Cost), FormatPercent(c.Percentage)}
				}
				destinations := make([][]string, len(data.ByDestination))
				for i, d := range data.ByDestination {
					destinations[i] = []string{d.Destination, FormatCurrency(d.Cost), FormatPercent(d.Percentage)}
				}
				return b.build(ctx, meta, cardBody{
					Headline: FormatCurrency(data.TotalCost),
					Caption:  "Total shipping cost",
					Chart: &ChartSpec{
						Kind:   ChartPie,
						Title:  meta.Card.NameForLocale(meta.Viewer.Locale),
						Series: []ChartSeries{series("Carriers", points)},
					},
					Tables: []Table{
						{Title: "By Carrier", Columns: []string{"Carrier", "Cost", "Share"}, Rows: carriers},
						{Title: "By Destination", Columns: []string{"Destination", "Cost", "Share"}, Rows: destinations},
					},
					Summary: []SummaryRow{{Label: "Total Cost", Value: FormatCurrency(data.TotalCost)}},
				})
			}),
		},
		{
			def: CardDefinition{
				Code:          "financial.cost_evolution",
				Name:          "Logistics Cost Evolution",
				NameLocalized: map[string]string{"fr": "Évolution des Coûts Logistiques"},
				Chart:         string(ChartLine),
			},
			provider: ProviderFunc(func(ctx context.Context, meta WidgetContext) (WidgetData, error) {
				data, err := metrics.LogisticsCostEvolution(ctx, rangeQuery(meta.Filters))
				if err != nil {
					return nil, err
				}
				labels := make([]string, len(data.TotalCosts))
				total := make([]ChartPoint, len(data.TotalCosts))
				var sum float64
				for i, c := range data.TotalCosts {
					labels[i] = c.Date
					total[i] = ChartPoint{Label: c.Date, Value: c.Cost}
					sum += c.Cost
				}
				chartSeries := []ChartSeries{series("Total", total)}
				summary := []SummaryRow{{Label: "Total", Value: FormatCurrency(sum)}}
				for _, cat := range data.ByCategory {
					points := make([]ChartPoint, len(cat.Costs))
					var catSum float64
					for i, c := range cat.Costs {
						points[i] = ChartPoint{Label: c.Date, Value: c.Cost}
						catSum += c.Cost
					}
					chartSeries = append(chartSeries, series(cat.Category, points))
					summary = append(summary, SummaryRow{Label: cat.Category, Value: FormatCurrency(catSum)})
				}
				return b.build(ctx, meta, cardBody{
					Headline: FormatCurrency(sum),
					Caption:  "Logistics costs over the period",
					Chart: &ChartSpec{
						Kind:   ChartLine,
						Title:  meta.Card.NameForLocale(meta.Viewer.Locale),
						XAxis:  labels,
						Series: chartSeries,
					},
					Summary: summary,
				})
			}),
		},
		{
			def: CardDefinition{
				Code:          "financial.cost_ratio",
				Name:          "Logistics Cost to Revenue Ratio",
				NameLocalized: map[string]string{"fr": "Ratio Coûts Logistiques / Chiffre d'Affaires"},
				Chart:         string(ChartLine),
			},
			provider: ProviderFunc(func(ctx context.Context, meta WidgetContext) (WidgetData, error) {
				data, err := metrics.LogisticsCostToRevenueRatio(ctx, rangeQuery(meta.Filters))
				if err != nil {
					return nil, err
				}
				points := make([]ChartPoint, len(data.Historical))
				for i, h := range data.Historical {
					points[i] = ChartPoint{Label: h.Date, Value: h.Ratio}
				}
				return b.build(ctx, meta, cardBody{
					Headline: FormatPercent(data.Ratio),
					Caption:  trendCaption(data.Trend),
					Trend:    data.Trend,
					Chart: &ChartSpec{
						Kind:   ChartLine,
						Title:  meta.Card.NameForLocale(meta.Viewer.Locale),
						Series: []ChartSeries{series("Ratio", points)},
					},
					Summary: []SummaryRow{{Label: "Cost to Revenue", Value: FormatPercent(data.Ratio)}},
				})
			}),
		},
	}
}
