package dashboard

import "context"

func stockCards(metrics StockProvider, b cardBuilder) []cardBlueprint {
	return []cardBlueprint{
		{
			def: CardDefinition{
				Code:          "stock.inventory_discrepancy",
				Name:          "Inventory Discrepancy",
				NameLocalized: map[string]string{"fr": "Écart d'Inventaire"},
				Chart:         string(ChartBar),
			},
			provider: ProviderFunc(func(ctx context.Context, meta WidgetContext) (WidgetData, error) {
				data, err := metrics.InventoryDiscrepancy(ctx, StockQuery{ActivityCode: meta.Filters.ActivityCode})
				if err != nil {
					return nil, err
				}
				expected := make([]ChartPoint, len(data.ByProduct))
				actual := make([]ChartPoint, len(data.ByProduct))
				rows := make([][]string, len(data.ByProduct))
				for i, p := range data.ByProduct {
					expected[i] = ChartPoint{Label: p.ProductName, Value: p.Expected}
					actual[i] = ChartPoint{Label: p.ProductName, Value: p.Actual}
					rows[i] = []string{p.ProductName, FormatNumber(p.Expected), FormatNumber(p.Actual), FormatNumber(p.Discrepancy)}
				}
				return b.build(ctx, meta, cardBody{
					Headline: FormatNumber(data.TotalDiscrepancy),
					Caption:  FormatPercent(data.DiscrepancyRate) + " discrepancy rate",
					Chart: &ChartSpec{
						Kind:   ChartBar,
						Title:  meta.Card.NameForLocale(meta.Viewer.Locale),
						Series: []ChartSeries{series("Expected", expected), series("Actual", actual)},
					},
					Tables: []Table{{Title: "By Product", Columns: []string{"Product", "Expected", "Actual", "Discrepancy"}, Rows: rows}},
					Summary: []SummaryRow{
						{Label: "Total Discrepancy", Value: FormatNumber(data.TotalDiscrepancy)},
						{Label: "Discrepancy Rate", Value: FormatPercent(data.DiscrepancyRate)},
					},
				})
			}),
		},
		{
			def: CardDefinition{
				Code:          "stock.rotation",
				Name:          "Stock Rotation",
				NameLocalized: map[string]string{"fr": "Rotation des Stocks"},
				Chart:         string(ChartBar),
			},
			provider: ProviderFunc(func(ctx context.Context, meta WidgetContext) (WidgetData, error) {
				data, err := metrics.StockRotation(ctx, StockQuery{ActivityCode: meta.Filters.ActivityCode})
				if err != nil {
					return nil, err
				}
				points := make([]ChartPoint, len(data.ByCategory))
				for i, c := range data.ByCategory {
					points[i] = ChartPoint{Label: c.Category, Value: c.RotationDays}
				}
				slow := make([][]string, len(data.SlowMovingProducts))
				for i, p := range data.SlowMovingProducts {
					slow[i] = []string{p.ProductName, FormatNumber(p.DaysInStock) + " days"}
				}
				return b.build(ctx, meta, cardBody{
					Headline: FormatNumber(data.AverageRotationDays) + " days",
					Caption:  "Average rotation",
					Chart: &ChartSpec{
						Kind:   ChartBar,
						Title:  meta.Card.NameForLocale(meta.Viewer.Locale),
						Series: []ChartSeries{series("Days", points)},
					},
					Tables:  []Table{{Title: "Slow Moving Products", Columns: []string{"Product", "In Stock"}, Rows: slow}},
					Summary: []SummaryRow{{Label: "Average Rotation (days)", Value: FormatNumber(data.AverageRotationDays)}},
				})
			}),
		},
		{
			def: CardDefinition{
				Code:          "stock.occupancy",
				Name:          "Warehouse Occupancy Rate",
				NameLocalized: map[string]string{"fr": "Taux d'Occupation des Entrepôts"},
				Chart:         string(ChartBar),
			},
			provider: ProviderFunc(func(ctx context.Context, meta WidgetContext) (WidgetData, error) {
				data, err := metrics.OccupancyRate(ctx, StockQuery{ActivityCode: meta.Filters.ActivityCode})
				if err != nil {
					return nil, err
				}
				points := make([]ChartPoint, len(data.ByWarehouse))
				rows := make([][]string, len(data.ByWarehouse))
				summary := []SummaryRow{{Label: "Overall", Value: FormatPercent(data.OverallRate)}}
				for i, w := range data.ByWarehouse {
					points[i] = ChartPoint{Label: w.WarehouseName, Value: w.OccupancyRate}
					rows[i] = []string{w.WarehouseName, FormatPercent(w.OccupancyRate), FormatNumber(w.Used) + " / " + FormatNumber(w.Capacity)}
					summary = append(summary, SummaryRow{Label: w.WarehouseName, Value: FormatPercent(w.OccupancyRate)})
				}
				return b.build(ctx, meta, cardBody{
					Headline: FormatPercent(data.OverallRate),
					Caption:  trendCaption(data.Trend),
					Trend:    data.Trend,
					Chart: &ChartSpec{
						Kind:   ChartBar,
						Title:  meta.Card.NameForLocale(meta.Viewer.Locale),
						Series: []ChartSeries{series("Occupancy", points)},
					},
					Tables:  []Table{{Title: "By Warehouse", Columns: []string{"Warehouse", "Occupancy", "Used / Capacity"}, Rows: rows}},
					Summary: summary,
				})
			}),
		},
	}
}
