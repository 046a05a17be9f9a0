package dashboard

import "context"

func dailyReportCards(metrics DailyReportProvider, b cardBuilder) []cardBlueprint {
	return []cardBlueprint{
		{
			def: CardDefinition{
				Code:          "daily.orders",
				Name:          "Orders Summary",
				NameLocalized: map[string]string{"fr": "Résumé des Commandes"},
				Chart:         string(ChartLine),
				Height:        300,
			},
			provider: ProviderFunc(func(ctx context.Context, meta WidgetContext) (WidgetData, error) {
				data, err := metrics.DailyOrders(ctx, rangeQuery(meta.Filters))
				if err != nil {
					return nil, err
				}
				labels := make([]string, len(data.Daily))
				received := make([]ChartPoint, len(data.Daily))
				shipped := make([]ChartPoint, len(data.Daily))
				for i, day := range data.Daily {
					labels[i] = day.Date
					received[i] = ChartPoint{Label: day.Date, Value: day.Received}
					shipped[i] = ChartPoint{Label: day.Date, Value: day.Shipped}
				}
				return b.build(ctx, meta, cardBody{
					Headline: FormatNumber(data.TotalReceived),
					Caption:  "Orders received from " + FormatDateRange(meta.Filters.DateRange),
					Chart: &ChartSpec{
						Kind:   ChartLine,
						Title:  meta.Card.NameForLocale(meta.Viewer.Locale),
						XAxis:  labels,
						Series: []ChartSeries{series("Orders Received", received), series("Orders Shipped", shipped)},
					},
					Summary: []SummaryRow{
						{Label: "Orders Received", Value: FormatNumber(data.TotalReceived)},
						{Label: "Orders Shipped", Value: FormatNumber(data.TotalShipped)},
					},
				})
			}),
		},
		{
			def: CardDefinition{
				Code:          "daily.stock_by_location",
				Name:          "Stock Summary",
				NameLocalized: map[string]string{"fr": "Résumé du Stock"},
				Chart:         string(ChartBar),
				Height:        300,
			},
			provider: ProviderFunc(func(ctx context.Context, meta WidgetContext) (WidgetData, error) {
				data, err := metrics.StockByLocation(ctx, rangeQuery(meta.Filters))
				if err != nil {
					return nil, err
				}
				points := make([]ChartPoint, len(data.ByLocation))
				rows := make([][]string, len(data.ByLocation))
				summary := []SummaryRow{{Label: "Total Quantity", Value: FormatNumber(data.TotalQuantity)}}
				for i, loc := range data.ByLocation {
					points[i] = ChartPoint{Label: loc.Location, Value: loc.Quantity}
					rows[i] = []string{loc.Location, FormatNumber(loc.Quantity)}
					summary = append(summary, SummaryRow{Label: loc.Location, Value: FormatNumber(loc.Quantity)})
				}
				return b.build(ctx, meta, cardBody{
					Headline: FormatNumber(data.TotalQuantity),
					Caption:  "Units in stock across locations",
					Chart: &ChartSpec{
						Kind:   ChartBar,
						Title:  meta.Card.NameForLocale(meta.Viewer.Locale),
						Series: []ChartSeries{series("Quantity", points)},
					},
					Tables:  []Table{{Title: "Stock Summary by Location", Columns: []string{"Location", "Quantity"}, Rows: rows}},
					Summary: summary,
				})
			}),
		},
		{
			def: CardDefinition{
				Code:          "daily.transporters",
				Name:          "Transporter Summary",
				NameLocalized: map[string]string{"fr": "Résumé des Transporteurs"},
				Chart:         string(ChartPie),
				Height:        300,
			},
			provider: ProviderFunc(func(ctx context.Context, meta WidgetContext) (WidgetData, error) {
				data, err := metrics.TransporterDeliveries(ctx, rangeQuery(meta.Filters))
				if err != nil {
					return nil, err
				}
				points := make([]ChartPoint, len(data.ByTransporter))
				rows := make([][]string, len(data.ByTransporter))
				summary := []SummaryRow{{Label: "Total Deliveries", Value: FormatNumber(data.TotalDeliveries)}}
				for i, tr := range data.ByTransporter {
					points[i] = ChartPoint{Label: tr.Transporter, Value: tr.Deliveries}
					rows[i] = []string{tr.Transporter, FormatNumber(tr.Deliveries)}
					summary = append(summary, SummaryRow{Label: tr.Transporter, Value: FormatNumber(tr.Deliveries)})
				}
				return b.build(ctx, meta, cardBody{
					Headline: FormatNumber(data.TotalDeliveries),
					Caption:  "Deliveries by transporter",
					Chart: &ChartSpec{
						Kind:   ChartPie,
						Title:  meta.Card.NameForLocale(meta.Viewer.Locale),
						Series: []ChartSeries{series("Deliveries", points)},
					},
					Tables:  []Table{{Title: "Transporter Summary", Columns: []string{"Transporter", "Deliveries"}, Rows: rows}},
					Summary: summary,
				})
			}),
		},
	}
}
