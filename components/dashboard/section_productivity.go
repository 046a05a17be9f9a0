package dashboard

import "context"

func productivityCards(metrics ProductivityProvider, b cardBuilder) []cardBlueprint {
	return []cardBlueprint{
		{
			def: CardDefinition{
				Code:          "productivity.preparation_time",
				Name:          "Average Preparation Time",
				NameLocalized: map[string]string{"fr": "Temps de Préparation Moyen"},
				Chart:         string(ChartLine),
			},
			provider: ProviderFunc(func(ctx context.Context, meta WidgetContext) (WidgetData, error) {
				data, err := metrics.AveragePreparationTime(ctx, rangeQuery(meta.Filters))
				if err != nil {
					return nil, err
				}
				points := make([]ChartPoint, len(data.DailyData))
				for i, day := range data.DailyData {
					points[i] = ChartPoint{Label: day.Date, Value: day.TimeMinutes}
				}
				summary := []SummaryRow{{Label: "Average", Value: FormatDuration(data.AverageTimeMinutes)}}
				caption := trendCaption(data.Trend)
				if data.PreviousPeriodAverage != nil {
					previous := FormatDuration(*data.PreviousPeriodAverage)
					summary = append(summary, SummaryRow{Label: "Previous Period", Value: previous})
					caption = "Previous period: " + previous
				}
				return b.build(ctx, meta, cardBody{
					Headline: FormatDuration(data.AverageTimeMinutes),
					Caption:  caption,
					Trend:    data.Trend,
					Chart: &ChartSpec{
						Kind:   ChartLine,
						Title:  meta.Card.NameForLocale(meta.Viewer.Locale),
						Series: []ChartSeries{series("Minutes", points)},
					},
					Summary: summary,
				})
			}),
		},
		{
			def: CardDefinition{
				Code:          "productivity.pieces_per_worker",
				Name:          "Pieces per Worker",
				NameLocalized: map[string]string{"fr": "Pièces par Employé"},
				Chart:         string(ChartBar),
			},
			provider: ProviderFunc(func(ctx context.Context, meta WidgetContext) (WidgetData, error) {
				data, err := metrics.PiecesPerWorker(ctx, PiecesPerWorkerQuery{ActivityCode: meta.Filters.ActivityCode})
				if err != nil {
					return nil, err
				}
				points := make([]ChartPoint, len(data.ByTeam))
				rows := make([][]string, len(data.ByTeam))
				summary := []SummaryRow{{Label: "Average", Value: FormatNumber(data.Average)}}
				for i, team := range data.ByTeam {
					points[i] = ChartPoint{Label: team.TeamName, Value: team.PiecesPerWorker}
					rows[i] = []string{team.TeamName, FormatNumber(team.PiecesPerWorker)}
					summary = append(summary, SummaryRow{Label: team.TeamName, Value: FormatNumber(team.PiecesPerWorker)})
				}
				return b.build(ctx, meta, cardBody{
					Headline: FormatNumber(data.Average),
					Caption:  "Average pieces per worker",
					Chart: &ChartSpec{
						Kind:   ChartBar,
						Title:  meta.Card.NameForLocale(meta.Viewer.Locale),
						Series: []ChartSeries{series("Pieces", points)},
					},
					Tables:  []Table{{Title: "By Team", Columns: []string{"Team", "Pieces per Worker"}, Rows: rows}},
					Summary: summary,
				})
			}),
		},
		{
			def: CardDefinition{
				Code:          "productivity.on_time_rate",
				Name:          "On-Time Preparation Rate",
				NameLocalized: map[string]string{"fr": "Taux de Préparation à l'Heure"},
				Chart:         string(ChartLine),
			},
			provider: ProviderFunc(func(ctx context.Context, meta WidgetContext) (WidgetData, error) {
				data, err := metrics.OnTimePreparationRate(ctx, rangeQuery(meta.Filters))
				if err != nil {
					return nil, err
				}
				points := make([]ChartPoint, len(data.Historical))
				for i, day := range data.Historical {
					points[i] = ChartPoint{Label: day.Date, Value: day.Rate}
				}
				return b.build(ctx, meta, cardBody{
					Headline: FormatPercent(data.Rate),
					Caption:  trendCaption(data.Trend),
					Trend:    data.Trend,
					Chart: &ChartSpec{
						Kind:   ChartLine,
						Title:  meta.Card.NameForLocale(meta.Viewer.Locale),
						Series: []ChartSeries{series("Rate", points)},
					},
					Summary: []SummaryRow{
						{Label: "On-Time Rate", Value: FormatPercent(data.Rate)},
						{Label: "Trend", Value: string(data.Trend)},
					},
				})
			}),
		},
	}
}
