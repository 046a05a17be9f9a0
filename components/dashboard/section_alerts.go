package dashboard

import "context"

type alertFetcher func(ctx context.Context, query AlertQuery) (Alert, error)

func alertCards(metrics AlertProvider, b cardBuilder) []cardBlueprint {
	return []cardBlueprint{
		alertCard(b,
			CardDefinition{Code: "alerts.under_productivity", Name: "Under Productivity Alert", NameLocalized: map[string]string{"fr": "Alerte de Sous-Productivité"}},
			FormatNumber,
			func(ctx context.Context, q AlertQuery) (Alert, error) { return metrics.UnderProductivity(ctx, q) },
		),
		alertCard(b,
			CardDefinition{Code: "alerts.low_revenue", Name: "Low Revenue Alert", NameLocalized: map[string]string{"fr": "Alerte de Revenu Faible"}},
			FormatCurrency,
			func(ctx context.Context, q AlertQuery) (Alert, error) { return metrics.LowRevenue(ctx, q) },
		),
		alertCard(b,
			CardDefinition{Code: "alerts.storage_threshold", Name: "Storage Occupancy Alert", NameLocalized: map[string]string{"fr": "Alerte d'Occupation du Stockage"}},
			FormatPercent,
			func(ctx context.Context, q AlertQuery) (Alert, error) { return metrics.StorageThreshold(ctx, q) },
		),
		alertCard(b,
			CardDefinition{Code: "alerts.defect_rate", Name: "Defect Rate Alert", NameLocalized: map[string]string{"fr": "Alerte de Taux de Défaut"}},
			FormatPercent,
			func(ctx context.Context, q AlertQuery) (Alert, error) { return metrics.DefectRateAlert(ctx, q) },
		),
	}
}

// alertCard renders one alert. Affected/since keys only appear when the
// alert reports a detail, which it does only when triggered.
func alertCard(b cardBuilder, def CardDefinition, format func(float64) string, fetch alertFetcher) cardBlueprint {
	def.Chart = string(ChartGauge)
	def.Height = 220
	return cardBlueprint{
		def: def,
		provider: ProviderFunc(func(ctx context.Context, meta WidgetContext) (WidgetData, error) {
			alert, err := fetch(ctx, AlertQuery{ActivityCode: meta.Filters.ActivityCode})
			if err != nil {
				return nil, err
			}
			current, threshold := alert.CurrentValue(), alert.ThresholdValue()
			severity := AlertSeverity(alert.IsTriggered(), current, threshold)
			status := "Normal"
			if alert.IsTriggered() {
				status = "Triggered"
			}
			extra := WidgetData{
				"triggered":      alert.IsTriggered(),
				"severity":       severity,
				"severity_class": SeverityClass(severity),
				"current":        format(current),
				"threshold":      format(threshold),
			}
			summary := []SummaryRow{
				{Label: "Status", Value: status},
				{Label: "Current", Value: format(current)},
				{Label: "Threshold", Value: format(threshold)},
			}
			if detail := alert.Detail(); detail != nil {
				extra["affected"] = detail.Affected
				if detail.Since != "" {
					extra["since"] = detail.Since
				}
				for _, item := range detail.Affected {
					summary = append(summary, SummaryRow{Label: "Affected", Value: item})
				}
			}
			return b.build(ctx, meta, cardBody{
				Headline: format(current),
				Caption:  status + " · threshold " + format(threshold),
				Summary:  summary,
				Extra:    extra,
			})
		}),
	}
}
