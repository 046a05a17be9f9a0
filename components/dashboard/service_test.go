package dashboard_test

import (
	"context"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dashboard "github.com/goliatone/go-logistics-dashboard/components/dashboard"
	"github.com/goliatone/go-logistics-dashboard/pkg/metrics"
)

type stubCharts struct{}

func (stubCharts) RenderChart(_ context.Context, spec dashboard.ChartSpec) (string, error) {
	return "<div class=\"chart\">" + spec.Title + "</div>", nil
}

func newService(t *testing.T, provider dashboard.MetricsProvider) *dashboard.Service {
	t.Helper()
	svc, err := dashboard.NewService(dashboard.Options{
		Metrics: provider,
		Charts:  stubCharts{},
	})
	require.NoError(t, err)
	return svc
}

func viewer(id string) dashboard.ViewerContext {
	return dashboard.ViewerContext{SessionID: id, Locale: "en"}
}

func TestNewServiceRequiresProvider(t *testing.T) {
	_, err := dashboard.NewService(dashboard.Options{})
	require.ErrorIs(t, err, dashboard.ErrProviderMissing)
}

func TestServiceSeedsSessionDefaults(t *testing.T) {
	settings := dashboard.NewSettingsService(nil, nil)
	_, err := settings.Apply(context.Background(), map[string]any{"default_section": "financial"})
	require.NoError(t, err)

	svc, err := dashboard.NewService(dashboard.Options{
		Metrics:  metrics.NewMockClient(metrics.DefaultMockData()),
		Charts:   stubCharts{},
		Settings: settings,
		Directory: dashboard.NewStaticDirectory([]dashboard.ActivityCodeOption{
			{Code: "ACT003", Label: "West Distribution"},
		}),
	})
	require.NoError(t, err)

	snap, err := svc.Snapshot("s1")
	require.NoError(t, err)
	assert.Equal(t, dashboard.ActivityCode("ACT003"), snap.ActivityCode)
	assert.Equal(t, dashboard.SectionFinancial, snap.ActiveSection)

	_, err = svc.Snapshot("")
	require.ErrorIs(t, err, dashboard.ErrSessionRequired)
}

func TestServiceLoadsActiveSectionCards(t *testing.T) {
	svc := newService(t, metrics.NewMockClient(metrics.DefaultMockData()))
	ctx := context.Background()

	snap, err := svc.SetActiveSection(ctx, "s1", dashboard.SectionStock)
	require.NoError(t, err)
	require.Equal(t, dashboard.SectionStock, snap.ActiveSection)

	payload, err := svc.LoadSection(ctx, viewer("s1"), snap.ActiveSection)
	require.NoError(t, err)
	assert.False(t, payload.Stale)
	assert.Equal(t, "Stock and Storage Metrics", payload.Title)

	codes := make([]string, len(payload.Cards))
	for i, card := range payload.Cards {
		codes[i] = card.Code
		assert.Equal(t, dashboard.ViewSuccess, card.Status, card.Code)
		assert.Contains(t, card.Data["chart_html"], "chart")
		assert.NotEmpty(t, card.Placeholder)
	}
	assert.Equal(t, []string{"stock.inventory_discrepancy", "stock.rotation", "stock.occupancy"}, codes)

	_, err = svc.SetActiveSection(ctx, "s1", "profile")
	require.ErrorIs(t, err, dashboard.ErrUnknownSection)
}

func TestServiceFormatsHeadlines(t *testing.T) {
	svc := newService(t, metrics.NewMockClient(metrics.DefaultMockData()))
	payload, err := svc.LoadSection(context.Background(), viewer("s1"), dashboard.SectionFinancial)
	require.NoError(t, err)
	byCode := map[string]dashboard.CardState{}
	for _, card := range payload.Cards {
		byCode[card.Code] = card
	}
	assert.Equal(t, "$58,200", byCode["financial.shipping_cost"].Data["headline"])
}

type failingShipping struct {
	*metrics.MockClient
}

func (failingShipping) ShippingCost(context.Context, dashboard.RangeQuery) (dashboard.ShippingCostData, error) {
	return dashboard.ShippingCostData{}, dashboard.NewProviderError(500, "Carrier service down")
}

func TestServiceIsolatesCardFailures(t *testing.T) {
	svc := newService(t, failingShipping{metrics.NewMockClient(metrics.DefaultMockData())})
	payload, err := svc.LoadSection(context.Background(), viewer("s1"), dashboard.SectionFinancial)
	require.NoError(t, err)

	var failed, ok int
	for _, card := range payload.Cards {
		switch card.Status {
		case dashboard.ViewError:
			failed++
			assert.Equal(t, "financial.shipping_cost", card.Code)
			assert.Equal(t, 500, card.Error.Status)
			assert.Equal(t, "Carrier service down", card.Error.Message)
		case dashboard.ViewSuccess:
			ok++
		}
	}
	assert.Equal(t, 1, failed)
	assert.Equal(t, 3, ok)
}

func TestServiceAlertsHideDetailWhenQuiet(t *testing.T) {
	svc := newService(t, metrics.NewMockClient(metrics.DefaultMockData()))
	payload, err := svc.LoadSection(context.Background(), viewer("s1"), dashboard.SectionAlerts)
	require.NoError(t, err)
	for _, card := range payload.Cards {
		require.Equal(t, dashboard.ViewSuccess, card.Status, card.Code)
		triggered, _ := card.Data["triggered"].(bool)
		_, hasAffected := card.Data["affected"]
		assert.Equal(t, triggered, hasAffected, card.Code)
		if card.Code == "alerts.low_revenue" {
			assert.False(t, triggered)
			assert.Equal(t, dashboard.SeverityLow, card.Data["severity"])
		}
	}
}

func TestServiceUnknownCodeYieldsEmptyResults(t *testing.T) {
	svc := newService(t, metrics.NewMockClient(metrics.DefaultMockData(), metrics.WithKnownCodes("ACT001")))
	ctx := context.Background()
	_, err := svc.SetActivityCode(ctx, "s1", "ZZZ999")
	require.NoError(t, err)
	payload, err := svc.LoadSection(ctx, viewer("s1"), dashboard.SectionDailyReports)
	require.NoError(t, err)
	for _, card := range payload.Cards {
		assert.Equal(t, dashboard.ViewSuccess, card.Status)
		assert.Equal(t, "0", card.Data["headline"])
	}
}

// gatedProvider blocks daily report calls for ACT001 until the load is
// cancelled.
type gatedProvider struct {
	*metrics.MockClient
	entered chan struct{}
}

func (g gatedProvider) DailyOrders(ctx context.Context, q dashboard.RangeQuery) (dashboard.DailyOrdersData, error) {
	if q.ActivityCode == "ACT001" {
		g.entered <- struct{}{}
		<-ctx.Done()
		return dashboard.DailyOrdersData{}, dashboard.NetworkError(ctx.Err())
	}
	return g.MockClient.DailyOrders(ctx, q)
}

func TestServiceLatestActivityCodeWins(t *testing.T) {
	provider := gatedProvider{
		MockClient: metrics.NewMockClient(metrics.DefaultMockData()),
		entered:    make(chan struct{}, 1),
	}
	svc := newService(t, provider)
	ctx := context.Background()
	_, err := svc.SetActivityCode(ctx, "s1", "ACT001")
	require.NoError(t, err)

	done := make(chan dashboard.SectionPayload, 1)
	go func() {
		payload, _ := svc.LoadSection(ctx, viewer("s1"), dashboard.SectionDailyReports)
		done <- payload
	}()

	select {
	case <-provider.entered:
	case <-time.After(time.Second):
		t.Fatalf("provider was not called")
	}
	_, err = svc.SetActivityCode(ctx, "s1", "ACT002")
	require.NoError(t, err)

	var stale dashboard.SectionPayload
	select {
	case stale = <-done:
	case <-time.After(time.Second):
		t.Fatalf("superseded load was not cancelled")
	}
	assert.True(t, stale.Stale)
	assert.Equal(t, dashboard.ActivityCode("ACT001"), stale.Filters.ActivityCode)
	for _, card := range stale.Cards {
		if card.Code == "daily.orders" {
			assert.NotEqual(t, dashboard.ViewSuccess, card.Status)
		}
	}

	fresh, err := svc.LoadSection(ctx, viewer("s1"), dashboard.SectionDailyReports)
	require.NoError(t, err)
	assert.False(t, fresh.Stale)
	assert.Equal(t, dashboard.ActivityCode("ACT002"), fresh.Filters.ActivityCode)
	for _, card := range fresh.Cards {
		assert.Equal(t, dashboard.ViewSuccess, card.Status, card.Code)
	}
}

func TestServiceConcurrentSectionLoadsSettle(t *testing.T) {
	svc := newService(t, metrics.NewMockClient(metrics.DefaultMockData(), metrics.WithLatency(50*time.Millisecond)))
	ctx := context.Background()

	results := make(chan dashboard.SectionPayload, 2)
	for i := 0; i < 2; i++ {
		go func() {
			payload, err := svc.LoadSection(ctx, viewer("s1"), dashboard.SectionProductivity)
			if err != nil {
				t.Errorf("load section: %v", err)
			}
			results <- payload
		}()
		time.Sleep(10 * time.Millisecond)
	}

	for i := 0; i < 2; i++ {
		var payload dashboard.SectionPayload
		select {
		case payload = <-results:
		case <-time.After(2 * time.Second):
			t.Fatalf("section load %d did not return", i)
		}
		assert.False(t, payload.Stale)
		require.NotEmpty(t, payload.Cards)
		for _, card := range payload.Cards {
			assert.Equal(t, dashboard.ViewSuccess, card.Status, card.Code)
			assert.NotNil(t, card.Data, card.Code)
		}
	}
}

func TestExporterWritesSummaryRows(t *testing.T) {
	svc := newService(t, failingShipping{metrics.NewMockClient(metrics.DefaultMockData())})
	exporter := dashboard.NewExporter(svc)

	var buf strings.Builder
	err := exporter.Export(context.Background(), &buf, dashboard.ExportRequest{
		Viewer:   viewer("s1"),
		Date:     "2024-03-05",
		Sections: []dashboard.SectionID{dashboard.SectionDailyReports, dashboard.SectionFinancial},
	})
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.NotEmpty(t, records)
	assert.Equal(t, []string{"section", "card", "label", "value"}, records[0])
	assert.Contains(t, records, []string{"dailyreports", "daily.stock_by_location", "Total Quantity", "1,970"})
	assert.Contains(t, records, []string{"financial", "financial.shipping_cost", "error", "Carrier service down"})
}

func TestExporterRejectsBadInput(t *testing.T) {
	exporter := dashboard.NewExporter(newService(t, metrics.NewMockClient(metrics.DefaultMockData())))
	var buf strings.Builder
	err := exporter.Export(context.Background(), &buf, dashboard.ExportRequest{Viewer: viewer("s1"), Date: "05/03/2024"})
	require.ErrorIs(t, err, dashboard.ErrInvalidExport)
	err = exporter.Export(context.Background(), &buf, dashboard.ExportRequest{Viewer: viewer("s1"), Sections: []dashboard.SectionID{"profile"}})
	require.ErrorIs(t, err, dashboard.ErrUnknownSection)
}

type rangeRecorder struct {
	*metrics.MockClient
	ranges chan dashboard.DateRange
}

func (r rangeRecorder) DailyOrders(ctx context.Context, q dashboard.RangeQuery) (dashboard.DailyOrdersData, error) {
	select {
	case r.ranges <- q.Range:
	default:
	}
	return r.MockClient.DailyOrders(ctx, q)
}

func TestExporterDefaultsToSessionRangeEnd(t *testing.T) {
	provider := rangeRecorder{
		MockClient: metrics.NewMockClient(metrics.DefaultMockData()),
		ranges:     make(chan dashboard.DateRange, 1),
	}
	svc := newService(t, provider)
	ctx := context.Background()
	_, err := svc.SetDateRange(ctx, "s1", dashboard.DateRange{StartDate: "2024-02-01", EndDate: "2024-02-10"})
	require.NoError(t, err)

	var buf strings.Builder
	err = dashboard.NewExporter(svc).Export(ctx, &buf, dashboard.ExportRequest{
		Viewer:   viewer("s1"),
		Sections: []dashboard.SectionID{dashboard.SectionDailyReports},
	})
	require.NoError(t, err)
	select {
	case rng := <-provider.ranges:
		assert.Equal(t, dashboard.DateRange{StartDate: "2024-02-10", EndDate: "2024-02-10"}, rng)
	default:
		t.Fatalf("daily orders were not fetched")
	}
}

func TestExportOptionsAreLocalized(t *testing.T) {
	options := dashboard.ExportOptions("fr")
	require.Len(t, options, 6)
	assert.Equal(t, "Rapports Journaliers", options[0].Label)
	assert.Equal(t, "Données d'Assurance Qualité", options[5].Label)
}
