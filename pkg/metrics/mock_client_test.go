package metrics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dashboard "github.com/goliatone/go-logistics-dashboard/components/dashboard"
)

func TestMockClientServesFixtures(t *testing.T) {
	client := NewMockClient(DefaultMockData())
	ctx := context.Background()

	prep, err := client.AveragePreparationTime(ctx, dashboard.RangeQuery{ActivityCode: "ACT001"})
	require.NoError(t, err)
	assert.Equal(t, 32.0, prep.AverageTimeMinutes)
	assert.Len(t, prep.DailyData, 7)

	shipping, err := client.ShippingCost(ctx, dashboard.RangeQuery{ActivityCode: "ACT001"})
	require.NoError(t, err)
	assert.Equal(t, 58200.0, shipping.TotalCost)
	assert.Len(t, shipping.ByCarrier, 4)

	ratio, err := client.LogisticsCostToRevenueRatio(ctx, dashboard.RangeQuery{ActivityCode: "ACT001"})
	require.NoError(t, err)
	assert.Equal(t, 23.4, ratio.Ratio)

	lowRevenue, err := client.LowRevenue(ctx, dashboard.AlertQuery{ActivityCode: "ACT001"})
	require.NoError(t, err)
	assert.False(t, lowRevenue.Triggered)
	assert.Nil(t, lowRevenue.Detail())
}

func TestMockClientReturnsCopies(t *testing.T) {
	client := NewMockClient(DefaultMockData())
	ctx := context.Background()
	first, err := client.PiecesPerWorker(ctx, dashboard.PiecesPerWorkerQuery{ActivityCode: "ACT001"})
	require.NoError(t, err)
	first.ByTeam[0].TeamName = "mutated"

	second, err := client.PiecesPerWorker(ctx, dashboard.PiecesPerWorkerQuery{ActivityCode: "ACT001"})
	require.NoError(t, err)
	assert.Equal(t, "Alpha Team", second.ByTeam[0].TeamName)
}

func TestMockClientUnknownCodeYieldsEmptyResult(t *testing.T) {
	client := NewMockClient(DefaultMockData(), WithKnownCodes("ACT001"))
	data, err := client.OccupancyRate(context.Background(), dashboard.StockQuery{ActivityCode: "NOPE"})
	require.NoError(t, err)
	assert.Zero(t, data.OverallRate)
	assert.Empty(t, data.ByWarehouse)
}

func TestMockClientLatencyHonoursCancellation(t *testing.T) {
	client := NewMockClient(DefaultMockData(), WithLatency(time.Second))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := client.DefectRate(ctx, dashboard.DefectRateQuery{ActivityCode: "ACT001"})
	var perr *dashboard.ProviderError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, 0, perr.Status)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMockClientUpdate(t *testing.T) {
	client := NewMockClient(DefaultMockData())
	client.Update(func(d *MockData) {
		d.CostRatio.Ratio = 19.5
	})
	ratio, err := client.LogisticsCostToRevenueRatio(context.Background(), dashboard.RangeQuery{ActivityCode: "ACT003"})
	require.NoError(t, err)
	assert.Equal(t, 19.5, ratio.Ratio)
}

func TestNewSelectsVariantByMode(t *testing.T) {
	provider, err := New(Config{Mode: ModeMock})
	require.NoError(t, err)
	assert.IsType(t, &MockClient{}, provider)

	provider, err = New(Config{Mode: ModeLive, BaseURL: "http://localhost:9999"})
	require.NoError(t, err)
	assert.IsType(t, &HTTPClient{}, provider)

	_, err = New(Config{Mode: "carrier-pigeon"})
	assert.Error(t, err)

	provider, err = New(Config{Mode: ModeLive, BaseURL: "not a url"})
	require.Error(t, err)
	assert.Nil(t, provider, "a failed live client must not hide behind a non-nil interface")
}

func TestEndpointNamesAndCatalog(t *testing.T) {
	assert.Equal(t, "logistics-cost-to-revenue-ratio", EndpointLogisticsCostToRevenueRatio.Name())
	assert.Equal(t, "on-time-preparation-rate", EndpointOnTimePreparationRate.Name())
	assert.Equal(t, "/quality/ACT005/returns-analysis", EndpointReturnsAnalysis.Path("ACT005", nil))

	names := Names()
	assert.Len(t, names, 19)
	entry, ok := Lookup("storage-threshold")
	require.True(t, ok)
	result, err := entry.Run(context.Background(), NewMockClient(DefaultMockData()), Params{ActivityCode: "ACT001"})
	require.NoError(t, err)
	alert, ok := result.(dashboard.StorageThresholdAlertData)
	require.True(t, ok)
	assert.True(t, alert.Triggered)

	_, ok = Lookup("unknown-metric")
	assert.False(t, ok)
}
