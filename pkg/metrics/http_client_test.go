package metrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dashboard "github.com/goliatone/go-logistics-dashboard/components/dashboard"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *HTTPClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := NewHTTPClient(HTTPConfig{BaseURL: server.URL, APIKey: "secret"})
	require.NoError(t, err)
	return client
}

func TestHTTPClientAveragePreparationTime(t *testing.T) {
	var gotPath string
	var gotQuery url.Values
	var gotAuth string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"averageTimeMinutes":32,"dailyData":[{"date":"2024-03-01","timeMinutes":35}],"trend":"down"}`))
	})

	data, err := client.AveragePreparationTime(context.Background(), dashboard.RangeQuery{
		ActivityCode: "ACT001",
		Range:        dashboard.DateRange{StartDate: "2024-03-01", EndDate: "2024-03-07"},
	})
	require.NoError(t, err)
	assert.Equal(t, "/productivity/ACT001/average-preparation-time", gotPath)
	assert.Equal(t, "2024-03-01", gotQuery.Get("startDate"))
	assert.Equal(t, "2024-03-07", gotQuery.Get("endDate"))
	assert.Equal(t, "Bearer secret", gotAuth)
	assert.Equal(t, 32.0, data.AverageTimeMinutes)
	assert.Equal(t, dashboard.TrendDown, data.Trend)
	require.Len(t, data.DailyData, 1)
}

func TestHTTPClientDefaultsDateRange(t *testing.T) {
	var gotQuery url.Values
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(`{"rate":90,"trend":"up","historical":[]}`))
	})
	_, err := client.OnTimePreparationRate(context.Background(), dashboard.RangeQuery{ActivityCode: "ACT002"})
	require.NoError(t, err)
	want := dashboard.DefaultDateRange()
	assert.Equal(t, want.StartDate, gotQuery.Get("startDate"))
	assert.Equal(t, want.EndDate, gotQuery.Get("endDate"))
}

func TestHTTPClientOmitsAbsentOptionalParams(t *testing.T) {
	var requests []*url.URL
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, r.URL)
		_, _ = w.Write([]byte(`{}`))
	})
	ctx := context.Background()

	_, err := client.PiecesPerWorker(ctx, dashboard.PiecesPerWorkerQuery{ActivityCode: "ACT001"})
	require.NoError(t, err)
	_, err = client.PiecesPerWorker(ctx, dashboard.PiecesPerWorkerQuery{ActivityCode: "ACT001", TeamID: "TEAM_002"})
	require.NoError(t, err)
	_, err = client.UnderProductivity(ctx, dashboard.AlertQuery{ActivityCode: "ACT001"})
	require.NoError(t, err)
	threshold := 2.5
	_, err = client.DefectRateAlert(ctx, dashboard.AlertQuery{ActivityCode: "ACT001", Threshold: &threshold})
	require.NoError(t, err)
	_, err = client.InventoryDiscrepancy(ctx, dashboard.StockQuery{ActivityCode: "ACT001"})
	require.NoError(t, err)

	require.Len(t, requests, 5)
	assert.Equal(t, "/productivity/ACT001/pieces-per-worker", requests[0].Path)
	assert.Empty(t, requests[0].RawQuery)
	assert.Equal(t, "teamId=TEAM_002", requests[1].RawQuery)
	assert.Equal(t, "/alerts/ACT001/under-productivity", requests[2].Path)
	assert.Empty(t, requests[2].RawQuery)
	assert.Equal(t, "/alerts/ACT001/defect-rate-alert", requests[3].Path)
	assert.Equal(t, "minRate=2.5", requests[3].RawQuery)
	assert.Equal(t, "/storage/ACT001/inventory-discrepancy", requests[4].Path)
}

func TestHTTPClientRevenueComparisonDerivesPreviousPeriod(t *testing.T) {
	var gotQuery url.Values
	var gotPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(`{"percentageChange":7.1}`))
	})
	data, err := client.RevenueComparison(context.Background(), dashboard.RevenueComparisonQuery{
		ActivityCode: "ACT001",
		Current:      dashboard.DateRange{StartDate: "2024-03-01", EndDate: "2024-03-07"},
	})
	require.NoError(t, err)
	assert.Equal(t, 7.1, data.PercentageChange)
	assert.Equal(t, "/financial/ACT001/revenue-comparison", gotPath)
	assert.Equal(t, "2024-03-01", gotQuery.Get("startDate1"))
	assert.Equal(t, "2024-03-07", gotQuery.Get("endDate1"))
	assert.Equal(t, "2024-02-23", gotQuery.Get("startDate2"))
	assert.Equal(t, "2024-02-29", gotQuery.Get("endDate2"))
}

func TestHTTPClientErrorMessageFromBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Activity not found"}`))
	})
	_, err := client.ShippingCost(context.Background(), dashboard.RangeQuery{ActivityCode: "ACT404"})
	var perr *dashboard.ProviderError
	require.True(t, errors.As(err, &perr), "expected ProviderError, got %T", err)
	assert.Equal(t, http.StatusNotFound, perr.Status)
	assert.Equal(t, "Activity not found", perr.Message)
}

func TestHTTPClientErrorWithoutMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`<html>bad gateway</html>`))
	})
	_, err := client.StockRotation(context.Background(), dashboard.StockQuery{ActivityCode: "ACT001"})
	var perr *dashboard.ProviderError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, http.StatusBadGateway, perr.Status)
	assert.Equal(t, dashboard.MessageGenericError, perr.Message)
}

func TestHTTPClientMalformedSuccessBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	})
	_, err := client.DefectRate(context.Background(), dashboard.DefectRateQuery{ActivityCode: "ACT001"})
	var perr *dashboard.ProviderError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, 0, perr.Status)
	assert.Equal(t, dashboard.MessageNetworkError, perr.Message)
}

func TestHTTPClientTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	base := server.URL
	server.Close()

	client, err := NewHTTPClient(HTTPConfig{BaseURL: base})
	require.NoError(t, err)
	_, err = client.ReturnsAnalysis(context.Background(), dashboard.ReturnsQuery{ActivityCode: "ACT001", Reason: "DEFECTIVE"})
	var perr *dashboard.ProviderError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, 0, perr.Status)
	assert.Equal(t, dashboard.MessageNetworkError, perr.Message)
	assert.NotNil(t, errors.Unwrap(perr))
}

func TestNewHTTPClientDefaultsBaseURL(t *testing.T) {
	client, err := NewHTTPClient(HTTPConfig{})
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, client.baseURL)

	_, err = NewHTTPClient(HTTPConfig{BaseURL: "::not a url"})
	assert.Error(t, err)
}

func TestHTTPClientQueryMatchesUpstream(t *testing.T) {
	var raw []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		raw = append(raw, r.URL.RawQuery)
		_, _ = w.Write([]byte(`{}`))
	})
	ctx := context.Background()
	zero := 0.0
	_, err := client.LowRevenue(ctx, dashboard.AlertQuery{ActivityCode: "ACT001", Threshold: &zero})
	require.NoError(t, err)
	_, err = client.DailyOrders(ctx, dashboard.RangeQuery{
		ActivityCode: "ACT001",
		Range:        dashboard.DateRange{StartDate: "2024-03-01", EndDate: "2024-03-07"},
	})
	require.NoError(t, err)

	require.Len(t, raw, 2)
	assert.Empty(t, raw[0], "a zero threshold is left to the upstream default")
	assert.Equal(t, "startDate=2024-03-01&endDate=2024-03-07", raw[1])
}
