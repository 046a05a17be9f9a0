package metrics

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	dashboard "github.com/goliatone/go-logistics-dashboard/components/dashboard"
)

// DefaultBaseURL is the production metrics API.
const DefaultBaseURL = "https://api.logistics-metrics.example"

const (
	defaultTimeout  = 10 * time.Second
	maxErrorPayload = 64 << 10
)

// HTTPConfig configures the live metrics client.
type HTTPConfig struct {
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// HTTPClient fetches metrics from the REST API. Failures are always returned
// as *dashboard.ProviderError.
type HTTPClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

var _ dashboard.MetricsProvider = (*HTTPClient)(nil)

// NewHTTPClient builds a live client.
func NewHTTPClient(cfg HTTPConfig) (*HTTPClient, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	if _, err := url.ParseRequestURI(base); err != nil {
		return nil, fmt.Errorf("metrics: invalid base url %q: %w", cfg.BaseURL, err)
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &HTTPClient{
		baseURL: base,
		apiKey:  cfg.APIKey,
		client:  httpClient,
	}, nil
}

func (c *HTTPClient) AveragePreparationTime(ctx context.Context, q dashboard.RangeQuery) (dashboard.PreparationTimeData, error) {
	var out dashboard.PreparationTimeData
	err := c.get(ctx, EndpointAveragePreparationTime.Path(q.ActivityCode, rangeParams(q.Range)), &out)
	return out, err
}

func (c *HTTPClient) PiecesPerWorker(ctx context.Context, q dashboard.PiecesPerWorkerQuery) (dashboard.PiecesPerWorkerData, error) {
	var out dashboard.PiecesPerWorkerData
	err := c.get(ctx, EndpointPiecesPerWorker.Path(q.ActivityCode, optionalParam("teamId", q.TeamID)), &out)
	return out, err
}

func (c *HTTPClient) OnTimePreparationRate(ctx context.Context, q dashboard.RangeQuery) (dashboard.OnTimePreparationData, error) {
	var out dashboard.OnTimePreparationData
	err := c.get(ctx, EndpointOnTimePreparationRate.Path(q.ActivityCode, rangeParams(q.Range)), &out)
	return out, err
}

func (c *HTTPClient) RevenueComparison(ctx context.Context, q dashboard.RevenueComparisonQuery) (dashboard.RevenueComparisonData, error) {
	var out dashboard.RevenueComparisonData
	current, previous := q.Periods()
	err := c.get(ctx, EndpointRevenueComparison.Path(q.ActivityCode, comparisonParams(current, previous)), &out)
	return out, err
}

func (c *HTTPClient) ShippingCost(ctx context.Context, q dashboard.RangeQuery) (dashboard.ShippingCostData, error) {
	var out dashboard.ShippingCostData
	err := c.get(ctx, EndpointShippingCost.Path(q.ActivityCode, rangeParams(q.Range)), &out)
	return out, err
}

func (c *HTTPClient) LogisticsCostEvolution(ctx context.Context, q dashboard.RangeQuery) (dashboard.LogisticsCostEvolutionData, error) {
	var out dashboard.LogisticsCostEvolutionData
	err := c.get(ctx, EndpointLogisticsCostEvolution.Path(q.ActivityCode, rangeParams(q.Range)), &out)
	return out, err
}

func (c *HTTPClient) LogisticsCostToRevenueRatio(ctx context.Context, q dashboard.RangeQuery) (dashboard.LogisticsCostRatioData, error) {
	var out dashboard.LogisticsCostRatioData
	err := c.get(ctx, EndpointLogisticsCostToRevenueRatio.Path(q.ActivityCode, rangeParams(q.Range)), &out)
	return out, err
}

func (c *HTTPClient) UnderProductivity(ctx context.Context, q dashboard.AlertQuery) (dashboard.UnderProductivityAlertData, error) {
	var out dashboard.UnderProductivityAlertData
	err := c.get(ctx, EndpointUnderProductivity.Path(q.ActivityCode, optionalFloat("threshold", q.Threshold)), &out)
	return out, err
}

func (c *HTTPClient) LowRevenue(ctx context.Context, q dashboard.AlertQuery) (dashboard.LowRevenueAlertData, error) {
	var out dashboard.LowRevenueAlertData
	err := c.get(ctx, EndpointLowRevenue.Path(q.ActivityCode, optionalFloat("threshold", q.Threshold)), &out)
	return out, err
}

func (c *HTTPClient) StorageThreshold(ctx context.Context, q dashboard.AlertQuery) (dashboard.StorageThresholdAlertData, error) {
	var out dashboard.StorageThresholdAlertData
	err := c.get(ctx, EndpointStorageThreshold.Path(q.ActivityCode, optionalFloat("threshold", q.Threshold)), &out)
	return out, err
}

// DefectRateAlert sends the threshold as minRate, as the upstream API expects.
func (c *HTTPClient) DefectRateAlert(ctx context.Context, q dashboard.AlertQuery) (dashboard.DefectRateAlertData, error) {
	var out dashboard.DefectRateAlertData
	err := c.get(ctx, EndpointDefectRateAlert.Path(q.ActivityCode, optionalFloat("minRate", q.Threshold)), &out)
	return out, err
}

func (c *HTTPClient) InventoryDiscrepancy(ctx context.Context, q dashboard.StockQuery) (dashboard.InventoryDiscrepancyData, error) {
	var out dashboard.InventoryDiscrepancyData
	err := c.get(ctx, EndpointInventoryDiscrepancy.Path(q.ActivityCode, nil), &out)
	return out, err
}

func (c *HTTPClient) StockRotation(ctx context.Context, q dashboard.StockQuery) (dashboard.StockRotationData, error) {
	var out dashboard.StockRotationData
	err := c.get(ctx, EndpointStockRotation.Path(q.ActivityCode, nil), &out)
	return out, err
}

func (c *HTTPClient) OccupancyRate(ctx context.Context, q dashboard.StockQuery) (dashboard.OccupancyRateData, error) {
	var out dashboard.OccupancyRateData
	err := c.get(ctx, EndpointOccupancyRate.Path(q.ActivityCode, optionalParam("warehouseId", q.WarehouseID)), &out)
	return out, err
}

func (c *HTTPClient) DefectRate(ctx context.Context, q dashboard.DefectRateQuery) (dashboard.DefectRateData, error) {
	var out dashboard.DefectRateData
	err := c.get(ctx, EndpointDefectRate.Path(q.ActivityCode, optionalParam("productCategory", q.ProductCategory)), &out)
	return out, err
}

func (c *HTTPClient) ReturnsAnalysis(ctx context.Context, q dashboard.ReturnsQuery) (dashboard.ReturnsAnalysisData, error) {
	var out dashboard.ReturnsAnalysisData
	err := c.get(ctx, EndpointReturnsAnalysis.Path(q.ActivityCode, optionalParam("reason", q.Reason)), &out)
	return out, err
}

func (c *HTTPClient) DailyOrders(ctx context.Context, q dashboard.RangeQuery) (dashboard.DailyOrdersData, error) {
	var out dashboard.DailyOrdersData
	err := c.get(ctx, EndpointDailyOrders.Path(q.ActivityCode, rangeParams(q.Range)), &out)
	return out, err
}

func (c *HTTPClient) StockByLocation(ctx context.Context, q dashboard.RangeQuery) (dashboard.StockByLocationData, error) {
	var out dashboard.StockByLocationData
	err := c.get(ctx, EndpointStockByLocation.Path(q.ActivityCode, rangeParams(q.Range)), &out)
	return out, err
}

func (c *HTTPClient) TransporterDeliveries(ctx context.Context, q dashboard.RangeQuery) (dashboard.TransporterDeliveriesData, error) {
	var out dashboard.TransporterDeliveriesData
	err := c.get(ctx, EndpointTransporterDeliveries.Path(q.ActivityCode, rangeParams(q.Range)), &out)
	return out, err
}

func (c *HTTPClient) get(ctx context.Context, path string, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return dashboard.NetworkError(fmt.Errorf("metrics: build request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return dashboard.NetworkError(fmt.Errorf("metrics: http request: %w", err))
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return remoteError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return dashboard.NetworkError(fmt.Errorf("metrics: decode response: %w", err))
	}
	return nil
}

// remoteError reads the {message} body of a failed response.
func remoteError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorPayload))
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		payload.Message = ""
	}
	return dashboard.NewProviderError(resp.StatusCode, payload.Message)
}
