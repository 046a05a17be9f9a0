package metrics

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	dashboard "github.com/goliatone/go-logistics-dashboard/components/dashboard"
)

// MockData seeds deterministic metric responses for demos and tests.
type MockData struct {
	PreparationTime       dashboard.PreparationTimeData
	PiecesPerWorker       dashboard.PiecesPerWorkerData
	OnTimePreparation     dashboard.OnTimePreparationData
	RevenueComparison     dashboard.RevenueComparisonData
	ShippingCost          dashboard.ShippingCostData
	CostEvolution         dashboard.LogisticsCostEvolutionData
	CostRatio             dashboard.LogisticsCostRatioData
	UnderProductivity     dashboard.UnderProductivityAlertData
	LowRevenue            dashboard.LowRevenueAlertData
	StorageThreshold      dashboard.StorageThresholdAlertData
	DefectRateAlert       dashboard.DefectRateAlertData
	InventoryDiscrepancy  dashboard.InventoryDiscrepancyData
	StockRotation         dashboard.StockRotationData
	OccupancyRate         dashboard.OccupancyRateData
	DefectRate            dashboard.DefectRateData
	ReturnsAnalysis       dashboard.ReturnsAnalysisData
	DailyOrders           dashboard.DailyOrdersData
	StockByLocation       dashboard.StockByLocationData
	TransporterDeliveries dashboard.TransporterDeliveriesData
}

// MockOption customizes a MockClient.
type MockOption func(*MockClient)

// WithLatency delays every response, honouring context cancellation.
func WithLatency(d time.Duration) MockOption {
	return func(c *MockClient) {
		c.latency = d
	}
}

// WithKnownCodes limits fixtures to the given codes; other codes get empty
// results. Without this option every code is served.
func WithKnownCodes(codes ...dashboard.ActivityCode) MockOption {
	return func(c *MockClient) {
		c.known = make(map[dashboard.ActivityCode]bool, len(codes))
		for _, code := range codes {
			c.known[code] = true
		}
	}
}

// MockClient implements dashboard.MetricsProvider using in-memory fixtures.
// Query filters other than the activity code are ignored.
type MockClient struct {
	mu      sync.RWMutex
	data    MockData
	latency time.Duration
	known   map[dashboard.ActivityCode]bool
}

var _ dashboard.MetricsProvider = (*MockClient)(nil)

// NewMockClient builds a mock client from the provided fixtures.
func NewMockClient(data MockData, opts ...MockOption) *MockClient {
	c := &MockClient{data: data}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Update mutates the fixtures in place.
func (c *MockClient) Update(fn func(*MockData)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(&c.data)
}

func (c *MockClient) AveragePreparationTime(ctx context.Context, q dashboard.RangeQuery) (dashboard.PreparationTimeData, error) {
	return serve(ctx, c, q.ActivityCode, func(d *MockData) dashboard.PreparationTimeData { return d.PreparationTime })
}

func (c *MockClient) PiecesPerWorker(ctx context.Context, q dashboard.PiecesPerWorkerQuery) (dashboard.PiecesPerWorkerData, error) {
	return serve(ctx, c, q.ActivityCode, func(d *MockData) dashboard.PiecesPerWorkerData { return d.PiecesPerWorker })
}

func (c *MockClient) OnTimePreparationRate(ctx context.Context, q dashboard.RangeQuery) (dashboard.OnTimePreparationData, error) {
	return serve(ctx, c, q.ActivityCode, func(d *MockData) dashboard.OnTimePreparationData { return d.OnTimePreparation })
}

func (c *MockClient) RevenueComparison(ctx context.Context, q dashboard.RevenueComparisonQuery) (dashboard.RevenueComparisonData, error) {
	return serve(ctx, c, q.ActivityCode, func(d *MockData) dashboard.RevenueComparisonData { return d.RevenueComparison })
}

func (c *MockClient) ShippingCost(ctx context.Context, q dashboard.RangeQuery) (dashboard.ShippingCostData, error) {
	return serve(ctx, c, q.ActivityCode, func(d *MockData) dashboard.ShippingCostData { return d.ShippingCost })
}

func (c *MockClient) LogisticsCostEvolution(ctx context.Context, q dashboard.RangeQuery) (dashboard.LogisticsCostEvolutionData, error) {
	return serve(ctx, c, q.ActivityCode, func(d *MockData) dashboard.LogisticsCostEvolutionData { return d.CostEvolution })
}

func (c *MockClient) LogisticsCostToRevenueRatio(ctx context.Context, q dashboard.RangeQuery) (dashboard.LogisticsCostRatioData, error) {
	return serve(ctx, c, q.ActivityCode, func(d *MockData) dashboard.LogisticsCostRatioData { return d.CostRatio })
}

func (c *MockClient) UnderProductivity(ctx context.Context, q dashboard.AlertQuery) (dashboard.UnderProductivityAlertData, error) {
	return serve(ctx, c, q.ActivityCode, func(d *MockData) dashboard.UnderProductivityAlertData { return d.UnderProductivity })
}

func (c *MockClient) LowRevenue(ctx context.Context, q dashboard.AlertQuery) (dashboard.LowRevenueAlertData, error) {
	return serve(ctx, c, q.ActivityCode, func(d *MockData) dashboard.LowRevenueAlertData { return d.LowRevenue })
}

func (c *MockClient) StorageThreshold(ctx context.Context, q dashboard.AlertQuery) (dashboard.StorageThresholdAlertData, error) {
	return serve(ctx, c, q.ActivityCode, func(d *MockData) dashboard.StorageThresholdAlertData { return d.StorageThreshold })
}

func (c *MockClient) DefectRateAlert(ctx context.Context, q dashboard.AlertQuery) (dashboard.DefectRateAlertData, error) {
	return serve(ctx, c, q.ActivityCode, func(d *MockData) dashboard.DefectRateAlertData { return d.DefectRateAlert })
}

func (c *MockClient) InventoryDiscrepancy(ctx context.Context, q dashboard.StockQuery) (dashboard.InventoryDiscrepancyData, error) {
	return serve(ctx, c, q.ActivityCode, func(d *MockData) dashboard.InventoryDiscrepancyData { return d.InventoryDiscrepancy })
}

func (c *MockClient) StockRotation(ctx context.Context, q dashboard.StockQuery) (dashboard.StockRotationData, error) {
	return serve(ctx, c, q.ActivityCode, func(d *MockData) dashboard.StockRotationData { return d.StockRotation })
}

func (c *MockClient) OccupancyRate(ctx context.Context, q dashboard.StockQuery) (dashboard.OccupancyRateData, error) {
	return serve(ctx, c, q.ActivityCode, func(d *MockData) dashboard.OccupancyRateData { return d.OccupancyRate })
}

func (c *MockClient) DefectRate(ctx context.Context, q dashboard.DefectRateQuery) (dashboard.DefectRateData, error) {
	return serve(ctx, c, q.ActivityCode, func(d *MockData) dashboard.DefectRateData { return d.DefectRate })
}

func (c *MockClient) ReturnsAnalysis(ctx context.Context, q dashboard.ReturnsQuery) (dashboard.ReturnsAnalysisData, error) {
	return serve(ctx, c, q.ActivityCode, func(d *MockData) dashboard.ReturnsAnalysisData { return d.ReturnsAnalysis })
}

func (c *MockClient) DailyOrders(ctx context.Context, q dashboard.RangeQuery) (dashboard.DailyOrdersData, error) {
	return serve(ctx, c, q.ActivityCode, func(d *MockData) dashboard.DailyOrdersData { return d.DailyOrders })
}

func (c *MockClient) StockByLocation(ctx context.Context, q dashboard.RangeQuery) (dashboard.StockByLocationData, error) {
	return serve(ctx, c, q.ActivityCode, func(d *MockData) dashboard.StockByLocationData { return d.StockByLocation })
}

func (c *MockClient) TransporterDeliveries(ctx context.Context, q dashboard.RangeQuery) (dashboard.TransporterDeliveriesData, error) {
	return serve(ctx, c, q.ActivityCode, func(d *MockData) dashboard.TransporterDeliveriesData { return d.TransporterDeliveries })
}

func (c *MockClient) wait(ctx context.Context) error {
	if c.latency <= 0 {
		if err := ctx.Err(); err != nil {
			return dashboard.NetworkError(err)
		}
		return nil
	}
	timer := time.NewTimer(c.latency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return dashboard.NetworkError(ctx.Err())
	case <-timer.C:
		return nil
	}
}

func (c *MockClient) serves(code dashboard.ActivityCode) bool {
	if c.known == nil {
		return true
	}
	return c.known[code]
}

// serve returns a deep copy of the selected fixture so callers can never
// mutate shared state.
func serve[T any](ctx context.Context, c *MockClient, code dashboard.ActivityCode, pick func(*MockData) T) (T, error) {
	var zero T
	if err := c.wait(ctx); err != nil {
		return zero, err
	}
	if !c.serves(code) {
		return zero, nil
	}
	c.mu.RLock()
	fixture := pick(&c.data)
	c.mu.RUnlock()
	return clone(fixture)
}

func clone[T any](v T) (T, error) {
	var out T
	raw, err := json.Marshal(v)
	if err != nil {
		return out, dashboard.NetworkError(err)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, dashboard.NetworkError(err)
	}
	return out, nil
}
