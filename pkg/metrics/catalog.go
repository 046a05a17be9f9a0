package metrics

import (
	"context"
	"sort"

	dashboard "github.com/goliatone/go-logistics-dashboard/components/dashboard"
)

// Params is the union of every metric's inputs. Each metric reads the
// fields it understands.
type Params struct {
	ActivityCode    dashboard.ActivityCode
	Range           dashboard.DateRange
	Previous        dashboard.DateRange
	TeamID          string
	WarehouseID     string
	ProductCategory string
	Reason          string
	Threshold       *float64
}

// Runner executes one metric against a provider.
type Runner func(ctx context.Context, provider dashboard.MetricsProvider, p Params) (any, error)

// Entry pairs an endpoint with its runner.
type Entry struct {
	Endpoint Endpoint
	Run      Runner
}

func rangeQuery(p Params) dashboard.RangeQuery {
	return dashboard.RangeQuery{ActivityCode: p.ActivityCode, Range: p.Range}
}

func alertQuery(p Params) dashboard.AlertQuery {
	return dashboard.AlertQuery{ActivityCode: p.ActivityCode, Threshold: p.Threshold}
}

var catalog = []Entry{
	{EndpointAveragePreparationTime, func(ctx context.Context, mp dashboard.MetricsProvider, p Params) (any, error) {
		return mp.AveragePreparationTime(ctx, rangeQuery(p))
	}},
	{EndpointPiecesPerWorker, func(ctx context.Context, mp dashboard.MetricsProvider, p Params) (any, error) {
		return mp.PiecesPerWorker(ctx, dashboard.PiecesPerWorkerQuery{ActivityCode: p.ActivityCode, TeamID: p.TeamID})
	}},
	{EndpointOnTimePreparationRate, func(ctx context.Context, mp dashboard.MetricsProvider, p Params) (any, error) {
		return mp.OnTimePreparationRate(ctx, rangeQuery(p))
	}},
	{EndpointRevenueComparison, func(ctx context.Context, mp dashboard.MetricsProvider, p Params) (any, error) {
		return mp.RevenueComparison(ctx, dashboard.RevenueComparisonQuery{ActivityCode: p.ActivityCode, Current: p.Range, Previous: p.Previous})
	}},
	{EndpointShippingCost, func(ctx context.Context, mp dashboard.MetricsProvider, p Params) (any, error) {
		return mp.ShippingCost(ctx, rangeQuery(p))
	}},
	{EndpointLogisticsCostEvolution, func(ctx context.Context, mp dashboard.MetricsProvider, p Params) (any, error) {
		return mp.LogisticsCostEvolution(ctx, rangeQuery(p))
	}},
	{EndpointLogisticsCostToRevenueRatio, func(ctx context.Context, mp dashboard.MetricsProvider, p Params) (any, error) {
		return mp.LogisticsCostToRevenueRatio(ctx, rangeQuery(p))
	}},
	{EndpointUnderProductivity, func(ctx context.Context, mp dashboard.MetricsProvider, p Params) (any, error) {
		return mp.UnderProductivity(ctx, alertQuery(p))
	}},
	{EndpointLowRevenue, func(ctx context.Context, mp dashboard.MetricsProvider, p Params) (any, error) {
		return mp.LowRevenue(ctx, alertQuery(p))
	}},
	{EndpointStorageThreshold, func(ctx context.Context, mp dashboard.MetricsProvider, p Params) (any, error) {
		return mp.StorageThreshold(ctx, alertQuery(p))
	}},
	{EndpointDefectRateAlert, func(ctx context.Context, mp dashboard.MetricsProvider, p Params) (any, error) {
		return mp.DefectRateAlert(ctx, alertQuery(p))
	}},
	{EndpointInventoryDiscrepancy, func(ctx context.Context, mp dashboard.MetricsProvider, p Params) (any, error) {
		return mp.InventoryDiscrepancy(ctx, dashboard.StockQuery{ActivityCode: p.ActivityCode})
	}},
	{EndpointStockRotation, func(ctx context.Context, mp dashboard.MetricsProvider, p Params) (any, error) {
		return mp.StockRotation(ctx, dashboard.StockQuery{ActivityCode: p.ActivityCode})
	}},
	{EndpointOccupancyRate, func(ctx context.Context, mp dashboard.MetricsProvider, p Params) (any, error) {
		return mp.OccupancyRate(ctx, dashboard.StockQuery{ActivityCode: p.ActivityCode, WarehouseID: p.WarehouseID})
	}},
	{EndpointDefectRate, func(ctx context.Context, mp dashboard.MetricsProvider, p Params) (any, error) {
		return mp.DefectRate(ctx, dashboard.DefectRateQuery{ActivityCode: p.ActivityCode, ProductCategory: p.ProductCategory})
	}},
	{EndpointReturnsAnalysis, func(ctx context.Context, mp dashboard.MetricsProvider, p Params) (any, error) {
		return mp.ReturnsAnalysis(ctx, dashboard.ReturnsQuery{ActivityCode: p.ActivityCode, Reason: p.Reason})
	}},
	{EndpointDailyOrders, func(ctx context.Context, mp dashboard.MetricsProvider, p Params) (any, error) {
		return mp.DailyOrders(ctx, rangeQuery(p))
	}},
	{EndpointStockByLocation, func(ctx context.Context, mp dashboard.MetricsProvider, p Params) (any, error) {
		return mp.StockByLocation(ctx, rangeQuery(p))
	}},
	{EndpointTransporterDeliveries, func(ctx context.Context, mp dashboard.MetricsProvider, p Params) (any, error) {
		return mp.TransporterDeliveries(ctx, rangeQuery(p))
	}},
}

// Lookup finds a metric by its URL name (e.g. "shipping-cost").
func Lookup(name string) (Entry, bool) {
	for _, entry := range catalog {
		if entry.Endpoint.Name() == name {
			return entry, true
		}
	}
	return Entry{}, false
}

// Names lists every metric name, sorted.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for _, entry := range catalog {
		names = append(names, entry.Endpoint.Name())
	}
	sort.Strings(names)
	return names
}
