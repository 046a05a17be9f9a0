package metrics

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/ettle/strcase"

	dashboard "github.com/goliatone/go-logistics-dashboard/components/dashboard"
)

const (
	domainProductivity = "productivity"
	domainFinancial    = "financial"
	domainCosts        = "costs"
	domainAlerts       = "alerts"
	domainStorage      = "storage"
	domainQuality      = "quality"
	domainReports      = "reports"
)

// Endpoint identifies one upstream metric resource.
type Endpoint struct {
	Domain string
	// Metric is the Go identifier of the metric; the URL segment is its kebab form.
	Metric string
}

// Name returns the URL segment, e.g. "average-preparation-time".
func (e Endpoint) Name() string {
	return strcase.ToKebab(e.Metric)
}

// Path builds /{domain}/{code}/{metric} plus any non-empty params.
func (e Endpoint) Path(code dashboard.ActivityCode, params query) string {
	path := "/" + e.Domain + "/" + url.PathEscape(string(code)) + "/" + e.Name()
	if encoded := params.Encode(); encoded != "" {
		path += "?" + encoded
	}
	return path
}

var (
	EndpointAveragePreparationTime      = Endpoint{domainProductivity, "AveragePreparationTime"}
	EndpointPiecesPerWorker             = Endpoint{domainProductivity, "PiecesPerWorker"}
	EndpointOnTimePreparationRate       = Endpoint{domainProductivity, "OnTimePreparationRate"}
	EndpointRevenueComparison           = Endpoint{domainFinancial, "RevenueComparison"}
	EndpointShippingCost                = Endpoint{domainCosts, "ShippingCost"}
	EndpointLogisticsCostEvolution      = Endpoint{domainCosts, "LogisticsCostEvolution"}
	EndpointLogisticsCostToRevenueRatio = Endpoint{domainCosts, "LogisticsCostToRevenueRatio"}
	EndpointUnderProductivity           = Endpoint{domainAlerts, "UnderProductivity"}
	EndpointLowRevenue                  = Endpoint{domainAlerts, "LowRevenue"}
	EndpointStorageThreshold            = Endpoint{domainAlerts, "StorageThreshold"}
	EndpointDefectRateAlert             = Endpoint{domainAlerts, "DefectRateAlert"}
	EndpointInventoryDiscrepancy        = Endpoint{domainStorage, "InventoryDiscrepancy"}
	EndpointStockRotation               = Endpoint{domainStorage, "StockRotation"}
	EndpointOccupancyRate               = Endpoint{domainStorage, "OccupancyRate"}
	EndpointDefectRate                  = Endpoint{domainQuality, "DefectRate"}
	EndpointReturnsAnalysis             = Endpoint{domainQuality, "ReturnsAnalysis"}
	EndpointDailyOrders                 = Endpoint{domainReports, "DailyOrders"}
	EndpointStockByLocation             = Endpoint{domainReports, "StockByLocation"}
	EndpointTransporterDeliveries       = Endpoint{domainReports, "TransporterDeliveries"}
)

// query is an ordered parameter list; keys are encoded in insertion order,
// unlike url.Values.
type query []queryParam

type queryParam struct {
	key, value string
}

func (q query) Encode() string {
	parts := make([]string, 0, len(q))
	for _, p := range q {
		parts = append(parts, url.QueryEscape(p.key)+"="+url.QueryEscape(p.value))
	}
	return strings.Join(parts, "&")
}

func rangeParams(r dashboard.DateRange) query {
	r = dashboard.ResolveDateRange(r)
	return query{{"startDate", r.StartDate}, {"endDate", r.EndDate}}
}

func comparisonParams(current, previous dashboard.DateRange) query {
	return query{
		{"startDate1", current.StartDate},
		{"endDate1", current.EndDate},
		{"startDate2", previous.StartDate},
		{"endDate2", previous.EndDate},
	}
}

func optionalParam(key, value string) query {
	if value == "" {
		return nil
	}
	return query{{key, value}}
}

// optionalFloat drops nil and zero values; the upstream treats 0 as unset.
func optionalFloat(key string, value *float64) query {
	if value == nil || *value == 0 {
		return nil
	}
	return query{{key, strconv.FormatFloat(*value, 'f', -1, 64)}}
}
