package dashboard

import "context"

// RangeQuery scopes a metric to an activity and window. A zero Range means
// the trailing default window.
type RangeQuery struct {
	ActivityCode ActivityCode
	Range        DateRange
}

// PiecesPerWorkerQuery optionally narrows the metric to one team.
type PiecesPerWorkerQuery struct {
	ActivityCode ActivityCode
	TeamID       string
}

// RevenueComparisonQuery compares two periods. A zero Previous is derived
// from Current.
type RevenueComparisonQuery struct {
	ActivityCode ActivityCode
	Current      DateRange
	Previous     DateRange
}

// Periods resolves the current and previous windows.
func (q RevenueComparisonQuery) Periods() (DateRange, DateRange) {
	current := ResolveDateRange(q.Current)
	previous := q.Previous
	if previous.IsZero() {
		previous = current.PreviousPeriod()
	}
	return current, previous
}

// AlertQuery carries an optional threshold override.
type AlertQuery struct {
	ActivityCode ActivityCode
	Threshold    *float64
}

// StockQuery scopes storage metrics. WarehouseID only applies to occupancy.
type StockQuery struct {
	ActivityCode ActivityCode
	WarehouseID  string
}

// DefectRateQuery optionally narrows defects to one product category.
type DefectRateQuery struct {
	ActivityCode    ActivityCode
	ProductCategory string
}

// ReturnsQuery optionally narrows returns to one reason.
type ReturnsQuery struct {
	ActivityCode ActivityCode
	Reason       string
}

// DatedMinutes is one day of the preparation time series.
type DatedMinutes struct {
	Date        string  `json:"date"`
	TimeMinutes float64 `json:"timeMinutes"`
}

type PreparationTimeData struct {
	AverageTimeMinutes    float64        `json:"averageTimeMinutes"`
	DailyData             []DatedMinutes `json:"dailyData"`
	PreviousPeriodAverage *float64       `json:"previousPeriodAverage,omitempty"`
	Trend                 Trend          `json:"trend,omitempty"`
}

type TeamPieces struct {
	TeamID          string  `json:"teamId"`
	TeamName        string  `json:"teamName"`
	PiecesPerWorker float64 `json:"piecesPerWorker"`
}

type PiecesPerWorkerData struct {
	Average float64      `json:"average"`
	ByTeam  []TeamPieces `json:"byTeam"`
}

type DatedRate struct {
	Date string  `json:"date"`
	Rate float64 `json:"rate"`
}

type OnTimePreparationData struct {
	Rate       float64     `json:"rate"`
	Trend      Trend       `json:"trend"`
	Historical []DatedRate `json:"historical"`
}

type RevenuePeriod struct {
	StartDate string  `json:"startDate"`
	EndDate   string  `json:"endDate"`
	Revenue   float64 `json:"revenue"`
}

type DailyRevenue struct {
	Date            string  `json:"date"`
	CurrentRevenue  float64 `json:"currentRevenue"`
	PreviousRevenue float64 `json:"previousRevenue"`
}

type RevenueComparisonData struct {
	CurrentPeriod    RevenuePeriod  `json:"currentPeriod"`
	PreviousPeriod   RevenuePeriod  `json:"previousPeriod"`
	PercentageChange float64        `json:"percentageChange"`
	DailyData        []DailyRevenue `json:"dailyData"`
}

type CarrierCost struct {
	Carrier    string  `json:"carrier"`
	Cost       float64 `json:"cost"`
	Percentage float64 `json:"percentage"`
}

type DestinationCost struct {
	Destination string  `json:"destination"`
	Cost        float64 `json:"cost"`
	Percentage  float64 `json:"percentage"`
}

type ShippingCostData struct {
	TotalCost     float64           `json:"totalCost"`
	ByCarrier     []CarrierCost     `json:"byCarrier"`
	ByDestination []DestinationCost `json:"byDestination"`
}

type DatedCost struct {
	Date string  `json:"date"`
	Cost float64 `json:"cost"`
}

type CategoryCosts struct {
	Category string      `json:"category"`
	Costs    []DatedCost `json:"costs"`
}

type LogisticsCostEvolutionData struct {
	TotalCosts []DatedCost     `json:"totalCosts"`
	ByCategory []CategoryCosts `json:"byCategory"`
}

type DatedRatio struct {
	Date  string  `json:"date"`
	Ratio float64 `json:"ratio"`
}

type LogisticsCostRatioData struct {
	Ratio      float64      `json:"ratio"`
	Trend      Trend        `json:"trend"`
	Historical []DatedRatio `json:"historical"`
}

type ProductDiscrepancy struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Expected    float64 `json:"expected"`
	Actual      float64 `json:"actual"`
	Discrepancy float64 `json:"discrepancy"`
}

type InventoryDiscrepancyData struct {
	TotalDiscrepancy float64              `json:"totalDiscrepancy"`
	DiscrepancyRate  float64              `json:"discrepancyRate"`
	ByProduct        []ProductDiscrepancy `json:"byProduct"`
}

type CategoryRotation struct {
	Category     string  `json:"category"`
	RotationDays float64 `json:"rotationDays"`
}

type SlowMovingProduct struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	DaysInStock float64 `json:"daysInStock"`
}

type StockRotationData struct {
	AverageRotationDays float64             `json:"averageRotationDays"`
	ByCategory          []CategoryRotation  `json:"byCategory"`
	SlowMovingProducts  []SlowMovingProduct `json:"slowMovingProducts"`
}

type WarehouseOccupancy struct {
	WarehouseID   string  `json:"warehouseId"`
	WarehouseName string  `json:"warehouseName"`
	OccupancyRate float64 `json:"occupancyRate"`
	Capacity      float64 `json:"capacity"`
	Used          float64 `json:"used"`
}

type OccupancyRateData struct {
	OverallRate float64              `json:"overallRate"`
	ByWarehouse []WarehouseOccupancy `json:"byWarehouse"`
	Trend       Trend                `json:"trend"`
}

type CategoryRate struct {
	Category string  `json:"category"`
	Rate     float64 `json:"rate"`
}

type DefectRateData struct {
	OverallRate float64        `json:"overallRate"`
	ByCategory  []CategoryRate `json:"byCategory"`
	Historical  []DatedRate    `json:"historical"`
}

type ReturnReason struct {
	Reason     string  `json:"reason"`
	Count      float64 `json:"count"`
	Percentage float64 `json:"percentage"`
}

type ProductReturns struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	ReturnCount float64 `json:"returnCount"`
	ReturnRate  float64 `json:"returnRate"`
}

type ReturnsAnalysisData struct {
	TotalReturns float64          `json:"totalReturns"`
	ReturnRate   float64          `json:"returnRate"`
	ByReason     []ReturnReason   `json:"byReason"`
	ByProduct    []ProductReturns `json:"byProduct"`
}

type DailyOrders struct {
	Date     string  `json:"date"`
	Received float64 `json:"received"`
	Shipped  float64 `json:"shipped"`
}

type DailyOrdersData struct {
	TotalReceived float64       `json:"totalReceived"`
	TotalShipped  float64       `json:"totalShipped"`
	Daily         []DailyOrders `json:"daily"`
}

type LocationStock struct {
	Location string  `json:"location"`
	Quantity float64 `json:"quantity"`
}

type StockByLocationData struct {
	TotalQuantity float64         `json:"totalQuantity"`
	ByLocation    []LocationStock `json:"byLocation"`
}

type TransporterDeliveries struct {
	Transporter string  `json:"transporter"`
	Deliveries  float64 `json:"deliveries"`
}

type TransporterDeliveriesData struct {
	TotalDeliveries float64                 `json:"totalDeliveries"`
	ByTransporter   []TransporterDeliveries `json:"byTransporter"`
}

// AlertDetail is the auxiliary context of a triggered alert.
type AlertDetail struct {
	Affected []string `json:"affected"`
	Since    string   `json:"since,omitempty"`
}

// Alert is implemented by every alert result. Detail returns nil unless the
// alert is triggered, so renderers never show context for quiet alerts.
type Alert interface {
	IsTriggered() bool
	ThresholdValue() float64
	CurrentValue() float64
	Detail() *AlertDetail
}

type UnderProductivityAlertData struct {
	Triggered     bool     `json:"triggered"`
	Threshold     float64  `json:"threshold"`
	Current       float64  `json:"currentValue"`
	AffectedTeams []string `json:"affectedTeams"`
	Since         string   `json:"since"`
}

func (a UnderProductivityAlertData) IsTriggered() bool       { return a.Triggered }
func (a UnderProductivityAlertData) ThresholdValue() float64 { return a.Threshold }
func (a UnderProductivityAlertData) CurrentValue() float64   { return a.Current }

func (a UnderProductivityAlertData) Detail() *AlertDetail {
	if !a.Triggered {
		return nil
	}
	return &AlertDetail{Affected: append([]string(nil), a.AffectedTeams...), Since: a.Since}
}

type LowRevenueAlertData struct {
	Triggered                bool    `json:"triggered"`
	Threshold                float64 `json:"threshold"`
	Current                  float64 `json:"currentValue"`
	PercentageBelowThreshold float64 `json:"percentageBelowThreshold"`
	Since                    string  `json:"since"`
}

func (a LowRevenueAlertData) IsTriggered() bool       { return a.Triggered }
func (a LowRevenueAlertData) ThresholdValue() float64 { return a.Threshold }
func (a LowRevenueAlertData) CurrentValue() float64   { return a.Current }

func (a LowRevenueAlertData) Detail() *AlertDetail {
	if !a.Triggered {
		return nil
	}
	return &AlertDetail{
		Affected: []string{FormatPercent(a.PercentageBelowThreshold) + " below threshold"},
		Since:    a.Since,
	}
}

type AffectedWarehouse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Occupancy float64 `json:"occupancy"`
}

type StorageThresholdAlertData struct {
	Triggered          bool                `json:"triggered"`
	Threshold          float64             `json:"threshold"`
	CurrentOccupancy   float64             `json:"currentOccupancy"`
	AffectedWarehouses []AffectedWarehouse `json:"affectedWarehouses"`
}

func (a StorageThresholdAlertData) IsTriggered() bool       { return a.Triggered }
func (a StorageThresholdAlertData) ThresholdValue() float64 { return a.Threshold }
func (a StorageThresholdAlertData) CurrentValue() float64   { return a.CurrentOccupancy }

func (a StorageThresholdAlertData) Detail() *AlertDetail {
	if !a.Triggered {
		return nil
	}
	affected := make([]string, len(a.AffectedWarehouses))
	for i, wh := range a.AffectedWarehouses {
		affected[i] = wh.Name + " (" + FormatPercent(wh.Occupancy) + ")"
	}
	return &AlertDetail{Affected: affected}
}

type DefectRateAlertData struct {
	Triggered        bool     `json:"triggered"`
	Threshold        float64  `json:"threshold"`
	CurrentRate      float64  `json:"currentRate"`
	AffectedProducts []string `json:"affectedProducts"`
	Since            string   `json:"since"`
}

func (a DefectRateAlertData) IsTriggered() bool       { return a.Triggered }
func (a DefectRateAlertData) ThresholdValue() float64 { return a.Threshold }
func (a DefectRateAlertData) CurrentValue() float64   { return a.CurrentRate }

func (a DefectRateAlertData) Detail() *AlertDetail {
	if !a.Triggered {
		return nil
	}
	return &AlertDetail{Affected: append([]string(nil), a.AffectedProducts...), Since: a.Since}
}

// ProductivityProvider serves preparation metrics.
type ProductivityProvider interface {
	AveragePreparationTime(ctx context.Context, query RangeQuery) (PreparationTimeData, error)
	PiecesPerWorker(ctx context.Context, query PiecesPerWorkerQuery) (PiecesPerWorkerData, error)
	OnTimePreparationRate(ctx context.Context, query RangeQuery) (OnTimePreparationData, error)
}

// FinancialProvider serves revenue and cost metrics.
type FinancialProvider interface {
	RevenueComparison(ctx context.Context, query RevenueComparisonQuery) (RevenueComparisonData, error)
	ShippingCost(ctx context.Context, query RangeQuery) (ShippingCostData, error)
	LogisticsCostEvolution(ctx context.Context, query RangeQuery) (LogisticsCostEvolutionData, error)
	LogisticsCostToRevenueRatio(ctx context.Context, query RangeQuery) (LogisticsCostRatioData, error)
}

// AlertProvider serves the threshold alerts.
type AlertProvider interface {
	UnderProductivity(ctx context.Context, query AlertQuery) (UnderProductivityAlertData, error)
	LowRevenue(ctx context.Context, query AlertQuery) (LowRevenueAlertData, error)
	StorageThreshold(ctx context.Context, query AlertQuery) (StorageThresholdAlertData, error)
	DefectRateAlert(ctx context.Context, query AlertQuery) (DefectRateAlertData, error)
}

// StockProvider serves storage metrics.
type StockProvider interface {
	InventoryDiscrepancy(ctx context.Context, query StockQuery) (InventoryDiscrepancyData, error)
	StockRotation(ctx context.Context, query StockQuery) (StockRotationData, error)
	OccupancyRate(ctx context.Context, query StockQuery) (OccupancyRateData, error)
}

// QualityProvider serves defect and return metrics.
type QualityProvider interface {
	DefectRate(ctx context.Context, query DefectRateQuery) (DefectRateData, error)
	ReturnsAnalysis(ctx context.Context, query ReturnsQuery) (ReturnsAnalysisData, error)
}

// DailyReportProvider serves the operational daily summaries.
type DailyReportProvider interface {
	DailyOrders(ctx context.Context, query RangeQuery) (DailyOrdersData, error)
	StockByLocation(ctx context.Context, query RangeQuery) (StockByLocationData, error)
	TransporterDeliveries(ctx context.Context, query RangeQuery) (TransporterDeliveriesData, error)
}

// MetricsProvider is the full upstream contract. Every method returns a
// result or a *ProviderError.
type MetricsProvider interface {
	ProductivityProvider
	FinancialProvider
	AlertProvider
	StockProvider
	QualityProvider
	DailyReportProvider
}
