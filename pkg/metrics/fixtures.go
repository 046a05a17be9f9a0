package metrics

import dashboard "github.com/goliatone/go-logistics-dashboard/components/dashboard"

var fixtureWeek = []string{
	"2024-03-01", "2024-03-02", "2024-03-03", "2024-03-04",
	"2024-03-05", "2024-03-06", "2024-03-07",
}

func datedCosts(values ...float64) []dashboard.DatedCost {
	out := make([]dashboard.DatedCost, len(values))
	for i, v := range values {
		out[i] = dashboard.DatedCost{Date: fixtureWeek[i], Cost: v}
	}
	return out
}

func datedRates(values ...float64) []dashboard.DatedRate {
	out := make([]dashboard.DatedRate, len(values))
	for i, v := range values {
		out[i] = dashboard.DatedRate{Date: fixtureWeek[i], Rate: v}
	}
	return out
}

// DefaultMockData returns the demo fixtures served in mock mode.
func DefaultMockData() MockData {
	previousAverage := 36.0

	prepDaily := []float64{35, 33, 30, 31, 32, 31, 34}
	prep := make([]dashboard.DatedMinutes, len(prepDaily))
	for i, v := range prepDaily {
		prep[i] = dashboard.DatedMinutes{Date: fixtureWeek[i], TimeMinutes: v}
	}

	revenue := [][2]float64{
		{35000, 32000}, {36500, 33000}, {34000, 34000}, {37000, 33500},
		{36000, 32500}, {35000, 33000}, {35000, 34000},
	}
	dailyRevenue := make([]dashboard.DailyRevenue, len(revenue))
	for i, pair := range revenue {
		dailyRevenue[i] = dashboard.DailyRevenue{Date: fixtureWeek[i], CurrentRevenue: pair[0], PreviousRevenue: pair[1]}
	}

	ratios := []float64{24.5, 24.2, 24.0, 23.8, 23.6, 23.5, 23.4}
	ratioHistory := make([]dashboard.DatedRatio, len(ratios))
	for i, v := range ratios {
		ratioHistory[i] = dashboard.DatedRatio{Date: fixtureWeek[i], Ratio: v}
	}

	return MockData{
		PreparationTime: dashboard.PreparationTimeData{
			AverageTimeMinutes:    32,
			DailyData:             prep,
			PreviousPeriodAverage: &previousAverage,
			Trend:                 dashboard.TrendDown,
		},
		PiecesPerWorker: dashboard.PiecesPerWorkerData{
			Average: 45,
			ByTeam: []dashboard.TeamPieces{
				{TeamID: "TEAM_001", TeamName: "Alpha Team", PiecesPerWorker: 52},
				{TeamID: "TEAM_002", TeamName: "Beta Team", PiecesPerWorker: 48},
				{TeamID: "TEAM_003", TeamName: "Gamma Team", PiecesPerWorker: 43},
				{TeamID: "TEAM_004", TeamName: "Delta Team", PiecesPerWorker: 38},
			},
		},
		OnTimePreparation: dashboard.OnTimePreparationData{
			Rate:       92.5,
			Trend:      dashboard.TrendUp,
			Historical: datedRates(90.2, 91.5, 91.8, 92.1, 92.3, 92.7, 92.5),
		},
		RevenueComparison: dashboard.RevenueComparisonData{
			CurrentPeriod:    dashboard.RevenuePeriod{StartDate: "2024-03-01", EndDate: "2024-03-07", Revenue: 248500},
			PreviousPeriod:   dashboard.RevenuePeriod{StartDate: "2024-02-23", EndDate: "2024-02-29", Revenue: 232000},
			PercentageChange: 7.1,
			DailyData:        dailyRevenue,
		},
		ShippingCost: dashboard.ShippingCostData{
			TotalCost: 58200,
			ByCarrier: []dashboard.CarrierCost{
				{Carrier: "FastShip", Cost: 18500, Percentage: 31.8},
				{Carrier: "ExpressLogistics", Cost: 21700, Percentage: 37.3},
				{Carrier: "GlobalTransport", Cost: 14000, Percentage: 24.1},
				{Carrier: "Other", Cost: 4000, Percentage: 6.9},
			},
			ByDestination: []dashboard.DestinationCost{
				{Destination: "North", Cost: 16800, Percentage: 28.9},
				{Destination: "South", Cost: 14500, Percentage: 24.9},
				{Destination: "East", Cost: 12300, Percentage: 21.1},
				{Destination: "West", Cost: 10400, Percentage: 17.9},
				{Destination: "International", Cost: 4200, Percentage: 7.2},
			},
		},
		CostEvolution: dashboard.LogisticsCostEvolutionData{
			TotalCosts: datedCosts(12500, 13200, 12800, 13500, 13800, 14200, 14500),
			ByCategory: []dashboard.CategoryCosts{
				{Category: "Transportation", Costs: datedCosts(6200, 6500, 6300, 6700, 6900, 7100, 7200)},
				{Category: "Warehousing", Costs: datedCosts(4300, 4400, 4300, 4500, 4600, 4700, 4800)},
				{Category: "Labor", Costs: datedCosts(2000, 2300, 2200, 2300, 2300, 2400, 2500)},
			},
		},
		CostRatio: dashboard.LogisticsCostRatioData{
			Ratio:      23.4,
			Trend:      dashboard.TrendDown,
			Historical: ratioHistory,
		},
		UnderProductivity: dashboard.UnderProductivityAlertData{
			Triggered:     true,
			Threshold:     35,
			Current:       32,
			AffectedTeams: []string{"Delta Team", "Echo Team"},
			Since:         "2024-03-05",
		},
		LowRevenue: dashboard.LowRevenueAlertData{
			Triggered: false,
			Threshold: 30000,
			Current:   35000,
		},
		StorageThreshold: dashboard.StorageThresholdAlertData{
			Triggered:        true,
			Threshold:        85,
			CurrentOccupancy: 89,
			AffectedWarehouses: []dashboard.AffectedWarehouse{
				{ID: "WH_EAST", Name: "East Warehouse", Occupancy: 89},
				{ID: "WH_NORTH", Name: "North Warehouse", Occupancy: 87},
			},
		},
		DefectRateAlert: dashboard.DefectRateAlertData{
			Triggered:        true,
			Threshold:        3,
			CurrentRate:      3.8,
			AffectedProducts: []string{"Product X-123", "Product Y-456"},
			Since:            "2024-03-03",
		},
		InventoryDiscrepancy: dashboard.InventoryDiscrepancyData{
			TotalDiscrepancy: 357,
			DiscrepancyRate:  2.4,
			ByProduct: []dashboard.ProductDiscrepancy{
				{ProductID: "P1001", ProductName: "Premium Widget A", Expected: 1200, Actual: 1185, Discrepancy: -15},
				{ProductID: "P1002", ProductName: "Premium Widget B", Expected: 950, Actual: 932, Discrepancy: -18},
				{ProductID: "P1003", ProductName: "Standard Widget X", Expected: 2300, Actual: 2260, Discrepancy: -40},
				{ProductID: "P1004", ProductName: "Standard Widget Y", Expected: 1800, Actual: 1753, Discrepancy: -47},
				{ProductID: "P1005", ProductName: "Economy Widget", Expected: 3500, Actual: 3420, Discrepancy: -80},
			},
		},
		StockRotation: dashboard.StockRotationData{
			AverageRotationDays: 18,
			ByCategory: []dashboard.CategoryRotation{
				{Category: "Premium Widgets", RotationDays: 12},
				{Category: "Standard Widgets", RotationDays: 18},
				{Category: "Economy Widgets", RotationDays: 24},
				{Category: "Accessories", RotationDays: 30},
			},
			SlowMovingProducts: []dashboard.SlowMovingProduct{
				{ProductID: "P2001", ProductName: "Specialty Widget Q", DaysInStock: 45},
				{ProductID: "P2002", ProductName: "Limited Edition Kit", DaysInStock: 38},
				{ProductID: "P2003", ProductName: "Advanced Accessory Pack", DaysInStock: 36},
			},
		},
		OccupancyRate: dashboard.OccupancyRateData{
			OverallRate: 78,
			ByWarehouse: []dashboard.WarehouseOccupancy{
				{WarehouseID: "WH_EAST", WarehouseName: "East Warehouse", OccupancyRate: 89, Capacity: 5000, Used: 4450},
				{WarehouseID: "WH_WEST", WarehouseName: "West Warehouse", OccupancyRate: 72, Capacity: 6000, Used: 4320},
				{WarehouseID: "WH_NORTH", WarehouseName: "North Warehouse", OccupancyRate: 87, Capacity: 4500, Used: 3915},
				{WarehouseID: "WH_SOUTH", WarehouseName: "South Warehouse", OccupancyRate: 70, Capacity: 5500, Used: 3850},
			},
			Trend: dashboard.TrendUp,
		},
		DefectRate: dashboard.DefectRateData{
			OverallRate: 2.8,
			ByCategory: []dashboard.CategoryRate{
				{Category: "Premium Widgets", Rate: 1.3},
				{Category: "Standard Widgets", Rate: 2.7},
				{Category: "Economy Widgets", Rate: 3.8},
				{Category: "Accessories", Rate: 2.1},
			},
			Historical: datedRates(2.5, 2.6, 2.8, 2.7, 2.9, 2.8, 2.8),
		},
		ReturnsAnalysis: dashboard.ReturnsAnalysisData{
			TotalReturns: 348,
			ReturnRate:   3.2,
			ByReason: []dashboard.ReturnReason{
				{Reason: "DEFECTIVE", Count: 156, Percentage: 44.8},
				{Reason: "INCORRECT_ITEM", Count: 82, Percentage: 23.6},
				{Reason: "DAMAGED_IN_TRANSIT", Count: 65, Percentage: 18.7},
				{Reason: "CUSTOMER_DISSATISFACTION", Count: 28, Percentage: 8.0},
				{Reason: "OTHER", Count: 17, Percentage: 4.9},
			},
			ByProduct: []dashboard.ProductReturns{
				{ProductID: "P1003", ProductName: "Standard Widget X", ReturnCount: 72, ReturnRate: 3.9},
				{ProductID: "P1005", ProductName: "Economy Widget", ReturnCount: 95, ReturnRate: 4.2},
				{ProductID: "P1002", ProductName: "Premium Widget B", ReturnCount: 32, ReturnRate: 2.1},
				{ProductID: "P1001", ProductName: "Premium Widget A", ReturnCount: 26, ReturnRate: 1.7},
			},
		},
		DailyOrders: dashboard.DailyOrdersData{
			TotalReceived: 2420,
			TotalShipped:  2210,
			Daily: []dashboard.DailyOrders{
				{Date: "2024-03-01", Received: 280, Shipped: 250},
				{Date: "2024-03-02", Received: 300, Shipped: 270},
				{Date: "2024-03-03", Received: 350, Shipped: 310},
				{Date: "2024-03-04", Received: 320, Shipped: 290},
				{Date: "2024-03-05", Received: 390, Shipped: 350},
				{Date: "2024-03-06", Received: 400, Shipped: 380},
				{Date: "2024-03-07", Received: 380, Shipped: 360},
			},
		},
		StockByLocation: dashboard.StockByLocationData{
			TotalQuantity: 1970,
			ByLocation: []dashboard.LocationStock{
				{Location: "Warehouse A", Quantity: 500},
				{Location: "Warehouse B", Quantity: 300},
				{Location: "Warehouse C", Quantity: 450},
				{Location: "Warehouse D", Quantity: 720},
			},
		},
		TransporterDeliveries: dashboard.TransporterDeliveriesData{
			TotalDeliveries: 210,
			ByTransporter: []dashboard.TransporterDeliveries{
				{Transporter: "Truck A", Deliveries: 50},
				{Transporter: "Truck B", Deliveries: 30},
				{Transporter: "Truck C", Deliveries: 45},
				{Transporter: "Truck D", Deliveries: 25},
				{Transporter: "Truck E", Deliveries: 60},
			},
		},
	}
}
