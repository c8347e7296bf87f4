package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Granularity controls time bucket size for time series (day, week, month).
type Granularity string

const (
	GranularityDaily   Granularity = "daily"
	GranularityWeekly  Granularity = "weekly"
	GranularityMonthly Granularity = "monthly"
)

// ValidGranularities is a set of valid granularity names
var ValidGranularities = map[Granularity]bool{
	GranularityDaily:   true,
	GranularityWeekly:  true,
	GranularityMonthly: true,
}

// DateRange is an inclusive window: From is start of day, To is end of day.
type DateRange struct {
	From time.Time
	To   time.Time
}

// Bucket is one calendar period of a time series, half-open [Start, End).
type Bucket struct {
	Start time.Time
	End   time.Time
	Label string
}

type RevenueMetrics struct {
	TotalRevenue      decimal.Decimal
	OrderCount        int
	AverageOrderValue decimal.Decimal
}

type RevenueDataPoint struct {
	BucketStart time.Time
	Label       string
	Revenue     decimal.Decimal
	OrderCount  int
}

type CategoryRevenue struct {
	Category          string
	Revenue           decimal.Decimal
	PercentageOfTotal float64
}

type ProductPerformance struct {
	ProductID    int
	ProductName  string
	Revenue      decimal.Decimal
	UnitsSold    int
	AveragePrice decimal.Decimal
}

type CustomerAcquisitionPoint struct {
	BucketStart     time.Time
	Label           string
	NewCustomers    int
	CumulativeTotal int
}

type OrderStatusCount struct {
	Status            OrderStatusName
	Count             int
	PercentageOfTotal float64
}

// Growth holds percentage changes against the previous period.
type Growth struct {
	Revenue           float64
	OrderCount        float64
	AverageOrderValue float64
}

// RevenueReport is the revenue metric family.
type RevenueReport struct {
	Period         DateRange
	ComparePeriod  *DateRange
	Metrics        RevenueMetrics
	PreviousPeriod *RevenueMetrics
	Growth         *Growth
	Series         []RevenueDataPoint
	ByCategory     []CategoryRevenue
}

// ProductReport is the product performance metric family.
type ProductReport struct {
	Period    DateRange
	ByRevenue []ProductPerformance
	ByUnits   []ProductPerformance
}

// CustomerReport is the customer acquisition metric family.
type CustomerReport struct {
	Period               DateRange
	ComparePeriod        *DateRange
	NewCustomers         int
	PreviousNewCustomers *int
	Growth               *float64
	Acquisition          []CustomerAcquisitionPoint
	SegmentDistribution  []SegmentCount
}

// OrderStatusReport is the order status metric family.
type OrderStatusReport struct {
	Period       DateRange
	TotalOrders  int
	Distribution []OrderStatusCount
}

// AnalyticsReport bundles every metric family for one request.
type AnalyticsReport struct {
	Revenue   RevenueReport
	Products  ProductReport
	Customers CustomerReport
	Statuses  OrderStatusReport
}
