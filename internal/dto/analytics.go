package dto

import (
	"time"

	"github.com/jekabolt/grbpwr-analytics/internal/entity"
	"github.com/shopspring/decimal"
)

// Money values are serialised as JSON strings by decimal.Decimal.

type DateRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

type RevenueMetrics struct {
	TotalRevenue      decimal.Decimal `json:"totalRevenue"`
	OrderCount        int             `json:"orderCount"`
	AverageOrderValue decimal.Decimal `json:"averageOrderValue"`
}

type Growth struct {
	Revenue           float64 `json:"revenue"`
	OrderCount        float64 `json:"orderCount"`
	AverageOrderValue float64 `json:"averageOrderValue"`
}

type RevenueDataPoint struct {
	Date       time.Time       `json:"date"`
	Label      string          `json:"label"`
	Revenue    decimal.Decimal `json:"revenue"`
	OrderCount int             `json:"orderCount"`
}

type CategoryRevenue struct {
	Category          string          `json:"category"`
	Revenue           decimal.Decimal `json:"revenue"`
	PercentageOfTotal float64         `json:"percentageOfTotal"`
}

type RevenueResponse struct {
	Period         DateRange          `json:"period"`
	ComparePeriod  *DateRange         `json:"comparePeriod,omitempty"`
	Metrics        RevenueMetrics     `json:"metrics"`
	PreviousPeriod *RevenueMetrics    `json:"previousPeriod,omitempty"`
	Growth         *Growth            `json:"growth,omitempty"`
	Series         []RevenueDataPoint `json:"series"`
	ByCategory     []CategoryRevenue  `json:"byCategory"`
}

type ProductPerformance struct {
	ProductID    int             `json:"productId"`
	ProductName  string          `json:"productName"`
	Revenue      decimal.Decimal `json:"revenue"`
	UnitsSold    int             `json:"unitsSold"`
	AveragePrice decimal.Decimal `json:"averagePrice"`
}

type ProductsResponse struct {
	Period       DateRange            `json:"period"`
	TopByRevenue []ProductPerformance `json:"topByRevenue"`
	TopByUnits   []ProductPerformance `json:"topByUnits"`
}

type CustomerAcquisitionPoint struct {
	Date            time.Time `json:"date"`
	Label           string    `json:"label"`
	NewCustomers    int       `json:"newCustomers"`
	CumulativeTotal int       `json:"cumulativeTotal"`
}

type SegmentCount struct {
	Segment           string  `json:"segment"`
	Count             int     `json:"count"`
	PercentageOfTotal float64 `json:"percentageOfTotal"`
}

type CustomersResponse struct {
	Period               DateRange                  `json:"period"`
	ComparePeriod        *DateRange                 `json:"comparePeriod,omitempty"`
	NewCustomers         int                        `json:"newCustomers"`
	PreviousNewCustomers *int                       `json:"previousNewCustomers,omitempty"`
	Growth               *float64                   `json:"growth,omitempty"`
	Acquisition          []CustomerAcquisitionPoint `json:"acquisition"`
	SegmentDistribution  []SegmentCount             `json:"segmentDistribution"`
}

type OrderStatusCount struct {
	Status            string  `json:"status"`
	Count             int     `json:"count"`
	PercentageOfTotal float64 `json:"percentageOfTotal"`
}

type OrderStatusResponse struct {
	Period       DateRange          `json:"period"`
	TotalOrders  int                `json:"totalOrders"`
	Distribution []OrderStatusCount `json:"distribution"`
}

type CustomerClassification struct {
	CustomerID int      `json:"customerId"`
	Primary    string   `json:"primary"`
	Segments   []string `json:"segments"`
}

type SegmentsResponse struct {
	Total        int                      `json:"total"`
	Customers    []CustomerClassification `json:"customers"`
	Distribution []SegmentCount           `json:"distribution"`
}

type OverviewResponse struct {
	GeneratedAt   time.Time           `json:"generatedAt"`
	Revenue       RevenueResponse     `json:"revenue"`
	Products      ProductsResponse    `json:"products"`
	Customers     CustomersResponse   `json:"customers"`
	OrderStatuses OrderStatusResponse `json:"orderStatuses"`
}

type ErrorResponse struct {
	Error     string `json:"error"`
	Code      int    `json:"code"`
	RequestID string `json:"requestId,omitempty"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

func dateRange(r entity.DateRange) DateRange {
	return DateRange{From: r.From, To: r.To}
}

func dateRangePtr(r *entity.DateRange) *DateRange {
	if r == nil {
		return nil
	}
	dr := dateRange(*r)
	return &dr
}

func revenueMetrics(m entity.RevenueMetrics) RevenueMetrics {
	return RevenueMetrics{
		TotalRevenue:      m.TotalRevenue,
		OrderCount:        m.OrderCount,
		AverageOrderValue: m.AverageOrderValue,
	}
}

func ConvertEntityRevenueReport(r entity.RevenueReport) RevenueResponse {
	resp := RevenueResponse{
		Period:        dateRange(r.Period),
		ComparePeriod: dateRangePtr(r.ComparePeriod),
		Metrics:       revenueMetrics(r.Metrics),
		Series:        make([]RevenueDataPoint, len(r.Series)),
		ByCategory:    make([]CategoryRevenue, len(r.ByCategory)),
	}
	if r.PreviousPeriod != nil {
		prev := revenueMetrics(*r.PreviousPeriod)
		resp.PreviousPeriod = &prev
	}
	if r.Growth != nil {
		resp.Growth = &Growth{
			Revenue:           r.Growth.Revenue,
			OrderCount:        r.Growth.OrderCount,
			AverageOrderValue: r.Growth.AverageOrderValue,
		}
	}
	for i, p := range r.Series {
		resp.Series[i] = RevenueDataPoint{
			Date:       p.BucketStart,
			Label:      p.Label,
			Revenue:    p.Revenue,
			OrderCount: p.OrderCount,
		}
	}
	for i, c := range r.ByCategory {
		resp.ByCategory[i] = CategoryRevenue{
			Category:          c.Category,
			Revenue:           c.Revenue,
			PercentageOfTotal: c.PercentageOfTotal,
		}
	}
	return resp
}

func productPerformance(list []entity.ProductPerformance) []ProductPerformance {
	out := make([]ProductPerformance, len(list))
	for i, p := range list {
		out[i] = ProductPerformance{
			ProductID:    p.ProductID,
			ProductName:  p.ProductName,
			Revenue:      p.Revenue,
			UnitsSold:    p.UnitsSold,
			AveragePrice: p.AveragePrice,
		}
	}
	return out
}

func ConvertEntityProductReport(r entity.ProductReport) ProductsResponse {
	return ProductsResponse{
		Period:       dateRange(r.Period),
		TopByRevenue: productPerformance(r.ByRevenue),
		TopByUnits:   productPerformance(r.ByUnits),
	}
}

func ConvertEntitySegmentCounts(list []entity.SegmentCount) []SegmentCount {
	out := make([]SegmentCount, len(list))
	for i, s := range list {
		out[i] = SegmentCount{
			Segment:           string(s.Segment),
			Count:             s.Count,
			PercentageOfTotal: s.PercentageOfTotal,
		}
	}
	return out
}

func ConvertEntityCustomerReport(r entity.CustomerReport) CustomersResponse {
	resp := CustomersResponse{
		Period:               dateRange(r.Period),
		ComparePeriod:        dateRangePtr(r.ComparePeriod),
		NewCustomers:         r.NewCustomers,
		PreviousNewCustomers: r.PreviousNewCustomers,
		Growth:               r.Growth,
		Acquisition:          make([]CustomerAcquisitionPoint, len(r.Acquisition)),
		SegmentDistribution:  ConvertEntitySegmentCounts(r.SegmentDistribution),
	}
	for i, p := range r.Acquisition {
		resp.Acquisition[i] = CustomerAcquisitionPoint{
			Date:            p.BucketStart,
			Label:           p.Label,
			NewCustomers:    p.NewCustomers,
			CumulativeTotal: p.CumulativeTotal,
		}
	}
	return resp
}

func ConvertEntityOrderStatusReport(r entity.OrderStatusReport) OrderStatusResponse {
	resp := OrderStatusResponse{
		Period:       dateRange(r.Period),
		TotalOrders:  r.TotalOrders,
		Distribution: make([]OrderStatusCount, len(r.Distribution)),
	}
	for i, s := range r.Distribution {
		resp.Distribution[i] = OrderStatusCount{
			Status:            s.Status.String(),
			Count:             s.Count,
			PercentageOfTotal: s.PercentageOfTotal,
		}
	}
	return resp
}

func ConvertEntityClassifications(list []entity.CustomerClassification, dist []entity.SegmentCount) SegmentsResponse {
	resp := SegmentsResponse{
		Total:        len(list),
		Customers:    make([]CustomerClassification, len(list)),
		Distribution: ConvertEntitySegmentCounts(dist),
	}
	for i, c := range list {
		segments := make([]string, len(c.Segments))
		for j, s := range c.Segments {
			segments[j] = string(s)
		}
		resp.Customers[i] = CustomerClassification{
			CustomerID: c.CustomerID,
			Primary:    string(c.Primary),
			Segments:   segments,
		}
	}
	return resp
}

func ConvertEntityAnalyticsReport(r *entity.AnalyticsReport, generatedAt time.Time) *OverviewResponse {
	if r == nil {
		return nil
	}
	return &OverviewResponse{
		GeneratedAt:   generatedAt,
		Revenue:       ConvertEntityRevenueReport(r.Revenue),
		Products:      ConvertEntityProductReport(r.Products),
		Customers:     ConvertEntityCustomerReport(r.Customers),
		OrderStatuses: ConvertEntityOrderStatusReport(r.Statuses),
	}
}
