package analytics

import (
	"sort"

	"github.com/jekabolt/grbpwr-analytics/internal/entity"
	"github.com/shopspring/decimal"
)

// CompletedOrders returns the orders whose status counts towards revenue.
func CompletedOrders(orders []entity.Order) []entity.Order {
	completed := make([]entity.Order, 0, len(orders))
	for _, o := range orders {
		if o.IsCompleted() {
			completed = append(completed, o)
		}
	}
	return completed
}

// ComputeRevenueMetrics sums totals of completed orders.
func ComputeRevenueMetrics(orders []entity.Order) entity.RevenueMetrics {
	m := entity.RevenueMetrics{
		TotalRevenue:      decimal.Zero,
		AverageOrderValue: decimal.Zero,
	}
	for _, o := range CompletedOrders(orders) {
		m.TotalRevenue = m.TotalRevenue.Add(o.TotalDecimal())
		m.OrderCount++
	}
	if m.OrderCount > 0 {
		m.AverageOrderValue = m.TotalRevenue.Div(decimal.NewFromInt(int64(m.OrderCount))).Round(2)
	}
	return m
}

// BucketRevenueByPeriod returns one point per calendar bucket of r, zero-filled.
func BucketRevenueByPeriod(orders []entity.Order, r entity.DateRange, g entity.Granularity) []entity.RevenueDataPoint {
	buckets := Buckets(r, g)
	points := make([]entity.RevenueDataPoint, len(buckets))
	for i, b := range buckets {
		points[i] = entity.RevenueDataPoint{
			BucketStart: b.Start,
			Label:       b.Label,
			Revenue:     decimal.Zero,
		}
	}
	for _, o := range CompletedOrders(orders) {
		i, ok := bucketIndex(buckets, r, o.CreatedAt)
		if !ok {
			continue
		}
		points[i].Revenue = points[i].Revenue.Add(o.TotalDecimal())
		points[i].OrderCount++
	}
	return points
}

// RevenueByCategory attributes quantity*price of completed order items to
// their category, sorted by revenue descending.
func RevenueByCategory(orders []entity.Order) []entity.CategoryRevenue {
	totals := map[string]decimal.Decimal{}
	grand := decimal.Zero
	for _, o := range CompletedOrders(orders) {
		for _, item := range o.Items {
			line := item.LineTotal()
			category := item.ResolvedCategory()
			totals[category] = totals[category].Add(line)
			grand = grand.Add(line)
		}
	}

	result := make([]entity.CategoryRevenue, 0, len(totals))
	for category, revenue := range totals {
		result = append(result, entity.CategoryRevenue{
			Category:          category,
			Revenue:           revenue,
			PercentageOfTotal: percentage(revenue, grand),
		})
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Revenue.Equal(result[j].Revenue) {
			return result[i].Revenue.GreaterThan(result[j].Revenue)
		}
		return result[i].Category < result[j].Category
	})
	return result
}
