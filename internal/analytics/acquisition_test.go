package analytics

import (
	"testing"
	"time"

	"github.com/jekabolt/grbpwr-analytics/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBucketAcquisition(t *testing.T) {
	r := entity.DateRange{From: date(2025, 3, 1), To: EndOfDay(date(2025, 3, 5))}
	customers := []entity.Customer{
		customer(1, "0", 0, date(2025, 2, 28), nil), // before the range
		customer(2, "0", 0, date(2025, 3, 1), nil),
		customer(3, "0", 0, date(2025, 3, 1).Add(23*time.Hour), nil),
		customer(4, "0", 0, date(2025, 3, 3), nil),
		customer(5, "0", 0, EndOfDay(date(2025, 3, 5)), nil),
		customer(6, "0", 0, date(2025, 3, 6), nil), // after the range
	}

	points := BucketAcquisition(customers, r, entity.GranularityDaily)
	require.Len(t, points, 5)

	assert.Equal(t, []int{2, 0, 1, 0, 1}, newCounts(points))
	assert.Equal(t, []int{2, 2, 3, 3, 4}, cumulative(points))
	assert.Equal(t, CountRegistered(customers, r), points[len(points)-1].CumulativeTotal)
}

func TestBucketAcquisition_Monotonic(t *testing.T) {
	r := entity.DateRange{From: date(2024, 10, 1), To: EndOfDay(date(2025, 3, 31))}
	var customers []entity.Customer
	for i := 0; i < 200; i++ {
		customers = append(customers, customer(i, "0", 0, date(2024, 9, 15).Add(time.Duration(i)*22*time.Hour), nil))
	}

	for _, g := range []entity.Granularity{entity.GranularityDaily, entity.GranularityWeekly, entity.GranularityMonthly} {
		t.Run(string(g), func(t *testing.T) {
			points := BucketAcquisition(customers, r, g)
			require.NotEmpty(t, points)
			for i := 1; i < len(points); i++ {
				assert.GreaterOrEqual(t, points[i].CumulativeTotal, points[i-1].CumulativeTotal)
			}
			assert.Equal(t, CountRegistered(customers, r), points[len(points)-1].CumulativeTotal)
		})
	}
}

func TestBucketAcquisition_Empty(t *testing.T) {
	r := entity.DateRange{From: date(2025, 1, 1), To: EndOfDay(date(2025, 3, 1))}
	points := BucketAcquisition(nil, r, entity.GranularityMonthly)
	require.Len(t, points, 3)
	for _, p := range points {
		assert.Zero(t, p.NewCustomers)
		assert.Zero(t, p.CumulativeTotal)
	}
}

func newCounts(points []entity.CustomerAcquisitionPoint) []int {
	out := make([]int, len(points))
	for i, p := range points {
		out[i] = p.NewCustomers
	}
	return out
}

func cumulative(points []entity.CustomerAcquisitionPoint) []int {
	out := make([]int, len(points))
	for i, p := range points {
		out[i] = p.CumulativeTotal
	}
	return out
}
