package analytics

import (
	"testing"

	"github.com/jekabolt/grbpwr-analytics/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusDistribution(t *testing.T) {
	day1 := date(2025, 3, 1)
	orders := []entity.Order{
		order(1, entity.Confirmed, "10", day1),
		order(2, entity.Confirmed, "10", day1),
		order(3, entity.Cancelled, "10", day1),
		order(4, entity.Refunded, "10", day1),
		order(5, entity.Pending, "10", day1),
		order(6, entity.Pending, "10", day1),
		order(7, entity.Pending, "10", day1),
		order(8, entity.Delivered, "10", day1),
	}

	got := StatusDistribution(orders)
	require.Len(t, got, 5)
	assert.Equal(t, entity.Pending, got[0].Status)
	assert.Equal(t, 3, got[0].Count)
	assert.InDelta(t, 37.5, got[0].PercentageOfTotal, 1e-9)
	assert.Equal(t, entity.Confirmed, got[1].Status)

	// equal counts are ordered by status name
	assert.Equal(t, []entity.OrderStatusName{entity.Cancelled, entity.Delivered, entity.Refunded},
		[]entity.OrderStatusName{got[2].Status, got[3].Status, got[4].Status})

	total := 0
	pct := 0.0
	for _, s := range got {
		total += s.Count
		pct += s.PercentageOfTotal
	}
	assert.Equal(t, len(orders), total)
	assert.InDelta(t, 100.0, pct, 0.01)
}

func TestStatusDistribution_Empty(t *testing.T) {
	assert.Empty(t, StatusDistribution(nil))
}
