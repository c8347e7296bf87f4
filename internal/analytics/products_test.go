package analytics

import (
	"testing"

	"github.com/jekabolt/grbpwr-analytics/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopProductsByRevenue_SingleOrder(t *testing.T) {
	orders := []entity.Order{
		order(1, entity.Confirmed, "50", date(2025, 3, 1),
			item(1, "A", "Tops", 2, "10"),
			item(2, "B", "Tops", 1, "30"),
		),
	}

	got := TopProductsByRevenue(orders, 1)
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].ProductID)
	assert.Equal(t, "B", got[0].ProductName)
	assert.True(t, got[0].Revenue.Equal(dec("30")))

	all := TopProductsByRevenue(orders, 10)
	require.Len(t, all, 2)
	assert.Equal(t, 1, all[1].ProductID)
	assert.True(t, all[1].Revenue.Equal(dec("20")))
	assert.True(t, all[1].AveragePrice.Equal(dec("10")))
}

func TestTopProductsByUnits(t *testing.T) {
	orders := []entity.Order{
		order(1, entity.Confirmed, "50", date(2025, 3, 1),
			item(1, "A", "Tops", 2, "10"),
			item(2, "B", "Tops", 1, "30"),
		),
		order(2, entity.Delivered, "10", date(2025, 3, 2),
			item(1, "A", "Tops", 1, "10"),
		),
	}

	got := TopProductsByUnits(orders, 0)
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].ProductID)
	assert.Equal(t, 3, got[0].UnitsSold)
	assert.True(t, got[0].Revenue.Equal(dec("30")))
	assert.Equal(t, 2, got[1].ProductID)
}

func TestTopProducts_OnlyCompletedOrders(t *testing.T) {
	orders := []entity.Order{
		order(1, entity.Cancelled, "100", date(2025, 3, 1), item(1, "A", "Tops", 10, "10")),
		order(2, entity.Refunded, "100", date(2025, 3, 1), item(2, "B", "Tops", 10, "10")),
		order(3, entity.Pending, "100", date(2025, 3, 1), item(3, "C", "Tops", 10, "10")),
		order(4, entity.Shipped, "5", date(2025, 3, 1), item(4, "D", "Tops", 1, "5")),
	}
	got := TopProductsByRevenue(orders, 10)
	require.Len(t, got, 1)
	assert.Equal(t, 4, got[0].ProductID)
}

func TestTopProducts_TieBreak(t *testing.T) {
	orders := []entity.Order{
		order(1, entity.Confirmed, "60", date(2025, 3, 1),
			item(7, "G", "Tops", 1, "20"),
			item(3, "C", "Tops", 2, "10"),
			item(5, "E", "Tops", 1, "20"),
		),
	}

	byRevenue := TopProductsByRevenue(orders, 0)
	require.Len(t, byRevenue, 3)
	// equal revenue: more units first, then lower id
	assert.Equal(t, []int{3, 5, 7}, productIDs(byRevenue))

	byUnits := TopProductsByUnits(orders, 0)
	assert.Equal(t, []int{3, 5, 7}, productIDs(byUnits))
}

func TestTopProducts_NonIncreasing(t *testing.T) {
	var items []entity.OrderItem
	for i := 1; i <= 20; i++ {
		items = append(items, item(i, "P", "Tops", i%4+1, "3.5"))
	}
	orders := []entity.Order{order(1, entity.Confirmed, "0", date(2025, 3, 1), items...)}

	got := TopProductsByRevenue(orders, 5)
	require.Len(t, got, 5)
	for i := 1; i < len(got); i++ {
		assert.True(t, got[i-1].Revenue.GreaterThanOrEqual(got[i].Revenue))
	}
}

func TestTopProducts_DanglingReference(t *testing.T) {
	orders := []entity.Order{
		order(1, entity.Confirmed, "30", date(2025, 3, 1),
			entity.OrderItem{ProductID: 42, Quantity: 1, Price: dec("10")},
			entity.OrderItem{ProductID: 43, ProductName: "Archived Tee", Quantity: 2, Price: dec("10")},
		),
	}
	got := TopProductsByRevenue(orders, 0)
	require.Len(t, got, 2)
	assert.Equal(t, "Archived Tee", got[0].ProductName)
	assert.Equal(t, entity.UnknownProductName, got[1].ProductName)
}

func TestTopProducts_UnknownIDSplitsByName(t *testing.T) {
	orders := []entity.Order{
		order(1, entity.Confirmed, "30", date(2025, 3, 1),
			entity.OrderItem{ProductName: "Hat", Quantity: 1, Price: dec("10")},
			entity.OrderItem{ProductName: "Scarf", Quantity: 1, Price: dec("20")},
		),
		order(2, entity.Delivered, "10", date(2025, 3, 2),
			entity.OrderItem{ProductName: "Hat", Quantity: 1, Price: dec("10")},
		),
	}

	byRevenue := TopProductsByRevenue(orders, 0)
	require.Len(t, byRevenue, 2)
	assert.Equal(t, "Scarf", byRevenue[0].ProductName)
	assert.Zero(t, byRevenue[0].ProductID)
	assert.True(t, byRevenue[0].Revenue.Equal(dec("20")))
	assert.Equal(t, 1, byRevenue[0].UnitsSold)
	assert.Equal(t, "Hat", byRevenue[1].ProductName)
	assert.True(t, byRevenue[1].Revenue.Equal(dec("20")))
	assert.Equal(t, 2, byRevenue[1].UnitsSold)
	assert.True(t, byRevenue[1].AveragePrice.Equal(dec("10")))

	// same units and revenue: name decides
	tied := []entity.Order{
		order(1, entity.Confirmed, "20", date(2025, 3, 1),
			entity.OrderItem{ProductName: "Scarf", Quantity: 1, Price: dec("10")},
			entity.OrderItem{ProductName: "Hat", Quantity: 1, Price: dec("10")},
		),
	}
	byUnits := TopProductsByUnits(tied, 0)
	require.Len(t, byUnits, 2)
	assert.Equal(t, "Hat", byUnits[0].ProductName)
	assert.Equal(t, "Scarf", byUnits[1].ProductName)
}

func productIDs(products []entity.ProductPerformance) []int {
	ids := make([]int, len(products))
	for i, p := range products {
		ids[i] = p.ProductID
	}
	return ids
}
