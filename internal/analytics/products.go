package analytics

import (
	"sort"

	"github.com/jekabolt/grbpwr-analytics/internal/entity"
	"github.com/shopspring/decimal"
)

// TopProductsByRevenue ranks products of completed orders by revenue.
// Ties fall back to units sold, then ascending product id and name.
func TopProductsByRevenue(orders []entity.Order, limit int) []entity.ProductPerformance {
	products := productPerformance(orders)
	sort.Slice(products, func(i, j int) bool {
		a, b := products[i], products[j]
		if !a.Revenue.Equal(b.Revenue) {
			return a.Revenue.GreaterThan(b.Revenue)
		}
		if a.UnitsSold != b.UnitsSold {
			return a.UnitsSold > b.UnitsSold
		}
		return lessByIDName(a, b)
	})
	return top(products, limit)
}

// TopProductsByUnits ranks products of completed orders by units sold.
// Ties fall back to revenue, then ascending product id and name.
func TopProductsByUnits(orders []entity.Order, limit int) []entity.ProductPerformance {
	products := productPerformance(orders)
	sort.Slice(products, func(i, j int) bool {
		a, b := products[i], products[j]
		if a.UnitsSold != b.UnitsSold {
			return a.UnitsSold > b.UnitsSold
		}
		if !a.Revenue.Equal(b.Revenue) {
			return a.Revenue.GreaterThan(b.Revenue)
		}
		return lessByIDName(a, b)
	})
	return top(products, limit)
}

// productKey groups items by product. Items whose product id is unknown are
// told apart by their resolved name.
type productKey struct {
	id   int
	name string
}

func keyOf(item *entity.OrderItem) productKey {
	id := item.ResolvedProductID()
	if id != 0 {
		return productKey{id: id}
	}
	return productKey{name: item.ResolvedProductName()}
}

func lessByIDName(a, b entity.ProductPerformance) bool {
	if a.ProductID != b.ProductID {
		return a.ProductID < b.ProductID
	}
	return a.ProductName < b.ProductName
}

func productPerformance(orders []entity.Order) []entity.ProductPerformance {
	byKey := map[productKey]*entity.ProductPerformance{}
	for _, o := range CompletedOrders(orders) {
		for i := range o.Items {
			item := &o.Items[i]
			k := keyOf(item)
			p, ok := byKey[k]
			if !ok {
				p = &entity.ProductPerformance{
					ProductID:   k.id,
					ProductName: item.ResolvedProductName(),
					Revenue:     decimal.Zero,
				}
				byKey[k] = p
			}
			p.Revenue = p.Revenue.Add(item.LineTotal())
			p.UnitsSold += item.Quantity
		}
	}

	products := make([]entity.ProductPerformance, 0, len(byKey))
	for _, p := range byKey {
		p.AveragePrice = decimal.Zero
		if p.UnitsSold > 0 {
			p.AveragePrice = p.Revenue.Div(decimal.NewFromInt(int64(p.UnitsSold))).Round(2)
		}
		products = append(products, *p)
	}
	return products
}

func top(products []entity.ProductPerformance, limit int) []entity.ProductPerformance {
	if limit > 0 && len(products) > limit {
		return products[:limit]
	}
	return products
}
