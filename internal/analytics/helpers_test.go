package analytics

import (
	"time"

	"github.com/jekabolt/grbpwr-analytics/internal/entity"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func order(id int, status entity.OrderStatusName, total string, createdAt time.Time, items ...entity.OrderItem) entity.Order {
	return entity.Order{
		ID:        id,
		Status:    status,
		Total:     dec(total),
		CreatedAt: createdAt,
		Items:     items,
	}
}

func item(productID int, name, category string, quantity int, price string) entity.OrderItem {
	return entity.OrderItem{
		ProductID: productID,
		Product: &entity.ProductRef{
			ID:       productID,
			Name:     name,
			Category: category,
		},
		Quantity: quantity,
		Price:    dec(price),
	}
}

func customer(id int, spent string, orders int, createdAt time.Time, lastOrder *time.Time) entity.Customer {
	return entity.Customer{
		ID:            id,
		TotalSpent:    dec(spent),
		TotalOrders:   orders,
		CreatedAt:     createdAt,
		LastOrderDate: lastOrder,
	}
}

func daysAgo(n int) time.Time {
	return testNow.AddDate(0, 0, -n)
}

func ptrTime(t time.Time) *time.Time {
	return &t
}

func fixedClock() time.Time {
	return testNow
}
