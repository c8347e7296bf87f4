package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is a read-only snapshot of the customer_order table joined with its items.
type Order struct {
	ID         int             `db:"id"`
	UUID       string          `db:"uuid"`
	CustomerID int             `db:"customer_id"`
	Status     OrderStatusName `db:"status"`
	Total      decimal.Decimal `db:"total"`
	CreatedAt  time.Time       `db:"created_at"`
	Items      []OrderItem     `db:"-"`
}

// TotalDecimal returns the order total rounded to cents.
func (o *Order) TotalDecimal() decimal.Decimal {
	return o.Total.Round(2)
}

// IsCompleted reports whether the order counts towards revenue.
func (o *Order) IsCompleted() bool {
	return CompletedOrderStatuses[o.Status]
}

// OrderItem represents the order_item table. ProductName and CategoryName are
// denormalized at checkout and used when Product no longer resolves.
type OrderItem struct {
	ID           int             `db:"id"`
	OrderID      int             `db:"order_id"`
	ProductID    int             `db:"product_id"`
	ProductName  string          `db:"product_name"`
	CategoryName string          `db:"category_name"`
	Quantity     int             `db:"quantity"`
	Price        decimal.Decimal `db:"price"`
	Product      *ProductRef     `db:"-"`
}

// ProductRef is the live product an item points to.
type ProductRef struct {
	ID       int    `db:"id"`
	Name     string `db:"name"`
	Category string `db:"category"`
}

const (
	UnknownProductName = "Unknown Product"
	UncategorizedName  = "Uncategorized"
)

// LineTotal is quantity * price.
func (oi *OrderItem) LineTotal() decimal.Decimal {
	return oi.Price.Mul(decimal.NewFromInt(int64(oi.Quantity)))
}

// ResolvedProductName prefers the live product name, then the denormalized one.
func (oi *OrderItem) ResolvedProductName() string {
	if oi.Product != nil && oi.Product.Name != "" {
		return oi.Product.Name
	}
	if oi.ProductName != "" {
		return oi.ProductName
	}
	return UnknownProductName
}

// ResolvedCategory prefers the live product category, then the denormalized one.
func (oi *OrderItem) ResolvedCategory() string {
	if oi.Product != nil && oi.Product.Category != "" {
		return oi.Product.Category
	}
	if oi.CategoryName != "" {
		return oi.CategoryName
	}
	return UncategorizedName
}

// ResolvedProductID returns the product id used as aggregation key.
func (oi *OrderItem) ResolvedProductID() int {
	if oi.Product != nil && oi.Product.ID != 0 {
		return oi.Product.ID
	}
	return oi.ProductID
}

// OrderStatusName is the custom type to enforce enum-like behavior
type OrderStatusName string

func (osn OrderStatusName) String() string {
	return string(osn)
}

const (
	Pending    OrderStatusName = "pending"
	Confirmed  OrderStatusName = "confirmed"
	Processing OrderStatusName = "processing"
	Shipped    OrderStatusName = "shipped"
	Delivered  OrderStatusName = "delivered"
	Cancelled  OrderStatusName = "cancelled"
	Refunded   OrderStatusName = "refunded"
)

// CompletedOrderStatuses are the statuses that contribute to revenue and product metrics.
var CompletedOrderStatuses = map[OrderStatusName]bool{
	Confirmed:  true,
	Processing: true,
	Shipped:    true,
	Delivered:  true,
}

// CompletedOrderStatusList is CompletedOrderStatuses in a stable order, for SQL IN clauses.
func CompletedOrderStatusList() []string {
	return []string{
		string(Confirmed),
		string(Processing),
		string(Shipped),
		string(Delivered),
	}
}
