package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/jekabolt/grbpwr-analytics/internal/dependency"
	"github.com/jekabolt/grbpwr-analytics/internal/entity"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// itemsChunkSize bounds the IN list of a single order_item query.
const itemsChunkSize = 500

type analyticsStore struct {
	*MYSQLStore
}

// Analytics returns an object implementing the analytics snapshot interface
func (ms *MYSQLStore) Analytics() dependency.Analytics {
	return &analyticsStore{
		MYSQLStore: ms,
	}
}

type orderItemRow struct {
	entity.OrderItem
	RefID       sql.NullInt32  `db:"ref_id"`
	RefName     sql.NullString `db:"ref_name"`
	RefCategory sql.NullString `db:"ref_category"`
}

func (r orderItemRow) toEntity() entity.OrderItem {
	oi := r.OrderItem
	oi.CategoryName = categoryLabel(oi.CategoryName)
	if r.RefID.Valid {
		oi.Product = &entity.ProductRef{
			ID:       int(r.RefID.Int32),
			Name:     r.RefName.String,
			Category: categoryLabel(r.RefCategory.String),
		}
	}
	return oi
}

// categoryLabel turns a category slug such as "outer_wear" into "Outer Wear".
func categoryLabel(slug string) string {
	slug = strings.TrimSpace(strings.ReplaceAll(slug, "_", " "))
	if slug == "" {
		return ""
	}
	return cases.Title(language.English).String(slug)
}

// GetOrdersSnapshot reads the orders and their items inside a single
// read-only transaction so both sides come from the same snapshot.
func (s *analyticsStore) GetOrdersSnapshot(ctx context.Context, r entity.DateRange, limit int) ([]entity.Order, error) {
	if !s.InTx() {
		var orders []entity.Order
		err := s.Tx(ctx, func(ctx context.Context, rep dependency.Repository) error {
			var err error
			orders, err = rep.Analytics().GetOrdersSnapshot(ctx, r, limit)
			return err
		})
		return orders, err
	}

	query := `
	SELECT id, uuid, COALESCE(customer_id, 0) AS customer_id, status, total, created_at
	FROM customer_order
	WHERE created_at BETWEEN :from AND :to
	ORDER BY created_at DESC, id DESC`
	params := map[string]any{
		"from": r.From,
		"to":   r.To,
	}
	if limit > 0 {
		query += "\n\tLIMIT :limit"
		params["limit"] = limit + 1
	}

	orders, err := QueryListNamed[entity.Order](ctx, s.DB(), query, params)
	if err != nil {
		return nil, fmt.Errorf("can't get orders: %w", err)
	}
	orders, truncated := keepNewest(orders, limit)
	if truncated {
		slog.Default().WarnContext(ctx, "orders snapshot truncated",
			slog.Int("limit", limit),
			slog.Time("from", r.From),
			slog.Time("to", r.To),
		)
	}
	if len(orders) == 0 {
		return orders, nil
	}

	idx := make(map[int]int, len(orders))
	ids := make([]int, 0, len(orders))
	for i, o := range orders {
		idx[o.ID] = i
		ids = append(ids, o.ID)
	}

	for chunk := range slices.Chunk(ids, itemsChunkSize) {
		items, err := s.getOrderItems(ctx, chunk)
		if err != nil {
			return nil, err
		}
		for _, it := range items {
			i := idx[it.OrderID]
			orders[i].Items = append(orders[i].Items, it.toEntity())
		}
	}
	return orders, nil
}

func (s *analyticsStore) getOrderItems(ctx context.Context, orderIds []int) ([]orderItemRow, error) {
	query := `
	SELECT
		oi.id,
		oi.order_id,
		oi.product_id,
		oi.product_name,
		oi.category_name,
		oi.quantity,
		oi.price,
		p.id AS ref_id,
		p.name AS ref_name,
		c.name AS ref_category
	FROM order_item oi
	LEFT JOIN product p ON p.id = oi.product_id
	LEFT JOIN category c ON c.id = p.category_id
	WHERE oi.order_id IN (:orderIds)
	ORDER BY oi.order_id, oi.id`

	items, err := QueryListNamed[orderItemRow](ctx, s.DB(), query, map[string]any{
		"orderIds": orderIds,
	})
	if err != nil {
		return nil, fmt.Errorf("can't get order items: %w", err)
	}
	return items, nil
}

// GetCustomersSnapshot returns every customer with total spent, order count
// and last order date computed over completed orders only.
func (s *analyticsStore) GetCustomersSnapshot(ctx context.Context, limit int) ([]entity.Customer, error) {
	query := `
	SELECT
		c.id,
		c.email,
		c.created_at,
		COALESCE(SUM(o.total), 0) AS total_spent,
		COUNT(o.id) AS total_orders,
		MAX(o.created_at) AS last_order_date
	FROM customer c
	LEFT JOIN customer_order o ON o.customer_id = c.id AND o.status IN (:completed)
	GROUP BY c.id, c.email, c.created_at
	ORDER BY c.created_at DESC, c.id DESC`
	params := map[string]any{
		"completed": entity.CompletedOrderStatusList(),
	}
	if limit > 0 {
		query += "\n\tLIMIT :limit"
		params["limit"] = limit + 1
	}

	customers, err := QueryListNamed[entity.Customer](ctx, s.DB(), query, params)
	if err != nil {
		return nil, fmt.Errorf("can't get customers: %w", err)
	}
	customers, truncated := keepNewest(customers, limit)
	if truncated {
		slog.Default().WarnContext(ctx, "customers snapshot truncated",
			slog.Int("limit", limit),
		)
	}
	return customers, nil
}

// keepNewest takes rows sorted newest first, drops everything past limit and
// returns the rest oldest first. A non-positive limit keeps every row.
func keepNewest[T any](rows []T, limit int) ([]T, bool) {
	truncated := limit > 0 && len(rows) > limit
	if truncated {
		rows = rows[:limit]
	}
	slices.Reverse(rows)
	return rows, truncated
}
