package admin

import (
	"context"
	"fmt"
	"time"

	"log/slog"

	"github.com/jekabolt/grbpwr-analytics/internal/analytics"
	"github.com/jekabolt/grbpwr-analytics/internal/dependency"
	"github.com/jekabolt/grbpwr-analytics/internal/dto"
	"github.com/jekabolt/grbpwr-analytics/internal/entity"
	"github.com/jekabolt/grbpwr-analytics/internal/form"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Config holds the analytics engine settings.
type Config struct {
	MaxOrders           int    `mapstructure:"max_orders"`
	MaxCustomers        int    `mapstructure:"max_customers"`
	TopProductsLimit    int    `mapstructure:"top_products_limit"`
	Timezone            string `mapstructure:"timezone"`
	VIPMinSpent         string `mapstructure:"vip_min_spent"`
	VIPMinOrders        int    `mapstructure:"vip_min_orders"`
	NewDaysThreshold    int    `mapstructure:"new_days_threshold"`
	AtRiskDaysThreshold int    `mapstructure:"at_risk_days_threshold"`
}

// DefaultConfig returns default configuration values.
func DefaultConfig() Config {
	sc := entity.DefaultSegmentConfig()
	return Config{
		MaxOrders:           100000,
		MaxCustomers:        100000,
		TopProductsLimit:    10,
		Timezone:            "UTC",
		VIPMinSpent:         sc.VIPMinSpent.String(),
		VIPMinOrders:        sc.VIPMinOrders,
		NewDaysThreshold:    sc.NewDaysThreshold,
		AtRiskDaysThreshold: sc.AtRiskDaysThreshold,
	}
}

// SegmentConfig returns the classifier thresholds, falling back to defaults
// for unset values.
func (c *Config) SegmentConfig() (entity.SegmentConfig, error) {
	sc := entity.DefaultSegmentConfig()
	if c.VIPMinSpent != "" {
		d, err := decimal.NewFromString(c.VIPMinSpent)
		if err != nil {
			return sc, fmt.Errorf("invalid vip_min_spent %q: %w", c.VIPMinSpent, err)
		}
		if d.IsNegative() {
			return sc, fmt.Errorf("vip_min_spent must not be negative")
		}
		sc.VIPMinSpent = d
	}
	if c.VIPMinOrders > 0 {
		sc.VIPMinOrders = c.VIPMinOrders
	}
	if c.NewDaysThreshold > 0 {
		sc.NewDaysThreshold = c.NewDaysThreshold
	}
	if c.AtRiskDaysThreshold > 0 {
		sc.AtRiskDaysThreshold = c.AtRiskDaysThreshold
	}
	return sc, nil
}

// Location loads the configured time zone; empty means UTC.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Server implements the analytics handlers.
type Server struct {
	repo   dependency.Repository
	engine *analytics.Engine
	c      *Config
	loc    *time.Location
	now    func() time.Time
}

// New creates a new analytics server. A nil clock means time.Now.
func New(c *Config, r dependency.Repository, now func() time.Time) (*Server, error) {
	if c == nil {
		dc := DefaultConfig()
		c = &dc
	}
	if c.TopProductsLimit <= 0 {
		c.TopProductsLimit = 10
	}
	if now == nil {
		now = time.Now
	}
	sc, err := c.SegmentConfig()
	if err != nil {
		return nil, err
	}
	loc, err := c.Location()
	if err != nil {
		return nil, err
	}
	return &Server{
		repo:   r,
		engine: analytics.New(sc, now, loc),
		c:      c,
		loc:    loc,
		now:    now,
	}, nil
}

// Location is the time zone date-only query bounds are read in.
func (s *Server) Location() *time.Location {
	return s.loc
}

// Ping checks the store.
func (s *Server) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

func (s *Server) request(q *form.AnalyticsQuery) (analytics.Request, error) {
	limit := q.Limit
	if limit == 0 {
		limit = s.c.TopProductsLimit
	}
	req, err := s.engine.NewRequest(
		analytics.Period(q.Period),
		q.StartTime(),
		q.EndTime(),
		entity.Granularity(q.Granularity),
		q.Compare,
		limit,
	)
	if err != nil {
		return analytics.Request{}, err
	}
	req.Segment = entity.CustomerSegment(q.Segment)
	return req, nil
}

type fetch struct {
	orders    bool
	customers bool
}

// snapshot loads the orders of req.FetchRange and the customers concurrently.
func (s *Server) snapshot(ctx context.Context, req analytics.Request, f fetch) (analytics.Snapshot, error) {
	var snap analytics.Snapshot
	g, ctx := errgroup.WithContext(ctx)

	if f.orders {
		g.Go(func() error {
			orders, err := s.repo.Analytics().GetOrdersSnapshot(ctx, req.FetchRange(), s.c.MaxOrders)
			if err != nil {
				return fmt.Errorf("can't get orders snapshot: %w", err)
			}
			snap.Orders = orders
			return nil
		})
	}
	if f.customers {
		g.Go(func() error {
			customers, err := s.repo.Analytics().GetCustomersSnapshot(ctx, s.c.MaxCustomers)
			if err != nil {
				return fmt.Errorf("can't get customers snapshot: %w", err)
			}
			snap.Customers = customers
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		slog.Default().ErrorContext(ctx, "can't load analytics snapshot",
			slog.String("err", err.Error()),
		)
		return analytics.Snapshot{}, err
	}
	return snap, nil
}

// GetRevenue returns revenue metrics, the revenue series and the category breakdown.
func (s *Server) GetRevenue(ctx context.Context, q *form.AnalyticsQuery) (*dto.RevenueResponse, error) {
	req, err := s.request(q)
	if err != nil {
		return nil, err
	}
	snap, err := s.snapshot(ctx, req, fetch{orders: true})
	if err != nil {
		return nil, err
	}
	resp := dto.ConvertEntityRevenueReport(s.engine.Revenue(snap, req))
	return &resp, nil
}

// GetProducts returns the top products by revenue and by units sold.
func (s *Server) GetProducts(ctx context.Context, q *form.AnalyticsQuery) (*dto.ProductsResponse, error) {
	req, err := s.request(q)
	if err != nil {
		return nil, err
	}
	req.ComparePeriod = nil
	snap, err := s.snapshot(ctx, req, fetch{orders: true})
	if err != nil {
		return nil, err
	}
	resp := dto.ConvertEntityProductReport(s.engine.Products(snap, req))
	return &resp, nil
}

// GetCustomers returns customer acquisition and the segment distribution.
func (s *Server) GetCustomers(ctx context.Context, q *form.AnalyticsQuery) (*dto.CustomersResponse, error) {
	req, err := s.request(q)
	if err != nil {
		return nil, err
	}
	snap, err := s.snapshot(ctx, req, fetch{customers: true})
	if err != nil {
		return nil, err
	}
	resp := dto.ConvertEntityCustomerReport(s.engine.Customers(snap, req))
	return &resp, nil
}

// GetOrderStatuses returns the order count per status.
func (s *Server) GetOrderStatuses(ctx context.Context, q *form.AnalyticsQuery) (*dto.OrderStatusResponse, error) {
	req, err := s.request(q)
	if err != nil {
		return nil, err
	}
	req.ComparePeriod = nil
	snap, err := s.snapshot(ctx, req, fetch{orders: true})
	if err != nil {
		return nil, err
	}
	resp := dto.ConvertEntityOrderStatusReport(s.engine.OrderStatuses(snap, req))
	return &resp, nil
}

// GetSegments classifies every customer, optionally filtered by segment.
func (s *Server) GetSegments(ctx context.Context, q *form.AnalyticsQuery) (*dto.SegmentsResponse, error) {
	req, err := s.request(q)
	if err != nil {
		return nil, err
	}
	snap, err := s.snapshot(ctx, req, fetch{customers: true})
	if err != nil {
		return nil, err
	}
	classified, dist := s.engine.Segments(snap, req)
	resp := dto.ConvertEntityClassifications(classified, dist)
	return &resp, nil
}

// GetOverview builds every metric family from one snapshot.
func (s *Server) GetOverview(ctx context.Context, q *form.AnalyticsQuery) (*dto.OverviewResponse, error) {
	req, err := s.request(q)
	if err != nil {
		return nil, err
	}
	snap, err := s.snapshot(ctx, req, fetch{orders: true, customers: true})
	if err != nil {
		return nil, err
	}
	started := time.Now()
	rep, err := s.engine.Build(ctx, snap, req)
	if err != nil {
		return nil, fmt.Errorf("can't build overview: %w", err)
	}
	slog.Default().DebugContext(ctx, "overview built",
		slog.Int("orders", len(snap.Orders)),
		slog.Int("customers", len(snap.Customers)),
		slog.Duration("took", time.Since(started)),
	)
	return dto.ConvertEntityAnalyticsReport(rep, s.now()), nil
}
