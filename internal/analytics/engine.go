package analytics

import (
	"context"
	"time"

	"github.com/jekabolt/grbpwr-analytics/internal/entity"
	"golang.org/x/sync/errgroup"
)

// Snapshot is the read-only input of one engine invocation. Orders must cover
// the request period and, when comparing, the compare period as well.
type Snapshot struct {
	Orders    []entity.Order
	Customers []entity.Customer
}

// Request describes what to compute.
type Request struct {
	Period        entity.DateRange
	ComparePeriod *entity.DateRange
	Granularity   entity.Granularity
	TopLimit      int
	Segment       entity.CustomerSegment
}

// Engine assembles the metric families from a snapshot.
type Engine struct {
	classifier *Classifier
	now        func() time.Time
	loc        *time.Location
}

// New creates an engine. A nil clock means time.Now and a nil location means UTC.
func New(sc entity.SegmentConfig, now func() time.Time, loc *time.Location) *Engine {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Engine{
		classifier: NewClassifier(sc, now),
		now:        now,
		loc:        loc,
	}
}

// NewRequest resolves the period in the engine time zone and derives the
// compare window when asked to.
func (e *Engine) NewRequest(period Period, start, end *time.Time, g entity.Granularity, compare bool, limit int) (Request, error) {
	if start != nil {
		s := start.In(e.loc)
		start = &s
	}
	if end != nil {
		en := end.In(e.loc)
		end = &en
	}
	r, err := ResolveDateRange(period, start, end, e.now().In(e.loc))
	if err != nil {
		return Request{}, err
	}
	if !entity.ValidGranularities[g] {
		g = entity.GranularityDaily
	}
	req := Request{
		Period:      r,
		Granularity: g,
		TopLimit:    limit,
	}
	if compare {
		prev := PreviousPeriod(r)
		req.ComparePeriod = &prev
	}
	return req, nil
}

// FetchRange is the window a snapshot must cover for req.
func (req Request) FetchRange() entity.DateRange {
	if req.ComparePeriod == nil {
		return req.Period
	}
	return entity.DateRange{From: req.ComparePeriod.From, To: req.Period.To}
}

// Revenue computes the revenue family.
func (e *Engine) Revenue(s Snapshot, req Request) entity.RevenueReport {
	current := OrdersIn(s.Orders, req.Period)
	rep := entity.RevenueReport{
		Period:     req.Period,
		Metrics:    ComputeRevenueMetrics(current),
		Series:     BucketRevenueByPeriod(current, req.Period, req.Granularity),
		ByCategory: RevenueByCategory(current),
	}
	if req.ComparePeriod != nil {
		prev := ComputeRevenueMetrics(OrdersIn(s.Orders, *req.ComparePeriod))
		rep.ComparePeriod = req.ComparePeriod
		rep.PreviousPeriod = &prev
		rep.Growth = &entity.Growth{
			Revenue:           GrowthRate(rep.Metrics.TotalRevenue, prev.TotalRevenue),
			OrderCount:        GrowthRateInt(rep.Metrics.OrderCount, prev.OrderCount),
			AverageOrderValue: GrowthRate(rep.Metrics.AverageOrderValue, prev.AverageOrderValue),
		}
	}
	return rep
}

// Products computes the product performance family.
func (e *Engine) Products(s Snapshot, req Request) entity.ProductReport {
	current := OrdersIn(s.Orders, req.Period)
	return entity.ProductReport{
		Period:    req.Period,
		ByRevenue: TopProductsByRevenue(current, req.TopLimit),
		ByUnits:   TopProductsByUnits(current, req.TopLimit),
	}
}

// Customers computes the customer acquisition family and segment distribution.
func (e *Engine) Customers(s Snapshot, req Request) entity.CustomerReport {
	rep := entity.CustomerReport{
		Period:              req.Period,
		NewCustomers:        CountRegistered(s.Customers, req.Period),
		Acquisition:         BucketAcquisition(s.Customers, req.Period, req.Granularity),
		SegmentDistribution: e.classifier.Distribution(s.Customers),
	}
	if req.ComparePeriod != nil {
		prev := CountRegistered(s.Customers, *req.ComparePeriod)
		growth := GrowthRateInt(rep.NewCustomers, prev)
		rep.ComparePeriod = req.ComparePeriod
		rep.PreviousNewCustomers = &prev
		rep.Growth = &growth
	}
	return rep
}

// OrderStatuses computes the order status family over every order in the period.
func (e *Engine) OrderStatuses(s Snapshot, req Request) entity.OrderStatusReport {
	current := OrdersIn(s.Orders, req.Period)
	return entity.OrderStatusReport{
		Period:       req.Period,
		TotalOrders:  len(current),
		Distribution: StatusDistribution(current),
	}
}

// Segments classifies the snapshot customers, optionally filtered by req.Segment.
func (e *Engine) Segments(s Snapshot, req Request) ([]entity.CustomerClassification, []entity.SegmentCount) {
	return e.classifier.ClassifyAll(s.Customers, req.Segment), e.classifier.Distribution(s.Customers)
}

// Build computes every family concurrently. The families share the snapshot
// read-only, so the only synchronization is the final Wait.
func (e *Engine) Build(ctx context.Context, s Snapshot, req Request) (*entity.AnalyticsReport, error) {
	rep := &entity.AnalyticsReport{}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		rep.Revenue = e.Revenue(s, req)
		return nil
	})
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		rep.Products = e.Products(s, req)
		return nil
	})
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		rep.Customers = e.Customers(s, req)
		return nil
	})
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		rep.Statuses = e.OrderStatuses(s, req)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rep, nil
}

// OrdersIn returns the orders created inside r.
func OrdersIn(orders []entity.Order, r entity.DateRange) []entity.Order {
	result := make([]entity.Order, 0, len(orders))
	for _, o := range orders {
		if Contains(r, o.CreatedAt) {
			result = append(result, o)
		}
	}
	return result
}
