package admin

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jekabolt/grbpwr-analytics/internal/analytics"
	"github.com/jekabolt/grbpwr-analytics/internal/dependency/mocks"
	"github.com/jekabolt/grbpwr-analytics/internal/entity"
	"github.com/jekabolt/grbpwr-analytics/internal/form"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 3, 15, 12, 30, 0, 0, time.UTC)

func fixedClock() time.Time {
	return testNow
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 10, 0, 0, 0, time.UTC)
}

func testOrders() []entity.Order {
	return []entity.Order{
		{
			ID:        1,
			Status:    entity.Confirmed,
			Total:     decimal.NewFromInt(100),
			CreatedAt: day(2025, 3, 10),
			Items: []entity.OrderItem{{
				ProductID: 1,
				Product:   &entity.ProductRef{ID: 1, Name: "Tee", Category: "Tops"},
				Quantity:  2,
				Price:     decimal.NewFromInt(50),
			}},
		},
		{
			ID:        2,
			Status:    entity.Cancelled,
			Total:     decimal.NewFromInt(900),
			CreatedAt: day(2025, 3, 11),
		},
		{
			ID:        3,
			Status:    entity.Delivered,
			Total:     decimal.NewFromInt(50),
			CreatedAt: day(2025, 3, 3),
		},
	}
}

func testCustomers() []entity.Customer {
	last := day(2025, 3, 10)
	return []entity.Customer{
		{ID: 1, TotalSpent: decimal.NewFromInt(700), TotalOrders: 3, CreatedAt: day(2025, 3, 9), LastOrderDate: &last},
		{ID: 2, TotalSpent: decimal.Zero, CreatedAt: day(2024, 1, 1)},
		{ID: 3, TotalSpent: decimal.NewFromInt(50), TotalOrders: 1, CreatedAt: day(2025, 3, 2), LastOrderDate: &last},
	}
}

func newTestServer(t *testing.T) (*Server, *mocks.Repository, *mocks.Analytics) {
	t.Helper()
	repo := mocks.NewRepository(t)
	store := mocks.NewAnalytics(t)
	c := DefaultConfig()
	s, err := New(&c, repo, fixedClock)
	require.NoError(t, err)
	return s, repo, store
}

func query(period, granularity string, compare bool) *form.AnalyticsQuery {
	return &form.AnalyticsQuery{Period: period, Granularity: granularity, Compare: compare}
}

func rangeFrom(from time.Time) interface{} {
	return mock.MatchedBy(func(r entity.DateRange) bool {
		return r.From.Equal(from)
	})
}

func TestConfig_SegmentConfig(t *testing.T) {
	c := Config{VIPMinSpent: "1000.50", VIPMinOrders: 10}
	sc, err := c.SegmentConfig()
	require.NoError(t, err)
	assert.True(t, sc.VIPMinSpent.Equal(decimal.RequireFromString("1000.50")))
	assert.Equal(t, 10, sc.VIPMinOrders)
	assert.Equal(t, 30, sc.NewDaysThreshold)
	assert.Equal(t, 90, sc.AtRiskDaysThreshold)

	c.VIPMinSpent = "lots"
	_, err = c.SegmentConfig()
	assert.Error(t, err)

	c.VIPMinSpent = "-1"
	_, err = c.SegmentConfig()
	assert.Error(t, err)
}

func TestConfig_Location(t *testing.T) {
	c := Config{}
	loc, err := c.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)

	c.Timezone = "Not/AZone"
	_, err = c.Location()
	assert.Error(t, err)

	_, err = New(&c, mocks.NewRepository(t), fixedClock)
	assert.Error(t, err)
}

func TestGetRevenue(t *testing.T) {
	ctx := context.Background()
	s, repo, store := newTestServer(t)

	repo.EXPECT().Analytics().Return(store)
	store.EXPECT().
		GetOrdersSnapshot(mock.Anything, rangeFrom(time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC)), 100000).
		Return(testOrders(), nil).
		Once()

	resp, err := s.GetRevenue(ctx, query("7d", "daily", true))
	require.NoError(t, err)

	assert.Equal(t, "100", resp.Metrics.TotalRevenue.String())
	assert.Equal(t, 1, resp.Metrics.OrderCount)
	require.NotNil(t, resp.PreviousPeriod)
	assert.Equal(t, "50", resp.PreviousPeriod.TotalRevenue.String())
	require.NotNil(t, resp.Growth)
	assert.Equal(t, 100.0, resp.Growth.Revenue)
	assert.Len(t, resp.Series, 8)
	require.Len(t, resp.ByCategory, 1)
	assert.Equal(t, "Tops", resp.ByCategory[0].Category)
}

func TestGetRevenue_InvalidRange(t *testing.T) {
	s, _, _ := newTestServer(t)

	_, err := s.GetRevenue(context.Background(), query("custom", "daily", false))
	var rangeErr *analytics.InvalidRangeError
	assert.ErrorAs(t, err, &rangeErr)
}

func TestGetRevenue_StoreError(t *testing.T) {
	s, repo, store := newTestServer(t)
	boom := errors.New("boom")

	repo.EXPECT().Analytics().Return(store)
	store.EXPECT().GetOrdersSnapshot(mock.Anything, mock.Anything, mock.Anything).Return(nil, boom)

	_, err := s.GetRevenue(context.Background(), query("30d", "weekly", false))
	assert.ErrorIs(t, err, boom)
}

func TestGetProducts(t *testing.T) {
	s, repo, store := newTestServer(t)

	repo.EXPECT().Analytics().Return(store)
	// products never compare, so the fetch starts at the period start
	store.EXPECT().
		GetOrdersSnapshot(mock.Anything, rangeFrom(time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC)), 100000).
		Return(testOrders(), nil)

	q := query("7d", "daily", true)
	q.Limit = 1
	resp, err := s.GetProducts(context.Background(), q)
	require.NoError(t, err)
	require.Len(t, resp.TopByRevenue, 1)
	assert.Equal(t, "Tee", resp.TopByRevenue[0].ProductName)
	assert.Equal(t, 2, resp.TopByUnits[0].UnitsSold)
}

func TestGetCustomers(t *testing.T) {
	s, repo, store := newTestServer(t)

	repo.EXPECT().Analytics().Return(store)
	store.EXPECT().GetCustomersSnapshot(mock.Anything, 100000).Return(testCustomers(), nil)

	resp, err := s.GetCustomers(context.Background(), query("7d", "weekly", true))
	require.NoError(t, err)
	assert.Equal(t, 1, resp.NewCustomers)
	require.NotNil(t, resp.PreviousNewCustomers)
	assert.Equal(t, 1, *resp.PreviousNewCustomers)
	require.NotNil(t, resp.Growth)
	assert.Equal(t, 0.0, *resp.Growth)
	require.NotEmpty(t, resp.Acquisition)
	assert.Equal(t, 1, resp.Acquisition[len(resp.Acquisition)-1].CumulativeTotal)
	assert.NotEmpty(t, resp.SegmentDistribution)
}

func TestGetOrderStatuses(t *testing.T) {
	s, repo, store := newTestServer(t)

	repo.EXPECT().Analytics().Return(store)
	store.EXPECT().GetOrdersSnapshot(mock.Anything, mock.Anything, 100000).Return(testOrders(), nil)

	resp, err := s.GetOrderStatuses(context.Background(), query("7d", "daily", false))
	require.NoError(t, err)
	assert.Equal(t, 2, resp.TotalOrders)
	require.Len(t, resp.Distribution, 2)
	assert.Equal(t, 50.0, resp.Distribution[0].PercentageOfTotal)
}

func TestGetSegments(t *testing.T) {
	s, repo, store := newTestServer(t)

	repo.EXPECT().Analytics().Return(store)
	store.EXPECT().GetCustomersSnapshot(mock.Anything, mock.Anything).Return(testCustomers(), nil)

	q := query("30d", "daily", false)
	q.Segment = string(entity.SegmentInactive)
	resp, err := s.GetSegments(context.Background(), q)
	require.NoError(t, err)
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, 2, resp.Customers[0].CustomerID)
	assert.Equal(t, "inactive", resp.Customers[0].Primary)

	var total int
	for _, d := range resp.Distribution {
		total += d.Count
	}
	assert.Equal(t, 3, total)
}

func TestGetOverview(t *testing.T) {
	s, repo, store := newTestServer(t)

	repo.EXPECT().Analytics().Return(store)
	store.EXPECT().GetOrdersSnapshot(mock.Anything, mock.Anything, mock.Anything).Return(testOrders(), nil).Once()
	store.EXPECT().GetCustomersSnapshot(mock.Anything, mock.Anything).Return(testCustomers(), nil).Once()

	resp, err := s.GetOverview(context.Background(), query("7d", "daily", true))
	require.NoError(t, err)
	assert.Equal(t, testNow, resp.GeneratedAt)
	assert.Equal(t, "100", resp.Revenue.Metrics.TotalRevenue.String())
	assert.Equal(t, 1, resp.Customers.NewCustomers)
	assert.Equal(t, 2, resp.OrderStatuses.TotalOrders)
	assert.NotEmpty(t, resp.Products.TopByRevenue)
}

func TestGetOverview_CustomersError(t *testing.T) {
	s, repo, store := newTestServer(t)
	boom := errors.New("boom")

	repo.EXPECT().Analytics().Return(store)
	store.EXPECT().GetOrdersSnapshot(mock.Anything, mock.Anything, mock.Anything).Return(testOrders(), nil).Maybe()
	store.EXPECT().GetCustomersSnapshot(mock.Anything, mock.Anything).Return(nil, boom)

	_, err := s.GetOverview(context.Background(), query("30d", "daily", false))
	assert.ErrorIs(t, err, boom)
}

func TestPing(t *testing.T) {
	s, repo, _ := newTestServer(t)
	repo.EXPECT().Ping(mock.Anything).Return(nil)
	assert.NoError(t, s.Ping(context.Background()))
}
