package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jekabolt/grbpwr-analytics/internal/analytics"
	"github.com/jekabolt/grbpwr-analytics/internal/dto"
	"github.com/jekabolt/grbpwr-analytics/internal/form"
	"github.com/jekabolt/grbpwr-analytics/internal/ratelimit"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	block     bool
	err       error
	pingErr   error
	lastQuery *form.AnalyticsQuery
	overviews int
}

func (f *fakeService) GetRevenue(ctx context.Context, q *form.AnalyticsQuery) (*dto.RevenueResponse, error) {
	f.lastQuery = q
	if f.block {
		<-ctx.Done()
		return nil, fmt.Errorf("can't get orders snapshot: %w", ctx.Err())
	}
	if f.err != nil {
		return nil, f.err
	}
	return &dto.RevenueResponse{
		Metrics:    dto.RevenueMetrics{TotalRevenue: decimal.RequireFromString("10.50"), OrderCount: 1},
		Series:     []dto.RevenueDataPoint{},
		ByCategory: []dto.CategoryRevenue{},
	}, nil
}

func (f *fakeService) GetProducts(_ context.Context, q *form.AnalyticsQuery) (*dto.ProductsResponse, error) {
	f.lastQuery = q
	return &dto.ProductsResponse{}, f.err
}

func (f *fakeService) GetCustomers(_ context.Context, q *form.AnalyticsQuery) (*dto.CustomersResponse, error) {
	f.lastQuery = q
	return &dto.CustomersResponse{}, f.err
}

func (f *fakeService) GetOrderStatuses(_ context.Context, q *form.AnalyticsQuery) (*dto.OrderStatusResponse, error) {
	f.lastQuery = q
	return &dto.OrderStatusResponse{TotalOrders: 3}, f.err
}

func (f *fakeService) GetSegments(_ context.Context, q *form.AnalyticsQuery) (*dto.SegmentsResponse, error) {
	f.lastQuery = q
	return &dto.SegmentsResponse{Total: 2}, f.err
}

func (f *fakeService) GetOverview(ctx context.Context, q *form.AnalyticsQuery) (*dto.OverviewResponse, error) {
	f.lastQuery = q
	f.overviews++
	if f.block {
		// a late success is still dropped
		<-ctx.Done()
		return &dto.OverviewResponse{}, nil
	}
	if f.err != nil {
		return nil, f.err
	}
	return &dto.OverviewResponse{OrderStatuses: dto.OrderStatusResponse{TotalOrders: 7}}, nil
}

func (f *fakeService) Ping(context.Context) error {
	return f.pingErr
}

func (f *fakeService) Location() *time.Location {
	return time.UTC
}

type fakeCache struct {
	o *dto.OverviewResponse
}

func (c fakeCache) Get() (*dto.OverviewResponse, bool) {
	return c.o, c.o != nil
}

func newTestHandler(t *testing.T, svc Service, cache OverviewCache, rl *ratelimit.Config) http.Handler {
	t.Helper()
	var limiter *ratelimit.MultiKeyLimiter
	if rl != nil {
		limiter = ratelimit.NewMultiKeyLimiter(rl)
		t.Cleanup(limiter.Close)
	}
	s := New(&Config{AllowedOrigins: []string{"https://grbpwr.com"}}, limiter)
	return s.setupHTTPAPI(svc, cache)
}

func get(h http.Handler, target string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var e dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &e))
	return e
}

func TestRevenue(t *testing.T) {
	svc := &fakeService{}
	h := newTestHandler(t, svc, nil, nil)

	rec := get(h, "/api/analytics/revenue?period=7d&granularity=weekly&compare=true")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "10.5", resp["metrics"].(map[string]any)["totalRevenue"])

	require.NotNil(t, svc.lastQuery)
	assert.Equal(t, "7d", svc.lastQuery.Period)
	assert.Equal(t, "weekly", svc.lastQuery.Granularity)
	assert.True(t, svc.lastQuery.Compare)
}

func TestRoutes(t *testing.T) {
	svc := &fakeService{}
	h := newTestHandler(t, svc, nil, nil)

	for _, path := range []string{
		"/api/analytics/overview",
		"/api/analytics/revenue",
		"/api/analytics/products?limit=5",
		"/api/analytics/customers",
		"/api/analytics/orders/status",
		"/api/analytics/segments?segment=vip",
	} {
		rec := get(h, path)
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
	assert.Equal(t, "vip", svc.lastQuery.Segment)
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		err    error
		status int
	}{
		{"invalid period", "/api/analytics/revenue?period=1y", nil, http.StatusBadRequest},
		{"invalid date", "/api/analytics/revenue?period=custom&start=yesterday", nil, http.StatusBadRequest},
		{"invalid range", "/api/analytics/revenue?period=custom", &analytics.InvalidRangeError{Reason: "start and end are required"}, http.StatusBadRequest},
		{"internal", "/api/analytics/revenue", errors.New("db is gone"), http.StatusInternalServerError},
		{"deadline", "/api/analytics/revenue", fmt.Errorf("fetch: %w", context.DeadlineExceeded), http.StatusServiceUnavailable},
		{"not found", "/api/analytics/nope", nil, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(t, &fakeService{err: tt.err}, nil, nil)
			rec := get(h, tt.target)
			require.Equal(t, tt.status, rec.Code)

			e := decodeError(t, rec)
			assert.Equal(t, tt.status, e.Code)
			assert.NotEmpty(t, e.RequestID)
			if tt.status == http.StatusInternalServerError {
				assert.NotContains(t, e.Error, "db is gone")
			}
		})
	}
}

func TestRequestTimeout(t *testing.T) {
	s := New(&Config{RequestTimeout: 20 * time.Millisecond}, nil)
	h := s.setupHTTPAPI(&fakeService{block: true}, nil)

	for _, path := range []string{"/api/analytics/revenue", "/api/analytics/overview?compare=true"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusGatewayTimeout, rec.Code, path)
		assert.Empty(t, rec.Body.String(), path)
		assert.Empty(t, rec.Header().Get("Content-Type"), path)
	}
}

func TestHealth(t *testing.T) {
	rec := get(newTestHandler(t, &fakeService{}, nil, nil), "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = get(newTestHandler(t, &fakeService{pingErr: errors.New("down")}, nil, nil), "/health")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRateLimit(t *testing.T) {
	h := newTestHandler(t, &fakeService{}, nil, &ratelimit.Config{QueriesPerMinute: 2, OverviewsPerMinute: 1})

	rec := get(h, "/api/analytics/revenue", "X-Real-IP", "10.0.0.1")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("X-RateLimit-Remaining"))

	rec = get(h, "/api/analytics/overview", "X-Real-IP", "10.0.0.1")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = get(h, "/api/analytics/revenue", "X-Real-IP", "10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))

	rec = get(h, "/api/analytics/overview", "X-Real-IP", "10.0.0.2")
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = get(h, "/api/analytics/overview", "X-Real-IP", "10.0.0.2")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestOverviewCache(t *testing.T) {
	svc := &fakeService{}
	cache := fakeCache{o: &dto.OverviewResponse{OrderStatuses: dto.OrderStatusResponse{TotalOrders: 42}}}
	h := newTestHandler(t, svc, cache, nil)

	rec := get(h, "/api/analytics/overview")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "hit", rec.Header().Get("X-Overview-Cache"))
	assert.Equal(t, 0, svc.overviews)

	var o dto.OverviewResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &o))
	assert.Equal(t, 42, o.OrderStatuses.TotalOrders)

	rec = get(h, "/api/analytics/overview?compare=true")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("X-Overview-Cache"))
	assert.Equal(t, 1, svc.overviews)

	h = newTestHandler(t, svc, fakeCache{}, nil)
	rec = get(h, "/api/analytics/overview")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, svc.overviews)
}

func TestCORS(t *testing.T) {
	h := newTestHandler(t, &fakeService{}, nil, nil)

	rec := get(h, "/api/analytics/revenue", "Origin", "https://grbpwr.com")
	assert.Equal(t, "https://grbpwr.com", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = get(h, "/api/analytics/revenue", "Origin", "https://evil.example")
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestIsOriginAllowed(t *testing.T) {
	allowed := []string{"https://grbpwr.com"}
	assert.True(t, isOriginAllowed("http://localhost:3000", allowed))
	assert.True(t, isOriginAllowed("https://grbpwr.com", allowed))
	assert.False(t, isOriginAllowed("https://grbpwr.com.evil", allowed))
	assert.True(t, isOriginAllowed("https://any.example", []string{"*"}))
}

func TestStartStop(t *testing.T) {
	s := New(&Config{Address: "127.0.0.1", Port: "0"}, nil)
	require.NoError(t, s.Start(context.Background(), &fakeService{}, nil))
	assert.Error(t, s.Start(context.Background(), &fakeService{}, nil))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Stop(ctx))

	select {
	case <-s.Done():
	case <-time.After(time.Second):
		t.Fatal("server did not exit")
	}
}
