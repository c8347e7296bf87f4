package httpapi

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/jekabolt/grbpwr-analytics/internal/dto"
	"github.com/jekabolt/grbpwr-analytics/internal/form"
	"github.com/jekabolt/grbpwr-analytics/internal/middleware"
)

// Service computes the analytics responses.
type Service interface {
	GetRevenue(ctx context.Context, q *form.AnalyticsQuery) (*dto.RevenueResponse, error)
	GetProducts(ctx context.Context, q *form.AnalyticsQuery) (*dto.ProductsResponse, error)
	GetCustomers(ctx context.Context, q *form.AnalyticsQuery) (*dto.CustomersResponse, error)
	GetOrderStatuses(ctx context.Context, q *form.AnalyticsQuery) (*dto.OrderStatusResponse, error)
	GetSegments(ctx context.Context, q *form.AnalyticsQuery) (*dto.SegmentsResponse, error)
	GetOverview(ctx context.Context, q *form.AnalyticsQuery) (*dto.OverviewResponse, error)
	Ping(ctx context.Context) error
	Location() *time.Location
}

// OverviewCache serves a precomputed overview for the default query.
type OverviewCache interface {
	Get() (*dto.OverviewResponse, bool)
}

func (s *Server) setupHTTPAPI(svc Service, cache OverviewCache) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.ClientIdentifier)
	r.Use(middleware.RequestLogger)
	r.Use(chimw.Recoverer)
	r.Use(s.corsHandler())
	r.Use(chimw.Timeout(s.c.RequestTimeout))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Ping(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, dto.HealthResponse{Status: "unavailable"})
			return
		}
		writeJSON(w, http.StatusOK, dto.HealthResponse{Status: "ok"})
	})

	h := &handlers{s: s, svc: svc, cache: cache}
	r.Route("/api/analytics", func(r chi.Router) {
		r.Get("/overview", h.overview)
		r.Get("/revenue", handle(s, svc, svc.GetRevenue))
		r.Get("/products", handle(s, svc, svc.GetProducts))
		r.Get("/customers", handle(s, svc, svc.GetCustomers))
		r.Get("/orders/status", handle(s, svc, svc.GetOrderStatuses))
		r.Get("/segments", handle(s, svc, svc.GetSegments))
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusNotFound, http.StatusText(http.StatusNotFound))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed))
	})

	return r
}

type handlers struct {
	s     *Server
	svc   Service
	cache OverviewCache
}

// limit charges the request to the client and reports the remaining budget.
func (s *Server) limit(w http.ResponseWriter, r *http.Request, check func(string) error) error {
	if s.limiter == nil {
		return nil
	}
	client := middleware.GetClientIP(r.Context())
	err := check(client)
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(s.limiter.GetQueryRemaining(client)))
	return err
}

func handle[T any](s *Server, svc Service, fn func(context.Context, *form.AnalyticsQuery) (*T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.limiter != nil {
			if err := s.limit(w, r, s.limiter.CheckQuery); err != nil {
				writeErr(w, r, err)
				return
			}
		}
		q, err := form.ParseAnalyticsQuery(r.URL.Query(), svc.Location())
		if err != nil {
			writeErr(w, r, err)
			return
		}
		resp, err := fn(r.Context(), q)
		respond(w, r, resp, err)
	}
}

func (h *handlers) overview(w http.ResponseWriter, r *http.Request) {
	if h.s.limiter != nil {
		if err := h.s.limit(w, r, h.s.limiter.CheckOverview); err != nil {
			writeErr(w, r, err)
			return
		}
	}
	q, err := form.ParseAnalyticsQuery(r.URL.Query(), h.svc.Location())
	if err != nil {
		writeErr(w, r, err)
		return
	}
	if h.cache != nil && q.IsDefault() {
		if o, ok := h.cache.Get(); ok {
			w.Header().Set("X-Overview-Cache", "hit")
			writeJSON(w, http.StatusOK, o)
			return
		}
	}
	resp, err := h.svc.GetOverview(r.Context(), q)
	respond(w, r, resp, err)
}
