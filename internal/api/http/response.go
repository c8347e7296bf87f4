package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"log/slog"

	"github.com/jekabolt/grbpwr-analytics/internal/analytics"
	"github.com/jekabolt/grbpwr-analytics/internal/dto"
	gerr "github.com/jekabolt/grbpwr-analytics/internal/errors"
	"github.com/jekabolt/grbpwr-analytics/internal/middleware"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Default().Error("can't encode response",
			slog.String("err", err.Error()),
		)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, status, dto.ErrorResponse{
		Error:     msg,
		Code:      status,
		RequestID: middleware.GetRequestID(r.Context()),
	})
}

// respond writes the handler result. Once the request deadline has passed the
// timeout middleware owns the response and answers 504, so nothing is written.
func respond(w http.ResponseWriter, r *http.Request, resp any, err error) {
	if errors.Is(r.Context().Err(), context.DeadlineExceeded) {
		slog.Default().WarnContext(r.Context(), "analytics request timed out",
			slog.String("path", r.URL.Path),
			slog.String("request_id", middleware.GetRequestID(r.Context())),
		)
		return
	}
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// writeErr maps err to a status code. Internal failures are logged and
// answered with a generic message.
func writeErr(w http.ResponseWriter, r *http.Request, err error) {
	status := statusCode(err)
	if status < http.StatusInternalServerError {
		writeError(w, r, status, err.Error())
		return
	}
	slog.Default().ErrorContext(r.Context(), "analytics request failed",
		slog.String("err", err.Error()),
		slog.String("path", r.URL.Path),
		slog.String("request_id", middleware.GetRequestID(r.Context())),
	)
	writeError(w, r, status, http.StatusText(status))
}

func statusCode(err error) int {
	var rangeErr *analytics.InvalidRangeError
	switch {
	case errors.As(err, &rangeErr), errors.Is(err, gerr.ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, gerr.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, gerr.ErrUnavailable), errors.Is(err, context.DeadlineExceeded):
		// deadlines of the store, not of the request
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
