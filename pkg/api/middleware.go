package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"DocumentExtractionSystem/pkg/models"
)

type contextKey struct{}

var requestIDKey = contextKey{}

// RequestIDHeader carries the request identifier on every response
const RequestIDHeader = "X-Request-ID"

// RequestIDFromContext returns the identifier assigned by the logging middleware
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// logRequests assigns a request id, logs each request and its outcome, and turns panics into a 500
func (h *Handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.New().String()
		start := time.Now()

		w.Header().Set(RequestIDHeader, requestID)
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		h.logger.Info("http.request", "method", r.Method, "url", r.URL.String(), "request_id", requestID)

		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				msg := fmt.Sprint(rec)
				h.logger.Error("http.panic", "error", msg, "request_id", requestID)

				writeJson(ww, http.StatusInternalServerError, models.InternalErrorResponse{
					Status: models.StatusFailure,
					Data: models.InternalErrorData{
						RequestID: requestID,
						Message:   "Internal server error",
						Error:     models.ErrorDetail{Code: http.StatusInternalServerError, Msg: msg},
					},
				})
			}

			h.logger.Info("http.response",
				"status", ww.Status(),
				"request_id", requestID,
				"elapsed_ms", time.Since(start).Milliseconds(),
			)
		}()

		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		next.ServeHTTP(ww, r.WithContext(ctx))
	})
}
