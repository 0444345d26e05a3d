package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/bookstore/internal/common"
	"github.com/dmitrijs2005/bookstore/internal/server/models"
	"github.com/google/uuid"
)

type contextKey string

const (
	contextKeySeller    contextKey = "bookstore-seller"
	contextKeyRequestID contextKey = "bookstore-request-id"
)

const detailCredentials = "Could not validate credentials"

// requireAuth ensures the request carries a valid bearer token for an
// existing seller before invoking the handler.
func (r *Router) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		token, err := bearerToken(req.Header.Get(common.AuthorizationHeaderName))
		if err != nil {
			r.logger.Warn(req.Context(), "authorization header invalid", "error", err, "path", req.URL.Path)
			writeUnauthorized(w, detailCredentials)
			return
		}

		seller, err := r.auth.Authorize(req.Context(), token)
		if err != nil {
			if !errors.Is(err, common.ErrorUnauthorized) {
				r.logger.Error(req.Context(), "token resolution failed", "error", err)
				writeError(w, http.StatusInternalServerError, detailInternal)
				return
			}
			r.logger.Warn(req.Context(), "token validation failed", "error", err, "path", req.URL.Path)
			writeUnauthorized(w, detailCredentials)
			return
		}

		ctx := context.WithValue(req.Context(), contextKeySeller, seller)
		next(w, req.WithContext(ctx))
	}
}

// sellerFromContext returns the seller resolved by requireAuth.
func sellerFromContext(ctx context.Context) (*models.Seller, bool) {
	s, ok := ctx.Value(contextKeySeller).(*models.Seller)
	return s, ok
}

func bearerToken(header string) (string, error) {
	if strings.TrimSpace(header) == "" {
		return "", errors.New("missing authorization header")
	}
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], common.BearerScheme) {
		return "", errors.New("invalid authorization header format")
	}
	return parts[1], nil
}

// withRequestID echoes an inbound X-Request-ID or assigns a fresh one.
func (r *Router) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		id := strings.TrimSpace(req.Header.Get(common.RequestIDHeaderName))
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(common.RequestIDHeaderName, id)
		ctx := context.WithValue(req.Context(), contextKeyRequestID, id)
		next.ServeHTTP(w, req.WithContext(ctx))
	})
}

func requestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(contextKeyRequestID).(string)
	return id
}

// audit writes one access-log line and records metrics per request.
func (r *Router) audit(route string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		recorder := &statusRecorder{ResponseWriter: w}
		start := time.Now()
		next(recorder, req)

		status := recorder.status
		if status == 0 {
			status = http.StatusOK
		}
		duration := time.Since(start)
		r.metrics.observe(req.Method, route, status, duration)

		fields := []any{
			"method", req.Method,
			"path", req.URL.Path,
			"status", status,
			"bytes", recorder.bytes,
			"duration_ms", duration.Milliseconds(),
			"request_id", requestIDFromContext(req.Context()),
		}
		if status >= http.StatusInternalServerError {
			r.logger.Error(req.Context(), "http request", fields...)
			return
		}
		r.logger.Info(req.Context(), "http request", fields...)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

func (sr *statusRecorder) Write(b []byte) (int, error) {
	if sr.status == 0 {
		sr.status = http.StatusOK
	}
	n, err := sr.ResponseWriter.Write(b)
	sr.bytes += n
	return n, err
}
