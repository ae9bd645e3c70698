package httpapi

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/google/uuid"

	"github.com/tiredaf123/fitflow--G3-sub000/internal/common"
)

type ctxKey string

const (
	usernameKey  ctxKey = "username"
	requestIDKey ctxKey = "requestID"
)

// requestID echoes the client's X-Request-ID or assigns one.
func (s *HTTPServer) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(common.RequestIDHeaderName)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(common.RequestIDHeaderName, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

// instrument records latency per route pattern and logs the request.
func (s *HTTPServer) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		s.metrics.requestDuration.WithLabelValues(r.Method, route, strconv.Itoa(status)).Observe(time.Since(start).Seconds())

		reqID, _ := r.Context().Value(requestIDKey).(string)
		s.logger.Debug(r.Context(), "request", "method", r.Method, "route", route, "status", status, "request_id", reqID)
	})
}

// requireToken admits requests with a valid bearer token and stores the
// username in the context.
func (s *HTTPServer) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || token == "" {
			writeError(w, http.StatusUnauthorized, "missing_token", "Authentication required")
			return
		}

		username, err := s.users.Authenticate(token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid_token", "Session expired, please log in again")
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), usernameKey, username)))
	})
}

func usernameFrom(ctx context.Context) string {
	u, _ := ctx.Value(usernameKey).(string)
	return u
}

// rateLimitByIP limits requests per client IP and minute. A non-positive
// limit disables it. The IP is the peer address unless trustProxy is set.
func (s *HTTPServer) rateLimitByIP(perMinute int) func(http.Handler) http.Handler {
	if perMinute <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	key := httprate.KeyByIP
	if s.trustProxy {
		key = httprate.KeyByRealIP
	}
	return httprate.Limit(
		perMinute,
		time.Minute,
		httprate.WithKeyFuncs(key),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			writeError(w, http.StatusTooManyRequests, "rate_limited", "Too many login attempts, slow down")
		}),
	)
}
