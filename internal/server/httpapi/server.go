// Package httpapi serves the FitFlow development REST API.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tiredaf123/fitflow--G3-sub000/internal/common"
	"github.com/tiredaf123/fitflow--G3-sub000/internal/logging"
	"github.com/tiredaf123/fitflow--G3-sub000/internal/server/services"
)

type HTTPServer struct {
	address        string
	users          *services.UserService
	payments       *services.PaymentService
	logger         logging.Logger
	metrics        *metrics
	registry       *prometheus.Registry
	loginRateLimit int
	trustProxy     bool
	corsOrigins    []string
}

type Option func(*HTTPServer)

// WithLoginRateLimit limits login requests per client IP and minute.
// Without it the login route is not limited.
func WithLoginRateLimit(perMinute int) Option {
	return func(s *HTTPServer) { s.loginRateLimit = perMinute }
}

// WithTrustProxy keys the login rate limit on the client address reported by
// a reverse proxy (True-Client-IP, X-Real-IP, X-Forwarded-For). Enable it only
// behind a proxy that overwrites those headers.
func WithTrustProxy(trust bool) Option {
	return func(s *HTTPServer) { s.trustProxy = trust }
}

// WithCORSOrigins allows browser clients from origins to call the API.
func WithCORSOrigins(origins ...string) Option {
	return func(s *HTTPServer) { s.corsOrigins = origins }
}

func NewHTTPServer(a string, l logging.Logger, us *services.UserService, ps *services.PaymentService, opts ...Option) *HTTPServer {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	s := &HTTPServer{
		address:  a,
		logger:   l.With("module", "http_server"),
		users:    us,
		payments: ps,
		metrics:  newMetrics(reg),
		registry: reg,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router builds the route tree. Tests mount it on httptest.Server.
func (s *HTTPServer) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestID)
	r.Use(s.instrument)
	if len(s.corsOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.corsOrigins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", common.RequestIDHeaderName},
			ExposedHeaders: []string{common.RequestIDHeaderName, "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
			MaxAge:         300,
		}))
	}

	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/ping", s.ping)

		r.With(s.rateLimitByIP(s.loginRateLimit)).Post("/auth/login", s.login)

		r.Group(func(r chi.Router) {
			r.Use(s.requireToken)
			r.Post("/payments/intent", s.createIntent)
			r.Post("/payments/confirm", s.confirm)
			r.Post("/dev/subscriptions/{id}/processing", s.setProcessingRounds)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found", "Route not found")
	})
	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
