// Package server runs the HTTP front door: routing, CORS, middleware, system
// endpoints and graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Server wraps an http.Server with readiness tracking.
type Server struct {
	config      *Config
	httpServer  *http.Server
	rateLimiter *rate.Limiter
	metrics     *metrics
	router      *mux.Router

	mu    sync.RWMutex
	ready bool
}

// Option customises a Server.
type Option func(*Server)

// WithAPI lets register mount routes on the rate-limited /api subrouter.
func WithAPI(register func(*mux.Router)) Option {
	return func(s *Server) {
		api := s.router.PathPrefix("/api").Subrouter()
		api.Use(
			s.metrics.middleware,
			s.requestIDMiddleware,
			s.panicRecoveryMiddleware,
			s.rateLimitMiddleware,
			s.loggingMiddleware,
		)
		register(api)
	}
}

// WithWeb serves h for every path not claimed by the API or system endpoints.
func WithWeb(h http.Handler) Option {
	return func(s *Server) {
		web := s.router.PathPrefix("/").Subrouter()
		web.Use(
			s.metrics.middleware,
			s.requestIDMiddleware,
			s.panicRecoveryMiddleware,
			s.loggingMiddleware,
		)
		web.PathPrefix("/").Handler(h)
	}
}

// WithRecipeCount exports count as the recipeshare_recipes_stored gauge.
func WithRecipeCount(count func() int) Option {
	return func(s *Server) {
		s.metrics.registerRecipeCount(count)
	}
}

// New builds a server. Options are applied in order, so WithWeb should come
// last to act as the catch-all.
func New(config *Config, opts ...Option) *Server {
	if config == nil {
		config = DefaultConfig()
	}

	s := &Server{
		config:      config,
		rateLimiter: rate.NewLimiter(config.RateLimit, config.RateLimitBurst),
		metrics:     newMetrics(),
		router:      mux.NewRouter(),
	}

	// System endpoints (no rate limiting)
	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	s.router.HandleFunc("/ready", s.handleReady).Methods(http.MethodGet)
	s.router.Handle("/metrics", promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{})).
		Methods(http.MethodGet)

	for _, opt := range opts {
		opt(s)
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", config.Address, config.Port),
		Handler:      s.Handler(),
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}

	return s
}

// Handler returns the router wrapped in CORS handling.
func (s *Server) Handler() http.Handler {
	origins := s.config.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders: []string{"Content-Type", "Authorization", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
	})
	return c.Handler(s.router)
}

// Addr is the address the server listens on.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

func (s *Server) SetReady(ready bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ready = ready
}

func (s *Server) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// Serve accepts connections on l until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.SetReady(true)
		if err := s.httpServer.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		return s.Shutdown(context.Background())
	})

	return g.Wait()
}

// Start listens on the configured address and serves until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	l, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}
	slog.Info("server listening", "address", l.Addr().String())
	return s.Serve(ctx, l)
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.SetReady(false)

	shutdownCtx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	slog.Info("shutting down server")
	return s.httpServer.Shutdown(shutdownCtx)
}
