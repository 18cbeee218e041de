// Package http exposes the read-only HTTP surface over the merit engine:
// merit calculation, recommendations, health and metrics. Input validation
// happens here at the boundary; the engine below never rejects.
package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/humna-mustafa/PakUni-sub008/internal/cache"
	"github.com/humna-mustafa/PakUni-sub008/internal/engine"
	"github.com/humna-mustafa/PakUni-sub008/internal/metrics"
)

// ServerConfig holds server configuration
type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	RatePerSec   float64
	RateBurst    int
}

// DefaultServerConfig returns the local-only defaults
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Host:         "127.0.0.1",
		Port:         8080,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		RatePerSec:   50,
		RateBurst:    100,
	}
}

// Server wires the engine behind a gorilla/mux router
type Server struct {
	router  *mux.Router
	server  *http.Server
	engine  *engine.Engine
	cache   *cache.RecommendationCache // nil disables caching
	metrics *metrics.Collector
	config  ServerConfig
}

// NewServer creates the HTTP server. The cache may be nil.
func NewServer(eng *engine.Engine, recCache *cache.RecommendationCache, collector *metrics.Collector, config ServerConfig) *Server {
	s := &Server{
		router:  mux.NewRouter(),
		engine:  eng,
		cache:   recCache,
		metrics: collector,
		config:  config,
	}
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", config.Host, config.Port),
		Handler:      s.router,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(s.requestIDMiddleware)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(s.rateLimitMiddleware())

	s.router.HandleFunc("/v1/merit", s.handleMerit).Methods(http.MethodPost)
	s.router.HandleFunc("/v1/recommendations", s.handleRecommendations).Methods(http.MethodPost)
	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	s.router.Handle("/metrics", promhttp.HandlerFor(s.metrics.Registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)
}

// Router exposes the configured router, mainly for tests
func (s *Server) Router() http.Handler {
	return s.router
}

// Start begins serving and blocks until the server stops
func (s *Server) Start() error {
	log.Info().Str("addr", s.server.Addr).Msg("http server listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server failed: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	log.Info().Msg("http server shutting down")
	return s.server.Shutdown(ctx)
}
