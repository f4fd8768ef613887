// Package http serves the dashboard's JSON API together with the health,
// readiness and metrics endpoints.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Moustapha00864/Kaikai-dashbaord-app/internal/domain"
	"github.com/Moustapha00864/Kaikai-dashbaord-app/internal/observability"
)

// TableProvider returns the current prepared table, nil before the first load.
type TableProvider interface {
	Table() *domain.PreparedTable
}

// Server exposes the query API plus health, readiness, and metrics endpoints.
type Server struct {
	httpServer *http.Server
	tables     TableProvider
	geocoder   domain.Geocoder
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewServer creates an HTTP server. geocoder may be nil, in which case map
// markers are served as authored.
func NewServer(
	addr string,
	tables TableProvider,
	ready sharedobs.ReadinessChecker,
	geocoder domain.Geocoder,
	metrics *observability.Metrics,
	logger *slog.Logger,
) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		tables:   tables,
		geocoder: geocoder,
		metrics:  metrics,
		logger:   logger,
	}

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.Handle("GET /api/v1/filters", s.instrument("filters", s.handleFilters))
	mux.Handle("GET /api/v1/query", s.instrument("query", s.handleQuery))
	mux.Handle("GET /api/v1/stations/{station}/series", s.instrument("series", s.handleSeries))
	mux.Handle("GET /api/v1/map", s.instrument("map", s.handleMap))

	s.httpServer.Handler = requestLogger(logger, mux)
	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}
