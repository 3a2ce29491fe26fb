package server

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/claude/workoutplan/internal/importer"
	"github.com/claude/workoutplan/internal/metrics"
	"github.com/claude/workoutplan/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// maxBodyBytes bounds request bodies; it matches the default storage quota
// plus room for multipart framing.
const maxBodyBytes = 6 << 20

// Server holds dependencies for HTTP handlers.
type Server struct {
	store    *store.Store
	importer *importer.Importer
	metrics  *metrics.Metrics
	log      *slog.Logger
	now      func() time.Time
	router   chi.Router

	apiKey         string
	allowedOrigins []string
}

// Option configures a Server.
type Option func(*Server)

// WithAPIKey requires every /api/v1 request to carry key in X-API-Key.
func WithAPIKey(key string) Option {
	return func(s *Server) { s.apiKey = key }
}

// WithAllowedOrigins lists the browser origins granted cross-origin access.
func WithAllowedOrigins(origins []string) Option {
	return func(s *Server) {
		s.allowedOrigins = make([]string, len(origins))
		for i, o := range origins {
			s.allowedOrigins[i] = strings.TrimSuffix(o, "/")
		}
	}
}

// New creates a new Server with all routes configured. m may be nil, in
// which case /metrics is not served.
func New(st *store.Store, imp *importer.Importer, m *metrics.Metrics, log *slog.Logger, opts ...Option) *Server {
	s := &Server{
		store:    st,
		importer: imp,
		metrics:  m,
		log:      log,
		now:      time.Now,
		router:   chi.NewRouter(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Handle attaches an additional handler outside /api/v1, e.g. the MCP endpoint.
func (s *Server) Handle(pattern string, h http.Handler) {
	s.router.Handle(pattern, h)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(RequestMetrics(s.metrics))
	s.router.Use(CORS(s.allowedOrigins))

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Use(RequireReady(s.store.Loading))
		r.Use(APIKeyAuth(s.apiKey))
		r.Use(SameOrigin(s.allowedOrigins))

		r.Get("/plan", s.handleGetPlan)
		r.Get("/plan/active-user", s.handleGetActiveUser)
		r.Get("/export", s.handleExport)
		r.Delete("/users/{id}", s.handleDeleteUser)

		r.Group(func(r chi.Router) {
			r.Use(RequireContentType("application/json"))
			r.Put("/plan", s.handlePutPlan)
			r.Post("/plan/reset", s.handleReset)
			r.Put("/plan/active-user", s.handlePutActiveUser)
			r.Put("/plan/active-user-id", s.handleSwitchUser)
			r.Put("/plan/metadata", s.handlePutMetadata)
			r.Post("/users", s.handleAddUser)
		})

		// Pasted text travels as application/json whether or not it parses;
		// the validator reports malformed content.
		r.With(RequireContentType("application/json", "multipart/form-data")).Post("/import", s.handleImport)
	})

	if s.metrics != nil {
		s.router.Handle("/metrics", promhttp.HandlerFor(s.metrics.Registry, promhttp.HandlerOpts{}))
	}
}
