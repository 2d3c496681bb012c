package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/meur/pokedex/internal/catalog"
	"github.com/meur/pokedex/internal/logging"
	"go.uber.org/zap"
)

// Options configures the server
type Options struct {
	AllowedOrigins      []string
	InitialCount        int
	RecommendationCount int
	SessionTTL          time.Duration
}

// Server holds the HTTP server dependencies
type Server struct {
	controller *catalog.Controller
	resolver   *catalog.Resolver
	sampler    *catalog.Sampler
	sessions   *sessionStore
	opts       Options
	logger     *zap.Logger
	router     chi.Router
}

// New creates a new API server
func New(controller *catalog.Controller, resolver *catalog.Resolver, sampler *catalog.Sampler, opts Options, logger *zap.Logger) *Server {
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = time.Hour
	}
	s := &Server{
		controller: controller,
		resolver:   resolver,
		sampler:    sampler,
		sessions:   newSessionStore(opts.SessionTTL),
		opts:       opts,
		logger:     logging.OrNop(logger),
		router:     chi.NewRouter(),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Router exposes the chi router so callers can mount extra handlers
func (s *Server) Router() chi.Router {
	return s.router
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(requestLogger(s.logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.opts.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
}

func (s *Server) setupRoutes() {
	s.router.Route("/api", func(r chi.Router) {
		r.Get("/status", s.handleGetStatus)
		r.Get("/facets", s.handleGetFacets)

		// Creatures
		r.Get("/creatures", s.handleListCreatures)
		r.Get("/creatures/{id}", s.handleGetCreature)
		r.Get("/creatures/{id}/forms", s.handleGetForms)
		r.Get("/recommendations", s.handleGetRecommendations)

		// Browsing sessions
		r.Post("/sessions", s.handleCreateSession)
		r.Get("/sessions/{id}", s.handleGetSession)
		r.Patch("/sessions/{id}", s.handleUpdateSession)
	})

	// Health check
	s.router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

// requestLogger emits one structured line per request
func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			logger.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}

// --- Response helpers ---

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func decodeJSON(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}
