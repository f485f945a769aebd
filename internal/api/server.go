package api

import (
	"log/slog"
	"net/http"

	"github.com/dgallion1/docrender/internal/config"
	"github.com/dgallion1/docrender/internal/pipeline"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP API server for docrender.
type Server struct {
	router       chi.Router
	orchestrator *pipeline.Orchestrator
	log          *slog.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(orch *pipeline.Orchestrator, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		orchestrator: orch,
		log:          log,
		cfg:          cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.DocrenderAPIKey, s.log))

		r.Get("/api/roles", s.handleListRoles)
		r.Get("/api/themes", s.handleListThemes)
		r.Get("/api/themes/{name}", s.handleGetTheme)
		r.Post("/api/themes/validate", s.handleValidateTheme)

		r.Post("/api/render", s.handleRender)
		r.Get("/api/render/{jobID}/status", s.handleRenderStatus)
		r.Get("/api/render/{jobID}/document", s.handleRenderDocument)

		r.Get("/api/stats", s.handleStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
