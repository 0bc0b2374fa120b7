// Package server provides the HTTP server and routing for CashLens.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/veldt-labs/cashlens/internal/database"
	"github.com/veldt-labs/cashlens/internal/modules/auth"
	authhandlers "github.com/veldt-labs/cashlens/internal/modules/auth/handlers"
	dashboardhandlers "github.com/veldt-labs/cashlens/internal/modules/dashboard/handlers"
	recordshandlers "github.com/veldt-labs/cashlens/internal/modules/records/handlers"
	simulationhandlers "github.com/veldt-labs/cashlens/internal/modules/simulation/handlers"
	transactionshandlers "github.com/veldt-labs/cashlens/internal/modules/transactions/handlers"
	"github.com/veldt-labs/cashlens/internal/scheduler"
)

// Config holds server configuration
type Config struct {
	Log       zerolog.Logger
	FinanceDB *database.DB
	CacheDB   *database.DB
	Port      int
	DevMode   bool

	AuthService *auth.Service
	Scheduler   *scheduler.Scheduler

	AuthHandler         *authhandlers.Handler
	RecordsHandler      *recordshandlers.Handler
	TransactionsHandler *transactionshandlers.Handler
	DashboardHandler    *dashboardhandlers.Handler
	SimulationHandler   *simulationhandlers.Handler
}

// Server represents the HTTP server
type Server struct {
	router         *chi.Mux
	server         *http.Server
	log            zerolog.Logger
	cfg            Config
	systemHandlers *SystemHandlers
}

// New creates a new HTTP server
func New(cfg Config) *Server {
	s := &Server{
		router:         chi.NewRouter(),
		log:            cfg.Log.With().Str("component", "server").Logger(),
		cfg:            cfg,
		systemHandlers: NewSystemHandlers(cfg.Log, cfg.FinanceDB, cfg.CacheDB, cfg.Scheduler),
	}

	s.setupMiddleware(cfg.DevMode)
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware(devMode bool) {
	// Recovery from panics
	s.router.Use(middleware.Recoverer)

	// Request ID
	s.router.Use(middleware.RequestID)

	// Real IP
	s.router.Use(middleware.RealIP)

	// Logging
	s.router.Use(s.loggingMiddleware)

	// Timeout
	s.router.Use(middleware.Timeout(60 * time.Second))

	// CORS
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Compress responses
	if !devMode {
		s.router.Use(middleware.Compress(5))
	}
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		// Public: registration and login
		s.cfg.AuthHandler.RegisterRoutes(r)

		// Ops monitoring
		r.Route("/system", func(r chi.Router) {
			r.Get("/status", s.systemHandlers.HandleSystemStatus)
			r.Get("/database/stats", s.systemHandlers.HandleDatabaseStats)
		})

		// Everything else requires a tenant token
		r.Group(func(r chi.Router) {
			r.Use(s.cfg.AuthService.RequireAuth)

			s.cfg.RecordsHandler.RegisterRoutes(r)
			s.cfg.TransactionsHandler.RegisterRoutes(r)
			s.cfg.DashboardHandler.RegisterRoutes(r)
			s.cfg.SimulationHandler.RegisterRoutes(r)
		})
	})
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Info().Int("port", s.cfg.Port).Msg("Starting HTTP server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// Router exposes the chi router, used by tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// loggingMiddleware logs HTTP requests
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration_ms", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("HTTP request")
	})
}
