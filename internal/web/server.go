package web

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"github.com/leasematch/internal/engine"
	"github.com/leasematch/internal/source"
	"github.com/leasematch/internal/web/handlers"
	"github.com/leasematch/internal/web/middleware"
)

// Server represents the web server
type Server struct {
	engine     *engine.Engine
	source     source.Source
	runs       handlers.RunStore
	httpServer *http.Server
	router     *mux.Router
	started    time.Time
}

// NewServer creates a new web server instance. src and runs may be nil, in
// which case stored deals cannot be matched or their runs listed.
func NewServer(eng *engine.Engine, src source.Source, runs handlers.RunStore) *Server {
	server := &Server{
		engine:  eng,
		source:  src,
		runs:    runs,
		started: time.Now(),
	}

	server.setupRoutes()

	cfg := eng.Config.Server
	server.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      server.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return server
}

// Handler returns the routed handler, for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.router
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	s.router = mux.NewRouter()

	apiHandler := &handlers.APIHandler{
		Started:  s.started,
		Method:   s.engine.Config.Matching.SimilarityMethod,
		Strategy: s.engine.Config.Matching.BucketStrategy,
		Sourced:  s.source != nil,
	}
	matchHandler := &handlers.MatchHandler{Matcher: s.engine.Matcher, Source: s.source, Runs: s.runs}
	addressHandler := &handlers.AddressHandler{
		Standardizer: s.engine.Standardizer,
		Comparator:   s.engine.Comparator,
	}

	s.router.HandleFunc("/health", apiHandler.Health).Methods("GET")
	s.router.Handle("/metrics", s.engine.Metrics.Handler()).Methods("GET")

	api := s.router.PathPrefix("/api").Subrouter()

	// Reconciliation
	api.HandleFunc("/match", matchHandler.MatchDeal).Methods("POST", "OPTIONS")
	api.HandleFunc("/deals/{id}/match", matchHandler.MatchStored).Methods("GET", "OPTIONS")
	api.HandleFunc("/deals/{id}/runs", matchHandler.ListRuns).Methods("GET", "OPTIONS")
	api.HandleFunc("/runs/{id}", matchHandler.GetRun).Methods("GET", "OPTIONS")

	// Single-address tools
	api.HandleFunc("/standardize", addressHandler.Standardize).Methods("POST", "OPTIONS")
	api.HandleFunc("/compare", addressHandler.Compare).Methods("POST", "OPTIONS")

	s.router.Use(middleware.CORS())
	s.router.Use(middleware.RequestLogging())
	api.Use(middleware.APIKey(s.engine.Config.Server.APIKey))
}

// Start starts the web server and blocks until SIGINT or SIGTERM
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		fmt.Printf("Starting server on http://%s\n", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-stop:
	}
	fmt.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		fmt.Printf("Server shutdown error: %v\n", err)
	}

	fmt.Println("Server stopped")
	return nil
}
