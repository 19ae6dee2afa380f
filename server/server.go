// Package server provides JSON API over stored posts, followed creators, detected series and syncs
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/umputun/serialbook/pkg/books"
	"github.com/umputun/serialbook/pkg/domain"
	"github.com/umputun/serialbook/pkg/repository"
	"github.com/umputun/serialbook/pkg/scheduler"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/database.go -pkg mocks -skip-ensure -fmt goimports . Database
//go:generate moq -out mocks/scheduler.go -pkg mocks -skip-ensure -fmt goimports . Scheduler
//go:generate moq -out mocks/series_detector.go -pkg mocks -skip-ensure -fmt goimports . SeriesDetector

// Server represents HTTP server instance
type Server struct {
	config    ConfigProvider
	db        Database
	scheduler Scheduler
	detector  SeriesDetector
	version   string
	debug     bool

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// Database interface for server operations
type Database interface {
	ListCreators(ctx context.Context) ([]domain.Creator, error)
	GetCreator(ctx context.Context, slug string) (*domain.Creator, error)
	SaveCreator(ctx context.Context, c domain.Creator) error
	RemoveCreator(ctx context.Context, slug string) error

	ListPosts(ctx context.Context, creator string, limit, offset int) ([]domain.StoredPost, error)
	SearchPosts(ctx context.Context, query, creator string, limit int) ([]domain.StoredPost, error)
	GetPost(ctx context.Context, creator, id string) (*domain.StoredPost, error)
	AdjacentPosts(ctx context.Context, creator, id string) (domain.Adjacent, error)
	MarkRead(ctx context.Context, creator, id string, read bool) error
	CountPosts(ctx context.Context, creator string) (total, unread int, err error)

	SyncHistory(ctx context.Context, creator string, limit int) ([]domain.SyncLogEntry, error)
	LastFullSync(ctx context.Context) (time.Time, error)
}

// Scheduler interface for on-demand syncs
type Scheduler interface {
	Trigger(full bool) bool
	Running() bool
	LastReport() *scheduler.Report
}

// SeriesDetector previews series detected in stored posts of a creator
type SeriesDetector interface {
	Detect(ctx context.Context, slug string) (*books.Detection, error)
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
}

// ErrNotFound is checked by handlers to respond with 404, database implementations wrap it
var ErrNotFound = repository.ErrNotFound

// New initializes a new server instance
func New(cfg ConfigProvider, db Database, sched Scheduler, detector SeriesDetector, version string, debug bool) *Server {
	s := &Server{
		config:    cfg,
		db:        db,
		scheduler: sched,
		detector:  detector,
		version:   version,
		debug:     debug,
		router:    routegroup.New(http.NewServeMux()),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.config.GetServerConfig()
	lgr.Printf("[INFO] starting server on %s", listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:              listen,
		Handler:           s.router,
		ReadHeaderTimeout: timeout,
		ReadTimeout:       timeout,
		WriteTimeout:      timeout,
	}
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		lgr.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			lgr.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("serialbook", "umputun", s.version))
	s.router.Use(rest.Ping)

	if s.debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(1024 * 1024)) // 1MB
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)

		r.HandleFunc("GET /creators", s.listCreatorsHandler)
		r.HandleFunc("POST /creators", s.addCreatorHandler)
		r.HandleFunc("DELETE /creators/{slug}", s.removeCreatorHandler)
		r.HandleFunc("GET /creators/{slug}/posts", s.listPostsHandler)
		r.HandleFunc("GET /creators/{slug}/posts/{id}", s.getPostHandler)
		r.HandleFunc("POST /creators/{slug}/posts/{id}/{action}", s.markReadHandler)
		r.HandleFunc("GET /creators/{slug}/series", s.seriesHandler)
		r.HandleFunc("GET /creators/{slug}/history", s.historyHandler)

		r.HandleFunc("GET /search", s.searchHandler)
		r.HandleFunc("GET /sync", s.syncStatusHandler)
		r.HandleFunc("POST /sync", s.syncHandler)
	})
}

// renderJSON sends JSON response
func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			lgr.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// renderError sends error response as JSON
func renderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	renderJSON(w, r, code, map[string]string{"error": errMsg})
}

// renderDBError sends 404 for missing records and 500 for anything else
func renderDBError(w http.ResponseWriter, r *http.Request, err error, op string) {
	if errors.Is(err, ErrNotFound) {
		renderError(w, r, err, http.StatusNotFound)
		return
	}
	lgr.Printf("[ERROR] failed to %s: %v", op, err)
	renderError(w, r, fmt.Errorf("failed to %s", op), http.StatusInternalServerError)
}
