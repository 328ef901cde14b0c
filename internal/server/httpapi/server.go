// Package httpapi serves the client directory over HTTP with JSON bodies.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/myjar/internal/logging"
	"github.com/dmitrijs2005/myjar/internal/server/format"
	"github.com/dmitrijs2005/myjar/internal/server/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const shutdownTimeout = 5 * time.Second

// Directory is the client directory served over HTTP.
type Directory interface {
	Create(ctx context.Context, fields map[string]any) (format.PublicView, error)
	Get(ctx context.Context, id string) (format.PublicView, error)
	List(ctx context.Context, page models.Page) ([]format.PublicView, error)
	Search(ctx context.Context, criteria []models.Criterion, page models.Page) ([]format.PublicView, error)
	Modify(ctx context.Context, id string, fields map[string]any) (format.PublicView, error)
	Delete(ctx context.Context, id string) error
}

// RequestObserver records handled requests.
type RequestObserver interface {
	ObserveRequest(transport, method, code string, start time.Time)
}

// Pinger reports whether the backing store is usable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Server struct {
	address     string
	directory   Directory
	observer    RequestObserver
	metrics     http.Handler
	health      Pinger
	maxPageSize int
	logger      logging.Logger
}

// Options carries the optional collaborators of Server.
type Options struct {
	Observer    RequestObserver
	Metrics     http.Handler
	Health      Pinger
	MaxPageSize int
}

func NewServer(address string, l logging.Logger, d Directory, opts Options) *Server {
	maxPageSize := opts.MaxPageSize
	if maxPageSize <= 0 {
		maxPageSize = models.MaxPageSize
	}
	return &Server{
		address:     address,
		directory:   d,
		observer:    opts.Observer,
		metrics:     opts.Metrics,
		health:      opts.Health,
		maxPageSize: maxPageSize,
		logger:      l.With("module", "http_server"),
	}
}

// Router returns the routes of the API.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)

	r.Get("/clients", s.handleListClients)
	r.Put("/client", s.handleCreateClient)
	r.Get("/client/{id}", s.handleGetClient)
	r.Put("/client/{id}", s.handleModifyClient)
	r.Delete("/client/{id}", s.handleDeleteClient)

	r.Get("/healthz", s.handleHealth)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	r.NotFound(s.handleUnknown)
	r.MethodNotAllowed(s.handleUnknown)

	return r
}

func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP shutdown", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
