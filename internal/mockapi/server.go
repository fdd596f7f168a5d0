// Package mockapi is an in-memory stand-in for the catalog backend,
// exposing the same REST surface the console consumes. It exists for
// local development and for exercising the client in tests.
package mockapi

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/catalogops/console/internal/config"
	"github.com/catalogops/console/pkg/validator"
)

// Service serves the mock catalog API.
type Service struct {
	cfg       config.HTTP
	logger    *slog.Logger
	store     *Store
	validator validator.Validator
}

// CleanupFunc shuts the HTTP server down.
type CleanupFunc func(ctx context.Context) error

// New creates a Service over the given store.
func New(cfg config.HTTP, log *slog.Logger, store *Store) (*Service, error) {
	v, err := validator.NewDefaultValidator()
	if err != nil {
		return nil, fmt.Errorf("create validator: %w", err)
	}

	return &Service{
		cfg:       cfg,
		logger:    log.With(slog.String("service", "mockapi")),
		store:     store,
		validator: v,
	}, nil
}

// Router builds the chi router with all routes and middleware attached.
func (s *Service) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(
		s.recoverer(),
		corsMiddleware(),
		s.requestLogger(),
	)

	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", s.handleListProducts)
		r.Post("/", s.handleCreateProduct)
		r.Get("/{id}", s.handleGetProduct)
		r.Put("/{id}", s.handleUpdateProduct)
		r.Delete("/{id}", s.handleDeleteProduct)
	})

	r.Route("/api/change-logs", func(r chi.Router) {
		r.Get("/", s.handleListChangeLogs)
		r.Get("/recent", s.handleRecentChangeLogs)
	})

	r.Get("/api/categories", s.handleListCategories)

	return r
}

// Run starts the HTTP server and returns a shutdown function.
func (s *Service) Run(ctx context.Context) (CleanupFunc, error) {
	return s.RunWithServer(ctx, s.Router())
}

// RunWithServer starts an HTTP server with the given handler.
func (s *Service) RunWithServer(ctx context.Context, handler http.Handler) (CleanupFunc, error) {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Port),
		Handler:           handler,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 16, // 64 KB
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			panic(err)
		}
	}()

	return func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}, nil
}
