// Package server implements the bitgraph HTTP API.
//
// Graphs are uploaded in their binary encoding and held in memory under
// a server-assigned UUID. Queries (closure, paths, scores, renders) run
// against the stored graph; score and render results are cached by graph
// content hash, so re-uploading an identical graph reuses prior work.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/bitgraph-dev/bitgraph/pkg/cache"
)

// Config holds server settings.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string

	// CacheTTL bounds the lifetime of cached score and render results.
	// Zero means entries never expire.
	CacheTTL time.Duration

	// MaxGraphBytes caps the accepted upload size. Zero applies the
	// default of 32 MiB.
	MaxGraphBytes int64
}

const defaultMaxGraphBytes = 32 << 20

// Server serves the bitgraph HTTP API.
type Server struct {
	cfg   Config
	log   *log.Logger
	store *Store
	cache cache.Cache
}

// New creates a server. The cache may be a NullCache to disable result
// caching.
func New(cfg Config, logger *log.Logger, c cache.Cache) *Server {
	if cfg.MaxGraphBytes <= 0 {
		cfg.MaxGraphBytes = defaultMaxGraphBytes
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{cfg: cfg, log: logger, store: NewStore(), cache: c}
}

// Router builds the HTTP handler for the API.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)

	r.Route("/v1/graphs", func(r chi.Router) {
		r.Post("/", s.handleUpload)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleInfo)
			r.Delete("/", s.handleDelete)
			r.Get("/encoded", s.handleDownload)
			r.Get("/closure", s.handleClosure)
			r.Get("/paths", s.handlePaths)
			r.Get("/score", s.handleScore)
			r.Get("/render", s.handleRender)
		})
	})

	return r
}

// ListenAndServe runs the server until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.Router(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", s.cfg.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.log.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
