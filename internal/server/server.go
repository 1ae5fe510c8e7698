// Package server exposes the conversion pipeline over HTTP: a paste page,
// a POST endpoint and a websocket for live conversion.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/gaurav-prasanna/clipmark/core/pipeline"
	"github.com/gaurav-prasanna/clipmark/internal/cache"
)

// DefaultMaxBody is used when Options.MaxBody is not positive.
const DefaultMaxBody = 4 << 20

// Options configures a Server.
type Options struct {
	// MaxBody is the largest accepted HTML payload in bytes.
	MaxBody int64
	// Cache stores rendered conversions; nil disables caching.
	Cache cache.Cache
}

// Server holds the handlers' shared state.
type Server struct {
	maxBody int64
	cache   cache.Cache
	full    *pipeline.Pipeline
	reader  *pipeline.Pipeline
}

// New creates a Server.
func New(opts Options) *Server {
	if opts.MaxBody <= 0 {
		opts.MaxBody = DefaultMaxBody
	}
	return &Server{
		maxBody: opts.MaxBody,
		cache:   opts.Cache,
		full:    pipeline.New(false),
		reader:  pipeline.New(true),
	}
}

// Handler returns the chi router with all routes and middleware wired up.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(Recoverer)
	r.Use(RequestID)
	r.Use(Logger)

	r.Get("/health", healthHandler)
	r.Get("/", indexHandler)
	r.Post("/convert", s.handleConvert)
	r.Get("/ws", s.handleWebSocket)

	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) pipelineFor(reader bool) *pipeline.Pipeline {
	if reader {
		return s.reader
	}
	return s.full
}
