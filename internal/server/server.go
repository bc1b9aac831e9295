// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server is the HTTP front end: a small JSON API over the same
// actions the CLI runs, with one session per browser cookie.
package server

import (
	"context"
	"errors"
	"hash/fnv"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/pdiddy/scholar-search/internal/actions"
	"github.com/pdiddy/scholar-search/internal/session"
)

// Server routes API requests to the action handler.
type Server struct {
	Router  *chi.Mux
	Handler *actions.Handler
	Store   session.Store
	Logger  zerolog.Logger

	// locks serializes actions within one session. Sessions hash onto a
	// fixed set of stripes so the table does not grow with cookies.
	locks [lockStripes]sync.Mutex
}

const lockStripes = 64

// Config holds the dependencies of a Server.
type Config struct {
	Handler *actions.Handler
	Store   session.Store
	Logger  zerolog.Logger
}

// New builds a Server with its middleware and routes.
func New(cfg Config) *Server {
	s := &Server{
		Router:  chi.NewRouter(),
		Handler: cfg.Handler,
		Store:   cfg.Store,
		Logger:  cfg.Logger.With().Str("component", "server").Logger(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

func (s *Server) setupMiddleware() {
	s.Router.Use(chiMiddleware.RealIP)
	s.Router.Use(chiMiddleware.RequestID)
	s.Router.Use(requestLogger(s.Logger))
	s.Router.Use(chiMiddleware.Recoverer)
}

func (s *Server) setupRoutes() {
	s.Router.Get("/health", s.health)

	s.Router.Route("/api", func(r chi.Router) {
		r.Use(sessionCookie)

		r.Get("/session", s.current)
		r.Get("/history", s.history)
		r.Post("/search", s.search)
		r.Post("/bulk", s.bulk)
		r.Post("/next", s.next)
		r.Get("/page/{page}", s.page)
		r.Get("/papers/{id}", s.paper)
		r.Get("/papers/{id}/recommendations", s.recommend)
		r.Get("/export.csv", s.export)
	})
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.Logger.Info().Str("addr", addr).Msg("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.Logger.Info().Msg("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

// lock returns the mutex guarding session id.
func (s *Server) lock(id string) *sync.Mutex {
	h := fnv.New32a()
	h.Write([]byte(id))
	return &s.locks[h.Sum32()%lockStripes]
}

// requestLogger logs one line per request with zerolog.
func requestLogger(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			logger.Info().
				Str("request_id", chiMiddleware.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Int("bytes", ww.BytesWritten()).
				Dur("latency", time.Since(start)).
				Msg("request completed")
		})
	}
}
