// Package server exposes a port.Store over a small HTTP JSON API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/bnema/kvlru/internal/logging"
	"github.com/bnema/kvlru/internal/port"
)

// Options configures a Server.
type Options struct {
	// Listen is the host:port the server binds to.
	Listen string
	// ReadTimeout bounds request reads; zero means no timeout.
	ReadTimeout time.Duration
	// ShutdownTimeout bounds graceful shutdown; zero means wait forever.
	ShutdownTimeout time.Duration
}

// Server fronts a cache store with an HTTP API. It never reaches into the
// store's internals; everything goes through port.Store.
type Server struct {
	store port.Store
	stats *Stats
	opts  Options
}

// New creates a Server over the given store. stats may be shared with the
// store's eviction callback so /stats reflects evictions.
func New(store port.Store, stats *Stats, opts Options) *Server {
	if stats == nil {
		stats = NewStats()
	}
	return &Server{
		store: store,
		stats: stats,
		opts:  opts,
	}
}

// Stats returns the server's counters.
func (s *Server) Stats() *Stats {
	return s.stats
}

// Handler returns the HTTP routing table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /get", s.handleGet)
	mux.HandleFunc("POST /put", s.handlePut)
	mux.HandleFunc("POST /del", s.handleDel)
	mux.HandleFunc("POST /clear", s.handleClear)
	mux.HandleFunc("GET /has", s.handleHas)
	mux.HandleFunc("GET /len", s.handleLen)
	mux.HandleFunc("GET /keys", s.handleKeys)
	mux.HandleFunc("GET /snapshot", s.handleSnapshot)
	mux.HandleFunc("GET /stats", s.handleStats)
	return mux
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	log := logging.FromContext(ctx)

	listener, err := net.Listen("tcp", s.opts.Listen)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.opts.Listen, err)
	}

	httpServer := &http.Server{
		Handler:     s.Handler(),
		ReadTimeout: s.opts.ReadTimeout,
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	log.Info().
		Str("listen", listener.Addr().String()).
		Int("capacity", s.store.Cap()).
		Msg("cache server listening")

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx := context.Background()
		if s.opts.ShutdownTimeout > 0 {
			var cancel context.CancelFunc
			shutdownCtx, cancel = context.WithTimeout(shutdownCtx, s.opts.ShutdownTimeout)
			defer cancel()
		}

		log.Info().Msg("shutting down cache server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown failed: %w", err)
		}
		return nil
	})

	return g.Wait()
}
