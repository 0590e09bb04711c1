// Package server exposes schema inference over HTTP.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/siegeai/siegeschema/adapter"
	"github.com/siegeai/siegeschema/infer"
)

const DefaultMaxBodyBytes = 10 << 20

const shutdownTimeout = 10 * time.Second

type Options struct {
	Inferrer infer.Inferrer
	Adapters *adapter.Registry
	// Gatherer backs /metrics. Nil disables the route.
	Gatherer     prometheus.Gatherer
	Logger       *slog.Logger
	MaxBodyBytes int64
}

type Server struct {
	router       *mux.Router
	inferrer     infer.Inferrer
	adapters     *adapter.Registry
	gatherer     prometheus.Gatherer
	logger       *slog.Logger
	maxBodyBytes int64
}

func New(opts Options) *Server {
	s := &Server{
		router:       mux.NewRouter(),
		inferrer:     opts.Inferrer,
		adapters:     opts.Adapters,
		gatherer:     opts.Gatherer,
		logger:       opts.Logger,
		maxBodyBytes: opts.MaxBodyBytes,
	}
	if s.inferrer == nil {
		s.inferrer = infer.NewEngine()
	}
	if s.adapters == nil {
		s.adapters, _ = adapter.NewRegistry()
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.maxBodyBytes <= 0 {
		s.maxBodyBytes = DefaultMaxBodyBytes
	}
	s.setupRoutes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Run listens on addr and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	hs := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		errs <- hs.Serve(ln)
	}()
	s.logger.Info("listening", "addr", ln.Addr().String())

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := hs.Shutdown(sctx); err != nil {
		return err
	}
	if err := <-errs; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.logger.Info("server stopped")
	return nil
}
