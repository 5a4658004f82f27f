// Package server exposes the engine over HTTP and runs the idle-player
// sweeper.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/mesh-intelligence/lurelands/internal/engine"
)

// Defaults applied when Config leaves a field empty.
const (
	DefaultAddr          = ":8080"
	DefaultIdleTimeout   = 5 * time.Minute
	DefaultSweepSchedule = "@every 1m"

	shutdownGrace = 10 * time.Second
)

// Config configures a Server.
type Config struct {
	Addr          string
	IdleTimeout   time.Duration
	SweepSchedule string
	Logger        *slog.Logger
}

// Server serves the engine API.
type Server struct {
	addr    string
	engine  *engine.Engine
	log     *slog.Logger
	sweeper *Sweeper
	handler http.Handler
}

// New builds a Server. The sweep schedule is validated here so a bad
// expression fails before the listener starts.
func New(e *engine.Engine, cfg Config) (*Server, error) {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = DefaultIdleTimeout
	}
	if cfg.SweepSchedule == "" {
		cfg.SweepSchedule = DefaultSweepSchedule
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	sweeper, err := NewSweeper(e, cfg.IdleTimeout, cfg.SweepSchedule, cfg.Logger)
	if err != nil {
		return nil, err
	}
	s := &Server{
		addr:    cfg.Addr,
		engine:  e,
		log:     cfg.Logger,
		sweeper: sweeper,
	}

	router := mux.NewRouter()
	router.HandleFunc("/healthz", s.health).Methods(http.MethodGet)
	s.routes(router.PathPrefix("/v1").Subrouter())
	s.handler = chain(s.logRequests)(router)
	return s, nil
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.sweeper.Start()
	defer s.sweeper.Stop()

	errc := make(chan error, 1)
	go func() {
		s.log.Info("server listening", "addr", s.addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	s.log.Info("server shutting down")
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
