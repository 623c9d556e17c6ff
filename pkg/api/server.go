// Package api exposes the master control plane over JSON HTTP.
//
// The surface is split between the operator side (request submission and
// inspection) and the worker side (heartbeat, assignment polling, result
// reporting). Error responses use RFC 7807 problem documents.
package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"

	"github.com/dmsproject/dms/internal/logger"
	"github.com/dmsproject/dms/pkg/master"
	"github.com/dmsproject/dms/pkg/metadata"
)

// Server runs the control-plane HTTP listener with graceful shutdown.
type Server struct {
	httpServer   *http.Server
	shutdownWait func() (context.Context, context.CancelFunc)
	shutdownOnce sync.Once
}

// NewServer creates the control-plane HTTP server in a stopped state; call
// Start to begin serving. Defaults are applied here as well so a Server
// built directly in tests behaves like one built from a loaded config.
func NewServer(config Config, m *master.Master, store metadata.Store) *Server {
	config.applyDefaults()

	return &Server{
		httpServer: &http.Server{
			Addr:         net.JoinHostPort(config.Host, strconv.Itoa(config.Port)),
			Handler:      NewRouter(m, store),
			ReadTimeout:  config.ReadTimeout,
			WriteTimeout: config.WriteTimeout,
			IdleTimeout:  config.IdleTimeout,
		},
		shutdownWait: func() (context.Context, context.CancelFunc) {
			return context.WithTimeout(context.Background(), config.ShutdownTimeout)
		},
	}
}

// Start binds the listen address and serves until ctx is cancelled, then
// drains in-flight requests and returns. Bind failures (port already in
// use) are reported synchronously. A graceful shutdown returns nil.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("control plane listen on %s: %w", s.httpServer.Addr, err)
	}
	logger.Info("control plane listening", "addr", ln.Addr().String())

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.Serve(ln)
	}()

	select {
	case <-ctx.Done():
		logger.Info("control plane shutdown signal received")
		// A fresh context: reusing the cancelled one would abort the drain.
		drainCtx, cancel := s.shutdownWait()
		defer cancel()
		return s.Stop(drainCtx)
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("control plane server failed: %w", err)
	}
}

// Stop drains the server. Safe to call more than once and concurrently
// with Start.
func (s *Server) Stop(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			shutdownErr = fmt.Errorf("control plane shutdown: %w", err)
			logger.Error("control plane shutdown error", logger.Err(err))
			return
		}
		logger.Info("control plane stopped gracefully")
	})
	return shutdownErr
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}
