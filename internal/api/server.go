package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/mcoot/ponto/internal/config"
)

// Server runs the pontod HTTP API until its context is cancelled
type Server struct {
	server  *http.Server
	logger  *slog.Logger
	timeout config.HTTPConfig
	ready   chan struct{}
	addr    string
}

// NewServer creates a server for handler listening on addr. A Server runs
// once.
func NewServer(handler http.Handler, addr string, cfg config.HTTPConfig, logger *slog.Logger) *Server {
	return &Server{
		server: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadTimeout:       cfg.ReadTimeout,
			ReadHeaderTimeout: cfg.ReadTimeout,
			WriteTimeout:      cfg.WriteTimeout,
			ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
		},
		logger:  logger,
		timeout: cfg,
		ready:   make(chan struct{}),
	}
}

// Run listens and serves until ctx is done, then drains in-flight requests
// for at most the configured shutdown timeout
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.server.Addr, err)
	}
	s.addr = ln.Addr().String()
	close(s.ready)
	s.logger.Info("pontod listening", slog.String("addr", s.addr))

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.server.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down", slog.Duration("timeout", s.timeout.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout.ShutdownTimeout)
	defer cancel()

	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	<-errCh

	s.logger.Info("pontod stopped")
	return nil
}

// Ready is closed once the listener is bound
func (s *Server) Ready() <-chan struct{} {
	return s.ready
}

// Addr returns the bound address. Only meaningful after Ready is closed.
func (s *Server) Addr() string {
	return s.addr
}
