package server

import (
	"context"
	"net/http"
	"time"

	"github.com/onnwee/quickcache/internal/logger"
)

// Server wraps an http.Server with graceful shutdown.
type Server struct {
	httpServer *http.Server
}

// NewServer builds a Server listening on addr and serving handler.
func NewServer(addr string, handler http.Handler) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      handler,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// Start begins serving in the background. It returns immediately; call Shutdown
// to stop.
func (s *Server) Start() {
	go func() {
		logger.Info("http server listening", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server failed", "error", err)
		}
	}()
}

// Shutdown gracefully drains in-flight requests before returning.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
